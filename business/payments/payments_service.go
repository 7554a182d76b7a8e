package payments

import (
	"context"
	"errors"
	"fmt"
	"myWellnessCentre/business/pagination"
	"myWellnessCentre/domain"
	"myWellnessCentre/pkg/logger"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type UserRepository interface {
	FindByEmail(ctx context.Context, email string) (domain.User, error)
}

type PaymentsRepository interface {
	RecordServicePayment(ctx context.Context, payment domain.Payment) (domain.PaymentReceipt, error)
	AddFunds(ctx context.Context, payment domain.Payment) (domain.User, error)
}

// PreviewRepository holds payment previews until staff confirm them.
type PreviewRepository interface {
	Save(ctx context.Context, preview domain.PaymentPreview, ttl time.Duration) error
	Take(ctx context.Context, confirmationID string) (domain.PaymentPreview, error)
}

type NotificationRepository interface {
	SendEmail(ctx context.Context, toEmail, subject, message string) error
}

type PaymentPaginator interface {
	Page(ctx context.Context, q pagination.Query, page int, cursor string) (pagination.Page[domain.Payment], error)
	Invalidate(ctx context.Context, q pagination.Query)
}

const (
	SubjectReceipt   = "Your Wellness Centre receipt"
	EmailBodyReceipt = `Thank you for visiting us.</br></br>Service: %v</br>Amount: %v</br>Paid with: %v</br>Points earned: %v`
)

// PaymentRequest is one service payment as entered by staff.
type PaymentRequest struct {
	Email         string
	Amount        decimal.Decimal
	Service       string
	PaymentMethod string
}

type PaymentsService struct {
	userRepo     UserRepository
	paymentsRepo PaymentsRepository
	previewRepo  PreviewRepository
	notifRepo    NotificationRepository
	paginator    PaymentPaginator
	validate     *validator.Validate
	previewTTL   time.Duration
}

func NewPaymentsService(
	userRepo UserRepository,
	paymentsRepo PaymentsRepository,
	previewRepo PreviewRepository,
	notifRepo NotificationRepository,
	paginator PaymentPaginator,
	validate *validator.Validate,
	previewTTL time.Duration,
) *PaymentsService {
	return &PaymentsService{
		userRepo:     userRepo,
		paymentsRepo: paymentsRepo,
		previewRepo:  previewRepo,
		notifRepo:    notifRepo,
		paginator:    paginator,
		validate:     validate,
		previewTTL:   previewTTL,
	}
}

func (s *PaymentsService) validateRequest(req *PaymentRequest) error {
	if err := s.validate.Var(req.Email, "required,email"); err != nil {
		return domain.ErrInvalidEmail
	}

	req.Amount = req.Amount.Round(2)
	if !req.Amount.IsPositive() {
		return domain.ErrInvalidAmount
	}

	req.Service = domain.NormalizeService(req.Service)
	if !domain.IsValidService(req.Service) {
		return domain.ErrInvalidService
	}

	if !domain.ValidPaymentMethods[req.PaymentMethod] {
		return domain.ErrInvalidPaymentMethod
	}

	return nil
}

// Preview checks a payment against the current balances and parks it for confirmation.
// Nothing is written to the user or payment tables.
func (s *PaymentsService) Preview(ctx context.Context, req PaymentRequest) (domain.PaymentPreview, error) {
	if err := s.validateRequest(&req); err != nil {
		return domain.PaymentPreview{}, err
	}

	user, err := s.userRepo.FindByEmail(ctx, req.Email)
	if err != nil {
		return domain.PaymentPreview{}, err
	}

	fundsAfter, pointsAfter := user.Funds, user.Points
	if req.PaymentMethod == domain.PaymentMethodPayWithFunds {
		if req.Amount.GreaterThan(user.Funds) {
			return domain.PaymentPreview{}, domain.ErrInsufficientFunds
		}
		fundsAfter = user.Funds.Sub(req.Amount)
		pointsAfter = user.Points.Add(req.Amount)
	}

	preview := domain.PaymentPreview{
		ConfirmationID: uuid.NewString(),
		Email:          req.Email,
		Amount:         req.Amount,
		Service:        req.Service,
		PaymentMethod:  req.PaymentMethod,
		ReferredBy:     user.ReferredBy,
		FundsAfter:     fundsAfter,
		PointsAfter:    pointsAfter,
		ExpiresAt:      time.Now().Add(s.previewTTL),
	}

	if err := s.previewRepo.Save(ctx, preview, s.previewTTL); err != nil {
		logger.Error("Failed to store payment preview", err)
		return domain.PaymentPreview{}, err
	}

	return preview, nil
}

// Confirm records a previewed payment. A confirmation id can be used once.
func (s *PaymentsService) Confirm(ctx context.Context, confirmationID string) (domain.PaymentReceipt, error) {
	preview, err := s.previewRepo.Take(ctx, confirmationID)
	if err != nil {
		return domain.PaymentReceipt{}, err
	}

	return s.RecordServicePayment(ctx, PaymentRequest{
		Email:         preview.Email,
		Amount:        preview.Amount,
		Service:       preview.Service,
		PaymentMethod: preview.PaymentMethod,
	})
}

// RecordServicePayment writes the payment, the payer's balance change and the referrer's
// bonus atomically. Balances are re-checked inside the transaction, not taken from a preview.
func (s *PaymentsService) RecordServicePayment(ctx context.Context, req PaymentRequest) (domain.PaymentReceipt, error) {
	if err := s.validateRequest(&req); err != nil {
		return domain.PaymentReceipt{}, err
	}

	payment := domain.Payment{
		ID:            uuid.NewString(),
		Email:         req.Email,
		Amount:        req.Amount,
		Type:          domain.PaymentTypeServicePayment,
		Service:       req.Service,
		PaymentMethod: req.PaymentMethod,
		CreatedAt:     time.Now().UTC(),
	}

	receipt, err := s.paymentsRepo.RecordServicePayment(ctx, payment)
	if err != nil {
		if !errors.Is(err, domain.ErrInsufficientFunds) && !errors.Is(err, domain.ErrUserNotFound) {
			logger.Error("Failed to record payment", "email", req.Email, "error", err)
		}
		return domain.PaymentReceipt{}, err
	}

	paymentsRecorded.WithLabelValues(payment.Type, payment.PaymentMethod).Inc()
	if receipt.ReferrerCredited {
		referralBonusPoints.Add(receipt.ReferralBonus.InexactFloat64())
	}

	s.paginator.Invalidate(ctx, pagination.PaymentsQuery(payment.Email))

	body := fmt.Sprintf(EmailBodyReceipt, payment.Service, payment.Amount.StringFixed(2), payment.PaymentMethod, receipt.PointsCredited.StringFixed(2))
	if err := s.notifRepo.SendEmail(ctx, payment.Email, SubjectReceipt, body); err != nil {
		logger.Warn("Failed to send payment receipt", err)
	}

	return receipt, nil
}

// AddFunds tops up a user's funds; the top-up is paid in cash at the front desk.
func (s *PaymentsService) AddFunds(ctx context.Context, email string, amount decimal.Decimal) (domain.User, error) {
	amount = amount.Round(2)
	if !amount.IsPositive() {
		return domain.User{}, domain.ErrInvalidAmount
	}

	payment := domain.Payment{
		ID:            uuid.NewString(),
		Email:         email,
		Amount:        amount,
		Type:          domain.PaymentTypeAddFunds,
		PaymentMethod: domain.PaymentMethodCash,
		CreatedAt:     time.Now().UTC(),
	}

	user, err := s.paymentsRepo.AddFunds(ctx, payment)
	if err != nil {
		if !errors.Is(err, domain.ErrUserNotFound) {
			logger.Error("Failed to add funds", "email", email, "error", err)
		}
		return domain.User{}, err
	}

	paymentsRecorded.WithLabelValues(payment.Type, payment.PaymentMethod).Inc()
	s.paginator.Invalidate(ctx, pagination.PaymentsQuery(email))

	return user, nil
}

func (s *PaymentsService) ListPayments(ctx context.Context, email string, page int, cursor string) (pagination.Page[domain.Payment], error) {
	return s.paginator.Page(ctx, pagination.PaymentsQuery(email), page, cursor)
}
