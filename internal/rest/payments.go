package rest

import (
	"context"
	"myWellnessCentre/business/pagination"
	"myWellnessCentre/business/payments"
	"myWellnessCentre/domain"
	"myWellnessCentre/internal/middleware"
	"myWellnessCentre/pkg/logger"
	"net/http"
	"time"

	"github.com/AMFarhan21/fres"
	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"
)

type PaymentsService interface {
	Preview(ctx context.Context, req payments.PaymentRequest) (domain.PaymentPreview, error)
	Confirm(ctx context.Context, confirmationID string) (domain.PaymentReceipt, error)
	AddFunds(ctx context.Context, email string, amount decimal.Decimal) (domain.User, error)
	ListPayments(ctx context.Context, email string, page int, cursor string) (pagination.Page[domain.Payment], error)
}

type PaymentsHandler struct {
	paymentsService PaymentsService
	validator       *validator.Validate
	timeout         time.Duration
}

func NewPaymentsHandler(paymentsService PaymentsService) *PaymentsHandler {
	return &PaymentsHandler{
		paymentsService: paymentsService,
		validator:       validator.New(),
		timeout:         10 * time.Second,
	}
}

type PaymentPreviewRequest struct {
	Email         string          `json:"email" validate:"required,email"`
	Amount        decimal.Decimal `json:"amount"`
	Service       string          `json:"service" validate:"required"`
	PaymentMethod string          `json:"payment_method" validate:"required"`
}

type PaymentConfirmRequest struct {
	ConfirmationID string `json:"confirmation_id" validate:"required,uuid"`
}

type AddFundsRequest struct {
	Amount decimal.Decimal `json:"amount"`
}

func (h *PaymentsHandler) Preview(c echo.Context) error {
	var req PaymentPreviewRequest

	if err := c.Bind(&req); err != nil {
		logger.Error("Invalid request body", err)
		return c.JSON(http.StatusBadRequest, ResponseError{Message: "invalid request body"})
	}

	if err := h.validator.Struct(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	preview, err := h.paymentsService.Preview(ctx, payments.PaymentRequest{
		Email:         req.Email,
		Amount:        req.Amount,
		Service:       req.Service,
		PaymentMethod: req.PaymentMethod,
	})
	if err != nil {
		return errorResponse(c, err, "payment preview failed")
	}

	return c.JSON(http.StatusOK, fres.Response.StatusOK(preview))
}

func (h *PaymentsHandler) Confirm(c echo.Context) error {
	var req PaymentConfirmRequest

	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ResponseError{Message: "invalid request body"})
	}

	if err := h.validator.Struct(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	receipt, err := h.paymentsService.Confirm(ctx, req.ConfirmationID)
	if err != nil {
		return errorResponse(c, err, "payment failed")
	}

	staff, _ := middleware.CurrentSession(c)
	logger.Info("Payment recorded", "payment_id", receipt.Payment.ID, "email", receipt.Payment.Email, "recorded_by", staff.Email)

	return c.JSON(http.StatusCreated, fres.Response.StatusCreated(receipt))
}

func (h *PaymentsHandler) AddFunds(c echo.Context) error {
	var req AddFundsRequest

	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ResponseError{Message: "invalid request body"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	updated, err := h.paymentsService.AddFunds(ctx, c.Param("email"), req.Amount)
	if err != nil {
		return errorResponse(c, err, "add funds failed")
	}

	return c.JSON(http.StatusCreated, fres.Response.StatusCreated(updated))
}

func (h *PaymentsHandler) MyPayments(c echo.Context) error {
	sess, _ := middleware.CurrentSession(c)
	return h.list(c, sess.Email)
}

func (h *PaymentsHandler) UserPayments(c echo.Context) error {
	return h.list(c, c.Param("email"))
}

func (h *PaymentsHandler) list(c echo.Context, email string) error {
	page, cursor, err := pageParams(c)
	if err != nil {
		return errorResponse(c, err, "fetch error")
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	result, err := h.paymentsService.ListPayments(ctx, email, page, cursor)
	return pageResponse(c, result, err)
}
