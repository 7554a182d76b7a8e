package session

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

// IdentityProvider is the managed authentication service. It owns credentials and tokens.
type IdentityProvider interface {
	CreateCredential(ctx context.Context, email, password string) error
	DeleteCredential(ctx context.Context, email string) error
	VerifyCredential(ctx context.Context, email, password string) (string, time.Time, error)
	ValidateToken(ctx context.Context, token string) (string, time.Time, error)
	SignOut(ctx context.Context, token string) error
	Subscribe(fn func(domain.SessionChange)) func()
}

// UserRepository contract interface
type UserRepository interface {
	Create(ctx context.Context, user *domain.User) error
	FindByEmail(ctx context.Context, email string) (domain.User, error)
}

// NotificationRepository contract interface
type NotificationRepository interface {
	SendEmail(ctx context.Context, toEmail, subject, message string) error
}

// ChainInvalidator drops stored page cursors of a list whose contents changed.
type ChainInvalidator interface {
	Invalidate(ctx context.Context, q pagination.Query)
}

const (
	SubjectWelcome   = "Welcome to the Wellness Centre!"
	EmailBodyWelcome = `Hello %v, your account is ready.</br></br>Share your referral link and earn points every time a friend pays for a treatment:</br>%v`
)

type sessionService struct {
	provider         IdentityProvider
	userRepo         UserRepository
	notifRepo        NotificationRepository
	referrals        ChainInvalidator
	validate         *validator.Validate
	appDeploymentUrl string
	unsubscribe      func()
}

func NewSessionService(
	provider IdentityProvider,
	userRepo UserRepository,
	notifRepo NotificationRepository,
	referrals ChainInvalidator,
	validate *validator.Validate,
	appDeploymentUrl string,
) *sessionService {
	s := &sessionService{
		provider:         provider,
		userRepo:         userRepo,
		notifRepo:        notifRepo,
		referrals:        referrals,
		validate:         validate,
		appDeploymentUrl: appDeploymentUrl,
	}
	s.unsubscribe = provider.Subscribe(s.onSessionChange)

	return s
}

// Close stops listening to session changes.
func (s *sessionService) Close() {
	s.unsubscribe()
}

func (s *sessionService) onSessionChange(change domain.SessionChange) {
	if change.SignedIn {
		signIns.Inc()
		logger.Info("User signed in", "email", change.Email)
		return
	}

	signOuts.Inc()
	logger.Info("User signed out", "email", change.Email)
}

// SignUp creates the credential and, when the e-mail has no profile yet, a user profile
// with a fresh referral code. A profile created earlier by an admin is kept as is.
func (s *sessionService) SignUp(ctx context.Context, email, password, referredBy string) (domain.User, error) {
	if err := s.validate.Var(email, "required,email"); err != nil {
		logger.Error("Invalid email format", err)
		return domain.User{}, domain.ErrInvalidEmail
	}

	if err := s.validate.Var(password, "required,min=6"); err != nil {
		logger.Error("Invalid user password", err)
		return domain.User{}, domain.ErrWeakPassword
	}

	if err := s.provider.CreateCredential(ctx, email, password); err != nil {
		signUps.WithLabelValues("self", "failed").Inc()
		return domain.User{}, err
	}

	user, err := s.ensureProfile(ctx, email, referredBy)
	if err != nil {
		logger.Error("Failed to create user profile", "email", email, "error", err)
		if delErr := s.provider.DeleteCredential(ctx, email); delErr != nil {
			logger.Error("Failed to remove credential after profile failure", "email", email, "error", delErr)
		}
		signUps.WithLabelValues("self", "failed").Inc()
		return domain.User{}, err
	}

	signUps.WithLabelValues("self", "created").Inc()

	link := domain.ReferralLink(s.appDeploymentUrl, user.ReferralCode)
	if err := s.notifRepo.SendEmail(ctx, user.Email, SubjectWelcome, fmt.Sprintf(EmailBodyWelcome, user.Email, link)); err != nil {
		logger.Warn("Failed to send welcome email", err)
	}

	return user, nil
}

func (s *sessionService) ensureProfile(ctx context.Context, email, referredBy string) (domain.User, error) {
	existing, err := s.userRepo.FindByEmail(ctx, email)
	if err == nil {
		return existing, nil
	}
	if !errors.Is(err, domain.ErrUserNotFound) {
		return domain.User{}, err
	}

	user := newProfile(email, domain.RoleUser, referredBy)
	if err := s.userRepo.Create(ctx, &user); err != nil {
		if errors.Is(err, domain.ErrDuplicateAccount) {
			return s.userRepo.FindByEmail(ctx, email)
		}
		return domain.User{}, err
	}

	s.invalidateReferrals(ctx, referredBy)
	return user, nil
}

// AdminSignUp creates a profile without credentials; the person signs up later with the
// same e-mail to get a password.
func (s *sessionService) AdminSignUp(ctx context.Context, email, role, referredBy string) (domain.User, error) {
	if err := s.validate.Var(email, "required,email"); err != nil {
		logger.Error("Invalid email format", err)
		return domain.User{}, domain.ErrInvalidEmail
	}

	if !domain.ValidRoles[role] {
		return domain.User{}, domain.ErrInvalidRole
	}

	user := newProfile(email, role, referredBy)
	if err := s.userRepo.Create(ctx, &user); err != nil {
		if !errors.Is(err, domain.ErrDuplicateAccount) {
			logger.Error("Failed to create user profile", err)
		}
		signUps.WithLabelValues("admin", "failed").Inc()
		return domain.User{}, err
	}

	signUps.WithLabelValues("admin", "created").Inc()
	s.invalidateReferrals(ctx, referredBy)

	return user, nil
}

func (s *sessionService) LogIn(ctx context.Context, email, password string) (domain.Session, error) {
	if err := s.validate.Var(email, "required,email"); err != nil {
		return domain.Session{}, domain.ErrInvalidCredentials
	}

	token, expAt, err := s.provider.VerifyCredential(ctx, email, password)
	if err != nil {
		logins.WithLabelValues("rejected").Inc()
		return domain.Session{}, err
	}

	profile, err := s.userRepo.FindByEmail(ctx, email)
	if err != nil {
		logger.Error("Signed in without a profile", "email", email, "error", err)
		if signOutErr := s.provider.SignOut(ctx, token); signOutErr != nil {
			logger.Error("Failed to sign out", signOutErr)
		}
		logins.WithLabelValues("rejected").Inc()
		return domain.Session{}, err
	}

	logins.WithLabelValues("accepted").Inc()

	return domain.Session{
		Token:     token,
		Email:     email,
		Profile:   profile,
		ExpiresAt: expAt,
	}, nil
}

func (s *sessionService) LogOut(ctx context.Context, sess domain.Session) error {
	if err := s.provider.SignOut(ctx, sess.Token); err != nil {
		logger.Error("Failed to sign out", "email", sess.Email, "error", err)
		return err
	}

	return nil
}

// Resolve builds the session of one request from its bearer token.
func (s *sessionService) Resolve(ctx context.Context, token string) (domain.Session, error) {
	email, expAt, err := s.provider.ValidateToken(ctx, token)
	if err != nil {
		return domain.Session{}, err
	}

	profile, err := s.userRepo.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return domain.Session{}, domain.ErrUnauthorized
		}
		return domain.Session{}, err
	}

	return domain.Session{
		Token:     token,
		Email:     email,
		Profile:   profile,
		ExpiresAt: expAt,
	}, nil
}

// CheckReferral returns the referral code of email, or "" when there is no such profile.
func (s *sessionService) CheckReferral(ctx context.Context, email string) (string, error) {
	user, err := s.userRepo.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return "", nil
		}
		logger.Error("Failed to check referral", err)
		return "", err
	}

	return user.ReferralCode, nil
}

func (s *sessionService) invalidateReferrals(ctx context.Context, referredBy string) {
	if referredBy != "" {
		s.referrals.Invalidate(ctx, pagination.ReferralsQuery(referredBy))
	}
}

func newProfile(email, role, referredBy string) domain.User {
	return domain.User{
		Email:        email,
		Role:         role,
		ReferralCode: uuid.NewString(),
		ReferredBy:   referredBy,
		Points:       decimal.Zero,
		Funds:        decimal.Zero,
	}
}
