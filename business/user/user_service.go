package user

import (
	"context"
	"errors"
	"myWellnessCentre/business/pagination"
	"myWellnessCentre/domain"
	"myWellnessCentre/pkg/logger"

	"github.com/go-playground/validator/v10"
)

// UserRepository contract interface
type UserRepository interface {
	FindByEmail(ctx context.Context, email string) (domain.User, error)
	FindByReferralCode(ctx context.Context, code string) (domain.User, error)
	UpdateRole(ctx context.Context, email, role string) error
}

type UserPaginator interface {
	Page(ctx context.Context, q pagination.Query, page int, cursor string) (pagination.Page[domain.User], error)
}

// Profile is a user as shown on their own dashboard.
type Profile struct {
	domain.User
	ReferralLink    string `json:"referral_link"`
	ReferredByEmail string `json:"referred_by_email,omitempty"`
}

type userService struct {
	userRepo         UserRepository
	paginator        UserPaginator
	validate         *validator.Validate
	appDeploymentUrl string
}

func NewUserService(
	userRepo UserRepository,
	paginator UserPaginator,
	validate *validator.Validate,
	appDeploymentUrl string,
) *userService {
	return &userService{
		userRepo:         userRepo,
		paginator:        paginator,
		validate:         validate,
		appDeploymentUrl: appDeploymentUrl,
	}
}

// SearchByEmail looks a user up for the admin screens.
func (s *userService) SearchByEmail(ctx context.Context, email string) (domain.User, error) {
	if err := s.validate.Var(email, "required,email"); err != nil {
		return domain.User{}, domain.ErrInvalidEmail
	}

	user, err := s.userRepo.FindByEmail(ctx, email)
	if err != nil {
		if !errors.Is(err, domain.ErrUserNotFound) {
			logger.Error("Failed to search user", err)
		}
		return domain.User{}, err
	}

	return user, nil
}

func (s *userService) UpdateRole(ctx context.Context, email, role string) (domain.User, error) {
	if !domain.ValidRoles[role] {
		return domain.User{}, domain.ErrInvalidRole
	}

	user, err := s.userRepo.FindByEmail(ctx, email)
	if err != nil {
		return domain.User{}, err
	}

	if user.Role == role {
		return domain.User{}, domain.ErrRoleUnchanged
	}

	if err := s.userRepo.UpdateRole(ctx, email, role); err != nil {
		logger.Error("Failed to update role", "email", email, "error", err)
		return domain.User{}, err
	}

	logger.Info("Role updated", "email", email, "from", user.Role, "to", role)
	user.Role = role

	return user, nil
}

func (s *userService) Profile(ctx context.Context, email string) (Profile, error) {
	user, err := s.userRepo.FindByEmail(ctx, email)
	if err != nil {
		return Profile{}, err
	}

	profile := Profile{
		User:         user,
		ReferralLink: domain.ReferralLink(s.appDeploymentUrl, user.ReferralCode),
	}

	if user.ReferredBy != "" {
		referrer, err := s.userRepo.FindByReferralCode(ctx, user.ReferredBy)
		switch {
		case err == nil:
			profile.ReferredByEmail = referrer.Email
		case !errors.Is(err, domain.ErrUserNotFound):
			logger.Warn("Failed to load referrer", "code", user.ReferredBy, "error", err)
		}
	}

	return profile, nil
}

// ListReferrals pages through the users who signed up with the referral code of email.
func (s *userService) ListReferrals(ctx context.Context, email string, page int, cursor string) (pagination.Page[domain.User], error) {
	user, err := s.userRepo.FindByEmail(ctx, email)
	if err != nil {
		return pagination.Page[domain.User]{}, err
	}

	return s.paginator.Page(ctx, pagination.ReferralsQuery(user.ReferralCode), page, cursor)
}
