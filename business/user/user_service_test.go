package user

import (
	"context"
	"errors"
	"myWellnessCentre/business/mocks"
	"myWellnessCentre/business/pagination"
	"myWellnessCentre/domain"
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func newTestService() (*userService, *mocks.MockUserRepository, *mocks.MockUserPaginator) {
	repo := &mocks.MockUserRepository{}
	pages := &mocks.MockUserPaginator{}
	return NewUserService(repo, pages, validator.New(), "https://wellness.example.com"), repo, pages
}

func TestUserService_SearchByEmail(t *testing.T) {
	ctx := context.Background()
	svc, repo, _ := newTestService()
	repo.On("FindByEmail", ctx, "jane@example.com").Return(domain.User{Email: "jane@example.com"}, nil)
	repo.On("FindByEmail", ctx, "ghost@example.com").Return(domain.User{}, domain.ErrUserNotFound)

	user, err := svc.SearchByEmail(ctx, "jane@example.com")
	require.NoError(t, err)
	assert.Equal(t, "jane@example.com", user.Email)

	_, err = svc.SearchByEmail(ctx, "ghost@example.com")
	assert.ErrorIs(t, err, domain.ErrUserNotFound)

	_, err = svc.SearchByEmail(ctx, "jane")
	assert.ErrorIs(t, err, domain.ErrInvalidEmail)
}

func TestUserService_UpdateRole(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		name      string
		role      string
		setup     func(repo *mocks.MockUserRepository)
		expectErr error
	}{
		{
			name: "promote to member",
			role: domain.RoleMember,
			setup: func(repo *mocks.MockUserRepository) {
				repo.On("FindByEmail", ctx, "jane@example.com").Return(domain.User{Email: "jane@example.com", Role: domain.RoleUser}, nil)
				repo.On("UpdateRole", ctx, "jane@example.com", domain.RoleMember).Return(nil)
			},
		},
		{
			name: "same role",
			role: domain.RoleUser,
			setup: func(repo *mocks.MockUserRepository) {
				repo.On("FindByEmail", ctx, "jane@example.com").Return(domain.User{Email: "jane@example.com", Role: domain.RoleUser}, nil)
			},
			expectErr: domain.ErrRoleUnchanged,
		},
		{
			name:      "unknown role",
			role:      "superuser",
			setup:     func(repo *mocks.MockUserRepository) {},
			expectErr: domain.ErrInvalidRole,
		},
		{
			name: "unknown user",
			role: domain.RoleAdmin,
			setup: func(repo *mocks.MockUserRepository) {
				repo.On("FindByEmail", ctx, "jane@example.com").Return(domain.User{}, domain.ErrUserNotFound)
			},
			expectErr: domain.ErrUserNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, repo, _ := newTestService()
			tt.setup(repo)

			user, err := svc.UpdateRole(ctx, "jane@example.com", tt.role)
			if tt.expectErr != nil {
				assert.ErrorIs(t, err, tt.expectErr)
				repo.AssertNotCalled(t, "UpdateRole", mock.Anything, mock.Anything, mock.Anything)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.role, user.Role)
			repo.AssertExpectations(t)
		})
	}
}

func TestUserService_Profile(t *testing.T) {
	ctx := context.Background()

	t.Run("with referrer", func(t *testing.T) {
		svc, repo, _ := newTestService()
		repo.On("FindByEmail", ctx, "jane@example.com").Return(domain.User{Email: "jane@example.com", ReferralCode: "code-jane", ReferredBy: "code-sam"}, nil)
		repo.On("FindByReferralCode", ctx, "code-sam").Return(domain.User{Email: "sam@example.com"}, nil)

		profile, err := svc.Profile(ctx, "jane@example.com")
		require.NoError(t, err)
		assert.Equal(t, "https://wellness.example.com/login?mode=signup&referredBy=code-jane", profile.ReferralLink)
		assert.Equal(t, "sam@example.com", profile.ReferredByEmail)
	})

	t.Run("dangling referral code", func(t *testing.T) {
		svc, repo, _ := newTestService()
		repo.On("FindByEmail", ctx, "jane@example.com").Return(domain.User{Email: "jane@example.com", ReferredBy: "gone"}, nil)
		repo.On("FindByReferralCode", ctx, "gone").Return(domain.User{}, domain.ErrUserNotFound)

		profile, err := svc.Profile(ctx, "jane@example.com")
		require.NoError(t, err)
		assert.Empty(t, profile.ReferredByEmail)
	})

	t.Run("referrer lookup failure is not fatal", func(t *testing.T) {
		svc, repo, _ := newTestService()
		repo.On("FindByEmail", ctx, "jane@example.com").Return(domain.User{Email: "jane@example.com", ReferredBy: "code-sam"}, nil)
		repo.On("FindByReferralCode", ctx, "code-sam").Return(domain.User{}, errors.New("timeout"))

		_, err := svc.Profile(ctx, "jane@example.com")
		assert.NoError(t, err)
	})
}

func TestUserService_ListReferrals(t *testing.T) {
	ctx := context.Background()
	svc, repo, pages := newTestService()
	repo.On("FindByEmail", ctx, "jane@example.com").Return(domain.User{Email: "jane@example.com", ReferralCode: "code-jane"}, nil)

	empty := pagination.Page[domain.User]{Records: []domain.User{}, Page: 1, TotalPages: 1, State: pagination.StateEmpty}
	pages.On("Page", ctx, pagination.ReferralsQuery("code-jane"), 1, "").Return(empty, domain.ErrNoRecords)

	got, err := svc.ListReferrals(ctx, "jane@example.com", 1, "")
	assert.ErrorIs(t, err, domain.ErrNoRecords)
	assert.Equal(t, empty, got)
}
