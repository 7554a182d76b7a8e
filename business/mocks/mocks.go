package mocks

import (
	"context"
	"myWellnessCentre/business/pagination"
	"myWellnessCentre/domain"
	"time"

	"github.com/stretchr/testify/mock"
)

type MockIdentityProvider struct {
	mock.Mock
}

func (m *MockIdentityProvider) CreateCredential(ctx context.Context, email, password string) error {
	args := m.Called(ctx, email, password)
	return args.Error(0)
}

func (m *MockIdentityProvider) DeleteCredential(ctx context.Context, email string) error {
	args := m.Called(ctx, email)
	return args.Error(0)
}

func (m *MockIdentityProvider) VerifyCredential(ctx context.Context, email, password string) (string, time.Time, error) {
	args := m.Called(ctx, email, password)
	return args.String(0), args.Get(1).(time.Time), args.Error(2)
}

func (m *MockIdentityProvider) ValidateToken(ctx context.Context, token string) (string, time.Time, error) {
	args := m.Called(ctx, token)
	return args.String(0), args.Get(1).(time.Time), args.Error(2)
}

func (m *MockIdentityProvider) SignOut(ctx context.Context, token string) error {
	args := m.Called(ctx, token)
	return args.Error(0)
}

func (m *MockIdentityProvider) Subscribe(fn func(domain.SessionChange)) func() {
	args := m.Called(fn)
	if unsubscribe, ok := args.Get(0).(func()); ok {
		return unsubscribe
	}
	return func() {}
}

type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) Create(ctx context.Context, user *domain.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *MockUserRepository) FindByEmail(ctx context.Context, email string) (domain.User, error) {
	args := m.Called(ctx, email)
	return args.Get(0).(domain.User), args.Error(1)
}

func (m *MockUserRepository) FindByReferralCode(ctx context.Context, code string) (domain.User, error) {
	args := m.Called(ctx, code)
	return args.Get(0).(domain.User), args.Error(1)
}

func (m *MockUserRepository) UpdateRole(ctx context.Context, email, role string) error {
	args := m.Called(ctx, email, role)
	return args.Error(0)
}

type MockNotificationRepository struct {
	mock.Mock
}

func (m *MockNotificationRepository) SendEmail(ctx context.Context, toEmail, subject, message string) error {
	args := m.Called(ctx, toEmail, subject, message)
	return args.Error(0)
}

type MockPaymentsRepository struct {
	mock.Mock
}

func (m *MockPaymentsRepository) RecordServicePayment(ctx context.Context, payment domain.Payment) (domain.PaymentReceipt, error) {
	args := m.Called(ctx, payment)
	return args.Get(0).(domain.PaymentReceipt), args.Error(1)
}

func (m *MockPaymentsRepository) AddFunds(ctx context.Context, payment domain.Payment) (domain.User, error) {
	args := m.Called(ctx, payment)
	return args.Get(0).(domain.User), args.Error(1)
}

type MockPreviewRepository struct {
	mock.Mock
}

func (m *MockPreviewRepository) Save(ctx context.Context, preview domain.PaymentPreview, ttl time.Duration) error {
	args := m.Called(ctx, preview, ttl)
	return args.Error(0)
}

func (m *MockPreviewRepository) Take(ctx context.Context, confirmationID string) (domain.PaymentPreview, error) {
	args := m.Called(ctx, confirmationID)
	return args.Get(0).(domain.PaymentPreview), args.Error(1)
}

type MockPaymentPaginator struct {
	mock.Mock
}

func (m *MockPaymentPaginator) Page(ctx context.Context, q pagination.Query, page int, cursor string) (pagination.Page[domain.Payment], error) {
	args := m.Called(ctx, q, page, cursor)
	return args.Get(0).(pagination.Page[domain.Payment]), args.Error(1)
}

func (m *MockPaymentPaginator) Invalidate(ctx context.Context, q pagination.Query) {
	m.Called(ctx, q)
}

type MockUserPaginator struct {
	mock.Mock
}

func (m *MockUserPaginator) Page(ctx context.Context, q pagination.Query, page int, cursor string) (pagination.Page[domain.User], error) {
	args := m.Called(ctx, q, page, cursor)
	return args.Get(0).(pagination.Page[domain.User]), args.Error(1)
}

func (m *MockUserPaginator) Invalidate(ctx context.Context, q pagination.Query) {
	m.Called(ctx, q)
}
