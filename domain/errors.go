package domain

import "errors"

var (
	ErrUserNotFound       = errors.New("user not found")
	ErrInvalidEmail       = errors.New("invalid email format")
	ErrWeakPassword       = errors.New("password must be at least 6 characters")
	ErrDuplicateAccount   = errors.New("user already exists with this email")
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrUnauthorized       = errors.New("token expired or invalid")
	ErrInvalidRole        = errors.New("invalid role")
	ErrRoleUnchanged      = errors.New("the role is already the same")

	ErrInvalidAmount        = errors.New("amount must be greater than zero")
	ErrInvalidService       = errors.New("invalid service")
	ErrInvalidPaymentMethod = errors.New("invalid payment method")
	ErrInsufficientFunds    = errors.New("not enough funds for this payment")
	ErrPreviewNotFound      = errors.New("payment preview not found or expired")

	ErrNoRecords      = errors.New("no records found")
	ErrFetchFailed    = errors.New("fetch error")
	ErrPageOutOfRange = errors.New("page out of range")
	ErrInvalidPage    = errors.New("page must be a positive number")
	ErrInvalidCursor  = errors.New("invalid cursor")
	ErrUnknownField   = errors.New("unknown query field")
)
