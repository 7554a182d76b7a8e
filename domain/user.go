package domain

import (
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

const (
	RoleUser    = "user"
	RoleMember  = "member"
	RoleManager = "manager"
	RoleAdmin   = "admin"
)

var ValidRoles = map[string]bool{
	RoleUser:    true,
	RoleMember:  true,
	RoleManager: true,
	RoleAdmin:   true,
}

// IsStaff reports whether role may record payments and browse other users.
func IsStaff(role string) bool {
	return role == RoleManager || role == RoleAdmin
}

// CREATE TABLE public.users (
//     email          TEXT PRIMARY KEY,
//     role           TEXT NOT NULL DEFAULT 'user',
//     referral_code  TEXT NOT NULL UNIQUE,
//     referred_by    TEXT,
//     points         NUMERIC(14,2) NOT NULL DEFAULT 0,
//     funds          NUMERIC(14,2) NOT NULL DEFAULT 0,
//     created_at     TIMESTAMPTZ,
//     updated_at     TIMESTAMPTZ
// );

type User struct {
	Email        string          `gorm:"primaryKey;column:email" json:"email"`
	Role         string          `gorm:"column:role;not null;default:user" json:"role"`
	ReferralCode string          `gorm:"column:referral_code;uniqueIndex;not null" json:"referral_code"`
	ReferredBy   string          `gorm:"column:referred_by;index:idx_users_referred_by_created,priority:1" json:"referred_by,omitempty"`
	Points       decimal.Decimal `gorm:"column:points;type:numeric(14,2);not null;default:0" json:"points"`
	Funds        decimal.Decimal `gorm:"column:funds;type:numeric(14,2);not null;default:0" json:"funds"`
	CreatedAt    time.Time       `gorm:"column:created_at;index:idx_users_referred_by_created,priority:2" json:"created_at"`
	UpdatedAt    time.Time       `gorm:"column:updated_at" json:"updated_at"`
}

func (User) TableName() string {
	return "users"
}

func (u User) Cursor() Cursor {
	return Cursor{SortValue: u.CreatedAt, ID: u.Email}
}

// ReferralLink is the sign-up link a user shares to earn referral points.
func ReferralLink(baseURL, referralCode string) string {
	return fmt.Sprintf("%s/login?mode=signup&referredBy=%s", strings.TrimRight(baseURL, "/"), url.QueryEscape(referralCode))
}
