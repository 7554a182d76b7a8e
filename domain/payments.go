package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

const (
	PaymentTypeAddFunds       = "add_funds"
	PaymentTypeServicePayment = "service_payment"

	PaymentMethodCash         = "cash"
	PaymentMethodPayWithFunds = "paywithfunds"
)

var ValidPaymentMethods = map[string]bool{
	PaymentMethodCash:         true,
	PaymentMethodPayWithFunds: true,
}

// ReferralBonusDivisor: a referrer earns amount/10 points per payment of a referee.
var ReferralBonusDivisor = decimal.NewFromInt(10)

type (
	// Payment is written once and never updated.
	Payment struct {
		ID            string          `gorm:"primaryKey;column:id;type:uuid" json:"id"`
		Email         string          `gorm:"column:email;not null;index:idx_payments_email_created,priority:1" json:"email"`
		Amount        decimal.Decimal `gorm:"column:amount;type:numeric(14,2);not null" json:"amount"`
		Type          string          `gorm:"column:type;not null" json:"type"`
		Service       string          `gorm:"column:service" json:"service,omitempty"`
		PaymentMethod string          `gorm:"column:payment_method;not null" json:"payment_method"`
		CreatedAt     time.Time       `gorm:"column:created_at;index:idx_payments_email_created,priority:2" json:"created_at"`
	}

	// PaymentPreview is what staff confirm before a service payment is written.
	PaymentPreview struct {
		ConfirmationID string          `json:"confirmation_id"`
		Email          string          `json:"email"`
		Amount         decimal.Decimal `json:"amount"`
		Service        string          `json:"service"`
		PaymentMethod  string          `json:"payment_method"`
		ReferredBy     string          `json:"referred_by,omitempty"`
		FundsAfter     decimal.Decimal `json:"funds_after"`
		PointsAfter    decimal.Decimal `json:"points_after"`
		ExpiresAt      time.Time       `json:"expires_at"`
	}

	// PaymentReceipt describes the effects of a recorded payment.
	PaymentReceipt struct {
		Payment          Payment         `json:"payment"`
		FundsDebited     decimal.Decimal `json:"funds_debited"`
		PointsCredited   decimal.Decimal `json:"points_credited"`
		ReferralBonus    decimal.Decimal `json:"referral_bonus"`
		ReferrerCredited bool            `json:"referrer_credited"`
	}
)

func (Payment) TableName() string {
	return "payments"
}

func (p Payment) Cursor() Cursor {
	return Cursor{SortValue: p.CreatedAt, ID: p.ID}
}
