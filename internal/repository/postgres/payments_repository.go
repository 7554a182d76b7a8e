package postgres

import (
	"context"
	"errors"
	"myWellnessCentre/domain"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type PaymentsRepository struct {
	DB *gorm.DB
}

func NewPaymentsRepository(db *gorm.DB) *PaymentsRepository {
	return &PaymentsRepository{
		DB: db,
	}
}

// RecordServicePayment debits the payer (pay-with-funds only), inserts the payment and
// credits the referrer's bonus in one transaction.
func (r *PaymentsRepository) RecordServicePayment(ctx context.Context, payment domain.Payment) (domain.PaymentReceipt, error) {
	receipt := domain.PaymentReceipt{
		FundsDebited:   decimal.Zero,
		PointsCredited: decimal.Zero,
		ReferralBonus:  decimal.Zero,
	}

	err := r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		payer, err := lockUser(tx, payment.Email)
		if err != nil {
			return err
		}

		if payment.PaymentMethod == domain.PaymentMethodPayWithFunds {
			result := tx.Model(&domain.User{}).
				Where("email = ? AND funds >= ?", payment.Email, payment.Amount).
				Updates(map[string]interface{}{
					"funds":      gorm.Expr("funds - ?", payment.Amount),
					"points":     gorm.Expr("points + ?", payment.Amount),
					"updated_at": time.Now(),
				})
			if result.Error != nil {
				return result.Error
			}
			if result.RowsAffected == 0 {
				return domain.ErrInsufficientFunds
			}

			receipt.FundsDebited = payment.Amount
			receipt.PointsCredited = payment.Amount
		}

		if err := tx.Create(&payment).Error; err != nil {
			return err
		}

		if payer.ReferredBy == "" {
			return nil
		}

		bonus := payment.Amount.Div(domain.ReferralBonusDivisor).Round(2)
		result := tx.Model(&domain.User{}).
			Where("referral_code = ?", payer.ReferredBy).
			Updates(map[string]interface{}{
				"points":     gorm.Expr("points + ?", bonus),
				"updated_at": time.Now(),
			})
		if result.Error != nil {
			return result.Error
		}

		// unknown referral codes are ignored
		if result.RowsAffected > 0 {
			receipt.ReferralBonus = bonus
			receipt.ReferrerCredited = true
		}

		return nil
	})
	if err != nil {
		return domain.PaymentReceipt{}, err
	}

	receipt.Payment = payment
	return receipt, nil
}

// AddFunds credits the user's funds and writes the matching add_funds record.
func (r *PaymentsRepository) AddFunds(ctx context.Context, payment domain.Payment) (domain.User, error) {
	var user domain.User

	err := r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		result := tx.Model(&domain.User{}).
			Where("email = ?", payment.Email).
			Updates(map[string]interface{}{
				"funds":      gorm.Expr("funds + ?", payment.Amount),
				"updated_at": time.Now(),
			})
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return domain.ErrUserNotFound
		}

		if err := tx.Create(&payment).Error; err != nil {
			return err
		}

		return tx.Where("email = ?", payment.Email).First(&user).Error
	})
	if err != nil {
		return domain.User{}, err
	}

	return user, nil
}

func lockUser(tx *gorm.DB, email string) (domain.User, error) {
	var user domain.User

	err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("email = ?", email).
		First(&user).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.User{}, domain.ErrUserNotFound
		}
		return domain.User{}, err
	}

	return user, nil
}
