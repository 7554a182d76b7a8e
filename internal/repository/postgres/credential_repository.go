package postgres

import (
	"context"
	"errors"
	"myWellnessCentre/domain"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type CredentialRepository struct {
	DB *gorm.DB
}

func NewCredentialRepository(db *gorm.DB) *CredentialRepository {
	return &CredentialRepository{
		DB: db,
	}
}

func (r *CredentialRepository) Create(ctx context.Context, cred *domain.Credential) error {
	result := r.DB.WithContext(ctx).
		Clauses(clause.OnConflict{DoNothing: true}).
		Create(cred)
	if result.Error != nil {
		return result.Error
	}

	if result.RowsAffected == 0 {
		return domain.ErrDuplicateAccount
	}

	return nil
}

func (r *CredentialRepository) FindByEmail(ctx context.Context, email string) (domain.Credential, error) {
	var cred domain.Credential

	err := r.DB.WithContext(ctx).Where("email = ?", email).First(&cred).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.Credential{}, domain.ErrInvalidCredentials
		}
		return domain.Credential{}, err
	}

	return cred, nil
}

func (r *CredentialRepository) Delete(ctx context.Context, email string) error {
	return r.DB.WithContext(ctx).Where("email = ?", email).Delete(&domain.Credential{}).Error
}
