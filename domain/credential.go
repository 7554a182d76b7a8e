package domain

import "time"

// Credential belongs to the identity provider; profile code never reads it.
type Credential struct {
	Email        string    `gorm:"primaryKey;column:email"`
	PasswordHash string    `gorm:"column:password_hash;not null"`
	CreatedAt    time.Time `gorm:"column:created_at"`
}

func (Credential) TableName() string {
	return "credentials"
}
