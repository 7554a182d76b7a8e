package domain

import "time"

type (
	// Session is the identity and profile attached to one authenticated request.
	Session struct {
		Token     string    `json:"-"`
		Email     string    `json:"email"`
		Profile   User      `json:"profile"`
		ExpiresAt time.Time `json:"expires_at"`
	}

	SessionChange struct {
		Email    string
		SignedIn bool
		At       time.Time
	}
)
