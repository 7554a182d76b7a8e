package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"myWellnessCentre/domain"
	"time"

	"github.com/redis/go-redis/v9"
)

type TokenData struct {
	Email     string    `json:"email"`
	IssuedAt  time.Time `json:"issued_at"`
	ExpiresAt time.Time `json:"expires_at"`
}

type TokenRepository struct {
	client *redis.Client
}

func NewTokenRepository(client *redis.Client) *TokenRepository {
	return &TokenRepository{
		client: client,
	}
}

// StoreToken registers a signed-in token. Every token gets its own entry so one user may
// hold several sessions.
func (r *TokenRepository) StoreToken(ctx context.Context, token string, data TokenData, ttl time.Duration) error {
	jsonData, err := json.Marshal(data)
	if err != nil {
		return fmt.Errorf("failed to marshal token data: %w", err)
	}

	// key format: "token:lookup:{token}"
	if err := r.client.Set(ctx, tokenKey(token), jsonData, ttl).Err(); err != nil {
		return fmt.Errorf("failed to store token in Redis: %w", err)
	}

	return nil
}

// ValidateToken returns the data stored for a token that is still signed in.
func (r *TokenRepository) ValidateToken(ctx context.Context, token string) (*TokenData, error) {
	val, err := r.client.Get(ctx, tokenKey(token)).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, domain.ErrUnauthorized
		}
		return nil, fmt.Errorf("failed to validate token: %w", err)
	}

	var data TokenData
	if err := json.Unmarshal([]byte(val), &data); err != nil {
		return nil, fmt.Errorf("failed to unmarshal token data: %w", err)
	}

	return &data, nil
}

// RevokeToken removes the token; it reports whether the token was still signed in.
func (r *TokenRepository) RevokeToken(ctx context.Context, token string) (bool, error) {
	n, err := r.client.Del(ctx, tokenKey(token)).Result()
	if err != nil {
		return false, fmt.Errorf("failed to revoke token: %w", err)
	}

	return n > 0, nil
}

func tokenKey(token string) string {
	return fmt.Sprintf("token:lookup:%s", token)
}
