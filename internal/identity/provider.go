package identity

import (
	"context"
	"errors"
	"myWellnessCentre/domain"
	redisRepo "myWellnessCentre/internal/repository/redis"
	"myWellnessCentre/pkg/logger"
	"myWellnessCentre/pkg/utils"
	"sync"
	"time"
)

type CredentialRepository interface {
	Create(ctx context.Context, cred *domain.Credential) error
	FindByEmail(ctx context.Context, email string) (domain.Credential, error)
	Delete(ctx context.Context, email string) error
}

type TokenRepository interface {
	StoreToken(ctx context.Context, token string, data redisRepo.TokenData, ttl time.Duration) error
	ValidateToken(ctx context.Context, token string) (*redisRepo.TokenData, error)
	RevokeToken(ctx context.Context, token string) (bool, error)
}

// Provider owns credentials and sign-in tokens. Callers only see e-mails and tokens;
// password hashes never leave this package.
type Provider struct {
	credentials CredentialRepository
	tokens      TokenRepository
	secret      string
	ttl         time.Duration

	mu          sync.RWMutex
	subscribers map[int]func(domain.SessionChange)
	nextID      int
}

func NewProvider(credentials CredentialRepository, tokens TokenRepository, secret string, ttl time.Duration) *Provider {
	return &Provider{
		credentials: credentials,
		tokens:      tokens,
		secret:      secret,
		ttl:         ttl,
		subscribers: make(map[int]func(domain.SessionChange)),
	}
}

func (p *Provider) CreateCredential(ctx context.Context, email, password string) error {
	passwordHash, err := utils.HashPassword(password)
	if err != nil {
		logger.Error("Failed to hash password", err)
		return errors.New("failed to hash password")
	}

	return p.credentials.Create(ctx, &domain.Credential{
		Email:        email,
		PasswordHash: string(passwordHash),
	})
}

func (p *Provider) DeleteCredential(ctx context.Context, email string) error {
	return p.credentials.Delete(ctx, email)
}

// VerifyCredential checks the password and signs the user in.
func (p *Provider) VerifyCredential(ctx context.Context, email, password string) (string, time.Time, error) {
	cred, err := p.credentials.FindByEmail(ctx, email)
	if err != nil {
		return "", time.Time{}, err
	}

	if !utils.CheckPassword(password, cred.PasswordHash) {
		return "", time.Time{}, domain.ErrInvalidCredentials
	}

	token, expAt, err := utils.GenerateJWT(p.secret, email, p.ttl)
	if err != nil {
		logger.Error("Failed to generate token", err)
		return "", time.Time{}, errors.New("failed to generate token")
	}

	now := time.Now()
	err = p.tokens.StoreToken(ctx, token, redisRepo.TokenData{
		Email:     email,
		IssuedAt:  now,
		ExpiresAt: expAt,
	}, p.ttl)
	if err != nil {
		return "", time.Time{}, err
	}

	p.notify(domain.SessionChange{Email: email, SignedIn: true, At: now})

	return token, expAt, nil
}

// ValidateToken returns the e-mail of a signed-in token. The JWT must verify and the
// token must still be registered, so signed-out tokens fail before they expire.
func (p *Provider) ValidateToken(ctx context.Context, token string) (string, time.Time, error) {
	claims, err := utils.ParseJWT(p.secret, token)
	if err != nil {
		return "", time.Time{}, domain.ErrUnauthorized
	}

	data, err := p.tokens.ValidateToken(ctx, token)
	if err != nil {
		return "", time.Time{}, err
	}

	if data.Email != claims.Email {
		logger.Warn("Token owner mismatch", "claims_email", claims.Email)
		return "", time.Time{}, domain.ErrUnauthorized
	}

	return claims.Email, claims.ExpiresAt.Time, nil
}

// SignOut revokes the token. Signing out an unknown token is a no-op.
func (p *Provider) SignOut(ctx context.Context, token string) error {
	data, err := p.tokens.ValidateToken(ctx, token)
	if err != nil {
		if errors.Is(err, domain.ErrUnauthorized) {
			return nil
		}
		return err
	}

	revoked, err := p.tokens.RevokeToken(ctx, token)
	if err != nil {
		return err
	}

	if revoked {
		p.notify(domain.SessionChange{Email: data.Email, SignedIn: false, At: time.Now()})
	}

	return nil
}

// Subscribe registers fn for sign-in and sign-out events and returns the function
// that removes it.
func (p *Provider) Subscribe(fn func(domain.SessionChange)) func() {
	p.mu.Lock()
	id := p.nextID
	p.nextID++
	p.subscribers[id] = fn
	p.mu.Unlock()

	return func() {
		p.mu.Lock()
		delete(p.subscribers, id)
		p.mu.Unlock()
	}
}

func (p *Provider) notify(change domain.SessionChange) {
	p.mu.RLock()
	listeners := make([]func(domain.SessionChange), 0, len(p.subscribers))
	for _, fn := range p.subscribers {
		listeners = append(listeners, fn)
	}
	p.mu.RUnlock()

	for _, fn := range listeners {
		fn(change)
	}
}
