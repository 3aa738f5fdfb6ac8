package usecase

import (
	"context"

	"github.com/polkiloo/orderdesk/internal/config"
	domainErrors "github.com/polkiloo/orderdesk/internal/domain/errors"
	pkgAuth "github.com/polkiloo/orderdesk/internal/pkg/auth"
)

// OwnerAuthUseCase decides who may manage orders.
type OwnerAuthUseCase struct {
	ownerID      string
	passwordHash string
	hasher       pkgAuth.PasswordHasher
	tokens       pkgAuth.Strategy
}

// NewOwnerAuthUseCase constructs OwnerAuthUseCase from configuration.
func NewOwnerAuthUseCase(cfg *config.Config, hasher pkgAuth.PasswordHasher, strategy pkgAuth.Strategy) *OwnerAuthUseCase {
	return &OwnerAuthUseCase{
		ownerID:      cfg.OwnerID,
		passwordHash: cfg.OwnerPasswordHash,
		hasher:       hasher,
		tokens:       strategy,
	}
}

// Login checks the owner password and issues a bearer token.
func (u *OwnerAuthUseCase) Login(_ context.Context, password string) (string, error) {
	if password == "" {
		return "", domainErrors.ErrInvalidCredentials
	}
	if err := u.hasher.Compare(u.passwordHash, password); err != nil {
		return "", domainErrors.ErrInvalidCredentials
	}
	return u.tokens.IssueToken(u.ownerID)
}

// Authorize validates a bearer token and confirms it belongs to the owner.
func (u *OwnerAuthUseCase) Authorize(token string) (string, error) {
	if token == "" {
		return "", pkgAuth.ErrInvalidToken
	}
	subject, err := u.tokens.ParseToken(token)
	if err != nil || !u.IsOwner(subject) {
		return "", pkgAuth.ErrInvalidToken
	}
	return subject, nil
}

// IsOwner reports whether the chat user id belongs to the owner.
func (u *OwnerAuthUseCase) IsOwner(userID string) bool {
	return userID != "" && userID == u.ownerID
}
