package test

import (
	"context"
	"errors"

	pkgAuth "github.com/polkiloo/orderdesk/internal/pkg/auth"
)

// HasherStub provides deterministic hashing for tests.
type HasherStub struct {
	HashFn    func(string) (string, error)
	CompareFn func(string, string) error
}

// Hash returns a predictable hash for the supplied password.
func (h HasherStub) Hash(password string) (string, error) {
	if h.HashFn != nil {
		return h.HashFn(password)
	}
	return "hash:" + password, nil
}

// Compare validates password against stored hash.
func (h HasherStub) Compare(hash string, password string) error {
	if h.CompareFn != nil {
		return h.CompareFn(hash, password)
	}
	if hash != "hash:"+password {
		return errors.New("mismatch")
	}
	return nil
}

// StrategyStub issues and parses tokens via function overrides.
type StrategyStub struct {
	IssueFn func(string) (string, error)
	ParseFn func(string) (string, error)
	NameVal string
}

// IssueToken returns deterministic tokens for tests.
func (s StrategyStub) IssueToken(subject string) (string, error) {
	if s.IssueFn != nil {
		return s.IssueFn(subject)
	}
	return "token:" + subject, nil
}

// ParseToken parses previously issued token strings.
func (s StrategyStub) ParseToken(token string) (string, error) {
	if s.ParseFn != nil {
		return s.ParseFn(token)
	}
	if len(token) > len("token:") && token[:len("token:")] == "token:" {
		return token[len("token:"):], nil
	}
	return "", pkgAuth.ErrInvalidToken
}

// Name returns the strategy identifier used in tests.
func (s StrategyStub) Name() string {
	if s.NameVal != "" {
		return s.NameVal
	}
	return "stub"
}

// TokenAuthorizerStub implements middleware token checking contract.
type TokenAuthorizerStub struct {
	Subject     string
	Err         error
	AuthorizeFn func(string) (string, error)
}

// Authorize either delegates to override or returns predefined result.
func (s TokenAuthorizerStub) Authorize(token string) (string, error) {
	if s.AuthorizeFn != nil {
		return s.AuthorizeFn(token)
	}
	if s.Err != nil {
		return "", s.Err
	}
	return s.Subject, nil
}

// OwnerFacadeStub simulates owner authentication facade interactions.
type OwnerFacadeStub struct {
	LoginFn     func(context.Context, string) (string, error)
	AuthorizeFn func(string) (string, error)
	IsOwnerFn   func(string) bool
}

// Login returns token for successful login scenarios.
func (s OwnerFacadeStub) Login(ctx context.Context, password string) (string, error) {
	if s.LoginFn != nil {
		return s.LoginFn(ctx, password)
	}
	return "token", nil
}

// Authorize returns the owner id for any token by default.
func (s OwnerFacadeStub) Authorize(token string) (string, error) {
	if s.AuthorizeFn != nil {
		return s.AuthorizeFn(token)
	}
	return OwnerID, nil
}

// IsOwner compares against OwnerID by default.
func (s OwnerFacadeStub) IsOwner(userID string) bool {
	if s.IsOwnerFn != nil {
		return s.IsOwnerFn(userID)
	}
	return userID == OwnerID
}

var _ pkgAuth.PasswordHasher = HasherStub{}
var _ pkgAuth.Strategy = StrategyStub{}
