// Package auth issues and verifies the bearer credentials consumed by the
// authentication stage. The stage only sees the Verifier contract, so a
// shared secret and signed tokens are interchangeable.
package auth

import (
	"context"
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v4"
)

var (
	// ErrInvalidToken covers every reason a credential is rejected.
	ErrInvalidToken = errors.New("invalid token")
	// ErrTokenRevoked is returned for a signed token that was logged out.
	ErrTokenRevoked = errors.New("token revoked")
	// ErrRevocationUnsupported is returned by authorities that cannot revoke.
	ErrRevocationUnsupported = errors.New("token revocation not supported")
)

// Claims represents JWT claims.
type Claims struct {
	Name string `json:"name"`
	jwt.RegisteredClaims
}

// Token is an issued bearer credential. ExpiresAt is zero for credentials
// that never expire.
type Token struct {
	Value     string
	ExpiresAt time.Time
}

// Issuer mints credentials for an authenticated subject.
type Issuer interface {
	Issue(ctx context.Context, subject string) (*Token, error)
}

// Verifier checks a raw credential and returns its claims.
type Verifier interface {
	Verify(ctx context.Context, raw string) (*Claims, error)
}

// Revoker invalidates a credential before it expires.
type Revoker interface {
	Revoke(ctx context.Context, claims *Claims) error
}

// Authority is the full token lifecycle used by the service.
type Authority interface {
	Issuer
	Verifier
	Revoker
}
