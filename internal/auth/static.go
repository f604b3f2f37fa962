package auth

import (
	"context"
	"crypto/subtle"
)

// StaticSubject is the claims name attached to shared-secret callers.
const StaticSubject = "static"

// StaticAuthority accepts exactly one shared secret.
type StaticAuthority struct {
	secret []byte
}

var _ Authority = (*StaticAuthority)(nil)

// NewStaticAuthority creates an authority for the given shared secret.
func NewStaticAuthority(secret string) *StaticAuthority {
	return &StaticAuthority{secret: []byte(secret)}
}

// Issue hands out the shared secret; it never expires.
func (a *StaticAuthority) Issue(_ context.Context, _ string) (*Token, error) {
	return &Token{Value: string(a.secret)}, nil
}

// Verify compares in constant time.
func (a *StaticAuthority) Verify(_ context.Context, raw string) (*Claims, error) {
	if raw == "" || subtle.ConstantTimeCompare([]byte(raw), a.secret) != 1 {
		return nil, ErrInvalidToken
	}
	return &Claims{Name: StaticSubject}, nil
}

// Revoke always fails: the shared secret is the only credential.
func (a *StaticAuthority) Revoke(_ context.Context, _ *Claims) error {
	return ErrRevocationUnsupported
}
