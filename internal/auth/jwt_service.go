package auth

import (
	"context"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v4"
	"github.com/google/uuid"
)

// DefaultTokenTTL is the lifetime of issued access tokens.
const DefaultTokenTTL = time.Hour

// JWTAuthority issues HS256 tokens and verifies signature, expiry, issuer,
// audience and revocation.
type JWTAuthority struct {
	secret   []byte
	issuer   string
	audience string
	ttl      time.Duration
	store    TokenStoreInterface
	now      func() time.Time
}

var _ Authority = (*JWTAuthority)(nil)

// NewJWTAuthority creates a JWT authority. A nil store disables revocation checks.
func NewJWTAuthority(secret, issuer, audience string, ttl time.Duration, store TokenStoreInterface) *JWTAuthority {
	if ttl <= 0 {
		ttl = DefaultTokenTTL
	}
	return &JWTAuthority{
		secret:   []byte(secret),
		issuer:   issuer,
		audience: audience,
		ttl:      ttl,
		store:    store,
		now:      time.Now,
	}
}

// Issue generates a new access token for subject.
func (a *JWTAuthority) Issue(_ context.Context, subject string) (*Token, error) {
	now := a.now()
	expiresAt := now.Add(a.ttl)
	claims := &Claims{
		Name: subject,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        generateTokenID(),
			Subject:   subject,
			Issuer:    a.issuer,
			Audience:  jwt.ClaimStrings{a.audience},
			ExpiresAt: jwt.NewNumericDate(expiresAt),
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
		},
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(a.secret)
	if err != nil {
		return nil, fmt.Errorf("sign token: %w", err)
	}
	return &Token{Value: signed, ExpiresAt: expiresAt}, nil
}

// Verify validates a JWT token and returns the claims.
func (a *JWTAuthority) Verify(ctx context.Context, raw string) (*Claims, error) {
	parser := jwt.NewParser(jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	token, err := parser.ParseWithClaims(raw, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", token.Header["alg"])
		}
		return a.secret, nil
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return nil, ErrInvalidToken
	}
	if !claims.VerifyIssuer(a.issuer, true) {
		return nil, fmt.Errorf("%w: issuer mismatch", ErrInvalidToken)
	}
	if !claims.VerifyAudience(a.audience, true) {
		return nil, fmt.Errorf("%w: audience mismatch", ErrInvalidToken)
	}

	if a.store != nil && claims.ID != "" {
		revoked, err := a.store.IsRevoked(ctx, claims.ID)
		if err != nil {
			return nil, fmt.Errorf("check revocation: %w", err)
		}
		if revoked {
			return nil, ErrTokenRevoked
		}
	}
	return claims, nil
}

// Revoke blacklists the token id until the token would have expired anyway.
func (a *JWTAuthority) Revoke(ctx context.Context, claims *Claims) error {
	if a.store == nil {
		return ErrRevocationUnsupported
	}
	if claims == nil || claims.ID == "" {
		return ErrInvalidToken
	}
	ttl := a.ttl
	if claims.ExpiresAt != nil {
		ttl = claims.ExpiresAt.Time.Sub(a.now())
	}
	if ttl <= 0 {
		return nil
	}
	return a.store.Revoke(ctx, claims.ID, ttl)
}

// generateTokenID generates a unique token ID for the jti claim.
func generateTokenID() string {
	return uuid.New().String()
}
