package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"usermanagement/internal/auth"
	apperrors "usermanagement/internal/errors"
)

// ErrLogoutUnsupported is returned when the configured authority cannot revoke tokens.
var ErrLogoutUnsupported = errors.New("logout is not supported by the configured authentication mode")

// AuthService handles authentication operations.
type AuthService interface {
	Login(ctx context.Context, username, password string) (*auth.Token, error)
	Logout(ctx context.Context, claims *auth.Claims) error
}

type authService struct {
	authority auth.Authority
}

// NewAuthService creates a new authentication service.
func NewAuthService(authority auth.Authority) AuthService {
	return &authService{authority: authority}
}

// Login accepts any non-blank username/password pair and issues a token.
// Checking the password against a user directory is outside this service.
func (s *authService) Login(ctx context.Context, username, password string) (*auth.Token, error) {
	if strings.TrimSpace(username) == "" || strings.TrimSpace(password) == "" {
		return nil, apperrors.ErrCredentialsRequired
	}

	token, err := s.authority.Issue(ctx, username)
	if err != nil {
		return nil, fmt.Errorf("issue token: %w", err)
	}
	return token, nil
}

// Logout revokes the presented credential.
func (s *authService) Logout(ctx context.Context, claims *auth.Claims) error {
	err := s.authority.Revoke(ctx, claims)
	if errors.Is(err, auth.ErrRevocationUnsupported) {
		return ErrLogoutUnsupported
	}
	if err != nil {
		return fmt.Errorf("revoke token: %w", err)
	}
	return nil
}
