package auth

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStaticAuthority(t *testing.T) {
	a := NewStaticAuthority("valid-token")
	ctx := context.Background()

	token, err := a.Issue(ctx, "alice")
	require.NoError(t, err)
	assert.Equal(t, "valid-token", token.Value)
	assert.True(t, token.ExpiresAt.IsZero())

	claims, err := a.Verify(ctx, "valid-token")
	require.NoError(t, err)
	assert.Equal(t, StaticSubject, claims.Name)

	for _, raw := range []string{"", "valid-token ", "valid", "VALID-TOKEN"} {
		_, err := a.Verify(ctx, raw)
		assert.ErrorIs(t, err, ErrInvalidToken, "raw=%q", raw)
	}

	assert.ErrorIs(t, a.Revoke(ctx, claims), ErrRevocationUnsupported)
}
