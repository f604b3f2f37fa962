package auth

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"usermanagement/internal/cache"
	"usermanagement/internal/logger"
)

func TestTokenStore_LocalFallback(t *testing.T) {
	s := NewTokenStore(nil)
	ctx := context.Background()

	now := time.Now()
	s.now = func() time.Time { return now }

	revoked, err := s.IsRevoked(ctx, "jti-1")
	require.NoError(t, err)
	assert.False(t, revoked)

	require.NoError(t, s.Revoke(ctx, "jti-1", time.Minute))

	revoked, err = s.IsRevoked(ctx, "jti-1")
	require.NoError(t, err)
	assert.True(t, revoked)

	now = now.Add(2 * time.Minute)
	revoked, err = s.IsRevoked(ctx, "jti-1")
	require.NoError(t, err)
	assert.False(t, revoked)
}

func TestTokenStore_SweepDropsExpired(t *testing.T) {
	s := NewTokenStore(nil)
	ctx := context.Background()

	now := time.Now()
	s.now = func() time.Time { return now }

	require.NoError(t, s.Revoke(ctx, "old", time.Second))
	now = now.Add(time.Minute)
	require.NoError(t, s.Revoke(ctx, "new", time.Minute))

	assert.NotContains(t, s.local, "old")
	assert.Contains(t, s.local, "new")
}

func newRedisTokenStore(t *testing.T) (*TokenStore, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := cache.New(mr.Addr(), "", 0, logger.Nop())
	t.Cleanup(func() { _ = client.Close() })
	return NewTokenStore(client), mr
}

func TestTokenStore_Redis(t *testing.T) {
	s, mr := newRedisTokenStore(t)
	ctx := context.Background()

	revoked, err := s.IsRevoked(ctx, "jti-1")
	require.NoError(t, err)
	assert.False(t, revoked)

	require.NoError(t, s.Revoke(ctx, "jti-1", time.Minute))
	assert.True(t, mr.Exists(revokedTokenKeyPrefix+"jti-1"))
	assert.Empty(t, s.local)

	revoked, err = s.IsRevoked(ctx, "jti-1")
	require.NoError(t, err)
	assert.True(t, revoked)

	mr.FastForward(2 * time.Minute)
	revoked, err = s.IsRevoked(ctx, "jti-1")
	require.NoError(t, err)
	assert.False(t, revoked)
}

func TestTokenStore_RedisDownFailsClosed(t *testing.T) {
	s, mr := newRedisTokenStore(t)
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	require.NoError(t, s.Revoke(ctx, "jti-1", time.Minute))
	mr.Close()

	_, err := s.IsRevoked(ctx, "jti-1")
	assert.Error(t, err)
	assert.Error(t, s.Revoke(ctx, "jti-2", time.Minute))
}

func TestJWTAuthority_LoggedOutTokenStaysRejectedWhileRedisDown(t *testing.T) {
	s, mr := newRedisTokenStore(t)
	a := newTestAuthority(s)
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	token, err := a.Issue(ctx, "alice")
	require.NoError(t, err)
	claims, err := a.Verify(ctx, token.Value)
	require.NoError(t, err)
	require.NoError(t, a.Revoke(ctx, claims))

	mr.Close()

	_, err = a.Verify(ctx, token.Value)
	assert.ErrorContains(t, err, "check revocation")
}
