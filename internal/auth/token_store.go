package auth

import (
	"context"
	"sync"
	"time"

	"usermanagement/internal/cache"
)

const revokedTokenKeyPrefix = "revoked:access_token:"

// TokenStoreInterface defines the interface for token revocation storage.
type TokenStoreInterface interface {
	Revoke(ctx context.Context, tokenID string, ttl time.Duration) error
	IsRevoked(ctx context.Context, tokenID string) (bool, error)
}

// TokenStore keeps revoked token ids in Redis. Without Redis it falls back
// to a process-local map, which is enough for a single instance.
type TokenStore struct {
	cache *cache.Client

	mu    sync.Mutex
	local map[string]time.Time
	now   func() time.Time
}

// Ensure TokenStore implements TokenStoreInterface
var _ TokenStoreInterface = (*TokenStore)(nil)

// NewTokenStore creates a new token store.
func NewTokenStore(cache *cache.Client) *TokenStore {
	return &TokenStore{
		cache: cache,
		local: make(map[string]time.Time),
		now:   time.Now,
	}
}

// Revoke marks tokenID as revoked for ttl.
func (s *TokenStore) Revoke(ctx context.Context, tokenID string, ttl time.Duration) error {
	if s.cache.Enabled() {
		return s.cache.Put(ctx, revokedTokenKeyPrefix+tokenID, []byte("1"), ttl)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.local[tokenID] = s.now().Add(ttl)
	s.sweep()
	return nil
}

// IsRevoked checks whether tokenID was revoked and has not aged out.
// A Redis failure is returned as an error so the token is rejected.
func (s *TokenStore) IsRevoked(ctx context.Context, tokenID string) (bool, error) {
	if s.cache.Enabled() {
		return s.cache.Exists(ctx, revokedTokenKeyPrefix+tokenID)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	until, ok := s.local[tokenID]
	return ok && s.now().Before(until), nil
}

// sweep drops expired entries; mu must be held.
func (s *TokenStore) sweep() {
	now := s.now()
	for id, until := range s.local {
		if !now.Before(until) {
			delete(s.local, id)
		}
	}
}
