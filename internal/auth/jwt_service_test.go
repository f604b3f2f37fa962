package auth

import (
	"context"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// MockTokenStore is a mock implementation of TokenStoreInterface.
type MockTokenStore struct {
	mock.Mock
}

func (m *MockTokenStore) Revoke(ctx context.Context, tokenID string, ttl time.Duration) error {
	args := m.Called(ctx, tokenID, ttl)
	return args.Error(0)
}

func (m *MockTokenStore) IsRevoked(ctx context.Context, tokenID string) (bool, error) {
	args := m.Called(ctx, tokenID)
	return args.Bool(0), args.Error(1)
}

func newTestAuthority(store TokenStoreInterface) *JWTAuthority {
	return NewJWTAuthority("test-secret", "UserManagementAPI", "UserManagementAPIUsers", time.Hour, store)
}

func TestJWTAuthority_IssueAndVerify(t *testing.T) {
	a := newTestAuthority(nil)

	token, err := a.Issue(context.Background(), "alice")
	require.NoError(t, err)
	assert.NotEmpty(t, token.Value)
	assert.WithinDuration(t, time.Now().Add(time.Hour), token.ExpiresAt, 5*time.Second)

	claims, err := a.Verify(context.Background(), token.Value)
	require.NoError(t, err)
	assert.Equal(t, "alice", claims.Name)
	assert.Equal(t, "UserManagementAPI", claims.Issuer)
	assert.NotEmpty(t, claims.ID)
}

func TestJWTAuthority_Verify_Rejects(t *testing.T) {
	good := newTestAuthority(nil)

	otherSecret := NewJWTAuthority("other-secret", "UserManagementAPI", "UserManagementAPIUsers", time.Hour, nil)
	otherIssuer := NewJWTAuthority("test-secret", "SomeoneElse", "UserManagementAPIUsers", time.Hour, nil)
	otherAudience := NewJWTAuthority("test-secret", "UserManagementAPI", "SomeoneElse", time.Hour, nil)
	expired := newTestAuthority(nil)
	expired.now = func() time.Time { return time.Now().Add(-2 * time.Hour) }

	tests := []struct {
		name   string
		issuer *JWTAuthority
	}{
		{"wrong signature", otherSecret},
		{"wrong issuer", otherIssuer},
		{"wrong audience", otherAudience},
		{"expired", expired},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			token, err := tt.issuer.Issue(context.Background(), "alice")
			require.NoError(t, err)

			_, err = good.Verify(context.Background(), token.Value)
			assert.ErrorIs(t, err, ErrInvalidToken)
		})
	}
}

func TestJWTAuthority_Verify_Garbage(t *testing.T) {
	_, err := newTestAuthority(nil).Verify(context.Background(), "not-a-jwt")
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestJWTAuthority_Verify_RejectsNoneAlgorithm(t *testing.T) {
	claims := &Claims{
		Name: "mallory",
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    "UserManagementAPI",
			Audience:  jwt.ClaimStrings{"UserManagementAPIUsers"},
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
	}
	raw, err := jwt.NewWithClaims(jwt.SigningMethodNone, claims).SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)

	_, err = newTestAuthority(nil).Verify(context.Background(), raw)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestJWTAuthority_Verify_Revoked(t *testing.T) {
	store := new(MockTokenStore)
	a := newTestAuthority(store)

	token, err := a.Issue(context.Background(), "alice")
	require.NoError(t, err)

	store.On("IsRevoked", mock.Anything, mock.AnythingOfType("string")).Return(true, nil).Once()

	_, err = a.Verify(context.Background(), token.Value)
	assert.ErrorIs(t, err, ErrTokenRevoked)
	store.AssertExpectations(t)
}

func TestJWTAuthority_Revoke(t *testing.T) {
	store := new(MockTokenStore)
	a := newTestAuthority(store)

	token, err := a.Issue(context.Background(), "alice")
	require.NoError(t, err)

	store.On("IsRevoked", mock.Anything, mock.AnythingOfType("string")).Return(false, nil).Once()
	claims, err := a.Verify(context.Background(), token.Value)
	require.NoError(t, err)

	store.On("Revoke", mock.Anything, claims.ID, mock.MatchedBy(func(ttl time.Duration) bool {
		return ttl > 59*time.Minute && ttl <= time.Hour
	})).Return(nil).Once()

	require.NoError(t, a.Revoke(context.Background(), claims))
	store.AssertExpectations(t)
}

func TestJWTAuthority_Revoke_WithoutStore(t *testing.T) {
	err := newTestAuthority(nil).Revoke(context.Background(), &Claims{})
	assert.ErrorIs(t, err, ErrRevocationUnsupported)
}

func TestJWTAuthority_DefaultTTL(t *testing.T) {
	a := NewJWTAuthority("s", "i", "a", 0, nil)
	assert.Equal(t, DefaultTokenTTL, a.ttl)
}
