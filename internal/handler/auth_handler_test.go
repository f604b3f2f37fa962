package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"usermanagement/internal/auth"
	"usermanagement/internal/middleware"
	"usermanagement/internal/service"
)

func newAuthEcho(authority auth.Authority) *echo.Echo {
	e := echo.New()
	h := NewAuthHandler(service.NewAuthService(authority))
	e.POST("/login", h.Login)
	e.POST("/logout", h.Logout, middleware.Auth(authority))
	return e
}

func TestAuthHandler_Login(t *testing.T) {
	authority := auth.NewJWTAuthority("secret", "iss", "aud", time.Hour, nil)
	e := newAuthEcho(authority)

	tests := []struct {
		name           string
		build          func() *http.Request
		expectedStatus int
	}{
		{
			name: "query string",
			build: func() *http.Request {
				return httptest.NewRequest(http.MethodPost, "/login?username=alice&password=x", nil)
			},
			expectedStatus: http.StatusOK,
		},
		{
			name: "json body",
			build: func() *http.Request {
				req := httptest.NewRequest(http.MethodPost, "/login", strings.NewReader(`{"username":"alice","password":"x"}`))
				req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
				return req
			},
			expectedStatus: http.StatusOK,
		},
		{
			name: "form body",
			build: func() *http.Request {
				form := url.Values{"username": {"alice"}, "password": {"x"}}
				req := httptest.NewRequest(http.MethodPost, "/login", strings.NewReader(form.Encode()))
				req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationForm)
				return req
			},
			expectedStatus: http.StatusOK,
		},
		{
			name: "missing password",
			build: func() *http.Request {
				return httptest.NewRequest(http.MethodPost, "/login?username=alice", nil)
			},
			expectedStatus: http.StatusBadRequest,
		},
		{
			name: "nothing",
			build: func() *http.Request {
				return httptest.NewRequest(http.MethodPost, "/login", nil)
			},
			expectedStatus: http.StatusBadRequest,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			e.ServeHTTP(rec, tt.build())

			require.Equal(t, tt.expectedStatus, rec.Code)
			if tt.expectedStatus != http.StatusOK {
				assert.Equal(t, "Username and password required.", decodeError(t, rec).Error)
				return
			}

			var resp LoginResponse
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
			assert.NotEmpty(t, resp.Token)
			require.NotNil(t, resp.ExpiresAt)

			claims, err := authority.Verify(context.Background(), resp.Token)
			require.NoError(t, err)
			assert.Equal(t, "alice", claims.Name)
		})
	}
}

func TestAuthHandler_Logout(t *testing.T) {
	authority := auth.NewJWTAuthority("secret", "iss", "aud", time.Hour, auth.NewTokenStore(nil))
	e := newAuthEcho(authority)

	token, err := authority.Issue(context.Background(), "alice")
	require.NoError(t, err)

	logout := func() int {
		req := httptest.NewRequest(http.MethodPost, "/logout", nil)
		req.Header.Set(echo.HeaderAuthorization, "Bearer "+token.Value)
		rec := httptest.NewRecorder()
		e.ServeHTTP(rec, req)
		return rec.Code
	}

	assert.Equal(t, http.StatusNoContent, logout())
	assert.Equal(t, http.StatusUnauthorized, logout(), "revoked token must be rejected")
}

func TestAuthHandler_LogoutStaticUnsupported(t *testing.T) {
	e := newAuthEcho(auth.NewStaticAuthority("valid-token"))

	req := httptest.NewRequest(http.MethodPost, "/logout", nil)
	req.Header.Set(echo.HeaderAuthorization, "Bearer valid-token")
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusNotImplemented, rec.Code)
}
