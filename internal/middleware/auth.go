package middleware

import (
	"net/http"
	"strings"

	echojwt "github.com/labstack/echo-jwt/v4"
	"github.com/labstack/echo/v4"

	"usermanagement/internal/auth"
	"usermanagement/internal/logger"
	"usermanagement/internal/metrics"
)

// ClaimsContextKey is where the auth stage stores verified claims.
const ClaimsContextKey = "user"

const bearerPrefix = "Bearer "

// Auth rejects requests whose Authorization header does not verify,
// answering 401 text/plain without calling the next stage.
func Auth(verifier auth.Verifier) echo.MiddlewareFunc {
	return echojwt.WithConfig(echojwt.Config{
		ContextKey:  ClaimsContextKey,
		TokenLookup: "header:" + echo.HeaderAuthorization,
		ParseTokenFunc: func(c echo.Context, raw string) (interface{}, error) {
			token := strings.TrimSpace(strings.TrimPrefix(raw, bearerPrefix))
			if token == "" {
				return nil, auth.ErrInvalidToken
			}
			return verifier.Verify(c.Request().Context(), token)
		},
		ErrorHandler: func(c echo.Context, err error) error {
			metrics.AuthRejectedTotal.Inc()
			logger.FromContext(c.Request().Context()).Warn().Err(err).Msg("unauthorized request")
			return c.String(http.StatusUnauthorized, "Unauthorized")
		},
	})
}

// ClaimsFromContext returns the claims stored by Auth.
func ClaimsFromContext(c echo.Context) (*auth.Claims, bool) {
	claims, ok := c.Get(ClaimsContextKey).(*auth.Claims)
	return claims, ok && claims != nil
}
