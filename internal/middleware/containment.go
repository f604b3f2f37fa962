package middleware

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"

	apperrors "usermanagement/internal/errors"
	"usermanagement/internal/logger"
	"usermanagement/internal/metrics"
)

const (
	faultError = "error"
	faultPanic = "panic"
)

// ErrorContainment is the outermost stage. Any error or panic escaping the
// inner chain becomes a single JSON 500 response. Errors raised by echo
// itself (unknown route, method not allowed) keep their status code.
// It always returns nil so echo's own error handler never writes twice.
func ErrorContainment(log *logger.Logger) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) (err error) {
			defer func() {
				r := recover()
				if r == nil {
					return
				}
				if r == http.ErrAbortHandler {
					panic(r)
				}
				fault, ok := r.(error)
				if !ok {
					fault = fmt.Errorf("%v", r)
				}
				err = contain(c, log, fault, faultPanic)
			}()

			if nextErr := next(c); nextErr != nil {
				return contain(c, log, nextErr, faultError)
			}
			return nil
		}
	}
}

func contain(c echo.Context, log *logger.Logger, err error, kind string) error {
	var he *echo.HTTPError
	if kind == faultError && errors.As(err, &he) && he.Code < http.StatusInternalServerError {
		log.Debug().Err(err).Int("status", he.Code).Str("path", c.Request().URL.Path).Msg("request rejected by router")
		writeJSONError(c, log, he.Code, httpErrorMessage(he))
		return nil
	}

	metrics.UnhandledErrorsTotal.WithLabelValues(kind).Inc()
	log.Error().
		Err(err).
		Str("kind", kind).
		Str("method", c.Request().Method).
		Str("path", c.Request().URL.Path).
		Msg("unhandled exception occurred")

	writeJSONError(c, log, http.StatusInternalServerError, apperrors.InternalServerErrorMessage)
	return nil
}

// writeJSONError cannot replace output that already reached the transport;
// in that case the fault is only logged.
func writeJSONError(c echo.Context, log *logger.Logger, code int, message string) {
	if c.Response().Committed {
		log.Warn().Int("status", code).Msg("response already committed, error body not written")
		return
	}
	if err := c.JSON(code, apperrors.ErrorResponse{Error: message}); err != nil {
		log.Error().Err(err).Msg("write error response")
	}
}

func httpErrorMessage(he *echo.HTTPError) string {
	if msg, ok := he.Message.(string); ok {
		return msg
	}
	return http.StatusText(he.Code)
}
