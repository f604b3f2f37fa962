package middleware

import (
	"strconv"
	"time"

	"github.com/labstack/echo/v4"

	"usermanagement/internal/logger"
	"usermanagement/internal/metrics"
)

// Logging logs method and path on entry, captures the downstream response
// in memory, and logs status and duration once the chain returns normally.
// When the chain returns an error or panics the captured output is dropped,
// no completion line is written, and the fault propagates unchanged.
func Logging(log *logger.Logger) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			start := time.Now()
			req := c.Request()
			original := c.Response()

			reqLog := &logger.Logger{Logger: log.With().
				Str("request_id", original.Header().Get(echo.HeaderXRequestID)).
				Logger()}
			c.SetRequest(req.WithContext(reqLog.WithContext(req.Context())))

			reqLog.Info().
				Str("method", req.Method).
				Str("path", req.URL.Path).
				Msg("incoming request")

			captured := newBufferedWriter()
			c.SetResponse(echo.NewResponse(captured, c.Echo()))
			defer c.SetResponse(original)

			if err := next(c); err != nil {
				return err
			}

			c.SetResponse(original)
			duration := time.Since(start)
			status := captured.Status()
			size := len(captured.Bytes())

			if err := captured.flushTo(original); err != nil {
				return err
			}

			route := c.Path()
			metrics.RequestsTotal.WithLabelValues(req.Method, route, strconv.Itoa(status)).Inc()
			metrics.RequestDuration.WithLabelValues(req.Method, route).Observe(duration.Seconds())

			reqLog.Info().
				Str("method", req.Method).
				Str("path", req.URL.Path).
				Int("status", status).
				Dur("duration", duration).
				Int("size", size).
				Msg("request completed")
			return nil
		}
	}
}
