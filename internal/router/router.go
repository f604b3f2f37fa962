package router

import (
	"net/http"

	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	echoSwagger "github.com/swaggo/echo-swagger"

	"usermanagement/internal/auth"
	"usermanagement/internal/handler"
	"usermanagement/internal/logger"
	"usermanagement/internal/metrics"
	"usermanagement/internal/middleware"
	"usermanagement/internal/validation"
)

// Register wires the pipeline and routes:
//
//	RequestID → ErrorContainment → Logging → [Auth →] handler
func Register(
	e *echo.Echo,
	log *logger.Logger,
	verifier auth.Verifier,
	userHandler *handler.UserHandler,
	authHandler *handler.AuthHandler,
) {
	e.Validator = validation.New()

	e.Use(echomiddleware.RequestID())
	e.Use(middleware.ErrorContainment(log))
	e.Use(middleware.Logging(log))

	e.GET("/healthz", func(c echo.Context) error {
		return c.String(http.StatusOK, "ok")
	})
	e.GET("/metrics", echo.WrapHandler(metrics.Handler()))
	e.GET("/swagger/*", echoSwagger.WrapHandler)

	// Public routes
	e.POST("/login", authHandler.Login)

	// Secured routes
	requireAuth := middleware.Auth(verifier)
	e.POST("/logout", authHandler.Logout, requireAuth)

	users := e.Group("/users", requireAuth)
	users.GET("", userHandler.ListUsers)
	users.GET("/:id", userHandler.GetUser)
	users.POST("", userHandler.CreateUser)
	users.PUT("/:id", userHandler.UpdateUser)
	users.DELETE("/:id", userHandler.DeleteUser)
}
