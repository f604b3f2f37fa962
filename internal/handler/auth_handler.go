package handler

import (
	"errors"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	apperrors "usermanagement/internal/errors"
	"usermanagement/internal/middleware"
	"usermanagement/internal/service"
)

// AuthHandler handles authentication endpoints.
type AuthHandler struct {
	authService service.AuthService
}

// NewAuthHandler creates a new auth handler.
func NewAuthHandler(authService service.AuthService) *AuthHandler {
	return &AuthHandler{authService: authService}
}

// LoginRequest carries credentials from the query string, a form or JSON.
type LoginRequest struct {
	Username string `json:"username" form:"username" query:"username"`
	Password string `json:"password" form:"password" query:"password"`
}

// LoginResponse represents an authentication response.
type LoginResponse struct {
	Token     string     `json:"token"`
	ExpiresAt *time.Time `json:"expiresAt,omitempty"`
}

// Login godoc
// @Summary Obtain a bearer token
// @Tags auth
// @Accept json
// @Produce json
// @Param request body LoginRequest false "Credentials"
// @Param username query string false "Username"
// @Param password query string false "Password"
// @Success 200 {object} LoginResponse
// @Failure 400 {object} errors.ErrorResponse
// @Router /login [post]
func (h *AuthHandler) Login(c echo.Context) error {
	var req LoginRequest
	if err := (&echo.DefaultBinder{}).BindQueryParams(c, &req); err != nil {
		return writeError(c, apperrors.ErrInvalidRequestBody)
	}
	if err := c.Bind(&req); err != nil {
		return writeError(c, apperrors.ErrInvalidRequestBody)
	}

	token, err := h.authService.Login(c.Request().Context(), req.Username, req.Password)
	if err != nil {
		if errors.Is(err, apperrors.ErrCredentialsRequired) {
			return writeError(c, err)
		}
		return internalError(c, err, "Error issuing token.")
	}

	resp := LoginResponse{Token: token.Value}
	if !token.ExpiresAt.IsZero() {
		expiresAt := token.ExpiresAt.UTC()
		resp.ExpiresAt = &expiresAt
	}
	return c.JSON(http.StatusOK, resp)
}

// Logout godoc
// @Summary Revoke the presented token
// @Tags auth
// @Security BearerAuth
// @Success 204
// @Failure 401 {string} string
// @Failure 501 {object} errors.ErrorResponse
// @Router /logout [post]
func (h *AuthHandler) Logout(c echo.Context) error {
	claims, ok := middleware.ClaimsFromContext(c)
	if !ok {
		return c.String(http.StatusUnauthorized, "Unauthorized")
	}

	if err := h.authService.Logout(c.Request().Context(), claims); err != nil {
		if errors.Is(err, service.ErrLogoutUnsupported) {
			return c.JSON(http.StatusNotImplemented, apperrors.ErrorResponse{Error: err.Error()})
		}
		return internalError(c, err, "Error revoking token.")
	}
	return c.NoContent(http.StatusNoContent)
}
