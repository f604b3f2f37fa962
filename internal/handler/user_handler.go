package handler

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	apperrors "usermanagement/internal/errors"
	"usermanagement/internal/logger"
	"usermanagement/internal/model"
	"usermanagement/internal/service"
)

// UserHandler serves the /users resource. Every anticipated outcome is
// written here; only unanticipated faults leave as a returned error.
type UserHandler struct {
	svc service.UserService
}

// NewUserHandler creates a handler layer.
func NewUserHandler(svc service.UserService) *UserHandler {
	return &UserHandler{svc: svc}
}

// ListUsers godoc
// @Summary List users
// @Tags users
// @Produce json
// @Security BearerAuth
// @Success 200 {array} model.User
// @Failure 401 {string} string
// @Router /users [get]
func (h *UserHandler) ListUsers(c echo.Context) error {
	users, err := h.svc.ListUsers(c.Request().Context())
	if err != nil {
		return internalError(c, err, "Error retrieving users.")
	}
	return c.JSON(http.StatusOK, users)
}

// GetUser godoc
// @Summary Get user by id
// @Tags users
// @Produce json
// @Security BearerAuth
// @Param id path int true "User ID"
// @Success 200 {object} model.User
// @Failure 400 {object} errors.ErrorResponse
// @Failure 401 {string} string
// @Failure 404 {object} errors.ErrorResponse
// @Router /users/{id} [get]
func (h *UserHandler) GetUser(c echo.Context) error {
	id, ok := parseID(c)
	if !ok {
		return invalidID(c)
	}
	user, err := h.svc.GetUser(c.Request().Context(), id)
	if err != nil {
		if errors.Is(err, apperrors.ErrUserNotFound) {
			return userNotFound(c, id)
		}
		return internalError(c, err, "Error fetching user.")
	}
	return c.JSON(http.StatusOK, user)
}

// CreateUser godoc
// @Summary Create user
// @Tags users
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param user body model.UserRequest true "User payload"
// @Success 201 {object} model.User
// @Header 201 {string} Location "/users/{id}"
// @Failure 400 {object} errors.ErrorResponse
// @Failure 401 {string} string
// @Router /users [post]
func (h *UserHandler) CreateUser(c echo.Context) error {
	req, ok, err := bindUserRequest(c)
	if !ok {
		return err
	}
	user, err := h.svc.CreateUser(c.Request().Context(), req)
	if err != nil {
		return internalError(c, err, "Error creating user.")
	}
	c.Response().Header().Set(echo.HeaderLocation, fmt.Sprintf("/users/%d", user.ID))
	return c.JSON(http.StatusCreated, user)
}

// UpdateUser godoc
// @Summary Replace a user's fields
// @Tags users
// @Accept json
// @Security BearerAuth
// @Param id path int true "User ID"
// @Param user body model.UserRequest true "User payload"
// @Success 204
// @Failure 400 {object} errors.ErrorResponse
// @Failure 401 {string} string
// @Failure 404 {object} errors.ErrorResponse
// @Router /users/{id} [put]
func (h *UserHandler) UpdateUser(c echo.Context) error {
	id, ok := parseID(c)
	if !ok {
		return invalidID(c)
	}
	req, ok, err := bindUserRequest(c)
	if !ok {
		return err
	}
	if err := h.svc.UpdateUser(c.Request().Context(), id, req); err != nil {
		if errors.Is(err, apperrors.ErrUserNotFound) {
			return userNotFound(c, id)
		}
		return internalError(c, err, "Error updating user.")
	}
	return c.NoContent(http.StatusNoContent)
}

// DeleteUser godoc
// @Summary Delete user
// @Tags users
// @Security BearerAuth
// @Param id path int true "User ID"
// @Success 204
// @Failure 400 {object} errors.ErrorResponse
// @Failure 401 {string} string
// @Failure 404 {object} errors.ErrorResponse
// @Router /users/{id} [delete]
func (h *UserHandler) DeleteUser(c echo.Context) error {
	id, ok := parseID(c)
	if !ok {
		return invalidID(c)
	}
	if err := h.svc.DeleteUser(c.Request().Context(), id); err != nil {
		if errors.Is(err, apperrors.ErrUserNotFound) {
			return userNotFound(c, id)
		}
		return internalError(c, err, "Error deleting user.")
	}
	return c.NoContent(http.StatusNoContent)
}

// bindUserRequest decodes and validates the payload. When ok is false the
// 400 has already been written and err is the result of writing it.
func bindUserRequest(c echo.Context) (req model.UserRequest, ok bool, err error) {
	if bindErr := c.Bind(&req); bindErr != nil {
		return req, false, writeError(c, apperrors.ErrInvalidRequestBody)
	}
	if validateErr := c.Validate(&req); validateErr != nil {
		var validationErr *apperrors.ValidationError
		if !errors.As(validateErr, &validationErr) {
			return req, false, internalError(c, validateErr, "Error validating user.")
		}
		return req, false, writeError(c, validationErr)
	}
	return req, true, nil
}

func parseID(c echo.Context) (uint, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 0)
	if err != nil || id == 0 {
		return 0, false
	}
	return uint(id), true
}

func invalidID(c echo.Context) error {
	return c.JSON(http.StatusBadRequest, apperrors.ErrorResponse{Error: "invalid id"})
}

func userNotFound(c echo.Context, id uint) error {
	return c.JSON(http.StatusNotFound, apperrors.ErrorResponse{Error: apperrors.UserNotFoundMessage(id)})
}

// writeError renders a classified domain error.
func writeError(c echo.Context, err error) error {
	httpErr := apperrors.MapErrorToHTTP(err)
	return c.JSON(httpErr.StatusCode, httpErr.ToErrorResponse())
}

// internalError logs the detail and answers with a generic message.
func internalError(c echo.Context, err error, message string) error {
	logger.FromContext(c.Request().Context()).Error().
		Err(err).
		Str("method", c.Request().Method).
		Str("path", c.Request().URL.Path).
		Msg(message)
	return c.JSON(http.StatusInternalServerError, apperrors.ErrorResponse{Error: message})
}

