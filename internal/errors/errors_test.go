package errors

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMapErrorToHTTP(t *testing.T) {
	validation := &ValidationError{Violations: []FieldViolation{
		{Field: "email", Message: "must be a valid email address"},
		{Field: "department", Message: "is required"},
	}}

	tests := []struct {
		name           string
		err            error
		expectedStatus int
		expectedMsg    string
		expectedFields int
	}{
		{"not found", ErrUserNotFound, http.StatusNotFound, "user not found", 0},
		{"wrapped not found", fmt.Errorf("get user 3: %w", ErrUserNotFound), http.StatusNotFound, "user not found", 0},
		{"invalid body", ErrInvalidRequestBody, http.StatusBadRequest, "invalid request body", 0},
		{"missing credentials", ErrCredentialsRequired, http.StatusBadRequest, "Username and password required.", 0},
		{"validation", validation, http.StatusBadRequest, "validation failed", 2},
		{"unknown", errors.New("connection reset by peer"), http.StatusInternalServerError, InternalServerErrorMessage, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			httpErr := MapErrorToHTTP(tt.err)
			assert.Equal(t, tt.expectedStatus, httpErr.StatusCode)
			assert.Equal(t, tt.expectedMsg, httpErr.Message)
			assert.Len(t, httpErr.ToErrorResponse().Fields, tt.expectedFields)
		})
	}
}

func TestValidationError_Error(t *testing.T) {
	single := &ValidationError{Violations: []FieldViolation{{Field: "email", Message: "is required"}}}
	assert.Equal(t, "validation failed: email is required", single.Error())

	multi := &ValidationError{Violations: make([]FieldViolation, 3)}
	assert.Equal(t, "validation failed: 3 fields", multi.Error())
}

func TestUserNotFoundMessage(t *testing.T) {
	assert.Equal(t, "User with ID 42 not found.", UserNotFoundMessage(42))
}
