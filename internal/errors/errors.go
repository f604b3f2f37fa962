package errors

import (
	"errors"
	"fmt"
	"net/http"
)

var (
	// ErrUserNotFound is returned when no user has the requested id.
	ErrUserNotFound = errors.New("user not found")
	// ErrInvalidRequestBody is returned when the payload cannot be decoded.
	ErrInvalidRequestBody = errors.New("invalid request body")
	// ErrCredentialsRequired is returned by login when username or password is missing.
	ErrCredentialsRequired = errors.New("Username and password required.")
)

// InternalServerErrorMessage is the only message callers ever see for unexpected faults.
const InternalServerErrorMessage = "Internal server error."

// ErrorResponse represents a standardized error response.
type ErrorResponse struct {
	Error  string           `json:"error"`
	Fields []FieldViolation `json:"fields,omitempty"`
}

// FieldViolation describes one rejected input field.
type FieldViolation struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// ValidationError carries every field-level violation of a rejected payload.
type ValidationError struct {
	Violations []FieldViolation
}

func (e *ValidationError) Error() string {
	if len(e.Violations) == 1 {
		return fmt.Sprintf("validation failed: %s %s", e.Violations[0].Field, e.Violations[0].Message)
	}
	return fmt.Sprintf("validation failed: %d fields", len(e.Violations))
}

// HTTPError represents an HTTP error with status code.
type HTTPError struct {
	StatusCode int
	Message    string
	Fields     []FieldViolation
}

func (e *HTTPError) Error() string {
	return e.Message
}

// NewHTTPError creates a new HTTP error.
func NewHTTPError(statusCode int, message string) *HTTPError {
	return &HTTPError{
		StatusCode: statusCode,
		Message:    message,
	}
}

// ToErrorResponse converts an HTTPError to ErrorResponse.
func (e *HTTPError) ToErrorResponse() ErrorResponse {
	return ErrorResponse{
		Error:  e.Message,
		Fields: e.Fields,
	}
}

// UserNotFoundMessage formats the 404 message for a user id.
func UserNotFoundMessage(id uint) string {
	return fmt.Sprintf("User with ID %d not found.", id)
}

// MapErrorToHTTP maps domain errors to HTTP errors. Anything it does not
// recognise becomes a generic 500 without leaking the underlying message.
func MapErrorToHTTP(err error) *HTTPError {
	var validationErr *ValidationError
	switch {
	case errors.As(err, &validationErr):
		httpErr := NewHTTPError(http.StatusBadRequest, "validation failed")
		httpErr.Fields = validationErr.Violations
		return httpErr
	case errors.Is(err, ErrInvalidRequestBody):
		return NewHTTPError(http.StatusBadRequest, err.Error())
	case errors.Is(err, ErrCredentialsRequired):
		return NewHTTPError(http.StatusBadRequest, err.Error())
	case errors.Is(err, ErrUserNotFound):
		return NewHTTPError(http.StatusNotFound, err.Error())
	default:
		return NewHTTPError(http.StatusInternalServerError, InternalServerErrorMessage)
	}
}
