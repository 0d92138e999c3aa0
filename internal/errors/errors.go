package errors

import (
	"errors"
	"fmt"
	"net/http"
	"os"

	"github.com/julianstephens/daybook/internal/logger"
)

// Error kinds shared by the CLI, TUI and HTTP server
var (
	ErrValidation   = errors.New("validation failed")
	ErrNotFound     = errors.New("not found")
	ErrUnauthorized = errors.New("unauthorized")
	ErrConflict     = errors.New("conflict")
)

// UserError carries a message that is safe to show to the user
type UserError struct {
	Kind    error
	Message string
}

func (e *UserError) Error() string {
	return e.Message
}

func (e *UserError) Unwrap() error {
	return e.Kind
}

// Validation returns a user-facing validation error
func Validation(format string, args ...interface{}) error {
	return &UserError{Kind: ErrValidation, Message: fmt.Sprintf(format, args...)}
}

// NotFound returns a user-facing not-found error
func NotFound(format string, args ...interface{}) error {
	return &UserError{Kind: ErrNotFound, Message: fmt.Sprintf(format, args...)}
}

// Unauthorized returns a user-facing authentication error
func Unauthorized(format string, args ...interface{}) error {
	return &UserError{Kind: ErrUnauthorized, Message: fmt.Sprintf(format, args...)}
}

// Conflict returns a user-facing conflict error
func Conflict(format string, args ...interface{}) error {
	return &UserError{Kind: ErrConflict, Message: fmt.Sprintf(format, args...)}
}

// Banner turns err into a short message for a transient banner.
// Errors without a user-facing message fall back to fallback.
func Banner(err error, fallback string) string {
	if err == nil {
		return ""
	}
	var ue *UserError
	if errors.As(err, &ue) {
		return ue.Message
	}
	return fallback
}

// HTTPStatus maps an error to the response status used by the server
func HTTPStatus(err error) int {
	switch {
	case err == nil:
		return http.StatusOK
	case errors.Is(err, ErrValidation):
		return http.StatusBadRequest
	case errors.Is(err, ErrUnauthorized):
		return http.StatusUnauthorized
	case errors.Is(err, ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, ErrConflict):
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

// Code maps an error to the machine readable code in error responses
func Code(err error) string {
	switch {
	case errors.Is(err, ErrValidation):
		return "VALIDATION_ERROR"
	case errors.Is(err, ErrUnauthorized):
		return "UNAUTHORIZED"
	case errors.Is(err, ErrNotFound):
		return "NOT_FOUND"
	case errors.Is(err, ErrConflict):
		return "CONFLICT"
	default:
		return "INTERNAL_ERROR"
	}
}

// Format formats an error message with a consistent "Error: " prefix
func Format(err error) string {
	if err == nil {
		return ""
	}
	return fmt.Sprintf("Error: %v", err)
}

// Formatf formats an error message with a consistent "Error: " prefix using a format string
func Formatf(format string, args ...interface{}) string {
	return fmt.Sprintf("Error: "+format, args...)
}

// Fatal logs an error and exits the program with exit code 1
func Fatal(err error) {
	if err != nil {
		logger.Error("Command execution failed", "error", err)
		fmt.Fprintf(os.Stderr, "%s\n", Format(err))
		os.Exit(1)
	}
}

// Fatalf logs and formats an error message, then exits the program with exit code 1
func Fatalf(format string, args ...interface{}) {
	msg := fmt.Sprintf(format, args...)
	logger.Error("Command execution failed", "error", msg)
	fmt.Fprintf(os.Stderr, "%s\n", Formatf(format, args...))
	os.Exit(1)
}
