package errorwrapper

import (
	"errors"
	"fmt"
)

// Common error kinds used across the application. The HTTP layer maps these
// to status codes, so new failure modes should wrap one of them.
var (
	// ErrNotFound indicates a project, section, screen, test or report is missing
	ErrNotFound = errors.New("not found")
	// ErrInvalidInput indicates invalid user input
	ErrInvalidInput = errors.New("invalid input")
	// ErrConflict indicates a conflicting concurrent operation
	ErrConflict = errors.New("conflict")
	// ErrServiceUnavailable indicates a transient failure callers may retry
	ErrServiceUnavailable = errors.New("service unavailable")
	// ErrInvalidConfiguration indicates configuration issues
	ErrInvalidConfiguration = errors.New("invalid configuration")
)

// WrapError wraps an error with additional context information
func WrapError(err error, message string) error {
	if err == nil {
		return fmt.Errorf("%s: <nil>", message)
	}
	return fmt.Errorf("%s: %w", message, err)
}

// NewError creates a new error with a formatted message
func NewError(format string, args ...interface{}) error {
	return fmt.Errorf(format, args...)
}

// NewNotFoundError creates an error wrapping ErrNotFound for a named resource
func NewNotFoundError(resource, name string) error {
	return fmt.Errorf("%s '%s': %w", resource, name, ErrNotFound)
}

// NewConflictError creates an error wrapping ErrConflict
func NewConflictError(message string) error {
	return fmt.Errorf("%s: %w", message, ErrConflict)
}

// IsNotFound reports whether err wraps ErrNotFound
func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound)
}

// IsConflict reports whether err wraps ErrConflict
func IsConflict(err error) bool {
	return errors.Is(err, ErrConflict)
}

// IsInvalidInput reports whether err wraps ErrInvalidInput or is a ValidationError
func IsInvalidInput(err error) bool {
	var validationErr *ValidationError
	return errors.Is(err, ErrInvalidInput) || errors.As(err, &validationErr)
}

// ValidationError represents validation errors with field-specific information
type ValidationError struct {
	Field   string
	Value   any
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation error: field '%s' with value '%v': %s", e.Field, e.Value, e.Message)
}

// NewValidationError creates a new validation error
func NewValidationError(field string, value any, message string) *ValidationError {
	return &ValidationError{
		Field:   field,
		Value:   value,
		Message: message,
	}
}

// TransientError represents transient failures (filesystem EIO, browser
// launch) that surface as 503 and may be retried by the caller.
type TransientError struct {
	Operation string
	Wrapped   error
}

func (e *TransientError) Error() string {
	return fmt.Sprintf("transient error during %s: %v", e.Operation, e.Wrapped)
}

func (e *TransientError) Unwrap() error {
	return ErrServiceUnavailable
}

// NewTransientError creates a new transient error
func NewTransientError(operation string, wrapped error) *TransientError {
	return &TransientError{
		Operation: operation,
		Wrapped:   wrapped,
	}
}
