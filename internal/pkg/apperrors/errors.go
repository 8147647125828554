package apperrors

import (
	"errors"
	"fmt"
)

var (
	ErrNotFound = errors.New("resource not found")

	ErrInvalidArgument = errors.New("invalid argument")

	ErrValidation = errors.New("validation failed")

	ErrAlreadyExists = errors.New("resource already exists")

	ErrConflict = errors.New("resource conflict")

	ErrDatabase = errors.New("database error")

	ErrStoreTimeout = errors.New("database operation timed out")

	ErrStoreUnavailable = errors.New("database unavailable")

	ErrInternalServer = errors.New("internal server error")
)

type ValidationError struct {
	Field   string
	Message string
	Cause   error
}

func (e *ValidationError) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("validation failed for field '%s': %s", e.Field, e.Message)
	}
	return fmt.Sprintf("validation failed: %s", e.Message)
}

func (e *ValidationError) Unwrap() error {
	return e.Cause
}

func NewValidationError(field, message string) error {
	return fmt.Errorf("%w: %w", ErrValidation, &ValidationError{Field: field, Message: message})
}

type AppError struct {
	Code    string
	Message string
	Cause   error
}

func (e *AppError) Error() string {
	if e.Code != "" {
		return fmt.Sprintf("[%s] %s", e.Code, e.Message)
	}
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Cause
}

func WrapDatabaseError(cause error, message string) error {
	return &AppError{
		Code:    "DB_ERROR",
		Message: message,
		Cause:   fmt.Errorf("%w: %w", ErrDatabase, cause),
	}
}

// WrapStoreTimeout marks cause as a store timeout; it still matches ErrDatabase.
func WrapStoreTimeout(cause error, message string) error {
	return &AppError{
		Code:    "DB_TIMEOUT",
		Message: message,
		Cause:   fmt.Errorf("%w: %w: %w", ErrStoreTimeout, ErrDatabase, cause),
	}
}

// WrapStoreUnavailable marks cause as a connectivity failure; it still matches ErrDatabase.
func WrapStoreUnavailable(cause error, message string) error {
	return &AppError{
		Code:    "DB_UNAVAILABLE",
		Message: message,
		Cause:   fmt.Errorf("%w: %w: %w", ErrStoreUnavailable, ErrDatabase, cause),
	}
}
