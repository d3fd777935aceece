// Package errors provides error code definitions shared across the backend.
package errors

import "fmt"

// ErrorCode represents a unique error code surfaced to API clients.
type ErrorCode string

const (
	// General errors
	ErrInternal   ErrorCode = "INTERNAL_ERROR"
	ErrInvalid    ErrorCode = "INVALID_INPUT"
	ErrNotFound   ErrorCode = "NOT_FOUND"
	ErrValidation ErrorCode = "VALIDATION_FAILED"

	// Database errors
	ErrDatabase  ErrorCode = "DATABASE_ERROR"
	ErrMigration ErrorCode = "MIGRATION_FAILED"

	// Store errors
	ErrJournalNotFound ErrorCode = "JOURNAL_NOT_FOUND"
	ErrEntryNotFound   ErrorCode = "ENTRY_NOT_FOUND"
	ErrGoalNotFound    ErrorCode = "GOAL_NOT_FOUND"

	// Upload errors
	ErrUploadFailed ErrorCode = "UPLOAD_FAILED"
	ErrUploadTooBig ErrorCode = "UPLOAD_TOO_BIG"

	// Annotation errors
	ErrAnnotationFailed  ErrorCode = "ANNOTATION_FAILED"
	ErrAnnotationTimeout ErrorCode = "ANNOTATION_TIMEOUT"

	// Subscription errors
	ErrPlanLimit ErrorCode = "PLAN_LIMIT"
)

// AppError represents an application error with code and message.
type AppError struct {
	Code    ErrorCode
	Message string
	Err     error
}

// Error implements the error interface.
func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

// Unwrap returns the underlying error.
func (e *AppError) Unwrap() error {
	return e.Err
}

// New creates a new AppError.
func New(code ErrorCode, message string) *AppError {
	return &AppError{
		Code:    code,
		Message: message,
	}
}

// Newf creates a new AppError with a formatted message.
func Newf(code ErrorCode, format string, args ...interface{}) *AppError {
	return &AppError{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
	}
}

// Wrap wraps an existing error with an error code.
func Wrap(code ErrorCode, message string, err error) *AppError {
	return &AppError{
		Code:    code,
		Message: message,
		Err:     err,
	}
}

// Is checks if an error is of a specific code.
func Is(err error, code ErrorCode) bool {
	if appErr, ok := err.(*AppError); ok {
		return appErr.Code == code
	}
	return false
}

// IsNotFound reports whether the error is any of the not-found codes.
func IsNotFound(err error) bool {
	appErr, ok := err.(*AppError)
	if !ok {
		return false
	}
	switch appErr.Code {
	case ErrNotFound, ErrJournalNotFound, ErrEntryNotFound, ErrGoalNotFound:
		return true
	}
	return false
}
