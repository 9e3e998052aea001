// Package retry classifies sync failures and computes retry delays.
// Everything here is stateless.
package retry

import "fmt"

// ErrorType категория ошибки синхронизации
type ErrorType string

const (
	ErrorNetwork    ErrorType = "NETWORK"
	ErrorAuth       ErrorType = "AUTH"
	ErrorRateLimit  ErrorType = "RATE_LIMIT"
	ErrorServer     ErrorType = "SERVER"
	ErrorClient     ErrorType = "CLIENT"
	ErrorUnknown    ErrorType = "UNKNOWN"
	ErrorValidation ErrorType = "VALIDATION"
	ErrorMerge      ErrorType = "MERGE"
)

// SyncError is an error tagged with its taxonomy type.
type SyncError struct {
	Err     error
	Type    ErrorType
	Message string
}

// Error implements the error interface.
func (e *SyncError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Type, e.Message, e.Err)
	}
	return fmt.Sprintf("[%s] %s", e.Type, e.Message)
}

// Unwrap returns the underlying error.
func (e *SyncError) Unwrap() error {
	return e.Err
}

// NewValidationError creates a VALIDATION error.
func NewValidationError(format string, args ...any) *SyncError {
	return &SyncError{
		Type:    ErrorValidation,
		Message: fmt.Sprintf(format, args...),
	}
}

// NewMergeError wraps err as a MERGE error.
func NewMergeError(err error, format string, args ...any) *SyncError {
	return &SyncError{
		Type:    ErrorMerge,
		Message: fmt.Sprintf(format, args...),
		Err:     err,
	}
}

// Wrap tags err with the type Classify assigns to it.
func Wrap(err error, message string) *SyncError {
	return &SyncError{
		Type:    Classify(err),
		Message: message,
		Err:     err,
	}
}
