package api

import (
	"fmt"
	"time"
)

// StatusError is a non-successful response from the server.
// It exposes the status, provider code and reset hint to the retry classifier.
type StatusError struct {
	RetryAfter time.Time
	Message    string
	Code       string
	Status     int
}

func (e *StatusError) Error() string {
	if e.Code != "" {
		return fmt.Sprintf("server error (%d %s): %s", e.Status, e.Code, e.Message)
	}
	return fmt.Sprintf("server error (%d): %s", e.Status, e.Message)
}

// StatusCode returns the HTTP status code.
func (e *StatusError) StatusCode() int { return e.Status }

// ErrorCode returns the provider error code, if any.
func (e *StatusError) ErrorCode() string { return e.Code }

// RetryAt returns when the server allows the next request, or zero.
func (e *StatusError) RetryAt() time.Time { return e.RetryAfter }
