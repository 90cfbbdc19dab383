// Package common provides shared utilities and types used across the application.
package common

import (
	"context"
	"errors"
	"fmt"
)

// Common application errors.
var (
	// Database errors.
	ErrNotFound       = errors.New("not found")
	ErrDuplicateEntry = errors.New("duplicate entry")
	// ErrPersistenceFailed wraps external-store failures surfaced to callers.
	ErrPersistenceFailed = errors.New("persistence failed")

	// Rule learning errors.
	ErrSignatureTooShort = errors.New("merchant signature too short to learn")
	ErrRulesNotLoaded    = errors.New("rules not loaded")

	// Metering errors.
	ErrQuotaExceeded = errors.New("credit quota exceeded")

	// Ingestion errors.
	ErrUpstreamUnavailable = errors.New("statement parsing service unavailable")
	ErrNoTransactions      = errors.New("no transactions in statement")

	// Configuration errors.
	ErrMissingConfig = errors.New("missing configuration")
	ErrInvalidConfig = errors.New("invalid configuration")
)

// UserError represents an error that should be shown to the user.
type UserError struct {
	Err         error
	UserMessage string
}

func (e *UserError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.UserMessage, e.Err)
	}
	return e.UserMessage
}

func (e *UserError) Unwrap() error {
	return e.Err
}

// NewUserError creates a new user-friendly error.
func NewUserError(userMessage string, err error) error {
	return &UserError{
		UserMessage: userMessage,
		Err:         err,
	}
}

// IsRetryable determines if an error should trigger a retry. Quota refusals
// and rejected input are deterministic and never retried.
func IsRetryable(err error) bool {
	if errors.Is(err, ErrQuotaExceeded) ||
		errors.Is(err, ErrSignatureTooShort) {
		return false
	}

	if errors.Is(err, ErrRateLimit) ||
		errors.Is(err, ErrUpstreamUnavailable) ||
		errors.Is(err, context.DeadlineExceeded) ||
		errors.Is(err, context.Canceled) {
		return true
	}

	var retryableErr *RetryableError
	if errors.As(err, &retryableErr) {
		return retryableErr.Retryable
	}

	return false
}
