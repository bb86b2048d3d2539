// Package common defines shared constants and sentinel errors used across
// the task manager server layers. Callers should use errors.Is to match
// these values.
package common

import "errors"

var (
	// Repository-level errors.
	ErrNotFound      = errors.New("not found")
	ErrAlreadyExists = errors.New("already exists")

	// Validation errors. Wrap with fmt.Errorf("%w: ...", ErrValidation)
	// to carry a client-facing message.
	ErrValidation = errors.New("validation error")

	// Auth errors. ErrInvalidCredentials deliberately covers both an
	// unknown email and a wrong password so login failures are
	// indistinguishable to the caller.
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrNoToken            = errors.New("no token provided")

	// Token lifecycle errors. Expired and invalid must stay distinct so
	// the transport can surface a clear client message.
	ErrTokenInvalid = errors.New("invalid token")
	ErrTokenExpired = errors.New("token expired")

	// Service-level errors (generic/internal flow control).
	ErrInternal    = errors.New("internal error")
	ErrRateLimited = errors.New("rate limited")
)

// ValidationError is a validation failure carrying a client-facing
// message. It matches ErrValidation under errors.Is.
type ValidationError struct {
	msg string
}

// NewValidationError wraps a client-facing message as a validation error.
func NewValidationError(msg string) *ValidationError {
	return &ValidationError{msg: msg}
}

func (e *ValidationError) Error() string { return e.msg }

func (e *ValidationError) Is(target error) bool { return target == ErrValidation }
