// Package common defines shared constants and sentinel errors used across
// client and server layers of addrkeeper. Callers should use errors.Is to
// match these values.
package common

import "errors"

var (
	// Repository-level errors.
	ErrorNotFound = errors.New("not found")
	ErrStore      = errors.New("store failure")

	// Service-level errors (generic/internal flow control).
	ErrorInternal = errors.New("internal error")

	// Error kinds carried by CodedError.
	ErrValidationFailed     = errors.New("validation failed")
	ErrAuthenticationFailed = errors.New("authentication failed")
	ErrUnauthenticated      = errors.New("unauthenticated")
	ErrSessionExpired       = errors.New("session expired")
	ErrSessionClosed        = errors.New("session closed")
	ErrNotFound             = errors.New("entity not found")
	ErrOwnershipViolation   = errors.New("ownership violation")
)
