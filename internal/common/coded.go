package common

import (
	"errors"
	"fmt"
)

// CodedError is a domain failure with a user-visible code, e.g. "SGR-004".
// Kind is one of the Err* kind sentinels and is what errors.Is matches.
type CodedError struct {
	Kind    error
	Code    string
	Message string
}

func (e *CodedError) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *CodedError) Unwrap() error {
	return e.Kind
}

// NewCodedError builds a CodedError of the given kind.
func NewCodedError(kind error, code, message string) *CodedError {
	return &CodedError{Kind: kind, Code: code, Message: message}
}

// AsCoded extracts the CodedError from err's chain, if any.
func AsCoded(err error) (*CodedError, bool) {
	var ce *CodedError
	if errors.As(err, &ce) {
		return ce, true
	}
	return nil, false
}

// StoreError wraps a failure of the backing store (connectivity, constraint
// violation). It is retryable from the caller's point of view, unlike a
// CodedError.
type StoreError struct {
	Op  string
	Err error
}

func (e *StoreError) Error() string {
	return fmt.Sprintf("db error: %s: %v", e.Op, e.Err)
}

func (e *StoreError) Unwrap() []error {
	return []error{ErrStore, e.Err}
}

// NewStoreError wraps err as a StoreError for operation op.
func NewStoreError(op string, err error) error {
	return &StoreError{Op: op, Err: err}
}
