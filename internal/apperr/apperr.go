// Package apperr defines the error kinds shared by services and handlers.
// Services return errors carrying one of the sentinel kinds; handlers
// translate the kind into an HTTP status with errors.Is and send the
// message as-is, so messages here are client-facing.
package apperr

import "errors"

var (
	// ErrValidation marks missing or malformed caller input.
	ErrValidation = errors.New("validation error")
	// ErrNotFound marks an unknown conversation, message or user id.
	ErrNotFound = errors.New("not found")
	// ErrInvalidState marks a violated sequencing invariant.
	ErrInvalidState = errors.New("invalid state")
	// ErrUpstream marks a completion provider failure or timeout.
	ErrUpstream = errors.New("upstream error")
	// ErrStore marks a persistence failure.
	ErrStore = errors.New("store error")
)

// Error is a kinded error. Error() renders only the message; the kind is
// reachable through errors.Is.
type Error struct {
	kind error
	msg  string
}

func (e *Error) Error() string { return e.msg }

func (e *Error) Unwrap() error { return e.kind }

// Validation returns a validation error.
func Validation(msg string) error {
	return &Error{kind: ErrValidation, msg: msg}
}

// NotFound returns a not-found error.
func NotFound(msg string) error {
	return &Error{kind: ErrNotFound, msg: msg}
}

// InvalidState returns an invalid-state error.
func InvalidState(msg string) error {
	return &Error{kind: ErrInvalidState, msg: msg}
}

// Upstream wraps a provider failure. Callers pass an already generalized
// cause; provider detail belongs in logs, not here.
func Upstream(cause error) error {
	return &Error{kind: ErrUpstream, msg: cause.Error()}
}

// Store wraps a persistence failure.
func Store(cause error) error {
	return &Error{kind: ErrStore, msg: cause.Error()}
}
