package logic

import "errors"

// Typed errors so handlers can map failures to HTTP codes and callers can
// decide retry vs abort, instead of collapsing everything to one string.
var (
	ErrNotFound          = errors.New("record not found")
	ErrValidation        = errors.New("validation failed")
	ErrConflict          = errors.New("conflict")
	ErrForbidden         = errors.New("forbidden")
	ErrInvalidTransition = errors.New("invalid escrow transition")
	ErrDraftExpired      = errors.New("draft expired or already claimed")
)

// validationError wraps ErrValidation with a human-readable reason.
func validationError(msg string) error {
	return &wrappedError{msg: msg, err: ErrValidation}
}

// conflictError wraps ErrConflict with a reason.
func conflictError(msg string) error {
	return &wrappedError{msg: msg, err: ErrConflict}
}

type wrappedError struct {
	msg string
	err error
}

func (e *wrappedError) Error() string { return e.msg }
func (e *wrappedError) Unwrap() error { return e.err }
