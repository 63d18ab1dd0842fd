package domain

import "errors"

var (
	ErrNotFound     = errors.New("not found")
	ErrUnauthorized = errors.New("unauthorized")
	ErrForbidden    = errors.New("forbidden")
	ErrValidation   = errors.New("validation failed")
	ErrConflict     = errors.New("conflict")
	ErrUnavailable  = errors.New("persistence not configured")
	ErrDisabled     = errors.New("feature disabled")
)

// ValidationError carries a message meant for the caller verbatim.
type ValidationError struct{ Msg string }

func (e *ValidationError) Error() string { return e.Msg }

func (e *ValidationError) Is(target error) bool { return target == ErrValidation }

func Invalid(msg string) error { return &ValidationError{Msg: msg} }

// NotFoundError names what was missing ("Journey not found"). Msg, when
// set, replaces the generated message.
type NotFoundError struct {
	What string
	Msg  string
}

func (e *NotFoundError) Error() string {
	if e.Msg != "" {
		return e.Msg
	}
	return e.What + " not found"
}

func (e *NotFoundError) Is(target error) bool { return target == ErrNotFound }

func NotFound(what string) error { return &NotFoundError{What: what} }

// ErrBlobMissing: metadata exists but the stored bytes are gone.
var ErrBlobMissing = &NotFoundError{What: "File", Msg: "File not found on disk"}

// ConflictError is a uniqueness clash with a caller-facing message.
type ConflictError struct{ Msg string }

func (e *ConflictError) Error() string { return e.Msg }

func (e *ConflictError) Is(target error) bool { return target == ErrConflict }

func Conflict(msg string) error { return &ConflictError{Msg: msg} }
