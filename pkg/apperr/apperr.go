package apperr

import (
	"errors"
	"fmt"
)

type Kind int

const (
	KindUnexpected Kind = iota
	KindValidation
	KindDuplicateOperation
	KindInvalidState
	KindNotFound
	KindUnauthorized
	KindConflict
)

func (k Kind) String() string {
	switch k {
	case KindValidation:
		return "validation"
	case KindDuplicateOperation:
		return "duplicate_operation"
	case KindInvalidState:
		return "invalid_state"
	case KindNotFound:
		return "not_found"
	case KindUnauthorized:
		return "unauthorized"
	case KindConflict:
		return "conflict"
	default:
		return "unexpected"
	}
}

// Error carries a message that is safe to show to the caller. Err, when set,
// is the underlying cause and is only ever logged.
type Error struct {
	Kind Kind
	Msg  string
	Err  error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Msg, e.Err)
	}
	return e.Msg
}

func (e *Error) Unwrap() error { return e.Err }

func New(kind Kind, msg string) error { return &Error{Kind: kind, Msg: msg} }

func Validation(msg string) error         { return New(KindValidation, msg) }
func DuplicateOperation(msg string) error { return New(KindDuplicateOperation, msg) }
func InvalidState(msg string) error       { return New(KindInvalidState, msg) }
func NotFound(msg string) error           { return New(KindNotFound, msg) }
func Unauthorized(msg string) error       { return New(KindUnauthorized, msg) }
func Conflict(msg string) error           { return New(KindConflict, msg) }

// Unexpected wraps a storage or programming failure.
func Unexpected(msg string, err error) error {
	return &Error{Kind: KindUnexpected, Msg: msg, Err: err}
}

// KindOf reports the kind of err. Errors that did not come from this package
// are treated as unexpected.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return KindUnexpected
}

func Is(err error, kind Kind) bool {
	return err != nil && KindOf(err) == kind
}

// Message returns the caller-facing message for err.
func Message(err error) string {
	var e *Error
	if errors.As(err, &e) && e.Kind != KindUnexpected {
		return e.Msg
	}
	return "Something went wrong. Please try again later."
}
