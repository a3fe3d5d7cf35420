package usecase

import (
	"errors"
	"fmt"
)

type ErrorKind string

const (
	KindValidation   ErrorKind = "validation"
	KindConflict     ErrorKind = "conflict"
	KindNotFound     ErrorKind = "not_found"
	KindDependency   ErrorKind = "dependency"
	KindUnauthorized ErrorKind = "unauthorized"
	KindForbidden    ErrorKind = "forbidden"
)

// Error is returned by every service. Reason is a stable machine-readable
// discriminator inside a kind, e.g. room_unavailable vs invalid_transition.
type Error struct {
	Kind    ErrorKind
	Reason  string
	Message string
	Fields  map[string]string
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *Error) Unwrap() error { return e.Err }

// Is matches on kind and reason so callers can test against the sentinels below.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return e.Kind == t.Kind && (t.Reason == "" || e.Reason == t.Reason)
}

var (
	ErrValidation         = &Error{Kind: KindValidation}
	ErrNotFound           = &Error{Kind: KindNotFound}
	ErrDependency         = &Error{Kind: KindDependency}
	ErrUnauthorized       = &Error{Kind: KindUnauthorized}
	ErrForbidden          = &Error{Kind: KindForbidden}
	ErrRoomUnavailable    = &Error{Kind: KindConflict, Reason: "room_unavailable"}
	ErrInvalidTransition  = &Error{Kind: KindConflict, Reason: "invalid_transition"}
	ErrConcurrentUpdate   = &Error{Kind: KindConflict, Reason: "concurrent_update"}
	ErrDuplicateRoom      = &Error{Kind: KindConflict, Reason: "duplicate_room_number"}
	ErrRoomInUse          = &Error{Kind: KindConflict, Reason: "room_in_use"}
	ErrEmailTaken         = &Error{Kind: KindConflict, Reason: "email_taken"}
	ErrCodeExhausted      = &Error{Kind: KindConflict, Reason: "code_unavailable"}
	ErrReservationInState = &Error{Kind: KindConflict, Reason: "reservation_not_modifiable"}
)

func validationError(format string, args ...any) *Error {
	return &Error{Kind: KindValidation, Reason: "invalid_request", Message: fmt.Sprintf(format, args...)}
}

func notFound(what, id string) *Error {
	return &Error{Kind: KindNotFound, Reason: what + "_not_found", Message: fmt.Sprintf("%s %s not found", what, id)}
}

func conflict(sentinel *Error, format string, args ...any) *Error {
	return &Error{Kind: KindConflict, Reason: sentinel.Reason, Message: fmt.Sprintf(format, args...)}
}

// dependency wraps a storage or infrastructure failure; the caller must not
// treat it as a negative answer.
func dependency(op string, err error) *Error {
	return &Error{Kind: KindDependency, Reason: "dependency_failure", Message: op, Err: err}
}

// AsError extracts the service error from err, if any.
func AsError(err error) (*Error, bool) {
	var e *Error
	if errors.As(err, &e) {
		return e, true
	}
	return nil, false
}

func isReason(err error, sentinel *Error) bool {
	e, ok := AsError(err)
	return ok && e.Kind == sentinel.Kind && e.Reason == sentinel.Reason
}
