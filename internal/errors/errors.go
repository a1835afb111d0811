package errors

import (
	"errors"
	"fmt"
)

// Kind classifies a failure independently of the transport.
type Kind string

const (
	KindInternal           Kind = "INTERNAL"
	KindInvalidArgument    Kind = "INVALID_ARGUMENT"
	KindNotFound           Kind = "NOT_FOUND"
	KindConflict           Kind = "CONFLICT"
	KindStorageUnavailable Kind = "STORAGE_UNAVAILABLE"
	KindUnauthenticated    Kind = "UNAUTHENTICATED"
)

// Error is the domain error carried between repository, core and service layers.
type Error struct {
	Kind    Kind
	Message string
	Cause   error
}

func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Cause)
	}
	return e.Message
}

func (e *Error) Unwrap() error { return e.Cause }

func New(kind Kind, msg string) error {
	return &Error{Kind: kind, Message: msg}
}

func Wrap(kind Kind, msg string, cause error) error {
	return &Error{Kind: kind, Message: msg, Cause: cause}
}

func InvalidArgument(msg string) error { return New(KindInvalidArgument, msg) }

func NotFound(msg string) error { return New(KindNotFound, msg) }

func Conflict(msg string) error { return New(KindConflict, msg) }

func Unauthenticated(msg string) error { return New(KindUnauthenticated, msg) }

func Internal(msg string) error { return New(KindInternal, msg) }

// Unavailable marks a transient storage failure. Callers may retry.
func Unavailable(op string, cause error) error {
	return Wrap(KindStorageUnavailable, op+" failed", cause)
}

// KindOf returns the Kind of the first *Error in the chain, or KindInternal.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return KindInternal
}

// IsKind reports whether err carries the given kind.
func IsKind(err error, kind Kind) bool {
	if err == nil {
		return false
	}
	var e *Error
	return errors.As(err, &e) && e.Kind == kind
}
