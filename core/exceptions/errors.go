package exceptions

import (
	"errors"
	"fmt"
)

type Kind int

const (
	Internal Kind = iota
	InvalidArgument
	NotFound
	Conflict
)

func (k Kind) String() string {
	switch k {
	case InvalidArgument:
		return "invalid_argument"
	case NotFound:
		return "not_found"
	case Conflict:
		return "conflict"
	}
	return "internal"
}

// Error is the only error type the board packages hand to their callers.
type Error struct {
	Kind    Kind
	Message string
	cause   error
}

func (e *Error) Error() string {
	if e.cause != nil {
		return e.Message + ": " + e.cause.Error()
	}
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.cause
}

func Invalid(format string, args ...interface{}) error {
	return &Error{Kind: InvalidArgument, Message: fmt.Sprintf(format, args...)}
}

func Missing(format string, args ...interface{}) error {
	return &Error{Kind: NotFound, Message: fmt.Sprintf(format, args...)}
}

func Conflicting(format string, args ...interface{}) error {
	return &Error{Kind: Conflict, Message: fmt.Sprintf(format, args...)}
}

// Wrap turns a persistence failure into an internal error. Typed errors pass
// through untouched.
func Wrap(err error, message string) error {
	if err == nil {
		return nil
	}
	var typed *Error
	if errors.As(err, &typed) {
		return err
	}
	return &Error{Kind: Internal, Message: message, cause: err}
}

// KindOf reports Internal for anything that is not a typed error.
func KindOf(err error) Kind {
	var typed *Error
	if errors.As(err, &typed) {
		return typed.Kind
	}
	return Internal
}

func IsNotFound(err error) bool {
	return err != nil && KindOf(err) == NotFound
}

func IsConflict(err error) bool {
	return err != nil && KindOf(err) == Conflict
}

func IsInvalid(err error) bool {
	return err != nil && KindOf(err) == InvalidArgument
}
