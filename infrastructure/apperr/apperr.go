// Package apperr classifies errors that are shown to staff as inline
// messages. Anything else is an internal failure.
package apperr

import (
	"errors"
	"fmt"
)

type Kind string

const (
	KindValidation Kind = "validation"
	KindFormat     Kind = "format"
)

// Error is a user-facing failure. The operation that returned it did not
// mutate anything.
type Error struct {
	kind    Kind
	message string
	cause   error
}

func Validation(format string, args ...any) *Error {
	return &Error{kind: KindValidation, message: fmt.Sprintf(format, args...)}
}

func Format(cause error, format string, args ...any) *Error {
	return &Error{kind: KindFormat, message: fmt.Sprintf(format, args...), cause: cause}
}

func (e *Error) Kind() Kind {
	if e == nil {
		return ""
	}
	return e.kind
}

func (e *Error) Error() string {
	if e == nil {
		return ""
	}
	return e.message
}

func (e *Error) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.cause
}

func As(err error) *Error {
	if err == nil {
		return nil
	}
	var typed *Error
	if errors.As(err, &typed) {
		return typed
	}
	return nil
}

func IsValidation(err error) bool {
	return As(err).Kind() == KindValidation
}

func IsFormat(err error) bool {
	return As(err).Kind() == KindFormat
}

// UserMessage returns the message safe to show inline, or fallback for
// internal failures.
func UserMessage(err error, fallback string) string {
	if typed := As(err); typed != nil {
		return typed.Error()
	}
	return fallback
}
