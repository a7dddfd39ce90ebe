// Package common defines the error taxonomy shared by the AutoKeeper server
// and client. Callers match kinds with errors.Is.
package common

import (
	"errors"
	"fmt"
)

// Error kinds. Repositories return the bare kinds (ErrNotFound, ErrConflict);
// services return *Error values that carry a user-facing message.
var (
	ErrValidation         = errors.New("validation error")
	ErrUnauthenticated    = errors.New("unauthenticated")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrInvalidToken       = errors.New("invalid token")
	ErrNotFound           = errors.New("not found")
	ErrConflict           = errors.New("conflict")
	ErrInternal           = errors.New("internal error")
)

// Error is a classified failure with a message safe to show to API clients.
type Error struct {
	Kind    error
	Message string
}

// NewError builds an *Error of the given kind.
func NewError(kind error, message string) *Error {
	return &Error{Kind: kind, Message: message}
}

// Errorf is NewError with a formatted message.
func Errorf(kind error, format string, args ...any) *Error {
	return &Error{Kind: kind, Message: fmt.Sprintf(format, args...)}
}

func (e *Error) Error() string {
	if e.Message == "" {
		return e.Kind.Error()
	}
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.Kind
}

// KindOf reports the taxonomy kind of err, or ErrInternal for anything
// unclassified.
func KindOf(err error) error {
	for _, k := range []error{
		ErrValidation, ErrUnauthenticated, ErrInvalidCredentials,
		ErrInvalidToken, ErrNotFound, ErrConflict,
	} {
		if errors.Is(err, k) {
			return k
		}
	}
	return ErrInternal
}

// MessageOf returns the user-facing message carried by err, or fallback when
// err carries none.
func MessageOf(err error, fallback string) string {
	var e *Error
	if errors.As(err, &e) && e.Message != "" {
		return e.Message
	}
	return fallback
}
