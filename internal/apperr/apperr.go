// Package apperr defines the error categories the CLI treats specially.
//
//	UserError     bad flag values, missing artifact files, values outside a
//	              vocabulary or range. Only the message is printed. Exit 1.
//
//	ErrCancelled  the user aborted the interactive form. Exit 0.
//
// Everything else is a plain error wrapped with fmt.Errorf("context: %w", err).
package apperr

import (
	"errors"
	"fmt"
)

// ErrCancelled is returned when the user explicitly aborts an interactive
// operation.
var ErrCancelled = errors.New("operation cancelled")

// UserError is an error caused by invalid or missing user input.
type UserError struct {
	Message string
	Err     error
}

func (e *UserError) Error() string { return e.Message }

func (e *UserError) Unwrap() error { return e.Err }

// User creates a UserError with the given message.
func User(msg string) error { return &UserError{Message: msg} }

// Userf creates a formatted UserError. A %w verb is kept as the wrapped error.
func Userf(format string, args ...any) error {
	err := fmt.Errorf(format, args...)
	return &UserError{Message: err.Error(), Err: errors.Unwrap(err)}
}

// IsUser reports whether err is (or wraps) a *UserError.
func IsUser(err error) bool {
	var u *UserError
	return errors.As(err, &u)
}
