// Package common holds the errors, retry loop and logging setup shared by
// the books packages.
package common

import (
	"errors"
	"fmt"
)

// Sentinels callers match with errors.Is.
var (
	ErrNotFound         = errors.New("not found")
	ErrUnauthorized     = errors.New("unauthorized")
	ErrSessionExpired   = errors.New("session expired, log in again")
	ErrUnsupportedTable = errors.New("unsupported table")
	ErrValidation       = errors.New("validation failed")
	ErrMissingConfig    = errors.New("missing configuration")
	ErrInvalidConfig    = errors.New("invalid configuration")
)

// UserError pairs an underlying failure with the sentence a dialog shows.
type UserError struct {
	Err         error
	UserMessage string
}

func (e *UserError) Error() string {
	if e.Err == nil {
		return e.UserMessage
	}
	return fmt.Sprintf("%s: %v", e.UserMessage, e.Err)
}

func (e *UserError) Unwrap() error { return e.Err }

// NewUserError wraps err with a message meant for the user.
func NewUserError(userMessage string, err error) error {
	return &UserError{Err: err, UserMessage: userMessage}
}

// UserMessage returns the text a dialog should display for err: the
// outermost UserError message, or err.Error() when there is none.
func UserMessage(err error) string {
	var ue *UserError
	switch {
	case err == nil:
		return ""
	case errors.As(err, &ue):
		return ue.UserMessage
	default:
		return err.Error()
	}
}
