// Package storage keeps the session tokens and the last fetched table
// snapshots in a local SQLite database.
package storage

import (
	"context"
	"errors"
	"fmt"
	"strings"
)

// Argument errors.
var (
	ErrNilContext   = errors.New("context cannot be nil")
	ErrEmptyString  = errors.New("string parameter cannot be empty")
	ErrNilParameter = errors.New("parameter cannot be nil")
	ErrInvalidJSON  = errors.New("payload is not valid JSON")
)

func requireContext(ctx context.Context) error {
	if ctx == nil {
		return ErrNilContext
	}
	return ctx.Err()
}

func requireNonBlank(value, name string) error {
	if strings.TrimSpace(value) != "" {
		return nil
	}
	return fmt.Errorf("%w: %s", ErrEmptyString, name)
}
