package api

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/Veraticus/the-books-must-balance/internal/common"
)

// Error is a non-2xx backend response.
type Error struct {
	Message string
	Status  int
}

func (e *Error) Error() string {
	return e.Message
}

// Unwrap maps statuses onto the shared sentinels.
func (e *Error) Unwrap() error {
	switch e.Status {
	case http.StatusUnauthorized:
		return common.ErrUnauthorized
	case http.StatusNotFound:
		return common.ErrNotFound
	case http.StatusTooManyRequests:
		return common.ErrRateLimit
	}
	return nil
}

type errorBody struct {
	Message string `json:"message"`
	Detail  string `json:"detail"`
}

// parseError builds an Error from a response. The body may carry message or
// detail; anything else falls back to "Error <status>: <status text>".
func parseError(resp *http.Response) *Error {
	apiErr := &Error{Status: resp.StatusCode}

	raw, _ := io.ReadAll(io.LimitReader(resp.Body, 64<<10))
	var body errorBody
	if err := json.Unmarshal(raw, &body); err == nil {
		apiErr.Message = strings.TrimSpace(body.Message)
		if apiErr.Message == "" {
			apiErr.Message = strings.TrimSpace(body.Detail)
		}
	}
	if apiErr.Message == "" {
		apiErr.Message = fmt.Sprintf("Error %d: %s", resp.StatusCode, http.StatusText(resp.StatusCode))
	}
	return apiErr
}

// retryable marks client errors and expired sessions as final so reads only
// retry transport failures and 5xx or 429 responses.
func retryable(err error) error {
	if err == nil {
		return nil
	}
	var apiErr *Error
	final := errors.As(err, &apiErr) && apiErr.Status < http.StatusInternalServerError && apiErr.Status != http.StatusTooManyRequests
	if final || errors.Is(err, common.ErrSessionExpired) || errors.Is(err, context.Canceled) {
		return &common.RetryableError{Err: err, Retryable: false}
	}
	return err
}
