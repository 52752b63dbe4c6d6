// Package api is the client for the bookkeeping REST backend. Every call
// carries the stored bearer token; a 401 triggers one refresh and one retry.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/Veraticus/the-books-must-balance/internal/common"
	"github.com/google/uuid"
	"golang.org/x/oauth2"
)

// TokenStore persists the access/refresh pair.
type TokenStore interface {
	// Token returns the stored token or common.ErrNotFound.
	Token(ctx context.Context) (*oauth2.Token, error)
	SaveToken(ctx context.Context, tok *oauth2.Token) error
	ClearToken(ctx context.Context) error
}

// Client talks to the backend.
type Client struct {
	store      TokenStore
	httpClient *http.Client
	baseURL    string
	retry      common.RetryOptions
	refreshMu  sync.Mutex
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient replaces the underlying HTTP client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.httpClient = hc }
}

// WithTimeout sets the per-request timeout.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		if d > 0 {
			c.httpClient.Timeout = d
		}
	}
}

// WithRetry sets the retry policy for reads.
func WithRetry(opts common.RetryOptions) Option {
	return func(c *Client) { c.retry = opts }
}

// NewClient creates a client for baseURL, e.g. https://host/api.
func NewClient(baseURL string, store TokenStore, opts ...Option) (*Client, error) {
	baseURL = strings.TrimRight(strings.TrimSpace(baseURL), "/")
	if baseURL == "" {
		return nil, fmt.Errorf("%w: api.base_url", common.ErrMissingConfig)
	}
	if store == nil {
		return nil, fmt.Errorf("%w: token store", common.ErrMissingConfig)
	}
	c := &Client{
		baseURL:    baseURL,
		store:      store,
		httpClient: &http.Client{Timeout: 30 * time.Second},
		retry:      common.RetryOptions{MaxAttempts: 3},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

func (c *Client) url(path string) string {
	return c.baseURL + "/" + strings.TrimLeft(path, "/")
}

func (c *Client) send(ctx context.Context, method, path string, payload []byte, tok *oauth2.Token) (*http.Response, error) {
	var body io.Reader
	if payload != nil {
		body = bytes.NewReader(payload)
	}
	req, err := http.NewRequestWithContext(ctx, method, c.url(path), body)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	requestID := uuid.NewString()
	req.Header.Set("X-Request-ID", requestID)
	if tok != nil && tok.AccessToken != "" {
		tok.SetAuthHeader(req)
	}

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	fields := common.Fields{
		"method":     method,
		"path":       path,
		"request_id": requestID,
		"duration":   time.Since(start),
	}
	if err != nil {
		common.LogDebug("API request failed", fields)
		return nil, fmt.Errorf("%s %s: %w", method, path, err)
	}
	fields["status"] = resp.StatusCode
	common.LogDebug("API request", fields)
	return resp, nil
}

func (c *Client) currentToken(ctx context.Context) (*oauth2.Token, error) {
	tok, err := c.store.Token(ctx)
	if errors.Is(err, common.ErrNotFound) {
		return nil, nil
	}
	return tok, err
}

func encode(in any) ([]byte, error) {
	if in == nil {
		return nil, nil
	}
	payload, err := json.Marshal(in)
	if err != nil {
		return nil, fmt.Errorf("failed to encode request: %w", err)
	}
	return payload, nil
}

// decode closes resp, turning error statuses into *Error and decoding a JSON
// body into out.
func decode(resp *http.Response, out any) error {
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode >= http.StatusBadRequest {
		return parseError(resp)
	}
	if out == nil || resp.StatusCode == http.StatusNoContent {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil && !errors.Is(err, io.EOF) {
		return fmt.Errorf("failed to decode response: %w", err)
	}
	return nil
}

// do sends an authenticated request and decodes a JSON response into out.
func (c *Client) do(ctx context.Context, method, path string, in, out any) error {
	payload, err := encode(in)
	if err != nil {
		return err
	}

	tok, err := c.currentToken(ctx)
	if err != nil {
		return fmt.Errorf("failed to load token: %w", err)
	}

	resp, err := c.send(ctx, method, path, payload, tok)
	if err != nil {
		return err
	}
	if resp.StatusCode == http.StatusUnauthorized {
		_ = resp.Body.Close()
		if tok, err = c.refresh(ctx, tok); err != nil {
			return err
		}
		if resp, err = c.send(ctx, method, path, payload, tok); err != nil {
			return err
		}
	}
	return decode(resp, out)
}

func (c *Client) doUnauthenticated(ctx context.Context, method, path string, in, out any) error {
	payload, err := encode(in)
	if err != nil {
		return err
	}
	resp, err := c.send(ctx, method, path, payload, nil)
	if err != nil {
		return err
	}
	return decode(resp, out)
}

// get retries transport failures and 5xx responses.
func (c *Client) get(ctx context.Context, path string, out any) error {
	return common.WithRetry(ctx, func() error {
		return retryable(c.do(ctx, http.MethodGet, path, nil, out))
	}, c.retry)
}
