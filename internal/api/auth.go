package api

import (
	"context"
	"fmt"
	"net/http"

	"github.com/Veraticus/the-books-must-balance/internal/common"
	"golang.org/x/oauth2"
)

type tokenPair struct {
	Access  string `json:"access"`
	Refresh string `json:"refresh"`
}

type credentials struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

func (p tokenPair) token(previousRefresh string) *oauth2.Token {
	tok := &oauth2.Token{AccessToken: p.Access, RefreshToken: p.Refresh, TokenType: "Bearer"}
	if tok.RefreshToken == "" {
		tok.RefreshToken = previousRefresh
	}
	return tok
}

// Login exchanges credentials for a token pair and stores it.
func (c *Client) Login(ctx context.Context, username, password string) error {
	var pair tokenPair
	if err := c.postJSON(ctx, "token/", credentials{Username: username, Password: password}, &pair); err != nil {
		return fmt.Errorf("login failed: %w", err)
	}
	if pair.Access == "" {
		return fmt.Errorf("login failed: %w", common.ErrUnauthorized)
	}
	if err := c.store.SaveToken(ctx, pair.token("")); err != nil {
		return fmt.Errorf("failed to store token: %w", err)
	}
	common.LogInfo("Logged in", common.Fields{"user": username})
	return nil
}

// refresh trades the refresh token for a new access token. Any failure clears
// the stored pair and returns common.ErrSessionExpired. Concurrent callers
// that lost the race reuse the token the winner stored.
func (c *Client) refresh(ctx context.Context, stale *oauth2.Token) (*oauth2.Token, error) {
	c.refreshMu.Lock()
	defer c.refreshMu.Unlock()

	current, err := c.currentToken(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load token: %w", err)
	}
	if current != nil && stale != nil && current.AccessToken != stale.AccessToken {
		return current, nil
	}
	if current == nil || current.RefreshToken == "" {
		return nil, c.expire(ctx, common.ErrUnauthorized)
	}

	common.LogInfo("Refreshing access token", nil)
	var pair tokenPair
	if err := c.postJSON(ctx, "token/refresh/", map[string]string{"refresh": current.RefreshToken}, &pair); err != nil {
		return nil, c.expire(ctx, err)
	}
	if pair.Access == "" {
		return nil, c.expire(ctx, common.ErrUnauthorized)
	}

	tok := pair.token(current.RefreshToken)
	if err := c.store.SaveToken(ctx, tok); err != nil {
		return nil, fmt.Errorf("failed to store token: %w", err)
	}
	return tok, nil
}

func (c *Client) expire(ctx context.Context, cause error) error {
	common.LogError(cause, "Token refresh failed, clearing session", nil)
	if err := c.store.ClearToken(ctx); err != nil {
		common.LogError(err, "Failed to clear tokens", nil)
	}
	return common.NewUserError("La sesión expiró, vuelva a iniciar sesión", fmt.Errorf("%w: %w", common.ErrSessionExpired, cause))
}

// postJSON posts without authentication.
func (c *Client) postJSON(ctx context.Context, path string, in, out any) error {
	return c.doUnauthenticated(ctx, http.MethodPost, path, in, out)
}
