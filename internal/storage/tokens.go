package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/Veraticus/the-books-must-balance/internal/common"
	"golang.org/x/oauth2"
)

// Token returns the stored session token or common.ErrNotFound.
func (s *SQLiteStorage) Token(ctx context.Context) (*oauth2.Token, error) {
	if err := requireContext(ctx); err != nil {
		return nil, err
	}

	var (
		tok       oauth2.Token
		refresh   sql.NullString
		tokenType sql.NullString
		expiry    sql.NullTime
	)
	err := s.db.QueryRowContext(ctx, `
		SELECT access_token, refresh_token, token_type, expiry
		FROM credentials WHERE id = 1
	`).Scan(&tok.AccessToken, &refresh, &tokenType, &expiry)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, common.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load token: %w", err)
	}

	tok.RefreshToken = refresh.String
	tok.TokenType = tokenType.String
	if expiry.Valid {
		tok.Expiry = expiry.Time
	}
	return &tok, nil
}

// SaveToken replaces the stored session token.
func (s *SQLiteStorage) SaveToken(ctx context.Context, tok *oauth2.Token) error {
	if err := requireContext(ctx); err != nil {
		return err
	}
	if tok == nil {
		return fmt.Errorf("%w: token", ErrNilParameter)
	}
	if err := requireNonBlank(tok.AccessToken, "access token"); err != nil {
		return err
	}

	var expiry sql.NullTime
	if !tok.Expiry.IsZero() {
		expiry = sql.NullTime{Time: tok.Expiry, Valid: true}
	}

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO credentials (id, access_token, refresh_token, token_type, expiry, updated_at)
		VALUES (1, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			access_token = excluded.access_token,
			refresh_token = excluded.refresh_token,
			token_type = excluded.token_type,
			expiry = excluded.expiry,
			updated_at = excluded.updated_at
	`, tok.AccessToken, tok.RefreshToken, tok.TokenType, expiry, time.Now().UTC())
	if err != nil {
		return fmt.Errorf("failed to save token: %w", err)
	}
	return nil
}

// ClearToken deletes the stored session token.
func (s *SQLiteStorage) ClearToken(ctx context.Context) error {
	if err := requireContext(ctx); err != nil {
		return err
	}
	if _, err := s.db.ExecContext(ctx, `DELETE FROM credentials`); err != nil {
		return fmt.Errorf("failed to clear token: %w", err)
	}
	return nil
}
