package common

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var fastRetry = RetryOptions{
	MaxAttempts:  3,
	InitialDelay: time.Millisecond,
	MaxDelay:     time.Millisecond,
}

func TestWithRetry(t *testing.T) {
	boom := errors.New("boom")

	tests := []struct {
		name      string
		failures  int
		err       error
		wantCalls int
		wantErr   error
	}{
		{name: "first try", failures: 0, err: boom, wantCalls: 1},
		{name: "recovers", failures: 2, err: boom, wantCalls: 3},
		{name: "exhausted", failures: 5, err: boom, wantCalls: 3, wantErr: ErrMaxRetries},
		{name: "rate limited", failures: 1, err: ErrRateLimit, wantCalls: 2},
		{
			name:      "final error stops at once",
			failures:  5,
			err:       &RetryableError{Err: boom, Retryable: false},
			wantCalls: 1,
			wantErr:   boom,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			calls := 0
			err := WithRetry(context.Background(), func() error {
				calls++
				if calls <= tt.failures {
					return tt.err
				}
				return nil
			}, fastRetry)

			assert.Equal(t, tt.wantCalls, calls)
			if tt.wantErr == nil {
				assert.NoError(t, err)
				return
			}
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestWithRetryStopsOnCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	calls := 0
	err := WithRetry(ctx, func() error {
		calls++
		cancel()
		return errors.New("offline")
	}, RetryOptions{MaxAttempts: 5, InitialDelay: time.Hour})

	assert.ErrorIs(t, err, context.Canceled)
	assert.Equal(t, 1, calls)
}

func TestUserMessage(t *testing.T) {
	assert.Empty(t, UserMessage(nil))
	assert.Equal(t, "plain", UserMessage(errors.New("plain")))

	err := NewUserError("No se pudo guardar", ErrUnauthorized)
	assert.Equal(t, "No se pudo guardar", UserMessage(err))
	assert.Equal(t, "No se pudo guardar", UserMessage(errors.Join(errors.New("ctx"), err)))
	assert.ErrorIs(t, err, ErrUnauthorized)
	assert.Equal(t, "No se pudo guardar: unauthorized", err.Error())
}

func TestParseLevel(t *testing.T) {
	tests := map[string]slog.Level{
		"debug":   slog.LevelDebug,
		" WARN ":  slog.LevelWarn,
		"warning": slog.LevelWarn,
		"error":   slog.LevelError,
		"info":    slog.LevelInfo,
		"verbose": slog.LevelInfo,
	}
	for name, want := range tests {
		assert.Equal(t, want, ParseLevel(name), name)
	}
}

func TestSetupLoggerTo(t *testing.T) {
	defer slog.SetDefault(slog.Default())

	var buf bytes.Buffer
	require.NoError(t, SetupLoggerTo(&buf, slog.LevelInfo, "json"))

	LogDebug("hidden", nil)
	LogError(errors.New("timeout"), "Patch failed", Fields{"resource": "cuentas", "id": 7})

	var record map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &record))
	assert.Equal(t, "Patch failed", record["msg"])
	assert.Equal(t, "timeout", record["error"])
	assert.Equal(t, "cuentas", record["resource"])
	assert.InDelta(t, 7, record["id"], 0)

	assert.ErrorIs(t, SetupLoggerTo(&buf, slog.LevelInfo, "xml"), ErrInvalidConfig)
}
