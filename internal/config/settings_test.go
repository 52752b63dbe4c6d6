package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/Veraticus/the-books-must-balance/internal/common"
	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	v := viper.New()
	SetDefaults(v)
	s := Load(v)

	assert.Equal(t, 30*time.Second, s.Timeout)
	assert.Equal(t, 3, s.RetryAttempts)
	assert.False(t, s.Admin)
	assert.True(t, s.Mouse)
	assert.Equal(t, 5, s.HoverItemLimit)
	assert.Equal(t, "default", s.Theme)
	assert.Equal(t, "books.db", filepath.Base(s.StoragePath))
	assert.ErrorIs(t, s.RequireBackend(), common.ErrMissingConfig)
}

func TestLoadFromFileAndEnv(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
api:
  base_url: https://example.test/api
  timeout: 5s
auth:
  admin: true
ui:
  hover_items: 3
`), 0600))

	t.Setenv("BOOKS_UI_MOUSE", "false")

	v := viper.New()
	SetDefaults(v)
	v.SetConfigFile(path)
	v.SetEnvPrefix("BOOKS")
	v.SetEnvKeyReplacer(EnvKeyReplacer)
	v.AutomaticEnv()
	require.NoError(t, v.ReadInConfig())

	s := Load(v)
	assert.Equal(t, "https://example.test/api", s.BaseURL)
	assert.Equal(t, 5*time.Second, s.Timeout)
	assert.True(t, s.Admin)
	assert.Equal(t, 3, s.HoverItemLimit)
	assert.False(t, s.Mouse)
	assert.NoError(t, s.RequireBackend())
}

func TestRequireBackendScheme(t *testing.T) {
	s := Settings{BaseURL: "example.test/api"}
	assert.ErrorIs(t, s.RequireBackend(), common.ErrInvalidConfig)
}

func TestExpandPath(t *testing.T) {
	home, err := os.UserHomeDir()
	require.NoError(t, err)
	t.Setenv("BOOKS_TEST_DIR", "/tmp/books")

	assert.Equal(t, "", ExpandPath(""))
	assert.Equal(t, home, ExpandPath("~"))
	assert.Equal(t, filepath.Join(home, "x.db"), ExpandPath("~/x.db"))
	assert.Equal(t, "/tmp/books/x.db", ExpandPath("$BOOKS_TEST_DIR/x.db"))
}
