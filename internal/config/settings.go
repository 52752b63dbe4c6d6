package config

import (
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/Veraticus/the-books-must-balance/internal/common"
	"github.com/spf13/viper"
)

// AppName names the config directory and the env prefix.
const AppName = "books"

// EnvKeyReplacer maps nested keys onto env names: api.base_url reads
// BOOKS_API_BASE_URL.
var EnvKeyReplacer = strings.NewReplacer(".", "_")

// Settings is the typed view of the configuration.
type Settings struct {
	BaseURL        string
	StoragePath    string
	LogLevel       string
	LogFormat      string
	LogFile        string
	Theme          string
	Timeout        time.Duration
	RetryAttempts  int
	HoverItemLimit int
	Admin          bool
	Mouse          bool
}

// Dir returns the configuration directory, ~/.config/books.
func Dir() string {
	return ExpandPath(filepath.Join("~", ".config", AppName))
}

// SetDefaults registers the defaults on v.
func SetDefaults(v *viper.Viper) {
	v.SetDefault("api.timeout", 30*time.Second)
	v.SetDefault("api.retry.max_attempts", 3)
	v.SetDefault("auth.admin", false)
	v.SetDefault("storage.path", filepath.Join(Dir(), AppName+".db"))
	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.format", "console")
	v.SetDefault("logging.file", filepath.Join(Dir(), AppName+".log"))
	v.SetDefault("ui.mouse", true)
	v.SetDefault("ui.hover_items", 5)
	v.SetDefault("ui.theme", "default")
}

// Load reads the settings from v.
func Load(v *viper.Viper) Settings {
	return Settings{
		BaseURL:        strings.TrimSpace(v.GetString("api.base_url")),
		Timeout:        v.GetDuration("api.timeout"),
		RetryAttempts:  v.GetInt("api.retry.max_attempts"),
		Admin:          v.GetBool("auth.admin"),
		StoragePath:    ExpandPath(v.GetString("storage.path")),
		LogLevel:       v.GetString("logging.level"),
		LogFormat:      v.GetString("logging.format"),
		LogFile:        ExpandPath(v.GetString("logging.file")),
		Mouse:          v.GetBool("ui.mouse"),
		HoverItemLimit: v.GetInt("ui.hover_items"),
		Theme:          v.GetString("ui.theme"),
	}
}

// RequireBackend checks the settings needed to reach the backend.
func (s Settings) RequireBackend() error {
	if s.BaseURL == "" {
		return fmt.Errorf("%w: api.base_url (set it in config.yaml or BOOKS_API_BASE_URL)", common.ErrMissingConfig)
	}
	if !strings.HasPrefix(s.BaseURL, "http://") && !strings.HasPrefix(s.BaseURL, "https://") {
		return fmt.Errorf("%w: api.base_url must be an http(s) URL, got %q", common.ErrInvalidConfig, s.BaseURL)
	}
	return nil
}
