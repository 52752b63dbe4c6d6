package tui

import (
	"context"
	"time"

	"github.com/Veraticus/the-books-must-balance/internal/grid"
	"github.com/Veraticus/the-books-must-balance/internal/model"
	"github.com/Veraticus/the-books-must-balance/internal/tui/themes"
	"github.com/Veraticus/the-books-must-balance/internal/workflow"
)

// Loader supplies table snapshots.
type Loader interface {
	Load(ctx context.Context) (model.Snapshot, error)
	Cached(ctx context.Context) (model.Snapshot, bool)
}

// Config holds TUI configuration.
type Config struct {
	Theme          themes.Theme
	Loader         Loader
	Backend        workflow.Backend
	Table          model.TableType
	Search         string
	Dates          []string
	Width          int
	Height         int
	HoverItemLimit int
	LoadTimeout    time.Duration
	Admin          bool
	MouseSupport   bool
}

// Option is a functional option for configuring the TUI.
type Option func(*Config)

func defaultConfig() Config {
	return Config{
		Theme:          themes.Default,
		Table:          model.TableMovimientos,
		Width:          120,
		Height:         32,
		HoverItemLimit: grid.DefaultHoverItems,
		LoadTimeout:    30 * time.Second,
		MouseSupport:   true,
	}
}

// WithLoader sets where snapshots come from.
func WithLoader(l Loader) Option {
	return func(c *Config) {
		c.Loader = l
	}
}

// WithBackend sets where confirmed edits and deletes are sent.
func WithBackend(b workflow.Backend) Option {
	return func(c *Config) {
		c.Backend = b
	}
}

// WithTheme sets the visual theme.
func WithTheme(theme themes.Theme) Option {
	return func(c *Config) {
		c.Theme = theme
	}
}

// WithSize sets the initial terminal size.
func WithSize(width, height int) Option {
	return func(c *Config) {
		c.Width = width
		c.Height = height
	}
}

// WithTable sets the view shown first.
func WithTable(t model.TableType) Option {
	return func(c *Config) {
		c.Table = t
	}
}

// WithFilter sets the initial search term and selected dates.
func WithFilter(search string, dates []string) Option {
	return func(c *Config) {
		c.Search = search
		c.Dates = dates
	}
}

// WithAdmin grants inline editing.
func WithAdmin(admin bool) Option {
	return func(c *Config) {
		c.Admin = admin
	}
}

// WithFeatures configures pointer support and the hover preview length.
func WithFeatures(mouse bool, hoverItems int) Option {
	return func(c *Config) {
		c.MouseSupport = mouse
		if hoverItems > 0 {
			c.HoverItemLimit = hoverItems
		}
	}
}
