package tui

import (
	"context"
	"errors"
	"fmt"

	"github.com/Veraticus/the-books-must-balance/internal/common"
	tea "github.com/charmbracelet/bubbletea"
)

// Run starts the table browser and blocks until the user quits or ctx is
// cancelled.
func Run(ctx context.Context, opts ...Option) error {
	cfg := defaultConfig()
	for _, opt := range opts {
		opt(&cfg)
	}
	if cfg.Loader == nil {
		return fmt.Errorf("%w: loader", common.ErrMissingConfig)
	}

	programOpts := []tea.ProgramOption{
		tea.WithAltScreen(),
		tea.WithContext(ctx),
	}
	if cfg.MouseSupport {
		programOpts = append(programOpts, tea.WithMouseAllMotion())
	}

	common.LogInfo("Starting browser", common.Fields{
		"table": cfg.Table,
		"admin": cfg.Admin,
		"mouse": cfg.MouseSupport,
	})
	if _, err := tea.NewProgram(newModel(cfg), programOpts...).Run(); err != nil {
		if errors.Is(err, tea.ErrProgramKilled) && ctx.Err() != nil {
			return ctx.Err()
		}
		return fmt.Errorf("TUI error: %w", err)
	}
	return nil
}
