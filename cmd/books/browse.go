package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/Veraticus/the-books-must-balance/internal/common"
	"github.com/Veraticus/the-books-must-balance/internal/model"
	"github.com/Veraticus/the-books-must-balance/internal/search"
	"github.com/Veraticus/the-books-must-balance/internal/service"
	"github.com/Veraticus/the-books-must-balance/internal/tui"
	"github.com/Veraticus/the-books-must-balance/internal/tui/themes"
	"github.com/spf13/cobra"
	xterm "golang.org/x/term"
)

func browseCmd() *cobra.Command {
	var flags viewFlags

	cmd := &cobra.Command{
		Use:   "browse",
		Short: "Browse the tables interactively",
		Long: `Open the interactive table browser.

Move with the arrow keys or the mouse, type / to search, f to pick dates and
enter to open the row menu. Edits and deletes ask for confirmation before
anything is sent to the backend.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runBrowse(cmd, flags)
		},
	}

	flags.register(cmd)
	return cmd
}

func runBrowse(cmd *cobra.Command, flags viewFlags) error {
	ctx := cmd.Context()
	settings := loadSettings()

	table, err := model.ParseTableType(flags.table)
	if err != nil {
		return err
	}

	store, err := initStorage(ctx, settings)
	if err != nil {
		return err
	}
	defer func() { _ = store.Close() }()

	client, err := newClient(settings, store)
	if err != nil {
		return err
	}
	if _, err := store.Token(ctx); err != nil {
		return fmt.Errorf("not logged in, run 'books login' first: %w", err)
	}

	logFile, err := openLogFile(settings.LogFile)
	if err != nil {
		return err
	}
	defer func() { _ = logFile.Close() }()
	if err := common.SetupLoggerTo(logFile, common.ParseLevel(settings.LogLevel), settings.LogFormat); err != nil {
		return fmt.Errorf("failed to setup logging: %w", err)
	}

	term := flags.search
	if len(flags.dates) > 0 {
		term = search.JoinDates(term, flags.dates)
	}

	opts := []tui.Option{
		tui.WithLoader(service.NewLoader(client, store)),
		tui.WithBackend(client),
		tui.WithTable(table),
		tui.WithFilter(term, flags.dates),
		tui.WithAdmin(settings.Admin),
		tui.WithFeatures(settings.Mouse, settings.HoverItemLimit),
		tui.WithTheme(themes.GetTheme(settings.Theme)),
	}
	if width, height, err := xterm.GetSize(int(os.Stdout.Fd())); err == nil {
		opts = append(opts, tui.WithSize(width, height))
	}

	return tui.Run(ctx, opts...)
}

func openLogFile(path string) (*os.File, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o750); err != nil {
		return nil, fmt.Errorf("failed to create log directory: %w", err)
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o600)
	if err != nil {
		return nil, fmt.Errorf("failed to open log file: %w", err)
	}
	return f, nil
}
