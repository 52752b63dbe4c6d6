package main

import (
	"context"
	"fmt"

	"github.com/Veraticus/the-books-must-balance/internal/api"
	"github.com/Veraticus/the-books-must-balance/internal/common"
	"github.com/Veraticus/the-books-must-balance/internal/config"
	"github.com/Veraticus/the-books-must-balance/internal/grid"
	"github.com/Veraticus/the-books-must-balance/internal/model"
	"github.com/Veraticus/the-books-must-balance/internal/search"
	"github.com/Veraticus/the-books-must-balance/internal/service"
	"github.com/Veraticus/the-books-must-balance/internal/storage"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

func loadSettings() config.Settings {
	return config.Load(viper.GetViper())
}

// initStorage opens the local database and runs migrations.
func initStorage(ctx context.Context, settings config.Settings) (*storage.SQLiteStorage, error) {
	store, err := storage.NewSQLiteStorage(settings.StoragePath)
	if err != nil {
		return nil, err
	}

	if err := store.Migrate(ctx); err != nil {
		_ = store.Close()
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}

	return store, nil
}

func newClient(settings config.Settings, store api.TokenStore) (*api.Client, error) {
	if err := settings.RequireBackend(); err != nil {
		return nil, err
	}
	return api.NewClient(settings.BaseURL, store,
		api.WithTimeout(settings.Timeout),
		api.WithRetry(common.RetryOptions{MaxAttempts: settings.RetryAttempts}),
	)
}

// viewFlags are the table selection flags shared by list and export.
type viewFlags struct {
	table  string
	search string
	dates  []string
}

func (f *viewFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVarP(&f.table, "table", "t", string(model.TableMovimientos), "table to show (movimientos, cajachica, cuentas, productos)")
	cmd.Flags().StringVarP(&f.search, "search", "s", "", "search term")
	cmd.Flags().StringSliceVarP(&f.dates, "date", "d", nil, "selected dates (YYYY-MM-DD), repeatable")
}

// buildGrid filters the snapshot the way the browser does and returns a
// read-only grid over the result.
func buildGrid(snap model.Snapshot, f viewFlags, hoverItems int) (*grid.Grid, error) {
	table, err := model.ParseTableType(f.table)
	if err != nil {
		return nil, err
	}
	term := f.search
	if len(f.dates) > 0 {
		term = search.JoinDates(term, f.dates)
	}
	g := grid.New(grid.Config{
		Table:          table,
		Cuentas:        snap.Cuentas,
		Movements:      snap.Movimientos,
		HoverItemLimit: hoverItems,
	})
	g.SetRows(search.FilterRows(snap.Rows(table), table, term, f.dates, snap.Cuentas))
	return g, nil
}

// loadSnapshot fetches every table, or reads the cache when cached is set.
func loadSnapshot(ctx context.Context, settings config.Settings, cached bool) (model.Snapshot, error) {
	store, err := initStorage(ctx, settings)
	if err != nil {
		return model.Snapshot{}, err
	}
	defer func() { _ = store.Close() }()

	if cached {
		snap, ok := service.NewLoader(nil, store).Cached(ctx)
		if !ok {
			return model.Snapshot{}, fmt.Errorf("no cached data, run without --cached first: %w", common.ErrNotFound)
		}
		return snap, nil
	}

	client, err := newClient(settings, store)
	if err != nil {
		return model.Snapshot{}, err
	}
	return service.NewLoader(client, store).Load(ctx)
}
