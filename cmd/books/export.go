package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/Veraticus/the-books-must-balance/internal/cli"
	"github.com/Veraticus/the-books-must-balance/internal/export"
	"github.com/Veraticus/the-books-must-balance/internal/grid"
	"github.com/spf13/cobra"
)

func exportCmd() *cobra.Command {
	var (
		flags  viewFlags
		out    string
		cached bool
	)

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Write a filtered table to an .xlsx file",
		Long: `Export the rows of a table, filtered like the browser filters them, to an
Excel workbook. Cells keep their on-screen text and rows keep their colour.`,
		Example: `  books export --table movimientos --search cobranza --out cobranzas.xlsx`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			settings := loadSettings()
			snap, err := loadSnapshot(cmd.Context(), settings, cached)
			if err != nil {
				return err
			}
			g, err := buildGrid(snap, flags, settings.HoverItemLimit)
			if err != nil {
				return err
			}
			if out == "" {
				out = string(g.Table()) + ".xlsx"
			}
			if err := exportFile(out, g, os.Stderr); err != nil {
				return err
			}
			cmd.Println(cli.FormatSuccess(fmt.Sprintf("%d filas exportadas a %s", len(g.Rows()), out)))
			return nil
		},
	}

	flags.register(cmd)
	cmd.Flags().StringVarP(&out, "out", "o", "", "output file (default: <table>.xlsx)")
	cmd.Flags().BoolVar(&cached, "cached", false, "use the local cache instead of the backend")
	return cmd
}

// exportFile writes g to path, drawing progress on progressOut.
func exportFile(path string, g *grid.Grid, progressOut io.Writer) (err error) {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", path, err)
	}
	defer func() {
		if closeErr := f.Close(); closeErr != nil && err == nil {
			err = fmt.Errorf("failed to close %s: %w", path, closeErr)
		}
	}()

	bar := cli.NewProgress(progressOut, len(g.Rows()), "Exportando filas...")
	progress := func(done, _ int) {
		if setErr := bar.Set(done); setErr != nil {
			slog.Warn("Failed to update progress bar", "error", setErr)
		}
	}

	if err := export.WriteXLSX(f, g, progress); err != nil {
		return fmt.Errorf("failed to export: %w", err)
	}
	return nil
}
