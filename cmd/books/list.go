package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/Veraticus/the-books-must-balance/internal/cli"
	"github.com/Veraticus/the-books-must-balance/internal/grid"
	"github.com/spf13/cobra"
)

func listCmd() *cobra.Command {
	var (
		flags  viewFlags
		cached bool
	)

	cmd := &cobra.Command{
		Use:   "list",
		Short: "Print a filtered table",
		Long: `Print the rows of a table after applying the same search and date filters
the browser uses. Cells are rendered exactly as they appear on screen.

Use --cached to print the last data fetched without contacting the backend.`,
		Example: `  books list --table cuentas --search juan
  books list -t movimientos -d 2024-01-01 -d 2024-01-02`,
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
			return writeTable(os.Stdout, g)
		},
	}

	flags.register(cmd)
	cmd.Flags().BoolVar(&cached, "cached", false, "use the local cache instead of the backend")
	return cmd
}

// writeTable prints every row of g with its rendered cell text.
func writeTable(out io.Writer, g *grid.Grid) error {
	if _, err := fmt.Fprintln(out, cli.FormatTitle(g.Table().Title())); err != nil {
		return err
	}

	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	defer func() {
		if flushErr := w.Flush(); flushErr != nil {
			slog.Error("failed to flush table writer", "error", flushErr)
		}
	}()

	columns := g.Columns()
	header := make([]string, len(columns))
	for i, col := range columns {
		header[i] = cli.TableHeaderStyle.Render(col.Label)
	}
	if _, err := fmt.Fprintln(w, strings.Join(header, "\t")); err != nil {
		return err
	}

	rows := g.Rows()
	if len(rows) == 0 {
		_, err := fmt.Fprintln(w, cli.SubtleStyle.Render("No hay datos disponibles"))
		return err
	}

	cells := make([]string, len(columns))
	for _, row := range rows {
		for i, col := range columns {
			cells[i] = strings.ReplaceAll(g.Cell(row, col).String(), "\t", " ")
		}
		if _, err := fmt.Fprintln(w, strings.Join(cells, "\t")); err != nil {
			return err
		}
	}

	_, err := fmt.Fprintln(w, cli.FormatCount(len(rows)))
	return err
}
