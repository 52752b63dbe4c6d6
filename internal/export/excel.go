// Package export writes a rendered table to an .xlsx workbook.
package export

import (
	"fmt"
	"io"
	"strings"

	"github.com/Veraticus/the-books-must-balance/internal/grid"
	"github.com/xuri/excelize/v2"
)

// Progress is told how many rows have been written so far.
type Progress func(done, total int)

// WriteXLSX writes the grid's rows, in display order and with the display
// text of every cell, to w. Rows keep their classification colour.
func WriteXLSX(w io.Writer, g *grid.Grid, progress Progress) error {
	f := excelize.NewFile()
	defer func() { _ = f.Close() }()

	sheet := g.Table().Title()
	if err := f.SetSheetName("Sheet1", sheet); err != nil {
		return fmt.Errorf("failed to name sheet: %w", err)
	}

	columns := g.Columns()
	header := make([]any, len(columns))
	for i, col := range columns {
		header[i] = col.Label
	}
	if err := f.SetSheetRow(sheet, "A1", &header); err != nil {
		return fmt.Errorf("failed to write header: %w", err)
	}
	headerStyle, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return fmt.Errorf("failed to create header style: %w", err)
	}
	last, err := excelize.CoordinatesToCellName(max(len(columns), 1), 1)
	if err != nil {
		return err
	}
	if err := f.SetCellStyle(sheet, "A1", last, headerStyle); err != nil {
		return fmt.Errorf("failed to style header: %w", err)
	}

	for i, col := range columns {
		name, err := excelize.ColumnNumberToName(i + 1)
		if err != nil {
			return err
		}
		if err := f.SetColWidth(sheet, name, name, float64(max(col.Width, len(col.Label))+2)); err != nil {
			return fmt.Errorf("failed to size column %s: %w", col.Key, err)
		}
	}

	fills := map[string]int{}
	rows := g.Rows()
	for r, row := range rows {
		values := make([]any, len(columns))
		for c, col := range columns {
			values[c] = g.Cell(row, col).String()
		}
		cell, err := excelize.CoordinatesToCellName(1, r+2)
		if err != nil {
			return err
		}
		if err := f.SetSheetRow(sheet, cell, &values); err != nil {
			return fmt.Errorf("failed to write row %d: %w", row.RowID(), err)
		}

		if color := g.RowColor(row); color != "" {
			style, ok := fills[color]
			if !ok {
				style, err = f.NewStyle(&excelize.Style{
					Fill: excelize.Fill{Type: "pattern", Pattern: 1, Color: []string{strings.TrimPrefix(color, "#")}},
				})
				if err != nil {
					return fmt.Errorf("failed to create fill: %w", err)
				}
				fills[color] = style
			}
			end, _ := excelize.CoordinatesToCellName(len(columns), r+2)
			if err := f.SetCellStyle(sheet, cell, end, style); err != nil {
				return fmt.Errorf("failed to colour row %d: %w", row.RowID(), err)
			}
		}

		if progress != nil {
			progress(r+1, len(rows))
		}
	}

	if _, err := f.WriteTo(w); err != nil {
		return fmt.Errorf("failed to write workbook: %w", err)
	}
	return nil
}
