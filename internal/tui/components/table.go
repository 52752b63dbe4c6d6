// Package components holds the reusable pieces drawn by the terminal client.
package components

import (
	"strings"

	"github.com/Veraticus/the-books-must-balance/internal/grid"
	"github.com/Veraticus/the-books-must-balance/internal/registry"
	"github.com/Veraticus/the-books-must-balance/internal/tui/themes"
	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"
)

// EmptyMessage is shown under the header of a table without rows.
const EmptyMessage = "No hay datos disponibles"

// headerLines is the header row plus its bottom border.
const headerLines = 2

const separator = " "

// TableModel draws a grid with a cell cursor. Row data and interaction state
// live in the grid; the model only tracks the cursor and scrolling.
type TableModel struct {
	theme     themes.Theme
	grid      *grid.Grid
	editor    string
	width     int
	height    int
	cursorRow int
	cursorCol int
	offset    int
	colOffset int
	focused   bool
}

// NewTable creates a table over g.
func NewTable(g *grid.Grid, theme themes.Theme, focused bool) TableModel {
	return TableModel{
		grid:    g,
		theme:   theme,
		focused: focused,
		width:   80,
		height:  20,
	}
}

// SetGrid swaps the grid, keeping the cursor inside the new bounds.
func (m *TableModel) SetGrid(g *grid.Grid) {
	m.grid = g
	m.clamp()
}

// Grid returns the grid being drawn.
func (m TableModel) Grid() *grid.Grid { return m.grid }

// Resize sets the outer size. height includes the header.
func (m *TableModel) Resize(width, height int) {
	m.width = width
	m.height = max(height-headerLines, 1)
	m.clamp()
}

// SetEditor sets what is drawn in place of the cell being edited.
func (m *TableModel) SetEditor(view string) { m.editor = view }

func (m *TableModel) rowCount() int {
	if m.grid == nil {
		return 0
	}
	return len(m.grid.Rows())
}

func (m *TableModel) colCount() int {
	if m.grid == nil {
		return 0
	}
	return len(m.grid.Columns())
}

func (m *TableModel) clamp() {
	m.cursorRow = min(max(m.cursorRow, 0), max(m.rowCount()-1, 0))
	m.cursorCol = min(max(m.cursorCol, 0), max(m.colCount()-1, 0))
	if m.cursorRow < m.offset {
		m.offset = m.cursorRow
	}
	if m.cursorRow >= m.offset+m.height {
		m.offset = m.cursorRow - m.height + 1
	}
	m.offset = max(m.offset, 0)
	if m.cursorCol < m.colOffset {
		m.colOffset = m.cursorCol
	}
	for m.colOffset < m.cursorCol && !m.columnVisible(m.cursorCol) {
		m.colOffset++
	}
}

func (m *TableModel) columnVisible(idx int) bool {
	if m.grid == nil {
		return false
	}
	x := 0
	for i, col := range m.grid.Columns()[m.colOffset:] {
		x += col.Width
		if m.colOffset+i == idx {
			return x <= m.width
		}
		x += len(separator)
	}
	return false
}

// Move shifts the cursor by rows and columns.
func (m *TableModel) Move(rows, cols int) {
	m.cursorRow += rows
	m.cursorCol += cols
	m.clamp()
}

// PageDown moves the cursor one screen down.
func (m *TableModel) PageDown() { m.Move(m.height, 0) }

// PageUp moves the cursor one screen up.
func (m *TableModel) PageUp() { m.Move(-m.height, 0) }

// Home moves the cursor to the first row.
func (m *TableModel) Home() { m.Move(-m.cursorRow, 0) }

// End moves the cursor to the last row.
func (m *TableModel) End() { m.Move(m.rowCount(), 0) }

// Cursor returns the cell under the cursor.
func (m TableModel) Cursor() (grid.CellRef, bool) {
	if m.rowCount() == 0 || m.colCount() == 0 {
		return grid.CellRef{}, false
	}
	row := m.grid.Rows()[m.cursorRow]
	col := m.grid.Columns()[m.cursorCol]
	return grid.CellRef{RowID: row.RowID(), Key: col.Key}, true
}

// CursorPoint returns the cursor position relative to the table origin.
func (m TableModel) CursorPoint() grid.Point {
	x := 0
	if m.grid != nil {
		for _, col := range m.grid.Columns()[m.colOffset:m.cursorCol] {
			x += col.Width + len(separator)
		}
	}
	return grid.Point{X: x, Y: headerLines + m.cursorRow - m.offset}
}

// Focus moves the cursor onto ref when it is visible in the grid.
func (m *TableModel) Focus(ref grid.CellRef) {
	if m.grid == nil {
		return
	}
	for i, row := range m.grid.Rows() {
		if row.RowID() != ref.RowID {
			continue
		}
		for j, col := range m.grid.Columns() {
			if col.Key == ref.Key {
				m.cursorRow, m.cursorCol = i, j
				m.clamp()
				return
			}
		}
	}
}

// HitTest maps a position relative to the table origin to a cell.
func (m TableModel) HitTest(x, y int) (grid.CellRef, bool) {
	if m.grid == nil || y < headerLines || x < 0 {
		return grid.CellRef{}, false
	}
	rowIdx := m.offset + y - headerLines
	rows := m.grid.Rows()
	if rowIdx >= len(rows) || rowIdx >= m.offset+m.height {
		return grid.CellRef{}, false
	}
	left := 0
	for _, col := range m.grid.Columns()[m.colOffset:] {
		if x >= left && x < left+col.Width {
			return grid.CellRef{RowID: rows[rowIdx].RowID(), Key: col.Key}, true
		}
		left += col.Width + len(separator)
		if left >= m.width {
			break
		}
	}
	return grid.CellRef{}, false
}

func (m TableModel) visibleColumns() []registry.Column {
	var cols []registry.Column
	used := 0
	for _, col := range m.grid.Columns()[m.colOffset:] {
		if used > 0 && used+col.Width > m.width {
			break
		}
		cols = append(cols, col)
		used += col.Width + len(separator)
	}
	return cols
}

func fit(s string, width int) string {
	return runewidth.FillRight(runewidth.Truncate(s, width, "…"), width)
}

// View renders the header and the visible rows.
func (m TableModel) View() string {
	if m.grid == nil {
		return ""
	}
	cols := m.visibleColumns()

	header := make([]string, 0, len(cols))
	for _, col := range cols {
		header = append(header, fit(col.Label, col.Width))
	}
	lines := []string{m.theme.Header.Render(strings.Join(header, separator))}

	rows := m.grid.Rows()
	if len(rows) == 0 {
		lines = append(lines, m.theme.Placeholder.Render(EmptyMessage))
		return lipgloss.JoinVertical(lipgloss.Left, lines...)
	}

	editing, isEditing := m.grid.Mode().(grid.EditingCell)
	end := min(m.offset+m.height, len(rows))
	for i := m.offset; i < end; i++ {
		row := rows[i]
		base := lipgloss.NewStyle()
		if c := m.grid.RowColor(row); c != registry.NoColor {
			base = base.Background(lipgloss.Color(c)).Foreground(m.theme.RowText)
		}

		cells := make([]string, 0, len(cols))
		for j, col := range cols {
			ref := grid.CellRef{RowID: row.RowID(), Key: col.Key}
			if isEditing && editing.Cell == ref {
				cells = append(cells, lipgloss.NewStyle().Width(col.Width).MaxWidth(col.Width).Render(m.editor))
				continue
			}
			text := fit(m.grid.Cell(row, col).String(), col.Width)
			if m.focused && i == m.cursorRow && m.colOffset+j == m.cursorCol {
				cells = append(cells, m.theme.Cursor.Render(text))
				continue
			}
			cells = append(cells, base.Render(text))
		}
		lines = append(lines, strings.Join(cells, base.Render(separator)))
	}
	return lipgloss.JoinVertical(lipgloss.Left, lines...)
}
