package grid

import "github.com/Veraticus/the-books-must-balance/internal/model"

// Mode is the single active interaction mode of a Grid. Exactly one value is
// held at a time, so entering a mode always drops the previous one.
type Mode interface {
	mode()
}

// CellRef addresses one cell by row id and column key.
type CellRef struct {
	Key   string
	RowID int
}

// Point is a screen position used to anchor previews and menus.
type Point struct {
	X, Y int
}

// Idle is the resting mode.
type Idle struct{}

// HoveringCell shows a floating preview of the hovered cell.
type HoveringCell struct {
	Preview Preview
	Cell    CellRef
	Anchor  Point
}

// EditingCell holds an inline edit in progress. Err is the last validation
// failure, shown next to the input.
type EditingCell struct {
	Err      error
	Previous string
	Draft    string
	Cell     CellRef
}

// RowMenuOpen is the contextual menu of a row. Target is nil when the menu
// was opened on the row rather than a cell.
type RowMenuOpen struct {
	Target  *CellRef
	Options []MenuOption
	Anchor  Point
	RowID   int
}

// DeleteConfirmPending blocks the table until the delete dialog is resolved.
// The menu it was opened from stays logically open underneath.
type DeleteConfirmPending struct {
	Row   model.Row
	Menu  RowMenuOpen
	RowID int
}

// DrillDownModalOpen shows related rows in a nested, non-interactive grid.
type DrillDownModalOpen struct {
	Nested   *Grid
	Title    string
	CuentaID int
}

// LargeListModalOpen shows every product line of an invoice movement.
type LargeListModalOpen struct {
	Title string
	Lines []string
	Items []model.Item
}

func (Idle) mode()                 {}
func (HoveringCell) mode()         {}
func (EditingCell) mode()          {}
func (RowMenuOpen) mode()          {}
func (DeleteConfirmPending) mode() {}
func (DrillDownModalOpen) mode()   {}
func (LargeListModalOpen) mode()   {}

// MenuAction identifies a row menu entry.
type MenuAction int

// Row menu actions.
const (
	ActionEdit MenuAction = iota
	ActionViewRelated
	ActionViewMore
	ActionDelete
)

// MenuOption is one entry of the row menu.
type MenuOption struct {
	Label  string
	Action MenuAction
}

var menuLabels = map[MenuAction]string{
	ActionEdit:        "Editar",
	ActionViewRelated: "Ver movimientos",
	ActionViewMore:    "Ver más",
	ActionDelete:      "Eliminar fila",
}

func option(a MenuAction) MenuOption {
	return MenuOption{Action: a, Label: menuLabels[a]}
}
