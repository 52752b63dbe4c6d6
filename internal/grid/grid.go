// Package grid is the interaction core of a table view: it orders rows,
// renders cells and tracks the single active interaction mode. It has no
// terminal dependency; internal/tui draws what it exposes.
package grid

import (
	"fmt"
	"strings"

	"github.com/Veraticus/the-books-must-balance/internal/model"
	"github.com/Veraticus/the-books-must-balance/internal/registry"
)

// DefaultHoverItems is how many product lines the hover preview lists.
const DefaultHoverItems = 5

// Config configures a Grid.
type Config struct {
	Table          model.TableType
	Cuentas        []model.Cuenta
	Movements      []model.Movimiento
	HoverItemLimit int
	Admin          bool
	Interactive    bool
}

// EditIntent is emitted when an inline edit is committed with a new value.
type EditIntent struct {
	Field     string
	PrevValue string
	NewValue  string
	Table     model.TableType
	RowID     int
}

// DeleteIntent describes the row a pending delete confirmation is about.
type DeleteIntent struct {
	Row   model.Row
	Table model.TableType
	RowID int
}

// Grid owns the interaction state of one table instance. Row data is handed
// in through SetRows on every refresh and never outlives it.
type Grid struct {
	mode      Mode
	byID      map[int]model.Row
	overrides map[CellRef]string
	cfg       Config
	columns   []registry.Column
	rows      []model.Row
	blocked   bool
}

// New returns an idle grid with no rows.
func New(cfg Config) *Grid {
	if cfg.HoverItemLimit <= 0 {
		cfg.HoverItemLimit = DefaultHoverItems
	}
	return &Grid{
		cfg:       cfg,
		columns:   registry.Columns(cfg.Table, cfg.Cuentas),
		mode:      Idle{},
		byID:      map[int]model.Row{},
		overrides: map[CellRef]string{},
	}
}

// Table returns the table type the grid renders.
func (g *Grid) Table() model.TableType { return g.cfg.Table }

// Columns returns the columns in display order.
func (g *Grid) Columns() []registry.Column { return g.columns }

// Rows returns the rows in ascending id order.
func (g *Grid) Rows() []model.Row { return g.rows }

// Mode returns the active interaction mode.
func (g *Grid) Mode() Mode { return g.mode }

// Blocked reports whether table input is suspended by an overlay or a
// pending edit confirmation.
func (g *Grid) Blocked() bool {
	if g.blocked {
		return true
	}
	_, deleting := g.mode.(DeleteConfirmPending)
	return deleting
}

// SetRows replaces the row set, sorted by id, and resets interaction state.
func (g *Grid) SetRows(rows []model.Row) {
	g.rows = model.SortByID(rows)
	g.byID = make(map[int]model.Row, len(g.rows))
	for _, r := range g.rows {
		g.byID[r.RowID()] = r
	}
	g.overrides = map[CellRef]string{}
	g.mode = Idle{}
}

// SetSideTables refreshes the accounts and movements used by formatters and
// drill-downs. Interaction state is kept.
func (g *Grid) SetSideTables(cuentas []model.Cuenta, movements []model.Movimiento) {
	g.cfg.Cuentas = cuentas
	g.cfg.Movements = movements
	g.columns = registry.Columns(g.cfg.Table, cuentas)
}

// Row returns the row with id.
func (g *Grid) Row(id int) (model.Row, bool) {
	r, ok := g.byID[id]
	return r, ok
}

func (g *Grid) column(key string) (registry.Column, bool) {
	return registry.Find(g.columns, key)
}

func (g *Grid) raw(row model.Row, key string) any {
	if v, ok := g.overrides[CellRef{RowID: row.RowID(), Key: key}]; ok {
		return v
	}
	return row.Field(key)
}

// Cell renders one cell, including any optimistic edit.
func (g *Grid) Cell(row model.Row, col registry.Column) Cell {
	return RenderCell(row, col, g.raw(row, col.Key))
}

// RowColor returns the classification colour of a row.
func (g *Grid) RowColor(row model.Row) string {
	return registry.RowColor(g.cfg.Table, row)
}

func (g *Grid) acceptsInput() bool {
	return g.cfg.Interactive && !g.Blocked()
}

// Hover shows the preview for a cell. It only applies while idle or already
// hovering; any other mode suppresses it.
func (g *Grid) Hover(ref CellRef, anchor Point) {
	if !g.acceptsInput() {
		return
	}
	switch g.mode.(type) {
	case Idle, HoveringCell:
	default:
		return
	}
	row, ok := g.byID[ref.RowID]
	if !ok {
		return
	}
	col, ok := g.column(ref.Key)
	if !ok {
		return
	}
	g.mode = HoveringCell{
		Cell:    ref,
		Anchor:  anchor,
		Preview: buildPreview(g.cfg.Table, row, col, g.Cell(row, col), g.cfg.HoverItemLimit),
	}
}

// Unhover clears the preview when the pointer leaves the hovered cell.
func (g *Grid) Unhover(ref CellRef) {
	if h, ok := g.mode.(HoveringCell); ok && h.Cell == ref {
		g.mode = Idle{}
	}
}

// ExpandPreview escalates a hover preview whose item list was cut short into
// the large list modal.
func (g *Grid) ExpandPreview() bool {
	h, ok := g.mode.(HoveringCell)
	if !ok || !h.Preview.More() {
		return false
	}
	return g.openLargeList(h.Cell.RowID)
}

// Click toggles the row menu for the clicked cell's row.
func (g *Grid) Click(ref CellRef, anchor Point) {
	if !g.acceptsInput() {
		return
	}
	switch m := g.mode.(type) {
	case RowMenuOpen:
		if m.RowID == ref.RowID {
			g.mode = Idle{}
			return
		}
	case Idle, HoveringCell:
	default:
		return
	}
	row, ok := g.byID[ref.RowID]
	if !ok {
		return
	}
	target := ref
	g.mode = RowMenuOpen{
		RowID:   ref.RowID,
		Target:  &target,
		Anchor:  anchor,
		Options: g.menuOptions(row, ref.Key),
	}
}

func (g *Grid) canEdit(key string) bool {
	return g.cfg.Admin && registry.IsEditable(key)
}

func (g *Grid) menuOptions(row model.Row, key string) []MenuOption {
	var opts []MenuOption
	if g.canEdit(key) {
		opts = append(opts, option(ActionEdit))
	}
	if _, ok := RelatedAccount(g.cfg.Table, row, key); ok {
		opts = append(opts, option(ActionViewRelated))
	}
	if m, ok := row.(model.Movimiento); ok && key == "concepto" && m.HasItems() {
		opts = append(opts, option(ActionViewMore))
	}
	return append(opts, option(ActionDelete))
}

// Select runs a row menu option. Options not offered by the open menu are
// ignored.
func (g *Grid) Select(action MenuAction) bool {
	menu, ok := g.mode.(RowMenuOpen)
	if !ok || !g.acceptsInput() || !offered(menu.Options, action) {
		return false
	}
	row := g.byID[menu.RowID]
	key := ""
	if menu.Target != nil {
		key = menu.Target.Key
	}

	switch action {
	case ActionEdit:
		return g.BeginEdit(CellRef{RowID: menu.RowID, Key: key})
	case ActionViewRelated:
		cuentaID, _ := RelatedAccount(g.cfg.Table, row, key)
		nested := New(Config{
			Table:     model.TableMovimientos,
			Cuentas:   g.cfg.Cuentas,
			Movements: g.cfg.Movements,
		})
		nested.SetRows(MovementsForCuenta(cuentaID, g.cfg.Movements))
		g.mode = DrillDownModalOpen{
			Nested:   nested,
			CuentaID: cuentaID,
			Title:    fmt.Sprintf("Movimientos de la cuenta #%d", cuentaID),
		}
		return true
	case ActionViewMore:
		return g.openLargeList(menu.RowID)
	case ActionDelete:
		g.mode = DeleteConfirmPending{RowID: menu.RowID, Row: row, Menu: menu}
		return true
	}
	return false
}

func offered(opts []MenuOption, action MenuAction) bool {
	for _, o := range opts {
		if o.Action == action {
			return true
		}
	}
	return false
}

func (g *Grid) openLargeList(rowID int) bool {
	m, ok := g.byID[rowID].(model.Movimiento)
	if !ok || !m.HasItems() {
		return false
	}
	g.mode = LargeListModalOpen{
		Title: fmt.Sprintf("Productos del movimiento #%d", m.ID),
		Items: m.Items,
		Lines: LargeListLines(m.Items),
	}
	return true
}

// BeginEdit enters inline editing for a cell. It is a no-op unless the grid
// is interactive, the caller is an administrator and the column is editable.
func (g *Grid) BeginEdit(ref CellRef) bool {
	if !g.acceptsInput() || !g.canEdit(ref.Key) {
		return false
	}
	switch g.mode.(type) {
	case Idle, HoveringCell, RowMenuOpen:
	default:
		return false
	}
	row, ok := g.byID[ref.RowID]
	if !ok {
		return false
	}
	if _, ok := g.column(ref.Key); !ok {
		return false
	}
	prev := editText(g.raw(row, ref.Key))
	g.mode = EditingCell{Cell: ref, Previous: prev, Draft: prev}
	return true
}

func editText(raw any) string {
	if model.IsNullish(raw) {
		return ""
	}
	return model.Stringify(raw)
}

// SetDraft updates the value being typed.
func (g *Grid) SetDraft(draft string) {
	if e, ok := g.mode.(EditingCell); ok {
		e.Draft = draft
		e.Err = nil
		g.mode = e
	}
}

// CommitEdit ends an inline edit. An unchanged value returns to Idle with no
// intent. A changed value is validated first; on failure the edit stays open
// with the error. A valid change is shown optimistically, the grid blocks
// until Release, and the intent is returned.
func (g *Grid) CommitEdit() (*EditIntent, error) {
	e, ok := g.mode.(EditingCell)
	if !ok {
		return nil, nil
	}
	draft := strings.TrimSpace(e.Draft)
	if draft == e.Previous {
		g.mode = Idle{}
		return nil, nil
	}
	if err := registry.ValidateDraft(e.Cell.Key, draft); err != nil {
		e.Err = err
		g.mode = e
		return nil, err
	}

	g.overrides[e.Cell] = draft
	g.blocked = true
	g.mode = Idle{}
	return &EditIntent{
		RowID:     e.Cell.RowID,
		Field:     e.Cell.Key,
		PrevValue: e.Previous,
		NewValue:  draft,
		Table:     g.cfg.Table,
	}, nil
}

// CancelEdit abandons an inline edit.
func (g *Grid) CancelEdit() {
	if _, ok := g.mode.(EditingCell); ok {
		g.mode = Idle{}
	}
}

// ResolveEdit settles the optimistic value of an edit: on failure the cell
// shows the previous value again.
func (g *Grid) ResolveEdit(intent EditIntent, ok bool) {
	if ok {
		return
	}
	delete(g.overrides, CellRef{RowID: intent.RowID, Key: intent.Field})
}

// Release lifts the block set by CommitEdit once its dialog has closed.
func (g *Grid) Release() {
	g.blocked = false
}

// PendingDelete returns the delete awaiting confirmation, if any.
func (g *Grid) PendingDelete() (*DeleteIntent, bool) {
	d, ok := g.mode.(DeleteConfirmPending)
	if !ok {
		return nil, false
	}
	return &DeleteIntent{RowID: d.RowID, Row: d.Row, Table: g.cfg.Table}, true
}

// CloseOverlay dismisses whatever is open and returns to Idle. Closing a
// delete confirmation also closes the menu beneath it. A stale hover is never
// restored; the next pointer event builds a new one.
func (g *Grid) CloseOverlay() {
	g.mode = Idle{}
}
