package tui

import (
	"context"
	"errors"
	"fmt"

	"github.com/Veraticus/the-books-must-balance/internal/common"
	"github.com/Veraticus/the-books-must-balance/internal/grid"
	"github.com/Veraticus/the-books-must-balance/internal/model"
	"github.com/Veraticus/the-books-must-balance/internal/search"
	"github.com/Veraticus/the-books-must-balance/internal/tui/components"
	"github.com/Veraticus/the-books-must-balance/internal/tui/themes"
	"github.com/Veraticus/the-books-must-balance/internal/workflow"
	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
)

// tableTop is the screen row where the table header starts: tabs, then the
// filter bar.
const tableTop = 2

// footerLines is the status line plus the help line.
const footerLines = 2

// sidePanelWidth is reserved right of the table for previews and menus on
// wide terminals.
const sidePanelWidth = 36

// Focus names the input that receives key presses outside the grid modes.
type Focus int

// Focus targets.
const (
	FocusTable Focus = iota
	FocusSearch
	FocusDates
)

// refreshSignal collects the refresh requests the workflow makes while an
// outcome is resolved on the event loop.
type refreshSignal struct {
	requested bool
}

func (r *refreshSignal) request() { r.requested = true }

func (r *refreshSignal) take() bool {
	v := r.requested
	r.requested = false
	return v
}

type unavailableBackend struct{}

func (unavailableBackend) Patch(context.Context, string, int, map[string]any) error {
	return fmt.Errorf("%w: backend", common.ErrMissingConfig)
}

func (unavailableBackend) Delete(context.Context, string, int) error {
	return fmt.Errorf("%w: backend", common.ErrMissingConfig)
}

// Model holds the browser state. The grid and workflow are shared pointers;
// every other field is copied with the model.
type Model struct {
	theme         themes.Theme
	lastError     error
	flow          *workflow.Workflow
	grid          *grid.Grid
	pendingEdit   *grid.EditIntent
	refresh       *refreshSignal
	list          components.ListModal
	table         components.TableModel
	nested        components.TableModel
	searchInput   textinput.Model
	dateInput     textinput.Model
	editInput     textinput.Model
	help          help.Model
	snapshot      model.Snapshot
	config        Config
	keymap        KeyMap
	view          model.TableType
	status        string
	selectedDates []string
	menuCursor    int
	focus         Focus
	width         int
	height        int
	keyHover      bool
	loaded        bool
	stale         bool
	ready         bool
	quitting      bool
}

func newModel(cfg Config) Model {
	refresh := &refreshSignal{}
	backend := cfg.Backend
	if backend == nil {
		backend = unavailableBackend{}
	}

	searchInput := textinput.New()
	searchInput.Placeholder = "Buscar..."
	searchInput.Prompt = "/ "
	searchInput.CharLimit = 120
	searchInput.SetValue(cfg.Search)

	dateInput := textinput.New()
	dateInput.Placeholder = "AAAA-MM-DD AAAA-MM-DD"
	dateInput.Prompt = "fechas: "
	dateInput.CharLimit = 120

	editInput := textinput.New()
	editInput.Prompt = ""
	editInput.CharLimit = 255

	m := Model{
		config:        cfg,
		theme:         cfg.Theme,
		keymap:        DefaultKeyMap(),
		help:          help.New(),
		refresh:       refresh,
		flow:          workflow.New(backend, refresh.request),
		view:          cfg.Table,
		searchInput:   searchInput,
		dateInput:     dateInput,
		editInput:     editInput,
		selectedDates: cfg.Dates,
		width:         cfg.Width,
		height:        cfg.Height,
	}
	m.resetGrid()
	return m
}

// Init starts the cached and the fresh load together.
func (m Model) Init() tea.Cmd {
	return tea.Batch(m.loadCached(), m.loadSnapshot())
}

func (m *Model) gridConfig(t model.TableType) grid.Config {
	return grid.Config{
		Table:          t,
		Cuentas:        m.snapshot.Cuentas,
		Movements:      m.snapshot.Movimientos,
		HoverItemLimit: m.config.HoverItemLimit,
		Admin:          m.config.Admin,
		Interactive:    true,
	}
}

func (m *Model) resetGrid() {
	m.grid = grid.New(m.gridConfig(m.view))
	m.table = components.NewTable(m.grid, m.theme, true)
	m.handleResize()
	m.applyRows()
}

// busy reports whether replacing the rows now would drop work in progress.
func (m *Model) busy() bool {
	if m.flow.Active() != nil || m.grid.Blocked() {
		return true
	}
	_, editing := m.grid.Mode().(grid.EditingCell)
	return editing
}

// applyRows filters the snapshot into the grid. It is deferred while an edit
// or a dialog is open.
func (m *Model) applyRows() {
	if m.busy() {
		m.stale = true
		return
	}
	m.stale = false
	rows := search.FilterRows(m.snapshot.Rows(m.view), m.view, m.searchInput.Value(), m.selectedDates, m.snapshot.Cuentas)
	m.grid.SetSideTables(m.snapshot.Cuentas, m.snapshot.Movimientos)
	m.grid.SetRows(rows)
	m.table.SetGrid(m.grid)
	m.menuCursor = 0
}

func (m *Model) applyIfStale() {
	if m.stale {
		m.applyRows()
	}
}

// Update handles messages and updates the model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.handleResize()
		return m, nil

	case cachedSnapshotMsg:
		if m.loaded {
			return m, nil
		}
		m.snapshot = msg.snapshot
		m.ready = true
		m.status = "Mostrando datos guardados, actualizando..."
		m.applyRows()
		return m, nil

	case snapshotLoadedMsg:
		m.ready = true
		if msg.err != nil {
			m.lastError = msg.err
			common.LogError(msg.err, "Failed to load tables", nil)
			return m, nil
		}
		m.snapshot = msg.snapshot
		m.loaded = true
		m.lastError = nil
		m.status = ""
		m.applyRows()
		return m, nil

	case outcomeMsg:
		cmd := m.handleOutcome(msg.outcome)
		return m, cmd

	case errorMsg:
		m.ready = true
		m.lastError = msg.err
		common.LogError(msg.err, "TUI error", common.Fields{"context": msg.context})
		return m, nil

	case tea.MouseMsg:
		if m.config.MouseSupport {
			m.handleMouse(msg)
		}
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)
	}
	return m, nil
}

func (m *Model) handleResize() {
	width := m.width
	if m.wide() {
		width -= sidePanelWidth
	}
	m.table.Resize(width, m.height-tableTop-footerLines)
	m.help.Width = m.width
}

func (m *Model) wide() bool {
	return m.width >= 100
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.String() == "ctrl+c" {
		m.quitting = true
		return m, tea.Quit
	}
	if m.flow.Active() != nil {
		return m.handleDialogKey(msg)
	}

	switch mode := m.grid.Mode().(type) {
	case grid.EditingCell:
		return m.handleEditKey(msg)
	case grid.RowMenuOpen:
		return m.handleMenuKey(msg, mode)
	case grid.DrillDownModalOpen:
		m.handleDrillDownKey(msg)
		return m, nil
	case grid.LargeListModalOpen:
		if key.Matches(msg, m.keymap.Cancel, m.keymap.Quit) {
			m.closeOverlay()
			return m, nil
		}
		var cmd tea.Cmd
		m.list, cmd = m.list.Update(msg)
		return m, cmd
	case grid.DeleteConfirmPending:
		if key.Matches(msg, m.keymap.Cancel) {
			m.closeOverlay()
		}
		return m, nil
	}

	switch m.focus {
	case FocusSearch:
		return m.handleSearchKey(msg)
	case FocusDates:
		return m.handleDatesKey(msg)
	}
	return m.handleTableKey(msg)
}

func (m Model) handleTableKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keymap.Quit):
		m.quitting = true
		return m, tea.Quit
	case key.Matches(msg, m.keymap.Up):
		m.table.Move(-1, 0)
	case key.Matches(msg, m.keymap.Down):
		m.table.Move(1, 0)
	case key.Matches(msg, m.keymap.Left):
		m.table.Move(0, -1)
	case key.Matches(msg, m.keymap.Right):
		m.table.Move(0, 1)
	case key.Matches(msg, m.keymap.PageUp):
		m.table.PageUp()
	case key.Matches(msg, m.keymap.PageDown):
		m.table.PageDown()
	case key.Matches(msg, m.keymap.Home):
		m.table.Home()
	case key.Matches(msg, m.keymap.End):
		m.table.End()
	case key.Matches(msg, m.keymap.Preview):
		m.keyHover = !m.keyHover
		if !m.keyHover {
			m.grid.CloseOverlay()
		}
	case key.Matches(msg, m.keymap.Menu):
		if ref, ok := m.table.Cursor(); ok {
			m.grid.Click(ref, m.cursorAnchor())
			m.menuCursor = 0
		}
		return m, nil
	case key.Matches(msg, m.keymap.Edit):
		m.runAction(grid.ActionEdit)
		return m, nil
	case key.Matches(msg, m.keymap.Delete):
		m.runAction(grid.ActionDelete)
		return m, nil
	case key.Matches(msg, m.keymap.Related):
		m.runAction(grid.ActionViewRelated)
		return m, nil
	case key.Matches(msg, m.keymap.More):
		if m.grid.ExpandPreview() {
			m.openModal()
			return m, nil
		}
		m.runAction(grid.ActionViewMore)
		return m, nil
	case key.Matches(msg, m.keymap.Search):
		m.focus = FocusSearch
		cmd := m.searchInput.Focus()
		return m, cmd
	case key.Matches(msg, m.keymap.Dates):
		m.focus = FocusDates
		m.dateInput.SetValue(joinDates(m.selectedDates))
		m.dateInput.CursorEnd()
		cmd := m.dateInput.Focus()
		return m, cmd
	case key.Matches(msg, m.keymap.ClearDates):
		m.clearDates()
	case key.Matches(msg, m.keymap.NextView):
		m.switchView(1)
	case key.Matches(msg, m.keymap.PrevView):
		m.switchView(-1)
	case key.Matches(msg, m.keymap.Refresh):
		m.status = "Actualizando..."
		return m, m.loadSnapshot()
	case key.Matches(msg, m.keymap.Help):
		m.help.ShowAll = !m.help.ShowAll
	case key.Matches(msg, m.keymap.Cancel):
		m.grid.CloseOverlay()
		m.lastError = nil
		m.status = ""
		return m, nil
	default:
		return m, nil
	}
	m.hoverCursor()
	return m, nil
}

func (m *Model) cursorAnchor() grid.Point {
	p := m.table.CursorPoint()
	return grid.Point{X: p.X, Y: p.Y + tableTop}
}

// hoverCursor follows the keyboard cursor with the preview when enabled.
func (m *Model) hoverCursor() {
	if !m.keyHover {
		return
	}
	if ref, ok := m.table.Cursor(); ok {
		m.grid.Hover(ref, m.cursorAnchor())
	}
}

// runAction opens the row menu on the cursor and picks action from it, the
// same path a pointer takes.
func (m *Model) runAction(action grid.MenuAction) {
	ref, ok := m.table.Cursor()
	if !ok {
		return
	}
	if _, open := m.grid.Mode().(grid.RowMenuOpen); !open {
		m.grid.Click(ref, m.cursorAnchor())
	}
	if !m.selectOption(action) {
		m.grid.CloseOverlay()
	}
}

// selectOption runs a menu option and opens whatever it leads to.
func (m *Model) selectOption(action grid.MenuAction) bool {
	if !m.grid.Select(action) {
		return false
	}
	switch mode := m.grid.Mode().(type) {
	case grid.EditingCell:
		m.editInput.SetValue(mode.Draft)
		m.editInput.CursorEnd()
		m.editInput.Focus()
	case grid.DeleteConfirmPending:
		m.proposeDelete()
	default:
		m.openModal()
	}
	return true
}

func (m *Model) openModal() {
	switch mode := m.grid.Mode().(type) {
	case grid.DrillDownModalOpen:
		m.nested = components.NewTable(mode.Nested, m.theme, false)
		m.nested.Resize(m.width-8, m.height-8)
	case grid.LargeListModalOpen:
		m.list = components.NewListModal(mode.Title, mode.Lines, m.width, m.height, m.theme)
	}
}

func (m *Model) closeOverlay() {
	m.grid.CloseOverlay()
	m.applyIfStale()
}

func (m Model) handleMenuKey(msg tea.KeyMsg, menu grid.RowMenuOpen) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keymap.Cancel):
		m.grid.CloseOverlay()
	case key.Matches(msg, m.keymap.Up):
		m.menuCursor = (m.menuCursor + len(menu.Options) - 1) % len(menu.Options)
	case key.Matches(msg, m.keymap.Down):
		m.menuCursor = (m.menuCursor + 1) % len(menu.Options)
	case key.Matches(msg, m.keymap.Menu):
		if m.menuCursor < len(menu.Options) {
			m.selectOption(menu.Options[m.menuCursor].Action)
		}
	case key.Matches(msg, m.keymap.Edit):
		m.selectOption(grid.ActionEdit)
	case key.Matches(msg, m.keymap.Delete):
		m.selectOption(grid.ActionDelete)
	case key.Matches(msg, m.keymap.Related):
		m.selectOption(grid.ActionViewRelated)
	case key.Matches(msg, m.keymap.More):
		m.selectOption(grid.ActionViewMore)
	}
	return m, nil
}

func (m *Model) handleDrillDownKey(msg tea.KeyMsg) {
	switch {
	case key.Matches(msg, m.keymap.Cancel, m.keymap.Quit):
		m.closeOverlay()
	case key.Matches(msg, m.keymap.Up):
		m.nested.Move(-1, 0)
	case key.Matches(msg, m.keymap.Down):
		m.nested.Move(1, 0)
	case key.Matches(msg, m.keymap.Left):
		m.nested.Move(0, -1)
	case key.Matches(msg, m.keymap.Right):
		m.nested.Move(0, 1)
	case key.Matches(msg, m.keymap.PageUp):
		m.nested.PageUp()
	case key.Matches(msg, m.keymap.PageDown):
		m.nested.PageDown()
	}
}

func (m Model) handleEditKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEsc:
		m.grid.CancelEdit()
		m.editInput.Blur()
		m.applyIfStale()
		return m, nil
	case tea.KeyEnter:
		m.commitEdit()
		return m, nil
	}

	var cmd tea.Cmd
	m.editInput, cmd = m.editInput.Update(msg)
	m.grid.SetDraft(m.editInput.Value())
	return m, cmd
}

// commitEdit ends the inline edit with the typed value. An invalid draft
// keeps the editor open with its error.
func (m *Model) commitEdit() {
	m.grid.SetDraft(m.editInput.Value())
	intent, err := m.grid.CommitEdit()
	if err != nil {
		return
	}
	m.editInput.Blur()
	if intent == nil {
		m.applyIfStale()
		return
	}
	if _, err := m.flow.ProposeEdit(*intent); err != nil {
		m.grid.ResolveEdit(*intent, false)
		m.grid.Release()
		m.lastError = err
		m.applyIfStale()
		return
	}
	m.pendingEdit = intent
}

func (m *Model) proposeDelete() {
	intent, ok := m.grid.PendingDelete()
	if !ok {
		return
	}
	if _, err := m.flow.ProposeDelete(*intent); err != nil {
		m.lastError = err
		m.grid.CloseOverlay()
	}
}

func (m Model) handleDialogKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keymap.Cancel), msg.String() == "n":
		m.dismissDialog()
		return m, nil
	case key.Matches(msg, m.keymap.Confirm):
		if d := m.flow.Active(); d.Phase == workflow.PhaseRunning {
			return m, nil
		}
		ticket, err := m.flow.Confirm()
		if err != nil {
			if errors.Is(err, workflow.ErrRowBusy) {
				m.status = "La fila tiene un cambio en curso"
			}
			return m, nil
		}
		return m, m.execute(ticket)
	}
	return m, nil
}

// dismissDialog closes the dialog in any phase and undoes its effect on the
// grid. A call still in flight resolves as stale.
func (m *Model) dismissDialog() {
	d := m.flow.Active()
	m.flow.Dismiss()
	if d != nil && d.Kind == workflow.KindEdit && m.pendingEdit != nil {
		m.grid.ResolveEdit(*m.pendingEdit, false)
		m.grid.Release()
		m.pendingEdit = nil
	} else {
		m.grid.CloseOverlay()
	}
	m.applyIfStale()
}

func (m *Model) handleOutcome(o workflow.Outcome) tea.Cmd {
	live := m.flow.Resolve(o)
	if live {
		switch {
		case o.Err != nil && o.Ticket.Kind == workflow.KindEdit && m.pendingEdit != nil:
			m.grid.ResolveEdit(*m.pendingEdit, false)
		case o.Err == nil && o.Ticket.Kind == workflow.KindEdit:
			m.grid.Release()
			m.pendingEdit = nil
			m.status = "Cambios guardados"
		case o.Err == nil:
			m.grid.CloseOverlay()
			m.status = fmt.Sprintf("Fila #%d eliminada", o.Ticket.RowID)
		}
	}
	m.applyIfStale()
	if m.refresh.take() {
		return m.loadSnapshot()
	}
	return nil
}

func (m Model) handleSearchKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEnter:
		m.focus = FocusTable
		m.searchInput.Blur()
		return m, nil
	case tea.KeyEsc:
		m.focus = FocusTable
		m.searchInput.Blur()
		m.searchInput.SetValue("")
		m.applyRows()
		return m, nil
	}

	var cmd tea.Cmd
	before := m.searchInput.Value()
	m.searchInput, cmd = m.searchInput.Update(msg)
	if m.searchInput.Value() != before {
		m.applyRows()
	}
	return m, cmd
}

func (m Model) handleDatesKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEnter:
		m.focus = FocusTable
		m.dateInput.Blur()
		m.selectDates(search.ExtractDateTokens(m.dateInput.Value()))
		return m, nil
	case tea.KeyEsc:
		m.focus = FocusTable
		m.dateInput.Blur()
		return m, nil
	}

	var cmd tea.Cmd
	m.dateInput, cmd = m.dateInput.Update(msg)
	return m, cmd
}

// selectDates replaces the selection and rewrites the term as the text
// part followed by the dates.
func (m *Model) selectDates(dates []string) {
	if len(dates) == 0 {
		m.clearDates()
		return
	}
	m.selectedDates = dates
	m.searchInput.SetValue(search.JoinDates(m.searchInput.Value(), dates))
	m.applyRows()
}

// clearDates drops the selection and every date typed into the term.
func (m *Model) clearDates() {
	m.selectedDates = nil
	m.searchInput.SetValue(search.StripDateTokens(m.searchInput.Value()))
	m.applyRows()
}

func (m *Model) switchView(step int) {
	idx := 0
	for i, t := range model.AllTables {
		if t == m.view {
			idx = i
		}
	}
	n := len(model.AllTables)
	m.view = model.AllTables[(idx+step+n)%n]
	m.resetGrid()
}

func (m *Model) handleMouse(msg tea.MouseMsg) {
	if m.flow.Active() != nil {
		return
	}
	switch msg.Button {
	case tea.MouseButtonWheelUp:
		m.table.Move(-1, 0)
		return
	case tea.MouseButtonWheelDown:
		m.table.Move(1, 0)
		return
	}

	ref, onCell := m.table.HitTest(msg.X, msg.Y-tableTop)
	anchor := grid.Point{X: msg.X, Y: msg.Y}
	switch msg.Action {
	case tea.MouseActionMotion:
		if onCell {
			m.grid.Hover(ref, anchor)
			return
		}
		if h, hovering := m.grid.Mode().(grid.HoveringCell); hovering {
			m.grid.Unhover(h.Cell)
		}
	case tea.MouseActionPress:
		if msg.Button != tea.MouseButtonLeft {
			return
		}
		// A press anywhere but the edited cell blurs the editor.
		if e, editing := m.grid.Mode().(grid.EditingCell); editing {
			if !onCell || ref != e.Cell {
				m.commitEdit()
			}
			return
		}
		if !onCell {
			return
		}
		m.table.Focus(ref)
		m.grid.Click(ref, anchor)
		m.menuCursor = 0
	}
}

func joinDates(dates []string) string {
	return search.JoinDates("", dates)
}
