package tui

import (
	"fmt"
	"strings"

	"github.com/Veraticus/the-books-must-balance/internal/common"
	"github.com/Veraticus/the-books-must-balance/internal/grid"
	"github.com/Veraticus/the-books-must-balance/internal/model"
	"github.com/Veraticus/the-books-must-balance/internal/tui/components"
	"github.com/charmbracelet/lipgloss"
)

// View renders the UI.
func (m Model) View() string {
	if m.quitting {
		return ""
	}
	if !m.ready {
		return m.renderLoading()
	}

	if d := m.flow.Active(); d != nil {
		return m.center(components.RenderDialog(d, m.theme))
	}
	switch mode := m.grid.Mode().(type) {
	case grid.DrillDownModalOpen:
		return m.center(m.theme.Dialog.Render(lipgloss.JoinVertical(lipgloss.Left,
			m.theme.Title.Render(mode.Title),
			"",
			m.nested.View(),
			"",
			m.theme.Subtitle.Render("[esc] Cerrar"),
		)))
	case grid.LargeListModalOpen:
		return m.center(m.list.View())
	}

	return lipgloss.JoinVertical(lipgloss.Left,
		m.renderTabs(),
		m.renderFilters(),
		m.renderBody(),
		m.renderStatus(),
		m.help.View(m.keymap),
	)
}

func (m Model) center(content string) string {
	return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, content)
}

// renderLoading renders the loading screen.
func (m Model) renderLoading() string {
	return m.center(lipgloss.JoinVertical(lipgloss.Center,
		m.theme.Title.Render("Cargando "+m.view.Title()+"..."),
		"",
		lipgloss.NewStyle().Foreground(m.theme.Muted).Render("Conectando con el servidor"),
	))
}

func (m Model) renderTabs() string {
	tabs := make([]string, 0, len(model.AllTables))
	for _, t := range model.AllTables {
		if t == m.view {
			tabs = append(tabs, m.theme.ActiveTab.Render(t.Title()))
			continue
		}
		tabs = append(tabs, m.theme.Tab.Render(t.Title()))
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, tabs...)
}

func (m Model) renderFilters() string {
	parts := []string{m.searchInput.View()}
	switch {
	case m.focus == FocusDates:
		parts = append(parts, m.dateInput.View())
	case len(m.selectedDates) > 0:
		parts = append(parts, m.theme.Subtitle.Render("fechas: "+strings.Join(m.selectedDates, ", ")))
	}
	return strings.Join(parts, "   ")
}

// renderBody draws the table and, on wide terminals, the side panel holding
// the hover preview or the row menu next to its anchor row.
func (m Model) renderBody() string {
	table := m.table
	if _, ok := m.grid.Mode().(grid.EditingCell); ok {
		table.SetEditor(m.editInput.View())
	}
	body := table.View()

	panel, anchor := m.renderPanel()
	if panel == "" {
		return body
	}
	if !m.wide() {
		return lipgloss.JoinVertical(lipgloss.Left, body, panel)
	}
	offset := max(anchor.Y-tableTop, 0)
	room := m.height - tableTop - footerLines - lipgloss.Height(panel)
	offset = min(offset, max(room, 0))
	panel = strings.Repeat("\n", offset) + panel
	return lipgloss.JoinHorizontal(lipgloss.Top, lipgloss.NewStyle().Width(m.width-sidePanelWidth).Render(body), panel)
}

func (m Model) renderPanel() (string, grid.Point) {
	switch mode := m.grid.Mode().(type) {
	case grid.HoveringCell:
		return components.RenderPreview(mode.Preview, m.theme), mode.Anchor
	case grid.RowMenuOpen:
		return components.RenderMenu(mode, m.menuCursor, m.theme), mode.Anchor
	}
	return "", grid.Point{}
}

func (m Model) renderStatus() string {
	if e, ok := m.grid.Mode().(grid.EditingCell); ok && e.Err != nil {
		return m.theme.StatusError.Render(common.UserMessage(e.Err))
	}
	if m.lastError != nil {
		return m.theme.StatusError.Render(common.UserMessage(m.lastError))
	}
	count := fmt.Sprintf("%d filas", len(m.grid.Rows()))
	if m.status == "" {
		return m.theme.Subtitle.Render(count)
	}
	return m.theme.StatusInfo.Render(m.status) + "  " + m.theme.Subtitle.Render(count)
}
