package components

import (
	"strings"

	"github.com/Veraticus/the-books-must-balance/internal/tui/themes"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// ListModal scrolls a long list of lines inside a bordered box.
type ListModal struct {
	theme    themes.Theme
	title    string
	viewport viewport.Model
}

// NewListModal creates a modal showing lines.
func NewListModal(title string, lines []string, width, height int, theme themes.Theme) ListModal {
	vp := viewport.New(max(width-6, 10), max(height-8, 3))
	vp.SetContent(strings.Join(lines, "\n"))
	return ListModal{theme: theme, title: title, viewport: vp}
}

// Update scrolls the list.
func (m ListModal) Update(msg tea.Msg) (ListModal, tea.Cmd) {
	var cmd tea.Cmd
	m.viewport, cmd = m.viewport.Update(msg)
	return m, cmd
}

// Title returns the modal title.
func (m ListModal) Title() string { return m.title }

// View renders the modal.
func (m ListModal) View() string {
	return m.theme.Dialog.Render(lipgloss.JoinVertical(lipgloss.Left,
		m.theme.Title.Render(m.title),
		"",
		m.viewport.View(),
		"",
		m.theme.Subtitle.Render("[↑↓] Desplazar  [esc] Cerrar"),
	))
}
