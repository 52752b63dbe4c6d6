// Package cli provides styled terminal output and prompts for the books
// commands.
package cli

import (
	"strconv"

	"github.com/charmbracelet/lipgloss"
)

var (
	accent = lipgloss.Color("#5FAFD7")
	green  = lipgloss.Color("#4ECDC4")
	amber  = lipgloss.Color("#FFE66D")
	red    = lipgloss.Color("#FF6B6B")
	grey   = lipgloss.Color("#666666")
)

var (
	// SubtleStyle renders hints and row counts.
	SubtleStyle = lipgloss.NewStyle().Foreground(grey)
	// TableHeaderStyle renders the header line of list output.
	TableHeaderStyle = lipgloss.NewStyle().Bold(true).Underline(true)

	titleStyle  = lipgloss.NewStyle().Bold(true).Foreground(accent)
	promptStyle = lipgloss.NewStyle().Foreground(accent)
)

// marked prefixes message with a status glyph and colors the line.
func marked(color lipgloss.Color, glyph, message string) string {
	return lipgloss.NewStyle().Foreground(color).Render(glyph + " " + message)
}

// FormatSuccess renders a confirmation line.
func FormatSuccess(message string) string { return marked(green, "✓", message) }

// FormatError renders a failure line.
func FormatError(message string) string { return marked(red, "✗", message) }

// FormatWarning renders a caution line.
func FormatWarning(message string) string { return marked(amber, "⚠", message) }

// FormatTitle renders a section heading.
func FormatTitle(title string) string {
	return titleStyle.Render("📒 " + title)
}

// FormatPrompt renders the label of an interactive question.
func FormatPrompt(label string) string {
	return promptStyle.Render(label + ": ")
}

// FormatCount renders the trailing row count of list output.
func FormatCount(n int) string {
	unit := " filas"
	if n == 1 {
		unit = " fila"
	}
	return SubtleStyle.Render(strconv.Itoa(n) + unit)
}
