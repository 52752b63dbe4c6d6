// Package themes holds the colour palettes of the terminal client.
package themes

import "github.com/charmbracelet/lipgloss"

// Theme defines the visual style for the TUI.
type Theme struct {
	Title       lipgloss.Style
	Subtitle    lipgloss.Style
	Normal      lipgloss.Style
	Bold        lipgloss.Style
	Header      lipgloss.Style
	Cursor      lipgloss.Style
	Tab         lipgloss.Style
	ActiveTab   lipgloss.Style
	Dialog      lipgloss.Style
	Overlay     lipgloss.Style
	MenuItem    lipgloss.Style
	MenuActive  lipgloss.Style
	StatusError lipgloss.Style
	StatusInfo  lipgloss.Style
	Placeholder lipgloss.Style
	Primary     lipgloss.Color
	Muted       lipgloss.Color
	Border      lipgloss.Color
	Foreground  lipgloss.Color
	Background  lipgloss.Color
	Error       lipgloss.Color
	Success     lipgloss.Color
	// RowText is drawn over the light classification colours of rows.
	RowText lipgloss.Color
}

type palette struct {
	primary, muted, border, foreground, background, surface, errColor, success, info, rowText string
}

func build(p palette) Theme {
	fg := lipgloss.Color(p.foreground)
	border := lipgloss.Color(p.border)
	return Theme{
		Primary:    lipgloss.Color(p.primary),
		Muted:      lipgloss.Color(p.muted),
		Border:     border,
		Foreground: fg,
		Background: lipgloss.Color(p.background),
		Error:      lipgloss.Color(p.errColor),
		Success:    lipgloss.Color(p.success),
		RowText:    lipgloss.Color(p.rowText),

		Title:    lipgloss.NewStyle().Bold(true).Foreground(fg),
		Subtitle: lipgloss.NewStyle().Foreground(lipgloss.Color(p.muted)),
		Normal:   lipgloss.NewStyle().Foreground(fg),
		Bold:     lipgloss.NewStyle().Bold(true).Foreground(fg),
		Header: lipgloss.NewStyle().
			Bold(true).
			Foreground(fg).
			BorderStyle(lipgloss.NormalBorder()).
			BorderBottom(true).
			BorderForeground(border),
		Cursor: lipgloss.NewStyle().
			Background(lipgloss.Color(p.primary)).
			Foreground(lipgloss.Color(p.background)).
			Bold(true),
		Tab: lipgloss.NewStyle().
			Foreground(lipgloss.Color(p.muted)).
			Padding(0, 1),
		ActiveTab: lipgloss.NewStyle().
			Foreground(fg).
			Background(lipgloss.Color(p.surface)).
			Bold(true).
			Padding(0, 1),
		Dialog: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color(p.primary)).
			Padding(1, 2),
		Overlay: lipgloss.NewStyle().
			Border(lipgloss.NormalBorder()).
			BorderForeground(border).
			Padding(0, 1),
		MenuItem: lipgloss.NewStyle().Foreground(fg),
		MenuActive: lipgloss.NewStyle().
			Background(lipgloss.Color(p.surface)).
			Foreground(fg).
			Bold(true),
		StatusError: lipgloss.NewStyle().Foreground(lipgloss.Color(p.errColor)).Bold(true),
		StatusInfo:  lipgloss.NewStyle().Foreground(lipgloss.Color(p.info)).Bold(true),
		Placeholder: lipgloss.NewStyle().Foreground(lipgloss.Color(p.muted)).Italic(true),
	}
}

// Default is the default theme.
var Default = build(palette{
	primary:    "#7c3aed",
	muted:      "#737373",
	border:     "#404040",
	foreground: "#fafafa",
	background: "#1a1a1a",
	surface:    "#404040",
	errColor:   "#ef4444",
	success:    "#10b981",
	info:       "#3b82f6",
	rowText:    "#1a1a1a",
})

// CatppuccinMocha is the Catppuccin Mocha theme.
var CatppuccinMocha = build(palette{
	primary:    "#cba6f7",
	muted:      "#6c7086",
	border:     "#45475a",
	foreground: "#cdd6f4",
	background: "#1e1e2e",
	surface:    "#45475a",
	errColor:   "#f38ba8",
	success:    "#a6e3a1",
	info:       "#89dceb",
	rowText:    "#1e1e2e",
})

// GetTheme returns a theme by name.
func GetTheme(name string) Theme {
	switch name {
	case "catppuccin-mocha":
		return CatppuccinMocha
	default:
		return Default
	}
}
