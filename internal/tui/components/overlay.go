package components

import (
	"fmt"
	"strings"

	"github.com/Veraticus/the-books-must-balance/internal/grid"
	"github.com/Veraticus/the-books-must-balance/internal/registry"
	"github.com/Veraticus/the-books-must-balance/internal/tui/themes"
	"github.com/Veraticus/the-books-must-balance/internal/workflow"
	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"
)

// previewWidth caps the floating preview.
const previewWidth = 48

// RenderPreview draws the hover preview of a cell. The background follows
// the row colour.
func RenderPreview(p grid.Preview, theme themes.Theme) string {
	if !p.Visible() {
		return ""
	}
	style := theme.Overlay
	if p.Background != registry.NoColor {
		style = style.Background(lipgloss.Color(p.Background)).Foreground(theme.RowText)
	}

	var lines []string
	if len(p.Items) > 0 {
		for _, it := range p.Items {
			lines = append(lines, runewidth.Truncate(
				fmt.Sprintf("%s x%s", it.NombreProducto, it.Cantidad.String()), previewWidth, "…"))
		}
		if p.More() {
			lines = append(lines, fmt.Sprintf("… y %d más (v para ver todos)", p.Total-len(p.Items)))
		}
	} else {
		lines = append(lines, wrap(p.Content, previewWidth)...)
	}
	return style.Render(strings.Join(lines, "\n"))
}

func wrap(s string, width int) []string {
	var lines []string
	var line strings.Builder
	for _, word := range strings.Fields(s) {
		if line.Len() > 0 && runewidth.StringWidth(line.String())+1+runewidth.StringWidth(word) > width {
			lines = append(lines, line.String())
			line.Reset()
		}
		if line.Len() > 0 {
			line.WriteString(" ")
		}
		line.WriteString(runewidth.Truncate(word, width, "…"))
	}
	if line.Len() > 0 {
		lines = append(lines, line.String())
	}
	return lines
}

// RenderMenu draws the row menu with the highlighted option.
func RenderMenu(menu grid.RowMenuOpen, cursor int, theme themes.Theme) string {
	lines := make([]string, 0, len(menu.Options)+1)
	lines = append(lines, theme.Subtitle.Render(fmt.Sprintf("Fila #%d", menu.RowID)))
	for i, opt := range menu.Options {
		if i == cursor {
			lines = append(lines, theme.MenuActive.Render("› "+opt.Label))
			continue
		}
		lines = append(lines, theme.MenuItem.Render("  "+opt.Label))
	}
	return theme.Overlay.Render(strings.Join(lines, "\n"))
}

// RenderDialog draws an edit or delete confirmation.
func RenderDialog(d *workflow.Dialog, theme themes.Theme) string {
	if d == nil {
		return ""
	}
	sections := []string{theme.Title.Render(d.Title()), ""}

	switch d.Kind {
	case workflow.KindEdit:
		sections = append(sections,
			fmt.Sprintf("Campo: %s", theme.Bold.Render(d.FieldKey)),
			fmt.Sprintf("Antes:   %s", shown(d.PrevValue)),
			fmt.Sprintf("Después: %s", shown(d.NewValue)),
		)
	case workflow.KindDelete:
		sections = append(sections, fmt.Sprintf("¿Eliminar la fila #%d?", d.RowID))
		for _, f := range d.Preview {
			sections = append(sections, fmt.Sprintf("%s: %s", theme.Bold.Render(f.Label), f.Value))
		}
	}

	sections = append(sections, "")
	switch d.Phase {
	case workflow.PhaseRunning:
		sections = append(sections, theme.StatusInfo.Render("Guardando..."))
	case workflow.PhaseFailed:
		sections = append(sections, theme.StatusError.Render(d.Err), "")
		sections = append(sections, theme.Subtitle.Render("[enter] Reintentar  [esc] Cancelar"))
	default:
		sections = append(sections, theme.Subtitle.Render("[enter] Confirmar  [esc] Cancelar"))
	}
	return theme.Dialog.Render(lipgloss.JoinVertical(lipgloss.Left, sections...))
}

func shown(v string) string {
	if v == "" {
		return registry.Placeholder
	}
	return v
}
