package tui

import "github.com/charmbracelet/bubbles/key"

// KeyMap holds the browser key bindings, grouped as they appear in help.
type KeyMap struct {
	// Navigation
	Up       key.Binding
	Down     key.Binding
	Left     key.Binding
	Right    key.Binding
	PageUp   key.Binding
	PageDown key.Binding
	Home     key.Binding
	End      key.Binding

	// Row actions
	Menu    key.Binding
	Edit    key.Binding
	Delete  key.Binding
	Related key.Binding
	More    key.Binding
	Preview key.Binding

	// Dialogs and inputs
	Confirm key.Binding
	Cancel  key.Binding

	// Views and filters
	NextView   key.Binding
	PrevView   key.Binding
	Search     key.Binding
	Dates      key.Binding
	ClearDates key.Binding

	// Application
	Refresh key.Binding
	Help    key.Binding
	Quit    key.Binding
}

// bind builds a binding whose help line reads "label desc".
func bind(label, desc string, keys ...string) key.Binding {
	return key.NewBinding(key.WithKeys(keys...), key.WithHelp(label, desc))
}

// DefaultKeyMap returns the bindings of the browser.
func DefaultKeyMap() KeyMap {
	return KeyMap{
		Up:       bind("↑/k", "arriba", "k", "up"),
		Down:     bind("↓/j", "abajo", "j", "down"),
		Left:     bind("←/h", "izquierda", "h", "left"),
		Right:    bind("→/l", "derecha", "l", "right"),
		PageUp:   bind("PgUp", "página anterior", "pgup", "ctrl+b"),
		PageDown: bind("PgDn", "página siguiente", "pgdown", "ctrl+f"),
		Home:     bind("g", "inicio", "home", "g"),
		End:      bind("G", "final", "end", "G"),

		Menu:    bind("enter", "menú de fila", "enter", " "),
		Edit:    bind("e", "editar", "e"),
		Delete:  bind("d", "eliminar", "d", "delete"),
		Related: bind("m", "ver movimientos", "m"),
		More:    bind("v", "ver más", "v"),
		Preview: bind("p", "vista previa", "p"),

		Confirm: bind("enter", "confirmar", "enter", "y"),
		Cancel:  bind("esc", "cancelar", "esc"),

		NextView:   bind("tab", "siguiente tabla", "tab"),
		PrevView:   bind("shift+tab", "tabla anterior", "shift+tab"),
		Search:     bind("/", "buscar", "/"),
		Dates:      bind("f", "fechas", "f"),
		ClearDates: bind("F", "limpiar fechas", "F"),

		Refresh: bind("r", "recargar", "r", "ctrl+r"),
		Help:    bind("?", "ayuda", "?"),
		Quit:    bind("q", "salir", "q", "ctrl+c"),
	}
}

// ShortHelp implements help.KeyMap.
func (k KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Menu, k.Edit, k.Delete, k.Search, k.Dates, k.NextView, k.Help, k.Quit}
}

// FullHelp implements help.KeyMap.
func (k KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.Left, k.Right, k.PageUp, k.PageDown, k.Home, k.End},
		{k.Menu, k.Edit, k.Delete, k.Related, k.More, k.Preview},
		{k.NextView, k.PrevView, k.Search, k.Dates, k.ClearDates},
		{k.Confirm, k.Cancel, k.Refresh, k.Help, k.Quit},
	}
}
