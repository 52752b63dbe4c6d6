// Package testing drives Bubble Tea models in tests without a terminal.
package testing

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/x/ansi"
)

// Driver feeds messages to a model and runs the commands it returns
// synchronously, so asynchronous loads resolve before the next assertion.
type Driver struct {
	Model tea.Model
	// Pending holds commands not yet run.
	Pending []tea.Cmd
	// Updates counts Update calls.
	Updates int
}

// NewDriver wraps m.
func NewDriver(m tea.Model) *Driver {
	return &Driver{Model: m}
}

// Init queues the model's Init command.
func (d *Driver) Init() *Driver {
	d.queue(d.Model.Init())
	return d
}

func (d *Driver) queue(cmd tea.Cmd) {
	if cmd != nil {
		d.Pending = append(d.Pending, cmd)
	}
}

// Send delivers msgs without running the commands they produce.
func (d *Driver) Send(msgs ...tea.Msg) *Driver {
	for _, msg := range msgs {
		var cmd tea.Cmd
		d.Model, cmd = d.Model.Update(msg)
		d.Updates++
		d.queue(cmd)
	}
	return d
}

// Type sends text one rune at a time.
func (d *Driver) Type(text string) *Driver {
	for _, r := range text {
		d.Send(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}})
	}
	return d
}

// Flush runs pending commands, feeding their messages back, until none are
// left. Batches are expanded; quit, cursor blink and nil messages are
// dropped.
func (d *Driver) Flush() *Driver {
	for len(d.Pending) > 0 {
		cmd := d.Pending[0]
		d.Pending = d.Pending[1:]
		d.deliver(cmd())
	}
	return d
}

func (d *Driver) deliver(msg tea.Msg) {
	switch msg := msg.(type) {
	case nil, tea.QuitMsg:
	case tea.BatchMsg:
		for _, cmd := range msg {
			d.queue(cmd)
		}
	default:
		if isBlink(msg) {
			return
		}
		d.Send(msg)
	}
}

// isBlink filters the text input cursor ticks, which would otherwise
// reschedule themselves forever.
func isBlink(msg tea.Msg) bool {
	return strings.HasPrefix(fmt.Sprintf("%T", msg), "cursor.")
}

// Discard drops pending commands, such as cursor blinks after focusing an
// input.
func (d *Driver) Discard() *Driver {
	d.Pending = nil
	return d
}

// View returns the current view with escape sequences removed.
func (d *Driver) View() string {
	return ansi.Strip(d.Model.View())
}

// Key creates a key message for a named key or runes.
func Key(k string) tea.KeyMsg {
	switch k {
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	case "esc":
		return tea.KeyMsg{Type: tea.KeyEsc}
	case "tab":
		return tea.KeyMsg{Type: tea.KeyTab}
	case "shift+tab":
		return tea.KeyMsg{Type: tea.KeyShiftTab}
	case "up":
		return tea.KeyMsg{Type: tea.KeyUp}
	case "down":
		return tea.KeyMsg{Type: tea.KeyDown}
	case "left":
		return tea.KeyMsg{Type: tea.KeyLeft}
	case "right":
		return tea.KeyMsg{Type: tea.KeyRight}
	case "backspace":
		return tea.KeyMsg{Type: tea.KeyBackspace}
	case "ctrl+c":
		return tea.KeyMsg{Type: tea.KeyCtrlC}
	}
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(k)}
}

// MouseClick creates a left click at the given position.
func MouseClick(x, y int) tea.MouseMsg {
	return tea.MouseMsg{
		X:      x,
		Y:      y,
		Button: tea.MouseButtonLeft,
		Action: tea.MouseActionPress,
	}
}

// MouseMotion creates a pointer move to the given position.
func MouseMotion(x, y int) tea.MouseMsg {
	return tea.MouseMsg{
		X:      x,
		Y:      y,
		Action: tea.MouseActionMotion,
	}
}

// WindowSize creates a window size message.
func WindowSize(width, height int) tea.WindowSizeMsg {
	return tea.WindowSizeMsg{Width: width, Height: height}
}
