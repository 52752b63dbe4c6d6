package tui

import (
	"context"
	"fmt"

	"github.com/Veraticus/the-books-must-balance/internal/common"
	"github.com/Veraticus/the-books-must-balance/internal/workflow"
	tea "github.com/charmbracelet/bubbletea"
)

// loadSnapshot fetches every table from the backend.
func (m Model) loadSnapshot() tea.Cmd {
	loader := m.config.Loader
	timeout := m.config.LoadTimeout
	return func() tea.Msg {
		if loader == nil {
			return errorMsg{err: fmt.Errorf("%w: loader", common.ErrMissingConfig), context: "load"}
		}
		ctx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()

		snap, err := loader.Load(ctx)
		return snapshotLoadedMsg{snapshot: snap, err: err}
	}
}

// loadCached reads the last cached snapshot, if any.
func (m Model) loadCached() tea.Cmd {
	loader := m.config.Loader
	if loader == nil {
		return nil
	}
	return func() tea.Msg {
		snap, ok := loader.Cached(context.Background())
		if !ok {
			return nil
		}
		return cachedSnapshotMsg{snapshot: snap}
	}
}

// execute runs a confirmed ticket off the event loop.
func (m Model) execute(t workflow.Ticket) tea.Cmd {
	flow := m.flow
	timeout := m.config.LoadTimeout
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()
		return outcomeMsg{outcome: flow.Execute(ctx, t)}
	}
}
