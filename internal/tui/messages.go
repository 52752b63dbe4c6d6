package tui

import (
	"github.com/Veraticus/the-books-must-balance/internal/model"
	"github.com/Veraticus/the-books-must-balance/internal/workflow"
)

// Data loading messages.
type snapshotLoadedMsg struct {
	err      error
	snapshot model.Snapshot
}

type cachedSnapshotMsg struct {
	snapshot model.Snapshot
}

// outcomeMsg carries the result of a confirmed edit or delete.
type outcomeMsg struct {
	outcome workflow.Outcome
}

// Error handling.
type errorMsg struct {
	err     error
	context string
}
