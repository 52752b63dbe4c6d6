package workflow

import (
	"context"
	"errors"
	"fmt"
	"sync/atomic"

	"github.com/Veraticus/the-books-must-balance/internal/common"
	"github.com/Veraticus/the-books-must-balance/internal/grid"
	"github.com/Veraticus/the-books-must-balance/internal/model"
	"github.com/Veraticus/the-books-must-balance/internal/registry"
)

var (
	// ErrDialogOpen is returned when a second dialog is proposed.
	ErrDialogOpen = errors.New("another confirmation is open")
	// ErrNoDialog is returned when confirming with nothing proposed.
	ErrNoDialog = errors.New("nothing to confirm")
	// ErrRowBusy is returned when a row already has a call in flight.
	ErrRowBusy = errors.New("row has a pending change")
)

// Backend is the collaborator that applies confirmed changes.
type Backend interface {
	Patch(ctx context.Context, resource string, id int, fields map[string]any) error
	Delete(ctx context.Context, resource string, id int) error
}

// Kind tells edits and deletes apart.
type Kind int

// Dialog kinds.
const (
	KindEdit Kind = iota
	KindDelete
)

// Phase is the state of a dialog.
type Phase int

// Dialog phases.
const (
	PhaseProposed Phase = iota
	PhaseRunning
	PhaseFailed
)

// Field is a label/value pair of the delete preview.
type Field struct {
	Label string
	Value string
}

// Dialog is an open confirmation. For edits it shows PrevValue and NewValue;
// for deletes the Preview fields.
type Dialog struct {
	Err       string
	PrevValue string
	NewValue  string
	FieldKey  string
	Resource  string
	Preview   []Field
	Table     model.TableType
	Kind      Kind
	Phase     Phase
	RowID     int
	ticket    uint64
}

// Title is the dialog heading.
func (d *Dialog) Title() string {
	if d.Kind == KindDelete {
		return "Confirmar Eliminación"
	}
	return "Confirmar Cambios"
}

// Ticket identifies one dispatched call. It is a value so the call can run
// away from the event loop.
type Ticket struct {
	Value    any
	Field    string
	Resource string
	ID       uint64
	RowID    int
	Kind     Kind
}

// Outcome is the result of executing a ticket.
type Outcome struct {
	Err    error
	Ticket Ticket
}

type rowKey struct {
	resource string
	id       int
}

// Workflow holds at most one open dialog. Propose, Confirm, Resolve and
// Dismiss run on the event loop; Execute may run anywhere.
type Workflow struct {
	backend  Backend
	refresh  func()
	active   *Dialog
	inFlight map[rowKey]uint64
	next     atomic.Uint64
}

// New creates a workflow. refresh is called once after every successful call.
func New(backend Backend, refresh func()) *Workflow {
	if refresh == nil {
		refresh = func() {}
	}
	return &Workflow{
		backend:  backend,
		refresh:  refresh,
		inFlight: map[rowKey]uint64{},
	}
}

// Active returns the open dialog, or nil.
func (w *Workflow) Active() *Dialog {
	return w.active
}

// ProposeEdit opens the before/after comparison for an edit intent.
func (w *Workflow) ProposeEdit(intent grid.EditIntent) (*Dialog, error) {
	if w.active != nil {
		return nil, ErrDialogOpen
	}
	resource, err := ResolveResource(string(intent.Table))
	if err != nil {
		return nil, err
	}
	w.active = &Dialog{
		Kind:      KindEdit,
		Table:     intent.Table,
		Resource:  resource,
		RowID:     intent.RowID,
		FieldKey:  intent.Field,
		PrevValue: intent.PrevValue,
		NewValue:  intent.NewValue,
	}
	return w.active, nil
}

// ProposeDelete opens the confirmation for deleting a row.
func (w *Workflow) ProposeDelete(intent grid.DeleteIntent) (*Dialog, error) {
	if w.active != nil {
		return nil, ErrDialogOpen
	}
	resource, err := ResolveResource(string(intent.Table))
	if err != nil {
		return nil, err
	}
	w.active = &Dialog{
		Kind:     KindDelete,
		Table:    intent.Table,
		Resource: resource,
		RowID:    intent.RowID,
		Preview:  DeletePreview(intent.Table, intent.Row),
	}
	return w.active, nil
}

var previewFields = map[model.TableType][]string{
	model.TableMovimientos: {"id", "fecha", "tipo", "concepto", "total"},
	model.TableCajaChica:   {"id", "fecha", "tipo", "concepto", "total"},
	model.TableCuentas:     {"id", "nombre", "contacto_mail", "tipo_cuenta"},
	model.TableProductos:   {"id", "tipo_producto", "cantidad", "precio_venta_unitario"},
}

// DeletePreview lists the relevant fields of a row, skipping absent ones.
func DeletePreview(t model.TableType, row model.Row) []Field {
	if row == nil {
		return nil
	}
	var fields []Field
	for _, key := range previewFields[t] {
		v := row.Field(key)
		if model.IsNullish(v) {
			continue
		}
		fields = append(fields, Field{Label: key, Value: model.Stringify(v)})
	}
	return fields
}

// Confirm moves the open dialog to running and returns the ticket to execute.
// Only the changed field travels with an edit.
func (w *Workflow) Confirm() (Ticket, error) {
	d := w.active
	if d == nil {
		return Ticket{}, ErrNoDialog
	}
	if d.Phase == PhaseRunning {
		return Ticket{}, ErrRowBusy
	}
	key := rowKey{resource: d.Resource, id: d.RowID}
	if _, busy := w.inFlight[key]; busy {
		return Ticket{}, ErrRowBusy
	}

	t := Ticket{
		ID:       w.next.Add(1),
		Kind:     d.Kind,
		Resource: d.Resource,
		RowID:    d.RowID,
	}
	if d.Kind == KindEdit {
		value, err := registry.Coerce(d.FieldKey, d.NewValue)
		if err != nil {
			d.Phase = PhaseFailed
			d.Err = common.UserMessage(err)
			return Ticket{}, err
		}
		t.Field = d.FieldKey
		t.Value = value
	}

	d.Phase = PhaseRunning
	d.Err = ""
	d.ticket = t.ID
	w.inFlight[key] = t.ID
	return t, nil
}

// Execute performs the backend call for a ticket. It reads no dialog state.
func (w *Workflow) Execute(ctx context.Context, t Ticket) Outcome {
	var err error
	switch t.Kind {
	case KindEdit:
		err = w.backend.Patch(ctx, t.Resource, t.RowID, map[string]any{t.Field: t.Value})
	case KindDelete:
		err = w.backend.Delete(ctx, t.Resource, t.RowID)
	default:
		err = fmt.Errorf("unknown dialog kind %d", t.Kind)
	}
	if err != nil {
		common.LogError(err, "Confirmed change failed", common.Fields{
			"resource": t.Resource,
			"row_id":   t.RowID,
			"field":    t.Field,
		})
	}
	return Outcome{Ticket: t, Err: err}
}

// Resolve applies an outcome. It reports false when the dialog the ticket
// belonged to was dismissed or replaced; such an outcome only triggers a
// refresh when it succeeded, so the table catches up with the backend. On
// success the dialog closes and refresh runs once. On failure the dialog
// stays open with the error.
func (w *Workflow) Resolve(o Outcome) bool {
	key := rowKey{resource: o.Ticket.Resource, id: o.Ticket.RowID}
	if w.inFlight[key] == o.Ticket.ID {
		delete(w.inFlight, key)
	}

	d := w.active
	if d == nil || d.ticket != o.Ticket.ID || d.Phase != PhaseRunning {
		if o.Err == nil {
			w.refresh()
		}
		return false
	}

	if o.Err != nil {
		d.Phase = PhaseFailed
		d.Err = common.UserMessage(o.Err)
		return true
	}

	w.active = nil
	w.refresh()
	return true
}

// Dismiss closes the open dialog in any phase. A call already in flight
// still completes but its outcome no longer touches the dialog.
func (w *Workflow) Dismiss() {
	w.active = nil
}
