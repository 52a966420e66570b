// Package edit implements the reversible record produced by a layout call.
//
// An [Edit] captures, for every figure a layout moved, the geometry before and
// after the move. It holds figure IDs rather than pointers, so undo and redo
// resolve figures through the document at the time they run and can detect
// figures that were removed in the meantime.
//
// # Kinds
//
// Layout calls never return nil. Instead the edit's [Kind] says what happened:
//
//	Noop          nothing moved (including an empty selection)
//	Reversible    figures moved and the move can be undone
//	Irreversible  figures moved but the algorithm does not support undo
//
// # State
//
// A reversible edit starts applied. Undo is valid only while applied and Redo
// only while undone, so each consumes the edit exactly once per cycle:
//
//	applied --Undo--> undone --Redo--> applied
//
// Calling Undo twice in a row fails with errors.ErrCodeEditState.
//
// # Stale References
//
// Before mutating anything, Undo and Redo check that every captured figure
// still exists. If one is missing they fail with errors.ErrCodeStaleReference
// and leave every figure untouched, so the invoker can decide whether to drop
// the history entry.
package edit

import (
	"slices"

	"github.com/matzehuels/figlayout/pkg/errors"
	"github.com/matzehuels/figlayout/pkg/figure"
)

// Kind says what a layout call did.
type Kind int

const (
	// Noop means no figure geometry changed.
	Noop Kind = iota
	// Reversible means figures moved and the edit can restore them.
	Reversible
	// Irreversible means figures moved but no undo information was kept.
	Irreversible
)

// String returns the lower-case kind name.
func (k Kind) String() string {
	switch k {
	case Noop:
		return "noop"
	case Reversible:
		return "reversible"
	case Irreversible:
		return "irreversible"
	default:
		return "unknown"
	}
}

// Snapshot is the before/after geometry of one figure.
type Snapshot struct {
	ID     figure.ID
	Before figure.Geometry
	After  figure.Geometry
}

// Moved reports whether the snapshot records an actual change.
func (s Snapshot) Moved() bool { return !s.Before.Equal(s.After) }

// Edit is the undo record of one layout invocation.
// It is immutable after creation except for its applied/undone state.
type Edit struct {
	kind   Kind
	name   string
	snaps  []Snapshot
	undone bool
}

// New builds an edit from snapshots taken at commit time.
// Snapshots that record no movement are dropped; if none remain the result
// is a Noop edit.
func New(name string, snaps []Snapshot) *Edit {
	moved := slices.DeleteFunc(slices.Clone(snaps), func(s Snapshot) bool { return !s.Moved() })
	if len(moved) == 0 {
		return NewNoop(name)
	}
	return &Edit{kind: Reversible, name: name, snaps: moved}
}

// NewNoop returns an edit recording that nothing changed.
func NewNoop(name string) *Edit {
	return &Edit{kind: Noop, name: name}
}

// NewIrreversible returns an edit for a change that cannot be undone.
func NewIrreversible(name string) *Edit {
	return &Edit{kind: Irreversible, name: name}
}

// Kind returns the edit kind.
func (e *Edit) Kind() Kind { return e.kind }

// Name returns the name of the operation that produced the edit.
func (e *Edit) Name() string { return e.name }

// Len returns the number of figures the edit restores.
func (e *Edit) Len() int { return len(e.snaps) }

// Snapshots returns a copy of the captured geometry, in layout order.
func (e *Edit) Snapshots() []Snapshot { return slices.Clone(e.snaps) }

// IsNoop reports whether the edit records no change.
func (e *Edit) IsNoop() bool { return e.kind == Noop }

// Undone reports whether the edit is currently undone.
func (e *Edit) Undone() bool { return e.undone }

// CanUndo reports whether Undo would be accepted, ignoring stale references.
func (e *Edit) CanUndo() bool { return e.kind == Reversible && !e.undone }

// CanRedo reports whether Redo would be accepted, ignoring stale references.
func (e *Edit) CanRedo() bool { return e.kind == Reversible && e.undone }

// Undo restores every captured figure to its geometry before the layout.
func (e *Edit) Undo(r figure.Resolver) error {
	if err := e.check(true); err != nil {
		return err
	}
	if err := e.apply(r, func(s Snapshot) figure.Geometry { return s.Before }); err != nil {
		return err
	}
	e.undone = true
	return nil
}

// Redo reapplies the geometry computed by the layout.
func (e *Edit) Redo(r figure.Resolver) error {
	if err := e.check(false); err != nil {
		return err
	}
	if err := e.apply(r, func(s Snapshot) figure.Geometry { return s.After }); err != nil {
		return err
	}
	e.undone = false
	return nil
}

func (e *Edit) check(undo bool) error {
	switch e.kind {
	case Noop:
		return nil
	case Irreversible:
		return errors.New(errors.ErrCodeIrreversible, "%s layout cannot be undone", e.name)
	}
	if undo && e.undone {
		return errors.New(errors.ErrCodeEditState, "%s layout is already undone", e.name)
	}
	if !undo && !e.undone {
		return errors.New(errors.ErrCodeEditState, "%s layout has not been undone", e.name)
	}
	return nil
}

// apply resolves every figure first and only then writes geometry, so a
// stale reference leaves the document untouched.
func (e *Edit) apply(r figure.Resolver, pick func(Snapshot) figure.Geometry) error {
	if e.kind == Noop {
		return nil
	}
	figs := make([]*figure.Figure, len(e.snaps))
	var missing []figure.ID
	for i, s := range e.snaps {
		f, ok := r.Figure(s.ID)
		if !ok {
			missing = append(missing, s.ID)
			continue
		}
		figs[i] = f
	}
	if len(missing) > 0 {
		return errors.Figure(errors.ErrCodeStaleReference, string(missing[0]),
			"removed after %s layout (%d of %d figures missing)", e.name, len(missing), len(e.snaps))
	}
	for i, s := range e.snaps {
		figs[i].SetGeometry(pick(s))
	}
	return nil
}
