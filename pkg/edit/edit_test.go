package edit

import (
	"testing"

	"github.com/matzehuels/figlayout/pkg/errors"
	"github.com/matzehuels/figlayout/pkg/figure"
)

func newDoc(t *testing.T) *figure.Document {
	t.Helper()
	d := figure.NewDocument()
	for _, f := range []figure.Figure{
		{ID: "a", Geometry: figure.Rect(0, 0, 10, 10)},
		{ID: "b", Geometry: figure.Rect(50, 0, 10, 10)},
		{ID: "c", Geometry: figure.Rect(100, 0, 10, 10)},
	} {
		if _, err := d.Add(f); err != nil {
			t.Fatal(err)
		}
	}
	return d
}

// move applies after-geometry directly and returns the matching edit.
func move(t *testing.T, d *figure.Document, after map[figure.ID]figure.Geometry) *Edit {
	t.Helper()
	var snaps []Snapshot
	for _, f := range d.Figures() {
		g, ok := after[f.ID]
		if !ok {
			continue
		}
		snaps = append(snaps, Snapshot{ID: f.ID, Before: f.Geometry, After: g})
		f.SetGeometry(g)
	}
	return New("test", snaps)
}

func TestNewDropsUnmoved(t *testing.T) {
	d := newDoc(t)
	e := move(t, d, map[figure.ID]figure.Geometry{
		"a": figure.Rect(0, 0, 10, 10), // unchanged
		"b": figure.Rect(1, 2, 10, 10),
	})
	if e.Kind() != Reversible {
		t.Fatalf("Kind() = %v, want reversible", e.Kind())
	}
	if e.Len() != 1 {
		t.Errorf("Len() = %d, want 1", e.Len())
	}
}

func TestNewAllUnmovedIsNoop(t *testing.T) {
	d := newDoc(t)
	e := move(t, d, map[figure.ID]figure.Geometry{"a": figure.Rect(0, 0, 10, 10)})
	if !e.IsNoop() {
		t.Errorf("Kind() = %v, want noop", e.Kind())
	}
	if err := e.Undo(d); err != nil {
		t.Errorf("Undo() on noop error = %v", err)
	}
	if err := e.Redo(d); err != nil {
		t.Errorf("Redo() on noop error = %v", err)
	}
}

func TestUndoRedoRoundTrip(t *testing.T) {
	d := newDoc(t)
	before := d.Figures().Geometries()

	e := move(t, d, map[figure.ID]figure.Geometry{
		"a": figure.Rect(0.1, 0.2, 10, 10),
		"c": figure.Rect(-3.3, 7.7, 12, 14),
	})
	after := d.Figures().Geometries()

	if err := e.Undo(d); err != nil {
		t.Fatalf("Undo() error = %v", err)
	}
	for i, f := range d.Figures() {
		if !f.Geometry.Equal(before[i]) {
			t.Errorf("after Undo %s = %v, want %v", f.ID, f.Geometry, before[i])
		}
	}
	if !e.Undone() || !e.CanRedo() || e.CanUndo() {
		t.Error("edit state after Undo is inconsistent")
	}

	if err := e.Redo(d); err != nil {
		t.Fatalf("Redo() error = %v", err)
	}
	for i, f := range d.Figures() {
		if !f.Geometry.Equal(after[i]) {
			t.Errorf("after Redo %s = %v, want %v", f.ID, f.Geometry, after[i])
		}
	}
}

func TestUndoStateErrors(t *testing.T) {
	d := newDoc(t)
	e := move(t, d, map[figure.ID]figure.Geometry{"a": figure.Rect(5, 5, 10, 10)})

	if err := e.Redo(d); !errors.Is(err, errors.ErrCodeEditState) {
		t.Errorf("Redo() before Undo error = %v, want EDIT_STATE", err)
	}
	if err := e.Undo(d); err != nil {
		t.Fatalf("Undo() error = %v", err)
	}
	if err := e.Undo(d); !errors.Is(err, errors.ErrCodeEditState) {
		t.Errorf("second Undo() error = %v, want EDIT_STATE", err)
	}
	// Geometry must still be the restored one.
	if f, _ := d.Figure("a"); !f.Geometry.Equal(figure.Rect(0, 0, 10, 10)) {
		t.Errorf("a = %v after rejected Undo", f.Geometry)
	}
}

func TestUndoStaleReference(t *testing.T) {
	d := newDoc(t)
	e := move(t, d, map[figure.ID]figure.Geometry{
		"a": figure.Rect(1, 1, 10, 10),
		"b": figure.Rect(2, 2, 10, 10),
	})
	if err := d.Remove("b"); err != nil {
		t.Fatal(err)
	}

	err := e.Undo(d)
	if !errors.Is(err, errors.ErrCodeStaleReference) {
		t.Fatalf("Undo() error = %v, want STALE_REFERENCE", err)
	}
	if id, _ := errors.FigureID(err); id != "b" {
		t.Errorf("stale figure = %q, want b", id)
	}

	// Remaining figures untouched: a keeps its post-layout geometry.
	if f, _ := d.Figure("a"); !f.Geometry.Equal(figure.Rect(1, 1, 10, 10)) {
		t.Errorf("a = %v, want untouched 1,1", f.Geometry)
	}
	if e.Undone() {
		t.Error("failed Undo must not flip the edit state")
	}
}

func TestRedoStaleReference(t *testing.T) {
	d := newDoc(t)
	e := move(t, d, map[figure.ID]figure.Geometry{
		"a": figure.Rect(1, 1, 10, 10),
		"c": figure.Rect(3, 3, 10, 10),
	})
	if err := e.Undo(d); err != nil {
		t.Fatal(err)
	}
	d.Remove("c")

	if err := e.Redo(d); !errors.Is(err, errors.ErrCodeStaleReference) {
		t.Fatalf("Redo() error = %v, want STALE_REFERENCE", err)
	}
	if f, _ := d.Figure("a"); !f.Geometry.Equal(figure.Rect(0, 0, 10, 10)) {
		t.Errorf("a = %v, want untouched 0,0", f.Geometry)
	}
}

func TestIrreversible(t *testing.T) {
	d := newDoc(t)
	e := NewIrreversible("shuffle")
	if err := e.Undo(d); !errors.Is(err, errors.ErrCodeIrreversible) {
		t.Errorf("Undo() error = %v, want IRREVERSIBLE", err)
	}
	if e.CanUndo() || e.CanRedo() {
		t.Error("irreversible edit should not report undo/redo availability")
	}
}

func TestKindString(t *testing.T) {
	tests := map[Kind]string{
		Noop:         "noop",
		Reversible:   "reversible",
		Irreversible: "irreversible",
		Kind(42):     "unknown",
	}
	for k, want := range tests {
		if got := k.String(); got != want {
			t.Errorf("Kind(%d).String() = %q, want %q", int(k), got, want)
		}
	}
}
