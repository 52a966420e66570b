// Package history keeps the undo/redo stack of layout edits.
//
// A History stores [edit.Edit] values in the order they were applied. It
// never inspects figure geometry itself; Undo and Redo delegate to the edit,
// which verifies every captured figure before touching the document.
//
// Noop edits are never recorded. An irreversible edit clears the history,
// because earlier edits no longer describe geometry that can be restored.
// Pushing a new edit discards everything that was undone.
package history

import (
	"slices"

	"github.com/matzehuels/figlayout/pkg/edit"
	"github.com/matzehuels/figlayout/pkg/errors"
	"github.com/matzehuels/figlayout/pkg/figure"
)

// DefaultDepth is the number of edits kept when no depth is configured.
const DefaultDepth = 50

// History is a bounded undo/redo stack. It is not safe for concurrent use.
type History struct {
	edits  []*edit.Edit
	cursor int // edits[:cursor] are applied, edits[cursor:] are undone
	max    int
}

// New creates a history keeping at most depth edits. Non-positive depth
// selects DefaultDepth.
func New(depth int) *History {
	if depth <= 0 {
		depth = DefaultDepth
	}
	return &History{edits: make([]*edit.Edit, 0, depth), max: depth}
}

// Push records an applied edit and reports whether it was kept.
func (h *History) Push(e *edit.Edit) bool {
	if e == nil {
		return false
	}
	switch e.Kind() {
	case edit.Noop:
		return false
	case edit.Irreversible:
		h.Clear()
		return false
	}

	h.edits = append(h.edits[:h.cursor], e)
	if len(h.edits) > h.max {
		h.edits = slices.Delete(h.edits, 0, len(h.edits)-h.max)
	}
	h.cursor = len(h.edits)
	return true
}

// Undo reverts the most recent applied edit. On error the stack is left as
// it was and the failing edit is returned so the caller can inspect or Drop
// it.
func (h *History) Undo(r figure.Resolver) (*edit.Edit, error) {
	if !h.CanUndo() {
		return nil, errors.New(errors.ErrCodeNothingToUndo, "nothing to undo")
	}
	e := h.edits[h.cursor-1]
	if err := e.Undo(r); err != nil {
		return e, err
	}
	h.cursor--
	return e, nil
}

// Redo reapplies the most recently undone edit.
func (h *History) Redo(r figure.Resolver) (*edit.Edit, error) {
	if !h.CanRedo() {
		return nil, errors.New(errors.ErrCodeNothingToRedo, "nothing to redo")
	}
	e := h.edits[h.cursor]
	if err := e.Redo(r); err != nil {
		return e, err
	}
	h.cursor++
	return e, nil
}

// Drop removes e from the history, typically after it failed with a stale
// reference. It reports whether e was found.
func (h *History) Drop(e *edit.Edit) bool {
	i := slices.Index(h.edits, e)
	if i < 0 {
		return false
	}
	h.edits = slices.Delete(h.edits, i, i+1)
	if i < h.cursor {
		h.cursor--
	}
	return true
}

// CanUndo reports whether an applied edit is available.
func (h *History) CanUndo() bool { return h.cursor > 0 }

// CanRedo reports whether an undone edit is available.
func (h *History) CanRedo() bool { return h.cursor < len(h.edits) }

// NextUndo returns the edit Undo would revert, or nil.
func (h *History) NextUndo() *edit.Edit {
	if !h.CanUndo() {
		return nil
	}
	return h.edits[h.cursor-1]
}

// NextRedo returns the edit Redo would reapply, or nil.
func (h *History) NextRedo() *edit.Edit {
	if !h.CanRedo() {
		return nil
	}
	return h.edits[h.cursor]
}

// Len returns the number of recorded edits, applied and undone.
func (h *History) Len() int { return len(h.edits) }

// Depth returns the maximum number of edits kept.
func (h *History) Depth() int { return h.max }

// Stats returns the number of applied edits and the total recorded.
func (h *History) Stats() (applied, total int) { return h.cursor, len(h.edits) }

// Clear forgets every edit.
func (h *History) Clear() {
	clear(h.edits)
	h.edits = h.edits[:0]
	h.cursor = 0
}
