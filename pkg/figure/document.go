package figure

import (
	"slices"

	"github.com/google/uuid"

	"github.com/matzehuels/figlayout/pkg/errors"
)

// Resolver looks figures up by ID. [Document] implements it; undo records
// depend only on this narrow view of the document.
type Resolver interface {
	Figure(id ID) (*Figure, bool)
}

// Document owns the figures and transitions of one diagram.
//
// The zero value is not usable - use NewDocument.
type Document struct {
	figures     map[ID]*Figure
	order       []ID
	retired     map[ID]struct{}
	connections []Connection
}

// NewDocument creates an empty document.
func NewDocument() *Document {
	return &Document{
		figures: make(map[ID]*Figure),
		retired: make(map[ID]struct{}),
	}
}

// Add inserts a copy of f and returns a pointer to the stored figure.
//
// An empty ID is replaced with a random UUID and an empty Kind defaults to
// KindState. Add fails with ErrCodeDuplicateFigure when the ID is in use or
// was used by a removed figure, and with ErrCodeInvalidGeometry when the
// geometry is not finite.
func (d *Document) Add(f Figure) (*Figure, error) {
	if f.ID == "" {
		f.ID = ID(uuid.NewString())
	}
	if err := errors.ValidateFigureID(string(f.ID)); err != nil {
		return nil, err
	}
	if _, exists := d.figures[f.ID]; exists {
		return nil, errors.Figure(errors.ErrCodeDuplicateFigure, string(f.ID), "ID already in use")
	}
	if _, gone := d.retired[f.ID]; gone {
		return nil, errors.Figure(errors.ErrCodeDuplicateFigure, string(f.ID), "ID belonged to a removed figure")
	}
	if err := f.Geometry.Validate(f.ID); err != nil {
		return nil, err
	}
	if f.Kind == "" {
		f.Kind = KindState
	}
	if !ValidKinds[f.Kind] {
		return nil, errors.Figure(errors.ErrCodeInvalidInput, string(f.ID), "unknown kind %q", f.Kind)
	}

	fig := &f
	d.figures[fig.ID] = fig
	d.order = append(d.order, fig.ID)
	return fig, nil
}

// Remove deletes a figure and every connection touching it.
// The ID is retired and cannot be added again.
func (d *Document) Remove(id ID) error {
	if _, ok := d.figures[id]; !ok {
		return errors.New(errors.ErrCodeNotFound, "figure %q not found", id)
	}
	delete(d.figures, id)
	d.retired[id] = struct{}{}
	d.order = slices.DeleteFunc(d.order, func(o ID) bool { return o == id })
	d.connections = slices.DeleteFunc(d.connections, func(c Connection) bool {
		return c.From == id || c.To == id
	})
	return nil
}

// Figure returns the figure with the given ID and true, or nil and false.
// The pointer refers to the stored figure; geometry changes affect the document.
func (d *Document) Figure(id ID) (*Figure, bool) {
	f, ok := d.figures[id]
	return f, ok
}

// Has reports whether a figure with the ID exists.
func (d *Document) Has(id ID) bool {
	_, ok := d.figures[id]
	return ok
}

// Figures returns all figures in insertion order.
func (d *Document) Figures() Set {
	out := make(Set, len(d.order))
	for i, id := range d.order {
		out[i] = d.figures[id]
	}
	return out
}

// Len returns the number of figures.
func (d *Document) Len() int { return len(d.order) }

// Connect adds a transition between two existing figures.
// Self-loops and parallel transitions are allowed.
func (d *Document) Connect(c Connection) error {
	if !d.Has(c.From) {
		return errors.New(errors.ErrCodeNotFound, "unknown source figure %q", c.From)
	}
	if !d.Has(c.To) {
		return errors.New(errors.ErrCodeNotFound, "unknown target figure %q", c.To)
	}
	d.connections = append(d.connections, c)
	return nil
}

// Connections returns a copy of all transitions in insertion order.
func (d *Document) Connections() []Connection { return slices.Clone(d.connections) }

// Select resolves ids into an ordered Set.
// It fails on unknown IDs and on IDs listed more than once.
func (d *Document) Select(ids ...ID) (Set, error) {
	set := make(Set, 0, len(ids))
	seen := make(map[ID]bool, len(ids))
	for _, id := range ids {
		f, ok := d.figures[id]
		if !ok {
			return nil, errors.New(errors.ErrCodeNotFound, "figure %q not found", id)
		}
		if seen[id] {
			return nil, errors.Figure(errors.ErrCodeDuplicateFigure, string(id), "selected more than once")
		}
		seen[id] = true
		set = append(set, f)
	}
	return set, nil
}

var _ Resolver = (*Document)(nil)
