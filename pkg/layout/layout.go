package layout

import (
	"fmt"

	"github.com/matzehuels/figlayout/pkg/edit"
	"github.com/matzehuels/figlayout/pkg/errors"
	"github.com/matzehuels/figlayout/pkg/figure"
)

// FigureLayout repositions a set of figures and returns the reversible edit.
type FigureLayout interface {
	// Name identifies the algorithm in logs, history and cache keys.
	Name() string

	// Layout moves the figures of set in place. On error no figure is changed.
	Layout(set figure.Set) (*edit.Edit, error)
}

// ConnectionSource supplies the transitions that connection-aware algorithms
// follow. [figure.Document] implements it.
type ConnectionSource interface {
	Connections() []figure.Connection
}

// prepare validates the input set before any computation.
func prepare(name string, set figure.Set) error {
	seen := make(map[figure.ID]bool, len(set))
	for i, f := range set {
		if f == nil {
			return errors.New(errors.ErrCodeInvalidInput, "%s layout: nil figure at index %d", name, i)
		}
		if seen[f.ID] {
			return errors.Figure(errors.ErrCodeDuplicateFigure, string(f.ID), "listed more than once in %s layout", name)
		}
		seen[f.ID] = true
		if err := f.Geometry.Validate(f.ID); err != nil {
			return fmt.Errorf("%s layout: %w", name, err)
		}
	}
	return nil
}

// commit validates targets against the set and, only if every figure passes,
// writes them and returns the edit. targets[i] belongs to set[i].
func commit(name string, set figure.Set, targets []figure.Geometry) (*edit.Edit, error) {
	if len(targets) != len(set) {
		return nil, errors.New(errors.ErrCodeInternal, "%s layout produced %d positions for %d figures", name, len(targets), len(set))
	}
	for i, f := range set {
		if err := targets[i].Validate(f.ID); err != nil {
			return nil, fmt.Errorf("%s layout: %w", name, err)
		}
		if f.Locked && !targets[i].Equal(f.Geometry) {
			return nil, errors.Figure(errors.ErrCodeLockedFigure, string(f.ID), "locked figure would move in %s layout", name)
		}
	}

	snaps := make([]edit.Snapshot, len(set))
	for i, f := range set {
		snaps[i] = edit.Snapshot{ID: f.ID, Before: f.Geometry, After: targets[i]}
	}
	for i, f := range set {
		f.SetGeometry(targets[i])
	}
	return edit.New(name, snaps), nil
}

// origin returns the explicit origin or the set's top-left bound.
func origin(set figure.Set, explicit *figure.Point) figure.Point {
	if explicit != nil {
		return *explicit
	}
	b, _ := set.Bounds()
	return figure.Point{X: b.X, Y: b.Y}
}
