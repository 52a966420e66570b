package layout

import (
	"maps"

	"github.com/matzehuels/figlayout/pkg/edit"
	"github.com/matzehuels/figlayout/pkg/figure"
)

// Fixed replays precomputed geometry onto a set. Figures without an entry
// keep their geometry. It is used to apply cached layout results through the
// same commit path as a live algorithm.
type Fixed struct {
	name      string
	positions map[figure.ID]figure.Geometry
}

// NewFixed creates a Fixed layout reporting name as its algorithm name.
func NewFixed(name string, positions map[figure.ID]figure.Geometry) *Fixed {
	return &Fixed{name: name, positions: maps.Clone(positions)}
}

// Name implements FigureLayout.
func (f *Fixed) Name() string { return f.name }

// Layout implements FigureLayout.
func (f *Fixed) Layout(set figure.Set) (*edit.Edit, error) {
	if err := prepare(f.name, set); err != nil {
		return nil, err
	}
	targets := make([]figure.Geometry, len(set))
	for i, fig := range set {
		if g, ok := f.positions[fig.ID]; ok {
			targets[i] = g
		} else {
			targets[i] = fig.Geometry
		}
	}
	return commit(f.name, set, targets)
}

// Positions captures the current geometry of every figure in set, suitable
// for NewFixed.
func Positions(set figure.Set) map[figure.ID]figure.Geometry {
	m := make(map[figure.ID]figure.Geometry, len(set))
	for _, f := range set {
		m[f.ID] = f.Geometry
	}
	return m
}

var _ FigureLayout = (*Fixed)(nil)
