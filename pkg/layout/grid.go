package layout

import (
	"math"

	"github.com/matzehuels/figlayout/pkg/edit"
	"github.com/matzehuels/figlayout/pkg/errors"
	"github.com/matzehuels/figlayout/pkg/figure"
)

// Grid defaults.
const (
	DefaultGridGap = 40.0
)

// GridOptions configures [Grid].
type GridOptions struct {
	// Columns is the number of cells per row. Zero selects ceil(sqrt(n)).
	Columns int `toml:"columns" json:"columns,omitempty"`

	// GapX and GapY separate neighbouring cells. Zero selects DefaultGridGap.
	GapX float64 `toml:"gap_x" json:"gap_x,omitempty"`
	GapY float64 `toml:"gap_y" json:"gap_y,omitempty"`

	// Origin is the top-left corner of the first cell. Nil uses the set's
	// current top-left bound, which keeps repeated layouts in place.
	Origin *figure.Point `toml:"-" json:"-"`
}

// Grid places figures row-major into uniform cells sized by the largest
// figure in the set plus the gap. Figures are aligned to the top-left of
// their cell, so no two figures overlap.
//
// Grid is a stable fixed point: running it on its own output moves nothing.
// Runs in O(n).
type Grid struct {
	opts GridOptions
}

// NewGrid creates a grid layout. Negative gaps or columns are rejected.
func NewGrid(opts GridOptions) (*Grid, error) {
	if opts.Columns < 0 {
		return nil, errors.New(errors.ErrCodeInvalidConfig, "grid columns must not be negative: %d", opts.Columns)
	}
	if opts.GapX < 0 || opts.GapY < 0 {
		return nil, errors.New(errors.ErrCodeInvalidConfig, "grid gaps must not be negative")
	}
	if opts.GapX == 0 {
		opts.GapX = DefaultGridGap
	}
	if opts.GapY == 0 {
		opts.GapY = DefaultGridGap
	}
	return &Grid{opts: opts}, nil
}

// Name implements FigureLayout.
func (g *Grid) Name() string { return AlgorithmGrid }

// Layout implements FigureLayout.
func (g *Grid) Layout(set figure.Set) (*edit.Edit, error) {
	if err := prepare(g.Name(), set); err != nil {
		return nil, err
	}
	if len(set) == 0 {
		return edit.NewNoop(g.Name()), nil
	}
	return commit(g.Name(), set, g.place(set))
}

func (g *Grid) place(set figure.Set) []figure.Geometry {
	cols := g.opts.Columns
	if cols == 0 {
		cols = int(math.Ceil(math.Sqrt(float64(len(set)))))
	}

	var maxW, maxH float64
	for _, f := range set {
		maxW = math.Max(maxW, f.Geometry.Width)
		maxH = math.Max(maxH, f.Geometry.Height)
	}
	cellW, cellH := maxW+g.opts.GapX, maxH+g.opts.GapY
	o := origin(set, g.opts.Origin)

	targets := make([]figure.Geometry, len(set))
	for i, f := range set {
		col, row := i%cols, i/cols
		targets[i] = f.Geometry.MoveTo(o.X+float64(col)*cellW, o.Y+float64(row)*cellH)
	}
	return targets
}

var _ FigureLayout = (*Grid)(nil)
