package layout

import (
	"math"
	"slices"

	"github.com/matzehuels/figlayout/pkg/edit"
	"github.com/matzehuels/figlayout/pkg/errors"
	"github.com/matzehuels/figlayout/pkg/figure"
)

// Direction is the flow direction of a layered layout.
type Direction string

// Supported directions.
const (
	TopToBottom Direction = "TB"
	LeftToRight Direction = "LR"
)

// Layered defaults.
const (
	DefaultNodeGap  = 40.0
	DefaultLayerGap = 60.0
	DefaultSweeps   = 4
)

// LayeredOptions configures [Layered].
type LayeredOptions struct {
	// Direction selects vertical (TB) or horizontal (LR) flow. Empty means TB.
	Direction Direction `toml:"direction" json:"direction,omitempty"`

	// NodeGap separates figures within a layer; LayerGap separates layers.
	NodeGap  float64 `toml:"node_gap" json:"node_gap,omitempty"`
	LayerGap float64 `toml:"layer_gap" json:"layer_gap,omitempty"`

	// Sweeps is the number of down/up barycentric passes.
	Sweeps int `toml:"sweeps" json:"sweeps,omitempty"`

	// Origin is the top-left corner of the drawing. Nil uses the set's
	// current top-left bound.
	Origin *figure.Point `toml:"-" json:"-"`
}

// Layering is the layer assignment and ordering computed by [Layered].
type Layering struct {
	Layers    [][]figure.ID // figures per layer, in drawing order
	Reversed  int           // back edges ignored to make the graph acyclic
	Crossings int           // crossings between adjacent layers after ordering
}

// Layered is a hierarchical (Sugiyama-style) layout. Transitions between
// figures of the set determine layers; self-loops and transitions leaving
// the set are ignored.
//
// Steps:
//  1. Break cycles by removing DFS back edges, visiting figures in set order
//  2. Assign layers by longest path (Kahn's algorithm)
//  3. Reduce crossings with alternating barycentric sweeps, keeping the best
//     ordering seen
//  4. Place layers as rows (TB) or columns (LR), each centered on the widest
//
// The result only depends on set order, figure sizes and the origin, so
// Layered is a stable fixed point.
type Layered struct {
	src  ConnectionSource
	opts LayeredOptions
}

// NewLayered creates a hierarchical layout reading transitions from src.
// A nil src lays every figure out in a single layer.
func NewLayered(src ConnectionSource, opts LayeredOptions) (*Layered, error) {
	switch opts.Direction {
	case "":
		opts.Direction = TopToBottom
	case TopToBottom, LeftToRight:
	default:
		return nil, errors.New(errors.ErrCodeInvalidConfig, "unknown layered direction %q (want TB or LR)", opts.Direction)
	}
	if opts.NodeGap < 0 || opts.LayerGap < 0 || opts.Sweeps < 0 {
		return nil, errors.New(errors.ErrCodeInvalidConfig, "layered gaps and sweeps must not be negative")
	}
	if opts.NodeGap == 0 {
		opts.NodeGap = DefaultNodeGap
	}
	if opts.LayerGap == 0 {
		opts.LayerGap = DefaultLayerGap
	}
	if opts.Sweeps == 0 {
		opts.Sweeps = DefaultSweeps
	}
	return &Layered{src: src, opts: opts}, nil
}

// Name implements FigureLayout.
func (l *Layered) Name() string { return AlgorithmLayered }

// Layout implements FigureLayout.
func (l *Layered) Layout(set figure.Set) (*edit.Edit, error) {
	if err := prepare(l.Name(), set); err != nil {
		return nil, err
	}
	if len(set) == 0 {
		return edit.NewNoop(l.Name()), nil
	}
	layers, _, _ := l.order(set)
	return commit(l.Name(), set, l.place(set, layers))
}

// Plan computes the layering for set without moving anything.
func (l *Layered) Plan(set figure.Set) (Layering, error) {
	if err := prepare(l.Name(), set); err != nil {
		return Layering{}, err
	}
	layers, reversed, crossings := l.order(set)
	out := Layering{
		Layers:    make([][]figure.ID, len(layers)),
		Reversed:  reversed,
		Crossings: crossings,
	}
	for i, layer := range layers {
		out.Layers[i] = make([]figure.ID, len(layer))
		for j, idx := range layer {
			out.Layers[i][j] = set[idx].ID
		}
	}
	return out, nil
}

// =============================================================================
// Graph construction
// =============================================================================

// adjacency builds deduplicated successor lists over set indices.
func (l *Layered) adjacency(set figure.Set) [][]int {
	succ := make([][]int, len(set))
	if l.src == nil {
		return succ
	}
	idx := set.Index()
	for _, c := range set.Within(l.src.Connections()) {
		if c.IsSelfLoop() {
			continue
		}
		from, to := idx[c.From], idx[c.To]
		if !slices.Contains(succ[from], to) {
			succ[from] = append(succ[from], to)
		}
	}
	return succ
}

// breakCycles removes back edges found by a DFS that starts from sources
// and then from any figure not yet visited, both in set order.
func breakCycles(succ [][]int) int {
	const (
		white = iota
		gray
		black
	)

	n := len(succ)
	indeg := make([]int, n)
	for _, out := range succ {
		for _, v := range out {
			indeg[v]++
		}
	}

	color := make([]int, n)
	type edge struct{ from, to int }
	var back []edge

	var dfs func(u int)
	dfs = func(u int) {
		color[u] = gray
		for _, v := range succ[u] {
			switch color[v] {
			case white:
				dfs(v)
			case gray:
				back = append(back, edge{u, v})
			}
		}
		color[u] = black
	}

	for u := range n {
		if indeg[u] == 0 && color[u] == white {
			dfs(u)
		}
	}
	for u := range n {
		if color[u] == white {
			dfs(u)
		}
	}

	for _, e := range back {
		succ[e.from] = slices.DeleteFunc(succ[e.from], func(v int) bool { return v == e.to })
	}
	return len(back)
}

// assignLayers places each figure one layer below its deepest predecessor.
// succ must be acyclic.
func assignLayers(succ [][]int) []int {
	n := len(succ)
	indeg := make([]int, n)
	for _, out := range succ {
		for _, v := range out {
			indeg[v]++
		}
	}

	layer := make([]int, n)
	queue := make([]int, 0, n)
	for u := range n {
		if indeg[u] == 0 {
			queue = append(queue, u)
		}
	}
	for len(queue) > 0 {
		u := queue[0]
		queue = queue[1:]
		for _, v := range succ[u] {
			if layer[u]+1 > layer[v] {
				layer[v] = layer[u] + 1
			}
			indeg[v]--
			if indeg[v] == 0 {
				queue = append(queue, v)
			}
		}
	}
	return layer
}

// =============================================================================
// Ordering
// =============================================================================

func (l *Layered) order(set figure.Set) (layers [][]int, reversed, crossings int) {
	succ := l.adjacency(set)
	reversed = breakCycles(succ)
	rank := assignLayers(succ)

	depth := 0
	for _, r := range rank {
		depth = max(depth, r+1)
	}
	layers = make([][]int, depth)
	for u, r := range rank {
		layers[r] = append(layers[r], u)
	}

	pred := make([][]int, len(succ))
	for u, out := range succ {
		for _, v := range out {
			pred[v] = append(pred[v], u)
		}
	}

	best := cloneLayers(layers)
	crossings = countCrossings(layers, succ)
	for range l.opts.Sweeps {
		if crossings == 0 {
			break
		}
		for i := 1; i < len(layers); i++ {
			sortByBarycenter(layers[i], layers[i-1], pred)
		}
		for i := len(layers) - 2; i >= 0; i-- {
			sortByBarycenter(layers[i], layers[i+1], succ)
		}
		if c := countCrossings(layers, succ); c < crossings {
			crossings = c
			best = cloneLayers(layers)
		}
	}
	return best, reversed, crossings
}

// sortByBarycenter reorders layer by the mean position of each figure's
// neighbours in the fixed layer. Figures without neighbours there keep their
// current position as barycenter. The sort is stable.
func sortByBarycenter(layer, fixed []int, neighbours [][]int) {
	pos := make(map[int]int, len(fixed))
	for i, u := range fixed {
		pos[u] = i
	}
	bary := make(map[int]float64, len(layer))
	for i, u := range layer {
		sum, n := 0.0, 0
		for _, v := range neighbours[u] {
			if p, ok := pos[v]; ok {
				sum += float64(p)
				n++
			}
		}
		if n == 0 {
			bary[u] = float64(i)
		} else {
			bary[u] = sum / float64(n)
		}
	}
	slices.SortStableFunc(layer, func(a, b int) int {
		switch {
		case bary[a] < bary[b]:
			return -1
		case bary[a] > bary[b]:
			return 1
		}
		return 0
	})
}

// countCrossings sums crossings between adjacent layers. Edges spanning more
// than one layer are not counted.
func countCrossings(layers [][]int, succ [][]int) int {
	total := 0
	for i := 0; i+1 < len(layers); i++ {
		total += layerCrossings(layers[i], layers[i+1], succ)
	}
	return total
}

// layerCrossings counts inversions of lower positions when edges are sorted
// by upper position, using a Fenwick tree.
func layerCrossings(upper, lower []int, succ [][]int) int {
	if len(upper) == 0 || len(lower) == 0 {
		return 0
	}
	lowerPos := make(map[int]int, len(lower))
	for i, v := range lower {
		lowerPos[v] = i
	}

	var targets []int
	for _, u := range upper {
		var row []int
		for _, v := range succ[u] {
			if p, ok := lowerPos[v]; ok {
				row = append(row, p)
			}
		}
		slices.Sort(row)
		targets = append(targets, row...)
	}

	ft := make([]int, len(lower)+1)
	crossings, seen := 0, 0
	for _, p := range targets {
		le := 0
		for i := p + 1; i > 0; i -= i & -i {
			le += ft[i]
		}
		crossings += seen - le
		for i := p + 1; i <= len(lower); i += i & -i {
			ft[i]++
		}
		seen++
	}
	return crossings
}

func cloneLayers(layers [][]int) [][]int {
	out := make([][]int, len(layers))
	for i, l := range layers {
		out[i] = slices.Clone(l)
	}
	return out
}

// =============================================================================
// Placement
// =============================================================================

// place computes target geometry. "along" runs within a layer and "across"
// runs between layers; for TB these are x and y.
func (l *Layered) place(set figure.Set, layers [][]int) []figure.Geometry {
	lr := l.opts.Direction == LeftToRight
	along := func(g figure.Geometry) float64 {
		if lr {
			return g.Height
		}
		return g.Width
	}
	across := func(g figure.Geometry) float64 {
		if lr {
			return g.Width
		}
		return g.Height
	}

	extents := make([]float64, len(layers))
	thickness := make([]float64, len(layers))
	widest := 0.0
	for i, layer := range layers {
		for j, u := range layer {
			if j > 0 {
				extents[i] += l.opts.NodeGap
			}
			extents[i] += along(set[u].Geometry)
			thickness[i] = math.Max(thickness[i], across(set[u].Geometry))
		}
		widest = math.Max(widest, extents[i])
	}

	o := origin(set, l.opts.Origin)
	targets := make([]figure.Geometry, len(set))
	offset := 0.0
	for i, layer := range layers {
		cursor := (widest - extents[i]) / 2
		for _, u := range layer {
			g := set[u].Geometry
			a := cursor
			c := offset + (thickness[i]-across(g))/2
			if lr {
				targets[u] = g.MoveTo(o.X+c, o.Y+a)
			} else {
				targets[u] = g.MoveTo(o.X+a, o.Y+c)
			}
			cursor += along(g) + l.opts.NodeGap
		}
		offset += thickness[i] + l.opts.LayerGap
	}
	return targets
}

var _ FigureLayout = (*Layered)(nil)
