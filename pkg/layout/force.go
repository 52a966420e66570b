package layout

import (
	"math"
	"math/rand/v2"

	"github.com/matzehuels/figlayout/pkg/edit"
	"github.com/matzehuels/figlayout/pkg/errors"
	"github.com/matzehuels/figlayout/pkg/figure"
)

// Force defaults.
const (
	DefaultIterations  = 200
	DefaultIdealLength = 120.0
	DefaultSeed        = 42
)

// ForceOptions configures [Force].
type ForceOptions struct {
	// Iterations bounds the simulation. Zero selects DefaultIterations.
	Iterations int `toml:"iterations" json:"iterations,omitempty"`

	// IdealLength is the preferred centre distance between connected figures.
	IdealLength float64 `toml:"ideal_length" json:"ideal_length,omitempty"`

	// Temperature is the initial maximum step. Zero uses IdealLength.
	Temperature float64 `toml:"temperature" json:"temperature,omitempty"`

	// Seed drives the jitter that separates coincident figures.
	Seed uint64 `toml:"seed" json:"seed,omitempty"`
}

// ForceStats describes a finished simulation.
type ForceStats struct {
	Iterations       int     // iterations run
	FinalTemperature float64 // step cap of the last iteration
	MaxStep          float64 // largest displacement in the last iteration
}

// Force is a Fruchterman-Reingold force-directed layout. Every pair of
// figures repels with k²/d and every transition attracts with d²/k, where k
// is the ideal length. Steps are capped by a temperature that cools
// linearly to zero over the iteration bound, so the simulation always
// terminates and the final step is never larger than the final temperature.
//
// Locked figures are pinned: they repel others but never move. Force does
// not guarantee non-overlap and is not a fixed point.
type Force struct {
	src  ConnectionSource
	opts ForceOptions
}

// NewForce creates a force-directed layout reading transitions from src.
func NewForce(src ConnectionSource, opts ForceOptions) (*Force, error) {
	if opts.Iterations < 0 || opts.IdealLength < 0 || opts.Temperature < 0 {
		return nil, errors.New(errors.ErrCodeInvalidConfig, "force iterations, ideal length and temperature must not be negative")
	}
	if opts.Iterations == 0 {
		opts.Iterations = DefaultIterations
	}
	if opts.IdealLength == 0 {
		opts.IdealLength = DefaultIdealLength
	}
	if opts.Temperature == 0 {
		opts.Temperature = opts.IdealLength
	}
	if opts.Seed == 0 {
		opts.Seed = DefaultSeed
	}
	return &Force{src: src, opts: opts}, nil
}

// Name implements FigureLayout.
func (f *Force) Name() string { return AlgorithmForce }

// Layout implements FigureLayout.
func (f *Force) Layout(set figure.Set) (*edit.Edit, error) {
	targets, _, err := f.Compute(set)
	if err != nil {
		return nil, err
	}
	if len(set) == 0 {
		return edit.NewNoop(f.Name()), nil
	}
	return commit(f.Name(), set, targets)
}

// Compute runs the simulation and returns target geometry in set order
// without moving anything.
func (f *Force) Compute(set figure.Set) ([]figure.Geometry, ForceStats, error) {
	if err := prepare(f.Name(), set); err != nil {
		return nil, ForceStats{}, err
	}
	n := len(set)
	if n == 0 {
		return nil, ForceStats{}, nil
	}

	pos := make([]figure.Point, n)
	for i, fig := range set {
		pos[i] = fig.Geometry.Center()
	}

	var edges [][2]int
	if f.src != nil {
		idx := set.Index()
		for _, c := range set.Within(f.src.Connections()) {
			if !c.IsSelfLoop() {
				edges = append(edges, [2]int{idx[c.From], idx[c.To]})
			}
		}
	}

	rng := rand.New(rand.NewPCG(f.opts.Seed, uint64(n)))
	k := f.opts.IdealLength
	iters := f.opts.Iterations
	disp := make([]figure.Point, n)

	var stats ForceStats
	for it := range iters {
		temp := f.opts.Temperature * float64(iters-it) / float64(iters)
		clear(disp)

		for i := range n {
			for j := i + 1; j < n; j++ {
				dx, dy := pos[i].X-pos[j].X, pos[i].Y-pos[j].Y
				d := math.Hypot(dx, dy)
				if d < 1e-9 {
					// Coincident: push apart in a seeded random direction.
					a := rng.Float64() * 2 * math.Pi
					dx, dy, d = math.Cos(a), math.Sin(a), 1
				}
				force := k * k / d
				ux, uy := dx/d*force, dy/d*force
				disp[i].X += ux
				disp[i].Y += uy
				disp[j].X -= ux
				disp[j].Y -= uy
			}
		}

		for _, e := range edges {
			u, v := e[0], e[1]
			dx, dy := pos[u].X-pos[v].X, pos[u].Y-pos[v].Y
			d := math.Hypot(dx, dy)
			if d < 1e-9 {
				continue
			}
			force := d * d / k
			ux, uy := dx/d*force, dy/d*force
			disp[u].X -= ux
			disp[u].Y -= uy
			disp[v].X += ux
			disp[v].Y += uy
		}

		maxStep := 0.0
		for i, fig := range set {
			if fig.Locked {
				continue
			}
			d := math.Hypot(disp[i].X, disp[i].Y)
			if d < 1e-12 {
				continue
			}
			step := math.Min(d, temp)
			pos[i].X += disp[i].X / d * step
			pos[i].Y += disp[i].Y / d * step
			maxStep = math.Max(maxStep, step)
		}
		stats = ForceStats{Iterations: it + 1, FinalTemperature: temp, MaxStep: maxStep}
	}

	targets := make([]figure.Geometry, n)
	for i, fig := range set {
		if fig.Locked {
			targets[i] = fig.Geometry
			continue
		}
		targets[i] = fig.Geometry.CenterAt(pos[i])
	}
	return targets, stats, nil
}

var _ FigureLayout = (*Force)(nil)
