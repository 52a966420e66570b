package layout

import (
	"slices"
	"strings"

	"github.com/matzehuels/figlayout/pkg/errors"
)

// Algorithm names accepted by [New].
const (
	AlgorithmGrid    = "grid"
	AlgorithmLayered = "layered"
	AlgorithmForce   = "force"
)

// DefaultAlgorithm is used when no algorithm is configured.
const DefaultAlgorithm = AlgorithmGrid

// Config holds the parameters of every algorithm. Zero values select the
// algorithm defaults.
type Config struct {
	Grid    GridOptions    `toml:"grid" json:"grid"`
	Layered LayeredOptions `toml:"layered" json:"layered"`
	Force   ForceOptions   `toml:"force" json:"force"`
}

// Constructor builds an algorithm from its configuration. src supplies
// transitions; algorithms that ignore them accept nil.
type Constructor func(src ConnectionSource, cfg Config) (FigureLayout, error)

var registry = map[string]Constructor{
	AlgorithmGrid: func(_ ConnectionSource, cfg Config) (FigureLayout, error) {
		return NewGrid(cfg.Grid)
	},
	AlgorithmLayered: func(src ConnectionSource, cfg Config) (FigureLayout, error) {
		return NewLayered(src, cfg.Layered)
	},
	AlgorithmForce: func(src ConnectionSource, cfg Config) (FigureLayout, error) {
		return NewForce(src, cfg.Force)
	},
}

// New constructs the named algorithm. Names are case-insensitive; an empty
// name selects DefaultAlgorithm.
func New(name string, src ConnectionSource, cfg Config) (FigureLayout, error) {
	name = strings.ToLower(strings.TrimSpace(name))
	if name == "" {
		name = DefaultAlgorithm
	}
	ctor, ok := registry[name]
	if !ok {
		return nil, errors.New(errors.ErrCodeUnknownAlgorithm, "unknown layout algorithm %q (available: %s)",
			name, strings.Join(Names(), ", "))
	}
	return ctor(src, cfg)
}

// Names returns the registered algorithm names, sorted.
func Names() []string {
	names := make([]string, 0, len(registry))
	for n := range registry {
		names = append(names, n)
	}
	slices.Sort(names)
	return names
}

// IsValid reports whether name is a registered algorithm.
func IsValid(name string) bool {
	_, ok := registry[strings.ToLower(strings.TrimSpace(name))]
	return ok
}
