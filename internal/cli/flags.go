package cli

import (
	"github.com/spf13/cobra"

	"github.com/matzehuels/figlayout/pkg/layout"
	"github.com/matzehuels/figlayout/pkg/pipeline"
)

// layoutFlags holds layout flag values. A flag overrides the config file only
// when it was set on the command line.
type layoutFlags struct {
	algorithm string
	selection []string

	columns    int
	gapX, gapY float64

	direction string
	nodeGap   float64
	layerGap  float64
	sweeps    int

	iterations  int
	idealLength float64
	seed        uint64
}

// addLayoutFlags registers the algorithm selection and parameter flags.
func addLayoutFlags(cmd *cobra.Command, f *layoutFlags) {
	flags := cmd.Flags()
	flags.StringVarP(&f.algorithm, "algorithm", "a", layout.DefaultAlgorithm, "layout algorithm: grid, layered, force")
	flags.StringSliceVar(&f.selection, "select", nil, "figure IDs to lay out (default: all)")

	flags.IntVar(&f.columns, "columns", 0, "grid columns (default: ceil(sqrt(n)))")
	flags.Float64Var(&f.gapX, "gap-x", layout.DefaultGridGap, "grid horizontal gap")
	flags.Float64Var(&f.gapY, "gap-y", layout.DefaultGridGap, "grid vertical gap")

	flags.StringVar(&f.direction, "direction", string(layout.TopToBottom), "layered direction: TB, LR")
	flags.Float64Var(&f.nodeGap, "node-gap", layout.DefaultNodeGap, "layered gap between figures of a layer")
	flags.Float64Var(&f.layerGap, "layer-gap", layout.DefaultLayerGap, "layered gap between layers")
	flags.IntVar(&f.sweeps, "sweeps", layout.DefaultSweeps, "layered crossing reduction sweeps")

	flags.IntVar(&f.iterations, "iterations", layout.DefaultIterations, "force iterations")
	flags.Float64Var(&f.idealLength, "ideal-length", layout.DefaultIdealLength, "force ideal transition length")
	flags.Uint64Var(&f.seed, "seed", layout.DefaultSeed, "force jitter seed")

	registerFlagCompletions(cmd)
}

// apply copies every flag the user set into opts.
func (f *layoutFlags) apply(cmd *cobra.Command, opts *pipeline.Options) {
	changed := cmd.Flags().Changed
	if changed("algorithm") {
		opts.Algorithm = f.algorithm
	}
	if changed("select") {
		opts.Selection = f.selection
	}
	if changed("columns") {
		opts.Layout.Grid.Columns = f.columns
	}
	if changed("gap-x") {
		opts.Layout.Grid.GapX = f.gapX
	}
	if changed("gap-y") {
		opts.Layout.Grid.GapY = f.gapY
	}
	if changed("direction") {
		opts.Layout.Layered.Direction = layout.Direction(f.direction)
	}
	if changed("node-gap") {
		opts.Layout.Layered.NodeGap = f.nodeGap
	}
	if changed("layer-gap") {
		opts.Layout.Layered.LayerGap = f.layerGap
	}
	if changed("sweeps") {
		opts.Layout.Layered.Sweeps = f.sweeps
	}
	if changed("iterations") {
		opts.Layout.Force.Iterations = f.iterations
	}
	if changed("ideal-length") {
		opts.Layout.Force.IdealLength = f.idealLength
	}
	if changed("seed") {
		opts.Layout.Force.Seed = f.seed
	}
}
