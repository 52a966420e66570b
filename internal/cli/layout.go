package cli

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/matzehuels/figlayout/pkg/diagram"
	"github.com/matzehuels/figlayout/pkg/pipeline"
)

// layoutCommand creates the layout command for arranging a diagram.
func (c *CLI) layoutCommand() *cobra.Command {
	var (
		output  string
		noCache bool
		refresh bool
		flags   layoutFlags
	)

	cmd := &cobra.Command{
		Use:   "layout [diagram.json]",
		Short: "Arrange the figures of a diagram",
		Long: `Arrange the figures of a diagram.

The layout command reads a diagram.json file, repositions its figures with the
selected algorithm and writes the result. Locked figures never move; if any
figure cannot be placed the diagram is left unchanged.

Results are cached locally for faster subsequent runs.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts := c.pipelineOptions()
			flags.apply(cmd, &opts)
			opts.Input = args[0]
			opts.Refresh = refresh
			return c.runLayout(cmd.Context(), opts, output, noCache)
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (default: <input>.layout.json)")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable caching")
	cmd.Flags().BoolVar(&refresh, "refresh", false, "recompute even if a cached layout exists")
	addLayoutFlags(cmd, &flags)

	return cmd
}

// runLayout loads the diagram, applies the layout, and writes output.
func (c *CLI) runLayout(ctx context.Context, opts pipeline.Options, output string, noCache bool) error {
	runner, err := c.newRunner(ctx, noCache)
	if err != nil {
		return fmt.Errorf("initialize runner: %w", err)
	}
	defer runner.Close()

	spin := newSpinner(ctx, "Computing layout...")
	spin.start()

	opts.Formats = []string{pipeline.DefaultFormat}
	result, err := runner.Execute(ctx, opts)
	if err != nil {
		spin.fail("Layout failed")
		return err
	}
	spin.stop()

	if spin.interrupted() {
		return ctx.Err()
	}

	outputPath := output
	if outputPath == "" {
		outputPath = derivedPath(opts.Input, "layout.json")
	}

	if err := diagram.WriteFile(result.Document, outputPath); err != nil {
		return fmt.Errorf("write output %s: %w", outputPath, err)
	}

	printSuccess("Layout complete")
	printFile(outputPath)
	printStats(result.Stats.FigureCount, result.Stats.ConnectionCount, result.Stats.Moved, result.CacheInfo.LayoutHit)
	printNewline()
	printNextStep("Export", appName+" export "+outputPath+" -f svg")

	return nil
}

// derivedPath replaces the extension of input with suffix.
func derivedPath(input, suffix string) string {
	base := strings.TrimSuffix(input, filepath.Ext(input))
	return base + "." + suffix
}
