package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/matzehuels/figlayout/pkg/export"
	"github.com/matzehuels/figlayout/pkg/pipeline"
)

// exportCommand creates the export command for writing a diagram in other formats.
func (c *CLI) exportCommand() *cobra.Command {
	var (
		formats string
		output  string
		noCache bool
		refresh bool
		flags   layoutFlags
	)

	cmd := &cobra.Command{
		Use:   "export [diagram.json]",
		Short: "Export a diagram to DOT, SVG, GraphML or JSON",
		Long: `Export a diagram to DOT, SVG, GraphML or JSON.

Figures are exported at their stored positions. Pass --algorithm to lay the
diagram out first; the layout is cached like the layout command's.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts := c.pipelineOptions()
			flags.apply(cmd, &opts)
			opts.Input = args[0]
			opts.Formats = pipeline.ParseFormats(formats)
			opts.SkipLayout = !cmd.Flags().Changed("algorithm")
			opts.Refresh = refresh
			return c.runExport(cmd.Context(), opts, output, noCache)
		},
	}

	cmd.Flags().StringVarP(&formats, "format", "f", "svg", "output formats, comma-separated: json, dot, svg, graphml")
	cmd.Flags().StringVarP(&output, "output", "o", "", "output path without extension (default: input path)")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable caching")
	cmd.Flags().BoolVar(&refresh, "refresh", false, "ignore cached layouts and exports")
	addLayoutFlags(cmd, &flags)

	return cmd
}

// runExport runs the pipeline and writes one file per format.
func (c *CLI) runExport(ctx context.Context, opts pipeline.Options, output string, noCache bool) error {
	if err := pipeline.ValidateFormats(opts.Formats); err != nil {
		return err
	}

	runner, err := c.newRunner(ctx, noCache)
	if err != nil {
		return fmt.Errorf("initialize runner: %w", err)
	}
	defer runner.Close()

	prog := newProgress(c.Logger)
	spin := newSpinner(ctx, "Exporting...")
	spin.start()

	result, err := runner.Execute(ctx, opts)
	if err != nil {
		spin.fail("Export failed")
		return err
	}
	spin.stop()

	base := output
	if base == "" {
		base = opts.Input
	}

	paths := make([]string, 0, len(opts.Formats))
	for _, format := range opts.Formats {
		path := exportPath(base, format)
		if dir := filepath.Dir(path); dir != "." {
			if err := os.MkdirAll(dir, 0755); err != nil {
				return fmt.Errorf("create output directory: %w", err)
			}
		}
		if err := os.WriteFile(path, result.Artifacts[format], 0644); err != nil {
			return fmt.Errorf("write %s: %w", path, err)
		}
		paths = append(paths, path)
	}
	prog.done(fmt.Sprintf("Exported %d format(s)", len(paths)))

	printSuccess("Export complete")
	for _, p := range paths {
		printFile(p)
	}
	printStats(result.Stats.FigureCount, result.Stats.ConnectionCount, result.Stats.Moved, result.CacheInfo.ExportHit)
	return nil
}

// exportPath names the output file for format. JSON gets a distinct suffix
// so it never overwrites the input diagram.
func exportPath(base, format string) string {
	if format == export.FormatJSON {
		return derivedPath(base, "export.json")
	}
	return derivedPath(base, format)
}
