package cli

import (
	"context"
	"fmt"
	"io"
	"strconv"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/matzehuels/figlayout/pkg/diagram"
	"github.com/matzehuels/figlayout/pkg/editor"
)

// editCommand creates the interactive edit session command.
func (c *CLI) editCommand() *cobra.Command {
	var output string

	cmd := &cobra.Command{
		Use:   "edit [diagram.json]",
		Short: "Lay out a diagram interactively with undo and redo",
		Long: `Lay out a diagram interactively with undo and redo.

Keys:
  g, l, f   apply the grid, layered or force layout
  u, r      undo or redo the last layout
  x         delete the selected figure
  s         save the diagram
  q         quit

History depth and the handling of edits whose figures were deleted are set in
the [history] section of the config file.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if output == "" {
				output = args[0]
			}
			return c.runEdit(cmd.Context(), args[0], output)
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "file to save to (default: the input file)")

	return cmd
}

// runEdit loads the diagram and runs the session until the user quits.
func (c *CLI) runEdit(ctx context.Context, input, output string) error {
	doc, err := diagram.ReadFile(input)
	if err != nil {
		return err
	}

	// The session owns the terminal; editor messages would garble it.
	quiet := log.NewWithOptions(io.Discard, log.Options{})
	ed := editor.New(doc, editor.Options{
		Depth:     c.Config.History.Depth,
		DropStale: c.Config.History.DropStale,
		Logger:    quiet,
	})
	c.Logger.Debug("starting edit session", "figures", doc.Len(), "depth", c.Config.History.Depth)

	p := tea.NewProgram(NewEditModel(ctx, ed, c.Config.Layout, output), tea.WithContext(ctx))
	final, err := p.Run()
	if err != nil {
		return fmt.Errorf("edit session: %w", err)
	}

	m, ok := final.(EditModel)
	if !ok {
		return nil
	}
	applied, total := ed.HistoryStats()
	printKeyValue("Figures", strconv.Itoa(doc.Len()))
	printKeyValue("History", fmt.Sprintf("%d/%d", applied, total))
	switch {
	case m.Dirty:
		printWarning("Unsaved changes discarded")
	case m.Saved:
		printSuccess("Saved")
		printFile(output)
	}
	return nil
}
