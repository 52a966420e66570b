package cli

import (
	"maps"
	"slices"

	"github.com/spf13/cobra"

	"github.com/matzehuels/figlayout/pkg/export"
	"github.com/matzehuels/figlayout/pkg/layout"
)

var completionShells = []string{"bash", "zsh", "fish", "powershell"}

// completionCommand writes a shell completion script to stdout.
func (c *CLI) completionCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "completion [bash|zsh|fish|powershell]",
		Short: "Generate shell completion scripts",
		Long: `Generate a completion script for the given shell.

  bash:  source <(figlayout completion bash)
  zsh:   figlayout completion zsh > "${fpath[1]}/_figlayout"
  fish:  figlayout completion fish > ~/.config/fish/completions/figlayout.fish

Start a new shell after installing the script.`,
		DisableFlagsInUseLine: true,
		ValidArgs:             completionShells,
		Args:                  cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
		RunE: func(cmd *cobra.Command, args []string) error {
			root, w := cmd.Root(), cmd.OutOrStdout()
			switch args[0] {
			case "zsh":
				return root.GenZshCompletion(w)
			case "fish":
				return root.GenFishCompletion(w, true)
			case "powershell":
				return root.GenPowerShellCompletionWithDesc(w)
			default:
				return root.GenBashCompletionV2(w, true)
			}
		},
	}
}

// registerFlagCompletions completes algorithm, direction and format values
// on whichever of those flags cmd defines.
func registerFlagCompletions(cmd *cobra.Command) {
	fixed := map[string][]string{
		"algorithm": layout.Names(),
		"direction": {string(layout.TopToBottom), string(layout.LeftToRight)},
		"format":    slices.Sorted(maps.Keys(export.ValidFormats)),
	}
	for name, values := range fixed {
		if cmd.Flags().Lookup(name) == nil {
			continue
		}
		_ = cmd.RegisterFlagCompletionFunc(name, cobra.FixedCompletions(values, cobra.ShellCompDirectiveNoFileComp))
	}
}
