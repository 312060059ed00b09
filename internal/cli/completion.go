package cli

import (
	"github.com/spf13/cobra"

	"github.com/matzehuels/tilegrid/pkg/config"
)

var (
	formatValues  = []string{formatTable, formatJSON, formatSVG}
	backendValues = []string{config.BackendMemory, config.BackendFile, config.BackendRedis, config.BackendMongo}
)

func (c *CLI) completionCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "completion [bash|zsh|fish|powershell]",
		Short: "Generate shell completion scripts",
		Long: `Generate a shell completion script for tilegrid.

  $ source <(tilegrid completion bash)
  $ tilegrid completion zsh > "${fpath[1]}/_tilegrid"
  $ tilegrid completion fish > ~/.config/fish/completions/tilegrid.fish
  PS> tilegrid completion powershell | Out-String | Invoke-Expression`,
		DisableFlagsInUseLine: true,
		ValidArgs:             []string{"bash", "zsh", "fish", "powershell"},
		Args:                  cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			root := cmd.Root()
			switch args[0] {
			case "bash":
				return root.GenBashCompletionV2(out, true)
			case "zsh":
				return root.GenZshCompletion(out)
			case "fish":
				return root.GenFishCompletion(out, true)
			default:
				return root.GenPowerShellCompletionWithDesc(out)
			}
		},
	}
}

// completeValues registers a fixed value list for flag name on cmd.
func completeValues(cmd *cobra.Command, name string, values []string) {
	_ = cmd.RegisterFlagCompletionFunc(name, cobra.FixedCompletions(values, cobra.ShellCompDirectiveNoFileComp))
}
