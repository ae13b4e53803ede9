package cmd

import (
	"os"

	"github.com/spf13/cobra"
)

var completionCmd = &cobra.Command{
	Use:   "completion [bash|zsh|fish|powershell]",
	Short: "Generate shell completion scripts",
	Long: `Generate shell completion scripts for jsonspec.

To load completions:

Bash:
  $ source <(jsonspec completion bash)

  # To load completions for each session, execute once:
  # Linux:
  $ jsonspec completion bash > /etc/bash_completion.d/jsonspec
  # macOS:
  $ jsonspec completion bash > $(brew --prefix)/etc/bash_completion.d/jsonspec

Zsh:
  $ jsonspec completion zsh > "${fpath[1]}/_jsonspec"

  # You will need to start a new shell for this setup to take effect.

Fish:
  $ jsonspec completion fish > ~/.config/fish/completions/jsonspec.fish

PowerShell:
  PS> jsonspec completion powershell | Out-String | Invoke-Expression
`,
	DisableFlagsInUseLine: true,
	ValidArgs:             []string{"bash", "zsh", "fish", "powershell"},
	Args:                  cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
	RunE: func(cmd *cobra.Command, args []string) error {
		switch args[0] {
		case "bash":
			return cmd.Root().GenBashCompletion(os.Stdout)
		case "zsh":
			return cmd.Root().GenZshCompletion(os.Stdout)
		case "fish":
			return cmd.Root().GenFishCompletion(os.Stdout, true)
		case "powershell":
			return cmd.Root().GenPowerShellCompletionWithDesc(os.Stdout)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(completionCmd)
}
