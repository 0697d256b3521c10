package cmd

import (
	"os"

	"github.com/spf13/cobra"
)

var completionCmd = &cobra.Command{
	Use:   "completions [bash|zsh|fish|powershell]",
	Short: "Generate shell completion script",
	Long: `Generate the autocompletion script for archetect for the specified shell.

To load completions:

Bash:
  $ source <(archetect completions bash)
  # To load completions for each session, execute once:
  # Linux:
  $ archetect completions bash > /etc/bash_completion.d/archetect
  # macOS:
  $ archetect completions bash > $(brew --prefix)/etc/bash_completion.d/archetect

Zsh:
  $ source <(archetect completions zsh)
  # To load completions for each session, execute once:
  $ archetect completions zsh > "${fpath[1]}/_archetect"

Fish:
  $ archetect completions fish | source
  # To load completions for each session, execute once:
  $ archetect completions fish > ~/.config/fish/completions/archetect.fish

PowerShell:
  PS> archetect completions powershell | Out-String | Invoke-Expression
  # To load completions for each session, execute once:
  PS> archetect completions powershell > archetect.ps1
  # and source this file from your PowerShell profile.
`,
	DisableFlagsInUseLine: true,
	ValidArgs:             []string{"bash", "zsh", "fish", "powershell"},
	Args:                  cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
	RunE: func(cmd *cobra.Command, args []string) error {
		switch args[0] {
		case "bash":
			return rootCmd.GenBashCompletion(os.Stdout)
		case "zsh":
			return rootCmd.GenZshCompletion(os.Stdout)
		case "fish":
			return rootCmd.GenFishCompletion(os.Stdout, true)
		case "powershell":
			return rootCmd.GenPowerShellCompletionWithDesc(os.Stdout)
		}
		return nil
	},
}

func init() {
	// Disable the default completion command since we provide our own.
	rootCmd.CompletionOptions.DisableDefaultCmd = true
	rootCmd.AddCommand(completionCmd)
}
