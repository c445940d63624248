package cmd

import (
	"github.com/chris-regnier/moodctl/internal/shell"
	"github.com/spf13/cobra"
)

var initShellCmd = &cobra.Command{
	Use:   "init <shell>",
	Short: "Output shell integration script",
	Long: `Output shell integration script for eval.

The script sets up shell completions, a prompt hook that exports MOODCTL_*
variables from "moodctl status --env" and a moodctl_prompt_info helper.

Supported shells: bash, fish, zsh`,
	Example: `  # Add to ~/.bashrc
  eval "$(moodctl init bash)"

  # Add to ~/.config/fish/config.fish
  moodctl init fish | source`,
	Args:      cobra.ExactArgs(1),
	ValidArgs: shell.Shells(),
	// The script must print without a config or data directory.
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error { return nil },
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := shell.WriteInit(cmd.OutOrStdout(), args[0]); err != nil {
			return userErr("%v", err)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(initShellCmd)
}
