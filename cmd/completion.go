package cmd

import (
	"os"

	"github.com/spf13/cobra"
)

var completionCmd = &cobra.Command{
	Use:   "completion",
	Short: "Set up shell tab completion",
	Long: `Generate the PowerShell tab completion script.

To load completions in the current session:

  ws completion | Out-String | Invoke-Expression

Add that line to your PowerShell profile to load them in every session.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return rootCmd.GenPowerShellCompletionWithDesc(os.Stdout)
	},
}
