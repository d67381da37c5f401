package cmd

import (
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"

	"github.com/lakshaymaurya-felt/winsweep/internal/status"
)

var statusPlain bool

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show what a sweep could reclaim",
	Long: `Dashboard with volume usage, the Recycle Bin footprint, and the
current size of every sweep target. Falls back to a one-shot plain
snapshot when stdout is not a terminal.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		if statusPlain || !isatty.IsTerminal(os.Stdout.Fd()) {
			snap, err := status.Collect(cmd.Context())
			if err != nil {
				return err
			}
			fmt.Println(status.RenderSnapshot(snap, 100))
			return nil
		}

		p := tea.NewProgram(status.NewModel(), tea.WithAltScreen())
		_, err := p.Run()
		return err
	},
}

func init() {
	statusCmd.Flags().BoolVar(&statusPlain, "plain", false, "Print a one-shot snapshot instead of the interactive view")
}
