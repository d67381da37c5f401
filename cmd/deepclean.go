package cmd

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/lakshaymaurya-felt/winsweep/internal/deepclean"
	"github.com/lakshaymaurya-felt/winsweep/internal/runner"
)

var deepcleanConfig int

var deepcleanCmd = &cobra.Command{
	Use:   "deepclean",
	Short: "Run a Disk Cleanup pass",
	Long: `Launch the Windows Disk Cleanup tool with a saved sagerun
configuration and wait for it to finish. Configure the selection once
with 'cleanmgr /sageset:<id>'.`,
	Run: func(cmd *cobra.Command, args []string) {
		log := newConsole()
		requireElevation(log)

		if n, err := deepclean.Registered(deepcleanConfig); err == nil && n == 0 {
			log.Warnf("No cleanup handlers registered for configuration %d; run 'cleanmgr /sageset:%d' first.", deepcleanConfig, deepcleanConfig)
		}

		r := newRunner(log, nil, deepcleanConfig)
		out := r.RunDeepClean(cmd.Context())
		if out.Status != runner.StatusCleared {
			os.Exit(1)
		}
	},
}

func init() {
	deepcleanCmd.Flags().IntVar(&deepcleanConfig, "config", 1, "sagerun configuration ID (0-65535)")
}
