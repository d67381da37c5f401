package cmd

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/lakshaymaurya-felt/winsweep/internal/core"
	"github.com/lakshaymaurya-felt/winsweep/internal/recycle"
	"github.com/lakshaymaurya-felt/winsweep/internal/runner"
)

var recycleCmd = &cobra.Command{
	Use:   "recycle",
	Short: "Empty the Recycle Bin",
	Long: `Empty the Recycle Bin on every drive through the shell API, falling
back to clearing each volume's trash folder when the API is missing.`,
	Run: func(cmd *cobra.Command, args []string) {
		log := newConsole()
		requireElevation(log)

		if bytes, items, err := recycle.Query(); err == nil && items > 0 {
			log.Infof("Recycle Bin holds %s in %d items.", core.FormatSize(bytes), items)
		}

		r := newRunner(log, nil, 0)
		out := r.ClearRecycleBin()
		if out.Status != runner.StatusCleared {
			os.Exit(1)
		}
	},
}
