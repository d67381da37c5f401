package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/lakshaymaurya-felt/winsweep/internal/runner"
	"github.com/lakshaymaurya-felt/winsweep/internal/targets"
)

var (
	tempSystem  bool
	tempUser    bool
	tempExclude []string
)

var tempCmd = &cobra.Command{
	Use:   "temp",
	Short: "Clear temp directories",
	Long: `Clear the fixed system temp locations and every user profile's local
temp folder. With --system or --user only that half runs.`,
	Run: func(cmd *cobra.Command, args []string) {
		log := newConsole()
		requireElevation(log)

		system, user := tempSystem, tempUser
		if !system && !user {
			system, user = true, true
		}

		r := newRunner(log, tempExclude, 0)
		var outcomes []runner.Outcome
		if system {
			for _, t := range targets.System() {
				outcomes = append(outcomes, r.ClearTarget(t))
			}
		}
		if user {
			users, err := targets.User()
			if err != nil {
				log.Warnf("Could not enumerate user profiles: %v", err)
			}
			for _, t := range users {
				outcomes = append(outcomes, r.ClearTarget(t))
			}
		}

		fmt.Println(renderReport(runner.Report{Outcomes: outcomes}))
	},
}

func init() {
	tempCmd.Flags().BoolVar(&tempSystem, "system", false, "Clear system temp locations only")
	tempCmd.Flags().BoolVar(&tempUser, "user", false, "Clear per-user temp folders only")
	tempCmd.Flags().StringSliceVar(&tempExclude, "exclude", nil, "Glob patterns to keep, e.g. *.log (repeatable)")
}
