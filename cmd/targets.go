package cmd

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/lakshaymaurya-felt/winsweep/internal/core"
	"github.com/lakshaymaurya-felt/winsweep/internal/targets"
	"github.com/lakshaymaurya-felt/winsweep/internal/ui"
)

var targetsSize bool

var targetsCmd = &cobra.Command{
	Use:   "targets",
	Short: "List sweep targets",
	Long: `List every directory a sweep would clear. With --size each target is
walked and its current footprint shown.`,
	Run: func(cmd *cobra.Command, args []string) {
		log := newConsole()

		all := targets.System()
		users, err := targets.User()
		if err != nil {
			log.Warnf("Could not enumerate user profiles: %v", err)
		}
		all = append(all, users...)

		labelW := 0
		for _, t := range all {
			if len(t.Label) > labelW {
				labelW = len(t.Label)
			}
		}

		scopeStyle := lipgloss.NewStyle().Foreground(ui.ColorMuted)

		// Pad before styling; ANSI escapes would break %-6s alignment.
		scopeCol := func(s targets.Scope) string {
			return scopeStyle.Render(fmt.Sprintf("%-6s", scopeName(s)))
		}

		if !targetsSize {
			for _, t := range all {
				fmt.Printf("  %-*s  %s  %s\n", labelW, t.Label, scopeCol(t.Scope), t.Path)
			}
			return
		}

		var total int64
		for _, m := range targets.Measure(cmd.Context(), all) {
			size := "—"
			if m.Exists {
				size = core.FormatSize(m.Bytes)
				total += m.Bytes
			}
			fmt.Printf("  %-*s  %s  %9s  %s\n",
				labelW, m.Label, scopeCol(m.Scope), size, m.Path)
		}
		fmt.Printf("\n  %-*s  %-6s  %9s\n", labelW, "Reclaimable", "", core.FormatSize(total))
	},
}

func scopeName(s targets.Scope) string {
	if s == targets.ScopeUser {
		return "user"
	}
	return "system"
}

func init() {
	targetsCmd.Flags().BoolVar(&targetsSize, "size", false, "Measure each target's current size")
}
