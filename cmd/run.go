package cmd

import (
	"fmt"
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/lakshaymaurya-felt/winsweep/internal/console"
	"github.com/lakshaymaurya-felt/winsweep/internal/deepclean"
	"github.com/lakshaymaurya-felt/winsweep/internal/fsclean"
	"github.com/lakshaymaurya-felt/winsweep/internal/privilege"
	"github.com/lakshaymaurya-felt/winsweep/internal/recycle"
	"github.com/lakshaymaurya-felt/winsweep/internal/runner"
	"github.com/lakshaymaurya-felt/winsweep/internal/targets"
	"github.com/lakshaymaurya-felt/winsweep/internal/ui"
)

var (
	runSagerun int
	runExclude []string
)

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Run the full maintenance sweep",
	Long: `Run every maintenance step in order: empty the Recycle Bin, clear
system and per-user temp directories, then launch a Disk Cleanup pass
and wait for it. Requires an elevated prompt; without one nothing is
touched.`,
	Run: func(cmd *cobra.Command, args []string) {
		log := newConsole()

		if n, err := deepclean.Registered(runSagerun); err == nil && n == 0 {
			log.Warnf("No cleanup handlers registered for sagerun configuration %d; the Disk Cleanup step may do nothing. Run 'cleanmgr /sageset:%d' once to configure it.", runSagerun, runSagerun)
		}

		r := newRunner(log, runExclude, runSagerun)
		report := r.Run(cmd.Context())
		if !report.Halted {
			fmt.Println(renderReport(report))
		}
		if code := report.ExitCode(); code != 0 {
			os.Exit(code)
		}
	},
}

func init() {
	runCmd.Flags().IntVar(&runSagerun, "sagerun", 1, "Disk Cleanup sagerun configuration ID (0-65535)")
	runCmd.Flags().StringSliceVar(&runExclude, "exclude", nil, "Glob patterns to keep, e.g. *.log (repeatable)")
}

// newRunner wires the real Windows implementations into the sweep.
func newRunner(log console.Logger, exclude []string, sagerun int) *runner.Runner {
	return &runner.Runner{
		Log:      log,
		Elevated: privilege.IsElevated,
		Store:    recycle.Store{},
		Clearer: fsclean.New(log, fsclean.Options{
			Exclude:   exclude,
			Protected: targets.NeverRemove(),
		}),
		Targets:   targets.Host{},
		DeepClean: deepclean.Invoker{},
		SagerunID: sagerun,
	}
}

// ─── Report rendering ────────────────────────────────────────────────────────

var styleMuted = lipgloss.NewStyle().Foreground(ui.ColorMuted)

func statusGlyph(s runner.Status) (string, lipgloss.Style) {
	switch s {
	case runner.StatusCleared:
		return ui.IconOK, lipgloss.NewStyle().Foreground(ui.ColorSuccess)
	case runner.StatusSkipped:
		return ui.IconDot, styleMuted
	case runner.StatusWarning:
		return ui.IconWarn, lipgloss.NewStyle().Foreground(ui.ColorWarning)
	default:
		return ui.IconError, lipgloss.NewStyle().Foreground(ui.ColorError)
	}
}

// renderReport lays out one line per sweep step plus a count footer.
func renderReport(rep runner.Report) string {
	labelW := 0
	for _, o := range rep.Outcomes {
		if len(o.Target) > labelW {
			labelW = len(o.Target)
		}
	}

	var b strings.Builder
	b.WriteString("\n")
	for _, o := range rep.Outcomes {
		glyph, style := statusGlyph(o.Status)
		b.WriteString(fmt.Sprintf("  %s %-*s  %s\n",
			style.Render(glyph), labelW, o.Target, styleMuted.Render(o.Detail)))
	}

	warnings := rep.Count(runner.StatusWarning)
	noun := "warnings"
	if warnings == 1 {
		noun = "warning"
	}

	b.WriteString("\n")
	b.WriteString(styleMuted.Render(fmt.Sprintf("  %d cleared %s %d skipped %s %d %s",
		rep.Count(runner.StatusCleared), ui.IconPipe,
		rep.Count(runner.StatusSkipped), ui.IconPipe,
		warnings, noun)))
	return b.String()
}
