package cmd

import (
	"fmt"
	"os"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"
	"gopkg.in/natefinch/lumberjack.v2"

	"github.com/lakshaymaurya-felt/winsweep/internal/console"
	"github.com/lakshaymaurya-felt/winsweep/internal/privilege"
	"github.com/lakshaymaurya-felt/winsweep/internal/ui"
)

var (
	// Global flags
	debug   bool
	noColor bool
	logFile string

	// Version info populated from main
	appVersion = "dev"
	appCommit  = "none"
	appDate    = "unknown"
)

// SetVersionInfo sets build-time version information.
func SetVersionInfo(version, commit, date string) {
	appVersion = version
	appCommit = commit
	appDate = date
}

var rootCmd = &cobra.Command{
	Use:   "ws",
	Short: "Reclaim disk space on Windows hosts",
	Long: `WinSweep - Reclaim disk space on Windows hosts.

One elevated command empties the Recycle Bin, clears system and
per-user temp directories, and finishes with a Disk Cleanup pass.
Subcommands run each step on its own.`,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		// Legacy consoles print raw ANSI without this; on failure the
		// console falls back to plain output on its own.
		_ = console.EnableVirtualTerminal()
	},
	Run: func(cmd *cobra.Command, args []string) {
		printBanner()
	},
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false, "Show detailed operation logs")
	rootCmd.PersistentFlags().BoolVar(&noColor, "no-color", false, "Disable colored output")
	rootCmd.PersistentFlags().StringVar(&logFile, "log-file", "", "Mirror output to a rotating log file")

	// Register all subcommands
	rootCmd.AddCommand(runCmd)
	rootCmd.AddCommand(recycleCmd)
	rootCmd.AddCommand(tempCmd)
	rootCmd.AddCommand(targetsCmd)
	rootCmd.AddCommand(deepcleanCmd)
	rootCmd.AddCommand(statusCmd)
	rootCmd.AddCommand(completionCmd)
	rootCmd.AddCommand(versionCmd)
}

// newConsole builds the logger shared by every subcommand, honoring the
// global output flags.
func newConsole() *console.Console {
	opts := console.Options{
		Out:     os.Stdout,
		NoColor: noColor,
		Debug:   debug,
	}
	if logFile != "" {
		opts.File = &lumberjack.Logger{
			Filename:   logFile,
			MaxSize:    10, // megabytes
			MaxBackups: 3,
			MaxAge:     28, // days
			Compress:   true,
		}
	}
	return console.New(opts)
}

// requireElevation stops a privileged subcommand before it touches
// anything when the process lacks administrator rights.
func requireElevation(log console.Logger) {
	elevated, err := privilege.IsElevated()
	if err != nil {
		log.Warnf("Could not determine elevation: %v", err)
	}
	if !elevated {
		log.Errorf("FATAL: administrator rights are required; re-run from an elevated prompt")
		os.Exit(2)
	}
}

// printBanner is the no-subcommand landing output.
func printBanner() {
	title := lipgloss.NewStyle().
		Bold(true).
		Foreground(ui.ColorPrimary).
		Render("WinSweep")
	sub := lipgloss.NewStyle().
		Foreground(ui.ColorMuted).
		Render("Reclaim disk space on Windows hosts")

	fmt.Println(title + "  " + sub)
	fmt.Println()
	fmt.Println("Run 'ws run' from an elevated prompt for a full sweep,")
	fmt.Println("or 'ws --help' for the individual steps.")
	fmt.Println()
	fmt.Printf("Version %s (%s) built %s\n", appVersion, appCommit, appDate)
}
