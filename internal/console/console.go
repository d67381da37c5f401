// Package console provides the leveled, timestamped line logger every
// sweep component writes through. The concrete Console renders colored
// lines on the terminal; Recorder captures lines for test assertions.
package console

import (
	"fmt"
	"io"
	"os"
	"sync"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-isatty"

	"github.com/lakshaymaurya-felt/winsweep/internal/ui"
)

// timeLayout is the stamp prefixed to every line.
const timeLayout = "2006-01-02 15:04:05"

// ─── Levels ──────────────────────────────────────────────────────────────────

// Level is the severity of a log line.
type Level int

const (
	LevelInfo Level = iota
	LevelSuccess
	LevelWarn
	LevelError
	LevelDebug
)

// tag is the textual marker written to the file mirror, where color
// cannot carry the severity.
func (l Level) tag() string {
	switch l {
	case LevelSuccess:
		return "OK"
	case LevelWarn:
		return "WARN"
	case LevelError:
		return "ERROR"
	case LevelDebug:
		return "DEBUG"
	default:
		return "INFO"
	}
}

// ─── Logger interface ────────────────────────────────────────────────────────

// Logger is the sink injected into every component that reports progress.
type Logger interface {
	Infof(format string, args ...any)
	Successf(format string, args ...any)
	Warnf(format string, args ...any)
	Errorf(format string, args ...any)
	Debugf(format string, args ...any)
}

// ─── Console ─────────────────────────────────────────────────────────────────

// Options configures a Console.
type Options struct {
	// Out receives the styled lines. Defaults to os.Stdout.
	Out io.Writer

	// File, when non-nil, receives an uncolored mirror of every line
	// with a textual severity tag. Callers typically pass a rotating
	// lumberjack writer here.
	File io.Writer

	// NoColor disables styling. When Out is the default stdout, color
	// is also disabled automatically if stdout is not a terminal.
	NoColor bool

	// Debug enables Debugf lines.
	Debug bool
}

// Console writes one "[timestamp] message" line per call, severity
// carried by color. Safe for concurrent use.
type Console struct {
	mu      sync.Mutex
	out     io.Writer
	file    io.Writer
	styles  map[Level]lipgloss.Style
	noColor bool
	debug   bool
}

var _ Logger = (*Console)(nil)

// New builds a Console from opts.
func New(opts Options) *Console {
	out := opts.Out
	noColor := opts.NoColor
	if out == nil {
		out = os.Stdout
		if !noColor {
			fd := os.Stdout.Fd()
			noColor = !isatty.IsTerminal(fd) && !isatty.IsCygwinTerminal(fd)
		}
	}

	return &Console{
		out:     out,
		file:    opts.File,
		noColor: noColor,
		debug:   opts.Debug,
		styles: map[Level]lipgloss.Style{
			LevelInfo:    lipgloss.NewStyle(),
			LevelSuccess: lipgloss.NewStyle().Foreground(ui.ColorSuccess),
			LevelWarn:    lipgloss.NewStyle().Foreground(ui.ColorWarning),
			LevelError:   lipgloss.NewStyle().Foreground(ui.ColorError),
			LevelDebug:   lipgloss.NewStyle().Foreground(ui.ColorMuted),
		},
	}
}

func (c *Console) Infof(format string, args ...any)    { c.write(LevelInfo, format, args...) }
func (c *Console) Successf(format string, args ...any) { c.write(LevelSuccess, format, args...) }
func (c *Console) Warnf(format string, args ...any)    { c.write(LevelWarn, format, args...) }
func (c *Console) Errorf(format string, args ...any)   { c.write(LevelError, format, args...) }

// Debugf logs only when the console was built with Options.Debug.
func (c *Console) Debugf(format string, args ...any) {
	if !c.debug {
		return
	}
	c.write(LevelDebug, format, args...)
}

func (c *Console) write(lvl Level, format string, args ...any) {
	msg := fmt.Sprintf(format, args...)
	stamp := time.Now().Format(timeLayout)

	c.mu.Lock()
	defer c.mu.Unlock()

	line := fmt.Sprintf("[%s] %s", stamp, msg)
	if c.noColor {
		fmt.Fprintln(c.out, line)
	} else {
		fmt.Fprintln(c.out, c.styles[lvl].Render(line))
	}
	if c.file != nil {
		fmt.Fprintf(c.file, "[%s] [%s] %s\n", stamp, lvl.tag(), msg)
	}
}
