package ui

// Unicode glyphs shared by the CLI output and the dashboard.
const (
	IconOK    = "✓"
	IconWarn  = "!"
	IconError = "✗"
	IconPipe  = "│"
	IconArrow = "→"
	IconDot   = "·"
)
