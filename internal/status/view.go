package status

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/lakshaymaurya-felt/winsweep/internal/core"
	"github.com/lakshaymaurya-felt/winsweep/internal/targets"
	"github.com/lakshaymaurya-felt/winsweep/internal/ui"
)

// ─── Styles ──────────────────────────────────────────────────────────────────

var (
	styleTitle = lipgloss.NewStyle().
			Bold(true).
			Foreground(ui.ColorPrimary)

	styleSub = lipgloss.NewStyle().
			Foreground(ui.ColorMuted)

	stylePane = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(ui.ColorMuted).
			Padding(0, 1)

	stylePaneTitle = lipgloss.NewStyle().
			Bold(true).
			Foreground(ui.ColorSecondary)
)

// ─── Top-level renderer ──────────────────────────────────────────────────────

func (m Model) renderView() string {
	w := m.Width
	if w < 60 {
		w = 60
	}

	var s strings.Builder
	s.WriteString("\n")
	s.WriteString(m.renderHeader())
	s.WriteString("\n")

	if m.collecting {
		s.WriteString("\n")
		s.WriteString("  " + m.spin.View() + styleSub.Italic(true).Render("Measuring targets…"))
		s.WriteString("\n")
		return s.String()
	}

	if m.Err != nil {
		s.WriteString("\n")
		s.WriteString(lipgloss.NewStyle().Foreground(ui.ColorError).
			Render("  " + ui.IconError + " " + m.Err.Error()))
		s.WriteString("\n\n")
		s.WriteString(m.renderFooter())
		return s.String()
	}

	s.WriteString(RenderSnapshot(m.Snap, w))
	s.WriteString("\n")
	s.WriteString(m.renderFooter())
	return s.String()
}

func (m Model) renderHeader() string {
	title := styleTitle.Render("  WinSweep")
	if m.Snap == nil {
		return title
	}
	host := m.Snap.Hostname
	if host == "" {
		host = "unknown host"
	}
	return title + styleSub.Render(" "+ui.IconDot+" "+host)
}

func (m Model) renderFooter() string {
	return styleSub.Italic(true).
		Render("  r refresh  " + ui.IconPipe + "  q quit")
}

// ─── Snapshot panes ──────────────────────────────────────────────────────────

// RenderSnapshot lays out the full dashboard body. It is also used
// directly for the one-shot plain rendering when stdout is not a
// terminal.
func RenderSnapshot(snap *Snapshot, w int) string {
	if snap == nil {
		return ""
	}

	var parts []string
	parts = append(parts, renderSystemPane(snap))
	parts = append(parts, renderVolumesPane(snap, w))
	parts = append(parts, renderTargetsPane(snap))
	return lipgloss.JoinVertical(lipgloss.Left, parts...)
}

func renderSystemPane(snap *Snapshot) string {
	lines := []string{
		stylePaneTitle.Render("System"),
		fmt.Sprintf("OS       %s", snap.OSCaption),
	}
	if snap.Uptime > 0 {
		lines = append(lines, fmt.Sprintf("Uptime   %s", formatUptime(snap.Uptime)))
	}
	if snap.MemTotal > 0 {
		lines = append(lines, fmt.Sprintf("Memory   %s free of %s",
			core.FormatSize(int64(snap.MemFree)),
			core.FormatSize(int64(snap.MemTotal))))
	}

	bin := "Bin      "
	if snap.Bin.Err != nil {
		bin += styleSub.Render("size unknown (" + snap.Bin.Err.Error() + ")")
	} else {
		noun := "items"
		if snap.Bin.Items == 1 {
			noun = "item"
		}
		bin += fmt.Sprintf("%s in %d %s",
			core.FormatSize(snap.Bin.Bytes), snap.Bin.Items, noun)
	}
	lines = append(lines, bin)

	return stylePane.Render(strings.Join(lines, "\n"))
}

func renderVolumesPane(snap *Snapshot, w int) string {
	barW := 24
	if w > 100 {
		barW = 36
	}

	lines := []string{stylePaneTitle.Render("Volumes")}
	for _, v := range snap.Volumes {
		lines = append(lines,
			fmt.Sprintf("%-4s %s  %5.1f%%  %s / %s  %s",
				v.Mount, usageBar(v.UsedPct, barW), v.UsedPct,
				core.FormatSize(int64(v.Used)),
				core.FormatSize(int64(v.Total)),
				styleSub.Render(v.Fstype)))
	}
	if len(snap.Volumes) == 0 {
		lines = append(lines, styleSub.Italic(true).Render("(no volumes found)"))
	}

	return stylePane.Render(strings.Join(lines, "\n"))
}

func renderTargetsPane(snap *Snapshot) string {
	lines := []string{stylePaneTitle.Render("Sweep targets")}

	labelW := 12
	for _, t := range snap.Targets {
		if len(t.Label) > labelW {
			labelW = len(t.Label)
		}
	}

	var total int64
	for _, t := range snap.Targets {
		size := "—"
		if t.Exists {
			size = core.FormatSize(t.Bytes)
			total += t.Bytes
		}
		scope := "system"
		if t.Scope == targets.ScopeUser {
			scope = "user"
		}
		// Pad before styling; ANSI escapes would break %-6s alignment.
		lines = append(lines,
			fmt.Sprintf("%-*s  %s  %9s  %s",
				labelW, t.Label, styleSub.Render(fmt.Sprintf("%-6s", scope)), size,
				styleSub.Render(t.Path)))
	}
	if len(snap.Targets) == 0 {
		lines = append(lines, styleSub.Italic(true).Render("(no targets found)"))
	} else {
		lines = append(lines, "")
		lines = append(lines, fmt.Sprintf("%-*s  %-6s  %9s",
			labelW, "Reclaimable", "", core.FormatSize(total)))
	}

	return stylePane.Render(strings.Join(lines, "\n"))
}

// ─── Drawing primitives ──────────────────────────────────────────────────────

// barGlyphs builds the raw ████░░░░ run for a percentage.
func barGlyphs(pct float64, width int) string {
	if width < 1 {
		width = 1
	}
	if pct < 0 {
		pct = 0
	}
	if pct > 100 {
		pct = 100
	}
	filled := int(pct / 100 * float64(width))
	if filled > width {
		filled = width
	}
	return strings.Repeat("█", filled) + strings.Repeat("░", width-filled)
}

// usageBar colors the bar by how full the volume is.
func usageBar(pct float64, width int) string {
	barColor := ui.ColorSuccess
	switch {
	case pct >= 90:
		barColor = ui.ColorError
	case pct >= 75:
		barColor = ui.ColorWarning
	}
	return lipgloss.NewStyle().Foreground(barColor).Render(barGlyphs(pct, width))
}

// formatUptime renders a duration as the two largest units.
func formatUptime(d time.Duration) string {
	d = d.Round(time.Minute)
	days := int(d.Hours()) / 24
	hours := int(d.Hours()) % 24
	mins := int(d.Minutes()) % 60
	switch {
	case days > 0:
		return fmt.Sprintf("%dd %dh", days, hours)
	case hours > 0:
		return fmt.Sprintf("%dh %dm", hours, mins)
	default:
		return fmt.Sprintf("%dm", mins)
	}
}
