package status

import (
	"context"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/lakshaymaurya-felt/winsweep/internal/ui"
)

// ─── Messages ────────────────────────────────────────────────────────────────

type snapshotMsg struct {
	snap *Snapshot
	err  error
}

// ─── Model ───────────────────────────────────────────────────────────────────

// Model is the bubbletea Model for the maintenance dashboard. A snapshot
// is collected once at startup and again on demand; there is no periodic
// refresh because walking every target directory is not cheap.
type Model struct {
	Snap       *Snapshot
	Err        error
	Width      int
	Height     int
	spin       spinner.Model
	collecting bool
	quitting   bool
}

// NewModel creates a dashboard Model that starts collecting immediately.
func NewModel() Model {
	sp := spinner.New(
		spinner.WithSpinner(spinner.Dot),
		spinner.WithStyle(lipgloss.NewStyle().Foreground(ui.ColorPrimary)),
	)
	return Model{
		Width:      80,
		Height:     24,
		spin:       sp,
		collecting: true,
	}
}

func collectSnapshot() tea.Cmd {
	return func() tea.Msg {
		snap, err := Collect(context.Background())
		return snapshotMsg{snap: snap, err: err}
	}
}

// ─── tea.Model interface ─────────────────────────────────────────────────────

func (m Model) Init() tea.Cmd {
	return tea.Batch(m.spin.Tick, collectSnapshot())
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {

	case tea.WindowSizeMsg:
		m.Width = msg.Width
		m.Height = msg.Height
		return m, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "q", "esc", "ctrl+c":
			m.quitting = true
			return m, tea.Quit
		case "r":
			if !m.collecting {
				m.collecting = true
				return m, tea.Batch(m.spin.Tick, collectSnapshot())
			}
		}
		return m, nil

	case snapshotMsg:
		m.collecting = false
		m.Snap = msg.snap
		m.Err = msg.err
		return m, nil

	case spinner.TickMsg:
		if !m.collecting {
			return m, nil
		}
		var cmd tea.Cmd
		m.spin, cmd = m.spin.Update(msg)
		return m, cmd
	}

	return m, nil
}

func (m Model) View() string {
	if m.quitting {
		return ""
	}
	return m.renderView()
}
