package tui

import (
	"fmt"
	"math"
	"path/filepath"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/horacio12345/image-compressor/internal/compressor"
)

type Model struct {
	updates     <-chan compressor.ProgressUpdate
	cancel      func()
	started     time.Time
	width       int
	total       int
	successful  int
	failed      int
	lastFile    string
	interrupted bool
	quitting    bool
}

type doneMsg struct{}

type updateMsg compressor.ProgressUpdate

// NewModel renders progress for a batch of total images. cancel is called
// once when the user presses ctrl+c; it may be nil.
func NewModel(updates <-chan compressor.ProgressUpdate, total int, cancel func()) Model {
	return Model{updates: updates, cancel: cancel, total: total, started: time.Now()}
}

func (m Model) Init() tea.Cmd {
	return listenForUpdates(m.updates)
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case updateMsg:
		if msg.Total > 0 {
			m.total = msg.Total
		}
		if msg.Failed {
			m.failed++
		} else {
			m.successful++
		}
		m.lastFile = msg.File
		return m, listenForUpdates(m.updates)
	case tea.KeyMsg:
		if msg.String() == "ctrl+c" && !m.interrupted {
			m.interrupted = true
			if m.cancel != nil {
				m.cancel()
			}
		}
		return m, nil
	case doneMsg:
		m.quitting = true
		return m, tea.Quit
	case tea.WindowSizeMsg:
		m.width = msg.Width
		return m, nil
	default:
		return m, nil
	}
}

func (m Model) View() string {
	if m.quitting {
		return ""
	}

	barWidth := 40
	if m.width > 0 {
		barWidth = int(math.Min(60, float64(m.width-10)))
		if barWidth < 20 {
			barWidth = 20
		}
	}

	done := m.successful + m.failed
	ratio := 0.0
	if m.total > 0 {
		ratio = float64(done) / float64(m.total)
		if ratio > 1 {
			ratio = 1
		}
	}

	elapsed := time.Since(m.started).Round(time.Millisecond)

	lines := []string{
		titleStyle.Render("imgcompress"),
		labelStyle.Render(fmt.Sprintf("Images: %d/%d", done, m.total)) +
			successStyle.Render(fmt.Sprintf("  ok:%d", m.successful)) +
			warnStyle.Render(fmt.Sprintf("  failed:%d", m.failed)),
	}
	if m.lastFile != "" {
		lines = append(lines, dimStyle.Render("Last: "+filepath.Base(m.lastFile)))
	}
	lines = append(lines,
		dimStyle.Render(fmt.Sprintf("Elapsed: %s", elapsed)),
		barStyle.Render(renderBar(barWidth, ratio)),
	)
	if m.interrupted {
		lines = append(lines, warnStyle.Render("Cancelling, remaining images will be counted as failed..."))
	}

	return strings.Join(lines, "\n")
}

func listenForUpdates(updates <-chan compressor.ProgressUpdate) tea.Cmd {
	return func() tea.Msg {
		update, ok := <-updates
		if !ok {
			return doneMsg{}
		}
		return updateMsg(update)
	}
}

func renderBar(width int, ratio float64) string {
	filled := int(math.Round(ratio * float64(width)))
	if filled > width {
		filled = width
	}
	if filled < 0 {
		filled = 0
	}
	return "[" + strings.Repeat("=", filled) + strings.Repeat(" ", width-filled) + "]"
}

var (
	titleStyle   = lipgloss.NewStyle().Bold(true).Foreground(ColorAccent)
	labelStyle   = lipgloss.NewStyle().Foreground(ColorInk)
	barStyle     = lipgloss.NewStyle().Foreground(ColorAccentAlt)
	dimStyle     = lipgloss.NewStyle().Foreground(ColorDim)
	successStyle = lipgloss.NewStyle().Foreground(ColorSuccess)
	warnStyle    = lipgloss.NewStyle().Foreground(ColorWarn)
)
