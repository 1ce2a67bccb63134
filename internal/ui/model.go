// ABOUTME: Bubbletea model for the playback TUI
// ABOUTME: Defines playback state and update logic
package ui

import (
	"fmt"
	"path/filepath"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/justinhj/soundexample/pkg/audio"
	"github.com/mattn/go-runewidth"
)

// Model represents the TUI state
type Model struct {
	// Source
	title  string
	format audio.Format
	total  time.Duration

	// Playback
	played time.Duration
	done   bool
	err    error

	// Called once when the user asks to stop
	stop    func()
	stopped bool

	// Dimensions
	width  int
	height int
}

// Init initializes the model
func (m Model) Init() tea.Cmd {
	return nil
}

// Update handles messages
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
	case ProgressMsg:
		m.played = msg.Played
	case DoneMsg:
		m.done = true
		m.err = msg.Err
		return m, tea.Quit
	}

	return m, nil
}

// View renders the TUI
func (m Model) View() string {
	s := ""
	s += m.renderHeader()
	s += m.renderProgress()
	s += m.renderHelp()
	return s
}

// renderHeader renders the source and its format
func (m Model) renderHeader() string {
	return fmt.Sprintf(`┌─ Sound Example ──────────────────────────────────────┐
│ File:   %s │
│ Format: %s │
├──────────────────────────────────────────────────────┤
`, cell(m.title, 44), cell(m.formatLine(), 44))
}

func (m Model) formatLine() string {
	if m.format.SampleRate == 0 {
		return "unknown"
	}
	return fmt.Sprintf("%s %dHz %s %d-bit",
		m.format.Codec, m.format.SampleRate, channelName(m.format.Channels), m.format.BitDepth)
}

// renderProgress renders elapsed time and a progress bar
func (m Model) renderProgress() string {
	status := "Playing"
	switch {
	case m.err != nil:
		status = "Error: " + m.err.Error()
	case m.done:
		status = "Finished"
	case m.stopped:
		status = "Stopping"
	}

	position := formatDuration(m.played)
	bar := renderBar(0, 1, 30)
	if m.total > 0 {
		position += " / " + formatDuration(m.total)
		bar = renderBar(int(m.played.Milliseconds()), int(m.total.Milliseconds()), 30)
	}

	return fmt.Sprintf("│ Status: %s │\n│ [%s] %s │\n",
		cell(status, 44), bar, cell(position, 19))
}

// renderHelp renders keyboard shortcuts
func (m Model) renderHelp() string {
	return `│ q:Stop                                               │
└──────────────────────────────────────────────────────┘
`
}

// handleKey handles keyboard input
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q", "ctrl+c", "esc":
		if !m.stopped && m.stop != nil {
			m.stop()
		}
		m.stopped = true
		return m, tea.Quit
	}

	return m, nil
}

// ProgressMsg reports the playback position
type ProgressMsg struct {
	Played time.Duration
}

// DoneMsg reports that playback has ended
type DoneMsg struct {
	Err error
}

// Utility functions
func renderBar(value, max, width int) string {
	filled := 0
	if max > 0 {
		filled = (value * width) / max
	}
	if filled > width {
		filled = width
	}
	bar := ""
	for i := 0; i < width; i++ {
		if i < filled {
			bar += "█"
		} else {
			bar += "░"
		}
	}
	return bar
}

// truncate shortens s to at most width terminal cells, ending in "..."
func truncate(s string, width int) string {
	return runewidth.Truncate(s, width, "...")
}

// cell truncates s and pads it to exactly width terminal cells
func cell(s string, width int) string {
	return runewidth.FillRight(truncate(s, width), width)
}

func channelName(channels int) string {
	switch channels {
	case 1:
		return "Mono"
	case 2:
		return "Stereo"
	default:
		return fmt.Sprintf("%dch", channels)
	}
}

func formatDuration(d time.Duration) string {
	d = d.Round(time.Second)
	return fmt.Sprintf("%d:%02d", int(d.Minutes()), int(d.Seconds())%60)
}

func baseName(path string) string {
	if path == "" {
		return "(generated)"
	}
	return filepath.Base(path)
}
