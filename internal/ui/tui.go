// ABOUTME: TUI initialization and control
// ABOUTME: Wraps bubbletea program for the playback view
package ui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/justinhj/soundexample/pkg/audio"
)

// NewModel creates a playback model. stop is called once when the user
// presses q or ctrl+c and may be nil.
func NewModel(path string, format audio.Format, total time.Duration, stop func()) Model {
	return Model{
		title:  baseName(path),
		format: format,
		total:  total,
		stop:   stop,
	}
}

// Run creates the bubbletea program for a model. Callers feed it
// ProgressMsg and DoneMsg through Program.Send.
func Run(model Model, opts ...tea.ProgramOption) *tea.Program {
	return tea.NewProgram(model, opts...)
}
