// ABOUTME: Tests for TUI model and state management
// ABOUTME: Tests progress updates, key handling and rendering
package ui

import (
	"errors"
	"strings"
	"testing"
	"time"
	"unicode/utf8"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/justinhj/soundexample/pkg/audio"
	"github.com/mattn/go-runewidth"
)

func testFormat() audio.Format {
	f := audio.DefaultFormat()
	f.Codec = "wav"
	f.Channels = 2
	return f
}

func TestNewModel(t *testing.T) {
	model := NewModel("/tmp/music/track.wav", testFormat(), 3*time.Second, nil)

	if model.title != "track.wav" {
		t.Errorf("expected title 'track.wav', got '%s'", model.title)
	}
	if model.total != 3*time.Second {
		t.Errorf("expected total 3s, got %v", model.total)
	}
	if model.done || model.stopped {
		t.Error("expected a fresh model to be neither done nor stopped")
	}
}

func TestNewModelGenerated(t *testing.T) {
	model := NewModel("", audio.DefaultFormat(), 0, nil)
	if model.title != "(generated)" {
		t.Errorf("expected '(generated)', got '%s'", model.title)
	}
}

func TestProgressMsg(t *testing.T) {
	model := NewModel("a.wav", testFormat(), 4*time.Second, nil)

	updated, cmd := model.Update(ProgressMsg{Played: time.Second})
	if cmd != nil {
		t.Error("expected no command for progress update")
	}

	m := updated.(Model)
	if m.played != time.Second {
		t.Errorf("expected played 1s, got %v", m.played)
	}
}

func TestDoneMsgQuits(t *testing.T) {
	model := NewModel("a.wav", testFormat(), time.Second, nil)

	updated, cmd := model.Update(DoneMsg{})
	if cmd == nil {
		t.Fatal("expected quit command")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Error("expected tea.QuitMsg")
	}

	m := updated.(Model)
	if !m.done {
		t.Error("expected done after DoneMsg")
	}
	if !strings.Contains(m.View(), "Finished") {
		t.Errorf("expected 'Finished' in view:\n%s", m.View())
	}
}

func TestDoneMsgError(t *testing.T) {
	model := NewModel("a.wav", testFormat(), time.Second, nil)

	updated, _ := model.Update(DoneMsg{Err: errors.New("device lost")})
	m := updated.(Model)
	if !strings.Contains(m.View(), "device lost") {
		t.Errorf("expected error in view:\n%s", m.View())
	}
}

func TestStopKey(t *testing.T) {
	tests := []struct {
		name string
		key  tea.KeyMsg
	}{
		{"q", tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'q'}}},
		{"ctrl+c", tea.KeyMsg{Type: tea.KeyCtrlC}},
		{"esc", tea.KeyMsg{Type: tea.KeyEsc}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			calls := 0
			model := NewModel("a.wav", testFormat(), time.Second, func() { calls++ })

			updated, cmd := model.Update(tt.key)
			if cmd == nil {
				t.Fatal("expected quit command")
			}
			if calls != 1 {
				t.Errorf("expected stop to be called once, got %d", calls)
			}

			// A second press must not stop again
			updated.(Model).Update(tt.key)
			if calls != 1 {
				t.Errorf("expected stop to stay at one call, got %d", calls)
			}
		})
	}
}

func TestOtherKeysIgnored(t *testing.T) {
	calls := 0
	model := NewModel("a.wav", testFormat(), time.Second, func() { calls++ })

	_, cmd := model.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'x'}})
	if cmd != nil {
		t.Error("expected no command for unbound key")
	}
	if calls != 0 {
		t.Error("expected stop not to be called")
	}
}

func TestWindowSize(t *testing.T) {
	model := NewModel("a.wav", testFormat(), time.Second, nil)

	updated, _ := model.Update(tea.WindowSizeMsg{Width: 80, Height: 24})
	m := updated.(Model)
	if m.width != 80 || m.height != 24 {
		t.Errorf("expected 80x24, got %dx%d", m.width, m.height)
	}
}

func TestView(t *testing.T) {
	model := NewModel("track.wav", testFormat(), 2*time.Second, nil)
	updated, _ := model.Update(ProgressMsg{Played: time.Second})
	view := updated.(Model).View()

	for _, want := range []string{"track.wav", "wav 44100Hz Stereo 16-bit", "0:01 / 0:02", "Playing", "q:Stop"} {
		if !strings.Contains(view, want) {
			t.Errorf("expected %q in view:\n%s", want, view)
		}
	}
}

func TestRenderBar(t *testing.T) {
	tests := []struct {
		name       string
		value, max int
		filled     int
	}{
		{"empty", 0, 100, 0},
		{"half", 50, 100, 5},
		{"full", 100, 100, 10},
		{"overflow", 150, 100, 10},
		{"zero max", 5, 0, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			bar := renderBar(tt.value, tt.max, 10)
			if got := strings.Count(bar, "█"); got != tt.filled {
				t.Errorf("expected %d filled cells, got %d (%s)", tt.filled, got, bar)
			}
			if got := strings.Count(bar, "█") + strings.Count(bar, "░"); got != 10 {
				t.Errorf("expected width 10, got %d", got)
			}
		})
	}
}

func TestTruncate(t *testing.T) {
	if got := truncate("short", 10); got != "short" {
		t.Errorf("expected unchanged string, got %q", got)
	}
	if got := truncate("a very long file name.wav", 10); got != "a very ..." {
		t.Errorf("unexpected truncation: %q", got)
	}
}

func TestTruncateMultibyte(t *testing.T) {
	name := strings.Repeat("é", 50) + ".wav"

	got := truncate(name, 44)
	if !utf8.ValidString(got) {
		t.Fatalf("truncate split a rune: %q", got)
	}
	if w := runewidth.StringWidth(got); w != 44 {
		t.Errorf("expected width 44, got %d", w)
	}
	if !strings.HasSuffix(got, "...") {
		t.Errorf("expected trailing ellipsis, got %q", got)
	}
}

func TestCellPadsToWidth(t *testing.T) {
	tests := []string{"", "track.wav", "日本語のファイル.flac", strings.Repeat("ü", 60)}

	for _, s := range tests {
		if w := runewidth.StringWidth(cell(s, 20)); w != 20 {
			t.Errorf("cell(%q, 20) has width %d", s, w)
		}
	}
}

func TestViewLinesAligned(t *testing.T) {
	names := []string{"track.wav", "café crème.wav", strings.Repeat("ñ", 80) + ".mp3"}

	for _, name := range names {
		t.Run(name, func(t *testing.T) {
			model := NewModel(name, testFormat(), 90*time.Second, nil)
			updated, _ := model.Update(ProgressMsg{Played: 30 * time.Second})
			view := strings.TrimRight(updated.(Model).View(), "\n")

			for i, line := range strings.Split(view, "\n") {
				if w := runewidth.StringWidth(line); w != 56 {
					t.Errorf("line %d has width %d, want 56: %q", i, w, line)
				}
			}
		})
	}
}

func TestChannelName(t *testing.T) {
	tests := []struct {
		channels int
		want     string
	}{
		{1, "Mono"},
		{2, "Stereo"},
		{6, "6ch"},
	}
	for _, tt := range tests {
		if got := channelName(tt.channels); got != tt.want {
			t.Errorf("channelName(%d) = %q, want %q", tt.channels, got, tt.want)
		}
	}
}

func TestFormatDuration(t *testing.T) {
	tests := []struct {
		d    time.Duration
		want string
	}{
		{0, "0:00"},
		{1500 * time.Millisecond, "0:02"},
		{65 * time.Second, "1:05"},
	}
	for _, tt := range tests {
		if got := formatDuration(tt.d); got != tt.want {
			t.Errorf("formatDuration(%v) = %q, want %q", tt.d, got, tt.want)
		}
	}
}
