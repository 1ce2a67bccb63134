// ABOUTME: Tests for Play and the in-memory output
// ABOUTME: Tests completion, cancellation, progress and line lifecycle
package output

import (
	"bytes"
	"context"
	"errors"
	"io"
	"sync"
	"testing"
	"testing/iotest"
	"time"

	"github.com/justinhj/soundexample/pkg/audio"
)

// recordingOutput wraps Memory and remembers the lines it handed out
type recordingOutput struct {
	*Memory
	mu    sync.Mutex
	lines []*memoryLine
}

func (r *recordingOutput) Open(format audio.Format, pcm io.Reader) (Line, error) {
	line, err := r.Memory.Open(format, pcm)
	if err != nil {
		return nil, err
	}
	r.mu.Lock()
	r.lines = append(r.lines, line.(*memoryLine))
	r.mu.Unlock()
	return line, nil
}

func TestPlayDeliversAllBytes(t *testing.T) {
	out := NewMemory()
	pcm := bytes.Repeat([]byte{0x01, 0x02}, 10000)

	if err := Play(context.Background(), out, audio.DefaultFormat(), bytes.NewReader(pcm)); err != nil {
		t.Fatalf("Play() failed: %v", err)
	}

	if !bytes.Equal(out.Bytes(), pcm) {
		t.Errorf("expected %d bytes played, got %d", len(pcm), len(out.Bytes()))
	}

	formats := out.Formats()
	if len(formats) != 1 || formats[0] != audio.DefaultFormat() {
		t.Errorf("unexpected formats opened: %v", formats)
	}
}

func TestPlayClosesLine(t *testing.T) {
	out := &recordingOutput{Memory: NewMemory()}

	if err := Play(context.Background(), out, audio.DefaultFormat(), bytes.NewReader([]byte{0, 0})); err != nil {
		t.Fatalf("Play() failed: %v", err)
	}

	if len(out.lines) != 1 {
		t.Fatalf("expected 1 line, got %d", len(out.lines))
	}
	line := out.lines[0]
	line.mu.Lock()
	closed := line.closed
	line.mu.Unlock()
	if !closed {
		t.Error("expected line to be closed after Play")
	}
}

func TestPlayInterrupted(t *testing.T) {
	out := &recordingOutput{Memory: NewMemory()}

	pr, pw := io.Pipe()
	defer pw.Close()

	ctx, cancel := context.WithCancel(context.Background())

	errCh := make(chan error, 1)
	go func() {
		errCh <- Play(ctx, out, audio.DefaultFormat(), pr)
	}()

	if _, err := pw.Write([]byte{1, 2, 3, 4}); err != nil {
		t.Fatalf("pipe write failed: %v", err)
	}
	cancel()

	select {
	case err := <-errCh:
		if !errors.Is(err, audio.ErrInterrupted) {
			t.Errorf("expected ErrInterrupted, got %v", err)
		}
		if !errors.Is(err, context.Canceled) {
			t.Errorf("expected context.Canceled in chain, got %v", err)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("Play did not return after cancellation")
	}

	line := out.lines[0]
	if line.IsRunning() {
		t.Error("expected line to be stopped after cancellation")
	}
	select {
	case <-line.Done():
	default:
		t.Error("expected line to be closed after cancellation")
	}
}

func TestPlayAlreadyCancelled(t *testing.T) {
	out := &recordingOutput{Memory: NewMemory()}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := Play(ctx, out, audio.DefaultFormat(), bytes.NewReader([]byte{0, 0}))
	if !errors.Is(err, audio.ErrInterrupted) {
		t.Errorf("expected ErrInterrupted, got %v", err)
	}
	if len(out.lines) != 0 {
		t.Errorf("expected no line to be opened, got %d", len(out.lines))
	}
}

func TestPlayUnsupportedFormat(t *testing.T) {
	err := Play(context.Background(), NewMemory(), audio.Format{}, bytes.NewReader(nil))
	if !errors.Is(err, audio.ErrUnsupportedFormat) {
		t.Errorf("expected ErrUnsupportedFormat, got %v", err)
	}
}

type failingReader struct{}

func (failingReader) Read([]byte) (int, error) {
	return 0, errors.New("disk on fire")
}

func TestPlayReadError(t *testing.T) {
	err := Play(context.Background(), NewMemory(), audio.DefaultFormat(), failingReader{})
	if err == nil || err.Error() != "playback failed: disk on fire" {
		t.Errorf("expected read error to surface, got %v", err)
	}
}

func TestPlayProgress(t *testing.T) {
	out := NewMemory()
	pcm := make([]byte, 88200) // one second of default format

	var last time.Duration
	calls := 0
	err := Play(context.Background(), out, audio.DefaultFormat(), bytes.NewReader(pcm),
		WithProgress(time.Millisecond, func(played time.Duration) {
			calls++
			last = played
		}))
	if err != nil {
		t.Fatalf("Play() failed: %v", err)
	}

	if calls == 0 {
		t.Fatal("expected progress callback to be called")
	}
	if last != time.Second {
		t.Errorf("expected final progress of 1s, got %v", last)
	}
}

func TestMemoryLineStopAndResume(t *testing.T) {
	out := NewMemory()
	pr, pw := io.Pipe()

	line, err := out.Open(audio.DefaultFormat(), pr)
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	defer line.Close()

	if line.IsRunning() {
		t.Error("line should not run before Start")
	}
	if err := line.Start(); err != nil {
		t.Fatalf("Start() failed: %v", err)
	}
	if !line.IsRunning() {
		t.Error("line should run after Start")
	}

	pw.Write([]byte{1, 2})
	if err := line.Stop(); err != nil {
		t.Fatalf("Stop() failed: %v", err)
	}
	if line.IsRunning() {
		t.Error("line should not run after Stop")
	}

	if err := line.Start(); err != nil {
		t.Fatalf("Start() after Stop failed: %v", err)
	}
	go func() {
		pw.Write([]byte{3, 4})
		pw.Close()
	}()

	select {
	case <-line.Done():
	case <-time.After(2 * time.Second):
		t.Fatal("line did not finish")
	}

	if !bytes.Equal(out.Bytes(), []byte{1, 2, 3, 4}) {
		t.Errorf("unexpected bytes: %v", out.Bytes())
	}
	if line.Played() != 4 {
		t.Errorf("expected 4 bytes played, got %d", line.Played())
	}
}

func TestMemoryOpenAfterClose(t *testing.T) {
	out := NewMemory()
	out.Close()

	_, err := out.Open(audio.DefaultFormat(), bytes.NewReader(nil))
	if !errors.Is(err, audio.ErrLineUnavailable) {
		t.Errorf("expected ErrLineUnavailable, got %v", err)
	}
}

func TestMemoryLineStartAfterClose(t *testing.T) {
	line, err := NewMemory().Open(audio.DefaultFormat(), bytes.NewReader(nil))
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	line.Close()

	if err := line.Start(); err == nil {
		t.Error("expected Start on closed line to fail")
	}
}

func TestMemoryAppliesVolume(t *testing.T) {
	out, err := New("memory", 0.5)
	if err != nil {
		t.Fatalf("New() failed: %v", err)
	}
	mem := out.(*Memory)

	// 1000, -1000, 500, -500, read one byte at a time so samples split across reads
	pcm := []byte{0xE8, 0x03, 0x18, 0xFC, 0xF4, 0x01, 0x0C, 0xFE}
	if err := Play(context.Background(), mem, audio.DefaultFormat(), iotest.OneByteReader(bytes.NewReader(pcm))); err != nil {
		t.Fatalf("Play() failed: %v", err)
	}

	expected := []byte{0xF4, 0x01, 0x0C, 0xFE, 0xFA, 0x00, 0x06, 0xFF}
	if got := mem.Bytes(); !bytes.Equal(got, expected) {
		t.Errorf("expected % x, got % x", expected, got)
	}
}

func TestMemoryUnityGainByDefault(t *testing.T) {
	mem := NewMemory()
	pcm := []byte{0xFF, 0x7F, 0x00, 0x80, 0x01}

	if err := Play(context.Background(), mem, audio.DefaultFormat(), iotest.OneByteReader(bytes.NewReader(pcm))); err != nil {
		t.Fatalf("Play() failed: %v", err)
	}
	if got := mem.Bytes(); !bytes.Equal(got, pcm) {
		t.Errorf("expected % x, got % x", pcm, got)
	}
}
