// ABOUTME: Audio output interface definition
// ABOUTME: Common interface for audio playback backends and backend selection
package output

import (
	"encoding/binary"
	"fmt"
	"io"
	"math"
	"sync"
	"sync/atomic"

	"github.com/justinhj/soundexample/pkg/audio"
)

// Output represents an audio output device
type Output interface {
	// Open acquires a line that will play pcm in the given format.
	// Formats the backend cannot play fail with audio.ErrUnsupportedFormat.
	Open(format audio.Format, pcm io.Reader) (Line, error)

	// Close releases output resources
	Close() error
}

// Line is an open audio output line playing a single PCM stream
type Line interface {
	// Start begins or resumes playback
	Start() error

	// Stop pauses playback; Start resumes it
	Stop() error

	// IsRunning reports whether the line is currently playing
	IsRunning() bool

	// Done is closed when the stream has fully played or the line is closed
	Done() <-chan struct{}

	// Err returns the read error that ended playback, if any
	Err() error

	// Played returns the number of PCM bytes consumed by the device
	Played() int64

	// Format returns the line's PCM format
	Format() audio.Format

	// Close releases the line
	Close() error
}

// Backends lists the names accepted by New
var Backends = []string{"oto", "malgo", "memory"}

// New creates an output by backend name. Volume is a linear gain in [0, 1].
func New(backend string, volume float64) (Output, error) {
	if volume < 0 || volume > 1 {
		return nil, fmt.Errorf("%w: volume must be in [0, 1], got %v", audio.ErrInvalidArgument, volume)
	}

	switch backend {
	case "oto", "":
		return NewOto(volume), nil
	case "malgo":
		return NewMalgo(volume), nil
	case "memory":
		m := NewMemory()
		m.volume = volume
		return m, nil
	default:
		return nil, fmt.Errorf("%w: unknown output backend %q (supported: %v)", audio.ErrInvalidArgument, backend, Backends)
	}
}

// countingReader tracks how many bytes were handed to the device and
// whether the source has been exhausted
type countingReader struct {
	r   io.Reader
	n   atomic.Int64
	eof atomic.Bool

	mu  sync.Mutex
	err error
}

func (c *countingReader) Read(p []byte) (int, error) {
	n, err := c.r.Read(p)
	c.n.Add(int64(n))
	if err != nil {
		if err != io.EOF {
			c.mu.Lock()
			c.err = err
			c.mu.Unlock()
		}
		c.eof.Store(true)
	}
	return n, err
}

func (c *countingReader) Err() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.err
}

// doneSignal is a channel that can be closed from several goroutines
type doneSignal struct {
	ch   chan struct{}
	once sync.Once
}

func newDoneSignal() *doneSignal {
	return &doneSignal{ch: make(chan struct{})}
}

func (d *doneSignal) close() {
	d.once.Do(func() { close(d.ch) })
}

func (d *doneSignal) closed() bool {
	select {
	case <-d.ch:
		return true
	default:
		return false
	}
}

// applyVolume scales a buffer of whole samples in place. Formats other than
// 16-bit signed and 32-bit float little-endian are left untouched.
func applyVolume(buf []byte, format audio.Format, volume float64) {
	if volume == 1 || format.BigEndian {
		return
	}
	switch {
	case format.Float && format.BitDepth == 32:
		for i := 0; i+3 < len(buf); i += 4 {
			v := math.Float32frombits(binary.LittleEndian.Uint32(buf[i:]))
			binary.LittleEndian.PutUint32(buf[i:], math.Float32bits(v*float32(volume)))
		}
	case !format.Float && format.Signed && format.BitDepth == 16:
		applyVolume16(buf, volume)
	}
}

// applyVolume16 scales signed 16-bit little-endian samples in place
func applyVolume16(buf []byte, volume float64) {
	if volume == 1 {
		return
	}
	for i := 0; i+1 < len(buf); i += 2 {
		s := int16(uint16(buf[i]) | uint16(buf[i+1])<<8)
		s = int16(float64(s) * volume)
		buf[i] = byte(s)
		buf[i+1] = byte(uint16(s) >> 8)
	}
}
