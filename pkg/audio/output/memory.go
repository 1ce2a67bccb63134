// ABOUTME: In-memory audio output
// ABOUTME: Collects PCM bytes without a device, for tests and dry runs
package output

import (
	"bytes"
	"fmt"
	"io"
	"sync"

	"github.com/justinhj/soundexample/pkg/audio"
)

// Memory is an Output that copies every line into a buffer
type Memory struct {
	mu      sync.Mutex
	buf     bytes.Buffer
	formats []audio.Format
	volume  float64
	closed  bool
}

// NewMemory creates a new in-memory output at unity gain. Outputs made by
// New("memory", volume) scale samples the way the device backends do.
func NewMemory() *Memory {
	return &Memory{volume: 1}
}

// Open accepts any valid format
func (m *Memory) Open(format audio.Format, pcm io.Reader) (Line, error) {
	if err := format.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %v", audio.ErrUnsupportedFormat, err)
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	if m.closed {
		return nil, fmt.Errorf("%w: output closed", audio.ErrLineUnavailable)
	}
	m.formats = append(m.formats, format)

	l := &memoryLine{
		out:    m,
		src:    &countingReader{r: pcm},
		format: format,
		volume: m.volume,
		done:   newDoneSignal(),
	}
	l.cond = sync.NewCond(&l.mu)
	return l, nil
}

// Bytes returns a copy of everything played so far
func (m *Memory) Bytes() []byte {
	m.mu.Lock()
	defer m.mu.Unlock()
	return bytes.Clone(m.buf.Bytes())
}

// Formats returns the formats of every line opened so far
func (m *Memory) Formats() []audio.Format {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]audio.Format(nil), m.formats...)
}

func (m *Memory) write(p []byte) {
	m.mu.Lock()
	m.buf.Write(p)
	m.mu.Unlock()
}

// Close marks the output closed; lines already open keep working
func (m *Memory) Close() error {
	m.mu.Lock()
	m.closed = true
	m.mu.Unlock()
	return nil
}

type memoryLine struct {
	out    *Memory
	src    *countingReader
	format audio.Format
	volume float64
	done   *doneSignal

	mu      sync.Mutex
	cond    *sync.Cond
	started bool
	running bool
	closed  bool
}

func (l *memoryLine) Start() error {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.closed {
		return fmt.Errorf("line closed")
	}
	l.running = true
	if !l.started {
		l.started = true
		go l.pump()
	}
	l.cond.Broadcast()
	return nil
}

func (l *memoryLine) Stop() error {
	l.mu.Lock()
	l.running = false
	l.mu.Unlock()
	return nil
}

func (l *memoryLine) IsRunning() bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.running
}

func (l *memoryLine) Done() <-chan struct{} { return l.done.ch }
func (l *memoryLine) Err() error            { return l.src.Err() }
func (l *memoryLine) Played() int64         { return l.src.n.Load() }
func (l *memoryLine) Format() audio.Format  { return l.format }

func (l *memoryLine) Close() error {
	l.mu.Lock()
	l.closed = true
	l.running = false
	l.cond.Broadcast()
	l.mu.Unlock()

	l.done.close()
	return nil
}

// pump copies the source into the output while the line is running.
// Bytes of a sample split across reads are held back until it is whole.
func (l *memoryLine) pump() {
	buf := make([]byte, 4096)
	sampleSize := l.format.BitDepth / 8
	var carry []byte
	for {
		l.mu.Lock()
		for !l.running && !l.closed {
			l.cond.Wait()
		}
		closed := l.closed
		l.mu.Unlock()
		if closed {
			return
		}

		n, err := l.src.Read(buf)
		if n > 0 {
			chunk := append(carry, buf[:n]...)
			whole := len(chunk) - len(chunk)%sampleSize
			applyVolume(chunk[:whole], l.format, l.volume)
			l.out.write(chunk[:whole])
			carry = append(carry[:0], chunk[whole:]...)
		}
		if err != nil {
			if len(carry) > 0 {
				l.out.write(carry)
			}
			l.mu.Lock()
			l.running = false
			l.mu.Unlock()
			l.done.close()
			return
		}
	}
}
