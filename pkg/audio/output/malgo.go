// ABOUTME: Malgo-based audio output implementation with 24-bit support
// ABOUTME: Uses miniaudio via malgo; a pump goroutine feeds the device callback
package output

import (
	"fmt"
	"io"
	"sync"
	"sync/atomic"

	"github.com/gen2brain/malgo"
	"github.com/justinhj/soundexample/pkg/audio"
	log "github.com/sirupsen/logrus"
)

// Malgo output implementation using malgo/miniaudio library
type Malgo struct {
	mu       sync.Mutex
	malgoCtx *malgo.AllocatedContext
	volume   float64
}

// NewMalgo creates a new Malgo output
func NewMalgo(volume float64) Output {
	return &Malgo{volume: volume}
}

// Open initializes a playback device for the format
func (m *Malgo) Open(format audio.Format, pcm io.Reader) (Line, error) {
	deviceFormat, err := malgoFormatFor(format)
	if err != nil {
		return nil, err
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	// Create malgo context if needed
	if m.malgoCtx == nil {
		ctx, err := malgo.InitContext(nil, malgo.ContextConfig{}, nil)
		if err != nil {
			return nil, fmt.Errorf("%w: failed to initialize malgo context: %v", audio.ErrLineUnavailable, err)
		}
		m.malgoCtx = ctx
	}

	l := &malgoLine{
		src:    &countingReader{r: pcm},
		ring:   NewRingBuffer(ringCapacity(format)),
		format: format,
		volume: m.volume,
		done:   newDoneSignal(),
	}

	deviceConfig := malgo.DefaultDeviceConfig(malgo.Playback)
	deviceConfig.Playback.Format = deviceFormat
	deviceConfig.Playback.Channels = uint32(format.Channels)
	deviceConfig.SampleRate = uint32(format.SampleRate)
	deviceConfig.Alsa.NoMMap = 1

	callbacks := malgo.DeviceCallbacks{
		Data: func(pOutputSample, pInputSamples []byte, frameCount uint32) {
			l.dataCallback(pOutputSample, frameCount)
		},
	}

	device, err := malgo.InitDevice(m.malgoCtx.Context, deviceConfig, callbacks)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to initialize playback device: %v", audio.ErrLineUnavailable, err)
	}
	l.device = device

	log.WithFields(log.Fields{
		"sample_rate": format.SampleRate,
		"channels":    format.Channels,
		"format":      formatName(deviceFormat),
	}).Info("Audio output initialized (malgo)")

	if m.volume != 1 && !format.Float && format.BitDepth != 16 {
		log.Warnf("Volume is only applied to S16 and F32 output, playing %s at full scale", formatName(deviceFormat))
	}

	return l, nil
}

// Close releases the malgo context
func (m *Malgo) Close() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.malgoCtx != nil {
		if err := m.malgoCtx.Uninit(); err != nil {
			log.WithError(err).Warn("malgo context uninit error")
		}
		m.malgoCtx.Free()
		m.malgoCtx = nil
	}
	return nil
}

// malgoFormatFor maps a PCM format to a miniaudio sample format
func malgoFormatFor(format audio.Format) (malgo.FormatType, error) {
	if err := format.Validate(); err != nil {
		return malgo.FormatUnknown, fmt.Errorf("%w: %v", audio.ErrUnsupportedFormat, err)
	}
	if format.BigEndian && format.BitDepth > 8 {
		return malgo.FormatUnknown, fmt.Errorf("%w: %s (malgo plays little-endian only)", audio.ErrUnsupportedFormat, format)
	}

	if format.Float {
		if format.BitDepth == 32 {
			return malgo.FormatF32, nil
		}
		return malgo.FormatUnknown, fmt.Errorf("%w: %s (supported float: 32-bit)", audio.ErrUnsupportedFormat, format)
	}

	switch {
	case format.BitDepth == 8 && !format.Signed:
		return malgo.FormatU8, nil
	case format.BitDepth == 16 && format.Signed:
		return malgo.FormatS16, nil
	case format.BitDepth == 24 && format.Signed:
		return malgo.FormatS24, nil
	case format.BitDepth == 32 && format.Signed:
		return malgo.FormatS32, nil
	default:
		return malgo.FormatUnknown, fmt.Errorf("%w: %s (supported: U8, S16, S24, S32, F32)", audio.ErrUnsupportedFormat, format)
	}
}

// ringCapacity sizes the ring buffer to 500ms of audio in whole frames,
// never less than one frame
func ringCapacity(format audio.Format) int {
	frame := format.FrameSize()
	capacity := format.BytesPerSecond() / 2
	capacity -= capacity % frame
	if capacity < frame {
		capacity = frame
	}
	return capacity
}

// formatName returns human-readable format name
func formatName(format malgo.FormatType) string {
	switch format {
	case malgo.FormatU8:
		return "U8"
	case malgo.FormatS16:
		return "S16"
	case malgo.FormatS24:
		return "S24"
	case malgo.FormatS32:
		return "S32"
	case malgo.FormatF32:
		return "F32"
	default:
		return fmt.Sprintf("Unknown(%d)", format)
	}
}

type malgoLine struct {
	device *malgo.Device
	src    *countingReader
	ring   *RingBuffer
	format audio.Format
	volume float64
	done   *doneSignal

	pumpOnce sync.Once
	pumped   atomic.Bool // source exhausted and fully copied into ring
	played   atomic.Int64
	mu       sync.Mutex
	closed   bool
}

func (l *malgoLine) Start() error {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.closed {
		return fmt.Errorf("line closed")
	}
	l.pumpOnce.Do(func() { go l.pump() })
	if l.device.IsStarted() {
		return nil
	}
	return l.device.Start()
}

func (l *malgoLine) Stop() error {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.closed || !l.device.IsStarted() {
		return nil
	}
	return l.device.Stop()
}

func (l *malgoLine) IsRunning() bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	return !l.closed && l.device.IsStarted() && !l.done.closed()
}

func (l *malgoLine) Done() <-chan struct{} { return l.done.ch }
func (l *malgoLine) Err() error            { return l.src.Err() }
func (l *malgoLine) Played() int64         { return l.played.Load() }
func (l *malgoLine) Format() audio.Format  { return l.format }

func (l *malgoLine) Close() error {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.closed {
		return nil
	}
	l.closed = true
	l.ring.Close()
	if l.device.IsStarted() {
		if err := l.device.Stop(); err != nil {
			log.WithError(err).Warn("device stop error")
		}
	}
	l.device.Uninit()
	l.done.close()
	return nil
}

// pump copies the source into the ring buffer until EOF or close
func (l *malgoLine) pump() {
	buf := make([]byte, 16*1024)
	for {
		n, err := l.src.Read(buf)
		if n > 0 {
			if l.ring.Write(buf[:n]) < n {
				return // ring closed
			}
		}
		if err != nil {
			l.pumped.Store(true)
			return
		}
	}
}

// dataCallback is called by malgo to fill the audio output buffer
func (l *malgoLine) dataCallback(pOutput []byte, frameCount uint32) {
	want := int(frameCount) * l.format.FrameSize()
	if want > len(pOutput) {
		want = len(pOutput)
	}
	out := pOutput[:want]

	n := l.ring.Read(out)
	applyVolume(out[:n], l.format, l.volume)
	l.played.Add(int64(n))

	if n < want && l.pumped.Load() && l.ring.Available() == 0 {
		// Can't stop the device from inside its own callback
		l.done.close()
	}
}
