// ABOUTME: Oto-based audio output implementation
// ABOUTME: Plays PCM through a process-wide oto context with player volume control
package output

import (
	"fmt"
	"io"
	"sync"
	"sync/atomic"
	"time"

	"github.com/ebitengine/oto/v3"
	"github.com/justinhj/soundexample/pkg/audio"
	log "github.com/sirupsen/logrus"
)

// oto only allows one context per process
var (
	otoMu      sync.Mutex
	otoCtx     *oto.Context
	otoOptions oto.NewContextOptions
)

// Oto output implementation using oto library
type Oto struct {
	volume float64
}

// NewOto creates a new Oto output
func NewOto(volume float64) Output {
	return &Oto{volume: volume}
}

// Open initializes the shared context if needed and creates a player
func (o *Oto) Open(format audio.Format, pcm io.Reader) (Line, error) {
	otoFormat, err := otoFormatFor(format)
	if err != nil {
		return nil, err
	}

	ctx, err := sharedOtoContext(format.SampleRate, format.Channels, otoFormat)
	if err != nil {
		return nil, err
	}

	src := &countingReader{r: pcm}
	player := ctx.NewPlayer(src)
	player.SetVolume(o.volume)

	return &otoLine{
		player: player,
		src:    src,
		format: format,
		done:   newDoneSignal(),
		stop:   make(chan struct{}),
	}, nil
}

// Close suspends the shared context; the next Open resumes it
func (o *Oto) Close() error {
	otoMu.Lock()
	defer otoMu.Unlock()

	if otoCtx == nil {
		return nil
	}
	if err := otoCtx.Suspend(); err != nil {
		return fmt.Errorf("failed to suspend oto context: %w", err)
	}
	return nil
}

// otoFormatFor maps a PCM format to the sample formats oto can play
func otoFormatFor(format audio.Format) (oto.Format, error) {
	if err := format.Validate(); err != nil {
		return 0, fmt.Errorf("%w: %v", audio.ErrUnsupportedFormat, err)
	}
	if format.BigEndian && format.BitDepth > 8 {
		return 0, fmt.Errorf("%w: %s (oto plays little-endian only)", audio.ErrUnsupportedFormat, format)
	}

	switch {
	case format.Float && format.BitDepth == 32:
		return oto.FormatFloat32LE, nil
	case !format.Float && format.Signed && format.BitDepth == 16:
		return oto.FormatSignedInt16LE, nil
	case !format.Float && !format.Signed && format.BitDepth == 8:
		return oto.FormatUnsignedInt8, nil
	default:
		return 0, fmt.Errorf("%w: %s (oto supports: 8-bit unsigned, 16-bit signed, 32-bit float)", audio.ErrUnsupportedFormat, format)
	}
}

func sharedOtoContext(sampleRate, channels int, format oto.Format) (*oto.Context, error) {
	otoMu.Lock()
	defer otoMu.Unlock()

	if otoCtx != nil {
		// oto can't reinitialize, so a different format can't be played
		if otoOptions.SampleRate != sampleRate || otoOptions.ChannelCount != channels || otoOptions.Format != format {
			return nil, fmt.Errorf("%w: oto context already open at %dHz %dch, cannot switch to %dHz %dch",
				audio.ErrUnsupportedFormat, otoOptions.SampleRate, otoOptions.ChannelCount, sampleRate, channels)
		}
		if err := otoCtx.Resume(); err != nil {
			return nil, fmt.Errorf("%w: failed to resume oto context: %v", audio.ErrLineUnavailable, err)
		}
		return otoCtx, nil
	}

	op := oto.NewContextOptions{
		SampleRate:   sampleRate,
		ChannelCount: channels,
		Format:       format,
	}

	ctx, readyChan, err := oto.NewContext(&op)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to create oto context: %v", audio.ErrLineUnavailable, err)
	}
	<-readyChan

	otoCtx = ctx
	otoOptions = op

	log.WithFields(log.Fields{
		"sample_rate": sampleRate,
		"channels":    channels,
	}).Info("Audio output initialized (oto)")

	return ctx, nil
}

type otoLine struct {
	player *oto.Player
	src    *countingReader
	format audio.Format
	done   *doneSignal
	paused atomic.Bool

	watchOnce sync.Once
	stop      chan struct{}
	stopOnce  sync.Once
}

func (l *otoLine) Start() error {
	if l.done.closed() {
		return fmt.Errorf("line closed")
	}
	l.paused.Store(false)
	l.player.Play()
	l.watchOnce.Do(func() { go l.watch() })
	return nil
}

func (l *otoLine) Stop() error {
	l.paused.Store(true)
	l.player.Pause()
	return nil
}

func (l *otoLine) IsRunning() bool {
	return l.player.IsPlaying()
}

func (l *otoLine) Done() <-chan struct{} { return l.done.ch }
func (l *otoLine) Format() audio.Format  { return l.format }

func (l *otoLine) Err() error {
	if err := l.src.Err(); err != nil {
		return err
	}
	return l.player.Err()
}

// Played excludes what is still sitting in oto's buffer
func (l *otoLine) Played() int64 {
	played := l.src.n.Load() - int64(l.player.BufferedSize())
	if played < 0 {
		return 0
	}
	return played
}

func (l *otoLine) Close() error {
	l.stopOnce.Do(func() { close(l.stop) })
	l.done.close()
	if err := l.player.Close(); err != nil {
		return fmt.Errorf("failed to close oto player: %w", err)
	}
	return nil
}

// watch closes done once the source is exhausted and the player has drained.
// oto stops playing on its own at EOF, it has no completion callback.
func (l *otoLine) watch() {
	ticker := time.NewTicker(10 * time.Millisecond)
	defer ticker.Stop()

	for {
		select {
		case <-l.stop:
			return
		case <-ticker.C:
			if l.player.Err() != nil {
				l.done.close()
				return
			}
			if l.paused.Load() {
				continue
			}
			if l.src.eof.Load() && !l.player.IsPlaying() && l.player.BufferedSize() == 0 {
				l.done.close()
				return
			}
		}
	}
}
