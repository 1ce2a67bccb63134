// ABOUTME: Blocking play-and-wait helper
// ABOUTME: Opens a line, waits for completion or cancellation, always closes it
package output

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/justinhj/soundexample/pkg/audio"
	log "github.com/sirupsen/logrus"
)

// ProgressFunc receives the playback position while Play waits
type ProgressFunc func(played time.Duration)

type playOptions struct {
	interval time.Duration
	progress ProgressFunc
}

// PlayOption configures Play
type PlayOption func(*playOptions)

// WithProgress reports the playback position every interval, and once more
// when playback completes
func WithProgress(interval time.Duration, fn ProgressFunc) PlayOption {
	return func(o *playOptions) {
		if interval > 0 {
			o.interval = interval
		}
		o.progress = fn
	}
}

// Play plays pcm on out and blocks until it has finished or ctx is done.
// On cancellation the line is stopped and the error wraps both
// audio.ErrInterrupted and ctx.Err(). The line is closed on every path.
func Play(ctx context.Context, out Output, format audio.Format, pcm io.Reader, opts ...PlayOption) (err error) {
	o := playOptions{interval: 100 * time.Millisecond}
	for _, opt := range opts {
		opt(&o)
	}

	if err := ctx.Err(); err != nil {
		return fmt.Errorf("%w: %w", audio.ErrInterrupted, err)
	}

	line, err := out.Open(format, pcm)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := line.Close(); cerr != nil && err == nil {
			err = fmt.Errorf("failed to close line: %w", cerr)
		}
	}()

	if err := line.Start(); err != nil {
		return fmt.Errorf("%w: failed to start line: %v", audio.ErrLineUnavailable, err)
	}
	log.WithField("format", format.String()).Debug("Playback started")

	var tick <-chan time.Time
	if o.progress != nil {
		ticker := time.NewTicker(o.interval)
		defer ticker.Stop()
		tick = ticker.C
	}

	for {
		select {
		case <-line.Done():
			if o.progress != nil {
				o.progress(format.Duration(line.Played()))
			}
			if err := line.Err(); err != nil {
				return fmt.Errorf("playback failed: %w", err)
			}
			log.WithField("played", format.Duration(line.Played())).Debug("Playback finished")
			return nil

		case <-ctx.Done():
			if serr := line.Stop(); serr != nil {
				log.WithError(serr).Warn("Failed to stop line")
			}
			return fmt.Errorf("%w: %w", audio.ErrInterrupted, ctx.Err())

		case <-tick:
			o.progress(format.Duration(line.Played()))
		}
	}
}
