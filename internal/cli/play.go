// ABOUTME: play command
// ABOUTME: Decodes an audio file and plays it, optionally with a progress TUI
package cli

import (
	"context"
	"errors"
	"fmt"
	"sync/atomic"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/justinhj/soundexample/internal/ui"
	"github.com/justinhj/soundexample/pkg/audio"
	"github.com/justinhj/soundexample/pkg/audio/decode"
	"github.com/justinhj/soundexample/pkg/audio/output"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

func newPlayCommand(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "play <file>",
		Short: "Play a WAV, MP3 or FLAC file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := args[0]

			stream, err := decode.Open(path)
			if err != nil {
				return err
			}
			defer stream.Close()

			formatFields(stream).Info("Opened audio file")

			out, err := a.output()
			if err != nil {
				return err
			}
			defer out.Close()

			if a.cfg.TUI {
				return playWithTUI(cmd, out, path, stream)
			}

			err = output.Play(cmd.Context(), out, stream.Format, stream,
				output.WithProgress(time.Second, logProgress))
			if err != nil {
				return err
			}

			log.WithField("file", path).Info("Playback finished")
			return nil
		},
	}

	cmd.Flags().Bool("tui", false, "Show a playback progress view (q to stop)")
	return cmd
}

// formatFields describes a stream's format the way the audio line sees it
func formatFields(stream *decode.Stream) *log.Entry {
	f := stream.Format
	return log.WithFields(log.Fields{
		"codec":       f.Codec,
		"encoding":    f.Encoding(),
		"sample_rate": f.SampleRate,
		"bits":        f.BitDepth,
		"channels":    f.Channels,
		"frame_size":  f.FrameSize(),
		"frame_rate":  f.SampleRate,
		"big_endian":  f.BigEndian,
		"duration":    stream.Duration().Round(time.Millisecond),
	})
}

// playWithTUI runs playback in the background while the TUI owns the
// terminal. Stopping from the TUI is not an error.
func playWithTUI(cmd *cobra.Command, out output.Output, path string, stream *decode.Stream) error {
	ctx, cancel := context.WithCancel(cmd.Context())
	defer cancel()

	var userStopped atomic.Bool
	stop := func() {
		userStopped.Store(true)
		cancel()
	}

	prog := ui.Run(ui.NewModel(path, stream.Format, stream.Duration(), stop),
		tea.WithInput(cmd.InOrStdin()),
		tea.WithOutput(cmd.OutOrStdout()),
	)

	errc := make(chan error, 1)
	go func() {
		err := output.Play(ctx, out, stream.Format, stream,
			output.WithProgress(200*time.Millisecond, func(played time.Duration) {
				prog.Send(ui.ProgressMsg{Played: played})
			}))
		prog.Send(ui.DoneMsg{Err: err})
		errc <- err
	}()

	if _, err := prog.Run(); err != nil {
		cancel()
		<-errc
		return fmt.Errorf("tui failed: %w", err)
	}

	// The TUI can exit before playback does, e.g. on q
	cancel()
	err := <-errc
	if errors.Is(err, audio.ErrInterrupted) && userStopped.Load() {
		log.WithField("file", path).Info("Playback stopped")
		return nil
	}
	return err
}
