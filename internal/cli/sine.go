// ABOUTME: sine command
// ABOUTME: Synthesizes a sine tone and plays it on the configured backend
package cli

import (
	"bytes"
	"fmt"
	"time"

	"github.com/justinhj/soundexample/pkg/audio/generate"
	"github.com/justinhj/soundexample/pkg/audio/output"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

func newSineCommand(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "sine",
		Short: "Play a generated sine wave",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			format := a.cfg.Format()
			pcm, err := generate.Tone(a.cfg.Frequency, a.cfg.Duration, format)
			if err != nil {
				return fmt.Errorf("failed to generate tone: %w", err)
			}

			out, err := a.output()
			if err != nil {
				return err
			}
			defer out.Close()

			log.WithFields(log.Fields{
				"frequency": a.cfg.Frequency,
				"duration":  a.cfg.Duration,
				"format":    format.String(),
				"bytes":     len(pcm),
				"backend":   a.cfg.Backend,
			}).Info("Playing sine wave")

			err = output.Play(cmd.Context(), out, format, bytes.NewReader(pcm),
				output.WithProgress(time.Second, logProgress))
			if err != nil {
				return err
			}

			log.Info("Playback finished")
			return nil
		},
	}

	flags := cmd.Flags()
	flags.Float64P("frequency", "f", 130, "Tone frequency in Hz")
	flags.Float64P("duration", "d", 3, "Tone length in seconds")
	flags.IntP("rate", "r", 44100, "Sample rate in Hz")
	return cmd
}

func logProgress(played time.Duration) {
	log.WithField("played", played.Round(time.Millisecond)).Debug("Playback progress")
}
