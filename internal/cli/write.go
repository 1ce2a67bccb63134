// ABOUTME: write command
// ABOUTME: Renders a sine wave to a WAV file
package cli

import (
	"bufio"
	"fmt"
	"os"

	"github.com/justinhj/soundexample/pkg/audio/encode"
	"github.com/justinhj/soundexample/pkg/audio/generate"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

func newWriteCommand(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "write <out.wav>",
		Short: "Write a generated sine wave to a WAV file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) (err error) {
			samples, err := generate.SineWave(a.cfg.Frequency, a.cfg.Duration, a.cfg.SampleRate)
			if err != nil {
				return fmt.Errorf("failed to generate tone: %w", err)
			}

			f, err := os.Create(args[0])
			if err != nil {
				return fmt.Errorf("failed to create %s: %w", args[0], err)
			}
			defer func() {
				if cerr := f.Close(); cerr != nil && err == nil {
					err = fmt.Errorf("failed to close %s: %w", args[0], cerr)
				}
			}()

			w := bufio.NewWriter(f)
			if err := encode.WriteWAV(w, a.cfg.Format(), samples); err != nil {
				return err
			}
			if err := w.Flush(); err != nil {
				return fmt.Errorf("failed to write %s: %w", args[0], err)
			}

			log.WithFields(log.Fields{
				"file":      args[0],
				"frequency": a.cfg.Frequency,
				"samples":   len(samples),
			}).Info("Wrote sine wave")
			return nil
		},
	}

	flags := cmd.Flags()
	flags.Float64P("frequency", "f", 130, "Tone frequency in Hz")
	flags.Float64P("duration", "d", 3, "Tone length in seconds")
	flags.IntP("rate", "r", 44100, "Sample rate in Hz")
	return cmd
}
