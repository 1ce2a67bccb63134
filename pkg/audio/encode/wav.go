// ABOUTME: WAV file writer
// ABOUTME: Writes mono 16-bit PCM samples into a RIFF/WAVE container
package encode

import (
	"fmt"
	"io"

	"github.com/justinhj/soundexample/pkg/audio"
	"github.com/youpy/go-wav"
)

// WriteWAV writes samples as a 16-bit PCM WAV file at the format's sample rate.
// Only the sample rate of format is used; WAV output is always 16-bit mono.
func WriteWAV(w io.Writer, format audio.Format, samples []float64) error {
	if format.SampleRate <= 0 {
		return fmt.Errorf("%w: sample rate must be positive, got %d", audio.ErrInvalidArgument, format.SampleRate)
	}

	wavSamples := make([]wav.Sample, len(samples))
	for i, s := range samples {
		v := int(Quantize16(s))
		wavSamples[i] = wav.Sample{Values: [2]int{v, v}}
	}

	writer := wav.NewWriter(w, uint32(len(samples)), 1, uint32(format.SampleRate), 16)
	if err := writer.WriteSamples(wavSamples); err != nil {
		return fmt.Errorf("failed to write wav samples: %w", err)
	}
	return nil
}
