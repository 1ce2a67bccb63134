// ABOUTME: Sine wave generator
// ABOUTME: Produces time-ordered sine samples and PCM tones
package generate

import (
	"fmt"
	"math"

	"github.com/justinhj/soundexample/pkg/audio"
	"github.com/justinhj/soundexample/pkg/audio/encode"
)

// SineWave returns floor(duration*sampleRate) samples of a unit-amplitude sine
// at frequency Hz. Sample i is taken at time i/sampleRate.
func SineWave(frequency, duration float64, sampleRate int) ([]float64, error) {
	if err := checkPositive("frequency", frequency); err != nil {
		return nil, err
	}
	if err := checkPositive("duration", duration); err != nil {
		return nil, err
	}
	if sampleRate <= 0 {
		return nil, fmt.Errorf("%w: sample rate must be positive, got %d", audio.ErrInvalidArgument, sampleRate)
	}

	rate := float64(sampleRate)
	numSamples := int(math.Floor(duration * rate))
	samples := make([]float64, numSamples)
	for i := range samples {
		samples[i] = math.Sin(2 * math.Pi * float64(i) * frequency / rate)
	}
	return samples, nil
}

// Tone synthesizes a sine wave and encodes it in the given PCM format
func Tone(frequency, duration float64, format audio.Format) ([]byte, error) {
	samples, err := SineWave(frequency, duration, format.SampleRate)
	if err != nil {
		return nil, err
	}

	encoder, err := encode.NewPCM(format)
	if err != nil {
		return nil, err
	}
	defer encoder.Close()

	return encoder.Encode(samples)
}

func checkPositive(name string, v float64) error {
	if math.IsNaN(v) || math.IsInf(v, 0) || v <= 0 {
		return fmt.Errorf("%w: %s must be positive and finite, got %v", audio.ErrInvalidArgument, name, v)
	}
	return nil
}
