// ABOUTME: PCM audio decoder
// ABOUTME: Decodes 16-bit little-endian PCM back to normalized samples
package decode

import (
	"encoding/binary"

	"github.com/justinhj/soundexample/pkg/audio"
)

// DecodePCM16LE converts signed 16-bit little-endian PCM to samples by
// dividing by 32767. A trailing odd byte is ignored.
func DecodePCM16LE(data []byte) []float64 {
	numSamples := len(data) / 2
	samples := make([]float64, numSamples)
	for i := 0; i < numSamples; i++ {
		sample16 := int16(binary.LittleEndian.Uint16(data[i*2:]))
		samples[i] = float64(sample16) / audio.Max16Bit
	}
	return samples
}
