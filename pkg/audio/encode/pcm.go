// ABOUTME: PCM audio encoder
// ABOUTME: Quantizes float64 samples to 16-bit or 24-bit PCM bytes
package encode

import (
	"encoding/binary"
	"fmt"
	"math"

	"github.com/justinhj/soundexample/pkg/audio"
)

// EncodePCM16LE quantizes samples to signed 16-bit little-endian mono PCM
func EncodePCM16LE(samples []float64) []byte {
	output := make([]byte, len(samples)*2)
	for i, s := range samples {
		binary.LittleEndian.PutUint16(output[i*2:], uint16(Quantize16(s)))
	}
	return output
}

// Quantize16 maps a sample in [-1, 1] to int16. Samples are clamped first;
// anything at or below -1 saturates to the int16 minimum.
func Quantize16(s float64) int16 {
	return int16(quantize(s, audio.Max16Bit, audio.Min16Bit))
}

// Quantize24 maps a sample in [-1, 1] to the signed 24-bit range
func Quantize24(s float64) int32 {
	return quantize(s, audio.Max24Bit, audio.Min24Bit)
}

func quantize(s float64, max, min int32) int32 {
	switch {
	case math.IsNaN(s):
		return 0
	case s >= 1:
		return max
	case s <= -1:
		return min
	}
	return int32(math.Round(s * float64(max)))
}

// PCMEncoder encodes mono PCM audio
type PCMEncoder struct {
	bitDepth  int
	bigEndian bool
}

// NewPCM creates a new PCM encoder for the given format
func NewPCM(format audio.Format) (Encoder, error) {
	if err := format.Validate(); err != nil {
		return nil, err
	}

	if format.Float || !format.Signed {
		return nil, fmt.Errorf("%w: %s (supported: PCM_SIGNED)", audio.ErrUnsupportedFormat, format.Encoding())
	}

	if format.BitDepth != 16 && format.BitDepth != 24 {
		return nil, fmt.Errorf("%w: bit depth %d (supported: 16, 24)", audio.ErrUnsupportedFormat, format.BitDepth)
	}

	if format.Channels != 1 {
		return nil, fmt.Errorf("%w: %d channels (supported: 1)", audio.ErrUnsupportedFormat, format.Channels)
	}

	return &PCMEncoder{
		bitDepth:  format.BitDepth,
		bigEndian: format.BigEndian,
	}, nil
}

// Encode converts samples to PCM bytes
func (e *PCMEncoder) Encode(samples []float64) ([]byte, error) {
	if e.bitDepth == 24 {
		// 24-bit PCM: 3 bytes per sample
		output := make([]byte, len(samples)*3)
		for i, s := range samples {
			v := uint32(Quantize24(s))
			if e.bigEndian {
				output[i*3] = byte(v >> 16)
				output[i*3+1] = byte(v >> 8)
				output[i*3+2] = byte(v)
			} else {
				output[i*3] = byte(v)
				output[i*3+1] = byte(v >> 8)
				output[i*3+2] = byte(v >> 16)
			}
		}
		return output, nil
	}

	// 16-bit PCM: 2 bytes per sample
	if !e.bigEndian {
		return EncodePCM16LE(samples), nil
	}
	output := make([]byte, len(samples)*2)
	for i, s := range samples {
		binary.BigEndian.PutUint16(output[i*2:], uint16(Quantize16(s)))
	}
	return output, nil
}

// Close releases resources
func (e *PCMEncoder) Close() error {
	return nil
}
