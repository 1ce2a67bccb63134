// ABOUTME: Audio type definitions
// ABOUTME: Defines the PCM format descriptor shared by generator, codecs and outputs
package audio

import (
	"fmt"
	"math"
	"time"
)

const (
	// DefaultSampleRate is the rate used for synthesized audio
	DefaultSampleRate = 44100

	// 16-bit audio range constants
	Max16Bit = math.MaxInt16 // 2^15 - 1
	Min16Bit = math.MinInt16 // -2^15

	// 24-bit audio range constants
	Max24Bit = 8388607  // 2^23 - 1
	Min24Bit = -8388608 // -2^23
)

// Format describes a PCM stream: how many frames per second, how wide each
// sample is, and how the bytes are laid out.
type Format struct {
	Codec      string // Source container: pcm, wav, mp3, flac
	SampleRate int
	BitDepth   int
	Channels   int
	Signed     bool
	BigEndian  bool
	Float      bool // IEEE float samples (WAV format tag 3)
}

// DefaultFormat returns 44.1kHz 16-bit signed little-endian mono
func DefaultFormat() Format {
	return Format{
		Codec:      "pcm",
		SampleRate: DefaultSampleRate,
		BitDepth:   16,
		Channels:   1,
		Signed:     true,
		BigEndian:  false,
	}
}

// Validate checks that the descriptor can describe a real stream
func (f Format) Validate() error {
	if f.SampleRate <= 0 {
		return fmt.Errorf("%w: sample rate must be positive, got %d", ErrInvalidArgument, f.SampleRate)
	}
	if f.BitDepth <= 0 || f.BitDepth%8 != 0 {
		return fmt.Errorf("%w: bit depth must be a positive multiple of 8, got %d", ErrInvalidArgument, f.BitDepth)
	}
	if f.Channels <= 0 {
		return fmt.Errorf("%w: channel count must be positive, got %d", ErrInvalidArgument, f.Channels)
	}
	if f.Float && f.BitDepth != 32 && f.BitDepth != 64 {
		return fmt.Errorf("%w: float samples must be 32 or 64 bit, got %d", ErrInvalidArgument, f.BitDepth)
	}
	return nil
}

// FrameSize returns the number of bytes in one frame (one sample per channel)
func (f Format) FrameSize() int {
	return f.BitDepth / 8 * f.Channels
}

// BytesPerSecond returns the byte rate of the stream
func (f Format) BytesPerSecond() int {
	return f.FrameSize() * f.SampleRate
}

// Duration converts a PCM byte count into playback time
func (f Format) Duration(nbytes int64) time.Duration {
	bps := f.BytesPerSecond()
	if bps <= 0 || nbytes <= 0 {
		return 0
	}
	b := int64(bps)
	secs, rem := nbytes/b, nbytes%b
	return time.Duration(secs)*time.Second + time.Duration(rem*int64(time.Second)/b)
}

// Encoding names the sample encoding the way a PCM line reports it
func (f Format) Encoding() string {
	switch {
	case f.Float:
		return "PCM_FLOAT"
	case f.Signed:
		return "PCM_SIGNED"
	default:
		return "PCM_UNSIGNED"
	}
}

func (f Format) String() string {
	endian := "LE"
	if f.BigEndian {
		endian = "BE"
	}
	return fmt.Sprintf("%s %dHz %d-bit %dch %s", f.Encoding(), f.SampleRate, f.BitDepth, f.Channels, endian)
}
