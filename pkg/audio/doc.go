// ABOUTME: Audio fundamentals package providing core types and errors
// ABOUTME: Defines the Format descriptor and sentinel errors
// Package audio provides the PCM format descriptor used throughout soundexample.
//
// A Format is an immutable value passed explicitly to the generator, the
// encoders and the outputs:
//
//	format := audio.DefaultFormat() // 44100Hz, 16-bit, mono, signed, little-endian
//	fmt.Println(format.FrameSize()) // 2
//
// Errors returned by the sub-packages wrap one of the sentinels declared
// here (ErrInvalidArgument, ErrUnsupportedFormat, ...) so callers can use
// errors.Is regardless of which backend produced them.
package audio
