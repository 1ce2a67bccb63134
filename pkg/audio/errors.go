// ABOUTME: Sentinel errors for audio generation and playback
// ABOUTME: Callers match them with errors.Is after wrapping
package audio

import "errors"

var (
	// ErrInvalidArgument is returned for non-positive or non-finite parameters
	ErrInvalidArgument = errors.New("invalid argument")

	// ErrFileNotFound is returned when an audio file does not exist
	ErrFileNotFound = errors.New("audio file not found")

	// ErrUnsupportedFile is returned for unknown containers or undecodable headers
	ErrUnsupportedFile = errors.New("unsupported audio file format")

	// ErrUnsupportedFormat is returned when an output cannot play a PCM format
	ErrUnsupportedFormat = errors.New("unsupported audio format")

	// ErrLineUnavailable is returned when an output device cannot be acquired
	ErrLineUnavailable = errors.New("audio line unavailable")

	// ErrInterrupted is returned when playback is stopped before it finished
	ErrInterrupted = errors.New("playback interrupted")
)
