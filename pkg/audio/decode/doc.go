// ABOUTME: Audio file reader package for multiple container support
// ABOUTME: Opens WAV, MP3 and FLAC files as a format descriptor plus a PCM stream
// Package decode reads audio files from disk.
//
// Supports: WAV (PCM and IEEE float, header-driven format), MP3 and FLAC
// (both delivered as 16-bit signed little-endian PCM).
//
// Open picks the reader from the file extension and returns a Stream: the
// audio.Format read from the file and an io.Reader of raw PCM bytes in that
// format. The caller owns the Stream and must Close it.
//
// Example:
//
//	stream, err := decode.Open("take.wav")
//	if err != nil {
//	    return err
//	}
//	defer stream.Close()
//	err = output.Play(ctx, out, stream.Format, stream)
package decode
