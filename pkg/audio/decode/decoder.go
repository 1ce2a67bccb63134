// ABOUTME: Audio file stream abstraction
// ABOUTME: Dispatches file paths to the WAV, MP3 or FLAC reader by extension
package decode

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/justinhj/soundexample/pkg/audio"
)

// Stream is a decoded audio file: its format and a reader of raw PCM bytes
type Stream struct {
	io.Reader
	Format audio.Format
	Frames int64 // total frames, -1 when the container does not say

	closer    io.Closer
	closeOnce sync.Once
	closeErr  error
}

// Open opens an audio file and returns its PCM stream.
// Supported extensions: .wav, .wave, .mp3, .flac
func Open(path string) (*Stream, error) {
	if _, err := os.Stat(path); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", audio.ErrFileNotFound, path)
		}
		return nil, fmt.Errorf("failed to stat %s: %w", path, err)
	}

	ext := strings.ToLower(filepath.Ext(path))

	var open func(*os.File) (*Stream, error)
	switch ext {
	case ".wav", ".wave":
		open = openWAV
	case ".mp3":
		open = openMP3
	case ".flac":
		open = openFLAC
	default:
		return nil, fmt.Errorf("%w: %q (supported: .wav, .mp3, .flac)", audio.ErrUnsupportedFile, ext)
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open %s: %w", path, err)
	}

	stream, err := open(f)
	if err != nil {
		f.Close()
		return nil, fmt.Errorf("%s: %w", filepath.Base(path), err)
	}
	return stream, nil
}

// Size returns the PCM byte length of the stream, or -1 if unknown
func (s *Stream) Size() int64 {
	if s.Frames < 0 {
		return -1
	}
	return s.Frames * int64(s.Format.FrameSize())
}

// Duration returns the playback length, or 0 if unknown
func (s *Stream) Duration() time.Duration {
	return s.Format.Duration(s.Size())
}

// Close releases the underlying file. It is safe to call more than once.
func (s *Stream) Close() error {
	s.closeOnce.Do(func() {
		if s.closer != nil {
			s.closeErr = s.closer.Close()
		}
	})
	return s.closeErr
}
