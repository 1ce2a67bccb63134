// ABOUTME: MP3 file reader
// ABOUTME: Decodes MP3 to 16-bit signed little-endian stereo PCM
package decode

import (
	"fmt"
	"os"

	"github.com/hajimehoshi/go-mp3"
	"github.com/justinhj/soundexample/pkg/audio"
)

func openMP3(f *os.File) (*Stream, error) {
	decoder, err := mp3.NewDecoder(f)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", audio.ErrUnsupportedFile, err)
	}

	// go-mp3 always emits 16-bit stereo
	format := audio.Format{
		Codec:      "mp3",
		SampleRate: decoder.SampleRate(),
		BitDepth:   16,
		Channels:   2,
		Signed:     true,
	}

	frames := int64(-1)
	if n := decoder.Length(); n >= 0 {
		frames = n / int64(format.FrameSize())
	}

	return &Stream{
		Reader: decoder,
		Format: format,
		Frames: frames,
		closer: f,
	}, nil
}
