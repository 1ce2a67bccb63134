// ABOUTME: WAV file reader
// ABOUTME: Reads the format from the RIFF header and passes data bytes through
package decode

import (
	"fmt"
	"math"
	"os"

	"github.com/justinhj/soundexample/pkg/audio"
	"github.com/youpy/go-wav"
)

// WAVE_FORMAT_EXTENSIBLE; the subformat GUID is not inspected, integer PCM is assumed
const formatExtensible = 0xFFFE

func openWAV(f *os.File) (*Stream, error) {
	// The riff reader works on ReadAt, so probing with a second reader does
	// not disturb the one that streams the data chunk.
	probe := wav.NewReader(f)

	wf, err := probe.Format()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", audio.ErrUnsupportedFile, err)
	}

	format := audio.Format{
		Codec:      "wav",
		SampleRate: int(wf.SampleRate),
		BitDepth:   int(wf.BitsPerSample),
		Channels:   int(wf.NumChannels),
	}

	switch wf.AudioFormat {
	case wav.AudioFormatPCM, formatExtensible:
		// 8-bit WAV is unsigned, wider samples are two's complement
		format.Signed = format.BitDepth > 8
	case wav.AudioFormatIEEEFloat:
		format.Float = true
		format.Signed = true
	default:
		return nil, fmt.Errorf("%w: wav format tag %d (supported: PCM, IEEE float)", audio.ErrUnsupportedFile, wf.AudioFormat)
	}

	if err := format.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %v", audio.ErrUnsupportedFile, err)
	}

	frames := int64(-1)
	if d, err := probe.Duration(); err == nil {
		frames = int64(math.Round(d.Seconds() * float64(format.SampleRate)))
	}

	return &Stream{
		Reader: wav.NewReader(f),
		Format: format,
		Frames: frames,
		closer: f,
	}, nil
}
