// ABOUTME: FLAC file reader
// ABOUTME: Decodes FLAC frames to interleaved 16-bit signed little-endian PCM
package decode

import (
	"encoding/binary"
	"fmt"
	"io"
	"os"

	"github.com/justinhj/soundexample/pkg/audio"
	"github.com/mewkiz/flac"
)

// flacReader converts FLAC frames to PCM bytes on demand
type flacReader struct {
	stream   *flac.Stream
	bitDepth int
	pending  []byte
	err      error
}

func openFLAC(f *os.File) (*Stream, error) {
	stream, err := flac.New(f)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", audio.ErrUnsupportedFile, err)
	}

	info := stream.Info
	format := audio.Format{
		Codec:      "flac",
		SampleRate: int(info.SampleRate),
		BitDepth:   16,
		Channels:   int(info.NChannels),
		Signed:     true,
	}
	if err := format.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %v", audio.ErrUnsupportedFile, err)
	}

	frames := int64(-1)
	if info.NSamples > 0 {
		frames = int64(info.NSamples)
	}

	return &Stream{
		Reader: &flacReader{stream: stream, bitDepth: int(info.BitsPerSample)},
		Format: format,
		Frames: frames,
		closer: f,
	}, nil
}

func (r *flacReader) Read(p []byte) (int, error) {
	for len(r.pending) == 0 {
		if r.err != nil {
			return 0, r.err
		}

		frame, err := r.stream.ParseNext()
		if err != nil {
			if err != io.EOF {
				err = fmt.Errorf("flac decode error: %w", err)
			}
			r.err = err
			continue
		}

		channels := make([][]int32, len(frame.Subframes))
		for ch, sub := range frame.Subframes {
			channels[ch] = sub.Samples
		}
		r.pending = interleave16(r.pending[:0], channels, int(frame.BlockSize), r.bitDepth)
	}

	n := copy(p, r.pending)
	r.pending = r.pending[n:]
	return n, nil
}

// interleave16 appends blockSize frames of per-channel samples to dst as
// 16-bit little-endian PCM, rescaling from bitDepth.
func interleave16(dst []byte, channels [][]int32, blockSize, bitDepth int) []byte {
	shift := bitDepth - 16
	var b [2]byte
	for i := 0; i < blockSize; i++ {
		for _, samples := range channels {
			s := samples[i]
			if shift > 0 {
				s >>= shift
			} else if shift < 0 {
				s <<= -shift
			}
			binary.LittleEndian.PutUint16(b[:], uint16(int16(s)))
			dst = append(dst, b[:]...)
		}
	}
	return dst
}
