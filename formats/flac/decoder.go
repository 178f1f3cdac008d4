// SPDX-License-Identifier: EPL-2.0

package flac

import (
	"encoding/binary"
	"errors"
	"fmt"
	"io"

	"github.com/tphakala/flac"

	"github.com/ik5/romple/audio"
)

const defaultBlockSize = 1024

// frameReader is the part of flac.Decoder the source needs.
type frameReader interface {
	Next() ([]byte, error)
}

type source struct {
	dec        frameReader
	sampleRate int
	channels   int
	width      int // bytes per sample
	scale      float32
	pending    []byte
}

func newSource(dec frameReader, sampleRate, channels, bitDepth int) *source {
	return &source{
		dec:        dec,
		sampleRate: sampleRate,
		channels:   channels,
		width:      bitDepth / 8,
		scale:      1 / float32(int64(1)<<(bitDepth-1)),
	}
}

func (s *source) SampleRate() int { return s.sampleRate }
func (s *source) Channels() int   { return s.channels }
func (s *source) Close() error    { return nil }
func (s *source) BufSize() int    { return defaultBlockSize }

// ReadSamples fills dst with whole frames, pulling FLAC frames from the
// decoder as needed.
func (s *source) ReadSamples(dst []float32) (int, error) {
	dst = dst[:len(dst)-len(dst)%s.channels]

	n := 0
	for n < len(dst) {
		if len(s.pending) < s.width {
			frame, err := s.dec.Next()
			switch {
			case err == nil:
			case errors.Is(err, io.EOF):
				return n, io.EOF
			default:
				return n, fmt.Errorf("%w: reading FLAC frame: %w", audio.ErrStorage, err)
			}
			s.pending = frame
			continue
		}

		count := min(len(dst)-n, len(s.pending)/s.width)
		for i := range count {
			dst[n+i] = float32(s.sample(s.pending[i*s.width:])) * s.scale
		}
		s.pending = s.pending[count*s.width:]
		n += count
	}

	return n, nil
}

func (s *source) sample(b []byte) int32 {
	switch s.width {
	case 2:
		return int32(int16(binary.LittleEndian.Uint16(b)))
	case 3:
		return int32(uint32(b[0])<<8|uint32(b[1])<<16|uint32(b[2])<<24) >> 8
	default:
		return int32(binary.LittleEndian.Uint32(b))
	}
}

// Decoder reads FLAC streams.
type Decoder struct{}

func (Decoder) Decode(r io.Reader) (audio.Source, error) {
	dec, err := flac.NewDecoder(r)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrNotFlacFile, err)
	}

	switch dec.BitsPerSample {
	case 16, 24, 32:
	default:
		return nil, fmt.Errorf("%w: %d", ErrUnsupportedBitDepth, dec.BitsPerSample)
	}

	if dec.NChannels < 1 {
		return nil, fmt.Errorf("%w: %d channels", ErrNotFlacFile, dec.NChannels)
	}

	return newSource(dec, int(dec.SampleRate), int(dec.NChannels), int(dec.BitsPerSample)), nil
}
