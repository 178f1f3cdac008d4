// SPDX-License-Identifier: EPL-2.0

package mp3

import (
	"encoding/binary"
	"errors"
	"fmt"
	"io"

	gomp3 "github.com/hajimehoshi/go-mp3"
	"github.com/ik5/romple/audio"
)

// go-mp3 always yields 16-bit little-endian stereo.
const (
	channels         = 2
	bytesPerSample   = 2
	defaultBlockSize = 1024 // samples
)

// ErrNotMP3File indicates the stream has no decodable MPEG audio frames.
var ErrNotMP3File = fmt.Errorf("%w: not an MP3 stream", audio.ErrFormat)

// frameReader is the part of gomp3.Decoder the source needs.
type frameReader interface {
	Read([]byte) (int, error)
	SampleRate() int
}

type source struct {
	dec frameReader
	buf []byte
	// carry holds an odd trailing byte between reads
	carry []byte
}

func newSource(dec frameReader) *source {
	return &source{
		dec:   dec,
		buf:   make([]byte, defaultBlockSize*bytesPerSample),
		carry: make([]byte, 0, 1),
	}
}

func (s *source) SampleRate() int { return s.dec.SampleRate() }
func (s *source) Channels() int   { return channels }
func (s *source) Close() error    { return nil }
func (s *source) BufSize() int    { return cap(s.buf) / bytesPerSample }

func (s *source) ReadSamples(dst []float32) (int, error) {
	if len(dst) == 0 {
		return 0, nil
	}

	need := len(dst) * bytesPerSample
	if cap(s.buf) < need {
		s.buf = make([]byte, need)
	}
	s.buf = s.buf[:need]

	pending := copy(s.buf, s.carry)
	s.carry = s.carry[:0]

	n, err := s.dec.Read(s.buf[pending:])
	n += pending
	switch {
	case err == nil:
	case errors.Is(err, io.EOF):
		err = io.EOF
	default:
		return 0, fmt.Errorf("%w: reading MP3 frames: %w", audio.ErrStorage, err)
	}

	samples := n / bytesPerSample
	if rem := n % bytesPerSample; rem != 0 && err == nil {
		s.carry = append(s.carry, s.buf[n-1])
	}

	for i := range samples {
		v := int16(binary.LittleEndian.Uint16(s.buf[bytesPerSample*i:]))
		dst[i] = float32(v) / 32768.0
	}

	return samples, err
}

// Decoder decodes MPEG-1/2 layer III streams with github.com/hajimehoshi/go-mp3.
type Decoder struct{}

func (Decoder) Decode(r io.Reader) (audio.Source, error) {
	dec, err := gomp3.NewDecoder(r)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrNotMP3File, err)
	}

	return newSource(dec), nil
}
