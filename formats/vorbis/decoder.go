// SPDX-License-Identifier: EPL-2.0

package vorbis

import (
	"errors"
	"fmt"
	"io"

	"github.com/ik5/romple/audio"
	"github.com/jfreymuth/oggvorbis"
)

const defaultBlockSize = 1024

// ErrNotVorbisFile indicates the stream is not Ogg Vorbis.
var ErrNotVorbisFile = fmt.Errorf("%w: not an Ogg Vorbis stream", audio.ErrFormat)

// valueReader is the part of oggvorbis.Reader the source needs.
type valueReader interface {
	SampleRate() int
	Channels() int
	Read([]float32) (int, error)
}

type source struct {
	dec valueReader
}

func (s *source) SampleRate() int { return s.dec.SampleRate() }
func (s *source) Channels() int   { return s.dec.Channels() }
func (s *source) Close() error    { return nil }
func (s *source) BufSize() int    { return defaultBlockSize }

// ReadSamples decodes straight into dst. The request is trimmed to whole
// frames because oggvorbis only returns complete frames.
func (s *source) ReadSamples(dst []float32) (int, error) {
	ch := max(s.dec.Channels(), 1)
	want := len(dst) - len(dst)%ch
	if want == 0 {
		return 0, nil
	}

	n, err := s.dec.Read(dst[:want])
	switch {
	case err == nil:
	case errors.Is(err, io.EOF):
		err = io.EOF
	default:
		return n, fmt.Errorf("%w: reading Vorbis packets: %w", audio.ErrStorage, err)
	}

	return n, err
}

// Decoder decodes Ogg Vorbis streams with github.com/jfreymuth/oggvorbis.
type Decoder struct{}

func (Decoder) Decode(r io.Reader) (audio.Source, error) {
	dec, err := oggvorbis.NewReader(r)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrNotVorbisFile, err)
	}

	return &source{dec: dec}, nil
}
