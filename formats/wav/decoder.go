// SPDX-License-Identifier: EPL-2.0

package wav

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"io"
	"math"

	gowav "github.com/go-audio/wav"
	"github.com/ik5/romple/audio"
)

const (
	formatPCM        = 1
	formatIEEEFloat  = 3
	defaultBlockSize = 1024 // samples
)

type source struct {
	r          io.Reader
	sampleRate int
	channels   int
	bitDepth   int
	float      bool
	buf        []byte
}

func (s *source) SampleRate() int { return s.sampleRate }
func (s *source) Channels() int   { return s.channels }
func (s *source) Close() error    { return nil }
func (s *source) BufSize() int    { return cap(s.buf) / (s.bitDepth / 8) }

// ReadSamples decodes up to len(dst) samples from the data chunk.
// 16-bit integers are scaled by 1/32768; 32-bit floats pass through.
func (s *source) ReadSamples(dst []float32) (int, error) {
	if len(dst) == 0 {
		return 0, nil
	}

	width := s.bitDepth / 8
	need := len(dst) * width
	if cap(s.buf) < need {
		s.buf = make([]byte, need)
	}
	s.buf = s.buf[:need]

	n, err := io.ReadFull(s.r, s.buf)
	switch err {
	case nil:
	case io.EOF, io.ErrUnexpectedEOF:
		err = io.EOF
	default:
		return 0, fmt.Errorf("%w: reading WAV data: %w", audio.ErrStorage, err)
	}

	samples := n / width
	if s.float {
		for i := range samples {
			dst[i] = math.Float32frombits(binary.LittleEndian.Uint32(s.buf[4*i:]))
		}
	} else {
		for i := range samples {
			v := int16(binary.LittleEndian.Uint16(s.buf[2*i:]))
			dst[i] = float32(v) / 32768.0
		}
	}

	return samples, err
}

// Decoder reads RIFF/WAVE files holding 16-bit PCM or 32-bit float data.
type Decoder struct{}

func (Decoder) Decode(r io.Reader) (audio.Source, error) {
	rs, ok := r.(io.ReadSeeker)
	if !ok {
		data, err := io.ReadAll(r)
		if err != nil {
			return nil, fmt.Errorf("%w: reading WAV data: %w", audio.ErrStorage, err)
		}
		rs = bytes.NewReader(data)
	}

	dec := gowav.NewDecoder(rs)
	if !dec.IsValidFile() {
		return nil, ErrNotWavFile
	}

	float, err := encoding(dec.WavAudioFormat, dec.BitDepth)
	if err != nil {
		return nil, err
	}

	if err := dec.FwdToPCM(); err != nil || dec.PCMChunk == nil {
		return nil, ErrUnsupportedWavChunks
	}

	return &source{
		r:          io.LimitReader(dec.PCMChunk, int64(dec.PCMChunk.Size)),
		sampleRate: int(dec.SampleRate),
		channels:   int(dec.NumChans),
		bitDepth:   int(dec.BitDepth),
		float:      float,
		buf:        make([]byte, defaultBlockSize*int(dec.BitDepth/8)),
	}, nil
}

// encoding reports whether the data is float, rejecting layouts the sampler
// does not import.
func encoding(format, bitDepth uint16) (bool, error) {
	switch format {
	case formatPCM:
		if bitDepth != 16 {
			return false, fmt.Errorf("%w: %d-bit PCM", ErrUnsupportedBitDepth, bitDepth)
		}
		return false, nil
	case formatIEEEFloat:
		if bitDepth != 32 {
			return false, fmt.Errorf("%w: %d-bit float", ErrUnsupportedBitDepth, bitDepth)
		}
		return true, nil
	default:
		return false, fmt.Errorf("%w: format tag %#x", ErrUnsupportedEncoding, format)
	}
}
