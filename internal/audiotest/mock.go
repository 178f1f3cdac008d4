// SPDX-License-Identifier: EPL-2.0

// Package audiotest provides synthetic sources and decoders for exercising
// the load path without real sample files.
package audiotest

import (
	"errors"
	"io"
	"math"

	"github.com/ik5/romple/audio"
)

// ErrInjected is returned by sources built with FailAfter.
var ErrInjected = errors.New("injected read failure")

// MockSource generates frames from a waveform function.
type MockSource struct {
	sampleRate int
	channels   int
	frames     int // total frames to generate
	generated  int
	failAfter  int // frames before ReadSamples fails, <0 never
	waveform   func(frame, channel int) float32
	closed     bool
}

// NewMockSource builds a source of frames frames. waveform is called for
// every frame and channel.
func NewMockSource(sampleRate, channels, frames int, waveform func(frame, channel int) float32) *MockSource {
	return &MockSource{
		sampleRate: sampleRate,
		channels:   max(channels, 1),
		frames:     frames,
		failAfter:  -1,
		waveform:   waveform,
	}
}

// NewRampSource counts up by one per frame, the same on every channel.
// Loaded data can then be checked against its own index.
func NewRampSource(sampleRate, channels, frames int) *MockSource {
	return NewMockSource(sampleRate, channels, frames, func(frame, _ int) float32 {
		return float32(frame)
	})
}

func NewSilentSource(sampleRate, channels, frames int) *MockSource {
	return NewConstantSource(sampleRate, channels, frames, 0)
}

func NewSineSource(sampleRate, channels, frames int, frequency float64) *MockSource {
	return NewMockSource(sampleRate, channels, frames, func(frame, _ int) float32 {
		t := float64(frame) / float64(sampleRate)
		return float32(math.Sin(2 * math.Pi * frequency * t))
	})
}

func NewConstantSource(sampleRate, channels, frames int, value float32) *MockSource {
	return NewMockSource(sampleRate, channels, frames, func(int, int) float32 {
		return value
	})
}

// FailAfter makes ReadSamples return ErrInjected, wrapped as a storage
// error, once n frames have been produced.
func (m *MockSource) FailAfter(n int) *MockSource {
	m.failAfter = n
	return m
}

func (m *MockSource) SampleRate() int { return m.sampleRate }
func (m *MockSource) Channels() int   { return m.channels }
func (m *MockSource) BufSize() int    { return 4096 }

func (m *MockSource) Close() error {
	m.closed = true
	return nil
}

// Closed reports whether Close was called.
func (m *MockSource) Closed() bool { return m.closed }

// Reset rewinds the source to its first frame.
func (m *MockSource) Reset() {
	m.generated = 0
	m.closed = false
}

func (m *MockSource) ReadSamples(dst []float32) (int, error) {
	if m.failAfter >= 0 && m.generated >= m.failAfter {
		return 0, errors.Join(audio.ErrStorage, ErrInjected)
	}
	if m.generated >= m.frames {
		return 0, io.EOF
	}

	limit := m.frames
	if m.failAfter >= 0 {
		limit = min(limit, m.failAfter)
	}
	n := min(len(dst)/m.channels, limit-m.generated)

	for f := range n {
		for ch := range m.channels {
			dst[f*m.channels+ch] = m.waveform(m.generated+f, ch)
		}
	}
	m.generated += n

	if m.generated >= m.frames {
		return n * m.channels, io.EOF
	}

	return n * m.channels, nil
}

// Decoder hands out a fresh source per Decode call, ignoring the reader.
// Sources it created are kept in Sources for inspection.
type Decoder struct {
	New     func() *MockSource
	Err     error
	Sources []*MockSource
}

func (d *Decoder) Decode(io.Reader) (audio.Source, error) {
	if d.Err != nil {
		return nil, d.Err
	}

	src := d.New()
	d.Sources = append(d.Sources, src)

	return src, nil
}
