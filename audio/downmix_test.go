// SPDX-License-Identifier: EPL-2.0

package audio_test

import (
	"errors"
	"io"
	"math"
	"testing"

	"github.com/ik5/romple/audio"
	"github.com/ik5/romple/internal/audiotest"
)

func TestDownmixer_MonoPassthrough(t *testing.T) {
	t.Parallel()

	src := audiotest.NewConstantSource(8000, 1, 100, 0.5)
	mixer := audio.NewDownmixer(src)

	if mixer.Channels() != 1 {
		t.Errorf("Downmixer.Channels() = %d, want 1", mixer.Channels())
	}

	buf := make([]float32, 10)
	n, err := mixer.ReadSamples(buf)
	if err != nil {
		t.Fatalf("ReadSamples() error = %v", err)
	}

	if n != 10 {
		t.Errorf("ReadSamples() n = %d, want 10", n)
	}

	for i := range n {
		if buf[i] != 0.5 {
			t.Errorf("buf[%d] = %v, want 0.5", i, buf[i])
		}
	}
}

func TestDownmixer_Channels(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		channels int
		want     float32
	}{
		{"stereo", 2, 0.5},
		{"three channels", 3, 1.0 / 3},
		{"quad", 4, 0.375},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			src := audiotest.NewMockSource(8000, tt.channels, 50, func(_, channel int) float32 {
				if tt.channels == 2 {
					return []float32{0.4, 0.6}[channel]
				}
				if tt.channels == 3 {
					return []float32{0, 1, 0}[channel]
				}
				return float32(channel) * 0.25
			})

			mixer := audio.NewDownmixer(src)
			buf := make([]float32, 8)

			n, err := mixer.ReadSamples(buf)
			if err != nil {
				t.Fatalf("ReadSamples() error = %v", err)
			}
			if n != 8 {
				t.Fatalf("ReadSamples() n = %d, want 8", n)
			}

			for i := range n {
				if math.Abs(float64(buf[i]-tt.want)) > 1e-6 {
					t.Errorf("buf[%d] = %v, want %v", i, buf[i], tt.want)
				}
			}
		})
	}
}

func TestDownmixer_EOF(t *testing.T) {
	t.Parallel()

	src := audiotest.NewConstantSource(8000, 2, 5, 0.25)
	mixer := audio.NewDownmixer(src)

	buf := make([]float32, 16)
	n, err := mixer.ReadSamples(buf)
	if n != 5 {
		t.Errorf("ReadSamples() n = %d, want 5", n)
	}
	if err != io.EOF {
		t.Errorf("ReadSamples() err = %v, want io.EOF", err)
	}

	n, err = mixer.ReadSamples(buf)
	if n != 0 || err != io.EOF {
		t.Errorf("ReadSamples() after EOF = (%d, %v), want (0, io.EOF)", n, err)
	}
}

func TestDownmixer_EmptyDst(t *testing.T) {
	t.Parallel()

	mixer := audio.NewDownmixer(audiotest.NewSilentSource(8000, 2, 10))

	n, err := mixer.ReadSamples(nil)
	if n != 0 || err != nil {
		t.Errorf("ReadSamples(nil) = (%d, %v), want (0, nil)", n, err)
	}
}

func TestDownmixer_ReadErrorKeepsFrames(t *testing.T) {
	t.Parallel()

	src := audiotest.NewConstantSource(8000, 2, 100, 0.5).FailAfter(3)
	mixer := audio.NewDownmixer(src)

	buf := make([]float32, 16)
	n, err := mixer.ReadSamples(buf)
	if n != 3 || err != nil {
		t.Fatalf("first read = (%d, %v), want (3, nil)", n, err)
	}

	_, err = mixer.ReadSamples(buf)
	if !errors.Is(err, audio.ErrStorage) || !errors.Is(err, audiotest.ErrInjected) {
		t.Errorf("second read err = %v, want injected storage error", err)
	}
}

func TestDownmixer_CloseClosesSource(t *testing.T) {
	t.Parallel()

	src := audiotest.NewSilentSource(8000, 2, 10)
	if err := audio.NewDownmixer(src).Close(); err != nil {
		t.Fatalf("Close() error = %v", err)
	}
	if !src.Closed() {
		t.Error("Close() did not close the underlying source")
	}
}

func BenchmarkDownmixer_Stereo(b *testing.B) {
	buf := make([]float32, 1024)

	b.ReportAllocs()

	for b.Loop() {
		mixer := audio.NewDownmixer(audiotest.NewSineSource(48000, 2, 1024, 440))
		for {
			_, err := mixer.ReadSamples(buf)
			if err == io.EOF {
				break
			}
		}
	}
}
