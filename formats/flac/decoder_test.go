// SPDX-License-Identifier: EPL-2.0

package flac

import (
	"bytes"
	"encoding/binary"
	"errors"
	"io"
	"math"
	"testing"

	"github.com/ik5/romple/audio"
)

// mockFrames returns one prepared frame per Next call.
type mockFrames struct {
	frames [][]byte
	err    error
}

func (m *mockFrames) Next() ([]byte, error) {
	if len(m.frames) == 0 {
		if m.err != nil {
			return nil, m.err
		}
		return nil, io.EOF
	}

	f := m.frames[0]
	m.frames = m.frames[1:]

	return f, nil
}

func pcm16(values ...int16) []byte {
	b := make([]byte, 2*len(values))
	for i, v := range values {
		binary.LittleEndian.PutUint16(b[2*i:], uint16(v))
	}
	return b
}

func readAll(t *testing.T, src audio.Source, block int) []float32 {
	t.Helper()

	var out []float32
	buf := make([]float32, block)
	for {
		n, err := src.ReadSamples(buf)
		out = append(out, buf[:n]...)
		if errors.Is(err, io.EOF) {
			return out
		}
		if err != nil {
			t.Fatalf("ReadSamples() error = %v", err)
		}
	}
}

func TestDecoder_InvalidInput(t *testing.T) {
	t.Parallel()

	for _, data := range [][]byte{[]byte("RIFF....WAVEfmt "), nil} {
		_, err := Decoder{}.Decode(bytes.NewReader(data))
		if !errors.Is(err, ErrNotFlacFile) || !errors.Is(err, audio.ErrFormat) {
			t.Errorf("Decode(%q) error = %v, want ErrNotFlacFile", data, err)
		}
	}
}

func TestSource_PCM16(t *testing.T) {
	t.Parallel()

	dec := &mockFrames{frames: [][]byte{
		pcm16(0, 16384, -16384, math.MaxInt16),
		pcm16(math.MinInt16, 8192),
	}}
	src := newSource(dec, 44100, 2, 16)

	if src.SampleRate() != 44100 || src.Channels() != 2 {
		t.Fatalf("metadata = (%d, %d)", src.SampleRate(), src.Channels())
	}

	got := readAll(t, src, 3)
	want := []float32{0, 0.5, -0.5, 32767.0 / 32768, -1, 0.25}

	if len(got) != len(want) {
		t.Fatalf("got %d samples, want %d", len(got), len(want))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("sample %d = %v, want %v", i, got[i], want[i])
		}
	}
}

func TestSource_ReadsWholeFrames(t *testing.T) {
	t.Parallel()

	dec := &mockFrames{frames: [][]byte{pcm16(1, 2, 3, 4, 5, 6)}}
	src := newSource(dec, 8000, 2, 16)

	buf := make([]float32, 5)
	n, err := src.ReadSamples(buf)
	if err != nil || n != 4 {
		t.Fatalf("ReadSamples(5) = (%d, %v), want (4, nil)", n, err)
	}

	n, err = src.ReadSamples(buf)
	if n != 2 || !errors.Is(err, io.EOF) {
		t.Errorf("second read = (%d, %v), want (2, EOF)", n, err)
	}
}

func TestSource_WiderSamples(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		bits  int
		frame []byte
		want  []float32
	}{
		{
			name:  "24 bit",
			bits:  24,
			frame: []byte{0x00, 0x00, 0x40, 0x00, 0x00, 0xc0, 0xff, 0xff, 0xff},
			want:  []float32{0.5, -0.5, -1.0 / (1 << 23)},
		},
		{
			name:  "32 bit",
			bits:  32,
			frame: []byte{0x00, 0x00, 0x00, 0x40, 0x00, 0x00, 0x00, 0x80},
			want:  []float32{0.5, -1},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			src := newSource(&mockFrames{frames: [][]byte{tt.frame}}, 48000, 1, tt.bits)
			got := readAll(t, src, 16)

			if len(got) != len(tt.want) {
				t.Fatalf("got %v, want %v", got, tt.want)
			}
			for i := range tt.want {
				if got[i] != tt.want[i] {
					t.Errorf("sample %d = %v, want %v", i, got[i], tt.want[i])
				}
			}
		})
	}
}

func TestSource_ReadErrorIsStorageError(t *testing.T) {
	t.Parallel()

	dec := &mockFrames{frames: [][]byte{pcm16(100)}, err: errors.New("crc mismatch")}
	src := newSource(dec, 8000, 1, 16)

	buf := make([]float32, 4)
	n, err := src.ReadSamples(buf)
	if n != 1 {
		t.Errorf("n = %d, want the 1 sample decoded before the error", n)
	}
	if !errors.Is(err, audio.ErrStorage) {
		t.Errorf("err = %v, want ErrStorage", err)
	}
}

func TestSource_EmptyDst(t *testing.T) {
	t.Parallel()

	src := newSource(&mockFrames{}, 8000, 2, 16)

	n, err := src.ReadSamples(make([]float32, 1))
	if n != 0 || err != nil {
		t.Errorf("ReadSamples(1) on stereo = (%d, %v), want (0, nil)", n, err)
	}
}

func BenchmarkSource_ReadSamples(b *testing.B) {
	frame := pcm16(make([]int16, 4096)...)
	buf := make([]float32, 1024)

	b.ReportAllocs()
	for b.Loop() {
		src := newSource(&mockFrames{frames: [][]byte{frame}}, 48000, 2, 16)
		for {
			if _, err := src.ReadSamples(buf); err != nil {
				break
			}
		}
	}
}
