// SPDX-License-Identifier: EPL-2.0

package audiotest

import (
	"errors"
	"io"
	"testing"

	"github.com/ik5/romple/audio"
)

var _ audio.Source = (*MockSource)(nil)
var _ audio.Decoder = (*Decoder)(nil)

func TestMockSource_Ramp(t *testing.T) {
	t.Parallel()

	src := NewRampSource(8000, 2, 3)
	dst := make([]float32, 16)

	n, err := src.ReadSamples(dst)
	if !errors.Is(err, io.EOF) {
		t.Fatalf("ReadSamples() error = %v, want io.EOF", err)
	}

	want := []float32{0, 0, 1, 1, 2, 2}
	if n != len(want) {
		t.Fatalf("ReadSamples() n = %d, want %d", n, len(want))
	}
	for i, v := range want {
		if dst[i] != v {
			t.Errorf("dst[%d] = %v, want %v", i, dst[i], v)
		}
	}
}

func TestMockSource_FailAfter(t *testing.T) {
	t.Parallel()

	src := NewConstantSource(8000, 1, 100, 0.5).FailAfter(4)
	dst := make([]float32, 3)

	total := 0
	var err error
	for err == nil {
		var n int
		n, err = src.ReadSamples(dst)
		total += n
	}

	if total != 4 {
		t.Errorf("read %d samples before failing, want 4", total)
	}
	if !errors.Is(err, audio.ErrStorage) || !errors.Is(err, ErrInjected) {
		t.Errorf("error = %v, want storage error wrapping ErrInjected", err)
	}
}

func TestDecoder_TracksSources(t *testing.T) {
	t.Parallel()

	d := &Decoder{New: func() *MockSource { return NewSilentSource(8000, 1, 10) }}

	for range 2 {
		src, err := d.Decode(nil)
		if err != nil {
			t.Fatalf("Decode() error = %v", err)
		}
		if err := src.Close(); err != nil {
			t.Fatalf("Close() error = %v", err)
		}
	}

	if len(d.Sources) != 2 {
		t.Fatalf("len(Sources) = %d, want 2", len(d.Sources))
	}
	if !d.Sources[0].Closed() {
		t.Error("source not closed")
	}

	d.Err = audio.ErrFormat
	if _, err := d.Decode(nil); !errors.Is(err, audio.ErrFormat) {
		t.Errorf("Decode() error = %v, want ErrFormat", err)
	}
}
