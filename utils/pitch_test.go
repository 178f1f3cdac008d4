// SPDX-License-Identifier: EPL-2.0

package utils

import (
	"math"
	"testing"
)

func TestNoteToFrequency(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		note float32
		want float32
	}{
		{"A4", 69, 440},
		{"A5", 81, 880},
		{"A3", 57, 220},
		{"C4", 60, 261.6256},
		{"quarter tone above A4", 69.5, 452.8930},
		{"C-1", 0, 8.175799},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got := NoteToFrequency(tt.note)
			if math.Abs(float64(got-tt.want)) > 1e-3*float64(tt.want) {
				t.Errorf("NoteToFrequency(%v) = %v, want %v", tt.note, got, tt.want)
			}
		})
	}
}

func TestNoteToFrequency_Octaves(t *testing.T) {
	t.Parallel()

	for note := float32(0); note < 115; note += 0.5 {
		ratio := NoteToFrequency(note+12) / NoteToFrequency(note)
		if math.Abs(float64(ratio-2)) > 1e-5 {
			t.Errorf("octave ratio at note %v = %v, want 2", note, ratio)
		}
	}
}

func TestFrequencyToNote(t *testing.T) {
	t.Parallel()

	for _, note := range []float32{0, 24, 60, 69, 72.25, 127} {
		got := FrequencyToNote(NoteToFrequency(note))
		if math.Abs(float64(got-note)) > 1e-3 {
			t.Errorf("FrequencyToNote(NoteToFrequency(%v)) = %v", note, got)
		}
	}

	if got := FrequencyToNote(0); got != 0 {
		t.Errorf("FrequencyToNote(0) = %v, want 0", got)
	}
}

func TestNoteToFrequency_ZeroAllocs(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping allocation test in short mode")
	}

	allocs := testing.AllocsPerRun(1000, func() {
		_ = NoteToFrequency(60.5)
	})

	if allocs > 0 {
		t.Errorf("NoteToFrequency allocated %v times, want 0", allocs)
	}
}

func BenchmarkNoteToFrequency(b *testing.B) {
	var result float32

	b.ReportAllocs()

	for i := range b.N {
		result = NoteToFrequency(float32(i % 128))
	}

	_ = result
}
