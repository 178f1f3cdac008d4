// SPDX-License-Identifier: EPL-2.0

package utils

import "math"

// ReferenceNote is the MIDI note number tuned to ReferenceFrequency (A4).
const (
	ReferenceNote      = 69
	ReferenceFrequency = 440.0
)

// NoteToFrequency converts a (fractional) MIDI note number to Hz using
// equal temperament.
func NoteToFrequency(note float32) float32 {
	return ReferenceFrequency * float32(math.Exp2(float64(note-ReferenceNote)/12))
}

// FrequencyToNote is the inverse of NoteToFrequency.
func FrequencyToNote(freq float32) float32 {
	if freq <= 0 {
		return 0
	}

	return ReferenceNote + 12*float32(math.Log2(float64(freq)/ReferenceFrequency))
}
