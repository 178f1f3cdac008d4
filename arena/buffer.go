// SPDX-License-Identifier: EPL-2.0

package arena

import "time"

// Buffer is a non-owning view of one loaded waveform inside an Arena.
// The zero Buffer is unset and plays back as silence.
type Buffer struct {
	// Offset of the first sample, in bytes.
	Offset int
	// Length in samples. Interleaved channels count individually.
	Length int
	// Channels of the source data, kept interleaved.
	Channels int
	// SampleRate of the source data in Hz, 0 when unknown.
	SampleRate int

	data []float32
}

// Loaded reports whether the buffer holds sample data.
func (b Buffer) Loaded() bool { return b.Length > 0 && len(b.data) == b.Length }

// Samples returns the sample data of a bound buffer.
func (b Buffer) Samples() []float32 { return b.data }

// Duration of the buffer at its own sample rate.
func (b Buffer) Duration() time.Duration {
	if b.SampleRate <= 0 || b.Length == 0 {
		return 0
	}

	frames := b.Length / max(b.Channels, 1)

	return time.Duration(frames) * time.Second / time.Duration(b.SampleRate)
}

// Bind attaches the arena memory backing buf and returns the bound copy.
func (a *Arena) Bind(buf Buffer) Buffer {
	buf.data = a.Samples(buf)
	if buf.data == nil {
		buf.Length = 0
	}

	return buf
}
