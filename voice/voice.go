// SPDX-License-Identifier: EPL-2.0

package voice

// Voice is one playback channel of the engine. Process is called once per
// output sample from the audio tick and must not allocate.
type Voice interface {
	Process() float32
	Playing() bool
	// Unload drops every buffer reference. The voice stays silent until it
	// is loaded again.
	Unload()
}

// Gate is a digital trigger input.
type Gate interface {
	// Trig reports a rising edge on the current tick.
	Trig() bool
	// State reports whether the gate is held high.
	State() bool
}

// PitchInput supplies the raw pitch control value of the current tick.
type PitchInput interface {
	Value() float32
}

// Calibration turns a raw pitch control value into a note number.
type Calibration func(float32) float32

// Identity is the calibration used when none is given: the control value is
// already a note number.
func Identity(v float32) float32 { return v }

// ConstantPitch is a PitchInput that never changes.
type ConstantPitch float32

func (c ConstantPitch) Value() float32 { return float32(c) }

type noGate struct{}

func (noGate) Trig() bool  { return false }
func (noGate) State() bool { return false }
