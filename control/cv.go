// SPDX-License-Identifier: EPL-2.0

package control

// CV is a bipolar control voltage normalized to [-1, 1], where 1 stands for
// +5 V at the jack.
type CV struct {
	value float32
}

// Set stores v clamped to [-1, 1].
func (c *CV) Set(v float32) { c.value = min(max(v, -1), 1) }

func (c *CV) Value() float32 { return c.value }

// VoctCalibration maps a normalized CV reading to a note number as
// note = v*Scale + Offset.
type VoctCalibration struct {
	Scale  float32
	Offset float32
}

// DefaultVoct tracks 1 V/octave over the ±5 V range with 0 V at middle C.
func DefaultVoct() VoctCalibration {
	return VoctCalibration{Scale: 60, Offset: 60}
}

// ProcessInput converts a CV reading to a note number.
func (c VoctCalibration) ProcessInput(v float32) float32 {
	return v*c.Scale + c.Offset
}

// Voltage is the inverse of ProcessInput: the reading that plays note.
func (c VoctCalibration) Voltage(note float32) float32 {
	if c.Scale == 0 {
		return 0
	}

	return (note - c.Offset) / c.Scale
}
