// SPDX-License-Identifier: EPL-2.0

package voice

import "github.com/ik5/romple/arena"

// TriggerVoice plays a buffer once from the start on every trigger edge.
// There is no pitch control, interpolation or envelope. Multi-channel
// buffers play their first channel.
type TriggerVoice struct {
	gate Gate

	data     []float32
	channels int
	frames   int

	playing bool
	next    int
}

func NewTriggerVoice(buf arena.Buffer, gate Gate) *TriggerVoice {
	if gate == nil {
		gate = noGate{}
	}

	v := &TriggerVoice{gate: gate}
	v.Load(buf)

	return v
}

// Load swaps in a new buffer and stops playback.
func (v *TriggerVoice) Load(buf arena.Buffer) {
	v.channels = max(buf.Channels, 1)
	v.data = buf.Samples()
	v.frames = len(v.data) / v.channels
	v.playing = false
	v.next = 0
}

func (v *TriggerVoice) Unload() { v.Load(arena.Buffer{}) }

func (v *TriggerVoice) Playing() bool { return v.playing }

func (v *TriggerVoice) Process() float32 {
	if v.gate.Trig() {
		v.playing = v.frames > 0
		v.next = 0
	}

	if !v.playing {
		return 0
	}

	s := v.data[v.next*v.channels]
	v.next++
	if v.next >= v.frames {
		v.playing = false
	}

	return s
}
