// SPDX-License-Identifier: EPL-2.0

package voice

import (
	"math"

	"github.com/ik5/romple/sfz"
	"github.com/ik5/romple/utils"
)

// PitchOption configures a PitchVoice.
type PitchOption func(*PitchVoice)

// WithCalibration sets the function turning the pitch input into notes.
func WithCalibration(c Calibration) PitchOption {
	return func(v *PitchVoice) {
		if c != nil {
			v.calibrate = c
		}
	}
}

// WithInterpolation selects the read mode.
func WithInterpolation(i Interpolation) PitchOption {
	return func(v *PitchVoice) { v.interp = i }
}

// WithSampleRate sets the output rate in Hz. It converts envelope times to
// ticks and corrects for buffers recorded at another rate.
func WithSampleRate(rate int) PitchOption {
	return func(v *PitchVoice) { v.rate = float32(max(rate, 0)) }
}

// WithLoop forces looping on or off for every zone, overriding the region's
// loop_mode.
func WithLoop(loop bool) PitchOption {
	return func(v *PitchVoice) {
		v.loopSet = true
		v.loopForced = loop
	}
}

// PitchVoice plays an instrument, choosing the zone from the pitch input on
// every trigger and transposing it to follow the pitch while it plays.
// Multi-channel buffers play their first channel.
type PitchVoice struct {
	inst      Instrument
	gate      Gate
	pitch     PitchInput
	calibrate Calibration
	interp    Interpolation
	rate      float32

	loopSet    bool
	loopForced bool

	// state of the zone being played
	data     []float32
	channels int
	start    int
	end      int
	loop     bool
	oneShot  bool
	baseFreq float32
	ratio    float32

	env      Envelope
	playHead float64
	playing  bool
}

func NewPitchVoice(inst Instrument, gate Gate, pitch PitchInput, opts ...PitchOption) *PitchVoice {
	if gate == nil {
		gate = noGate{}
	}
	if pitch == nil {
		pitch = ConstantPitch(60)
	}

	v := &PitchVoice{
		inst:      inst,
		gate:      gate,
		pitch:     pitch,
		calibrate: Identity,
	}

	for _, opt := range opts {
		opt(v)
	}

	return v
}

// Load swaps in a new instrument and stops playback.
func (v *PitchVoice) Load(inst Instrument) {
	v.inst = inst
	v.stop()
}

func (v *PitchVoice) Unload() { v.Load(Instrument{}) }

func (v *PitchVoice) Playing() bool { return v.playing }

// PlayHead returns the current read position in frames.
func (v *PitchVoice) PlayHead() float64 { return v.playHead }

// Instrument returns the loaded instrument.
func (v *PitchVoice) Instrument() Instrument { return v.inst }

func (v *PitchVoice) Process() float32 {
	note := v.calibrate(v.pitch.Value())

	if v.gate.Trig() {
		v.trigger(note)
	}

	if !v.playing {
		return 0
	}

	speed := utils.NoteToFrequency(note) / v.baseFreq * v.ratio

	out := v.read()

	held := v.gate.State() || v.oneShot
	out *= v.env.Process(held)

	v.playHead += float64(speed)

	length := float64(v.end - v.start)
	if v.playHead >= float64(v.end) {
		if v.loop {
			v.playHead -= length
			if v.playHead >= float64(v.end) {
				v.playHead = float64(v.start) + math.Mod(v.playHead-float64(v.start), length)
			}
		} else {
			v.playing = false
		}
	}

	if v.env.Finished() {
		v.playing = false
	}

	return out
}

func (v *PitchVoice) trigger(note float32) {
	v.stop()

	key := int(math.Round(float64(note)))
	z := v.inst.Zone(key)
	if z == nil {
		return
	}

	start, end := z.Bounds()
	if end <= start {
		return
	}

	v.data = z.Buffer.Samples()
	v.channels = max(z.Buffer.Channels, 1)
	v.start = start
	v.end = end

	v.loop = z.Region.Loop == sfz.LoopContinuous
	if v.loopSet {
		v.loop = v.loopForced
	}
	v.oneShot = z.Region.Loop == sfz.OneShot && !v.loop

	v.baseFreq = utils.NoteToFrequency(float32(z.Region.PitchKeyCenter))
	v.ratio = 1
	if v.rate > 0 && z.Buffer.SampleRate > 0 {
		v.ratio = float32(z.Buffer.SampleRate) / v.rate
	}

	v.env = NewEnvelope(z.Region.Envelope, v.rate)
	v.env.Retrigger()

	v.playHead = float64(start)
	v.playing = true
}

func (v *PitchVoice) stop() {
	v.playing = false
	v.data = nil
}

func (v *PitchVoice) frame(i int) float32 {
	i = min(max(i, v.start), v.end-1)
	return v.data[i*v.channels]
}

func (v *PitchVoice) read() float32 {
	i := int(v.playHead)
	frac := float32(v.playHead - float64(i))

	switch v.interp {
	case Linear:
		return utils.LinearInterpolate(v.frame(i), v.frame(i+1), frac)
	case Cubic:
		return utils.CubicInterpolate(v.frame(i-1), v.frame(i), v.frame(i+1), v.frame(i+2), frac)
	default:
		return v.frame(i)
	}
}
