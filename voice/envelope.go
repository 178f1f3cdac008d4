// SPDX-License-Identifier: EPL-2.0

package voice

import "github.com/ik5/romple/sfz"

type stage uint8

const (
	stageIdle stage = iota
	stageDelay
	stageAttack
	stageHold
	stageDecay
	stageSustain
	stageRelease
	stageDone
)

// Envelope is a linear DAHDSR amplitude envelope advanced once per tick.
// Stage lengths are whole ticks; a stage of length zero is skipped within
// the same tick, so the default parameters pass the signal straight through
// while the gate is held.
type Envelope struct {
	start   float32
	sustain float32

	delay, attack, hold, decay, release int

	stage       stage
	pos         int
	level       float32
	releaseFrom float32
}

// NewEnvelope converts envelope parameters in seconds to ticks at rate.
func NewEnvelope(p sfz.Envelope, rate float32) Envelope {
	ticks := func(sec float32) int {
		if sec <= 0 || rate <= 0 {
			return 0
		}
		return int(sec*rate + 0.5)
	}

	return Envelope{
		start:   clamp01(p.Start),
		sustain: clamp01(p.Sustain),
		delay:   ticks(p.Delay),
		attack:  ticks(p.Attack),
		hold:    ticks(p.Hold),
		decay:   ticks(p.Decay),
		release: ticks(p.Release),
	}
}

// Retrigger restarts the envelope from its first stage.
func (e *Envelope) Retrigger() {
	e.stage = stageDelay
	e.pos = 0
	e.level = e.start
}

// Finished reports whether the release has run out.
func (e *Envelope) Finished() bool { return e.stage == stageDone }

// Level returns the last value produced by Process.
func (e *Envelope) Level() float32 { return e.level }

// Process advances the envelope by one tick. While gate is held the
// envelope runs towards sustain; once it drops the release starts from the
// current level.
func (e *Envelope) Process(gate bool) float32 {
	if !gate && e.stage > stageIdle && e.stage < stageRelease {
		e.releaseFrom = e.level
		e.enter(stageRelease)
	}

	for {
		switch e.stage {
		case stageIdle, stageDone:
			e.level = 0
			return 0

		case stageDelay:
			if e.pos < e.delay {
				e.pos++
				e.level = e.start
				return e.level
			}
			e.enter(stageAttack)

		case stageAttack:
			if e.pos < e.attack {
				e.pos++
				e.level = e.start + (1-e.start)*float32(e.pos)/float32(e.attack)
				return e.level
			}
			e.enter(stageHold)

		case stageHold:
			if e.pos < e.hold {
				e.pos++
				e.level = 1
				return e.level
			}
			e.enter(stageDecay)

		case stageDecay:
			if e.pos < e.decay {
				e.pos++
				e.level = 1 - (1-e.sustain)*float32(e.pos)/float32(e.decay)
				return e.level
			}
			e.enter(stageSustain)

		case stageSustain:
			e.level = e.sustain
			return e.level

		case stageRelease:
			if e.pos < e.release {
				e.pos++
				e.level = e.releaseFrom * (1 - float32(e.pos)/float32(e.release))
				return e.level
			}
			e.enter(stageDone)
		}
	}
}

func (e *Envelope) enter(s stage) {
	e.stage = s
	e.pos = 0
}

func clamp01(v float32) float32 {
	return min(max(v, 0), 1)
}
