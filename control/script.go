// SPDX-License-Identifier: EPL-2.0

package control

import (
	"cmp"
	"slices"
)

// Event changes a script's outputs at tick At. The gate is always set to
// Gate; the pitch CV only moves when HasNote is true.
type Event struct {
	At      int64
	Gate    bool
	Note    float32
	HasNote bool
}

// Script plays events into a gate and a pitch CV, one tick per Process call.
type Script struct {
	Gate Gate
	CV   CV

	calib  VoctCalibration
	events []Event
	next   int
	tick   int64
	level  bool
}

// NewScript orders events by tick. Events sharing a tick apply in the order
// given, so the last one wins.
func NewScript(calib VoctCalibration, events []Event) *Script {
	sorted := slices.Clone(events)
	slices.SortStableFunc(sorted, func(a, b Event) int {
		return cmp.Compare(a.At, b.At)
	})

	return &Script{calib: calib, events: sorted}
}

// Calibration returns the mapping a voice needs to read the script's CV back
// as notes.
func (s *Script) Calibration() VoctCalibration { return s.calib }

// Process applies the events due at the current tick, samples the gate and
// moves to the next tick.
func (s *Script) Process() {
	for s.next < len(s.events) && s.events[s.next].At <= s.tick {
		ev := s.events[s.next]
		s.level = ev.Gate
		if ev.HasNote {
			s.CV.Set(s.calib.Voltage(ev.Note))
		}
		s.next++
	}

	s.Gate.Set(s.level)
	s.tick++
}

// Tick returns the number of ticks processed so far.
func (s *Script) Tick() int64 { return s.tick }

// Done reports whether every event has been applied.
func (s *Script) Done() bool { return s.next >= len(s.events) }

// Length returns the tick of the last event, or 0 for an empty script.
func (s *Script) Length() int64 {
	if len(s.events) == 0 {
		return 0
	}

	return s.events[len(s.events)-1].At
}

// Rewind restarts the script from tick 0 with the gate low and the CV at 0.
func (s *Script) Rewind() {
	s.next = 0
	s.tick = 0
	s.level = false
	s.Gate = Gate{}
	s.CV = CV{}
}

// Group drives several scripts in lockstep.
type Group []*Script

func (g Group) Process() {
	for _, s := range g {
		s.Process()
	}
}

// Done reports whether every script has run out of events.
func (g Group) Done() bool {
	for _, s := range g {
		if !s.Done() {
			return false
		}
	}

	return true
}

// Length returns the longest script length in ticks.
func (g Group) Length() int64 {
	var n int64
	for _, s := range g {
		n = max(n, s.Length())
	}

	return n
}
