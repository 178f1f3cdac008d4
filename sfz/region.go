// SPDX-License-Identifier: EPL-2.0

package sfz

// Envelope holds the amplitude envelope opcodes of a region. Times are in
// seconds, Start and Sustain are levels in [0, 1].
type Envelope struct {
	Start   float32
	Delay   float32
	Attack  float32
	Hold    float32
	Decay   float32
	Sustain float32
	Release float32
}

// DefaultEnvelope passes the signal through while the gate is held and
// fades out over one millisecond when it clears.
func DefaultEnvelope() Envelope {
	return Envelope{Sustain: 1, Release: 0.001}
}

// LoopMode controls what playback does at the end of the region.
type LoopMode int

const (
	// NoLoop plays once and stops at the end, or earlier on gate release.
	NoLoop LoopMode = iota
	// OneShot plays once to the end.
	OneShot
	// LoopContinuous wraps back to the start until stopped.
	LoopContinuous
)

func (m LoopMode) String() string {
	switch m {
	case OneShot:
		return "one_shot"
	case LoopContinuous:
		return "loop_continuous"
	default:
		return "no_loop"
	}
}

// Region maps an inclusive key range to a sample file.
type Region struct {
	LowKey         int
	HighKey        int
	PitchKeyCenter int

	// StartIndex is the first sample played after a trigger.
	StartIndex int
	// EndIndex is the last playable sample, 0 meaning the end of the file.
	EndIndex int

	Sample   string
	Loop     LoopMode
	Envelope Envelope
}

// DefaultRegion is the template a fresh group starts from.
func DefaultRegion() Region {
	return Region{
		LowKey:         0,
		HighKey:        127,
		PitchKeyCenter: 60,
		Envelope:       DefaultEnvelope(),
	}
}

// Contains reports whether key falls in the region's key range.
func (r Region) Contains(key int) bool {
	return key >= r.LowKey && key <= r.HighKey
}

// RegionMap is the ordered list of regions in declaration order.
// Key ranges may overlap.
type RegionMap struct {
	Regions []Region
}

// Len returns the number of regions.
func (m *RegionMap) Len() int { return len(m.Regions) }

// Find returns the first region, in declaration order, whose range contains key.
func (m *RegionMap) Find(key int) (Region, bool) {
	for _, r := range m.Regions {
		if r.Contains(key) {
			return r, true
		}
	}

	return Region{}, false
}

// Samples lists each referenced sample file once, in first-use order.
func (m *RegionMap) Samples() []string {
	seen := make(map[string]struct{}, len(m.Regions))
	var out []string

	for _, r := range m.Regions {
		if r.Sample == "" {
			continue
		}
		if _, ok := seen[r.Sample]; ok {
			continue
		}
		seen[r.Sample] = struct{}{}
		out = append(out, r.Sample)
	}

	return out
}
