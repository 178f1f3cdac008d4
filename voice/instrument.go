// SPDX-License-Identifier: EPL-2.0

package voice

import (
	"github.com/ik5/romple/arena"
	"github.com/ik5/romple/sfz"
)

// Zone pairs a region with the buffer holding its sample.
type Zone struct {
	Region sfz.Region
	Buffer arena.Buffer
}

// Frames returns the number of sample frames in the zone's buffer.
func (z *Zone) Frames() int {
	return len(z.Buffer.Samples()) / max(z.Buffer.Channels, 1)
}

// Bounds returns the playable frame range [start, end) after clamping the
// region's offsets to the buffer. An empty range plays as silence.
func (z *Zone) Bounds() (start, end int) {
	frames := z.Frames()

	end = frames
	if z.Region.EndIndex > 0 {
		end = min(z.Region.EndIndex+1, frames)
	}
	start = min(max(z.Region.StartIndex, 0), end)

	return start, end
}

// Instrument is an ordered set of zones. Lookups pick the first zone whose
// key range holds the note.
type Instrument struct {
	Zones []Zone
}

// Single wraps one buffer as an instrument spanning every key, authored at
// middle C.
func Single(buf arena.Buffer) Instrument {
	r := sfz.DefaultRegion()

	return Instrument{Zones: []Zone{{Region: r, Buffer: buf}}}
}

// Zone returns the zone answering key, or nil.
func (in *Instrument) Zone(key int) *Zone {
	for i := range in.Zones {
		if in.Zones[i].Region.Contains(key) {
			return &in.Zones[i]
		}
	}

	return nil
}

// Loaded reports whether any zone has sample data.
func (in *Instrument) Loaded() bool {
	for i := range in.Zones {
		if in.Zones[i].Buffer.Loaded() {
			return true
		}
	}

	return false
}
