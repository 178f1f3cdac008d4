// SPDX-License-Identifier: EPL-2.0

package romple

// Load kinds passed to LoadObserver.
const (
	KindSample     = "sample"
	KindRegionMap  = "region_map"
	KindInstrument = "instrument"
)

// LoadObserver receives load outcomes and arena usage after every load and
// reset. Calls happen on the loading goroutine only.
type LoadObserver interface {
	ObserveLoad(kind string, res Result)
	ObserveArena(stats ArenaStats)
}

// ArenaStats is a snapshot of arena usage in bytes.
type ArenaStats struct {
	Capacity int
	Used     int
	Peak     int
}

// Controls is polled once per tick by Process.
type Controls interface {
	Process()
}
