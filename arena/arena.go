// SPDX-License-Identifier: EPL-2.0

package arena

import (
	"fmt"

	"github.com/ik5/romple/audio"
)

// SampleSize is the size in bytes of one stored sample.
const SampleSize = 4

// Arena is a fixed-capacity bump allocator for float32 sample data.
// Allocations only move forward; memory is given back all at once with Reset.
//
// An Arena is not safe for concurrent use. Allocation belongs to the load
// phase and must never run while voices are reading from the arena.
type Arena struct {
	mem  []float32
	next int // bytes
	peak int // bytes
}

// New creates an arena holding capacity bytes, rounded down to whole samples.
func New(capacity int) *Arena {
	return &Arena{
		mem: make([]float32, max(capacity, 0)/SampleSize),
	}
}

// Cap returns the arena capacity in bytes.
func (a *Arena) Cap() int { return len(a.mem) * SampleSize }

// Len returns the number of bytes handed out since the last Reset.
func (a *Arena) Len() int { return a.next }

// Remaining returns the number of bytes still available.
func (a *Arena) Remaining() int { return a.Cap() - a.next }

// Peak returns the high-water mark of Len. It survives Reset.
func (a *Arena) Peak() int { return a.peak }

// Allocate grants up to nBytes starting at the current offset. Requests are
// rounded up to a whole number of samples, and the grant is cut down to the
// remaining space. A short grant is how the arena reports that it is full;
// callers compare granted with what they asked for.
func (a *Arena) Allocate(nBytes int) (offset, granted int) {
	offset = a.next
	if nBytes <= 0 {
		return offset, 0
	}

	want := alignUp(nBytes)
	granted = min(want, a.Remaining())

	a.next += granted
	if a.next > a.peak {
		a.peak = a.next
	}

	return offset, granted
}

// AllocateSamples reserves n samples and returns them as a bound Buffer.
// When fewer fit, the partial Buffer is returned together with
// audio.ErrCapacity.
func (a *Arena) AllocateSamples(n int) (Buffer, error) {
	offset, granted := a.Allocate(n * SampleSize)
	buf := a.Bind(Buffer{Offset: offset, Length: granted / SampleSize})

	if buf.Length < n {
		return buf, fmt.Errorf("%w: requested %d samples, %d available",
			audio.ErrCapacity, n, buf.Length)
	}

	return buf, nil
}

// Samples returns the float view for buf. The slice aliases arena memory
// and is only meaningful until the next Reset.
func (a *Arena) Samples(buf Buffer) []float32 {
	start := buf.Offset / SampleSize
	end := start + buf.Length
	if buf.Length <= 0 || start < 0 || end > len(a.mem) {
		return nil
	}

	return a.mem[start:end:end]
}

// Rewind moves the allocation offset back to mark, a value previously
// returned by Len. Marks beyond the current offset are ignored.
func (a *Arena) Rewind(mark int) {
	if mark < 0 || mark > a.next {
		return
	}

	a.next = alignUp(mark)
}

// Reset releases every allocation. Memory is not cleared, so stale samples
// stay visible until they are overwritten. Every Buffer carved before Reset
// is invalid afterwards.
func (a *Arena) Reset() {
	a.next = 0
}

func alignUp(n int) int {
	return (n + SampleSize - 1) / SampleSize * SampleSize
}
