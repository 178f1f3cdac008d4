// SPDX-License-Identifier: EPL-2.0

// Package arena implements the sample memory pool: a fixed-capacity linear
// ("bump") allocator over one preallocated float32 block.
//
// Samples are carved out in load order and never freed one by one. The whole
// pool is recycled with Reset, typically when switching instruments:
//
//	pool := arena.New(64 << 20)
//	buf, err := pool.AllocateSamples(48000)
//	if errors.Is(err, audio.ErrCapacity) {
//	    // pool is full, buf holds only what fitted
//	}
//	buf = pool.Bind(buf)
//	copy(buf.Samples(), decoded)
//
//	pool.Reset() // every Buffer above is now invalid
//
// # Accounting
//
// Offsets and sizes are in bytes and always a multiple of SampleSize.
// Len never exceeds Cap: a request larger than the remaining space is granted
// exactly the remaining space.
package arena
