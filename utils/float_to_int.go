// SPDX-License-Identifier: EPL-2.0

package utils

// Float32ToInt16 clamps x to [-1, 1] and scales it to 16-bit PCM. Full
// scale maps to ±32767.
func Float32ToInt16(x float32) int16 {
	return int16(min(max(x, -1), 1) * 32767)
}

// Float32sToInt16 converts src into dst up to the shorter of the two and
// returns the number of samples written.
func Float32sToInt16(dst []int16, src []float32) int {
	n := min(len(dst), len(src))
	for i := range n {
		dst[i] = Float32ToInt16(src[i])
	}

	return n
}
