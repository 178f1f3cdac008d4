// SPDX-License-Identifier: EPL-2.0

package utils

// LinearInterpolate blends y0 toward y1 by x, where 0 <= x <= 1.
func LinearInterpolate(y0, y1, x float32) float32 {
	return y0 + (y1-y0)*x
}

// CubicInterpolate evaluates the Catmull-Rom segment between y1 and y2 at
// x (0 <= x <= 1), using the neighbours y0 and y3 for the tangents. It
// returns y1 at x = 0 and y2 at x = 1.
func CubicInterpolate(y0, y1, y2, y3, x float32) float32 {
	a := -0.5*y0 + 1.5*y1 - 1.5*y2 + 0.5*y3
	b := y0 - 2.5*y1 + 2*y2 - 0.5*y3
	c := 0.5 * (y2 - y0)

	return ((a*x+b)*x+c)*x + y1
}
