// SPDX-License-Identifier: EPL-2.0

package voice

import (
	"fmt"
	"strings"
)

// Interpolation selects how a fractional play head is turned into a sample.
type Interpolation int

const (
	// Floor picks the sample at or before the play head.
	Floor Interpolation = iota
	// Linear blends the two samples around the play head.
	Linear
	// Cubic fits a Catmull-Rom spline through four neighbouring samples.
	Cubic
)

func (i Interpolation) String() string {
	switch i {
	case Floor:
		return "floor"
	case Linear:
		return "linear"
	case Cubic:
		return "cubic"
	default:
		return fmt.Sprintf("Interpolation(%d)", int(i))
	}
}

// ParseInterpolation reads a mode name as printed by String.
func ParseInterpolation(s string) (Interpolation, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "floor":
		return Floor, nil
	case "linear":
		return Linear, nil
	case "cubic":
		return Cubic, nil
	}

	return Floor, fmt.Errorf("unknown interpolation %q", s)
}
