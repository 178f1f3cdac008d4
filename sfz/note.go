// SPDX-License-Identifier: EPL-2.0

package sfz

import (
	"strconv"
	"strings"
)

var noteOffsets = map[byte]int{
	'c': 0, 'd': 2, 'e': 4, 'f': 5, 'g': 7, 'a': 9, 'b': 11,
}

// parseKey reads a key number. Integers are decimal, leading zeros allowed;
// note names follow the c4 = 60 convention with '#' or 'b' accidentals.
func parseKey(s string) (int, error) {
	if v, err := strconv.ParseInt(s, 10, 16); err == nil {
		return int(v), nil
	}

	name := strings.ToLower(s)
	if len(name) < 2 {
		return 0, ErrInvalidValue
	}

	base, ok := noteOffsets[name[0]]
	if !ok {
		return 0, ErrInvalidValue
	}

	rest := name[1:]
	switch rest[0] {
	case '#':
		base++
		rest = rest[1:]
	case 'b':
		base--
		rest = rest[1:]
	}

	octave, err := strconv.Atoi(rest)
	if err != nil {
		return 0, ErrInvalidValue
	}

	return (octave+1)*12 + base, nil
}
