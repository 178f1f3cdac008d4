// SPDX-License-Identifier: EPL-2.0

package romple

import (
	"errors"

	"github.com/ik5/romple/audio"
)

// Result is the coarse outcome code of a load, for hosts that report status
// as a number.
type Result int

const (
	OK Result = iota
	// ErrFileRead means the file could not be opened or read.
	ErrFileRead
	// ErrGeneric covers every other failure: bad content, no space left.
	ErrGeneric
)

func (r Result) String() string {
	switch r {
	case OK:
		return "ok"
	case ErrFileRead:
		return "file_read"
	default:
		return "generic"
	}
}

// ResultOf classifies a load error.
func ResultOf(err error) Result {
	switch {
	case err == nil:
		return OK
	case errors.Is(err, audio.ErrStorage):
		return ErrFileRead
	default:
		return ErrGeneric
	}
}
