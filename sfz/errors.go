// SPDX-License-Identifier: EPL-2.0

package sfz

import (
	"errors"
	"fmt"

	"github.com/ik5/romple/audio"
)

var (
	ErrUnterminatedHeader = errors.New("header has no closing '>'")
	ErrMissingValue       = errors.New("opcode has no '='")
	ErrInvalidValue       = errors.New("invalid opcode value")
	ErrLineTooLong        = errors.New("line too long")
)

// ParseError reports the line a region map stopped parsing at.
// It matches audio.ErrFormat with errors.Is.
type ParseError struct {
	Line int
	Err  error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("sfz: line %d: %v", e.Line, e.Err)
}

func (e *ParseError) Unwrap() []error {
	return []error{audio.ErrFormat, e.Err}
}
