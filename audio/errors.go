// SPDX-License-Identifier: EPL-2.0

package audio

import "errors"

var (
	ErrInvalidDstSize = errors.New("dst size must be multiple of channels")

	// ErrStorage marks a file that is missing or could not be read.
	ErrStorage = errors.New("storage error")
	// ErrFormat marks malformed or unsupported asset content.
	ErrFormat = errors.New("format error")
	// ErrCapacity marks sample data that does not fit in the remaining arena space.
	ErrCapacity = errors.New("capacity error")

	ErrUnknownFormat = errors.New("no decoder registered for format")
)
