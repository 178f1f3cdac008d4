// SPDX-License-Identifier: EPL-2.0

package flac

import (
	"fmt"

	"github.com/ik5/romple/audio"
)

var (
	ErrNotFlacFile = fmt.Errorf("%w: not a FLAC stream", audio.ErrFormat)

	// ErrUnsupportedBitDepth indicates a sample width other than 16, 24 or 32 bits.
	ErrUnsupportedBitDepth = fmt.Errorf("%w: unsupported FLAC bit depth", audio.ErrFormat)
)
