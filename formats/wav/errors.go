// SPDX-License-Identifier: EPL-2.0

package wav

import (
	"errors"
	"fmt"

	"github.com/ik5/romple/audio"
)

var (
	ErrNotWavFile           = fmt.Errorf("%w: not a WAV file", audio.ErrFormat)
	ErrUnsupportedWavChunks = fmt.Errorf("%w: unsupported WAV chunks", audio.ErrFormat)
	ErrUnsupportedEncoding  = fmt.Errorf("%w: unsupported WAV encoding", audio.ErrFormat)
	ErrUnsupportedBitDepth  = fmt.Errorf("%w: unsupported WAV bit depth", audio.ErrFormat)

	ErrInvalidChannels = errors.New("channel count must be positive")
)
