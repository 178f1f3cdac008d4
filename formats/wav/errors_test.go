// SPDX-License-Identifier: EPL-2.0

package wav

import (
	"errors"
	"testing"

	"github.com/ik5/romple/audio"
)

func TestErrors_WrapFormatError(t *testing.T) {
	t.Parallel()

	for _, err := range []error{
		ErrNotWavFile,
		ErrUnsupportedWavChunks,
		ErrUnsupportedEncoding,
		ErrUnsupportedBitDepth,
	} {
		if !errors.Is(err, audio.ErrFormat) {
			t.Errorf("errors.Is(%v, audio.ErrFormat) = false, want true", err)
		}
		if errors.Is(err, audio.ErrStorage) || errors.Is(err, audio.ErrCapacity) {
			t.Errorf("%v must only classify as a format error", err)
		}
	}
}

func TestErrors_Messages(t *testing.T) {
	t.Parallel()

	tests := []struct {
		err  error
		want string
	}{
		{ErrNotWavFile, "format error: not a WAV file"},
		{ErrUnsupportedWavChunks, "format error: unsupported WAV chunks"},
		{ErrUnsupportedEncoding, "format error: unsupported WAV encoding"},
		{ErrUnsupportedBitDepth, "format error: unsupported WAV bit depth"},
		{ErrInvalidChannels, "channel count must be positive"},
	}

	for _, tt := range tests {
		if tt.err.Error() != tt.want {
			t.Errorf("Error() = %q, want %q", tt.err.Error(), tt.want)
		}
	}
}
