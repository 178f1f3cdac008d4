// SPDX-License-Identifier: EPL-2.0

package audio

import (
	"errors"
	"fmt"
	"testing"
)

func TestErrInvalidDstSize(t *testing.T) {
	t.Parallel()

	expectedMsg := "dst size must be multiple of channels"
	if ErrInvalidDstSize.Error() != expectedMsg {
		t.Errorf("ErrInvalidDstSize.Error() = %q, want %q", ErrInvalidDstSize.Error(), expectedMsg)
	}
}

func TestTaxonomyErrors_Distinct(t *testing.T) {
	t.Parallel()

	all := []error{ErrStorage, ErrFormat, ErrCapacity, ErrUnknownFormat, ErrInvalidDstSize}

	for i, a := range all {
		for j, b := range all {
			if i != j && errors.Is(a, b) {
				t.Errorf("errors.Is(%v, %v) = true, want false", a, b)
			}
		}
	}
}

func TestTaxonomyErrors_Wrapping(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		err    error
		target error
	}{
		{"storage", fmt.Errorf("opening kick.wav: %w", ErrStorage), ErrStorage},
		{"format", fmt.Errorf("%w: unsupported bit depth 24", ErrFormat), ErrFormat},
		{"capacity", fmt.Errorf("loading pad.wav: %w", ErrCapacity), ErrCapacity},
		{"joined", errors.Join(ErrFormat, errors.New("line 3")), ErrFormat},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			if !errors.Is(tt.err, tt.target) {
				t.Errorf("errors.Is(%v, %v) = false, want true", tt.err, tt.target)
			}
		})
	}
}
