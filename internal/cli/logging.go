// SPDX-License-Identifier: EPL-2.0

package cli

import (
	"fmt"
	"io"
	"log/slog"
)

// newLogger builds the text logger shared by the engine and the commands.
func newLogger(w io.Writer, level string) (*slog.Logger, error) {
	var lvl slog.Level
	if err := lvl.UnmarshalText([]byte(level)); err != nil {
		return nil, fmt.Errorf("log level %q: %w", level, err)
	}

	handler := slog.NewTextHandler(w, &slog.HandlerOptions{Level: lvl})

	return slog.New(handler), nil
}
