// SPDX-License-Identifier: EPL-2.0

package cli

import (
	"github.com/spf13/cobra"
)

func inspectCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "inspect [sample]",
		Short: "Load one sample and print its buffer and the arena usage",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			eng := a.engine()

			buf, err := eng.LoadSample(args[0])
			if err != nil {
				return err
			}

			var peak float32
			for _, s := range buf.Samples() {
				peak = max(peak, s, -s)
			}

			stats := eng.Stats()
			w := cmd.OutOrStdout()
			printf(w, "file:        %s\n", args[0])
			printf(w, "channels:    %d\n", buf.Channels)
			printf(w, "sample rate: %d Hz\n", buf.SampleRate)
			printf(w, "samples:     %d\n", buf.Length)
			printf(w, "duration:    %s\n", buf.Duration())
			printf(w, "peak:        %.4f\n", peak)
			printf(w, "offset:      %d\n", buf.Offset)
			printf(w, "arena:       %d / %d bytes\n", stats.Used, stats.Capacity)

			return nil
		},
	}
}
