// SPDX-License-Identifier: EPL-2.0

package cli

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"
)

func regionsCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "regions [map.sfz]",
		Short: "Print the regions of an SFZ region map",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			m, err := a.engine().LoadRegionMap(args[0])
			if err != nil {
				return err
			}

			tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			printf(tw, "#\tSAMPLE\tKEYS\tCENTER\tOFFSET\tEND\tLOOP\tRELEASE\n")
			for i, r := range m.Regions {
				printf(tw, "%d\t%s\t%d-%d\t%d\t%d\t%d\t%s\t%gs\n",
					i, r.Sample, r.LowKey, r.HighKey, r.PitchKeyCenter,
					r.StartIndex, r.EndIndex, r.Loop, r.Envelope.Release)
			}
			if err := tw.Flush(); err != nil {
				return fmt.Errorf("writing table: %w", err)
			}

			printf(cmd.OutOrStdout(), "%d regions, %d samples\n", m.Len(), len(m.Samples()))

			return nil
		},
	}
}
