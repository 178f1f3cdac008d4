// SPDX-License-Identifier: EPL-2.0

package cli

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/ik5/romple/formats/wav"
	"github.com/ik5/romple/utils"
)

func renderCommand(a *app) *cobra.Command {
	var (
		output string
		pcm16  bool
	)

	cmd := &cobra.Command{
		Use:   "render",
		Short: "Run the configured voices offline and write a WAV file",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return a.render(output, pcm16)
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "romple.wav", "Output WAV file")
	cmd.Flags().Float64Var(&a.durationFlag, "duration", 0, "Render length in seconds, overriding the config")
	cmd.Flags().BoolVar(&pcm16, "pcm16", false, "Write 16-bit integer PCM instead of 32-bit float")

	return cmd
}

func (a *app) render(output string, pcm16 bool) error {
	a.applyDuration()

	r, err := a.rack()
	if err != nil {
		return err
	}

	started := time.Now()
	samples := r.Render()

	f, err := a.fs.Create(output)
	if err != nil {
		return fmt.Errorf("creating %s: %w", output, err)
	}

	if pcm16 {
		ints := make([]int16, len(samples))
		utils.Float32sToInt16(ints, samples)
		err = wav.WriteWAV16(f, a.cfg.SampleRate, r.Channels(), ints)
	} else {
		err = wav.WriteFloat32(f, a.cfg.SampleRate, r.Channels(), samples)
	}
	if err != nil {
		_ = f.Close()
		return fmt.Errorf("writing %s: %w", output, err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("closing %s: %w", output, err)
	}

	a.log.Info("render done",
		"output", output,
		"frames", r.Frames(),
		"channels", r.Channels(),
		"elapsed", time.Since(started))

	return nil
}
