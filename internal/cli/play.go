// SPDX-License-Identifier: EPL-2.0

package cli

import (
	"encoding/binary"
	"fmt"
	"io"
	"math"
	"sync"
	"time"

	"github.com/ebitengine/oto/v3"
	"github.com/spf13/cobra"
)

func playCommand(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "play",
		Short: "Run the configured voices through the sound card",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return a.play(cmd)
		},
	}

	cmd.Flags().Float64Var(&a.durationFlag, "duration", 0, "Play length in seconds, overriding the config")

	return cmd
}

// rackReader streams a rack as interleaved float32 little-endian PCM, the
// layout oto pulls from its players.
type rackReader struct {
	mu      sync.Mutex
	rack    *Rack
	left    int64 // frames still to produce
	samples []float32
}

func newRackReader(r *Rack) *rackReader {
	return &rackReader{
		rack: r,
		left: r.Frames(),
	}
}

func (rr *rackReader) Read(p []byte) (int, error) {
	rr.mu.Lock()
	defer rr.mu.Unlock()

	if rr.left <= 0 {
		return 0, io.EOF
	}

	channels := rr.rack.Channels()
	frameBytes := 4 * channels

	frames := min(int64(len(p)/frameBytes), rr.left)
	if frames == 0 {
		return 0, nil
	}

	need := int(frames) * channels
	if cap(rr.samples) < need {
		rr.samples = make([]float32, need)
	}
	rr.samples = rr.samples[:need]

	rr.rack.Fill(rr.samples)
	for i, s := range rr.samples {
		binary.LittleEndian.PutUint32(p[4*i:], math.Float32bits(s))
	}
	rr.left -= frames

	return need * 4, nil
}

func (a *app) play(cmd *cobra.Command) error {
	a.applyDuration()

	r, err := a.rack()
	if err != nil {
		return err
	}

	ctx, ready, err := oto.NewContext(&oto.NewContextOptions{
		SampleRate:   a.cfg.SampleRate,
		ChannelCount: r.Channels(),
		Format:       oto.FormatFloat32LE,
	})
	if err != nil {
		return fmt.Errorf("opening audio device: %w", err)
	}
	<-ready

	player := ctx.NewPlayer(newRackReader(r))
	defer player.Close()

	a.log.Info("playing",
		"channels", r.Channels(),
		"sample_rate", a.cfg.SampleRate,
		"seconds", float64(r.Frames())/float64(a.cfg.SampleRate))

	player.Play()

	done := cmd.Context().Done()
	tick := time.NewTicker(50 * time.Millisecond)
	defer tick.Stop()

	for player.IsPlaying() {
		select {
		case <-done:
			a.log.Info("playback interrupted")
			return nil
		case <-tick.C:
		}
	}

	if err := player.Err(); err != nil {
		return fmt.Errorf("playback: %w", err)
	}

	return nil
}
