// SPDX-License-Identifier: EPL-2.0

package cli

import (
	"fmt"
	"log/slog"

	"github.com/spf13/afero"

	"github.com/ik5/romple"
	"github.com/ik5/romple/control"
	"github.com/ik5/romple/voice"
)

// Rack is an engine with its voices loaded from a Config and driven by
// scripted controls.
type Rack struct {
	Engine  *romple.Engine
	Scripts control.Group

	cfg Config
	// out holds one block per voice; view is out cut to the current block.
	out  [][]float32
	view [][]float32
}

// NewRack validates cfg, builds the engine and loads every voice.
func NewRack(cfg Config, fs afero.Fs, logger *slog.Logger, observer romple.LoadObserver) (*Rack, error) {
	if err := cfg.validate(); err != nil {
		return nil, err
	}

	scripts := make(control.Group, len(cfg.Voices))
	for i, vc := range cfg.Voices {
		scripts[i] = control.NewScript(vc.calibration(), vc.events(cfg.SampleRate))
	}

	opts := []romple.Option{
		romple.WithArenaSize(cfg.ArenaSize),
		romple.WithSampleRate(cfg.SampleRate),
		romple.WithVoices(len(cfg.Voices)),
		romple.WithFs(fs),
		romple.WithLogger(logger),
		romple.WithDownmix(cfg.Downmix),
		romple.WithControls(scripts),
	}
	if observer != nil {
		opts = append(opts, romple.WithObserver(observer))
	}

	r := &Rack{
		Engine:  romple.New(opts...),
		Scripts: scripts,
		cfg:     cfg,
		out:     make([][]float32, len(cfg.Voices)),
		view:    make([][]float32, len(cfg.Voices)),
	}
	for i := range r.out {
		r.out[i] = make([]float32, cfg.BlockSize)
	}

	for i, vc := range cfg.Voices {
		v, err := r.buildVoice(vc, scripts[i])
		if err != nil {
			return nil, fmt.Errorf("voice %d: %w", i, err)
		}
		if err := r.Engine.SetVoice(i, v); err != nil {
			return nil, err
		}
	}

	return r, nil
}

func (r *Rack) buildVoice(vc VoiceConfig, s *control.Script) (voice.Voice, error) {
	if vc.Kind == KindTrigger {
		buf, err := r.Engine.LoadSample(vc.Sample)
		if err != nil {
			return nil, err
		}
		return voice.NewTriggerVoice(buf, &s.Gate), nil
	}

	var inst voice.Instrument
	if vc.SFZ != "" {
		var err error
		if inst, err = r.Engine.LoadInstrument(vc.SFZ); err != nil {
			return nil, err
		}
	} else {
		buf, err := r.Engine.LoadSample(vc.Sample)
		if err != nil {
			return nil, err
		}
		inst = voice.Single(buf)
	}

	// validated in NewRack
	interp, _ := voice.ParseInterpolation(vc.Interpolation)

	opts := []voice.PitchOption{
		voice.WithInterpolation(interp),
		voice.WithSampleRate(r.cfg.SampleRate),
		voice.WithCalibration(s.Calibration().ProcessInput),
	}
	if vc.Loop != nil {
		opts = append(opts, voice.WithLoop(*vc.Loop))
	}

	return voice.NewPitchVoice(inst, &s.Gate, &s.CV, opts...), nil
}

// Channels is the number of output channels, one per voice.
func (r *Rack) Channels() int { return len(r.out) }

// Frames is the run length: the configured duration, or the last scripted
// event plus the tail.
func (r *Rack) Frames() int64 {
	rate := float64(r.cfg.SampleRate)
	if r.cfg.Duration > 0 {
		return int64(r.cfg.Duration * rate)
	}

	return r.Scripts.Length() + int64(r.cfg.Tail*rate)
}

// Fill renders frames into dst as interleaved samples, one block at a time.
// len(dst) should be a multiple of Channels. It returns the frames written.
func (r *Rack) Fill(dst []float32) int {
	channels := r.Channels()
	frames := len(dst) / channels
	block := len(r.out[0])

	for done := 0; done < frames; {
		n := min(block, frames-done)
		for i := range r.out {
			r.view[i] = r.out[i][:n]
		}

		r.Engine.Process(r.view)

		for f := range n {
			for ch := range channels {
				dst[(done+f)*channels+ch] = r.view[ch][f]
			}
		}
		done += n
	}

	return frames
}

// Render runs the whole configured length and returns interleaved samples.
func (r *Rack) Render() []float32 {
	buf := make([]float32, r.Frames()*int64(r.Channels()))
	r.Fill(buf)

	return buf
}
