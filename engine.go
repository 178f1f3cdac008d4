// SPDX-License-Identifier: EPL-2.0

package romple

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/spf13/afero"

	"github.com/ik5/romple/arena"
	"github.com/ik5/romple/audio"
	"github.com/ik5/romple/formats/aiff"
	"github.com/ik5/romple/formats/flac"
	"github.com/ik5/romple/formats/mp3"
	"github.com/ik5/romple/formats/vorbis"
	"github.com/ik5/romple/formats/wav"
	"github.com/ik5/romple/voice"
)

// ErrVoiceID is returned for a voice slot outside the bank.
var ErrVoiceID = errors.New("voice id out of range")

// Engine holds the sample arena, the decoders that fill it and the bank of
// voices that play from it.
//
// Loads and ResetArena belong to the setup phase and must not run
// concurrently with Process.
type Engine struct {
	arena      *arena.Arena
	registry   *audio.Registry
	fs         afero.Fs
	log        *slog.Logger
	observer   LoadObserver
	downmix    bool
	sampleRate int
	controls   Controls

	workspace []float32
	voices    []voice.Voice
}

func New(opts ...Option) *Engine {
	cfg := defaultConfig()
	for _, opt := range opts {
		if opt != nil {
			opt(&cfg)
		}
	}

	e := &Engine{
		arena:      arena.New(cfg.arenaSize),
		registry:   defaultRegistry(),
		fs:         cfg.fs,
		log:        cfg.logger.With("module", "romple"),
		observer:   cfg.observer,
		downmix:    cfg.downmix,
		sampleRate: cfg.sampleRate,
		controls:   cfg.controls,
		workspace:  make([]float32, WorkspaceSize),
		voices:     make([]voice.Voice, cfg.voices),
	}

	for format, d := range cfg.decoders {
		e.registry.Register(format, d)
	}

	e.log.Debug("engine ready",
		"arena_bytes", e.arena.Cap(),
		"voices", len(e.voices),
		"sample_rate", e.sampleRate,
		"formats", e.registry.Formats())

	return e
}

func defaultRegistry() *audio.Registry {
	r := audio.NewRegistry()
	r.Register("wav", wav.Decoder{})
	r.Register("wave", wav.Decoder{})
	r.Register("aif", aiff.Decoder{})
	r.Register("aiff", aiff.Decoder{})
	r.Register("flac", flac.Decoder{})
	r.Register("mp3", mp3.Decoder{})
	r.Register("ogg", vorbis.Decoder{})

	return r
}

// SampleRate returns the output rate in Hz.
func (e *Engine) SampleRate() int { return e.sampleRate }

// Formats lists the file extensions the engine can load.
func (e *Engine) Formats() []string { return e.registry.Formats() }

// Stats reports current arena usage.
func (e *Engine) Stats() ArenaStats {
	return ArenaStats{
		Capacity: e.arena.Cap(),
		Used:     e.arena.Len(),
		Peak:     e.arena.Peak(),
	}
}

// NumVoices returns the size of the voice bank.
func (e *Engine) NumVoices() int { return len(e.voices) }

// Voice returns the voice in slot id, or nil when the slot is empty or out
// of range.
func (e *Engine) Voice(id int) voice.Voice {
	if id < 0 || id >= len(e.voices) {
		return nil
	}

	return e.voices[id]
}

// SetVoice places v in slot id. A nil v empties the slot.
func (e *Engine) SetVoice(id int, v voice.Voice) error {
	if id < 0 || id >= len(e.voices) {
		return fmt.Errorf("%w: %d of %d", ErrVoiceID, id, len(e.voices))
	}

	e.voices[id] = v

	return nil
}

// ResetArena releases every sample buffer and unloads every voice in the
// bank. Buffers obtained before the call must not be used again.
func (e *Engine) ResetArena() {
	e.arena.Reset()

	for _, v := range e.voices {
		if v != nil {
			v.Unload()
		}
	}

	e.log.Info("arena reset", "peak_bytes", e.arena.Peak())
	e.observeArena()
}

// Process runs one block. Every voice runs once per tick; voice i writes
// into out[i]. The block length is len(out[0]); outputs without a voice
// are zeroed.
func (e *Engine) Process(out [][]float32) {
	if len(out) == 0 {
		return
	}

	n := len(out[0])
	for i := range n {
		if e.controls != nil {
			e.controls.Process()
		}

		for id, v := range e.voices {
			var s float32
			if v != nil {
				s = v.Process()
			}
			if id < len(out) && i < len(out[id]) {
				out[id][i] = s
			}
		}

		for id := len(e.voices); id < len(out); id++ {
			if i < len(out[id]) {
				out[id][i] = 0
			}
		}
	}
}

func (e *Engine) observeLoad(kind string, err error) {
	if e.observer == nil {
		return
	}

	e.observer.ObserveLoad(kind, ResultOf(err))
	e.observeArena()
}

func (e *Engine) observeArena() {
	if e.observer != nil {
		e.observer.ObserveArena(e.Stats())
	}
}
