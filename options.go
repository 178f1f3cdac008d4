// SPDX-License-Identifier: EPL-2.0

package romple

import (
	"log/slog"

	"github.com/spf13/afero"

	"github.com/ik5/romple/audio"
)

const (
	// DefaultArenaSize is the sample memory of an engine, in bytes.
	DefaultArenaSize = 64 << 20
	// DefaultVoices is the size of the voice bank.
	DefaultVoices = 2
	// DefaultSampleRate is the output rate in Hz.
	DefaultSampleRate = 48000
	// WorkspaceSize is the number of samples decoded per load block.
	WorkspaceSize = 1024
)

// Option configures an Engine.
type Option func(*config)

type config struct {
	arenaSize  int
	voices     int
	sampleRate int
	fs         afero.Fs
	logger     *slog.Logger
	observer   LoadObserver
	downmix    bool
	decoders   map[string]audio.Decoder
	controls   Controls
}

func defaultConfig() config {
	return config{
		arenaSize:  DefaultArenaSize,
		voices:     DefaultVoices,
		sampleRate: DefaultSampleRate,
		fs:         afero.NewOsFs(),
		logger:     slog.New(slog.DiscardHandler),
		decoders:   map[string]audio.Decoder{},
	}
}

// WithArenaSize sets the arena capacity in bytes.
func WithArenaSize(bytes int) Option {
	return func(c *config) {
		if bytes >= 0 {
			c.arenaSize = bytes
		}
	}
}

// WithFs sets the filesystem samples and region maps are read from.
func WithFs(fs afero.Fs) Option {
	return func(c *config) {
		if fs != nil {
			c.fs = fs
		}
	}
}

// WithLogger sets the logger used during loads. The default discards.
func WithLogger(l *slog.Logger) Option {
	return func(c *config) {
		if l != nil {
			c.logger = l
		}
	}
}

// WithVoices sets the number of voice slots.
func WithVoices(n int) Option {
	return func(c *config) {
		if n >= 0 {
			c.voices = n
		}
	}
}

// WithSampleRate sets the output sample rate in Hz.
func WithSampleRate(hz int) Option {
	return func(c *config) {
		if hz > 0 {
			c.sampleRate = hz
		}
	}
}

// WithObserver reports load results and arena usage to o.
func WithObserver(o LoadObserver) Option {
	return func(c *config) { c.observer = o }
}

// WithDownmix averages multi-channel files to mono while loading.
func WithDownmix(on bool) Option {
	return func(c *config) { c.downmix = on }
}

// WithDecoder registers d for files with the given extension, replacing any
// built-in decoder for it.
func WithDecoder(format string, d audio.Decoder) Option {
	return func(c *config) {
		if d != nil {
			c.decoders[format] = d
		}
	}
}

// WithControls sets the control source polled once per tick, before the
// voices run.
func WithControls(ctl Controls) Option {
	return func(c *config) { c.controls = ctl }
}
