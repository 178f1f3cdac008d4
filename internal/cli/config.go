// SPDX-License-Identifier: EPL-2.0

package cli

import (
	"errors"
	"fmt"
	"math"

	"github.com/spf13/viper"

	"github.com/ik5/romple"
	"github.com/ik5/romple/control"
	"github.com/ik5/romple/voice"
)

// Voice kinds accepted in the config file.
const (
	KindPitch   = "pitch"
	KindTrigger = "trigger"
)

var ErrInvalidConfig = errors.New("invalid configuration")

// Config is the layout of the YAML config file.
type Config struct {
	ArenaSize   int     `mapstructure:"arena_size"`
	SampleRate  int     `mapstructure:"sample_rate"`
	BlockSize   int     `mapstructure:"block_size"`
	Downmix     bool    `mapstructure:"downmix"`
	Duration    float64 `mapstructure:"duration"`
	Tail        float64 `mapstructure:"tail"`
	LogLevel    string  `mapstructure:"log_level"`
	MetricsAddr string  `mapstructure:"metrics_addr"`

	Voices []VoiceConfig `mapstructure:"voices"`
}

// VoiceConfig describes one slot of the voice bank.
type VoiceConfig struct {
	Kind          string            `mapstructure:"kind"`
	Sample        string            `mapstructure:"sample"`
	SFZ           string            `mapstructure:"sfz"`
	Interpolation string            `mapstructure:"interpolation"`
	Loop          *bool             `mapstructure:"loop"`
	Calibration   CalibrationConfig `mapstructure:"calibration"`
	Script        []EventConfig     `mapstructure:"script"`
}

// CalibrationConfig maps normalized CV to notes. Zero values fall back to
// 1 V/octave with 0 V at middle C.
type CalibrationConfig struct {
	Scale  float32 `mapstructure:"scale"`
	Offset float32 `mapstructure:"offset"`
}

// EventConfig is one scripted gate change, At seconds into the run.
type EventConfig struct {
	At   float64  `mapstructure:"at"`
	Gate bool     `mapstructure:"gate"`
	Note *float32 `mapstructure:"note"`
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("arena_size", romple.DefaultArenaSize)
	v.SetDefault("sample_rate", romple.DefaultSampleRate)
	v.SetDefault("block_size", 4)
	v.SetDefault("tail", 1.0)
	v.SetDefault("log_level", "info")
}

// loadConfig reads the config file named by path, or looks for romple.yaml
// in the working directory when path is empty. A missing default file is
// not an error.
func loadConfig(v *viper.Viper, path string) (Config, error) {
	setDefaults(v)

	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName("romple")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if path != "" || !errors.As(err, &notFound) {
			return Config{}, fmt.Errorf("reading config: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("decoding config: %w", err)
	}

	return cfg, nil
}

func (c Config) validate() error {
	switch {
	case c.ArenaSize <= 0:
		return fmt.Errorf("%w: arena_size must be positive", ErrInvalidConfig)
	case c.SampleRate <= 0:
		return fmt.Errorf("%w: sample_rate must be positive", ErrInvalidConfig)
	case c.BlockSize <= 0:
		return fmt.Errorf("%w: block_size must be positive", ErrInvalidConfig)
	case c.Duration < 0 || c.Tail < 0:
		return fmt.Errorf("%w: duration and tail cannot be negative", ErrInvalidConfig)
	case len(c.Voices) == 0:
		return fmt.Errorf("%w: no voices configured", ErrInvalidConfig)
	}

	for i, vc := range c.Voices {
		if err := vc.validate(); err != nil {
			return fmt.Errorf("voice %d: %w", i, err)
		}
	}

	return nil
}

func (vc VoiceConfig) validate() error {
	if _, err := voice.ParseInterpolation(vc.Interpolation); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}

	switch vc.Kind {
	case KindTrigger:
		if vc.Sample == "" || vc.SFZ != "" {
			return fmt.Errorf("%w: trigger voice needs a sample and no sfz", ErrInvalidConfig)
		}
	case KindPitch:
		if (vc.Sample == "") == (vc.SFZ == "") {
			return fmt.Errorf("%w: pitch voice needs either a sample or an sfz", ErrInvalidConfig)
		}
	default:
		return fmt.Errorf("%w: unknown voice kind %q", ErrInvalidConfig, vc.Kind)
	}

	for _, ev := range vc.Script {
		if ev.At < 0 {
			return fmt.Errorf("%w: script event at %gs", ErrInvalidConfig, ev.At)
		}
	}

	return nil
}

func (vc VoiceConfig) calibration() control.VoctCalibration {
	if vc.Calibration.Scale == 0 {
		return control.DefaultVoct()
	}

	return control.VoctCalibration{Scale: vc.Calibration.Scale, Offset: vc.Calibration.Offset}
}

// events converts the script to ticks at rate.
func (vc VoiceConfig) events(rate int) []control.Event {
	out := make([]control.Event, 0, len(vc.Script))
	for _, ev := range vc.Script {
		e := control.Event{
			At:   int64(math.Round(ev.At * float64(rate))),
			Gate: ev.Gate,
		}
		if ev.Note != nil {
			e.Note, e.HasNote = *ev.Note, true
		}
		out = append(out, e)
	}

	return out
}
