// SPDX-License-Identifier: EPL-2.0

package cli

import (
	"bytes"
	"encoding/binary"
	"io"
	"log/slog"
	"math"
	"testing"

	"github.com/spf13/afero"
	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ik5/romple/audio"
	"github.com/ik5/romple/formats/wav"
)

const rackYAML = `
sample_rate: 1000
block_size: 4
arena_size: 4096
tail: 0.01
voices:
  - kind: trigger
    sample: kick.wav
    script:
      - {at: 0.005, gate: true}
  - kind: pitch
    sample: tone.wav
    interpolation: linear
    loop: true
    script:
      - {at: 0, gate: true, note: 60}
      - {at: 0.02, gate: false}
`

func writeFloatWAV(t *testing.T, fs afero.Fs, path string, samples ...float32) {
	t.Helper()

	var buf bytes.Buffer
	require.NoError(t, wav.WriteFloat32(&buf, 1000, 1, samples))
	require.NoError(t, afero.WriteFile(fs, path, buf.Bytes(), 0o644))
}

func testFs(t *testing.T) afero.Fs {
	t.Helper()

	fs := afero.NewMemMapFs()
	require.NoError(t, afero.WriteFile(fs, "romple.yaml", []byte(rackYAML), 0o644))
	writeFloatWAV(t, fs, "kick.wav", 0.5, 0.25)
	writeFloatWAV(t, fs, "tone.wav", 0.1, 0.1, 0.1, 0.1)

	return fs
}

func testConfig(t *testing.T, fs afero.Fs) Config {
	t.Helper()

	v := viper.New()
	v.SetFs(fs)
	cfg, err := loadConfig(v, "romple.yaml")
	require.NoError(t, err)

	return cfg
}

func discard() *slog.Logger { return slog.New(slog.DiscardHandler) }

func run(t *testing.T, fs afero.Fs, args ...string) (string, error) {
	t.Helper()

	var out, errOut bytes.Buffer
	cmd := RootCommand(fs)
	cmd.SetArgs(args)
	cmd.SetOut(&out)
	cmd.SetErr(&errOut)

	err := cmd.Execute()

	return out.String(), err
}

func TestLoadConfig(t *testing.T) {
	t.Parallel()

	cfg := testConfig(t, testFs(t))

	assert.Equal(t, 1000, cfg.SampleRate)
	assert.Equal(t, 4, cfg.BlockSize)
	assert.Equal(t, 4096, cfg.ArenaSize)
	assert.Equal(t, "info", cfg.LogLevel)
	require.Len(t, cfg.Voices, 2)

	trig := cfg.Voices[0]
	assert.Equal(t, KindTrigger, trig.Kind)
	assert.Nil(t, trig.Loop)
	require.Len(t, trig.Script, 1)
	assert.Nil(t, trig.Script[0].Note)

	pitch := cfg.Voices[1]
	require.NotNil(t, pitch.Loop)
	assert.True(t, *pitch.Loop)
	require.NotNil(t, pitch.Script[0].Note)
	assert.Equal(t, float32(60), *pitch.Script[0].Note)

	events := pitch.events(cfg.SampleRate)
	require.Len(t, events, 2)
	assert.Equal(t, int64(20), events[1].At)
	assert.True(t, events[0].HasNote)
}

func TestLoadConfig_Defaults(t *testing.T) {
	t.Parallel()

	v := viper.New()
	v.SetFs(afero.NewMemMapFs())

	cfg, err := loadConfig(v, "")
	require.NoError(t, err)
	assert.Equal(t, 48000, cfg.SampleRate)
	assert.Equal(t, 64<<20, cfg.ArenaSize)
	assert.Empty(t, cfg.Voices)

	v = viper.New()
	v.SetFs(afero.NewMemMapFs())
	_, err = loadConfig(v, "missing.yaml")
	assert.Error(t, err)
}

func TestConfigValidate(t *testing.T) {
	t.Parallel()

	valid := func() Config {
		return Config{
			ArenaSize:  1024,
			SampleRate: 48000,
			BlockSize:  16,
			Voices:     []VoiceConfig{{Kind: KindPitch, Sample: "a.wav"}},
		}
	}
	require.NoError(t, valid().validate())

	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"arena", func(c *Config) { c.ArenaSize = 0 }},
		{"rate", func(c *Config) { c.SampleRate = 0 }},
		{"block", func(c *Config) { c.BlockSize = -1 }},
		{"duration", func(c *Config) { c.Duration = -1 }},
		{"no voices", func(c *Config) { c.Voices = nil }},
		{"kind", func(c *Config) { c.Voices[0].Kind = "drone" }},
		{"pitch with both", func(c *Config) { c.Voices[0].SFZ = "a.sfz" }},
		{"pitch with none", func(c *Config) { c.Voices[0].Sample = "" }},
		{"trigger with sfz", func(c *Config) { c.Voices[0] = VoiceConfig{Kind: KindTrigger, Sample: "a.wav", SFZ: "b.sfz"} }},
		{"interpolation", func(c *Config) { c.Voices[0].Interpolation = "sinc" }},
		{"event", func(c *Config) { c.Voices[0].Script = []EventConfig{{At: -1}} }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			cfg := valid()
			tt.mutate(&cfg)
			assert.ErrorIs(t, cfg.validate(), ErrInvalidConfig)
		})
	}
}

func TestCalibrationFallback(t *testing.T) {
	t.Parallel()

	vc := VoiceConfig{}
	assert.InDelta(t, 60, vc.calibration().ProcessInput(0), 1e-6)

	vc.Calibration = CalibrationConfig{Scale: 12, Offset: 36}
	assert.InDelta(t, 48, vc.calibration().ProcessInput(1), 1e-6)
}

func TestRack_Render(t *testing.T) {
	t.Parallel()

	fs := testFs(t)
	r, err := NewRack(testConfig(t, fs), fs, discard(), nil)
	require.NoError(t, err)

	assert.Equal(t, 2, r.Channels())
	assert.Equal(t, int64(30), r.Frames())

	out := r.Render()
	require.Len(t, out, 60)

	kick := make([]float32, 30)
	tone := make([]float32, 30)
	for f := range 30 {
		kick[f] = out[2*f]
		tone[f] = out[2*f+1]
	}

	wantKick := make([]float32, 30)
	wantKick[5], wantKick[6] = 0.5, 0.25
	assert.Equal(t, wantKick, kick)

	for f := range 20 {
		assert.Equal(t, float32(0.1), tone[f], "frame %d", f)
	}
	for f := 20; f < 30; f++ {
		assert.Zero(t, tone[f], "frame %d", f)
	}
}

func TestRack_LoadFailure(t *testing.T) {
	t.Parallel()

	fs := testFs(t)
	cfg := testConfig(t, fs)
	cfg.Voices[1].Sample = "gone.wav"

	_, err := NewRack(cfg, fs, discard(), nil)
	assert.ErrorIs(t, err, audio.ErrStorage)
}

func TestRackReader(t *testing.T) {
	t.Parallel()

	fs := testFs(t)
	cfg := testConfig(t, fs)
	cfg.Duration = 0.01

	r, err := NewRack(cfg, fs, discard(), nil)
	require.NoError(t, err)

	data, err := io.ReadAll(newRackReader(r))
	require.NoError(t, err)
	require.Len(t, data, 10*2*4)

	first := math.Float32frombits(binary.LittleEndian.Uint32(data[4:]))
	assert.Equal(t, float32(0.1), first)

	kick := math.Float32frombits(binary.LittleEndian.Uint32(data[5*8:]))
	assert.Equal(t, float32(0.5), kick)
}

func TestRenderCommand(t *testing.T) {
	t.Parallel()

	fs := testFs(t)
	_, err := run(t, fs, "--config", "romple.yaml", "render", "-o", "out.wav", "--duration", "0.012")
	require.NoError(t, err)

	f, err := fs.Open("out.wav")
	require.NoError(t, err)
	defer f.Close()

	src, err := wav.Decoder{}.Decode(f)
	require.NoError(t, err)
	assert.Equal(t, 2, src.Channels())
	assert.Equal(t, 1000, src.SampleRate())

	buf := make([]float32, 64)
	n, _ := src.ReadSamples(buf)
	assert.Equal(t, 24, n)
	assert.Equal(t, float32(0.5), buf[10])
}

func TestRenderCommand_PCM16(t *testing.T) {
	t.Parallel()

	fs := testFs(t)
	_, err := run(t, fs, "-c", "romple.yaml", "render", "-o", "out16.wav", "--duration", "0.012", "--pcm16")
	require.NoError(t, err)

	f, err := fs.Open("out16.wav")
	require.NoError(t, err)
	defer f.Close()

	src, err := wav.Decoder{}.Decode(f)
	require.NoError(t, err)

	buf := make([]float32, 64)
	n, _ := src.ReadSamples(buf)
	assert.Equal(t, 24, n)
	assert.InDelta(t, 0.5, buf[10], 1e-3)
	assert.InDelta(t, 0.1, buf[1], 1e-3)
}

func TestRenderCommand_InvalidConfig(t *testing.T) {
	t.Parallel()

	fs := afero.NewMemMapFs()
	_, err := run(t, fs, "render")
	assert.ErrorIs(t, err, ErrInvalidConfig)
}

func TestRegionsCommand(t *testing.T) {
	t.Parallel()

	fs := afero.NewMemMapFs()
	sfzText := "<group> lokey=36\n<region> sample=kick.wav\n<region> sample=kick.wav key=40 loop_mode=one_shot\n"
	require.NoError(t, afero.WriteFile(fs, "kit.sfz", []byte(sfzText), 0o644))

	out, err := run(t, fs, "regions", "kit.sfz")
	require.NoError(t, err)
	assert.Contains(t, out, "kick.wav")
	assert.Contains(t, out, "36-127")
	assert.Contains(t, out, "one_shot")
	assert.Contains(t, out, "2 regions, 1 samples")

	_, err = run(t, fs, "regions", "nope.sfz")
	assert.ErrorIs(t, err, audio.ErrStorage)
}

func TestInspectCommand(t *testing.T) {
	t.Parallel()

	fs := testFs(t)

	out, err := run(t, fs, "inspect", "kick.wav")
	require.NoError(t, err)
	assert.Contains(t, out, "samples:     2")
	assert.Contains(t, out, "sample rate: 1000 Hz")
	assert.Contains(t, out, "peak:        0.5000")
	assert.Contains(t, out, "arena:       8 /")

	_, err = run(t, fs, "inspect", "kick.mid")
	assert.ErrorIs(t, err, audio.ErrFormat)
}

func TestMetricsServerStops(t *testing.T) {
	t.Parallel()

	out, err := run(t, testFs(t), "--metrics-addr", "127.0.0.1:0", "inspect", "kick.wav")
	require.NoError(t, err)
	assert.Contains(t, out, "samples:     2")
}

func TestBadLogLevel(t *testing.T) {
	t.Parallel()

	_, err := run(t, testFs(t), "--log-level", "loud", "inspect", "kick.wav")
	assert.Error(t, err)
}
