// SPDX-License-Identifier: EPL-2.0

// Package cli implements the romple command line host: it builds an engine
// from a YAML config and renders, plays or inspects what it loads.
package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/spf13/afero"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/ik5/romple"
	"github.com/ik5/romple/internal/metrics"
)

// app carries the state shared by every subcommand.
type app struct {
	fs  afero.Fs
	v   *viper.Viper
	cfg Config
	log *slog.Logger

	configPath   string
	durationFlag float64

	metrics *metrics.SamplerMetrics
	server  *http.Server
}

// observer returns the metrics sink, or nil when metrics are off.
func (a *app) observer() romple.LoadObserver {
	if a.metrics == nil {
		return nil
	}

	return a.metrics
}

// RootCommand creates the romple command tree. All file access goes
// through fs.
func RootCommand(fs afero.Fs) *cobra.Command {
	a := &app{fs: fs, v: viper.New()}
	a.v.SetFs(fs)

	rootCmd := &cobra.Command{
		Use:          "romple",
		Short:        "Sample playback engine host",
		SilenceUsage: true,
	}

	setupFlags(rootCmd, a)

	rootCmd.AddCommand(
		renderCommand(a),
		playCommand(a),
		regionsCommand(a),
		inspectCommand(a),
	)

	rootCmd.PersistentPreRunE = func(cmd *cobra.Command, _ []string) error {
		return a.initialize(cmd)
	}
	rootCmd.PersistentPostRunE = func(cmd *cobra.Command, _ []string) error {
		return a.shutdown(cmd.Context())
	}

	return rootCmd
}

func setupFlags(rootCmd *cobra.Command, a *app) {
	flags := rootCmd.PersistentFlags()
	flags.StringVarP(&a.configPath, "config", "c", "", "Config file (default ./romple.yaml)")
	flags.String("log-level", "info", "Log level: debug, info, warn, error")
	flags.String("metrics-addr", "", "Serve Prometheus metrics on this address, e.g. :9090")
	flags.Int("arena-size", romple.DefaultArenaSize, "Sample arena size in bytes")
	flags.Int("sample-rate", romple.DefaultSampleRate, "Output sample rate in Hz")

	for key, flag := range map[string]string{
		"log_level":    "log-level",
		"metrics_addr": "metrics-addr",
		"arena_size":   "arena-size",
		"sample_rate":  "sample-rate",
	} {
		// the flags exist, so binding cannot fail
		_ = a.v.BindPFlag(key, flags.Lookup(flag))
	}
}

// initialize reads the config, sets up logging and starts the metrics
// endpoint if one is configured.
func (a *app) initialize(cmd *cobra.Command) error {
	cfg, err := loadConfig(a.v, a.configPath)
	if err != nil {
		return err
	}
	a.cfg = cfg

	logger, err := newLogger(cmd.ErrOrStderr(), cfg.LogLevel)
	if err != nil {
		return err
	}
	a.log = logger.With("module", "cli")

	if used := a.v.ConfigFileUsed(); used != "" {
		a.log.Debug("config loaded", "path", used)
	}

	if cfg.MetricsAddr != "" {
		return a.serveMetrics(cfg.MetricsAddr)
	}

	return nil
}

func (a *app) serveMetrics(addr string) error {
	reg := prometheus.NewRegistry()

	m, err := metrics.NewSamplerMetrics(reg)
	if err != nil {
		return fmt.Errorf("registering metrics: %w", err)
	}
	a.metrics = m

	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return fmt.Errorf("metrics listener: %w", err)
	}

	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.HandlerFor(reg, promhttp.HandlerOpts{}))
	a.server = &http.Server{Handler: mux, ReadHeaderTimeout: 5 * time.Second}

	go func() {
		if err := a.server.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			a.log.Error("metrics server stopped", "error", err)
		}
	}()

	a.log.Info("serving metrics", "addr", ln.Addr().String())

	return nil
}

func (a *app) shutdown(ctx context.Context) error {
	if a.server == nil {
		return nil
	}

	if ctx == nil {
		ctx = context.Background()
	}
	ctx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()

	if err := a.server.Shutdown(ctx); err != nil {
		return fmt.Errorf("stopping metrics server: %w", err)
	}

	return nil
}

// applyDuration lets a --duration flag override the config file.
func (a *app) applyDuration() {
	if a.durationFlag > 0 {
		a.cfg.Duration = a.durationFlag
	}
}

// rack builds the configured voices.
func (a *app) rack() (*Rack, error) {
	return NewRack(a.cfg, a.fs, a.log, a.observer())
}

// engine builds a bare engine for commands that load single assets.
func (a *app) engine() *romple.Engine {
	opts := []romple.Option{
		romple.WithArenaSize(a.cfg.ArenaSize),
		romple.WithSampleRate(a.cfg.SampleRate),
		romple.WithFs(a.fs),
		romple.WithLogger(a.log),
		romple.WithDownmix(a.cfg.Downmix),
		romple.WithVoices(0),
	}
	if o := a.observer(); o != nil {
		opts = append(opts, romple.WithObserver(o))
	}

	return romple.New(opts...)
}

func printf(w io.Writer, format string, args ...any) {
	_, _ = fmt.Fprintf(w, format, args...)
}
