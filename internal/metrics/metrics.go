// SPDX-License-Identifier: EPL-2.0

// Package metrics exports sample loading and arena usage to Prometheus.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"

	"github.com/ik5/romple"
)

// SamplerMetrics implements romple.LoadObserver.
type SamplerMetrics struct {
	arenaCapacity prometheus.Gauge
	arenaUsed     prometheus.Gauge
	arenaPeak     prometheus.Gauge
	loadsTotal    *prometheus.CounterVec

	collectors []prometheus.Collector
}

var _ romple.LoadObserver = (*SamplerMetrics)(nil)

// NewSamplerMetrics creates the metrics and registers them with registry.
func NewSamplerMetrics(registry prometheus.Registerer) (*SamplerMetrics, error) {
	m := &SamplerMetrics{
		arenaCapacity: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "romple_arena_capacity_bytes",
			Help: "Size of the sample arena",
		}),
		arenaUsed: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "romple_arena_used_bytes",
			Help: "Bytes of the sample arena holding loaded samples",
		}),
		arenaPeak: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "romple_arena_peak_bytes",
			Help: "Highest arena usage seen, including failed loads",
		}),
		loadsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "romple_loads_total",
				Help: "Load attempts by asset kind and result",
			},
			[]string{"kind", "result"},
		),
	}

	m.collectors = []prometheus.Collector{
		m.arenaCapacity,
		m.arenaUsed,
		m.arenaPeak,
		m.loadsTotal,
	}

	if err := registry.Register(m); err != nil {
		return nil, err
	}

	return m, nil
}

func (m *SamplerMetrics) ObserveLoad(kind string, res romple.Result) {
	m.loadsTotal.WithLabelValues(kind, res.String()).Inc()
}

func (m *SamplerMetrics) ObserveArena(s romple.ArenaStats) {
	m.arenaCapacity.Set(float64(s.Capacity))
	m.arenaUsed.Set(float64(s.Used))
	m.arenaPeak.Set(float64(s.Peak))
}

// Describe implements the Collector interface
func (m *SamplerMetrics) Describe(ch chan<- *prometheus.Desc) {
	for _, c := range m.collectors {
		c.Describe(ch)
	}
}

// Collect implements the Collector interface
func (m *SamplerMetrics) Collect(ch chan<- prometheus.Metric) {
	for _, c := range m.collectors {
		c.Collect(ch)
	}
}
