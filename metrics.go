package assetkit

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Metrics holds build metrics. A nil *Metrics records nothing.
type Metrics struct {
	AssetsTotal   *prometheus.CounterVec
	AssetDuration *prometheus.HistogramVec
	BuildsTotal   *prometheus.CounterVec
	BuildDuration prometheus.Histogram
}

// NewMetrics creates the metrics and registers them with reg.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		AssetsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "assetkit_assets_total",
				Help: "Assets processed, by kind and status",
			},
			[]string{"kind", "status"},
		),
		AssetDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "assetkit_asset_duration_seconds",
				Help:    "Time to render or compile and register one asset",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"kind"},
		),
		BuildsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "assetkit_builds_total",
				Help: "Build passes, by result",
			},
			[]string{"result"},
		),
		BuildDuration: prometheus.NewHistogram(
			prometheus.HistogramOpts{
				Name:    "assetkit_build_duration_seconds",
				Help:    "Duration of a build pass",
				Buckets: prometheus.ExponentialBuckets(0.01, 2, 12),
			},
		),
	}

	reg.MustRegister(m.AssetsTotal, m.AssetDuration, m.BuildsTotal, m.BuildDuration)
	return m
}

func (m *Metrics) observeAsset(kind string, status Status, d time.Duration) {
	if m == nil {
		return
	}
	m.AssetsTotal.WithLabelValues(kind, string(status)).Inc()
	if d > 0 {
		m.AssetDuration.WithLabelValues(kind).Observe(d.Seconds())
	}
}

func (m *Metrics) observeBuild(err error, d time.Duration) {
	if m == nil {
		return
	}
	result := "success"
	if err != nil {
		result = "failure"
	}
	m.BuildsTotal.WithLabelValues(result).Inc()
	m.BuildDuration.Observe(d.Seconds())
}
