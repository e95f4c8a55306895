package reconcile

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/vango-dev/reconcile/pkg/journal"
)

// MetricsConfig configures the engine's Prometheus metrics.
type MetricsConfig struct {
	// Namespace is the metrics namespace (default: "reconcile").
	Namespace string

	// Subsystem is the metrics subsystem (default: "").
	Subsystem string

	// ConstLabels are constant labels added to all metrics.
	ConstLabels prometheus.Labels

	// Buckets are the histogram buckets for diff and apply duration.
	// Default: prometheus.DefBuckets
	Buckets []float64

	// Registry is the Prometheus registry to use.
	// Default: prometheus.DefaultRegisterer
	Registry prometheus.Registerer
}

// MetricsOption configures Metrics.
type MetricsOption func(*MetricsConfig)

// WithNamespace sets the metrics namespace.
func WithNamespace(namespace string) MetricsOption {
	return func(c *MetricsConfig) {
		c.Namespace = namespace
	}
}

// WithSubsystem sets the metrics subsystem.
func WithSubsystem(subsystem string) MetricsOption {
	return func(c *MetricsConfig) {
		c.Subsystem = subsystem
	}
}

// WithConstLabels sets constant labels for all metrics.
func WithConstLabels(labels prometheus.Labels) MetricsOption {
	return func(c *MetricsConfig) {
		c.ConstLabels = labels
	}
}

// WithBuckets sets the histogram buckets.
func WithBuckets(buckets []float64) MetricsOption {
	return func(c *MetricsConfig) {
		c.Buckets = buckets
	}
}

// WithRegistry sets the Prometheus registry.
func WithRegistry(registry prometheus.Registerer) MetricsOption {
	return func(c *MetricsConfig) {
		c.Registry = registry
	}
}

func defaultMetricsConfig() MetricsConfig {
	return MetricsConfig{
		Namespace: "reconcile",
		Buckets:   prometheus.DefBuckets,
		Registry:  prometheus.DefaultRegisterer,
	}
}

// Metrics holds the engine's Prometheus collectors. A nil *Metrics records
// nothing.
type Metrics struct {
	diffsTotal     *prometheus.CounterVec
	diffDuration   prometheus.Histogram
	entriesTotal   *prometheus.CounterVec
	rendersTotal   prometheus.Counter
	applyDuration  prometheus.Histogram
	activeSessions prometheus.Gauge
}

// NewMetrics registers the collectors. Registering twice against the same
// registry panics, as with promauto.
func NewMetrics(opts ...MetricsOption) *Metrics {
	config := defaultMetricsConfig()
	for _, opt := range opts {
		opt(&config)
	}
	factory := promauto.With(config.Registry)

	return &Metrics{
		diffsTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace:   config.Namespace,
			Subsystem:   config.Subsystem,
			Name:        "diffs_total",
			Help:        "Total number of diff passes by result",
			ConstLabels: config.ConstLabels,
		}, []string{"result"}),

		diffDuration: factory.NewHistogram(prometheus.HistogramOpts{
			Namespace:   config.Namespace,
			Subsystem:   config.Subsystem,
			Name:        "diff_duration_seconds",
			Help:        "Diff pass duration in seconds, including component expansion",
			ConstLabels: config.ConstLabels,
			Buckets:     config.Buckets,
		}),

		entriesTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace:   config.Namespace,
			Subsystem:   config.Subsystem,
			Name:        "journal_entries_total",
			Help:        "Total number of journal entries produced by opcode",
			ConstLabels: config.ConstLabels,
		}, []string{"op"}),

		rendersTotal: factory.NewCounter(prometheus.CounterOpts{
			Namespace:   config.Namespace,
			Subsystem:   config.Subsystem,
			Name:        "component_renders_total",
			Help:        "Total number of component re-renders",
			ConstLabels: config.ConstLabels,
		}),

		applyDuration: factory.NewHistogram(prometheus.HistogramOpts{
			Namespace:   config.Namespace,
			Subsystem:   config.Subsystem,
			Name:        "apply_duration_seconds",
			Help:        "Journal apply duration in seconds",
			ConstLabels: config.ConstLabels,
			Buckets:     config.Buckets,
		}),

		activeSessions: factory.NewGauge(prometheus.GaugeOpts{
			Namespace:   config.Namespace,
			Subsystem:   config.Subsystem,
			Name:        "live_sessions",
			Help:        "Number of open live sessions",
			ConstLabels: config.ConstLabels,
		}),
	}
}

func (m *Metrics) observeDiff(result string, d time.Duration) {
	if m == nil {
		return
	}
	m.diffsTotal.WithLabelValues(result).Inc()
	m.diffDuration.Observe(d.Seconds())
}

func (m *Metrics) addEntries(entries []journal.Entry) {
	if m == nil {
		return
	}
	for _, e := range entries {
		m.entriesTotal.WithLabelValues(e.Op.String()).Inc()
	}
}

func (m *Metrics) addRenders(n int) {
	if m == nil || n == 0 {
		return
	}
	m.rendersTotal.Add(float64(n))
}

func (m *Metrics) observeApply(d time.Duration) {
	if m == nil {
		return
	}
	m.applyDuration.Observe(d.Seconds())
}

// SessionOpened records a new live session.
func (m *Metrics) SessionOpened() {
	if m == nil {
		return
	}
	m.activeSessions.Inc()
}

// SessionClosed records a closed live session.
func (m *Metrics) SessionClosed() {
	if m == nil {
		return
	}
	m.activeSessions.Dec()
}
