package inspect

import (
	stderrors "errors"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	merrors "github.com/vango-dev/attrmerge/internal/errors"
	"github.com/vango-dev/attrmerge/pkg/merge"
	"github.com/vango-dev/attrmerge/pkg/tree"
)

// MetricsConfig configures the composition metrics.
type MetricsConfig struct {
	// Namespace is the metrics namespace (default: "attrmerge").
	Namespace string

	// Subsystem is the metrics subsystem (default: "").
	Subsystem string

	// ConstLabels are constant labels added to all metrics.
	ConstLabels prometheus.Labels

	// Registry is the Prometheus registry to use.
	// Default: prometheus.DefaultRegisterer
	Registry prometheus.Registerer
}

// MetricsOption configures the composition metrics.
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

// WithRegistry sets the Prometheus registry.
func WithRegistry(registry prometheus.Registerer) MetricsOption {
	return func(c *MetricsConfig) {
		c.Registry = registry
	}
}

func defaultMetricsConfig() MetricsConfig {
	return MetricsConfig{
		Namespace: "attrmerge",
		Registry:  prometheus.DefaultRegisterer,
	}
}

// Metrics records composition activity. It implements tree.Observer, so a
// single instance can be passed to Compose and Finalize, and doubles as the
// patch/session recorder for the inspector server.
//
// Metrics exposed:
//   - attrmerge_merges_total: Counter of resolved element merges
//   - attrmerge_dynamic_slots: Histogram of dynamic slots per merge
//   - attrmerge_drops_total: Counter of silent bundle drops by reason
//   - attrmerge_rejections_total: Counter of composition rejections by code
//   - attrmerge_patches_streamed_total: Counter of patches sent to clients
//   - attrmerge_inspector_clients: Gauge of connected WebSocket clients
type Metrics struct {
	mergesTotal     prometheus.Counter
	dynamicSlots    prometheus.Histogram
	dropsTotal      *prometheus.CounterVec
	rejectionsTotal *prometheus.CounterVec
	patchesStreamed prometheus.Counter
	clients         prometheus.Gauge
}

// NewMetrics registers and returns the composition metrics.
func NewMetrics(opts ...MetricsOption) *Metrics {
	config := defaultMetricsConfig()
	for _, opt := range opts {
		opt(&config)
	}
	factory := promauto.With(config.Registry)

	return &Metrics{
		mergesTotal: factory.NewCounter(prometheus.CounterOpts{
			Namespace:   config.Namespace,
			Subsystem:   config.Subsystem,
			Name:        "merges_total",
			Help:        "Total number of element merges resolved",
			ConstLabels: config.ConstLabels,
		}),

		dynamicSlots: factory.NewHistogram(prometheus.HistogramOpts{
			Namespace:   config.Namespace,
			Subsystem:   config.Subsystem,
			Name:        "dynamic_slots",
			Help:        "Dynamic slots surviving each merge",
			ConstLabels: config.ConstLabels,
			Buckets:     []float64{0, 1, 2, 4, 8, 16, 26},
		}),

		dropsTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace:   config.Namespace,
			Subsystem:   config.Subsystem,
			Name:        "drops_total",
			Help:        "Total number of silently dropped bundles by reason",
			ConstLabels: config.ConstLabels,
		}, []string{"reason"}),

		rejectionsTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace:   config.Namespace,
			Subsystem:   config.Subsystem,
			Name:        "rejections_total",
			Help:        "Total number of composition rejections by error code",
			ConstLabels: config.ConstLabels,
		}, []string{"code"}),

		patchesStreamed: factory.NewCounter(prometheus.CounterOpts{
			Namespace:   config.Namespace,
			Subsystem:   config.Subsystem,
			Name:        "patches_streamed_total",
			Help:        "Total number of patches streamed to inspector clients",
			ConstLabels: config.ConstLabels,
		}),

		clients: factory.NewGauge(prometheus.GaugeOpts{
			Namespace:   config.Namespace,
			Subsystem:   config.Subsystem,
			Name:        "inspector_clients",
			Help:        "Number of connected inspector WebSocket clients",
			ConstLabels: config.ConstLabels,
		}),
	}
}

// MergeResolved implements tree.Observer.
func (m *Metrics) MergeResolved(_ string, snap *merge.Snapshot) {
	m.mergesTotal.Inc()
	if snap != nil {
		m.dynamicSlots.Observe(float64(len(snap.Dynamic)))
	}
}

// BundleDropped implements tree.Observer.
func (m *Metrics) BundleDropped(reason tree.DropReason, _ int) {
	m.dropsTotal.WithLabelValues(reason.String()).Inc()
}

// CompositionRejected implements tree.Observer.
func (m *Metrics) CompositionRejected(err error) {
	m.rejectionsTotal.WithLabelValues(errorCode(err)).Inc()
}

// RecordPatch records one patch streamed to a client.
func (m *Metrics) RecordPatch() {
	m.patchesStreamed.Inc()
}

// ClientConnected records an inspector client attaching.
func (m *Metrics) ClientConnected() {
	m.clients.Inc()
}

// ClientDisconnected records an inspector client detaching.
func (m *Metrics) ClientDisconnected() {
	m.clients.Dec()
}

// errorCode maps an error to a low-cardinality label.
func errorCode(err error) string {
	var ae *merrors.AttrError
	if stderrors.As(err, &ae) && ae.Code != "" {
		return ae.Code
	}
	return "unknown"
}
