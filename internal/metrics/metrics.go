// Package metrics exposes Prometheus collectors for the protocol engine.
// A nil *Collector is valid and records nothing.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/gatefield/gatefield/internal/protocol"
)

// Config configures the collectors.
type Config struct {
	// Namespace is the metrics namespace (default: "gatefield").
	Namespace string

	// Registry is the Prometheus registry to use.
	// Default: prometheus.DefaultRegisterer
	Registry prometheus.Registerer
}

// Option configures the collectors.
type Option func(*Config)

// WithNamespace sets the metrics namespace.
func WithNamespace(namespace string) Option {
	return func(c *Config) {
		c.Namespace = namespace
	}
}

// WithRegistry sets the Prometheus registry.
func WithRegistry(registry prometheus.Registerer) Option {
	return func(c *Config) {
		c.Registry = registry
	}
}

// Collector holds the engine's Prometheus metrics.
type Collector struct {
	framesReceived *prometheus.CounterVec
	framesSent     *prometheus.CounterVec
	bytesReceived  *prometheus.CounterVec
	bytesSent      *prometheus.CounterVec
	protocolErrors *prometheus.CounterVec
	filtered       prometheus.Counter
	connectErrors  *prometheus.CounterVec
	disconnects    prometheus.Counter
	transitions    *prometheus.CounterVec
	state          prometheus.Gauge
	queueDepth     *prometheus.GaugeVec
	drainBatch     prometheus.Histogram
}

// New registers the collectors.
func New(opts ...Option) *Collector {
	cfg := Config{
		Namespace: "gatefield",
		Registry:  prometheus.DefaultRegisterer,
	}
	for _, opt := range opts {
		opt(&cfg)
	}

	factory := promauto.With(cfg.Registry)
	ns := cfg.Namespace

	return &Collector{
		framesReceived: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: ns,
			Name:      "frames_received_total",
			Help:      "Frames read from the gate and field connections",
		}, []string{"role", "kind"}),

		framesSent: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: ns,
			Name:      "frames_sent_total",
			Help:      "Frames written to the gate and field connections",
		}, []string{"role", "kind"}),

		bytesReceived: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: ns,
			Name:      "bytes_received_total",
			Help:      "Bytes read including frame headers",
		}, []string{"role"}),

		bytesSent: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: ns,
			Name:      "bytes_sent_total",
			Help:      "Bytes written including frame headers",
		}, []string{"role"}),

		protocolErrors: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: ns,
			Name:      "protocol_errors_total",
			Help:      "Inbound messages dropped because they could not be parsed",
		}, []string{"kind", "reason"}),

		filtered: factory.NewCounter(prometheus.CounterOpts{
			Namespace: ns,
			Name:      "self_broadcasts_filtered_total",
			Help:      "Entity broadcasts about the local player that were suppressed",
		}),

		connectErrors: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: ns,
			Name:      "connect_errors_total",
			Help:      "Transport failures by handshake stage",
		}, []string{"stage"}),

		disconnects: factory.NewCounter(prometheus.CounterOpts{
			Namespace: ns,
			Name:      "field_disconnects_total",
			Help:      "Field sessions that ended",
		}),

		transitions: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: ns,
			Name:      "state_transitions_total",
			Help:      "Connection state transitions",
		}, []string{"from", "to"}),

		state: factory.NewGauge(prometheus.GaugeOpts{
			Namespace: ns,
			Name:      "connection_state",
			Help:      "Current connection state (0=disconnected .. 5=in_game)",
		}),

		queueDepth: factory.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: ns,
			Name:      "queue_depth",
			Help:      "Messages waiting in a dispatch queue at the start of a drain",
		}, []string{"role"}),

		drainBatch: factory.NewHistogram(prometheus.HistogramOpts{
			Namespace: ns,
			Name:      "drain_batch_size",
			Help:      "Messages handled per drain",
			Buckets:   []float64{0, 1, 2, 5, 10, 25, 50, 100, 250, 1000},
		}),
	}
}

func (c *Collector) FrameReceived(role string, kind protocol.Kind, size int) {
	if c == nil {
		return
	}
	c.framesReceived.WithLabelValues(role, kind.String()).Inc()
	c.bytesReceived.WithLabelValues(role).Add(float64(size))
}

func (c *Collector) FrameSent(role string, kind protocol.Kind, size int) {
	if c == nil {
		return
	}
	c.framesSent.WithLabelValues(role, kind.String()).Inc()
	c.bytesSent.WithLabelValues(role).Add(float64(size))
}

// ProtocolError counts a dropped message. Unknown kinds are folded into a
// single label value to bound cardinality.
func (c *Collector) ProtocolError(kind protocol.Kind, reason string) {
	if c == nil {
		return
	}
	label := kind.String()
	if !kind.Known() {
		label = "unknown"
	}
	c.protocolErrors.WithLabelValues(label, reason).Inc()
}

func (c *Collector) SelfFiltered() {
	if c == nil {
		return
	}
	c.filtered.Inc()
}

func (c *Collector) ConnectError(stage string) {
	if c == nil {
		return
	}
	c.connectErrors.WithLabelValues(stage).Inc()
}

func (c *Collector) Disconnected() {
	if c == nil {
		return
	}
	c.disconnects.Inc()
}

// Transition records a state change; to is also published as the state gauge.
func (c *Collector) Transition(from, to string, toIndex int) {
	if c == nil {
		return
	}
	c.transitions.WithLabelValues(from, to).Inc()
	c.state.Set(float64(toIndex))
}

func (c *Collector) QueueDepth(role string, depth int) {
	if c == nil {
		return
	}
	c.queueDepth.WithLabelValues(role).Set(float64(depth))
}

func (c *Collector) DrainBatch(n int) {
	if c == nil {
		return
	}
	c.drainBatch.Observe(float64(n))
}
