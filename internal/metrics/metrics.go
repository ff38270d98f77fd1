// Package metrics registers and exposes MXD's Prometheus instrumentation:
// connection counts, per-transaction dispatch outcomes, and outbound queue
// depth. Nothing outside this package depends on prometheus directly.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds every Prometheus collector MXD reports. A nil *Metrics is
// safe to call methods on (they become no-ops), so a server run with
// metrics disabled never needs a conditional at the call site.
type Metrics struct {
	registry *prometheus.Registry

	connectionsActive prometheus.Gauge
	transactionsTotal *prometheus.CounterVec
	dispatchDuration  *prometheus.HistogramVec
	outboundQueue     *prometheus.GaugeVec
}

// New builds a Metrics instance registered against a fresh registry.
func New() *Metrics {
	reg := prometheus.NewRegistry()
	return &Metrics{
		registry: reg,
		connectionsActive: promauto.With(reg).NewGauge(prometheus.GaugeOpts{
			Name: "mxd_connections_active",
			Help: "Number of currently connected clients.",
		}),
		transactionsTotal: promauto.With(reg).NewCounterVec(prometheus.CounterOpts{
			Name: "mxd_transactions_total",
			Help: "Total dispatched transactions by type and reply error code.",
		}, []string{"type", "error_code"}),
		dispatchDuration: promauto.With(reg).NewHistogramVec(prometheus.HistogramOpts{
			Name:    "mxd_dispatch_duration_ms",
			Help:    "Dispatch handler latency in milliseconds.",
			Buckets: []float64{0.1, 0.5, 1, 5, 10, 50, 100, 500, 1000},
		}, []string{"type"}),
		outboundQueue: promauto.With(reg).NewGaugeVec(prometheus.GaugeOpts{
			Name: "mxd_outbound_queue_depth",
			Help: "Current outbound queue depth by priority.",
		}, []string{"priority"}),
	}
}

// Registry exposes the underlying *prometheus.Registry, for mounting a
// /metrics handler.
func (m *Metrics) Registry() *prometheus.Registry {
	if m == nil {
		return nil
	}
	return m.registry
}

// ConnectionOpened increments the active connection gauge.
func (m *Metrics) ConnectionOpened() {
	if m == nil {
		return
	}
	m.connectionsActive.Inc()
}

// ConnectionClosed decrements the active connection gauge.
func (m *Metrics) ConnectionClosed() {
	if m == nil {
		return
	}
	m.connectionsActive.Dec()
}

// ObserveDispatch records one dispatched transaction's type, reply error
// code, and handler latency in milliseconds.
func (m *Metrics) ObserveDispatch(txnType uint16, errorCode uint32, durationMS float64) {
	if m == nil {
		return
	}
	typeLabel := formatUint(uint64(txnType))
	codeLabel := formatUint(uint64(errorCode))
	m.transactionsTotal.WithLabelValues(typeLabel, codeLabel).Inc()
	m.dispatchDuration.WithLabelValues(typeLabel).Observe(durationMS)
}

// SetOutboundQueueDepth records priority's current queue depth.
func (m *Metrics) SetOutboundQueueDepth(priority string, depth int) {
	if m == nil {
		return
	}
	m.outboundQueue.WithLabelValues(priority).Set(float64(depth))
}

func formatUint(v uint64) string {
	if v == 0 {
		return "0"
	}
	var buf [20]byte
	i := len(buf)
	for v > 0 {
		i--
		buf[i] = byte('0' + v%10)
		v /= 10
	}
	return string(buf[i:])
}
