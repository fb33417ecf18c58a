// pkg/clients/metrics.go
package clients

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// PoolMetrics exports request latency and node health of a Pool. A nil
// *PoolMetrics records nothing.
type PoolMetrics struct {
	rpcLatency  *prometheus.HistogramVec
	rpcErrors   *prometheus.CounterVec
	activeNodes prometheus.Gauge
}

// NewPoolMetrics создает метрики и регистрирует их в reg, если он не nil
func NewPoolMetrics(reg prometheus.Registerer) *PoolMetrics {
	m := &PoolMetrics{
		rpcLatency: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "xrpl_rpc_latency_seconds",
			Help:    "Ledger node request latency in seconds",
			Buckets: prometheus.DefBuckets,
		}, []string{"method", "endpoint"}),
		rpcErrors: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "xrpl_rpc_transport_errors_total",
			Help: "Requests that failed before a node could answer them",
		}, []string{"method", "endpoint"}),
		activeNodes: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "xrpl_pool_active_nodes",
			Help: "Number of pool nodes currently marked active",
		}),
	}
	if reg != nil {
		reg.MustRegister(m.rpcLatency, m.rpcErrors, m.activeNodes)
	}
	return m
}

func (m *PoolMetrics) observe(method, endpoint string, d time.Duration, transportErr bool) {
	if m == nil {
		return
	}
	m.rpcLatency.WithLabelValues(method, endpoint).Observe(d.Seconds())
	if transportErr {
		m.rpcErrors.WithLabelValues(method, endpoint).Inc()
	}
}

func (m *PoolMetrics) setActive(n int) {
	if m == nil {
		return
	}
	m.activeNodes.Set(float64(n))
}
