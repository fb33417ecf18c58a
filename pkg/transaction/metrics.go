// pkg/transaction/metrics.go
package transaction

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Submission results recorded by Metrics.
const (
	resultValidatedSuccess = "validated_success"
	resultValidatedFailure = "validated_failure"
	resultExpired          = "expired"
	resultRejected         = "rejected"
	resultError            = "error"
)

// Metrics counts reliable submissions by result and tracks their duration.
// A nil *Metrics records nothing.
type Metrics struct {
	outcomes          *prometheus.CounterVec
	pollAttempts      prometheus.Counter
	durationHistogram prometheus.Histogram
}

// NewMetrics creates the collectors and registers them on reg, if not nil.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	outcomes := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "xrpl_tx_submissions_total",
		Help: "Total number of reliable submissions by result",
	}, []string{"result"})
	pollAttempts := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "xrpl_tx_poll_attempts_total",
		Help: "Total number of transaction lookups made while polling",
	})
	durationHistogram := prometheus.NewHistogram(prometheus.HistogramOpts{
		Name:    "xrpl_tx_duration_seconds",
		Help:    "Time from submit to a final result in seconds",
		Buckets: prometheus.ExponentialBuckets(0.5, 2, 8),
	})

	if reg != nil {
		reg.MustRegister(outcomes, pollAttempts, durationHistogram)
	}

	return &Metrics{
		outcomes:          outcomes,
		pollAttempts:      pollAttempts,
		durationHistogram: durationHistogram,
	}
}

// TrackSubmission records one finished submission.
func (m *Metrics) TrackSubmission(result string, start time.Time) {
	if m == nil {
		return
	}
	m.outcomes.WithLabelValues(result).Inc()
	m.durationHistogram.Observe(time.Since(start).Seconds())
}

func (m *Metrics) trackPoll() {
	if m == nil {
		return
	}
	m.pollAttempts.Inc()
}

func resultLabel(state State) string {
	switch state {
	case StateValidatedSuccess:
		return resultValidatedSuccess
	case StateValidatedFailure:
		return resultValidatedFailure
	case StateExpired:
		return resultExpired
	default:
		return resultError
	}
}
