package ttlcache

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const (
	resultHit   = "hit"
	resultMiss  = "miss"
	resultError = "error"
)

// Metrics counts cache lookups and backend failures by entity kind.
// A nil *Metrics is valid and records nothing.
type Metrics struct {
	lookups  *prometheus.CounterVec
	failures *prometheus.CounterVec
}

// NewMetrics registers the cache collectors on reg. A nil reg builds
// unregistered collectors.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)
	return &Metrics{
		lookups: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: "xpbot",
			Subsystem: "cache",
			Name:      "lookups_total",
			Help:      "Cache lookups by entity kind and result.",
		}, []string{"kind", "result"}),
		failures: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: "xpbot",
			Subsystem: "cache",
			Name:      "backend_failures_total",
			Help:      "Cache backend failures absorbed by store-only fallback.",
		}, []string{"kind", "op"}),
	}
}

func (m *Metrics) recordLookup(kind, result string) {
	if m == nil {
		return
	}
	m.lookups.WithLabelValues(kind, result).Inc()
}

func (m *Metrics) recordFailure(kind, op string) {
	if m == nil {
		return
	}
	m.failures.WithLabelValues(kind, op).Inc()
}
