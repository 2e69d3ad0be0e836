package userservice

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// GrantMetrics counts message XP grant outcomes. A nil *GrantMetrics records
// nothing.
type GrantMetrics struct {
	granted  prometheus.Counter
	outcomes *prometheus.CounterVec
}

// NewGrantMetrics registers the grant collectors on reg.
func NewGrantMetrics(reg prometheus.Registerer) *GrantMetrics {
	factory := promauto.With(reg)
	return &GrantMetrics{
		granted: factory.NewCounter(prometheus.CounterOpts{
			Namespace: "xpbot",
			Subsystem: "xp",
			Name:      "granted_total",
			Help:      "Total message XP awarded.",
		}),
		outcomes: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: "xpbot",
			Subsystem: "xp",
			Name:      "grants_total",
			Help:      "Message XP grant attempts by outcome.",
		}, []string{"outcome"}),
	}
}

func (m *GrantMetrics) record(g Grant) {
	if m == nil {
		return
	}
	if g.Skipped != SkipNone {
		m.outcomes.WithLabelValues(string(g.Skipped)).Inc()
		return
	}
	m.outcomes.WithLabelValues("granted").Inc()
	m.granted.Add(float64(g.Amount))
}
