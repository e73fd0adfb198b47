package store

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics counts persistence attempts per collection. Failed saves are
// invisible to callers by design, so the counter is the only place they
// surface besides the log.
type Metrics struct {
	persistTotal *prometheus.CounterVec
}

func NewMetrics(reg prometheus.Registerer) *Metrics {
	return &Metrics{
		persistTotal: promauto.With(reg).NewCounterVec(prometheus.CounterOpts{
			Namespace: "studio",
			Subsystem: "store",
			Name:      "persist_total",
			Help:      "Collection persistence attempts by key and result.",
		}, []string{"key", "result"}),
	}
}

func (m *Metrics) ObservePersist(key string, ok bool) {
	result := "ok"
	if !ok {
		result = "error"
	}
	m.persistTotal.WithLabelValues(key, result).Inc()
}
