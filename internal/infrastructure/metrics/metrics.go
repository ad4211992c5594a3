package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// NewCounter registers the general counter vec on reg. Pass
// prometheus.DefaultRegisterer to expose it on /metrics.
func NewCounter(reg prometheus.Registerer) *prometheus.CounterVec {
	return promauto.With(reg).NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "academichub",
			Name:      "general_counters",
		},
		[]string{"result"})
}
