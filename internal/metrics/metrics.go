package metrics

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
)

// Analysis and capability Prometheus metrics.
var (
	AnalysesTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "lexscan",
			Name:      "analyses_total",
			Help:      "Total number of analysis operations",
		},
		[]string{"operation", "status"},
	)

	CapabilityRequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "lexscan",
			Name:      "capability_requests_total",
			Help:      "Total number of external capability requests",
		},
		[]string{"capability", "provider", "status"},
	)

	CapabilityRequestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "lexscan",
			Name:      "capability_request_duration_seconds",
			Help:      "External capability request duration in seconds",
			Buckets:   []float64{0.1, 0.25, 0.5, 1, 2.5, 5, 10, 30, 60},
		},
		[]string{"capability", "provider"},
	)

	CapabilityFallbacksTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "lexscan",
			Name:      "capability_fallbacks_total",
			Help:      "Times a deterministic fallback replaced an external capability",
		},
		[]string{"capability", "reason"}, // "disabled" / "timeout" / "error"
	)

	CapabilityCacheTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "lexscan",
			Name:      "capability_cache_total",
			Help:      "Capability cache hits and misses",
		},
		[]string{"result"}, // "hit" / "miss"
	)
)

var registerOnce sync.Once

// Register registers all lexscan metrics with the default registry.
// Safe to call more than once.
func Register() {
	registerOnce.Do(func() {
		prometheus.MustRegister(
			AnalysesTotal,
			CapabilityRequestsTotal,
			CapabilityRequestDuration,
			CapabilityFallbacksTotal,
			CapabilityCacheTotal,
			httpRequestDuration,
			httpRequestsTotal,
		)
	})
}
