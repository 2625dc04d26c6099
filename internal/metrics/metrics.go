// internal/metrics/metrics.go
package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	upstreamRequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "homepage_admin_upstream_requests_total",
			Help: "Total number of requests sent to the homepage backend.",
		},
		[]string{"method", "endpoint", "status"},
	)
	upstreamRequestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "homepage_admin_upstream_request_duration_seconds",
			Help:    "Histogram of homepage backend request durations.",
			Buckets: []float64{0.05, 0.1, 0.25, 0.5, 1, 2, 5, 10},
		},
		[]string{"method", "endpoint", "status"},
	)
	reconciliationsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "homepage_admin_reconciliations_total",
			Help: "Collection mutations by reconciliation outcome.",
		},
		[]string{"collection", "operation", "outcome"},
	)
	priceLookupsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "homepage_admin_price_lookups_total",
			Help: "Offer price lookups by result.",
		},
		[]string{"result"},
	)
)

func init() {
	prometheus.MustRegister(upstreamRequestsTotal)
	prometheus.MustRegister(upstreamRequestDuration)
	prometheus.MustRegister(reconciliationsTotal)
	prometheus.MustRegister(priceLookupsTotal)
}

// RecordUpstreamRequest records one backend call. statusCode 0 means the
// request never got a response.
func RecordUpstreamRequest(method, endpoint string, statusCode int, duration time.Duration) {
	status := classifyStatus(statusCode)
	upstreamRequestsTotal.WithLabelValues(method, endpoint, status).Inc()
	upstreamRequestDuration.WithLabelValues(method, endpoint, status).Observe(duration.Seconds())
}

func RecordReconciliation(collection, operation, outcome string) {
	reconciliationsTotal.WithLabelValues(collection, operation, outcome).Inc()
}

func RecordPriceLookup(ok bool) {
	result := "ok"
	if !ok {
		result = "degraded"
	}
	priceLookupsTotal.WithLabelValues(result).Inc()
}

func classifyStatus(statusCode int) string {
	switch {
	case statusCode == 0:
		return "transport_error"
	case statusCode >= 200 && statusCode < 300:
		return "2xx"
	case statusCode >= 300 && statusCode < 400:
		return "3xx"
	case statusCode >= 400 && statusCode < 500:
		return "4xx"
	case statusCode >= 500 && statusCode < 600:
		return "5xx"
	}
	return "unknown"
}

func Handler() http.Handler {
	return promhttp.Handler()
}
