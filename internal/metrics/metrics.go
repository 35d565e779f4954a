package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "portfolio_admin"

var (
	mediaOperations = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "media",
			Name:      "operations_total",
			Help:      "Media uploads and deletions by provider and outcome",
		},
		[]string{"provider", "action", "status"},
	)

	pageRevalidations = promauto.NewCounter(
		prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "pages",
			Name:      "revalidations_total",
			Help:      "Cached page paths invalidated",
		},
	)

	pageCacheLookups = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "pages",
			Name:      "cache_lookups_total",
			Help:      "Page cache lookups by result",
		},
		[]string{"result"},
	)

	httpDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "http",
			Name:      "request_duration_seconds",
			Help:      "HTTP request latency by route pattern",
			Buckets:   prometheus.DefBuckets,
		},
		[]string{"method", "route", "status"},
	)
)

// MediaOperation counts one upload or delete against a provider
// (cdn, host or local).
func MediaOperation(provider, action string, err error) {
	status := "ok"
	if err != nil {
		status = "failed"
	}
	mediaOperations.WithLabelValues(provider, action, status).Inc()
}

func PagesRevalidated(n int) {
	pageRevalidations.Add(float64(n))
}

func PageCacheLookup(hit bool) {
	if hit {
		pageCacheLookups.WithLabelValues("hit").Inc()
		return
	}
	pageCacheLookups.WithLabelValues("miss").Inc()
}

func ObserveRequest(method, route string, status int, d time.Duration) {
	httpDuration.WithLabelValues(method, route, strconv.Itoa(status)).Observe(d.Seconds())
}

// Handler serves the default registry.
func Handler() http.Handler {
	return promhttp.Handler()
}
