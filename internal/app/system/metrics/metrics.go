// Package metrics holds the Prometheus collectors for jefsite.
//
// Collectors are registered on the default registry through promauto and
// exposed by Handler on /metrics.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	// DirectoryCalls counts directory service calls by operation and outcome
	// (ok, error, not_found).
	DirectoryCalls = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "jefsite_directory_calls_total",
			Help: "Directory service calls by operation and outcome.",
		},
		[]string{"op", "outcome"},
	)

	// PageBuilds counts page data builds by page and status (ok, fallback, error).
	PageBuilds = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "jefsite_page_builds_total",
			Help: "Page data builds by page and status.",
		},
		[]string{"page", "status"},
	)

	// PageBuildDuration observes how long a page build took.
	PageBuildDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "jefsite_page_build_duration_seconds",
			Help:    "Page data build duration in seconds.",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"page"},
	)

	// CacheHits and CacheMisses track the revalidation cache per page.
	CacheHits = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "jefsite_pagecache_hits_total",
			Help: "Page cache hits.",
		},
		[]string{"page"},
	)
	CacheMisses = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "jefsite_pagecache_misses_total",
			Help: "Page cache misses.",
		},
		[]string{"page"},
	)

	httpRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "jefsite_http_requests_total",
			Help: "HTTP requests by method, route and status.",
		},
		[]string{"method", "route", "status"},
	)

	httpRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "jefsite_http_request_duration_seconds",
			Help:    "HTTP request duration in seconds.",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "route"},
	)
)

// Handler serves the default Prometheus registry.
func Handler() http.Handler {
	return promhttp.Handler()
}
