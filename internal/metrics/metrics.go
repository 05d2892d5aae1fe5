// Marquee - Movie Recommendations and Trending Discovery
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/marquee

// Package metrics defines Marquee's Prometheus collectors.
//
// Collectors are registered on the default registry through promauto and
// exposed by the API router at /metrics. Instrumented areas:
//   - HTTP API latency and throughput
//   - catalog snapshot loading
//   - recommendation requests
//   - TMDB gateway calls, retries, fallbacks and circuit breaker state
package metrics

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// API Endpoint Metrics
	APIRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "api_requests_total",
			Help: "Total number of API requests",
		},
		[]string{"method", "endpoint", "status_code"},
	)

	APIRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "api_request_duration_seconds",
			Help:    "API request duration in seconds",
			Buckets: []float64{0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
		},
		[]string{"method", "endpoint"},
	)

	APIActiveRequests = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "api_active_requests",
			Help: "Current number of active API requests",
		},
	)

	// Catalog Metrics
	CatalogItems = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "catalog_items",
			Help: "Number of items in the loaded catalog snapshot",
		},
	)

	CatalogLoadDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "catalog_load_duration_seconds",
			Help:    "Time spent loading the catalog snapshot",
			Buckets: []float64{0.01, 0.05, 0.1, 0.5, 1, 2.5, 5, 10, 30},
		},
		[]string{"source"},
	)

	// Recommendation Metrics
	RecommendationsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "recommendations_total",
			Help: "Total number of top-K recommendation requests",
		},
		[]string{"outcome"}, // "success", "not_found"
	)

	RecommendDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "recommend_duration_seconds",
			Help:    "Time spent ranking neighbours for one query",
			Buckets: []float64{0.0001, 0.0005, 0.001, 0.005, 0.01, 0.05, 0.1},
		},
	)

	// TMDB Gateway Metrics
	TMDBRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "tmdb_requests_total",
			Help: "Total number of TMDB API attempts",
		},
		[]string{"endpoint", "outcome"}, // outcome: "success", "transient", "permanent", "rejected"
	)

	TMDBRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "tmdb_request_duration_seconds",
			Help:    "Duration of TMDB API attempts in seconds",
			Buckets: []float64{0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
		},
		[]string{"endpoint"},
	)

	TMDBRetries = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "tmdb_retries_total",
			Help: "Total number of TMDB retries after a transient failure",
		},
		[]string{"endpoint"},
	)

	TMDBFallbacks = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "tmdb_fallbacks_total",
			Help: "Total number of placeholder or empty results served after gateway failure",
		},
		[]string{"kind"}, // "poster", "backdrop", "trailer", "trending"
	)

	// Circuit Breaker Metrics
	CircuitBreakerState = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "circuit_breaker_state",
			Help: "Circuit breaker state (0=closed, 1=half-open, 2=open)",
		},
		[]string{"name"},
	)

	CircuitBreakerRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "circuit_breaker_requests_total",
			Help: "Total number of requests through circuit breaker",
		},
		[]string{"name", "result"}, // result: "success", "failure", "rejected"
	)

	CircuitBreakerTransitions = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "circuit_breaker_state_transitions_total",
			Help: "Total number of circuit breaker state transitions",
		},
		[]string{"name", "from_state", "to_state"},
	)

	// Application Info
	AppInfo = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "app_info",
			Help: "Application version and build information",
		},
		[]string{"version", "go_version"},
	)

	AppUptime = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "app_uptime_seconds",
			Help: "Application uptime in seconds",
		},
	)

	ServiceStarts = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "supervised_service_starts_total",
			Help: "Times a supervised service entered Serve; values above one are restarts",
		},
		[]string{"service"},
	)
)

// RecordAPIRequest records an API request metric
func RecordAPIRequest(method, endpoint string, statusCode int, duration time.Duration) {
	APIRequestsTotal.WithLabelValues(method, endpoint, strconv.Itoa(statusCode)).Inc()
	APIRequestDuration.WithLabelValues(method, endpoint).Observe(duration.Seconds())
}

// TrackActiveRequest tracks active API requests
func TrackActiveRequest(inc bool) {
	if inc {
		APIActiveRequests.Inc()
	} else {
		APIActiveRequests.Dec()
	}
}

// RecordCatalogLoad records a completed snapshot load.
func RecordCatalogLoad(source string, items int, duration time.Duration) {
	CatalogLoadDuration.WithLabelValues(source).Observe(duration.Seconds())
	CatalogItems.Set(float64(items))
}

// RecordRecommendation records one top-K request.
func RecordRecommendation(found bool, duration time.Duration) {
	outcome := "success"
	if !found {
		outcome = "not_found"
	}
	RecommendationsTotal.WithLabelValues(outcome).Inc()
	RecommendDuration.Observe(duration.Seconds())
}

// RecordTMDBAttempt records a single TMDB HTTP attempt.
func RecordTMDBAttempt(endpoint, outcome string, duration time.Duration) {
	TMDBRequestsTotal.WithLabelValues(endpoint, outcome).Inc()
	TMDBRequestDuration.WithLabelValues(endpoint).Observe(duration.Seconds())
}

// RecordTMDBRetry records that a transient failure is being retried.
func RecordTMDBRetry(endpoint string) {
	TMDBRetries.WithLabelValues(endpoint).Inc()
}

// RecordTMDBFallback records that a placeholder was served.
func RecordTMDBFallback(kind string) {
	TMDBFallbacks.WithLabelValues(kind).Inc()
}

// SetAppInfo publishes version information.
func SetAppInfo(version, goVersion string) {
	AppInfo.WithLabelValues(version, goVersion).Set(1)
}

// UpdateUptime sets the uptime gauge relative to start.
func UpdateUptime(start time.Time) {
	AppUptime.Set(time.Since(start).Seconds())
}

// RecordServiceStart counts one Serve call of a supervised service.
func RecordServiceStart(service string) {
	ServiceStarts.WithLabelValues(service).Inc()
}
