// Package metrics provides Prometheus instrumentation for flickhunt.
//
// Metrics exposed at GET /metrics by the web front:
//
//	flickhunt_lookups_total                  counter: movie lookups by kind and outcome
//	flickhunt_lookup_duration_seconds        histogram: remote lookup latency by kind
//	flickhunt_stale_responses_total          counter: responses dropped because a newer request superseded them
//	flickhunt_http_requests_total            counter: HTTP requests by method, route and status
//	flickhunt_http_request_duration_seconds  histogram: HTTP latency by method and route
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Lookup outcomes.
const (
	OutcomeOK       = "ok"
	OutcomeEmpty    = "empty"
	OutcomeNotFound = "not_found"
	OutcomeRemote   = "remote_error"
	OutcomeNetwork  = "network_error"
)

// Lookups counts remote lookups by kind (search, trending, detail) and outcome.
var Lookups = promauto.NewCounterVec(prometheus.CounterOpts{
	Name: "flickhunt_lookups_total",
	Help: "Movie lookups against the metadata provider.",
}, []string{"kind", "outcome"})

// LookupDuration tracks remote lookup latency.
var LookupDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
	Name:    "flickhunt_lookup_duration_seconds",
	Help:    "Metadata provider request latency in seconds.",
	Buckets: prometheus.DefBuckets,
}, []string{"kind"})

// StaleResponses counts lookup results discarded by the orchestrators.
var StaleResponses = promauto.NewCounterVec(prometheus.CounterOpts{
	Name: "flickhunt_stale_responses_total",
	Help: "Lookup responses ignored because a newer request superseded them.",
}, []string{"view"})

// HTTPRequests counts HTTP requests by method, route and status code.
var HTTPRequests = promauto.NewCounterVec(prometheus.CounterOpts{
	Name: "flickhunt_http_requests_total",
	Help: "Total HTTP requests handled.",
}, []string{"method", "route", "status"})

// HTTPDuration tracks HTTP request latency.
var HTTPDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
	Name:    "flickhunt_http_request_duration_seconds",
	Help:    "HTTP request latency in seconds.",
	Buckets: prometheus.DefBuckets,
}, []string{"method", "route"})

// ObserveLookup records one remote lookup.
func ObserveLookup(kind, outcome string, elapsed time.Duration) {
	Lookups.WithLabelValues(kind, outcome).Inc()
	LookupDuration.WithLabelValues(kind).Observe(elapsed.Seconds())
}

// ObserveHTTP records one served HTTP request.
func ObserveHTTP(method, route string, status int, elapsed time.Duration) {
	HTTPRequests.WithLabelValues(method, route, strconv.Itoa(status)).Inc()
	HTTPDuration.WithLabelValues(method, route).Observe(elapsed.Seconds())
}

// Handler returns the Prometheus scrape handler.
func Handler() http.Handler {
	return promhttp.Handler()
}
