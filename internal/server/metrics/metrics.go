// Package metrics holds the Prometheus collectors of the addrkeeper server.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
)

// Outcome labels shared by login and authorization counters.
const (
	OutcomeSuccess      = "success"
	OutcomeNotFound     = "not_found"
	OutcomeExpired      = "expired"
	OutcomeLoggedOut    = "logged_out"
	OutcomeUnknown      = "unknown_account"
	OutcomeBadPassword  = "bad_credentials"
	OutcomeMalformed    = "malformed"
	OutcomeStoreFailure = "store_error"
)

// LoginTotal counts login attempts by outcome.
var LoginTotal = prometheus.NewCounterVec(
	prometheus.CounterOpts{
		Name: "addrkeeper_login_total",
		Help: "Total number of login attempts",
	},
	[]string{"outcome"},
)

// AuthorizationTotal counts authorization gate decisions by outcome.
var AuthorizationTotal = prometheus.NewCounterVec(
	prometheus.CounterOpts{
		Name: "addrkeeper_authorization_total",
		Help: "Total number of session authorization checks",
	},
	[]string{"outcome"},
)

// HTTPRequestsTotal counts served HTTP requests by route pattern and status.
var HTTPRequestsTotal = prometheus.NewCounterVec(
	prometheus.CounterOpts{
		Name: "addrkeeper_http_requests_total",
		Help: "Total number of HTTP requests",
	},
	[]string{"route", "status"},
)

// HTTPRequestDuration observes HTTP handler latency by route pattern.
var HTTPRequestDuration = prometheus.NewHistogramVec(
	prometheus.HistogramOpts{
		Name:    "addrkeeper_http_request_duration_seconds",
		Help:    "HTTP request duration in seconds",
		Buckets: prometheus.DefBuckets,
	},
	[]string{"route"},
)

// RegisterMetrics registers the server collectors with reg.
// Panics if registration fails (following prometheus convention).
func RegisterMetrics(reg prometheus.Registerer) {
	reg.MustRegister(LoginTotal)
	reg.MustRegister(AuthorizationTotal)
	reg.MustRegister(HTTPRequestsTotal)
	reg.MustRegister(HTTPRequestDuration)
}

// NewRegistry returns a registry with the runtime collectors and the server
// collectors registered.
func NewRegistry() *prometheus.Registry {
	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector())
	reg.MustRegister(collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	RegisterMetrics(reg)
	return reg
}

func RecordLogin(outcome string) {
	LoginTotal.WithLabelValues(outcome).Inc()
}

func RecordAuthorization(outcome string) {
	AuthorizationTotal.WithLabelValues(outcome).Inc()
}

func RecordHTTPRequest(route, status string, d time.Duration) {
	HTTPRequestsTotal.WithLabelValues(route, status).Inc()
	HTTPRequestDuration.WithLabelValues(route).Observe(d.Seconds())
}
