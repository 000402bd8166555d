// Package metrics provides Prometheus instrumentation for the Bistro API.
//
// Wire it once in the HTTP kernel:
//
//	r.Use(metrics.Middleware())
//	r.Handle("/metrics", "metrics", metrics.Handler())
package metrics

import (
	"context"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "bistro"

// ─────────────────────────────────────────────
// HTTP metrics
// ─────────────────────────────────────────────

var (
	RequestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "http",
			Name:      "request_duration_seconds",
			Help:      "Duration of HTTP requests in seconds.",
			Buckets:   prometheus.DefBuckets,
		},
		[]string{"method", "code", "route"},
	)

	RequestTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "http",
			Name:      "requests_total",
			Help:      "Total number of HTTP requests.",
		},
		[]string{"method", "code", "route"},
	)

	RequestInFlight = prometheus.NewGauge(prometheus.GaugeOpts{
		Namespace: namespace,
		Subsystem: "http",
		Name:      "requests_in_flight",
		Help:      "Number of HTTP requests currently being served.",
	})

	ResponseSize = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "http",
			Name:      "response_size_bytes",
			Help:      "Response body sizes in bytes.",
			Buckets:   []float64{100, 1_000, 10_000, 100_000, 1_000_000},
		},
		[]string{"method", "route"},
	)
)

// ─────────────────────────────────────────────
// Store and cache metrics
// ─────────────────────────────────────────────

var (
	StoreDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "store",
			Name:      "operation_duration_seconds",
			Help:      "Duration of document store operations in seconds.",
			Buckets:   []float64{.001, .005, .01, .025, .05, .1, .5, 1},
		},
		[]string{"collection", "operation"},
	)

	CacheHits = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "cache",
			Name:      "hits_total",
			Help:      "Total cache hits.",
		},
		[]string{"key"},
	)

	CacheMisses = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "cache",
			Name:      "misses_total",
			Help:      "Total cache misses.",
		},
		[]string{"key"},
	)
)

// ─────────────────────────────────────────────
// Business metrics
// ─────────────────────────────────────────────

var (
	TokensIssued = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: "auth",
		Name:      "tokens_issued_total",
		Help:      "Access tokens signed by POST /jwt.",
	})

	AuthDenied = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "auth",
			Name:      "denied_total",
			Help:      "Requests rejected by the identity gate.",
		},
		[]string{"reason"}, // missing_token | invalid_token | not_admin | identity_mismatch
	)

	PaymentsRecorded = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: "payments",
		Name:      "recorded_total",
		Help:      "Completed checkouts written to the payments collection.",
	})

	PaymentIntentAmount = prometheus.NewHistogram(prometheus.HistogramOpts{
		Namespace: namespace,
		Subsystem: "payments",
		Name:      "intent_amount_minor_units",
		Help:      "Amounts of created payment intents in minor currency units.",
		Buckets:   []float64{500, 1_000, 2_500, 5_000, 10_000, 25_000, 50_000},
	})
)

// DefaultRegistry holds every Bistro collector plus Go/process collectors.
var DefaultRegistry = prometheus.NewRegistry()

func init() {
	DefaultRegistry.MustRegister(collectors.NewGoCollector())
	DefaultRegistry.MustRegister(collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))

	DefaultRegistry.MustRegister(
		RequestDuration,
		RequestTotal,
		RequestInFlight,
		ResponseSize,
		StoreDuration,
		CacheHits,
		CacheMisses,
		TokensIssued,
		AuthDenied,
		PaymentsRecorded,
		PaymentIntentAmount,
	)
}

// Middleware instruments every request with the promhttp wrappers. The
// route label is the chi pattern, read after routing has finished, so ids
// in the path never become label values.
func Middleware() func(http.Handler) http.Handler {
	route := promhttp.WithLabelFromCtx("route", routePattern)
	return func(next http.Handler) http.Handler {
		h := promhttp.InstrumentHandlerResponseSize(ResponseSize, next, route)
		h = promhttp.InstrumentHandlerCounter(RequestTotal, h, route)
		h = promhttp.InstrumentHandlerDuration(RequestDuration, h, route)
		return promhttp.InstrumentHandlerInFlight(RequestInFlight, h)
	}
}

func routePattern(ctx context.Context) string {
	if rctx := chi.RouteContext(ctx); rctx != nil {
		if p := rctx.RoutePattern(); p != "" {
			return p
		}
	}
	return "unmatched"
}

// Handler exposes the registry in Prometheus text and OpenMetrics formats.
func Handler() http.HandlerFunc {
	h := promhttp.HandlerFor(DefaultRegistry, promhttp.HandlerOpts{
		EnableOpenMetrics: true,
	})
	return h.ServeHTTP
}

// ObserveStore records a store operation latency:
//
//	defer metrics.ObserveStore("payments", "insert", time.Now())
func ObserveStore(collection, operation string, start time.Time) {
	StoreDuration.WithLabelValues(collection, operation).Observe(time.Since(start).Seconds())
}
