// Package metrics provides Prometheus instrumentation for Dokon.
//
// Every outgoing API call is recorded with its resource, method and status,
// so an embedding application can watch backend latency and error rates from
// the client's point of view. Mount Handler on any mux you already serve:
//
//	mux.Handle("/metrics", metrics.Handler())
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	// RequestDuration tracks how long each backend API call takes,
	// broken down by resource, method and status code.
	RequestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "dokon",
			Subsystem: "api",
			Name:      "request_duration_seconds",
			Help:      "Duration of backend API calls in seconds.",
			Buckets:   prometheus.DefBuckets, // .005 .01 .025 .05 .1 .25 .5 1 2.5 5 10
		},
		[]string{"resource", "method", "status"},
	)

	// RequestTotal counts all backend API calls.
	RequestTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "dokon",
			Subsystem: "api",
			Name:      "requests_total",
			Help:      "Total number of backend API calls.",
		},
		[]string{"resource", "method", "status"},
	)

	// RequestInFlight tracks how many API calls are currently in flight.
	RequestInFlight = prometheus.NewGauge(prometheus.GaugeOpts{
		Namespace: "dokon",
		Subsystem: "api",
		Name:      "requests_in_flight",
		Help:      "Number of backend API calls currently in flight.",
	})

	// StoreMutations counts state-container mutations by store and outcome.
	StoreMutations = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "dokon",
			Subsystem: "store",
			Name:      "mutations_total",
			Help:      "Total store mutations.",
		},
		[]string{"store", "op", "outcome"}, // outcome: "applied" | "failed"
	)
)

// DefaultRegistry is the Prometheus registry used by Dokon.
// Register your own metrics against this.
var DefaultRegistry = prometheus.NewRegistry()

func init() {
	// Go runtime metrics (GC, goroutines, memory)
	DefaultRegistry.MustRegister(collectors.NewGoCollector())
	// OS process metrics (CPU, open FDs)
	DefaultRegistry.MustRegister(collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))

	DefaultRegistry.MustRegister(
		RequestDuration,
		RequestTotal,
		RequestInFlight,
		StoreMutations,
	)
}

// Register lets you add your own prometheus.Collector to the Dokon registry.
func Register(c prometheus.Collector) error {
	return DefaultRegistry.Register(c)
}

// MustRegister panics if registration fails.
func MustRegister(c ...prometheus.Collector) {
	DefaultRegistry.MustRegister(c...)
}

// ObserveAPICall records one backend call with a simple timer:
//
//	defer metrics.ObserveAPICall("cart", "POST", &status, time.Now())
func ObserveAPICall(resource, method string, status int, start time.Time) {
	s := strconv.Itoa(status)
	RequestDuration.WithLabelValues(resource, method, s).Observe(time.Since(start).Seconds())
	RequestTotal.WithLabelValues(resource, method, s).Inc()
}

// RecordMutation records one store mutation outcome.
func RecordMutation(store, op string, applied bool) {
	outcome := "applied"
	if !applied {
		outcome = "failed"
	}
	StoreMutations.WithLabelValues(store, op, outcome).Inc()
}

// Handler returns an http.HandlerFunc that exposes the Prometheus metrics page.
func Handler() http.HandlerFunc {
	h := promhttp.HandlerFor(DefaultRegistry, promhttp.HandlerOpts{
		EnableOpenMetrics: true, // enables text/plain AND OpenMetrics formats
	})
	return h.ServeHTTP
}
