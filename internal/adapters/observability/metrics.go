package observability

import (
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog/log"
)

const namespace = "travel"

// Request path.
var (
	HTTPRequests = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "http_requests_total",
		Help:      "HTTP requests by route pattern, method and status.",
	}, []string{"route", "method", "status"})

	HTTPLatency = prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "http_request_duration_seconds",
		Help:      "HTTP request duration.",
		Buckets:   []float64{.005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5, 15},
	}, []string{"route", "method"})

	// outcome: ok|no_match|empty_catalog|error
	Recommendations = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "recommendations_total",
		Help:      "Recommendation requests by outcome.",
	}, []string{"outcome"})
)

// Dependencies.
var (
	ExternalRequests = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "external_requests_total",
		Help:      "Outbound API calls by service, endpoint and status (0 = transport error).",
	}, []string{"service", "endpoint", "status"})

	ExternalLatency = prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "external_request_duration_seconds",
		Help:      "Outbound API call duration.",
		Buckets:   prometheus.ExponentialBuckets(0.05, 2, 9),
	}, []string{"service", "endpoint"})

	// event: hit|miss|set|del|error
	CacheEvents = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "cache_events_total",
		Help:      "Cache operations by event.",
	}, []string{"cache", "event"})

	SeededDestinations = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "seeded_destinations_total",
		Help:      "Destinations written by the seeder.",
	})
)

var (
	regOnce sync.Once
	reg     *prometheus.Registry
)

// Registry returns the process registry holding every collector above plus
// the Go runtime and process collectors. Safe to call more than once.
func Registry() *prometheus.Registry {
	regOnce.Do(func() {
		reg = prometheus.NewRegistry()
		reg.MustRegister(
			HTTPRequests, HTTPLatency, Recommendations,
			ExternalRequests, ExternalLatency, CacheEvents, SeededDestinations,
			collectors.NewGoCollector(),
			collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		)
	})
	return reg
}

func MetricsHandler(r *prometheus.Registry) http.Handler {
	return promhttp.HandlerFor(r, promhttp.HandlerOpts{Registry: r})
}

// Serve exposes h at /metrics on a side port. Empty addr disables it.
func Serve(addr string, h http.Handler) {
	if addr == "" {
		return
	}
	mux := http.NewServeMux()
	mux.Handle("/metrics", h)
	srv := &http.Server{Addr: addr, Handler: mux, ReadHeaderTimeout: 5 * time.Second}

	go func() {
		log.Info().Str("addr", addr).Msg("metrics server listening")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Error().Err(err).Msg("metrics server failed")
		}
	}()
}

func ObserveHTTP(route, method string, status int, dur time.Duration) {
	HTTPRequests.WithLabelValues(route, method, strconv.Itoa(status)).Inc()
	HTTPLatency.WithLabelValues(route, method).Observe(dur.Seconds())
}

func ObserveExternal(service, endpoint string, status int, dur time.Duration) {
	ExternalRequests.WithLabelValues(service, endpoint, strconv.Itoa(status)).Inc()
	ExternalLatency.WithLabelValues(service, endpoint).Observe(dur.Seconds())
}

func ObserveCache(cache, event string) { CacheEvents.WithLabelValues(cache, event).Inc() }

func ObserveRecommendation(outcome string) { Recommendations.WithLabelValues(outcome).Inc() }
