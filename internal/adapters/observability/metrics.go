package observability

import (
	"fmt"
	"github.com/rs/zerolog/log"
	"net/http"
	"os"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	HTTPRequests = prometheus.NewCounterVec(
		prometheus.CounterOpts{Namespace: "hotelalloc", Name: "http_requests_total", Help: "HTTP requests."},
		[]string{"route", "method", "status"},
	)
	HTTPLatency = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "hotelalloc", Name: "http_request_duration_seconds",
			Help:    "HTTP request duration seconds.",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"route", "method"},
	)
	ExternalRequests = prometheus.NewCounterVec(
		prometheus.CounterOpts{Namespace: "hotelalloc", Name: "external_requests_total", Help: "Outbound requests."},
		[]string{"service", "endpoint", "status"},
	)
	ExternalLatency = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "hotelalloc", Name: "external_request_duration_seconds",
			Help:    "Outbound request duration seconds.",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"service", "endpoint"},
	)
	CacheEvents = prometheus.NewCounterVec(
		prometheus.CounterOpts{Namespace: "hotelalloc", Name: "cache_events_total", Help: "Cache hits/misses/sets/dels."},
		[]string{"cache", "event"}, // event: hit|miss|set|del
	)
	Solves = prometheus.NewCounterVec(
		prometheus.CounterOpts{Namespace: "hotelalloc", Name: "solves_total", Help: "Solve calls by outcome."},
		[]string{"outcome"}, // feasible|infeasible|invalid|error
	)
	SolveDuration = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Namespace: "hotelalloc", Name: "solve_duration_seconds",
			Help:    "Wall-clock solve duration seconds.",
			Buckets: []float64{.01, .05, .1, .5, 1, 5, 10, 30, 60, 120},
		},
	)
	SolveIterations = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Namespace: "hotelalloc", Name: "solve_iterations",
			Help:    "Optimizer iterations per solve.",
			Buckets: prometheus.ExponentialBuckets(1, 4, 8),
		},
	)
	SolveHardScore = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Namespace: "hotelalloc", Name: "solve_hard_score",
			Help:    "Final hard score per solve; 0 is feasible.",
			Buckets: []float64{-50, -20, -10, -5, -2, -1, 0},
		},
	)
)

func Serve() {
	addr := os.Getenv("METRICS_ADDR")
	if addr == "" {
		return // disabled
	}
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())

	go func() {
		srv := &http.Server{
			Addr:              addr,
			Handler:           mux,
			ReadHeaderTimeout: 5 * time.Second,
		}
		log.Info().Str("addr", addr).Msg("metrics server listening")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Error().Err(err).Msg("metrics server failed")
		}
	}()
}

func InitRegistry() *prometheus.Registry {
	reg := prometheus.NewRegistry()
	reg.MustRegister(HTTPRequests, HTTPLatency, ExternalRequests, ExternalLatency, CacheEvents,
		Solves, SolveDuration, SolveIterations, SolveHardScore)
	return reg
}

func MetricsHandler(reg *prometheus.Registry) http.Handler {
	return promhttp.HandlerFor(reg, promhttp.HandlerOpts{})
}

func ObserveHTTP(route, method string, status int, dur time.Duration) {
	HTTPRequests.WithLabelValues(route, method, strconv.Itoa(status)).Inc()
	HTTPLatency.WithLabelValues(route, method).Observe(dur.Seconds())
}

func ObserveExternal(service, endpoint string, status int, dur time.Duration) {
	ExternalRequests.WithLabelValues(service, endpoint, strconv.Itoa(status)).Inc()
	ExternalLatency.WithLabelValues(service, endpoint).Observe(dur.Seconds())
}

func ObserveCache(cache, event string) { // event: hit|miss|set|del
	CacheEvents.WithLabelValues(cache, event).Inc()
}

// ObserveSolve counts every outcome; timing and iterations only for
// completed solves (feasible|infeasible).
func ObserveSolve(outcome string, dur time.Duration, iterations int) {
	Solves.WithLabelValues(outcome).Inc()
	if outcome == "feasible" || outcome == "infeasible" {
		SolveDuration.Observe(dur.Seconds())
		SolveIterations.Observe(float64(iterations))
	}
}

func ObserveHardScore(hard int) { SolveHardScore.Observe(float64(hard)) }

func LabelErr(err error) string {
	if err == nil {
		return "none"
	}
	return fmt.Sprintf("%T", err)
}
