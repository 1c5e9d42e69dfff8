// Package metrics exposes Prometheus instrumentation for solver runs and
// HTTP traffic.
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "knapsack"

// Collector holds the Prometheus metrics for one process. Each Collector owns
// its own registry so tests can create as many as they need.
type Collector struct {
	registry *prometheus.Registry

	SolveDuration *prometheus.HistogramVec
	SolvesTotal   *prometheus.CounterVec
	SolutionSize  *prometheus.GaugeVec
	HTTPRequests  *prometheus.CounterVec
}

// NewCollector creates and registers all metrics.
func NewCollector() *Collector {
	registry := prometheus.NewRegistry()

	c := &Collector{
		registry: registry,
		SolveDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "solve_duration_seconds",
				Help:      "Wall-clock duration of a single solver run",
				Buckets:   prometheus.ExponentialBuckets(1e-6, 4, 14),
			},
			[]string{"algorithm"},
		),
		SolvesTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "solves_total",
				Help:      "Total number of completed solver runs",
			},
			[]string{"algorithm"},
		),
		SolutionSize: prometheus.NewGaugeVec(
			prometheus.GaugeOpts{
				Namespace: namespace,
				Name:      "last_solution_total_size",
				Help:      "Total size of the most recent solution",
			},
			[]string{"algorithm"},
		),
		HTTPRequests: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "http_requests_total",
				Help:      "Total number of HTTP requests",
			},
			[]string{"method", "route", "status"},
		),
	}

	registry.MustRegister(c.SolveDuration, c.SolvesTotal, c.SolutionSize, c.HTTPRequests)
	return c
}

// ObserveSolve records one finished solver run.
func (c *Collector) ObserveSolve(algorithm string, elapsed time.Duration, totalSize int) {
	if c == nil {
		return
	}
	c.SolveDuration.WithLabelValues(algorithm).Observe(elapsed.Seconds())
	c.SolvesTotal.WithLabelValues(algorithm).Inc()
	c.SolutionSize.WithLabelValues(algorithm).Set(float64(totalSize))
}

// ObserveRequest records one served HTTP request. route must be a registered
// route pattern, never a raw request path, to keep the label set bounded.
func (c *Collector) ObserveRequest(method, route string, status int) {
	if c == nil {
		return
	}
	c.HTTPRequests.WithLabelValues(method, route, strconv.Itoa(status)).Inc()
}

// Handler serves the registry in the Prometheus exposition format.
func (c *Collector) Handler() http.Handler {
	return promhttp.HandlerFor(c.registry, promhttp.HandlerOpts{})
}
