package api

import (
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics holds the collectors served on /metrics.
type Metrics struct {
	registry        *prometheus.Registry
	requestsTotal   *prometheus.CounterVec
	requestDuration *prometheus.HistogramVec
	recordsServed   prometheus.Counter
	outOfRange      prometheus.Gauge
}

// NewMetrics registers the collectors on a registry of their own so several
// servers can live in one process.
func NewMetrics() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		requestsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "thermolog",
			Name:      "http_requests_total",
			Help:      "Total count of HTTP requests processed by route and status.",
		}, []string{"route", "status"}),
		requestDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "thermolog",
			Name:      "http_request_duration_seconds",
			Help:      "Histogram of HTTP request durations by route.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"route"}),
		recordsServed: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "thermolog",
			Name:      "records_served_total",
			Help:      "Total readings returned by the report, records and export routes.",
		}),
		outOfRange: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "thermolog",
			Name:      "last_report_out_of_range",
			Help:      "Out-of-range readings in the most recent report.",
		}),
	}
	m.registry.MustRegister(
		collectors.NewGoCollector(),
		m.requestsTotal,
		m.requestDuration,
		m.recordsServed,
		m.outOfRange,
	)
	return m
}

// Handler serves the registry in the Prometheus text format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

// Middleware counts requests by chi route pattern and response status.
func (m *Metrics) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		start := time.Now()

		next.ServeHTTP(ww, r)

		route := "unmatched"
		if rctx := chi.RouteContext(r.Context()); rctx != nil && rctx.RoutePattern() != "" {
			route = rctx.RoutePattern()
		}
		status := ww.Status()
		if status == 0 {
			status = http.StatusOK
		}
		m.requestsTotal.WithLabelValues(route, strconv.Itoa(status)).Inc()
		m.requestDuration.WithLabelValues(route).Observe(time.Since(start).Seconds())
	})
}

func (m *Metrics) servedRecords(n int) {
	m.recordsServed.Add(float64(n))
}

func (m *Metrics) reportedOutOfRange(n int) {
	m.outOfRange.Set(float64(n))
}
