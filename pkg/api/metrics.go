package api

import (
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const (
	statusSuccess = "success"
	statusError   = "error"
)

// Metrics holds the Prometheus metrics for the API. A nil *Metrics records
// nothing.
type Metrics struct {
	httpRequestsTotal   *prometheus.CounterVec
	httpRequestDuration *prometheus.HistogramVec

	appendsTotal   *prometheus.CounterVec
	appendDuration *prometheus.HistogramVec
	recordsRead    *prometheus.CounterVec
	readHalts      *prometheus.CounterVec

	handler http.Handler
}

// NewMetrics creates the metrics and registers them on reg. If reg is also a
// prometheus.Gatherer, Handler serves that registry.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)

	m := &Metrics{
		httpRequestsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "objlog_http_requests_total",
				Help: "Total number of HTTP requests",
			},
			[]string{"method", "endpoint", "status_code"},
		),
		httpRequestDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "objlog_http_request_duration_seconds",
				Help:    "HTTP request duration in seconds",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"method", "endpoint"},
		),
		appendsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "objlog_appends_total",
				Help: "Total number of log appends",
			},
			[]string{"format", "status"},
		),
		appendDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "objlog_append_duration_seconds",
				Help:    "Log append duration in seconds",
				Buckets: prometheus.ExponentialBuckets(0.00005, 2, 14),
			},
			[]string{"format"},
		),
		recordsRead: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "objlog_records_read_total",
				Help: "Total number of records returned by log reads",
			},
			[]string{"format"},
		),
		readHalts: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "objlog_read_halts_total",
				Help: "Binary log reads by the reason they stopped",
			},
			[]string{"reason"},
		),
	}

	if g, ok := reg.(prometheus.Gatherer); ok {
		m.handler = promhttp.HandlerFor(g, promhttp.HandlerOpts{})
	} else {
		m.handler = promhttp.Handler()
	}

	return m
}

// Handler serves the metrics in the Prometheus exposition format
func (m *Metrics) Handler() http.Handler {
	if m == nil || m.handler == nil {
		return promhttp.Handler()
	}
	return m.handler
}

// InstrumentHandler records request count and latency for a route
func (m *Metrics) InstrumentHandler(method, endpoint string, next http.HandlerFunc) http.HandlerFunc {
	if m == nil {
		return next
	}
	return func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)

		next(ww, r)

		status := ww.Status()
		if status == 0 {
			status = http.StatusOK
		}
		m.httpRequestsTotal.WithLabelValues(method, endpoint, strconv.Itoa(status)).Inc()
		m.httpRequestDuration.WithLabelValues(method, endpoint).Observe(time.Since(start).Seconds())
	}
}

// RecordAppend records one append attempt
func (m *Metrics) RecordAppend(format string, success bool, duration time.Duration) {
	if m == nil {
		return
	}
	status := statusSuccess
	if !success {
		status = statusError
	}
	m.appendsTotal.WithLabelValues(format, status).Inc()
	m.appendDuration.WithLabelValues(format).Observe(duration.Seconds())
}

// RecordRead records the records returned by one read
func (m *Metrics) RecordRead(format string, records int) {
	if m == nil {
		return
	}
	m.recordsRead.WithLabelValues(format).Add(float64(records))
}

// RecordHalt records why a binary read stopped
func (m *Metrics) RecordHalt(reason string) {
	if m == nil {
		return
	}
	m.readHalts.WithLabelValues(reason).Inc()
}
