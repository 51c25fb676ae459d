package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metric names understood by PrometheusRecorder.
const (
	RequestsTotal   = "http_requests_total"
	RequestDuration = "http_request_duration_seconds"
	BlockedTotal    = "http_requests_blocked_total"
)

// Labels is a simple key:value map for metric dimensions.
type Labels map[string]string

// MetricsRecorder captures counters and histograms.
type MetricsRecorder interface {
	IncCounter(name string, labels Labels)
	ObserveHistogram(name string, value float64, labels Labels)
}

// PrometheusHandler returns the /metrics handler for the given gatherer,
// or the default registry when g is nil.
func PrometheusHandler(g prometheus.Gatherer) http.Handler {
	if g == nil {
		return promhttp.Handler()
	}
	return promhttp.HandlerFor(g, promhttp.HandlerOpts{})
}

// NoopMetrics discards everything.
type NoopMetrics struct{}

func (NoopMetrics) IncCounter(_ string, _ Labels)                  {}
func (NoopMetrics) ObserveHistogram(_ string, _ float64, _ Labels) {}

// Middleware instruments HTTP traffic using a provided recorder.
type Middleware struct {
	M MetricsRecorder
}

// New constructs a metrics middleware.
func New(m MetricsRecorder) *Middleware {
	if m == nil {
		m = NoopMetrics{}
	}
	return &Middleware{M: m}
}

// PrometheusRecorder implements MetricsRecorder using Prometheus client.
type PrometheusRecorder struct {
	requests  *prometheus.CounterVec
	durations *prometheus.HistogramVec
	blocked   *prometheus.CounterVec
}

// NewPrometheusRecorder wires counters and histograms with standard names.
// Consumers may pass a custom registerer (e.g. for testing). When nil, the
// default Prometheus registerer is used.
func NewPrometheusRecorder(registerer prometheus.Registerer, buckets []float64) *PrometheusRecorder {
	reg := registerer
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	if len(buckets) == 0 {
		buckets = []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10}
	}
	f := promauto.With(reg)
	return &PrometheusRecorder{
		requests: f.NewCounterVec(prometheus.CounterOpts{
			Name: RequestsTotal,
			Help: "Total number of HTTP requests",
		}, []string{"method", "route", "status"}),
		durations: f.NewHistogramVec(prometheus.HistogramOpts{
			Name:    RequestDuration,
			Help:    "HTTP request duration in seconds",
			Buckets: buckets,
		}, []string{"method", "route", "status"}),
		blocked: f.NewCounterVec(prometheus.CounterOpts{
			Name: BlockedTotal,
			Help: "Requests rejected by the request screener",
		}, []string{"source", "kind"}),
	}
}

func (p *PrometheusRecorder) IncCounter(name string, labels Labels) {
	if p == nil {
		return
	}
	if name == BlockedTotal {
		p.blocked.WithLabelValues(orDefault(labels["source"], "unknown"), orDefault(labels["kind"], "unknown")).Inc()
		return
	}
	method, route, status := sanitizeHTTPLabels(labels)
	p.requests.WithLabelValues(method, route, status).Inc()
}

func (p *PrometheusRecorder) ObserveHistogram(_ string, value float64, labels Labels) {
	if p == nil {
		return
	}
	method, route, status := sanitizeHTTPLabels(labels)
	p.durations.WithLabelValues(method, route, status).Observe(value)
}

// Handler wraps the next handler to record counters and duration.
func (mw *Middleware) Handler(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := &respWriter{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(ww, r)

		labels := Labels{
			"method": r.Method,
			"route":  routePattern(r),
			"path":   r.URL.Path,
			"status": strconv.Itoa(ww.status),
		}
		mw.M.IncCounter(RequestsTotal, labels)
		mw.M.ObserveHistogram(RequestDuration, time.Since(start).Seconds(), labels)
	})
}

// routePattern returns the matched chi pattern so that path parameters do
// not explode label cardinality. Unrouted requests report "unmatched".
func routePattern(r *http.Request) string {
	rctx := chi.RouteContext(r.Context())
	if rctx == nil {
		return r.URL.Path
	}
	if p := rctx.RoutePattern(); p != "" {
		return p
	}
	return "unmatched"
}

type respWriter struct {
	http.ResponseWriter
	status int
}

func (w *respWriter) WriteHeader(code int) {
	w.status = code
	w.ResponseWriter.WriteHeader(code)
}

func (w *respWriter) Unwrap() http.ResponseWriter { return w.ResponseWriter }

func orDefault(v, def string) string {
	if v == "" {
		return def
	}
	return v
}

func sanitizeHTTPLabels(labels Labels) (method, route, status string) {
	method = orDefault(labels["method"], "UNKNOWN")
	route = labels["route"]
	if route == "" {
		route = labels["path"]
	}
	route = orDefault(route, "unknown")
	status = orDefault(labels["status"], "0")
	return method, route, status
}
