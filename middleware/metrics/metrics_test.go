package metrics

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHandler_CountsByRoutePattern(t *testing.T) {
	reg := prometheus.NewRegistry()
	rec := NewPrometheusRecorder(reg, nil)

	r := chi.NewRouter()
	r.Use(New(rec).Handler)
	r.Get("/items/{id}", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusTeapot)
	})

	for _, p := range []string{"/items/1", "/items/2"} {
		r.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, p, nil))
	}

	got := testutil.ToFloat64(rec.requests.WithLabelValues("GET", "/items/{id}", "418"))
	assert.Equal(t, 2.0, got)
	assert.Equal(t, 1, testutil.CollectAndCount(rec.durations))
}

func TestRecorder_BlockedCounter(t *testing.T) {
	reg := prometheus.NewRegistry()
	rec := NewPrometheusRecorder(reg, nil)

	rec.IncCounter(BlockedTotal, Labels{"source": "query", "kind": "sql"})
	rec.IncCounter(BlockedTotal, Labels{"source": "query", "kind": "sql"})
	rec.IncCounter(BlockedTotal, Labels{"source": "body", "kind": "script"})

	expected := `
# HELP http_requests_blocked_total Requests rejected by the request screener
# TYPE http_requests_blocked_total counter
http_requests_blocked_total{kind="script",source="body"} 1
http_requests_blocked_total{kind="sql",source="query"} 2
`
	require.NoError(t, testutil.GatherAndCompare(reg, strings.NewReader(expected), BlockedTotal))
}

func TestPrometheusHandler_ServesRegistry(t *testing.T) {
	reg := prometheus.NewRegistry()
	rec := NewPrometheusRecorder(reg, nil)
	rec.IncCounter(BlockedTotal, Labels{"source": "user_agent", "kind": "sql"})

	w := httptest.NewRecorder()
	PrometheusHandler(reg).ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `http_requests_blocked_total{kind="sql",source="user_agent"} 1`)
}

func TestNilRecorderFallsBackToNoop(t *testing.T) {
	h := New(nil).Handler(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {}))
	w := httptest.NewRecorder()
	h.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))
	assert.Equal(t, http.StatusOK, w.Code)
}
