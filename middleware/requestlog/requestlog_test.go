package requestlog

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5/middleware"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/aatuh/api-shield/logzap"
)

func TestHandler_LogsRequest(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	mw := New(logzap.New(zap.New(core)))

	h := middleware.RequestID(mw.Handler(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusCreated)
		_, _ = w.Write([]byte("hello"))
	})))

	r := httptest.NewRequest(http.MethodPost, "/v1/things", nil)
	r.RemoteAddr = "10.0.0.7:5123"
	r.Header.Set("User-Agent", "curl/8.0")
	h.ServeHTTP(httptest.NewRecorder(), r)

	require.Equal(t, 1, logs.Len())
	entry := logs.All()[0]
	assert.Equal(t, zapcore.InfoLevel, entry.Level)
	fields := entry.ContextMap()
	assert.Equal(t, "POST", fields["method"])
	assert.Equal(t, "/v1/things", fields["path"])
	assert.EqualValues(t, 201, fields["status"])
	assert.EqualValues(t, 5, fields["bytes"])
	assert.Equal(t, "10.0.0.7", fields["ip"])
	assert.Equal(t, "curl/8.0", fields["ua"])
	assert.NotEmpty(t, fields["rid"])
}

func TestHandler_ServerErrorsLogAtError(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	h := New(logzap.New(zap.New(core))).Handler(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	h.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/", nil))

	require.Equal(t, 1, logs.Len())
	assert.Equal(t, zapcore.ErrorLevel, logs.All()[0].Level)
}

func TestClientIP(t *testing.T) {
	r := httptest.NewRequest(http.MethodGet, "/", nil)
	r.RemoteAddr = "192.0.2.1:1234"
	assert.Equal(t, "192.0.2.1", ClientIP(r))

	r.Header.Set("X-Forwarded-For", "203.0.113.9, 10.0.0.1")
	assert.Equal(t, "203.0.113.9", ClientIP(r))

	r.Header.Del("X-Forwarded-For")
	r.RemoteAddr = "not-a-hostport"
	assert.Equal(t, "not-a-hostport", ClientIP(r))
}
