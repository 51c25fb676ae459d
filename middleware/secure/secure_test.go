package secure

import (
	"crypto/tls"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/aatuh/api-shield/csp"
	recoverx "github.com/aatuh/api-shield/httpx/recover"
	"github.com/aatuh/api-shield/secure"
)

func serve(h http.Handler, r *http.Request) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	New(secure.Options{HSTS: true}).Middleware()(h).ServeHTTP(rec, r)
	return rec
}

func TestMiddleware_AddsHeadersToHandlerResponse(t *testing.T) {
	rec := serve(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusAccepted)
		_, _ = w.Write([]byte(`{}`))
	}), httptest.NewRequest(http.MethodGet, "/", nil))

	assert.Equal(t, http.StatusAccepted, rec.Code)
	assert.Equal(t, "nosniff", rec.Header().Get("X-Content-Type-Options"))
	assert.Equal(t, "DENY", rec.Header().Get("X-Frame-Options"))
	assert.Equal(t, "1; mode=block", rec.Header().Get("X-XSS-Protection"))
	assert.Equal(t, "strict-origin-when-cross-origin", rec.Header().Get("Referrer-Policy"))
	assert.Equal(t, csp.Fallback().String(), rec.Header().Get(csp.HeaderName))
	assert.Empty(t, rec.Header().Get("Strict-Transport-Security"))
}

func TestMiddleware_HandlerCSPWins(t *testing.T) {
	rec := serve(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set(csp.HeaderName, "default-src 'none'")
		_, _ = w.Write([]byte("ok"))
	}), httptest.NewRequest(http.MethodGet, "/", nil))

	assert.Equal(t, "default-src 'none'", rec.Header().Get(csp.HeaderName))
}

func TestMiddleware_EmptyHandlerStillDecorated(t *testing.T) {
	rec := serve(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {}),
		httptest.NewRequest(http.MethodGet, "/", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "nosniff", rec.Header().Get("X-Content-Type-Options"))
}

func TestMiddleware_HSTSOnTLS(t *testing.T) {
	r := httptest.NewRequest(http.MethodGet, "https://example.com/", nil)
	r.TLS = &tls.ConnectionState{}
	rec := serve(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte("ok"))
	}), r)

	assert.Equal(t, secure.HSTSValue, rec.Header().Get("Strict-Transport-Security"))
}

func TestMiddleware_PanicResponseCarriesHeaders(t *testing.T) {
	h := recoverx.Middleware(nil)(New(secure.Options{}).Middleware()(
		http.HandlerFunc(func(http.ResponseWriter, *http.Request) { panic("boom") })))

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Equal(t, "application/problem+json", rec.Header().Get("Content-Type"))
	assert.Equal(t, "nosniff", rec.Header().Get("X-Content-Type-Options"))
	assert.Equal(t, "DENY", rec.Header().Get("X-Frame-Options"))
	assert.Equal(t, csp.Fallback().String(), rec.Header().Get(csp.HeaderName))
}
