package cspmw

import (
	"net/http"

	"github.com/aatuh/api-shield/csp"
	"github.com/aatuh/api-shield/secure"
)

// Middleware sets Content-Security-Policy on every response, replacing any
// value set further down the chain.
type Middleware struct {
	value string
}

// New serializes p once; the policy is not consulted again per request.
func New(p csp.Policy) *Middleware { return &Middleware{value: p.String()} }

// Value is the header value this middleware sends.
func (m *Middleware) Value() string { return m.value }

func (m *Middleware) Handler(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		dw := secure.Decorate(w, func(h http.Header) {
			h.Set(csp.HeaderName, m.value)
		})
		defer dw.Finish()
		next.ServeHTTP(dw, r)
	})
}
