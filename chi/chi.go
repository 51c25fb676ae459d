package chi

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/aatuh/api-shield/ports"
)

// ChiRouter wraps chi.Mux to implement ports.HTTPRouter.
type ChiRouter struct {
	*chi.Mux
}

// New creates a new chi router that implements ports.HTTPRouter.
func New() ports.HTTPRouter {
	return &ChiRouter{Mux: chi.NewRouter()}
}

// Middleware provides chi's request-scoped middlewares.
type Middleware struct{}

// NewMiddleware creates a new middleware instance that implements ports.HTTPMiddleware.
func NewMiddleware() ports.HTTPMiddleware {
	return &Middleware{}
}

// RequestID returns the request ID middleware.
func (m *Middleware) RequestID() func(http.Handler) http.Handler {
	return middleware.RequestID
}

// RealIP rewrites RemoteAddr from X-Real-IP / X-Forwarded-For, so the
// screener's block log reports the client rather than the proxy.
func (m *Middleware) RealIP() func(http.Handler) http.Handler {
	return middleware.RealIP
}
