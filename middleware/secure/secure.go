package secure

import (
	"net/http"

	"github.com/aatuh/api-shield/ports"
	"github.com/aatuh/api-shield/secure"
)

// Handler adds the static security headers once the wrapped handler has
// produced its response. HSTS is only set when enabled and TLS is detected.
// Headers are also committed when the handler panics, so a recovery layer
// further out writes its error response with them in place.
type Handler struct {
	opts secure.Options
}

func New(opts secure.Options) ports.SecurityHandler { return &Handler{opts: opts} }

func (h *Handler) Middleware() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			tls := r.TLS != nil
			dw := secure.Decorate(w, func(hdr http.Header) {
				secure.Apply(hdr, tls, h.opts)
			})
			defer dw.Finish()
			next.ServeHTTP(dw, r)
		})
	}
}
