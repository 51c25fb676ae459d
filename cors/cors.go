package cors

import (
	"net/http"

	"github.com/go-chi/cors"

	"github.com/aatuh/api-shield/ports"
)

// Handler provides CORS functionality.
type Handler struct{}

// New creates a new CORS handler that implements ports.CORSHandler.
func New() ports.CORSHandler {
	return &Handler{}
}

// DefaultOptions returns the options for the shield API: JSON posts from
// the given origins, no credentials.
func DefaultOptions(origins ...string) ports.CORSOptions {
	if len(origins) == 0 {
		origins = []string{"*"}
	}
	return ports.CORSOptions{
		AllowedOrigins:   origins,
		AllowedMethods:   []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowedHeaders:   []string{"Accept", "Content-Type", "X-Request-Id"},
		AllowCredentials: false,
		MaxAge:           300,
	}
}

// Handler returns a CORS handler with the given options.
func (h *Handler) Handler(opts ports.CORSOptions) func(http.Handler) http.Handler {
	return cors.Handler(cors.Options{
		AllowedOrigins:   opts.AllowedOrigins,
		AllowedMethods:   opts.AllowedMethods,
		AllowedHeaders:   opts.AllowedHeaders,
		ExposedHeaders:   []string{"X-Request-Id"},
		AllowCredentials: opts.AllowCredentials,
		MaxAge:           opts.MaxAge,
	})
}
