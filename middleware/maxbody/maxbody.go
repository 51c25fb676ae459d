package maxbody

import (
	"net/http"

	"github.com/aatuh/api-shield/httpx"
)

// Middleware caps request bodies. Requests that announce a larger
// Content-Length are refused up front; the rest are read through
// http.MaxBytesReader so later readers see *http.MaxBytesError.
type Middleware struct {
	MaxBytes int64
}

func New(max int64) *Middleware { return &Middleware{MaxBytes: max} }

func (m *Middleware) Handler(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if m.MaxBytes <= 0 || r.Body == nil || r.Body == http.NoBody {
			next.ServeHTTP(w, r)
			return
		}
		if r.ContentLength > m.MaxBytes {
			httpx.WriteSimpleProblem(w, http.StatusRequestEntityTooLarge,
				http.StatusText(http.StatusRequestEntityTooLarge), "request body too large")
			return
		}
		r.Body = http.MaxBytesReader(w, r.Body, m.MaxBytes)
		next.ServeHTTP(w, r)
	})
}
