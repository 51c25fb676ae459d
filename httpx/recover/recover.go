package recover

import (
	"net/http"
	"runtime/debug"

	"github.com/aatuh/api-shield/httpx"
	"github.com/aatuh/api-shield/ports"
)

// Middleware converts panics into RFC-7807 problem+json responses. The panic
// value and stack go to the log, never to the client.
func Middleware(log ports.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				if rec := recover(); rec != nil {
					if rec == http.ErrAbortHandler {
						panic(rec)
					}
					if log != nil {
						log.Error("panic recovered",
							"panic", rec,
							"method", r.Method,
							"path", r.URL.Path,
							"stack", string(debug.Stack()),
						)
					}
					httpx.WriteProblem(w, http.StatusInternalServerError, httpx.Problem{
						Title:  http.StatusText(http.StatusInternalServerError),
						Detail: "internal server error",
					})
				}
			}()
			next.ServeHTTP(w, r)
		})
	}
}
