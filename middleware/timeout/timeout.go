package timeout

import (
	"net/http"
	"time"
)

// Body is sent with the 503 when a handler overruns.
const Body = "request timeout"

// Middleware bounds handler run time. A zero Timeout disables it.
type Middleware struct {
	Timeout time.Duration
}

func New(d time.Duration) *Middleware { return &Middleware{Timeout: d} }

func (m *Middleware) Handler(next http.Handler) http.Handler {
	if m.Timeout <= 0 {
		return next
	}
	return http.TimeoutHandler(next, m.Timeout, Body)
}
