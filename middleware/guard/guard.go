package guard

import (
	"errors"
	"io"
	"net/http"

	"github.com/mssola/useragent"
	"go.uber.org/zap"

	"github.com/aatuh/api-shield/httpx"
	"github.com/aatuh/api-shield/idgen"
	"github.com/aatuh/api-shield/logzap"
	metricsmw "github.com/aatuh/api-shield/middleware/metrics"
	securemw "github.com/aatuh/api-shield/middleware/secure"
	"github.com/aatuh/api-shield/ports"
	"github.com/aatuh/api-shield/screen"
	"github.com/aatuh/api-shield/secure"
)

// BlockedBody is the fixed response body for a screened-out request.
const BlockedBody = "request blocked for security reasons"

// Options wires the guard. Nil fields fall back to defaults.
type Options struct {
	Screener *screen.Screener
	Log      ports.Logger
	IDs      ports.IDGen
	Metrics  metricsmw.MetricsRecorder
	Headers  ports.SecurityHandler
}

// Middleware screens every request before dispatch. Denied requests get a
// bare 403; allowed ones run through the security header decorator.
type Middleware struct {
	screener *screen.Screener
	log      ports.Logger
	ids      ports.IDGen
	metrics  metricsmw.MetricsRecorder
	headers  ports.SecurityHandler
}

func New(opts Options) *Middleware {
	m := &Middleware{
		screener: opts.Screener,
		log:      opts.Log,
		ids:      opts.IDs,
		metrics:  opts.Metrics,
		headers:  opts.Headers,
	}
	if m.log == nil {
		m.log = logzap.New(zap.NewNop())
	}
	if m.screener == nil {
		m.screener = screen.New(0)
	}
	if m.ids == nil {
		m.ids = idgen.NewULIDGen()
	}
	if m.metrics == nil {
		m.metrics = metricsmw.NoopMetrics{}
	}
	if m.headers == nil {
		m.headers = securemw.New(secure.Options{})
	}
	return m
}

func (m *Middleware) Handler(next http.Handler) http.Handler {
	decorated := m.headers.Middleware()(next)
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		finding, blocked, err := m.screener.Screen(r)
		if err != nil {
			m.unreadable(w, r, err)
			return
		}
		if blocked {
			m.block(w, r, finding)
			return
		}
		decorated.ServeHTTP(w, r)
	})
}

func (m *Middleware) block(w http.ResponseWriter, r *http.Request, f screen.Finding) {
	incident := m.ids.New()
	ua := useragent.New(r.UserAgent())
	client, version := ua.Browser()

	m.log.Warn("request blocked",
		"incident", incident,
		"remote_addr", r.RemoteAddr,
		"method", r.Method,
		"path", r.URL.Path,
		"source", string(f.Source),
		"kind", string(f.Kind),
		"client", client,
		"client_version", version,
		"bot", ua.Bot(),
	)
	m.metrics.IncCounter(metricsmw.BlockedTotal, metricsmw.Labels{
		"source": string(f.Source),
		"kind":   string(f.Kind),
	})

	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(http.StatusForbidden)
	_, _ = io.WriteString(w, BlockedBody)
}

func (m *Middleware) unreadable(w http.ResponseWriter, r *http.Request, err error) {
	if errors.Is(err, screen.ErrBodyTooLarge) {
		m.log.Warn("request body too large to screen",
			"remote_addr", r.RemoteAddr, "path", r.URL.Path)
		httpx.WriteSimpleProblem(w, http.StatusRequestEntityTooLarge,
			http.StatusText(http.StatusRequestEntityTooLarge), "request body too large")
		return
	}
	m.log.Warn("request body unreadable",
		"remote_addr", r.RemoteAddr, "path", r.URL.Path, "err", err)
	httpx.WriteSimpleProblem(w, http.StatusBadRequest,
		http.StatusText(http.StatusBadRequest), "could not read request body")
}
