package bootstrap

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"

	"github.com/aatuh/api-shield/chi"
	"github.com/aatuh/api-shield/config"
	"github.com/aatuh/api-shield/cors"
	"github.com/aatuh/api-shield/endpoints"
	"github.com/aatuh/api-shield/health"
	recoverx "github.com/aatuh/api-shield/httpx/recover"
	"github.com/aatuh/api-shield/idgen"
	"github.com/aatuh/api-shield/logzap"
	cspmw "github.com/aatuh/api-shield/middleware/csp"
	"github.com/aatuh/api-shield/middleware/guard"
	maxbody "github.com/aatuh/api-shield/middleware/maxbody"
	metricsmw "github.com/aatuh/api-shield/middleware/metrics"
	requestlog "github.com/aatuh/api-shield/middleware/requestlog"
	securemw "github.com/aatuh/api-shield/middleware/secure"
	timeoutmw "github.com/aatuh/api-shield/middleware/timeout"
	"github.com/aatuh/api-shield/ports"
	"github.com/aatuh/api-shield/sanitize"
	"github.com/aatuh/api-shield/screen"
	"github.com/aatuh/api-shield/secure"
	"github.com/aatuh/api-shield/specs"
	"github.com/aatuh/api-shield/validation"
)

// Deps are the collaborators NewRouter wires. A nil Log discards output and
// a nil Registry gets a fresh one, so tests can build several routers.
type Deps struct {
	Log      ports.Logger
	Registry *prometheus.Registry
}

// NewRouter constructs the shield router: request scoping, CORS, body
// limits, logging, metrics and the handler deadline, then panic recovery,
// the screening guard with the security headers and the optional CSP layer.
func NewRouter(cfg config.Config, deps Deps) (ports.HTTPRouter, error) {
	policy, cspOn, err := cfg.CSPPolicy()
	if err != nil {
		return nil, err
	}
	if deps.Log == nil {
		deps.Log = logzap.New(zap.NewNop())
	}
	reg := deps.Registry
	if reg == nil {
		reg = prometheus.NewRegistry()
	}
	recorder := metricsmw.NewPrometheusRecorder(reg, nil)
	screener := screen.New(cfg.MaxBodyBytes)

	var r ports.HTTPRouter = chi.New()
	var mw ports.HTTPMiddleware = chi.NewMiddleware()

	// Core middlewares
	r.Use(mw.RequestID())
	r.Use(mw.RealIP())

	// Standard middlewares
	r.Use(cors.New().Handler(cors.DefaultOptions(cfg.CORSAllowedOrigins...)))
	r.Use(maxbody.New(cfg.MaxBodyBytes).Handler)
	r.Use(requestlog.New(deps.Log).Handler)
	r.Use(metricsmw.New(recorder).Handler)
	r.Use(timeoutmw.New(cfg.RequestTimeout).Handler)

	// Recovery runs inside the deadline: http.TimeoutHandler discards the
	// handler's headers when it re-panics, so the 500 is written here.
	r.Use(recoverx.Middleware(deps.Log))

	// Screening and response headers
	r.Use(guard.New(guard.Options{
		Screener: screener,
		Log:      deps.Log,
		IDs:      idgen.NewULIDGen(),
		Metrics:  recorder,
		Headers:  securemw.New(secure.Options{HSTS: cfg.HSTS}),
	}).Handler)
	if cspOn {
		r.Use(cspmw.New(policy).Handler)
	}

	hm := health.New()
	hm.RegisterChecker(health.NewBasicChecker())
	hm.RegisterChecker(health.NewScreenerChecker(screener))
	health.NewHandler(hm).RegisterRoutes(r)
	r.Get(specs.Metrics, metricsmw.PrometheusHandler(reg).ServeHTTP)

	api := endpoints.New(validation.New(), sanitize.New(), deps.Log)
	r.Mount(specs.APIPrefix, api.Routes())

	return r, nil
}

// StartServer runs an HTTP server and performs graceful shutdown when the
// context is canceled.
func StartServer(ctx context.Context, addr string, handler http.Handler, log ports.Logger) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           handler,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       10 * time.Second,
		WriteTimeout:      15 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info("http server starting", "addr", addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case <-ctx.Done():
		log.Info("http server stopping")
		shctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return srv.Shutdown(shctx)
	case err := <-errCh:
		return err
	}
}
