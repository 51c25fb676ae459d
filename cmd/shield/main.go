package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"

	"github.com/aatuh/api-shield/bootstrap"
	"github.com/aatuh/api-shield/config"
	"github.com/aatuh/api-shield/envvar"
	"github.com/aatuh/api-shield/logzap"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, "shield:", err)
		os.Exit(1)
	}
}

func run() error {
	env := envvar.New()
	if err := env.LoadEnvFiles([]string{".env", "/env/.env"}); err != nil {
		return err
	}

	cfg, err := config.Load()
	if err != nil {
		return err
	}

	log, sync, err := logzap.Build(cfg.LogLevel, cfg.Development())
	if err != nil {
		return err
	}
	defer func() { _ = sync() }()
	log.Debug("config", "env", env.DumpRedacted("API_", "LOG_", "CSP_", "CORS_", "MAX_", "HSTS", "DEBUG", "ENV"))

	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	router, err := bootstrap.NewRouter(cfg, bootstrap.Deps{Log: log, Registry: reg})
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	log.Info("shield configured",
		"addr", cfg.Addr,
		"env", cfg.Env,
		"csp_mode", cfg.CSPMode,
		"csp_policy_file", cfg.CSPPolicyFile,
		"max_body_bytes", cfg.MaxBodyBytes,
		"hsts", cfg.HSTS,
	)
	return bootstrap.StartServer(ctx, cfg.Addr, router, log)
}
