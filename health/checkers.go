package health

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/aatuh/api-shield/ports"
	"github.com/aatuh/api-shield/screen"
)

// BasicChecker always reports healthy.
type BasicChecker struct{}

func NewBasicChecker() ports.HealthChecker {
	return &BasicChecker{}
}

func (c *BasicChecker) Name() string {
	return "basic"
}

func (c *BasicChecker) Check(ctx context.Context) ports.HealthResult {
	return ports.HealthResult{
		Status:    ports.HealthStatusHealthy,
		Message:   "Basic health check passed",
		Timestamp: time.Now(),
	}
}

// ScreenerChecker replays a known-bad and a known-good request through the
// screener. Readiness fails if either verdict is wrong.
type ScreenerChecker struct {
	screener *screen.Screener
}

func NewScreenerChecker(s *screen.Screener) ports.HealthChecker {
	return &ScreenerChecker{screener: s}
}

func (c *ScreenerChecker) Name() string {
	return "screener"
}

func (c *ScreenerChecker) Check(ctx context.Context) ports.HealthResult {
	if err := ctx.Err(); err != nil {
		return unhealthy(err.Error())
	}

	bad, err := http.NewRequestWithContext(ctx, http.MethodPost, "http://self/?id=1+union+select+1", strings.NewReader(`<script>`))
	if err != nil {
		return unhealthy(err.Error())
	}
	f, blocked, err := c.screener.Screen(bad)
	if err != nil {
		return unhealthy("self-check failed: " + err.Error())
	}
	if !blocked || f.Source != screen.SourceQuery || f.Kind != screen.KindSQL {
		return unhealthy("self-check let a known signature through")
	}

	good, err := http.NewRequestWithContext(ctx, http.MethodPost, "http://self/?page=1", strings.NewReader(`{"name":"ok"}`))
	if err != nil {
		return unhealthy(err.Error())
	}
	if _, blocked, err = c.screener.Screen(good); err != nil || blocked {
		return unhealthy("self-check rejected a clean request")
	}

	return ports.HealthResult{
		Status:    ports.HealthStatusHealthy,
		Message:   "screener verdicts as expected",
		Timestamp: time.Now(),
	}
}

func unhealthy(msg string) ports.HealthResult {
	return ports.HealthResult{
		Status:    ports.HealthStatusUnhealthy,
		Message:   msg,
		Timestamp: time.Now(),
	}
}
