package health

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/aatuh/api-shield/clock"
	"github.com/aatuh/api-shield/ports"
)

// Config selects which registered checkers back each probe.
type Config struct {
	Timeout         time.Duration
	LivenessChecks  []string
	ReadinessChecks []string
}

// Manager implements ports.HealthManager.
type Manager struct {
	config   Config
	clock    ports.Clock
	checkers map[string]ports.HealthChecker
	mu       sync.RWMutex
}

// New creates a manager whose liveness runs "basic" and readiness runs
// "basic" and "screener".
func New() *Manager {
	return NewWithConfig(Config{
		Timeout:         2 * time.Second,
		LivenessChecks:  []string{"basic"},
		ReadinessChecks: []string{"basic", "screener"},
	}, clock.NewSystemClock())
}

// NewWithConfig creates a manager with custom configuration.
func NewWithConfig(config Config, c ports.Clock) *Manager {
	if c == nil {
		c = clock.NewSystemClock()
	}
	return &Manager{
		config:   config,
		clock:    c,
		checkers: make(map[string]ports.HealthChecker),
	}
}

// RegisterChecker registers a health checker under its name.
func (m *Manager) RegisterChecker(checker ports.HealthChecker) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.checkers[checker.Name()] = checker
}

// GetLiveness performs liveness checks.
func (m *Manager) GetLiveness(ctx context.Context) ports.HealthResult {
	return m.performChecks(ctx, m.config.LivenessChecks)
}

// GetReadiness performs readiness checks.
func (m *Manager) GetReadiness(ctx context.Context) ports.HealthResult {
	return m.performChecks(ctx, m.config.ReadinessChecks)
}

// performChecks runs the named checkers in order and stops at the first
// unhealthy one.
func (m *Manager) performChecks(ctx context.Context, names []string) ports.HealthResult {
	if len(names) == 0 {
		return ports.HealthResult{
			Status:    ports.HealthStatusHealthy,
			Message:   "No checks configured",
			Timestamp: m.clock.Now(),
		}
	}

	if m.config.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, m.config.Timeout)
		defer cancel()
	}

	start := m.clock.Now()
	details := make(map[string]ports.HealthStatus, len(names))
	for _, name := range names {
		result := m.performCheck(ctx, name)
		details[name] = result.Status
		if result.Status != ports.HealthStatusHealthy {
			result.Message = fmt.Sprintf("%s: %s", name, result.Message)
			result.Status = ports.HealthStatusUnhealthy
			result.Details = details
			return result
		}
	}

	now := m.clock.Now()
	return ports.HealthResult{
		Status:    ports.HealthStatusHealthy,
		Details:   details,
		Timestamp: now,
		Duration:  now.Sub(start),
	}
}

func (m *Manager) performCheck(ctx context.Context, name string) ports.HealthResult {
	m.mu.RLock()
	checker, exists := m.checkers[name]
	m.mu.RUnlock()

	if !exists {
		return ports.HealthResult{
			Status:    ports.HealthStatusUnknown,
			Message:   fmt.Sprintf("checker %q not registered", name),
			Timestamp: m.clock.Now(),
		}
	}

	start := m.clock.Now()
	result := checker.Check(ctx)
	result.Timestamp = m.clock.Now()
	result.Duration = result.Timestamp.Sub(start)
	return result
}
