package config

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/aatuh/api-shield/csp"
	"github.com/aatuh/api-shield/envvar"
	"github.com/aatuh/api-shield/screen"
)

// CSP modes accepted by CSP_MODE.
const (
	CSPOff         = "off"
	CSPDevelopment = "development"
	CSPProduction  = "production"
)

// ErrInvalidConfig is wrapped by every Load failure.
var ErrInvalidConfig = errors.New("invalid config")

type Config struct {
	Addr               string        `env:"API_ADDR"`             // ":8000"
	LogLevel           string        `env:"LOG_LEVEL"`            // "debug"|"info"|"warn"|"error"
	Env                string        `env:"ENV"`                  // "development"|"staging"|"production"
	CSPMode            string        `env:"CSP_MODE"`             // "off"|"development"|"production"
	CSPPolicyFile      string        `env:"CSP_POLICY_FILE"`      // YAML policy, overrides CSP_MODE presets
	MaxBodyBytes       int64         `env:"MAX_BODY_BYTES"`       // 1 MiB
	CORSAllowedOrigins []string      `env:"CORS_ALLOWED_ORIGINS"` // comma separated, "*" by default
	HSTS               bool          `env:"HSTS"`
	RequestTimeout     time.Duration `env:"REQUEST_TIMEOUT"` // "5s", "0" disables
}

// Source is where configuration values come from. *envvar.Adapter
// satisfies it.
type Source interface {
	GetOr(key, def string) string
}

// Load reads the configuration from the process environment.
func Load() (Config, error) {
	return LoadFrom(envvar.New())
}

// MustLoad loads config or panics if a value is invalid.
func MustLoad() Config {
	cfg, err := Load()
	if err != nil {
		panic(err)
	}
	return cfg
}

// LoadFrom reads and validates the configuration from src.
func LoadFrom(src Source) (Config, error) {
	debug, err := parseBool(src, "DEBUG", false)
	if err != nil {
		return Config{}, err
	}
	defaultMode := CSPOff
	if debug {
		defaultMode = CSPDevelopment
	}

	cfg := Config{
		Addr:          src.GetOr("API_ADDR", ":8000"),
		LogLevel:      strings.ToLower(src.GetOr("LOG_LEVEL", "info")),
		Env:           src.GetOr("ENV", "development"),
		CSPMode:       strings.ToLower(src.GetOr("CSP_MODE", defaultMode)),
		CSPPolicyFile: src.GetOr("CSP_POLICY_FILE", ""),
	}
	if cfg.HSTS, err = parseBool(src, "HSTS", false); err != nil {
		return Config{}, err
	}
	if cfg.MaxBodyBytes, err = parseInt64(src, "MAX_BODY_BYTES", screen.DefaultMaxBodyBytes); err != nil {
		return Config{}, err
	}
	if cfg.RequestTimeout, err = parseDuration(src, "REQUEST_TIMEOUT", 5*time.Second); err != nil {
		return Config{}, err
	}
	cfg.CORSAllowedOrigins = splitList(src.GetOr("CORS_ALLOWED_ORIGINS", "*"))
	return cfg, cfg.Validate()
}

// Validate reports the first invalid field.
func (c Config) Validate() error {
	switch c.LogLevel {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("%w: LOG_LEVEL %q", ErrInvalidConfig, c.LogLevel)
	}
	switch c.CSPMode {
	case CSPOff, CSPDevelopment, CSPProduction:
	default:
		return fmt.Errorf("%w: CSP_MODE %q", ErrInvalidConfig, c.CSPMode)
	}
	if c.MaxBodyBytes <= 0 {
		return fmt.Errorf("%w: MAX_BODY_BYTES must be positive", ErrInvalidConfig)
	}
	if c.RequestTimeout < 0 {
		return fmt.Errorf("%w: REQUEST_TIMEOUT must not be negative", ErrInvalidConfig)
	}
	if c.Addr == "" {
		return fmt.Errorf("%w: API_ADDR is empty", ErrInvalidConfig)
	}
	return nil
}

// Development reports whether the service runs in a development env.
func (c Config) Development() bool { return c.Env == "development" }

// CSPPolicy returns the policy the CSP middleware should send. ok is false
// when the middleware is disabled. A policy file wins over the presets.
func (c Config) CSPPolicy() (p csp.Policy, ok bool, err error) {
	if c.CSPPolicyFile != "" {
		p, err = csp.Load(c.CSPPolicyFile)
		if err != nil {
			return nil, false, fmt.Errorf("%w: CSP_POLICY_FILE: %w", ErrInvalidConfig, err)
		}
		return p, true, nil
	}
	switch c.CSPMode {
	case CSPDevelopment:
		return csp.Development(), true, nil
	case CSPProduction:
		return csp.Production(), true, nil
	default:
		return nil, false, nil
	}
}

func parseBool(src Source, key string, def bool) (bool, error) {
	v := src.GetOr(key, "")
	if v == "" {
		return def, nil
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return false, fmt.Errorf("%w: %s %q is not a boolean", ErrInvalidConfig, key, v)
	}
	return b, nil
}

func parseInt64(src Source, key string, def int64) (int64, error) {
	v := src.GetOr(key, "")
	if v == "" {
		return def, nil
	}
	n, err := strconv.ParseInt(v, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("%w: %s %q is not an integer", ErrInvalidConfig, key, v)
	}
	return n, nil
}

func parseDuration(src Source, key string, def time.Duration) (time.Duration, error) {
	v := src.GetOr(key, "")
	switch v {
	case "":
		return def, nil
	case "0":
		return 0, nil
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return 0, fmt.Errorf("%w: %s %q is not a duration", ErrInvalidConfig, key, v)
	}
	return d, nil
}

func splitList(v string) []string {
	parts := strings.Split(v, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
