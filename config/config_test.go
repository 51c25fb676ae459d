package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aatuh/api-shield/csp"
)

type mapSource map[string]string

func (m mapSource) GetOr(key, def string) string {
	if v, ok := m[key]; ok && v != "" {
		return v
	}
	return def
}

func TestLoadFrom_Defaults(t *testing.T) {
	cfg, err := LoadFrom(mapSource{})
	require.NoError(t, err)

	assert.Equal(t, ":8000", cfg.Addr)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, CSPOff, cfg.CSPMode)
	assert.Equal(t, int64(1<<20), cfg.MaxBodyBytes)
	assert.Equal(t, []string{"*"}, cfg.CORSAllowedOrigins)
	assert.False(t, cfg.HSTS)
	assert.Equal(t, 5*time.Second, cfg.RequestTimeout)
	assert.True(t, cfg.Development())

	_, ok, err := cfg.CSPPolicy()
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestLoadFrom_DebugSelectsDevelopmentCSP(t *testing.T) {
	cfg, err := LoadFrom(mapSource{"DEBUG": "true"})
	require.NoError(t, err)
	assert.Equal(t, CSPDevelopment, cfg.CSPMode)

	p, ok, err := cfg.CSPPolicy()
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, csp.Development().String(), p.String())
}

func TestLoadFrom_ExplicitValues(t *testing.T) {
	cfg, err := LoadFrom(mapSource{
		"API_ADDR":             "127.0.0.1:9000",
		"LOG_LEVEL":            "DEBUG",
		"ENV":                  "production",
		"CSP_MODE":             "production",
		"MAX_BODY_BYTES":       "2048",
		"CORS_ALLOWED_ORIGINS": "https://a.example, https://b.example,",
		"HSTS":                 "1",
		"REQUEST_TIMEOUT":      "0",
	})
	require.NoError(t, err)

	assert.Equal(t, "127.0.0.1:9000", cfg.Addr)
	assert.Equal(t, "debug", cfg.LogLevel)
	assert.False(t, cfg.Development())
	assert.Equal(t, int64(2048), cfg.MaxBodyBytes)
	assert.Equal(t, []string{"https://a.example", "https://b.example"}, cfg.CORSAllowedOrigins)
	assert.True(t, cfg.HSTS)
	assert.Zero(t, cfg.RequestTimeout)

	p, ok, err := cfg.CSPPolicy()
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, csp.Production().String(), p.String())
}

func TestLoadFrom_Invalid(t *testing.T) {
	cases := map[string]mapSource{
		"log level":  {"LOG_LEVEL": "verbose"},
		"csp mode":   {"CSP_MODE": "strict"},
		"body bytes": {"MAX_BODY_BYTES": "lots"},
		"zero body":  {"MAX_BODY_BYTES": "0"},
		"hsts":       {"HSTS": "maybe"},
		"debug":      {"DEBUG": "sometimes"},
		"timeout":    {"REQUEST_TIMEOUT": "soon"},
		"negative":   {"REQUEST_TIMEOUT": "-1s"},
	}
	for name, src := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := LoadFrom(src)
			require.Error(t, err)
			assert.True(t, errors.Is(err, ErrInvalidConfig))
		})
	}
}

func TestCSPPolicy_FileWins(t *testing.T) {
	path := filepath.Join(t.TempDir(), "csp.yaml")
	require.NoError(t, os.WriteFile(path, []byte("default-src: [\"'none'\"]\nimg-src: \"'self' data:\"\n"), 0o600))

	cfg, err := LoadFrom(mapSource{"CSP_MODE": "production", "CSP_POLICY_FILE": path})
	require.NoError(t, err)

	p, ok, err := cfg.CSPPolicy()
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "default-src 'none'; img-src 'self' data:", p.String())
}

func TestCSPPolicy_MissingFile(t *testing.T) {
	cfg := Config{CSPPolicyFile: filepath.Join(t.TempDir(), "nope.yaml")}
	_, _, err := cfg.CSPPolicy()
	assert.True(t, errors.Is(err, ErrInvalidConfig))
}
