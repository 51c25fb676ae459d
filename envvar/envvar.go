package envvar

import (
	"os"
	"strings"

	"github.com/aatuh/envvar"
)

// Adapter provides environment variable access using the envvar library.
type Adapter struct{}

// New creates a new envvar adapter.
func New() *Adapter {
	return &Adapter{}
}

// LoadEnvFiles loads environment variables from files. Missing files are
// skipped; a malformed file panics.
func (a *Adapter) LoadEnvFiles(paths []string) error {
	existing := make([]string, 0, len(paths))
	for _, p := range paths {
		if _, err := os.Stat(p); err == nil {
			existing = append(existing, p)
		}
	}
	if len(existing) == 0 {
		return nil
	}
	envvar.MustLoadEnvVars(existing)
	return nil
}

// Get returns the raw value and presence indicator.
func (a *Adapter) Get(key string) (string, bool) {
	v := envvar.Get(key)
	return v, v != ""
}

// GetOr returns the value or default if not present.
func (a *Adapter) GetOr(key, def string) string {
	return envvar.GetOr(key, def)
}

// MustGet returns the value or panics if not present.
func (a *Adapter) MustGet(key string) string {
	return envvar.MustGet(key)
}

// GetBoolOr returns the value as boolean or default if not present.
func (a *Adapter) GetBoolOr(key string, def bool) bool {
	return envvar.GetBoolOr(key, def)
}

// DumpRedacted returns the variables whose names start with one of the
// prefixes, with secrets redacted. No prefixes means everything.
func (a *Adapter) DumpRedacted(prefixes ...string) map[string]string {
	env := os.Environ()
	out := make(map[string]string, len(env))
	for _, kv := range env {
		k, v, ok := strings.Cut(kv, "=")
		if !ok || !hasAnyPrefix(k, prefixes) {
			continue
		}
		if isSecret(k) {
			out[k] = "***"
		} else {
			out[k] = v
		}
	}
	return out
}

func hasAnyPrefix(k string, prefixes []string) bool {
	if len(prefixes) == 0 {
		return true
	}
	for _, p := range prefixes {
		if strings.HasPrefix(k, p) {
			return true
		}
	}
	return false
}

func isSecret(k string) bool {
	upper := strings.ToUpper(k)
	return strings.Contains(upper, "SECRET") ||
		strings.Contains(upper, "TOKEN") ||
		strings.Contains(upper, "PASSWORD") ||
		strings.HasSuffix(upper, "_KEY")
}
