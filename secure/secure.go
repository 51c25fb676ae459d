package secure

import (
	"net/http"

	"github.com/aatuh/api-shield/csp"
)

// Header names set by Apply.
const (
	HeaderContentTypeOptions = "X-Content-Type-Options"
	HeaderFrameOptions       = "X-Frame-Options"
	HeaderXSSProtection      = "X-XSS-Protection"
	HeaderReferrerPolicy     = "Referrer-Policy"
	HeaderHSTS               = "Strict-Transport-Security"
)

// HSTSValue is sent on TLS requests when HSTS is enabled.
const HSTSValue = "max-age=31536000; includeSubDomains"

// static is applied to every response that passes screening.
var static = [...][2]string{
	{HeaderContentTypeOptions, "nosniff"},
	{HeaderFrameOptions, "DENY"},
	{HeaderXSSProtection, "1; mode=block"},
	{HeaderReferrerPolicy, "strict-origin-when-cross-origin"},
}

var fallbackCSP = csp.Fallback().String()

// Options controls the optional parts of the header set.
type Options struct {
	// HSTS adds Strict-Transport-Security on requests served over TLS.
	HSTS bool
}

// Apply writes the static security headers into h. The fallback
// Content-Security-Policy is only added when h does not already carry one.
func Apply(h http.Header, tls bool, opts Options) {
	for _, kv := range static {
		h.Set(kv[0], kv[1])
	}
	if h.Get(csp.HeaderName) == "" {
		h.Set(csp.HeaderName, fallbackCSP)
	}
	// Only set HSTS on HTTPS to avoid local dev pitfalls.
	if opts.HSTS && tls {
		h.Set(HeaderHSTS, HSTSValue)
	}
}
