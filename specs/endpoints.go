package specs

// System endpoints.
const (
	Livez   = "/livez"
	Readyz  = "/readyz"
	Metrics = "/metrics"
)

// API endpoints.
const (
	APIPrefix = "/v1"
	Validate  = "/validate"
	Sanitize  = "/sanitize"
)
