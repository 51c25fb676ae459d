package endpoints

import (
	"net/http"

	"github.com/aatuh/api-shield/httpx"
	"github.com/aatuh/api-shield/sanitize"
	"github.com/aatuh/api-shield/validation"
)

// SanitizeRequest is the body of POST /v1/sanitize.
type SanitizeRequest struct {
	HTML string `json:"html" validate:"max=65536"`
}

// SanitizeResponse carries both treatments of the input.
type SanitizeResponse struct {
	Sanitized string `json:"sanitized"`
	Escaped   string `json:"escaped"`
}

// Sanitize strips markup outside the allowlist and, separately, returns the
// fully escaped input.
func (a *API) Sanitize(w http.ResponseWriter, r *http.Request) {
	var req SanitizeRequest
	if !a.decode(w, r, &req) {
		return
	}
	if err := a.validator.ValidateStruct(r.Context(), req); err != nil {
		httpx.WriteValidationProblem(w, "request has invalid fields", validation.Flatten(err))
		return
	}
	httpx.WriteJSON(w, http.StatusOK, SanitizeResponse{
		Sanitized: a.sanitizer.Sanitize(req.HTML),
		Escaped:   sanitize.Escape(req.HTML),
	})
}
