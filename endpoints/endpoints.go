package endpoints

import (
	"errors"
	"io"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/aatuh/api-shield/httpx"
	jsonmw "github.com/aatuh/api-shield/middleware/json"
	"github.com/aatuh/api-shield/ports"
	"github.com/aatuh/api-shield/sanitize"
	"github.com/aatuh/api-shield/specs"
	"github.com/aatuh/api-shield/validation"
)

// API serves the validation and sanitizing endpoints.
type API struct {
	validator ports.Validator
	sanitizer *sanitize.Sanitizer
	log       ports.Logger
}

func New(v ports.Validator, s *sanitize.Sanitizer, log ports.Logger) *API {
	if v == nil {
		v = validation.New()
	}
	if s == nil {
		s = sanitize.New()
	}
	return &API{validator: v, sanitizer: s, log: log}
}

// Routes returns the versioned API router. Bodies must be JSON.
func (a *API) Routes() http.Handler {
	r := chi.NewRouter()
	r.Use(jsonmw.New(true).Handler)
	r.Post(specs.Validate, a.Validate)
	r.Post(specs.Sanitize, a.Sanitize)
	return r
}

// decode reads exactly one JSON document into dst and writes a 400 problem
// when that fails.
func (a *API) decode(w http.ResponseWriter, r *http.Request, dst any) bool {
	dec, err := jsonmw.StrictDecoder(r)
	if err == nil {
		err = dec.Decode(dst)
		if err == nil && dec.More() {
			err = errors.New("trailing data after JSON document")
		}
	}
	if err == nil {
		return true
	}

	var mbe *http.MaxBytesError
	if errors.As(err, &mbe) {
		httpx.WriteSimpleProblem(w, http.StatusRequestEntityTooLarge,
			http.StatusText(http.StatusRequestEntityTooLarge), "request body too large")
		return false
	}
	if errors.Is(err, io.EOF) {
		err = jsonmw.ErrEmptyBody
	}
	if a.log != nil {
		a.log.Debug("decode request", "path", r.URL.Path, "err", err)
	}
	httpx.WriteSimpleProblem(w, http.StatusBadRequest,
		http.StatusText(http.StatusBadRequest), "malformed JSON body: "+err.Error())
	return false
}
