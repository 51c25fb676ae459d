package jsonmw

import (
	"encoding/json"
	"errors"
	"mime"
	"net/http"
	"strings"

	"github.com/aatuh/api-shield/httpx"
)

// ErrEmptyBody is returned by StrictDecoder for requests without a body.
var ErrEmptyBody = errors.New("empty body")

// Middleware rejects request bodies that are not JSON.
type Middleware struct {
	RequireJSON bool
}

func New(require bool) *Middleware { return &Middleware{RequireJSON: require} }

func (m *Middleware) Handler(next http.Handler) http.Handler {
	if !m.RequireJSON {
		return next
	}
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !hasBody(r.Method) {
			next.ServeHTTP(w, r)
			return
		}
		ct := r.Header.Get("Content-Type")
		if ct == "" {
			httpx.WriteSimpleProblem(w, http.StatusUnsupportedMediaType,
				http.StatusText(http.StatusUnsupportedMediaType), "missing content-type")
			return
		}
		if !isJSON(ct) {
			httpx.WriteSimpleProblem(w, http.StatusUnsupportedMediaType,
				http.StatusText(http.StatusUnsupportedMediaType), "content-type must be application/json")
			return
		}
		next.ServeHTTP(w, r)
	})
}

// StrictDecoder creates a JSON decoder that disallows unknown fields.
func StrictDecoder(r *http.Request) (*json.Decoder, error) {
	if r.Body == nil || r.Body == http.NoBody {
		return nil, ErrEmptyBody
	}
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	dec.UseNumber()
	return dec, nil
}

func hasBody(method string) bool {
	return method == http.MethodPost || method == http.MethodPut || method == http.MethodPatch
}

func isJSON(ct string) bool {
	mt, _, err := mime.ParseMediaType(ct)
	if err != nil {
		return false
	}
	mt = strings.ToLower(mt)
	return mt == "application/json" || strings.HasSuffix(mt, "+json")
}
