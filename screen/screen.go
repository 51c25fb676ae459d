// Package screen matches request text against two static blocklists: SQL
// keywords and comment markers, and script or embedded-content markup.
//
// The patterns are heuristics. They reject legitimate text that happens to
// contain words like "select" or "update", and they miss encoded payloads.
// Both behaviours are part of the contract and must not be tuned here.
package screen

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"net/http"
	"regexp"
)

// Kind names the blocklist that matched.
type Kind string

const (
	KindSQL    Kind = "sql"
	KindScript Kind = "script"
)

// Source names the part of the request that matched.
type Source string

const (
	SourceQuery     Source = "query"
	SourceBody      Source = "body"
	SourceUserAgent Source = "user_agent"
)

// Compiled once; regexp.Regexp is safe for concurrent use.
var (
	sqlPattern = regexp.MustCompile(
		`(?i)(\b(union|select|insert|update|delete|drop|alter)\b)|(-{2})|(/\*.*\*/)`)
	scriptPattern = regexp.MustCompile(
		`(?i)<[^>]*script|javascript:|data:text/html|<[^>]*embed|<[^>]*object|<[^>]*iframe`)
)

// DefaultMaxBodyBytes bounds how much of a request body is screened.
const DefaultMaxBodyBytes int64 = 1 << 20

// ErrBodyTooLarge is returned when a screened body exceeds the limit.
var ErrBodyTooLarge = errors.New("request body too large")

// MatchSQL reports whether text matches the SQL blocklist.
func MatchSQL(text string) bool { return sqlPattern.MatchString(text) }

// MatchScript reports whether text matches the script blocklist.
func MatchScript(text string) bool { return scriptPattern.MatchString(text) }

// Inspect returns the first blocklist text matches. SQL is tested first.
func Inspect(text string) (Kind, bool) {
	if MatchSQL(text) {
		return KindSQL, true
	}
	if MatchScript(text) {
		return KindScript, true
	}
	return "", false
}

// IsMalicious reports whether text matches either blocklist.
func IsMalicious(text string) bool {
	_, ok := Inspect(text)
	return ok
}

// Finding describes why a request was denied.
type Finding struct {
	Source Source
	Kind   Kind
}

func (f Finding) String() string { return fmt.Sprintf("%s:%s", f.Source, f.Kind) }

// Screener inspects whole requests.
type Screener struct {
	MaxBodyBytes int64
}

// New returns a Screener that reads at most maxBody bytes of a body.
// A non-positive limit selects DefaultMaxBodyBytes.
func New(maxBody int64) *Screener {
	if maxBody <= 0 {
		maxBody = DefaultMaxBodyBytes
	}
	return &Screener{MaxBodyBytes: maxBody}
}

// Screen checks the raw query string, the body of mutating requests and the
// User-Agent header, in that order, and reports the first match.
//
// The body is buffered and put back on r so later handlers can read it.
func (s *Screener) Screen(r *http.Request) (Finding, bool, error) {
	if k, ok := Inspect(r.URL.RawQuery); ok {
		return Finding{Source: SourceQuery, Kind: k}, true, nil
	}

	if hasScreenedBody(r.Method) && r.Body != nil {
		body, err := s.readBody(r)
		if err != nil {
			return Finding{}, false, err
		}
		if k, ok := Inspect(string(body)); ok {
			return Finding{Source: SourceBody, Kind: k}, true, nil
		}
	}

	if k, ok := Inspect(r.UserAgent()); ok {
		return Finding{Source: SourceUserAgent, Kind: k}, true, nil
	}
	return Finding{}, false, nil
}

func (s *Screener) readBody(r *http.Request) ([]byte, error) {
	limit := s.MaxBodyBytes
	if limit <= 0 {
		limit = DefaultMaxBodyBytes
	}
	body, err := io.ReadAll(io.LimitReader(r.Body, limit+1))
	_ = r.Body.Close()
	if err != nil {
		var mbe *http.MaxBytesError
		if errors.As(err, &mbe) {
			return nil, ErrBodyTooLarge
		}
		return nil, fmt.Errorf("read body: %w", err)
	}
	if int64(len(body)) > limit {
		return nil, ErrBodyTooLarge
	}
	r.Body = io.NopCloser(bytes.NewReader(body))
	return body, nil
}

func hasScreenedBody(method string) bool {
	switch method {
	case http.MethodPost, http.MethodPut, http.MethodPatch:
		return true
	default:
		return false
	}
}
