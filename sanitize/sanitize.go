// Package sanitize offers two alternative treatments for user supplied
// markup: Sanitize strips everything outside a fixed allow-list, Escape makes
// the text safe to show literally. They are not meant to be chained.
package sanitize

import (
	"html"

	"github.com/microcosm-cc/bluemonday"
)

// AllowedTags is the element allow-list used by Sanitize.
var AllowedTags = []string{
	"p", "br", "strong", "em", "u", "h1", "h2", "h3", "h4", "h5", "h6",
	"ul", "ol", "li", "span", "div", "table", "thead", "tbody", "tr", "td", "th",
}

// GlobalAttrs are kept on every allowed element. Elements outside
// AllowedTags, a and img included, are stripped along with their attributes.
var GlobalAttrs = []string{"class", "style"}

// Sanitizer wraps a compiled bluemonday policy. A Sanitizer is safe for
// concurrent use once built.
type Sanitizer struct {
	policy *bluemonday.Policy
}

// New builds a Sanitizer from the package allow-lists.
func New() *Sanitizer {
	p := bluemonday.NewPolicy()
	p.AllowElements(AllowedTags...)
	p.AllowAttrs(GlobalAttrs...).Globally()
	return &Sanitizer{policy: p}
}

// Sanitize removes disallowed elements and attributes. Text inside removed
// elements is kept, except for script and style bodies.
func (s *Sanitizer) Sanitize(value string) string {
	return s.policy.Sanitize(value)
}

var std = New()

// Sanitize runs the shared default Sanitizer.
func Sanitize(value string) string { return std.Sanitize(value) }

// Escape replaces &, <, >, " and ' with entities. Escaping twice encodes the
// ampersands of the first pass again; that is expected.
func Escape(value string) string { return html.EscapeString(value) }
