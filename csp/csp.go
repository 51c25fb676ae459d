// Package csp builds Content-Security-Policy header values from an ordered
// list of directives.
//
// Directive order is preserved from construction through serialization so
// the header value is deterministic. Policies are never backed by a map.
package csp

import (
	"strings"
)

// HeaderName is the response header a Policy is written to.
const HeaderName = "Content-Security-Policy"

// Common source expressions.
const (
	Self         = "'self'"
	None         = "'none'"
	UnsafeInline = "'unsafe-inline'"
	UnsafeEval   = "'unsafe-eval'"
)

// Directive is one policy directive and its source list.
type Directive struct {
	Name    string
	Sources []string
}

func (d Directive) String() string {
	if len(d.Sources) == 0 {
		return d.Name
	}
	return d.Name + " " + strings.Join(d.Sources, " ")
}

// Policy is an ordered sequence of directives.
type Policy []Directive

// New builds a policy from directives in the given order.
func New(ds ...Directive) Policy {
	p := make(Policy, 0, len(ds))
	for _, d := range ds {
		p = p.Set(d.Name, d.Sources...)
	}
	return p
}

// String serializes the policy: directives joined by "; ", each directive's
// name and sources joined by single spaces.
func (p Policy) String() string {
	parts := make([]string, 0, len(p))
	for _, d := range p {
		parts = append(parts, d.String())
	}
	return strings.Join(parts, "; ")
}

func (p Policy) index(name string) int {
	for i, d := range p {
		if d.Name == name {
			return i
		}
	}
	return -1
}

// Get returns the sources for name.
func (p Policy) Get(name string) ([]string, bool) {
	if i := p.index(name); i >= 0 {
		return p[i].Sources, true
	}
	return nil, false
}

// Set replaces the sources of name in place, or appends name at the end.
func (p Policy) Set(name string, sources ...string) Policy {
	src := append([]string(nil), sources...)
	if i := p.index(name); i >= 0 {
		p[i].Sources = src
		return p
	}
	return append(p, Directive{Name: name, Sources: src})
}

// Add appends sources to name, creating the directive if needed. Sources
// already present are skipped.
func (p Policy) Add(name string, sources ...string) Policy {
	i := p.index(name)
	if i < 0 {
		return p.Set(name, sources...)
	}
	for _, s := range sources {
		if !contains(p[i].Sources, s) {
			p[i].Sources = append(p[i].Sources, s)
		}
	}
	return p
}

// Del removes name, keeping the order of the remaining directives.
func (p Policy) Del(name string) Policy {
	i := p.index(name)
	if i < 0 {
		return p
	}
	return append(p[:i:i], p[i+1:]...)
}

// Clone returns a deep copy.
func (p Policy) Clone() Policy {
	out := make(Policy, len(p))
	for i, d := range p {
		out[i] = Directive{Name: d.Name, Sources: append([]string(nil), d.Sources...)}
	}
	return out
}

func contains(ss []string, s string) bool {
	for _, v := range ss {
		if v == s {
			return true
		}
	}
	return false
}
