package csp

// Development is the permissive policy used while debugging: inline and
// eval scripts, blob images and websocket connections are allowed.
func Development() Policy {
	return New(
		Directive{Name: "default-src", Sources: []string{Self}},
		Directive{Name: "script-src", Sources: []string{Self, UnsafeInline, UnsafeEval}},
		Directive{Name: "style-src", Sources: []string{Self, UnsafeInline}},
		Directive{Name: "img-src", Sources: []string{Self, "data:", "blob:"}},
		Directive{Name: "connect-src", Sources: []string{Self, "ws:", "wss:"}},
	)
}

// Production is the strict self-only policy that also denies framing and
// pins form targets and the document base.
func Production() Policy {
	return New(
		Directive{Name: "default-src", Sources: []string{Self}},
		Directive{Name: "script-src", Sources: []string{Self}},
		Directive{Name: "style-src", Sources: []string{Self}},
		Directive{Name: "img-src", Sources: []string{Self, "data:"}},
		Directive{Name: "connect-src", Sources: []string{Self}},
		Directive{Name: "frame-ancestors", Sources: []string{None}},
		Directive{Name: "form-action", Sources: []string{Self}},
		Directive{Name: "base-uri", Sources: []string{Self}},
	)
}

// Fallback is set by the security header decorator when a response carries
// no policy of its own.
func Fallback() Policy {
	return New(
		Directive{Name: "default-src", Sources: []string{Self}},
		Directive{Name: "img-src", Sources: []string{Self, "data:", "https:"}},
		Directive{Name: "style-src", Sources: []string{Self, UnsafeInline}},
		Directive{Name: "script-src", Sources: []string{Self}},
		Directive{Name: "connect-src", Sources: []string{Self}},
		Directive{Name: "frame-ancestors", Sources: []string{None}},
		Directive{Name: "form-action", Sources: []string{Self}},
		Directive{Name: "base-uri", Sources: []string{Self}},
	)
}

// ForMode picks Development when debug is set and Production otherwise.
func ForMode(debug bool) Policy {
	if debug {
		return Development()
	}
	return Production()
}
