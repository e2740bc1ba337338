// Package perr defines the error taxonomy produced by the IMAP grammar
// parser: the fatal kinds that stop a parse (as opposed to the
// Recoverable/Incomplete outcomes modeled by cursor.Outcome, which carry no
// error at all).
package perr

import "fmt"

// Kind identifies one of the fatal error categories a parse can fail with.
// GrammarMismatch and NeedMoreData are not represented here — they are
// modeled as cursor.Outcome states, not errors, since they are expected,
// frequent results that combinators recover from locally.
type Kind int

const (
	// MalformedInput means the input was structurally valid up to a point
	// but violated an invariant (NUL in a literal, invalid base64, a
	// partial range with zero length, and so on).
	MalformedInput Kind = iota
	// RecursionExceeded means the Tracker reached its configured depth.
	RecursionExceeded
	// ResourceLimit means a literal or body size limit was exceeded.
	ResourceLimit
)

// String returns the human-readable name of the kind.
func (k Kind) String() string {
	switch k {
	case MalformedInput:
		return "malformed input"
	case RecursionExceeded:
		return "recursion exceeded"
	case ResourceLimit:
		return "resource limit"
	default:
		return fmt.Sprintf("kind(%d)", int(k))
	}
}

// Error is a fatal parser error: a kind, the byte offset at which it was
// detected, and a hint string for diagnostics. Per spec, the offset is
// left at the point of detection (not rewound) for these kinds, unlike
// GrammarMismatch/NeedMoreData.
type Error struct {
	Kind   Kind
	Offset int64
	Hint   string

	// Limit and Got are populated for ResourceLimit errors: the configured
	// limit and the length that exceeded it.
	Limit int64
	Got   int64
}

// Error implements the error interface.
func (e *Error) Error() string {
	if e.Kind == ResourceLimit {
		return fmt.Sprintf("imap: %s at offset %d: %s (limit %d, got %d)", e.Kind, e.Offset, e.Hint, e.Limit, e.Got)
	}
	return fmt.Sprintf("imap: %s at offset %d: %s", e.Kind, e.Offset, e.Hint)
}

// Malformed creates a MalformedInput error.
func Malformed(offset int64, hint string) *Error {
	return &Error{Kind: MalformedInput, Offset: offset, Hint: hint}
}

// Malformedf creates a MalformedInput error with a formatted hint.
func Malformedf(offset int64, format string, args ...interface{}) *Error {
	return &Error{Kind: MalformedInput, Offset: offset, Hint: fmt.Sprintf(format, args...)}
}

// Recursion creates a RecursionExceeded error.
func Recursion(offset int64, maxDepth int) *Error {
	return &Error{Kind: RecursionExceeded, Offset: offset, Hint: fmt.Sprintf("exceeded max recursion depth %d", maxDepth)}
}

// ResourceExceeded creates a ResourceLimit error.
func ResourceExceeded(offset int64, hint string, limit, got int64) *Error {
	return &Error{Kind: ResourceLimit, Offset: offset, Hint: hint, Limit: limit, Got: got}
}

// Is reports whether target is a *Error with the same Kind, so callers can
// write errors.Is(err, &perr.Error{Kind: perr.ResourceLimit}) to test for a
// kind regardless of offset and hint.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return e.Kind == t.Kind
}
