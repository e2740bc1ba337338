package cursor

import "github.com/meszmate/imap-go/perr"

// DefaultMaxDepth is the default recursion ceiling for Tracker, matching
// spec's stated default of 100.
const DefaultMaxDepth = 100

// Tracker bounds the nesting depth of composite parses (BODY structures,
// tagged-ext lists, parenthesized extension data) so that pathological or
// adversarial input cannot exhaust the goroutine stack. It is passed
// through every combinator call alongside the ByteCursor.
type Tracker struct {
	depth int
	max   int
}

// NewTracker creates a Tracker with the given maximum depth. A max of zero
// or less uses DefaultMaxDepth.
func NewTracker(max int) *Tracker {
	if max <= 0 {
		max = DefaultMaxDepth
	}
	return &Tracker{max: max}
}

// Depth returns the current nesting depth.
func (t *Tracker) Depth() int { return t.depth }

// Enter increments the depth and checks it against the configured maximum.
// It returns a non-nil *perr.Error (RecursionExceeded) if the limit was
// exceeded; callers must not call Leave in that case — Enter does not
// increment past the point of failure.
func (t *Tracker) Enter(offset int64) error {
	if t.depth >= t.max {
		return perr.Recursion(offset, t.max)
	}
	t.depth++
	return nil
}

// Leave decrements the depth. It is the caller's responsibility to call
// Leave exactly once for every successful Enter, typically via defer.
func (t *Tracker) Leave() {
	if t.depth > 0 {
		t.depth--
	}
}
