package parse

import (
	"testing"

	"github.com/meszmate/imap-go/cursor"
)

// parseFull runs fn once against the full contents of input, with a
// generous recursion depth, and reports whether it produced a value, a
// recoverable mismatch, an incomplete result, or a fatal error.
func parseFull[T any](input string, fn func(*cursor.ByteCursor, *cursor.Tracker) cursor.Outcome[T]) cursor.Outcome[T] {
	c := cursor.NewFromBytes([]byte(input), cursor.Limits{})
	tr := cursor.NewTracker(0)
	return fn(c, tr)
}

// mustOk runs fn against input and fails the test unless it succeeds,
// returning the produced value.
func mustOk[T any](t *testing.T, input string, fn func(*cursor.ByteCursor, *cursor.Tracker) cursor.Outcome[T]) T {
	t.Helper()
	out := parseFull(input, fn)
	if !out.IsOk() {
		t.Fatalf("parsing %q: status=%v err=%v", input, out.Status, out.Err)
	}
	return out.Value
}
