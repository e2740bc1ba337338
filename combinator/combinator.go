// Package combinator provides the language-neutral higher-order parsers
// spec describes in §4.2: fixed, optional, one_of, composite (atomic
// rewind), zero_or_more, one_or_more, chars_while, uint, bounded_uint, and
// the recursion guard integration. They are generic over cursor.Outcome so
// every IMAP-specific production in the parse package is built by
// composing these rather than hand-rolling save/restore bookkeeping.
package combinator

import (
	"github.com/meszmate/imap-go/cursor"
)

// Composite runs body inside a tracked, atomically-rewindable frame: it
// enters the Tracker, captures the cursor offset, and runs body. On
// Recoverable or Incomplete from body, the cursor offset is restored
// before returning — this is what makes backtracking safe: no partial
// side effects from a failed alternative ever leak into the next one.
// Fatal outcomes (including RecursionExceeded from the Tracker itself)
// propagate without restoring the offset: a fatal error means the input
// is unrecoverably malformed, not that backtracking should be tried.
func Composite[T any](c *cursor.ByteCursor, tr *cursor.Tracker, body func() cursor.Outcome[T]) cursor.Outcome[T] {
	mark := c.Save()
	if err := tr.Enter(c.Offset()); err != nil {
		return cursor.Fatal[T](err)
	}
	defer tr.Leave()

	o := body()
	if o.IsFatal() {
		return o
	}
	if o.Status != cursor.StatusOk {
		c.Restore(mark)
	}
	return o
}

// Optional runs p inside a Composite. A Recoverable result becomes a zero
// value with found=false — absence is a real grammar outcome, not an
// error. Incomplete is propagated as-is (never masked as "not present"),
// because until more bytes arrive the parser cannot tell absence from a
// truncated production at the byte boundary.
func Optional[T any](c *cursor.ByteCursor, tr *cursor.Tracker, p func() cursor.Outcome[T]) cursor.Outcome[*T] {
	o := Composite(c, tr, p)
	if o.IsFatal() {
		return cursor.Fatal[*T](o.Err)
	}
	switch o.Status {
	case cursor.StatusOk:
		v := o.Value
		return cursor.Ok(&v)
	case cursor.StatusRecoverable:
		return cursor.Ok[*T](nil)
	default: // Incomplete
		return cursor.Incomplete[*T]()
	}
}

// OneOf tries each alternative in p, in order, inside its own Composite
// frame. The first non-Recoverable outcome (Ok, Incomplete, or Fatal)
// wins. Order is significant: where two alternatives share a prefix, list
// the more specific one first (HEADER.FIELDS.NOT before HEADER.FIELDS
// before HEADER is the canonical example).
func OneOf[T any](c *cursor.ByteCursor, tr *cursor.Tracker, alts ...func() cursor.Outcome[T]) cursor.Outcome[T] {
	for _, alt := range alts {
		o := Composite(c, tr, alt)
		if o.Status != cursor.StatusRecoverable || o.IsFatal() {
			return o
		}
	}
	return cursor.Recoverable[T]()
}

// ZeroOrMore runs p repeatedly inside one Composite, stopping (and
// committing what was already parsed) on the first Recoverable result
// from p. Incomplete from any iteration propagates — the caller cannot
// yet tell whether the sequence is done or simply paused mid-element.
func ZeroOrMore[T any](c *cursor.ByteCursor, tr *cursor.Tracker, p func() cursor.Outcome[T]) cursor.Outcome[[]T] {
	return Composite(c, tr, func() cursor.Outcome[[]T] {
		var out []T
		for {
			o := Composite(c, tr, p)
			if o.IsFatal() {
				return cursor.Fatal[[]T](o.Err)
			}
			switch o.Status {
			case cursor.StatusOk:
				out = append(out, o.Value)
			case cursor.StatusIncomplete:
				return cursor.Incomplete[[]T]()
			default: // Recoverable: stop, commit what we have
				return cursor.Ok(out)
			}
		}
	})
}

// OneOrMore is like ZeroOrMore but requires at least one match; an empty
// sequence is itself Recoverable.
func OneOrMore[T any](c *cursor.ByteCursor, tr *cursor.Tracker, p func() cursor.Outcome[T]) cursor.Outcome[[]T] {
	return Composite(c, tr, func() cursor.Outcome[[]T] {
		o := ZeroOrMore(c, tr, p)
		if o.IsFatal() || o.Status != cursor.StatusOk {
			return o
		}
		if len(o.Value) == 0 {
			return cursor.Recoverable[[]T]()
		}
		return o
	})
}

// CharsWhile consumes the maximal run of bytes satisfying pred. It may
// return an empty slice (zero matches is a success, not a mismatch); use
// CharsWhile1 when at least one byte is required.
func CharsWhile(c *cursor.ByteCursor, pred func(byte) bool) cursor.Outcome[[]byte] {
	o := c.ReadWhile(pred)
	if o.IsIncomplete() {
		return o
	}
	if !o.IsOk() {
		return o
	}
	return cursor.Ok(o.Value)
}

// CharsWhile1 is CharsWhile requiring at least one matching byte;
// zero matches is Recoverable.
func CharsWhile1(c *cursor.ByteCursor, pred func(byte) bool) cursor.Outcome[[]byte] {
	mark := c.Save()
	o := CharsWhile(c, pred)
	if !o.IsOk() {
		return o
	}
	if len(o.Value) == 0 {
		c.Restore(mark)
		return cursor.Recoverable[[]byte]()
	}
	return o
}

// Fixed consumes the literal bytes of s (case-sensitively or not, as
// caseSensitive says) as a combinator-level wrapper around
// cursor.ReadFixed, so callers needn't thread a Tracker through something
// that can't actually recurse.
func Fixed(c *cursor.ByteCursor, s string, caseSensitive bool) cursor.Outcome[[]byte] {
	return c.ReadFixed([]byte(s), caseSensitive)
}

// Newline wraps cursor.ParseNewline as a combinator of the uniform Outcome
// shape used throughout this package.
func Newline(c *cursor.ByteCursor) cursor.Outcome[struct{}] {
	return c.ParseNewline()
}

func isDigit(b byte) bool { return b >= '0' && b <= '9' }

// UInt parses a run of ASCII digits into a uint64, returning the value and
// the number of digit bytes consumed. A leading zero is rejected unless
// allowLeadingZeros is true. Overflow beyond 64 bits is Recoverable (not
// Fatal) so that an outer OneOf may try a different-width alternative;
// the one exception, a 64-bit literal-size header checked against the
// configured limit, is handled by the caller via cursor.CheckLiteralSize
// and reported as Fatal there, not here.
func UInt(c *cursor.ByteCursor, allowLeadingZeros bool) cursor.Outcome[uint64] {
	mark := c.Save()
	digits := CharsWhile1(c, isDigit)
	if !digits.IsOk() {
		return cursor.Outcome[uint64]{Status: digits.Status, Err: digits.Err}
	}
	if !allowLeadingZeros && len(digits.Value) > 1 && digits.Value[0] == '0' {
		c.Restore(mark)
		return cursor.Recoverable[uint64]()
	}
	var v uint64
	for _, d := range digits.Value {
		nd := v*10 + uint64(d-'0')
		if nd < v { // overflowed 64 bits
			c.Restore(mark)
			return cursor.Recoverable[uint64]()
		}
		v = nd
	}
	return cursor.Ok(v)
}

// BoundedUInt is UInt with an additional check that the parsed value does
// not exceed max; exceeding it is Recoverable, same rationale as overflow
// in UInt.
func BoundedUInt(c *cursor.ByteCursor, allowLeadingZeros bool, max uint64) cursor.Outcome[uint64] {
	mark := c.Save()
	o := UInt(c, allowLeadingZeros)
	if !o.IsOk() {
		return o
	}
	if o.Value > max {
		c.Restore(mark)
		return cursor.Recoverable[uint64]()
	}
	return o
}
