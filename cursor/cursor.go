// Package cursor provides ByteCursor, the streaming parse buffer at the
// heart of the IMAP grammar parser: an append-only byte region with a read
// offset, O(1) save/restore, and a three-way outcome (Ok / Recoverable /
// Incomplete) that lets combinators distinguish "this production does not
// match" from "wait for more bytes" without throwing.
package cursor

import "github.com/meszmate/imap-go/perr"

// Status is the outcome discriminant of a parse attempt, keeping "this
// production does not match" distinct from "wait for more bytes" rather
// than collapsing both into a single io.Reader-style error.
type Status int

const (
	// StatusOk means the production matched and the cursor advanced.
	StatusOk Status = iota
	// StatusRecoverable means the production did not match; the cursor
	// offset has been restored to where the attempt began.
	StatusRecoverable
	// StatusIncomplete means the input ran out before the production
	// could decide; the cursor offset has been restored, and the caller
	// should retry from the same offset once more bytes arrive.
	StatusIncomplete
)

// Outcome is the sum type every combinator and production returns:
// Ok(value), Recoverable, Incomplete, or a Fatal error. Go has no sum
// types, so Outcome is a tagged struct; callers should check Err first,
// then Status.
type Outcome[T any] struct {
	Status Status
	Value  T
	Err    error // non-nil only for a Fatal outcome (*perr.Error)
}

// Ok builds a successful outcome.
func Ok[T any](v T) Outcome[T] { return Outcome[T]{Status: StatusOk, Value: v} }

// Recoverable builds a grammar-mismatch outcome.
func Recoverable[T any]() Outcome[T] { return Outcome[T]{Status: StatusRecoverable} }

// Incomplete builds a need-more-data outcome.
func Incomplete[T any]() Outcome[T] { return Outcome[T]{Status: StatusIncomplete} }

// Fatal builds a fatal outcome wrapping err (normally a *perr.Error).
func Fatal[T any](err error) Outcome[T] { return Outcome[T]{Err: err} }

// IsFatal reports whether o carries a fatal error.
func (o Outcome[T]) IsFatal() bool { return o.Err != nil }

// IsOk reports whether o succeeded.
func (o Outcome[T]) IsOk() bool { return o.Err == nil && o.Status == StatusOk }

// IsRecoverable reports whether o is a grammar mismatch.
func (o Outcome[T]) IsRecoverable() bool { return o.Err == nil && o.Status == StatusRecoverable }

// IsIncomplete reports whether o needs more bytes.
func (o Outcome[T]) IsIncomplete() bool { return o.Err == nil && o.Status == StatusIncomplete }

// Mark is an opaque save token returned by Save and consumed by Restore.
// It is a plain offset copy — restoring is O(1), never a buffer copy.
type Mark struct {
	offset int64
}

// Limits bounds the resources a single parse may consume.
type Limits struct {
	// LiteralSize caps the declared size of any single {n}/{n+}/~{n}
	// literal header. Exceeding it is Fatal (ResourceLimit) at the
	// header, before any body bytes are read.
	LiteralSize int64
	// MessageBodySize carries the configured aggregate body-size limit.
	// No production in this module reads it, so body sizes are not
	// checked against it.
	MessageBodySize int64
	// Intern, if non-nil, is applied to short repeated strings (atoms,
	// flags) the parser extracts, to deduplicate heap allocations across
	// a long-lived connection.
	Intern func(string) string
}

// DefaultLiteralSize is used when Limits.LiteralSize is zero.
const DefaultLiteralSize = 64 << 20 // 64 MiB, generous but not unbounded

// ByteCursor is a linear, append-only byte stream supporting speculative
// reads with O(1) save/restore. It never panics on short input: every read
// primitive returns StatusIncomplete instead.
//
// A ByteCursor is owned by exactly one in-flight parse call; see the
// concurrency contract in the package-level doc of the parse package.
type ByteCursor struct {
	buf    []byte
	offset int64
	limits Limits
}

// New creates a cursor over an initially empty, growable buffer.
func New(limits Limits) *ByteCursor {
	if limits.LiteralSize <= 0 {
		limits.LiteralSize = DefaultLiteralSize
	}
	return &ByteCursor{limits: limits}
}

// NewFromBytes creates a cursor already containing b, for one-shot parsing
// of a fully-buffered input (tests, replay tooling).
func NewFromBytes(b []byte, limits Limits) *ByteCursor {
	c := New(limits)
	c.Append(b)
	return c
}

// Append adds bytes arriving from the feeder (the transport layer, out of
// this package's scope) to the end of the buffer. Previously issued Marks
// referring to offsets within the already-committed prefix remain valid.
func (c *ByteCursor) Append(b []byte) {
	c.buf = append(c.buf, b...)
}

// Limits returns the configured resource limits.
func (c *ByteCursor) Limits() Limits { return c.limits }

// Offset returns the current read offset.
func (c *ByteCursor) Offset() int64 { return c.offset }

// Len returns the number of committed bytes available in the buffer.
func (c *ByteCursor) Len() int64 { return int64(len(c.buf)) }

// Save returns an opaque token for the current offset. Save is cheap: it
// copies an int64, never the buffer.
func (c *ByteCursor) Save() Mark { return Mark{offset: c.offset} }

// Restore moves the read offset back to m. No byte is ever "un-consumed"
// in the sense of being discarded — restoring only rewinds where the next
// read begins.
func (c *ByteCursor) Restore(m Mark) { c.offset = m.offset }

// Compact discards the consumed prefix up to the current offset, after a
// successful top-level parse, so memory does not grow unbounded over a
// long-lived connection. Any outstanding Marks become invalid; callers
// must not hold Marks across a Compact.
func (c *ByteCursor) Compact() {
	if c.offset <= 0 {
		return
	}
	n := copy(c.buf, c.buf[c.offset:])
	c.buf = c.buf[:n]
	c.offset = 0
}

// Peek returns the next n bytes without consuming them. It yields
// Incomplete if fewer than n bytes are currently buffered.
func (c *ByteCursor) Peek(n int) Outcome[[]byte] {
	if int64(n) > c.Len()-c.offset {
		return Incomplete[[]byte]()
	}
	return Ok(c.buf[c.offset : c.offset+int64(n)])
}

// PeekByte returns the next single byte without consuming it.
func (c *ByteCursor) PeekByte() Outcome[byte] {
	o := c.Peek(1)
	if !o.IsOk() {
		return Outcome[byte]{Status: o.Status, Err: o.Err}
	}
	return Ok(o.Value[0])
}

// ReadByte consumes and returns the next byte.
func (c *ByteCursor) ReadByte() Outcome[byte] {
	o := c.PeekByte()
	if !o.IsOk() {
		return o
	}
	c.offset++
	return o
}

// ReadN consumes and returns exactly n bytes.
func (c *ByteCursor) ReadN(n int) Outcome[[]byte] {
	o := c.Peek(n)
	if !o.IsOk() {
		return o
	}
	c.offset += int64(n)
	return o
}

// ReadWhile consumes the maximal run of bytes satisfying pred, starting at
// the current offset. It returns Ok with a (possibly empty) slice once it
// hits a byte that fails pred. Hitting the end of committed input instead
// yields Incomplete with the offset restored, however many bytes matched,
// since the caller cannot yet tell whether the run is actually over or
// more matching bytes are still arriving. Callers that want end of input
// to close the run use ReadWhileAllowEOF.
func (c *ByteCursor) ReadWhile(pred func(byte) bool) Outcome[[]byte] {
	start := c.offset
	for {
		o := c.PeekByte()
		if o.IsIncomplete() {
			c.offset = start
			return Incomplete[[]byte]()
		}
		if !o.IsOk() {
			return Outcome[[]byte]{Status: o.Status, Err: o.Err}
		}
		if !pred(o.Value) {
			return Ok(c.buf[start:c.offset])
		}
		c.offset++
	}
}

// ReadWhileAllowEOF behaves like ReadWhile but treats end-of-input as the
// end of the run rather than Incomplete. Used only where the caller is
// certain no further input can change the classification of bytes already
// seen (e.g. scanning inside a literal body whose length is already known
// and fully buffered).
func (c *ByteCursor) ReadWhileAllowEOF(pred func(byte) bool) []byte {
	start := c.offset
	for {
		o := c.PeekByte()
		if !o.IsOk() || !pred(o.Value) {
			return c.buf[start:c.offset]
		}
		c.offset++
	}
}

// ReadFixed consumes the literal bytes of needle case-sensitively or
// case-insensitively. On mismatch the offset is restored and Recoverable
// is returned, unless the input ran out strictly inside the needle (a
// byte-for-byte prefix match so far), in which case Incomplete is
// returned so the caller can retry once more bytes arrive.
func (c *ByteCursor) ReadFixed(needle []byte, caseSensitive bool) Outcome[[]byte] {
	start := c.offset
	for i := 0; i < len(needle); i++ {
		o := c.PeekByte()
		if o.IsIncomplete() {
			c.offset = start
			return Incomplete[[]byte]()
		}
		if !o.IsOk() {
			c.offset = start
			return Outcome[[]byte]{Status: o.Status, Err: o.Err}
		}
		b := o.Value
		n := needle[i]
		if !caseSensitive {
			b = toLowerASCII(b)
			n = toLowerASCII(n)
		}
		if b != n {
			c.offset = start
			return Recoverable[[]byte]()
		}
		c.offset++
	}
	return Ok(c.buf[start:c.offset])
}

func toLowerASCII(b byte) byte {
	if b >= 'A' && b <= 'Z' {
		return b + ('a' - 'A')
	}
	return b
}

// ParseNewline accepts CRLF, a bare LF, or (tolerance, observed in some
// deployed servers) a single leading space followed by CRLF or LF. It
// never consumes more than the matched terminator.
func (c *ByteCursor) ParseNewline() Outcome[struct{}] {
	start := c.offset

	// Tolerate one leading space before the terminator.
	if o := c.PeekByte(); o.IsOk() && o.Value == ' ' {
		c.offset++
	}

	o := c.PeekByte()
	if o.IsIncomplete() {
		c.offset = start
		return Incomplete[struct{}]()
	}
	if !o.IsOk() {
		c.offset = start
		return Outcome[struct{}]{Status: o.Status, Err: o.Err}
	}
	switch o.Value {
	case '\r':
		c.offset++
		o2 := c.PeekByte()
		if o2.IsIncomplete() {
			c.offset = start
			return Incomplete[struct{}]()
		}
		if !o2.IsOk() {
			c.offset = start
			return Outcome[struct{}]{Status: o2.Status, Err: o2.Err}
		}
		if o2.Value != '\n' {
			c.offset = start
			return Recoverable[struct{}]()
		}
		c.offset++
		return Ok(struct{}{})
	case '\n':
		c.offset++
		return Ok(struct{}{})
	default:
		c.offset = start
		return Recoverable[struct{}]()
	}
}

// CheckLiteralSize validates a declared literal length against the
// configured limit, returning a Fatal ResourceLimit outcome on overflow.
func (c *ByteCursor) CheckLiteralSize(size int64) error {
	if size > c.limits.LiteralSize {
		return perr.ResourceExceeded(c.offset, "literal exceeds configured size limit", c.limits.LiteralSize, size)
	}
	return nil
}

// Intern applies the configured string-intern hook, if any.
func (c *ByteCursor) Intern(s string) string {
	if c.limits.Intern == nil {
		return s
	}
	return c.limits.Intern(s)
}
