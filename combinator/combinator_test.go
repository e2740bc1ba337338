package combinator

import (
	"testing"

	"github.com/meszmate/imap-go/cursor"
)

func atom(c *cursor.ByteCursor) cursor.Outcome[[]byte] {
	return CharsWhile1(c, func(b byte) bool {
		return b >= 'a' && b <= 'z'
	})
}

func TestOptional(t *testing.T) {
	c := cursor.NewFromBytes([]byte("123"), cursor.Limits{})
	tr := cursor.NewTracker(0)

	o := Optional(c, tr, func() cursor.Outcome[[]byte] { return atom(c) })
	if !o.IsOk() || o.Value != nil {
		t.Fatalf("expected Ok(nil) for non-matching optional, got %+v", o)
	}
	if c.Offset() != 0 {
		t.Fatalf("optional mismatch should not move offset, got %d", c.Offset())
	}
}

func TestOptional_Incomplete(t *testing.T) {
	c := cursor.NewFromBytes([]byte("abc"), cursor.Limits{})
	tr := cursor.NewTracker(0)

	o := Optional(c, tr, func() cursor.Outcome[[]byte] { return atom(c) })
	if !o.IsIncomplete() {
		t.Fatalf("expected Incomplete (run might continue), got %+v", o)
	}
	if c.Offset() != 0 {
		t.Fatalf("incomplete optional should not move offset, got %d", c.Offset())
	}
}

func TestOneOf_OrderMatters(t *testing.T) {
	c := cursor.NewFromBytes([]byte("foobar"), cursor.Limits{})
	tr := cursor.NewTracker(0)

	o := OneOf(c, tr,
		func() cursor.Outcome[string] {
			r := Fixed(c, "foobar", false)
			if !r.IsOk() {
				return cursor.Outcome[string]{Status: r.Status, Err: r.Err}
			}
			return cursor.Ok("long")
		},
		func() cursor.Outcome[string] {
			r := Fixed(c, "foo", false)
			if !r.IsOk() {
				return cursor.Outcome[string]{Status: r.Status, Err: r.Err}
			}
			return cursor.Ok("short")
		},
	)
	if !o.IsOk() || o.Value != "long" {
		t.Fatalf("expected the more specific alternative to win, got %+v", o)
	}
	if c.Offset() != 6 {
		t.Fatalf("offset = %d, want 6", c.Offset())
	}
}

func TestOneOf_FallsThrough(t *testing.T) {
	c := cursor.NewFromBytes([]byte("bar "), cursor.Limits{})
	tr := cursor.NewTracker(0)

	o := OneOf(c, tr,
		func() cursor.Outcome[string] {
			r := Fixed(c, "foo", false)
			if !r.IsOk() {
				return cursor.Outcome[string]{Status: r.Status, Err: r.Err}
			}
			return cursor.Ok("foo")
		},
		func() cursor.Outcome[string] {
			r := Fixed(c, "bar", false)
			if !r.IsOk() {
				return cursor.Outcome[string]{Status: r.Status, Err: r.Err}
			}
			return cursor.Ok("bar")
		},
	)
	if !o.IsOk() || o.Value != "bar" {
		t.Fatalf("expected second alternative to match, got %+v", o)
	}
}

func TestOneOf_AllRecoverable(t *testing.T) {
	c := cursor.NewFromBytes([]byte("baz "), cursor.Limits{})
	tr := cursor.NewTracker(0)

	o := OneOf(c, tr,
		func() cursor.Outcome[string] {
			r := Fixed(c, "foo", false)
			return cursor.Outcome[string]{Status: r.Status, Err: r.Err}
		},
		func() cursor.Outcome[string] {
			r := Fixed(c, "bar", false)
			return cursor.Outcome[string]{Status: r.Status, Err: r.Err}
		},
	)
	if !o.IsRecoverable() {
		t.Fatalf("expected Recoverable, got %+v", o)
	}
	if c.Offset() != 0 {
		t.Fatalf("offset moved despite all alternatives failing: %d", c.Offset())
	}
}

func TestZeroOrMore(t *testing.T) {
	c := cursor.NewFromBytes([]byte("aaab"), cursor.Limits{})
	tr := cursor.NewTracker(0)

	elem := func() cursor.Outcome[byte] {
		mark := c.Save()
		r := c.ReadByte()
		if !r.IsOk() {
			return r
		}
		if r.Value != 'a' {
			c.Restore(mark)
			return cursor.Recoverable[byte]()
		}
		return r
	}
	o := ZeroOrMore(c, tr, elem)
	if !o.IsOk() || len(o.Value) != 3 {
		t.Fatalf("expected 3 a's, got %+v", o)
	}
	if c.Offset() != 3 {
		t.Fatalf("offset = %d, want 3", c.Offset())
	}
}

func TestOneOrMore_EmptyIsRecoverable(t *testing.T) {
	c := cursor.NewFromBytes([]byte("bbb"), cursor.Limits{})
	tr := cursor.NewTracker(0)

	elem := func() cursor.Outcome[byte] {
		mark := c.Save()
		r := c.ReadByte()
		if !r.IsOk() {
			return r
		}
		if r.Value != 'a' {
			c.Restore(mark)
			return cursor.Recoverable[byte]()
		}
		return r
	}
	o := OneOrMore(c, tr, elem)
	if !o.IsRecoverable() {
		t.Fatalf("expected Recoverable for zero matches, got %+v", o)
	}
	if c.Offset() != 0 {
		t.Fatalf("offset moved on empty OneOrMore: %d", c.Offset())
	}
}

func TestUInt(t *testing.T) {
	tests := []struct {
		name       string
		input      string
		allowZeros bool
		wantStatus cursor.Status
		wantValue  uint64
	}{
		{"simple", "123 ", false, cursor.StatusOk, 123},
		{"leading zero rejected", "0123 ", false, cursor.StatusRecoverable, 0},
		{"leading zero allowed", "0123 ", true, cursor.StatusOk, 123},
		{"zero alone", "0 ", false, cursor.StatusOk, 0},
		{"not a number", "abc", false, cursor.StatusRecoverable, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := cursor.NewFromBytes([]byte(tt.input), cursor.Limits{})
			o := UInt(c, tt.allowZeros)
			if o.Status != tt.wantStatus {
				t.Fatalf("status = %v, want %v", o.Status, tt.wantStatus)
			}
			if o.IsOk() && o.Value != tt.wantValue {
				t.Fatalf("value = %d, want %d", o.Value, tt.wantValue)
			}
		})
	}
}

func TestUInt_OverflowIsRecoverable(t *testing.T) {
	c := cursor.NewFromBytes([]byte("99999999999999999999999 "), cursor.Limits{})
	o := UInt(c, false)
	if !o.IsRecoverable() {
		t.Fatalf("expected Recoverable on overflow, got %+v", o)
	}
	if c.Offset() != 0 {
		t.Fatalf("offset moved on overflow: %d", c.Offset())
	}
}

func TestBoundedUInt(t *testing.T) {
	c := cursor.NewFromBytes([]byte("500 "), cursor.Limits{})
	o := BoundedUInt(c, false, 100)
	if !o.IsRecoverable() {
		t.Fatalf("expected Recoverable exceeding bound, got %+v", o)
	}

	c2 := cursor.NewFromBytes([]byte("50 "), cursor.Limits{})
	o2 := BoundedUInt(c2, false, 100)
	if !o2.IsOk() || o2.Value != 50 {
		t.Fatalf("expected Ok(50), got %+v", o2)
	}
}

func TestComposite_RestoresOffsetOnFailure(t *testing.T) {
	c := cursor.NewFromBytes([]byte("xyz"), cursor.Limits{})
	tr := cursor.NewTracker(0)

	o := Composite(c, tr, func() cursor.Outcome[[]byte] {
		c.ReadN(2) // partial progress inside the attempt
		return cursor.Recoverable[[]byte]()
	})
	if !o.IsRecoverable() {
		t.Fatalf("expected Recoverable, got %+v", o)
	}
	if c.Offset() != 0 {
		t.Fatalf("composite did not roll back partial progress: offset = %d", c.Offset())
	}
}

func TestComposite_RecursionGuard(t *testing.T) {
	c := cursor.NewFromBytes([]byte("((((("), cursor.Limits{})
	tr := cursor.NewTracker(2)

	var parseParen func() cursor.Outcome[int]
	parseParen = func() cursor.Outcome[int] {
		return Composite(c, tr, func() cursor.Outcome[int] {
			o := Fixed(c, "(", true)
			if !o.IsOk() {
				return cursor.Outcome[int]{Status: o.Status, Err: o.Err}
			}
			return parseParen()
		})
	}

	o := parseParen()
	if !o.IsFatal() {
		t.Fatalf("expected Fatal from recursion guard, got %+v", o)
	}
}

func TestNewline(t *testing.T) {
	c := cursor.NewFromBytes([]byte("\r\nX"), cursor.Limits{})
	o := Newline(c)
	if !o.IsOk() {
		t.Fatalf("expected Ok, got %+v", o)
	}
	if c.Offset() != 2 {
		t.Fatalf("offset = %d, want 2", c.Offset())
	}
}
