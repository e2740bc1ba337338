package parse

import (
	imap "github.com/meszmate/imap-go"
	"github.com/meszmate/imap-go/combinator"
	"github.com/meszmate/imap-go/cursor"
	"github.com/meszmate/imap-go/perr"
)

// seqNumber parses a single seq-number: a nz-number, or the "*" sentinel
// (returned as 0, matching imap.NumRange's convention).
func seqNumber(c *cursor.ByteCursor, tr *cursor.Tracker) cursor.Outcome[uint32] {
	return combinator.OneOf(c, tr,
		func() cursor.Outcome[uint32] {
			o := combinator.Fixed(c, "*", true)
			if !o.IsOk() {
				return cursor.Outcome[uint32]{Status: o.Status, Err: o.Err}
			}
			return cursor.Ok[uint32](0)
		},
		func() cursor.Outcome[uint32] { return NZNumber(c, tr) },
	)
}

// seqRangeOrNumber parses either a "low:high" range or a lone seq-number.
func seqRangeOrNumber(c *cursor.ByteCursor, tr *cursor.Tracker) cursor.Outcome[imap.NumRange] {
	return combinator.Composite(c, tr, func() cursor.Outcome[imap.NumRange] {
		first := seqNumber(c, tr)
		if !first.IsOk() {
			return cursor.Outcome[imap.NumRange]{Status: first.Status, Err: first.Err}
		}
		colon := combinator.Fixed(c, ":", true)
		if colon.IsIncomplete() {
			return cursor.Incomplete[imap.NumRange]()
		}
		if !colon.IsOk() {
			return cursor.Ok(imap.NumRange{Start: first.Value, Stop: first.Value})
		}
		second := seqNumber(c, tr)
		if !second.IsOk() {
			return cursor.Outcome[imap.NumRange]{Status: second.Status, Err: second.Err}
		}
		return cursor.Ok(imap.NumRange{Start: first.Value, Stop: second.Value})
	})
}

// sequenceSetRanges parses the comma-separated range list, without the
// "$" alternative (used both by SequenceSet and UIDSet).
func sequenceSetRanges(c *cursor.ByteCursor, tr *cursor.Tracker) cursor.Outcome[[]imap.NumRange] {
	return combinator.Composite(c, tr, func() cursor.Outcome[[]imap.NumRange] {
		first := seqRangeOrNumber(c, tr)
		if !first.IsOk() {
			return cursor.Outcome[[]imap.NumRange]{Status: first.Status, Err: first.Err}
		}
		ranges := []imap.NumRange{first.Value}
		rest := combinator.ZeroOrMore(c, tr, func() cursor.Outcome[imap.NumRange] {
			return combinator.Composite(c, tr, func() cursor.Outcome[imap.NumRange] {
				if o := combinator.Fixed(c, ",", true); !o.IsOk() {
					return cursor.Outcome[imap.NumRange]{Status: o.Status, Err: o.Err}
				}
				return seqRangeOrNumber(c, tr)
			})
		})
		if rest.IsIncomplete() {
			return cursor.Incomplete[[]imap.NumRange]()
		}
		if !rest.IsOk() {
			return cursor.Outcome[[]imap.NumRange]{Status: rest.Status, Err: rest.Err}
		}
		ranges = append(ranges, rest.Value...)
		return cursor.Ok(ranges)
	})
}

// SequenceSet parses a `sequence-set`: either the bare "$" LastCommand
// marker, or a comma-separated list of ranges/numbers.
func SequenceSet(c *cursor.ByteCursor, tr *cursor.Tracker) cursor.Outcome[*imap.SeqSet] {
	return combinator.OneOf(c, tr,
		func() cursor.Outcome[*imap.SeqSet] {
			o := combinator.Fixed(c, "$", true)
			if !o.IsOk() {
				return cursor.Outcome[*imap.SeqSet]{Status: o.Status, Err: o.Err}
			}
			return cursor.Ok(&imap.SeqSet{LastCommand: true})
		},
		func() cursor.Outcome[*imap.SeqSet] {
			o := sequenceSetRanges(c, tr)
			if !o.IsOk() {
				return cursor.Outcome[*imap.SeqSet]{Status: o.Status, Err: o.Err}
			}
			return cursor.Ok(&imap.SeqSet{Set: o.Value})
		},
	)
}

// UIDSetProd parses a `uid-set`: the same grammar as sequence-set, used
// where the surrounding production requires UIDs rather than sequence
// numbers (the wire grammar is identical; only the semantic domain
// differs, resolved by the caller).
func UIDSetProd(c *cursor.ByteCursor, tr *cursor.Tracker) cursor.Outcome[*imap.UIDSet] {
	o := sequenceSetRanges(c, tr)
	if !o.IsOk() {
		return cursor.Outcome[*imap.UIDSet]{Status: o.Status, Err: o.Err}
	}
	return cursor.Ok(&imap.UIDSet{Set: o.Value})
}

// PartialRange parses the `<offset.length>` qualifier following a
// sequence set, validating that length is positive and that
// offset+length-1 does not overflow 32 bits.
func PartialRange(c *cursor.ByteCursor, tr *cursor.Tracker) cursor.Outcome[imap.RangePartial] {
	return combinator.Composite(c, tr, func() cursor.Outcome[imap.RangePartial] {
		if o := combinator.Fixed(c, "<", true); !o.IsOk() {
			return cursor.Outcome[imap.RangePartial]{Status: o.Status, Err: o.Err}
		}
		offset := Number(c, tr)
		if !offset.IsOk() {
			return cursor.Outcome[imap.RangePartial]{Status: offset.Status, Err: offset.Err}
		}
		if o := combinator.Fixed(c, ".", true); !o.IsOk() {
			return cursor.Outcome[imap.RangePartial]{Status: o.Status, Err: o.Err}
		}
		length := Number(c, tr)
		if !length.IsOk() {
			return cursor.Outcome[imap.RangePartial]{Status: length.Status, Err: length.Err}
		}
		if o := combinator.Fixed(c, ">", true); !o.IsOk() {
			return cursor.Outcome[imap.RangePartial]{Status: o.Status, Err: o.Err}
		}
		p := imap.RangePartial{Offset: offset.Value, Length: length.Value}
		if err := p.Validate(); err != nil {
			return cursor.Fatal[imap.RangePartial](perr.Malformed(c.Offset(), err.Error()))
		}
		return cursor.Ok(p)
	})
}
