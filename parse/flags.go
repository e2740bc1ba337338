package parse

import (
	imap "github.com/meszmate/imap-go"
	"github.com/meszmate/imap-go/combinator"
	"github.com/meszmate/imap-go/cursor"
)

// Flag parses a single `flag`: one of the five fixed system flags, a
// backslash-prefixed extension flag, or a bare keyword atom. The fixed
// variants are tried first so e.g. "\Seen" isn't captured as a generic
// extension flag.
func Flag(c *cursor.ByteCursor, tr *cursor.Tracker) cursor.Outcome[imap.Flag] {
	return combinator.OneOf(c, tr,
		fixedFlag(c, `\Answered`, imap.FlagAnswered),
		fixedFlag(c, `\Flagged`, imap.FlagFlagged),
		fixedFlag(c, `\Deleted`, imap.FlagDeleted),
		fixedFlag(c, `\Seen`, imap.FlagSeen),
		fixedFlag(c, `\Draft`, imap.FlagDraft),
		func() cursor.Outcome[imap.Flag] {
			return combinator.Composite(c, tr, func() cursor.Outcome[imap.Flag] {
				if o := combinator.Fixed(c, `\`, true); !o.IsOk() {
					return cursor.Outcome[imap.Flag]{Status: o.Status, Err: o.Err}
				}
				a := Atom(c, tr)
				if !a.IsOk() {
					return cursor.Outcome[imap.Flag]{Status: a.Status, Err: a.Err}
				}
				return cursor.Ok(imap.Flag("\\" + string(a.Value)))
			})
		},
		func() cursor.Outcome[imap.Flag] {
			a := Atom(c, tr)
			if !a.IsOk() {
				return cursor.Outcome[imap.Flag]{Status: a.Status, Err: a.Err}
			}
			return cursor.Ok(imap.Flag(a.Value))
		},
	)
}

func fixedFlag(c *cursor.ByteCursor, s string, f imap.Flag) func() cursor.Outcome[imap.Flag] {
	return func() cursor.Outcome[imap.Flag] {
		o := combinator.Fixed(c, s, false)
		if !o.IsOk() {
			return cursor.Outcome[imap.Flag]{Status: o.Status, Err: o.Err}
		}
		return cursor.Ok(f)
	}
}

// PermanentFlag parses a `flag-perm`: a Flag, or the `\*` wildcard
// indicating the mailbox accepts arbitrary new keywords.
func PermanentFlag(c *cursor.ByteCursor, tr *cursor.Tracker) cursor.Outcome[imap.Flag] {
	return combinator.OneOf(c, tr,
		func() cursor.Outcome[imap.Flag] {
			o := combinator.Fixed(c, `\*`, true)
			if !o.IsOk() {
				return cursor.Outcome[imap.Flag]{Status: o.Status, Err: o.Err}
			}
			return cursor.Ok(imap.FlagWildcard)
		},
		func() cursor.Outcome[imap.Flag] { return Flag(c, tr) },
	)
}

// FlagList parses a parenthesised, space-separated flag list:
// `"(" [flag *(SP flag)] ")"`.
func FlagList(c *cursor.ByteCursor, tr *cursor.Tracker) cursor.Outcome[[]imap.Flag] {
	return combinator.Composite(c, tr, func() cursor.Outcome[[]imap.Flag] {
		if o := combinator.Fixed(c, "(", true); !o.IsOk() {
			return cursor.Outcome[[]imap.Flag]{Status: o.Status, Err: o.Err}
		}
		var flags []imap.Flag
		first := combinator.Optional(c, tr, func() cursor.Outcome[imap.Flag] { return Flag(c, tr) })
		if first.IsIncomplete() {
			return cursor.Incomplete[[]imap.Flag]()
		}
		if first.Value != nil {
			flags = append(flags, *first.Value)
			rest := combinator.ZeroOrMore(c, tr, func() cursor.Outcome[imap.Flag] {
				return combinator.Composite(c, tr, func() cursor.Outcome[imap.Flag] {
					if o := combinator.Fixed(c, " ", true); !o.IsOk() {
						return cursor.Outcome[imap.Flag]{Status: o.Status, Err: o.Err}
					}
					return Flag(c, tr)
				})
			})
			if rest.IsIncomplete() {
				return cursor.Incomplete[[]imap.Flag]()
			}
			if !rest.IsOk() {
				return cursor.Outcome[[]imap.Flag]{Status: rest.Status, Err: rest.Err}
			}
			flags = append(flags, rest.Value...)
		}
		if o := combinator.Fixed(c, ")", true); !o.IsOk() {
			return cursor.Outcome[[]imap.Flag]{Status: o.Status, Err: o.Err}
		}
		return cursor.Ok(flags)
	})
}

// PermanentFlagList is FlagList generalised to accept `\*` entries.
func PermanentFlagList(c *cursor.ByteCursor, tr *cursor.Tracker) cursor.Outcome[[]imap.Flag] {
	return combinator.Composite(c, tr, func() cursor.Outcome[[]imap.Flag] {
		if o := combinator.Fixed(c, "(", true); !o.IsOk() {
			return cursor.Outcome[[]imap.Flag]{Status: o.Status, Err: o.Err}
		}
		var flags []imap.Flag
		first := combinator.Optional(c, tr, func() cursor.Outcome[imap.Flag] { return PermanentFlag(c, tr) })
		if first.IsIncomplete() {
			return cursor.Incomplete[[]imap.Flag]()
		}
		if first.Value != nil {
			flags = append(flags, *first.Value)
			rest := combinator.ZeroOrMore(c, tr, func() cursor.Outcome[imap.Flag] {
				return combinator.Composite(c, tr, func() cursor.Outcome[imap.Flag] {
					if o := combinator.Fixed(c, " ", true); !o.IsOk() {
						return cursor.Outcome[imap.Flag]{Status: o.Status, Err: o.Err}
					}
					return PermanentFlag(c, tr)
				})
			})
			if rest.IsIncomplete() {
				return cursor.Incomplete[[]imap.Flag]()
			}
			if !rest.IsOk() {
				return cursor.Outcome[[]imap.Flag]{Status: rest.Status, Err: rest.Err}
			}
			flags = append(flags, rest.Value...)
		}
		if o := combinator.Fixed(c, ")", true); !o.IsOk() {
			return cursor.Outcome[[]imap.Flag]{Status: o.Status, Err: o.Err}
		}
		return cursor.Ok(flags)
	})
}
