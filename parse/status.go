package parse

import (
	imap "github.com/meszmate/imap-go"
	"github.com/meszmate/imap-go/combinator"
	"github.com/meszmate/imap-go/cursor"
)

// statusAttVal parses one `status-att-val` pair and applies it onto
// data; an unrecognised attribute name falls through to Recoverable so
// the caller can surface a grammar mismatch rather than silently
// swallowing unknown status items.
func statusAttVal(c *cursor.ByteCursor, tr *cursor.Tracker, data *imap.StatusData) cursor.Outcome[struct{}] {
	u32 := func(name string, dst **uint32) func() cursor.Outcome[struct{}] {
		return func() cursor.Outcome[struct{}] {
			return combinator.Composite(c, tr, func() cursor.Outcome[struct{}] {
				if o := combinator.Fixed(c, name+" ", false); !o.IsOk() {
					return cursor.Outcome[struct{}]{Status: o.Status, Err: o.Err}
				}
				n := Number(c, tr)
				if !n.IsOk() {
					return cursor.Outcome[struct{}]{Status: n.Status, Err: n.Err}
				}
				v := n.Value
				*dst = &v
				return cursor.Ok(struct{}{})
			})
		}
	}
	return combinator.OneOf(c, tr,
		u32("MESSAGES", &data.NumMessages),
		u32("UIDNEXT", &data.UIDNext),
		u32("UIDVALIDITY", &data.UIDValidity),
		u32("UNSEEN", &data.NumUnseen),
		u32("RECENT", &data.NumRecent),
		func() cursor.Outcome[struct{}] {
			return combinator.Composite(c, tr, func() cursor.Outcome[struct{}] {
				if o := combinator.Fixed(c, "SIZE ", false); !o.IsOk() {
					return cursor.Outcome[struct{}]{Status: o.Status, Err: o.Err}
				}
				n := Number64(c, tr)
				if !n.IsOk() {
					return cursor.Outcome[struct{}]{Status: n.Status, Err: n.Err}
				}
				v := int64(n.Value)
				data.Size = &v
				return cursor.Ok(struct{}{})
			})
		},
		u32("APPENDLIMIT", &data.AppendLimit),
		u32("DELETED", &data.NumDeleted),
		func() cursor.Outcome[struct{}] {
			return combinator.Composite(c, tr, func() cursor.Outcome[struct{}] {
				if o := combinator.Fixed(c, "HIGHESTMODSEQ ", false); !o.IsOk() {
					return cursor.Outcome[struct{}]{Status: o.Status, Err: o.Err}
				}
				n := Number64(c, tr)
				if !n.IsOk() {
					return cursor.Outcome[struct{}]{Status: n.Status, Err: n.Err}
				}
				data.HighestModSeq = &n.Value
				return cursor.Ok(struct{}{})
			})
		},
		func() cursor.Outcome[struct{}] {
			return combinator.Composite(c, tr, func() cursor.Outcome[struct{}] {
				if o := combinator.Fixed(c, "MAILBOXID (", false); !o.IsOk() {
					return cursor.Outcome[struct{}]{Status: o.Status, Err: o.Err}
				}
				id := Astring(c, tr)
				if !id.IsOk() {
					return cursor.Outcome[struct{}]{Status: id.Status, Err: id.Err}
				}
				if o := combinator.Fixed(c, ")", true); !o.IsOk() {
					return cursor.Outcome[struct{}]{Status: o.Status, Err: o.Err}
				}
				data.MailboxID = string(id.Value)
				return cursor.Ok(struct{}{})
			})
		},
	)
}

// StatusResponse parses the full `"STATUS" SP mailbox SP "(" [status-att-list] ")"` response.
func StatusResponse(c *cursor.ByteCursor, tr *cursor.Tracker) cursor.Outcome[imap.StatusData] {
	return combinator.Composite(c, tr, func() cursor.Outcome[imap.StatusData] {
		if o := combinator.Fixed(c, "STATUS ", false); !o.IsOk() {
			return cursor.Outcome[imap.StatusData]{Status: o.Status, Err: o.Err}
		}
		mbox := Astring(c, tr)
		if !mbox.IsOk() {
			return cursor.Outcome[imap.StatusData]{Status: mbox.Status, Err: mbox.Err}
		}
		if o := combinator.Fixed(c, " (", true); !o.IsOk() {
			return cursor.Outcome[imap.StatusData]{Status: o.Status, Err: o.Err}
		}

		data := imap.StatusData{Mailbox: string(mbox.Value)}

		first := combinator.Optional(c, tr, func() cursor.Outcome[struct{}] { return statusAttVal(c, tr, &data) })
		if first.IsIncomplete() {
			return cursor.Incomplete[imap.StatusData]()
		}
		if first.Value != nil {
			rest := combinator.ZeroOrMore(c, tr, func() cursor.Outcome[struct{}] {
				return combinator.Composite(c, tr, func() cursor.Outcome[struct{}] {
					if o := combinator.Fixed(c, " ", true); !o.IsOk() {
						return cursor.Outcome[struct{}]{Status: o.Status, Err: o.Err}
					}
					return statusAttVal(c, tr, &data)
				})
			})
			if rest.IsIncomplete() {
				return cursor.Incomplete[imap.StatusData]()
			}
			if !rest.IsOk() {
				return cursor.Outcome[imap.StatusData]{Status: rest.Status, Err: rest.Err}
			}
		}

		if o := combinator.Fixed(c, ")", true); !o.IsOk() {
			return cursor.Outcome[imap.StatusData]{Status: o.Status, Err: o.Err}
		}
		return cursor.Ok(data)
	})
}
