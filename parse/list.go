package parse

import (
	imap "github.com/meszmate/imap-go"
	"github.com/meszmate/imap-go/combinator"
	"github.com/meszmate/imap-go/cursor"
)

func mailboxAttr(c *cursor.ByteCursor, tr *cursor.Tracker) cursor.Outcome[imap.MailboxAttr] {
	return combinator.Composite(c, tr, func() cursor.Outcome[imap.MailboxAttr] {
		if o := combinator.Fixed(c, `\`, true); !o.IsOk() {
			return cursor.Outcome[imap.MailboxAttr]{Status: o.Status, Err: o.Err}
		}
		a := Atom(c, tr)
		if !a.IsOk() {
			return cursor.Outcome[imap.MailboxAttr]{Status: a.Status, Err: a.Err}
		}
		return cursor.Ok(imap.MailboxAttr("\\" + string(a.Value)))
	})
}

// mailboxAttrList parses the parenthesised mailbox-list attribute set.
func mailboxAttrList(c *cursor.ByteCursor, tr *cursor.Tracker) cursor.Outcome[[]imap.MailboxAttr] {
	return combinator.Composite(c, tr, func() cursor.Outcome[[]imap.MailboxAttr] {
		if o := combinator.Fixed(c, "(", true); !o.IsOk() {
			return cursor.Outcome[[]imap.MailboxAttr]{Status: o.Status, Err: o.Err}
		}
		var attrs []imap.MailboxAttr
		first := combinator.Optional(c, tr, func() cursor.Outcome[imap.MailboxAttr] { return mailboxAttr(c, tr) })
		if first.IsIncomplete() {
			return cursor.Incomplete[[]imap.MailboxAttr]()
		}
		if first.Value != nil {
			attrs = append(attrs, *first.Value)
			rest := combinator.ZeroOrMore(c, tr, func() cursor.Outcome[imap.MailboxAttr] {
				return combinator.Composite(c, tr, func() cursor.Outcome[imap.MailboxAttr] {
					if o := combinator.Fixed(c, " ", true); !o.IsOk() {
						return cursor.Outcome[imap.MailboxAttr]{Status: o.Status, Err: o.Err}
					}
					return mailboxAttr(c, tr)
				})
			})
			if rest.IsIncomplete() {
				return cursor.Incomplete[[]imap.MailboxAttr]()
			}
			if !rest.IsOk() {
				return cursor.Outcome[[]imap.MailboxAttr]{Status: rest.Status, Err: rest.Err}
			}
			attrs = append(attrs, rest.Value...)
		}
		if o := combinator.Fixed(c, ")", true); !o.IsOk() {
			return cursor.Outcome[[]imap.MailboxAttr]{Status: o.Status, Err: o.Err}
		}
		return cursor.Ok(attrs)
	})
}

// quotedChar parses the mailbox hierarchy separator: NIL, or a single
// quoted character.
func quotedChar(c *cursor.ByteCursor, tr *cursor.Tracker) cursor.Outcome[*byte] {
	return combinator.OneOf(c, tr,
		func() cursor.Outcome[*byte] {
			o := combinator.Fixed(c, "NIL", false)
			if !o.IsOk() {
				return cursor.Outcome[*byte]{Status: o.Status, Err: o.Err}
			}
			return cursor.Ok[*byte](nil)
		},
		func() cursor.Outcome[*byte] {
			return combinator.Composite(c, tr, func() cursor.Outcome[*byte] {
				if o := combinator.Fixed(c, "\"", true); !o.IsOk() {
					return cursor.Outcome[*byte]{Status: o.Status, Err: o.Err}
				}
				b := c.ReadByte()
				if b.IsIncomplete() {
					return cursor.Incomplete[*byte]()
				}
				if !b.IsOk() {
					return cursor.Outcome[*byte]{Status: b.Status, Err: b.Err}
				}
				if o := combinator.Fixed(c, "\"", true); !o.IsOk() {
					return cursor.Outcome[*byte]{Status: o.Status, Err: o.Err}
				}
				v := b.Value
				return cursor.Ok(&v)
			})
		},
	)
}

// MailboxList parses a full LIST/LSUB response's mailbox-list:
// "(" [mbx-list-flags] ")" SP (DQUOTE QUOTED-CHAR DQUOTE / nil) SP mailbox
// [SP mailbox-list-extended].
func MailboxList(c *cursor.ByteCursor, tr *cursor.Tracker) cursor.Outcome[imap.MailboxInfo] {
	return combinator.Composite(c, tr, func() cursor.Outcome[imap.MailboxInfo] {
		attrs := mailboxAttrList(c, tr)
		if !attrs.IsOk() {
			return cursor.Outcome[imap.MailboxInfo]{Status: attrs.Status, Err: attrs.Err}
		}
		if o := combinator.Fixed(c, " ", true); !o.IsOk() {
			return cursor.Outcome[imap.MailboxInfo]{Status: o.Status, Err: o.Err}
		}
		sep := quotedChar(c, tr)
		if !sep.IsOk() {
			return cursor.Outcome[imap.MailboxInfo]{Status: sep.Status, Err: sep.Err}
		}
		if o := combinator.Fixed(c, " ", true); !o.IsOk() {
			return cursor.Outcome[imap.MailboxInfo]{Status: o.Status, Err: o.Err}
		}
		mbox := Astring(c, tr)
		if !mbox.IsOk() {
			return cursor.Outcome[imap.MailboxInfo]{Status: mbox.Status, Err: mbox.Err}
		}

		var items []imap.ExtendedItem
		ext := combinator.Optional(c, tr, func() cursor.Outcome[[]imap.ExtendedItem] {
			return combinator.Composite(c, tr, func() cursor.Outcome[[]imap.ExtendedItem] {
				if o := combinator.Fixed(c, " (", true); !o.IsOk() {
					return cursor.Outcome[[]imap.ExtendedItem]{Status: o.Status, Err: o.Err}
				}
				first := extendedItem(c, tr)
				if !first.IsOk() {
					return cursor.Outcome[[]imap.ExtendedItem]{Status: first.Status, Err: first.Err}
				}
				items := []imap.ExtendedItem{first.Value}
				rest := combinator.ZeroOrMore(c, tr, func() cursor.Outcome[imap.ExtendedItem] {
					return combinator.Composite(c, tr, func() cursor.Outcome[imap.ExtendedItem] {
						if o := combinator.Fixed(c, " ", true); !o.IsOk() {
							return cursor.Outcome[imap.ExtendedItem]{Status: o.Status, Err: o.Err}
						}
						return extendedItem(c, tr)
					})
				})
				if rest.IsIncomplete() {
					return cursor.Incomplete[[]imap.ExtendedItem]()
				}
				if !rest.IsOk() {
					return cursor.Outcome[[]imap.ExtendedItem]{Status: rest.Status, Err: rest.Err}
				}
				items = append(items, rest.Value...)
				if o := combinator.Fixed(c, ")", true); !o.IsOk() {
					return cursor.Outcome[[]imap.ExtendedItem]{Status: o.Status, Err: o.Err}
				}
				return cursor.Ok(items)
			})
		})
		if ext.IsIncomplete() {
			return cursor.Incomplete[imap.MailboxInfo]()
		}
		if ext.Value != nil {
			items = *ext.Value
		}

		return cursor.Ok(imap.MailboxInfo{
			Attrs:         attrs.Value,
			Path:          imap.MailboxPath{Name: mbox.Value, PathSeparator: sep.Value},
			ExtendedItems: items,
		})
	})
}
