package parse

import (
	"strings"
	"time"

	imap "github.com/meszmate/imap-go"
	"github.com/meszmate/imap-go/combinator"
	"github.com/meszmate/imap-go/cursor"
)

// envDateLayouts are the date formats observed in ENVELOPE responses;
// servers are inconsistent about the weekday prefix and seconds.
var envDateLayouts = []string{
	"Mon, 2 Jan 2006 15:04:05 -0700",
	"2 Jan 2006 15:04:05 -0700",
	"Mon, 2 Jan 2006 15:04:05 MST",
	"2 Jan 2006 15:04:05 MST",
}

// address parses one `address := "(" addr-name SP addr-adl SP
// addr-mailbox SP addr-host ")"`.
func address(c *cursor.ByteCursor, tr *cursor.Tracker) cursor.Outcome[imap.Address] {
	return combinator.Composite(c, tr, func() cursor.Outcome[imap.Address] {
		if o := combinator.Fixed(c, "(", true); !o.IsOk() {
			return cursor.Outcome[imap.Address]{Status: o.Status, Err: o.Err}
		}
		name := NString(c, tr)
		if !name.IsOk() {
			return cursor.Outcome[imap.Address]{Status: name.Status, Err: name.Err}
		}
		if o := combinator.Fixed(c, " ", true); !o.IsOk() {
			return cursor.Outcome[imap.Address]{Status: o.Status, Err: o.Err}
		}
		// addr-adl (at-domain-list source route) is effectively unused by
		// modern mail and carried only for grammar completeness.
		adl := NString(c, tr)
		if !adl.IsOk() {
			return cursor.Outcome[imap.Address]{Status: adl.Status, Err: adl.Err}
		}
		if o := combinator.Fixed(c, " ", true); !o.IsOk() {
			return cursor.Outcome[imap.Address]{Status: o.Status, Err: o.Err}
		}
		mailbox := NString(c, tr)
		if !mailbox.IsOk() {
			return cursor.Outcome[imap.Address]{Status: mailbox.Status, Err: mailbox.Err}
		}
		if o := combinator.Fixed(c, " ", true); !o.IsOk() {
			return cursor.Outcome[imap.Address]{Status: o.Status, Err: o.Err}
		}
		host := NString(c, tr)
		if !host.IsOk() {
			return cursor.Outcome[imap.Address]{Status: host.Status, Err: host.Err}
		}
		if o := combinator.Fixed(c, ")", true); !o.IsOk() {
			return cursor.Outcome[imap.Address]{Status: o.Status, Err: o.Err}
		}
		return cursor.Ok(imap.Address{
			Name:    string(name.Value),
			Mailbox: string(mailbox.Value),
			Host:    string(host.Value),
		})
	})
}

// addressList parses an `env-from`-shaped field: NIL, or a parenthesised
// non-empty list of addresses.
func addressList(c *cursor.ByteCursor, tr *cursor.Tracker) cursor.Outcome[[]*imap.Address] {
	return combinator.OneOf(c, tr,
		func() cursor.Outcome[[]*imap.Address] {
			o := combinator.Fixed(c, "NIL", false)
			if !o.IsOk() {
				return cursor.Outcome[[]*imap.Address]{Status: o.Status, Err: o.Err}
			}
			return cursor.Ok[[]*imap.Address](nil)
		},
		func() cursor.Outcome[[]*imap.Address] {
			return combinator.Composite(c, tr, func() cursor.Outcome[[]*imap.Address] {
				if o := combinator.Fixed(c, "(", true); !o.IsOk() {
					return cursor.Outcome[[]*imap.Address]{Status: o.Status, Err: o.Err}
				}
				addrs := combinator.OneOrMore(c, tr, func() cursor.Outcome[imap.Address] { return address(c, tr) })
				if !addrs.IsOk() {
					return cursor.Outcome[[]*imap.Address]{Status: addrs.Status, Err: addrs.Err}
				}
				if o := combinator.Fixed(c, ")", true); !o.IsOk() {
					return cursor.Outcome[[]*imap.Address]{Status: o.Status, Err: o.Err}
				}
				out := make([]*imap.Address, len(addrs.Value))
				for i := range addrs.Value {
					a := addrs.Value[i]
					out[i] = &a
				}
				return cursor.Ok(out)
			})
		},
	)
}

// Envelope parses the full ENVELOPE structure.
func Envelope(c *cursor.ByteCursor, tr *cursor.Tracker) cursor.Outcome[imap.Envelope] {
	return combinator.Composite(c, tr, func() cursor.Outcome[imap.Envelope] {
		if o := combinator.Fixed(c, "(", true); !o.IsOk() {
			return cursor.Outcome[imap.Envelope]{Status: o.Status, Err: o.Err}
		}

		var env imap.Envelope

		date := NString(c, tr)
		if !date.IsOk() {
			return cursor.Outcome[imap.Envelope]{Status: date.Status, Err: date.Err}
		}
		env.Date = parseEnvDate(string(date.Value))
		if o := combinator.Fixed(c, " ", true); !o.IsOk() {
			return cursor.Outcome[imap.Envelope]{Status: o.Status, Err: o.Err}
		}

		subject := NString(c, tr)
		if !subject.IsOk() {
			return cursor.Outcome[imap.Envelope]{Status: subject.Status, Err: subject.Err}
		}
		env.Subject = string(subject.Value)

		fields := []*[]*imap.Address{&env.From, &env.Sender, &env.ReplyTo, &env.To, &env.Cc, &env.Bcc}
		for _, field := range fields {
			if o := combinator.Fixed(c, " ", true); !o.IsOk() {
				return cursor.Outcome[imap.Envelope]{Status: o.Status, Err: o.Err}
			}
			addrs := addressList(c, tr)
			if !addrs.IsOk() {
				return cursor.Outcome[imap.Envelope]{Status: addrs.Status, Err: addrs.Err}
			}
			*field = addrs.Value
		}

		if o := combinator.Fixed(c, " ", true); !o.IsOk() {
			return cursor.Outcome[imap.Envelope]{Status: o.Status, Err: o.Err}
		}
		inReplyTo := NString(c, tr)
		if !inReplyTo.IsOk() {
			return cursor.Outcome[imap.Envelope]{Status: inReplyTo.Status, Err: inReplyTo.Err}
		}
		env.InReplyTo = string(inReplyTo.Value)

		if o := combinator.Fixed(c, " ", true); !o.IsOk() {
			return cursor.Outcome[imap.Envelope]{Status: o.Status, Err: o.Err}
		}
		messageID := NString(c, tr)
		if !messageID.IsOk() {
			return cursor.Outcome[imap.Envelope]{Status: messageID.Status, Err: messageID.Err}
		}
		env.MessageID = string(messageID.Value)

		if o := combinator.Fixed(c, ")", true); !o.IsOk() {
			return cursor.Outcome[imap.Envelope]{Status: o.Status, Err: o.Err}
		}
		return cursor.Ok(env)
	})
}

func parseEnvDate(s string) time.Time {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}
	}
	for _, layout := range envDateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t
		}
	}
	return time.Time{}
}
