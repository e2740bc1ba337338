package parse

import (
	imap "github.com/meszmate/imap-go"
	"github.com/meszmate/imap-go/combinator"
	"github.com/meszmate/imap-go/cursor"
)

// quotaResource parses one `resource-name SP usage SP limit` triple
// inside a quota-list.
func quotaResource(c *cursor.ByteCursor, tr *cursor.Tracker) cursor.Outcome[imap.QuotaResourceData] {
	return combinator.Composite(c, tr, func() cursor.Outcome[imap.QuotaResourceData] {
		name := Atom(c, tr)
		if !name.IsOk() {
			return cursor.Outcome[imap.QuotaResourceData]{Status: name.Status, Err: name.Err}
		}
		if o := combinator.Fixed(c, " ", true); !o.IsOk() {
			return cursor.Outcome[imap.QuotaResourceData]{Status: o.Status, Err: o.Err}
		}
		usage := Number64(c, tr)
		if !usage.IsOk() {
			return cursor.Outcome[imap.QuotaResourceData]{Status: usage.Status, Err: usage.Err}
		}
		if o := combinator.Fixed(c, " ", true); !o.IsOk() {
			return cursor.Outcome[imap.QuotaResourceData]{Status: o.Status, Err: o.Err}
		}
		limit := Number64(c, tr)
		if !limit.IsOk() {
			return cursor.Outcome[imap.QuotaResourceData]{Status: limit.Status, Err: limit.Err}
		}
		return cursor.Ok(imap.QuotaResourceData{
			Name:  imap.QuotaResource(name.Value),
			Usage: int64(usage.Value),
			Limit: int64(limit.Value),
		})
	})
}

// QuotaResponse parses the full `"QUOTA" SP quota-root SP quota-list` response.
func QuotaResponse(c *cursor.ByteCursor, tr *cursor.Tracker) cursor.Outcome[imap.QuotaData] {
	return combinator.Composite(c, tr, func() cursor.Outcome[imap.QuotaData] {
		if o := combinator.Fixed(c, "QUOTA ", false); !o.IsOk() {
			return cursor.Outcome[imap.QuotaData]{Status: o.Status, Err: o.Err}
		}
		root := Astring(c, tr)
		if !root.IsOk() {
			return cursor.Outcome[imap.QuotaData]{Status: root.Status, Err: root.Err}
		}
		if o := combinator.Fixed(c, " (", true); !o.IsOk() {
			return cursor.Outcome[imap.QuotaData]{Status: o.Status, Err: o.Err}
		}
		var resources []imap.QuotaResourceData
		first := combinator.Optional(c, tr, func() cursor.Outcome[imap.QuotaResourceData] { return quotaResource(c, tr) })
		if first.IsIncomplete() {
			return cursor.Incomplete[imap.QuotaData]()
		}
		if first.Value != nil {
			resources = append(resources, *first.Value)
			rest := combinator.ZeroOrMore(c, tr, func() cursor.Outcome[imap.QuotaResourceData] {
				return combinator.Composite(c, tr, func() cursor.Outcome[imap.QuotaResourceData] {
					if o := combinator.Fixed(c, " ", true); !o.IsOk() {
						return cursor.Outcome[imap.QuotaResourceData]{Status: o.Status, Err: o.Err}
					}
					return quotaResource(c, tr)
				})
			})
			if rest.IsIncomplete() {
				return cursor.Incomplete[imap.QuotaData]()
			}
			if !rest.IsOk() {
				return cursor.Outcome[imap.QuotaData]{Status: rest.Status, Err: rest.Err}
			}
			resources = append(resources, rest.Value...)
		}
		if o := combinator.Fixed(c, ")", true); !o.IsOk() {
			return cursor.Outcome[imap.QuotaData]{Status: o.Status, Err: o.Err}
		}
		return cursor.Ok(imap.QuotaData{Root: string(root.Value), Resources: resources})
	})
}

// QuotaRootResponse parses the `"QUOTAROOT" SP mailbox *(SP quota-root)` response.
func QuotaRootResponse(c *cursor.ByteCursor, tr *cursor.Tracker) cursor.Outcome[imap.QuotaRootData] {
	return combinator.Composite(c, tr, func() cursor.Outcome[imap.QuotaRootData] {
		if o := combinator.Fixed(c, "QUOTAROOT ", false); !o.IsOk() {
			return cursor.Outcome[imap.QuotaRootData]{Status: o.Status, Err: o.Err}
		}
		mbox := Astring(c, tr)
		if !mbox.IsOk() {
			return cursor.Outcome[imap.QuotaRootData]{Status: mbox.Status, Err: mbox.Err}
		}
		var roots []string
		rest := combinator.ZeroOrMore(c, tr, func() cursor.Outcome[string] {
			return combinator.Composite(c, tr, func() cursor.Outcome[string] {
				if o := combinator.Fixed(c, " ", true); !o.IsOk() {
					return cursor.Outcome[string]{Status: o.Status, Err: o.Err}
				}
				a := Astring(c, tr)
				if !a.IsOk() {
					return cursor.Outcome[string]{Status: a.Status, Err: a.Err}
				}
				return cursor.Ok(string(a.Value))
			})
		})
		if rest.IsIncomplete() {
			return cursor.Incomplete[imap.QuotaRootData]()
		}
		if !rest.IsOk() {
			return cursor.Outcome[imap.QuotaRootData]{Status: rest.Status, Err: rest.Err}
		}
		roots = rest.Value
		return cursor.Ok(imap.QuotaRootData{Mailbox: string(mbox.Value), Roots: roots})
	})
}
