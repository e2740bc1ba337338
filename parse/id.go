package parse

import (
	imap "github.com/meszmate/imap-go"
	"github.com/meszmate/imap-go/combinator"
	"github.com/meszmate/imap-go/cursor"
)

// idParam is one field/value pair inside an ID response's parameter list.
type idParam struct {
	Name  string
	Value *string
}

// idParamPair parses one `string SP nstring` field/value pair.
func idParamPair(c *cursor.ByteCursor, tr *cursor.Tracker) cursor.Outcome[idParam] {
	return combinator.Composite(c, tr, func() cursor.Outcome[idParam] {
		name := String(c, tr)
		if !name.IsOk() {
			return cursor.Outcome[idParam]{Status: name.Status, Err: name.Err}
		}
		if o := combinator.Fixed(c, " ", true); !o.IsOk() {
			return cursor.Outcome[idParam]{Status: o.Status, Err: o.Err}
		}
		val := NString(c, tr)
		if !val.IsOk() {
			return cursor.Outcome[idParam]{Status: val.Status, Err: val.Err}
		}
		p := idParam{Name: string(name.Value.Bytes)}
		if val.Value != nil {
			s := string(val.Value)
			p.Value = &s
		}
		return cursor.Ok(p)
	})
}

// IDResponse parses the `"ID" SP (nil / "(" [id-param-list] ")")` response.
func IDResponse(c *cursor.ByteCursor, tr *cursor.Tracker) cursor.Outcome[imap.IDData] {
	return combinator.Composite(c, tr, func() cursor.Outcome[imap.IDData] {
		if o := combinator.Fixed(c, "ID ", false); !o.IsOk() {
			return cursor.Outcome[imap.IDData]{Status: o.Status, Err: o.Err}
		}
		return combinator.OneOf(c, tr,
			func() cursor.Outcome[imap.IDData] {
				o := combinator.Fixed(c, "NIL", false)
				if !o.IsOk() {
					return cursor.Outcome[imap.IDData]{Status: o.Status, Err: o.Err}
				}
				return cursor.Ok[imap.IDData](nil)
			},
			func() cursor.Outcome[imap.IDData] {
				return combinator.Composite(c, tr, func() cursor.Outcome[imap.IDData] {
					if o := combinator.Fixed(c, "(", true); !o.IsOk() {
						return cursor.Outcome[imap.IDData]{Status: o.Status, Err: o.Err}
					}
					data := imap.IDData{}
					first := combinator.Optional(c, tr, func() cursor.Outcome[idParam] { return idParamPair(c, tr) })
					if first.IsIncomplete() {
						return cursor.Incomplete[imap.IDData]()
					}
					if first.Value != nil {
						data[first.Value.Name] = first.Value.Value
						rest := combinator.ZeroOrMore(c, tr, func() cursor.Outcome[idParam] {
							return combinator.Composite(c, tr, func() cursor.Outcome[idParam] {
								if o := combinator.Fixed(c, " ", true); !o.IsOk() {
									return cursor.Outcome[idParam]{Status: o.Status, Err: o.Err}
								}
								return idParamPair(c, tr)
							})
						})
						if rest.IsIncomplete() {
							return cursor.Incomplete[imap.IDData]()
						}
						if !rest.IsOk() {
							return cursor.Outcome[imap.IDData]{Status: rest.Status, Err: rest.Err}
						}
						for _, p := range rest.Value {
							data[p.Name] = p.Value
						}
					}
					if o := combinator.Fixed(c, ")", true); !o.IsOk() {
						return cursor.Outcome[imap.IDData]{Status: o.Status, Err: o.Err}
					}
					return cursor.Ok(data)
				})
			},
		)
	})
}
