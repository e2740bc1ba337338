package parse

import (
	imap "github.com/meszmate/imap-go"
	"github.com/meszmate/imap-go/combinator"
	"github.com/meszmate/imap-go/cursor"
)

// namespaceExtension parses one trailing `SP string SP ("(" string
// *(SP string) ")")` namespace-response-extension entry.
func namespaceExtension(c *cursor.ByteCursor, tr *cursor.Tracker) cursor.Outcome[imap.NamespaceExtension] {
	return combinator.Composite(c, tr, func() cursor.Outcome[imap.NamespaceExtension] {
		name := String(c, tr)
		if !name.IsOk() {
			return cursor.Outcome[imap.NamespaceExtension]{Status: name.Status, Err: name.Err}
		}
		if o := combinator.Fixed(c, " (", true); !o.IsOk() {
			return cursor.Outcome[imap.NamespaceExtension]{Status: o.Status, Err: o.Err}
		}
		first := String(c, tr)
		if !first.IsOk() {
			return cursor.Outcome[imap.NamespaceExtension]{Status: first.Status, Err: first.Err}
		}
		values := []string{string(first.Value.Bytes)}
		rest := combinator.ZeroOrMore(c, tr, func() cursor.Outcome[string] {
			return combinator.Composite(c, tr, func() cursor.Outcome[string] {
				if o := combinator.Fixed(c, " ", true); !o.IsOk() {
					return cursor.Outcome[string]{Status: o.Status, Err: o.Err}
				}
				s := String(c, tr)
				if !s.IsOk() {
					return cursor.Outcome[string]{Status: s.Status, Err: s.Err}
				}
				return cursor.Ok(string(s.Value.Bytes))
			})
		})
		if rest.IsIncomplete() {
			return cursor.Incomplete[imap.NamespaceExtension]()
		}
		if !rest.IsOk() {
			return cursor.Outcome[imap.NamespaceExtension]{Status: rest.Status, Err: rest.Err}
		}
		values = append(values, rest.Value...)
		if o := combinator.Fixed(c, ")", true); !o.IsOk() {
			return cursor.Outcome[imap.NamespaceExtension]{Status: o.Status, Err: o.Err}
		}
		return cursor.Ok(imap.NamespaceExtension{Name: string(name.Value.Bytes), Values: values})
	})
}

// namespaceDescr parses one `"(" string SP (DQUOTE QUOTED-CHAR DQUOTE /
// nil) *namespace-response-extension ")"` entry.
func namespaceDescr(c *cursor.ByteCursor, tr *cursor.Tracker) cursor.Outcome[imap.NamespaceDescriptor] {
	return combinator.Composite(c, tr, func() cursor.Outcome[imap.NamespaceDescriptor] {
		if o := combinator.Fixed(c, "(", true); !o.IsOk() {
			return cursor.Outcome[imap.NamespaceDescriptor]{Status: o.Status, Err: o.Err}
		}
		prefix := String(c, tr)
		if !prefix.IsOk() {
			return cursor.Outcome[imap.NamespaceDescriptor]{Status: prefix.Status, Err: prefix.Err}
		}
		if o := combinator.Fixed(c, " ", true); !o.IsOk() {
			return cursor.Outcome[imap.NamespaceDescriptor]{Status: o.Status, Err: o.Err}
		}
		sep := quotedChar(c, tr)
		if !sep.IsOk() {
			return cursor.Outcome[imap.NamespaceDescriptor]{Status: sep.Status, Err: sep.Err}
		}

		var delim rune
		if sep.Value != nil {
			delim = rune(*sep.Value)
		}

		var exts []imap.NamespaceExtension
		rest := combinator.ZeroOrMore(c, tr, func() cursor.Outcome[imap.NamespaceExtension] {
			return combinator.Composite(c, tr, func() cursor.Outcome[imap.NamespaceExtension] {
				if o := combinator.Fixed(c, " ", true); !o.IsOk() {
					return cursor.Outcome[imap.NamespaceExtension]{Status: o.Status, Err: o.Err}
				}
				return namespaceExtension(c, tr)
			})
		})
		if rest.IsIncomplete() {
			return cursor.Incomplete[imap.NamespaceDescriptor]()
		}
		if !rest.IsOk() {
			return cursor.Outcome[imap.NamespaceDescriptor]{Status: rest.Status, Err: rest.Err}
		}
		exts = rest.Value

		if o := combinator.Fixed(c, ")", true); !o.IsOk() {
			return cursor.Outcome[imap.NamespaceDescriptor]{Status: o.Status, Err: o.Err}
		}
		return cursor.Ok(imap.NamespaceDescriptor{Prefix: string(prefix.Value.Bytes), Delim: delim, Extensions: exts})
	})
}

// namespaceList parses one of the NAMESPACE response's three namespace
// slots: NIL, or a parenthesised non-empty list of descriptors.
func namespaceList(c *cursor.ByteCursor, tr *cursor.Tracker) cursor.Outcome[[]imap.NamespaceDescriptor] {
	return combinator.OneOf(c, tr,
		func() cursor.Outcome[[]imap.NamespaceDescriptor] {
			o := combinator.Fixed(c, "NIL", false)
			if !o.IsOk() {
				return cursor.Outcome[[]imap.NamespaceDescriptor]{Status: o.Status, Err: o.Err}
			}
			return cursor.Ok[[]imap.NamespaceDescriptor](nil)
		},
		func() cursor.Outcome[[]imap.NamespaceDescriptor] {
			return combinator.Composite(c, tr, func() cursor.Outcome[[]imap.NamespaceDescriptor] {
				if o := combinator.Fixed(c, "(", true); !o.IsOk() {
					return cursor.Outcome[[]imap.NamespaceDescriptor]{Status: o.Status, Err: o.Err}
				}
				descrs := combinator.OneOrMore(c, tr, func() cursor.Outcome[imap.NamespaceDescriptor] {
					return namespaceDescr(c, tr)
				})
				if !descrs.IsOk() {
					return cursor.Outcome[[]imap.NamespaceDescriptor]{Status: descrs.Status, Err: descrs.Err}
				}
				if o := combinator.Fixed(c, ")", true); !o.IsOk() {
					return cursor.Outcome[[]imap.NamespaceDescriptor]{Status: o.Status, Err: o.Err}
				}
				return cursor.Ok(descrs.Value)
			})
		},
	)
}

// NamespaceResponse parses the full `"NAMESPACE" SP namespace SP
// namespace SP namespace` response (personal, other-users, shared).
func NamespaceResponse(c *cursor.ByteCursor, tr *cursor.Tracker) cursor.Outcome[imap.NamespaceData] {
	return combinator.Composite(c, tr, func() cursor.Outcome[imap.NamespaceData] {
		if o := combinator.Fixed(c, "NAMESPACE ", false); !o.IsOk() {
			return cursor.Outcome[imap.NamespaceData]{Status: o.Status, Err: o.Err}
		}
		personal := namespaceList(c, tr)
		if !personal.IsOk() {
			return cursor.Outcome[imap.NamespaceData]{Status: personal.Status, Err: personal.Err}
		}
		if o := combinator.Fixed(c, " ", true); !o.IsOk() {
			return cursor.Outcome[imap.NamespaceData]{Status: o.Status, Err: o.Err}
		}
		other := namespaceList(c, tr)
		if !other.IsOk() {
			return cursor.Outcome[imap.NamespaceData]{Status: other.Status, Err: other.Err}
		}
		if o := combinator.Fixed(c, " ", true); !o.IsOk() {
			return cursor.Outcome[imap.NamespaceData]{Status: o.Status, Err: o.Err}
		}
		shared := namespaceList(c, tr)
		if !shared.IsOk() {
			return cursor.Outcome[imap.NamespaceData]{Status: shared.Status, Err: shared.Err}
		}
		return cursor.Ok(imap.NamespaceData{Personal: personal.Value, Other: other.Value, Shared: shared.Value})
	})
}
