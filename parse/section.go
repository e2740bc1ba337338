package parse

import (
	imap "github.com/meszmate/imap-go"
	"github.com/meszmate/imap-go/combinator"
	"github.com/meszmate/imap-go/cursor"
)

// sectionPart parses the `nz-number ("." nz-number)*` part-path prefix
// that may precede a section's kind, e.g. "1.2.HEADER" or bare "1.2".
func sectionPart(c *cursor.ByteCursor, tr *cursor.Tracker) cursor.Outcome[[]int] {
	return combinator.Composite(c, tr, func() cursor.Outcome[[]int] {
		first := NZNumber(c, tr)
		if !first.IsOk() {
			return cursor.Outcome[[]int]{Status: first.Status, Err: first.Err}
		}
		parts := []int{int(first.Value)}
		rest := combinator.ZeroOrMore(c, tr, func() cursor.Outcome[int] {
			return combinator.Composite(c, tr, func() cursor.Outcome[int] {
				if o := combinator.Fixed(c, ".", true); !o.IsOk() {
					return cursor.Outcome[int]{Status: o.Status, Err: o.Err}
				}
				n := NZNumber(c, tr)
				if !n.IsOk() {
					return cursor.Outcome[int]{Status: n.Status, Err: n.Err}
				}
				return cursor.Ok(int(n.Value))
			})
		})
		if rest.IsIncomplete() {
			return cursor.Incomplete[[]int]()
		}
		if !rest.IsOk() {
			return cursor.Outcome[[]int]{Status: rest.Status, Err: rest.Err}
		}
		parts = append(parts, rest.Value...)
		return cursor.Ok(parts)
	})
}

// headerFieldList parses the space-separated parenthesised list of
// header field names following HEADER.FIELDS[.NOT].
func headerFieldList(c *cursor.ByteCursor, tr *cursor.Tracker) cursor.Outcome[[]string] {
	return combinator.Composite(c, tr, func() cursor.Outcome[[]string] {
		if o := combinator.Fixed(c, "(", true); !o.IsOk() {
			return cursor.Outcome[[]string]{Status: o.Status, Err: o.Err}
		}
		first := Astring(c, tr)
		if !first.IsOk() {
			return cursor.Outcome[[]string]{Status: first.Status, Err: first.Err}
		}
		fields := []string{string(first.Value)}
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
			return cursor.Incomplete[[]string]()
		}
		if !rest.IsOk() {
			return cursor.Outcome[[]string]{Status: rest.Status, Err: rest.Err}
		}
		fields = append(fields, rest.Value...)
		if o := combinator.Fixed(c, ")", true); !o.IsOk() {
			return cursor.Outcome[[]string]{Status: o.Status, Err: o.Err}
		}
		return cursor.Ok(fields)
	})
}

// sectionKind parses the kind suffix of a section-spec: the part after
// any "N.N." part-path prefix. Order matters — HEADER.FIELDS.NOT must be
// attempted before HEADER.FIELDS before bare HEADER, since the shorter
// alternatives are textual prefixes of the longer ones.
func sectionKind(c *cursor.ByteCursor, tr *cursor.Tracker) cursor.Outcome[imap.BodySectionName] {
	return combinator.OneOf(c, tr,
		func() cursor.Outcome[imap.BodySectionName] {
			return combinator.Composite(c, tr, func() cursor.Outcome[imap.BodySectionName] {
				if o := combinator.Fixed(c, "HEADER.FIELDS.NOT", false); !o.IsOk() {
					return cursor.Outcome[imap.BodySectionName]{Status: o.Status, Err: o.Err}
				}
				if o := combinator.Fixed(c, " ", true); !o.IsOk() {
					return cursor.Outcome[imap.BodySectionName]{Status: o.Status, Err: o.Err}
				}
				fields := headerFieldList(c, tr)
				if !fields.IsOk() {
					return cursor.Outcome[imap.BodySectionName]{Status: fields.Status, Err: fields.Err}
				}
				return cursor.Ok(imap.BodySectionName{Specifier: "HEADER.FIELDS.NOT", Fields: fields.Value, NotFields: true})
			})
		},
		func() cursor.Outcome[imap.BodySectionName] {
			return combinator.Composite(c, tr, func() cursor.Outcome[imap.BodySectionName] {
				if o := combinator.Fixed(c, "HEADER.FIELDS", false); !o.IsOk() {
					return cursor.Outcome[imap.BodySectionName]{Status: o.Status, Err: o.Err}
				}
				if o := combinator.Fixed(c, " ", true); !o.IsOk() {
					return cursor.Outcome[imap.BodySectionName]{Status: o.Status, Err: o.Err}
				}
				fields := headerFieldList(c, tr)
				if !fields.IsOk() {
					return cursor.Outcome[imap.BodySectionName]{Status: fields.Status, Err: fields.Err}
				}
				return cursor.Ok(imap.BodySectionName{Specifier: "HEADER.FIELDS", Fields: fields.Value})
			})
		},
		func() cursor.Outcome[imap.BodySectionName] {
			o := combinator.Fixed(c, "HEADER", false)
			if !o.IsOk() {
				return cursor.Outcome[imap.BodySectionName]{Status: o.Status, Err: o.Err}
			}
			return cursor.Ok(imap.BodySectionName{Specifier: "HEADER"})
		},
		func() cursor.Outcome[imap.BodySectionName] {
			o := combinator.Fixed(c, "TEXT", false)
			if !o.IsOk() {
				return cursor.Outcome[imap.BodySectionName]{Status: o.Status, Err: o.Err}
			}
			return cursor.Ok(imap.BodySectionName{Specifier: "TEXT"})
		},
		func() cursor.Outcome[imap.BodySectionName] {
			o := combinator.Fixed(c, "MIME", false)
			if !o.IsOk() {
				return cursor.Outcome[imap.BodySectionName]{Status: o.Status, Err: o.Err}
			}
			return cursor.Ok(imap.BodySectionName{Specifier: "MIME"})
		},
	)
}

// Section parses a full section-spec, "[" ... "]", including the
// optional leading part-path, the optional kind, and handles the empty
// bracket pair "[]" (the complete body).
func Section(c *cursor.ByteCursor, tr *cursor.Tracker) cursor.Outcome[imap.BodySectionName] {
	return combinator.Composite(c, tr, func() cursor.Outcome[imap.BodySectionName] {
		if o := combinator.Fixed(c, "[", true); !o.IsOk() {
			return cursor.Outcome[imap.BodySectionName]{Status: o.Status, Err: o.Err}
		}

		var part []int
		dotted := false
		partO := combinator.Optional(c, tr, func() cursor.Outcome[[]int] {
			return combinator.Composite(c, tr, func() cursor.Outcome[[]int] {
				p := sectionPart(c, tr)
				if !p.IsOk() {
					return p
				}
				dot := combinator.Fixed(c, ".", true)
				if dot.IsIncomplete() {
					return cursor.Incomplete[[]int]()
				}
				dotted = dot.IsOk()
				return p
			})
		})
		if partO.IsIncomplete() {
			return cursor.Incomplete[imap.BodySectionName]()
		}
		if partO.Value != nil {
			part = *partO.Value
		}

		kindO := combinator.Optional(c, tr, func() cursor.Outcome[imap.BodySectionName] { return sectionKind(c, tr) })
		if kindO.IsIncomplete() {
			return cursor.Incomplete[imap.BodySectionName]()
		}
		if dotted && kindO.Value == nil {
			return cursor.Recoverable[imap.BodySectionName]()
		}

		if o := combinator.Fixed(c, "]", true); !o.IsOk() {
			return cursor.Outcome[imap.BodySectionName]{Status: o.Status, Err: o.Err}
		}

		var sec imap.BodySectionName
		if kindO.Value != nil {
			sec = *kindO.Value
		}
		sec.Part = part
		return cursor.Ok(sec)
	})
}

// Partial parses the `<offset.count>` byte-range suffix that may follow
// a FETCH BODY[...] section specifier.
func Partial(c *cursor.ByteCursor, tr *cursor.Tracker) cursor.Outcome[imap.SectionPartial] {
	return combinator.Composite(c, tr, func() cursor.Outcome[imap.SectionPartial] {
		if o := combinator.Fixed(c, "<", true); !o.IsOk() {
			return cursor.Outcome[imap.SectionPartial]{Status: o.Status, Err: o.Err}
		}
		offset := Number(c, tr)
		if !offset.IsOk() {
			return cursor.Outcome[imap.SectionPartial]{Status: offset.Status, Err: offset.Err}
		}
		if o := combinator.Fixed(c, ".", true); !o.IsOk() {
			return cursor.Outcome[imap.SectionPartial]{Status: o.Status, Err: o.Err}
		}
		count := NZNumber(c, tr)
		if !count.IsOk() {
			return cursor.Outcome[imap.SectionPartial]{Status: count.Status, Err: count.Err}
		}
		if o := combinator.Fixed(c, ">", true); !o.IsOk() {
			return cursor.Outcome[imap.SectionPartial]{Status: o.Status, Err: o.Err}
		}
		return cursor.Ok(imap.SectionPartial{Offset: int64(offset.Value), Count: int64(count.Value)})
	})
}
