package parse

import (
	imap "github.com/meszmate/imap-go"
	"github.com/meszmate/imap-go/combinator"
	"github.com/meszmate/imap-go/cursor"
)

// entryList parses a parenthesised list of entry-name astrings, used by
// both GETMETADATA requests and the entry half of a METADATA response.
func entryList(c *cursor.ByteCursor, tr *cursor.Tracker) cursor.Outcome[[]string] {
	return combinator.Composite(c, tr, func() cursor.Outcome[[]string] {
		if o := combinator.Fixed(c, "(", true); !o.IsOk() {
			return cursor.Outcome[[]string]{Status: o.Status, Err: o.Err}
		}
		first := Astring(c, tr)
		if !first.IsOk() {
			return cursor.Outcome[[]string]{Status: first.Status, Err: first.Err}
		}
		entries := []string{string(first.Value)}
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
		entries = append(entries, rest.Value...)
		if o := combinator.Fixed(c, ")", true); !o.IsOk() {
			return cursor.Outcome[[]string]{Status: o.Status, Err: o.Err}
		}
		return cursor.Ok(entries)
	})
}

// MetadataOptionsProd parses the GETMETADATA "(" [MAXSIZE number] [DEPTH
// depth] ")" options prefix.
func MetadataOptionsProd(c *cursor.ByteCursor, tr *cursor.Tracker) cursor.Outcome[imap.MetadataOptions] {
	return combinator.Composite(c, tr, func() cursor.Outcome[imap.MetadataOptions] {
		if o := combinator.Fixed(c, "(", true); !o.IsOk() {
			return cursor.Outcome[imap.MetadataOptions]{Status: o.Status, Err: o.Err}
		}
		var opts imap.MetadataOptions

		maxSize := combinator.Optional(c, tr, func() cursor.Outcome[int64] {
			return combinator.Composite(c, tr, func() cursor.Outcome[int64] {
				if o := combinator.Fixed(c, "MAXSIZE ", false); !o.IsOk() {
					return cursor.Outcome[int64]{Status: o.Status, Err: o.Err}
				}
				n := Number64(c, tr)
				if !n.IsOk() {
					return cursor.Outcome[int64]{Status: n.Status, Err: n.Err}
				}
				return cursor.Ok(int64(n.Value))
			})
		})
		if maxSize.IsIncomplete() {
			return cursor.Incomplete[imap.MetadataOptions]()
		}
		if maxSize.Value != nil {
			opts.MaxSize = maxSize.Value
		}

		depth := combinator.Optional(c, tr, func() cursor.Outcome[string] {
			return combinator.Composite(c, tr, func() cursor.Outcome[string] {
				if opts.MaxSize != nil {
					if o := combinator.Fixed(c, " ", true); !o.IsOk() {
						return cursor.Outcome[string]{Status: o.Status, Err: o.Err}
					}
				}
				if o := combinator.Fixed(c, "DEPTH ", false); !o.IsOk() {
					return cursor.Outcome[string]{Status: o.Status, Err: o.Err}
				}
				return combinator.OneOf(c, tr,
					func() cursor.Outcome[string] {
						o := combinator.Fixed(c, "infinity", false)
						if !o.IsOk() {
							return cursor.Outcome[string]{Status: o.Status, Err: o.Err}
						}
						return cursor.Ok("infinity")
					},
					func() cursor.Outcome[string] {
						o := combinator.Fixed(c, "0", true)
						if !o.IsOk() {
							return cursor.Outcome[string]{Status: o.Status, Err: o.Err}
						}
						return cursor.Ok("0")
					},
					func() cursor.Outcome[string] {
						o := combinator.Fixed(c, "1", true)
						if !o.IsOk() {
							return cursor.Outcome[string]{Status: o.Status, Err: o.Err}
						}
						return cursor.Ok("1")
					},
				)
			})
		})
		if depth.IsIncomplete() {
			return cursor.Incomplete[imap.MetadataOptions]()
		}
		if depth.Value != nil {
			opts.Depth = *depth.Value
		}

		if o := combinator.Fixed(c, ")", true); !o.IsOk() {
			return cursor.Outcome[imap.MetadataOptions]{Status: o.Status, Err: o.Err}
		}
		return cursor.Ok(opts)
	})
}

// entryValue parses one `entry SP value` pair in a METADATA response.
func entryValue(c *cursor.ByteCursor, tr *cursor.Tracker) cursor.Outcome[imap.MetadataEntry] {
	return combinator.Composite(c, tr, func() cursor.Outcome[imap.MetadataEntry] {
		name := Astring(c, tr)
		if !name.IsOk() {
			return cursor.Outcome[imap.MetadataEntry]{Status: name.Status, Err: name.Err}
		}
		if o := combinator.Fixed(c, " ", true); !o.IsOk() {
			return cursor.Outcome[imap.MetadataEntry]{Status: o.Status, Err: o.Err}
		}
		val := NString(c, tr)
		if !val.IsOk() {
			return cursor.Outcome[imap.MetadataEntry]{Status: val.Status, Err: val.Err}
		}
		e := imap.MetadataEntry{Name: string(name.Value)}
		if val.Value != nil {
			s := string(val.Value)
			e.Value = &s
		}
		return cursor.Ok(e)
	})
}

// MetadataResponse parses the full `"METADATA" SP mailbox SP ("(" entry-value
// *(SP entry-value) ")" / entry-list)` response.
func MetadataResponse(c *cursor.ByteCursor, tr *cursor.Tracker) cursor.Outcome[imap.MetadataData] {
	return combinator.Composite(c, tr, func() cursor.Outcome[imap.MetadataData] {
		if o := combinator.Fixed(c, "METADATA ", false); !o.IsOk() {
			return cursor.Outcome[imap.MetadataData]{Status: o.Status, Err: o.Err}
		}
		mbox := Astring(c, tr)
		if !mbox.IsOk() {
			return cursor.Outcome[imap.MetadataData]{Status: mbox.Status, Err: mbox.Err}
		}
		if o := combinator.Fixed(c, " ", true); !o.IsOk() {
			return cursor.Outcome[imap.MetadataData]{Status: o.Status, Err: o.Err}
		}

		data := imap.MetadataData{Mailbox: string(mbox.Value), Entries: map[string]*string{}}

		entries := combinator.OneOf(c, tr,
			func() cursor.Outcome[struct{}] {
				return combinator.Composite(c, tr, func() cursor.Outcome[struct{}] {
					if o := combinator.Fixed(c, "(", true); !o.IsOk() {
						return cursor.Outcome[struct{}]{Status: o.Status, Err: o.Err}
					}
					first := entryValue(c, tr)
					if !first.IsOk() {
						return cursor.Outcome[struct{}]{Status: first.Status, Err: first.Err}
					}
					data.Entries[first.Value.Name] = first.Value.Value
					rest := combinator.ZeroOrMore(c, tr, func() cursor.Outcome[imap.MetadataEntry] {
						return combinator.Composite(c, tr, func() cursor.Outcome[imap.MetadataEntry] {
							if o := combinator.Fixed(c, " ", true); !o.IsOk() {
								return cursor.Outcome[imap.MetadataEntry]{Status: o.Status, Err: o.Err}
							}
							return entryValue(c, tr)
						})
					})
					if rest.IsIncomplete() {
						return cursor.Incomplete[struct{}]()
					}
					if !rest.IsOk() {
						return cursor.Outcome[struct{}]{Status: rest.Status, Err: rest.Err}
					}
					for _, e := range rest.Value {
						data.Entries[e.Name] = e.Value
					}
					if o := combinator.Fixed(c, ")", true); !o.IsOk() {
						return cursor.Outcome[struct{}]{Status: o.Status, Err: o.Err}
					}
					return cursor.Ok(struct{}{})
				})
			},
			func() cursor.Outcome[struct{}] {
				names := entryList(c, tr)
				if !names.IsOk() {
					return cursor.Outcome[struct{}]{Status: names.Status, Err: names.Err}
				}
				for _, n := range names.Value {
					data.Entries[n] = nil
				}
				return cursor.Ok(struct{}{})
			},
		)
		if !entries.IsOk() {
			return cursor.Outcome[imap.MetadataData]{Status: entries.Status, Err: entries.Err}
		}
		return cursor.Ok(data)
	})
}
