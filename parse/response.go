package parse

import (
	"fmt"
	"strings"
	"time"

	imap "github.com/meszmate/imap-go"
	"github.com/meszmate/imap-go/combinator"
	"github.com/meszmate/imap-go/cursor"
	"github.com/meszmate/imap-go/perr"
)

// Response is the top-level grammar value a single call to TopLevel
// produces: the collaborator interface TopLevel produces,
// a tagged union over every response form this package understands.
// Exactly one field besides Tag/Continuation is populated.
type Response struct {
	// Tag is the response tag: "*" for untagged, the client-chosen tag
	// for a tagged status response. Empty for a continuation request.
	Tag string

	// Continuation holds the text of a "+ ..." continuation request.
	Continuation *string

	Status     *imap.StatusResponse
	Capability []imap.Cap
	Enabled    []imap.Cap
	Flags      []imap.Flag

	Exists   *uint32
	Recent   *uint32
	Expunge  *uint32
	Vanished *imap.UIDSet

	Fetch *imap.FetchMessageBuffer

	Search       []uint32
	SearchModSeq *uint64
	ESearch      *imap.SearchData

	List *imap.MailboxInfo
	LSub *imap.MailboxInfo

	StatusData *imap.StatusData
	Namespace  *imap.NamespaceData
	Metadata   *imap.MetadataData
	Quota      *imap.QuotaData
	QuotaRoot  *imap.QuotaRootData
	ID         imap.IDData
}

func capList(c *cursor.ByteCursor, tr *cursor.Tracker) cursor.Outcome[[]imap.Cap] {
	first := Atom(c, tr)
	if !first.IsOk() {
		return cursor.Outcome[[]imap.Cap]{Status: first.Status, Err: first.Err}
	}
	caps := []imap.Cap{imap.Cap(first.Value)}
	rest := combinator.ZeroOrMore(c, tr, func() cursor.Outcome[imap.Cap] {
		return combinator.Composite(c, tr, func() cursor.Outcome[imap.Cap] {
			if o := combinator.Fixed(c, " ", true); !o.IsOk() {
				return cursor.Outcome[imap.Cap]{Status: o.Status, Err: o.Err}
			}
			a := Atom(c, tr)
			if !a.IsOk() {
				return cursor.Outcome[imap.Cap]{Status: a.Status, Err: a.Err}
			}
			return cursor.Ok(imap.Cap(a.Value))
		})
	})
	if rest.IsIncomplete() {
		return cursor.Incomplete[[]imap.Cap]()
	}
	if !rest.IsOk() {
		return cursor.Outcome[[]imap.Cap]{Status: rest.Status, Err: rest.Err}
	}
	caps = append(caps, rest.Value...)
	return cursor.Ok(caps)
}

// respTextCode parses the `[` atom [SP 1*<any TEXT-CHAR except "]">] `]`
// response code onto sr: the code name goes to sr.Code, the argument of a
// well-known code is parsed into sr.CodeArg, and for any other code the
// trailing text, if present, is kept in sr.CodeArg as a string.
func respTextCode(c *cursor.ByteCursor, tr *cursor.Tracker, sr *imap.StatusResponse) cursor.Outcome[struct{}] {
	return combinator.Composite(c, tr, func() cursor.Outcome[struct{}] {
		if o := combinator.Fixed(c, "[", true); !o.IsOk() {
			return cursor.Outcome[struct{}]{Status: o.Status, Err: o.Err}
		}
		name := Atom(c, tr)
		if !name.IsOk() {
			return cursor.Outcome[struct{}]{Status: name.Status, Err: name.Err}
		}
		sr.Code = imap.ResponseCode(name.Value)

		switch sr.Code {
		case imap.ResponseCodeCapability:
			if o := combinator.Fixed(c, " ", true); !o.IsOk() {
				return cursor.Outcome[struct{}]{Status: o.Status, Err: o.Err}
			}
			caps := capList(c, tr)
			if !caps.IsOk() {
				return cursor.Outcome[struct{}]{Status: caps.Status, Err: caps.Err}
			}
			sr.CodeArg = caps.Value
		case imap.ResponseCodePermanentFlags:
			if o := combinator.Fixed(c, " ", true); !o.IsOk() {
				return cursor.Outcome[struct{}]{Status: o.Status, Err: o.Err}
			}
			fl := PermanentFlagList(c, tr)
			if !fl.IsOk() {
				return cursor.Outcome[struct{}]{Status: fl.Status, Err: fl.Err}
			}
			sr.CodeArg = fl.Value
		case imap.ResponseCodeUIDNext, imap.ResponseCodeUIDValidity, imap.ResponseCodeUnseen:
			if o := combinator.Fixed(c, " ", true); !o.IsOk() {
				return cursor.Outcome[struct{}]{Status: o.Status, Err: o.Err}
			}
			n := Number(c, tr)
			if !n.IsOk() {
				return cursor.Outcome[struct{}]{Status: n.Status, Err: n.Err}
			}
			sr.CodeArg = n.Value
		case imap.ResponseCodeHighestModSeq:
			if o := combinator.Fixed(c, " ", true); !o.IsOk() {
				return cursor.Outcome[struct{}]{Status: o.Status, Err: o.Err}
			}
			n := Number64(c, tr)
			if !n.IsOk() {
				return cursor.Outcome[struct{}]{Status: n.Status, Err: n.Err}
			}
			sr.CodeArg = n.Value
		case imap.ResponseCodeMailboxID:
			if o := combinator.Fixed(c, " (", true); !o.IsOk() {
				return cursor.Outcome[struct{}]{Status: o.Status, Err: o.Err}
			}
			id := Astring(c, tr)
			if !id.IsOk() {
				return cursor.Outcome[struct{}]{Status: id.Status, Err: id.Err}
			}
			if o := combinator.Fixed(c, ")", true); !o.IsOk() {
				return cursor.Outcome[struct{}]{Status: o.Status, Err: o.Err}
			}
			sr.CodeArg = string(id.Value)
		default:
			// Unrecognised code: keep any trailing text as an opaque
			// argument rather than rejecting it (RFC 9051 §7.2.1, same
			// tolerance the capability-list grammar applies).
			text := combinator.Optional(c, tr, func() cursor.Outcome[[]byte] {
				return combinator.Composite(c, tr, func() cursor.Outcome[[]byte] {
					if o := combinator.Fixed(c, " ", true); !o.IsOk() {
						return cursor.Outcome[[]byte]{Status: o.Status, Err: o.Err}
					}
					return combinator.CharsWhile(c, func(b byte) bool { return b != ']' && b != '\r' && b != '\n' })
				})
			})
			if text.IsIncomplete() {
				return cursor.Incomplete[struct{}]()
			}
			if text.Value != nil {
				sr.CodeArg = string(*text.Value)
			}
		}

		if o := combinator.Fixed(c, "]", true); !o.IsOk() {
			return cursor.Outcome[struct{}]{Status: o.Status, Err: o.Err}
		}
		return cursor.Ok(struct{}{})
	})
}

// statusResponseBody parses the shared `resp-cond-state` tail once the
// leading tag and status keyword have already been consumed: an optional
// response code followed by free text up to the line terminator.
func statusResponseBody(c *cursor.ByteCursor, tr *cursor.Tracker, typ imap.StatusResponseType) cursor.Outcome[imap.StatusResponse] {
	return combinator.Composite(c, tr, func() cursor.Outcome[imap.StatusResponse] {
		sr := imap.StatusResponse{Type: typ}
		if o := combinator.Fixed(c, " ", true); !o.IsOk() {
			return cursor.Outcome[imap.StatusResponse]{Status: o.Status, Err: o.Err}
		}
		code := combinator.Optional(c, tr, func() cursor.Outcome[struct{}] {
			return combinator.Composite(c, tr, func() cursor.Outcome[struct{}] {
				o := respTextCode(c, tr, &sr)
				if !o.IsOk() {
					return o
				}
				if o := combinator.Fixed(c, " ", true); !o.IsOk() {
					return cursor.Outcome[struct{}]{Status: o.Status, Err: o.Err}
				}
				return cursor.Ok(struct{}{})
			})
		})
		if code.IsIncomplete() {
			return cursor.Incomplete[imap.StatusResponse]()
		}
		text := Text(c, tr)
		if !text.IsOk() {
			return cursor.Outcome[imap.StatusResponse]{Status: text.Status, Err: text.Err}
		}
		sr.Text = string(text.Value)
		if o := c.ParseNewline(); !o.IsOk() {
			return cursor.Outcome[imap.StatusResponse]{Status: o.Status, Err: o.Err}
		}
		return cursor.Ok(sr)
	})
}

func statusKeyword(c *cursor.ByteCursor, tr *cursor.Tracker) cursor.Outcome[imap.StatusResponseType] {
	return combinator.OneOf(c, tr,
		func() cursor.Outcome[imap.StatusResponseType] {
			o := combinator.Fixed(c, "OK", false)
			if !o.IsOk() {
				return cursor.Outcome[imap.StatusResponseType]{Status: o.Status, Err: o.Err}
			}
			return cursor.Ok(imap.StatusResponseTypeOK)
		},
		func() cursor.Outcome[imap.StatusResponseType] {
			o := combinator.Fixed(c, "NO", false)
			if !o.IsOk() {
				return cursor.Outcome[imap.StatusResponseType]{Status: o.Status, Err: o.Err}
			}
			return cursor.Ok(imap.StatusResponseTypeNO)
		},
		func() cursor.Outcome[imap.StatusResponseType] {
			o := combinator.Fixed(c, "BAD", false)
			if !o.IsOk() {
				return cursor.Outcome[imap.StatusResponseType]{Status: o.Status, Err: o.Err}
			}
			return cursor.Ok(imap.StatusResponseTypeBAD)
		},
		func() cursor.Outcome[imap.StatusResponseType] {
			o := combinator.Fixed(c, "BYE", false)
			if !o.IsOk() {
				return cursor.Outcome[imap.StatusResponseType]{Status: o.Status, Err: o.Err}
			}
			return cursor.Ok(imap.StatusResponseTypeBYE)
		},
		func() cursor.Outcome[imap.StatusResponseType] {
			o := combinator.Fixed(c, "PREAUTH", false)
			if !o.IsOk() {
				return cursor.Outcome[imap.StatusResponseType]{Status: o.Status, Err: o.Err}
			}
			return cursor.Ok(imap.StatusResponseTypePREAUTH)
		},
	)
}

func dateTime(c *cursor.ByteCursor, tr *cursor.Tracker) cursor.Outcome[time.Time] {
	return combinator.Composite(c, tr, func() cursor.Outcome[time.Time] {
		q := Quoted(c, tr)
		if !q.IsOk() {
			return cursor.Outcome[time.Time]{Status: q.Status, Err: q.Err}
		}
		t, err := time.Parse(imap.InternalDateLayout, string(q.Value))
		if err != nil {
			return cursor.Fatal[time.Time](perr.Malformedf(c.Offset(), "invalid date-time: %v", err))
		}
		return cursor.Ok(t)
	})
}

// msgAtt parses one `msg-att` item of a FETCH response body onto buf.
func msgAtt(c *cursor.ByteCursor, tr *cursor.Tracker, buf *imap.FetchMessageBuffer) cursor.Outcome[struct{}] {
	return combinator.OneOf(c, tr,
		func() cursor.Outcome[struct{}] {
			return combinator.Composite(c, tr, func() cursor.Outcome[struct{}] {
				if o := combinator.Fixed(c, "FLAGS ", false); !o.IsOk() {
					return cursor.Outcome[struct{}]{Status: o.Status, Err: o.Err}
				}
				fl := FlagList(c, tr)
				if !fl.IsOk() {
					return cursor.Outcome[struct{}]{Status: fl.Status, Err: fl.Err}
				}
				buf.Flags = fl.Value
				return cursor.Ok(struct{}{})
			})
		},
		func() cursor.Outcome[struct{}] {
			return combinator.Composite(c, tr, func() cursor.Outcome[struct{}] {
				if o := combinator.Fixed(c, "ENVELOPE ", false); !o.IsOk() {
					return cursor.Outcome[struct{}]{Status: o.Status, Err: o.Err}
				}
				env := Envelope(c, tr)
				if !env.IsOk() {
					return cursor.Outcome[struct{}]{Status: env.Status, Err: env.Err}
				}
				buf.Envelope = &env.Value
				return cursor.Ok(struct{}{})
			})
		},
		func() cursor.Outcome[struct{}] {
			return combinator.Composite(c, tr, func() cursor.Outcome[struct{}] {
				if o := combinator.Fixed(c, "INTERNALDATE ", false); !o.IsOk() {
					return cursor.Outcome[struct{}]{Status: o.Status, Err: o.Err}
				}
				t := dateTime(c, tr)
				if !t.IsOk() {
					return cursor.Outcome[struct{}]{Status: t.Status, Err: t.Err}
				}
				buf.InternalDate = t.Value
				return cursor.Ok(struct{}{})
			})
		},
		func() cursor.Outcome[struct{}] {
			return combinator.Composite(c, tr, func() cursor.Outcome[struct{}] {
				if o := combinator.Fixed(c, "RFC822.SIZE ", false); !o.IsOk() {
					return cursor.Outcome[struct{}]{Status: o.Status, Err: o.Err}
				}
				n := Number64(c, tr)
				if !n.IsOk() {
					return cursor.Outcome[struct{}]{Status: n.Status, Err: n.Err}
				}
				buf.RFC822Size = int64(n.Value)
				return cursor.Ok(struct{}{})
			})
		},
		func() cursor.Outcome[struct{}] {
			return combinator.Composite(c, tr, func() cursor.Outcome[struct{}] {
				if o := combinator.Fixed(c, "UID ", false); !o.IsOk() {
					return cursor.Outcome[struct{}]{Status: o.Status, Err: o.Err}
				}
				n := NZNumber(c, tr)
				if !n.IsOk() {
					return cursor.Outcome[struct{}]{Status: n.Status, Err: n.Err}
				}
				buf.UID = imap.UID(n.Value)
				return cursor.Ok(struct{}{})
			})
		},
		func() cursor.Outcome[struct{}] {
			return combinator.Composite(c, tr, func() cursor.Outcome[struct{}] {
				if o := combinator.Fixed(c, "MODSEQ (", false); !o.IsOk() {
					return cursor.Outcome[struct{}]{Status: o.Status, Err: o.Err}
				}
				n := Number64(c, tr)
				if !n.IsOk() {
					return cursor.Outcome[struct{}]{Status: n.Status, Err: n.Err}
				}
				if o := combinator.Fixed(c, ")", true); !o.IsOk() {
					return cursor.Outcome[struct{}]{Status: o.Status, Err: o.Err}
				}
				buf.ModSeq = n.Value
				return cursor.Ok(struct{}{})
			})
		},
		func() cursor.Outcome[struct{}] {
			return combinator.Composite(c, tr, func() cursor.Outcome[struct{}] {
				if o := combinator.Fixed(c, "X-GM-LABELS (", false); !o.IsOk() {
					return cursor.Outcome[struct{}]{Status: o.Status, Err: o.Err}
				}
				var labels []string
				first := combinator.Optional(c, tr, func() cursor.Outcome[[]byte] { return Astring(c, tr) })
				if first.IsIncomplete() {
					return cursor.Incomplete[struct{}]()
				}
				if first.Value != nil {
					labels = append(labels, string(*first.Value))
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
						return cursor.Incomplete[struct{}]()
					}
					if !rest.IsOk() {
						return cursor.Outcome[struct{}]{Status: rest.Status, Err: rest.Err}
					}
					labels = append(labels, rest.Value...)
				}
				if o := combinator.Fixed(c, ")", true); !o.IsOk() {
					return cursor.Outcome[struct{}]{Status: o.Status, Err: o.Err}
				}
				buf.GmailLabels = labels
				return cursor.Ok(struct{}{})
			})
		},
		func() cursor.Outcome[struct{}] {
			return combinator.Composite(c, tr, func() cursor.Outcome[struct{}] {
				if o := combinator.Fixed(c, "BODYSTRUCTURE ", false); !o.IsOk() {
					return cursor.Outcome[struct{}]{Status: o.Status, Err: o.Err}
				}
				bs := Body(c, tr)
				if !bs.IsOk() {
					return cursor.Outcome[struct{}]{Status: bs.Status, Err: bs.Err}
				}
				buf.BodyStructure = &bs.Value
				return cursor.Ok(struct{}{})
			})
		},
		func() cursor.Outcome[struct{}] {
			return combinator.Composite(c, tr, func() cursor.Outcome[struct{}] {
				if o := combinator.Fixed(c, "BODY ", false); !o.IsOk() {
					return cursor.Outcome[struct{}]{Status: o.Status, Err: o.Err}
				}
				bs := Body(c, tr)
				if !bs.IsOk() {
					return cursor.Outcome[struct{}]{Status: bs.Status, Err: bs.Err}
				}
				buf.BodyStructure = &bs.Value
				return cursor.Ok(struct{}{})
			})
		},
	)
}

// sectionKey rebuilds the canonical "part.KIND (fields)" label FETCH
// clients key a response by, from the parsed BodySectionName.
func sectionKey(sec imap.BodySectionName) string {
	var b strings.Builder
	for i, p := range sec.Part {
		if i > 0 {
			b.WriteByte('.')
		}
		fmt.Fprintf(&b, "%d", p)
	}
	if sec.Specifier != "" {
		if b.Len() > 0 {
			b.WriteByte('.')
		}
		b.WriteString(sec.Specifier)
	}
	if len(sec.Fields) > 0 {
		if sec.NotFields {
			b.WriteString(".NOT")
		}
		b.WriteString(" (")
		b.WriteString(strings.Join(sec.Fields, " "))
		b.WriteByte(')')
	}
	return b.String()
}

// fetchBodySection parses one `"BODY" section ["<" number ">"] SP nstring`
// item, keyed into buf.BodySection by its reconstructed section text.
func fetchBodySection(c *cursor.ByteCursor, tr *cursor.Tracker, buf *imap.FetchMessageBuffer) cursor.Outcome[struct{}] {
	return combinator.Composite(c, tr, func() cursor.Outcome[struct{}] {
		if o := combinator.Fixed(c, "BODY", false); !o.IsOk() {
			return cursor.Outcome[struct{}]{Status: o.Status, Err: o.Err}
		}
		peek := combinator.Fixed(c, ".PEEK", false)
		if peek.IsIncomplete() {
			return cursor.Incomplete[struct{}]()
		}
		sec := Section(c, tr)
		if !sec.IsOk() {
			return cursor.Outcome[struct{}]{Status: sec.Status, Err: sec.Err}
		}
		partial := combinator.Optional(c, tr, func() cursor.Outcome[uint32] {
			return combinator.Composite(c, tr, func() cursor.Outcome[uint32] {
				if o := combinator.Fixed(c, "<", true); !o.IsOk() {
					return cursor.Outcome[uint32]{Status: o.Status, Err: o.Err}
				}
				n := Number(c, tr)
				if !n.IsOk() {
					return cursor.Outcome[uint32]{Status: n.Status, Err: n.Err}
				}
				if o := combinator.Fixed(c, ">", true); !o.IsOk() {
					return cursor.Outcome[uint32]{Status: o.Status, Err: o.Err}
				}
				return n
			})
		})
		if partial.IsIncomplete() {
			return cursor.Incomplete[struct{}]()
		}
		if o := combinator.Fixed(c, " ", true); !o.IsOk() {
			return cursor.Outcome[struct{}]{Status: o.Status, Err: o.Err}
		}
		val := NString(c, tr)
		if !val.IsOk() {
			return cursor.Outcome[struct{}]{Status: val.Status, Err: val.Err}
		}
		key := sectionKey(sec.Value)
		if partial.Value != nil {
			key = fmt.Sprintf("%s<%d>", key, *partial.Value)
		}
		if buf.BodySection == nil {
			buf.BodySection = map[string][]byte{}
		}
		buf.BodySection[key] = val.Value
		return cursor.Ok(struct{}{})
	})
}

func fetchData(c *cursor.ByteCursor, tr *cursor.Tracker, seq uint32) cursor.Outcome[imap.FetchMessageBuffer] {
	return combinator.Composite(c, tr, func() cursor.Outcome[imap.FetchMessageBuffer] {
		if o := combinator.Fixed(c, "FETCH (", false); !o.IsOk() {
			return cursor.Outcome[imap.FetchMessageBuffer]{Status: o.Status, Err: o.Err}
		}
		buf := imap.FetchMessageBuffer{SeqNum: seq}
		item := func() cursor.Outcome[struct{}] {
			return combinator.OneOf(c, tr,
				func() cursor.Outcome[struct{}] { return fetchBodySection(c, tr, &buf) },
				func() cursor.Outcome[struct{}] { return msgAtt(c, tr, &buf) },
			)
		}
		first := item()
		if first.IsIncomplete() {
			return cursor.Incomplete[imap.FetchMessageBuffer]()
		}
		if !first.IsOk() {
			return cursor.Outcome[imap.FetchMessageBuffer]{Status: first.Status, Err: first.Err}
		}
		rest := combinator.ZeroOrMore(c, tr, func() cursor.Outcome[struct{}] {
			return combinator.Composite(c, tr, func() cursor.Outcome[struct{}] {
				if o := combinator.Fixed(c, " ", true); !o.IsOk() {
					return cursor.Outcome[struct{}]{Status: o.Status, Err: o.Err}
				}
				return item()
			})
		})
		if rest.IsIncomplete() {
			return cursor.Incomplete[imap.FetchMessageBuffer]()
		}
		if !rest.IsOk() {
			return cursor.Outcome[imap.FetchMessageBuffer]{Status: rest.Status, Err: rest.Err}
		}
		if o := combinator.Fixed(c, ")", true); !o.IsOk() {
			return cursor.Outcome[imap.FetchMessageBuffer]{Status: o.Status, Err: o.Err}
		}
		return cursor.Ok(buf)
	})
}

// numberedUntagged parses the `number SP ("EXISTS"/"RECENT"/"EXPUNGE"/
// fetch-data)` family of untagged responses sharing a leading number.
func numberedUntagged(c *cursor.ByteCursor, tr *cursor.Tracker, r *Response) cursor.Outcome[struct{}] {
	return combinator.Composite(c, tr, func() cursor.Outcome[struct{}] {
		n := Number(c, tr)
		if !n.IsOk() {
			return cursor.Outcome[struct{}]{Status: n.Status, Err: n.Err}
		}
		if o := combinator.Fixed(c, " ", true); !o.IsOk() {
			return cursor.Outcome[struct{}]{Status: o.Status, Err: o.Err}
		}
		return combinator.OneOf(c, tr,
			func() cursor.Outcome[struct{}] {
				o := combinator.Fixed(c, "EXISTS", false)
				if !o.IsOk() {
					return cursor.Outcome[struct{}]{Status: o.Status, Err: o.Err}
				}
				v := n.Value
				r.Exists = &v
				return cursor.Ok(struct{}{})
			},
			func() cursor.Outcome[struct{}] {
				o := combinator.Fixed(c, "RECENT", false)
				if !o.IsOk() {
					return cursor.Outcome[struct{}]{Status: o.Status, Err: o.Err}
				}
				v := n.Value
				r.Recent = &v
				return cursor.Ok(struct{}{})
			},
			func() cursor.Outcome[struct{}] {
				o := combinator.Fixed(c, "EXPUNGE", false)
				if !o.IsOk() {
					return cursor.Outcome[struct{}]{Status: o.Status, Err: o.Err}
				}
				v := n.Value
				r.Expunge = &v
				return cursor.Ok(struct{}{})
			},
			func() cursor.Outcome[struct{}] {
				fd := fetchData(c, tr, n.Value)
				if !fd.IsOk() {
					return cursor.Outcome[struct{}]{Status: fd.Status, Err: fd.Err}
				}
				r.Fetch = &fd.Value
				return cursor.Ok(struct{}{})
			},
		)
	})
}

func searchUntagged(c *cursor.ByteCursor, tr *cursor.Tracker, r *Response) cursor.Outcome[struct{}] {
	return combinator.Composite(c, tr, func() cursor.Outcome[struct{}] {
		if o := combinator.Fixed(c, "SEARCH", false); !o.IsOk() {
			return cursor.Outcome[struct{}]{Status: o.Status, Err: o.Err}
		}
		rest := combinator.ZeroOrMore(c, tr, func() cursor.Outcome[uint32] {
			return combinator.Composite(c, tr, func() cursor.Outcome[uint32] {
				if o := combinator.Fixed(c, " ", true); !o.IsOk() {
					return cursor.Outcome[uint32]{Status: o.Status, Err: o.Err}
				}
				return Number(c, tr)
			})
		})
		if rest.IsIncomplete() {
			return cursor.Incomplete[struct{}]()
		}
		if !rest.IsOk() {
			return cursor.Outcome[struct{}]{Status: rest.Status, Err: rest.Err}
		}
		nums := rest.Value
		modseq := combinator.Optional(c, tr, func() cursor.Outcome[uint64] {
			return combinator.Composite(c, tr, func() cursor.Outcome[uint64] {
				if o := combinator.Fixed(c, " (MODSEQ ", false); !o.IsOk() {
					return cursor.Outcome[uint64]{Status: o.Status, Err: o.Err}
				}
				n := Number64(c, tr)
				if !n.IsOk() {
					return cursor.Outcome[uint64]{Status: n.Status, Err: n.Err}
				}
				if o := combinator.Fixed(c, ")", true); !o.IsOk() {
					return cursor.Outcome[uint64]{Status: o.Status, Err: o.Err}
				}
				return n
			})
		})
		if modseq.IsIncomplete() {
			return cursor.Incomplete[struct{}]()
		}
		r.Search = nums
		r.SearchModSeq = modseq.Value
		return cursor.Ok(struct{}{})
	})
}

// vanishedUntagged parses the `"VANISHED" ["(EARLIER)"] SP uid-set`
// QRESYNC notification (RFC 7162 §3.6).
func vanishedUntagged(c *cursor.ByteCursor, tr *cursor.Tracker, r *Response) cursor.Outcome[struct{}] {
	return combinator.Composite(c, tr, func() cursor.Outcome[struct{}] {
		if o := combinator.Fixed(c, "VANISHED ", false); !o.IsOk() {
			return cursor.Outcome[struct{}]{Status: o.Status, Err: o.Err}
		}
		earlier := combinator.Optional(c, tr, func() cursor.Outcome[struct{}] {
			o := combinator.Fixed(c, "(EARLIER) ", false)
			if !o.IsOk() {
				return cursor.Outcome[struct{}]{Status: o.Status, Err: o.Err}
			}
			return cursor.Ok(struct{}{})
		})
		if earlier.IsIncomplete() {
			return cursor.Incomplete[struct{}]()
		}
		uids := UIDSetProd(c, tr)
		if !uids.IsOk() {
			return cursor.Outcome[struct{}]{Status: uids.Status, Err: uids.Err}
		}
		r.Vanished = uids.Value
		return cursor.Ok(struct{}{})
	})
}

func untaggedData(c *cursor.ByteCursor, tr *cursor.Tracker) cursor.Outcome[Response] {
	return combinator.Composite(c, tr, func() cursor.Outcome[Response] {
		r := Response{Tag: "*"}
		o := combinator.OneOf(c, tr,
			func() cursor.Outcome[struct{}] {
				typ := statusKeyword(c, tr)
				if !typ.IsOk() {
					return cursor.Outcome[struct{}]{Status: typ.Status, Err: typ.Err}
				}
				sr := statusResponseBody(c, tr, typ.Value)
				if !sr.IsOk() {
					return cursor.Outcome[struct{}]{Status: sr.Status, Err: sr.Err}
				}
				r.Status = &sr.Value
				return cursor.Ok(struct{}{})
			},
			func() cursor.Outcome[struct{}] { return numberedUntagged(c, tr, &r) },
			func() cursor.Outcome[struct{}] { return searchUntagged(c, tr, &r) },
			func() cursor.Outcome[struct{}] { return vanishedUntagged(c, tr, &r) },
			func() cursor.Outcome[struct{}] {
				return combinator.Composite(c, tr, func() cursor.Outcome[struct{}] {
					if o := combinator.Fixed(c, "CAPABILITY ", false); !o.IsOk() {
						return cursor.Outcome[struct{}]{Status: o.Status, Err: o.Err}
					}
					caps := capList(c, tr)
					if !caps.IsOk() {
						return cursor.Outcome[struct{}]{Status: caps.Status, Err: caps.Err}
					}
					r.Capability = caps.Value
					return cursor.Ok(struct{}{})
				})
			},
			func() cursor.Outcome[struct{}] {
				return combinator.Composite(c, tr, func() cursor.Outcome[struct{}] {
					if o := combinator.Fixed(c, "ENABLED ", false); !o.IsOk() {
						return cursor.Outcome[struct{}]{Status: o.Status, Err: o.Err}
					}
					caps := capList(c, tr)
					if !caps.IsOk() {
						return cursor.Outcome[struct{}]{Status: caps.Status, Err: caps.Err}
					}
					r.Enabled = caps.Value
					return cursor.Ok(struct{}{})
				})
			},
			func() cursor.Outcome[struct{}] {
				return combinator.Composite(c, tr, func() cursor.Outcome[struct{}] {
					if o := combinator.Fixed(c, "FLAGS ", false); !o.IsOk() {
						return cursor.Outcome[struct{}]{Status: o.Status, Err: o.Err}
					}
					fl := FlagList(c, tr)
					if !fl.IsOk() {
						return cursor.Outcome[struct{}]{Status: fl.Status, Err: fl.Err}
					}
					r.Flags = fl.Value
					return cursor.Ok(struct{}{})
				})
			},
			func() cursor.Outcome[struct{}] {
				es := ESearchResponse(c, tr)
				if !es.IsOk() {
					return cursor.Outcome[struct{}]{Status: es.Status, Err: es.Err}
				}
				r.ESearch = &es.Value
				return cursor.Ok(struct{}{})
			},
			func() cursor.Outcome[struct{}] {
				return combinator.Composite(c, tr, func() cursor.Outcome[struct{}] {
					if o := combinator.Fixed(c, "LIST ", false); !o.IsOk() {
						return cursor.Outcome[struct{}]{Status: o.Status, Err: o.Err}
					}
					l := MailboxList(c, tr)
					if !l.IsOk() {
						return cursor.Outcome[struct{}]{Status: l.Status, Err: l.Err}
					}
					r.List = &l.Value
					return cursor.Ok(struct{}{})
				})
			},
			func() cursor.Outcome[struct{}] {
				return combinator.Composite(c, tr, func() cursor.Outcome[struct{}] {
					if o := combinator.Fixed(c, "LSUB ", false); !o.IsOk() {
						return cursor.Outcome[struct{}]{Status: o.Status, Err: o.Err}
					}
					l := MailboxList(c, tr)
					if !l.IsOk() {
						return cursor.Outcome[struct{}]{Status: l.Status, Err: l.Err}
					}
					r.LSub = &l.Value
					return cursor.Ok(struct{}{})
				})
			},
			func() cursor.Outcome[struct{}] {
				st := StatusResponse(c, tr)
				if !st.IsOk() {
					return cursor.Outcome[struct{}]{Status: st.Status, Err: st.Err}
				}
				r.StatusData = &st.Value
				return cursor.Ok(struct{}{})
			},
			func() cursor.Outcome[struct{}] {
				ns := NamespaceResponse(c, tr)
				if !ns.IsOk() {
					return cursor.Outcome[struct{}]{Status: ns.Status, Err: ns.Err}
				}
				r.Namespace = &ns.Value
				return cursor.Ok(struct{}{})
			},
			func() cursor.Outcome[struct{}] {
				md := MetadataResponse(c, tr)
				if !md.IsOk() {
					return cursor.Outcome[struct{}]{Status: md.Status, Err: md.Err}
				}
				r.Metadata = &md.Value
				return cursor.Ok(struct{}{})
			},
			func() cursor.Outcome[struct{}] {
				qr := QuotaRootResponse(c, tr)
				if !qr.IsOk() {
					return cursor.Outcome[struct{}]{Status: qr.Status, Err: qr.Err}
				}
				r.QuotaRoot = &qr.Value
				return cursor.Ok(struct{}{})
			},
			func() cursor.Outcome[struct{}] {
				q := QuotaResponse(c, tr)
				if !q.IsOk() {
					return cursor.Outcome[struct{}]{Status: q.Status, Err: q.Err}
				}
				r.Quota = &q.Value
				return cursor.Ok(struct{}{})
			},
			func() cursor.Outcome[struct{}] {
				id := IDResponse(c, tr)
				if !id.IsOk() {
					return cursor.Outcome[struct{}]{Status: id.Status, Err: id.Err}
				}
				r.ID = id.Value
				return cursor.Ok(struct{}{})
			},
		)
		if !o.IsOk() {
			return cursor.Outcome[Response]{Status: o.Status, Err: o.Err}
		}
		// statusResponseBody has already consumed the CRLF of a status line.
		if r.Status == nil {
			if o := c.ParseNewline(); !o.IsOk() {
				return cursor.Outcome[Response]{Status: o.Status, Err: o.Err}
			}
		}
		return cursor.Ok(r)
	})
}

func continuationRequest(c *cursor.ByteCursor, tr *cursor.Tracker) cursor.Outcome[Response] {
	return combinator.Composite(c, tr, func() cursor.Outcome[Response] {
		if o := combinator.Fixed(c, "+ ", true); !o.IsOk() {
			return cursor.Outcome[Response]{Status: o.Status, Err: o.Err}
		}
		text := Text(c, tr)
		if !text.IsOk() {
			return cursor.Outcome[Response]{Status: text.Status, Err: text.Err}
		}
		if o := c.ParseNewline(); !o.IsOk() {
			return cursor.Outcome[Response]{Status: o.Status, Err: o.Err}
		}
		s := string(text.Value)
		return cursor.Ok(Response{Continuation: &s})
	})
}

func taggedResponse(c *cursor.ByteCursor, tr *cursor.Tracker) cursor.Outcome[Response] {
	return combinator.Composite(c, tr, func() cursor.Outcome[Response] {
		tag := Tag(c, tr)
		if !tag.IsOk() {
			return cursor.Outcome[Response]{Status: tag.Status, Err: tag.Err}
		}
		if o := combinator.Fixed(c, " ", true); !o.IsOk() {
			return cursor.Outcome[Response]{Status: o.Status, Err: o.Err}
		}
		typ := statusKeyword(c, tr)
		if !typ.IsOk() {
			return cursor.Outcome[Response]{Status: typ.Status, Err: typ.Err}
		}
		sr := statusResponseBody(c, tr, typ.Value)
		if !sr.IsOk() {
			return cursor.Outcome[Response]{Status: sr.Status, Err: sr.Err}
		}
		return cursor.Ok(Response{Tag: string(tag.Value), Status: &sr.Value})
	})
}

// TopLevel parses exactly one IMAP response line: a tagged status
// response, an untagged ("*") response of any kind this package knows,
// or a "+" continuation request. It accepts a cursor and tracker and
// returns one grammar value per call; on Incomplete the cursor is left
// unchanged.
func TopLevel(c *cursor.ByteCursor, tr *cursor.Tracker) cursor.Outcome[Response] {
	return combinator.OneOf(c, tr,
		func() cursor.Outcome[Response] { return continuationRequest(c, tr) },
		func() cursor.Outcome[Response] {
			return combinator.Composite(c, tr, func() cursor.Outcome[Response] {
				if o := combinator.Fixed(c, "* ", true); !o.IsOk() {
					return cursor.Outcome[Response]{Status: o.Status, Err: o.Err}
				}
				return untaggedData(c, tr)
			})
		},
		func() cursor.Outcome[Response] { return taggedResponse(c, tr) },
	)
}
