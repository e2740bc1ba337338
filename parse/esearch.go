package parse

import (
	imap "github.com/meszmate/imap-go"
	"github.com/meszmate/imap-go/combinator"
	"github.com/meszmate/imap-go/cursor"
	"github.com/meszmate/imap-go/perr"
)

// maxPartialUIDs bounds how many individual UIDs searchPartial will
// expand a returned UID-set range into, so a pathological "1:4000000000"
// range can't exhaust memory.
const maxPartialUIDs = 1 << 20

// searchCorrelator parses the optional `(TAG tag-string)` correlator
// that lets a client match an ESEARCH response back to its SEARCH.
func searchCorrelator(c *cursor.ByteCursor, tr *cursor.Tracker) cursor.Outcome[string] {
	return combinator.Composite(c, tr, func() cursor.Outcome[string] {
		if o := combinator.Fixed(c, "(TAG ", false); !o.IsOk() {
			return cursor.Outcome[string]{Status: o.Status, Err: o.Err}
		}
		tag := String(c, tr)
		if !tag.IsOk() {
			return cursor.Outcome[string]{Status: tag.Status, Err: tag.Err}
		}
		if o := combinator.Fixed(c, ")", true); !o.IsOk() {
			return cursor.Outcome[string]{Status: o.Status, Err: o.Err}
		}
		return cursor.Ok(string(tag.Value.Bytes))
	})
}

func searchPartial(c *cursor.ByteCursor, tr *cursor.Tracker) cursor.Outcome[imap.SearchPartialData] {
	return combinator.Composite(c, tr, func() cursor.Outcome[imap.SearchPartialData] {
		if o := combinator.Fixed(c, "(", true); !o.IsOk() {
			return cursor.Outcome[imap.SearchPartialData]{Status: o.Status, Err: o.Err}
		}
		neg := false
		if o := combinator.Fixed(c, "-", true); o.IsOk() {
			neg = true
		} else if o.IsIncomplete() {
			return cursor.Incomplete[imap.SearchPartialData]()
		}
		offset := Number(c, tr)
		if !offset.IsOk() {
			return cursor.Outcome[imap.SearchPartialData]{Status: offset.Status, Err: offset.Err}
		}
		if o := combinator.Fixed(c, ":", true); !o.IsOk() {
			return cursor.Outcome[imap.SearchPartialData]{Status: o.Status, Err: o.Err}
		}
		// upper bound of the requested range (negative in the end-relative
		// form), not separately retained — the server's returned UID list
		// carries the actual matches.
		if o := combinator.Fixed(c, "-", true); o.IsIncomplete() {
			return cursor.Incomplete[imap.SearchPartialData]()
		}
		if o := Number(c, tr); !o.IsOk() {
			return cursor.Outcome[imap.SearchPartialData]{Status: o.Status, Err: o.Err}
		}
		if o := combinator.Fixed(c, " (", true); !o.IsOk() {
			return cursor.Outcome[imap.SearchPartialData]{Status: o.Status, Err: o.Err}
		}
		var uids []imap.UID
		first := combinator.Optional(c, tr, func() cursor.Outcome[*imap.UIDSet] { return UIDSetProd(c, tr) })
		if first.IsIncomplete() {
			return cursor.Incomplete[imap.SearchPartialData]()
		}
		if first.Value != nil && *first.Value != nil {
			for _, r := range (*first.Value).Set {
				lo, hi := r.Start, r.Stop
				if lo > hi {
					lo, hi = hi, lo
				}
				if uint64(len(uids))+uint64(hi-lo)+1 > maxPartialUIDs {
					return cursor.Fatal[imap.SearchPartialData](perr.ResourceExceeded(
						c.Offset(), "PARTIAL UID range too large to expand", maxPartialUIDs, int64(hi-lo)+1))
				}
				for n := lo; n <= hi; n++ {
					uids = append(uids, imap.UID(n))
				}
			}
		}
		if o := combinator.Fixed(c, "))", true); !o.IsOk() {
			return cursor.Outcome[imap.SearchPartialData]{Status: o.Status, Err: o.Err}
		}
		off := int32(offset.Value)
		if neg {
			off = -off
		}
		return cursor.Ok(imap.SearchPartialData{Offset: off, UIDs: uids})
	})
}

// searchReturnDatum parses one `SP search-modifier-name SP value` pair
// and applies it onto data.
func searchReturnDatum(c *cursor.ByteCursor, tr *cursor.Tracker, data *imap.SearchData) cursor.Outcome[struct{}] {
	return combinator.Composite(c, tr, func() cursor.Outcome[struct{}] {
		if o := combinator.Fixed(c, " ", true); !o.IsOk() {
			return cursor.Outcome[struct{}]{Status: o.Status, Err: o.Err}
		}
		return combinator.OneOf(c, tr,
			func() cursor.Outcome[struct{}] {
				return combinator.Composite(c, tr, func() cursor.Outcome[struct{}] {
					if o := combinator.Fixed(c, "MIN ", false); !o.IsOk() {
						return cursor.Outcome[struct{}]{Status: o.Status, Err: o.Err}
					}
					n := Number(c, tr)
					if !n.IsOk() {
						return cursor.Outcome[struct{}]{Status: n.Status, Err: n.Err}
					}
					data.Min = n.Value
					return cursor.Ok(struct{}{})
				})
			},
			func() cursor.Outcome[struct{}] {
				return combinator.Composite(c, tr, func() cursor.Outcome[struct{}] {
					if o := combinator.Fixed(c, "MAX ", false); !o.IsOk() {
						return cursor.Outcome[struct{}]{Status: o.Status, Err: o.Err}
					}
					n := Number(c, tr)
					if !n.IsOk() {
						return cursor.Outcome[struct{}]{Status: n.Status, Err: n.Err}
					}
					data.Max = n.Value
					return cursor.Ok(struct{}{})
				})
			},
			func() cursor.Outcome[struct{}] {
				return combinator.Composite(c, tr, func() cursor.Outcome[struct{}] {
					if o := combinator.Fixed(c, "ALL ", false); !o.IsOk() {
						return cursor.Outcome[struct{}]{Status: o.Status, Err: o.Err}
					}
					set := SequenceSet(c, tr)
					if !set.IsOk() {
						return cursor.Outcome[struct{}]{Status: set.Status, Err: set.Err}
					}
					data.All = set.Value
					return cursor.Ok(struct{}{})
				})
			},
			func() cursor.Outcome[struct{}] {
				return combinator.Composite(c, tr, func() cursor.Outcome[struct{}] {
					if o := combinator.Fixed(c, "COUNT ", false); !o.IsOk() {
						return cursor.Outcome[struct{}]{Status: o.Status, Err: o.Err}
					}
					n := Number(c, tr)
					if !n.IsOk() {
						return cursor.Outcome[struct{}]{Status: n.Status, Err: n.Err}
					}
					data.Count = n.Value
					return cursor.Ok(struct{}{})
				})
			},
			func() cursor.Outcome[struct{}] {
				return combinator.Composite(c, tr, func() cursor.Outcome[struct{}] {
					if o := combinator.Fixed(c, "MODSEQ ", false); !o.IsOk() {
						return cursor.Outcome[struct{}]{Status: o.Status, Err: o.Err}
					}
					n := Number64(c, tr)
					if !n.IsOk() {
						return cursor.Outcome[struct{}]{Status: n.Status, Err: n.Err}
					}
					data.ModSeq = n.Value
					return cursor.Ok(struct{}{})
				})
			},
			func() cursor.Outcome[struct{}] {
				return combinator.Composite(c, tr, func() cursor.Outcome[struct{}] {
					if o := combinator.Fixed(c, "PARTIAL ", false); !o.IsOk() {
						return cursor.Outcome[struct{}]{Status: o.Status, Err: o.Err}
					}
					p := searchPartial(c, tr)
					if !p.IsOk() {
						return cursor.Outcome[struct{}]{Status: p.Status, Err: p.Err}
					}
					v := p.Value
					data.Partial = &v
					return cursor.Ok(struct{}{})
				})
			},
		)
	})
}

// ESearchResponse parses the full `"ESEARCH" [search-correlator] [SP
// "UID"] *(SP search-return-data)` response.
func ESearchResponse(c *cursor.ByteCursor, tr *cursor.Tracker) cursor.Outcome[imap.SearchData] {
	return combinator.Composite(c, tr, func() cursor.Outcome[imap.SearchData] {
		if o := combinator.Fixed(c, "ESEARCH", false); !o.IsOk() {
			return cursor.Outcome[imap.SearchData]{Status: o.Status, Err: o.Err}
		}
		var data imap.SearchData

		corr := combinator.Optional(c, tr, func() cursor.Outcome[string] {
			return combinator.Composite(c, tr, func() cursor.Outcome[string] {
				if o := combinator.Fixed(c, " ", true); !o.IsOk() {
					return cursor.Outcome[string]{Status: o.Status, Err: o.Err}
				}
				return searchCorrelator(c, tr)
			})
		})
		if corr.IsIncomplete() {
			return cursor.Incomplete[imap.SearchData]()
		}
		if corr.Value != nil {
			data.Correlator = *corr.Value
		}

		uidFlag := combinator.Optional(c, tr, func() cursor.Outcome[struct{}] {
			return combinator.Composite(c, tr, func() cursor.Outcome[struct{}] {
				if o := combinator.Fixed(c, " UID", false); !o.IsOk() {
					return cursor.Outcome[struct{}]{Status: o.Status, Err: o.Err}
				}
				return cursor.Ok(struct{}{})
			})
		})
		if uidFlag.IsIncomplete() {
			return cursor.Incomplete[imap.SearchData]()
		}
		data.UID = uidFlag.Value != nil

		for {
			o := searchReturnDatum(c, tr, &data)
			if o.IsIncomplete() {
				return cursor.Incomplete[imap.SearchData]()
			}
			if o.IsRecoverable() {
				break
			}
			if !o.IsOk() {
				return cursor.Outcome[imap.SearchData]{Status: o.Status, Err: o.Err}
			}
		}

		return cursor.Ok(data)
	})
}
