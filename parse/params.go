package parse

import (
	imap "github.com/meszmate/imap-go"
	"github.com/meszmate/imap-go/combinator"
	"github.com/meszmate/imap-go/cursor"
)

// taggedExtVal parses a tagged-ext-val: a sequence-set form, or a
// parenthesised tagged-ext-comp list (which CATENATE's label aborts out
// of early, per the caller's discretion — see CatenateAware below).
func taggedExtVal(c *cursor.ByteCursor, tr *cursor.Tracker) cursor.Outcome[imap.TaggedExtValue] {
	return combinator.OneOf(c, tr,
		func() cursor.Outcome[imap.TaggedExtValue] {
			set := SequenceSet(c, tr)
			if !set.IsOk() {
				return cursor.Outcome[imap.TaggedExtValue]{Status: set.Status, Err: set.Err}
			}
			return cursor.Ok(imap.TaggedExtValue{SeqSet: set.Value})
		},
		func() cursor.Outcome[imap.TaggedExtValue] {
			return combinator.Composite(c, tr, func() cursor.Outcome[imap.TaggedExtValue] {
				if err := tr.Enter(c.Offset()); err != nil {
					return cursor.Fatal[imap.TaggedExtValue](err)
				}
				defer tr.Leave()
				if o := combinator.Fixed(c, "(", true); !o.IsOk() {
					return cursor.Outcome[imap.TaggedExtValue]{Status: o.Status, Err: o.Err}
				}
				var comp []imap.BodyExtensionValue
				first := combinator.Optional(c, tr, func() cursor.Outcome[imap.BodyExtensionValue] {
					return bodyExtensionValue(c, tr)
				})
				if first.IsIncomplete() {
					return cursor.Incomplete[imap.TaggedExtValue]()
				}
				if first.Value != nil {
					comp = append(comp, *first.Value)
					rest := bodyExtensionTail(c, tr)
					if rest.IsIncomplete() {
						return cursor.Incomplete[imap.TaggedExtValue]()
					}
					if !rest.IsOk() {
						return cursor.Outcome[imap.TaggedExtValue]{Status: rest.Status, Err: rest.Err}
					}
					comp = append(comp, rest.Value...)
				}
				if o := combinator.Fixed(c, ")", true); !o.IsOk() {
					return cursor.Outcome[imap.TaggedExtValue]{Status: o.Status, Err: o.Err}
				}
				return cursor.Ok(imap.TaggedExtValue{Comp: comp})
			})
		},
	)
}

// ExtendedItem parses one `tagged-ext-label SP tagged-ext-val` pair,
// the generic shape used by LIST-EXTENDED return-options, NAMESPACE
// extensions, and search return options this parser doesn't model by
// name.
func extendedItem(c *cursor.ByteCursor, tr *cursor.Tracker) cursor.Outcome[imap.ExtendedItem] {
	return combinator.Composite(c, tr, func() cursor.Outcome[imap.ExtendedItem] {
		label := TaggedExtLabel(c, tr)
		if !label.IsOk() {
			return cursor.Outcome[imap.ExtendedItem]{Status: label.Status, Err: label.Err}
		}
		if o := combinator.Fixed(c, " ", true); !o.IsOk() {
			return cursor.Outcome[imap.ExtendedItem]{Status: o.Status, Err: o.Err}
		}
		val := taggedExtVal(c, tr)
		if !val.IsOk() {
			return cursor.Outcome[imap.ExtendedItem]{Status: val.Status, Err: val.Err}
		}
		return cursor.Ok(imap.ExtendedItem{Tag: string(label.Value), Value: val.Value})
	})
}

// CondStoreModSeq parses the CONDSTORE "UNCHANGEDSINCE" or
// "MODIFIED <n>" numeric modifier value.
func CondStoreModSeq(c *cursor.ByteCursor, tr *cursor.Tracker) cursor.Outcome[uint64] {
	return Number64(c, tr)
}

// QResyncParams parses the QRESYNC select-param payload:
// "(" uid-validity SP mod-sequence-value [SP known-uids [SP seq-match-data]] ")".
func QResyncParams(c *cursor.ByteCursor, tr *cursor.Tracker) cursor.Outcome[imap.SelectQResync] {
	return combinator.Composite(c, tr, func() cursor.Outcome[imap.SelectQResync] {
		if o := combinator.Fixed(c, "(", true); !o.IsOk() {
			return cursor.Outcome[imap.SelectQResync]{Status: o.Status, Err: o.Err}
		}
		var q imap.SelectQResync

		uv := NZNumber(c, tr)
		if !uv.IsOk() {
			return cursor.Outcome[imap.SelectQResync]{Status: uv.Status, Err: uv.Err}
		}
		q.UIDValidity = uv.Value

		if o := combinator.Fixed(c, " ", true); !o.IsOk() {
			return cursor.Outcome[imap.SelectQResync]{Status: o.Status, Err: o.Err}
		}
		ms := Number64(c, tr)
		if !ms.IsOk() {
			return cursor.Outcome[imap.SelectQResync]{Status: ms.Status, Err: ms.Err}
		}
		q.ModSeq = ms.Value

		known := combinator.Optional(c, tr, func() cursor.Outcome[*imap.UIDSet] {
			return combinator.Composite(c, tr, func() cursor.Outcome[*imap.UIDSet] {
				if o := combinator.Fixed(c, " ", true); !o.IsOk() {
					return cursor.Outcome[*imap.UIDSet]{Status: o.Status, Err: o.Err}
				}
				return UIDSetProd(c, tr)
			})
		})
		if known.IsIncomplete() {
			return cursor.Incomplete[imap.SelectQResync]()
		}
		if known.Value != nil {
			q.KnownUIDs = *known.Value

			match := combinator.Optional(c, tr, func() cursor.Outcome[imap.QResyncSeqMatch] {
				return combinator.Composite(c, tr, func() cursor.Outcome[imap.QResyncSeqMatch] {
					if o := combinator.Fixed(c, " (", true); !o.IsOk() {
						return cursor.Outcome[imap.QResyncSeqMatch]{Status: o.Status, Err: o.Err}
					}
					seqs := SequenceSet(c, tr)
					if !seqs.IsOk() {
						return cursor.Outcome[imap.QResyncSeqMatch]{Status: seqs.Status, Err: seqs.Err}
					}
					if o := combinator.Fixed(c, " ", true); !o.IsOk() {
						return cursor.Outcome[imap.QResyncSeqMatch]{Status: o.Status, Err: o.Err}
					}
					uids := UIDSetProd(c, tr)
					if !uids.IsOk() {
						return cursor.Outcome[imap.QResyncSeqMatch]{Status: uids.Status, Err: uids.Err}
					}
					if o := combinator.Fixed(c, ")", true); !o.IsOk() {
						return cursor.Outcome[imap.QResyncSeqMatch]{Status: o.Status, Err: o.Err}
					}
					return cursor.Ok(imap.QResyncSeqMatch{SeqNums: seqs.Value, UIDs: uids.Value})
				})
			})
			if match.IsIncomplete() {
				return cursor.Incomplete[imap.SelectQResync]()
			}
			if match.Value != nil {
				q.SeqMatch = match.Value
			}
		}

		if o := combinator.Fixed(c, ")", true); !o.IsOk() {
			return cursor.Outcome[imap.SelectQResync]{Status: o.Status, Err: o.Err}
		}
		return cursor.Ok(q)
	})
}

// StorePrefix discriminates the +/-/absent prefix shared by STORE's
// FLAGS and X-GM-LABELS payload forms.
func StorePrefix(c *cursor.ByteCursor, tr *cursor.Tracker) cursor.Outcome[imap.StoreAction] {
	return combinator.OneOf(c, tr,
		func() cursor.Outcome[imap.StoreAction] {
			o := combinator.Fixed(c, "+", true)
			if !o.IsOk() {
				return cursor.Outcome[imap.StoreAction]{Status: o.Status, Err: o.Err}
			}
			return cursor.Ok(imap.StoreFlagsAdd)
		},
		func() cursor.Outcome[imap.StoreAction] {
			o := combinator.Fixed(c, "-", true)
			if !o.IsOk() {
				return cursor.Outcome[imap.StoreAction]{Status: o.Status, Err: o.Err}
			}
			return cursor.Ok(imap.StoreFlagsDel)
		},
		func() cursor.Outcome[imap.StoreAction] {
			return cursor.Ok(imap.StoreFlagsSet)
		},
	)
}

// StoreSilent parses the optional ".SILENT" suffix following "FLAGS" in
// a STORE command/item name.
func StoreSilent(c *cursor.ByteCursor, tr *cursor.Tracker) cursor.Outcome[bool] {
	o := combinator.Optional(c, tr, func() cursor.Outcome[[]byte] {
		return combinator.Fixed(c, ".SILENT", false)
	})
	if o.IsIncomplete() {
		return cursor.Incomplete[bool]()
	}
	return cursor.Ok(o.Value != nil)
}

// StoreFlagsItem parses a full STORE FLAGS item name and payload:
// [+/-]FLAGS[.SILENT] SP flag-list.
func StoreFlagsItem(c *cursor.ByteCursor, tr *cursor.Tracker) cursor.Outcome[imap.StoreFlags] {
	return combinator.Composite(c, tr, func() cursor.Outcome[imap.StoreFlags] {
		action := StorePrefix(c, tr)
		if !action.IsOk() {
			return cursor.Outcome[imap.StoreFlags]{Status: action.Status, Err: action.Err}
		}
		if o := combinator.Fixed(c, "FLAGS", false); !o.IsOk() {
			return cursor.Outcome[imap.StoreFlags]{Status: o.Status, Err: o.Err}
		}
		silent := StoreSilent(c, tr)
		if silent.IsIncomplete() {
			return cursor.Incomplete[imap.StoreFlags]()
		}
		if o := combinator.Fixed(c, " ", true); !o.IsOk() {
			return cursor.Outcome[imap.StoreFlags]{Status: o.Status, Err: o.Err}
		}
		flags := FlagList(c, tr)
		if !flags.IsOk() {
			return cursor.Outcome[imap.StoreFlags]{Status: flags.Status, Err: flags.Err}
		}
		return cursor.Ok(imap.StoreFlags{Action: action.Value, Silent: silent.Value, Flags: flags.Value})
	})
}

// StoreGmailLabelsItem parses Gmail's non-standard X-GM-LABELS STORE
// payload: [+/-]X-GM-LABELS[.SILENT] SP "(" [astring *(SP astring)] ")".
func StoreGmailLabelsItem(c *cursor.ByteCursor, tr *cursor.Tracker) cursor.Outcome[imap.StoreGmailLabels] {
	return combinator.Composite(c, tr, func() cursor.Outcome[imap.StoreGmailLabels] {
		action := StorePrefix(c, tr)
		if !action.IsOk() {
			return cursor.Outcome[imap.StoreGmailLabels]{Status: action.Status, Err: action.Err}
		}
		if o := combinator.Fixed(c, "X-GM-LABELS", false); !o.IsOk() {
			return cursor.Outcome[imap.StoreGmailLabels]{Status: o.Status, Err: o.Err}
		}
		silent := StoreSilent(c, tr)
		if silent.IsIncomplete() {
			return cursor.Incomplete[imap.StoreGmailLabels]()
		}
		if o := combinator.Fixed(c, " (", true); !o.IsOk() {
			return cursor.Outcome[imap.StoreGmailLabels]{Status: o.Status, Err: o.Err}
		}
		var labels []string
		first := combinator.Optional(c, tr, func() cursor.Outcome[[]byte] { return Astring(c, tr) })
		if first.IsIncomplete() {
			return cursor.Incomplete[imap.StoreGmailLabels]()
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
				return cursor.Incomplete[imap.StoreGmailLabels]()
			}
			if !rest.IsOk() {
				return cursor.Outcome[imap.StoreGmailLabels]{Status: rest.Status, Err: rest.Err}
			}
			labels = append(labels, rest.Value...)
		}
		if o := combinator.Fixed(c, ")", true); !o.IsOk() {
			return cursor.Outcome[imap.StoreGmailLabels]{Status: o.Status, Err: o.Err}
		}
		return cursor.Ok(imap.StoreGmailLabels{Action: action.Value, Silent: silent.Value, Labels: labels})
	})
}

// ReturnOption parses one LIST/SEARCH-style return-option: one of the
// fixed keywords this parser recognises by name, or a generic
// option-extension tagged-ext pair.
func ReturnOption(c *cursor.ByteCursor, tr *cursor.Tracker) cursor.Outcome[imap.ExtendedItem] {
	fixed := func(name string) func() cursor.Outcome[imap.ExtendedItem] {
		return func() cursor.Outcome[imap.ExtendedItem] {
			o := combinator.Fixed(c, name, false)
			if !o.IsOk() {
				return cursor.Outcome[imap.ExtendedItem]{Status: o.Status, Err: o.Err}
			}
			return cursor.Ok(imap.ExtendedItem{Tag: name})
		}
	}
	return combinator.OneOf(c, tr,
		fixed("SUBSCRIBED"),
		fixed("CHILDREN"),
		fixed("SPECIAL-USE"),
		func() cursor.Outcome[imap.ExtendedItem] { return extendedItem(c, tr) },
	)
}
