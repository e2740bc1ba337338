package parse

import (
	imap "github.com/meszmate/imap-go"
	"github.com/meszmate/imap-go/combinator"
	"github.com/meszmate/imap-go/cursor"
)

// bodyFldParam parses a body-fld-param: NIL, or a parenthesised list of
// string/string name-value pairs.
func bodyFldParam(c *cursor.ByteCursor, tr *cursor.Tracker) cursor.Outcome[[]imap.BodyFieldParam] {
	return combinator.OneOf(c, tr,
		func() cursor.Outcome[[]imap.BodyFieldParam] {
			o := combinator.Fixed(c, "NIL", false)
			if !o.IsOk() {
				return cursor.Outcome[[]imap.BodyFieldParam]{Status: o.Status, Err: o.Err}
			}
			return cursor.Ok[[]imap.BodyFieldParam](nil)
		},
		func() cursor.Outcome[[]imap.BodyFieldParam] {
			return combinator.Composite(c, tr, func() cursor.Outcome[[]imap.BodyFieldParam] {
				if o := combinator.Fixed(c, "(", true); !o.IsOk() {
					return cursor.Outcome[[]imap.BodyFieldParam]{Status: o.Status, Err: o.Err}
				}
				pair := func() cursor.Outcome[imap.BodyFieldParam] {
					return combinator.Composite(c, tr, func() cursor.Outcome[imap.BodyFieldParam] {
						name := String(c, tr)
						if !name.IsOk() {
							return cursor.Outcome[imap.BodyFieldParam]{Status: name.Status, Err: name.Err}
						}
						if o := combinator.Fixed(c, " ", true); !o.IsOk() {
							return cursor.Outcome[imap.BodyFieldParam]{Status: o.Status, Err: o.Err}
						}
						val := String(c, tr)
						if !val.IsOk() {
							return cursor.Outcome[imap.BodyFieldParam]{Status: val.Status, Err: val.Err}
						}
						return cursor.Ok(imap.BodyFieldParam{Name: string(name.Value.Bytes), Value: string(val.Value.Bytes)})
					})
				}
				first := pair()
				if !first.IsOk() {
					return cursor.Outcome[[]imap.BodyFieldParam]{Status: first.Status, Err: first.Err}
				}
				params := []imap.BodyFieldParam{first.Value}
				rest := combinator.ZeroOrMore(c, tr, func() cursor.Outcome[imap.BodyFieldParam] {
					return combinator.Composite(c, tr, func() cursor.Outcome[imap.BodyFieldParam] {
						if o := combinator.Fixed(c, " ", true); !o.IsOk() {
							return cursor.Outcome[imap.BodyFieldParam]{Status: o.Status, Err: o.Err}
						}
						return pair()
					})
				})
				if rest.IsIncomplete() {
					return cursor.Incomplete[[]imap.BodyFieldParam]()
				}
				if !rest.IsOk() {
					return cursor.Outcome[[]imap.BodyFieldParam]{Status: rest.Status, Err: rest.Err}
				}
				params = append(params, rest.Value...)
				if o := combinator.Fixed(c, ")", true); !o.IsOk() {
					return cursor.Outcome[[]imap.BodyFieldParam]{Status: o.Status, Err: o.Err}
				}
				return cursor.Ok(params)
			})
		},
	)
}

// bodyFldEnc parses a body-fld-enc: one of the fixed Content-Transfer-Encoding
// tokens, or a generic string for anything else.
func bodyFldEnc(c *cursor.ByteCursor, tr *cursor.Tracker) cursor.Outcome[imap.ContentEncoding] {
	fixed := func(s string, kind imap.ContentEncodingKind) func() cursor.Outcome[imap.ContentEncoding] {
		return func() cursor.Outcome[imap.ContentEncoding] {
			return combinator.Composite(c, tr, func() cursor.Outcome[imap.ContentEncoding] {
				if o := combinator.Fixed(c, "\""+s+"\"", false); !o.IsOk() {
					return cursor.Outcome[imap.ContentEncoding]{Status: o.Status, Err: o.Err}
				}
				return cursor.Ok(imap.ContentEncoding{Known: kind})
			})
		}
	}
	return combinator.OneOf(c, tr,
		fixed("7BIT", imap.ContentEncoding7Bit),
		fixed("8BIT", imap.ContentEncoding8Bit),
		fixed("BINARY", imap.ContentEncodingBinary),
		fixed("BASE64", imap.ContentEncodingBase64),
		fixed("QUOTED-PRINTABLE", imap.ContentEncodingQuotedPrintable),
		func() cursor.Outcome[imap.ContentEncoding] {
			o := String(c, tr)
			if !o.IsOk() {
				return cursor.Outcome[imap.ContentEncoding]{Status: o.Status, Err: o.Err}
			}
			return cursor.Ok(imap.ContentEncoding{Known: imap.ContentEncodingOther, Other: string(o.Value.Bytes)})
		},
	)
}

// bodyFields parses the body-fields common prefix shared by every
// single-part alternative: params, id, description, encoding, octets.
func bodyFields(c *cursor.ByteCursor, tr *cursor.Tracker) cursor.Outcome[imap.BodyFields] {
	return combinator.Composite(c, tr, func() cursor.Outcome[imap.BodyFields] {
		var f imap.BodyFields

		params := bodyFldParam(c, tr)
		if !params.IsOk() {
			return cursor.Outcome[imap.BodyFields]{Status: params.Status, Err: params.Err}
		}
		f.Params = params.Value

		if o := combinator.Fixed(c, " ", true); !o.IsOk() {
			return cursor.Outcome[imap.BodyFields]{Status: o.Status, Err: o.Err}
		}
		id := NString(c, tr)
		if !id.IsOk() {
			return cursor.Outcome[imap.BodyFields]{Status: id.Status, Err: id.Err}
		}
		if id.Value != nil {
			s := string(id.Value)
			f.ID = &s
		}

		if o := combinator.Fixed(c, " ", true); !o.IsOk() {
			return cursor.Outcome[imap.BodyFields]{Status: o.Status, Err: o.Err}
		}
		descr := NString(c, tr)
		if !descr.IsOk() {
			return cursor.Outcome[imap.BodyFields]{Status: descr.Status, Err: descr.Err}
		}
		if descr.Value != nil {
			s := string(descr.Value)
			f.Descr = &s
		}

		if o := combinator.Fixed(c, " ", true); !o.IsOk() {
			return cursor.Outcome[imap.BodyFields]{Status: o.Status, Err: o.Err}
		}
		enc := bodyFldEnc(c, tr)
		if !enc.IsOk() {
			return cursor.Outcome[imap.BodyFields]{Status: enc.Status, Err: enc.Err}
		}
		f.Encoding = enc.Value

		if o := combinator.Fixed(c, " ", true); !o.IsOk() {
			return cursor.Outcome[imap.BodyFields]{Status: o.Status, Err: o.Err}
		}
		octets := Number(c, tr)
		if !octets.IsOk() {
			return cursor.Outcome[imap.BodyFields]{Status: octets.Status, Err: octets.Err}
		}
		f.Octets = octets.Value

		return cursor.Ok(f)
	})
}

// bodyExtensionValue parses one element of a body-extension list: a
// number, a string, or a nested parenthesised list of the same,
// recursion-bounded via tr.
func bodyExtensionValue(c *cursor.ByteCursor, tr *cursor.Tracker) cursor.Outcome[imap.BodyExtensionValue] {
	return combinator.OneOf(c, tr,
		func() cursor.Outcome[imap.BodyExtensionValue] {
			n := Number(c, tr)
			if !n.IsOk() {
				return cursor.Outcome[imap.BodyExtensionValue]{Status: n.Status, Err: n.Err}
			}
			v := n.Value
			return cursor.Ok(imap.BodyExtensionValue{Num: &v})
		},
		func() cursor.Outcome[imap.BodyExtensionValue] {
			s := NString(c, tr)
			if !s.IsOk() {
				return cursor.Outcome[imap.BodyExtensionValue]{Status: s.Status, Err: s.Err}
			}
			if s.Value == nil {
				return cursor.Ok(imap.BodyExtensionValue{})
			}
			str := string(s.Value)
			return cursor.Ok(imap.BodyExtensionValue{Str: &str})
		},
		func() cursor.Outcome[imap.BodyExtensionValue] {
			return combinator.Composite(c, tr, func() cursor.Outcome[imap.BodyExtensionValue] {
				if err := tr.Enter(c.Offset()); err != nil {
					return cursor.Fatal[imap.BodyExtensionValue](err)
				}
				defer tr.Leave()
				if o := combinator.Fixed(c, "(", true); !o.IsOk() {
					return cursor.Outcome[imap.BodyExtensionValue]{Status: o.Status, Err: o.Err}
				}
				first := bodyExtensionValue(c, tr)
				if !first.IsOk() {
					return cursor.Outcome[imap.BodyExtensionValue]{Status: first.Status, Err: first.Err}
				}
				vals := []imap.BodyExtensionValue{first.Value}
				rest := combinator.ZeroOrMore(c, tr, func() cursor.Outcome[imap.BodyExtensionValue] {
					return combinator.Composite(c, tr, func() cursor.Outcome[imap.BodyExtensionValue] {
						if o := combinator.Fixed(c, " ", true); !o.IsOk() {
							return cursor.Outcome[imap.BodyExtensionValue]{Status: o.Status, Err: o.Err}
						}
						return bodyExtensionValue(c, tr)
					})
				})
				if rest.IsIncomplete() {
					return cursor.Incomplete[imap.BodyExtensionValue]()
				}
				if !rest.IsOk() {
					return cursor.Outcome[imap.BodyExtensionValue]{Status: rest.Status, Err: rest.Err}
				}
				vals = append(vals, rest.Value...)
				if o := combinator.Fixed(c, ")", true); !o.IsOk() {
					return cursor.Outcome[imap.BodyExtensionValue]{Status: o.Status, Err: o.Err}
				}
				return cursor.Ok(imap.BodyExtensionValue{Nested: vals})
			})
		},
	)
}

// bodyExtensionTail parses the "*(SP body-extension)" trailing sequence
// that may follow any already-parsed extension prefix.
func bodyExtensionTail(c *cursor.ByteCursor, tr *cursor.Tracker) cursor.Outcome[[]imap.BodyExtensionValue] {
	o := combinator.ZeroOrMore(c, tr, func() cursor.Outcome[imap.BodyExtensionValue] {
		return combinator.Composite(c, tr, func() cursor.Outcome[imap.BodyExtensionValue] {
			if o := combinator.Fixed(c, " ", true); !o.IsOk() {
				return cursor.Outcome[imap.BodyExtensionValue]{Status: o.Status, Err: o.Err}
			}
			return bodyExtensionValue(c, tr)
		})
	})
	return o
}

// contentDisposition parses body-fld-dsp: NIL, or "(" string SP
// body-fld-param ")".
func contentDisposition(c *cursor.ByteCursor, tr *cursor.Tracker) cursor.Outcome[*imap.ContentDisposition] {
	return combinator.OneOf(c, tr,
		func() cursor.Outcome[*imap.ContentDisposition] {
			o := combinator.Fixed(c, "NIL", false)
			if !o.IsOk() {
				return cursor.Outcome[*imap.ContentDisposition]{Status: o.Status, Err: o.Err}
			}
			return cursor.Ok[*imap.ContentDisposition](nil)
		},
		func() cursor.Outcome[*imap.ContentDisposition] {
			return combinator.Composite(c, tr, func() cursor.Outcome[*imap.ContentDisposition] {
				if o := combinator.Fixed(c, "(", true); !o.IsOk() {
					return cursor.Outcome[*imap.ContentDisposition]{Status: o.Status, Err: o.Err}
				}
				typ := String(c, tr)
				if !typ.IsOk() {
					return cursor.Outcome[*imap.ContentDisposition]{Status: typ.Status, Err: typ.Err}
				}
				if o := combinator.Fixed(c, " ", true); !o.IsOk() {
					return cursor.Outcome[*imap.ContentDisposition]{Status: o.Status, Err: o.Err}
				}
				params := bodyFldParam(c, tr)
				if !params.IsOk() {
					return cursor.Outcome[*imap.ContentDisposition]{Status: params.Status, Err: params.Err}
				}
				if o := combinator.Fixed(c, ")", true); !o.IsOk() {
					return cursor.Outcome[*imap.ContentDisposition]{Status: o.Status, Err: o.Err}
				}
				return cursor.Ok(&imap.ContentDisposition{Type: string(typ.Value.Bytes), Params: params.Value})
			})
		},
	)
}

// bodyFldLang parses body-fld-lang: NIL, a single string, or a
// parenthesised list of strings.
func bodyFldLang(c *cursor.ByteCursor, tr *cursor.Tracker) cursor.Outcome[[]string] {
	return combinator.OneOf(c, tr,
		func() cursor.Outcome[[]string] {
			o := combinator.Fixed(c, "NIL", false)
			if !o.IsOk() {
				return cursor.Outcome[[]string]{Status: o.Status, Err: o.Err}
			}
			return cursor.Ok[[]string](nil)
		},
		func() cursor.Outcome[[]string] {
			return combinator.Composite(c, tr, func() cursor.Outcome[[]string] {
				if o := combinator.Fixed(c, "(", true); !o.IsOk() {
					return cursor.Outcome[[]string]{Status: o.Status, Err: o.Err}
				}
				first := String(c, tr)
				if !first.IsOk() {
					return cursor.Outcome[[]string]{Status: first.Status, Err: first.Err}
				}
				langs := []string{string(first.Value.Bytes)}
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
					return cursor.Incomplete[[]string]()
				}
				if !rest.IsOk() {
					return cursor.Outcome[[]string]{Status: rest.Status, Err: rest.Err}
				}
				langs = append(langs, rest.Value...)
				if o := combinator.Fixed(c, ")", true); !o.IsOk() {
					return cursor.Outcome[[]string]{Status: o.Status, Err: o.Err}
				}
				return cursor.Ok(langs)
			})
		},
		func() cursor.Outcome[[]string] {
			s := String(c, tr)
			if !s.IsOk() {
				return cursor.Outcome[[]string]{Status: s.Status, Err: s.Err}
			}
			return cursor.Ok([]string{string(s.Value.Bytes)})
		},
	)
}

// bodyExt parses the optional ext-1part/ext-mpart tail shared by both
// single-part and multi-part bodies: MD5, disposition, languages,
// location, and any further unmodelled extension data.
func bodyExt(c *cursor.ByteCursor, tr *cursor.Tracker) cursor.Outcome[*imap.BodyExt] {
	var ext imap.BodyExt

	md5 := combinator.Optional(c, tr, func() cursor.Outcome[[]byte] {
		return combinator.Composite(c, tr, func() cursor.Outcome[[]byte] {
			if o := combinator.Fixed(c, " ", true); !o.IsOk() {
				return cursor.Outcome[[]byte]{Status: o.Status, Err: o.Err}
			}
			return NString(c, tr)
		})
	})
	if md5.IsIncomplete() {
		return cursor.Incomplete[*imap.BodyExt]()
	}
	if md5.Value == nil {
		return cursor.Ok[*imap.BodyExt](nil)
	}
	if *md5.Value != nil {
		s := string(*md5.Value)
		ext.MD5 = &s
	}

	dsp := combinator.Optional(c, tr, func() cursor.Outcome[*imap.ContentDisposition] {
		return combinator.Composite(c, tr, func() cursor.Outcome[*imap.ContentDisposition] {
			if o := combinator.Fixed(c, " ", true); !o.IsOk() {
				return cursor.Outcome[*imap.ContentDisposition]{Status: o.Status, Err: o.Err}
			}
			return contentDisposition(c, tr)
		})
	})
	if dsp.IsIncomplete() {
		return cursor.Incomplete[*imap.BodyExt]()
	}
	if dsp.Value != nil {
		ext.Disposition = *dsp.Value
	} else {
		return cursor.Ok(&ext)
	}

	langs := combinator.Optional(c, tr, func() cursor.Outcome[[]string] {
		return combinator.Composite(c, tr, func() cursor.Outcome[[]string] {
			if o := combinator.Fixed(c, " ", true); !o.IsOk() {
				return cursor.Outcome[[]string]{Status: o.Status, Err: o.Err}
			}
			return bodyFldLang(c, tr)
		})
	})
	if langs.IsIncomplete() {
		return cursor.Incomplete[*imap.BodyExt]()
	}
	if langs.Value != nil {
		ext.Languages = *langs.Value
	} else {
		return cursor.Ok(&ext)
	}

	loc := combinator.Optional(c, tr, func() cursor.Outcome[[]byte] {
		return combinator.Composite(c, tr, func() cursor.Outcome[[]byte] {
			if o := combinator.Fixed(c, " ", true); !o.IsOk() {
				return cursor.Outcome[[]byte]{Status: o.Status, Err: o.Err}
			}
			return NString(c, tr)
		})
	})
	if loc.IsIncomplete() {
		return cursor.Incomplete[*imap.BodyExt]()
	}
	if loc.Value == nil {
		return cursor.Ok(&ext)
	}
	if *loc.Value != nil {
		s := string(*loc.Value)
		ext.Location = &s
	}

	tail := bodyExtensionTail(c, tr)
	if tail.IsIncomplete() {
		return cursor.Incomplete[*imap.BodyExt]()
	}
	if !tail.IsOk() {
		return cursor.Outcome[*imap.BodyExt]{Status: tail.Status, Err: tail.Err}
	}
	ext.Extensions = tail.Value

	return cursor.Ok(&ext)
}

// singlePartMessage parses body-type-msg: "message" SP "rfc822" SP
// body-fields SP envelope SP body SP body-fld-lines, recursing into the
// embedded body under the shared Tracker.
func singlePartMessage(c *cursor.ByteCursor, tr *cursor.Tracker) cursor.Outcome[imap.SinglePartBody] {
	return combinator.Composite(c, tr, func() cursor.Outcome[imap.SinglePartBody] {
		if o := combinator.Fixed(c, "\"MESSAGE\"", false); !o.IsOk() {
			return cursor.Outcome[imap.SinglePartBody]{Status: o.Status, Err: o.Err}
		}
		if o := combinator.Fixed(c, " ", true); !o.IsOk() {
			return cursor.Outcome[imap.SinglePartBody]{Status: o.Status, Err: o.Err}
		}
		if o := combinator.Fixed(c, "\"RFC822\"", false); !o.IsOk() {
			return cursor.Outcome[imap.SinglePartBody]{Status: o.Status, Err: o.Err}
		}
		if o := combinator.Fixed(c, " ", true); !o.IsOk() {
			return cursor.Outcome[imap.SinglePartBody]{Status: o.Status, Err: o.Err}
		}
		fields := bodyFields(c, tr)
		if !fields.IsOk() {
			return cursor.Outcome[imap.SinglePartBody]{Status: fields.Status, Err: fields.Err}
		}
		if o := combinator.Fixed(c, " ", true); !o.IsOk() {
			return cursor.Outcome[imap.SinglePartBody]{Status: o.Status, Err: o.Err}
		}
		env := Envelope(c, tr)
		if !env.IsOk() {
			return cursor.Outcome[imap.SinglePartBody]{Status: env.Status, Err: env.Err}
		}
		if o := combinator.Fixed(c, " ", true); !o.IsOk() {
			return cursor.Outcome[imap.SinglePartBody]{Status: o.Status, Err: o.Err}
		}
		inner := Body(c, tr)
		if !inner.IsOk() {
			return cursor.Outcome[imap.SinglePartBody]{Status: inner.Status, Err: inner.Err}
		}
		if o := combinator.Fixed(c, " ", true); !o.IsOk() {
			return cursor.Outcome[imap.SinglePartBody]{Status: o.Status, Err: o.Err}
		}
		lines := Number(c, tr)
		if !lines.IsOk() {
			return cursor.Outcome[imap.SinglePartBody]{Status: lines.Status, Err: lines.Err}
		}
		innerBody := inner.Value
		return cursor.Ok(imap.SinglePartBody{
			Kind:         imap.SinglePartMessage,
			MediaType:    "message",
			MediaSubtype: "rfc822",
			Fields:       fields.Value,
			Envelope:     &env.Value,
			Body:         &innerBody,
			LineCount:    lines.Value,
		})
	})
}

// singlePartText parses body-type-text: media-text SP body-fields SP
// body-fld-lines.
func singlePartText(c *cursor.ByteCursor, tr *cursor.Tracker) cursor.Outcome[imap.SinglePartBody] {
	return combinator.Composite(c, tr, func() cursor.Outcome[imap.SinglePartBody] {
		if o := combinator.Fixed(c, "\"TEXT\"", false); !o.IsOk() {
			return cursor.Outcome[imap.SinglePartBody]{Status: o.Status, Err: o.Err}
		}
		if o := combinator.Fixed(c, " ", true); !o.IsOk() {
			return cursor.Outcome[imap.SinglePartBody]{Status: o.Status, Err: o.Err}
		}
		subtype := String(c, tr)
		if !subtype.IsOk() {
			return cursor.Outcome[imap.SinglePartBody]{Status: subtype.Status, Err: subtype.Err}
		}
		if o := combinator.Fixed(c, " ", true); !o.IsOk() {
			return cursor.Outcome[imap.SinglePartBody]{Status: o.Status, Err: o.Err}
		}
		fields := bodyFields(c, tr)
		if !fields.IsOk() {
			return cursor.Outcome[imap.SinglePartBody]{Status: fields.Status, Err: fields.Err}
		}
		if o := combinator.Fixed(c, " ", true); !o.IsOk() {
			return cursor.Outcome[imap.SinglePartBody]{Status: o.Status, Err: o.Err}
		}
		lines := Number(c, tr)
		if !lines.IsOk() {
			return cursor.Outcome[imap.SinglePartBody]{Status: lines.Status, Err: lines.Err}
		}
		return cursor.Ok(imap.SinglePartBody{
			Kind:          imap.SinglePartText,
			MediaType:     "text",
			MediaSubtype:  string(subtype.Value.Bytes),
			Fields:        fields.Value,
			TextLineCount: lines.Value,
		})
	})
}

// singlePartBasic parses body-type-basic: media-basic SP body-fields,
// the fallback alternative for any media type that isn't message/rfc822
// or text/*.
func singlePartBasic(c *cursor.ByteCursor, tr *cursor.Tracker) cursor.Outcome[imap.SinglePartBody] {
	return combinator.Composite(c, tr, func() cursor.Outcome[imap.SinglePartBody] {
		typ := String(c, tr)
		if !typ.IsOk() {
			return cursor.Outcome[imap.SinglePartBody]{Status: typ.Status, Err: typ.Err}
		}
		if o := combinator.Fixed(c, " ", true); !o.IsOk() {
			return cursor.Outcome[imap.SinglePartBody]{Status: o.Status, Err: o.Err}
		}
		subtype := String(c, tr)
		if !subtype.IsOk() {
			return cursor.Outcome[imap.SinglePartBody]{Status: subtype.Status, Err: subtype.Err}
		}
		if o := combinator.Fixed(c, " ", true); !o.IsOk() {
			return cursor.Outcome[imap.SinglePartBody]{Status: o.Status, Err: o.Err}
		}
		fields := bodyFields(c, tr)
		if !fields.IsOk() {
			return cursor.Outcome[imap.SinglePartBody]{Status: fields.Status, Err: fields.Err}
		}
		return cursor.Ok(imap.SinglePartBody{
			Kind:         imap.SinglePartBasic,
			MediaType:    string(typ.Value.Bytes),
			MediaSubtype: string(subtype.Value.Bytes),
			Fields:       fields.Value,
		})
	})
}

// singlePart parses body-type-1part, trying message before text before
// basic since a bare media-type/subtype string pair always matches the
// basic shape too; ordering the discriminated cases first keeps the
// message/rfc822 and text/* alternatives from being swallowed by it.
func singlePart(c *cursor.ByteCursor, tr *cursor.Tracker) cursor.Outcome[imap.SinglePartBody] {
	core := combinator.OneOf(c, tr,
		func() cursor.Outcome[imap.SinglePartBody] { return singlePartMessage(c, tr) },
		func() cursor.Outcome[imap.SinglePartBody] { return singlePartText(c, tr) },
		func() cursor.Outcome[imap.SinglePartBody] { return singlePartBasic(c, tr) },
	)
	if !core.IsOk() {
		return core
	}
	part := core.Value
	ext := bodyExt(c, tr)
	if ext.IsIncomplete() {
		return cursor.Incomplete[imap.SinglePartBody]()
	}
	if !ext.IsOk() {
		return cursor.Outcome[imap.SinglePartBody]{Status: ext.Status, Err: ext.Err}
	}
	part.Ext = ext.Value
	return cursor.Ok(part)
}

// multiPart parses body-type-mpart: 2*body SP media-subtype, followed by
// an optional ext-mpart tail.
func multiPart(c *cursor.ByteCursor, tr *cursor.Tracker) cursor.Outcome[imap.MultiPartBody] {
	return combinator.Composite(c, tr, func() cursor.Outcome[imap.MultiPartBody] {
		first := Body(c, tr)
		if !first.IsOk() {
			return cursor.Outcome[imap.MultiPartBody]{Status: first.Status, Err: first.Err}
		}
		parts := []imap.BodyStructure{first.Value}
		rest := combinator.ZeroOrMore(c, tr, func() cursor.Outcome[imap.BodyStructure] { return Body(c, tr) })
		if rest.IsIncomplete() {
			return cursor.Incomplete[imap.MultiPartBody]()
		}
		if !rest.IsOk() {
			return cursor.Outcome[imap.MultiPartBody]{Status: rest.Status, Err: rest.Err}
		}
		parts = append(parts, rest.Value...)

		if o := combinator.Fixed(c, " ", true); !o.IsOk() {
			return cursor.Outcome[imap.MultiPartBody]{Status: o.Status, Err: o.Err}
		}
		subtype := String(c, tr)
		if !subtype.IsOk() {
			return cursor.Outcome[imap.MultiPartBody]{Status: subtype.Status, Err: subtype.Err}
		}

		ext := bodyExt(c, tr)
		if ext.IsIncomplete() {
			return cursor.Incomplete[imap.MultiPartBody]()
		}
		if !ext.IsOk() {
			return cursor.Outcome[imap.MultiPartBody]{Status: ext.Status, Err: ext.Err}
		}

		return cursor.Ok(imap.MultiPartBody{
			Parts:   parts,
			Subtype: string(subtype.Value.Bytes),
			Ext:     ext.Value,
		})
	})
}

// Body parses the full "(" body-type-1part / body-type-mpart ")"
// production, bounding recursion depth via tr so a pathological chain of
// nested multiparts cannot exhaust the stack (spec's RecursionExceeded
// invariant).
func Body(c *cursor.ByteCursor, tr *cursor.Tracker) cursor.Outcome[imap.BodyStructure] {
	return combinator.Composite(c, tr, func() cursor.Outcome[imap.BodyStructure] {
		if err := tr.Enter(c.Offset()); err != nil {
			return cursor.Fatal[imap.BodyStructure](err)
		}
		defer tr.Leave()

		if o := combinator.Fixed(c, "(", true); !o.IsOk() {
			return cursor.Outcome[imap.BodyStructure]{Status: o.Status, Err: o.Err}
		}

		result := combinator.OneOf(c, tr,
			func() cursor.Outcome[imap.BodyStructure] {
				mp := multiPart(c, tr)
				if !mp.IsOk() {
					return cursor.Outcome[imap.BodyStructure]{Status: mp.Status, Err: mp.Err}
				}
				v := mp.Value
				return cursor.Ok(imap.BodyStructure{Multi: &v})
			},
			func() cursor.Outcome[imap.BodyStructure] {
				sp := singlePart(c, tr)
				if !sp.IsOk() {
					return cursor.Outcome[imap.BodyStructure]{Status: sp.Status, Err: sp.Err}
				}
				v := sp.Value
				return cursor.Ok(imap.BodyStructure{Single: &v})
			},
		)
		if !result.IsOk() {
			return result
		}

		if o := combinator.Fixed(c, ")", true); !o.IsOk() {
			return cursor.Outcome[imap.BodyStructure]{Status: o.Status, Err: o.Err}
		}
		return result
	})
}
