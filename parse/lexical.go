// Package parse implements the IMAP4rev1 grammar productions: lexical
// tokens, structural productions, the recursive BODY structure, and the
// top-level responses and URL grammar. Every
// production here is a function of (*cursor.ByteCursor, *cursor.Tracker)
// to a cursor.Outcome[T], built from the combinator package rather than
// hand-rolled backtracking, so that Incomplete/Recoverable/Fatal stay
// distinct all the way up the call stack.
//
// A ByteCursor is owned by exactly one in-flight parse call; nothing in
// this package is safe for concurrent use against the same cursor.
package parse

import (
	"encoding/base64"

	"github.com/meszmate/imap-go/combinator"
	"github.com/meszmate/imap-go/cursor"
	"github.com/meszmate/imap-go/perr"
)

// isAtomChar reports whether b may appear in an atom: printable ASCII
// excluding the IMAP special delimiters and control characters.
func isAtomChar(b byte) bool {
	if b <= 0x1f || b == 0x7f {
		return false
	}
	switch b {
	case '(', ')', '{', ' ', '%', '*', '"', '\\', ']':
		return false
	}
	return true
}

// isAstringChar is the ASTRING-CHAR alphabet: atom-char plus the
// resp-specials `]`.
func isAstringChar(b byte) bool {
	return isAtomChar(b) || b == ']'
}

// isQuotedChar reports whether b may appear unescaped inside a quoted
// string: any TEXT-CHAR except `"` and `\`.
func isQuotedChar(b byte) bool {
	if b == '\r' || b == '\n' || b == 0x00 {
		return false
	}
	return b != '"' && b != '\\'
}

func isDigit(b byte) bool { return b >= '0' && b <= '9' }

// Atom parses one or more ATOM-CHAR bytes.
func Atom(c *cursor.ByteCursor, tr *cursor.Tracker) cursor.Outcome[[]byte] {
	return combinator.CharsWhile1(c, isAtomChar)
}

// AstringToken parses the bare (non-quoted, non-literal) ASTRING-CHAR
// alternative of astring.
func AstringToken(c *cursor.ByteCursor, tr *cursor.Tracker) cursor.Outcome[[]byte] {
	return combinator.CharsWhile1(c, isAstringChar)
}

// Quoted parses a `"`-delimited string, unescaping `\"` and `\\`.
func Quoted(c *cursor.ByteCursor, tr *cursor.Tracker) cursor.Outcome[[]byte] {
	return combinator.Composite(c, tr, func() cursor.Outcome[[]byte] {
		if o := combinator.Fixed(c, "\"", true); !o.IsOk() {
			return cursor.Outcome[[]byte]{Status: o.Status, Err: o.Err}
		}
		var out []byte
		for {
			b := c.PeekByte()
			if b.IsIncomplete() {
				return cursor.Incomplete[[]byte]()
			}
			if !b.IsOk() {
				return cursor.Outcome[[]byte]{Status: b.Status, Err: b.Err}
			}
			switch {
			case b.Value == '"':
				c.ReadByte()
				return cursor.Ok(out)
			case b.Value == '\\':
				c.ReadByte()
				esc := c.ReadByte()
				if esc.IsIncomplete() {
					return cursor.Incomplete[[]byte]()
				}
				if !esc.IsOk() {
					return cursor.Outcome[[]byte]{Status: esc.Status, Err: esc.Err}
				}
				if esc.Value != '"' && esc.Value != '\\' {
					return cursor.Fatal[[]byte](perr.Malformed(c.Offset(), "invalid quoted-string escape"))
				}
				out = append(out, esc.Value)
			case isQuotedChar(b.Value):
				c.ReadByte()
				out = append(out, b.Value)
			default:
				return cursor.Fatal[[]byte](perr.Malformedf(c.Offset(), "disallowed byte 0x%02x in quoted string", b.Value))
			}
		}
	})
}

// LiteralInfo describes a parsed `{n}`/`{n+}`/`~{n}` header, before the
// body bytes are consumed.
type LiteralInfo struct {
	Size     int64
	NonSync  bool
	Binary   bool // true for the `~{n}` literal8 form
}

// LiteralHeader parses the `{number [+]}` or `~{number [+]}` CRLF header
// and validates the declared size against the cursor's configured limit.
// It does not consume the body.
func LiteralHeader(c *cursor.ByteCursor, tr *cursor.Tracker) cursor.Outcome[LiteralInfo] {
	return combinator.Composite(c, tr, func() cursor.Outcome[LiteralInfo] {
		binary := false
		if o := combinator.Fixed(c, "~", true); o.IsOk() {
			binary = true
		} else if o.IsIncomplete() {
			return cursor.Incomplete[LiteralInfo]()
		}

		if o := combinator.Fixed(c, "{", true); !o.IsOk() {
			return cursor.Outcome[LiteralInfo]{Status: o.Status, Err: o.Err}
		}

		numO := combinator.UInt(c, false)
		if !numO.IsOk() {
			return cursor.Outcome[LiteralInfo]{Status: numO.Status, Err: numO.Err}
		}

		nonSync := false
		if o := combinator.Fixed(c, "+", true); o.IsOk() {
			nonSync = true
		} else if o.IsIncomplete() {
			return cursor.Incomplete[LiteralInfo]()
		}

		if o := combinator.Fixed(c, "}", true); !o.IsOk() {
			return cursor.Outcome[LiteralInfo]{Status: o.Status, Err: o.Err}
		}
		if o := cursor.Outcome[struct{}](c.ParseNewline()); !o.IsOk() {
			return cursor.Outcome[LiteralInfo]{Status: o.Status, Err: o.Err}
		}

		size := int64(numO.Value)
		if err := c.CheckLiteralSize(size); err != nil {
			return cursor.Fatal[LiteralInfo](err)
		}
		return cursor.Ok(LiteralInfo{Size: size, NonSync: nonSync, Binary: binary})
	})
}

// LiteralBody consumes exactly info.Size bytes following a successfully
// parsed LiteralHeader, rejecting any embedded NUL as Fatal.
func LiteralBody(c *cursor.ByteCursor, info LiteralInfo) cursor.Outcome[[]byte] {
	o := c.ReadN(int(info.Size))
	if !o.IsOk() {
		return o
	}
	for _, b := range o.Value {
		if b == 0x00 {
			return cursor.Fatal[[]byte](perr.Malformed(c.Offset()-int64(len(o.Value)), "NUL byte in literal body"))
		}
	}
	return o
}

// StringFormKind discriminates the StringForm sum type.
type StringFormKind int

const (
	StringFormQuoted StringFormKind = iota
	StringFormLiteral
	StringFormLiteral8
)

// StringForm is the result of parsing a generic IMAP "string" production:
// a quoted string or a literal, tagged by which alternative matched.
type StringForm struct {
	Kind    StringFormKind
	Bytes   []byte
	NonSync bool // meaningful only for StringFormLiteral
}

// String parses the `string` production: a quoted string, a literal, or
// a literal8.
func String(c *cursor.ByteCursor, tr *cursor.Tracker) cursor.Outcome[StringForm] {
	return combinator.OneOf(c, tr,
		func() cursor.Outcome[StringForm] {
			o := Quoted(c, tr)
			if !o.IsOk() {
				return cursor.Outcome[StringForm]{Status: o.Status, Err: o.Err}
			}
			return cursor.Ok(StringForm{Kind: StringFormQuoted, Bytes: o.Value})
		},
		func() cursor.Outcome[StringForm] {
			hdr := LiteralHeader(c, tr)
			if !hdr.IsOk() {
				return cursor.Outcome[StringForm]{Status: hdr.Status, Err: hdr.Err}
			}
			body := LiteralBody(c, hdr.Value)
			if !body.IsOk() {
				return cursor.Outcome[StringForm]{Status: body.Status, Err: body.Err}
			}
			kind := StringFormLiteral
			if hdr.Value.Binary {
				kind = StringFormLiteral8
			}
			return cursor.Ok(StringForm{Kind: kind, Bytes: body.Value, NonSync: hdr.Value.NonSync})
		},
	)
}

// NString is the `nstring` production: the literal token `NIL`, or a
// string. Returns a nil slice (distinguishable from an empty non-nil
// slice) for the NIL case.
func NString(c *cursor.ByteCursor, tr *cursor.Tracker) cursor.Outcome[[]byte] {
	return combinator.OneOf(c, tr,
		func() cursor.Outcome[[]byte] {
			o := combinator.Fixed(c, "NIL", false)
			if !o.IsOk() {
				return o
			}
			return cursor.Ok[[]byte](nil)
		},
		func() cursor.Outcome[[]byte] {
			o := String(c, tr)
			if !o.IsOk() {
				return cursor.Outcome[[]byte]{Status: o.Status, Err: o.Err}
			}
			return cursor.Ok(o.Value.Bytes)
		},
	)
}

// Astring parses the `astring` production: bare ASTRING-CHAR tokens, a
// quoted string, or a literal.
func Astring(c *cursor.ByteCursor, tr *cursor.Tracker) cursor.Outcome[[]byte] {
	return combinator.OneOf(c, tr,
		func() cursor.Outcome[[]byte] { return AstringToken(c, tr) },
		func() cursor.Outcome[[]byte] {
			o := String(c, tr)
			if !o.IsOk() {
				return cursor.Outcome[[]byte]{Status: o.Status, Err: o.Err}
			}
			return cursor.Ok(o.Value.Bytes)
		},
	)
}

// Number parses a `number` (plain decimal digits, leading zeros allowed)
// into a uint32.
func Number(c *cursor.ByteCursor, tr *cursor.Tracker) cursor.Outcome[uint32] {
	o := combinator.BoundedUInt(c, true, 0xFFFFFFFF)
	if !o.IsOk() {
		return cursor.Outcome[uint32]{Status: o.Status, Err: o.Err}
	}
	return cursor.Ok(uint32(o.Value))
}

// NZNumber parses a `nz-number`: decimal digits with no leading zero.
func NZNumber(c *cursor.ByteCursor, tr *cursor.Tracker) cursor.Outcome[uint32] {
	o := combinator.BoundedUInt(c, false, 0xFFFFFFFF)
	if !o.IsOk() {
		return cursor.Outcome[uint32]{Status: o.Status, Err: o.Err}
	}
	if o.Value == 0 {
		return cursor.Recoverable[uint32]()
	}
	return cursor.Ok(uint32(o.Value))
}

// Number64 parses a number into a uint64, used for mod-sequence values
// and other fields too wide for 32 bits.
func Number64(c *cursor.ByteCursor, tr *cursor.Tracker) cursor.Outcome[uint64] {
	return combinator.UInt(c, true)
}

// isTagChar is ASTRING-CHAR minus `+` (tags may not contain `+`, which is
// reserved for continuation markers and non-sync literals).
func isTagChar(b byte) bool {
	return isAstringChar(b) && b != '+'
}

// Tag parses the `tag` production preceding a command or status response.
func Tag(c *cursor.ByteCursor, tr *cursor.Tracker) cursor.Outcome[[]byte] {
	return combinator.CharsWhile1(c, isTagChar)
}

// Text parses the `text` production: one or more TEXT-CHAR (any
// non-CR/LF byte), used for free-form human-readable response text.
func Text(c *cursor.ByteCursor, tr *cursor.Tracker) cursor.Outcome[[]byte] {
	return combinator.CharsWhile1(c, func(b byte) bool {
		return b != '\r' && b != '\n'
	})
}

func isBase64Char(b byte) bool {
	return (b >= 'A' && b <= 'Z') || (b >= 'a' && b <= 'z') || (b >= '0' && b <= '9') || b == '+' || b == '/'
}

// Base64 parses zero-or-more base64-alphabet characters plus `=` padding
// and decodes them. Invalid characters or malformed padding are Fatal.
func Base64(c *cursor.ByteCursor, tr *cursor.Tracker) cursor.Outcome[[]byte] {
	return combinator.Composite(c, tr, func() cursor.Outcome[[]byte] {
		o := combinator.CharsWhile(c, func(b byte) bool { return isBase64Char(b) || b == '=' })
		if !o.IsOk() {
			return o
		}
		raw := o.Value
		for i, b := range raw {
			if b == '=' {
				for _, rest := range raw[i+1:] {
					if rest != '=' {
						return cursor.Fatal[[]byte](perr.Malformed(c.Offset(), "non-'=' byte after base64 padding began"))
					}
				}
				break
			}
		}
		decoded, err := base64.StdEncoding.WithPadding(base64.NoPadding).DecodeString(string(stripEquals(raw)))
		if err != nil {
			return cursor.Fatal[[]byte](perr.Malformedf(c.Offset(), "invalid base64: %v", err))
		}
		return cursor.Ok(decoded)
	})
}

func stripEquals(b []byte) []byte {
	n := len(b)
	for n > 0 && b[n-1] == '=' {
		n--
	}
	return b[:n]
}

func isTaggedExtLabelFirst(b byte) bool {
	return (b >= 'A' && b <= 'Z') || (b >= 'a' && b <= 'z') || b == '-'
}

// TaggedExtLabel parses a tagged-ext-label: a restricted first character
// (letter or `-`) followed by an extended run of atom characters.
func TaggedExtLabel(c *cursor.ByteCursor, tr *cursor.Tracker) cursor.Outcome[[]byte] {
	return combinator.Composite(c, tr, func() cursor.Outcome[[]byte] {
		o := combinator.CharsWhile1(c, isAtomChar)
		if !o.IsOk() {
			return o
		}
		if !isTaggedExtLabelFirst(o.Value[0]) {
			return cursor.Recoverable[[]byte]()
		}
		return o
	})
}

// percentHexDigit reports whether b is a valid hex digit for a
// percent-encoded URL octet.
func isHexDigit(b byte) bool {
	return isDigit(b) || (b >= 'a' && b <= 'f') || (b >= 'A' && b <= 'F')
}

func hexVal(b byte) byte {
	switch {
	case b >= '0' && b <= '9':
		return b - '0'
	case b >= 'a' && b <= 'f':
		return b - 'a' + 10
	default:
		return b - 'A' + 10
	}
}

// PercentEncodedByte parses one `%XX` percent-encoded octet, per the URL
// grammar's pct-encoded production.
func PercentEncodedByte(c *cursor.ByteCursor, tr *cursor.Tracker) cursor.Outcome[byte] {
	return combinator.Composite(c, tr, func() cursor.Outcome[byte] {
		if o := combinator.Fixed(c, "%", true); !o.IsOk() {
			return cursor.Outcome[byte]{Status: o.Status, Err: o.Err}
		}
		hi := c.ReadByte()
		if hi.IsIncomplete() {
			return cursor.Incomplete[byte]()
		}
		if !hi.IsOk() || !isHexDigit(hi.Value) {
			return cursor.Fatal[byte](perr.Malformed(c.Offset(), "invalid percent-encoded hex digit"))
		}
		lo := c.ReadByte()
		if lo.IsIncomplete() {
			return cursor.Incomplete[byte]()
		}
		if !lo.IsOk() || !isHexDigit(lo.Value) {
			return cursor.Fatal[byte](perr.Malformed(c.Offset(), "invalid percent-encoded hex digit"))
		}
		return cursor.Ok(hexVal(hi.Value)<<4 | hexVal(lo.Value))
	})
}
