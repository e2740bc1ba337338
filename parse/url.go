package parse

import (
	"encoding/hex"

	imap "github.com/meszmate/imap-go"
	"github.com/meszmate/imap-go/combinator"
	"github.com/meszmate/imap-go/cursor"
	"github.com/meszmate/imap-go/perr"
)

func isUserCharOrPct(b byte) bool {
	return isAstringChar(b) && b != '@' && b != ':' && b != '/' && b != ';'
}

func isHostChar(b byte) bool {
	return isAstringChar(b) && b != ':' && b != '/' && b != '@' && b != ';'
}

// pctString consumes a run of plain chars and percent-encoded octets
// satisfying pred on the plain bytes, checking each %XX escape and keeping
// it in its encoded form.
func pctString(c *cursor.ByteCursor, tr *cursor.Tracker, pred func(byte) bool) cursor.Outcome[string] {
	return combinator.Composite(c, tr, func() cursor.Outcome[string] {
		var out []byte
		for {
			b := c.PeekByte()
			if b.IsIncomplete() {
				if len(out) == 0 {
					return cursor.Incomplete[string]()
				}
				return cursor.Ok(string(out))
			}
			if !b.IsOk() {
				return cursor.Outcome[string]{Status: b.Status, Err: b.Err}
			}
			if b.Value == '%' {
				raw := c.Peek(3)
				o := PercentEncodedByte(c, tr)
				if o.IsIncomplete() {
					return cursor.Incomplete[string]()
				}
				if !o.IsOk() {
					return cursor.Outcome[string]{Status: o.Status, Err: o.Err}
				}
				out = append(out, raw.Value...)
				continue
			}
			if !pred(b.Value) {
				return cursor.Ok(string(out))
			}
			c.ReadByte()
			out = append(out, b.Value)
		}
	})
}

func urlAuthMechanism(c *cursor.ByteCursor, tr *cursor.Tracker) cursor.Outcome[imap.URLAuthMechanism] {
	return combinator.Composite(c, tr, func() cursor.Outcome[imap.URLAuthMechanism] {
		if o := combinator.Fixed(c, ";AUTH=", false); !o.IsOk() {
			return cursor.Outcome[imap.URLAuthMechanism]{Status: o.Status, Err: o.Err}
		}
		if o := combinator.Fixed(c, "*", true); o.IsOk() {
			return cursor.Ok(imap.URLAuthMechanism{Any: true})
		} else if o.IsIncomplete() {
			return cursor.Incomplete[imap.URLAuthMechanism]()
		}
		name := pctString(c, tr, isAtomChar)
		if !name.IsOk() {
			return cursor.Outcome[imap.URLAuthMechanism]{Status: name.Status, Err: name.Err}
		}
		return cursor.Ok(imap.URLAuthMechanism{Name: name.Value})
	})
}

// userInfo parses the `[iuserinfo] "@"` authority prefix.
func userInfo(c *cursor.ByteCursor, tr *cursor.Tracker) cursor.Outcome[imap.URLUserInfo] {
	return combinator.Composite(c, tr, func() cursor.Outcome[imap.URLUserInfo] {
		user := pctString(c, tr, isUserCharOrPct)
		if !user.IsOk() {
			return cursor.Outcome[imap.URLUserInfo]{Status: user.Status, Err: user.Err}
		}
		ui := imap.URLUserInfo{EncodedUser: user.Value}
		auth := combinator.Optional(c, tr, func() cursor.Outcome[imap.URLAuthMechanism] { return urlAuthMechanism(c, tr) })
		if auth.IsIncomplete() {
			return cursor.Incomplete[imap.URLUserInfo]()
		}
		ui.Auth = auth.Value
		if o := combinator.Fixed(c, "@", true); !o.IsOk() {
			return cursor.Outcome[imap.URLUserInfo]{Status: o.Status, Err: o.Err}
		}
		return cursor.Ok(ui)
	})
}

// Server parses the iserver component: "imap://" [iuserinfo "@"] host [":" port].
func Server(c *cursor.ByteCursor, tr *cursor.Tracker) cursor.Outcome[imap.URLServer] {
	return combinator.Composite(c, tr, func() cursor.Outcome[imap.URLServer] {
		if o := combinator.Fixed(c, "imap://", false); !o.IsOk() {
			return cursor.Outcome[imap.URLServer]{Status: o.Status, Err: o.Err}
		}
		var srv imap.URLServer

		ui := combinator.Optional(c, tr, func() cursor.Outcome[imap.URLUserInfo] { return userInfo(c, tr) })
		if ui.IsIncomplete() {
			return cursor.Incomplete[imap.URLServer]()
		}
		srv.UserInfo = ui.Value

		host := pctString(c, tr, isHostChar)
		if !host.IsOk() {
			return cursor.Outcome[imap.URLServer]{Status: host.Status, Err: host.Err}
		}
		srv.Host = host.Value

		port := combinator.Optional(c, tr, func() cursor.Outcome[uint16] {
			return combinator.Composite(c, tr, func() cursor.Outcome[uint16] {
				if o := combinator.Fixed(c, ":", true); !o.IsOk() {
					return cursor.Outcome[uint16]{Status: o.Status, Err: o.Err}
				}
				n := combinator.BoundedUInt(c, true, 0xFFFF)
				if !n.IsOk() {
					return cursor.Outcome[uint16]{Status: n.Status, Err: n.Err}
				}
				return cursor.Ok(uint16(n.Value))
			})
		})
		if port.IsIncomplete() {
			return cursor.Incomplete[imap.URLServer]()
		}
		srv.Port = port.Value

		return cursor.Ok(srv)
	})
}

func mailboxRef(c *cursor.ByteCursor, tr *cursor.Tracker) cursor.Outcome[imap.MailboxRef] {
	return combinator.Composite(c, tr, func() cursor.Outcome[imap.MailboxRef] {
		mbox := pctString(c, tr, func(b byte) bool { return isAstringChar(b) && b != '/' && b != '?' && b != ';' })
		if !mbox.IsOk() {
			return cursor.Outcome[imap.MailboxRef]{Status: mbox.Status, Err: mbox.Err}
		}
		ref := imap.MailboxRef{EncodedMailbox: mbox.Value}
		uv := combinator.Optional(c, tr, func() cursor.Outcome[uint32] {
			return combinator.Composite(c, tr, func() cursor.Outcome[uint32] {
				if o := combinator.Fixed(c, ";UIDVALIDITY=", false); !o.IsOk() {
					return cursor.Outcome[uint32]{Status: o.Status, Err: o.Err}
				}
				return NZNumber(c, tr)
			})
		})
		if uv.IsIncomplete() {
			return cursor.Incomplete[imap.MailboxRef]()
		}
		ref.UIDValidity = uv.Value
		return cursor.Ok(ref)
	})
}

// messagePath parses the "/;UID=" nz-number tail plus optional
// ";SECTION=" and ";PARTIAL=" qualifiers, following a mailbox-ref.
func messagePath(c *cursor.ByteCursor, tr *cursor.Tracker, mbox imap.MailboxRef) cursor.Outcome[imap.MessagePath] {
	return combinator.Composite(c, tr, func() cursor.Outcome[imap.MessagePath] {
		if o := combinator.Fixed(c, "/;UID=", false); !o.IsOk() {
			return cursor.Outcome[imap.MessagePath]{Status: o.Status, Err: o.Err}
		}
		uid := NZNumber(c, tr)
		if !uid.IsOk() {
			return cursor.Outcome[imap.MessagePath]{Status: uid.Status, Err: uid.Err}
		}
		path := imap.MessagePath{Mailbox: mbox, UID: uid.Value}

		section := combinator.Optional(c, tr, func() cursor.Outcome[string] {
			return combinator.Composite(c, tr, func() cursor.Outcome[string] {
				if o := combinator.Fixed(c, "/;SECTION=", false); !o.IsOk() {
					return cursor.Outcome[string]{Status: o.Status, Err: o.Err}
				}
				return pctString(c, tr, func(b byte) bool { return isAstringChar(b) && b != '/' })
			})
		})
		if section.IsIncomplete() {
			return cursor.Incomplete[imap.MessagePath]()
		}
		path.Section = section.Value

		partial := combinator.Optional(c, tr, func() cursor.Outcome[imap.SectionPartial] {
			return combinator.Composite(c, tr, func() cursor.Outcome[imap.SectionPartial] {
				if o := combinator.Fixed(c, "/;PARTIAL=", false); !o.IsOk() {
					return cursor.Outcome[imap.SectionPartial]{Status: o.Status, Err: o.Err}
				}
				off := Number(c, tr)
				if !off.IsOk() {
					return cursor.Outcome[imap.SectionPartial]{Status: off.Status, Err: off.Err}
				}
				if o := combinator.Fixed(c, ".", true); !o.IsOk() {
					return cursor.Outcome[imap.SectionPartial]{Status: o.Status, Err: o.Err}
				}
				cnt := Number(c, tr)
				if !cnt.IsOk() {
					return cursor.Outcome[imap.SectionPartial]{Status: cnt.Status, Err: cnt.Err}
				}
				return cursor.Ok(imap.SectionPartial{Offset: int64(off.Value), Count: int64(cnt.Value)})
			})
		})
		if partial.IsIncomplete() {
			return cursor.Incomplete[imap.MessagePath]()
		}
		path.Partial = partial.Value

		return cursor.Ok(path)
	})
}

func urlAuthAccess(c *cursor.ByteCursor, tr *cursor.Tracker) cursor.Outcome[imap.URLAuthAccess] {
	return combinator.OneOf(c, tr,
		func() cursor.Outcome[imap.URLAuthAccess] {
			return combinator.Composite(c, tr, func() cursor.Outcome[imap.URLAuthAccess] {
				if o := combinator.Fixed(c, "submit+", false); !o.IsOk() {
					return cursor.Outcome[imap.URLAuthAccess]{Status: o.Status, Err: o.Err}
				}
				u := pctString(c, tr, isAtomChar)
				if !u.IsOk() {
					return cursor.Outcome[imap.URLAuthAccess]{Status: u.Status, Err: u.Err}
				}
				return cursor.Ok(imap.URLAuthAccess{Submit: &u.Value})
			})
		},
		func() cursor.Outcome[imap.URLAuthAccess] {
			return combinator.Composite(c, tr, func() cursor.Outcome[imap.URLAuthAccess] {
				if o := combinator.Fixed(c, "user+", false); !o.IsOk() {
					return cursor.Outcome[imap.URLAuthAccess]{Status: o.Status, Err: o.Err}
				}
				u := pctString(c, tr, isAtomChar)
				if !u.IsOk() {
					return cursor.Outcome[imap.URLAuthAccess]{Status: u.Status, Err: u.Err}
				}
				return cursor.Ok(imap.URLAuthAccess{User: &u.Value})
			})
		},
		func() cursor.Outcome[imap.URLAuthAccess] {
			return combinator.Composite(c, tr, func() cursor.Outcome[imap.URLAuthAccess] {
				if o := combinator.Fixed(c, "authuser+", false); !o.IsOk() {
					return cursor.Outcome[imap.URLAuthAccess]{Status: o.Status, Err: o.Err}
				}
				u := pctString(c, tr, isAtomChar)
				if !u.IsOk() {
					return cursor.Outcome[imap.URLAuthAccess]{Status: u.Status, Err: u.Err}
				}
				return cursor.Ok(imap.URLAuthAccess{Authuser: &u.Value})
			})
		},
		func() cursor.Outcome[imap.URLAuthAccess] {
			o := combinator.Fixed(c, "anonymous", false)
			if !o.IsOk() {
				return cursor.Outcome[imap.URLAuthAccess]{Status: o.Status, Err: o.Err}
			}
			return cursor.Ok(imap.URLAuthAccess{Anonymous: true})
		},
	)
}

// urlAuth parses the ";URLAUTH=" rump/verifier tail of an authenticated
// IMAP URL: an optional expiry, the access identifier, and a
// ":mechanism:hex(32)" verifier.
func urlAuth(c *cursor.ByteCursor, tr *cursor.Tracker) cursor.Outcome[imap.AuthenticatedURL] {
	return combinator.Composite(c, tr, func() cursor.Outcome[imap.AuthenticatedURL] {
		if o := combinator.Fixed(c, ";URLAUTH=", false); !o.IsOk() {
			return cursor.Outcome[imap.AuthenticatedURL]{Status: o.Status, Err: o.Err}
		}
		var au imap.AuthenticatedURL

		expire := combinator.Optional(c, tr, func() cursor.Outcome[string] {
			return combinator.Composite(c, tr, func() cursor.Outcome[string] {
				if o := combinator.Fixed(c, "expire=", false); !o.IsOk() {
					return cursor.Outcome[string]{Status: o.Status, Err: o.Err}
				}
				s := pctString(c, tr, func(b byte) bool { return isAstringChar(b) && b != ':' })
				if !s.IsOk() {
					return cursor.Outcome[string]{Status: s.Status, Err: s.Err}
				}
				if o := combinator.Fixed(c, "&", true); !o.IsOk() {
					return cursor.Outcome[string]{Status: o.Status, Err: o.Err}
				}
				return cursor.Ok(s.Value)
			})
		})
		if expire.IsIncomplete() {
			return cursor.Incomplete[imap.AuthenticatedURL]()
		}
		au.Rump.Expire = expire.Value

		access := urlAuthAccess(c, tr)
		if !access.IsOk() {
			return cursor.Outcome[imap.AuthenticatedURL]{Status: access.Status, Err: access.Err}
		}
		au.Rump.Access = access.Value

		if o := combinator.Fixed(c, ":", true); !o.IsOk() {
			return cursor.Outcome[imap.AuthenticatedURL]{Status: o.Status, Err: o.Err}
		}
		mech := Atom(c, tr)
		if !mech.IsOk() {
			return cursor.Outcome[imap.AuthenticatedURL]{Status: mech.Status, Err: mech.Err}
		}
		au.Verifier.Mechanism = string(mech.Value)

		if o := combinator.Fixed(c, ":", true); !o.IsOk() {
			return cursor.Outcome[imap.AuthenticatedURL]{Status: o.Status, Err: o.Err}
		}
		macHex := c.ReadN(64)
		if macHex.IsIncomplete() {
			return cursor.Incomplete[imap.AuthenticatedURL]()
		}
		if !macHex.IsOk() {
			return cursor.Outcome[imap.AuthenticatedURL]{Status: macHex.Status, Err: macHex.Err}
		}
		if _, err := hex.Decode(au.Verifier.MAC[:], macHex.Value); err != nil {
			return cursor.Fatal[imap.AuthenticatedURL](perr.Malformedf(c.Offset(), "invalid URLAUTH verifier hex: %v", err))
		}
		return cursor.Ok(au)
	})
}

// URL parses a full "imap://..." IMAP URL: the server
// component plus one of a message list, a message path (optionally with
// a trailing URLAUTH authorization).
//
// The trailing-slash ambiguity between "mailbox" and "mailbox/" (a
// message-list with an empty path suffix, versus a mailbox-ref about to
// be followed by "/;UID=...") is resolved by attempting the more
// specific message-path form first; on Recoverable, OneOf rewinds and
// the looser message-list alternative reattaches the slash to the encoded
// mailbox name.
func URL(c *cursor.ByteCursor, tr *cursor.Tracker) cursor.Outcome[imap.IMAPURL] {
	return combinator.Composite(c, tr, func() cursor.Outcome[imap.IMAPURL] {
		srv := Server(c, tr)
		if !srv.IsOk() {
			return cursor.Outcome[imap.IMAPURL]{Status: srv.Status, Err: srv.Err}
		}
		u := imap.IMAPURL{Server: srv.Value}

		rest := combinator.Optional(c, tr, func() cursor.Outcome[struct{}] {
			return combinator.Composite(c, tr, func() cursor.Outcome[struct{}] {
				if o := combinator.Fixed(c, "/", true); !o.IsOk() {
					return cursor.Outcome[struct{}]{Status: o.Status, Err: o.Err}
				}
				mbox := mailboxRef(c, tr)
				if !mbox.IsOk() {
					return cursor.Outcome[struct{}]{Status: mbox.Status, Err: mbox.Err}
				}
				return combinator.OneOf(c, tr,
					func() cursor.Outcome[struct{}] {
						path := messagePath(c, tr, mbox.Value)
						if !path.IsOk() {
							return cursor.Outcome[struct{}]{Status: path.Status, Err: path.Err}
						}
						u.Path = &path.Value
						auth := combinator.Optional(c, tr, func() cursor.Outcome[imap.AuthenticatedURL] { return urlAuth(c, tr) })
						if auth.IsIncomplete() {
							return cursor.Incomplete[struct{}]()
						}
						u.Auth = auth.Value
						return cursor.Ok(struct{}{})
					},
					func() cursor.Outcome[struct{}] {
						mb := mbox.Value
						if o := combinator.Fixed(c, "/", true); o.IsOk() {
							mb.EncodedMailbox += "/"
						} else if o.IsIncomplete() {
							return cursor.Incomplete[struct{}]()
						}
						search := combinator.Optional(c, tr, func() cursor.Outcome[string] {
							return combinator.Composite(c, tr, func() cursor.Outcome[string] {
								if o := combinator.Fixed(c, "?", true); !o.IsOk() {
									return cursor.Outcome[string]{Status: o.Status, Err: o.Err}
								}
								return pctString(c, tr, func(b byte) bool { return isAstringChar(b) || b == ' ' })
							})
						})
						if search.IsIncomplete() {
							return cursor.Incomplete[struct{}]()
						}
						u.List = &imap.MessageList{Mailbox: mb, EncodedSearch: search.Value}
						return cursor.Ok(struct{}{})
					},
				)
			})
		})
		if rest.IsIncomplete() {
			return cursor.Incomplete[imap.IMAPURL]()
		}
		return cursor.Ok(u)
	})
}
