package imap

// URLAuthMechanism identifies the authentication mechanism named in an
// imapurl userinfo component or a URLAUTH verifier.
type URLAuthMechanism struct {
	// Any is true for the wildcard form ";AUTH=*".
	Any  bool
	Name string // populated when Any is false
}

// URLServer is the server component of an IMAP URL: an optional userinfo
// plus host and optional port.
type URLServer struct {
	UserInfo *URLUserInfo
	Host     string
	Port     *uint16
}

// URLUserInfo is the encoded user plus optional auth mechanism preceding
// "@" in an IMAP URL authority.
type URLUserInfo struct {
	EncodedUser string
	Auth        *URLAuthMechanism
}

// MailboxRef is an encoded mailbox name plus an optional UIDVALIDITY,
// shared by message-list and message-fetch URL forms.
type MailboxRef struct {
	EncodedMailbox string
	UIDValidity    *uint32
}

// MessageList is the url-command form naming a mailbox and an optional
// encoded SEARCH program, e.g. "INBOX?SUBJECT%20hello".
type MessageList struct {
	Mailbox       MailboxRef
	EncodedSearch *string
}

// MessagePath addresses one message (and optionally a section/partial
// range within it) inside a mailbox, e.g. "INBOX/;UID=42/;SECTION=HEADER".
type MessagePath struct {
	Mailbox MailboxRef
	UID     uint32
	Section *string
	Partial *SectionPartial
}

// URLAuthAccess is the access identifier of a URLAUTH authorization:
// exactly one of the four forms.
type URLAuthAccess struct {
	Submit    *string // "submit+<userid>"
	User      *string // "user+<userid>"
	Authuser  *string // "authuser+<userid>"
	Anonymous bool    // "anonymous"
}

// URLRump is the portion of an authenticated IMAP URL that is MAC'd: an
// optional expiry plus the access identifier.
type URLRump struct {
	Expire *string // ISO8601 date-time, kept as the raw token
	Access URLAuthAccess
}

// URLVerifier is the ":mech:hex(32)" tail appended to an authenticated
// URL, authenticating the rump.
type URLVerifier struct {
	Mechanism string
	MAC       [32]byte // hex-decoded digest
}

// AuthenticatedURL combines the rump and its verifier.
type AuthenticatedURL struct {
	Rump     URLRump
	Verifier URLVerifier
}

// IMAPURL is the top-level parsed form of an "imap://" URL: the server
// component plus exactly one of a message list, a message path, or an
// authenticated URLAUTH reference layered on top of a message path.
type IMAPURL struct {
	Server URLServer

	List *MessageList
	Path *MessagePath

	// Auth is populated when the URL carries a URLAUTH authorization;
	// when set, Path names the message the authorization applies to and
	// Auth carries the rump/verifier.
	Auth *AuthenticatedURL
}
