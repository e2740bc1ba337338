package parse

import "testing"

func TestServer_WithUserInfoAndPort(t *testing.T) {
	got := mustOk(t, "imap://mike@mail.example.com:143 ", Server)
	if got.Host != "mail.example.com" {
		t.Errorf("Host = %q, want mail.example.com", got.Host)
	}
	if got.UserInfo == nil || got.UserInfo.EncodedUser != "mike" {
		t.Errorf("UserInfo = %+v, want EncodedUser=mike", got.UserInfo)
	}
	if got.Port == nil || *got.Port != 143 {
		t.Errorf("Port = %v, want 143", got.Port)
	}
}

func TestServer_UserInfoWithAuthMechanism(t *testing.T) {
	got := mustOk(t, "imap://user;AUTH=*@host.example:143 ", Server)
	if got.Host != "host.example" {
		t.Errorf("Host = %q, want host.example", got.Host)
	}
	if got.Port == nil || *got.Port != 143 {
		t.Errorf("Port = %v, want 143", got.Port)
	}
	if got.UserInfo == nil || got.UserInfo.EncodedUser != "user" {
		t.Fatalf("UserInfo = %+v, want EncodedUser=user", got.UserInfo)
	}
	if got.UserInfo.Auth == nil || !got.UserInfo.Auth.Any {
		t.Errorf("UserInfo.Auth = %+v, want the wildcard AUTH=* form", got.UserInfo.Auth)
	}
}

func TestURL_MessagePathWithUserInfoAuthMechanism(t *testing.T) {
	got := mustOk(t, "imap://user;AUTH=*@host.example:143/INBOX/;UID=42/;SECTION=HEADER ", URL)
	if got.Server.Host != "host.example" {
		t.Errorf("Server.Host = %q, want host.example", got.Server.Host)
	}
	if got.Server.UserInfo == nil || got.Server.UserInfo.EncodedUser != "user" {
		t.Fatalf("Server.UserInfo = %+v, want EncodedUser=user", got.Server.UserInfo)
	}
	if got.Server.UserInfo.Auth == nil || !got.Server.UserInfo.Auth.Any {
		t.Errorf("Server.UserInfo.Auth = %+v, want the wildcard AUTH=* form", got.Server.UserInfo.Auth)
	}
	if got.Path == nil {
		t.Fatalf("URL = %+v, want a message-path form", got)
	}
	if got.Path.UID != 42 {
		t.Errorf("UID = %d, want 42", got.Path.UID)
	}
	if got.Path.Section == nil || *got.Path.Section != "HEADER" {
		t.Errorf("Section = %v, want HEADER", got.Path.Section)
	}
}

func TestServer_BareHost(t *testing.T) {
	got := mustOk(t, "imap://mail.example.com ", Server)
	if got.Host != "mail.example.com" || got.UserInfo != nil || got.Port != nil {
		t.Errorf("Server = %+v, want bare host only", got)
	}
}

func TestURL_MessageList(t *testing.T) {
	got := mustOk(t, "imap://mail.example.com/INBOX?SUBJECT%20hello", URL)
	if got.List == nil {
		t.Fatalf("URL = %+v, want a message-list form", got)
	}
	if got.List.Mailbox.EncodedMailbox != "INBOX" {
		t.Errorf("Mailbox = %q, want INBOX", got.List.Mailbox.EncodedMailbox)
	}
	if got.List.EncodedSearch == nil || *got.List.EncodedSearch != "SUBJECT%20hello" {
		t.Errorf("EncodedSearch = %v, want SUBJECT%%20hello", got.List.EncodedSearch)
	}
}

func TestURL_MessagePath(t *testing.T) {
	got := mustOk(t, "imap://mail.example.com/INBOX/;UID=42/;SECTION=HEADER ", URL)
	if got.Path == nil {
		t.Fatalf("URL = %+v, want a message-path form", got)
	}
	if got.Path.UID != 42 {
		t.Errorf("UID = %d, want 42", got.Path.UID)
	}
	if got.Path.Section == nil || *got.Path.Section != "HEADER" {
		t.Errorf("Section = %v, want HEADER", got.Path.Section)
	}
}

func TestURL_MessagePathWithPartial(t *testing.T) {
	got := mustOk(t, "imap://mail.example.com/INBOX/;UID=42/;PARTIAL=0.1024 ", URL)
	if got.Path == nil || got.Path.Partial == nil {
		t.Fatalf("URL = %+v, want a Partial range", got)
	}
	if got.Path.Partial.Offset != 0 || got.Path.Partial.Count != 1024 {
		t.Errorf("Partial = %+v, want {0 1024}", got.Path.Partial)
	}
}

func TestURL_BareMailboxNoTrailingSlash(t *testing.T) {
	got := mustOk(t, "imap://mail.example.com/INBOX ", URL)
	if got.List == nil || got.List.Mailbox.EncodedMailbox != "INBOX" {
		t.Errorf("URL = %+v, want a bare message-list naming INBOX", got)
	}
}
