package parse

import "testing"

func TestStatusResponse(t *testing.T) {
	got := mustOk(t, `STATUS "INBOX" (MESSAGES 231 UIDNEXT 44292 UIDVALIDITY 3857529045 UNSEEN 5)`, StatusResponse)
	if got.Mailbox != "INBOX" {
		t.Errorf("Mailbox = %q, want INBOX", got.Mailbox)
	}
	if got.NumMessages == nil || *got.NumMessages != 231 {
		t.Errorf("NumMessages = %v, want 231", got.NumMessages)
	}
	if got.UIDNext == nil || *got.UIDNext != 44292 {
		t.Errorf("UIDNext = %v, want 44292", got.UIDNext)
	}
	if got.UIDValidity == nil || *got.UIDValidity != 3857529045 {
		t.Errorf("UIDValidity = %v, want 3857529045", got.UIDValidity)
	}
	if got.NumUnseen == nil || *got.NumUnseen != 5 {
		t.Errorf("NumUnseen = %v, want 5", got.NumUnseen)
	}
}

func TestStatusResponse_EmptyAttList(t *testing.T) {
	got := mustOk(t, `STATUS "Drafts" ()`, StatusResponse)
	if got.Mailbox != "Drafts" {
		t.Errorf("Mailbox = %q, want Drafts", got.Mailbox)
	}
	if got.NumMessages != nil {
		t.Errorf("NumMessages = %v, want nil", got.NumMessages)
	}
}

func TestStatusResponse_MailboxID(t *testing.T) {
	got := mustOk(t, `STATUS "INBOX" (MAILBOXID (F1))`, StatusResponse)
	if got.MailboxID != "F1" {
		t.Errorf("MailboxID = %q, want F1", got.MailboxID)
	}
}

func TestStatusResponse_HighestModSeq(t *testing.T) {
	got := mustOk(t, `STATUS "INBOX" (HIGHESTMODSEQ 90060115194045623)`, StatusResponse)
	if got.HighestModSeq == nil || *got.HighestModSeq != 90060115194045623 {
		t.Errorf("HighestModSeq = %v, want 90060115194045623", got.HighestModSeq)
	}
}
