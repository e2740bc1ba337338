package parse

import (
	"testing"
)

func TestEnvelope(t *testing.T) {
	input := `("Mon, 1 Jan 2024 10:00:00 -0800" "Hello" ` +
		`(("Alice" NIL "alice" "example.com")) ` +
		`(("Alice" NIL "alice" "example.com")) ` +
		`(("Alice" NIL "alice" "example.com")) ` +
		`(("Bob" NIL "bob" "example.com")) ` +
		`NIL NIL NIL "<abc@example.com>")`
	got := mustOk(t, input, Envelope)
	if got.Subject != "Hello" {
		t.Errorf("Subject = %q, want Hello", got.Subject)
	}
	if got.MessageID != "<abc@example.com>" {
		t.Errorf("MessageID = %q, want <abc@example.com>", got.MessageID)
	}
	if len(got.From) != 1 || got.From[0].Mailbox != "alice" || got.From[0].Host != "example.com" {
		t.Errorf("From = %+v, want one alice@example.com address", got.From)
	}
	if len(got.To) != 1 || got.To[0].Mailbox != "bob" {
		t.Errorf("To = %+v, want one bob address", got.To)
	}
	if got.Date.IsZero() {
		t.Error("Date is zero, want a parsed time")
	}
}

func TestEnvelope_NilAddressLists(t *testing.T) {
	input := `(NIL NIL NIL NIL NIL NIL NIL NIL NIL NIL)`
	got := mustOk(t, input, Envelope)
	if got.From != nil || got.To != nil || got.Cc != nil || got.Bcc != nil {
		t.Errorf("Envelope with NIL address fields = %+v, want all nil", got)
	}
	if got.Subject != "" || got.InReplyTo != "" || got.MessageID != "" {
		t.Errorf("Envelope with NIL string fields = %+v, want empty strings", got)
	}
}

func TestAddressList_MultipleAddresses(t *testing.T) {
	got := mustOk(t, `(("A" NIL "a" "x.com")("B" NIL "b" "y.com"))`, addressList)
	if len(got) != 2 {
		t.Fatalf("addressList = %+v, want 2 addresses", got)
	}
	if got[0].Mailbox != "a" || got[1].Mailbox != "b" {
		t.Errorf("addressList mailboxes = %q, %q, want a, b", got[0].Mailbox, got[1].Mailbox)
	}
}
