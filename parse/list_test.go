package parse

import (
	"bytes"
	"testing"
)

func TestMailboxList(t *testing.T) {
	got := mustOk(t, `(\HasNoChildren) "/" "INBOX/Sent"`+"\r\n", MailboxList)
	if len(got.Attrs) != 1 || got.Attrs[0] != `\HasNoChildren` {
		t.Errorf("Attrs = %v, want [\\HasNoChildren]", got.Attrs)
	}
	if got.Path.PathSeparator == nil || *got.Path.PathSeparator != '/' {
		t.Errorf("PathSeparator = %v, want '/'", got.Path.PathSeparator)
	}
	if !bytes.Equal(got.Path.Name, []byte("INBOX/Sent")) {
		t.Errorf("Path.Name = %q, want INBOX/Sent", got.Path.Name)
	}
}

func TestMailboxList_NilAttrsAndSeparator(t *testing.T) {
	got := mustOk(t, `() NIL "INBOX"`+"\r\n", MailboxList)
	if got.Attrs != nil {
		t.Errorf("Attrs = %v, want nil", got.Attrs)
	}
	if got.Path.PathSeparator != nil {
		t.Errorf("PathSeparator = %v, want nil", got.Path.PathSeparator)
	}
}

func TestMailboxList_ExtendedItems(t *testing.T) {
	got := mustOk(t, `(\Subscribed) "/" "INBOX" (CHILDINFO ("SUBSCRIBED"))`, MailboxList)
	if len(got.ExtendedItems) != 1 || got.ExtendedItems[0].Tag != "CHILDINFO" {
		t.Errorf("ExtendedItems = %+v, want one CHILDINFO entry", got.ExtendedItems)
	}
}
