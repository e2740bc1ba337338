package parse

import (
	"testing"

	imap "github.com/meszmate/imap-go"
)

func TestExtendedItem_SequenceSetValue(t *testing.T) {
	got := mustOk(t, "SAVEDATESUPPORTED 1:5)", extendedItem)
	if got.Tag != "SAVEDATESUPPORTED" {
		t.Errorf("Tag = %q, want SAVEDATESUPPORTED", got.Tag)
	}
	if got.Value.SeqSet == nil || len(got.Value.SeqSet.Set) != 1 {
		t.Errorf("Value.SeqSet = %+v, want one range", got.Value.SeqSet)
	}
}

func TestExtendedItem_CompList(t *testing.T) {
	got := mustOk(t, "OLDNAME (1 2 (3))", extendedItem)
	if got.Tag != "OLDNAME" {
		t.Errorf("Tag = %q, want OLDNAME", got.Tag)
	}
	if len(got.Value.Comp) != 3 {
		t.Fatalf("Value.Comp = %+v, want 3 elements", got.Value.Comp)
	}
	if got.Value.Comp[2].Nested == nil || len(got.Value.Comp[2].Nested) != 1 {
		t.Errorf("Value.Comp[2] = %+v, want a nested single-element list", got.Value.Comp[2])
	}
}

func TestQResyncParams(t *testing.T) {
	got := mustOk(t, "(67890007 90060115194045319)", QResyncParams)
	if got.UIDValidity != 67890007 {
		t.Errorf("UIDValidity = %d, want 67890007", got.UIDValidity)
	}
	if got.ModSeq != 90060115194045319 {
		t.Errorf("ModSeq = %d, want 90060115194045319", got.ModSeq)
	}
	if got.KnownUIDs != nil {
		t.Errorf("KnownUIDs = %v, want nil (not present)", got.KnownUIDs)
	}
}

func TestQResyncParams_WithKnownUIDsAndSeqMatch(t *testing.T) {
	got := mustOk(t, "(67890007 90060115194045319 41:211 (41:211 1:21))", QResyncParams)
	if got.KnownUIDs == nil || len(got.KnownUIDs.Set) != 1 {
		t.Fatalf("KnownUIDs = %+v, want 1 range", got.KnownUIDs)
	}
	if got.SeqMatch == nil {
		t.Fatal("SeqMatch = nil, want present")
	}
}

func TestStorePrefix(t *testing.T) {
	tests := []struct {
		input string
		want  imap.StoreAction
	}{
		{"+", imap.StoreFlagsAdd},
		{"-", imap.StoreFlagsDel},
		{"FLAGS", imap.StoreFlagsSet},
	}
	for _, tt := range tests {
		got := mustOk(t, tt.input, StorePrefix)
		if got != tt.want {
			t.Errorf("StorePrefix(%q) = %v, want %v", tt.input, got, tt.want)
		}
	}
}

func TestStoreFlagsItem(t *testing.T) {
	got := mustOk(t, `+FLAGS.SILENT (\Seen \Deleted)`, StoreFlagsItem)
	if got.Action != imap.StoreFlagsAdd {
		t.Errorf("Action = %v, want add", got.Action)
	}
	if !got.Silent {
		t.Error("Silent = false, want true")
	}
	if len(got.Flags) != 2 {
		t.Errorf("Flags = %v, want 2 entries", got.Flags)
	}
}

func TestStoreGmailLabelsItem(t *testing.T) {
	got := mustOk(t, `-X-GM-LABELS ("\\Important" "Work")`, StoreGmailLabelsItem)
	if got.Action != imap.StoreFlagsDel {
		t.Errorf("Action = %v, want del", got.Action)
	}
	if len(got.Labels) != 2 || got.Labels[1] != "Work" {
		t.Errorf("Labels = %v, want [... Work]", got.Labels)
	}
}

func TestReturnOption_FixedKeyword(t *testing.T) {
	got := mustOk(t, "CHILDREN", ReturnOption)
	if got.Tag != "CHILDREN" {
		t.Errorf("ReturnOption(CHILDREN) = %+v, want Tag=CHILDREN", got)
	}
}
