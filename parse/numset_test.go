package parse

import (
	"errors"
	"testing"

	imap "github.com/meszmate/imap-go"
	"github.com/meszmate/imap-go/perr"
)

func TestSequenceSet(t *testing.T) {
	tests := []struct {
		input string
		want  imap.SeqSet
	}{
		{"1", imap.SeqSet{Set: []imap.NumRange{{Start: 1, Stop: 1}}}},
		{"1:5", imap.SeqSet{Set: []imap.NumRange{{Start: 1, Stop: 5}}}},
		{"1,3:5,10:*", imap.SeqSet{Set: []imap.NumRange{
			{Start: 1, Stop: 1}, {Start: 3, Stop: 5}, {Start: 10, Stop: 0},
		}}},
		{"*:4", imap.SeqSet{Set: []imap.NumRange{{Start: 0, Stop: 4}}}},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got := mustOk(t, tt.input+" ", SequenceSet)
			if len(got.Set) != len(tt.want.Set) {
				t.Fatalf("SequenceSet(%q) = %+v, want %+v", tt.input, got.Set, tt.want.Set)
			}
			for i := range got.Set {
				if got.Set[i] != tt.want.Set[i] {
					t.Errorf("SequenceSet(%q).Set[%d] = %+v, want %+v", tt.input, i, got.Set[i], tt.want.Set[i])
				}
			}
		})
	}
}

func TestSequenceSet_LastCommand(t *testing.T) {
	got := mustOk(t, "$", SequenceSet)
	if !got.LastCommand {
		t.Error("expected LastCommand=true for \"$\"")
	}
	if len(got.Set) != 0 {
		t.Errorf("expected empty Set, got %v", got.Set)
	}
}

func TestUIDSetProd(t *testing.T) {
	got := mustOk(t, "100:200,300 ", UIDSetProd)
	want := []imap.NumRange{{Start: 100, Stop: 200}, {Start: 300, Stop: 300}}
	if len(got.Set) != len(want) {
		t.Fatalf("UIDSetProd = %+v, want %+v", got.Set, want)
	}
	for i := range got.Set {
		if got.Set[i] != want[i] {
			t.Errorf("UIDSetProd.Set[%d] = %+v, want %+v", i, got.Set[i], want[i])
		}
	}
}

func TestPartialRange(t *testing.T) {
	got := mustOk(t, "<0.512>", PartialRange)
	want := imap.RangePartial{Offset: 0, Length: 512}
	if got != want {
		t.Errorf("PartialRange(<0.512>) = %+v, want %+v", got, want)
	}
}

func TestPartialRange_InvalidZeroLength(t *testing.T) {
	out := parseFull("<0.0>", PartialRange)
	if !out.IsFatal() {
		t.Fatalf("PartialRange(<0.0>) status=%v, want Fatal", out.Status)
	}
	var perrErr *perr.Error
	if !errors.As(out.Err, &perrErr) {
		t.Fatalf("PartialRange(<0.0>) err = %v, want *perr.Error", out.Err)
	}
	if perrErr.Kind != perr.MalformedInput {
		t.Errorf("PartialRange(<0.0>) Kind = %v, want MalformedInput", perrErr.Kind)
	}
}

func TestPartialRange_OverflowUpperBound(t *testing.T) {
	out := parseFull("<4294967295.2>", PartialRange)
	if !out.IsFatal() {
		t.Fatalf("PartialRange(<4294967295.2>) status=%v, want Fatal", out.Status)
	}
	var perrErr *perr.Error
	if !errors.As(out.Err, &perrErr) {
		t.Fatalf("PartialRange(<4294967295.2>) err = %v, want *perr.Error", out.Err)
	}
	if perrErr.Kind != perr.MalformedInput {
		t.Errorf("PartialRange(<4294967295.2>) Kind = %v, want MalformedInput", perrErr.Kind)
	}
}
