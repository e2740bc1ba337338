package parse

import (
	"testing"

	imap "github.com/meszmate/imap-go"
	"github.com/meszmate/imap-go/cursor"
)

func TestFlag(t *testing.T) {
	tests := []struct {
		input string
		want  imap.Flag
	}{
		{`\Seen`, imap.FlagSeen},
		{`\Answered`, imap.FlagAnswered},
		{`\Deleted`, imap.FlagDeleted},
		{`\Flagged`, imap.FlagFlagged},
		{`\Draft`, imap.FlagDraft},
		{`\Extension`, imap.Flag(`\Extension`)},
		{"Keyword", imap.Flag("Keyword")},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got := mustOk(t, tt.input+" ", Flag)
			if got != tt.want {
				t.Errorf("Flag(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestPermanentFlag_Wildcard(t *testing.T) {
	got := mustOk(t, `\*`, PermanentFlag)
	if got != imap.FlagWildcard {
		t.Errorf("PermanentFlag(\\*) = %q, want wildcard", got)
	}
}

func TestFlagList(t *testing.T) {
	tests := []struct {
		input string
		want  []imap.Flag
	}{
		{"()", nil},
		{`(\Seen)`, []imap.Flag{imap.FlagSeen}},
		{`(\Answered \Flagged \Deleted \Seen \Draft)`, []imap.Flag{
			imap.FlagAnswered, imap.FlagFlagged, imap.FlagDeleted, imap.FlagSeen, imap.FlagDraft,
		}},
		{`(\Seen Keyword1 Keyword2)`, []imap.Flag{imap.FlagSeen, "Keyword1", "Keyword2"}},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got := mustOk(t, tt.input, FlagList)
			if len(got) != len(tt.want) {
				t.Fatalf("FlagList(%q) = %v, want %v", tt.input, got, tt.want)
			}
			for i := range got {
				if got[i] != tt.want[i] {
					t.Errorf("FlagList(%q)[%d] = %q, want %q", tt.input, i, got[i], tt.want[i])
				}
			}
		})
	}
}

// A flag list that is cut off mid-flag must report Incomplete, not a
// grammar mismatch, so a streaming caller knows to wait for more bytes
// rather than give up on the line.
func TestFlagList_IncompleteRewindsCursor(t *testing.T) {
	c := cursor.NewFromBytes([]byte(`(\Seen \Fla`), cursor.Limits{})
	tr := cursor.NewTracker(0)
	start := c.Offset()

	out := FlagList(c, tr)
	if !out.IsIncomplete() {
		t.Fatalf("FlagList(%q) status = %v, want Incomplete", `(\Seen \Fla`, out.Status)
	}
	if c.Offset() != start {
		t.Errorf("cursor offset moved from %d to %d on Incomplete", start, c.Offset())
	}

	// Once the rest of the line arrives, the same cursor picks up from
	// the same offset and completes.
	c.Append([]byte("gged)"))
	out = FlagList(c, tr)
	if !out.IsOk() {
		t.Fatalf("FlagList after Append: status=%v err=%v", out.Status, out.Err)
	}
	want := []imap.Flag{imap.FlagSeen, imap.FlagFlagged}
	if len(out.Value) != len(want) || out.Value[0] != want[0] || out.Value[1] != want[1] {
		t.Errorf("FlagList after Append = %v, want %v", out.Value, want)
	}
}

func TestPermanentFlagList_MixesWildcardAndFlags(t *testing.T) {
	got := mustOk(t, `(\Seen \Flagged \*)`, PermanentFlagList)
	want := []imap.Flag{imap.FlagSeen, imap.FlagFlagged, imap.FlagWildcard}
	if len(got) != len(want) {
		t.Fatalf("PermanentFlagList = %v, want %v", got, want)
	}
	for i := range got {
		if got[i] != want[i] {
			t.Errorf("PermanentFlagList[%d] = %q, want %q", i, got[i], want[i])
		}
	}
}
