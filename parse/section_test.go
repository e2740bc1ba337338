package parse

import (
	"reflect"
	"testing"

	imap "github.com/meszmate/imap-go"
)

func TestSection(t *testing.T) {
	tests := []struct {
		input string
		want  imap.BodySectionName
	}{
		{"[]", imap.BodySectionName{}},
		{"[HEADER]", imap.BodySectionName{Specifier: "HEADER"}},
		{"[TEXT]", imap.BodySectionName{Specifier: "TEXT"}},
		{"[1.2.MIME]", imap.BodySectionName{Part: []int{1, 2}, Specifier: "MIME"}},
		{"[1]", imap.BodySectionName{Part: []int{1}}},
		{
			"[HEADER.FIELDS (FROM TO)]",
			imap.BodySectionName{Specifier: "HEADER.FIELDS", Fields: []string{"FROM", "TO"}},
		},
		{
			"[HEADER.FIELDS.NOT (RECEIVED)]",
			imap.BodySectionName{Specifier: "HEADER.FIELDS.NOT", Fields: []string{"RECEIVED"}, NotFields: true},
		},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got := mustOk(t, tt.input, Section)
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("Section(%q) = %+v, want %+v", tt.input, got, tt.want)
			}
		})
	}
}

// The ordering inside sectionKind must try HEADER.FIELDS.NOT before
// HEADER.FIELDS before bare HEADER; a wrong order would make the "NOT"
// or the field list spuriously swallowed by a shorter, earlier match.
func TestSection_OrderingDisambiguatesSharedPrefixes(t *testing.T) {
	got := mustOk(t, "[HEADER.FIELDS.NOT (SUBJECT)]", Section)
	if !got.NotFields {
		t.Errorf("Section(HEADER.FIELDS.NOT) misparsed as non-NOT: %+v", got)
	}
	if got.Specifier != "HEADER.FIELDS.NOT" {
		t.Errorf("Specifier = %q, want HEADER.FIELDS.NOT", got.Specifier)
	}
}

func TestPartial(t *testing.T) {
	got := mustOk(t, "<0.1024>", Partial)
	want := imap.SectionPartial{Offset: 0, Count: 1024}
	if got != want {
		t.Errorf("Partial(<0.1024>) = %+v, want %+v", got, want)
	}
}
