package parse

import "testing"

func TestIDResponse_Nil(t *testing.T) {
	got := mustOk(t, "ID NIL", IDResponse)
	if got != nil {
		t.Errorf("IDResponse(NIL) = %v, want nil", got)
	}
}

func TestIDResponse_Params(t *testing.T) {
	got := mustOk(t, `ID ("name" "My Client" "version" "1.0")`, IDResponse)
	if len(got) != 2 {
		t.Fatalf("IDResponse = %+v, want 2 entries", got)
	}
	v, ok := got["name"]
	if !ok || v == nil || *v != "My Client" {
		t.Errorf(`got["name"] = %v, want "My Client"`, v)
	}
}

func TestIDResponse_EmptyParens(t *testing.T) {
	got := mustOk(t, "ID ()", IDResponse)
	if len(got) != 0 {
		t.Errorf("IDResponse() = %+v, want empty", got)
	}
}
