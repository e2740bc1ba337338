package parse

import "testing"

func TestNamespaceResponse(t *testing.T) {
	got := mustOk(t, `NAMESPACE (("" "/")) NIL NIL`, NamespaceResponse)
	if len(got.Personal) != 1 {
		t.Fatalf("Personal = %+v, want 1 descriptor", got.Personal)
	}
	if got.Personal[0].Delim != '/' {
		t.Errorf("Delim = %q, want '/'", got.Personal[0].Delim)
	}
	if got.Other != nil || got.Shared != nil {
		t.Errorf("Other/Shared = %+v/%+v, want nil/nil", got.Other, got.Shared)
	}
}

func TestNamespaceResponse_WithExtension(t *testing.T) {
	got := mustOk(t, `NAMESPACE (("#mh/" "/" "X-PARAM" ("FLAG1" "FLAG2"))) NIL NIL`, NamespaceResponse)
	if len(got.Personal) != 1 {
		t.Fatalf("Personal = %+v, want 1 descriptor", got.Personal)
	}
	exts := got.Personal[0].Extensions
	if len(exts) != 1 || exts[0].Name != "X-PARAM" {
		t.Fatalf("Extensions = %+v, want one X-PARAM entry", exts)
	}
	if len(exts[0].Values) != 2 || exts[0].Values[1] != "FLAG2" {
		t.Errorf("Extensions[0].Values = %v, want [FLAG1 FLAG2]", exts[0].Values)
	}
}
