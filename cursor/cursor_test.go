package cursor

import "testing"

func TestByteCursor_ReadFixed(t *testing.T) {
	tests := []struct {
		name          string
		input         string
		needle        string
		caseSensitive bool
		wantStatus    Status
		wantOffset    int64
	}{
		{"exact match", "OK more", "OK", true, StatusOk, 2},
		{"case mismatch sensitive", "ok more", "OK", true, StatusRecoverable, 0},
		{"case match insensitive", "ok more", "OK", false, StatusOk, 2},
		{"short input mid-needle", "O", "OK", true, StatusIncomplete, 0},
		{"mismatch at first byte", "NO", "OK", true, StatusRecoverable, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := NewFromBytes([]byte(tt.input), Limits{})
			o := c.ReadFixed([]byte(tt.needle), tt.caseSensitive)
			if o.Status != tt.wantStatus {
				t.Fatalf("status = %v, want %v", o.Status, tt.wantStatus)
			}
			if c.Offset() != tt.wantOffset {
				t.Fatalf("offset = %d, want %d", c.Offset(), tt.wantOffset)
			}
		})
	}
}

func TestByteCursor_SaveRestore(t *testing.T) {
	c := NewFromBytes([]byte("abcdef"), Limits{})
	_, _ = c.ReadN(3).Value, error(nil)
	m := c.Save()
	if c.Offset() != 3 {
		t.Fatalf("offset = %d, want 3", c.Offset())
	}
	c.ReadN(2)
	if c.Offset() != 5 {
		t.Fatalf("offset = %d, want 5", c.Offset())
	}
	c.Restore(m)
	if c.Offset() != 3 {
		t.Fatalf("after restore offset = %d, want 3", c.Offset())
	}
}

func TestByteCursor_Incomplete_NeverDoubleConsumes(t *testing.T) {
	c := NewFromBytes([]byte("ab"), Limits{})
	o := c.ReadN(5)
	if !o.IsIncomplete() {
		t.Fatalf("expected Incomplete, got %v", o.Status)
	}
	if c.Offset() != 0 {
		t.Fatalf("offset moved on Incomplete: %d", c.Offset())
	}
	c.Append([]byte("cde"))
	o = c.ReadN(5)
	if !o.IsOk() {
		t.Fatalf("expected Ok after append, got %v", o.Status)
	}
	if string(o.Value) != "abcde" {
		t.Fatalf("got %q", o.Value)
	}
}

func TestByteCursor_ReadWhile(t *testing.T) {
	isDigit := func(b byte) bool { return b >= '0' && b <= '9' }

	c := NewFromBytes([]byte("123abc"), Limits{})
	o := c.ReadWhile(isDigit)
	if !o.IsOk() || string(o.Value) != "123" {
		t.Fatalf("got %+v", o)
	}
	if c.Offset() != 3 {
		t.Fatalf("offset = %d, want 3", c.Offset())
	}

	// All-digit input with nothing else buffered yet is Incomplete: the
	// run might continue once more bytes arrive.
	c2 := NewFromBytes([]byte("123"), Limits{})
	o2 := c2.ReadWhile(isDigit)
	if !o2.IsIncomplete() {
		t.Fatalf("expected Incomplete, got %v", o2.Status)
	}
	if c2.Offset() != 0 {
		t.Fatalf("offset moved on Incomplete ReadWhile: %d", c2.Offset())
	}
}

func TestByteCursor_ParseNewline(t *testing.T) {
	tests := []struct {
		name       string
		input      string
		wantStatus Status
		wantOffset int64
	}{
		{"crlf", "\r\nrest", StatusOk, 2},
		{"bare lf", "\nrest", StatusOk, 1},
		{"space then crlf tolerance", " \r\nrest", StatusOk, 3},
		{"not a newline", "Xrest", StatusRecoverable, 0},
		{"cr without lf", "\rX", StatusRecoverable, 0},
		{"incomplete after cr", "\r", StatusIncomplete, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := NewFromBytes([]byte(tt.input), Limits{})
			o := c.ParseNewline()
			if o.Status != tt.wantStatus {
				t.Fatalf("status = %v, want %v", o.Status, tt.wantStatus)
			}
			if c.Offset() != tt.wantOffset {
				t.Fatalf("offset = %d, want %d", c.Offset(), tt.wantOffset)
			}
		})
	}
}

func TestByteCursor_Compact(t *testing.T) {
	c := NewFromBytes([]byte("abcdef"), Limits{})
	c.ReadN(4)
	c.Compact()
	if c.Offset() != 0 {
		t.Fatalf("offset after compact = %d, want 0", c.Offset())
	}
	if c.Len() != 2 {
		t.Fatalf("len after compact = %d, want 2", c.Len())
	}
	o := c.ReadN(2)
	if !o.IsOk() || string(o.Value) != "ef" {
		t.Fatalf("got %+v", o)
	}
}

func TestByteCursor_CheckLiteralSize(t *testing.T) {
	c := New(Limits{LiteralSize: 10})
	if err := c.CheckLiteralSize(10); err != nil {
		t.Fatalf("unexpected error at exactly the limit: %v", err)
	}
	if err := c.CheckLiteralSize(11); err == nil {
		t.Fatal("expected error exceeding limit")
	}
}
