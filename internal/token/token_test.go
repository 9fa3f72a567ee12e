package token

import (
	"strings"
	"testing"
)

func TestNewFormat(t *testing.T) {
	tok, err := New()
	if err != nil {
		t.Fatal(err)
	}
	if len(tok) != Bytes*2 {
		t.Errorf("token length = %d, want %d hex chars", len(tok), Bytes*2)
	}
	if tok != strings.ToUpper(tok) {
		t.Errorf("token %q is not uppercase", tok)
	}
	for _, r := range tok {
		if !strings.ContainsRune("0123456789ABCDEF", r) {
			t.Fatalf("token %q contains non-hex rune %q", tok, r)
		}
	}
}

func TestNewIsRandom(t *testing.T) {
	a, err := New()
	if err != nil {
		t.Fatal(err)
	}
	b, err := New()
	if err != nil {
		t.Fatal(err)
	}
	if a == b {
		t.Errorf("two generated tokens are identical: %q", a)
	}
}
