package fluxcrystal

import "testing"

func TestNewNonce_UniqueAndSortable(t *testing.T) {
	a := NewNonce()
	b := NewNonce()
	if a == b {
		t.Fatalf("expected distinct nonces, got %q twice", a)
	}
	if len(a) != 26 || len(b) != 26 {
		t.Fatalf("expected 26-character ULIDs, got lengths %d and %d", len(a), len(b))
	}
	if a >= b {
		t.Fatalf("expected monotonically increasing nonces: %q then %q", a, b)
	}
}
