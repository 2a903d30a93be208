package google

import "testing"

func TestToStrings(t *testing.T) {
	got := toStrings([]any{"  a ", 12.5, true, nil})
	want := []string{"a", "12.5", "true", ""}
	if len(got) != len(want) {
		t.Fatalf("len: got %d", len(got))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("cell %d: got %q, want %q", i, got[i], want[i])
		}
	}
}

func TestCredKey(t *testing.T) {
	a := credKey("token-a")
	b := credKey("token-b")
	if a == b {
		t.Fatal("distinct tokens collide")
	}
	if a != credKey("token-a") {
		t.Fatal("key not stable")
	}
	// The raw token must never appear in the key.
	if a == "token-a" || len(a) != 64 {
		t.Fatalf("unexpected key %q", a)
	}
}
