package sheets

import "testing"

func TestParseAmount(t *testing.T) {
	cases := []struct {
		in   string
		want float64
	}{
		{"12.34", 12.34},
		{" 12.34 ", 12.34},
		{"0", 0},
		{"-3.5", -3.5},
		{"", 0},
		{"N/A", 0},
		{"12,34", 0}, // decimal comma is not accepted; tolerant zero
		{"abc", 0},
	}
	for _, c := range cases {
		if got := ParseAmount(c.in); got != c.want {
			t.Errorf("ParseAmount(%q) = %v, want %v", c.in, got, c.want)
		}
	}
}

func TestCell(t *testing.T) {
	row := []string{"a", "b"}
	if got := Cell(row, 0); got != "a" {
		t.Fatalf("got %q", got)
	}
	if got := Cell(row, 4); got != "" {
		t.Fatalf("short row: got %q", got)
	}
	if got := Cell(row, -1); got != "" {
		t.Fatalf("negative index: got %q", got)
	}
}

func TestHeaderRowCoversRequiredTabs(t *testing.T) {
	for _, tab := range RequiredTabs() {
		if h := HeaderRow(tab); len(h) == 0 {
			t.Errorf("no header for tab %s", tab)
		}
	}
	if h := HeaderRow("Nope"); h != nil {
		t.Errorf("unexpected header for unknown tab: %v", h)
	}
}
