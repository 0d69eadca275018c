package ui

import "testing"

func TestTruncate(t *testing.T) {
	cases := []struct {
		in    string
		width int
		want  string
	}{
		{"short", 10, "short"},
		{"exactly10!", 10, "exactly10!"},
		{"this is too long", 10, "this is t…"},
		{"anything", 0, ""},
		{"ab", 1, "…"},
	}
	for _, c := range cases {
		if got := Truncate(c.in, c.width); got != c.want {
			t.Errorf("Truncate(%q, %d) = %q, want %q", c.in, c.width, got, c.want)
		}
	}
}

func TestPadRight(t *testing.T) {
	if got := PadRight("ab", 5); got != "ab   " {
		t.Errorf("PadRight short = %q", got)
	}
	if got := PadRight("abcdef", 5); got != "abcd…" {
		t.Errorf("PadRight long should truncate first, got %q", got)
	}
	if got := len(PadRight("located", 13)); got != 13 {
		t.Errorf("PadRight should yield exactly the target width, got %d", got)
	}
}
