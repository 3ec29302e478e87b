package excel

import "testing"

func TestColumnToIndex(t *testing.T) {
	for column, want := range map[string]int{
		"A":  0,
		"B":  1,
		"Z":  25,
		"AA": 26,
		"AB": 27,
		"a":  0,
	} {
		if got := columnToIndex(column); got != want {
			t.Errorf("columnToIndex(%q) = %d, want %d", column, got, want)
		}
	}
}

func TestCell(t *testing.T) {
	row := []string{" алма ", "apple"}

	if got := cell(row, "A"); got != "алма" {
		t.Errorf("expected trimmed value, got %q", got)
	}
	if got := cell(row, "B"); got != "apple" {
		t.Errorf("expected apple, got %q", got)
	}
	if got := cell(row, "C"); got != "" {
		t.Errorf("out-of-range column should be empty, got %q", got)
	}
	if got := cell(row, ""); got != "" {
		t.Errorf("unset column should be empty, got %q", got)
	}
}

func TestParseIntOrDefault(t *testing.T) {
	for _, tc := range []struct {
		input string
		want  int
	}{
		{"3", 3},
		{"1", 1},
		{"5", 5},
		{"0", 1},  // clamp to min
		{"9", 5},  // clamp to max
		{"", 3},   // default
		{"x", 3},  // default
	} {
		if got := parseIntOrDefault(tc.input, 1, 5, 3); got != tc.want {
			t.Errorf("parseIntOrDefault(%q) = %d, want %d", tc.input, got, tc.want)
		}
	}
}
