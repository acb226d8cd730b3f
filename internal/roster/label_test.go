package roster

import "testing"

func TestParseClassLabel(t *testing.T) {
	cases := []struct {
		label  string
		branch string
		sem    int
		sec    string
		ok     bool
	}{
		{"CS - 6A", "CS", 6, "A", true},
		{"IS - 4B", "IS", 4, "B", true},
		{"ME - 2A", "ME", 2, "A", true},
		{"EC - 8C", "EC", 8, "C", true},
		// malformed labels all fall back to the CS/6/A default
		{"garbage", "CS", 6, "A", false},
		{"", "CS", 6, "A", false},
		{"CS-6A", "CS", 6, "A", false},    // wrong separator
		{" - 6A", "CS", 6, "A", false},    // empty branch
		{"CS - ", "CS", 6, "A", false},    // empty group
		{"CS - A6", "CS", 6, "A", false},  // no leading digit
		{"CS - 6", "CS", 6, "A", false},   // missing section letter
	}
	for _, tc := range cases {
		branch, sem, sec, ok := ParseClassLabel(tc.label)
		if branch != tc.branch || sem != tc.sem || sec != tc.sec || ok != tc.ok {
			t.Fatalf("ParseClassLabel(%q) = %s/%d/%s ok=%v, want %s/%d/%s ok=%v",
				tc.label, branch, sem, sec, ok, tc.branch, tc.sem, tc.sec, tc.ok)
		}
	}
}
