package models

import "testing"

func TestFormatHostelSeq(t *testing.T) {
	cases := []struct {
		n    int
		want string
	}{
		{1, "01"},
		{9, "09"},
		{10, "10"},
		{42, "42"},
		{100, "100"}, // padding never truncates
	}
	for _, c := range cases {
		if got := FormatHostelSeq(c.n); got != c.want {
			t.Errorf("FormatHostelSeq(%d) = %q, want %q", c.n, got, c.want)
		}
	}
}

func TestFormatStudentSeq(t *testing.T) {
	cases := []struct {
		n    int
		want string
	}{
		{1, "0001"},
		{99, "0099"},
		{1000, "1000"},
		{10000, "10000"},
	}
	for _, c := range cases {
		if got := FormatStudentSeq(c.n); got != c.want {
			t.Errorf("FormatStudentSeq(%d) = %q, want %q", c.n, got, c.want)
		}
	}
}

func TestCombinedID(t *testing.T) {
	if got := CombinedID("02", "0013"); got != "02/0013" {
		t.Errorf("CombinedID = %q, want 02/0013", got)
	}
}
