package utils

import "testing"

func TestParsePage(t *testing.T) {
	cases := map[string]int{
		"":    1,
		"abc": 1,
		"0":   1,
		"-3":  1,
		"1":   1,
		"17":  17,
		"2.5": 1,
		" 2":  1,
	}
	for in, want := range cases {
		if got := ParsePage(in); got != want {
			t.Errorf("ParsePage(%q) = %d, want %d", in, got, want)
		}
	}
}

func TestParseLimit(t *testing.T) {
	cases := map[string]int{
		"":    10,
		"abc": 10,
		"0":   10,
		"-1":  10,
		"25":  25,
		"100": 100,
		"500": 100,
	}
	for in, want := range cases {
		if got := ParseLimit(in); got != want {
			t.Errorf("ParseLimit(%q) = %d, want %d", in, got, want)
		}
	}
}
