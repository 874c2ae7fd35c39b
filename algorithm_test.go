// SPDX-License-Identifier: MIT

package treebuffer

import "testing"

func TestParseAlgorithmExactNames(t *testing.T) {
	cases := map[string]Algorithm{
		"naive":     Naive,
		"gc":        Mark,
		"amortized": Amortized,
		"real-time": RealTime,
	}
	for s, want := range cases {
		got, err := ParseAlgorithm(s)
		if err != nil {
			t.Fatalf("ParseAlgorithm(%q) error: %s", s, err)
		}
		if got != want {
			t.Fatalf("ParseAlgorithm(%q) = %v, want %v", s, got, want)
		}
	}
}

func TestParseAlgorithmUniquePrefix(t *testing.T) {
	cases := map[string]Algorithm{
		"n":  Naive,
		"g":  Mark,
		"am": Amortized,
		"r":  RealTime,
	}
	for s, want := range cases {
		got, err := ParseAlgorithm(s)
		if err != nil {
			t.Fatalf("ParseAlgorithm(%q) error: %s", s, err)
		}
		if got != want {
			t.Fatalf("ParseAlgorithm(%q) = %v, want %v", s, got, want)
		}
	}
}

func TestParseAlgorithmUnknown(t *testing.T) {
	for _, s := range []string{"x", "", "zzz"} {
		if _, err := ParseAlgorithm(s); err == nil {
			t.Fatalf("ParseAlgorithm(%q) should have failed", s)
		}
	}
}

func TestAlgorithmStringRoundTrips(t *testing.T) {
	for _, a := range []Algorithm{Naive, Mark, Amortized, RealTime} {
		got, err := ParseAlgorithm(a.String())
		if err != nil {
			t.Fatalf("ParseAlgorithm(%q) error: %s", a.String(), err)
		}
		if got != a {
			t.Fatalf("round trip through String() changed algorithm: %v != %v", got, a)
		}
	}
}
