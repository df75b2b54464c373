package countries

import (
	"testing"
	"unicode/utf8"
)

func TestStandardizeTwoLetterPassthrough(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"US", "US"},
		{"gb", "GB"},
		{" de ", "DE"},
		{"ZZ", "ZZ"}, // no existence check against a real ISO list
	}

	for _, tt := range tests {
		got, match := Standardize(tt.in)
		if got != tt.want {
			t.Errorf("Standardize(%q) = %q, want %q", tt.in, got, tt.want)
		}
		if match != MatchCode {
			t.Errorf("Standardize(%q) match = %v, want MatchCode", tt.in, match)
		}
	}
}

func TestStandardizeAliases(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"United Kingdom", "GB"},
		{"UK", "GB"},
		{"England", "GB"},
		{"Scotland", "GB"},
		{"Wales", "GB"},
		{"Northern Ireland", "GB"},
		{"Holland", "NL"},
		{"UAE", "AE"},
		{"Dubai", "AE"},
		{"united states", "US"},
		{"  FRANCE  ", "FR"},
		{"Korea", "KR"},
	}

	for _, tt := range tests {
		got, match := Standardize(tt.in)
		if got != tt.want {
			t.Errorf("Standardize(%q) = %q, want %q", tt.in, got, tt.want)
		}
		if match != MatchAlias {
			t.Errorf("Standardize(%q) match = %v, want MatchAlias", tt.in, match)
		}
	}
}

func TestStandardizeEmpty(t *testing.T) {
	for _, in := range []string{"", "   ", "\t"} {
		got, match := Standardize(in)
		if got != Unknown {
			t.Errorf("Standardize(%q) = %q, want %q", in, got, Unknown)
		}
		if match != MatchEmpty {
			t.Errorf("Standardize(%q) match = %v, want MatchEmpty", in, match)
		}
	}
}

func TestStandardizeUnknownGuess(t *testing.T) {
	got, match := Standardize("Atlantis")
	if got != "AT" {
		t.Errorf("Standardize(Atlantis) = %q, want %q", got, "AT")
	}
	if match != MatchGuess {
		t.Errorf("Standardize(Atlantis) match = %v, want MatchGuess", match)
	}

	// Multibyte names are sliced by character, not byte.
	got, match = Standardize("Österreich")
	if got != "ÖS" {
		t.Errorf("Standardize(Österreich) = %q, want %q", got, "ÖS")
	}
	if match != MatchGuess {
		t.Errorf("Standardize(Österreich) match = %v, want MatchGuess", match)
	}
	if n := utf8.RuneCountInString(got); n != 2 {
		t.Errorf("Standardize(Österreich) = %q: %d characters, want 2", got, n)
	}

	// Single character: too short to guess from.
	got, match = Standardize("X")
	if got != Unknown {
		t.Errorf("Standardize(X) = %q, want %q", got, Unknown)
	}
	if match != MatchGuess {
		t.Errorf("Standardize(X) match = %v, want MatchGuess", match)
	}
}

func TestStandardizeWithExtensions(t *testing.T) {
	extra := map[string]string{"NARNIA": "NR"}

	got, match := StandardizeWith("narnia", extra)
	if got != "NR" || match != MatchAlias {
		t.Errorf("StandardizeWith(narnia) = %q/%v, want NR/MatchAlias", got, match)
	}

	// Built-in aliases win over extensions.
	shadow := map[string]string{"HOLLAND": "XX"}
	got, _ = StandardizeWith("Holland", shadow)
	if got != "NL" {
		t.Errorf("StandardizeWith(Holland) with shadow = %q, want NL", got)
	}
}

func TestIsDocumentedAlias(t *testing.T) {
	if !IsDocumentedAlias("holland") {
		t.Error("IsDocumentedAlias(holland) = false, want true")
	}
	if IsDocumentedAlias("narnia") {
		t.Error("IsDocumentedAlias(narnia) = true, want false")
	}
}
