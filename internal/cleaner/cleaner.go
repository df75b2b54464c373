// =============================================================================
// International Shipment Splitter - Field Cleaning
// =============================================================================
//
// This package provides pure, stateless cleaning functions for manifest
// fields. The target format is a flat delimited file consumed by a legacy
// import tool that cannot tolerate embedded commas, line breaks, or
// irregular whitespace, so everything here scrubs toward that format.
//
// All functions are total: they never fail, and empty input maps to an
// empty string. Text cleaning is idempotent.
//
// =============================================================================

package cleaner

import (
	"regexp"
	"strings"
)

var whitespaceRun = regexp.MustCompile(`\s+`)

var breakReplacer = strings.NewReplacer("\r\n", " ", "\n", " ", "\r", " ", "\t", " ")

// Text cleans a free-text field for delimited output: commas are dropped,
// line breaks and tabs become single spaces, runs of whitespace collapse to
// one space, and the result is trimmed.
func Text(s string) string {
	s = strings.ReplaceAll(s, ",", "")
	s = breakReplacer.Replace(s)
	s = whitespaceRun.ReplaceAllString(s, " ")
	return strings.TrimSpace(s)
}

// Phone reduces a phone number to digits plus an optional leading "+".
// Everything else (spaces, dashes, parentheses, extensions text) is dropped.
func Phone(s string) string {
	s = strings.TrimSpace(s)
	if s == "" {
		return ""
	}

	plus := strings.HasPrefix(s, "+")

	var b strings.Builder
	for _, r := range s {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}

	digits := b.String()
	if digits == "" {
		return ""
	}
	if plus {
		return "+" + digits
	}
	return digits
}

// Postal uppercases a postal code, trims it, and collapses internal
// whitespace runs to a single space. "  n1  2ab " becomes "N1 2AB".
func Postal(s string) string {
	s = strings.ToUpper(strings.TrimSpace(s))
	return whitespaceRun.ReplaceAllString(s, " ")
}
