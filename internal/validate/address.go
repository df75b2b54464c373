// =============================================================================
// International Shipment Splitter - Address Validation
// =============================================================================
//
// Recipient address completeness checks. Every failure is collected as an
// error-severity issue; nothing here aborts a run. Validation happens once
// per unique reference number against the first row bearing that reference,
// because commodity rows of one shipment are expected to repeat the same
// address block.
//
// =============================================================================

package validate

import (
	"fmt"

	"github.com/silverscreenprint/shipsplit/internal/countries"
	"github.com/silverscreenprint/shipsplit/internal/issue"
	"github.com/silverscreenprint/shipsplit/internal/manifest"
)

// RequiredFields are the address and contact fields a shipment cannot be
// labeled without. Each empty field yields one error naming it.
var RequiredFields = []string{
	manifest.ColAttention,
	manifest.ColAddress1,
	manifest.ColCity,
	manifest.ColCountry,
	manifest.ColPostal,
	manifest.ColPhone,
}

// Address checks the required recipient fields of one record. All failures
// are collected, not short-circuited; a complete record yields nil.
func Address(rec manifest.Record, ref string) []issue.Issue {
	var issues []issue.Issue

	for _, field := range RequiredFields {
		if missing(field, rec.Get(field)) {
			issues = append(issues, issue.Issue{
				Severity: issue.SeverityError,
				Ref:      ref,
				Message:  fmt.Sprintf("Missing required field: %s", field),
			})
		}
	}

	return issues
}

// missing reports whether a required field value counts as absent. Country
// standardization runs before validation and rewrites empty country fields
// to the "XX" placeholder, so that placeholder counts as missing here.
func missing(field, value string) bool {
	if value == "" {
		return true
	}
	return field == manifest.ColCountry && value == countries.Unknown
}

// ReferenceConsistency warns when rows sharing a reference number disagree
// on a required address field. The first row per reference is authoritative
// (it is the one Address validates); later rows are only compared, never
// corrected. Off by default, enabled via strict_reference_check.
func ReferenceConsistency(t *manifest.Table) []issue.Issue {
	var issues []issue.Issue
	first := make(map[string]int)

	for i := 0; i < t.RowCount(); i++ {
		ref := t.Value(i, manifest.ColReference)
		base, seen := first[ref]
		if !seen {
			first[ref] = i
			continue
		}

		for _, field := range RequiredFields {
			if t.Value(i, field) != t.Value(base, field) {
				issues = append(issues, issue.Issue{
					Severity: issue.SeverityWarning,
					Ref:      ref,
					Row:      manifest.SpreadsheetRow(i),
					Message:  fmt.Sprintf("Field %q differs from first row of this reference", field),
				})
			}
		}
	}

	return issues
}
