// =============================================================================
// International Shipment Splitter - Declared Value Reconciliation
// =============================================================================
//
// Customs declared values must equal quantity times unit price. Manifests
// filled in by hand routinely get this wrong, so this is a correction
// engine, not a detection-only validator: mismatched values are overwritten
// with the computed amount and the correction is recorded as a warning.
// After reconciliation every row satisfies the tolerance invariant.
//
// Rows are reconciled independently; commodity lines sharing a reference
// number are never summed.
//
// =============================================================================

package reconcile

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/silverscreenprint/shipsplit/internal/issue"
	"github.com/silverscreenprint/shipsplit/internal/manifest"
)

// Tolerance is the maximum absolute difference between the declared value
// and quantity x unit price that is accepted without correction.
const Tolerance = 0.01

// DeclaredValues recomputes the declared value of every row and overwrites
// values off by more than Tolerance. Returns one warning per correction,
// and one warning per row whose numeric fields cannot be parsed (those rows
// are left untouched).
func DeclaredValues(t *manifest.Table) []issue.Issue {
	var issues []issue.Issue

	for i := 0; i < t.RowCount(); i++ {
		ref := t.Value(i, manifest.ColReference)
		row := manifest.SpreadsheetRow(i)

		qty, err := parseNumber(t.Value(i, manifest.ColQuantity))
		if err != nil {
			issues = append(issues, unparseable(ref, row, manifest.ColQuantity, err))
			continue
		}
		price, err := parseNumber(t.Value(i, manifest.ColUnitPrice))
		if err != nil {
			issues = append(issues, unparseable(ref, row, manifest.ColUnitPrice, err))
			continue
		}
		declared, err := parseNumber(t.Value(i, manifest.ColDeclaredValue))
		if err != nil {
			issues = append(issues, unparseable(ref, row, manifest.ColDeclaredValue, err))
			continue
		}

		expected := qty * price
		if math.Abs(declared-expected) <= Tolerance {
			continue
		}

		t.SetValue(i, manifest.ColDeclaredValue, fmt.Sprintf("%.2f", expected))
		issues = append(issues, issue.Issue{
			Severity: issue.SeverityWarning,
			Ref:      ref,
			Row:      row,
			Message:  fmt.Sprintf("Declared value corrected %.2f -> %.2f", declared, expected),
		})
	}

	return issues
}

func unparseable(ref string, row int, field string, err error) issue.Issue {
	return issue.Issue{
		Severity: issue.SeverityWarning,
		Ref:      ref,
		Row:      row,
		Message:  fmt.Sprintf("Cannot verify declared value: %s: %v", field, err),
	}
}

// parseNumber parses a manifest numeric cell. Currency symbols and
// thousands separators show up in hand-edited files and are stripped
// before parsing.
func parseNumber(s string) (float64, error) {
	clean := strings.TrimSpace(s)
	clean = strings.ReplaceAll(clean, "$", "")
	clean = strings.ReplaceAll(clean, ",", "")
	if clean == "" {
		return 0, fmt.Errorf("empty numeric field")
	}
	v, err := strconv.ParseFloat(clean, 64)
	if err != nil {
		return 0, fmt.Errorf("not a number: %q", s)
	}
	return v, nil
}
