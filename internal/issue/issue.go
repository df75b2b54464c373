// =============================================================================
// International Shipment Splitter - Issues and Validation Report
// =============================================================================
//
// This package defines the data-quality issue model shared by the cleaning,
// reconciliation, and validation steps, plus the validation report written
// at the end of a run. It sits below the other internal packages to avoid
// import cycles.
//
// Issues are produced, never mutated. Errors and warnings are kept in two
// ordered sequences; neither aborts a run. Structural failures (unreadable
// input, wrong column count) are ordinary Go errors and never become issues.
//
// =============================================================================

package issue

import (
	"fmt"
	"strings"
)

// Severity classifies an issue as an error or a warning.
type Severity string

const (
	// SeverityError marks data-quality problems the operator must fix
	// before import, such as a missing required address field.
	SeverityError Severity = "error"

	// SeverityWarning marks degraded-but-corrected conditions, such as an
	// unknown country name or an overwritten declared value.
	SeverityWarning Severity = "warning"
)

// Issue is a single data-quality finding tied to a shipment reference.
type Issue struct {
	// Severity is error or warning.
	Severity Severity

	// Ref is the reference number of the shipment the issue belongs to.
	Ref string

	// Row is the spreadsheet row the issue was found on (1-based, counting
	// the header as row 1). Zero when the issue applies to the whole
	// reference rather than a single row.
	Row int

	// Message is the human-readable description. It names the offending
	// field or the correction that was applied.
	Message string
}

// String renders the issue the way it appears in the validation report.
func (i Issue) String() string {
	if i.Row > 0 {
		return fmt.Sprintf("Ref#%s Row%d: %s", i.Ref, i.Row, i.Message)
	}
	return fmt.Sprintf("Ref#%s: %s", i.Ref, i.Message)
}

// =============================================================================
// REPORT
// =============================================================================

// Report is the read-only summary of one pipeline run. It is frozen when the
// pipeline reaches its terminal success state and rendered to plain text.
type Report struct {
	// RunID identifies the pipeline run that produced this report.
	RunID string

	// InputFile is the path of the manifest that was processed.
	InputFile string

	// TotalRows is the number of data rows in the input.
	TotalRows int

	// UniqueRefs is the number of distinct reference numbers, i.e. the
	// number of recipients.
	UniqueRefs int

	// Errors and Warnings are the accumulated issue sequences, in the
	// order they were found.
	Errors   []Issue
	Warnings []Issue
}

// ReviewRequired reports whether the run produced any errors or warnings.
// Output files are still written either way; this only flags the report
// for operator attention.
func (r *Report) ReviewRequired() bool {
	return len(r.Errors) > 0 || len(r.Warnings) > 0
}

const rule = "======================================================================"
const thinRule = "----------------------------------------------------------------------"

// Render produces the plain-text validation report.
func (r *Report) Render() string {
	var b strings.Builder

	b.WriteString(rule + "\n")
	b.WriteString("International Shipment Splitter - Validation Report\n")
	b.WriteString(rule + "\n\n")

	fmt.Fprintf(&b, "Run ID: %s\n", r.RunID)
	fmt.Fprintf(&b, "Input File: %s\n", r.InputFile)
	fmt.Fprintf(&b, "Total Rows Processed: %d\n", r.TotalRows)
	fmt.Fprintf(&b, "Unique Recipients: %d\n\n", r.UniqueRefs)

	if len(r.Errors) > 0 {
		fmt.Fprintf(&b, "ERRORS (%d):\n", len(r.Errors))
		b.WriteString(thinRule + "\n")
		for _, e := range r.Errors {
			fmt.Fprintf(&b, "  [E] %s\n", e)
		}
		b.WriteString("\n")
	} else {
		b.WriteString("No validation errors found\n\n")
	}

	if len(r.Warnings) > 0 {
		fmt.Fprintf(&b, "WARNINGS (%d):\n", len(r.Warnings))
		b.WriteString(thinRule + "\n")
		for _, w := range r.Warnings {
			fmt.Fprintf(&b, "  [W] %s\n", w)
		}
		b.WriteString("\n")
	} else {
		b.WriteString("No warnings\n\n")
	}

	b.WriteString(rule + "\n")
	b.WriteString("END OF REPORT\n")

	return b.String()
}
