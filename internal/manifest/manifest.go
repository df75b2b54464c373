// =============================================================================
// International Shipment Splitter - Manifest Table Model
// =============================================================================
//
// This package models the shipment manifest as an in-memory table and loads
// it from CSV or XLSX input. The manifest has a fixed 31-column layout
// (spreadsheet columns A-AE): the first 21 columns describe the recipient
// and third-party billing, the last 10 describe one commodity line. Multiple
// rows share a reference number when one shipment contains multiple
// commodities.
//
// Field access is by header name. The loaders keep whatever headers the
// file carries; only the columns the pipeline touches need to match the
// names below.
//
// =============================================================================

package manifest

import "fmt"

// Column layout. The split boundary is fixed by the carrier's import
// format: columns 0-20 go to the recipient table, 21-30 to the commodity
// table. Anything other than exactly 31 columns is a structural failure.
const (
	NumColumns       = 31
	RecipientColumns = 21
)

// Header names of the columns the pipeline reads or rewrites. The
// parenthetical required/optional markers are part of the header text in
// the upstream template and are matched exactly.
const (
	ColReference     = "REFERENCE # (Recipient 1, 2, etc.)"
	ColAttention     = "SHIP TO ATTENTION (required)"
	ColEmail         = "RECIPIENT EMAIL (if applicable)"
	ColCompany       = "COMPANY NAME (if applicable)"
	ColPhone         = "RECIPIENT PHONE # (required)"
	ColAddress1      = "SHIP TO ADDRESS LINE 1 (required)"
	ColAddress2      = "SHIP TO ADDRESS LINE 2 (if applicable)"
	ColCity          = "CITY (required)"
	ColState         = "STATE / PROVINCE (if applicable)"
	ColPostal        = "POSTAL CODE (required)"
	ColCountry       = "COUNTRY (required)"
	ColBillCompany   = "BILLING - 3RD PARTY COMPANY NAME (required)"
	ColBillAddress1  = "BILLING - 3RD PARTY ADDRESS 1 (required)"
	ColBillAddress2  = "BILLING - 3RD PARTY ADDRESS 2 (if applicable)"
	ColBillCity      = "BILLING - 3RD PARTY CITY (required)"
	ColBillPostal    = "BILLING - 3RD PARTY POSTAL CODE (required)"
	ColDescription   = "ITEM DESCRIPTION (required)"
	ColStyle         = "STYLE # (required)"
	ColQuantity      = "QUANTITY (required)"
	ColUnitPrice     = "UNIT PRICE (required)"
	ColDeclaredValue = "DECLARED VALUE (required)"
)

// TextColumns are the free-text fields scrubbed by cleaner.Text.
var TextColumns = []string{
	ColAttention,
	ColEmail,
	ColCompany,
	ColAddress1,
	ColAddress2,
	ColCity,
	ColState,
	ColBillCompany,
	ColBillAddress1,
	ColBillAddress2,
	ColBillCity,
	ColDescription,
	ColStyle,
}

// PostalColumns are the fields scrubbed by cleaner.Postal.
var PostalColumns = []string{ColPostal, ColBillPostal}

// =============================================================================
// TABLE
// =============================================================================

// Table is an ordered sequence of manifest rows sharing one column schema.
// All entities are built fresh per pipeline run; nothing is shared or
// reused across runs.
type Table struct {
	// Source is the path of the file the table was loaded from. Derived
	// tables (the recipient/commodity splits) inherit it.
	Source string

	// Header holds the column names in file order.
	Header []string

	// Rows holds the data cells, one slice per input row, each exactly
	// len(Header) long.
	Rows [][]string

	cols map[string]int
}

// NewTable builds a table from a header and rows. Rows shorter than the
// header are padded with empty cells; longer rows are truncated.
func NewTable(source string, header []string, rows [][]string) *Table {
	cols := make(map[string]int, len(header))
	for i, name := range header {
		if _, dup := cols[name]; !dup {
			cols[name] = i
		}
	}

	fitted := make([][]string, len(rows))
	for i, row := range rows {
		if len(row) == len(header) {
			fitted[i] = row
			continue
		}
		r := make([]string, len(header))
		copy(r, row)
		fitted[i] = r
	}

	return &Table{Source: source, Header: header, Rows: fitted, cols: cols}
}

// RowCount returns the number of data rows.
func (t *Table) RowCount() int { return len(t.Rows) }

// Col returns the index of a named column.
func (t *Table) Col(name string) (int, bool) {
	i, ok := t.cols[name]
	return i, ok
}

// HasCol reports whether a named column exists.
func (t *Table) HasCol(name string) bool {
	_, ok := t.cols[name]
	return ok
}

// Value returns the cell at (row, column name), or "" when the column does
// not exist.
func (t *Table) Value(row int, name string) string {
	if i, ok := t.cols[name]; ok {
		return t.Rows[row][i]
	}
	return ""
}

// SetValue overwrites the cell at (row, column name). Unknown columns are
// ignored, mirroring the upstream tool's behavior of cleaning only the
// columns that are present.
func (t *Table) SetValue(row int, name, value string) {
	if i, ok := t.cols[name]; ok {
		t.Rows[row][i] = value
	}
}

// Record returns a view over a single row.
func (t *Table) Record(row int) Record {
	return Record{table: t, row: row}
}

// SpreadsheetRow converts a 0-based data row index to the 1-based
// spreadsheet row number shown to operators (header occupies row 1).
func SpreadsheetRow(dataRow int) int { return dataRow + 2 }

// Slice returns a new table containing columns [start, end) of every row,
// index-aligned with the original: row N of the slice is row N of t.
func (t *Table) Slice(start, end int) *Table {
	header := append([]string(nil), t.Header[start:end]...)
	rows := make([][]string, len(t.Rows))
	for i, row := range t.Rows {
		rows[i] = append([]string(nil), row[start:end]...)
	}
	return NewTable(t.Source, header, rows)
}

// UniqueRefs returns the distinct reference numbers in first-seen order.
func (t *Table) UniqueRefs() []string {
	seen := make(map[string]bool)
	var refs []string
	for i := range t.Rows {
		ref := t.Value(i, ColReference)
		if !seen[ref] {
			seen[ref] = true
			refs = append(refs, ref)
		}
	}
	return refs
}

// FirstRowForRef returns the index of the first row bearing ref.
func (t *Table) FirstRowForRef(ref string) (int, error) {
	for i := range t.Rows {
		if t.Value(i, ColReference) == ref {
			return i, nil
		}
	}
	return 0, fmt.Errorf("no row with reference %q", ref)
}

// =============================================================================
// RECORD
// =============================================================================

// Record is a read-only view over one table row. Address validation and
// tests work against records rather than raw slices.
type Record struct {
	table *Table
	row   int
}

// Get returns the value of a named field on this row.
func (r Record) Get(name string) string {
	return r.table.Value(r.row, name)
}

// Row returns the 0-based data row index of this record.
func (r Record) Row() int { return r.row }
