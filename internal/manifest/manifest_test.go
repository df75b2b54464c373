package manifest

import (
	"encoding/csv"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/xuri/excelize/v2"
)

// testHeader31 is a full 31-column layout matching the upstream template
// (columns A-AE).
func testHeader31() []string {
	return []string{
		ColReference,
		ColAttention,
		ColCompany,
		ColEmail,
		ColPhone,
		ColAddress1,
		ColAddress2,
		ColCity,
		ColState,
		ColPostal,
		ColCountry,
		"RESIDENTIAL DELIVERY (Y/N)",
		"SIGNATURE REQUIRED (Y/N)",
		"SERVICE TYPE (required)",
		"PACKAGING TYPE (required)",
		"BILLING - 3RD PARTY ACCOUNT # (required)",
		ColBillCompany,
		ColBillAddress1,
		ColBillAddress2,
		ColBillCity,
		ColBillPostal,
		ColDescription,
		ColStyle,
		ColQuantity,
		ColUnitPrice,
		ColDeclaredValue,
		"COMMODITY COUNTRY OF MANUFACTURE (required)",
		"HARMONIZED CODE (if applicable)",
		"UNIT OF MEASURE (required)",
		"WEIGHT (required)",
		"CURRENCY (required)",
	}
}

func testRow(ref string) []string {
	row := make([]string, NumColumns)
	row[0] = ref
	row[1] = "Jane Smith"
	row[4] = "5551234567"
	row[5] = "1 High Street"
	row[7] = "London"
	row[9] = "N1 2AB"
	row[10] = "GB"
	row[21] = "T-Shirt"
	row[22] = "TS-100"
	row[23] = "2"
	row[24] = "5.00"
	row[25] = "10.00"
	return row
}

func writeCSV(t *testing.T, path string, rows [][]string) {
	t.Helper()
	f, err := os.Create(path)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := w.WriteAll(rows); err != nil {
		t.Fatal(err)
	}
}

func TestLoadCSV(t *testing.T) {
	path := filepath.Join(t.TempDir(), "manifest.csv")
	writeCSV(t, path, [][]string{
		testHeader31(),
		testRow("1"),
		testRow("2"),
	})

	tbl, err := LoadCSV(path)
	if err != nil {
		t.Fatalf("LoadCSV() error = %v", err)
	}

	if tbl.RowCount() != 2 {
		t.Errorf("RowCount() = %d, want 2", tbl.RowCount())
	}
	if len(tbl.Header) != NumColumns {
		t.Errorf("header has %d columns, want %d", len(tbl.Header), NumColumns)
	}
	if got := tbl.Value(1, ColReference); got != "2" {
		t.Errorf("Value(1, reference) = %q, want 2", got)
	}
	if got := tbl.Value(0, ColCity); got != "London" {
		t.Errorf("Value(0, city) = %q, want London", got)
	}
}

func TestLoadCSVSkipsEmptyRows(t *testing.T) {
	path := filepath.Join(t.TempDir(), "manifest.csv")
	writeCSV(t, path, [][]string{
		testHeader31(),
		testRow("1"),
		make([]string, NumColumns), // blank row
		testRow("2"),
	})

	tbl, err := LoadCSV(path)
	if err != nil {
		t.Fatalf("LoadCSV() error = %v", err)
	}
	if tbl.RowCount() != 2 {
		t.Errorf("RowCount() = %d, want 2 (blank row skipped)", tbl.RowCount())
	}
}

func TestLoadCSVWrongColumnCount(t *testing.T) {
	path := filepath.Join(t.TempDir(), "manifest.csv")
	writeCSV(t, path, [][]string{
		testHeader31()[:30],
		testRow("1")[:30],
	})

	_, err := LoadCSV(path)
	if err == nil {
		t.Fatal("LoadCSV() on 30-column input: expected error")
	}
	if !strings.Contains(err.Error(), "expected 31 columns") {
		t.Errorf("error %q does not mention the column contract", err)
	}
}

func TestLoadCSVOverlongDataRow(t *testing.T) {
	path := filepath.Join(t.TempDir(), "manifest.csv")
	writeCSV(t, path, [][]string{
		testHeader31(),
		append(testRow("1"), "stray"),
	})

	_, err := LoadCSV(path)
	if err == nil {
		t.Fatal("LoadCSV() on 32-column data row: expected error")
	}
	if !strings.Contains(err.Error(), "row 2") {
		t.Errorf("error %q does not name the offending row", err)
	}
}

func TestLoadCSVTrailingEmptyCellsTolerated(t *testing.T) {
	path := filepath.Join(t.TempDir(), "manifest.csv")
	writeCSV(t, path, [][]string{
		testHeader31(),
		append(testRow("1"), "", ""), // stray trailing commas
	})

	tbl, err := LoadCSV(path)
	if err != nil {
		t.Fatalf("LoadCSV() error = %v", err)
	}
	if tbl.RowCount() != 1 {
		t.Errorf("RowCount() = %d, want 1", tbl.RowCount())
	}
	if got := tbl.Value(0, ColDeclaredValue); got != "10.00" {
		t.Errorf("Value(0, declared value) = %q, want 10.00", got)
	}
}

func TestLoadCSVEmptyFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "empty.csv")
	if err := os.WriteFile(path, nil, 0644); err != nil {
		t.Fatal(err)
	}

	if _, err := LoadCSV(path); err == nil {
		t.Fatal("LoadCSV() on empty file: expected error")
	}
}

func TestLoadXLSX(t *testing.T) {
	path := filepath.Join(t.TempDir(), "manifest.xlsx")

	f := excelize.NewFile()
	writeSheetRow := func(rowNum int, cells []string) {
		vals := make([]interface{}, len(cells))
		for i, c := range cells {
			vals[i] = c
		}
		cell, err := excelize.CoordinatesToCellName(1, rowNum)
		if err != nil {
			t.Fatal(err)
		}
		if err := f.SetSheetRow("Sheet1", cell, &vals); err != nil {
			t.Fatal(err)
		}
	}
	writeSheetRow(1, testHeader31())
	writeSheetRow(2, testRow("1"))
	if err := f.SaveAs(path); err != nil {
		t.Fatal(err)
	}
	f.Close()

	tbl, err := LoadXLSX(path)
	if err != nil {
		t.Fatalf("LoadXLSX() error = %v", err)
	}
	if tbl.RowCount() != 1 {
		t.Errorf("RowCount() = %d, want 1", tbl.RowCount())
	}
	if got := tbl.Value(0, ColDeclaredValue); got != "10.00" {
		t.Errorf("Value(0, declared value) = %q, want 10.00", got)
	}
}

func TestLoadUnsupportedExtension(t *testing.T) {
	if _, err := Load("manifest.pdf"); err == nil {
		t.Fatal("Load(.pdf): expected error")
	}
}

func TestSliceAlignment(t *testing.T) {
	tbl := NewTable("test.csv", testHeader31(), [][]string{testRow("1"), testRow("1"), testRow("2")})

	recipient := tbl.Slice(0, RecipientColumns)
	commodity := tbl.Slice(RecipientColumns, NumColumns)

	if len(recipient.Header) != RecipientColumns {
		t.Errorf("recipient has %d columns, want %d", len(recipient.Header), RecipientColumns)
	}
	if len(commodity.Header) != NumColumns-RecipientColumns {
		t.Errorf("commodity has %d columns, want %d", len(commodity.Header), NumColumns-RecipientColumns)
	}
	if recipient.RowCount() != tbl.RowCount() || commodity.RowCount() != tbl.RowCount() {
		t.Errorf("split row counts %d/%d, want both %d",
			recipient.RowCount(), commodity.RowCount(), tbl.RowCount())
	}

	// Row N of each slice corresponds to row N of the input.
	for i := 0; i < tbl.RowCount(); i++ {
		if recipient.Value(i, ColReference) != tbl.Value(i, ColReference) {
			t.Errorf("row %d: recipient slice not aligned", i)
		}
		if commodity.Value(i, ColStyle) != tbl.Value(i, ColStyle) {
			t.Errorf("row %d: commodity slice not aligned", i)
		}
	}
}

func TestUniqueRefs(t *testing.T) {
	tbl := NewTable("test.csv", testHeader31(), [][]string{
		testRow("1"), testRow("1"), testRow("2"), testRow("1"), testRow("3"),
	})

	refs := tbl.UniqueRefs()
	want := []string{"1", "2", "3"}
	if len(refs) != len(want) {
		t.Fatalf("UniqueRefs() = %v, want %v", refs, want)
	}
	for i := range want {
		if refs[i] != want[i] {
			t.Errorf("UniqueRefs()[%d] = %q, want %q", i, refs[i], want[i])
		}
	}

	first, err := tbl.FirstRowForRef("2")
	if err != nil || first != 2 {
		t.Errorf("FirstRowForRef(2) = %d, %v, want 2, nil", first, err)
	}
}

func TestNewTablePadsShortRows(t *testing.T) {
	tbl := NewTable("test.csv", testHeader31(), [][]string{{"1", "Jane"}})

	if got := tbl.Value(0, ColAttention); got != "Jane" {
		t.Errorf("Value(attention) = %q, want Jane", got)
	}
	if got := tbl.Value(0, ColDeclaredValue); got != "" {
		t.Errorf("Value(declared) = %q, want empty pad", got)
	}
}

func TestSpreadsheetRow(t *testing.T) {
	if got := SpreadsheetRow(0); got != 2 {
		t.Errorf("SpreadsheetRow(0) = %d, want 2", got)
	}
}
