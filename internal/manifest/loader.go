// =============================================================================
// International Shipment Splitter - Manifest Loaders
// =============================================================================
//
// Loaders for the two supported input formats: delimited text (.csv) and
// spreadsheet (.xlsx). Both produce the same Table and enforce the same
// structural contract: a header row plus data rows, exactly 31 columns.
//
// Structural problems here are fatal; the pipeline transitions to its
// Failed state and writes nothing.
//
// =============================================================================

package manifest

import (
	"bufio"
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/xuri/excelize/v2"
)

// Load reads a manifest file, dispatching on the file extension.
func Load(path string) (*Table, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".csv":
		return LoadCSV(path)
	case ".xlsx":
		return LoadXLSX(path)
	default:
		return nil, fmt.Errorf("unsupported file format %q (expected .csv or .xlsx)", filepath.Ext(path))
	}
}

// LoadCSV reads a delimited manifest.
func LoadCSV(path string) (*Table, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open file: %w", err)
	}
	defer file.Close()

	reader := csv.NewReader(bufio.NewReader(file))
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true
	reader.TrimLeadingSpace = true

	allRows, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("failed to read CSV: %w", err)
	}

	return buildTable(path, allRows)
}

// LoadXLSX reads the first sheet of a spreadsheet manifest.
func LoadXLSX(path string) (*Table, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open spreadsheet: %w", err)
	}
	defer f.Close()

	sheet := f.GetSheetName(0)
	if sheet == "" {
		return nil, fmt.Errorf("spreadsheet has no sheets")
	}

	allRows, err := f.GetRows(sheet)
	if err != nil {
		return nil, fmt.Errorf("failed to read rows: %w", err)
	}

	return buildTable(path, allRows)
}

// buildTable applies the structural contract to raw rows: a non-empty
// header of exactly NumColumns, then data rows with empty rows skipped.
// Trailing empty cells (hand-edited files often carry stray trailing
// commas) are dropped before counting; a data row with more than
// NumColumns non-empty-tailed cells is a structural failure, never
// silently truncated.
func buildTable(path string, allRows [][]string) (*Table, error) {
	if len(allRows) == 0 {
		return nil, fmt.Errorf("manifest is empty")
	}

	header := trimTrailingEmpty(trimCells(allRows[0]))
	if len(header) != NumColumns {
		return nil, fmt.Errorf("expected %d columns, got %d", NumColumns, len(header))
	}

	var rows [][]string
	for i, raw := range allRows[1:] {
		if isRowEmpty(raw) {
			continue
		}
		row := trimTrailingEmpty(trimCells(raw))
		if len(row) > NumColumns {
			return nil, fmt.Errorf("row %d has %d columns, expected %d", i+2, len(row), NumColumns)
		}
		rows = append(rows, row)
	}

	return NewTable(path, header, rows), nil
}

func trimTrailingEmpty(row []string) []string {
	for len(row) > 0 && row[len(row)-1] == "" {
		row = row[:len(row)-1]
	}
	return row
}

func trimCells(row []string) []string {
	out := make([]string, len(row))
	for i, cell := range row {
		out[i] = strings.TrimSpace(cell)
	}
	return out
}

func isRowEmpty(row []string) bool {
	for _, cell := range row {
		if strings.TrimSpace(cell) != "" {
			return false
		}
	}
	return true
}
