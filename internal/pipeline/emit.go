// =============================================================================
// International Shipment Splitter - Output Emission
// =============================================================================
//
// The final pipeline step. Writes the three artifacts of a run:
//
//   1. Recipient table  - columns 1-21 of the cleaned manifest, CSV, UTF-8
//   2. Commodity table  - columns 22-31, prices formatted to 2 decimals
//   3. Validation report - plain text summary of errors and warnings
//
// All writes are atomic (temp file + rename). Until this step succeeds the
// output directory is untouched, so an abandoned or failed run leaves no
// partial artifacts.
//
// =============================================================================

package pipeline

import (
	"encoding/csv"
	"fmt"
	"io"
	"path/filepath"
	"strconv"
	"strings"

	"go.uber.org/zap"

	"github.com/silverscreenprint/shipsplit/internal/manifest"
	"github.com/silverscreenprint/shipsplit/pkg/utils"
)

// moneyColumns are commodity fields written with exactly 2 decimal places.
var moneyColumns = []string{manifest.ColUnitPrice, manifest.ColDeclaredValue}

// emit writes the recipient table, commodity table, and validation report
// to outDir, then archives the input manifest if archival is configured.
func (p *Pipeline) emit(outDir string) error {
	if err := utils.EnsureDir(outDir); err != nil {
		return err
	}

	recipientPath := filepath.Join(outDir, p.cfg.RecipientFile)
	commodityPath := filepath.Join(outDir, p.cfg.CommodityFile)
	reportPath := filepath.Join(outDir, p.cfg.ReportFile)

	if err := writeTable(recipientPath, p.recipient, nil); err != nil {
		return fmt.Errorf("failed to write recipient table: %w", err)
	}
	p.log.Info("recipient table written", zap.String("path", recipientPath))

	if err := writeTable(commodityPath, p.commodity, formatMoney); err != nil {
		return fmt.Errorf("failed to write commodity table: %w", err)
	}
	p.log.Info("commodity table written", zap.String("path", commodityPath))

	report := p.report()
	err := utils.WriteFileAtomic(reportPath, func(w io.Writer) error {
		_, werr := io.WriteString(w, report.Render())
		return werr
	})
	if err != nil {
		return fmt.Errorf("failed to write validation report: %w", err)
	}
	p.log.Info("validation report written", zap.String("path", reportPath))

	if p.cfg.ArchiveDir != "" {
		archived, err := utils.ArchiveFile(p.inputPath, p.cfg.ArchiveDir)
		if err != nil {
			// Outputs exist and are valid at this point; a failed archive
			// move is logged, not fatal.
			p.log.Warn("failed to archive input", zap.Error(err))
		} else {
			p.log.Info("input archived", zap.String("path", archived))
		}
	}

	p.state = StateEmitted
	return nil
}

// cellFormatter optionally rewrites a cell value during emission, keyed by
// column name. The working table itself is not modified.
type cellFormatter func(col, value string) string

// writeTable emits a table as UTF-8 CSV: header row then data rows.
func writeTable(path string, t *manifest.Table, format cellFormatter) error {
	return utils.WriteFileAtomic(path, func(w io.Writer) error {
		cw := csv.NewWriter(w)

		if err := cw.Write(t.Header); err != nil {
			return err
		}

		row := make([]string, len(t.Header))
		for i := range t.Rows {
			copy(row, t.Rows[i])
			if format != nil {
				for c, name := range t.Header {
					row[c] = format(name, row[c])
				}
			}
			if err := cw.Write(row); err != nil {
				return err
			}
		}

		cw.Flush()
		return cw.Error()
	})
}

// formatMoney renders price and value columns with exactly 2 decimal
// places. Unparseable values pass through untouched; reconciliation has
// already flagged them.
func formatMoney(col, value string) string {
	money := false
	for _, m := range moneyColumns {
		if col == m {
			money = true
			break
		}
	}
	if !money {
		return value
	}

	clean := strings.TrimSpace(strings.ReplaceAll(strings.ReplaceAll(value, "$", ""), ",", ""))
	v, err := strconv.ParseFloat(clean, 64)
	if err != nil {
		return value
	}
	return fmt.Sprintf("%.2f", v)
}
