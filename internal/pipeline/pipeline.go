// =============================================================================
// International Shipment Splitter - Processing Pipeline
// =============================================================================
//
// The pipeline owns one run end to end. Control flow is strictly linear:
//
//   Load -> Clean -> Reconcile -> Validate -> Split -> Emit
//
// with a terminal Failed state reachable from every step. Structural and
// I/O problems fail the run and nothing is written; data-quality findings
// are accumulated as issues and only ever reported at the end. No output
// file exists until every prior step has succeeded.
//
// A Pipeline instance is single-use and single-threaded. It holds the only
// mutable state in the system (the working table and the issue sequences),
// so concurrent runs are isolated by constructing one Pipeline each; there
// is no internal locking.
//
// =============================================================================

package pipeline

import (
	"fmt"
	"path/filepath"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/silverscreenprint/shipsplit/internal/cleaner"
	"github.com/silverscreenprint/shipsplit/internal/config"
	"github.com/silverscreenprint/shipsplit/internal/countries"
	"github.com/silverscreenprint/shipsplit/internal/issue"
	"github.com/silverscreenprint/shipsplit/internal/manifest"
	"github.com/silverscreenprint/shipsplit/internal/reconcile"
	"github.com/silverscreenprint/shipsplit/internal/validate"
	"github.com/silverscreenprint/shipsplit/pkg/utils"
)

// =============================================================================
// STATES
// =============================================================================

// State is the pipeline's position in the linear run. There is no branching
// back; each step either advances the state or moves to StateFailed.
type State int

const (
	StateNew State = iota
	StateLoaded
	StateCleaned
	StateReconciled
	StateValidated
	StateSplit
	StateEmitted
	StateFailed
)

// String returns the state name for logs and error messages.
func (s State) String() string {
	switch s {
	case StateNew:
		return "new"
	case StateLoaded:
		return "loaded"
	case StateCleaned:
		return "cleaned"
	case StateReconciled:
		return "reconciled"
	case StateValidated:
		return "validated"
	case StateSplit:
		return "split"
	case StateEmitted:
		return "emitted"
	case StateFailed:
		return "failed"
	default:
		return "unknown"
	}
}

// =============================================================================
// PIPELINE
// =============================================================================

// Pipeline processes one manifest. Construct a fresh instance per run.
type Pipeline struct {
	inputPath string
	cfg       *config.Config
	log       *zap.Logger
	runID     string

	state State
	cause string

	table     *manifest.Table
	recipient *manifest.Table
	commodity *manifest.Table

	errs  []issue.Issue
	warns []issue.Issue
}

// New creates a pipeline for a single input manifest.
func New(inputPath string, cfg *config.Config, log *zap.Logger) *Pipeline {
	runID := uuid.New().String()
	return &Pipeline{
		inputPath: inputPath,
		cfg:       cfg,
		log:       log.With(zap.String("run_id", runID), zap.String("input", inputPath)),
		runID:     runID,
		state:     StateNew,
	}
}

// State returns the pipeline's current state.
func (p *Pipeline) State() State { return p.state }

// FailureCause returns the human-readable cause once the pipeline has
// reached StateFailed, and "" otherwise.
func (p *Pipeline) FailureCause() string { return p.cause }

// Run executes the full pipeline and writes the three output artifacts to
// outDir (the input's directory when outDir is empty). On failure no files
// are written and the returned report is nil.
func (p *Pipeline) Run(outDir string) (*issue.Report, error) {
	if outDir == "" {
		outDir = filepath.Dir(p.inputPath)
	}

	if err := p.load(); err != nil {
		return nil, p.fail("load", err)
	}
	if err := p.clean(); err != nil {
		return nil, p.fail("clean", err)
	}
	if err := p.reconcile(); err != nil {
		return nil, p.fail("reconcile", err)
	}
	if err := p.validate(); err != nil {
		return nil, p.fail("validate", err)
	}
	if err := p.split(); err != nil {
		return nil, p.fail("split", err)
	}
	if err := p.emit(outDir); err != nil {
		return nil, p.fail("emit", err)
	}

	report := p.report()
	p.log.Info("run complete",
		zap.Int("rows", report.TotalRows),
		zap.Int("recipients", report.UniqueRefs),
		zap.Int("errors", len(report.Errors)),
		zap.Int("warnings", len(report.Warnings)))
	return report, nil
}

// Check executes the pipeline through validation only. Nothing is written;
// the report is returned for display. Used by the check command.
func (p *Pipeline) Check() (*issue.Report, error) {
	if err := p.load(); err != nil {
		return nil, p.fail("load", err)
	}
	if err := p.clean(); err != nil {
		return nil, p.fail("clean", err)
	}
	if err := p.reconcile(); err != nil {
		return nil, p.fail("reconcile", err)
	}
	if err := p.validate(); err != nil {
		return nil, p.fail("validate", err)
	}
	return p.report(), nil
}

// fail transitions to the terminal failure state.
func (p *Pipeline) fail(step string, err error) error {
	p.state = StateFailed
	p.cause = fmt.Sprintf("%s: %v", step, err)
	p.log.Error("pipeline failed", zap.String("step", step), zap.Error(err))
	return fmt.Errorf("%s failed: %w", step, err)
}

func (p *Pipeline) warn(i issue.Issue) { p.warns = append(p.warns, i) }

// =============================================================================
// STEPS
// =============================================================================

// load checks the input file and reads it into the working table.
func (p *Pipeline) load() error {
	if err := utils.ValidateInputFile(p.inputPath); err != nil {
		return err
	}

	table, err := manifest.Load(p.inputPath)
	if err != nil {
		return err
	}

	p.table = table
	p.state = StateLoaded
	p.log.Info("manifest loaded",
		zap.Int("rows", table.RowCount()),
		zap.Int("columns", len(table.Header)))
	return nil
}

// clean scrubs text, phone, and postal fields and standardizes country
// codes. Degraded country lookups become warnings so they are auditable in
// the report, not just in the log.
func (p *Pipeline) clean() error {
	t := p.table

	for _, col := range manifest.TextColumns {
		if !t.HasCol(col) {
			continue
		}
		for i := 0; i < t.RowCount(); i++ {
			t.SetValue(i, col, cleaner.Text(t.Value(i, col)))
		}
	}

	if t.HasCol(manifest.ColPhone) {
		for i := 0; i < t.RowCount(); i++ {
			t.SetValue(i, manifest.ColPhone, cleaner.Phone(t.Value(i, manifest.ColPhone)))
		}
	}

	for _, col := range manifest.PostalColumns {
		if !t.HasCol(col) {
			continue
		}
		for i := 0; i < t.RowCount(); i++ {
			t.SetValue(i, col, cleaner.Postal(t.Value(i, col)))
		}
	}

	if t.HasCol(manifest.ColCountry) {
		p.standardizeCountries()
	}

	p.state = StateCleaned
	p.log.Info("data cleaning complete")
	return nil
}

func (p *Pipeline) standardizeCountries() {
	t := p.table
	for i := 0; i < t.RowCount(); i++ {
		raw := t.Value(i, manifest.ColCountry)
		code, match := countries.StandardizeWith(raw, p.cfg.CountryAliases)
		t.SetValue(i, manifest.ColCountry, code)

		ref := t.Value(i, manifest.ColReference)
		row := manifest.SpreadsheetRow(i)

		switch match {
		case countries.MatchEmpty:
			p.warn(issue.Issue{
				Severity: issue.SeverityWarning,
				Ref:      ref,
				Row:      row,
				Message:  "Empty country field",
			})
		case countries.MatchGuess:
			p.warn(issue.Issue{
				Severity: issue.SeverityWarning,
				Ref:      ref,
				Row:      row,
				Message:  fmt.Sprintf("Unknown country %q - using %q", raw, code),
			})
		case countries.MatchAlias:
			p.log.Debug("country standardized",
				zap.String("from", raw), zap.String("to", code), zap.Int("row", row))
		}
	}
}

// reconcile recomputes declared values; corrections surface as warnings.
func (p *Pipeline) reconcile() error {
	for _, w := range reconcile.DeclaredValues(p.table) {
		p.warn(w)
	}

	p.state = StateReconciled
	p.log.Info("declared values reconciled")
	return nil
}

// validate checks recipient addresses once per unique reference number,
// against the first row bearing that reference. Rows of one reference are
// assumed to repeat the same address block; with strict_reference_check
// enabled that assumption is additionally verified.
func (p *Pipeline) validate() error {
	t := p.table

	for _, ref := range t.UniqueRefs() {
		first, err := t.FirstRowForRef(ref)
		if err != nil {
			return err
		}
		p.errs = append(p.errs, validate.Address(t.Record(first), ref)...)
	}

	if p.cfg.StrictReferenceCheck {
		for _, w := range validate.ReferenceConsistency(t) {
			p.warn(w)
		}
	}

	p.state = StateValidated
	if len(p.errs) > 0 {
		p.log.Warn("address validation found errors", zap.Int("errors", len(p.errs)))
	} else {
		p.log.Info("all addresses validated")
	}
	return nil
}

// split divides the working table at the fixed column boundary into the
// recipient and commodity tables, row-aligned with the input.
func (p *Pipeline) split() error {
	if len(p.table.Header) != manifest.NumColumns {
		return fmt.Errorf("expected %d columns, got %d", manifest.NumColumns, len(p.table.Header))
	}

	p.recipient = p.table.Slice(0, manifest.RecipientColumns)
	p.commodity = p.table.Slice(manifest.RecipientColumns, manifest.NumColumns)

	p.state = StateSplit
	p.log.Info("manifest split",
		zap.Int("recipient_columns", len(p.recipient.Header)),
		zap.Int("commodity_columns", len(p.commodity.Header)))
	return nil
}

// report freezes the issue sequences into the read-only run summary.
func (p *Pipeline) report() *issue.Report {
	return &issue.Report{
		RunID:      p.runID,
		InputFile:  p.inputPath,
		TotalRows:  p.table.RowCount(),
		UniqueRefs: len(p.table.UniqueRefs()),
		Errors:     append([]issue.Issue(nil), p.errs...),
		Warnings:   append([]issue.Issue(nil), p.warns...),
	}
}
