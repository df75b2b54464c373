// =============================================================================
// International Shipment Splitter - Process Command
// =============================================================================
//
// The main command: run the full pipeline on one manifest and write the
// recipient table, commodity table, and validation report.
//
// COMMAND USAGE:
//   shipsplit process <manifest> [--out DIR]
//
// Exit status is non-zero when the pipeline fails structurally. A run that
// completes with validation errors or warnings exits zero - the outputs
// exist and the report flags them for review.
//
// =============================================================================

package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/silverscreenprint/shipsplit/internal/pipeline"
)

// outDir is the output directory; empty means next to the input file.
var outDir string

var processCmd = &cobra.Command{
	Use:   "process <manifest>",
	Short: "Clean, validate, and split a shipment manifest",
	Long: `The process command runs the full pipeline on a single manifest file:

  load -> clean -> reconcile -> validate -> split -> emit

On success three files are written to the output directory: the recipient
table (manifest columns 1-21), the commodity table (columns 22-31, prices
formatted to 2 decimal places), and a plain-text validation report. On a
structural failure nothing is written.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runProcess(args[0])
	},
}

func init() {
	rootCmd.AddCommand(processCmd)

	processCmd.Flags().StringVar(
		&outDir,
		"out",
		"",
		"Output directory (default: the input file's directory)",
	)
}

func runProcess(inputPath string) error {
	cfg, err := loadConfig()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	log, err := buildLogger(cfg)
	if err != nil {
		return err
	}
	defer log.Sync()

	p := pipeline.New(inputPath, cfg, log)
	report, err := p.Run(outDir)
	if err != nil {
		return err
	}

	fmt.Println("=== Processing Complete ===")
	fmt.Printf("Rows processed:  %d\n", report.TotalRows)
	fmt.Printf("Recipients:      %d\n", report.UniqueRefs)
	fmt.Printf("Errors:          %d\n", len(report.Errors))
	fmt.Printf("Warnings:        %d\n", len(report.Warnings))

	if report.ReviewRequired() {
		fmt.Printf("\nReview required - see %s before import.\n", cfg.ReportFile)
	}

	return nil
}
