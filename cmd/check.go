// =============================================================================
// International Shipment Splitter - Check Command
// =============================================================================
//
// Dry-run validation: runs the pipeline through the validate step and
// prints the report to stdout. No output files are written and the input
// is never archived.
//
// COMMAND USAGE:
//   shipsplit check <manifest>
//
// =============================================================================

package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/silverscreenprint/shipsplit/internal/pipeline"
)

var checkCmd = &cobra.Command{
	Use:   "check <manifest>",
	Short: "Validate a manifest without writing any output",
	Long: `The check command cleans, reconciles, and validates a manifest exactly as
process would, then prints the validation report to stdout instead of
writing files. Use it to audit a manifest before committing to a run.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runCheck(args[0])
	},
}

func init() {
	rootCmd.AddCommand(checkCmd)
}

func runCheck(inputPath string) error {
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
	report, err := p.Check()
	if err != nil {
		return err
	}

	fmt.Print(report.Render())
	return nil
}
