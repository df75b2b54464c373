// =============================================================================
// International Shipment Splitter - Root Command
// =============================================================================
//
// Root of the cobra CLI. Global flags (--config, --verbose) live here;
// configuration and logger construction are shared by the subcommands.
//
//   shipsplit
//   ├── process   (run the full pipeline, write outputs)
//   ├── check     (validate only, print report)
//   └── version
//
// =============================================================================

package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/silverscreenprint/shipsplit/internal/config"
	"github.com/silverscreenprint/shipsplit/internal/logging"
)

// cfgFile is the path to an optional YAML configuration file.
var cfgFile string

// verbose enables debug logging.
var verbose bool

var rootCmd = &cobra.Command{
	Use:   "shipsplit",
	Short: "Prepare international shipment manifests for carrier import",
	Long: `shipsplit ingests a bulk international shipment manifest (CSV or XLSX),
cleans and standardizes its fields, reconciles declared values against
quantity x unit price, validates recipient addresses, and splits the result
into the recipient and commodity tables expected by the carrier's
label-generation import, plus a plain-text validation report.

Data-quality problems never abort a run: they are collected into the
validation report and the output files are still written, flagged for
review. Structural problems (missing input, wrong column count) abort the
run and nothing is written.

Example Usage:
  shipsplit process shipments.xlsx               # outputs next to the input
  shipsplit process shipments.csv --out ./out    # outputs to ./out
  shipsplit check shipments.csv                  # report only, no files`,
	Run: func(cmd *cobra.Command, args []string) {
		cmd.Help()
	},
}

// Execute runs the root command. Called once from main.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(
		&cfgFile,
		"config",
		"",
		"Path to an optional YAML configuration file",
	)

	rootCmd.PersistentFlags().BoolVarP(
		&verbose,
		"verbose",
		"v",
		false,
		"Enable verbose output for debugging",
	)
}

// loadConfig returns the configuration: defaults when no --config was
// given, the parsed file otherwise.
func loadConfig() (*config.Config, error) {
	if cfgFile == "" {
		return config.Default(), nil
	}
	cfg, err := config.Load(cfgFile)
	if err != nil {
		return nil, err
	}
	return cfg, nil
}

// buildLogger constructs the per-invocation logger from config and flags.
func buildLogger(cfg *config.Config) (*zap.Logger, error) {
	return logging.New(cfg.LogLevel, verbose)
}
