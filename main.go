// =============================================================================
// International Shipment Splitter - Main Entry Point
// =============================================================================
//
// shipsplit prepares bulk international shipment manifests for import into a
// carrier label-generation tool. It cleans and standardizes the manifest,
// reconciles declared values, validates recipient addresses, and splits the
// result into a recipient table and a commodity table plus a validation
// report.
//
// USAGE:
//   shipsplit process <manifest>   - Run the full pipeline and write outputs
//   shipsplit check <manifest>     - Validate only, print the report, write nothing
//   shipsplit version              - Display the application version
//
// =============================================================================

package main

import (
	"github.com/silverscreenprint/shipsplit/cmd"
)

func main() {
	cmd.Execute()
}
