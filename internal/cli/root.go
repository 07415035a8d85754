package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "strata",
	Short: "Validate a layered document corpus",
	Long: `strata validates a corpus of Markdown documents organised in layers
(primitives, atoms, molecules, organisms, templates, patterns, recipes).

Every document starts with a YAML metadata block. strata checks that the
block is present and well-formed, that required fields are declared, that
identifiers carry their layer's prefix, and that documents only compose
documents of strictly lower layers.

Exit Codes:
  0  - Success (or violations found without --fail-on-error)
  1  - Violations found with --fail-on-error, or general error
  2  - CLI usage error (invalid arguments or flags)
  3  - Panic or unexpected system error
  10 - Invalid configuration or layer registry
  14 - Corpus root not found`,
	SilenceUsage: true,
}

// Execute runs the root command
func Execute() error {
	if len(os.Args) > 1 && os.Args[1] == "--version" {
		printVersionInfo(os.Stdout)
		return nil
	}
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "Enable verbose output for all commands")
}

// getVerboseFlag safely retrieves the verbose flag value
func getVerboseFlag(cmd *cobra.Command) bool {
	verbose, err := cmd.Flags().GetBool("verbose")
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: Failed to get verbose flag: %v\n", err)
		return false
	}
	return verbose
}
