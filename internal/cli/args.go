package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

// OptionalCorpusRoot accepts zero or one corpus_root argument.
// Without an argument the root comes from STRATA_ROOT or the working directory.
func OptionalCorpusRoot(cmd *cobra.Command, args []string) error {
	if len(args) > 1 {
		return fmt.Errorf(`accepts at most 1 arg(s), received %d

Usage: %s

Example:
  %s ./corpus --fail-on-error`, len(args), cmd.UseLine(), cmd.CommandPath())
	}
	return nil
}
