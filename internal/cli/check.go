package cli

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/vvka-141/strata/internal/checksum"
	"github.com/vvka-141/strata/internal/files/filesystem"
	"github.com/vvka-141/strata/internal/files/scanner"
	"github.com/vvka-141/strata/internal/logging"
	"github.com/vvka-141/strata/internal/report"
	"github.com/vvka-141/strata/internal/services"
	"github.com/vvka-141/strata/pkg/strata"
)

type checkOptions struct {
	settingsFlags
	stats       bool
	refs        bool
	full        bool
	modeName    string
	failOnError bool
	json        bool
	noColor     bool
}

var checkFlags checkOptions

var checkCmd = &cobra.Command{
	Use:   "check [corpus_root]",
	Short: "Validate every document of a corpus",
	Long: `Scan each layer directory of the corpus and validate its documents.

Modes (mutually exclusive):
  --full   metadata, schema and composition checks (default)
  --refs   broken references only; unreadable or malformed documents
           are counted but not reported
  --stats  count documents per layer without reading them
  --mode   the same choice by name: full, refs or stats

The corpus root defaults to $STRATA_ROOT, then the working directory.
Configuration is read from strata.yaml in the corpus root unless --config
is given. Environment variables override the file; flags override both.`,
	Example: `  strata check ./corpus
  strata check ./corpus --refs
  strata check ./corpus --mode stats
  strata check ./corpus --fail-on-error --max-listed 200
  strata check ./corpus --json > report.json`,
	Args: OptionalCorpusRoot,
	RunE: runCheck,
}

func init() {
	f := checkCmd.Flags()
	f.BoolVar(&checkFlags.full, "full", false, "Run metadata, schema and composition checks (default)")
	f.BoolVar(&checkFlags.refs, "refs", false, "Only report broken references")
	f.BoolVar(&checkFlags.stats, "stats", false, "Only count documents per layer")
	f.StringVar(&checkFlags.modeName, "mode", "", "Validation mode by name: full, refs or stats")
	f.BoolVar(&checkFlags.failOnError, "fail-on-error", false, "Exit with code 1 when any violation is found")
	f.BoolVar(&checkFlags.failOnError, "ci", false, "Alias for --fail-on-error")
	f.BoolVar(&checkFlags.json, "json", false, "Output the report as JSON")
	f.BoolVar(&checkFlags.noColor, "no-color", false, "Disable coloured output")
	f.IntVar(&checkFlags.maxListed, "max-listed", 0, fmt.Sprintf("Maximum number of violations listed (default %d)", strata.DefaultMaxListed))
	f.StringVar(&checkFlags.configFile, "config", "", "Path to a config file (default <corpus_root>/strata.yaml)")
	f.BoolVar(&checkFlags.strictRefs, "strict-refs", false, "Resolve every composition entry and reject non-string entries")

	checkCmd.MarkFlagsMutuallyExclusive("full", "refs", "stats", "mode")
	rootCmd.AddCommand(checkCmd)
}

// mode returns the validation mode selected by the flags.
func (o checkOptions) mode() (strata.Mode, error) {
	switch {
	case o.modeName != "":
		m, err := strata.ParseMode(o.modeName)
		if err != nil {
			return m, fmt.Errorf("invalid argument %q for --mode: expected full, refs or stats", o.modeName)
		}
		return m, nil
	case o.stats:
		return strata.ModeStats, nil
	case o.refs:
		return strata.ModeReferences, nil
	default:
		return strata.ModeFull, nil
	}
}

func runCheck(cmd *cobra.Command, args []string) error {
	verbose := getVerboseFlag(cmd)
	logger := logging.NewConsoleLogger(verbose)

	mode, err := checkFlags.mode()
	if err != nil {
		return err
	}

	run, err := resolveRun(args, checkFlags.settingsFlags, verbose)
	if err != nil {
		return err
	}

	logger.Verbose("Checking %s (mode: %s)", run.Root, mode)

	fileScanner := scanner.NewScanner(run.Settings.Include, run.Settings.Exclude)
	scan, err := fileScanner.ScanCorpus(run.Root, run.Registry.Names())
	if err != nil {
		return err
	}
	logger.Verbose("Found %d document(s)", scan.TotalFiles())

	validator := services.NewValidationService(run.Registry, filesystem.NewOSFileSystem(), checksum.New(), logger, run.Settings.Policy())
	result := validator.Run(scan, mode)
	summary := report.Build(result)

	out := cmd.OutOrStdout()
	if checkFlags.json {
		err = report.RenderJSON(out, summary, result)
	} else {
		err = report.RenderText(out, summary, result, report.Options{
			MaxListed: run.Settings.MaxListed,
			Color:     !checkFlags.noColor && colorOutput(out),
		})
	}
	if err != nil {
		return fmt.Errorf("failed to write report: %w", err)
	}

	if checkFlags.failOnError && result.HasViolations() {
		return fmt.Errorf("%d violation(s) in %d document(s): %w", summary.Violations, summary.Failed, strata.ErrValidationFailed)
	}
	return nil
}

// colorOutput reports whether out is a terminal that accepts colour.
func colorOutput(out io.Writer) bool {
	f, ok := out.(*os.File)
	if !ok {
		return false
	}
	return report.ColorEnabled(f)
}
