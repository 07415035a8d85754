package strata

import (
	"errors"
	"strings"
)

// Sentinel errors for common failure scenarios.
// These enable callers to distinguish error types using errors.Is().
//
// Example usage:
//
//	err := cli.Execute()
//	if errors.Is(err, strata.ErrValidationFailed) {
//	    // Violations were found and --fail-on-error was set
//	}
var (
	// ErrInvalidConfig indicates the provided configuration is invalid.
	ErrInvalidConfig = errors.New("invalid configuration")

	// ErrInvalidRegistry indicates the layer table violates the ordering rules.
	ErrInvalidRegistry = errors.New("invalid layer registry")

	// ErrCorpusNotFound indicates the corpus root directory does not exist.
	ErrCorpusNotFound = errors.New("corpus root not found")

	// ErrValidationFailed indicates violations were found in a run that
	// was asked to fail on them.
	ErrValidationFailed = errors.New("validation failed")
)

// usageErrorMarkers are fragments of cobra/pflag error messages that
// indicate the command line itself was wrong.
var usageErrorMarkers = []string{
	"unknown flag",
	"unknown shorthand flag",
	"unknown command",
	"accepts ",
	"required flag",
	"invalid argument",
	"flag needs an argument",
	"if any flags in the group",
}

// ExitCodeForError returns the appropriate exit code for an error.
// Returns ExitSuccess (0) for nil errors, semantic codes for known errors,
// and ExitGeneralError (1) for unclassified errors.
func ExitCodeForError(err error) int {
	if err == nil {
		return ExitSuccess
	}

	switch {
	case errors.Is(err, ErrInvalidConfig), errors.Is(err, ErrInvalidRegistry):
		return ExitConfigError
	case errors.Is(err, ErrCorpusNotFound):
		return ExitCorpusNotFound
	case errors.Is(err, ErrValidationFailed):
		return ExitGeneralError
	}

	errStr := err.Error()
	for _, marker := range usageErrorMarkers {
		if strings.Contains(errStr, marker) {
			return ExitUsageError
		}
	}

	return ExitGeneralError
}
