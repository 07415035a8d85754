package strata

// Exit codes for semantic error classification.
// These follow Unix/GNU conventions:
//   - 0: Success
//   - 1: General error
//   - 2: CLI usage error (misuse of command line)
//   - 3+: Application-specific errors
const (
	ExitSuccess        = 0  // Validation passed, or failures were not requested to fail the run
	ExitGeneralError   = 1  // Violations found with --fail-on-error, or unclassified error
	ExitUsageError     = 2  // CLI usage error (missing args, invalid flags)
	ExitPanic          = 3  // Internal panic (unexpected crash)
	ExitConfigError    = 10 // Invalid configuration or layer registry
	ExitCorpusNotFound = 14 // Corpus root directory not found
)

const (
	// DefaultMaxListed caps the number of violations printed in the text report.
	DefaultMaxListed = 50

	// ReferencePrefix marks composition references that are resolved against
	// the filesystem under the permissive reference policy.
	ReferencePrefix = "../"

	// FieldComposes is the metadata field holding composition references.
	FieldComposes = "composes"
)

// DefaultIncludePatterns are the glob patterns a file's base name must match
// to be considered a document.
var DefaultIncludePatterns = []string{"*.md"}

// DefaultExcludePatterns are the glob patterns that remove a file from
// validation even when it matches an include pattern.
var DefaultExcludePatterns = []string{"_*", "README*"}
