package strata

// Logger receives progress and diagnostic messages from the validator.
// Messages use fmt formatting. Report output never goes through a Logger,
// so logging cannot corrupt --json output on stdout.
type Logger interface {
	// Verbose is for per-document tracing; dropped unless --verbose is set.
	Verbose(format string, args ...interface{})

	// Info is for progress a user normally wants to see.
	Info(format string, args ...interface{})

	// Error is for problems that do not stop the run.
	Error(format string, args ...interface{})
}
