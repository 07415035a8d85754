package logging

import "github.com/vvka-141/strata/pkg/strata"

var _ strata.Logger = NullLogger{}

// NullLogger discards everything. It is the logger for embedding the
// validator in programs that report through their own channels.
type NullLogger struct{}

// NewNullLogger returns a NullLogger.
func NewNullLogger() NullLogger {
	return NullLogger{}
}

func (NullLogger) Verbose(string, ...interface{}) {}
func (NullLogger) Info(string, ...interface{})    {}
func (NullLogger) Error(string, ...interface{})   {}
