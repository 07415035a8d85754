package report

import (
	"os"

	"golang.org/x/term"
)

// ColorEnabled determines whether the text report written to out should be
// coloured.
//
// Returns false if:
//   - NO_COLOR is set (https://no-color.org)
//   - TERM is "dumb"
//   - out is not a terminal (piped output, CI logs)
func ColorEnabled(out *os.File) bool {
	if os.Getenv("NO_COLOR") != "" {
		return false
	}
	if os.Getenv("TERM") == "dumb" {
		return false
	}
	if out == nil {
		return false
	}
	return term.IsTerminal(int(out.Fd()))
}
