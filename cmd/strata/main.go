package main

import (
	"fmt"
	"os"
	"runtime/debug"

	"github.com/vvka-141/strata/internal/cli"
	"github.com/vvka-141/strata/pkg/strata"
)

func main() {
	// Recover from panics to ensure graceful exits with stack traces
	defer func() {
		if r := recover(); r != nil {
			fmt.Fprintf(os.Stderr, "panic: %v\n%s\n", r, debug.Stack())
			os.Exit(strata.ExitPanic)
		}
	}()

	if err := cli.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(strata.ExitCodeForError(err))
	}
}
