// Package files groups the corpus file access packages:
//   - filesystem: Filesystem abstraction interfaces and implementations (OS and in-memory)
//   - scanner: Layer directory discovery with include/exclude globs
//
// # Usage
//
//	import (
//	    "github.com/vvka-141/strata/internal/files/scanner"
//	)
//
//	fileScanner := scanner.NewScanner(nil, nil)
//	result, err := fileScanner.ScanCorpus("./corpus", layers.Default().Names())
package files
