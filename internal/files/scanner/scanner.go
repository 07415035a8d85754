package scanner

import (
	"errors"
	"fmt"
	"io/fs"
	"path/filepath"
	"sort"

	"github.com/bmatcuk/doublestar/v4"

	"github.com/vvka-141/strata/internal/files/filesystem"
	"github.com/vvka-141/strata/pkg/strata"
)

// Scanner discovers document files in layer directories.
// Scanner is safe for concurrent use by multiple goroutines as long as
// the provided fsProvider is also thread-safe.
type Scanner struct {
	fsProvider filesystem.FileSystemProvider
	include    []string
	exclude    []string
}

// NewScanner creates a scanner over the OS filesystem.
// Nil pattern lists fall back to strata.DefaultIncludePatterns and
// strata.DefaultExcludePatterns.
func NewScanner(include, exclude []string) *Scanner {
	return NewScannerWithFS(filesystem.NewOSFileSystem(), include, exclude)
}

// NewScannerWithFS creates a scanner with a custom filesystem provider.
// This is primarily useful for testing with in-memory filesystems.
// Panics if fsProvider is nil.
func NewScannerWithFS(fsProvider filesystem.FileSystemProvider, include, exclude []string) *Scanner {
	if fsProvider == nil {
		panic("fsProvider cannot be nil")
	}
	if include == nil {
		include = strata.DefaultIncludePatterns
	}
	if exclude == nil {
		exclude = strata.DefaultExcludePatterns
	}
	return &Scanner{
		fsProvider: fsProvider,
		include:    include,
		exclude:    exclude,
	}
}

// ScanCorpus lists the documents of each named layer under root.
//
// Returns:
//   - strata.CorpusScanResult: one LayerFiles per name, in the given order
//   - error: wraps strata.ErrCorpusNotFound when root is missing or not a
//     directory; other errors come from unreadable layer directories or
//     invalid glob patterns
func (s *Scanner) ScanCorpus(root string, layerNames []string) (strata.CorpusScanResult, error) {
	if err := ValidatePatterns(append(append([]string(nil), s.include...), s.exclude...)); err != nil {
		return strata.CorpusScanResult{}, err
	}

	info, err := s.fsProvider.Stat(root)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return strata.CorpusScanResult{}, fmt.Errorf("%s: %w", root, strata.ErrCorpusNotFound)
		}
		return strata.CorpusScanResult{}, fmt.Errorf("failed to access corpus root: %w", err)
	}
	if !info.IsDir() {
		return strata.CorpusScanResult{}, fmt.Errorf("%s is not a directory: %w", root, strata.ErrCorpusNotFound)
	}

	result := strata.CorpusScanResult{Root: root}
	for _, layer := range layerNames {
		files, err := s.scanLayer(root, layer)
		if err != nil {
			return strata.CorpusScanResult{}, err
		}
		result.Layers = append(result.Layers, files)
	}
	return result, nil
}

func (s *Scanner) scanLayer(root, layer string) (strata.LayerFiles, error) {
	dir := filepath.Join(root, layer)
	lf := strata.LayerFiles{Layer: layer}

	info, err := s.fsProvider.Stat(dir)
	if err != nil || !info.IsDir() {
		if err != nil && !errors.Is(err, fs.ErrNotExist) {
			return strata.LayerFiles{}, fmt.Errorf("failed to access layer %s: %w", layer, err)
		}
		lf.Missing = true
		return lf, nil
	}

	entries, err := s.fsProvider.ReadDir(dir)
	if err != nil {
		return strata.LayerFiles{}, fmt.Errorf("failed to list layer %s: %w", layer, err)
	}

	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		name := entry.Name()
		ok, err := s.selected(name)
		if err != nil {
			return strata.LayerFiles{}, err
		}
		if !ok {
			continue
		}
		lf.Files = append(lf.Files, strata.DocumentFile{
			Path:         filepath.Join(dir, name),
			RelativePath: layer + "/" + name,
			Layer:        layer,
		})
	}

	sort.Slice(lf.Files, func(i, j int) bool {
		return lf.Files[i].RelativePath < lf.Files[j].RelativePath
	})
	return lf, nil
}

// selected reports whether a base name matches an include pattern and no
// exclude pattern.
func (s *Scanner) selected(name string) (bool, error) {
	included, err := matchAny(s.include, name)
	if err != nil || !included {
		return false, err
	}
	excluded, err := matchAny(s.exclude, name)
	if err != nil {
		return false, err
	}
	return !excluded, nil
}

func matchAny(patterns []string, name string) (bool, error) {
	for _, p := range patterns {
		ok, err := doublestar.Match(p, name)
		if err != nil {
			return false, fmt.Errorf("invalid pattern %q: %w", p, err)
		}
		if ok {
			return true, nil
		}
	}
	return false, nil
}

// ValidatePatterns reports the first pattern that doublestar cannot parse.
func ValidatePatterns(patterns []string) error {
	for _, p := range patterns {
		if !doublestar.ValidatePattern(p) {
			return fmt.Errorf("invalid glob pattern %q", p)
		}
	}
	return nil
}

// Verify Scanner implements the interface at compile time
var _ strata.CorpusScanner = (*Scanner)(nil)
