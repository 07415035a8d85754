package filesystem

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
)

// OSFileSystem reads the corpus from disk.
type OSFileSystem struct{}

// NewOSFileSystem creates a new OS filesystem provider.
func NewOSFileSystem() *OSFileSystem {
	return &OSFileSystem{}
}

// ReadFile reads a document in one call; the file is closed before returning.
func (p *OSFileSystem) ReadFile(path string) ([]byte, error) {
	return os.ReadFile(path)
}

// ReadDir lists path in name order. Entries removed between the listing and
// their stat are skipped rather than failing the whole directory.
func (p *OSFileSystem) ReadDir(path string) ([]FileInfo, error) {
	entries, err := os.ReadDir(path)
	if err != nil {
		return nil, fmt.Errorf("list %s: %w", path, err)
	}

	infos := make([]FileInfo, 0, len(entries))
	for _, entry := range entries {
		info, err := entry.Info()
		if errors.Is(err, fs.ErrNotExist) {
			continue
		}
		if err != nil {
			return nil, fmt.Errorf("stat %s in %s: %w", entry.Name(), path, err)
		}
		infos = append(infos, info)
	}
	return infos, nil
}

// Stat follows symlinks, so a link to an existing document counts as existing.
func (p *OSFileSystem) Stat(path string) (FileInfo, error) {
	return os.Stat(path)
}

var _ FileSystemProvider = (*OSFileSystem)(nil)
