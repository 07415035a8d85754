package filesystem

import (
	"io/fs"
)

// FileInfo is an alias for fs.FileInfo from the standard library.
type FileInfo = fs.FileInfo

// FileSystemProvider gives read-only access to a corpus.
type FileSystemProvider interface {
	// ReadFile reads the whole file at path.
	ReadFile(path string) ([]byte, error)

	// ReadDir returns the entries directly inside path, sorted by name.
	ReadDir(path string) ([]FileInfo, error)

	// Stat returns file information for path.
	// A missing path yields an error matching fs.ErrNotExist.
	Stat(path string) (FileInfo, error)
}

// Exists reports whether path exists according to p.
// Any Stat error counts as not existing, including a path that runs through
// a regular file or exceeds the name length limit.
func Exists(p FileSystemProvider, path string) bool {
	_, err := p.Stat(path)
	return err == nil
}
