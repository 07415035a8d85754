package filesystem

import (
	"fmt"
	"io/fs"
	"path"
	"path/filepath"
	"sort"
	"strings"
	"time"
)

// memoryFileInfo implements fs.FileInfo for in-memory entries
type memoryFileInfo struct {
	name    string
	size    int64
	mode    fs.FileMode
	modTime time.Time
	isDir   bool
}

func (f *memoryFileInfo) Name() string       { return f.name }
func (f *memoryFileInfo) Size() int64        { return f.size }
func (f *memoryFileInfo) Mode() fs.FileMode  { return f.mode }
func (f *memoryFileInfo) ModTime() time.Time { return f.modTime }
func (f *memoryFileInfo) IsDir() bool        { return f.isDir }
func (f *memoryFileInfo) Sys() interface{}   { return nil }

type memoryEntry struct {
	content []byte
	info    *memoryFileInfo
	readErr error
}

// MemoryFileSystem implements FileSystemProvider for in-memory testing.
// Paths are slash-separated; relative paths are resolved against root.
// Not safe for concurrent mutation.
type MemoryFileSystem struct {
	entries map[string]*memoryEntry
	root    string
}

// NewMemoryFileSystem creates a new in-memory filesystem rooted at root.
func NewMemoryFileSystem(root string) *MemoryFileSystem {
	root = path.Clean(filepath.ToSlash(root))
	mfs := &MemoryFileSystem{
		entries: make(map[string]*memoryEntry),
		root:    root,
	}
	mfs.addDir(root)
	return mfs
}

// Root returns the root directory of the filesystem.
func (mfs *MemoryFileSystem) Root() string { return mfs.root }

// AddFile adds a file, creating its parent directories.
func (mfs *MemoryFileSystem) AddFile(filePath string, content string) {
	abs := mfs.abs(filePath)
	mfs.entries[abs] = &memoryEntry{
		content: []byte(content),
		info: &memoryFileInfo{
			name:    path.Base(abs),
			size:    int64(len(content)),
			mode:    0644,
			modTime: time.Now(),
		},
	}
	mfs.ensureParents(abs)
}

// AddDir adds an empty directory, creating its parents.
func (mfs *MemoryFileSystem) AddDir(dirPath string) {
	abs := mfs.abs(dirPath)
	mfs.addDir(abs)
	mfs.ensureParents(abs)
}

// FailRead makes every subsequent ReadFile of filePath return err.
// The file must already exist.
func (mfs *MemoryFileSystem) FailRead(filePath string, err error) {
	if e, ok := mfs.entries[mfs.abs(filePath)]; ok {
		e.readErr = err
	}
}

func (mfs *MemoryFileSystem) addDir(abs string) {
	if _, ok := mfs.entries[abs]; ok {
		return
	}
	mfs.entries[abs] = &memoryEntry{
		info: &memoryFileInfo{
			name:    path.Base(abs),
			mode:    0755 | fs.ModeDir,
			modTime: time.Now(),
			isDir:   true,
		},
	}
}

func (mfs *MemoryFileSystem) ensureParents(abs string) {
	for dir := path.Dir(abs); dir != abs; abs, dir = dir, path.Dir(dir) {
		if _, ok := mfs.entries[dir]; ok {
			return
		}
		mfs.addDir(dir)
	}
}

func (mfs *MemoryFileSystem) abs(p string) string {
	p = filepath.ToSlash(p)
	if p == "" || p == "." {
		return mfs.root
	}
	if !path.IsAbs(p) {
		p = path.Join(mfs.root, p)
	}
	return path.Clean(p)
}

func (mfs *MemoryFileSystem) lookup(op, p string) (*memoryEntry, error) {
	e, ok := mfs.entries[mfs.abs(p)]
	if !ok {
		return nil, &fs.PathError{Op: op, Path: p, Err: fs.ErrNotExist}
	}
	return e, nil
}

// ReadFile implements FileSystemProvider.ReadFile
func (mfs *MemoryFileSystem) ReadFile(filePath string) ([]byte, error) {
	e, err := mfs.lookup("read", filePath)
	if err != nil {
		return nil, err
	}
	if e.info.isDir {
		return nil, fmt.Errorf("cannot read directory: %s", filePath)
	}
	if e.readErr != nil {
		return nil, &fs.PathError{Op: "read", Path: filePath, Err: e.readErr}
	}
	out := make([]byte, len(e.content))
	copy(out, e.content)
	return out, nil
}

// ReadDir implements FileSystemProvider.ReadDir
func (mfs *MemoryFileSystem) ReadDir(dirPath string) ([]FileInfo, error) {
	e, err := mfs.lookup("readdir", dirPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read directory: %w", err)
	}
	if !e.info.isDir {
		return nil, fmt.Errorf("path is not a directory: %s", dirPath)
	}

	prefix := mfs.abs(dirPath)
	if prefix != "/" {
		prefix += "/"
	}

	var result []FileInfo
	for p, child := range mfs.entries {
		if !strings.HasPrefix(p, prefix) {
			continue
		}
		if strings.Contains(strings.TrimPrefix(p, prefix), "/") {
			continue
		}
		result = append(result, child.info)
	}

	sort.Slice(result, func(i, j int) bool {
		return result[i].Name() < result[j].Name()
	})
	return result, nil
}

// Stat implements FileSystemProvider.Stat
func (mfs *MemoryFileSystem) Stat(filePath string) (FileInfo, error) {
	e, err := mfs.lookup("stat", filePath)
	if err != nil {
		return nil, err
	}
	return e.info, nil
}

var _ FileSystemProvider = (*MemoryFileSystem)(nil)
