// Package filesystem provides the filesystem abstraction used to read a corpus.
//
// The validator never touches the OS directly: listing layer directories,
// reading documents and checking whether a composition target exists all go
// through FileSystemProvider. This keeps the engine testable with an
// in-memory corpus while the CLI uses the OS filesystem.
//
// Implementations:
//   - OSFileSystem: production implementation using the OS filesystem
//   - MemoryFileSystem: in-memory implementation for testing
package filesystem
