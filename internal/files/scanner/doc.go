// Package scanner enumerates the documents of a layered corpus.
//
// A corpus root holds one directory per layer. The scanner lists the regular
// files directly inside each layer directory whose base name matches an
// include glob and no exclude glob (doublestar syntax). Files are returned
// sorted by name so that runs over an unchanged corpus are identical.
//
// The scanner is filesystem-agnostic through filesystem.FileSystemProvider,
// enabling both production use with the OS filesystem and testing with
// in-memory filesystems.
package scanner
