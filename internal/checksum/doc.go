// Package checksum provides document content hashing with normalization support.
//
// Two checksums are available:
//
//   - Raw checksum: Hash of the exact file content (detects all changes)
//   - Normalized checksum: Hash after removing HTML comments and layout-only
//     whitespace, so that re-wrapping blank lines or switching line endings
//     does not change a document's identity
//
// # Normalization Strategy
//
//  1. Convert CRLF and CR line endings to LF
//  2. Remove HTML comments (<!-- ... -->)
//  3. Trim trailing whitespace on every line
//  4. Collapse runs of blank lines to a single blank line
//  5. Trim leading/trailing blank lines
//
// Case and inline spacing are preserved: in Markdown both carry meaning.
//
// # Example Usage
//
//	calculator := checksum.New()
//	rawChecksum := calculator.CalculateRaw(fileContent)
//	normalizedChecksum := calculator.CalculateNormalized(fileContent)
//
// # Thread Safety
//
// SHA256 is safe for concurrent use by multiple goroutines.
package checksum
