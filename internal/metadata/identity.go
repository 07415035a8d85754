package metadata

import (
	"path/filepath"
	"strings"

	"github.com/google/uuid"
)

// NamespaceDocumentKey is the UUID namespace for document keys, derived from
// "strata/document-key/v1" under the URL namespace.
var NamespaceDocumentKey = uuid.NewSHA1(uuid.NameSpaceURL, []byte("strata/document-key/v1"))

// GenerateDocumentKey creates a deterministic UUID v5 from a corpus-relative
// path. The key is stable across runs and machines, so reports from two runs
// can be joined on it.
//
// Path Normalization:
//  1. Forward slashes
//  2. Lowercase (case-insensitive filesystems compatibility)
//  3. Leading "./" removed
func GenerateDocumentKey(relPath string) uuid.UUID {
	return uuid.NewSHA1(NamespaceDocumentKey, []byte(normalizePath(relPath)))
}

func normalizePath(path string) string {
	normalized := strings.ToLower(filepath.ToSlash(path))
	return strings.TrimPrefix(normalized, "./")
}
