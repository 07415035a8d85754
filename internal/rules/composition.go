package rules

import (
	"path/filepath"
	"strings"

	"github.com/vvka-141/strata/internal/files/filesystem"
	"github.com/vvka-141/strata/internal/layers"
	"github.com/vvka-141/strata/internal/metadata"
	"github.com/vvka-141/strata/pkg/strata"
)

// outsideCorpus names the target layer of a reference that leaves the root.
const outsideCorpus = "(outside corpus)"

// Resolver checks composition references of documents under one corpus root.
// It is safe for concurrent use as long as the filesystem provider is.
type Resolver struct {
	root   string
	fs     filesystem.FileSystemProvider
	policy strata.ReferencePolicy
}

// NewResolver creates a resolver for the corpus at root.
// Panics if fsProvider is nil.
func NewResolver(root string, fsProvider filesystem.FileSystemProvider, policy strata.ReferencePolicy) *Resolver {
	if fsProvider == nil {
		panic("fsProvider cannot be nil")
	}
	return &Resolver{
		root:   filepath.Clean(root),
		fs:     fsProvider,
		policy: policy,
	}
}

// Check resolves every entry of the composes field relative to docDir and
// verifies that each target exists and lives in a layer that layer allows.
//
// Under the permissive policy, entries that are not strings or do not start
// with "../" are accepted unchecked, and so is a composes field that is not a
// list. Under the strict policy, a non-list field and non-string or absolute
// entries are InvalidReference and every string entry is resolved.
func (r *Resolver) Check(meta metadata.Metadata, filePath, docDir string, layer layers.Layer) []strata.Violation {
	composes, ok := meta[strata.FieldComposes]
	if !ok || composes.IsEmpty() {
		return nil
	}

	if composes.Kind() != metadata.KindList {
		if r.policy == strata.PolicyStrict {
			return []strata.Violation{strata.NewViolation(filePath, strata.KindInvalidReference,
				"composes must be a list of paths, got %s", composes.Kind())}
		}
		return nil
	}

	var violations []strata.Violation
	for _, entry := range composes.Items() {
		ref, isString := entry.AsString()
		if !r.inScope(ref, isString) {
			if r.policy == strata.PolicyStrict {
				violations = append(violations, strata.NewViolation(filePath, strata.KindInvalidReference,
					"composition entry %q is not a relative path", entry.Text()))
			}
			continue
		}
		if v, bad := r.checkReference(ref, filePath, docDir, layer); bad {
			violations = append(violations, v)
		}
	}
	return violations
}

// inScope reports whether an entry is resolved under the active policy.
func (r *Resolver) inScope(ref string, isString bool) bool {
	if !isString {
		return false
	}
	if r.policy == strata.PolicyStrict {
		return ref != "" && !filepath.IsAbs(ref) && !strings.HasPrefix(ref, "/")
	}
	return strings.HasPrefix(ref, strata.ReferencePrefix)
}

func (r *Resolver) checkReference(ref, filePath, docDir string, layer layers.Layer) (strata.Violation, bool) {
	target := filepath.Clean(filepath.Join(docDir, filepath.FromSlash(ref)))

	// A missing target has no layer, so it is only ever a broken reference.
	if !filesystem.Exists(r.fs, target) {
		return strata.NewViolation(filePath, strata.KindBrokenReference,
			"broken reference %q: target does not exist", ref), true
	}

	targetLayer := r.layerOf(target)
	if !layer.CanReference(targetLayer) {
		return strata.NewViolation(filePath, strata.KindIllegalComposition,
			"%s may not compose %s (reference %q)", layer.Name, targetLayer, ref), true
	}
	return strata.Violation{}, false
}

// layerOf returns the first path segment of target below the corpus root.
func (r *Resolver) layerOf(target string) string {
	rel, err := filepath.Rel(r.root, target)
	if err != nil {
		return outsideCorpus
	}
	rel = filepath.ToSlash(rel)
	if rel == "." || rel == ".." || strings.HasPrefix(rel, "../") {
		return outsideCorpus
	}
	segment, _, _ := strings.Cut(rel, "/")
	return segment
}
