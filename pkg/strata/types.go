package strata

import (
	"fmt"
	"strings"
)

// Mode selects which checks a validation run performs.
type Mode int

const (
	// ModeFull extracts metadata and runs schema and composition checks.
	ModeFull Mode = iota
	// ModeReferences extracts metadata and runs composition checks only.
	ModeReferences
	// ModeStats only counts documents; no file is read.
	ModeStats
)

// String returns the CLI name of the mode.
func (m Mode) String() string {
	switch m {
	case ModeFull:
		return "full"
	case ModeReferences:
		return "refs"
	case ModeStats:
		return "stats"
	default:
		return fmt.Sprintf("Mode(%d)", int(m))
	}
}

// ReferencePolicy controls which composition entries are resolved.
type ReferencePolicy int

const (
	// PolicyPermissive resolves only string entries starting with "../";
	// everything else is accepted without checking.
	PolicyPermissive ReferencePolicy = iota
	// PolicyStrict resolves every string entry and reports non-string
	// entries as InvalidReference.
	PolicyStrict
)

// ViolationKind classifies a detected rule breach.
type ViolationKind string

const (
	KindMissingMetadataBlock      ViolationKind = "MissingMetadataBlock"
	KindUnterminatedMetadataBlock ViolationKind = "UnterminatedMetadataBlock"
	KindMalformedMetadata         ViolationKind = "MalformedMetadata"
	KindMissingField              ViolationKind = "MissingField"
	KindPrefixMismatch            ViolationKind = "PrefixMismatch"
	KindLayerFieldMismatch        ViolationKind = "LayerFieldMismatch"
	KindBrokenReference           ViolationKind = "BrokenReference"
	KindIllegalComposition        ViolationKind = "IllegalComposition"
	KindInvalidReference          ViolationKind = "InvalidReference"
	KindReadFailure               ViolationKind = "ReadFailure"
)

// Violation is one detected rule breach, scoped to a single document.
// Violations are plain values; two violations with the same fields are equal.
type Violation struct {
	Path    string        `json:"path"`
	Kind    ViolationKind `json:"kind"`
	Message string        `json:"message"`
}

func (v Violation) String() string {
	return fmt.Sprintf("%s: [%s] %s", v.Path, v.Kind, v.Message)
}

// NewViolation builds a violation with a formatted message.
func NewViolation(path string, kind ViolationKind, format string, args ...interface{}) Violation {
	return Violation{Path: path, Kind: kind, Message: fmt.Sprintf(format, args...)}
}

// Document is the typed view of one validated document.
// Fields are empty when the metadata block could not be extracted.
type Document struct {
	File        DocumentFile `json:"-"`
	Key         string       `json:"key"`
	Checksum    string       `json:"checksum,omitempty"`
	RawChecksum string       `json:"raw_checksum,omitempty"`
	ID          string       `json:"id,omitempty"`
	Name        string       `json:"name,omitempty"`
	Version     string       `json:"version,omitempty"`
	LayerField  string       `json:"layer,omitempty"`
	Category    string       `json:"category,omitempty"`
	Description string       `json:"description,omitempty"`
	Tags        []string     `json:"tags,omitempty"`
	Composes    []string     `json:"composes,omitempty"`
}

// DocumentResult is the outcome of validating one document.
type DocumentResult struct {
	Document   Document
	Violations []Violation
}

// Passed reports whether the document produced no violations.
func (r DocumentResult) Passed() bool {
	return len(r.Violations) == 0
}

// LayerResult groups document results for one layer.
type LayerResult struct {
	Layer     string
	Level     int
	Missing   bool
	Documents []DocumentResult
}

// RunResult is the outcome of one validation run over a corpus.
type RunResult struct {
	Root   string
	Mode   Mode
	Layers []LayerResult
}

// Violations returns every violation of the run in layer, then document order.
func (r RunResult) Violations() []Violation {
	var all []Violation
	for _, l := range r.Layers {
		for _, d := range l.Documents {
			all = append(all, d.Violations...)
		}
	}
	return all
}

// HasViolations reports whether any document failed.
func (r RunResult) HasViolations() bool {
	for _, l := range r.Layers {
		for _, d := range l.Documents {
			if !d.Passed() {
				return true
			}
		}
	}
	return false
}

// ParseMode converts a CLI mode name to a Mode.
func ParseMode(s string) (Mode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "full":
		return ModeFull, nil
	case "refs", "references":
		return ModeReferences, nil
	case "stats", "statistics":
		return ModeStats, nil
	default:
		return ModeFull, fmt.Errorf("unknown mode %q: %w", s, ErrInvalidConfig)
	}
}
