package services

import (
	"errors"
	"fmt"
	"path/filepath"

	"github.com/vvka-141/strata/internal/checksum"
	"github.com/vvka-141/strata/internal/files/filesystem"
	"github.com/vvka-141/strata/internal/layers"
	"github.com/vvka-141/strata/internal/metadata"
	"github.com/vvka-141/strata/internal/rules"
	"github.com/vvka-141/strata/pkg/strata"
)

// ValidationService runs the per-document checks over a scanned corpus.
// Each document is validated independently and results are returned as
// values; the service holds no state between runs, so repeated runs over an
// unchanged corpus yield identical results.
type ValidationService struct {
	registry   *layers.Registry
	fsProvider filesystem.FileSystemProvider
	calculator checksum.Calculator
	logger     strata.Logger
	policy     strata.ReferencePolicy
}

// NewValidationService creates a ValidationService with all dependencies injected.
// Panics on nil dependencies: these are programmer errors that should fail
// loudly at startup.
func NewValidationService(
	registry *layers.Registry,
	fsProvider filesystem.FileSystemProvider,
	calculator checksum.Calculator,
	logger strata.Logger,
	policy strata.ReferencePolicy,
) *ValidationService {
	if registry == nil {
		panic("registry cannot be nil")
	}
	if fsProvider == nil {
		panic("fsProvider cannot be nil")
	}
	if calculator == nil {
		panic("calculator cannot be nil")
	}
	if logger == nil {
		panic("logger cannot be nil")
	}
	return &ValidationService{
		registry:   registry,
		fsProvider: fsProvider,
		calculator: calculator,
		logger:     logger,
		policy:     policy,
	}
}

// Run validates every document of scan according to mode.
// A failing document never prevents the others from being validated.
func (s *ValidationService) Run(scan strata.CorpusScanResult, mode strata.Mode) strata.RunResult {
	resolver := rules.NewResolver(scan.Root, s.fsProvider, s.policy)
	result := strata.RunResult{Root: scan.Root, Mode: mode}

	for _, lf := range scan.Layers {
		layer, ok := s.registry.Lookup(lf.Layer)
		if !ok {
			s.logger.Error("Skipping unknown layer %q", lf.Layer)
			continue
		}
		if lf.Missing {
			s.logger.Verbose("Layer directory %s not found, counting as empty", lf.Layer)
		}

		lr := strata.LayerResult{Layer: layer.Name, Level: layer.Level, Missing: lf.Missing}
		for _, file := range lf.Files {
			lr.Documents = append(lr.Documents, s.validateDocument(file, layer, resolver, mode))
		}
		result.Layers = append(result.Layers, lr)
	}

	return result
}

func (s *ValidationService) validateDocument(file strata.DocumentFile, layer layers.Layer, resolver *rules.Resolver, mode strata.Mode) strata.DocumentResult {
	doc := strata.Document{
		File: file,
		Key:  metadata.GenerateDocumentKey(file.RelativePath).String(),
	}
	if mode == strata.ModeStats {
		return strata.DocumentResult{Document: doc}
	}

	s.logger.Verbose("Validating %s", file.RelativePath)

	content, err := s.fsProvider.ReadFile(file.Path)
	if err != nil {
		s.logger.Verbose("Failed to read %s: %v", file.RelativePath, err)
		if mode == strata.ModeReferences {
			return strata.DocumentResult{Document: doc}
		}
		return strata.DocumentResult{
			Document: doc,
			Violations: []strata.Violation{
				strata.NewViolation(file.RelativePath, strata.KindReadFailure, "cannot read document: %v", err),
			},
		}
	}

	doc.Checksum = s.calculator.CalculateNormalized(content)
	doc.RawChecksum = s.calculator.CalculateRaw(content)

	meta, err := metadata.Extract(string(content), file.RelativePath)
	if err != nil {
		if mode == strata.ModeReferences {
			s.logger.Verbose("Skipping references of %s: %v", file.RelativePath, err)
			return strata.DocumentResult{Document: doc}
		}
		return strata.DocumentResult{
			Document:   doc,
			Violations: []strata.Violation{extractionViolation(file.RelativePath, err)},
		}
	}
	populate(&doc, meta)

	var violations []strata.Violation
	composition := resolver.Check(meta, file.RelativePath, filepath.Dir(file.Path), layer)
	if mode == strata.ModeFull {
		violations = append(violations, rules.CheckSchema(meta, file.RelativePath, layer)...)
		violations = append(violations, composition...)
	} else {
		violations = brokenOnly(composition)
	}

	if len(violations) > 0 {
		s.logger.Verbose("%s: %d violation(s)", file.RelativePath, len(violations))
	}
	return strata.DocumentResult{Document: doc, Violations: violations}
}

// brokenOnly keeps the BrokenReference violations of vs.
func brokenOnly(vs []strata.Violation) []strata.Violation {
	var out []strata.Violation
	for _, v := range vs {
		if v.Kind == strata.KindBrokenReference {
			out = append(out, v)
		}
	}
	return out
}

// extractionViolation maps an Extract error onto its violation kind.
func extractionViolation(path string, err error) strata.Violation {
	kind := strata.KindMalformedMetadata
	switch {
	case errors.Is(err, metadata.ErrMissingMetadataBlock):
		kind = strata.KindMissingMetadataBlock
	case errors.Is(err, metadata.ErrUnterminatedMetadataBlock):
		kind = strata.KindUnterminatedMetadataBlock
	}

	var metaErr *metadata.MetadataError
	if !errors.As(err, &metaErr) {
		return strata.NewViolation(path, kind, "%v", err)
	}
	msg := metaErr.Message
	if metaErr.Field != "" {
		msg = fmt.Sprintf("field %q: %s", metaErr.Field, msg)
	}
	if metaErr.Line > 0 {
		msg = fmt.Sprintf("line %d: %s", metaErr.Line, msg)
	}
	return strata.NewViolation(path, kind, "%s", msg)
}

// populate copies the well-known fields of meta into doc.
func populate(doc *strata.Document, meta metadata.Metadata) {
	doc.ID, _ = meta.String(rules.FieldID)
	doc.Name, _ = meta.String(rules.FieldName)
	doc.Version, _ = meta.String(rules.FieldVersion)
	doc.LayerField, _ = meta.String(rules.FieldLayer)
	doc.Category, _ = meta.String(rules.FieldCategory)
	doc.Description, _ = meta.String(rules.FieldDescription)
	doc.Tags = meta.Strings(rules.FieldTags)
	doc.Composes = meta.Strings(strata.FieldComposes)
}
