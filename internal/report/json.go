package report

import (
	"io"

	"github.com/goccy/go-json"

	"github.com/vvka-141/strata/pkg/strata"
)

// JSONReport is the machine-readable form of a run.
type JSONReport struct {
	Root      string         `json:"root"`
	Mode      string         `json:"mode"`
	Passed    bool           `json:"passed"`
	Summary   Summary        `json:"summary"`
	Documents []JSONDocument `json:"documents"`
}

// JSONDocument is one document of a JSONReport.
type JSONDocument struct {
	Path  string `json:"path"`
	Layer string `json:"layer_directory"`
	strata.Document
	Passed     bool               `json:"passed"`
	Violations []strata.Violation `json:"violations"`
}

// NewJSONReport assembles the JSON form of result. Slices are never nil so
// that consumers always see arrays.
func NewJSONReport(summary Summary, result strata.RunResult) JSONReport {
	rep := JSONReport{
		Root:      result.Root,
		Mode:      result.Mode.String(),
		Passed:    !result.HasViolations(),
		Summary:   summary,
		Documents: []JSONDocument{},
	}
	if rep.Summary.Layers == nil {
		rep.Summary.Layers = []LayerSummary{}
	}

	for _, lr := range result.Layers {
		for _, dr := range lr.Documents {
			violations := dr.Violations
			if violations == nil {
				violations = []strata.Violation{}
			}
			rep.Documents = append(rep.Documents, JSONDocument{
				Path:       dr.Document.File.RelativePath,
				Layer:      lr.Layer,
				Document:   dr.Document,
				Passed:     dr.Passed(),
				Violations: violations,
			})
		}
	}
	return rep
}

// RenderJSON writes the indented JSON report of result to w.
func RenderJSON(w io.Writer, summary Summary, result strata.RunResult) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(NewJSONReport(summary, result))
}
