package report

import (
	"sort"

	"github.com/vvka-141/strata/pkg/strata"
)

// KindOrder is the order in which violation kinds are listed.
var KindOrder = []strata.ViolationKind{
	strata.KindReadFailure,
	strata.KindMissingMetadataBlock,
	strata.KindUnterminatedMetadataBlock,
	strata.KindMalformedMetadata,
	strata.KindMissingField,
	strata.KindPrefixMismatch,
	strata.KindLayerFieldMismatch,
	strata.KindBrokenReference,
	strata.KindIllegalComposition,
	strata.KindInvalidReference,
}

// LayerSummary holds the statistics of one layer.
type LayerSummary struct {
	Layer      string `json:"layer"`
	Level      int    `json:"level"`
	Missing    bool   `json:"missing,omitempty"`
	Files      int    `json:"files"`
	Passed     int    `json:"passed"`
	Failed     int    `json:"failed"`
	Violations int    `json:"violations"`
}

// Summary holds the statistics of a whole run.
type Summary struct {
	Layers     []LayerSummary               `json:"layers"`
	Files      int                          `json:"files"`
	Passed     int                          `json:"passed"`
	Failed     int                          `json:"failed"`
	Violations int                          `json:"violations"`
	ByKind     map[strata.ViolationKind]int `json:"by_kind"`
}

// KindCount pairs a violation kind with its number of occurrences.
type KindCount struct {
	Kind  strata.ViolationKind
	Count int
}

// Build computes the summary of result. Layers keep the order of the run,
// which is ascending level order.
func Build(result strata.RunResult) Summary {
	s := Summary{ByKind: make(map[strata.ViolationKind]int)}

	for _, lr := range result.Layers {
		ls := LayerSummary{Layer: lr.Layer, Level: lr.Level, Missing: lr.Missing}
		for _, dr := range lr.Documents {
			ls.Files++
			if dr.Passed() {
				ls.Passed++
			} else {
				ls.Failed++
			}
			ls.Violations += len(dr.Violations)
		}

		s.Files += ls.Files
		s.Passed += ls.Passed
		s.Failed += ls.Failed
		s.Violations += ls.Violations
		s.Layers = append(s.Layers, ls)
	}
	for _, v := range result.Violations() {
		s.ByKind[v.Kind]++
	}

	return s
}

// KindCounts returns the non-zero kind counts in KindOrder.
// Kinds not listed in KindOrder are appended at the end.
func (s Summary) KindCounts() []KindCount {
	var out []KindCount
	seen := make(map[strata.ViolationKind]bool, len(KindOrder))
	for _, k := range KindOrder {
		seen[k] = true
		if n := s.ByKind[k]; n > 0 {
			out = append(out, KindCount{Kind: k, Count: n})
		}
	}
	var extra []KindCount
	for k, n := range s.ByKind {
		if !seen[k] && n > 0 {
			extra = append(extra, KindCount{Kind: k, Count: n})
		}
	}
	sort.Slice(extra, func(i, j int) bool { return extra[i].Kind < extra[j].Kind })
	return append(out, extra...)
}
