package report

import (
	"fmt"
	"io"
	"strings"

	"github.com/vvka-141/strata/pkg/strata"
)

// Options controls the text report.
type Options struct {
	// MaxListed caps the number of violations printed. Values below 1 mean
	// strata.DefaultMaxListed.
	MaxListed int
	// Color enables ANSI styling.
	Color bool
}

// RenderText writes the human-readable report of result to w.
func RenderText(w io.Writer, summary Summary, result strata.RunResult, opts Options) error {
	maxListed := opts.MaxListed
	if maxListed < 1 {
		maxListed = strata.DefaultMaxListed
	}

	tw := &textWriter{w: w, st: newStyles(w, opts.Color)}

	tw.line(tw.st.title.Render(fmt.Sprintf("Corpus: %s (mode: %s)", result.Root, result.Mode)))
	tw.line("")
	tw.layerTable(summary, result.Mode)

	if result.Mode == strata.ModeStats {
		tw.line("")
		tw.line(tw.st.muted.Render("Statistics only: no document was read."))
		return tw.err
	}

	if counts := summary.KindCounts(); len(counts) > 0 {
		tw.line("")
		tw.line(tw.st.header.Render("Violations by kind:"))
		for _, kc := range counts {
			tw.line(fmt.Sprintf("  %-26s %d", kc.Kind, kc.Count))
		}
		tw.line("")
		tw.violations(result, summary.Violations, maxListed)
	}

	tw.line("")
	if summary.Failed == 0 {
		tw.line(tw.st.success.Render(fmt.Sprintf("%s All %d document(s) passed", SymbolCheck, summary.Files)))
	} else {
		tw.line(tw.st.failure.Render(fmt.Sprintf("%s %d of %d document(s) failed with %d violation(s)",
			SymbolCross, summary.Failed, summary.Files, summary.Violations)))
	}
	return tw.err
}

// textWriter remembers the first write error so rendering code stays linear.
type textWriter struct {
	w   io.Writer
	st  styles
	err error
}

func (t *textWriter) line(s string) {
	if t.err != nil {
		return
	}
	_, t.err = io.WriteString(t.w, s+"\n")
}

func (t *textWriter) layerTable(summary Summary, mode strata.Mode) {
	if mode == strata.ModeStats {
		t.line(t.st.header.Render(fmt.Sprintf("%-14s %-6s %6s", "LAYER", "LEVEL", "FILES")))
		for _, ls := range summary.Layers {
			t.line(fmt.Sprintf("%-14s %-6s %6d", ls.Layer, levelToken(ls.Level), ls.Files) + t.missing(ls))
		}
		t.line(t.st.header.Render(fmt.Sprintf("%-14s %-6s %6d", "TOTAL", "", summary.Files)))
		return
	}

	t.line(t.st.header.Render(fmt.Sprintf("%-14s %-6s %6s %7s %7s %11s", "LAYER", "LEVEL", "FILES", "PASSED", "FAILED", "VIOLATIONS")))
	for _, ls := range summary.Layers {
		failed := fmt.Sprintf("%7d", ls.Failed)
		if ls.Failed > 0 {
			failed = t.st.failure.Render(failed)
		}
		t.line(fmt.Sprintf("%-14s %-6s %6d %7d %s %11d", ls.Layer, levelToken(ls.Level), ls.Files, ls.Passed, failed, ls.Violations) + t.missing(ls))
	}
	t.line(t.st.header.Render(fmt.Sprintf("%-14s %-6s %6d %7d %7d %11d", "TOTAL", "", summary.Files, summary.Passed, summary.Failed, summary.Violations)))
}

func (t *textWriter) missing(ls LayerSummary) string {
	if !ls.Missing {
		return ""
	}
	return "  " + t.st.warning.Render("(directory missing)")
}

// violations lists at most limit violations grouped by document.
func (t *textWriter) violations(result strata.RunResult, total, limit int) {
	shown := total
	if shown > limit {
		shown = limit
	}
	t.line(t.st.header.Render(fmt.Sprintf("Violations (showing %d of %d):", shown, total)))

	listed := 0
	for _, lr := range result.Layers {
		for _, dr := range lr.Documents {
			if dr.Passed() {
				continue
			}
			if listed >= limit {
				break
			}
			t.line(t.st.failure.Render(SymbolCross + " " + dr.Document.File.RelativePath))
			for _, v := range dr.Violations {
				if listed >= limit {
					break
				}
				t.line(fmt.Sprintf("    %s %s %s", SymbolBullet, t.st.kind.Render("["+string(v.Kind)+"]"), indent(v.Message)))
				listed++
			}
		}
	}

	if rest := total - listed; rest > 0 {
		t.line(t.st.muted.Render(fmt.Sprintf("... and %d more violation(s); raise --max-listed to see them", rest)))
	}
}

func levelToken(level int) string {
	return fmt.Sprintf("L%d", level)
}

// indent keeps multi-line messages aligned under the bullet.
func indent(msg string) string {
	return strings.ReplaceAll(msg, "\n", "\n      ")
}
