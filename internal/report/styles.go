package report

import (
	"io"

	"github.com/charmbracelet/lipgloss"
)

// Color palette - keeping it minimal and accessible.
var (
	ColorPrimary   = lipgloss.Color("39")  // Blue
	ColorSecondary = lipgloss.Color("245") // Gray
	ColorSuccess   = lipgloss.Color("34")  // Green
	ColorWarning   = lipgloss.Color("214") // Orange
	ColorError     = lipgloss.Color("196") // Red
	ColorMuted     = lipgloss.Color("240") // Dark gray
)

// Symbols for visual feedback.
const (
	SymbolCheck  = "✓"
	SymbolCross  = "✗"
	SymbolBullet = "•"
)

// styles is the set of styles used by the text report. All styles are
// bound to the renderer of the output writer; without colour they are plain.
type styles struct {
	title   lipgloss.Style
	header  lipgloss.Style
	success lipgloss.Style
	failure lipgloss.Style
	warning lipgloss.Style
	muted   lipgloss.Style
	kind    lipgloss.Style
}

func newStyles(w io.Writer, color bool) styles {
	r := lipgloss.NewRenderer(w)
	if !color {
		plain := r.NewStyle()
		return styles{plain, plain, plain, plain, plain, plain, plain}
	}
	return styles{
		title:   r.NewStyle().Bold(true).Foreground(ColorPrimary),
		header:  r.NewStyle().Bold(true).Foreground(ColorSecondary),
		success: r.NewStyle().Foreground(ColorSuccess),
		failure: r.NewStyle().Foreground(ColorError),
		warning: r.NewStyle().Foreground(ColorWarning),
		muted:   r.NewStyle().Foreground(ColorMuted),
		kind:    r.NewStyle().Bold(true),
	}
}
