package tui

import (
	"charm.land/lipgloss/v2"

	"github.com/xonecas/caffee/internal/highlight"
	"github.com/xonecas/caffee/internal/syntax"
)

// Styles holds every lipgloss style the views use, derived once from the
// configured Chroma theme.
type Styles struct {
	Text       lipgloss.Style
	LineNum    lipgloss.Style
	Selection  lipgloss.Style
	Border     lipgloss.Style
	StatusText lipgloss.Style
	StatusMark lipgloss.Style
	Error      lipgloss.Style
	Accent     lipgloss.Style
	Prompt     lipgloss.Style
	TermText   lipgloss.Style
	TermDim    lipgloss.Style

	Category map[syntax.Category]lipgloss.Style
}

// NewStyles derives the style set from a Chroma theme name.
func NewStyles(theme string) Styles {
	p := highlight.ThemePalette(theme)
	bg := lipgloss.Color(p.Bg)

	base := lipgloss.NewStyle().Background(bg)
	s := Styles{
		Text:       base.Foreground(lipgloss.Color(p.Fg)),
		LineNum:    base.Foreground(lipgloss.Color(p.Dim)),
		Selection:  lipgloss.NewStyle().Foreground(lipgloss.Color(p.Bg)).Background(lipgloss.Color(p.Muted)),
		Border:     base.Foreground(lipgloss.Color(p.Border)),
		StatusText: base.Foreground(lipgloss.Color(p.Muted)),
		StatusMark: base.Foreground(lipgloss.Color(p.Accent)),
		Error:      base.Foreground(lipgloss.Color(p.Error)),
		Accent:     base.Foreground(lipgloss.Color(p.Accent)),
		Prompt:     base.Foreground(lipgloss.Color(p.Fg)),
		TermText:   base.Foreground(lipgloss.Color(p.Fg)),
		TermDim:    base.Foreground(lipgloss.Color(p.Dim)),
	}

	s.Category = make(map[syntax.Category]lipgloss.Style)
	for cat, hex := range highlight.CategoryColors(theme) {
		s.Category[cat] = base.Foreground(lipgloss.Color(hex))
	}
	return s
}
