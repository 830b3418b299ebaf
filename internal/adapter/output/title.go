package output

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/LongTran04/notisearch/internal/search"
)

// TitleStyle decorates the highlighted segments of a displayed title.
type TitleStyle struct {
	Match    func(string) string
	Emphasis func(string) string
}

// ColorTitleStyle renders emphasis in bold and matches in bold accent colour.
func ColorTitleStyle(accent string) TitleStyle {
	emphasis := lipgloss.NewStyle().Bold(true).Inline(true)
	match := emphasis.Foreground(lipgloss.Color(accent))
	return TitleStyle{
		Match:    match.Render,
		Emphasis: emphasis.Render,
	}
}

// MarkerTitleStyle renders matches as [text] and emphasis as *text*.
func MarkerTitleStyle() TitleStyle {
	return TitleStyle{
		Match:    func(s string) string { return "[" + s + "]" },
		Emphasis: func(s string) string { return "*" + s + "*" },
	}
}

type segmentKind uint8

const (
	segmentPlain segmentKind = iota
	segmentEmphasis
	segmentMatch
)

// RenderTitle renders the snapshot's displayed title on one line with its
// ranges decorated. Match styling wins where a match and an emphasis
// range overlap. Adjacent ranges stay separate segments.
func RenderTitle(snap search.Snapshot, style TitleStyle) string {
	rs := []rune(snap.DisplayedTitle)

	// owner[i] is 0 for plain runes, else 1 + the index of the range that
	// claims rune i, counting emphasis ranges before match ranges.
	owner := make([]int, len(rs))
	mark(owner, snap.EmphasisRanges, 1)
	mark(owner, snap.MatchRanges, 1+len(snap.EmphasisRanges))

	kindOf := func(o int) segmentKind {
		switch {
		case o == 0:
			return segmentPlain
		case o <= len(snap.EmphasisRanges):
			return segmentEmphasis
		default:
			return segmentMatch
		}
	}

	var sb strings.Builder
	start := 0
	for i := 1; i <= len(rs); i++ {
		if i < len(rs) && owner[i] == owner[start] {
			continue
		}
		sb.WriteString(decorate(flatten(rs[start:i]), kindOf(owner[start]), style))
		start = i
	}
	return sb.String()
}

func mark(owner []int, ranges []search.Range, base int) {
	for n, r := range ranges {
		for i := max(r.Start, 0); i < r.End() && i < len(owner); i++ {
			owner[i] = base + n
		}
	}
}

func decorate(s string, kind segmentKind, style TitleStyle) string {
	switch kind {
	case segmentMatch:
		if style.Match != nil {
			return style.Match(s)
		}
	case segmentEmphasis:
		if style.Emphasis != nil {
			return style.Emphasis(s)
		}
	}
	return s
}

// flatten replaces line breaks and tabs with spaces.
func flatten(rs []rune) string {
	out := make([]rune, len(rs))
	for i, r := range rs {
		switch r {
		case '\n', '\r', '\t':
			out[i] = ' '
		default:
			out[i] = r
		}
	}
	return string(out)
}
