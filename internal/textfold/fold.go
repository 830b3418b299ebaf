// Package textfold folds text into a case- and diacritic-insensitive form
// for comparison, keeping a map from folded runes back to source runes.
package textfold

import (
	"sort"
	"strings"
	"sync"
	"unicode"
	"unicode/utf8"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// chainPool hands out NFD -> strip(Mn) -> lower pipelines.
// A transform.Chain keeps state, so each borrower gets its own.
var chainPool = sync.Pool{
	New: func() any {
		return transform.Chain(
			norm.NFD,
			runes.Remove(runes.In(unicode.Mn)),
			runes.Map(unicode.ToLower),
		)
	},
}

// Mapped is the folded form of a source string.
//
// Every rune of Text came from exactly one source rune. Source runes that
// fold to nothing (standalone combining marks) are attributed to the source
// rune before them, so a folded span always maps to a contiguous source span.
type Mapped struct {
	Text string

	offsets []int // byte offset in Text of each folded rune
	starts  []int // source rune index each folded rune came from
	ends    []int // exclusive source rune end for each folded rune
	n       int   // source length in runes
}

// Fold returns the folded form of s.
func Fold(s string) string {
	if isASCIIAndLower(s) {
		return s
	}
	return FoldMapped(s).Text
}

// FoldMapped folds s one rune at a time and records where every folded
// rune came from.
func FoldMapped(s string) Mapped {
	t := chainPool.Get().(transform.Transformer)
	defer chainPool.Put(t)

	var (
		b      strings.Builder
		m      Mapped
		i      int
		folded string
	)
	b.Grow(len(s))

	for _, r := range s {
		folded = foldRune(t, r)
		for _, fr := range folded {
			m.offsets = append(m.offsets, b.Len())
			m.starts = append(m.starts, i)
			b.WriteRune(fr)
		}
		i++
	}

	m.Text = b.String()
	m.n = i
	m.ends = make([]int, len(m.starts))
	next := m.n
	for k := len(m.starts) - 1; k >= 0; k-- {
		if k+1 < len(m.starts) && m.starts[k+1] != m.starts[k] {
			next = m.starts[k+1]
		}
		m.ends[k] = next
	}
	return m
}

// foldRune folds a single source rune. The result may be empty.
func foldRune(t transform.Transformer, r rune) string {
	switch {
	case r == 'đ' || r == 'Đ':
		// Not a decomposable letter, so NFD leaves it alone.
		return "d"
	case r < utf8.RuneSelf:
		return string(unicode.ToLower(r))
	}
	out, _, err := transform.String(t, string(r))
	if err != nil {
		return string(unicode.ToLower(r))
	}
	return out
}

// SourceLen returns the length of the source string in runes.
func (m Mapped) SourceLen() int {
	return m.n
}

// Span maps the byte range [lo, hi) of Text, which must fall on rune
// boundaries, to a half-open rune range of the source string.
func (m Mapped) Span(lo, hi int) (start, end int) {
	a := m.runeAt(lo)
	if hi <= lo {
		if a < len(m.starts) {
			return m.starts[a], m.starts[a]
		}
		return m.n, m.n
	}
	z := m.runeAt(hi) - 1
	return m.starts[a], m.ends[z]
}

// runeAt converts a byte offset in Text to a folded rune index.
func (m Mapped) runeAt(b int) int {
	return sort.SearchInts(m.offsets, b)
}

// isASCIIAndLower reports whether s contains only ASCII bytes and no A..Z.
func isASCIIAndLower(s string) bool {
	for i := 0; i < len(s); i++ {
		c := s[i]
		if c >= utf8.RuneSelf || (c >= 'A' && c <= 'Z') {
			return false
		}
	}
	return true
}
