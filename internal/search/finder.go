package search

import (
	"regexp"
	"strings"

	"github.com/LongTran04/notisearch/internal/textfold"
)

// FindPrimary returns the left-most occurrence of the first term, in query
// order, that occurs anywhere in text. Later terms are not considered once
// one is found, even if they occur earlier in the text.
//
// Terms must come from Tokenize. The returned range indexes text itself,
// not its folded form.
func FindPrimary(terms []string, text string) (Range, bool) {
	if len(terms) == 0 {
		return Range{}, false
	}
	return findPrimary(terms, textfold.FoldMapped(text))
}

func findPrimary(terms []string, m textfold.Mapped) (Range, bool) {
	for _, term := range terms {
		idx := strings.Index(m.Text, term)
		if idx < 0 {
			continue
		}
		r := spanRange(m, idx, idx+len(term))
		if r.Empty() {
			continue
		}
		return r, true
	}
	return Range{}, false
}

// FindAll returns every non-overlapping occurrence of any term in text,
// left to right. At a given position the earliest term in query order wins,
// and scanning resumes right after each match.
//
// Terms are matched literally.
func FindAll(terms []string, text string) []Range {
	if len(terms) == 0 {
		return nil
	}
	return findAll(terms, textfold.FoldMapped(text))
}

func findAll(terms []string, m textfold.Mapped) []Range {
	locs := alternation(terms).FindAllStringIndex(m.Text, -1)
	if len(locs) == 0 {
		return nil
	}

	// A source rune can fold to several runes, so distinct folded matches
	// may map back onto the same source span.
	ranges := make([]Range, 0, len(locs))
	for _, loc := range locs {
		r := spanRange(m, loc[0], loc[1])
		if r.Empty() {
			continue
		}
		if n := len(ranges); n > 0 && r.Start < ranges[n-1].End() {
			continue
		}
		ranges = append(ranges, r)
	}
	return ranges
}

// alternation compiles terms into a single literal alternation.
func alternation(terms []string) *regexp.Regexp {
	quoted := make([]string, len(terms))
	for i, term := range terms {
		quoted[i] = regexp.QuoteMeta(term)
	}
	// Quoted literals always compile.
	return regexp.MustCompile(strings.Join(quoted, "|"))
}

func spanRange(m textfold.Mapped, lo, hi int) Range {
	start, end := m.Span(lo, hi)
	return Range{Start: start, Length: end - start}
}
