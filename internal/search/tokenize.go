package search

import (
	"strings"

	"github.com/LongTran04/notisearch/internal/textfold"
)

// termSeparator splits a query into terms. Only the space character
// separates terms; tabs and other whitespace stay inside a term.
const termSeparator = " "

// Tokenize splits a query into folded, non-empty terms in query order.
// Duplicates are kept. An empty query yields no terms, which callers treat
// as "no search active".
//
// Pieces that fold to nothing (a lone combining mark, for example) are
// dropped as well, since they can never produce a visible match.
func Tokenize(query string) []string {
	if query == "" {
		return nil
	}

	var terms []string
	for piece := range strings.SplitSeq(query, termSeparator) {
		if piece == "" {
			continue
		}
		if term := textfold.Fold(piece); term != "" {
			terms = append(terms, term)
		}
	}
	return terms
}
