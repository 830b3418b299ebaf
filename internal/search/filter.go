package search

import (
	"context"
	"runtime"

	"golang.org/x/sync/errgroup"

	"github.com/LongTran04/notisearch/internal/textfold"
)

// Matches reports whether any term occurs in text. It agrees with
// FindPrimary: Matches is true exactly when FindPrimary finds a range.
func Matches(text string, terms []string) bool {
	if len(terms) == 0 {
		return false
	}
	_, ok := findPrimary(terms, textfold.FoldMapped(text))
	return ok
}

// FilterByQuery keeps the items whose text contains any query term.
// An empty query keeps every item.
func FilterByQuery[T any](items []T, query string, text func(T) string) []T {
	terms := Tokenize(query)
	if len(terms) == 0 {
		return items
	}

	result := make([]T, 0, len(items))
	for _, item := range items {
		if Matches(text(item), terms) {
			result = append(result, item)
		}
	}
	return result
}

// Result pairs an item with its computed snapshot.
type Result[T any] struct {
	Item     T
	Snapshot Snapshot
}

// SearchAll filters items by query against their row titles and computes a
// snapshot for every kept item. Rows are computed in parallel; results keep
// the input order. An empty query keeps every item with unhighlighted,
// untruncated snapshots.
func SearchAll[T any](ctx context.Context, items []T, query string, row func(T) Row, opts Options) ([]Result[T], error) {
	terms := Tokenize(query)

	rows := make([]Row, 0, len(items))
	kept := make([]T, 0, len(items))
	for _, item := range items {
		r := row(item)
		if len(terms) > 0 && !Matches(r.Title, terms) {
			continue
		}
		rows = append(rows, r)
		kept = append(kept, item)
	}

	results := make([]Result[T], len(kept))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(runtime.GOMAXPROCS(0))

	for i := range kept {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			results[i] = Result[T]{
				Item:     kept[i],
				Snapshot: Compute(rows[i], terms, opts),
			}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}
