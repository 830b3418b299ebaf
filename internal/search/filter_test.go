package search

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type testItem struct {
	id   string
	text string
}

func testItems() []testItem {
	return []testItem{
		{"1", "Nguyễn Văn An đã bình luận về ảnh của bạn"},
		{"2", "Trần Thị Bình đã thích bài viết của bạn"},
		{"3", "Lê Đức Anh đã nhắc đến bạn trong một bình luận"},
		{"4", "Your order has shipped"},
		{"5", "(urgent) server [prod] is down"},
	}
}

func itemText(i testItem) string { return i.text }

func itemRow(i testItem) Row { return Row{Title: i.text, Source: i.text} }

func ids(items []testItem) []string {
	var out []string
	for _, i := range items {
		out = append(out, i.id)
	}
	return out
}

func TestFilterByQuery(t *testing.T) {
	tests := []struct {
		name     string
		query    string
		expected []string
	}{
		{"empty keeps all", "", []string{"1", "2", "3", "4", "5"}},
		{"spaces keep all", "   ", []string{"1", "2", "3", "4", "5"}},
		{"diacritic insensitive", "binh luan", []string{"1", "2", "3"}},
		{"any term", "order duc", []string{"3", "4"}},
		{"d stroke", "Duc", []string{"3"}},
		{"case insensitive", "SHIPPED", []string{"4"}},
		{"literal brackets", "[prod]", []string{"5"}},
		{"no match", "zebra", nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := FilterByQuery(testItems(), tt.query, itemText)
			assert.Equal(t, tt.expected, ids(result))
		})
	}
}

func TestFilterByQuery_ConsistentWithFindPrimary(t *testing.T) {
	queries := []string{"", "a", "binh", "đã bạn", "x y z", "(urgent)", "ANH", "prod] down"}
	items := testItems()

	for _, q := range queries {
		kept := FilterByQuery(items, q, itemText)
		keptSet := make(map[string]bool)
		for _, i := range kept {
			keptSet[i.id] = true
		}

		terms := Tokenize(q)
		for _, i := range items {
			_, ok := FindPrimary(terms, i.text)
			if len(terms) == 0 {
				assert.True(t, keptSet[i.id], "empty query keeps %s", i.id)
				continue
			}
			assert.Equal(t, ok, keptSet[i.id], "query %q item %s", q, i.id)
			if keptSet[i.id] {
				snap := NewSession(itemRow(i), q, DefaultOptions()).Snapshot()
				assert.NotNil(t, snap.Primary, "query %q item %s", q, i.id)
			}
		}
	}
}

func TestMatches(t *testing.T) {
	assert.True(t, Matches("Đức", Tokenize("duc")))
	assert.False(t, Matches("Đức", Tokenize("dac x")))
	assert.False(t, Matches("anything", nil))
}

func TestSearchAll(t *testing.T) {
	results, err := SearchAll(context.Background(), testItems(), "binh", itemRow, DefaultOptions())
	require.NoError(t, err)
	require.Len(t, results, 3)

	for i, want := range []string{"1", "2", "3"} {
		assert.Equal(t, want, results[i].Item.id)
		assert.NotEmpty(t, results[i].Snapshot.MatchRanges)
		assert.NotNil(t, results[i].Snapshot.Primary)
	}
}

func TestSearchAll_EmptyQueryResets(t *testing.T) {
	results, err := SearchAll(context.Background(), testItems(), "", itemRow, DefaultOptions())
	require.NoError(t, err)
	require.Len(t, results, 5)

	for _, r := range results {
		assert.Equal(t, r.Item.text, r.Snapshot.DisplayedTitle)
		assert.Empty(t, r.Snapshot.MatchRanges)
		assert.False(t, r.Snapshot.Truncated())
	}
}

func TestSearchAll_Canceled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := SearchAll(ctx, testItems(), "", itemRow, DefaultOptions())
	assert.ErrorIs(t, err, context.Canceled)
}

func TestSearchAll_NoItems(t *testing.T) {
	results, err := SearchAll(context.Background(), []testItem(nil), "x", itemRow, DefaultOptions())
	require.NoError(t, err)
	assert.Empty(t, results)
}
