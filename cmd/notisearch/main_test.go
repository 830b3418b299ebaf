package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/LongTran04/notisearch/internal/model"
	"github.com/LongTran04/notisearch/internal/store"
)

func TestBuildQuery(t *testing.T) {
	tests := []struct {
		name string
		flag string
		args []string
		want string
	}{
		{"flag only", "lam binh", nil, "lam binh"},
		{"args only", "", []string{"lam", "binh"}, "lam binh"},
		{"both", "lam", []string{"binh"}, "lam binh"},
		{"empty", "", nil, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, buildQuery(tt.flag, tt.args))
		})
	}
}

func TestGenerateStatus(t *testing.T) {
	t.Run("empty", func(t *testing.T) {
		s := generateStatus(nil)
		assert.Equal(t, "empty", s.Class)
		assert.Empty(t, s.Text)
	})

	t.Run("unread", func(t *testing.T) {
		s := generateStatus([]model.Notification{
			{ID: "1", Status: model.StatusUnread},
			{ID: "2", Status: model.StatusRead},
			{ID: "3", Status: model.StatusUnread},
		})
		assert.Equal(t, "2", s.Text)
		assert.Equal(t, "unread", s.Class)
		assert.Equal(t, "2 unread\n3 total", s.Tooltip)
		assert.Equal(t, 2, s.Percentage)
	})

	t.Run("all read", func(t *testing.T) {
		s := generateStatus([]model.Notification{{ID: "1", Status: model.StatusRead}})
		assert.Equal(t, "0", s.Text)
		assert.Equal(t, "read", s.Class)
	})
}

func TestParseDmenuSelection(t *testing.T) {
	results := []store.Result{
		{Item: model.Notification{ID: "abc"}},
		{Item: model.Notification{ID: "def"}},
	}

	tests := []struct {
		selection string
		want      string
	}{
		{"abc", "abc"},
		{"  def  ", "def"},
		{"2 | 5 minutes ago | Your order has shipped", "def"},
		{"9 | out of range", "9 | out of range"},
		{"x | not an index", "x | not an index"},
	}

	for _, tt := range tests {
		t.Run(tt.selection, func(t *testing.T) {
			assert.Equal(t, tt.want, parseDmenuSelection(tt.selection, results))
		})
	}
}

func TestIsFileFeed(t *testing.T) {
	assert.True(t, isFileFeed("/tmp/noti.json"))
	assert.False(t, isFileFeed("-"))
	assert.False(t, isFileFeed("stdin"))
	assert.False(t, isFileFeed(""))
}

func TestLookupResult(t *testing.T) {
	s := store.NewStore(nil)
	t.Cleanup(func() { _ = s.Close() })
	require.NoError(t, s.Replace([]model.Notification{
		{ID: "abc", Message: model.Message{Text: "Trần Thị Bình"}},
		{ID: "def", Message: model.Message{Text: "Your order has shipped"}},
	}, "test"))

	// "def" is in the feed but filtered out of the results.
	results := []store.Result{
		{Item: model.Notification{ID: "abc"}},
	}

	t.Run("by index", func(t *testing.T) {
		r, err := lookupResult(s, results, 1, "")
		require.NoError(t, err)
		assert.Equal(t, "abc", r.Item.ID)
	})

	t.Run("index out of range", func(t *testing.T) {
		_, err := lookupResult(s, results, 5, "")
		assert.ErrorContains(t, err, "index 5")
	})

	t.Run("by id", func(t *testing.T) {
		r, err := lookupResult(s, results, 0, "abc")
		require.NoError(t, err)
		assert.Same(t, &results[0], r)
	})

	t.Run("by dmenu line", func(t *testing.T) {
		r, err := lookupResult(s, results, 0, "1 | now | Trần Thị Bình")
		require.NoError(t, err)
		assert.Equal(t, "abc", r.Item.ID)
	})

	t.Run("not in feed", func(t *testing.T) {
		_, err := lookupResult(s, results, 0, "zzz")
		assert.ErrorContains(t, err, "not found")
	})

	t.Run("filtered out", func(t *testing.T) {
		_, err := lookupResult(s, results, 0, "def")
		assert.ErrorContains(t, err, "does not match")
	})
}

func TestApplySort(t *testing.T) {
	saved := searchOpts
	t.Cleanup(func() { searchOpts = saved })

	feed := func() []model.Notification {
		return []model.Notification{
			{ID: "1", CreatedAt: 100},
			{ID: "2", CreatedAt: 300},
			{ID: "3", CreatedAt: 200},
		}
	}

	tests := []struct {
		name    string
		sortBy  string
		order   string
		want    []string
		wantErr string
	}{
		{"feed order", "feed", "asc", []string{"1", "2", "3"}, ""},
		{"newest first", "time", "desc", []string{"2", "3", "1"}, ""},
		{"unknown field", "bogus", "asc", nil, "invalid --sort"},
		{"unknown order", "time", "up", nil, "invalid --order"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			searchOpts.sortBy = tt.sortBy
			searchOpts.sortOrder = tt.order

			ns := feed()
			err := applySort(ns)
			if tt.wantErr != "" {
				assert.ErrorContains(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)

			ids := make([]string, len(ns))
			for i, n := range ns {
				ids[i] = n.ID
			}
			assert.Equal(t, tt.want, ids)
		})
	}
}
