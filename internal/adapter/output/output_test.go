package output

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/LongTran04/notisearch/internal/model"
	"github.com/LongTran04/notisearch/internal/search"
)

func testNotifications() []model.Notification {
	now := time.Now()
	return []model.Notification{
		{
			ID: "abc123",
			Message: model.Message{
				Text:       "Nguyễn Văn An đã bình luận về ảnh của bạn",
				Highlights: []model.Highlight{{Offset: 0, Length: 13}},
			},
			Status:    model.StatusUnread,
			CreatedAt: now.Add(-5 * time.Minute).Unix(),
		},
		{
			ID:        "def456",
			Message:   model.Message{Text: "Trần Thị Bình đã thích bài viết của bạn"},
			Status:    model.StatusRead,
			CreatedAt: now.Add(-2 * time.Hour).Unix(),
		},
	}
}

func testResults(t *testing.T, query string) []Result {
	t.Helper()
	results, err := search.SearchAll(t.Context(), testNotifications(), query, model.SearchRow, search.DefaultOptions())
	require.NoError(t, err)
	return results
}

func markerOptions() FormatterOptions {
	opts := DefaultFormatterOptions()
	opts.Color = false
	return opts
}

func TestRenderTitle(t *testing.T) {
	tests := []struct {
		name     string
		snap     search.Snapshot
		expected string
	}{
		{
			name:     "no ranges",
			snap:     search.Snapshot{DisplayedTitle: "hello world"},
			expected: "hello world",
		},
		{
			name: "match",
			snap: search.Snapshot{
				DisplayedTitle: "hello world",
				MatchRanges:    []search.Range{{Start: 6, Length: 5}},
			},
			expected: "hello [world]",
		},
		{
			name: "emphasis and match",
			snap: search.Snapshot{
				DisplayedTitle: "Đặng Văn Lâm liked",
				EmphasisRanges: []search.Range{{Start: 0, Length: 12}},
				MatchRanges:    []search.Range{{Start: 9, Length: 3}},
			},
			expected: "*Đặng Văn *[Lâm] liked",
		},
		{
			name: "adjacent matches",
			snap: search.Snapshot{
				DisplayedTitle: "abab",
				MatchRanges:    []search.Range{{Start: 0, Length: 2}, {Start: 2, Length: 2}},
			},
			expected: "[ab][ab]",
		},
		{
			name: "adjacent emphasis",
			snap: search.Snapshot{
				DisplayedTitle: "An Bình",
				EmphasisRanges: []search.Range{{Start: 0, Length: 3}, {Start: 3, Length: 4}},
			},
			expected: "*An **Bình*",
		},
		{
			name: "match inside emphasis",
			snap: search.Snapshot{
				DisplayedTitle: "abcdef",
				EmphasisRanges: []search.Range{{Start: 0, Length: 6}},
				MatchRanges:    []search.Range{{Start: 2, Length: 2}},
			},
			expected: "*ab*[cd]*ef*",
		},
		{
			name: "range past end is clipped",
			snap: search.Snapshot{
				DisplayedTitle: "abc",
				MatchRanges:    []search.Range{{Start: 1, Length: 10}},
			},
			expected: "a[bc]",
		},
		{
			name: "newlines flattened",
			snap: search.Snapshot{
				DisplayedTitle: "one\ntwo",
				MatchRanges:    []search.Range{{Start: 4, Length: 3}},
			},
			expected: "one [two]",
		},
		{
			name:     "empty",
			snap:     search.Snapshot{},
			expected: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, RenderTitle(tt.snap, MarkerTitleStyle()))
		})
	}
}

func TestRenderTitle_RepeatedTerm(t *testing.T) {
	row := search.Row{Title: "aaaa", Source: "aaaa"}
	snap := search.Compute(row, search.Tokenize("aa"), search.DefaultOptions())
	assert.Equal(t, "[aa][aa]", RenderTitle(snap, MarkerTitleStyle()))
}

func TestRenderTitle_NoStyle(t *testing.T) {
	snap := search.Snapshot{
		DisplayedTitle: "hello world",
		MatchRanges:    []search.Range{{Start: 6, Length: 5}},
	}
	assert.Equal(t, "hello world", RenderTitle(snap, TitleStyle{}))
}

func TestRenderTitle_Color(t *testing.T) {
	snap := search.Snapshot{
		DisplayedTitle: "hello world",
		MatchRanges:    []search.Range{{Start: 6, Length: 5}},
	}
	out := RenderTitle(snap, ColorTitleStyle("#3BB57A"))
	assert.Contains(t, out, "hello ")
	assert.Contains(t, out, "world")
}

func TestPlainFormatter_Format(t *testing.T) {
	var buf bytes.Buffer

	formatter := NewPlainFormatter(markerOptions())
	err := formatter.Format(&buf, testResults(t, "binh"))
	require.NoError(t, err)

	output := buf.String()
	assert.Contains(t, output, "[1] ● *Nguyễn Văn An* đã [bình] luận về ảnh của bạn")
	assert.Contains(t, output, "[2]   Trần Thị [Bình] đã thích bài viết của bạn")
	assert.Contains(t, output, "5 minutes ago")
	assert.Contains(t, output, "2 hours ago")
	assert.Contains(t, output, testNotifications()[0].TimeText())
}

func TestPlainFormatter_NoQuery(t *testing.T) {
	var buf bytes.Buffer

	opts := markerOptions()
	opts.ShowIndex = false
	opts.ShowTime = false
	formatter := NewPlainFormatter(opts)
	require.NoError(t, formatter.Format(&buf, testResults(t, "")))

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 2)
	assert.Equal(t, "● *Nguyễn Văn An* đã bình luận về ảnh của bạn", lines[0])
	assert.NotContains(t, buf.String(), "[")
}

func TestPlainFormatter_CustomTemplate(t *testing.T) {
	var buf bytes.Buffer

	opts := markerOptions()
	opts.Template = "{{.Index}}: {{.Notification.ID}} {{title .Snapshot}}"
	formatter := NewPlainFormatter(opts)
	require.NoError(t, formatter.Format(&buf, testResults(t, "thich")))

	assert.Equal(t, "1: def456 Trần Thị Bình đã [thích] bài viết của bạn\n", buf.String())
}

func TestDmenuFormatter_Format(t *testing.T) {
	var buf bytes.Buffer

	formatter := NewDmenuFormatter(DefaultFormatterOptions())
	err := formatter.Format(&buf, testResults(t, "an"))
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 2)
	assert.Equal(t, "1 | 5 minutes ago | Nguyễn Văn An đã bình luận về ảnh của bạn", lines[0])
	assert.True(t, strings.HasPrefix(lines[1], "2 | 2 hours ago | "))
}

func TestDmenuFormatter_Truncated(t *testing.T) {
	n := model.Notification{
		ID:        "long",
		Message:   model.Message{Text: strings.Repeat("lorem ", 8) + "Đặng Văn Lâm"},
		Status:    model.StatusRead,
		CreatedAt: time.Now().Unix(),
	}
	results, err := search.SearchAll(t.Context(), []model.Notification{n}, "lam", model.SearchRow, search.DefaultOptions())
	require.NoError(t, err)

	var buf bytes.Buffer
	opts := DefaultFormatterOptions()
	opts.ShowIndex = false
	opts.ShowTime = false
	require.NoError(t, NewDmenuFormatter(opts).Format(&buf, results))
	assert.Equal(t, "orem lorem Đặng Văn Lâm\n", buf.String())
}

func TestDmenuFormatter_TemplateTruncate(t *testing.T) {
	var buf bytes.Buffer

	opts := DefaultFormatterOptions()
	opts.Template = "{{unread .Notification}}{{truncate .Snapshot.DisplayedTitle 10}}"
	require.NoError(t, NewDmenuFormatter(opts).Format(&buf, testResults(t, "")))

	lines := strings.Split(strings.TrimRight(buf.String(), "\n"), "\n")
	require.Len(t, lines, 2)
	assert.Equal(t, "*Nguyễn ...", lines[0])
	assert.Equal(t, " Trần Th...", lines[1])
}

func TestJSONFormatter_Format(t *testing.T) {
	var buf bytes.Buffer

	formatter := NewJSONFormatter(DefaultFormatterOptions())
	err := formatter.Format(&buf, testResults(t, "binh"))
	require.NoError(t, err)

	var result []record
	require.NoError(t, json.Unmarshal(buf.Bytes(), &result))
	require.Len(t, result, 2)
	assert.Equal(t, "abc123", result[0].Notification.ID)
	assert.Equal(t, []search.Range{{Start: 17, Length: 4}}, result[0].Snapshot.MatchRanges)
	assert.Equal(t, []search.Range{{Start: 0, Length: 13}}, result[0].Snapshot.EmphasisRanges)
	assert.Empty(t, result[0].Error)
}

func TestJSONFormatter_SnapshotError(t *testing.T) {
	n := model.Notification{
		ID: "bad",
		Message: model.Message{
			Text:       "short",
			Highlights: []model.Highlight{{Offset: 3, Length: 10}},
		},
	}
	results, err := search.SearchAll(t.Context(), []model.Notification{n}, "", model.SearchRow, search.DefaultOptions())
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, NewJSONFormatter(DefaultFormatterOptions()).Format(&buf, results))

	var result []record
	require.NoError(t, json.Unmarshal(buf.Bytes(), &result))
	require.Len(t, result, 1)
	assert.NotEmpty(t, result[0].Error)
	assert.Equal(t, "short", result[0].Snapshot.DisplayedTitle)
	assert.Empty(t, result[0].Snapshot.EmphasisRanges)
}

func TestYAMLFormatter_Format(t *testing.T) {
	var buf bytes.Buffer

	formatter := NewYAMLFormatter(DefaultFormatterOptions())
	require.NoError(t, formatter.Format(&buf, testResults(t, "thich")))

	var result []record
	require.NoError(t, yaml.Unmarshal(buf.Bytes(), &result))
	require.Len(t, result, 1)
	assert.Equal(t, "def456", result[0].Notification.ID)
	assert.Equal(t, []search.Range{{Start: 17, Length: 5}}, result[0].Snapshot.MatchRanges)
}

func TestIDsFormatter_Format(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, NewIDsFormatter().Format(&buf, testResults(t, "")))
	assert.Equal(t, "abc123\ndef456\n", buf.String())
}

func TestNewFormatter(t *testing.T) {
	opts := DefaultFormatterOptions()

	t.Run("plain", func(t *testing.T) {
		_, ok := NewFormatter(FormatPlain, opts).(*PlainFormatter)
		assert.True(t, ok)
	})

	t.Run("dmenu", func(t *testing.T) {
		_, ok := NewFormatter(FormatDmenu, opts).(*DmenuFormatter)
		assert.True(t, ok)
	})

	t.Run("json", func(t *testing.T) {
		_, ok := NewFormatter(FormatJSON, opts).(*JSONFormatter)
		assert.True(t, ok)
	})

	t.Run("yaml", func(t *testing.T) {
		_, ok := NewFormatter(FormatYAML, opts).(*YAMLFormatter)
		assert.True(t, ok)
	})

	t.Run("ids", func(t *testing.T) {
		_, ok := NewFormatter(FormatIDs, opts).(*IDsFormatter)
		assert.True(t, ok)
	})

	t.Run("default", func(t *testing.T) {
		_, ok := NewFormatter("unknown", opts).(*PlainFormatter)
		assert.True(t, ok) // defaults to plain
	})
}

func TestParseFormatType(t *testing.T) {
	tests := []struct {
		name    string
		want    FormatType
		wantErr bool
	}{
		{"", FormatPlain, false},
		{"json", FormatJSON, false},
		{" YAML ", FormatYAML, false},
		{"ids", FormatIDs, false},
		{"xml", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseFormatType(tt.name)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}
