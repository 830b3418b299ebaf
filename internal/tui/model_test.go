package tui

import (
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/LongTran04/notisearch/internal/config"
	"github.com/LongTran04/notisearch/internal/model"
	"github.com/LongTran04/notisearch/internal/search"
	"github.com/LongTran04/notisearch/internal/store"
)

func testStore(t *testing.T) *store.Store {
	t.Helper()
	s := store.NewStore(nil)
	t.Cleanup(func() { _ = s.Close() })

	now := time.Now().Unix()
	require.NoError(t, s.Replace([]model.Notification{
		{ID: "1", Message: model.Message{Text: "Nguyễn Văn An đã bình luận về ảnh của bạn"}, Status: model.StatusUnread, CreatedAt: now},
		{ID: "2", Message: model.Message{Text: "Your order has shipped"}, Status: model.StatusRead, CreatedAt: now},
		{ID: "3", Message: model.Message{Text: strings.Repeat("lorem ", 8) + "Đặng Văn Lâm"}, Status: model.StatusRead, CreatedAt: now},
	}, "test"))
	return s
}

func testModel(t *testing.T) Model {
	t.Helper()
	cfg := config.DefaultConfig()
	cfg.Style.Color = false

	m := New(cfg, testStore(t))
	updated, _ := m.Update(tea.WindowSizeMsg{Width: 100, Height: 40})
	updated, _ = updated.(Model).Update(loadNotificationsMsg{})
	return updated.(Model)
}

func press(t *testing.T, m Model, msgs ...tea.KeyMsg) Model {
	t.Helper()
	for _, msg := range msgs {
		updated, _ := m.Update(msg)
		m = updated.(Model)
	}
	return m
}

func typeText(s string) []tea.KeyMsg {
	msgs := make([]tea.KeyMsg, 0, len(s))
	for _, r := range s {
		msgs = append(msgs, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}})
	}
	return msgs
}

func runes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func TestModel_InitialLoad(t *testing.T) {
	m := testModel(t)
	assert.True(t, m.ready)
	assert.Len(t, m.results, 3)
	assert.Len(t, m.list.Items(), 3)
	for _, r := range m.results {
		assert.Empty(t, r.Snapshot.MatchRanges)
		assert.False(t, r.Snapshot.Truncated())
	}
}

func TestModel_SearchFiltersAndHighlights(t *testing.T) {
	m := testModel(t)

	m = press(t, m, runes("/"))
	require.Equal(t, ModeSearch, m.mode)

	m = press(t, m, typeText("lam")...)
	assert.Equal(t, "lam", m.query)
	require.Len(t, m.results, 1)

	snap := m.results[0].Snapshot
	assert.Equal(t, "3", m.results[0].Item.ID)
	assert.Equal(t, 37, snap.WindowStart)
	assert.Equal(t, "orem lorem Đặng Văn Lâm", snap.DisplayedTitle)
	assert.NotEmpty(t, snap.MatchRanges)
}

func TestModel_SearchModeTypesQuitKey(t *testing.T) {
	m := testModel(t)

	m = press(t, m, runes("/"), runes("q"))
	assert.Equal(t, ModeSearch, m.mode)
	assert.Equal(t, "q", m.query)
}

func TestModel_EscResetsRows(t *testing.T) {
	m := testModel(t)

	m = press(t, m, runes("/"))
	m = press(t, m, typeText("lam")...)
	require.Len(t, m.results, 1)

	m = press(t, m, tea.KeyMsg{Type: tea.KeyEsc})
	assert.Equal(t, ModeList, m.mode)
	assert.Empty(t, m.query)
	assert.Empty(t, m.searchInput.Value())
	require.Len(t, m.results, 3)
	for _, r := range m.results {
		assert.Empty(t, r.Snapshot.MatchRanges)
		assert.False(t, r.Snapshot.Truncated())
	}
}

func TestModel_DetailShowsFullMessage(t *testing.T) {
	m := testModel(t)

	m = press(t, m, runes("/"))
	m = press(t, m, typeText("lam")...)
	m = press(t, m, tea.KeyMsg{Type: tea.KeyEnter})

	require.Equal(t, ModeDetail, m.mode)
	require.NotNil(t, m.selected)
	require.NotNil(t, m.detail)
	assert.Equal(t, "lam", m.detail.Query())
	detail := m.renderDetail(m.selected.Item)
	assert.Contains(t, detail, strings.Repeat("lorem ", 8)+"Đặng Văn [Lâm]")

	m = press(t, m, tea.KeyMsg{Type: tea.KeyEsc})
	assert.Equal(t, ModeList, m.mode)
	assert.Nil(t, m.selected)
	assert.Nil(t, m.detail)
}

func TestModel_DetailFollowsReload(t *testing.T) {
	m := testModel(t)

	m = press(t, m, runes("/"))
	m = press(t, m, typeText("lam")...)
	m = press(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	require.Equal(t, ModeDetail, m.mode)
	require.Equal(t, "3", m.selected.Item.ID)

	feed := m.store.All()
	feed[2].Message.Text = "Lâm đã sửa bình luận"
	require.NoError(t, m.store.Replace(feed, "test"))

	updated, _ := m.Update(refreshMsg{})
	m = updated.(Model)

	require.Equal(t, ModeDetail, m.mode)
	assert.Equal(t, "Lâm đã sửa bình luận", m.detail.Row().Title)
	assert.Equal(t, []search.Range{{Start: 0, Length: 3}}, m.detail.Snapshot().MatchRanges)
	assert.Contains(t, m.renderDetail(m.selected.Item), "[Lâm] đã sửa bình luận")
}

func TestModel_HelpToggle(t *testing.T) {
	m := testModel(t)

	m = press(t, m, runes("?"))
	assert.Equal(t, ModeHelp, m.mode)
	assert.Contains(t, m.View(), "Keyboard Shortcuts")

	m = press(t, m, tea.KeyMsg{Type: tea.KeyEsc})
	assert.Equal(t, ModeList, m.mode)
}

func TestModel_RefreshPicksUpStoreChanges(t *testing.T) {
	m := testModel(t)
	feed := append(m.store.All(), model.Notification{
		ID:      "4",
		Message: model.Message{Text: "new one"},
		Status:  model.StatusUnread,
	})
	require.NoError(t, m.store.Replace(feed, "test"))

	updated, _ := m.Update(refreshMsg{})
	m = updated.(Model)
	assert.Len(t, m.results, 4)
}

func TestModel_CloseUnsubscribes(t *testing.T) {
	m := testModel(t)
	require.NotNil(t, m.refreshCh)

	m.Close()

	_, ok := <-m.refreshCh
	assert.False(t, ok)
	assert.Nil(t, m.watchForChanges())
}

func TestBuildKeybindBar(t *testing.T) {
	m := testModel(t)

	tests := []struct {
		name  string
		width int
		mode  Mode
	}{
		{"list wide", 200, ModeList},
		{"list narrow", 20, ModeList},
		{"detail", 40, ModeDetail},
		{"search", 30, ModeSearch},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			bar := m.buildKeybindBar(tt.width, tt.mode)
			assert.NotEmpty(t, bar)
			assert.LessOrEqual(t, lipgloss.Width(bar), tt.width)
		})
	}
}
