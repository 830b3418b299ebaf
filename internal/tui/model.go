// Package tui provides the BubbleTea-based terminal user interface.
package tui

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"math"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
	"github.com/dustin/go-humanize"
	"gopkg.in/yaml.v3"

	"github.com/LongTran04/notisearch/internal/adapter/output"
	"github.com/LongTran04/notisearch/internal/config"
	"github.com/LongTran04/notisearch/internal/model"
	"github.com/LongTran04/notisearch/internal/search"
	"github.com/LongTran04/notisearch/internal/store"
)

// Mode represents the current UI mode.
type Mode int

const (
	ModeList Mode = iota
	ModeDetail
	ModeSearch
	ModeHelp
)

// searchTimeout bounds one recomputation of the result list.
const searchTimeout = 5 * time.Second

// fullWindow never truncates; the detail view shows the whole message.
var fullWindow = search.Window{Threshold: math.MaxInt}

// Model is the main TUI model.
type Model struct {
	// Configuration
	cfg   *config.Config
	store *store.Store
	opts  search.Options

	// Current mode
	mode Mode

	// Components
	list        list.Model
	viewport    viewport.Model
	searchInput textinput.Model
	help        help.Model

	// State
	results  []store.Result
	selected *store.Result
	detail   *search.Session // selected message, untruncated
	query    string
	width    int
	height   int
	ready    bool

	// Key bindings
	keys KeyMap

	// Rendering
	titleStyle output.TitleStyle
	marker     string

	// Status message
	statusMsg string
	statusErr bool

	// Refresh channel subscription
	refreshCh <-chan store.ChangeEvent
}

// resultItem wraps a search result for the list component.
type resultItem struct {
	result store.Result
}

func (i resultItem) Title() string {
	return i.result.Snapshot.DisplayedTitle
}

func (i resultItem) Description() string {
	n := i.result.Item
	if n.CreatedAt <= 0 {
		return ""
	}
	return n.TimeText() + " · " + humanize.Time(n.CreatedAtTime())
}

func (i resultItem) FilterValue() string {
	return i.result.Item.Message.Text
}

// resultDelegate renders rows with their match and emphasis ranges.
type resultDelegate struct {
	list.DefaultDelegate
	titleStyle output.TitleStyle
	marker     string
	unread     lipgloss.Style
}

func newResultDelegate(titleStyle output.TitleStyle, marker, accent string) resultDelegate {
	d := list.NewDefaultDelegate()
	return resultDelegate{
		DefaultDelegate: d,
		titleStyle:      titleStyle,
		marker:          marker,
		unread:          lipgloss.NewStyle().Foreground(lipgloss.Color(accent)),
	}
}

// Render renders a list item. Unread rows carry the marker; read rows are
// padded so titles stay aligned.
func (d resultDelegate) Render(w io.Writer, m list.Model, index int, item list.Item) {
	ri, ok := item.(resultItem)
	if !ok {
		d.DefaultDelegate.Render(w, m, index, item)
		return
	}

	titleStyle := d.Styles.NormalTitle
	descStyle := d.Styles.NormalDesc
	if index == m.Index() {
		titleStyle = d.Styles.SelectedTitle
		descStyle = d.Styles.SelectedDesc
	}

	itemWidth := m.Width() - titleStyle.GetHorizontalFrameSize()

	prefix := ""
	if d.marker != "" {
		if ri.result.Item.IsUnread() {
			prefix = d.unread.Render(d.marker) + " "
		} else {
			prefix = strings.Repeat(" ", lipgloss.Width(d.marker)) + " "
		}
	}

	title := prefix + output.RenderTitle(ri.result.Snapshot, d.titleStyle)
	desc := ri.Description()
	if itemWidth > 0 {
		title = ansi.Truncate(title, itemWidth, "…")
		desc = ansi.Truncate(desc, itemWidth, "…")
	}

	fmt.Fprint(w, titleStyle.Render(title))
	fmt.Fprint(w, "\n")
	fmt.Fprint(w, descStyle.Render(desc))
}

// New creates a new TUI model.
func New(cfg *config.Config, s *store.Store) Model {
	if cfg == nil {
		cfg = config.DefaultConfig()
	}

	opts, err := cfg.SearchOptions()
	if err != nil {
		slog.Warn("invalid search settings, using defaults", "error", err)
		opts = search.DefaultOptions()
	}

	titleStyle := output.MarkerTitleStyle()
	if cfg.Style.Color {
		titleStyle = output.ColorTitleStyle(cfg.Style.Accent)
	}

	delegate := newResultDelegate(titleStyle, cfg.Style.UnreadMarker, cfg.Style.Accent)
	l := list.New(nil, delegate, 0, 0)
	l.Title = "Notifications"
	l.SetShowStatusBar(true)
	l.SetShowHelp(false)
	l.SetFilteringEnabled(false)
	l.DisableQuitKeybindings()

	searchInput := textinput.New()
	searchInput.Placeholder = "Search..."
	searchInput.CharLimit = 100

	m := Model{
		cfg:         cfg,
		store:       s,
		opts:        opts,
		mode:        ModeList,
		list:        l,
		searchInput: searchInput,
		help:        help.New(),
		keys:        DefaultKeyMap(),
		titleStyle:  titleStyle,
		marker:      cfg.Style.UnreadMarker,
	}

	// Subscribe to store changes if available
	if s != nil {
		m.refreshCh = s.Subscribe()
	}

	return m
}

// Close drops the model's store subscription.
func (m Model) Close() {
	if m.store != nil && m.refreshCh != nil {
		m.store.Unsubscribe(m.refreshCh)
	}
}

// Init initializes the TUI.
func (m Model) Init() tea.Cmd {
	return tea.Batch(
		m.loadNotifications,
		m.watchForChanges,
	)
}

// loadNotifications triggers the first search.
func (m Model) loadNotifications() tea.Msg {
	return loadNotificationsMsg{}
}

type loadNotificationsMsg struct{}

// watchForChanges waits for the next store change.
func (m Model) watchForChanges() tea.Msg {
	if m.refreshCh == nil {
		return nil
	}
	if _, ok := <-m.refreshCh; !ok {
		return nil
	}
	return refreshMsg{}
}

type refreshMsg struct{}

type statusMsg struct {
	text  string
	isErr bool
}

type clearStatusMsg struct{}

type copyResultMsg struct {
	err error
}

// Update handles messages and updates the model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.ready = true

		m.list.SetSize(msg.Width, msg.Height-2)
		m.viewport = viewport.New(msg.Width, msg.Height-4)
		m.viewport.YPosition = 2
		m.help.Width = msg.Width

		return m, nil

	case loadNotificationsMsg:
		cmd := m.applySearch()
		return m, cmd

	case refreshMsg:
		cmd := m.applySearch()
		m.refreshDetail()
		return m, tea.Batch(cmd, m.watchForChanges)

	case statusMsg:
		m.statusMsg = msg.text
		m.statusErr = msg.isErr
		return m, tea.Tick(3*time.Second, func(t time.Time) tea.Msg {
			return clearStatusMsg{}
		})

	case clearStatusMsg:
		m.statusMsg = ""
		m.statusErr = false
		return m, nil

	case copyResultMsg:
		if msg.err != nil {
			return m, status("Copy failed: "+msg.err.Error(), true)
		}
		return m, status("Copied to clipboard", false)
	}

	// Update child components
	switch m.mode {
	case ModeList:
		var cmd tea.Cmd
		m.list, cmd = m.list.Update(msg)
		cmds = append(cmds, cmd)
	case ModeDetail:
		var cmd tea.Cmd
		m.viewport, cmd = m.viewport.Update(msg)
		cmds = append(cmds, cmd)
	case ModeSearch:
		var cmd tea.Cmd
		m.searchInput, cmd = m.searchInput.Update(msg)
		cmds = append(cmds, cmd)
	}

	return m, tea.Batch(cmds...)
}

func status(text string, isErr bool) tea.Cmd {
	return func() tea.Msg {
		return statusMsg{text: text, isErr: isErr}
	}
}

// applySearch recomputes every row for the current query.
func (m *Model) applySearch() tea.Cmd {
	if m.store == nil {
		return nil
	}

	ctx, cancel := context.WithTimeout(context.Background(), searchTimeout)
	defer cancel()

	results, err := m.store.Search(ctx, m.query, m.opts)
	if err != nil {
		return status("Search failed: "+err.Error(), true)
	}

	for _, r := range results {
		if r.Snapshot.Err != nil {
			slog.Debug("rendering row unhighlighted", "id", r.Item.ID, "error", r.Snapshot.Err)
		}
	}

	m.results = results
	items := make([]list.Item, len(results))
	for i, r := range results {
		items[i] = resultItem{result: r}
	}
	return m.list.SetItems(items)
}

// setQuery updates the query and recomputes rows only when it changed.
func (m *Model) setQuery(query string) tea.Cmd {
	if query == m.query {
		return nil
	}
	m.query = query
	return m.applySearch()
}

// handleKey handles key presses.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	// Search mode owns the keyboard apart from ctrl+c.
	if m.mode == ModeSearch {
		if key.Matches(msg, m.keys.ForceQuit) {
			return m, tea.Quit
		}
		return m.handleSearchKey(msg)
	}

	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit
	case key.Matches(msg, m.keys.Help):
		if m.mode == ModeHelp {
			m.mode = ModeList
		} else {
			m.mode = ModeHelp
		}
		return m, nil
	}

	switch m.mode {
	case ModeList:
		return m.handleListKey(msg)
	case ModeDetail:
		return m.handleDetailKey(msg)
	case ModeHelp:
		if key.Matches(msg, m.keys.Back) {
			m.mode = ModeList
		}
		return m, nil
	}

	return m, nil
}

// handleListKey handles keys in list mode.
func (m Model) handleListKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Enter):
		m.openSelected()
		return m, nil

	case key.Matches(msg, m.keys.Back):
		// Esc clears an active search and resets every row.
		m.searchInput.SetValue("")
		cmd := m.setQuery("")
		return m, cmd

	case key.Matches(msg, m.keys.Copy):
		if item, ok := m.list.SelectedItem().(resultItem); ok {
			return m, m.copyToClipboard(item.result.Item.Message.Text)
		}
		return m, nil

	case key.Matches(msg, m.keys.CopyAllJSON):
		data, err := json.MarshalIndent(m.visibleNotifications(), "", "  ")
		if err != nil {
			return m, status("Failed to marshal JSON: "+err.Error(), true)
		}
		return m, m.copyToClipboard(string(data))

	case key.Matches(msg, m.keys.CopyAllYAML):
		data, err := yaml.Marshal(m.visibleNotifications())
		if err != nil {
			return m, status("Failed to marshal YAML: "+err.Error(), true)
		}
		return m, m.copyToClipboard(string(data))

	case key.Matches(msg, m.keys.Search):
		m.mode = ModeSearch
		m.searchInput.Focus()
		return m, textinput.Blink

	case key.Matches(msg, m.keys.Refresh):
		return m, m.reload()
	}

	var cmd tea.Cmd
	m.list, cmd = m.list.Update(msg)
	return m, cmd
}

// handleDetailKey handles keys in detail mode.
func (m Model) handleDetailKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Back):
		m.mode = ModeList
		m.selected = nil
		m.detail = nil
		return m, nil

	case key.Matches(msg, m.keys.Copy):
		if m.selected != nil {
			return m, m.copyToClipboard(m.selected.Item.Message.Text)
		}
		return m, nil

	case key.Matches(msg, m.keys.Search):
		m.selected = nil
		m.detail = nil
		m.mode = ModeSearch
		m.searchInput.Focus()
		return m, textinput.Blink
	}

	var cmd tea.Cmd
	m.viewport, cmd = m.viewport.Update(msg)
	return m, cmd
}

// handleSearchKey handles keys in search mode.
func (m Model) handleSearchKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEsc:
		// Leaving search clears the query and resets every row.
		m.mode = ModeList
		m.searchInput.Blur()
		m.searchInput.SetValue("")
		cmd := m.setQuery("")
		return m, cmd

	case tea.KeyEnter:
		m.searchInput.Blur()
		if !m.openSelected() {
			m.mode = ModeList
		}
		return m, nil

	case tea.KeyUp, tea.KeyDown:
		var cmd tea.Cmd
		m.list, cmd = m.list.Update(msg)
		return m, cmd
	}

	var cmd tea.Cmd
	m.searchInput, cmd = m.searchInput.Update(msg)

	// Every keystroke recomputes the rows.
	searchCmd := m.setQuery(m.searchInput.Value())
	return m, tea.Batch(cmd, searchCmd)
}

// openSelected switches to the detail view for the selected row.
func (m *Model) openSelected() bool {
	item, ok := m.list.SelectedItem().(resultItem)
	if !ok {
		return false
	}
	r := item.result
	m.selected = &r
	m.detail = search.NewSession(model.SearchRow(r.Item), m.query, search.Options{Window: fullWindow})
	m.mode = ModeDetail
	m.viewport.SetContent(m.renderDetail(r.Item))
	m.viewport.GotoTop()
	return true
}

// refreshDetail picks up a reloaded copy of the open notification.
func (m *Model) refreshDetail() {
	if m.mode != ModeDetail || m.selected == nil || m.detail == nil || m.store == nil {
		return
	}
	n := m.store.GetByID(m.selected.Item.ID)
	if n == nil {
		return
	}
	m.selected.Item = *n
	m.detail.SetRow(model.SearchRow(*n))
	m.viewport.SetContent(m.renderDetail(*n))
}

// visibleNotifications returns the notifications currently listed.
func (m Model) visibleNotifications() []model.Notification {
	notifications := make([]model.Notification, len(m.results))
	for i, r := range m.results {
		notifications[i] = r.Item
	}
	return notifications
}

// reload re-reads the feed; the store change event refreshes the list.
func (m Model) reload() tea.Cmd {
	s := m.store
	if s == nil {
		return nil
	}
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := s.Hydrate(ctx); err != nil {
			return statusMsg{text: "Reload failed: " + err.Error(), isErr: true}
		}
		return statusMsg{text: fmt.Sprintf("Reloaded %d notifications", s.Count())}
	}
}

// renderDetail renders the detail view for a notification.
func (m Model) renderDetail(n model.Notification) string {

	headerStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("12"))

	labelStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("8"))

	var sb strings.Builder
	sb.WriteString(headerStyle.Render("Notification "+n.ID) + "\n\n")

	state := n.Status
	if state == "" {
		state = "unknown"
	}
	sb.WriteString(labelStyle.Render("Status: ") + state + "\n")
	if n.CreatedAt > 0 {
		sb.WriteString(labelStyle.Render("Time: ") + n.TimeText() + " (" + humanize.Time(n.CreatedAtTime()) + ")\n")
	}
	if n.Image != "" {
		sb.WriteString(labelStyle.Render("Image: ") + n.Image + "\n")
	}
	if n.Icon != "" {
		sb.WriteString(labelStyle.Render("Icon: ") + n.Icon + "\n")
	}

	// The whole message, highlighted for the current query.
	session := m.detail
	if session == nil {
		session = search.NewSession(model.SearchRow(n), m.query, search.Options{Window: fullWindow})
	}
	full := session.Snapshot()
	sb.WriteString("\n" + labelStyle.Render("Message:") + "\n")
	sb.WriteString(output.RenderTitle(full, m.titleStyle) + "\n")

	if full.Err != nil {
		sb.WriteString("\n" + labelStyle.Render("Highlights ignored: ") + full.Err.Error() + "\n")
	}

	return sb.String()
}

// copyToClipboard copies text to the system clipboard.
func (m Model) copyToClipboard(text string) tea.Cmd {
	cfg := m.cfg
	return func() tea.Msg {
		return copyResultMsg{err: copyText(text, cfg)}
	}
}

// View renders the TUI.
func (m Model) View() string {
	if !m.ready {
		return "Initializing..."
	}

	switch m.mode {
	case ModeList:
		return m.viewList()
	case ModeDetail:
		return m.viewDetail()
	case ModeSearch:
		return m.viewSearch()
	case ModeHelp:
		return m.viewHelp()
	default:
		return ""
	}
}

func (m Model) viewList() string {
	s := m.list.View()

	if m.statusMsg != "" {
		statusStyle := lipgloss.NewStyle().
			Foreground(lipgloss.Color("7"))
		if m.statusErr {
			statusStyle = statusStyle.Foreground(lipgloss.Color("9"))
		}
		s += "\n" + statusStyle.Render(m.statusMsg)
	} else {
		s += "\n" + m.buildKeybindBar(m.width, ModeList)
	}

	return s
}

func (m Model) viewDetail() string {
	headerStyle := lipgloss.NewStyle().
		Bold(true).
		Padding(0, 1)

	header := headerStyle.Render("Notification Detail")

	return header + "\n" + m.viewport.View() + "\n" + m.buildKeybindBar(m.width, ModeDetail)
}

func (m Model) viewSearch() string {
	countStr := fmt.Sprintf("(%d matches)", len(m.results))

	searchBar := "Search: " + m.searchInput.View() + " " +
		lipgloss.NewStyle().Foreground(lipgloss.Color("8")).Render(countStr)

	return searchBar + "\n" + m.list.View() + "\n" + m.buildKeybindBar(m.width, ModeSearch)
}

func (m Model) viewHelp() string {
	titleStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("12")).
		MarginBottom(1)

	h := m.help
	h.ShowAll = true

	s := titleStyle.Render("Keyboard Shortcuts") + "\n\n"
	s += h.View(m.keys)
	s += "\n\n" + lipgloss.NewStyle().Foreground(lipgloss.Color("8")).Render(
		"Press ? or esc to return")

	return s
}

// keybind represents a single keybind with priority for the status bar.
type keybind struct {
	key  string
	desc string
}

// buildKeybindBar builds a keybind bar that fits within the given width.
// Binds are listed most important first and dropped from the end.
func (m Model) buildKeybindBar(width int, mode Mode) string {
	style := lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
	keyStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("10"))

	var binds []keybind

	switch mode {
	case ModeList:
		binds = []keybind{
			{"q", "quit"},
			{"/", "search"},
			{"enter", "view"},
			{"?", "help"},
			{"esc", "clear"},
			{"c", "copy"},
			{"r", "reload"},
		}
	case ModeDetail:
		binds = []keybind{
			{"q", "quit"},
			{"esc", "back"},
			{"/", "search"},
			{"c", "copy"},
			{"j/k", "scroll"},
		}
	case ModeSearch:
		binds = []keybind{
			{"enter", "view"},
			{"esc", "clear"},
			{"↑/↓", "navigate"},
		}
	}

	const separator = "  "
	result := ""
	for _, b := range binds {
		item := keyStyle.Render(b.key) + " " + b.desc
		testLen := lipgloss.Width(b.key + " " + b.desc)
		if result != "" {
			testLen += lipgloss.Width(result) + len(separator)
		}

		if width > 0 && testLen > width {
			break
		}
		if result != "" {
			result += separator
		}
		result += item
	}

	return style.Render(result)
}

// RunOptions configures the TUI.
type RunOptions struct {
	Config    *config.Config
	Store     *store.Store
	WatchPath string // feed file to watch for changes (empty = no watching)
}

// Run starts the TUI with the given options.
func Run(opts RunOptions) error {
	s := opts.Store
	if s == nil {
		s = store.NewStore(nil)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	err := s.Hydrate(ctx)
	cancel()
	if err != nil {
		slog.Warn("failed to load feed", "error", err)
	}

	var watcher *store.FileWatcher
	if opts.WatchPath != "" {
		watcher, err = store.NewFileWatcher(s, opts.WatchPath)
		if err != nil {
			slog.Warn("failed to create feed watcher", "error", err)
		} else if err := watcher.Start(); err != nil {
			slog.Warn("failed to start feed watcher", "error", err)
		}
	}

	m := New(opts.Config, s)
	defer m.Close()

	p := tea.NewProgram(m, tea.WithAltScreen())

	_, err = p.Run()

	if watcher != nil {
		_ = watcher.Stop()
	}

	return err
}
