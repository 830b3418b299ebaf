package search

import "github.com/LongTran04/notisearch/internal/textfold"

// Row is the input a session works on.
type Row struct {
	Title    string // text shown for the row
	Source   string // text the emphasis spans index into
	Emphasis []Span // server-marked spans over Source
}

// Options configures how sessions compute their snapshots.
type Options struct {
	Window Window
}

// DefaultOptions returns options using the compact window preset.
func DefaultOptions() Options {
	return Options{Window: WindowCompact}
}

// Snapshot is the computed view of one row for a query.
// Ranges index DisplayedTitle. Callers must not modify the slices.
type Snapshot struct {
	DisplayedTitle string  `json:"displayed_title" yaml:"displayed_title"`
	WindowStart    int     `json:"window_start" yaml:"window_start"`
	Primary        *Range  `json:"primary,omitempty" yaml:"primary,omitempty"`
	MatchRanges    []Range `json:"match_ranges,omitempty" yaml:"match_ranges,omitempty"`
	EmphasisRanges []Range `json:"emphasis_ranges,omitempty" yaml:"emphasis_ranges,omitempty"`

	// Err is set when the row's emphasis data is corrupt. The snapshot then
	// holds the untruncated title with no ranges.
	Err error `json:"-" yaml:"-"`
}

// Truncated reports whether the displayed title was cut.
func (s Snapshot) Truncated() bool {
	return s.WindowStart > 0
}

// Compute builds the snapshot for row given already tokenized terms.
func Compute(row Row, terms []string, opts Options) Snapshot {
	var (
		primary Range
		ok      bool
	)
	if len(terms) > 0 {
		primary, ok = findPrimary(terms, textfold.FoldMapped(row.Title))
	}

	start := opts.Window.Start(primary, ok)
	displayed := Suffix(row.Title, start)
	snap := Snapshot{
		DisplayedTitle: displayed,
		WindowStart:    start,
	}

	// Truncation shifts every index, so ranges are found again on the
	// displayed title rather than shifted.
	m := textfold.FoldMapped(displayed)
	if ok {
		p := Range{Start: primary.Start - start, Length: primary.Length}
		snap.Primary = &p
	}
	if len(terms) > 0 {
		snap.MatchRanges = findAll(terms, m)
	}

	if len(row.Emphasis) > 0 {
		emphasis, err := resolveEmphasis(row.Emphasis, []rune(row.Source), m)
		if err != nil {
			return Snapshot{DisplayedTitle: row.Title, Err: err}
		}
		snap.EmphasisRanges = emphasis
	}
	return snap
}

// Session holds the query and row for one long-lived item and keeps its
// snapshot current. Use it when a single row outlives query changes, such
// as an open detail view; SearchAll covers one-shot passes over a list.
// It is not safe for concurrent use; the owner serializes updates against
// reads.
type Session struct {
	row   Row
	query string
	terms []string
	opts  Options
	snap  Snapshot
}

// NewSession creates a session and computes its first snapshot.
func NewSession(row Row, query string, opts Options) *Session {
	s := &Session{
		row:   row,
		query: query,
		terms: Tokenize(query),
		opts:  opts,
	}
	s.recompute()
	return s
}

// SetQuery replaces the query. The snapshot is recomputed only when the
// query actually changed.
func (s *Session) SetQuery(query string) {
	if query == s.query {
		return
	}
	s.query = query
	s.terms = Tokenize(query)
	s.recompute()
}

// SetRow replaces the row and recomputes the snapshot.
func (s *Session) SetRow(row Row) {
	s.row = row
	s.recompute()
}

// Query returns the current query.
func (s *Session) Query() string {
	return s.query
}

// Row returns the current row.
func (s *Session) Row() Row {
	return s.row
}

// Snapshot returns the latest computed snapshot.
func (s *Session) Snapshot() Snapshot {
	return s.snap
}

func (s *Session) recompute() {
	s.snap = Compute(s.row, s.terms, s.opts)
}
