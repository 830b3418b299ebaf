package main

import (
	"context"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/LongTran04/notisearch/internal/adapter/output"
	"github.com/LongTran04/notisearch/internal/core"
	"github.com/LongTran04/notisearch/internal/model"
	"github.com/LongTran04/notisearch/internal/search"
	"github.com/LongTran04/notisearch/internal/store"
)

var searchOpts struct {
	query string

	// Filter options
	status string
	since  string
	filter string
	limit  int

	// Sort options
	sortBy    string
	sortOrder string

	// Engine options
	window string

	// Output options
	format   string
	template string
	noColor  bool
	noTime   bool

	// Lookup options
	index int
	id    string
}

var searchCmd = &cobra.Command{
	Use:   "search [query...]",
	Short: "Search the feed and print highlighted results",
	Long: `Search the notification feed once and print the matching rows.

The query is split on spaces; a row matches when its message contains any
term. Matching ignores case and diacritics. Each printed title is cut so the
first matching term is visible, and every match is highlighted. An empty
query prints every row untruncated.

Examples:
  # Rows mentioning "lam" or "binh"
  notisearch search lam binh

  # Same, from a YAML feed, as JSON with ranges
  notisearch --feed noti.yaml search -q "lam binh" --format json

  # Unread rows from the last day, newest first
  notisearch search --status unread --since 1d --sort time --order desc

  # Feed from stdin, wide window
  cat noti.json | notisearch --feed - search dang --window wide`,
	RunE: runSearch,
}

func init() {
	rootCmd.AddCommand(searchCmd)

	searchCmd.Flags().StringVarP(&searchOpts.query, "query", "q", "",
		"Search query (joined with positional arguments)")

	searchCmd.Flags().StringVar(&searchOpts.status, "status", "",
		"Only rows with this status (unread, read, any)")
	searchCmd.Flags().StringVar(&searchOpts.since, "since", "",
		"Only rows from the last duration (e.g., 1h, 7d, 1w)")
	searchCmd.Flags().StringVar(&searchOpts.filter, "filter", "",
		"Filter expression (e.g., \"status=unread,timestamp>1d\")")
	searchCmd.Flags().IntVarP(&searchOpts.limit, "limit", "n", 0,
		"Maximum number of results (0=unlimited)")

	searchCmd.Flags().StringVar(&searchOpts.sortBy, "sort", "feed",
		"Sort by field (feed, timestamp, status, message)")
	searchCmd.Flags().StringVar(&searchOpts.sortOrder, "order", "asc",
		"Sort order (asc, desc)")

	searchCmd.Flags().StringVar(&searchOpts.window, "window", "",
		"Title window (compact, wide; default from config)")

	searchCmd.Flags().StringVarP(&searchOpts.format, "format", "f", "",
		"Output format (plain, dmenu, json, yaml, ids; default from config)")
	searchCmd.Flags().StringVar(&searchOpts.template, "template", "",
		"Custom Go template for plain/dmenu output")
	searchCmd.Flags().BoolVar(&searchOpts.noColor, "no-color", false,
		"Mark matches with [ ] and emphasis with * * instead of colour")
	searchCmd.Flags().BoolVar(&searchOpts.noTime, "no-time", false,
		"Hide timestamps")

	searchCmd.Flags().IntVar(&searchOpts.index, "index", 0,
		"Output only the result at this 1-based index")
	searchCmd.Flags().StringVar(&searchOpts.id, "id", "",
		"Output only the result with this notification ID")
}

func runSearch(cmd *cobra.Command, args []string) error {
	ctx, cancel := context.WithTimeout(cmd.Context(), 10*time.Second)
	defer cancel()

	query := buildQuery(searchOpts.query, args)

	opts, err := engineOptions()
	if err != nil {
		return err
	}

	if err := feedStore.Hydrate(ctx); err != nil {
		return fmt.Errorf("failed to load feed: %w", err)
	}
	logger.Debug("loaded feed", "source", feedSource(), "count", feedStore.Count())

	notifications, err := applyFilters(feedStore.All())
	if err != nil {
		return err
	}
	if err := applySort(notifications); err != nil {
		return err
	}

	results, err := search.SearchAll(ctx, notifications, query, model.SearchRow, opts)
	if err != nil {
		return fmt.Errorf("search failed: %w", err)
	}
	logger.Debug("search finished", "query", query, "terms", len(search.Tokenize(query)), "results", len(results))

	for _, r := range results {
		if r.Snapshot.Err != nil {
			logger.Warn("ignoring corrupt highlights", "id", r.Item.ID, "error", r.Snapshot.Err)
		}
	}

	if searchOpts.index > 0 || searchOpts.id != "" {
		r, err := lookupResult(feedStore, results, searchOpts.index, searchOpts.id)
		if err != nil {
			return err
		}
		results = []store.Result{*r}
	} else if searchOpts.limit > 0 && len(results) > searchOpts.limit {
		results = results[:searchOpts.limit]
	}

	if len(results) == 0 {
		logger.Debug("no results to output")
		return nil
	}

	formatter, err := createFormatter()
	if err != nil {
		return err
	}
	return formatter.Format(os.Stdout, results)
}

// buildQuery joins the --query flag and positional arguments.
func buildQuery(flag string, args []string) string {
	parts := make([]string, 0, len(args)+1)
	if flag != "" {
		parts = append(parts, flag)
	}
	parts = append(parts, args...)
	return strings.Join(parts, " ")
}

// engineOptions resolves the title window from flags and config.
func engineOptions() (search.Options, error) {
	if searchOpts.window != "" {
		w, err := search.ParseWindow(searchOpts.window)
		if err != nil {
			return search.Options{}, err
		}
		return search.Options{Window: w}, nil
	}
	return cfg.SearchOptions()
}

// applyFilters narrows the feed before searching.
func applyFilters(notifications []model.Notification) ([]model.Notification, error) {
	opts := core.FilterOptions{}

	if searchOpts.since != "" {
		d, err := core.ParseDuration(searchOpts.since)
		if err != nil {
			return nil, fmt.Errorf("invalid --since: %w", err)
		}
		opts.Since = d
	}

	status, err := core.ParseStatus(searchOpts.status)
	if err != nil {
		return nil, err
	}
	opts.Status = status

	notifications = core.Filter(notifications, opts)

	if searchOpts.filter != "" {
		expr, err := core.ParseFilter(searchOpts.filter)
		if err != nil {
			return nil, fmt.Errorf("invalid --filter: %w", err)
		}
		notifications = core.FilterWithExpr(notifications, expr)
	}

	return notifications, nil
}

// applySort sorts notifications based on options.
func applySort(notifications []model.Notification) error {
	field, err := core.ParseSortField(searchOpts.sortBy)
	if err != nil {
		return fmt.Errorf("invalid --sort: %w", err)
	}
	order, err := core.ParseSortOrder(searchOpts.sortOrder)
	if err != nil {
		return fmt.Errorf("invalid --order: %w", err)
	}

	core.Sort(notifications, core.SortOptions{
		Field: field,
		Order: order,
	})
	return nil
}

// lookupResult picks a single result by 1-based index or by ID. An ID may
// also be a selected dmenu line.
func lookupResult(s *store.Store, results []store.Result, index int, selection string) (*store.Result, error) {
	if index > 0 {
		r := core.LookupByIndex(results, index)
		if r == nil {
			return nil, fmt.Errorf("result at index %d not found", index)
		}
		return r, nil
	}

	id := parseDmenuSelection(selection, results)
	if s.GetByID(id) == nil {
		return nil, fmt.Errorf("notification with ID %s not found", id)
	}

	r := core.LookupByID(results, id, resultID)
	if r == nil {
		return nil, fmt.Errorf("notification %s does not match the query or filters", id)
	}
	return r, nil
}

func resultID(r store.Result) string {
	return r.Item.ID
}

// parseDmenuSelection resolves a selected dmenu line ("2 | 5 minutes ago | title")
// to a notification ID. Anything else is returned as-is.
func parseDmenuSelection(selection string, results []store.Result) string {
	selection = strings.TrimSpace(selection)

	if !strings.Contains(selection, "|") {
		return selection
	}

	idxStr := strings.TrimSpace(strings.SplitN(selection, "|", 2)[0])
	if idx, err := strconv.Atoi(idxStr); err == nil {
		if r := core.LookupByIndex(results, idx); r != nil {
			return r.Item.ID
		}
	}

	return selection
}

// createFormatter creates the output formatter based on flags and config.
func createFormatter() (output.Formatter, error) {
	name := searchOpts.format
	if name == "" {
		name = cfg.Output.Format
	}
	format, err := output.ParseFormatType(name)
	if err != nil {
		return nil, err
	}

	opts := output.DefaultFormatterOptions()
	opts.Template = searchOpts.template
	opts.Accent = cfg.Style.Accent
	opts.UnreadMarker = cfg.Style.UnreadMarker
	opts.Color = cfg.Style.Color && !searchOpts.noColor
	opts.ShowTime = !searchOpts.noTime

	return output.NewFormatter(format, opts), nil
}
