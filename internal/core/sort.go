package core

import (
	"fmt"
	"sort"
	"strings"

	"github.com/LongTran04/notisearch/internal/model"
	"github.com/LongTran04/notisearch/internal/textfold"
)

// SortField represents a field to sort by.
type SortField string

const (
	SortByFeed      SortField = "feed"
	SortByTimestamp SortField = "timestamp"
	SortByStatus    SortField = "status"
	SortByMessage   SortField = "message"
)

// SortOrder represents ascending or descending order.
type SortOrder string

const (
	SortAsc  SortOrder = "asc"
	SortDesc SortOrder = "desc"
)

// SortOptions specifies sorting criteria.
type SortOptions struct {
	Field SortField // Field to sort by
	Order SortOrder // Sort order (asc/desc)
}

// DefaultSortOptions keeps the order the feed delivered.
func DefaultSortOptions() SortOptions {
	return SortOptions{
		Field: SortByFeed,
		Order: SortAsc,
	}
}

// Sort sorts notifications in place based on the provided options.
// SortByFeed leaves the slice untouched.
func Sort(notifications []model.Notification, opts SortOptions) {
	if len(notifications) == 0 || opts.Field == SortByFeed {
		return
	}

	var keys []string
	if opts.Field == SortByMessage {
		keys = make([]string, len(notifications))
		for i, n := range notifications {
			keys[i] = textfold.Fold(n.Message.Text)
		}
	}

	sort.Stable(&sorter{notifications: notifications, keys: keys, opts: opts})
}

// sorter keeps the folded message keys aligned with the notifications.
type sorter struct {
	notifications []model.Notification
	keys          []string
	opts          SortOptions
}

func (s *sorter) Len() int { return len(s.notifications) }

func (s *sorter) Swap(i, j int) {
	s.notifications[i], s.notifications[j] = s.notifications[j], s.notifications[i]
	if s.keys != nil {
		s.keys[i], s.keys[j] = s.keys[j], s.keys[i]
	}
}

func (s *sorter) Less(i, j int) bool {
	a, b := s.notifications[i], s.notifications[j]

	if s.opts.Order == SortDesc {
		i, j = j, i
		a, b = b, a
	}

	switch s.opts.Field {
	case SortByStatus:
		// Unread sorts before read in ascending order.
		return a.IsUnread() && !b.IsUnread()
	case SortByMessage:
		return s.keys[i] < s.keys[j]
	default:
		return a.CreatedAt < b.CreatedAt
	}
}

// ParseSortField parses a sort field string.
func ParseSortField(s string) (SortField, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "feed", "none":
		return SortByFeed, nil
	case "timestamp", "time", "t":
		return SortByTimestamp, nil
	case "status", "s":
		return SortByStatus, nil
	case "message", "text", "m":
		return SortByMessage, nil
	default:
		return SortByFeed, fmt.Errorf("invalid sort field: %s (use feed, timestamp, status or message)", s)
	}
}

// ParseSortOrder parses a sort order string.
func ParseSortOrder(s string) (SortOrder, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "asc", "ascending", "a":
		return SortAsc, nil
	case "desc", "descending", "d":
		return SortDesc, nil
	default:
		return SortAsc, fmt.Errorf("invalid sort order: %s (use asc or desc)", s)
	}
}
