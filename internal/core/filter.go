// Package core provides filtering, sorting, and lookup logic applied to
// the feed before and after a search.
package core

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/LongTran04/notisearch/internal/model"
	"github.com/LongTran04/notisearch/internal/search"
)

// FilterOp represents a comparison operator.
type FilterOp string

const (
	FilterOpEqual     FilterOp = "="  // Exact match
	FilterOpNotEqual  FilterOp = "!=" // Not equal
	FilterOpContains  FilterOp = "~"  // Contains any query term, accent-insensitive
	FilterOpRegex     FilterOp = "~=" // Regex match
	FilterOpGreater   FilterOp = ">"  // Greater than
	FilterOpLess      FilterOp = "<"  // Less than
	FilterOpGreaterEq FilterOp = ">=" // Greater than or equal
	FilterOpLessEq    FilterOp = "<=" // Less than or equal
)

// FilterCondition represents a single filter condition.
type FilterCondition struct {
	Field    string   // Field name: id, message, status, timestamp, highlighted
	Operator FilterOp // Comparison operator
	Value    string   // Value to compare against

	// Cached parsed values
	regex       *regexp.Regexp
	terms       []string
	timestampOp time.Time
	boolVal     bool
}

// FilterExpr represents a compound filter expression.
// Multiple conditions are ANDed together.
type FilterExpr struct {
	Conditions []FilterCondition
}

// FilterOptions specifies criteria for filtering notifications.
type FilterOptions struct {
	Since  time.Duration // Filter to notifications newer than now-since (0=all)
	Status string        // "unread", "read" or "" for any
	Limit  int           // Maximum results (0=unlimited)
}

// Filter filters notifications based on the provided options.
func Filter(notifications []model.Notification, opts FilterOptions) []model.Notification {
	now := time.Now()
	result := make([]model.Notification, 0, len(notifications))

	for _, n := range notifications {
		if opts.Since > 0 {
			cutoff := now.Add(-opts.Since)
			if n.CreatedAtTime().Before(cutoff) {
				continue
			}
		}

		if opts.Status != "" && n.Status != opts.Status {
			continue
		}

		result = append(result, n)
	}

	if opts.Limit > 0 && len(result) > opts.Limit {
		result = result[:opts.Limit]
	}

	return result
}

// ParseDuration parses a duration string with extended formats.
// Supports: 48h, 7d, 1w, 0 (all time)
func ParseDuration(s string) (time.Duration, error) {
	s = strings.TrimSpace(s)

	if s == "0" || s == "" {
		return 0, nil
	}

	// Handle day suffix (7d -> 168h)
	if daysStr, found := strings.CutSuffix(s, "d"); found {
		days, err := strconv.Atoi(daysStr)
		if err != nil {
			return 0, fmt.Errorf("invalid duration: %s", s)
		}
		return time.Duration(days) * 24 * time.Hour, nil
	}

	// Handle week suffix (1w -> 168h)
	if weeksStr, found := strings.CutSuffix(s, "w"); found {
		weeks, err := strconv.Atoi(weeksStr)
		if err != nil {
			return 0, fmt.Errorf("invalid duration: %s", s)
		}
		return time.Duration(weeks) * 7 * 24 * time.Hour, nil
	}

	return time.ParseDuration(s)
}

// ParseStatus parses a status string. An empty string means any status.
func ParseStatus(s string) (string, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "any", "all":
		return "", nil
	case model.StatusUnread, "new":
		return model.StatusUnread, nil
	case model.StatusRead, "seen":
		return model.StatusRead, nil
	default:
		return "", fmt.Errorf("invalid status: %s (use unread, read or any)", s)
	}
}

// ParseFilter parses a filter expression string into a FilterExpr.
// Format: "field=value,field2~value2,field3>value3"
// Multiple conditions are comma-separated and ANDed together.
//
// Supported fields: id, message, status, timestamp, highlighted
// Supported operators: = (equal), != (not equal), ~ (contains), ~= (regex), >, <, >=, <=
//
// Examples:
//   - "status=unread" - unread notifications
//   - "message~binh luan" - message contains "bình" or "luận", ignoring accents
//   - "timestamp>1d" - notifications from the last day
//   - "highlighted=true,status=read" - read notifications with highlights
func ParseFilter(expr string) (*FilterExpr, error) {
	if expr == "" {
		return &FilterExpr{}, nil
	}

	filter := &FilterExpr{
		Conditions: make([]FilterCondition, 0),
	}

	for part := range strings.SplitSeq(expr, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}

		cond, err := parseCondition(part)
		if err != nil {
			return nil, err
		}
		filter.Conditions = append(filter.Conditions, cond)
	}

	return filter, nil
}

// parseCondition parses a single condition like "status=unread".
func parseCondition(s string) (FilterCondition, error) {
	// Longest operators first
	operators := []FilterOp{
		FilterOpNotEqual,
		FilterOpGreaterEq,
		FilterOpLessEq,
		FilterOpRegex,
		FilterOpEqual,
		FilterOpContains,
		FilterOpGreater,
		FilterOpLess,
	}

	for _, op := range operators {
		idx := strings.Index(s, string(op))
		if idx > 0 {
			cond := FilterCondition{
				Field:    strings.ToLower(strings.TrimSpace(s[:idx])),
				Operator: op,
				Value:    strings.TrimSpace(s[idx+len(op):]),
			}

			if err := cond.init(); err != nil {
				return FilterCondition{}, err
			}

			return cond, nil
		}
	}

	return FilterCondition{}, fmt.Errorf("invalid filter condition: %s (missing operator)", s)
}

// init pre-parses and validates the condition value.
func (c *FilterCondition) init() error {
	switch c.Field {
	case "id":
	case "message", "text", "title":
		c.Field = "message"
		c.terms = search.Tokenize(c.Value)
	case "status":
		status, err := ParseStatus(c.Value)
		if err != nil {
			return err
		}
		c.Value = status
	case "highlighted", "highlight":
		c.Field = "highlighted"
		c.boolVal = parseBool(c.Value)
	case "timestamp", "time", "ts":
		c.Field = "timestamp"
		dur, err := ParseDuration(c.Value)
		if err != nil {
			return fmt.Errorf("invalid timestamp value: %w", err)
		}
		c.timestampOp = time.Now().Add(-dur)
	default:
		return fmt.Errorf("unknown filter field: %s", c.Field)
	}

	if c.Operator == FilterOpRegex {
		re, err := regexp.Compile(c.Value)
		if err != nil {
			return fmt.Errorf("invalid regex: %w", err)
		}
		c.regex = re
	}

	return nil
}

// parseBool parses various boolean representations.
func parseBool(s string) bool {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "true", "yes", "1", "y", "t":
		return true
	default:
		return false
	}
}

// Match tests if a notification matches the filter expression.
// All conditions must match (AND logic).
func (f *FilterExpr) Match(n model.Notification) bool {
	for _, cond := range f.Conditions {
		if !cond.Match(n) {
			return false
		}
	}
	return true
}

// Match tests if a notification matches this single condition.
func (c *FilterCondition) Match(n model.Notification) bool {
	switch c.Field {
	case "id":
		return c.matchString(n.ID)
	case "message":
		return c.matchString(n.Message.Text)
	case "status":
		return c.matchString(n.Status)
	case "highlighted":
		return c.matchBool(len(n.Message.Highlights) > 0)
	case "timestamp":
		return c.matchTimestamp(n.CreatedAtTime())
	default:
		return false
	}
}

// matchString matches a string field.
func (c *FilterCondition) matchString(fieldValue string) bool {
	switch c.Operator {
	case FilterOpEqual:
		return fieldValue == c.Value
	case FilterOpNotEqual:
		return fieldValue != c.Value
	case FilterOpContains:
		if c.terms != nil {
			return search.Matches(fieldValue, c.terms)
		}
		return strings.Contains(strings.ToLower(fieldValue), strings.ToLower(c.Value))
	case FilterOpRegex:
		return c.regex != nil && c.regex.MatchString(fieldValue)
	default:
		return false
	}
}

// matchBool matches a boolean field.
func (c *FilterCondition) matchBool(fieldValue bool) bool {
	switch c.Operator {
	case FilterOpEqual:
		return fieldValue == c.boolVal
	case FilterOpNotEqual:
		return fieldValue != c.boolVal
	default:
		return false
	}
}

// matchTimestamp matches a timestamp field.
func (c *FilterCondition) matchTimestamp(fieldValue time.Time) bool {
	switch c.Operator {
	case FilterOpGreater:
		return fieldValue.After(c.timestampOp)
	case FilterOpLess:
		return fieldValue.Before(c.timestampOp)
	case FilterOpGreaterEq:
		return !fieldValue.Before(c.timestampOp)
	case FilterOpLessEq:
		return !fieldValue.After(c.timestampOp)
	default:
		return false
	}
}

// FilterWithExpr filters notifications using a filter expression.
func FilterWithExpr(notifications []model.Notification, expr *FilterExpr) []model.Notification {
	if expr == nil || len(expr.Conditions) == 0 {
		return notifications
	}

	result := make([]model.Notification, 0, len(notifications))
	for _, n := range notifications {
		if expr.Match(n) {
			result = append(result, n)
		}
	}
	return result
}
