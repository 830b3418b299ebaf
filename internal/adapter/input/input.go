// Package input provides input adapters for notification feeds.
package input

import (
	"context"
	"encoding/json"
	"log/slog"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/LongTran04/notisearch/internal/model"
)

// InputAdapter fetches a notification feed from a source.
type InputAdapter interface {
	// Name returns the adapter identifier (e.g., "file", "stdin").
	Name() string

	// Import fetches the full feed from the source.
	Import(ctx context.Context) ([]model.Notification, error)
}

// Format is a feed encoding.
type Format string

const (
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
)

// FormatForPath picks the feed encoding from a file extension.
// Anything that is not .yaml/.yml is read as JSON.
func FormatForPath(path string) Format {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return FormatYAML
	default:
		return FormatJSON
	}
}

// NewAdapter creates an InputAdapter for the specified source.
// "-" and "stdin" read standard input; anything else is a file path.
func NewAdapter(source string) (InputAdapter, error) {
	switch source {
	case "":
		return nil, &AdapterError{
			Source:  source,
			Message: "no feed source given",
		}
	case "-", "stdin":
		return NewStdinAdapter(), nil
	default:
		return NewFileAdapter(source), nil
	}
}

// AdapterError represents an adapter-related error.
type AdapterError struct {
	Source  string
	Message string
	Err     error
}

func (e *AdapterError) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

func (e *AdapterError) Unwrap() error {
	return e.Err
}

// ParseFeed decodes a feed document. JSON input may be either
// {"data": [...]} or a bare array of notifications.
// Invalid entries are skipped and logged.
func ParseFeed(data []byte, format Format, source string) ([]model.Notification, error) {
	var feed model.Feed

	switch format {
	case FormatYAML:
		if err := yaml.Unmarshal(data, &feed); err != nil {
			return nil, &AdapterError{Source: source, Message: "failed to parse YAML feed", Err: err}
		}
	default:
		trimmed := strings.TrimSpace(string(data))
		if strings.HasPrefix(trimmed, "[") {
			if err := json.Unmarshal(data, &feed.Data); err != nil {
				return nil, &AdapterError{Source: source, Message: "failed to parse JSON feed", Err: err}
			}
		} else if err := json.Unmarshal(data, &feed); err != nil {
			return nil, &AdapterError{Source: source, Message: "failed to parse JSON feed", Err: err}
		}
	}

	notifications := make([]model.Notification, 0, len(feed.Data))
	for _, n := range feed.Data {
		if err := n.EnsureID(); err != nil {
			return nil, &AdapterError{Source: source, Message: "failed to assign id", Err: err}
		}
		if err := n.Validate(); err != nil {
			slog.Debug("skipping invalid notification", "source", source, "id", n.ID, "error", err)
			continue
		}
		n.Message.Text = sanitizeString(n.Message.Text)
		notifications = append(notifications, n)
	}

	return notifications, nil
}

// sanitizeString replaces control characters with spaces. It maps one rune
// to one rune so highlight offsets stay valid.
func sanitizeString(s string) string {
	var result strings.Builder
	result.Grow(len(s))
	for _, r := range s {
		if r < 32 && r != '\n' && r != '\t' {
			result.WriteRune(' ')
		} else {
			result.WriteRune(r)
		}
	}
	return result.String()
}
