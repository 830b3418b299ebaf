// Package output provides output formatters for search results.
package output

import (
	"fmt"
	"io"
	"strings"

	"github.com/LongTran04/notisearch/internal/model"
	"github.com/LongTran04/notisearch/internal/search"
)

// Result is one notification together with its search snapshot.
type Result = search.Result[model.Notification]

// Formatter formats search results for output.
type Formatter interface {
	// Format writes formatted results to the writer.
	Format(w io.Writer, results []Result) error
}

// FormatType represents an output format type.
type FormatType string

const (
	FormatPlain FormatType = "plain"
	FormatDmenu FormatType = "dmenu"
	FormatJSON  FormatType = "json"
	FormatYAML  FormatType = "yaml"
	FormatIDs   FormatType = "ids"
)

// FormatTypes lists every supported format.
var FormatTypes = []FormatType{FormatPlain, FormatDmenu, FormatJSON, FormatYAML, FormatIDs}

// ParseFormatType validates a format name.
func ParseFormatType(name string) (FormatType, error) {
	f := FormatType(strings.ToLower(strings.TrimSpace(name)))
	if f == "" {
		return FormatPlain, nil
	}
	for _, known := range FormatTypes {
		if f == known {
			return f, nil
		}
	}
	return "", fmt.Errorf("unknown output format %q (want plain, dmenu, json, yaml or ids)", name)
}

// NewFormatter creates a formatter for the specified format type.
func NewFormatter(format FormatType, opts FormatterOptions) Formatter {
	switch format {
	case FormatJSON:
		return NewJSONFormatter(opts)
	case FormatYAML:
		return NewYAMLFormatter(opts)
	case FormatIDs:
		return NewIDsFormatter()
	case FormatDmenu:
		return NewDmenuFormatter(opts)
	case FormatPlain:
		fallthrough
	default:
		return NewPlainFormatter(opts)
	}
}

// FormatterOptions configures formatter behavior.
type FormatterOptions struct {
	Template     string // Custom template for dmenu/plain format
	ShowIndex    bool   // Show 1-based index prefix
	ShowTime     bool   // Show timestamp and relative time
	Color        bool   // Style ranges with ANSI colour; false uses text markers
	Accent       string // Colour for search matches
	UnreadMarker string // Prefix for unread rows
	Separator    string // Field separator for dmenu format
}

// DefaultFormatterOptions returns sensible defaults for plain output.
func DefaultFormatterOptions() FormatterOptions {
	return FormatterOptions{
		ShowIndex:    true,
		ShowTime:     true,
		Color:        true,
		Accent:       "#3BB57A",
		UnreadMarker: "●",
		Separator:    " | ",
	}
}

// titleStyle returns the range styling selected by opts.
func (o FormatterOptions) titleStyle() TitleStyle {
	if o.Color {
		return ColorTitleStyle(o.Accent)
	}
	return MarkerTitleStyle()
}
