package output

import (
	"fmt"
	"io"
	"strings"
	"text/template"

	"github.com/charmbracelet/lipgloss"
	"github.com/dustin/go-humanize"

	"github.com/LongTran04/notisearch/internal/model"
)

// PlainFormatter formats results as human readable text.
type PlainFormatter struct {
	opts     FormatterOptions
	style    TitleStyle
	template *template.Template
}

// NewPlainFormatter creates a new plain text formatter.
func NewPlainFormatter(opts FormatterOptions) *PlainFormatter {
	f := &PlainFormatter{opts: opts, style: opts.titleStyle()}

	// Parse custom template if provided
	if opts.Template != "" {
		tmpl, err := template.New("plain").Funcs(templateFuncs(f.style)).Parse(opts.Template)
		if err == nil {
			f.template = tmpl
		}
	}

	return f
}

// Format writes results as plain text.
func (f *PlainFormatter) Format(w io.Writer, results []Result) error {
	for i := range results {
		if err := f.formatResult(w, i+1, &results[i]); err != nil {
			return err
		}
	}
	return nil
}

func (f *PlainFormatter) formatResult(w io.Writer, index int, r *Result) error {
	if f.template != nil {
		if err := f.template.Execute(w, newTemplateData(index, r)); err != nil {
			return err
		}
		_, err := io.WriteString(w, "\n")
		return err
	}

	var sb strings.Builder

	if f.opts.ShowIndex {
		sb.WriteString(fmt.Sprintf("[%d] ", index))
	}

	if marker := f.opts.UnreadMarker; marker != "" {
		if r.Item.IsUnread() {
			sb.WriteString(marker + " ")
		} else {
			sb.WriteString(strings.Repeat(" ", lipgloss.Width(marker)) + " ")
		}
	}

	sb.WriteString(RenderTitle(r.Snapshot, f.style))
	sb.WriteString("\n")

	if f.opts.ShowTime && r.Item.CreatedAt > 0 {
		sb.WriteString(fmt.Sprintf("    %s (%s)\n", r.Item.TimeText(), relativeTime(&r.Item)))
	}

	_, err := io.WriteString(w, sb.String())
	return err
}

// relativeTime returns a human-readable relative time string.
func relativeTime(n *model.Notification) string {
	if n.CreatedAt <= 0 {
		return "unknown"
	}
	return humanize.Time(n.CreatedAtTime())
}
