package output

import (
	"fmt"
	"io"
	"strings"
	"text/template"

	"github.com/LongTran04/notisearch/internal/model"
	"github.com/LongTran04/notisearch/internal/search"
)

// DmenuFormatter formats results for dmenu/rofi/fuzzel, one per line
// with no styling.
type DmenuFormatter struct {
	opts     FormatterOptions
	template *template.Template
}

// NewDmenuFormatter creates a new dmenu formatter.
func NewDmenuFormatter(opts FormatterOptions) *DmenuFormatter {
	f := &DmenuFormatter{opts: opts}

	if opts.Template != "" {
		tmpl, err := template.New("dmenu").Funcs(templateFuncs(TitleStyle{})).Parse(opts.Template)
		if err == nil {
			f.template = tmpl
		}
	}

	return f
}

// Format writes results in dmenu format.
func (f *DmenuFormatter) Format(w io.Writer, results []Result) error {
	for i := range results {
		line := f.formatLine(i+1, &results[i])
		if _, err := fmt.Fprintln(w, line); err != nil {
			return err
		}
	}
	return nil
}

// formatLine formats a single result line.
func (f *DmenuFormatter) formatLine(index int, r *Result) string {
	if f.template != nil {
		var buf strings.Builder
		if err := f.template.Execute(&buf, newTemplateData(index, r)); err == nil {
			return buf.String()
		}
	}

	// Default format: index | time | title
	var parts []string
	sep := f.opts.Separator
	if sep == "" {
		sep = " | "
	}

	if f.opts.ShowIndex {
		parts = append(parts, fmt.Sprintf("%d", index))
	}

	if f.opts.ShowTime {
		parts = append(parts, relativeTime(&r.Item))
	}

	parts = append(parts, RenderTitle(r.Snapshot, TitleStyle{}))

	return strings.Join(parts, sep)
}

// templateData provides data for custom templates.
type templateData struct {
	Index        int
	Notification *model.Notification
	Snapshot     search.Snapshot
	RelativeTime string
	TimeText     string
}

func newTemplateData(index int, r *Result) templateData {
	return templateData{
		Index:        index,
		Notification: &r.Item,
		Snapshot:     r.Snapshot,
		RelativeTime: relativeTime(&r.Item),
		TimeText:     r.Item.TimeText(),
	}
}

// templateFuncs returns template helper functions.
func templateFuncs(style TitleStyle) template.FuncMap {
	return template.FuncMap{
		"truncate": func(s string, maxLen int) string {
			rs := []rune(s)
			if maxLen <= 0 || len(rs) <= maxLen {
				return s
			}
			if maxLen <= 3 {
				return string(rs[:maxLen])
			}
			return string(rs[:maxLen-3]) + "..."
		},
		"title": func(snap search.Snapshot) string {
			return RenderTitle(snap, style)
		},
		"unread": func(n *model.Notification) string {
			if n.IsUnread() {
				return "*"
			}
			return " "
		},
	}
}
