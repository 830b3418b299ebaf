package search

import (
	"errors"
	"fmt"
	"strings"

	"github.com/LongTran04/notisearch/internal/textfold"
)

// ErrSpanOutOfBounds reports an emphasis span that does not fit inside the
// text it claims to index. It points at corrupt upstream data.
var ErrSpanOutOfBounds = errors.New("emphasis span out of bounds")

// Span marks a substring of a source text by rune offset and length.
// The source is usually the message body, not the title it gets
// highlighted in.
type Span struct {
	Offset int `json:"offset" yaml:"offset"`
	Length int `json:"length" yaml:"length"`
}

// SpanError describes an out-of-bounds span.
type SpanError struct {
	Span      Span
	SourceLen int
}

func (e *SpanError) Error() string {
	return fmt.Sprintf("%s: offset %d length %d in text of %d runes",
		ErrSpanOutOfBounds, e.Span.Offset, e.Span.Length, e.SourceLen)
}

func (e *SpanError) Unwrap() error {
	return ErrSpanOutOfBounds
}

// ResolveEmphasis extracts each span from source and locates its first
// occurrence in display, ignoring case and diacritics. Spans whose text is
// not found in display are left out, so the result may be shorter than
// spans. Order follows spans.
//
// A span that falls outside source fails the whole call with a *SpanError.
func ResolveEmphasis(spans []Span, source, display string) ([]Range, error) {
	if len(spans) == 0 {
		return nil, nil
	}
	return resolveEmphasis(spans, []rune(source), textfold.FoldMapped(display))
}

func resolveEmphasis(spans []Span, source []rune, m textfold.Mapped) ([]Range, error) {
	var ranges []Range
	for _, sp := range spans {
		if sp.Offset < 0 || sp.Length < 0 || sp.Offset > len(source) || sp.Length > len(source)-sp.Offset {
			return nil, &SpanError{Span: sp, SourceLen: len(source)}
		}

		needle := textfold.Fold(string(source[sp.Offset : sp.Offset+sp.Length]))
		if needle == "" {
			continue
		}
		idx := strings.Index(m.Text, needle)
		if idx < 0 {
			continue
		}
		if r := spanRange(m, idx, idx+len(needle)); !r.Empty() {
			ranges = append(ranges, r)
		}
	}
	return ranges, nil
}
