package output

import (
	"encoding/json"
	"io"

	"github.com/LongTran04/notisearch/internal/model"
	"github.com/LongTran04/notisearch/internal/search"
)

// record is the serialized form of a result.
type record struct {
	Notification model.Notification `json:"notification" yaml:"notification"`
	Snapshot     search.Snapshot    `json:"snapshot" yaml:"snapshot"`
	Error        string             `json:"error,omitempty" yaml:"error,omitempty"`
}

func newRecords(results []Result) []record {
	records := make([]record, len(results))
	for i, r := range results {
		records[i] = record{Notification: r.Item, Snapshot: r.Snapshot}
		if r.Snapshot.Err != nil {
			records[i].Error = r.Snapshot.Err.Error()
		}
	}
	return records
}

// JSONFormatter formats results as JSON.
type JSONFormatter struct {
	opts FormatterOptions
}

// NewJSONFormatter creates a new JSON formatter.
func NewJSONFormatter(opts FormatterOptions) *JSONFormatter {
	return &JSONFormatter{opts: opts}
}

// Format writes results as a JSON array.
func (f *JSONFormatter) Format(w io.Writer, results []Result) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(newRecords(results))
}
