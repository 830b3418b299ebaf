package output

import (
	"fmt"
	"io"
)

// IDsFormatter outputs just the notification IDs, one per line.
type IDsFormatter struct{}

// NewIDsFormatter creates a new IDs formatter.
func NewIDsFormatter() *IDsFormatter {
	return &IDsFormatter{}
}

// Format writes notification IDs to the writer, one per line.
func (f *IDsFormatter) Format(w io.Writer, results []Result) error {
	for _, r := range results {
		if _, err := fmt.Fprintln(w, r.Item.ID); err != nil {
			return err
		}
	}
	return nil
}
