package input

import (
	"context"
	"io"
	"os"

	"github.com/LongTran04/notisearch/internal/model"
)

// maxFeedSize caps how much of a feed is read.
const maxFeedSize = 10 * 1024 * 1024 // 10MB

// StdinAdapter reads a JSON feed from standard input.
type StdinAdapter struct {
	reader io.Reader
}

// NewStdinAdapter creates a new StdinAdapter reading from os.Stdin.
func NewStdinAdapter() *StdinAdapter {
	return &StdinAdapter{reader: os.Stdin}
}

// NewStdinAdapterWithReader creates a new StdinAdapter with a custom reader.
func NewStdinAdapterWithReader(r io.Reader) *StdinAdapter {
	return &StdinAdapter{reader: r}
}

// Name returns the adapter identifier.
func (a *StdinAdapter) Name() string {
	return "stdin"
}

// Import reads the feed from standard input.
func (a *StdinAdapter) Import(ctx context.Context) ([]model.Notification, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	data, err := io.ReadAll(io.LimitReader(a.reader, maxFeedSize))
	if err != nil {
		return nil, &AdapterError{
			Source:  "stdin",
			Message: "failed to read stdin",
			Err:     err,
		}
	}

	if len(data) == 0 {
		return nil, nil
	}

	return ParseFeed(data, FormatJSON, "stdin")
}
