package input

import (
	"context"
	"io"
	"log/slog"
	"os"

	"github.com/LongTran04/notisearch/internal/model"
)

// FileAdapter reads a feed from a JSON or YAML file.
type FileAdapter struct {
	path string
}

// NewFileAdapter creates a new FileAdapter for path.
func NewFileAdapter(path string) *FileAdapter {
	return &FileAdapter{path: path}
}

// Name returns the adapter identifier.
func (a *FileAdapter) Name() string {
	return "file"
}

// Path returns the feed file path.
func (a *FileAdapter) Path() string {
	return a.path
}

// Import reads and parses the feed file.
func (a *FileAdapter) Import(ctx context.Context) ([]model.Notification, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	f, err := os.Open(a.path)
	if err != nil {
		return nil, &AdapterError{
			Source:  a.path,
			Message: "failed to open feed",
			Err:     err,
		}
	}
	defer f.Close()

	data, err := io.ReadAll(io.LimitReader(f, maxFeedSize))
	if err != nil {
		return nil, &AdapterError{
			Source:  a.path,
			Message: "failed to read feed",
			Err:     err,
		}
	}

	notifications, err := ParseFeed(data, FormatForPath(a.path), a.path)
	if err != nil {
		return nil, err
	}

	slog.Debug("loaded feed", "file", a.path, "count", len(notifications))
	return notifications, nil
}
