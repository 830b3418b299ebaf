package store

import (
	"context"
	"log/slog"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
)

// reloadTimeout bounds a single feed reload.
const reloadTimeout = 10 * time.Second

// FileWatcher watches the feed file and reloads the store when it changes.
type FileWatcher struct {
	watcher  *fsnotify.Watcher
	store    *Store
	filePath string
	done     chan struct{}
	mu       sync.Mutex
	running  bool
}

// NewFileWatcher creates a new file watcher for the store's feed file.
func NewFileWatcher(store *Store, filePath string) (*FileWatcher, error) {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}

	return &FileWatcher{
		watcher:  watcher,
		store:    store,
		filePath: filePath,
		done:     make(chan struct{}),
	}, nil
}

// Start begins watching the file for changes.
func (fw *FileWatcher) Start() error {
	fw.mu.Lock()
	defer fw.mu.Unlock()

	if fw.running {
		return nil
	}

	// Watch the directory; editors often replace the file on save.
	dir := filepath.Dir(fw.filePath)
	if err := fw.watcher.Add(dir); err != nil {
		return err
	}

	fw.running = true
	go fw.watch()
	return nil
}

// watch is the main watch loop.
func (fw *FileWatcher) watch() {
	filename := filepath.Base(fw.filePath)

	for {
		select {
		case event, ok := <-fw.watcher.Events:
			if !ok {
				return
			}

			if filepath.Base(event.Name) != filename {
				continue
			}

			if event.Has(fsnotify.Write) || event.Has(fsnotify.Create) || event.Has(fsnotify.Rename) {
				slog.Debug("feed changed, reloading store", "file", fw.filePath)
				fw.reload()
			}

		case err, ok := <-fw.watcher.Errors:
			if !ok {
				return
			}
			slog.Warn("feed watcher error", "error", err)

		case <-fw.done:
			return
		}
	}
}

func (fw *FileWatcher) reload() {
	ctx, cancel := context.WithTimeout(context.Background(), reloadTimeout)
	defer cancel()

	if err := fw.store.Hydrate(ctx); err != nil {
		slog.Warn("failed to reload feed", "file", fw.filePath, "error", err)
	}
}

// Stop stops the file watcher.
func (fw *FileWatcher) Stop() error {
	fw.mu.Lock()
	defer fw.mu.Unlock()

	if !fw.running {
		return nil
	}

	fw.running = false
	close(fw.done)
	return fw.watcher.Close()
}
