// Package store holds the loaded notification feed and runs searches over it.
package store

import (
	"context"
	"sync"

	"github.com/LongTran04/notisearch/internal/model"
	"github.com/LongTran04/notisearch/internal/search"
)

// ChangeEvent signals store content changes.
// One is sent after every Replace.
type ChangeEvent struct {
	Count  int
	Source string
}

// Source loads a full feed. Input adapters satisfy it.
type Source interface {
	Name() string
	Import(ctx context.Context) ([]model.Notification, error)
}

// Result is a searched notification with its computed snapshot.
type Result = search.Result[model.Notification]

// Store manages the notification feed with thread-safe operations.
// Notifications keep feed order.
type Store struct {
	mu            sync.RWMutex
	notifications []model.Notification
	index         map[string]int // id -> slice index

	source Source

	subscribers []chan ChangeEvent
	closed      bool
}

// NewStore creates a new Store.
// If source is not nil, Hydrate reloads the feed from it.
func NewStore(source Source) *Store {
	return &Store{
		notifications: make([]model.Notification, 0),
		index:         make(map[string]int),
		source:        source,
		subscribers:   make([]chan ChangeEvent, 0),
	}
}

// Replace swaps the stored feed for ns.
func (s *Store) Replace(ns []model.Notification, source string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return ErrStoreClosed
	}

	notifications := make([]model.Notification, 0, len(ns))
	index := make(map[string]int, len(ns))
	for _, n := range ns {
		if err := n.EnsureID(); err != nil {
			return err
		}
		if idx, exists := index[n.ID]; exists {
			notifications[idx] = n
			continue
		}
		index[n.ID] = len(notifications)
		notifications = append(notifications, n)
	}

	s.notifications = notifications
	s.index = index

	s.notifyChange(ChangeEvent{
		Count:  len(notifications),
		Source: source,
	})

	return nil
}

// All returns a copy of all notifications in feed order.
func (s *Store) All() []model.Notification {
	s.mu.RLock()
	defer s.mu.RUnlock()

	result := make([]model.Notification, len(s.notifications))
	copy(result, s.notifications)
	return result
}

// GetByID returns a notification by its ID, or nil.
func (s *Store) GetByID(id string) *model.Notification {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if idx, ok := s.index[id]; ok {
		return s.notifications[idx].Clone()
	}
	return nil
}

// Count returns the number of notifications.
func (s *Store) Count() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.notifications)
}

// Search filters the feed by query and computes a snapshot for every kept
// notification. An empty query returns the whole feed unhighlighted.
func (s *Store) Search(ctx context.Context, query string, opts search.Options) ([]Result, error) {
	return search.SearchAll(ctx, s.All(), query, model.SearchRow, opts)
}

// Hydrate reloads the feed from the store's source.
func (s *Store) Hydrate(ctx context.Context) error {
	if s.source == nil {
		return nil
	}

	notifications, err := s.source.Import(ctx)
	if err != nil {
		return err
	}

	return s.Replace(notifications, s.source.Name())
}

// Subscribe returns a channel that receives change events.
func (s *Store) Subscribe() <-chan ChangeEvent {
	s.mu.Lock()
	defer s.mu.Unlock()

	ch := make(chan ChangeEvent, 10)
	s.subscribers = append(s.subscribers, ch)
	return ch
}

// Unsubscribe removes a subscriber channel and closes it.
func (s *Store) Unsubscribe(ch <-chan ChangeEvent) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i, sub := range s.subscribers {
		if sub == ch {
			close(sub)
			s.subscribers = append(s.subscribers[:i], s.subscribers[i+1:]...)
			return
		}
	}
}

// Close releases subscribers. The store rejects writes afterwards.
func (s *Store) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return nil
	}
	s.closed = true

	for _, ch := range s.subscribers {
		close(ch)
	}
	s.subscribers = nil

	return nil
}

// notifyChange sends a change event to all subscribers (non-blocking).
// Callers hold s.mu.
func (s *Store) notifyChange(event ChangeEvent) {
	for _, ch := range s.subscribers {
		select {
		case ch <- event:
		default:
			// Channel full, skip
		}
	}
}

// Errors
var (
	ErrStoreClosed = storeError("store is closed")
)

type storeError string

func (e storeError) Error() string {
	return string(e)
}
