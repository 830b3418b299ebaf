package core

import (
	"github.com/LongTran04/notisearch/internal/model"
)

// LookupByID finds the first item whose ID, as reported by idOf, equals id.
// Returns nil if not found.
func LookupByID[T any](items []T, id string, idOf func(T) string) *T {
	for i := range items {
		if idOf(items[i]) == id {
			return &items[i]
		}
	}
	return nil
}

// NotificationID returns n.ID, for use with LookupByID.
func NotificationID(n model.Notification) string {
	return n.ID
}

// LookupByIndex finds an item by its index (1-based for user-friendliness).
// Returns nil if index is out of bounds.
func LookupByIndex[T any](items []T, index int) *T {
	idx := index - 1
	if idx < 0 || idx >= len(items) {
		return nil
	}
	return &items[idx]
}

// CountUnread returns how many notifications are unread.
func CountUnread(notifications []model.Notification) int {
	count := 0
	for _, n := range notifications {
		if n.IsUnread() {
			count++
		}
	}
	return count
}
