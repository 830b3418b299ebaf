// Package model defines the notification feed data structures.
package model

import (
	"crypto/rand"
	"errors"
	"fmt"
	"time"

	"github.com/oklog/ulid/v2"

	"github.com/LongTran04/notisearch/internal/search"
)

// Notification statuses.
const (
	StatusUnread = "unread"
	StatusRead   = "read"
)

// TimeLayout renders CreatedAt as "dd/MM/yyyy, HH:mm".
const TimeLayout = "02/01/2006, 15:04"

// Highlight marks a server-emphasised substring of the message text by
// rune offset and length.
type Highlight struct {
	Offset int `json:"offset" yaml:"offset"`
	Length int `json:"length" yaml:"length"`
}

// Message is the body of a notification.
type Message struct {
	Text       string      `json:"text" yaml:"text"`
	Highlights []Highlight `json:"highlights,omitempty" yaml:"highlights,omitempty"`
}

// Notification is a single entry of the feed.
type Notification struct {
	ID        string  `json:"id" yaml:"id"`
	Image     string  `json:"image,omitempty" yaml:"image,omitempty"` // avatar URL
	Icon      string  `json:"icon,omitempty" yaml:"icon,omitempty"`   // action icon URL
	Message   Message `json:"message" yaml:"message"`
	Status    string  `json:"status" yaml:"status"`
	CreatedAt int64   `json:"createdAt" yaml:"createdAt"` // unix seconds
}

// Feed is the top-level document holding notifications.
type Feed struct {
	Data []Notification `json:"data" yaml:"data"`
}

// Validation errors.
var (
	ErrEmptyID          = errors.New("id cannot be empty")
	ErrInvalidStatus    = errors.New("status must be read or unread")
	ErrInvalidTimestamp = errors.New("createdAt must not be negative")
)

// Validate checks that the notification has all required fields.
// Highlight bounds are not checked here; they surface when the
// notification is searched.
func (n *Notification) Validate() error {
	if n.ID == "" {
		return ErrEmptyID
	}
	if n.Status != "" && n.Status != StatusUnread && n.Status != StatusRead {
		return ErrInvalidStatus
	}
	if n.CreatedAt < 0 {
		return ErrInvalidTimestamp
	}
	return nil
}

// EnsureID assigns a ULID if the notification has no ID.
func (n *Notification) EnsureID() error {
	if n.ID != "" {
		return nil
	}
	id, err := ulid.New(ulid.Timestamp(time.Now()), rand.Reader)
	if err != nil {
		return fmt.Errorf("failed to generate ULID: %w", err)
	}
	n.ID = id.String()
	return nil
}

// Title returns the text shown for the notification.
func (n *Notification) Title() string {
	return n.Message.Text
}

// IsUnread returns true if the notification has not been read.
func (n *Notification) IsUnread() bool {
	return n.Status == StatusUnread
}

// CreatedAtTime returns CreatedAt as a time.Time.
func (n *Notification) CreatedAtTime() time.Time {
	return time.Unix(n.CreatedAt, 0)
}

// TimeText formats CreatedAt in local time using TimeLayout.
func (n *Notification) TimeText() string {
	return n.CreatedAtTime().Format(TimeLayout)
}

// EmphasisSpans converts the message highlights to search spans.
func (n *Notification) EmphasisSpans() []search.Span {
	if len(n.Message.Highlights) == 0 {
		return nil
	}
	spans := make([]search.Span, len(n.Message.Highlights))
	for i, h := range n.Message.Highlights {
		spans[i] = search.Span{Offset: h.Offset, Length: h.Length}
	}
	return spans
}

// SearchRow returns the search input for a notification. The title shown
// is the message text, and highlights index that same text.
func SearchRow(n Notification) search.Row {
	return search.Row{
		Title:    n.Message.Text,
		Source:   n.Message.Text,
		Emphasis: n.EmphasisSpans(),
	}
}

// Clone creates a deep copy of the notification.
func (n *Notification) Clone() *Notification {
	clone := *n
	if n.Message.Highlights != nil {
		clone.Message.Highlights = append([]Highlight(nil), n.Message.Highlights...)
	}
	return &clone
}
