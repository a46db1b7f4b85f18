package service

import (
	"context"
)

// StoreBookEvent is emitted when a store book changes its publication
// state, for downstream consumers (search indexing, notifications).
type StoreBookEvent struct {
	RequestID   string `json:"request_id,omitempty"` // For distributed tracing
	StoreBookID string `json:"store_book_id"`
	AuthorID    string `json:"author_id"`
	Status      string `json:"status"`
	Title       string `json:"title"`
	Language    string `json:"language"`
}

// EventPublisher publishes store book events to a message queue.
type EventPublisher interface {
	PublishStoreBookEvent(ctx context.Context, event *StoreBookEvent) error

	// Close releases any resources held by the publisher.
	Close() error
}
