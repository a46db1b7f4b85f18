package usecase

import (
	"context"

	"pocketlib/internal/domain/entity"
)

// ReleaseView is the response shape for store book releases.
type ReleaseView struct {
	UUID         string        `json:"uuid"`
	StoreBook    string        `json:"store_book"`
	Status       string        `json:"status"`
	ReleaseName  string        `json:"release_name,omitempty"`
	ReleaseNotes string        `json:"release_notes,omitempty"`
	PublishedAt  string        `json:"published_at,omitempty"`
	Title        string        `json:"title"`
	Description  string        `json:"description,omitempty"`
	Price        int           `json:"price"`
	ISBN         string        `json:"isbn,omitempty"`
	Cover        OptionalImage `json:"cover"`
	File         OptionalFile  `json:"file"`
	Categories   []string      `json:"categories"`
}

// ReleaseUsecase covers the store book release operations.
type ReleaseUsecase interface {
	// Create starts a new unpublished release for the book, copying the
	// content fields forward from the newest release.
	Create(ctx context.Context, principal *entity.Principal, bookID string, payload map[string]any) (*ReleaseView, error)

	Get(ctx context.Context, principal *entity.Principal, id string) (*ReleaseView, error)

	// Publish publishes the release. The owning book must have been
	// published at least once.
	Publish(ctx context.Context, principal *entity.Principal, id string, payload map[string]any) (*ReleaseView, error)
}
