package usecase

import (
	"context"

	"pocketlib/internal/domain/entity"
)

// CollectionBookView is the compact book entry inside a collection view.
type CollectionBookView struct {
	UUID     string `json:"uuid"`
	Title    string `json:"title"`
	Language string `json:"language"`
	Status   string `json:"status,omitempty"`
}

// CollectionView is the response shape for store book collections. Books
// is filtered by the caller's visibility.
type CollectionView struct {
	UUID   string                `json:"uuid"`
	Author string                `json:"author"`
	Name   *LocalizedValue       `json:"name"`
	Names  []LocalizedValue      `json:"names,omitempty"`
	Books  []*CollectionBookView `json:"books"`
}

// CollectionUsecase covers the store book collection operations.
type CollectionUsecase interface {
	Create(ctx context.Context, principal *entity.Principal, payload map[string]any) (*CollectionView, error)
	Get(ctx context.Context, principal *entity.Principal, id string, languages []string) (*CollectionView, error)

	// SetName upserts the collection name for one language.
	SetName(ctx context.Context, principal *entity.Principal, id, language string, payload map[string]any) (*LocalizedValue, error)
}
