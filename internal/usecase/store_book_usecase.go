package usecase

import (
	"context"

	"pocketlib/internal/domain/entity"
	"pocketlib/internal/domain/service"
)

// StoreBookView is the response shape for store books. Content fields
// come from the newest release visible to the caller.
type StoreBookView struct {
	UUID        string        `json:"uuid"`
	Collection  string        `json:"collection"`
	Title       string        `json:"title"`
	Description string        `json:"description,omitempty"`
	Language    string        `json:"language"`
	Price       int           `json:"price"`
	ISBN        string        `json:"isbn,omitempty"`
	Status      string        `json:"status"`
	Cover       OptionalImage `json:"cover"`
	File        OptionalFile  `json:"file"`
	Categories  []string      `json:"categories"`
}

// ListStoreBooksOptions selects which books a listing returns. All
// listings are restricted to published books.
type ListStoreBooksOptions struct {
	Latest    bool
	Category  string   // Category key filter; empty means no filter.
	Languages []string // Defaults to the fallback language when empty.
}

// StoreBookUsecase covers the store book operations.
type StoreBookUsecase interface {
	// Create makes a new unpublished store book, auto-creating a
	// collection when the payload names none.
	Create(ctx context.Context, principal *entity.Principal, payload map[string]any) (*StoreBookView, error)

	Get(ctx context.Context, principal *entity.Principal, id string, languages []string) (*StoreBookView, error)

	// Update edits the newest release's content fields, copy-forwarding a
	// new draft release first when the newest one is already published.
	// A "status" field in the payload drives the status machine instead.
	Update(ctx context.Context, principal *entity.Principal, id string, payload map[string]any) (*StoreBookView, error)

	List(ctx context.Context, principal *entity.Principal, opts ListStoreBooksOptions) ([]*StoreBookView, error)

	SetCover(ctx context.Context, principal *entity.Principal, id, contentType string, data []byte) (*StoreBookView, error)
	Cover(ctx context.Context, principal *entity.Principal, id string) (*service.Blob, error)

	SetFile(ctx context.Context, principal *entity.Principal, id, contentType, fileName string, data []byte) (*StoreBookView, error)
	File(ctx context.Context, principal *entity.Principal, id string) (*service.Blob, error)
}
