package usecase

import (
	"context"

	"pocketlib/internal/domain/entity"
)

// CategoryView is the response shape for categories.
type CategoryView struct {
	UUID  string           `json:"uuid"`
	Key   string           `json:"key"`
	Name  *LocalizedValue  `json:"name"`
	Names []LocalizedValue `json:"names,omitempty"`
}

// CategoryUsecase covers the category operations. Creation and renaming
// are admin-only; listing is public.
type CategoryUsecase interface {
	Create(ctx context.Context, principal *entity.Principal, payload map[string]any) (*CategoryView, error)
	List(ctx context.Context, languages []string) ([]*CategoryView, error)

	// SetName upserts the category name for one language.
	SetName(ctx context.Context, principal *entity.Principal, id, language string, payload map[string]any) (*LocalizedValue, error)
}
