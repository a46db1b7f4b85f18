package usecase

import (
	"context"

	"pocketlib/internal/domain/entity"
)

// SeriesView is the response shape for store book series.
type SeriesView struct {
	UUID        string           `json:"uuid"`
	Author      string           `json:"author"`
	Name        *LocalizedValue  `json:"name"`
	Names       []LocalizedValue `json:"names,omitempty"`
	Collections []string         `json:"collections"`
}

// SeriesUsecase covers the store book series operations.
type SeriesUsecase interface {
	Create(ctx context.Context, principal *entity.Principal, payload map[string]any) (*SeriesView, error)
	Get(ctx context.Context, principal *entity.Principal, id string, languages []string) (*SeriesView, error)

	// Update replaces the ordered collection list of the series.
	Update(ctx context.Context, principal *entity.Principal, id string, payload map[string]any, languages []string) (*SeriesView, error)

	// SetName upserts the series name for one language.
	SetName(ctx context.Context, principal *entity.Principal, id, language string, payload map[string]any) (*LocalizedValue, error)
}
