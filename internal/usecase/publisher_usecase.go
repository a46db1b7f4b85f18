package usecase

import (
	"context"

	"pocketlib/internal/domain/entity"
	"pocketlib/internal/domain/service"
)

// PublisherView is the response shape for publisher resources.
type PublisherView struct {
	UUID        string        `json:"uuid"`
	Name        string        `json:"name"`
	Description string        `json:"description,omitempty"`
	WebsiteURL  string        `json:"website_url,omitempty"`
	Authors     []string      `json:"authors"`
	Logo        OptionalImage `json:"logo"`
}

// PublisherUsecase covers the publisher resource operations.
type PublisherUsecase interface {
	Create(ctx context.Context, principal *entity.Principal, payload map[string]any) (*PublisherView, error)
	Get(ctx context.Context, principal *entity.Principal, idOrAlias string) (*PublisherView, error)
	Update(ctx context.Context, principal *entity.Principal, idOrAlias string, payload map[string]any) (*PublisherView, error)

	SetLogo(ctx context.Context, principal *entity.Principal, idOrAlias, contentType string, data []byte) (*PublisherView, error)
	Logo(ctx context.Context, principal *entity.Principal, idOrAlias string) (*service.Blob, error)
}
