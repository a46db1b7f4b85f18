package usecase

import (
	"context"

	"pocketlib/internal/domain/entity"
	"pocketlib/internal/domain/service"
)

// AuthorView is the response shape for author resources.
type AuthorView struct {
	UUID         string          `json:"uuid"`
	Publisher    string          `json:"publisher,omitempty"`
	FirstName    string          `json:"first_name"`
	LastName     string          `json:"last_name"`
	WebsiteURL   string          `json:"website_url,omitempty"`
	Bio          *LocalizedValue `json:"bio"`
	Collections  []string        `json:"collections"`
	Series       []string        `json:"series"`
	ProfileImage OptionalImage   `json:"profile_image"`
}

// AuthorUsecase covers the author resource operations. The idOrAlias
// parameter accepts a uuid or the "mine" alias.
type AuthorUsecase interface {
	// Create makes the calling user an author, or creates a detached
	// author when the caller is an admin.
	Create(ctx context.Context, principal *entity.Principal, payload map[string]any) (*AuthorView, error)

	// List returns the public latest listing, or all authors for admins.
	List(ctx context.Context, principal *entity.Principal, latest bool, languages []string) ([]*AuthorView, error)

	Get(ctx context.Context, principal *entity.Principal, idOrAlias string, languages []string) (*AuthorView, error)
	Update(ctx context.Context, principal *entity.Principal, idOrAlias string, payload map[string]any, languages []string) (*AuthorView, error)

	// SetBio upserts the bio for one language.
	SetBio(ctx context.Context, principal *entity.Principal, idOrAlias, language string, payload map[string]any) (*LocalizedValue, error)

	SetProfileImage(ctx context.Context, principal *entity.Principal, idOrAlias, contentType string, data []byte) (*AuthorView, error)
	ProfileImage(ctx context.Context, principal *entity.Principal, idOrAlias string) (*service.Blob, error)
}
