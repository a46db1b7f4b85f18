package entity

import (
	"github.com/google/uuid"
)

// Author represents a writer profile owned by a user. The Bios,
// Collections and Series slices are ordered child-id lists; order is
// insertion order and is preserved across updates.
type Author struct {
	UUID        uuid.UUID   `json:"uuid"`
	UserID      string      `json:"-"` // Owning user, empty for publisher-managed authors.
	PublisherID uuid.UUID   `json:"publisher,omitempty"`
	FirstName   string      `json:"first_name"`
	LastName    string      `json:"last_name"`
	WebsiteURL  string      `json:"website_url,omitempty"`
	Bios        []uuid.UUID `json:"-"`
	Collections []uuid.UUID `json:"-"`
	Series      []uuid.UUID `json:"-"`

	ProfileImage ImageRef `json:"profile_image"`
}

// ImageRef points at a stored image blob plus its lazily computed
// analysis byproducts. An empty Blurhash means "not yet computed".
type ImageRef struct {
	ItemID      uuid.UUID `json:"-"` // Blob key; zero when no image was uploaded.
	Blurhash    string    `json:"blurhash,omitempty"`
	AspectRatio string    `json:"aspect_ratio,omitempty"`
}

// Present reports whether an image has been uploaded.
func (r ImageRef) Present() bool {
	return r.ItemID != uuid.Nil
}
