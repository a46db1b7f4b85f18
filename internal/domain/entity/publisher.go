package entity

import (
	"github.com/google/uuid"
)

// Publisher represents a publishing house owned by a user. Authors is the
// ordered list of author uuids managed by this publisher.
type Publisher struct {
	UUID        uuid.UUID   `json:"uuid"`
	UserID      string      `json:"-"`
	Name        string      `json:"name"`
	Description string      `json:"description,omitempty"`
	WebsiteURL  string      `json:"website_url,omitempty"`
	Authors     []uuid.UUID `json:"-"`

	Logo ImageRef `json:"logo"`
}
