package entity

import (
	"github.com/google/uuid"
)

// Category is a browsable store-book category. Key is the stable,
// URL-safe identifier used by listing endpoints.
type Category struct {
	UUID  uuid.UUID   `json:"uuid"`
	Key   string      `json:"key"`
	Names []uuid.UUID `json:"-"`
}
