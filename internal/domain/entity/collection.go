package entity

import (
	"github.com/google/uuid"
)

// StoreBookCollection groups the language variants of one work under an
// author. Names holds the ordered localized-name uuids, Books the ordered
// store-book uuids.
type StoreBookCollection struct {
	UUID     uuid.UUID   `json:"uuid"`
	AuthorID uuid.UUID   `json:"author"`
	Names    []uuid.UUID `json:"-"`
	Books    []uuid.UUID `json:"-"`
}
