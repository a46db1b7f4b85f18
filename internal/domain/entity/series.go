package entity

import (
	"github.com/google/uuid"
)

// StoreBookSeries is an ordered run of collections by one author, e.g.
// the volumes of a trilogy.
type StoreBookSeries struct {
	UUID        uuid.UUID   `json:"uuid"`
	AuthorID    uuid.UUID   `json:"author"`
	Names       []uuid.UUID `json:"-"`
	Collections []uuid.UUID `json:"-"`
}
