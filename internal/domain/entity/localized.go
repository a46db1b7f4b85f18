package entity

import (
	"github.com/google/uuid"
)

// LocalizedString is a language-keyed child value (a bio, a collection
// name, a series name or a category name). Exactly one exists per
// (parent, language) pair; upserting an existing language updates the
// value in place without changing the uuid or position.
type LocalizedString struct {
	UUID     uuid.UUID `json:"uuid"`
	Language string    `json:"language"`
	Value    string    `json:"value"`
}
