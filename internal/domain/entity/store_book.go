package entity

import (
	"time"

	"github.com/google/uuid"
)

// StoreBookStatus is the publication state of a store book.
type StoreBookStatus string

const (
	StatusUnpublished StoreBookStatus = "unpublished"
	StatusReview      StoreBookStatus = "review"
	StatusPublished   StoreBookStatus = "published"
	StatusHidden      StoreBookStatus = "hidden"
)

// ValidStoreBookStatus reports whether s names a known status.
func ValidStoreBookStatus(s string) bool {
	switch StoreBookStatus(s) {
	case StatusUnpublished, StatusReview, StatusPublished, StatusHidden:
		return true
	}

	return false
}

// StoreBook is a sellable book. Content fields live on its releases;
// Releases is ordered oldest first and always contains at least one entry.
type StoreBook struct {
	UUID         uuid.UUID       `json:"uuid"`
	CollectionID uuid.UUID       `json:"collection"`
	Language     string          `json:"language"`
	Status       StoreBookStatus `json:"status"`
	Releases     []uuid.UUID     `json:"-"`
	CreatedAt    time.Time       `json:"-"`
}

// ReleaseStatus is the publication state of a single release.
type ReleaseStatus string

const (
	ReleaseUnpublished ReleaseStatus = "unpublished"
	ReleasePublished   ReleaseStatus = "published"
)

// StoreBookRelease is a point-in-time snapshot of a store book's content
// fields plus its own publication lifecycle. Content fields are immutable
// once the release is published.
type StoreBookRelease struct {
	UUID        uuid.UUID     `json:"uuid"`
	StoreBookID uuid.UUID     `json:"store_book"`
	Status      ReleaseStatus `json:"status"`

	ReleaseName  string     `json:"release_name,omitempty"`
	ReleaseNotes string     `json:"release_notes,omitempty"`
	PublishedAt  *time.Time `json:"published_at,omitempty"`

	Title       string      `json:"title"`
	Description string      `json:"description,omitempty"`
	Price       int         `json:"price"` // Smallest currency unit; 0 means free.
	ISBN        string      `json:"isbn,omitempty"`
	Categories  []uuid.UUID `json:"-"`

	Cover ImageRef `json:"cover"`
	File  FileRef  `json:"file"`
}

// FileRef points at a stored book file blob.
type FileRef struct {
	ItemID   uuid.UUID `json:"-"`
	FileName string    `json:"file_name,omitempty"`
}

// Present reports whether a file has been uploaded.
func (r FileRef) Present() bool {
	return r.ItemID != uuid.Nil
}
