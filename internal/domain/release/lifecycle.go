// Package release models the publishing lifecycle of store books and
// their releases: the book-level status machine, the release-level
// publish step and the snapshot copy-forward between releases.
package release

import (
	"time"

	"pocketlib/internal/domain/entity"
	domainerrors "pocketlib/internal/domain/errors"

	"github.com/google/uuid"
)

// bookTransitions lists the legal book status transitions and the minimum
// role they require. review -> published is reserved to admins; everything
// an author may do on their own book is marked entity.RoleUser.
var bookTransitions = map[entity.StoreBookStatus]map[entity.StoreBookStatus]entity.Role{
	entity.StatusUnpublished: {
		entity.StatusReview: entity.RoleUser,
	},
	entity.StatusReview: {
		entity.StatusUnpublished: entity.RoleUser,
		entity.StatusPublished:   entity.RoleAdmin,
	},
	entity.StatusPublished: {
		entity.StatusHidden:      entity.RoleUser,
		entity.StatusUnpublished: entity.RoleUser,
	},
	entity.StatusHidden: {
		entity.StatusPublished:   entity.RoleUser,
		entity.StatusUnpublished: entity.RoleUser,
	},
}

// TransitionBook checks that moving book from its current status to next
// is legal for the given role. Admins may take any edge that exists.
func TransitionBook(current, next entity.StoreBookStatus, role entity.Role) error {
	if current == next {
		return nil
	}

	required, ok := bookTransitions[current][next]
	if !ok {
		return domainerrors.ErrInvalidStatusTransition
	}
	if required == entity.RoleAdmin && role != entity.RoleAdmin {
		return domainerrors.ErrActionNotAllowed
	}

	return nil
}

// ContentMutable reports whether the content fields (title, description,
// price, isbn, categories, cover, file) governed by the given status may
// still change. Published content is append-only at the release-history
// level, not mutable in place.
func ContentMutable(status entity.StoreBookStatus) bool {
	return status == entity.StatusUnpublished || status == entity.StatusReview
}

// CheckPublishable verifies the publish preconditions for entering
// review or published state: the newest release must carry a
// description, a cover and a file.
func CheckPublishable(rel *entity.StoreBookRelease) error {
	if rel.Description == "" {
		return domainerrors.ErrCannotPublishWithoutDescription
	}
	if !rel.Cover.Present() {
		return domainerrors.ErrCannotPublishWithoutCover
	}
	if !rel.File.Present() {
		return domainerrors.ErrCannotPublishWithoutFile
	}

	return nil
}

// PublishRelease applies the release-level publish step. The owning book
// must have been published at least once (bookEverPublished); the very
// first release is published implicitly by the book-level publish action,
// see StampInitialRelease.
func PublishRelease(rel *entity.StoreBookRelease, bookEverPublished bool, releaseName, releaseNotes string, now time.Time) error {
	if rel.Status == entity.ReleasePublished {
		return domainerrors.ErrStoreBookReleaseAlreadyPublished
	}
	if !bookEverPublished {
		return domainerrors.ErrStoreBookNotPublished
	}

	rel.Status = entity.ReleasePublished
	rel.ReleaseName = releaseName
	rel.ReleaseNotes = releaseNotes
	publishedAt := now.UTC()
	rel.PublishedAt = &publishedAt

	return nil
}

// StampInitialRelease publishes the newest release as part of the first
// book-level publish. A draft without a release name gets "v1".
func StampInitialRelease(rel *entity.StoreBookRelease, now time.Time) {
	if rel.Status == entity.ReleasePublished {
		return
	}
	if rel.ReleaseName == "" {
		rel.ReleaseName = "v1"
	}
	rel.Status = entity.ReleasePublished
	publishedAt := now.UTC()
	rel.PublishedAt = &publishedAt
}

// CopyForward creates a new unpublished release snapshotting the content
// fields of prev, so an author can edit a new draft without re-entering
// unchanged fields. Lifecycle fields are reset.
func CopyForward(prev *entity.StoreBookRelease) *entity.StoreBookRelease {
	next := &entity.StoreBookRelease{
		StoreBookID: prev.StoreBookID,
		Status:      entity.ReleaseUnpublished,
		Title:       prev.Title,
		Description: prev.Description,
		Price:       prev.Price,
		ISBN:        prev.ISBN,
		Cover:       prev.Cover,
		File:        prev.File,
	}
	if len(prev.Categories) > 0 {
		next.Categories = make([]uuid.UUID, len(prev.Categories))
		copy(next.Categories, prev.Categories)
	}

	return next
}

// VisibleTo reports whether a book in the given status is readable by the
// caller. Unpublished and review content is owner/admin only; published
// and hidden books can be fetched directly by anyone.
func VisibleTo(status entity.StoreBookStatus, isOwner, isAdmin bool) bool {
	switch status {
	case entity.StatusUnpublished, entity.StatusReview:
		return isOwner || isAdmin
	default:
		return true
	}
}

// Listable reports whether a book in the given status appears in list,
// browse, latest and by-category endpoints. Hidden books never do, even
// though direct fetch succeeds.
func Listable(status entity.StoreBookStatus) bool {
	return status == entity.StatusPublished
}
