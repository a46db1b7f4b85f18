// Package localized implements the language-keyed child registry used for
// bios and names. A parent owns an ordered list of child uuids; exactly
// one child exists per language.
package localized

import (
	"context"

	"pocketlib/internal/domain/entity"
	"pocketlib/internal/errors"

	"github.com/google/uuid"
)

// Store is the persistence surface the registry operates on. It is
// implemented per child table by the table-store repositories.
type Store interface {
	// Children loads the given child uuids, preserving order. Unknown
	// ids are skipped.
	Children(ctx context.Context, ids []uuid.UUID) ([]*entity.LocalizedString, error)

	// Create persists a new child and returns it with a fresh uuid.
	Create(ctx context.Context, language, value string) (*entity.LocalizedString, error)

	// Update persists a changed child value in place.
	Update(ctx context.Context, child *entity.LocalizedString) error
}

// Registry provides upsert-by-language and fallback lookup over a Store.
type Registry struct {
	store Store
}

// NewRegistry creates a registry over the given store.
func NewRegistry(store Store) *Registry {
	return &Registry{store: store}
}

// Upsert sets the value for language under the parent's current child-id
// list. If a child for the language exists its value is updated in place
// (uuid and position unchanged) and appended=false; otherwise a new child
// is created and appended=true, in which case the caller must append
// child.UUID to the parent's list via a read-modify-write.
func (r *Registry) Upsert(ctx context.Context, ids []uuid.UUID, language, value string) (child *entity.LocalizedString, appended bool, err error) {
	children, err := r.store.Children(ctx, ids)
	if err != nil {
		return nil, false, errors.Wrap(err, "load children")
	}

	for _, existing := range children {
		if existing.Language != language {
			continue
		}
		existing.Value = value
		if err := r.store.Update(ctx, existing); err != nil {
			return nil, false, errors.Wrap(err, "update child")
		}

		return existing, false, nil
	}

	created, err := r.store.Create(ctx, language, value)
	if err != nil {
		return nil, false, errors.Wrap(err, "create child")
	}

	return created, true, nil
}

// List loads all children of the parent in list order.
func (r *Registry) List(ctx context.Context, ids []uuid.UUID) ([]*entity.LocalizedString, error) {
	children, err := r.store.Children(ctx, ids)
	if err != nil {
		return nil, errors.Wrap(err, "load children")
	}

	return children, nil
}

// Resolve picks the best child for the requested language preference
// list: the first exact hit wins, then the default language, then nil.
// Absence is a valid terminal state on read paths.
func Resolve(children []*entity.LocalizedString, languages []string, fallback string) *entity.LocalizedString {
	for _, lang := range languages {
		for _, child := range children {
			if child.Language == lang {
				return child
			}
		}
	}

	for _, child := range children {
		if child.Language == fallback {
			return child
		}
	}

	return nil
}

// Filter returns the children matching any requested language, in child
// order. When none match, the fallback-language child is returned so read
// responses degrade gracefully instead of going empty.
func Filter(children []*entity.LocalizedString, languages []string, fallback string) []*entity.LocalizedString {
	var out []*entity.LocalizedString
	for _, child := range children {
		for _, lang := range languages {
			if child.Language == lang {
				out = append(out, child)

				break
			}
		}
	}

	if len(out) == 0 {
		if child := Resolve(children, nil, fallback); child != nil {
			out = append(out, child)
		}
	}

	return out
}
