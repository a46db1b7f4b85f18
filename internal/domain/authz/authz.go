// Package authz decides who may act on what. It resolves the "mine" path
// alias to the caller's own resource and walks transitive owner chains
// (release -> store book -> collection -> author -> user) up to the
// principal.
package authz

import (
	"context"

	"pocketlib/internal/domain/entity"
	domainerrors "pocketlib/internal/domain/errors"
	"pocketlib/internal/domain/repository"
	"pocketlib/internal/errors"

	"github.com/google/uuid"
)

// Mine is the path-parameter alias for "the caller's own resource".
const Mine = "mine"

// Resolver answers ownership and alias questions against the repositories.
type Resolver struct {
	authors     repository.AuthorRepository
	publishers  repository.PublisherRepository
	collections repository.CollectionRepository
	books       repository.StoreBookRepository
}

// NewResolver creates an authorization resolver.
func NewResolver(
	authors repository.AuthorRepository,
	publishers repository.PublisherRepository,
	collections repository.CollectionRepository,
	books repository.StoreBookRepository,
) *Resolver {
	return &Resolver{
		authors:     authors,
		publishers:  publishers,
		collections: collections,
		books:       books,
	}
}

// ResolveAuthor turns an author path parameter (uuid or "mine") into the
// concrete author. Admins have no own author record by construction, so
// "mine" is rejected for them before any ownership resolution.
func (r *Resolver) ResolveAuthor(ctx context.Context, principal *entity.Principal, idOrAlias string) (*entity.Author, error) {
	if idOrAlias == Mine {
		if principal.IsAdmin() || principal.IsAnonymous() {
			return nil, domainerrors.ErrUserIsNotAuthor
		}
		author, err := r.authors.FindByUserID(ctx, principal.UserID)
		if err != nil {
			if errors.Is(err, repository.ErrNotFound) {
				return nil, domainerrors.ErrUserIsNotAuthor
			}

			return nil, errors.Wrap(err, "resolve own author")
		}

		return author, nil
	}

	id, err := uuid.Parse(idOrAlias)
	if err != nil {
		return nil, domainerrors.ErrAuthorNotFound
	}
	author, err := r.authors.FindByID(ctx, id)
	if err != nil {
		return nil, asLoadError(err, domainerrors.ErrAuthorNotFound)
	}

	return author, nil
}

// ResolvePublisher is the publisher counterpart of ResolveAuthor.
func (r *Resolver) ResolvePublisher(ctx context.Context, principal *entity.Principal, idOrAlias string) (*entity.Publisher, error) {
	if idOrAlias == Mine {
		if principal.IsAdmin() || principal.IsAnonymous() {
			return nil, domainerrors.ErrUserIsNotPublisher
		}
		publisher, err := r.publishers.FindByUserID(ctx, principal.UserID)
		if err != nil {
			if errors.Is(err, repository.ErrNotFound) {
				return nil, domainerrors.ErrUserIsNotPublisher
			}

			return nil, errors.Wrap(err, "resolve own publisher")
		}

		return publisher, nil
	}

	id, err := uuid.Parse(idOrAlias)
	if err != nil {
		return nil, domainerrors.ErrPublisherNotFound
	}
	publisher, err := r.publishers.FindByID(ctx, id)
	if err != nil {
		return nil, asLoadError(err, domainerrors.ErrPublisherNotFound)
	}

	return publisher, nil
}

// AuthorOwner returns the user id owning the author, following the
// publisher link for publisher-managed authors.
func (r *Resolver) AuthorOwner(ctx context.Context, author *entity.Author) (string, error) {
	if author.UserID != "" {
		return author.UserID, nil
	}
	if author.PublisherID == uuid.Nil {
		return "", nil
	}
	publisher, err := r.publishers.FindByID(ctx, author.PublisherID)
	if err != nil {
		return "", asLoadError(err, domainerrors.ErrActionNotAllowed)
	}

	return publisher.UserID, nil
}

// CollectionOwner walks collection -> author -> user.
func (r *Resolver) CollectionOwner(ctx context.Context, collection *entity.StoreBookCollection) (string, error) {
	author, err := r.authors.FindByID(ctx, collection.AuthorID)
	if err != nil {
		// A broken owner link denies access rather than 404ing.
		return "", asBrokenLink(err)
	}

	return r.AuthorOwner(ctx, author)
}

// BookOwner walks store book -> collection -> author -> user.
func (r *Resolver) BookOwner(ctx context.Context, book *entity.StoreBook) (string, error) {
	collection, err := r.collections.FindByID(ctx, book.CollectionID)
	if err != nil {
		return "", asBrokenLink(err)
	}

	return r.CollectionOwner(ctx, collection)
}

// SeriesOwner walks series -> author -> user.
func (r *Resolver) SeriesOwner(ctx context.Context, series *entity.StoreBookSeries) (string, error) {
	author, err := r.authors.FindByID(ctx, series.AuthorID)
	if err != nil {
		return "", asBrokenLink(err)
	}

	return r.AuthorOwner(ctx, author)
}

// ReleaseOwner walks release -> store book -> collection -> author -> user.
func (r *Resolver) ReleaseOwner(ctx context.Context, rel *entity.StoreBookRelease) (string, error) {
	book, err := r.books.FindByID(ctx, rel.StoreBookID)
	if err != nil {
		return "", asBrokenLink(err)
	}

	return r.BookOwner(ctx, book)
}

// Require allows the action when the principal is an admin or is the
// owner. The deny reason is always the generic ActionNotAllowed; which
// link of the chain failed is deliberately not leaked.
func Require(principal *entity.Principal, ownerUserID string) error {
	if principal.IsAdmin() {
		return nil
	}
	if principal.IsAnonymous() || ownerUserID == "" || principal.UserID != ownerUserID {
		return domainerrors.ErrActionNotAllowed
	}

	return nil
}

// IsOwner reports ownership without the admin bypass, for read-visibility
// decisions.
func IsOwner(principal *entity.Principal, ownerUserID string) bool {
	return !principal.IsAnonymous() && ownerUserID != "" && principal.UserID == ownerUserID
}

// asLoadError maps repository errors on a direct load: absence keeps its
// resource-specific not-found error, but a kind mismatch is an access
// violation.
func asLoadError(err error, notFound domainerrors.AppError) error {
	switch {
	case errors.Is(err, repository.ErrNotFound):
		return notFound
	case errors.Is(err, repository.ErrWrongKind):
		return domainerrors.ErrActionNotAllowed
	default:
		return errors.Wrap(err, "load resource")
	}
}

// asBrokenLink maps repository errors inside an owner-chain walk: any
// broken link denies access.
func asBrokenLink(err error) error {
	if errors.Is(err, repository.ErrNotFound) || errors.Is(err, repository.ErrWrongKind) {
		return domainerrors.ErrActionNotAllowed
	}

	return errors.Wrap(err, "walk owner chain")
}
