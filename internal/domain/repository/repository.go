// Package repository defines the persistence interfaces of the domain.
// Implementations live in internal/infra/persistence/tablestore and map
// entities to the external store's flat string property maps.
package repository

import (
	"context"

	"pocketlib/internal/domain/entity"
	"pocketlib/internal/errors"

	"github.com/google/uuid"
)

// Sentinel errors returned by repositories. ErrWrongKind means the uuid
// exists but belongs to a different table; callers report it as an
// access violation, not absence.
var (
	ErrNotFound  = errors.New("record not found")
	ErrWrongKind = errors.New("record is of a different kind")
)

// LocalizedStringRepository persists the language-keyed children of one
// table (bios, collection names, series names, category names). It is the
// localized.Store implementation per child table.
type LocalizedStringRepository interface {
	Children(ctx context.Context, ids []uuid.UUID) ([]*entity.LocalizedString, error)
	Create(ctx context.Context, language, value string) (*entity.LocalizedString, error)
	Update(ctx context.Context, child *entity.LocalizedString) error
}

// AuthorRepository persists authors.
type AuthorRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Author, error)
	FindByUserID(ctx context.Context, userID string) (*entity.Author, error)
	List(ctx context.Context) ([]*entity.Author, error)
	Create(ctx context.Context, author *entity.Author) error
	Update(ctx context.Context, author *entity.Author) error

	// AppendBio re-reads the author immediately before appending, so a
	// concurrent append is not silently overwritten.
	AppendBio(ctx context.Context, authorID, bioID uuid.UUID) error
	AppendCollection(ctx context.Context, authorID, collectionID uuid.UUID) error
	AppendSeries(ctx context.Context, authorID, seriesID uuid.UUID) error

	Bios() LocalizedStringRepository
}

// PublisherRepository persists publishers.
type PublisherRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Publisher, error)
	FindByUserID(ctx context.Context, userID string) (*entity.Publisher, error)
	Create(ctx context.Context, publisher *entity.Publisher) error
	Update(ctx context.Context, publisher *entity.Publisher) error
	AppendAuthor(ctx context.Context, publisherID, authorID uuid.UUID) error
}

// CollectionRepository persists store book collections.
type CollectionRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*entity.StoreBookCollection, error)
	Create(ctx context.Context, collection *entity.StoreBookCollection) error
	AppendName(ctx context.Context, collectionID, nameID uuid.UUID) error
	AppendBook(ctx context.Context, collectionID, bookID uuid.UUID) error
	Names() LocalizedStringRepository
}

// StoreBookRepository persists store books and their releases.
type StoreBookRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*entity.StoreBook, error)
	List(ctx context.Context) ([]*entity.StoreBook, error)
	Create(ctx context.Context, book *entity.StoreBook) error
	Update(ctx context.Context, book *entity.StoreBook) error
	AppendRelease(ctx context.Context, bookID, releaseID uuid.UUID) error

	FindRelease(ctx context.Context, id uuid.UUID) (*entity.StoreBookRelease, error)
	CreateRelease(ctx context.Context, rel *entity.StoreBookRelease) error
	UpdateRelease(ctx context.Context, rel *entity.StoreBookRelease) error
}

// SeriesRepository persists store book series.
type SeriesRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*entity.StoreBookSeries, error)
	Create(ctx context.Context, series *entity.StoreBookSeries) error
	Update(ctx context.Context, series *entity.StoreBookSeries) error
	AppendName(ctx context.Context, seriesID, nameID uuid.UUID) error
	Names() LocalizedStringRepository
}

// CategoryRepository persists categories.
type CategoryRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Category, error)
	FindByKey(ctx context.Context, key string) (*entity.Category, error)
	List(ctx context.Context) ([]*entity.Category, error)
	Create(ctx context.Context, category *entity.Category) error
	AppendName(ctx context.Context, categoryID, nameID uuid.UUID) error
	Names() LocalizedStringRepository
}
