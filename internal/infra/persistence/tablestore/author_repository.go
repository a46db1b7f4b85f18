package tablestore

import (
	"context"

	"pocketlib/internal/domain/constants"
	"pocketlib/internal/domain/entity"
	"pocketlib/internal/domain/repository"
	"pocketlib/internal/errors"
	"pocketlib/internal/infra/tablestore"

	"github.com/google/uuid"
)

type authorRepository struct {
	base
	bios repository.LocalizedStringRepository
}

// NewAuthorRepository creates the author repository over the table store.
func NewAuthorRepository(store tablestore.Client) repository.AuthorRepository {
	return &authorRepository{
		base: base{store: store},
		bios: newLocalizedRepository(store, constants.TableAuthorBio),
	}
}

func (r *authorRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Author, error) {
	obj, err := r.fetch(ctx, id, constants.TableAuthor)
	if err != nil {
		return nil, err
	}

	return decodeAuthor(obj.UUID, obj.Properties)
}

func (r *authorRepository) FindByUserID(ctx context.Context, userID string) (*entity.Author, error) {
	objects, err := r.store.ListByTable(ctx, constants.TableAuthor)
	if err != nil {
		return nil, errors.Wrap(err, "list authors")
	}
	for _, obj := range objects {
		if obj.Properties["user"] == userID {
			return decodeAuthor(obj.UUID, obj.Properties)
		}
	}

	return nil, repository.ErrNotFound
}

func (r *authorRepository) List(ctx context.Context) ([]*entity.Author, error) {
	objects, err := r.store.ListByTable(ctx, constants.TableAuthor)
	if err != nil {
		return nil, errors.Wrap(err, "list authors")
	}

	authors := make([]*entity.Author, 0, len(objects))
	for _, obj := range objects {
		author, err := decodeAuthor(obj.UUID, obj.Properties)
		if err != nil {
			return nil, err
		}
		authors = append(authors, author)
	}

	return authors, nil
}

func (r *authorRepository) Create(ctx context.Context, author *entity.Author) error {
	obj, err := r.store.Create(ctx, constants.TableAuthor, encodeAuthor(author))
	if err != nil {
		return errors.Wrap(err, "create author")
	}
	author.UUID = obj.UUID

	return nil
}

func (r *authorRepository) Update(ctx context.Context, author *entity.Author) error {
	if _, err := r.store.Update(ctx, author.UUID, encodeAuthor(author)); err != nil {
		return errors.Wrap(err, "update author")
	}

	return nil
}

func (r *authorRepository) AppendBio(ctx context.Context, authorID, bioID uuid.UUID) error {
	return r.appendToList(ctx, authorID, constants.TableAuthor, "bios", bioID)
}

func (r *authorRepository) AppendCollection(ctx context.Context, authorID, collectionID uuid.UUID) error {
	return r.appendToList(ctx, authorID, constants.TableAuthor, "collections", collectionID)
}

func (r *authorRepository) AppendSeries(ctx context.Context, authorID, seriesID uuid.UUID) error {
	return r.appendToList(ctx, authorID, constants.TableAuthor, "series", seriesID)
}

func (r *authorRepository) Bios() repository.LocalizedStringRepository {
	return r.bios
}
