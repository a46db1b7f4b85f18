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

type storeBookRepository struct {
	base
}

// NewStoreBookRepository creates the store book repository over the table store.
func NewStoreBookRepository(store tablestore.Client) repository.StoreBookRepository {
	return &storeBookRepository{base: base{store: store}}
}

func (r *storeBookRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.StoreBook, error) {
	obj, err := r.fetch(ctx, id, constants.TableStoreBook)
	if err != nil {
		return nil, err
	}

	return decodeStoreBook(obj.UUID, obj.Properties)
}

func (r *storeBookRepository) List(ctx context.Context) ([]*entity.StoreBook, error) {
	objects, err := r.store.ListByTable(ctx, constants.TableStoreBook)
	if err != nil {
		return nil, errors.Wrap(err, "list store books")
	}

	books := make([]*entity.StoreBook, 0, len(objects))
	for _, obj := range objects {
		book, err := decodeStoreBook(obj.UUID, obj.Properties)
		if err != nil {
			return nil, err
		}
		books = append(books, book)
	}

	return books, nil
}

func (r *storeBookRepository) Create(ctx context.Context, book *entity.StoreBook) error {
	obj, err := r.store.Create(ctx, constants.TableStoreBook, encodeStoreBook(book))
	if err != nil {
		return errors.Wrap(err, "create store book")
	}
	book.UUID = obj.UUID

	return nil
}

func (r *storeBookRepository) Update(ctx context.Context, book *entity.StoreBook) error {
	if _, err := r.store.Update(ctx, book.UUID, encodeStoreBook(book)); err != nil {
		return errors.Wrap(err, "update store book")
	}

	return nil
}

func (r *storeBookRepository) AppendRelease(ctx context.Context, bookID, releaseID uuid.UUID) error {
	return r.appendToList(ctx, bookID, constants.TableStoreBook, "releases", releaseID)
}

func (r *storeBookRepository) FindRelease(ctx context.Context, id uuid.UUID) (*entity.StoreBookRelease, error) {
	obj, err := r.fetch(ctx, id, constants.TableStoreBookRelease)
	if err != nil {
		return nil, err
	}

	return decodeRelease(obj.UUID, obj.Properties)
}

func (r *storeBookRepository) CreateRelease(ctx context.Context, rel *entity.StoreBookRelease) error {
	obj, err := r.store.Create(ctx, constants.TableStoreBookRelease, encodeRelease(rel))
	if err != nil {
		return errors.Wrap(err, "create release")
	}
	rel.UUID = obj.UUID

	return nil
}

func (r *storeBookRepository) UpdateRelease(ctx context.Context, rel *entity.StoreBookRelease) error {
	if _, err := r.store.Update(ctx, rel.UUID, encodeRelease(rel)); err != nil {
		return errors.Wrap(err, "update release")
	}

	return nil
}
