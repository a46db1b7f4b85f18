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

type collectionRepository struct {
	base
	names repository.LocalizedStringRepository
}

// NewCollectionRepository creates the collection repository over the table store.
func NewCollectionRepository(store tablestore.Client) repository.CollectionRepository {
	return &collectionRepository{
		base:  base{store: store},
		names: newLocalizedRepository(store, constants.TableCollectionName),
	}
}

func (r *collectionRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.StoreBookCollection, error) {
	obj, err := r.fetch(ctx, id, constants.TableStoreBookCollection)
	if err != nil {
		return nil, err
	}

	return decodeCollection(obj.UUID, obj.Properties)
}

func (r *collectionRepository) Create(ctx context.Context, collection *entity.StoreBookCollection) error {
	obj, err := r.store.Create(ctx, constants.TableStoreBookCollection, encodeCollection(collection))
	if err != nil {
		return errors.Wrap(err, "create collection")
	}
	collection.UUID = obj.UUID

	return nil
}

func (r *collectionRepository) AppendName(ctx context.Context, collectionID, nameID uuid.UUID) error {
	return r.appendToList(ctx, collectionID, constants.TableStoreBookCollection, "names", nameID)
}

func (r *collectionRepository) AppendBook(ctx context.Context, collectionID, bookID uuid.UUID) error {
	return r.appendToList(ctx, collectionID, constants.TableStoreBookCollection, "books", bookID)
}

func (r *collectionRepository) Names() repository.LocalizedStringRepository {
	return r.names
}
