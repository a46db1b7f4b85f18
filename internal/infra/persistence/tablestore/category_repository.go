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

type categoryRepository struct {
	base
	names repository.LocalizedStringRepository
}

// NewCategoryRepository creates the category repository over the table store.
func NewCategoryRepository(store tablestore.Client) repository.CategoryRepository {
	return &categoryRepository{
		base:  base{store: store},
		names: newLocalizedRepository(store, constants.TableCategoryName),
	}
}

func (r *categoryRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Category, error) {
	obj, err := r.fetch(ctx, id, constants.TableCategory)
	if err != nil {
		return nil, err
	}

	return decodeCategory(obj.UUID, obj.Properties)
}

func (r *categoryRepository) FindByKey(ctx context.Context, key string) (*entity.Category, error) {
	objects, err := r.store.ListByTable(ctx, constants.TableCategory)
	if err != nil {
		return nil, errors.Wrap(err, "list categories")
	}
	for _, obj := range objects {
		if obj.Properties["key"] == key {
			return decodeCategory(obj.UUID, obj.Properties)
		}
	}

	return nil, repository.ErrNotFound
}

func (r *categoryRepository) List(ctx context.Context) ([]*entity.Category, error) {
	objects, err := r.store.ListByTable(ctx, constants.TableCategory)
	if err != nil {
		return nil, errors.Wrap(err, "list categories")
	}

	categories := make([]*entity.Category, 0, len(objects))
	for _, obj := range objects {
		category, err := decodeCategory(obj.UUID, obj.Properties)
		if err != nil {
			return nil, err
		}
		categories = append(categories, category)
	}

	return categories, nil
}

func (r *categoryRepository) Create(ctx context.Context, category *entity.Category) error {
	obj, err := r.store.Create(ctx, constants.TableCategory, encodeCategory(category))
	if err != nil {
		return errors.Wrap(err, "create category")
	}
	category.UUID = obj.UUID

	return nil
}

func (r *categoryRepository) AppendName(ctx context.Context, categoryID, nameID uuid.UUID) error {
	return r.appendToList(ctx, categoryID, constants.TableCategory, "names", nameID)
}

func (r *categoryRepository) Names() repository.LocalizedStringRepository {
	return r.names
}
