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

type publisherRepository struct {
	base
}

// NewPublisherRepository creates the publisher repository over the table store.
func NewPublisherRepository(store tablestore.Client) repository.PublisherRepository {
	return &publisherRepository{base: base{store: store}}
}

func (r *publisherRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Publisher, error) {
	obj, err := r.fetch(ctx, id, constants.TablePublisher)
	if err != nil {
		return nil, err
	}

	return decodePublisher(obj.UUID, obj.Properties)
}

func (r *publisherRepository) FindByUserID(ctx context.Context, userID string) (*entity.Publisher, error) {
	objects, err := r.store.ListByTable(ctx, constants.TablePublisher)
	if err != nil {
		return nil, errors.Wrap(err, "list publishers")
	}
	for _, obj := range objects {
		if obj.Properties["user"] == userID {
			return decodePublisher(obj.UUID, obj.Properties)
		}
	}

	return nil, repository.ErrNotFound
}

func (r *publisherRepository) Create(ctx context.Context, publisher *entity.Publisher) error {
	obj, err := r.store.Create(ctx, constants.TablePublisher, encodePublisher(publisher))
	if err != nil {
		return errors.Wrap(err, "create publisher")
	}
	publisher.UUID = obj.UUID

	return nil
}

func (r *publisherRepository) Update(ctx context.Context, publisher *entity.Publisher) error {
	if _, err := r.store.Update(ctx, publisher.UUID, encodePublisher(publisher)); err != nil {
		return errors.Wrap(err, "update publisher")
	}

	return nil
}

func (r *publisherRepository) AppendAuthor(ctx context.Context, publisherID, authorID uuid.UUID) error {
	return r.appendToList(ctx, publisherID, constants.TablePublisher, "authors", authorID)
}
