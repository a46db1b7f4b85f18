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

type seriesRepository struct {
	base
	names repository.LocalizedStringRepository
}

// NewSeriesRepository creates the series repository over the table store.
func NewSeriesRepository(store tablestore.Client) repository.SeriesRepository {
	return &seriesRepository{
		base:  base{store: store},
		names: newLocalizedRepository(store, constants.TableSeriesName),
	}
}

func (r *seriesRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.StoreBookSeries, error) {
	obj, err := r.fetch(ctx, id, constants.TableStoreBookSeries)
	if err != nil {
		return nil, err
	}

	return decodeSeries(obj.UUID, obj.Properties)
}

func (r *seriesRepository) Create(ctx context.Context, series *entity.StoreBookSeries) error {
	obj, err := r.store.Create(ctx, constants.TableStoreBookSeries, encodeSeries(series))
	if err != nil {
		return errors.Wrap(err, "create series")
	}
	series.UUID = obj.UUID

	return nil
}

func (r *seriesRepository) Update(ctx context.Context, series *entity.StoreBookSeries) error {
	if _, err := r.store.Update(ctx, series.UUID, encodeSeries(series)); err != nil {
		return errors.Wrap(err, "update series")
	}

	return nil
}

func (r *seriesRepository) AppendName(ctx context.Context, seriesID, nameID uuid.UUID) error {
	return r.appendToList(ctx, seriesID, constants.TableStoreBookSeries, "names", nameID)
}

func (r *seriesRepository) Names() repository.LocalizedStringRepository {
	return r.names
}
