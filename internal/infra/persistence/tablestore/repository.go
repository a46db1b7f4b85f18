package tablestore

import (
	"context"

	"pocketlib/internal/domain/entity"
	"pocketlib/internal/domain/repository"
	"pocketlib/internal/errors"
	"pocketlib/internal/infra/tablestore"

	"github.com/google/uuid"
)

// base bundles the store client shared by all repositories.
type base struct {
	store tablestore.Client
}

// fetch loads an object and verifies it belongs to the expected table. A
// uuid pointing at a different table is a kind mismatch, reported as
// ErrWrongKind rather than absence.
func (b *base) fetch(ctx context.Context, id uuid.UUID, tableID int) (*tablestore.Object, error) {
	obj, err := b.store.Get(ctx, id)
	if err != nil {
		if errors.Is(err, tablestore.ErrObjectNotFound) {
			return nil, repository.ErrNotFound
		}

		return nil, errors.Wrap(err, "get table object")
	}
	if obj.TableID != tableID {
		return nil, repository.ErrWrongKind
	}

	return obj, nil
}

// appendToList re-reads the parent object and appends childID to the
// given list property. The re-read happens immediately before the write;
// the remaining read-modify-write window is a documented property of the
// store contract, which exposes no transaction primitive.
func (b *base) appendToList(ctx context.Context, parentID uuid.UUID, tableID int, key string, childID uuid.UUID) error {
	obj, err := b.fetch(ctx, parentID, tableID)
	if err != nil {
		return err
	}

	ids, err := splitIDs(obj.Properties[key])
	if err != nil {
		return err
	}
	for _, existing := range ids {
		if existing == childID {
			return nil
		}
	}
	ids = append(ids, childID)

	if _, err := b.store.Update(ctx, parentID, map[string]string{key: joinIDs(ids)}); err != nil {
		return errors.Wrap(err, "append to "+key)
	}

	return nil
}

// localizedRepository implements repository.LocalizedStringRepository for
// one child table.
type localizedRepository struct {
	base
	tableID int
}

func newLocalizedRepository(store tablestore.Client, tableID int) repository.LocalizedStringRepository {
	return &localizedRepository{base: base{store: store}, tableID: tableID}
}

// Children loads the given ids in order. Ids that no longer resolve are
// skipped rather than failing the whole read.
func (r *localizedRepository) Children(ctx context.Context, ids []uuid.UUID) ([]*entity.LocalizedString, error) {
	var out []*entity.LocalizedString
	for _, id := range ids {
		obj, err := r.fetch(ctx, id, r.tableID)
		if err != nil {
			if errors.Is(err, repository.ErrNotFound) || errors.Is(err, repository.ErrWrongKind) {
				continue
			}

			return nil, err
		}
		out = append(out, &entity.LocalizedString{
			UUID:     obj.UUID,
			Language: obj.Properties["language"],
			Value:    obj.Properties["value"],
		})
	}

	return out, nil
}

func (r *localizedRepository) Create(ctx context.Context, language, value string) (*entity.LocalizedString, error) {
	obj, err := r.store.Create(ctx, r.tableID, map[string]string{
		"language": language,
		"value":    value,
	})
	if err != nil {
		return nil, errors.Wrap(err, "create localized string")
	}

	return &entity.LocalizedString{UUID: obj.UUID, Language: language, Value: value}, nil
}

func (r *localizedRepository) Update(ctx context.Context, child *entity.LocalizedString) error {
	if _, err := r.store.Update(ctx, child.UUID, map[string]string{
		"language": child.Language,
		"value":    child.Value,
	}); err != nil {
		return errors.Wrap(err, "update localized string")
	}

	return nil
}
