package localized

import (
	"context"
	"testing"

	"pocketlib/internal/domain/entity"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeStore struct {
	children map[uuid.UUID]*entity.LocalizedString
	updated  int
	created  int
}

func newFakeStore() *fakeStore {
	return &fakeStore{children: make(map[uuid.UUID]*entity.LocalizedString)}
}

func (s *fakeStore) Children(_ context.Context, ids []uuid.UUID) ([]*entity.LocalizedString, error) {
	var out []*entity.LocalizedString
	for _, id := range ids {
		if child, ok := s.children[id]; ok {
			out = append(out, child)
		}
	}

	return out, nil
}

func (s *fakeStore) Create(_ context.Context, language, value string) (*entity.LocalizedString, error) {
	child := &entity.LocalizedString{UUID: uuid.New(), Language: language, Value: value}
	s.children[child.UUID] = child
	s.created++

	return child, nil
}

func (s *fakeStore) Update(_ context.Context, child *entity.LocalizedString) error {
	s.children[child.UUID] = child
	s.updated++

	return nil
}

func seed(t *testing.T, store *fakeStore, pairs ...[2]string) []uuid.UUID {
	t.Helper()
	ids := make([]uuid.UUID, 0, len(pairs))
	for _, p := range pairs {
		child, err := store.Create(context.Background(), p[0], p[1])
		require.NoError(t, err)
		ids = append(ids, child.UUID)
	}
	store.created = 0

	return ids
}

func TestUpsert_NewLanguageAppends(t *testing.T) {
	store := newFakeStore()
	reg := NewRegistry(store)
	ids := seed(t, store, [2]string{"en", "Hello"})

	child, appended, err := reg.Upsert(context.Background(), ids, "de", "Hallo")
	require.NoError(t, err)
	assert.True(t, appended)
	assert.Equal(t, "de", child.Language)
	assert.Equal(t, 1, store.created)
}

func TestUpsert_ExistingLanguageUpdatesInPlace(t *testing.T) {
	store := newFakeStore()
	reg := NewRegistry(store)
	ids := seed(t, store, [2]string{"en", "Hello"}, [2]string{"de", "Hallo"})

	child, appended, err := reg.Upsert(context.Background(), ids, "en", "Hello again")
	require.NoError(t, err)
	assert.False(t, appended)
	assert.Equal(t, ids[0], child.UUID, "uuid must not change on upsert")
	assert.Equal(t, "Hello again", child.Value)
	assert.Zero(t, store.created)
	assert.Equal(t, 1, store.updated)

	// Position in the parent list is untouched because nothing was
	// appended; the list itself belongs to the caller.
	children, err := reg.List(context.Background(), ids)
	require.NoError(t, err)
	require.Len(t, children, 2)
	assert.Equal(t, "en", children[0].Language)
	assert.Equal(t, "de", children[1].Language)
}

func TestResolve_ExactThenFallbackThenNil(t *testing.T) {
	children := []*entity.LocalizedString{
		{Language: "en", Value: "Hello"},
		{Language: "de", Value: "Hallo"},
	}

	assert.Equal(t, "Hallo", Resolve(children, []string{"de"}, "en").Value)
	// A missing language falls back to "en", never to an error.
	assert.Equal(t, "Hello", Resolve(children, []string{"fr"}, "en").Value)
	assert.Nil(t, Resolve([]*entity.LocalizedString{{Language: "de"}}, []string{"fr"}, "en"))
}

func TestFilter_KeepsOrderAndDegradesToFallback(t *testing.T) {
	children := []*entity.LocalizedString{
		{Language: "en", Value: "Hello"},
		{Language: "de", Value: "Hallo"},
		{Language: "fr", Value: "Bonjour"},
	}

	got := Filter(children, []string{"fr", "de"}, "en")
	require.Len(t, got, 2)
	assert.Equal(t, "de", got[0].Language)
	assert.Equal(t, "fr", got[1].Language)

	got = Filter(children, []string{"es"}, "en")
	require.Len(t, got, 1)
	assert.Equal(t, "en", got[0].Language)
}
