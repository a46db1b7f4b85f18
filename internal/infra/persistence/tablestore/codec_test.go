package tablestore

import (
	"context"
	"testing"
	"time"

	"pocketlib/internal/domain/entity"
	"pocketlib/internal/domain/repository"
	"pocketlib/internal/infra/tablestore"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReleaseCodec_RoundTrip(t *testing.T) {
	publishedAt := time.Date(2026, 3, 14, 9, 26, 53, 0, time.UTC)
	rel := &entity.StoreBookRelease{
		StoreBookID:  uuid.New(),
		Status:       entity.ReleasePublished,
		ReleaseName:  "v2",
		ReleaseNotes: "fixed typos",
		PublishedAt:  &publishedAt,
		Title:        "The Bad Beginning",
		Description:  "A most unfortunate tale",
		Price:        1299,
		ISBN:         "9780064407663",
		Categories:   []uuid.UUID{uuid.New(), uuid.New()},
		Cover:        entity.ImageRef{ItemID: uuid.New(), Blurhash: "LEHV6n", AspectRatio: "2:3"},
		File:         entity.FileRef{ItemID: uuid.New(), FileName: "book.epub"},
	}

	props := encodeRelease(rel)
	assert.Equal(t, "1299", props["price"], "price is stored as a decimal string")

	id := uuid.New()
	decoded, err := decodeRelease(id, props)
	require.NoError(t, err)
	rel.UUID = id
	assert.Equal(t, rel, decoded)
}

func TestAuthorCodec_OrderedListsSurvive(t *testing.T) {
	author := &entity.Author{
		UserID:      "user-1",
		FirstName:   "Lemony",
		LastName:    "Snicket",
		Bios:        []uuid.UUID{uuid.New(), uuid.New(), uuid.New()},
		Collections: []uuid.UUID{uuid.New()},
	}

	props := encodeAuthor(author)
	id := uuid.New()
	decoded, err := decodeAuthor(id, props)
	require.NoError(t, err)
	assert.Equal(t, author.Bios, decoded.Bios, "list order must survive the round trip")
	assert.Equal(t, author.Collections, decoded.Collections)
	assert.Empty(t, decoded.Series)
}

func TestStoreBookCodec_EmptyOptionalFields(t *testing.T) {
	book := &entity.StoreBook{
		CollectionID: uuid.New(),
		Language:     "de",
		Status:       entity.StatusUnpublished,
		CreatedAt:    time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC),
	}

	decoded, err := decodeStoreBook(uuid.New(), encodeStoreBook(book))
	require.NoError(t, err)
	assert.Equal(t, entity.StatusUnpublished, decoded.Status)
	assert.Empty(t, decoded.Releases)
	assert.Equal(t, book.CreatedAt, decoded.CreatedAt)
}

func TestFetch_WrongTableIsKindMismatch(t *testing.T) {
	store := tablestore.NewMemory()
	ctx := context.Background()

	authors := NewAuthorRepository(store)
	books := NewStoreBookRepository(store)

	author := &entity.Author{UserID: "user-1", FirstName: "Lemony", LastName: "Snicket"}
	require.NoError(t, authors.Create(ctx, author))

	// An author uuid fetched as a store book is an access violation,
	// not a 404.
	_, err := books.FindByID(ctx, author.UUID)
	assert.ErrorIs(t, err, repository.ErrWrongKind)

	_, err = books.FindByID(ctx, uuid.New())
	assert.ErrorIs(t, err, repository.ErrNotFound)
}

func TestAppendToList_ReReadsParent(t *testing.T) {
	store := tablestore.NewMemory()
	ctx := context.Background()

	authors := NewAuthorRepository(store)
	author := &entity.Author{UserID: "user-1", FirstName: "Lemony", LastName: "Snicket"}
	require.NoError(t, authors.Create(ctx, author))

	first := uuid.New()
	second := uuid.New()
	require.NoError(t, authors.AppendCollection(ctx, author.UUID, first))
	// A stale in-memory copy of the author must not matter: the append
	// re-reads the stored list.
	require.NoError(t, authors.AppendCollection(ctx, author.UUID, second))
	// Appending the same id twice is a no-op.
	require.NoError(t, authors.AppendCollection(ctx, author.UUID, second))

	reloaded, err := authors.FindByID(ctx, author.UUID)
	require.NoError(t, err)
	assert.Equal(t, []uuid.UUID{first, second}, reloaded.Collections)
}
