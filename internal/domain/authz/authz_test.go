package authz

import (
	"context"
	"testing"

	"pocketlib/internal/domain/entity"
	domainerrors "pocketlib/internal/domain/errors"
	persistence "pocketlib/internal/infra/persistence/tablestore"
	"pocketlib/internal/infra/tablestore"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fixture struct {
	resolver *Resolver
	store    *tablestore.Memory
	author   *entity.Author
	owner    *entity.Principal
	admin    *entity.Principal
	other    *entity.Principal
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	store := tablestore.NewMemory()
	authors := persistence.NewAuthorRepository(store)
	publishers := persistence.NewPublisherRepository(store)
	collections := persistence.NewCollectionRepository(store)
	books := persistence.NewStoreBookRepository(store)

	author := &entity.Author{UserID: "user-owner", FirstName: "Lemony", LastName: "Snicket"}
	require.NoError(t, authors.Create(context.Background(), author))

	return &fixture{
		resolver: NewResolver(authors, publishers, collections, books),
		store:    store,
		author:   author,
		owner:    &entity.Principal{Role: entity.RoleUser, UserID: "user-owner", AppID: "pocketlib"},
		admin:    &entity.Principal{Role: entity.RoleAdmin, UserID: "user-admin", AppID: "pocketlib"},
		other:    &entity.Principal{Role: entity.RoleUser, UserID: "user-other", AppID: "pocketlib"},
	}
}

func TestResolveAuthor_MineForOwner(t *testing.T) {
	f := newFixture(t)

	author, err := f.resolver.ResolveAuthor(context.Background(), f.owner, Mine)
	require.NoError(t, err)
	assert.Equal(t, f.author.UUID, author.UUID)
}

func TestResolveAuthor_MineWithoutAuthorRecord(t *testing.T) {
	f := newFixture(t)

	_, err := f.resolver.ResolveAuthor(context.Background(), f.other, Mine)
	assert.ErrorIs(t, err, domainerrors.ErrUserIsNotAuthor)
}

func TestResolveAuthor_MineRejectedForAdmins(t *testing.T) {
	f := newFixture(t)

	// Admins own no author record by construction; the check runs
	// before any ownership resolution.
	_, err := f.resolver.ResolveAuthor(context.Background(), f.admin, Mine)
	assert.ErrorIs(t, err, domainerrors.ErrUserIsNotAuthor)
}

func TestResolveAuthor_ByUUID(t *testing.T) {
	f := newFixture(t)

	author, err := f.resolver.ResolveAuthor(context.Background(), f.other, f.author.UUID.String())
	require.NoError(t, err)
	assert.Equal(t, f.author.UUID, author.UUID)

	_, err = f.resolver.ResolveAuthor(context.Background(), f.other, uuid.New().String())
	assert.ErrorIs(t, err, domainerrors.ErrAuthorNotFound)

	_, err = f.resolver.ResolveAuthor(context.Background(), f.other, "not-a-uuid")
	assert.ErrorIs(t, err, domainerrors.ErrAuthorNotFound)
}

func TestResolveAuthor_KindMismatchIsAccessViolation(t *testing.T) {
	f := newFixture(t)

	collections := persistence.NewCollectionRepository(f.store)
	collection := &entity.StoreBookCollection{AuthorID: f.author.UUID}
	require.NoError(t, collections.Create(context.Background(), collection))

	_, err := f.resolver.ResolveAuthor(context.Background(), f.other, collection.UUID.String())
	assert.ErrorIs(t, err, domainerrors.ErrActionNotAllowed)
}

func TestOwnerChainWalk(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	collections := persistence.NewCollectionRepository(f.store)
	books := persistence.NewStoreBookRepository(f.store)

	collection := &entity.StoreBookCollection{AuthorID: f.author.UUID}
	require.NoError(t, collections.Create(ctx, collection))

	book := &entity.StoreBook{CollectionID: collection.UUID, Language: "en", Status: entity.StatusUnpublished}
	require.NoError(t, books.Create(ctx, book))

	rel := &entity.StoreBookRelease{StoreBookID: book.UUID, Status: entity.ReleaseUnpublished, Title: "T"}
	require.NoError(t, books.CreateRelease(ctx, rel))

	owner, err := f.resolver.ReleaseOwner(ctx, rel)
	require.NoError(t, err)
	assert.Equal(t, "user-owner", owner)

	// A broken link anywhere in the chain denies access.
	orphan := &entity.StoreBookRelease{StoreBookID: uuid.New()}
	_, err = f.resolver.ReleaseOwner(ctx, orphan)
	assert.ErrorIs(t, err, domainerrors.ErrActionNotAllowed)
}

func TestRequire(t *testing.T) {
	owner := &entity.Principal{Role: entity.RoleUser, UserID: "user-owner"}
	admin := &entity.Principal{Role: entity.RoleAdmin, UserID: "user-admin"}
	other := &entity.Principal{Role: entity.RoleUser, UserID: "user-other"}

	assert.NoError(t, Require(owner, "user-owner"))
	assert.NoError(t, Require(admin, "user-owner"), "admin bypasses ownership")
	assert.ErrorIs(t, Require(other, "user-owner"), domainerrors.ErrActionNotAllowed)
	assert.ErrorIs(t, Require(other, ""), domainerrors.ErrActionNotAllowed)

	var anonymous *entity.Principal
	assert.ErrorIs(t, Require(anonymous, "user-owner"), domainerrors.ErrActionNotAllowed)
}

func TestAuthorOwner_PublisherManagedAuthor(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	publishers := persistence.NewPublisherRepository(f.store)
	publisher := &entity.Publisher{UserID: "user-pub", Name: "Daniel's"}
	require.NoError(t, publishers.Create(ctx, publisher))

	authors := persistence.NewAuthorRepository(f.store)
	managed := &entity.Author{PublisherID: publisher.UUID, FirstName: "Ada", LastName: "Lovelace"}
	require.NoError(t, authors.Create(ctx, managed))

	owner, err := f.resolver.AuthorOwner(ctx, managed)
	require.NoError(t, err)
	assert.Equal(t, "user-pub", owner)
}
