package impl

import (
	"context"
	"testing"

	domainerrors "pocketlib/internal/domain/errors"
	"pocketlib/internal/usecase"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateStoreBook_AutoCreatesCollection(t *testing.T) {
	f := newFixture(t)
	f.becomeAuthor(t, f.owner)

	view := f.createBook(t, f.owner, nil)

	assert.Equal(t, "The Bad Beginning", view.Title)
	assert.Equal(t, "unpublished", view.Status)
	assert.False(t, view.Cover.Set)
	assert.False(t, view.File.Set)
	assert.NotEmpty(t, view.Collection)

	// The auto-created collection is named after the book.
	collection, err := f.collectionSvc.Get(context.Background(), f.owner, view.Collection, nil)
	require.NoError(t, err)
	require.NotNil(t, collection.Name)
	assert.Equal(t, "The Bad Beginning", collection.Name.Value)
	require.Len(t, collection.Books, 1)
	assert.Equal(t, view.UUID, collection.Books[0].UUID)
}

func TestCreateStoreBook_RequiresAuthor(t *testing.T) {
	f := newFixture(t)

	_, err := f.bookSvc.Create(context.Background(), f.other, map[string]any{
		"title": "Orphaned", "language": "en",
	})
	assert.ErrorIs(t, err, domainerrors.ErrUserIsNotAuthor)
}

func TestCreateStoreBook_ValidationOrder(t *testing.T) {
	f := newFixture(t)
	f.becomeAuthor(t, f.owner)

	_, err := f.bookSvc.Create(context.Background(), f.owner, map[string]any{
		"title":    "T",
		"language": "en",
		"price":    -5.0,
	})

	var verr *domainerrors.ValidationError
	require.ErrorAs(t, err, &verr)
	codes := make([]int, 0, len(verr.Fields))
	for _, field := range verr.Fields {
		codes = append(codes, field.Code)
	}
	// Title too short before price invalid, per declaration order.
	assert.Equal(t, []int{2310, 2511}, codes)
}

func TestCreateStoreBook_UnsupportedLanguageSupersedes(t *testing.T) {
	f := newFixture(t)
	f.becomeAuthor(t, f.owner)

	_, err := f.bookSvc.Create(context.Background(), f.owner, map[string]any{
		"title": "T", "language": "tlh",
	})
	assert.ErrorIs(t, err, domainerrors.ErrLanguageNotSupported)
}

func TestStoreBookVisibility(t *testing.T) {
	f := newFixture(t)
	f.becomeAuthor(t, f.owner)
	view := f.createBook(t, f.owner, nil)
	ctx := context.Background()

	// Owner and admin see the unpublished book; strangers get a 404.
	_, err := f.bookSvc.Get(ctx, f.owner, view.UUID, nil)
	require.NoError(t, err)
	_, err = f.bookSvc.Get(ctx, f.admin, view.UUID, nil)
	require.NoError(t, err)
	_, err = f.bookSvc.Get(ctx, f.other, view.UUID, nil)
	assert.ErrorIs(t, err, domainerrors.ErrStoreBookNotFound)
	_, err = f.bookSvc.Get(ctx, nil, view.UUID, nil)
	assert.ErrorIs(t, err, domainerrors.ErrStoreBookNotFound)
}

func publishBook(t *testing.T, f *fixture, bookID string) {
	t.Helper()
	ctx := context.Background()

	_, err := f.bookSvc.Update(ctx, f.owner, bookID, map[string]any{
		"description": "A most unfortunate tale.",
	})
	require.NoError(t, err)
	_, err = f.bookSvc.SetCover(ctx, f.owner, bookID, "image/png", pngBytes)
	require.NoError(t, err)
	_, err = f.bookSvc.SetFile(ctx, f.owner, bookID, "application/pdf", "book.pdf", pdfBytes)
	require.NoError(t, err)

	_, err = f.bookSvc.Update(ctx, f.owner, bookID, map[string]any{"status": "review"})
	require.NoError(t, err)
	view, err := f.bookSvc.Update(ctx, f.admin, bookID, map[string]any{"status": "published"})
	require.NoError(t, err)
	assert.Equal(t, "published", view.Status)
}

func TestPublishLifecycle(t *testing.T) {
	f := newFixture(t)
	f.becomeAuthor(t, f.owner)
	view := f.createBook(t, f.owner, nil)
	ctx := context.Background()

	// Submitting without description, cover and file fails in order.
	_, err := f.bookSvc.Update(ctx, f.owner, view.UUID, map[string]any{"status": "review"})
	assert.ErrorIs(t, err, domainerrors.ErrCannotPublishWithoutDescription)

	publishBook(t, f, view.UUID)

	// The first publish stamped the initial release with the default name.
	book, err := f.bookSvc.Get(ctx, f.other, view.UUID, nil)
	require.NoError(t, err)
	assert.Equal(t, "published", book.Status)
	assert.True(t, book.Cover.Set)

	// A publish event went out.
	require.Len(t, f.published.events, 1)
	assert.Equal(t, view.UUID, f.published.events[0].StoreBookID)

	// Content is immutable while published.
	_, err = f.bookSvc.SetCover(ctx, f.owner, view.UUID, "image/png", pngBytes)
	assert.ErrorIs(t, err, domainerrors.ErrStoreBookContentImmutable)
	_, err = f.bookSvc.Update(ctx, f.owner, view.UUID, map[string]any{"title": "New Title"})
	assert.ErrorIs(t, err, domainerrors.ErrStoreBookContentImmutable)
}

func TestPublish_ReviewToPublishedIsAdminOnly(t *testing.T) {
	f := newFixture(t)
	f.becomeAuthor(t, f.owner)
	view := f.createBook(t, f.owner, nil)
	ctx := context.Background()

	_, err := f.bookSvc.Update(ctx, f.owner, view.UUID, map[string]any{
		"description": "d",
	})
	require.NoError(t, err)
	_, err = f.bookSvc.SetCover(ctx, f.owner, view.UUID, "image/png", pngBytes)
	require.NoError(t, err)
	_, err = f.bookSvc.SetFile(ctx, f.owner, view.UUID, "application/pdf", "b.pdf", pdfBytes)
	require.NoError(t, err)
	_, err = f.bookSvc.Update(ctx, f.owner, view.UUID, map[string]any{"status": "review"})
	require.NoError(t, err)

	_, err = f.bookSvc.Update(ctx, f.owner, view.UUID, map[string]any{"status": "published"})
	assert.ErrorIs(t, err, domainerrors.ErrActionNotAllowed)

	// Retracting back to unpublished stays open to the author.
	_, err = f.bookSvc.Update(ctx, f.owner, view.UUID, map[string]any{"status": "unpublished"})
	require.NoError(t, err)
}

func TestPublish_InvalidTransition(t *testing.T) {
	f := newFixture(t)
	f.becomeAuthor(t, f.owner)
	view := f.createBook(t, f.owner, nil)

	_, err := f.bookSvc.Update(context.Background(), f.owner, view.UUID, map[string]any{"status": "hidden"})
	assert.ErrorIs(t, err, domainerrors.ErrInvalidStatusTransition)
}

func TestHiddenBooks_FetchableButNotListed(t *testing.T) {
	f := newFixture(t)
	f.becomeAuthor(t, f.owner)
	view := f.createBook(t, f.owner, nil)
	ctx := context.Background()

	publishBook(t, f, view.UUID)

	listed, err := f.bookSvc.List(ctx, f.other, usecase.ListStoreBooksOptions{})
	require.NoError(t, err)
	require.Len(t, listed, 1)

	_, err = f.bookSvc.Update(ctx, f.owner, view.UUID, map[string]any{"status": "hidden"})
	require.NoError(t, err)

	listed, err = f.bookSvc.List(ctx, f.other, usecase.ListStoreBooksOptions{})
	require.NoError(t, err)
	assert.Empty(t, listed)

	// Direct fetch still works for everyone.
	got, err := f.bookSvc.Get(ctx, f.other, view.UUID, nil)
	require.NoError(t, err)
	assert.Equal(t, "hidden", got.Status)
}

func TestHiddenBooks_ExcludedFromCollectionForStrangers(t *testing.T) {
	f := newFixture(t)
	f.becomeAuthor(t, f.owner)
	view := f.createBook(t, f.owner, nil)
	ctx := context.Background()

	publishBook(t, f, view.UUID)

	collection, err := f.collectionSvc.Get(ctx, f.other, view.Collection, nil)
	require.NoError(t, err)
	require.Len(t, collection.Books, 1)

	_, err = f.bookSvc.Update(ctx, f.owner, view.UUID, map[string]any{"status": "hidden"})
	require.NoError(t, err)

	// Collection reads are listings: the hidden book disappears for
	// strangers but stays visible to the owner and admins.
	collection, err = f.collectionSvc.Get(ctx, f.other, view.Collection, nil)
	require.NoError(t, err)
	assert.Empty(t, collection.Books)

	collection, err = f.collectionSvc.Get(ctx, f.owner, view.Collection, nil)
	require.NoError(t, err)
	require.Len(t, collection.Books, 1)
	assert.Equal(t, "hidden", collection.Books[0].Status)

	collection, err = f.collectionSvc.Get(ctx, f.admin, view.Collection, nil)
	require.NoError(t, err)
	assert.Len(t, collection.Books, 1)
}

func TestReleaseLifecycle(t *testing.T) {
	f := newFixture(t)
	f.becomeAuthor(t, f.owner)
	view := f.createBook(t, f.owner, nil)
	ctx := context.Background()

	publishBook(t, f, view.UUID)

	// A new release copies the published content forward.
	rel, err := f.releaseSvc.Create(ctx, f.owner, view.UUID, map[string]any{
		"release_name": "v2",
	})
	require.NoError(t, err)
	assert.Equal(t, "unpublished", rel.Status)
	assert.Equal(t, "The Bad Beginning", rel.Title)
	assert.True(t, rel.Cover.Set)

	// Drafts are invisible to strangers.
	_, err = f.releaseSvc.Get(ctx, f.other, rel.UUID)
	assert.ErrorIs(t, err, domainerrors.ErrStoreBookReleaseNotFound)

	published, err := f.releaseSvc.Publish(ctx, f.owner, rel.UUID, map[string]any{})
	require.NoError(t, err)
	assert.Equal(t, "published", published.Status)
	assert.Equal(t, "v2", published.ReleaseName)
	assert.NotEmpty(t, published.PublishedAt)

	// Re-publishing the same release is a precondition failure.
	_, err = f.releaseSvc.Publish(ctx, f.owner, rel.UUID, map[string]any{})
	assert.ErrorIs(t, err, domainerrors.ErrStoreBookReleaseAlreadyPublished)
}

func TestReleasePublish_RequiresBookEverPublished(t *testing.T) {
	f := newFixture(t)
	f.becomeAuthor(t, f.owner)
	view := f.createBook(t, f.owner, nil)
	ctx := context.Background()

	book, err := f.bookSvc.Get(ctx, f.owner, view.UUID, nil)
	require.NoError(t, err)

	rel, err := f.releaseSvc.Create(ctx, f.owner, book.UUID, map[string]any{
		"release_name": "v1",
	})
	require.NoError(t, err)

	_, err = f.releaseSvc.Publish(ctx, f.owner, rel.UUID, map[string]any{})
	assert.ErrorIs(t, err, domainerrors.ErrStoreBookNotPublished)
}

func TestSetCover_RejectsUnsupportedContent(t *testing.T) {
	f := newFixture(t)
	f.becomeAuthor(t, f.owner)
	view := f.createBook(t, f.owner, nil)

	_, err := f.bookSvc.SetCover(context.Background(), f.owner, view.UUID, "text/plain", []byte("not an image"))
	assert.ErrorIs(t, err, domainerrors.ErrContentTypeNotSupported)
}

func TestCoverRoundTrip(t *testing.T) {
	f := newFixture(t)
	f.becomeAuthor(t, f.owner)
	view := f.createBook(t, f.owner, nil)
	ctx := context.Background()

	_, err := f.bookSvc.SetCover(ctx, f.owner, view.UUID, "image/png", pngBytes)
	require.NoError(t, err)

	blob, err := f.bookSvc.Cover(ctx, f.owner, view.UUID)
	require.NoError(t, err)
	assert.Equal(t, pngBytes, blob.Data)
	assert.Equal(t, "image/png", blob.ContentType)
}

func TestListByCategory(t *testing.T) {
	f := newFixture(t)
	f.becomeAuthor(t, f.owner)
	ctx := context.Background()

	_, err := f.categorySvc.Create(ctx, f.admin, map[string]any{
		"key": "tragedy", "name": "Tragedy", "language": "en",
	})
	require.NoError(t, err)

	view := f.createBook(t, f.owner, map[string]any{
		"title":      "The Bad Beginning",
		"language":   "en",
		"categories": []any{"tragedy"},
	})
	publishBook(t, f, view.UUID)

	matched, err := f.bookSvc.List(ctx, f.other, usecase.ListStoreBooksOptions{Category: "tragedy"})
	require.NoError(t, err)
	require.Len(t, matched, 1)
	assert.Equal(t, []string{"tragedy"}, matched[0].Categories)

	_, err = f.bookSvc.List(ctx, f.other, usecase.ListStoreBooksOptions{Category: "nope"})
	assert.ErrorIs(t, err, domainerrors.ErrCategoryNotFound)
}

func TestStrangersCannotEdit(t *testing.T) {
	f := newFixture(t)
	f.becomeAuthor(t, f.owner)
	view := f.createBook(t, f.owner, nil)

	_, err := f.bookSvc.Update(context.Background(), f.other, view.UUID, map[string]any{"title": "Stolen"})
	assert.ErrorIs(t, err, domainerrors.ErrActionNotAllowed)
}

func TestPublishRelease_RequiresName(t *testing.T) {
	f := newFixture(t)
	f.becomeAuthor(t, f.owner)
	view := f.createBook(t, f.owner, nil)
	ctx := context.Background()

	publishBook(t, f, view.UUID)

	rel, err := f.releaseSvc.Create(ctx, f.owner, view.UUID, nil)
	require.NoError(t, err)
	assert.Empty(t, rel.ReleaseName)

	// Publishing without a name anywhere fails the rule engine.
	_, err = f.releaseSvc.Publish(ctx, f.owner, rel.UUID, nil)
	var verr *domainerrors.ValidationError
	require.ErrorAs(t, err, &verr)
	require.Len(t, verr.Fields, 1)
	assert.Equal(t, 2115, verr.Fields[0].Code)

	published, err := f.releaseSvc.Publish(ctx, f.owner, rel.UUID, map[string]any{
		"release_name": "v2",
	})
	require.NoError(t, err)
	assert.Equal(t, "published", published.Status)
	assert.Equal(t, "v2", published.ReleaseName)
}

func TestListByCategory_NewestFirst(t *testing.T) {
	f := newFixture(t)
	f.becomeAuthor(t, f.owner)
	ctx := context.Background()

	_, err := f.categorySvc.Create(ctx, f.admin, map[string]any{
		"key": "tragedy", "name": "Tragedy", "language": "en",
	})
	require.NoError(t, err)

	first := f.createBook(t, f.owner, map[string]any{
		"title": "The Bad Beginning", "language": "en", "categories": []any{"tragedy"},
	})
	publishBook(t, f, first.UUID)
	second := f.createBook(t, f.owner, map[string]any{
		"title": "The Reptile Room", "language": "en", "categories": []any{"tragedy"},
	})
	publishBook(t, f, second.UUID)

	matched, err := f.bookSvc.List(ctx, f.other, usecase.ListStoreBooksOptions{Category: "tragedy"})
	require.NoError(t, err)
	require.Len(t, matched, 2)
	assert.Equal(t, second.UUID, matched[0].UUID)
	assert.Equal(t, first.UUID, matched[1].UUID)
}

func TestUploads_DeclaredContentTypeChecked(t *testing.T) {
	f := newFixture(t)
	f.becomeAuthor(t, f.owner)
	view := f.createBook(t, f.owner, nil)
	ctx := context.Background()

	// A declared type outside the allowed set fails before sniffing.
	_, err := f.bookSvc.SetCover(ctx, f.owner, view.UUID, "text/plain", pngBytes)
	assert.ErrorIs(t, err, domainerrors.ErrContentTypeNotSupported)

	_, err = f.bookSvc.SetFile(ctx, f.owner, view.UUID, "image/png", "book.pdf", pdfBytes)
	assert.ErrorIs(t, err, domainerrors.ErrContentTypeNotSupported)

	// An absent header defers entirely to sniffing.
	_, err = f.bookSvc.SetCover(ctx, f.owner, view.UUID, "", pngBytes)
	require.NoError(t, err)
}
