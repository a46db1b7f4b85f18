package impl

import (
	"context"
	"testing"

	domainerrors "pocketlib/internal/domain/errors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateSeries(t *testing.T) {
	f := newFixture(t)
	f.becomeAuthor(t, f.owner)
	ctx := context.Background()

	book := f.createBook(t, f.owner, nil)

	view, err := f.seriesSvc.Create(ctx, f.owner, map[string]any{
		"name":        "A Series of Unfortunate Events",
		"language":    "en",
		"collections": []any{book.Collection},
	})
	require.NoError(t, err)
	require.NotNil(t, view.Name)
	assert.Equal(t, "A Series of Unfortunate Events", view.Name.Value)
	assert.Equal(t, []string{book.Collection}, view.Collections)
}

func TestCreateSeries_NameRequired(t *testing.T) {
	f := newFixture(t)
	f.becomeAuthor(t, f.owner)

	_, err := f.seriesSvc.Create(context.Background(), f.owner, map[string]any{})
	assert.ErrorIs(t, err, domainerrors.ErrSeriesNameRequired)
}

func TestCreateSeries_ForeignCollectionDenied(t *testing.T) {
	f := newFixture(t)
	f.becomeAuthor(t, f.owner)
	book := f.createBook(t, f.owner, nil)
	ctx := context.Background()

	// The other user becomes an author too, then tries to claim the
	// owner's collection into their series.
	_, err := f.authorSvc.Create(ctx, f.other, map[string]any{
		"first_name": "Someone", "last_name": "Else",
	})
	require.NoError(t, err)

	_, err = f.seriesSvc.Create(ctx, f.other, map[string]any{
		"name":        "Stolen Series",
		"collections": []any{book.Collection},
	})
	assert.ErrorIs(t, err, domainerrors.ErrActionNotAllowed)
}

func TestSeriesSetName_UpsertsAndResolves(t *testing.T) {
	f := newFixture(t)
	f.becomeAuthor(t, f.owner)
	ctx := context.Background()

	view, err := f.seriesSvc.Create(ctx, f.owner, map[string]any{"name": "Events", "language": "en"})
	require.NoError(t, err)

	_, err = f.seriesSvc.SetName(ctx, f.owner, view.UUID, "de", map[string]any{"name": "Ereignisse"})
	require.NoError(t, err)

	got, err := f.seriesSvc.Get(ctx, f.other, view.UUID, []string{"de"})
	require.NoError(t, err)
	require.NotNil(t, got.Name)
	assert.Equal(t, "Ereignisse", got.Name.Value)
	assert.Len(t, got.Names, 2)
}

func TestCategoryCreate_AdminOnlyAndUniqueKeys(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	_, err := f.categorySvc.Create(ctx, f.owner, map[string]any{
		"key": "drama", "name": "Drama", "language": "en",
	})
	assert.ErrorIs(t, err, domainerrors.ErrActionNotAllowed)

	_, err = f.categorySvc.Create(ctx, f.admin, map[string]any{
		"key": "drama", "name": "Drama", "language": "en",
	})
	require.NoError(t, err)

	_, err = f.categorySvc.Create(ctx, f.admin, map[string]any{
		"key": "drama", "name": "Drama Again", "language": "en",
	})
	var verr *domainerrors.ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, 2518, verr.Fields[0].Code)
}

func TestCategoryList_ResolvesLanguages(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	_, err := f.categorySvc.Create(ctx, f.admin, map[string]any{
		"key": "drama", "name": "Drama", "language": "en",
	})
	require.NoError(t, err)
	_, err = f.categorySvc.Create(ctx, f.admin, map[string]any{
		"key": "poetry", "name": "Poetry", "language": "en",
	})
	require.NoError(t, err)

	views, err := f.categorySvc.List(ctx, nil)
	require.NoError(t, err)
	require.Len(t, views, 2)
	assert.Equal(t, "drama", views[0].Key)
	assert.Equal(t, "Drama", views[0].Name.Value)
}
