package impl

import (
	"context"
	"log/slog"
	"testing"

	"pocketlib/internal/domain/authz"
	"pocketlib/internal/domain/entity"
	"pocketlib/internal/domain/repository"
	"pocketlib/internal/domain/service"
	"pocketlib/internal/errors"
	infrablob "pocketlib/internal/infra/blob"
	persistence "pocketlib/internal/infra/persistence/tablestore"
	"pocketlib/internal/infra/tablestore"
	"pocketlib/internal/usecase"

	"github.com/stretchr/testify/require"
	"gocloud.dev/blob/memblob"
)

// pngBytes carries the PNG magic so content sniffing accepts it.
var pngBytes = append([]byte("\x89PNG\r\n\x1a\n"), []byte("fake image payload")...)

// pdfBytes carries the PDF magic.
var pdfBytes = []byte("%PDF-1.7 fake document payload")

type stubAnalyzer struct{}

func (stubAnalyzer) Analyze(context.Context, []byte) (*service.ImageAnalysis, error) {
	return nil, errors.New("analysis disabled in tests")
}

type recordingPublisher struct {
	events []*service.StoreBookEvent
}

func (p *recordingPublisher) PublishStoreBookEvent(_ context.Context, event *service.StoreBookEvent) error {
	p.events = append(p.events, event)

	return nil
}

func (p *recordingPublisher) Close() error { return nil }

type fixture struct {
	authors     repository.AuthorRepository
	publishers  repository.PublisherRepository
	collections repository.CollectionRepository
	books       repository.StoreBookRepository
	series      repository.SeriesRepository
	categories  repository.CategoryRepository

	authorSvc     usecase.AuthorUsecase
	publisherSvc  usecase.PublisherUsecase
	collectionSvc usecase.CollectionUsecase
	bookSvc       usecase.StoreBookUsecase
	releaseSvc    usecase.ReleaseUsecase
	seriesSvc     usecase.SeriesUsecase
	categorySvc   usecase.CategoryUsecase

	published *recordingPublisher

	owner *entity.Principal
	admin *entity.Principal
	other *entity.Principal
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	store := tablestore.NewMemory()
	bucket := memblob.OpenBucket(nil)
	t.Cleanup(func() { bucket.Close() })

	logger := slog.New(slog.DiscardHandler)
	blobs := infrablob.NewWithBucket(bucket, logger)
	analyzer := stubAnalyzer{}
	published := &recordingPublisher{}

	authors := persistence.NewAuthorRepository(store)
	publishers := persistence.NewPublisherRepository(store)
	collections := persistence.NewCollectionRepository(store)
	books := persistence.NewStoreBookRepository(store)
	series := persistence.NewSeriesRepository(store)
	categories := persistence.NewCategoryRepository(store)
	resolver := authz.NewResolver(authors, publishers, collections, books)

	return &fixture{
		authors:     authors,
		publishers:  publishers,
		collections: collections,
		books:       books,
		series:      series,
		categories:  categories,

		authorSvc:     NewAuthorService(authors, resolver, blobs, analyzer, logger),
		publisherSvc:  NewPublisherService(publishers, resolver, blobs, analyzer, logger),
		collectionSvc: NewCollectionService(collections, authors, books, resolver),
		bookSvc:       NewStoreBookService(books, collections, authors, categories, resolver, blobs, analyzer, published, logger),
		releaseSvc:    NewReleaseService(books, categories, resolver),
		seriesSvc:     NewSeriesService(series, collections, authors, resolver),
		categorySvc:   NewCategoryService(categories),

		published: published,

		owner: &entity.Principal{Role: entity.RoleUser, UserID: "user-owner", AppID: "pocketlib"},
		admin: &entity.Principal{Role: entity.RoleAdmin, UserID: "user-admin", AppID: "pocketlib"},
		other: &entity.Principal{Role: entity.RoleUser, UserID: "user-other", AppID: "pocketlib"},
	}
}

// becomeAuthor registers the principal as an author.
func (f *fixture) becomeAuthor(t *testing.T, principal *entity.Principal) *usecase.AuthorView {
	t.Helper()

	view, err := f.authorSvc.Create(context.Background(), principal, map[string]any{
		"first_name": "Lemony",
		"last_name":  "Snicket",
	})
	require.NoError(t, err)

	return view
}

// createBook creates an unpublished store book for the principal.
func (f *fixture) createBook(t *testing.T, principal *entity.Principal, payload map[string]any) *usecase.StoreBookView {
	t.Helper()

	if payload == nil {
		payload = map[string]any{"title": "The Bad Beginning", "language": "en"}
	}
	view, err := f.bookSvc.Create(context.Background(), principal, payload)
	require.NoError(t, err)

	return view
}
