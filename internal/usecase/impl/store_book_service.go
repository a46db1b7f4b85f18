package impl

import (
	"context"
	"log/slog"
	"time"

	deliveryctx "pocketlib/internal/delivery/context"
	"pocketlib/internal/domain/authz"
	"pocketlib/internal/domain/entity"
	domainerrors "pocketlib/internal/domain/errors"
	"pocketlib/internal/domain/localized"
	"pocketlib/internal/domain/release"
	"pocketlib/internal/domain/repository"
	"pocketlib/internal/domain/service"
	"pocketlib/internal/domain/validation"
	"pocketlib/internal/errors"
	"pocketlib/internal/usecase"
)

type storeBookService struct {
	books       repository.StoreBookRepository
	collections repository.CollectionRepository
	authors     repository.AuthorRepository
	categories  repository.CategoryRepository
	resolver    *authz.Resolver
	blobs       service.BlobService
	analyzer    service.ImageAnalyzer
	events      service.EventPublisher
	logger      *slog.Logger
}

// NewStoreBookService creates the store book usecase implementation.
func NewStoreBookService(
	books repository.StoreBookRepository,
	collections repository.CollectionRepository,
	authors repository.AuthorRepository,
	categories repository.CategoryRepository,
	resolver *authz.Resolver,
	blobs service.BlobService,
	analyzer service.ImageAnalyzer,
	events service.EventPublisher,
	logger *slog.Logger,
) usecase.StoreBookUsecase {
	return &storeBookService{
		books:       books,
		collections: collections,
		authors:     authors,
		categories:  categories,
		resolver:    resolver,
		blobs:       blobs,
		analyzer:    analyzer,
		events:      events,
		logger:      logger,
	}
}

func (s *storeBookService) Create(ctx context.Context, principal *entity.Principal, payload map[string]any) (*usecase.StoreBookView, error) {
	if err := validation.Validate(payload, createStoreBookRules); err != nil {
		return nil, err
	}

	title, _ := validation.Str(payload, "title")
	language, _ := validation.Str(payload, "language")

	author, err := s.resolver.ResolveAuthor(ctx, principal, authz.Mine)
	if err != nil && !principal.IsAdmin() {
		return nil, err
	}

	collection, err := s.targetCollection(ctx, principal, payload, author, title, language)
	if err != nil {
		return nil, err
	}

	book := &entity.StoreBook{
		CollectionID: collection.UUID,
		Language:     language,
		Status:       entity.StatusUnpublished,
		CreatedAt:    time.Now().UTC(),
	}
	if err := s.books.Create(ctx, book); err != nil {
		return nil, errors.Wrap(err, "create store book")
	}

	rel := &entity.StoreBookRelease{
		StoreBookID: book.UUID,
		Status:      entity.ReleaseUnpublished,
		Title:       title,
	}
	rel.Description, _ = validation.Str(payload, "description")
	if price, ok := validation.Num(payload, "price"); ok {
		rel.Price = int(price)
	}
	rel.ISBN, _ = validation.Str(payload, "isbn")
	if keys, ok := validation.StrSlice(payload, "categories"); ok {
		rel.Categories, err = resolveCategoryKeys(ctx, s.categories, keys)
		if err != nil {
			return nil, err
		}
	}

	if err := s.books.CreateRelease(ctx, rel); err != nil {
		return nil, errors.Wrap(err, "create release")
	}
	if err := s.books.AppendRelease(ctx, book.UUID, rel.UUID); err != nil {
		return nil, errors.Wrap(err, "append release")
	}
	book.Releases = append(book.Releases, rel.UUID)

	if err := s.collections.AppendBook(ctx, collection.UUID, book.UUID); err != nil {
		return nil, errors.Wrap(err, "append book to collection")
	}

	return s.viewFrom(ctx, book, rel)
}

// targetCollection returns the collection the new book goes into,
// auto-creating one named after the book when the payload names none.
func (s *storeBookService) targetCollection(ctx context.Context, principal *entity.Principal, payload map[string]any, author *entity.Author, title, language string) (*entity.StoreBookCollection, error) {
	if id, ok := validation.Str(payload, "collection"); ok && id != "" {
		parsed, err := parseID(id, domainerrors.ErrStoreBookCollectionNotFound)
		if err != nil {
			return nil, err
		}
		collection, err := s.collections.FindByID(ctx, parsed)
		if err != nil {
			return nil, mapLoad(err, domainerrors.ErrStoreBookCollectionNotFound)
		}
		owner, err := s.resolver.CollectionOwner(ctx, collection)
		if err != nil {
			return nil, err
		}
		if err := authz.Require(principal, owner); err != nil {
			return nil, err
		}

		return collection, nil
	}

	if author == nil {
		// Admins creating detached books must name a collection.
		return nil, domainerrors.ErrStoreBookCollectionNotFound
	}

	collection := &entity.StoreBookCollection{AuthorID: author.UUID}
	if err := s.collections.Create(ctx, collection); err != nil {
		return nil, errors.Wrap(err, "create collection")
	}

	registry := localized.NewRegistry(s.collections.Names())
	child, _, err := registry.Upsert(ctx, nil, language, title)
	if err != nil {
		return nil, err
	}
	if err := s.collections.AppendName(ctx, collection.UUID, child.UUID); err != nil {
		return nil, errors.Wrap(err, "append collection name")
	}
	if err := s.authors.AppendCollection(ctx, author.UUID, collection.UUID); err != nil {
		return nil, errors.Wrap(err, "append collection to author")
	}

	return collection, nil
}

func (s *storeBookService) Get(ctx context.Context, principal *entity.Principal, id string, languages []string) (*usecase.StoreBookView, error) {
	if _, err := normalizeLanguages(languages); err != nil {
		return nil, err
	}

	book, isOwner, err := s.loadVisible(ctx, principal, id)
	if err != nil {
		return nil, err
	}

	rel, err := s.visibleRelease(ctx, book, isOwner || principal.IsAdmin())
	if err != nil {
		return nil, err
	}
	if rel == nil {
		return nil, domainerrors.ErrStoreBookNotFound
	}

	return s.viewFrom(ctx, book, rel)
}

func (s *storeBookService) Update(ctx context.Context, principal *entity.Principal, id string, payload map[string]any) (*usecase.StoreBookView, error) {
	book, err := s.loadOwned(ctx, principal, id)
	if err != nil {
		return nil, err
	}

	if err := validation.Validate(payload, updateStoreBookRules); err != nil {
		return nil, err
	}

	// A status field drives the state machine; everything else edits
	// content on the newest release.
	if status, ok := validation.Str(payload, "status"); ok && status != "" {
		return s.transition(ctx, principal, book, status)
	}

	if !release.ContentMutable(book.Status) {
		return nil, domainerrors.ErrStoreBookContentImmutable
	}

	rel, err := s.draftRelease(ctx, book)
	if err != nil {
		return nil, err
	}

	if v, ok := validation.Str(payload, "title"); ok {
		rel.Title = v
	}
	if v, ok := validation.Str(payload, "description"); ok {
		rel.Description = v
	}
	if v, ok := validation.Num(payload, "price"); ok {
		rel.Price = int(v)
	}
	if v, ok := validation.Str(payload, "isbn"); ok {
		rel.ISBN = v
	}
	if keys, ok := validation.StrSlice(payload, "categories"); ok {
		rel.Categories, err = resolveCategoryKeys(ctx, s.categories, keys)
		if err != nil {
			return nil, err
		}
	}

	if err := s.books.UpdateRelease(ctx, rel); err != nil {
		return nil, errors.Wrap(err, "update release")
	}

	return s.viewFrom(ctx, book, rel)
}

// transition applies one edge of the book status machine.
func (s *storeBookService) transition(ctx context.Context, principal *entity.Principal, book *entity.StoreBook, status string) (*usecase.StoreBookView, error) {
	if !entity.ValidStoreBookStatus(status) {
		return nil, domainerrors.NewValidationError(domainerrors.FieldCode{
			Code:    codes(fieldStatus).InvalidValue,
			Message: "The field status has an invalid value",
		})
	}
	next := entity.StoreBookStatus(status)

	role := entity.RoleUser
	if principal.IsAdmin() {
		role = entity.RoleAdmin
	}
	if err := release.TransitionBook(book.Status, next, role); err != nil {
		return nil, err
	}

	newest, err := newestRelease(ctx, s.books, book)
	if err != nil {
		return nil, err
	}

	if next == entity.StatusReview || next == entity.StatusPublished {
		if err := release.CheckPublishable(newest); err != nil {
			return nil, err
		}
	}

	// The first book-level publish stamps the newest release.
	if next == entity.StatusPublished {
		published, err := newestPublishedRelease(ctx, s.books, book)
		if err != nil {
			return nil, err
		}
		if published == nil {
			release.StampInitialRelease(newest, time.Now())
			if err := s.books.UpdateRelease(ctx, newest); err != nil {
				return nil, errors.Wrap(err, "stamp initial release")
			}
		}
	}

	book.Status = next
	if err := s.books.Update(ctx, book); err != nil {
		return nil, errors.Wrap(err, "update store book")
	}

	if next == entity.StatusPublished {
		s.publishEvent(ctx, book, newest)
	}

	return s.viewFrom(ctx, book, newest)
}

func (s *storeBookService) List(ctx context.Context, principal *entity.Principal, opts usecase.ListStoreBooksOptions) ([]*usecase.StoreBookView, error) {
	languages, err := normalizeLanguages(opts.Languages)
	if err != nil {
		return nil, err
	}

	var categoryFilter *entity.Category
	if opts.Category != "" {
		categoryFilter, err = s.categories.FindByKey(ctx, opts.Category)
		if err != nil {
			return nil, mapLoad(err, domainerrors.ErrCategoryNotFound)
		}
	}

	books, err := s.books.List(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "list store books")
	}
	// Latest and by-category listings both run newest first.
	if opts.Latest || categoryFilter != nil {
		for i, j := 0, len(books)-1; i < j; i, j = i+1, j-1 {
			books[i], books[j] = books[j], books[i]
		}
	}

	views := make([]*usecase.StoreBookView, 0, len(books))
	for _, book := range books {
		if !release.Listable(book.Status) {
			continue
		}
		if !containsString(languages, book.Language) {
			continue
		}

		rel, err := newestPublishedRelease(ctx, s.books, book)
		if err != nil {
			return nil, err
		}
		if rel == nil {
			continue
		}
		if categoryFilter != nil && !containsID(rel.Categories, categoryFilter.UUID) {
			continue
		}

		view, err := s.viewFrom(ctx, book, rel)
		if err != nil {
			return nil, err
		}
		views = append(views, view)
	}

	return views, nil
}

func (s *storeBookService) SetCover(ctx context.Context, principal *entity.Principal, id, contentType string, data []byte) (*usecase.StoreBookView, error) {
	book, err := s.loadOwned(ctx, principal, id)
	if err != nil {
		return nil, err
	}
	if !release.ContentMutable(book.Status) {
		return nil, domainerrors.ErrStoreBookContentImmutable
	}

	rel, err := s.draftRelease(ctx, book)
	if err != nil {
		return nil, err
	}

	if err := checkDeclaredType(contentType, allowedImageTypes); err != nil {
		return nil, err
	}

	if err := storeImage(ctx, s.blobs, &rel.Cover, data); err != nil {
		return nil, err
	}
	if err := s.books.UpdateRelease(ctx, rel); err != nil {
		return nil, errors.Wrap(err, "update release")
	}

	relID := rel.UUID
	analyzeImageAsync(s.logger, s.analyzer, data, func(ctx context.Context, analysis *service.ImageAnalysis) error {
		current, err := s.books.FindRelease(ctx, relID)
		if err != nil {
			return err
		}
		current.Cover.Blurhash = analysis.Blurhash
		current.Cover.AspectRatio = analysis.AspectRatio

		return s.books.UpdateRelease(ctx, current)
	})

	return s.viewFrom(ctx, book, rel)
}

func (s *storeBookService) Cover(ctx context.Context, principal *entity.Principal, id string) (*service.Blob, error) {
	book, isOwner, err := s.loadVisible(ctx, principal, id)
	if err != nil {
		return nil, err
	}
	rel, err := s.visibleRelease(ctx, book, isOwner || principal.IsAdmin())
	if err != nil {
		return nil, err
	}
	if rel == nil {
		return nil, domainerrors.ErrStoreBookNotFound
	}

	return fetchBlob(ctx, s.blobs, rel.Cover.ItemID, domainerrors.ErrStoreBookNotFound)
}

func (s *storeBookService) SetFile(ctx context.Context, principal *entity.Principal, id, contentType, fileName string, data []byte) (*usecase.StoreBookView, error) {
	book, err := s.loadOwned(ctx, principal, id)
	if err != nil {
		return nil, err
	}
	if !release.ContentMutable(book.Status) {
		return nil, domainerrors.ErrStoreBookContentImmutable
	}

	rel, err := s.draftRelease(ctx, book)
	if err != nil {
		return nil, err
	}

	if err := checkDeclaredType(contentType, allowedFileTypes); err != nil {
		return nil, err
	}

	detectedType, err := sniffBookFile(data)
	if err != nil {
		return nil, err
	}

	if !rel.File.Present() {
		rel.File.ItemID = newItemID()
	}
	if err := s.blobs.Put(ctx, rel.File.ItemID.String(), &service.Blob{Data: data, ContentType: detectedType}); err != nil {
		return nil, domainerrors.ErrUpstream.WrapMessage("store file")
	}
	rel.File.FileName = fileName

	if err := s.books.UpdateRelease(ctx, rel); err != nil {
		return nil, errors.Wrap(err, "update release")
	}

	return s.viewFrom(ctx, book, rel)
}

func (s *storeBookService) File(ctx context.Context, principal *entity.Principal, id string) (*service.Blob, error) {
	book, isOwner, err := s.loadVisible(ctx, principal, id)
	if err != nil {
		return nil, err
	}

	// The book file itself is never public; buyers go through the reader
	// app, owners and admins may fetch it here.
	if !isOwner && !principal.IsAdmin() {
		return nil, domainerrors.ErrActionNotAllowed
	}

	rel, err := newestRelease(ctx, s.books, book)
	if err != nil {
		return nil, err
	}

	return fetchBlob(ctx, s.blobs, rel.File.ItemID, domainerrors.ErrStoreBookNotFound)
}

// loadOwned loads the book and requires write access.
func (s *storeBookService) loadOwned(ctx context.Context, principal *entity.Principal, id string) (*entity.StoreBook, error) {
	book, err := s.load(ctx, id)
	if err != nil {
		return nil, err
	}
	owner, err := s.resolver.BookOwner(ctx, book)
	if err != nil {
		return nil, err
	}
	if err := authz.Require(principal, owner); err != nil {
		return nil, err
	}

	return book, nil
}

// loadVisible loads the book for reading. Unpublished and review books
// are invisible to everyone but the owner and admins; absence and
// invisibility are indistinguishable to the caller.
func (s *storeBookService) loadVisible(ctx context.Context, principal *entity.Principal, id string) (book *entity.StoreBook, isOwner bool, err error) {
	book, err = s.load(ctx, id)
	if err != nil {
		return nil, false, err
	}

	owner, err := s.resolver.BookOwner(ctx, book)
	if err != nil {
		owner = ""
	}
	isOwner = authz.IsOwner(principal, owner)

	if !release.VisibleTo(book.Status, isOwner, principal.IsAdmin()) {
		return nil, false, domainerrors.ErrStoreBookNotFound
	}

	return book, isOwner, nil
}

func (s *storeBookService) load(ctx context.Context, id string) (*entity.StoreBook, error) {
	parsed, err := parseID(id, domainerrors.ErrStoreBookNotFound)
	if err != nil {
		return nil, err
	}
	book, err := s.books.FindByID(ctx, parsed)
	if err != nil {
		return nil, mapLoad(err, domainerrors.ErrStoreBookNotFound)
	}

	return book, nil
}

// draftRelease returns the newest release when it is still editable, or
// copy-forwards a fresh draft when it is already published.
func (s *storeBookService) draftRelease(ctx context.Context, book *entity.StoreBook) (*entity.StoreBookRelease, error) {
	newest, err := newestRelease(ctx, s.books, book)
	if err != nil {
		return nil, err
	}
	if newest.Status != entity.ReleasePublished {
		return newest, nil
	}

	draft := release.CopyForward(newest)
	if err := s.books.CreateRelease(ctx, draft); err != nil {
		return nil, errors.Wrap(err, "create draft release")
	}
	if err := s.books.AppendRelease(ctx, book.UUID, draft.UUID); err != nil {
		return nil, errors.Wrap(err, "append draft release")
	}
	book.Releases = append(book.Releases, draft.UUID)

	return draft, nil
}

func (s *storeBookService) visibleRelease(ctx context.Context, book *entity.StoreBook, privileged bool) (*entity.StoreBookRelease, error) {
	if privileged {
		return newestRelease(ctx, s.books, book)
	}

	return newestPublishedRelease(ctx, s.books, book)
}

// publishEvent notifies downstream consumers about a publication. The
// request never fails on publish errors.
func (s *storeBookService) publishEvent(ctx context.Context, book *entity.StoreBook, rel *entity.StoreBookRelease) {
	collection, err := s.collections.FindByID(ctx, book.CollectionID)
	authorID := ""
	if err == nil {
		authorID = collection.AuthorID.String()
	}

	event := &service.StoreBookEvent{
		RequestID:   deliveryctx.GetRequestIDFromContext(ctx),
		StoreBookID: book.UUID.String(),
		AuthorID:    authorID,
		Status:      string(book.Status),
		Title:       rel.Title,
		Language:    book.Language,
	}
	if err := s.events.PublishStoreBookEvent(ctx, event); err != nil {
		s.logger.Warn("publishing store book event failed",
			slog.String("store_book_id", event.StoreBookID),
			slog.Any("error", err),
		)
	}
}

func (s *storeBookService) viewFrom(ctx context.Context, book *entity.StoreBook, rel *entity.StoreBookRelease) (*usecase.StoreBookView, error) {
	keys, err := categoryKeys(ctx, s.categories, rel.Categories)
	if err != nil {
		return nil, err
	}

	return &usecase.StoreBookView{
		UUID:        book.UUID.String(),
		Collection:  book.CollectionID.String(),
		Title:       rel.Title,
		Description: rel.Description,
		Language:    book.Language,
		Price:       rel.Price,
		ISBN:        rel.ISBN,
		Status:      string(book.Status),
		Cover:       imageView(rel.Cover),
		File:        fileView(rel.File),
		Categories:  keys,
	}, nil
}

func containsString(haystack []string, needle string) bool {
	for _, s := range haystack {
		if s == needle {
			return true
		}
	}

	return false
}
