package impl

import (
	"context"

	"pocketlib/internal/domain/authz"
	"pocketlib/internal/domain/entity"
	domainerrors "pocketlib/internal/domain/errors"
	"pocketlib/internal/domain/localized"
	"pocketlib/internal/domain/release"
	"pocketlib/internal/domain/repository"
	"pocketlib/internal/domain/validation"
	"pocketlib/internal/errors"
	"pocketlib/internal/usecase"
)

type collectionService struct {
	collections repository.CollectionRepository
	authors     repository.AuthorRepository
	books       repository.StoreBookRepository
	resolver    *authz.Resolver
}

// NewCollectionService creates the collection usecase implementation.
func NewCollectionService(
	collections repository.CollectionRepository,
	authors repository.AuthorRepository,
	books repository.StoreBookRepository,
	resolver *authz.Resolver,
) usecase.CollectionUsecase {
	return &collectionService{
		collections: collections,
		authors:     authors,
		books:       books,
		resolver:    resolver,
	}
}

func (s *collectionService) Create(ctx context.Context, principal *entity.Principal, payload map[string]any) (*usecase.CollectionView, error) {
	if err := validation.Validate(payload, createCollectionRules); err != nil {
		return nil, err
	}

	name, _ := validation.Str(payload, "name")
	language, _ := validation.Str(payload, "language")

	// Admins name the target author explicitly; authors create under
	// their own record.
	authorParam, hasAuthor := validation.Str(payload, "author")
	var author *entity.Author
	var err error
	if principal.IsAdmin() && hasAuthor && authorParam != "" {
		author, err = s.resolver.ResolveAuthor(ctx, principal, authorParam)
	} else {
		author, err = s.resolver.ResolveAuthor(ctx, principal, authz.Mine)
	}
	if err != nil {
		return nil, err
	}

	collection := &entity.StoreBookCollection{AuthorID: author.UUID}
	if err := s.collections.Create(ctx, collection); err != nil {
		return nil, errors.Wrap(err, "create collection")
	}

	registry := localized.NewRegistry(s.collections.Names())
	child, _, err := registry.Upsert(ctx, nil, language, name)
	if err != nil {
		return nil, err
	}
	if err := s.collections.AppendName(ctx, collection.UUID, child.UUID); err != nil {
		return nil, errors.Wrap(err, "append collection name")
	}
	collection.Names = append(collection.Names, child.UUID)

	if err := s.authors.AppendCollection(ctx, author.UUID, collection.UUID); err != nil {
		return nil, errors.Wrap(err, "append collection to author")
	}

	return s.view(ctx, principal, collection, []string{language})
}

func (s *collectionService) Get(ctx context.Context, principal *entity.Principal, id string, languages []string) (*usecase.CollectionView, error) {
	languages, err := normalizeLanguages(languages)
	if err != nil {
		return nil, err
	}

	collection, err := s.load(ctx, id)
	if err != nil {
		return nil, err
	}

	return s.view(ctx, principal, collection, languages)
}

func (s *collectionService) SetName(ctx context.Context, principal *entity.Principal, id, language string, payload map[string]any) (*usecase.LocalizedValue, error) {
	if !validLanguageParam(language) {
		return nil, domainerrors.ErrLanguageNotSupported
	}

	collection, err := s.load(ctx, id)
	if err != nil {
		return nil, err
	}
	owner, err := s.resolver.CollectionOwner(ctx, collection)
	if err != nil {
		return nil, err
	}
	if err := authz.Require(principal, owner); err != nil {
		return nil, err
	}

	if err := validation.Validate(payload, setNameRules); err != nil {
		return nil, err
	}
	value, _ := validation.Str(payload, "name")

	registry := localized.NewRegistry(s.collections.Names())
	child, appended, err := registry.Upsert(ctx, collection.Names, language, value)
	if err != nil {
		return nil, err
	}
	if appended {
		if err := s.collections.AppendName(ctx, collection.UUID, child.UUID); err != nil {
			return nil, errors.Wrap(err, "append collection name")
		}
	}

	return &usecase.LocalizedValue{Language: child.Language, Value: child.Value}, nil
}

func (s *collectionService) load(ctx context.Context, id string) (*entity.StoreBookCollection, error) {
	parsed, err := parseID(id, domainerrors.ErrStoreBookCollectionNotFound)
	if err != nil {
		return nil, err
	}
	collection, err := s.collections.FindByID(ctx, parsed)
	if err != nil {
		return nil, mapLoad(err, domainerrors.ErrStoreBookCollectionNotFound)
	}

	return collection, nil
}

func (s *collectionService) view(ctx context.Context, principal *entity.Principal, collection *entity.StoreBookCollection, languages []string) (*usecase.CollectionView, error) {
	name, names, err := resolveName(ctx, s.collections.Names(), collection.Names, languages)
	if err != nil {
		return nil, err
	}

	owner, err := s.resolver.CollectionOwner(ctx, collection)
	if err != nil {
		// Broken owner chains degrade to anonymous visibility on reads.
		owner = ""
	}
	isOwner := authz.IsOwner(principal, owner)
	isAdmin := principal.IsAdmin()
	privileged := isOwner || isAdmin

	books := make([]*usecase.CollectionBookView, 0, len(collection.Books))
	for _, bookID := range collection.Books {
		book, err := s.books.FindByID(ctx, bookID)
		if err != nil {
			if errors.Is(err, repository.ErrNotFound) || errors.Is(err, repository.ErrWrongKind) {
				continue
			}

			return nil, errors.Wrap(err, "load collection book")
		}
		// Collection reads are listings: non-privileged callers see only
		// published books, hidden ones stay out even though direct fetch
		// succeeds.
		if !privileged && !release.Listable(book.Status) {
			continue
		}

		entry := &usecase.CollectionBookView{
			UUID:     book.UUID.String(),
			Language: book.Language,
		}
		if privileged {
			entry.Status = string(book.Status)
		}

		rel, err := s.visibleRelease(ctx, book, privileged)
		if err != nil {
			return nil, err
		}
		if rel != nil {
			entry.Title = rel.Title
		}
		books = append(books, entry)
	}

	return &usecase.CollectionView{
		UUID:   collection.UUID.String(),
		Author: collection.AuthorID.String(),
		Name:   name,
		Names:  names,
		Books:  books,
	}, nil
}

// visibleRelease picks the release whose content the caller may see: the
// newest one for owners and admins, the newest published one otherwise.
func (s *collectionService) visibleRelease(ctx context.Context, book *entity.StoreBook, privileged bool) (*entity.StoreBookRelease, error) {
	if privileged {
		return newestRelease(ctx, s.books, book)
	}

	return newestPublishedRelease(ctx, s.books, book)
}
