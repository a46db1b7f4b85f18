package impl

import (
	"context"

	"pocketlib/internal/domain/authz"
	"pocketlib/internal/domain/constants"
	"pocketlib/internal/domain/entity"
	domainerrors "pocketlib/internal/domain/errors"
	"pocketlib/internal/domain/localized"
	"pocketlib/internal/domain/repository"
	"pocketlib/internal/domain/validation"
	"pocketlib/internal/errors"
	"pocketlib/internal/usecase"

	"github.com/google/uuid"
)

type seriesService struct {
	series      repository.SeriesRepository
	collections repository.CollectionRepository
	authors     repository.AuthorRepository
	resolver    *authz.Resolver
}

// NewSeriesService creates the series usecase implementation.
func NewSeriesService(
	series repository.SeriesRepository,
	collections repository.CollectionRepository,
	authors repository.AuthorRepository,
	resolver *authz.Resolver,
) usecase.SeriesUsecase {
	return &seriesService{
		series:      series,
		collections: collections,
		authors:     authors,
		resolver:    resolver,
	}
}

func (s *seriesService) Create(ctx context.Context, principal *entity.Principal, payload map[string]any) (*usecase.SeriesView, error) {
	if err := validation.Validate(payload, createSeriesRules); err != nil {
		return nil, err
	}

	// A series must carry at least one localized name from the start.
	name, _ := validation.Str(payload, "name")
	if name == "" {
		return nil, domainerrors.ErrSeriesNameRequired
	}
	language, ok := validation.Str(payload, "language")
	if !ok || language == "" {
		language = constants.DefaultLanguage
	}

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

	collectionIDs, err := s.ownedCollections(ctx, payload, author)
	if err != nil {
		return nil, err
	}

	series := &entity.StoreBookSeries{
		AuthorID:    author.UUID,
		Collections: collectionIDs,
	}
	if err := s.series.Create(ctx, series); err != nil {
		return nil, errors.Wrap(err, "create series")
	}

	registry := localized.NewRegistry(s.series.Names())
	child, _, err := registry.Upsert(ctx, nil, language, name)
	if err != nil {
		return nil, err
	}
	if err := s.series.AppendName(ctx, series.UUID, child.UUID); err != nil {
		return nil, errors.Wrap(err, "append series name")
	}
	series.Names = append(series.Names, child.UUID)

	if err := s.authors.AppendSeries(ctx, author.UUID, series.UUID); err != nil {
		return nil, errors.Wrap(err, "append series to author")
	}

	return s.view(ctx, series, []string{language})
}

func (s *seriesService) Get(ctx context.Context, principal *entity.Principal, id string, languages []string) (*usecase.SeriesView, error) {
	languages, err := normalizeLanguages(languages)
	if err != nil {
		return nil, err
	}

	series, err := s.load(ctx, id)
	if err != nil {
		return nil, err
	}

	return s.view(ctx, series, languages)
}

func (s *seriesService) Update(ctx context.Context, principal *entity.Principal, id string, payload map[string]any, languages []string) (*usecase.SeriesView, error) {
	languages, err := normalizeLanguages(languages)
	if err != nil {
		return nil, err
	}

	series, err := s.authorize(ctx, principal, id)
	if err != nil {
		return nil, err
	}

	author, err := s.authors.FindByID(ctx, series.AuthorID)
	if err != nil {
		return nil, mapLoad(err, domainerrors.ErrAuthorNotFound)
	}

	if _, ok := payload["collections"]; ok {
		collectionIDs, err := s.ownedCollections(ctx, payload, author)
		if err != nil {
			return nil, err
		}
		series.Collections = collectionIDs
		if err := s.series.Update(ctx, series); err != nil {
			return nil, errors.Wrap(err, "update series")
		}
	}

	return s.view(ctx, series, languages)
}

func (s *seriesService) SetName(ctx context.Context, principal *entity.Principal, id, language string, payload map[string]any) (*usecase.LocalizedValue, error) {
	if !validLanguageParam(language) {
		return nil, domainerrors.ErrLanguageNotSupported
	}

	series, err := s.authorize(ctx, principal, id)
	if err != nil {
		return nil, err
	}

	if err := validation.Validate(payload, setNameRules); err != nil {
		return nil, err
	}
	value, _ := validation.Str(payload, "name")

	registry := localized.NewRegistry(s.series.Names())
	child, appended, err := registry.Upsert(ctx, series.Names, language, value)
	if err != nil {
		return nil, err
	}
	if appended {
		if err := s.series.AppendName(ctx, series.UUID, child.UUID); err != nil {
			return nil, errors.Wrap(err, "append series name")
		}
	}

	return &usecase.LocalizedValue{Language: child.Language, Value: child.Value}, nil
}

// ownedCollections resolves the payload's ordered collection list and
// verifies every entry belongs to the series author.
func (s *seriesService) ownedCollections(ctx context.Context, payload map[string]any, author *entity.Author) ([]uuid.UUID, error) {
	keys, ok := validation.StrSlice(payload, "collections")
	if !ok {
		return nil, nil
	}

	ids := make([]uuid.UUID, 0, len(keys))
	for _, raw := range keys {
		id, err := uuid.Parse(raw)
		if err != nil {
			return nil, domainerrors.NewValidationError(domainerrors.FieldCode{
				Code:    codes(fieldCollections).InvalidValue,
				Message: "The field collections contains an invalid uuid",
			})
		}
		collection, err := s.collections.FindByID(ctx, id)
		if err != nil {
			return nil, mapLoad(err, domainerrors.ErrStoreBookCollectionNotFound)
		}
		if collection.AuthorID != author.UUID {
			return nil, domainerrors.ErrActionNotAllowed
		}
		ids = append(ids, id)
	}

	return ids, nil
}

func (s *seriesService) authorize(ctx context.Context, principal *entity.Principal, id string) (*entity.StoreBookSeries, error) {
	series, err := s.load(ctx, id)
	if err != nil {
		return nil, err
	}
	owner, err := s.resolver.SeriesOwner(ctx, series)
	if err != nil {
		return nil, err
	}
	if err := authz.Require(principal, owner); err != nil {
		return nil, err
	}

	return series, nil
}

func (s *seriesService) load(ctx context.Context, id string) (*entity.StoreBookSeries, error) {
	parsed, err := parseID(id, domainerrors.ErrStoreBookSeriesNotFound)
	if err != nil {
		return nil, err
	}
	series, err := s.series.FindByID(ctx, parsed)
	if err != nil {
		return nil, mapLoad(err, domainerrors.ErrStoreBookSeriesNotFound)
	}

	return series, nil
}

func (s *seriesService) view(ctx context.Context, series *entity.StoreBookSeries, languages []string) (*usecase.SeriesView, error) {
	name, names, err := resolveName(ctx, s.series.Names(), series.Names, languages)
	if err != nil {
		return nil, err
	}

	return &usecase.SeriesView{
		UUID:        series.UUID.String(),
		Author:      series.AuthorID.String(),
		Name:        name,
		Names:       names,
		Collections: idStrings(series.Collections),
	}, nil
}
