package impl

import (
	"context"

	"pocketlib/internal/domain/entity"
	domainerrors "pocketlib/internal/domain/errors"
	"pocketlib/internal/domain/localized"
	"pocketlib/internal/domain/repository"
	"pocketlib/internal/domain/validation"
	"pocketlib/internal/errors"
	"pocketlib/internal/usecase"
)

type categoryService struct {
	categories repository.CategoryRepository
}

// NewCategoryService creates the category usecase implementation.
func NewCategoryService(categories repository.CategoryRepository) usecase.CategoryUsecase {
	return &categoryService{categories: categories}
}

func (s *categoryService) Create(ctx context.Context, principal *entity.Principal, payload map[string]any) (*usecase.CategoryView, error) {
	if !principal.IsAdmin() {
		return nil, domainerrors.ErrActionNotAllowed
	}

	if err := validation.Validate(payload, createCategoryRules); err != nil {
		return nil, err
	}

	key, _ := validation.Str(payload, "key")
	name, _ := validation.Str(payload, "name")
	language, _ := validation.Str(payload, "language")

	// Keys are unique across the store.
	if _, err := s.categories.FindByKey(ctx, key); err == nil {
		return nil, domainerrors.NewValidationError(domainerrors.FieldCode{
			Code:    codes(fieldKey).InvalidValue,
			Message: "The field key is already taken",
		})
	} else if !errors.Is(err, repository.ErrNotFound) {
		return nil, errors.Wrap(err, "check category key")
	}

	category := &entity.Category{Key: key}
	if err := s.categories.Create(ctx, category); err != nil {
		return nil, errors.Wrap(err, "create category")
	}

	registry := localized.NewRegistry(s.categories.Names())
	child, _, err := registry.Upsert(ctx, nil, language, name)
	if err != nil {
		return nil, err
	}
	if err := s.categories.AppendName(ctx, category.UUID, child.UUID); err != nil {
		return nil, errors.Wrap(err, "append category name")
	}
	category.Names = append(category.Names, child.UUID)

	return s.view(ctx, category, []string{language})
}

func (s *categoryService) List(ctx context.Context, languages []string) ([]*usecase.CategoryView, error) {
	languages, err := normalizeLanguages(languages)
	if err != nil {
		return nil, err
	}

	categories, err := s.categories.List(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "list categories")
	}

	views := make([]*usecase.CategoryView, 0, len(categories))
	for _, category := range categories {
		view, err := s.view(ctx, category, languages)
		if err != nil {
			return nil, err
		}
		views = append(views, view)
	}

	return views, nil
}

func (s *categoryService) SetName(ctx context.Context, principal *entity.Principal, id, language string, payload map[string]any) (*usecase.LocalizedValue, error) {
	if !principal.IsAdmin() {
		return nil, domainerrors.ErrActionNotAllowed
	}
	if !validLanguageParam(language) {
		return nil, domainerrors.ErrLanguageNotSupported
	}

	parsed, err := parseID(id, domainerrors.ErrCategoryNotFound)
	if err != nil {
		return nil, err
	}
	category, err := s.categories.FindByID(ctx, parsed)
	if err != nil {
		return nil, mapLoad(err, domainerrors.ErrCategoryNotFound)
	}

	if err := validation.Validate(payload, setNameRules); err != nil {
		return nil, err
	}
	value, _ := validation.Str(payload, "name")

	registry := localized.NewRegistry(s.categories.Names())
	child, appended, err := registry.Upsert(ctx, category.Names, language, value)
	if err != nil {
		return nil, err
	}
	if appended {
		if err := s.categories.AppendName(ctx, category.UUID, child.UUID); err != nil {
			return nil, errors.Wrap(err, "append category name")
		}
	}

	return &usecase.LocalizedValue{Language: child.Language, Value: child.Value}, nil
}

func (s *categoryService) view(ctx context.Context, category *entity.Category, languages []string) (*usecase.CategoryView, error) {
	name, names, err := resolveName(ctx, s.categories.Names(), category.Names, languages)
	if err != nil {
		return nil, err
	}

	return &usecase.CategoryView{
		UUID:  category.UUID.String(),
		Key:   category.Key,
		Name:  name,
		Names: names,
	}, nil
}
