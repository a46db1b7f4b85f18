package impl

import (
	"context"
	"time"

	"pocketlib/internal/domain/authz"
	"pocketlib/internal/domain/entity"
	domainerrors "pocketlib/internal/domain/errors"
	"pocketlib/internal/domain/release"
	"pocketlib/internal/domain/repository"
	"pocketlib/internal/domain/validation"
	"pocketlib/internal/errors"
	"pocketlib/internal/usecase"
)

type releaseService struct {
	books      repository.StoreBookRepository
	categories repository.CategoryRepository
	resolver   *authz.Resolver
}

// NewReleaseService creates the release usecase implementation.
func NewReleaseService(
	books repository.StoreBookRepository,
	categories repository.CategoryRepository,
	resolver *authz.Resolver,
) usecase.ReleaseUsecase {
	return &releaseService{
		books:      books,
		categories: categories,
		resolver:   resolver,
	}
}

func (s *releaseService) Create(ctx context.Context, principal *entity.Principal, bookID string, payload map[string]any) (*usecase.ReleaseView, error) {
	parsed, err := parseID(bookID, domainerrors.ErrStoreBookNotFound)
	if err != nil {
		return nil, err
	}
	book, err := s.books.FindByID(ctx, parsed)
	if err != nil {
		return nil, mapLoad(err, domainerrors.ErrStoreBookNotFound)
	}

	owner, err := s.resolver.BookOwner(ctx, book)
	if err != nil {
		return nil, err
	}
	if err := authz.Require(principal, owner); err != nil {
		return nil, err
	}

	if err := validation.Validate(payload, releaseRules); err != nil {
		return nil, err
	}

	newest, err := newestRelease(ctx, s.books, book)
	if err != nil {
		return nil, err
	}

	draft := release.CopyForward(newest)
	draft.ReleaseName, _ = validation.Str(payload, "release_name")
	draft.ReleaseNotes, _ = validation.Str(payload, "release_notes")

	if err := s.books.CreateRelease(ctx, draft); err != nil {
		return nil, errors.Wrap(err, "create release")
	}
	if err := s.books.AppendRelease(ctx, book.UUID, draft.UUID); err != nil {
		return nil, errors.Wrap(err, "append release")
	}

	return s.view(ctx, draft)
}

func (s *releaseService) Get(ctx context.Context, principal *entity.Principal, id string) (*usecase.ReleaseView, error) {
	rel, err := s.load(ctx, id)
	if err != nil {
		return nil, err
	}

	// Draft releases are visible to the owner and admins only; absence
	// and invisibility look the same from outside.
	if rel.Status != entity.ReleasePublished {
		owner, err := s.resolver.ReleaseOwner(ctx, rel)
		if err != nil {
			owner = ""
		}
		if !authz.IsOwner(principal, owner) && !principal.IsAdmin() {
			return nil, domainerrors.ErrStoreBookReleaseNotFound
		}
	}

	return s.view(ctx, rel)
}

func (s *releaseService) Publish(ctx context.Context, principal *entity.Principal, id string, payload map[string]any) (*usecase.ReleaseView, error) {
	rel, err := s.load(ctx, id)
	if err != nil {
		return nil, err
	}

	owner, err := s.resolver.ReleaseOwner(ctx, rel)
	if err != nil {
		return nil, err
	}
	if err := authz.Require(principal, owner); err != nil {
		return nil, err
	}

	if err := validation.Validate(payload, releaseRules); err != nil {
		return nil, err
	}

	book, err := s.books.FindByID(ctx, rel.StoreBookID)
	if err != nil {
		return nil, mapLoad(err, domainerrors.ErrStoreBookNotFound)
	}
	published, err := newestPublishedRelease(ctx, s.books, book)
	if err != nil {
		return nil, err
	}

	name := rel.ReleaseName
	if v, ok := validation.Str(payload, "release_name"); ok {
		name = v
	}
	notes := rel.ReleaseNotes
	if v, ok := validation.Str(payload, "release_notes"); ok {
		notes = v
	}

	// A published release always carries a name: either from the payload
	// or already stored on the draft.
	if name == "" {
		return nil, domainerrors.NewValidationError(domainerrors.FieldCode{
			Code:    codes(fieldReleaseName).Missing,
			Message: "The field release_name is missing",
		})
	}

	if err := release.PublishRelease(rel, published != nil, name, notes, time.Now()); err != nil {
		return nil, err
	}
	if err := s.books.UpdateRelease(ctx, rel); err != nil {
		return nil, errors.Wrap(err, "update release")
	}

	return s.view(ctx, rel)
}

func (s *releaseService) load(ctx context.Context, id string) (*entity.StoreBookRelease, error) {
	parsed, err := parseID(id, domainerrors.ErrStoreBookReleaseNotFound)
	if err != nil {
		return nil, err
	}
	rel, err := s.books.FindRelease(ctx, parsed)
	if err != nil {
		return nil, mapLoad(err, domainerrors.ErrStoreBookReleaseNotFound)
	}

	return rel, nil
}

func (s *releaseService) view(ctx context.Context, rel *entity.StoreBookRelease) (*usecase.ReleaseView, error) {
	keys, err := categoryKeys(ctx, s.categories, rel.Categories)
	if err != nil {
		return nil, err
	}

	view := &usecase.ReleaseView{
		UUID:         rel.UUID.String(),
		StoreBook:    rel.StoreBookID.String(),
		Status:       string(rel.Status),
		ReleaseName:  rel.ReleaseName,
		ReleaseNotes: rel.ReleaseNotes,
		Title:        rel.Title,
		Description:  rel.Description,
		Price:        rel.Price,
		ISBN:         rel.ISBN,
		Cover:        imageView(rel.Cover),
		File:         fileView(rel.File),
		Categories:   keys,
	}
	if rel.PublishedAt != nil {
		view.PublishedAt = rel.PublishedAt.UTC().Format(time.RFC3339)
	}

	return view, nil
}
