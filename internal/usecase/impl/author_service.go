package impl

import (
	"context"
	"log/slog"

	"pocketlib/internal/domain/authz"
	"pocketlib/internal/domain/entity"
	domainerrors "pocketlib/internal/domain/errors"
	"pocketlib/internal/domain/localized"
	"pocketlib/internal/domain/repository"
	"pocketlib/internal/domain/service"
	"pocketlib/internal/domain/validation"
	"pocketlib/internal/errors"
	"pocketlib/internal/usecase"

	"github.com/google/uuid"
)

type authorService struct {
	authors  repository.AuthorRepository
	resolver *authz.Resolver
	blobs    service.BlobService
	analyzer service.ImageAnalyzer
	logger   *slog.Logger
}

// NewAuthorService creates the author usecase implementation.
func NewAuthorService(
	authors repository.AuthorRepository,
	resolver *authz.Resolver,
	blobs service.BlobService,
	analyzer service.ImageAnalyzer,
	logger *slog.Logger,
) usecase.AuthorUsecase {
	return &authorService{
		authors:  authors,
		resolver: resolver,
		blobs:    blobs,
		analyzer: analyzer,
		logger:   logger,
	}
}

func (s *authorService) Create(ctx context.Context, principal *entity.Principal, payload map[string]any) (*usecase.AuthorView, error) {
	if err := validation.Validate(payload, createAuthorRules); err != nil {
		return nil, err
	}

	author := &entity.Author{}
	author.FirstName, _ = validation.Str(payload, "first_name")
	author.LastName, _ = validation.Str(payload, "last_name")
	author.WebsiteURL, _ = validation.Str(payload, "website_url")

	// Admins create detached authors; everyone else becomes one, once.
	if !principal.IsAdmin() {
		_, err := s.authors.FindByUserID(ctx, principal.UserID)
		if err == nil {
			return nil, domainerrors.ErrUserIsAlreadyAuthor
		}
		if !errors.Is(err, repository.ErrNotFound) {
			return nil, errors.Wrap(err, "check existing author")
		}
		author.UserID = principal.UserID
	}

	if err := s.authors.Create(ctx, author); err != nil {
		return nil, errors.Wrap(err, "create author")
	}

	return s.view(ctx, author, nil)
}

func (s *authorService) List(ctx context.Context, principal *entity.Principal, latest bool, languages []string) ([]*usecase.AuthorView, error) {
	languages, err := normalizeLanguages(languages)
	if err != nil {
		return nil, err
	}

	// The plain listing exposes every author record and is admin-only;
	// the latest form is the public browse surface.
	if !latest && !principal.IsAdmin() {
		return nil, domainerrors.ErrActionNotAllowed
	}

	authors, err := s.authors.List(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "list authors")
	}
	if latest {
		// Newest first.
		for i, j := 0, len(authors)-1; i < j; i, j = i+1, j-1 {
			authors[i], authors[j] = authors[j], authors[i]
		}
	}

	views := make([]*usecase.AuthorView, 0, len(authors))
	for _, author := range authors {
		view, err := s.view(ctx, author, languages)
		if err != nil {
			return nil, err
		}
		views = append(views, view)
	}

	return views, nil
}

func (s *authorService) Get(ctx context.Context, principal *entity.Principal, idOrAlias string, languages []string) (*usecase.AuthorView, error) {
	languages, err := normalizeLanguages(languages)
	if err != nil {
		return nil, err
	}

	author, err := s.resolver.ResolveAuthor(ctx, principal, idOrAlias)
	if err != nil {
		return nil, err
	}

	return s.view(ctx, author, languages)
}

func (s *authorService) Update(ctx context.Context, principal *entity.Principal, idOrAlias string, payload map[string]any, languages []string) (*usecase.AuthorView, error) {
	languages, err := normalizeLanguages(languages)
	if err != nil {
		return nil, err
	}

	author, err := s.authorize(ctx, principal, idOrAlias)
	if err != nil {
		return nil, err
	}

	if err := validation.Validate(payload, updateAuthorRules); err != nil {
		return nil, err
	}

	if v, ok := validation.Str(payload, "first_name"); ok {
		author.FirstName = v
	}
	if v, ok := validation.Str(payload, "last_name"); ok {
		author.LastName = v
	}
	if v, ok := validation.Str(payload, "website_url"); ok {
		author.WebsiteURL = v
	}

	if err := s.authors.Update(ctx, author); err != nil {
		return nil, errors.Wrap(err, "update author")
	}

	return s.view(ctx, author, languages)
}

func (s *authorService) SetBio(ctx context.Context, principal *entity.Principal, idOrAlias, language string, payload map[string]any) (*usecase.LocalizedValue, error) {
	if !validLanguageParam(language) {
		return nil, domainerrors.ErrLanguageNotSupported
	}

	author, err := s.authorize(ctx, principal, idOrAlias)
	if err != nil {
		return nil, err
	}

	if err := validation.Validate(payload, setBioRules); err != nil {
		return nil, err
	}
	value, _ := validation.Str(payload, "bio")

	registry := localized.NewRegistry(s.authors.Bios())
	child, appended, err := registry.Upsert(ctx, author.Bios, language, value)
	if err != nil {
		return nil, err
	}
	if appended {
		if err := s.authors.AppendBio(ctx, author.UUID, child.UUID); err != nil {
			return nil, errors.Wrap(err, "append bio")
		}
	}

	return &usecase.LocalizedValue{Language: child.Language, Value: child.Value}, nil
}

func (s *authorService) SetProfileImage(ctx context.Context, principal *entity.Principal, idOrAlias, contentType string, data []byte) (*usecase.AuthorView, error) {
	author, err := s.authorize(ctx, principal, idOrAlias)
	if err != nil {
		return nil, err
	}

	if err := checkDeclaredType(contentType, allowedImageTypes); err != nil {
		return nil, err
	}

	if err := storeImage(ctx, s.blobs, &author.ProfileImage, data); err != nil {
		return nil, err
	}
	if err := s.authors.Update(ctx, author); err != nil {
		return nil, errors.Wrap(err, "update author")
	}

	authorID := author.UUID
	analyzeImageAsync(s.logger, s.analyzer, data, func(ctx context.Context, analysis *service.ImageAnalysis) error {
		current, err := s.authors.FindByID(ctx, authorID)
		if err != nil {
			return err
		}
		current.ProfileImage.Blurhash = analysis.Blurhash
		current.ProfileImage.AspectRatio = analysis.AspectRatio

		return s.authors.Update(ctx, current)
	})

	return s.view(ctx, author, nil)
}

func (s *authorService) ProfileImage(ctx context.Context, principal *entity.Principal, idOrAlias string) (*service.Blob, error) {
	author, err := s.resolver.ResolveAuthor(ctx, principal, idOrAlias)
	if err != nil {
		return nil, err
	}

	return fetchBlob(ctx, s.blobs, author.ProfileImage.ItemID, domainerrors.ErrAuthorNotFound)
}

// authorize resolves the author and requires write access.
func (s *authorService) authorize(ctx context.Context, principal *entity.Principal, idOrAlias string) (*entity.Author, error) {
	author, err := s.resolver.ResolveAuthor(ctx, principal, idOrAlias)
	if err != nil {
		return nil, err
	}
	owner, err := s.resolver.AuthorOwner(ctx, author)
	if err != nil {
		return nil, err
	}
	if err := authz.Require(principal, owner); err != nil {
		return nil, err
	}

	return author, nil
}

func (s *authorService) view(ctx context.Context, author *entity.Author, languages []string) (*usecase.AuthorView, error) {
	view := &usecase.AuthorView{
		UUID:         author.UUID.String(),
		FirstName:    author.FirstName,
		LastName:     author.LastName,
		WebsiteURL:   author.WebsiteURL,
		Collections:  idStrings(author.Collections),
		Series:       idStrings(author.Series),
		ProfileImage: imageView(author.ProfileImage),
	}
	if author.PublisherID != uuid.Nil {
		view.Publisher = author.PublisherID.String()
	}

	bio, _, err := resolveName(ctx, s.authors.Bios(), author.Bios, languages)
	if err != nil {
		return nil, err
	}
	view.Bio = bio

	return view, nil
}
