package impl

import (
	"context"
	"log/slog"

	"pocketlib/internal/domain/authz"
	"pocketlib/internal/domain/entity"
	domainerrors "pocketlib/internal/domain/errors"
	"pocketlib/internal/domain/repository"
	"pocketlib/internal/domain/service"
	"pocketlib/internal/domain/validation"
	"pocketlib/internal/errors"
	"pocketlib/internal/usecase"
)

type publisherService struct {
	publishers repository.PublisherRepository
	resolver   *authz.Resolver
	blobs      service.BlobService
	analyzer   service.ImageAnalyzer
	logger     *slog.Logger
}

// NewPublisherService creates the publisher usecase implementation.
func NewPublisherService(
	publishers repository.PublisherRepository,
	resolver *authz.Resolver,
	blobs service.BlobService,
	analyzer service.ImageAnalyzer,
	logger *slog.Logger,
) usecase.PublisherUsecase {
	return &publisherService{
		publishers: publishers,
		resolver:   resolver,
		blobs:      blobs,
		analyzer:   analyzer,
		logger:     logger,
	}
}

func (s *publisherService) Create(ctx context.Context, principal *entity.Principal, payload map[string]any) (*usecase.PublisherView, error) {
	if err := validation.Validate(payload, createPublisherRules); err != nil {
		return nil, err
	}

	publisher := &entity.Publisher{}
	publisher.Name, _ = validation.Str(payload, "name")
	publisher.Description, _ = validation.Str(payload, "description")
	publisher.WebsiteURL, _ = validation.Str(payload, "website_url")

	if !principal.IsAdmin() {
		_, err := s.publishers.FindByUserID(ctx, principal.UserID)
		if err == nil {
			return nil, domainerrors.ErrUserIsAlreadyPublisher
		}
		if !errors.Is(err, repository.ErrNotFound) {
			return nil, errors.Wrap(err, "check existing publisher")
		}
		publisher.UserID = principal.UserID
	}

	if err := s.publishers.Create(ctx, publisher); err != nil {
		return nil, errors.Wrap(err, "create publisher")
	}

	return publisherView(publisher), nil
}

func (s *publisherService) Get(ctx context.Context, principal *entity.Principal, idOrAlias string) (*usecase.PublisherView, error) {
	publisher, err := s.resolver.ResolvePublisher(ctx, principal, idOrAlias)
	if err != nil {
		return nil, err
	}

	return publisherView(publisher), nil
}

func (s *publisherService) Update(ctx context.Context, principal *entity.Principal, idOrAlias string, payload map[string]any) (*usecase.PublisherView, error) {
	publisher, err := s.authorize(ctx, principal, idOrAlias)
	if err != nil {
		return nil, err
	}

	if err := validation.Validate(payload, updatePublisherRules); err != nil {
		return nil, err
	}

	if v, ok := validation.Str(payload, "name"); ok {
		publisher.Name = v
	}
	if v, ok := validation.Str(payload, "description"); ok {
		publisher.Description = v
	}
	if v, ok := validation.Str(payload, "website_url"); ok {
		publisher.WebsiteURL = v
	}

	if err := s.publishers.Update(ctx, publisher); err != nil {
		return nil, errors.Wrap(err, "update publisher")
	}

	return publisherView(publisher), nil
}

func (s *publisherService) SetLogo(ctx context.Context, principal *entity.Principal, idOrAlias, contentType string, data []byte) (*usecase.PublisherView, error) {
	publisher, err := s.authorize(ctx, principal, idOrAlias)
	if err != nil {
		return nil, err
	}

	if err := checkDeclaredType(contentType, allowedImageTypes); err != nil {
		return nil, err
	}

	if err := storeImage(ctx, s.blobs, &publisher.Logo, data); err != nil {
		return nil, err
	}
	if err := s.publishers.Update(ctx, publisher); err != nil {
		return nil, errors.Wrap(err, "update publisher")
	}

	publisherID := publisher.UUID
	analyzeImageAsync(s.logger, s.analyzer, data, func(ctx context.Context, analysis *service.ImageAnalysis) error {
		current, err := s.publishers.FindByID(ctx, publisherID)
		if err != nil {
			return err
		}
		current.Logo.Blurhash = analysis.Blurhash
		current.Logo.AspectRatio = analysis.AspectRatio

		return s.publishers.Update(ctx, current)
	})

	return publisherView(publisher), nil
}

func (s *publisherService) Logo(ctx context.Context, principal *entity.Principal, idOrAlias string) (*service.Blob, error) {
	publisher, err := s.resolver.ResolvePublisher(ctx, principal, idOrAlias)
	if err != nil {
		return nil, err
	}

	return fetchBlob(ctx, s.blobs, publisher.Logo.ItemID, domainerrors.ErrPublisherNotFound)
}

func (s *publisherService) authorize(ctx context.Context, principal *entity.Principal, idOrAlias string) (*entity.Publisher, error) {
	publisher, err := s.resolver.ResolvePublisher(ctx, principal, idOrAlias)
	if err != nil {
		return nil, err
	}
	if err := authz.Require(principal, publisher.UserID); err != nil {
		return nil, err
	}

	return publisher, nil
}

func publisherView(publisher *entity.Publisher) *usecase.PublisherView {
	return &usecase.PublisherView{
		UUID:        publisher.UUID.String(),
		Name:        publisher.Name,
		Description: publisher.Description,
		WebsiteURL:  publisher.WebsiteURL,
		Authors:     idStrings(publisher.Authors),
		Logo:        imageView(publisher.Logo),
	}
}
