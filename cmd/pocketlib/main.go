package main

import (
	"context"
	"log/slog"
	"os"

	"go.uber.org/fx"

	"pocketlib/config"
	"pocketlib/internal/delivery"
	"pocketlib/internal/delivery/http"
	"pocketlib/internal/delivery/http/middleware"
	"pocketlib/internal/delivery/http/router/handler"
	"pocketlib/internal/domain/authz"
	"pocketlib/internal/infra/blob"
	"pocketlib/internal/infra/imageanalysis"
	logs "pocketlib/internal/infra/log"
	persistence "pocketlib/internal/infra/persistence/tablestore"
	"pocketlib/internal/infra/pubsub"
	"pocketlib/internal/infra/session"
	"pocketlib/internal/infra/tablestore"
	"pocketlib/internal/usecase/impl"
)

type startServerParams struct {
	fx.In
	fx.Lifecycle

	Deliveries []delivery.Delivery `group:"deliveries"`
}

func main() {
	fx.New(
		injectInfra(),
		injectRepo(),
		injectService(),
		injectUsecase(),
		injectDelivery(),
		injectMiddleware(),
		injectHandler(),
		fx.Invoke(
			startServer,
		),
	).Run()
}

func injectInfra() fx.Option {
	return fx.Provide(
		config.New,
		logs.New,
		context.Background,
		tablestore.NewHTTPClient,
		session.NewClient,
		blob.New,
		imageanalysis.New,
		pubsub.NewEventPublisher,
	)
}

func injectRepo() fx.Option {
	return fx.Options(
		fx.Provide(
			persistence.NewAuthorRepository,
			persistence.NewPublisherRepository,
			persistence.NewCollectionRepository,
			persistence.NewStoreBookRepository,
			persistence.NewSeriesRepository,
			persistence.NewCategoryRepository,
		),
	)
}

func injectService() fx.Option {
	return fx.Options(
		fx.Provide(
			authz.NewResolver,
		),
	)
}

func injectUsecase() fx.Option {
	return fx.Options(
		fx.Provide(
			impl.NewAuthorService,
			impl.NewPublisherService,
			impl.NewCollectionService,
			impl.NewStoreBookService,
			impl.NewReleaseService,
			impl.NewSeriesService,
			impl.NewCategoryService,
		),
	)
}

func injectMiddleware() fx.Option {
	return fx.Options(
		fx.Provide(
			middleware.NewAuthMiddleware,
			middleware.NewErrorMiddleware,
			middleware.NewRequestIDMiddleware,
		),
	)
}

func injectHandler() fx.Option {
	return fx.Options(
		fx.Provide(
			handler.NewAuthorHandler,
			handler.NewPublisherHandler,
			handler.NewCollectionHandler,
			handler.NewStoreBookHandler,
			handler.NewReleaseHandler,
			handler.NewSeriesHandler,
			handler.NewCategoryHandler,
		),
	)
}

func injectDelivery() fx.Option {
	return fx.Options(
		fx.Provide(
			fx.Annotate(
				http.NewServer,
				fx.ResultTags(`group:"deliveries"`),
			),
		),
	)
}

func startServer(ctx context.Context, params startServerParams) {
	for _, delivery := range params.Deliveries {
		go func() {
			if err := delivery.Serve(ctx); err != nil {
				slog.Error("Failed to start server", slog.Any("error", err))
				os.Exit(1)
			}
		}()
	}
}
