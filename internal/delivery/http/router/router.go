// Package router contains routing and server setup for the HTTP delivery.
package router

import (
	"github.com/labstack/echo/v4"
	"go.uber.org/fx"

	"pocketlib/internal/delivery/http/middleware"
	"pocketlib/internal/delivery/http/router/handler"
)

type RouterParams struct {
	fx.In

	AuthorHandler     *handler.AuthorHandler
	PublisherHandler  *handler.PublisherHandler
	CollectionHandler *handler.CollectionHandler
	StoreBookHandler  *handler.StoreBookHandler
	ReleaseHandler    *handler.ReleaseHandler
	SeriesHandler     *handler.SeriesHandler
	CategoryHandler   *handler.CategoryHandler
	AuthMiddleware    *middleware.AuthMiddleware
}

// router holds all the handlers that need to be registered.
type router struct {
	params RouterParams
}

// NewRouter is the constructor for the Router.
// Fx will inject the required handlers here.
func NewRouter(params RouterParams) *router {
	return &router{params: params}
}

// RegisterRoutes sets up all the API routes for the application. Public
// reads take optional credentials so owners see their own drafts; all
// writes require authentication.
func (r *router) RegisterRoutes(e *echo.Echo) {
	auth := r.params.AuthMiddleware

	e.GET("/", handler.HealthCheck)

	authors := e.Group("/authors")
	{
		authors.POST("", r.params.AuthorHandler.Create, auth.Authenticate)
		authors.GET("", r.params.AuthorHandler.List, auth.AuthenticateOptional)
		authors.GET("/:uuid", r.params.AuthorHandler.Get, auth.AuthenticateOptional)
		authors.PUT("/:uuid", r.params.AuthorHandler.Update, auth.Authenticate)
		authors.PUT("/:uuid/bio/:language", r.params.AuthorHandler.SetBio, auth.Authenticate)
		authors.PUT("/:uuid/profile_image", r.params.AuthorHandler.SetProfileImage, auth.Authenticate)
		authors.GET("/:uuid/profile_image", r.params.AuthorHandler.ProfileImage, auth.AuthenticateOptional)
	}

	publishers := e.Group("/publishers")
	{
		publishers.POST("", r.params.PublisherHandler.Create, auth.Authenticate)
		publishers.GET("/:uuid", r.params.PublisherHandler.Get, auth.AuthenticateOptional)
		publishers.PUT("/:uuid", r.params.PublisherHandler.Update, auth.Authenticate)
		publishers.PUT("/:uuid/logo", r.params.PublisherHandler.SetLogo, auth.Authenticate)
		publishers.GET("/:uuid/logo", r.params.PublisherHandler.Logo, auth.AuthenticateOptional)
	}

	collections := e.Group("/store_book_collections")
	{
		collections.POST("", r.params.CollectionHandler.Create, auth.Authenticate)
		collections.GET("/:uuid", r.params.CollectionHandler.Get, auth.AuthenticateOptional)
		collections.PUT("/:uuid/name/:language", r.params.CollectionHandler.SetName, auth.Authenticate)
	}

	books := e.Group("/store_books")
	{
		books.POST("", r.params.StoreBookHandler.Create, auth.Authenticate)
		books.GET("", r.params.StoreBookHandler.List, auth.AuthenticateOptional)
		books.GET("/:uuid", r.params.StoreBookHandler.Get, auth.AuthenticateOptional)
		books.PUT("/:uuid", r.params.StoreBookHandler.Update, auth.Authenticate)
		books.PUT("/:uuid/cover", r.params.StoreBookHandler.SetCover, auth.Authenticate)
		books.GET("/:uuid/cover", r.params.StoreBookHandler.Cover, auth.AuthenticateOptional)
		books.PUT("/:uuid/file", r.params.StoreBookHandler.SetFile, auth.Authenticate)
		books.GET("/:uuid/file", r.params.StoreBookHandler.File, auth.Authenticate)
		books.POST("/:uuid/releases", r.params.ReleaseHandler.Create, auth.Authenticate)
	}

	releases := e.Group("/store_book_releases")
	{
		releases.GET("/:uuid", r.params.ReleaseHandler.Get, auth.AuthenticateOptional)
		releases.PUT("/:uuid/publish", r.params.ReleaseHandler.Publish, auth.Authenticate)
	}

	series := e.Group("/store_book_series")
	{
		series.POST("", r.params.SeriesHandler.Create, auth.Authenticate)
		series.GET("/:uuid", r.params.SeriesHandler.Get, auth.AuthenticateOptional)
		series.PUT("/:uuid", r.params.SeriesHandler.Update, auth.Authenticate)
		series.PUT("/:uuid/name/:language", r.params.SeriesHandler.SetName, auth.Authenticate)
	}

	categories := e.Group("/categories")
	{
		categories.POST("", r.params.CategoryHandler.Create, auth.Authenticate)
		categories.GET("", r.params.CategoryHandler.List)
		categories.PUT("/:uuid/name/:language", r.params.CategoryHandler.SetName, auth.Authenticate)
	}
}
