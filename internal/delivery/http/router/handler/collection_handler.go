package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"go.uber.org/fx"

	"pocketlib/internal/delivery/http/middleware"
	"pocketlib/internal/usecase"
)

// CollectionHandlerParams holds dependencies for CollectionHandler, injected by Fx.
type CollectionHandlerParams struct {
	fx.In

	CollectionUC usecase.CollectionUsecase
}

// CollectionHandler holds dependencies for collection-related handlers.
type CollectionHandler struct {
	collectionUC usecase.CollectionUsecase
}

// NewCollectionHandler is the constructor for CollectionHandler.
func NewCollectionHandler(params CollectionHandlerParams) *CollectionHandler {
	return &CollectionHandler{collectionUC: params.CollectionUC}
}

// Create handles POST /store_book_collections.
func (h *CollectionHandler) Create(c echo.Context) error {
	payload, err := bindPayload(c)
	if err != nil {
		return err
	}

	view, err := h.collectionUC.Create(c.Request().Context(), middleware.GetPrincipal(c), payload)
	if err != nil {
		return err
	}

	return renderView(c, http.StatusCreated, view)
}

// Get handles GET /store_book_collections/:uuid.
func (h *CollectionHandler) Get(c echo.Context) error {
	view, err := h.collectionUC.Get(c.Request().Context(), middleware.GetPrincipal(c), c.Param("uuid"), queryLanguages(c))
	if err != nil {
		return err
	}

	return renderView(c, http.StatusOK, view)
}

// SetName handles PUT /store_book_collections/:uuid/name/:language.
func (h *CollectionHandler) SetName(c echo.Context) error {
	payload, err := bindPayload(c)
	if err != nil {
		return err
	}

	name, err := h.collectionUC.SetName(c.Request().Context(), middleware.GetPrincipal(c), c.Param("uuid"), c.Param("language"), payload)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, name)
}
