package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"go.uber.org/fx"

	"pocketlib/internal/delivery/http/middleware"
	"pocketlib/internal/usecase"
)

// ReleaseHandlerParams holds dependencies for ReleaseHandler, injected by Fx.
type ReleaseHandlerParams struct {
	fx.In

	ReleaseUC usecase.ReleaseUsecase
}

// ReleaseHandler holds dependencies for release-related handlers.
type ReleaseHandler struct {
	releaseUC usecase.ReleaseUsecase
}

// NewReleaseHandler is the constructor for ReleaseHandler.
func NewReleaseHandler(params ReleaseHandlerParams) *ReleaseHandler {
	return &ReleaseHandler{releaseUC: params.ReleaseUC}
}

// Create handles POST /store_books/:uuid/releases.
func (h *ReleaseHandler) Create(c echo.Context) error {
	payload, err := bindPayload(c)
	if err != nil {
		return err
	}

	view, err := h.releaseUC.Create(c.Request().Context(), middleware.GetPrincipal(c), c.Param("uuid"), payload)
	if err != nil {
		return err
	}

	return renderView(c, http.StatusCreated, view)
}

// Get handles GET /store_book_releases/:uuid.
func (h *ReleaseHandler) Get(c echo.Context) error {
	view, err := h.releaseUC.Get(c.Request().Context(), middleware.GetPrincipal(c), c.Param("uuid"))
	if err != nil {
		return err
	}

	return renderView(c, http.StatusOK, view)
}

// Publish handles PUT /store_book_releases/:uuid/publish.
func (h *ReleaseHandler) Publish(c echo.Context) error {
	payload, err := bindPayload(c)
	if err != nil {
		return err
	}

	view, err := h.releaseUC.Publish(c.Request().Context(), middleware.GetPrincipal(c), c.Param("uuid"), payload)
	if err != nil {
		return err
	}

	return renderView(c, http.StatusOK, view)
}
