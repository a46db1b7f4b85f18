package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"go.uber.org/fx"

	"pocketlib/internal/delivery/http/middleware"
	"pocketlib/internal/usecase"
)

// SeriesHandlerParams holds dependencies for SeriesHandler, injected by Fx.
type SeriesHandlerParams struct {
	fx.In

	SeriesUC usecase.SeriesUsecase
}

// SeriesHandler holds dependencies for series-related handlers.
type SeriesHandler struct {
	seriesUC usecase.SeriesUsecase
}

// NewSeriesHandler is the constructor for SeriesHandler.
func NewSeriesHandler(params SeriesHandlerParams) *SeriesHandler {
	return &SeriesHandler{seriesUC: params.SeriesUC}
}

// Create handles POST /store_book_series.
func (h *SeriesHandler) Create(c echo.Context) error {
	payload, err := bindPayload(c)
	if err != nil {
		return err
	}

	view, err := h.seriesUC.Create(c.Request().Context(), middleware.GetPrincipal(c), payload)
	if err != nil {
		return err
	}

	return renderView(c, http.StatusCreated, view)
}

// Get handles GET /store_book_series/:uuid.
func (h *SeriesHandler) Get(c echo.Context) error {
	view, err := h.seriesUC.Get(c.Request().Context(), middleware.GetPrincipal(c), c.Param("uuid"), queryLanguages(c))
	if err != nil {
		return err
	}

	return renderView(c, http.StatusOK, view)
}

// Update handles PUT /store_book_series/:uuid.
func (h *SeriesHandler) Update(c echo.Context) error {
	payload, err := bindPayload(c)
	if err != nil {
		return err
	}

	view, err := h.seriesUC.Update(c.Request().Context(), middleware.GetPrincipal(c), c.Param("uuid"), payload, queryLanguages(c))
	if err != nil {
		return err
	}

	return renderView(c, http.StatusOK, view)
}

// SetName handles PUT /store_book_series/:uuid/name/:language.
func (h *SeriesHandler) SetName(c echo.Context) error {
	payload, err := bindPayload(c)
	if err != nil {
		return err
	}

	name, err := h.seriesUC.SetName(c.Request().Context(), middleware.GetPrincipal(c), c.Param("uuid"), c.Param("language"), payload)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, name)
}
