package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"go.uber.org/fx"

	"pocketlib/internal/delivery/http/middleware"
	"pocketlib/internal/usecase"
)

// PublisherHandlerParams holds dependencies for PublisherHandler, injected by Fx.
type PublisherHandlerParams struct {
	fx.In

	PublisherUC usecase.PublisherUsecase
}

// PublisherHandler holds dependencies for publisher-related handlers.
type PublisherHandler struct {
	publisherUC usecase.PublisherUsecase
}

// NewPublisherHandler is the constructor for PublisherHandler.
func NewPublisherHandler(params PublisherHandlerParams) *PublisherHandler {
	return &PublisherHandler{publisherUC: params.PublisherUC}
}

// Create handles POST /publishers.
func (h *PublisherHandler) Create(c echo.Context) error {
	payload, err := bindPayload(c)
	if err != nil {
		return err
	}

	view, err := h.publisherUC.Create(c.Request().Context(), middleware.GetPrincipal(c), payload)
	if err != nil {
		return err
	}

	return renderView(c, http.StatusCreated, view)
}

// Get handles GET /publishers/:uuid (uuid or "mine").
func (h *PublisherHandler) Get(c echo.Context) error {
	view, err := h.publisherUC.Get(c.Request().Context(), middleware.GetPrincipal(c), c.Param("uuid"))
	if err != nil {
		return err
	}

	return renderView(c, http.StatusOK, view)
}

// Update handles PUT /publishers/:uuid.
func (h *PublisherHandler) Update(c echo.Context) error {
	payload, err := bindPayload(c)
	if err != nil {
		return err
	}

	view, err := h.publisherUC.Update(c.Request().Context(), middleware.GetPrincipal(c), c.Param("uuid"), payload)
	if err != nil {
		return err
	}

	return renderView(c, http.StatusOK, view)
}

// SetLogo handles PUT /publishers/:uuid/logo.
func (h *PublisherHandler) SetLogo(c echo.Context) error {
	data, err := readRawBody(c)
	if err != nil {
		return err
	}

	view, err := h.publisherUC.SetLogo(
		c.Request().Context(),
		middleware.GetPrincipal(c),
		c.Param("uuid"),
		c.Request().Header.Get(echo.HeaderContentType),
		data,
	)
	if err != nil {
		return err
	}

	return renderView(c, http.StatusOK, view)
}

// Logo handles GET /publishers/:uuid/logo.
func (h *PublisherHandler) Logo(c echo.Context) error {
	blob, err := h.publisherUC.Logo(c.Request().Context(), middleware.GetPrincipal(c), c.Param("uuid"))
	if err != nil {
		return err
	}

	return c.Blob(http.StatusOK, blob.ContentType, blob.Data)
}
