package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"go.uber.org/fx"

	"pocketlib/internal/delivery/http/middleware"
	"pocketlib/internal/usecase"
)

// StoreBookHandlerParams holds dependencies for StoreBookHandler, injected by Fx.
type StoreBookHandlerParams struct {
	fx.In

	StoreBookUC usecase.StoreBookUsecase
}

// StoreBookHandler holds dependencies for store-book-related handlers.
type StoreBookHandler struct {
	storeBookUC usecase.StoreBookUsecase
}

// NewStoreBookHandler is the constructor for StoreBookHandler.
func NewStoreBookHandler(params StoreBookHandlerParams) *StoreBookHandler {
	return &StoreBookHandler{storeBookUC: params.StoreBookUC}
}

// Create handles POST /store_books.
func (h *StoreBookHandler) Create(c echo.Context) error {
	payload, err := bindPayload(c)
	if err != nil {
		return err
	}

	view, err := h.storeBookUC.Create(c.Request().Context(), middleware.GetPrincipal(c), payload)
	if err != nil {
		return err
	}

	return renderView(c, http.StatusCreated, view)
}

// List handles GET /store_books.
func (h *StoreBookHandler) List(c echo.Context) error {
	opts := usecase.ListStoreBooksOptions{
		Latest:    c.QueryParam("latest") == "true",
		Category:  c.QueryParam("categories"),
		Languages: queryLanguages(c),
	}

	views, err := h.storeBookUC.List(c.Request().Context(), middleware.GetPrincipal(c), opts)
	if err != nil {
		return err
	}

	return renderList(c, "books", views)
}

// Get handles GET /store_books/:uuid.
func (h *StoreBookHandler) Get(c echo.Context) error {
	view, err := h.storeBookUC.Get(c.Request().Context(), middleware.GetPrincipal(c), c.Param("uuid"), queryLanguages(c))
	if err != nil {
		return err
	}

	return renderView(c, http.StatusOK, view)
}

// Update handles PUT /store_books/:uuid.
func (h *StoreBookHandler) Update(c echo.Context) error {
	payload, err := bindPayload(c)
	if err != nil {
		return err
	}

	view, err := h.storeBookUC.Update(c.Request().Context(), middleware.GetPrincipal(c), c.Param("uuid"), payload)
	if err != nil {
		return err
	}

	return renderView(c, http.StatusOK, view)
}

// SetCover handles PUT /store_books/:uuid/cover.
func (h *StoreBookHandler) SetCover(c echo.Context) error {
	data, err := readRawBody(c)
	if err != nil {
		return err
	}

	view, err := h.storeBookUC.SetCover(
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

// Cover handles GET /store_books/:uuid/cover.
func (h *StoreBookHandler) Cover(c echo.Context) error {
	blob, err := h.storeBookUC.Cover(c.Request().Context(), middleware.GetPrincipal(c), c.Param("uuid"))
	if err != nil {
		return err
	}

	return c.Blob(http.StatusOK, blob.ContentType, blob.Data)
}

// SetFile handles PUT /store_books/:uuid/file. The filename comes
// from the Content-Disposition header when the client sends one.
func (h *StoreBookHandler) SetFile(c echo.Context) error {
	data, err := readRawBody(c)
	if err != nil {
		return err
	}

	view, err := h.storeBookUC.SetFile(
		c.Request().Context(),
		middleware.GetPrincipal(c),
		c.Param("uuid"),
		c.Request().Header.Get(echo.HeaderContentType),
		uploadFileName(c),
		data,
	)
	if err != nil {
		return err
	}

	return renderView(c, http.StatusOK, view)
}

// File handles GET /store_books/:uuid/file.
func (h *StoreBookHandler) File(c echo.Context) error {
	blob, err := h.storeBookUC.File(c.Request().Context(), middleware.GetPrincipal(c), c.Param("uuid"))
	if err != nil {
		return err
	}

	return c.Blob(http.StatusOK, blob.ContentType, blob.Data)
}
