package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"go.uber.org/fx"

	"pocketlib/internal/delivery/http/middleware"
	"pocketlib/internal/usecase"
)

// CategoryHandlerParams holds dependencies for CategoryHandler, injected by Fx.
type CategoryHandlerParams struct {
	fx.In

	CategoryUC usecase.CategoryUsecase
}

// CategoryHandler holds dependencies for category-related handlers.
type CategoryHandler struct {
	categoryUC usecase.CategoryUsecase
}

// NewCategoryHandler is the constructor for CategoryHandler.
func NewCategoryHandler(params CategoryHandlerParams) *CategoryHandler {
	return &CategoryHandler{categoryUC: params.CategoryUC}
}

// Create handles POST /categories.
func (h *CategoryHandler) Create(c echo.Context) error {
	payload, err := bindPayload(c)
	if err != nil {
		return err
	}

	view, err := h.categoryUC.Create(c.Request().Context(), middleware.GetPrincipal(c), payload)
	if err != nil {
		return err
	}

	return renderView(c, http.StatusCreated, view)
}

// List handles GET /categories.
func (h *CategoryHandler) List(c echo.Context) error {
	views, err := h.categoryUC.List(c.Request().Context(), queryLanguages(c))
	if err != nil {
		return err
	}

	return renderList(c, "categories", views)
}

// SetName handles PUT /categories/:uuid/name/:language.
func (h *CategoryHandler) SetName(c echo.Context) error {
	payload, err := bindPayload(c)
	if err != nil {
		return err
	}

	name, err := h.categoryUC.SetName(c.Request().Context(), middleware.GetPrincipal(c), c.Param("uuid"), c.Param("language"), payload)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, name)
}
