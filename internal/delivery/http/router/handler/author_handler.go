package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"go.uber.org/fx"

	"pocketlib/internal/delivery/http/middleware"
	"pocketlib/internal/usecase"
)

// AuthorHandlerParams holds dependencies for AuthorHandler, injected by Fx.
type AuthorHandlerParams struct {
	fx.In

	AuthorUC usecase.AuthorUsecase
}

// AuthorHandler holds dependencies for author-related handlers.
type AuthorHandler struct {
	authorUC usecase.AuthorUsecase
}

// NewAuthorHandler is the constructor for AuthorHandler.
func NewAuthorHandler(params AuthorHandlerParams) *AuthorHandler {
	return &AuthorHandler{authorUC: params.AuthorUC}
}

// Create handles POST /authors.
func (h *AuthorHandler) Create(c echo.Context) error {
	payload, err := bindPayload(c)
	if err != nil {
		return err
	}

	view, err := h.authorUC.Create(c.Request().Context(), middleware.GetPrincipal(c), payload)
	if err != nil {
		return err
	}

	return renderView(c, http.StatusCreated, view)
}

// List handles GET /authors.
func (h *AuthorHandler) List(c echo.Context) error {
	latest := c.QueryParam("latest") == "true"

	views, err := h.authorUC.List(c.Request().Context(), middleware.GetPrincipal(c), latest, queryLanguages(c))
	if err != nil {
		return err
	}

	return renderList(c, "authors", views)
}

// Get handles GET /authors/:uuid (uuid or "mine").
func (h *AuthorHandler) Get(c echo.Context) error {
	view, err := h.authorUC.Get(c.Request().Context(), middleware.GetPrincipal(c), c.Param("uuid"), queryLanguages(c))
	if err != nil {
		return err
	}

	return renderView(c, http.StatusOK, view)
}

// Update handles PUT /authors/:uuid.
func (h *AuthorHandler) Update(c echo.Context) error {
	payload, err := bindPayload(c)
	if err != nil {
		return err
	}

	view, err := h.authorUC.Update(c.Request().Context(), middleware.GetPrincipal(c), c.Param("uuid"), payload, queryLanguages(c))
	if err != nil {
		return err
	}

	return renderView(c, http.StatusOK, view)
}

// SetBio handles PUT /authors/:uuid/bio/:language.
func (h *AuthorHandler) SetBio(c echo.Context) error {
	payload, err := bindPayload(c)
	if err != nil {
		return err
	}

	bio, err := h.authorUC.SetBio(c.Request().Context(), middleware.GetPrincipal(c), c.Param("uuid"), c.Param("language"), payload)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, bio)
}

// SetProfileImage handles PUT /authors/:uuid/profile_image.
func (h *AuthorHandler) SetProfileImage(c echo.Context) error {
	data, err := readRawBody(c)
	if err != nil {
		return err
	}

	view, err := h.authorUC.SetProfileImage(
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

// ProfileImage handles GET /authors/:uuid/profile_image.
func (h *AuthorHandler) ProfileImage(c echo.Context) error {
	blob, err := h.authorUC.ProfileImage(c.Request().Context(), middleware.GetPrincipal(c), c.Param("uuid"))
	if err != nil {
		return err
	}

	return c.Blob(http.StatusOK, blob.ContentType, blob.Data)
}
