// Package handler contains the HTTP handlers for all resources. Handlers
// decode the request, delegate to the usecase layer and project the
// resulting view through the fields selector.
package handler

import (
	"encoding/json"
	"io"
	"mime"
	"net/http"

	"github.com/labstack/echo/v4"

	"pocketlib/internal/delivery/http/projection"
)

// bindPayload decodes the JSON request body into a generic payload map.
// An empty body yields an empty map so PUT without changes is valid.
func bindPayload(c echo.Context) (map[string]any, error) {
	body, err := io.ReadAll(c.Request().Body)
	if err != nil {
		return nil, echo.NewHTTPError(http.StatusBadRequest, "unable to read request body")
	}

	if len(body) == 0 {
		return map[string]any{}, nil
	}

	var payload map[string]any
	if err := json.Unmarshal(body, &payload); err != nil {
		return nil, echo.NewHTTPError(http.StatusBadRequest, "request body is not valid json")
	}

	return payload, nil
}

// readRawBody reads the binary body of an upload request.
func readRawBody(c echo.Context) ([]byte, error) {
	data, err := io.ReadAll(c.Request().Body)
	if err != nil {
		return nil, echo.NewHTTPError(http.StatusBadRequest, "unable to read request body")
	}

	return data, nil
}

// uploadFileName extracts the filename from the Content-Disposition
// header of a file upload, empty when absent.
func uploadFileName(c echo.Context) string {
	header := c.Request().Header.Get("Content-Disposition")
	if header == "" {
		return ""
	}

	_, params, err := mime.ParseMediaType(header)
	if err != nil {
		return ""
	}

	return params["filename"]
}

// renderView writes a single view filtered by the fields query param.
func renderView(c echo.Context, status int, view any) error {
	projected, err := projection.Project(view, projection.ParseFields(c.QueryParam("fields")))
	if err != nil {
		return err
	}

	return c.JSON(status, projected)
}

// renderList writes a list response under the given key, each element
// filtered by the fields query param.
func renderList[T any](c echo.Context, key string, views []T) error {
	projected, err := projection.ProjectList(views, projection.ParseFields(c.QueryParam("fields")))
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, map[string]any{key: projected})
}

// queryLanguages parses the languages query param.
func queryLanguages(c echo.Context) []string {
	return projection.ParseLanguages(c.QueryParam("languages"))
}
