// Package response renders API responses. Errors always take the shape
// {"errors":[{"code":N,"message":"..."}]} with one entry per failure.
package response

import (
	"net/http"

	domainerrors "pocketlib/internal/domain/errors"

	"github.com/labstack/echo/v4"
)

// ErrorEntry is one element of the errors array.
type ErrorEntry struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

// ErrorBody is the wire shape of every error response.
type ErrorBody struct {
	Errors []ErrorEntry `json:"errors"`
}

// JSON writes a success response.
func JSON(c echo.Context, statusCode int, body any) error {
	return c.JSON(statusCode, body)
}

// AppError renders a single application error.
func AppError(c echo.Context, err domainerrors.AppError) error {
	return c.JSON(err.HTTPCode(), ErrorBody{
		Errors: []ErrorEntry{{Code: err.Code(), Message: err.Message()}},
	})
}

// ValidationError renders the full ordered field-code list.
func ValidationError(c echo.Context, err *domainerrors.ValidationError) error {
	entries := make([]ErrorEntry, 0, len(err.Fields))
	for _, field := range err.Fields {
		entries = append(entries, ErrorEntry{Code: field.Code, Message: field.Message})
	}

	return c.JSON(err.HTTPCode(), ErrorBody{Errors: entries})
}

// Internal renders the generic 500 body without leaking detail.
func Internal(c echo.Context) error {
	return c.JSON(http.StatusInternalServerError, ErrorBody{
		Errors: []ErrorEntry{{Code: 0, Message: "An unexpected error occurred"}},
	})
}
