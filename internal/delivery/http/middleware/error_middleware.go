package middleware

import (
	"log/slog"
	"net/http"

	"github.com/labstack/echo/v4"

	"pocketlib/internal/delivery/http/response"
	domainerrors "pocketlib/internal/domain/errors"
	"pocketlib/internal/errors"
	"pocketlib/internal/infra/tablestore"
)

// ErrorMiddleware renders every error as the errors-array body.
type ErrorMiddleware struct {
	logger *slog.Logger
}

// NewErrorMiddleware creates a new error handling middleware.
func NewErrorMiddleware(logger *slog.Logger) *ErrorMiddleware {
	return &ErrorMiddleware{logger: logger}
}

// HandleHTTPError handles errors as Echo's HTTPErrorHandler.
func (m *ErrorMiddleware) HandleHTTPError(err error, c echo.Context) {
	if c.Response().Committed {
		return
	}

	// Validation failures expand into one entry per field code.
	var validationErr *domainerrors.ValidationError
	if errors.As(err, &validationErr) {
		_ = response.ValidationError(c, validationErr)

		return
	}

	var appErr domainerrors.AppError
	if errors.As(err, &appErr) {
		_ = response.AppError(c, appErr)

		return
	}

	// A failed table store call is an upstream outage, never a caller
	// mistake.
	if errors.Is(err, tablestore.ErrUpstream) {
		m.logger.Error("table store unavailable",
			slog.String("path", c.Request().URL.Path),
			slog.Any("error", err),
		)
		_ = response.AppError(c, domainerrors.ErrUpstream)

		return
	}

	var httpErr *echo.HTTPError
	if errors.As(err, &httpErr) {
		message := http.StatusText(httpErr.Code)
		if text, ok := httpErr.Message.(string); ok {
			message = text
		}
		_ = c.JSON(httpErr.Code, response.ErrorBody{
			Errors: []response.ErrorEntry{{Code: httpErr.Code, Message: message}},
		})

		return
	}

	m.logger.Error("unhandled error",
		slog.String("path", c.Request().URL.Path),
		slog.String("method", c.Request().Method),
		slog.Any("error", err),
	)
	_ = response.Internal(c)
}
