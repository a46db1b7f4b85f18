package middleware

import (
	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	deliveryctx "pocketlib/internal/delivery/context"
)

// RequestIDMiddleware assigns each request a correlation id. Incoming
// X-Request-Id headers are honored so ids survive proxy hops.
type RequestIDMiddleware struct{}

// NewRequestIDMiddleware creates the request id middleware.
func NewRequestIDMiddleware() *RequestIDMiddleware {
	return &RequestIDMiddleware{}
}

// Handle stores the request id on the echo context, the request context
// and the response header.
func (m *RequestIDMiddleware) Handle(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		requestID := c.Request().Header.Get(deliveryctx.HeaderXRequestID)
		if requestID == "" {
			requestID = uuid.New().String()
		}

		deliveryctx.SetRequestID(c, requestID)
		c.SetRequest(c.Request().WithContext(
			deliveryctx.WithRequestID(c.Request().Context(), requestID),
		))
		c.Response().Header().Set(deliveryctx.HeaderXRequestID, requestID)

		return next(c)
	}
}
