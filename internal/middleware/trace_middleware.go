package middleware

import (
	"context"

	"stableCraft/business/compat"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

// TraceMiddleware tags every request with a trace ID. The ID rides the
// request context so service-layer debug logs can be correlated with the
// response, which echoes it back in the X-Request-ID header.
func TraceMiddleware() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			traceID := c.Request().Header.Get(echo.HeaderXRequestID)
			if traceID == "" {
				traceID = uuid.NewString()
			}

			ctx := context.WithValue(c.Request().Context(), compat.TraceIDKey, traceID)
			c.SetRequest(c.Request().WithContext(ctx))

			c.Set("trace_id", traceID)
			c.Response().Header().Set(echo.HeaderXRequestID, traceID)

			return next(c)
		}
	}
}
