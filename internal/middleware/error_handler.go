package middleware

import (
	"errors"
	"net/http"
	"strings"

	"stableCraft/pkg/logger"
	jsonres "stableCraft/pkg/response"

	"github.com/labstack/echo/v4"
)

// ErrorHandler is the echo HTTPErrorHandler. It catches errors that
// escape the handlers, echo routing errors included, and folds them into
// the same envelope the middlewares use.
func ErrorHandler(err error, c echo.Context) {
	if c.Response().Committed {
		return
	}

	code := http.StatusInternalServerError
	message := "Internal server error"

	var httpErr *echo.HTTPError
	if errors.As(err, &httpErr) {
		code = httpErr.Code
		if msg, ok := httpErr.Message.(string); ok {
			message = msg
		} else {
			message = http.StatusText(code)
		}
	}

	if code >= http.StatusInternalServerError {
		logger.Error("Unhandled request error",
			"method", c.Request().Method,
			"path", c.Request().URL.Path,
			"status", code,
			"error", err,
		)
	}

	codeLabel := strings.ToUpper(strings.ReplaceAll(http.StatusText(code), " ", "_"))

	if writeErr := c.JSON(code, jsonres.Error(codeLabel, message, nil)); writeErr != nil {
		logger.Error("Failed to write error response", writeErr)
	}
}
