// Package middleware contains cross-cutting HTTP concerns.
package middleware

import (
	"log/slog"
	"net/http"

	domainerrors "clubhouse/internal/domain/errors"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
)

// ErrorMiddleware is the single catch-all for anything the handlers did not
// turn into a specific response themselves.
type ErrorMiddleware struct {
	logger *slog.Logger
}

// NewErrorMiddleware creates a new error handling middleware
func NewErrorMiddleware(logger *slog.Logger) *ErrorMiddleware {
	return &ErrorMiddleware{
		logger: logger,
	}
}

type errorBody struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

// HandleHTTPError handles errors as Echo's HTTPErrorHandler.
func (m *ErrorMiddleware) HandleHTTPError(err error, c echo.Context) {
	if c.Response().Committed {
		return
	}

	var appErr domainerrors.AppError
	if errors.As(err, &appErr) {
		_ = c.JSON(appErr.HTTPCode(), errorBody{
			Code:    appErr.HTTPCode(),
			Message: appErr.Message(),
		})

		return
	}

	var httpErr *echo.HTTPError
	if errors.As(err, &httpErr) {
		_ = c.JSON(httpErr.Code, errorBody{
			Code:    httpErr.Code,
			Message: http.StatusText(httpErr.Code),
		})

		return
	}

	// Infrastructure error: log the cause, return an unstructured 500.
	m.logger.Error("Unhandled error",
		slog.String("error", err.Error()),
		slog.String("path", c.Request().URL.Path),
		slog.String("method", c.Request().Method),
	)

	_ = c.JSON(http.StatusInternalServerError, errorBody{
		Code:    http.StatusInternalServerError,
		Message: "Internal server error",
	})
}
