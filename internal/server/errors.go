package server

import (
	"errors"
	"net/http"
	"runtime/debug"

	"github.com/labstack/echo/v4"

	"github.com/nfrund/unisocial/internal/middleware"
)

// setupErrorHandling logs unhandled errors with a stack trace and hides
// their text from the browser. *echo.HTTPError keeps echo's handling.
func setupErrorHandling(e *echo.Echo) {
	e.HTTPErrorHandler = func(err error, c echo.Context) {
		if c.Response().Committed {
			return
		}
		var he *echo.HTTPError
		if errors.As(err, &he) {
			if he.Internal != nil {
				middleware.FromContext(c.Request().Context()).Warn("Request failed", "status", he.Code, "error", he.Internal)
			}
			e.DefaultHTTPErrorHandler(err, c)
			return
		}

		middleware.FromContext(c.Request().Context()).Error("Internal Server Error (Unhandled)",
			"error", err.Error(),
			"path", c.Path(),
			"stack_trace", string(debug.Stack()),
		)
		_ = c.String(http.StatusInternalServerError, "Error interno del servidor")
	}
}
