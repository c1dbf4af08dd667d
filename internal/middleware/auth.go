package middleware

import (
	"github.com/labstack/echo/v4"
)

// RequireUser lets the request through only when authenticated reports a
// session user; otherwise deny answers it.
func RequireUser(authenticated func(echo.Context) bool, deny echo.HandlerFunc) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if !authenticated(c) {
				return deny(c)
			}
			return next(c)
		}
	}
}
