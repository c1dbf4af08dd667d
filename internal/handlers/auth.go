package handlers

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/nfrund/unisocial/internal/notify"
)

// Login signs the user in (POST /auth/login). Validation and API failures
// come back to the login tab as toasts.
func (h *Handler) Login(c echo.Context) error {
	client := ClientFrom(c)
	var req LoginRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	if err := client.Deps().Auth.Login(c.Request().Context(), req.Form()); err != nil {
		return redirect(c, client, "/?tab=login")
	}
	return redirect(c, client, "/")
}

// Register creates an account (POST /auth/register). On success the user is
// sent to the login tab; registering does not sign in.
func (h *Handler) Register(c echo.Context) error {
	client := ClientFrom(c)
	var req RegisterRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	if err := client.Deps().Auth.Register(c.Request().Context(), req.Form()); err != nil {
		return redirect(c, client, "/?tab=register")
	}
	return redirect(c, client, "/?tab=login")
}

// Logout clears the session (POST /auth/logout).
func (h *Handler) Logout(c echo.Context) error {
	client := ClientFrom(c)
	if err := client.Deps().Auth.Logout(c.Request().Context()); err != nil {
		return err
	}
	return redirect(c, client, "/")
}

// Denied answers requests that need a session user. htmx requests are told
// to navigate instead of following a redirect.
func (h *Handler) Denied(c echo.Context) error {
	AddFlashes(c, notify.Warning("Debes iniciar sesión para continuar"))
	if c.Request().Header.Get("HX-Request") == "true" {
		c.Response().Header().Set("HX-Redirect", "/")
		return c.NoContent(http.StatusUnauthorized)
	}
	return c.Redirect(http.StatusSeeOther, "/")
}
