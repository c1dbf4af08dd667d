package handlers

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/nfrund/unisocial/internal/app"
	"github.com/nfrund/unisocial/internal/middleware"
	"github.com/nfrund/unisocial/internal/notify"
	"github.com/nfrund/unisocial/internal/posts"
	"github.com/nfrund/unisocial/internal/rendering"
	"github.com/nfrund/unisocial/internal/view"
	"github.com/nfrund/unisocial/internal/view/html"
)

// Handler serves the web UI.
type Handler struct {
	gate       *Gate
	renderer   *rendering.Renderer
	university string
}

// NewHandler creates the web UI handler.
func NewHandler(gate *Gate, renderer *rendering.Renderer, university string) *Handler {
	return &Handler{gate: gate, renderer: renderer, university: university}
}

// toasts collects the flashed toasts followed by those raised in this request.
func toasts(c echo.Context, client *Client) []notify.Toast {
	return append(Flashes(c), client.Toasts.Drain()...)
}

// redirect flashes the request's toasts and redirects.
func redirect(c echo.Context, client *Client, to string) error {
	AddFlashes(c, client.Toasts.Drain()...)
	return c.Redirect(http.StatusSeeOther, to)
}

// Home renders the dashboard for a signed-in user and the auth page with the
// public feed otherwise (GET /).
func (h *Handler) Home(c echo.Context) error {
	client := ClientFrom(c)
	ctx := c.Request().Context()

	if fatal, closed := h.gate.Fatal(); closed {
		if err := client.CheckAPI(ctx); err != nil {
			middleware.FromContext(ctx).Warn("API still unreachable", "error", err)
			return h.renderer.Page(c, http.StatusServiceUnavailable, html.FatalPage(fatal))
		}
		h.gate.Recover()
	}

	switch c.QueryParam("section") {
	case app.FragmentProfile:
		return c.Redirect(http.StatusSeeOther, "/profile")
	case app.FragmentFriends:
		return c.Redirect(http.StatusSeeOther, "/friends")
	}

	deps := client.Deps()
	if tab := c.QueryParam("tab"); tab != "" {
		deps.Auth.SwitchTab(view.Tab(tab))
	}

	if client.Section() == view.SectionAuth {
		_, _ = deps.Posts.LoadPosts(ctx, false)
		return h.renderer.Page(c, http.StatusOK,
			html.AuthPage(deps.Auth.View(), h.university, deps.Posts.View(), toasts(c, client)))
	}

	_ = client.LoadDashboard(ctx)
	if s := c.QueryParam("sort"); s != "" {
		deps.Posts.SetSortType(posts.ParseSortType(s))
	}
	return h.renderer.Page(c, http.StatusOK, html.DashboardPage(client.Dashboard(), toasts(c, client)))
}

// Profile renders the session user's profile, or another user's when an id
// is given (GET /profile, GET /profile/:id).
func (h *Handler) Profile(c echo.Context) error {
	client := ClientFrom(c)
	ctx := c.Request().Context()
	deps := client.Deps()

	if id := c.Param("id"); id != "" && deps.Auth.IsAuthenticated() {
		_, _ = deps.Profile.LoadUserProfile(ctx, id)
	} else if client.Navigate(ctx, app.FragmentProfile) != view.SectionProfile {
		return redirect(c, client, "/")
	}
	return h.renderer.Page(c, http.StatusOK, html.ProfilePage(deps.Auth.View(), deps.Profile.View(), toasts(c, client)))
}

// Friends is not built yet; it announces that and returns to the dashboard
// (GET /friends).
func (h *Handler) Friends(c echo.Context) error {
	client := ClientFrom(c)
	client.Navigate(c.Request().Context(), app.FragmentFriends)
	return redirect(c, client, "/")
}

// Refresh reloads the dashboard data and returns to it (POST /refresh).
func (h *Handler) Refresh(c echo.Context) error {
	client := ClientFrom(c)
	client.Refresh(c.Request().Context())
	return redirect(c, client, "/")
}

// Feed re-renders the feed container for the requested mode and order
// (GET /feed, htmx).
func (h *Handler) Feed(c echo.Context) error {
	client := ClientFrom(c)
	ctx := c.Request().Context()

	var req FeedRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	p := client.Deps().Posts
	_, _ = p.LoadPosts(ctx, req.Personalized())
	p.SetSortType(posts.ParseSortType(req.Sort))
	return h.renderer.Fragment(c, http.StatusOK, html.Feed(p.View()), client.Toasts.Drain())
}

// Healthz reports whether the API answers its health probe (GET /healthz).
func (h *Handler) Healthz(c echo.Context) error {
	if err := ClientFrom(c).CheckAPI(c.Request().Context()); err != nil {
		return c.JSON(http.StatusServiceUnavailable, ErrorResponse{Code: "api_unreachable", Message: err.Error()})
	}
	return c.JSON(http.StatusOK, HealthResponse{Status: "ok", API: "reachable"})
}
