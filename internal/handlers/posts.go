package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/nfrund/unisocial/internal/middleware"
	"github.com/nfrund/unisocial/internal/view/html"
)

// CreatePost publishes a post and returns to the dashboard (POST /posts).
func (h *Handler) CreatePost(c echo.Context) error {
	client := ClientFrom(c)
	var req PostRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	_ = client.Deps().Posts.CreatePost(c.Request().Context(), req.Form())
	return redirect(c, client, "/")
}

// Like toggles the like and answers with the re-rendered card
// (POST /posts/:id/like, htmx). When the card cannot be rendered only the
// toasts are sent and the swap is cancelled.
func (h *Handler) Like(c echo.Context) error {
	client := ClientFrom(c)
	ctx := c.Request().Context()
	id := c.Param("id")
	p := client.Deps().Posts

	_, _ = p.LoadPosts(ctx, false)
	if _, err := p.ToggleLike(ctx, id); err != nil {
		return h.toastsOnly(c, client)
	}
	card, err := p.Card(id)
	if err != nil {
		middleware.FromContext(ctx).Debug("Liked post not in feed", "post_id", id)
		return h.toastsOnly(c, client)
	}
	return h.renderer.Fragment(c, http.StatusOK, html.PostCard(card), client.Toasts.Drain())
}

// Share answers with the post link in an HX-Trigger event the page copies to
// the clipboard (POST /posts/:id/share, htmx).
func (h *Handler) Share(c echo.Context) error {
	client := ClientFrom(c)
	link, err := client.Deps().Posts.ShareLink(c.Request().Context(), c.Param("id"))
	if err == nil {
		if payload, err := json.Marshal(ShareEvent{CopyLink: link}); err == nil {
			c.Response().Header().Set("HX-Trigger", string(payload))
		}
	}
	return h.toastsOnly(c, client)
}

// Report acknowledges a report (POST /posts/:id/report, htmx).
func (h *Handler) Report(c echo.Context) error {
	client := ClientFrom(c)
	client.Deps().Posts.Report(c.Request().Context(), c.Param("id"))
	return h.toastsOnly(c, client)
}

func (h *Handler) toastsOnly(c echo.Context, client *Client) error {
	c.Response().Header().Set("HX-Reswap", "none")
	return h.renderer.Fragment(c, http.StatusOK, nil, client.Toasts.Drain())
}
