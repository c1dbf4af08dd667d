package server

import (
	"github.com/labstack/echo/v4"

	"github.com/nfrund/unisocial/internal/handlers"
	"github.com/nfrund/unisocial/internal/middleware"
	"github.com/nfrund/unisocial/web"
)

// RegisterRoutes sets up all the application routes.
func (s *Server) RegisterRoutes() {
	h := s.handler
	rateLimiter := middleware.RateLimiter(s.opts.rateLimit)
	requireUser := middleware.RequireUser(handlers.Authenticated, h.Denied)

	s.E.StaticFS("/static", echo.MustSubFS(web.FS, "static"))

	s.E.GET("/", h.Home)
	s.E.GET("/profile", h.Profile)
	s.E.GET("/profile/:id", h.Profile)
	s.E.GET("/friends", h.Friends)
	s.E.GET("/feed", h.Feed)
	s.E.GET("/healthz", h.Healthz)

	s.E.POST("/auth/login", h.Login, rateLimiter)
	s.E.POST("/auth/register", h.Register, rateLimiter)
	s.E.POST("/auth/logout", h.Logout)

	s.E.POST("/refresh", h.Refresh, requireUser)
	s.E.POST("/posts", h.CreatePost, requireUser)
	s.E.POST("/posts/:id/like", h.Like)
	s.E.POST("/posts/:id/share", h.Share)
	s.E.POST("/posts/:id/report", h.Report)
}
