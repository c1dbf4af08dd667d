// Package server runs the local web UI: an echo server that renders the
// client's view-models and forwards every action to the UniSocial API.
package server

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"time"

	"github.com/gorilla/sessions"
	echosession "github.com/labstack/echo-contrib/session"
	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"

	"github.com/nfrund/unisocial/internal/app"
	"github.com/nfrund/unisocial/internal/config"
	"github.com/nfrund/unisocial/internal/handlers"
	"github.com/nfrund/unisocial/internal/middleware"
	"github.com/nfrund/unisocial/internal/notify"
	"github.com/nfrund/unisocial/internal/rendering"
	"github.com/nfrund/unisocial/internal/session"
)

const sessionMaxAge = 86400 * 7

// Server holds the echo instance and what its handlers share.
type Server struct {
	E       *echo.Echo
	Cfg     config.Provider
	api     app.API
	gate    *handlers.Gate
	handler *handlers.Handler
	shared  *session.CachedStore
	watcher *session.Watcher
	opts    options
	logger  *slog.Logger
}

type options struct {
	now       func() time.Time
	wait      app.WaitFunc
	shared    session.Storage
	rateLimit int
}

// Option configures a Server.
type Option func(*options)

// WithClock sets the clock used for relative times.
func WithClock(now func() time.Time) Option {
	return func(o *options) { o.now = now }
}

// WithWait replaces the sleep between startup retries.
func WithWait(wait app.WaitFunc) Option {
	return func(o *options) { o.wait = wait }
}

// WithSharedStorage uses store for every request instead of the session
// file, and starts no watcher.
func WithSharedStorage(store session.Storage) Option {
	return func(o *options) { o.shared = store }
}

// WithRateLimit sets how many auth submissions per minute an IP may make.
func WithRateLimit(perMinute int) Option {
	return func(o *options) { o.rateLimit = perMinute }
}

// New creates the web UI server over api.
func New(cfg config.Provider, api app.API, opts ...Option) (*Server, error) {
	o := options{now: time.Now, wait: app.Sleep, rateLimit: middleware.DefaultRateLimit}
	for _, opt := range opts {
		opt(&o)
	}

	s := &Server{
		E:      echo.New(),
		Cfg:    cfg,
		api:    api,
		gate:   &handlers.Gate{},
		opts:   o,
		logger: slog.Default().With("component", "server"),
	}
	s.E.HideBanner = true
	s.E.HidePort = true
	setupErrorHandling(s.E)

	storage, err := s.sessionStorage()
	if err != nil {
		return nil, err
	}

	s.E.Use(echomw.Recover())
	s.E.Use(echomw.RequestID())
	s.E.Use(middleware.Logger)
	s.E.Use(middleware.RequestLog())

	store := sessions.NewCookieStore([]byte(cfg.GetSessionSecret()))
	store.Options = &sessions.Options{
		Path:     "/",
		MaxAge:   sessionMaxAge,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	}
	s.E.Use(echosession.Middleware(store))

	renderer := rendering.New()
	s.E.Renderer = renderer
	s.handler = handlers.NewHandler(s.gate, renderer, cfg.GetUniversityName())

	builder := handlers.NewBuilder(api, cfg, storage, o.now)
	s.E.Use(builder.Middleware)

	s.RegisterRoutes()
	return s, nil
}

// sessionStorage picks where the session user lives: the browser cookie, or
// the session file shared with the CLI.
func (s *Server) sessionStorage() (handlers.StorageFunc, error) {
	if s.opts.shared != nil {
		return handlers.SharedStorage(s.opts.shared), nil
	}
	if s.Cfg.GetSessionMode() != config.SessionModeShared {
		return handlers.CookieStorage, nil
	}

	dir := s.Cfg.GetSessionDir()
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return nil, fmt.Errorf("create session dir: %w", err)
	}
	s.shared = session.NewCachedStore(session.NewFileStore(dir))
	w, err := session.Watch(dir, func() {
		s.logger.Info("Session file changed, reloading")
		s.shared.Invalidate()
	})
	if err != nil {
		return nil, err
	}
	s.watcher = w
	return handlers.SharedStorage(s.shared), nil
}

// Bootstrap probes the API the way the client starts up: the first probe and
// three retries. When all fail the home page shows the fatal overlay until
// the API answers again. Only a canceled context is returned as an error.
func (s *Server) Bootstrap(ctx context.Context) error {
	a := app.New(
		app.Assemble(s.api, session.NewMemoryStore(), notify.Discard, s.Cfg, s.opts.now),
		app.WithWait(s.opts.wait),
	)
	err := a.Init(ctx)
	var fatal *app.FatalError
	switch {
	case err == nil:
		s.gate.Recover()
		return nil
	case errors.As(err, &fatal):
		s.logger.Error("API unreachable, serving the error overlay", "error", err)
		s.gate.Fail(fatal.View)
		return nil
	default:
		return err
	}
}
