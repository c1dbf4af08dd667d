package handlers

import (
	"net/http"
	"sync"
	"time"

	echosession "github.com/labstack/echo-contrib/session"
	"github.com/labstack/echo/v4"

	"github.com/nfrund/unisocial/internal/app"
	"github.com/nfrund/unisocial/internal/config"
	"github.com/nfrund/unisocial/internal/notify"
	"github.com/nfrund/unisocial/internal/session"
	"github.com/nfrund/unisocial/internal/view"
)

const clientKey = "unisocial.client"

// StorageFunc resolves where the session user of a request lives.
type StorageFunc func(c echo.Context) (session.Storage, error)

// CookieStorage keeps the session user in the browser's gorilla session.
func CookieStorage(c echo.Context) (session.Storage, error) {
	sess, err := echosession.Get(session.CookieSessionName, c)
	if err != nil {
		return nil, err
	}
	return session.New(session.NewCookieBackend(sess, c.Request(), c.Response())), nil
}

// SharedStorage serves every request from the same store, so the browser
// and the CLI see one session.
func SharedStorage(store session.Storage) StorageFunc {
	return func(echo.Context) (session.Storage, error) {
		return store, nil
	}
}

// Client is the per-request client: the app with its managers bound to the
// request's session, and the toasts they raised.
type Client struct {
	*app.App
	Toasts *notify.Recorder
}

// Builder creates a Client for every request.
type Builder struct {
	api     app.API
	cfg     config.Provider
	storage StorageFunc
	now     func() time.Time
}

// NewBuilder creates a Builder. A nil now uses time.Now.
func NewBuilder(api app.API, cfg config.Provider, storage StorageFunc, now func() time.Time) *Builder {
	if now == nil {
		now = time.Now
	}
	return &Builder{api: api, cfg: cfg, storage: storage, now: now}
}

// Build assembles the managers for c and restores the session user.
func (b *Builder) Build(c echo.Context) (*Client, error) {
	store, err := b.storage(c)
	if err != nil {
		return nil, err
	}
	rec := notify.NewRecorder()
	deps := app.Assemble(b.api, store, rec, b.cfg, b.now)
	if err := deps.Auth.Init(c.Request().Context()); err != nil {
		return nil, err
	}
	return &Client{App: app.New(deps), Toasts: rec}, nil
}

// Middleware builds the Client once and stores it on the echo context.
func (b *Builder) Middleware(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		client, err := b.Build(c)
		if err != nil {
			return echo.NewHTTPError(http.StatusInternalServerError, "No se pudo restaurar la sesión").SetInternal(err)
		}
		c.Set(clientKey, client)
		return next(c)
	}
}

// ClientFrom returns the Client stored by Builder.Middleware.
func ClientFrom(c echo.Context) *Client {
	client, _ := c.Get(clientKey).(*Client)
	return client
}

// Authenticated reports whether the request carries a session user.
func Authenticated(c echo.Context) bool {
	client := ClientFrom(c)
	return client != nil && client.Deps().Auth.IsAuthenticated()
}

// Gate remembers whether startup gave up on the API. While it is closed the
// home page shows the fatal overlay and re-probes on every visit.
type Gate struct {
	mu    sync.RWMutex
	fatal *view.FatalError
}

// Fail closes the gate with the overlay to show.
func (g *Gate) Fail(v view.FatalError) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.fatal = &v
}

// Recover opens the gate.
func (g *Gate) Recover() {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.fatal = nil
}

// Fatal returns the overlay while the gate is closed.
func (g *Gate) Fatal() (view.FatalError, bool) {
	g.mu.RLock()
	defer g.mu.RUnlock()
	if g.fatal == nil {
		return view.FatalError{}, false
	}
	return *g.fatal, true
}
