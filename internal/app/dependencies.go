package app

import (
	"context"
	"time"

	"github.com/nfrund/unisocial/internal/auth"
	"github.com/nfrund/unisocial/internal/config"
	"github.com/nfrund/unisocial/internal/notify"
	"github.com/nfrund/unisocial/internal/posts"
	"github.com/nfrund/unisocial/internal/profile"
	"github.com/nfrund/unisocial/internal/session"
	"github.com/nfrund/unisocial/internal/users"
)

// HealthChecker probes the API.
type HealthChecker interface {
	Health(ctx context.Context) (bool, error)
}

// API is every endpoint the managers call. *apiclient.Client implements it.
type API interface {
	HealthChecker
	auth.API
	posts.API
	users.API
	profile.API
}

// Dependencies holds the services the App orchestrates. It is filled by the
// composition root (see NewContainer), by Assemble, or by hand in tests.
type Dependencies struct {
	Config   config.Provider
	Health   HealthChecker
	Auth     *auth.Manager
	Posts    *posts.Manager
	Users    *users.Manager
	Profile  *profile.Manager
	Notifier notify.Notifier
}

// Assemble builds a fresh set of managers over one API and one session
// store. The web server calls it once per request.
func Assemble(api API, store session.Storage, n notify.Notifier, cfg config.Provider, now func() time.Time) Dependencies {
	if now == nil {
		now = time.Now
	}
	am := auth.NewManager(api, store, n, cfg)
	return Dependencies{
		Config:   cfg,
		Health:   api,
		Auth:     am,
		Posts:    posts.NewManager(api, am, n, cfg.GetAppOrigin(), posts.WithClock(now)),
		Users:    users.NewManager(api, am),
		Profile:  profile.NewManager(api, am, n, now),
		Notifier: n,
	}
}
