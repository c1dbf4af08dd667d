// Package app bootstraps the client: it probes the API, restores the session
// and loads the dashboard, and it routes fragment navigation to the managers.
package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/nfrund/unisocial/internal/config"
	"github.com/nfrund/unisocial/internal/notify"
	"github.com/nfrund/unisocial/internal/view"
)

const (
	// MaxRetries is how many times startup is retried after the first failure.
	MaxRetries = 3
	// RetryStep is multiplied by the attempt number to get the retry delay.
	RetryStep = 2 * time.Second
)

// FatalError is returned by Init once every retry has failed. View is the
// blocking overlay to show.
type FatalError struct {
	Err  error
	View view.FatalError
}

func (e *FatalError) Error() string {
	return fmt.Sprintf("startup failed after %d retries: %v", MaxRetries, e.Err)
}

func (e *FatalError) Unwrap() error {
	return e.Err
}

// WaitFunc sleeps for d or until ctx is done.
type WaitFunc func(ctx context.Context, d time.Duration) error

// Sleep is the default WaitFunc.
func Sleep(ctx context.Context, d time.Duration) error {
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-t.C:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// App orchestrates startup and navigation.
type App struct {
	deps   Dependencies
	wait   WaitFunc
	logger *slog.Logger
}

// Option configures an App.
type Option func(*App)

// WithWait replaces the retry sleep, letting tests run instantly.
func WithWait(wait WaitFunc) Option {
	return func(a *App) {
		a.wait = wait
	}
}

// New creates an App over deps.
func New(deps Dependencies, opts ...Option) *App {
	if deps.Notifier == nil {
		deps.Notifier = notify.Discard
	}
	a := &App{
		deps:   deps,
		wait:   Sleep,
		logger: slog.Default().With("component", "app"),
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// Init runs startup: health probe, session restore and, when signed in, the
// dashboard load. A failed attempt is retried after 2s, 4s and 6s; after that
// a *FatalError is returned.
func (a *App) Init(ctx context.Context) error {
	var err error
	for attempt := 0; ; attempt++ {
		if err = a.start(ctx); err == nil {
			a.logger.Info("Client initialized")
			return nil
		}
		a.logger.Error("Error initializing client", "attempt", attempt+1, "error", err)

		if attempt >= MaxRetries {
			break
		}
		delay := RetryStep * time.Duration(attempt+1)
		a.logger.Info("Retrying initialization", "retry", attempt+1, "max", MaxRetries, "delay", delay)
		if werr := a.wait(ctx, delay); werr != nil {
			return werr
		}
	}

	return &FatalError{
		Err:  err,
		View: view.NewFatalError(config.IsLocalOrigin(a.deps.Config.GetAppOrigin()), a.deps.Config.GetAPIBaseURL()),
	}
}

func (a *App) start(ctx context.Context) error {
	if err := a.CheckAPI(ctx); err != nil {
		return err
	}
	if err := a.deps.Auth.Init(ctx); err != nil {
		return err
	}
	if a.deps.Auth.IsAuthenticated() {
		_ = a.LoadDashboard(ctx)
	}
	return nil
}

// CheckAPI probes the API and reports an unreachable server with the message
// matching the deployment.
func (a *App) CheckAPI(ctx context.Context) error {
	ok, err := a.deps.Health.Health(ctx)
	if err == nil && ok {
		a.logger.Debug("API connection established")
		return nil
	}
	msg := view.NewFatalError(config.IsLocalOrigin(a.deps.Config.GetAppOrigin()), "").Message
	if err != nil {
		return fmt.Errorf("%s: %w", msg, err)
	}
	return errors.New(msg)
}

// Section resolves what the top level should show for the current session.
func (a *App) Section() view.Section {
	if a.deps.Auth.IsAuthenticated() {
		return view.SectionDashboard
	}
	return view.SectionAuth
}

// Dashboard renders the signed-in home.
func (a *App) Dashboard() view.Dashboard {
	return view.Dashboard{
		Session: a.deps.Auth.View(),
		Feed:    a.deps.Posts.View(),
		Users:   a.deps.Users.View(),
	}
}

// Deps exposes the orchestrated services.
func (a *App) Deps() Dependencies {
	return a.deps
}
