package app

import (
	"context"
	"errors"

	"golang.org/x/sync/errgroup"

	"github.com/nfrund/unisocial/internal/notify"
)

// LoadDashboard fetches the personalized feed and the user list concurrently
// and waits for both. Either may fail without affecting the other; the
// failures are returned joined.
func (a *App) LoadDashboard(ctx context.Context) error {
	var postsErr, usersErr error

	var g errgroup.Group
	g.Go(func() error {
		_, postsErr = a.deps.Posts.LoadPosts(ctx, true)
		return nil
	})
	g.Go(func() error {
		usersErr = a.deps.Users.LoadUsers(ctx)
		return nil
	})
	_ = g.Wait()

	err := errors.Join(postsErr, usersErr)
	if err != nil {
		a.logger.Warn("Dashboard loaded with errors", "error", err)
	} else {
		a.logger.Debug("Dashboard loaded")
	}
	return err
}

// Refresh reloads the dashboard for a signed-in user.
func (a *App) Refresh(ctx context.Context) {
	if !a.deps.Auth.IsAuthenticated() {
		return
	}
	_ = a.LoadDashboard(ctx)
	a.deps.Notifier.Notify(ctx, notify.Success("Datos actualizados"))
}
