package app

import (
	"context"
	"strings"

	"github.com/nfrund/unisocial/internal/notify"
	"github.com/nfrund/unisocial/internal/view"
)

// Navigation fragments.
const (
	FragmentHome    = "home"
	FragmentProfile = "profile"
	FragmentFriends = "friends"
)

// Navigate handles a fragment such as "#profile" and returns the section to
// show. Unknown fragments fall back to the dashboard.
func (a *App) Navigate(ctx context.Context, fragment string) view.Section {
	fragment = strings.TrimPrefix(strings.TrimSpace(fragment), "#")
	a.logger.Debug("Navigating", "fragment", fragment)

	switch fragment {
	case FragmentHome:
		if a.deps.Auth.IsAuthenticated() {
			_, _ = a.deps.Posts.LoadPosts(ctx, true)
		}
		return view.SectionDashboard
	case FragmentProfile:
		if !a.deps.Auth.IsAuthenticated() {
			a.deps.Notifier.Notify(ctx, notify.Warning("Debes estar logueado para ver tu perfil"))
			return view.SectionAuth
		}
		_ = a.deps.Profile.Show(ctx)
		return view.SectionProfile
	case FragmentFriends:
		a.deps.Notifier.Notify(ctx, notify.Info(`Sección "Amigos" próximamente`))
		return view.SectionDashboard
	default:
		return view.SectionDashboard
	}
}
