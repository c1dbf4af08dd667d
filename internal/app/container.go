package app

import (
	"time"

	"github.com/samber/do/v2"

	"github.com/nfrund/unisocial/internal/apiclient"
	"github.com/nfrund/unisocial/internal/auth"
	"github.com/nfrund/unisocial/internal/config"
	"github.com/nfrund/unisocial/internal/notify"
	"github.com/nfrund/unisocial/internal/posts"
	"github.com/nfrund/unisocial/internal/profile"
	"github.com/nfrund/unisocial/internal/pubsub"
	"github.com/nfrund/unisocial/internal/session"
	"github.com/nfrund/unisocial/internal/users"
)

// ContainerOptions replaces default services. Zero fields keep the defaults.
type ContainerOptions struct {
	// Storage defaults to the session file under the configured directory.
	Storage session.Storage
	// Indicator defaults to apiclient.NopIndicator.
	Indicator apiclient.Indicator
	// Bus defaults to a blocking in-memory watermill bridge.
	Bus *pubsub.WatermillBridge
	// Wait defaults to Sleep.
	Wait WaitFunc
	// Clock defaults to time.Now.
	Clock func() time.Time
}

// NewContainer registers every client service in a samber/do injector. The
// caller owns the injector and should Shutdown it when done.
func NewContainer(cfg config.Provider, opts ContainerOptions) *do.RootScope {
	i := do.New()

	if opts.Clock == nil {
		opts.Clock = time.Now
	}
	if opts.Wait == nil {
		opts.Wait = Sleep
	}

	do.ProvideValue[config.Provider](i, cfg)

	do.Provide(i, func(i do.Injector) (*pubsub.WatermillBridge, error) {
		if opts.Bus != nil {
			return opts.Bus, nil
		}
		return pubsub.NewWatermillBridge(pubsub.WithBlockingPublish()), nil
	})

	do.Provide(i, func(i do.Injector) (*apiclient.Client, error) {
		cfg := do.MustInvoke[config.Provider](i)
		return apiclient.New(cfg.GetAPIBaseURL(),
			apiclient.WithTimeout(cfg.GetAPITimeout()),
			apiclient.WithIndicator(opts.Indicator),
		), nil
	})

	do.Provide(i, func(i do.Injector) (session.Storage, error) {
		if opts.Storage != nil {
			return opts.Storage, nil
		}
		return session.NewFileStore(do.MustInvoke[config.Provider](i).GetSessionDir()), nil
	})

	do.Provide(i, func(i do.Injector) (notify.Notifier, error) {
		bus := do.MustInvoke[*pubsub.WatermillBridge](i)
		return notify.NewBusNotifier(bus, func() string {
			if m, err := do.Invoke[*auth.Manager](i); err == nil {
				return m.CurrentUserID()
			}
			return ""
		}), nil
	})

	do.Provide(i, func(i do.Injector) (*auth.Manager, error) {
		return auth.NewManager(
			do.MustInvoke[*apiclient.Client](i),
			do.MustInvoke[session.Storage](i),
			do.MustInvoke[notify.Notifier](i),
			do.MustInvoke[config.Provider](i),
		), nil
	})

	do.Provide(i, func(i do.Injector) (*posts.Manager, error) {
		return posts.NewManager(
			do.MustInvoke[*apiclient.Client](i),
			do.MustInvoke[*auth.Manager](i),
			do.MustInvoke[notify.Notifier](i),
			do.MustInvoke[config.Provider](i).GetAppOrigin(),
			posts.WithClock(opts.Clock),
		), nil
	})

	do.Provide(i, func(i do.Injector) (*users.Manager, error) {
		return users.NewManager(do.MustInvoke[*apiclient.Client](i), do.MustInvoke[*auth.Manager](i)), nil
	})

	do.Provide(i, func(i do.Injector) (*profile.Manager, error) {
		return profile.NewManager(
			do.MustInvoke[*apiclient.Client](i),
			do.MustInvoke[*auth.Manager](i),
			do.MustInvoke[notify.Notifier](i),
			opts.Clock,
		), nil
	})

	do.Provide(i, func(i do.Injector) (*App, error) {
		return New(Dependencies{
			Config:   do.MustInvoke[config.Provider](i),
			Health:   do.MustInvoke[*apiclient.Client](i),
			Auth:     do.MustInvoke[*auth.Manager](i),
			Posts:    do.MustInvoke[*posts.Manager](i),
			Users:    do.MustInvoke[*users.Manager](i),
			Profile:  do.MustInvoke[*profile.Manager](i),
			Notifier: do.MustInvoke[notify.Notifier](i),
		}, WithWait(opts.Wait)), nil
	})

	return i
}
