package notify

import (
	"context"
	"log/slog"

	"github.com/nfrund/unisocial/internal/pubsub"
)

// ToastEvent is the bus topic toasts are published on.
var ToastEvent = pubsub.NewEvent[Toast]("ui.toast", "A toast notification for the session user")

// BusNotifier publishes toasts on the event bus so any renderer can
// subscribe to them.
type BusNotifier struct {
	pub    pubsub.Publisher
	userID func() string
	logger *slog.Logger
}

// NewBusNotifier creates a notifier publishing on pub. userID, when set,
// tags each toast with the current session user.
func NewBusNotifier(pub pubsub.Publisher, userID func() string) *BusNotifier {
	return &BusNotifier{
		pub:    pub,
		userID: userID,
		logger: slog.Default().With("component", "notify"),
	}
}

func (b *BusNotifier) Notify(ctx context.Context, t Toast) {
	var uid string
	if b.userID != nil {
		uid = b.userID()
	}
	if err := pubsub.Publish(ctx, b.pub, ToastEvent, uid, t); err != nil {
		b.logger.Error("Failed to publish toast", "error", err, "message", t.Message)
	}
}

// Subscribe delivers every published toast to n.
func Subscribe(ctx context.Context, sub pubsub.Subscriber, n Notifier) error {
	return pubsub.On(ctx, sub, ToastEvent, func(ctx context.Context, t Toast) error {
		n.Notify(ctx, t)
		return nil
	})
}
