// Package pubsub is the in-process event bus that carries UI events (toasts,
// session changes) from the managers to whatever is rendering them.
package pubsub

import (
	"context"
)

// Message is the structure passed between components on the bus.
type Message struct {
	// Topic identifies the channel the message belongs to (e.g. "ui.toast").
	Topic string
	// UserID identifies the session user the event concerns, if any.
	UserID string
	// Payload is the JSON encoded event.
	Payload []byte
	// Metadata carries extra key-value pairs such as a request id.
	Metadata map[string]string
}

// Handler processes a received message.
type Handler func(ctx context.Context, msg Message) error

// Publisher sends messages to the bus.
type Publisher interface {
	Publish(ctx context.Context, msg Message) error
	Close() error
}

// Subscriber receives messages from the bus.
type Subscriber interface {
	// Subscribe starts delivering messages on topic to handler until ctx is
	// canceled or the subscriber is closed. It does not block.
	Subscribe(ctx context.Context, topic string, handler Handler) error
	Close() error
}

// PubSub is both ends of the bus.
type PubSub interface {
	Publisher
	Subscriber
}
