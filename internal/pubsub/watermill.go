package pubsub

import (
	"context"
	"log/slog"
	"sync"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	"go.opentelemetry.io/otel/trace"
	"go.opentelemetry.io/otel/trace/noop"
)

// WatermillBridge implements PubSub on top of watermill's GoChannel.
type WatermillBridge struct {
	channel *gochannel.GoChannel
	tracer  trace.Tracer
	logger  *slog.Logger
	wg      sync.WaitGroup
}

const (
	// Metadata keys used to carry Message fields through a watermill message.
	metaKeyUserID = "user_id"
	metaKeyTopic  = "topic"
)

type bridgeOptions struct {
	blocking bool
	tracer   trace.Tracer
}

// BridgeOption configures a WatermillBridge.
type BridgeOption func(*bridgeOptions)

// WithBlockingPublish makes Publish wait until every subscriber has acked, so
// events are observed in publish order.
func WithBlockingPublish() BridgeOption {
	return func(o *bridgeOptions) {
		o.blocking = true
	}
}

// WithTracer records a span for every publish and every handled message.
func WithTracer(tracer trace.Tracer) BridgeOption {
	return func(o *bridgeOptions) {
		if tracer != nil {
			o.tracer = tracer
		}
	}
}

// NewWatermillBridge initializes an in-memory bus.
func NewWatermillBridge(opts ...BridgeOption) *WatermillBridge {
	o := bridgeOptions{tracer: noop.NewTracerProvider().Tracer(tracerName)}
	for _, opt := range opts {
		opt(&o)
	}

	goChannel := gochannel.NewGoChannel(
		gochannel.Config{BlockPublishUntilSubscriberAck: o.blocking},
		watermill.NewStdLogger(false, false),
	)

	return &WatermillBridge{
		channel: goChannel,
		tracer:  o.tracer,
		logger:  slog.Default().With("component", "pubsub"),
	}
}

func mapToWatermillMessage(msg Message) *message.Message {
	wmMsg := message.NewMessage(watermill.NewUUID(), msg.Payload)
	for k, v := range msg.Metadata {
		wmMsg.Metadata.Set(k, v)
	}
	wmMsg.Metadata.Set(metaKeyUserID, msg.UserID)
	wmMsg.Metadata.Set(metaKeyTopic, msg.Topic)
	return wmMsg
}

func mapToPubSubMessage(wmMsg *message.Message) Message {
	metadata := make(map[string]string)
	for k, v := range wmMsg.Metadata {
		if k != metaKeyUserID && k != metaKeyTopic {
			metadata[k] = v
		}
	}
	return Message{
		Topic:    wmMsg.Metadata.Get(metaKeyTopic),
		UserID:   wmMsg.Metadata.Get(metaKeyUserID),
		Payload:  wmMsg.Payload,
		Metadata: metadata,
	}
}

// Publish implements Publisher.
func (wb *WatermillBridge) Publish(ctx context.Context, msg Message) error {
	wmMsg := mapToWatermillMessage(msg)
	_, span := startPublishSpan(ctx, wb.tracer, msg)
	defer span.End()

	err := wb.channel.Publish(msg.Topic, wmMsg)
	if err != nil {
		recordError(span, err)
	}
	return err
}

// Subscribe implements Subscriber. Messages are handled one at a time in a
// background goroutine.
func (wb *WatermillBridge) Subscribe(ctx context.Context, topic string, handler Handler) error {
	messages, err := wb.channel.Subscribe(ctx, topic)
	if err != nil {
		return err
	}

	traced := traceHandler(wb.tracer, handler)
	wb.wg.Add(1)
	go func() {
		defer wb.wg.Done()
		for wmMsg := range messages {
			msg := mapToPubSubMessage(wmMsg)
			if err := traced(wmMsg.Context(), msg); err != nil {
				wb.logger.Error("Failed to handle message", "topic", topic, "msg_id", wmMsg.UUID, "error", err)
			}
			// Always ack: a nack on GoChannel redelivers forever and a
			// failed toast is not worth retrying.
			wmMsg.Ack()
		}
		wb.logger.Debug("Subscription message loop ended", "topic", topic)
	}()
	return nil
}

// Close shuts the bus down and waits for subscription loops to drain.
func (wb *WatermillBridge) Close() error {
	err := wb.channel.Close()
	wb.wg.Wait()
	return err
}

// Shutdown lets a dependency container close the bridge.
func (wb *WatermillBridge) Shutdown() error {
	return wb.Close()
}
