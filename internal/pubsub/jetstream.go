package pubsub

import (
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/Billy-Davies-2/expansion-draft/internal/logger"
	"github.com/nats-io/nats.go"
)

// StreamOptions describes the JetStream stream backing a bus
type StreamOptions struct {
	Name    string
	Subject string
	Storage nats.StorageType
	MaxAge  time.Duration
	MaxMsgs int64
}

// jetStreamBridge publishes events to a JetStream subject and fans every
// delivered message out to local subscribers, including our own publishes.
type jetStreamBridge struct {
	fanout
	nc      *nats.Conn
	js      nats.JetStreamContext
	subject string
	sub     *nats.Subscription
}

func newJetStreamBridge(nc *nats.Conn, opts StreamOptions) (*jetStreamBridge, error) {
	js, err := nc.JetStream()
	if err != nil {
		return nil, fmt.Errorf("failed to create JetStream context: %w", err)
	}

	if _, err := js.StreamInfo(opts.Name); err != nil {
		if !errors.Is(err, nats.ErrStreamNotFound) {
			return nil, fmt.Errorf("failed to look up stream %s: %w", opts.Name, err)
		}
		_, err = js.AddStream(&nats.StreamConfig{
			Name:     opts.Name,
			Subjects: []string{opts.Subject},
			Storage:  opts.Storage,
			MaxAge:   opts.MaxAge,
			MaxMsgs:  opts.MaxMsgs,
		})
		if err != nil {
			return nil, fmt.Errorf("failed to create stream %s: %w", opts.Name, err)
		}
		logger.Info("JetStream stream created", "stream", opts.Name, "subject", opts.Subject)
	}

	b := &jetStreamBridge{
		fanout:  newFanout("jetstream", 100),
		nc:      nc,
		js:      js,
		subject: opts.Subject,
	}

	// Only new messages; state on startup comes from the blob store.
	b.sub, err = js.Subscribe(opts.Subject, b.handle, nats.ManualAck(), nats.DeliverNew())
	if err != nil {
		return nil, fmt.Errorf("failed to subscribe to %s: %w", opts.Subject, err)
	}
	logger.Debug("Subscribed to JetStream", "subject", opts.Subject)

	return b, nil
}

func (b *jetStreamBridge) handle(msg *nats.Msg) {
	var event Event
	if err := json.Unmarshal(msg.Data, &event); err != nil {
		logger.Error("Failed to unmarshal event from JetStream", "error", err)
		// a malformed message will never decode, don't redeliver it
		_ = msg.Term()
		return
	}
	b.broadcast(event)
	_ = msg.Ack()
}

// Publish publishes an event to the JetStream subject
func (b *jetStreamBridge) Publish(event Event) {
	data, err := json.Marshal(event)
	if err != nil {
		logger.Error("Failed to marshal event", "error", err, "event_type", event.Type)
		return
	}

	if _, err := b.js.Publish(b.subject, data); err != nil {
		logger.Error("Failed to publish to NATS", "error", err, "subject", b.subject, "event_type", event.Type)
		return
	}

	logger.Debug("Published event to NATS", "event_type", event.Type, "subject", b.subject)
}

// Subscribe creates a subscription channel for events
func (b *jetStreamBridge) Subscribe() chan Event {
	return b.subscribe()
}

// Unsubscribe removes a subscription channel
func (b *jetStreamBridge) Unsubscribe(ch chan Event) {
	b.unsubscribe(ch)
}

// Connected reports whether the underlying connection is usable
func (b *jetStreamBridge) Connected() bool {
	return b.nc != nil && b.nc.IsConnected()
}

func (b *jetStreamBridge) close() {
	if b.sub != nil {
		_ = b.sub.Unsubscribe()
	}
	b.closeAll()
	if b.nc != nil {
		b.nc.Close()
	}
}
