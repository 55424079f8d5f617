package pubsub

import (
	"encoding/json"
	"fmt"

	"github.com/Billy-Davies-2/expansion-draft/internal/logger"
)

// Event types published by the coordinator
const (
	EventPicksUpdated       = "draft:picks"
	EventProtectionsUpdated = "draft:protections"
	EventOrderUpdated       = "draft:order"
	EventDispersedUpdated   = "draft:dispersed"
	EventSelectionUpdated   = "draft:selection"
	EventReset              = "draft:reset"
)

// Event represents a pubsub event. Origin identifies the publishing process.
type Event struct {
	Type    string          `json:"type"`
	Origin  string          `json:"origin,omitempty"`
	Payload json.RawMessage `json:"payload,omitempty"`
}

// NewEvent encodes v as the event payload
func NewEvent(eventType, origin string, v any) (Event, error) {
	e := Event{Type: eventType, Origin: origin}
	if v == nil {
		return e, nil
	}
	data, err := json.Marshal(v)
	if err != nil {
		return Event{}, fmt.Errorf("failed to encode %s payload: %w", eventType, err)
	}
	e.Payload = data
	return e, nil
}

// Decode unmarshals the payload into v
func (e Event) Decode(v any) error {
	if len(e.Payload) == 0 {
		return fmt.Errorf("event %s has no payload", e.Type)
	}
	return json.Unmarshal(e.Payload, v)
}

// Bus is implemented by every pub/sub backend
type Bus interface {
	Publish(Event)
	Subscribe() chan Event
	Unsubscribe(chan Event)
}

// PubSub is the in-process bus handed to handlers and the coordinator.
// With an upstream, publishes go upstream and come back to local subscribers
// through the upstream subscription.
type PubSub struct {
	fanout
	upstream Bus
	upCh     chan Event
}

// New creates a new PubSub instance
func New() *PubSub {
	return &PubSub{fanout: newFanout("local", 10)}
}

// NewWithUpstream creates a PubSub that bridges to an upstream publisher (e.g., NATS)
func NewWithUpstream(upstream Bus) *PubSub {
	ps := &PubSub{
		fanout:   newFanout("local", 10),
		upstream: upstream,
		upCh:     upstream.Subscribe(),
	}

	go func() {
		logger.Debug("PubSub: Subscribed to upstream, waiting for events")
		for event := range ps.upCh {
			logger.Debug("PubSub: Received event from upstream, forwarding to local", "type", event.Type)
			ps.broadcast(event)
		}
		logger.Debug("PubSub: Upstream channel closed")
	}()

	return ps
}

// Subscribe adds a new subscriber and returns a channel for receiving events
func (ps *PubSub) Subscribe() chan Event {
	return ps.subscribe()
}

// Unsubscribe removes a subscriber and closes its channel
func (ps *PubSub) Unsubscribe(ch chan Event) {
	ps.unsubscribe(ch)
}

// Publish sends an event upstream when configured, otherwise to local subscribers
func (ps *PubSub) Publish(event Event) {
	if ps.upstream != nil {
		logger.Debug("PubSub: Forwarding to upstream", "type", event.Type)
		ps.upstream.Publish(event)
		return
	}
	ps.broadcast(event)
}

// Close detaches from the upstream and closes all local subscriptions
func (ps *PubSub) Close() {
	if ps.upstream != nil && ps.upCh != nil {
		ps.upstream.Unsubscribe(ps.upCh)
	}
	ps.closeAll()
}
