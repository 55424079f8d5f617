package pubsub

import (
	"fmt"
	"time"

	"github.com/Billy-Davies-2/expansion-draft/internal/logger"
	"github.com/nats-io/nats.go"
)

// DefaultSubject is the subject draft events are published on
const DefaultSubject = "draft.events"

// DefaultStreamName is the JetStream stream holding draft events
const DefaultStreamName = "DRAFT_EVENTS"

// NATSPubSub implements pub/sub using an external NATS JetStream server
type NATSPubSub struct {
	*jetStreamBridge
}

// NewNATSPubSub connects to NATS and subscribes to the draft event subject
func NewNATSPubSub(natsURL, subject string) (*NATSPubSub, error) {
	if subject == "" {
		subject = DefaultSubject
	}

	nc, err := nats.Connect(natsURL,
		nats.Name("expansion-draft"),
		nats.MaxReconnects(-1),
		nats.ReconnectWait(2*time.Second),
		nats.DisconnectErrHandler(func(_ *nats.Conn, err error) {
			if err != nil {
				logger.Warn("NATS disconnected", "error", err)
			}
		}),
		nats.ReconnectHandler(func(c *nats.Conn) {
			logger.Info("NATS reconnected", "url", c.ConnectedUrl())
		}),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to NATS: %w", err)
	}

	bridge, err := newJetStreamBridge(nc, StreamOptions{
		Name:    DefaultStreamName,
		Subject: subject,
		Storage: nats.FileStorage,
		MaxAge:  7 * 24 * time.Hour,
	})
	if err != nil {
		nc.Close()
		return nil, err
	}

	logger.Info("Connected to NATS", "url", nc.ConnectedUrl(), "subject", subject)
	return &NATSPubSub{jetStreamBridge: bridge}, nil
}

// Close closes the NATS connection
func (p *NATSPubSub) Close() {
	p.close()
	logger.Info("NATS connection closed")
}
