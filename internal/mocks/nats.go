package mocks

import (
	"github.com/Billy-Davies-2/expansion-draft/internal/logger"
	"github.com/Billy-Davies-2/expansion-draft/internal/pubsub"
)

// MockNATSPubSub is an in-memory stand-in for the NATS bus. Events published
// here are delivered only within the process.
type MockNATSPubSub struct {
	*pubsub.PubSub
}

// NewMockNATSPubSub creates the in-memory bus
func NewMockNATSPubSub() *MockNATSPubSub {
	logger.Info("Using MOCK NATS (in-memory pub/sub) for local development")
	return &MockNATSPubSub{PubSub: pubsub.New()}
}

// Connected always reports true
func (m *MockNATSPubSub) Connected() bool {
	return true
}
