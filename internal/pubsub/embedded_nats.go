package pubsub

import (
	"fmt"
	"time"

	"github.com/Billy-Davies-2/expansion-draft/internal/logger"
	"github.com/nats-io/nats-server/v2/server"
	"github.com/nats-io/nats.go"
)

// EmbeddedNATSPubSub runs a NATS server in-process so development gets the
// same JetStream path as production
type EmbeddedNATSPubSub struct {
	*jetStreamBridge
	server *server.Server
}

// EmbeddedNATSOptions configures the embedded NATS server
type EmbeddedNATSOptions struct {
	Port       int    // -1 picks a random port
	Subject    string
	StreamName string
	StoreDir   string // empty keeps the stream in memory
}

// DefaultEmbeddedNATSOptions returns defaults for development
func DefaultEmbeddedNATSOptions() EmbeddedNATSOptions {
	return EmbeddedNATSOptions{
		Port:       -1,
		Subject:    DefaultSubject,
		StreamName: DefaultStreamName,
	}
}

// NewEmbeddedNATSPubSub starts an embedded NATS server and connects to it
func NewEmbeddedNATSPubSub(opts EmbeddedNATSOptions) (*EmbeddedNATSPubSub, error) {
	port := opts.Port
	if port == 0 {
		port = -1
	}
	if opts.Subject == "" {
		opts.Subject = DefaultSubject
	}
	if opts.StreamName == "" {
		opts.StreamName = DefaultStreamName
	}

	serverOpts := &server.Options{
		Host:      "127.0.0.1",
		Port:      port,
		JetStream: true,
		NoSigs:    true,
	}
	storage := nats.MemoryStorage
	if opts.StoreDir != "" {
		serverOpts.StoreDir = opts.StoreDir
		storage = nats.FileStorage
	}

	ns, err := server.NewServer(serverOpts)
	if err != nil {
		return nil, fmt.Errorf("failed to create embedded NATS server: %w", err)
	}
	ns.SetLogger(&natsLogger{}, false, false)

	go ns.Start()

	if !ns.ReadyForConnections(10 * time.Second) {
		ns.Shutdown()
		return nil, fmt.Errorf("embedded NATS server failed to start within timeout")
	}

	clientURL := ns.ClientURL()
	logger.Info("Embedded NATS server started", "url", clientURL)

	nc, err := nats.Connect(clientURL, nats.Name("expansion-draft-embedded"))
	if err != nil {
		ns.Shutdown()
		return nil, fmt.Errorf("failed to connect to embedded NATS: %w", err)
	}

	bridge, err := newJetStreamBridge(nc, StreamOptions{
		Name:    opts.StreamName,
		Subject: opts.Subject,
		Storage: storage,
		MaxAge:  time.Hour,
	})
	if err != nil {
		nc.Close()
		ns.Shutdown()
		return nil, err
	}

	return &EmbeddedNATSPubSub{jetStreamBridge: bridge, server: ns}, nil
}

// Close shuts down the embedded NATS server
func (p *EmbeddedNATSPubSub) Close() {
	logger.Info("Shutting down embedded NATS server")
	p.close()
	if p.server != nil {
		p.server.Shutdown()
		p.server.WaitForShutdown()
	}
}

// GetServerURL returns the client URL of the embedded server
func (p *EmbeddedNATSPubSub) GetServerURL() string {
	return p.server.ClientURL()
}

// natsLogger adapts our logger to the NATS server logger interface
type natsLogger struct{}

func (l *natsLogger) Noticef(format string, v ...interface{}) {
	logger.Info(fmt.Sprintf("[NATS] "+format, v...))
}

func (l *natsLogger) Warnf(format string, v ...interface{}) {
	logger.Warn(fmt.Sprintf("[NATS] "+format, v...))
}

func (l *natsLogger) Fatalf(format string, v ...interface{}) {
	logger.Error(fmt.Sprintf("[NATS] "+format, v...))
}

func (l *natsLogger) Errorf(format string, v ...interface{}) {
	logger.Error(fmt.Sprintf("[NATS] "+format, v...))
}

func (l *natsLogger) Debugf(format string, v ...interface{}) {
	logger.Debug(fmt.Sprintf("[NATS] "+format, v...))
}

func (l *natsLogger) Tracef(format string, v ...interface{}) {
	logger.Debug(fmt.Sprintf("[NATS TRACE] "+format, v...))
}
