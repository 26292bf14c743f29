package nats

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"codeflix-catalog/internal/config"
	"codeflix-catalog/internal/core/domain"

	"github.com/nats-io/nats.go"
	"github.com/nats-io/nats.go/jetstream"
)

// Publisher sends integration events to the JetStream publish subject
type Publisher struct {
	logger *slog.Logger
	conn   *nats.Conn
	js     jetstream.JetStream
	config config.NATSConfig
}

// NewNATSPublisher creates a new publisher
func NewNATSPublisher(cfg config.NATSConfig, logger *slog.Logger) (*Publisher, error) {
	conn, js, err := connect(cfg, "codeflix-catalog-publisher", logger)
	if err != nil {
		return nil, err
	}

	return &Publisher{logger: logger, conn: conn, js: js, config: cfg}, nil
}

// Dispatch publishes the JSON encoding of event and waits for the stream ack
func (p *Publisher) Dispatch(ctx context.Context, event domain.IntegrationEvent) error {
	data, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("could not marshal %s event: %w", event.Type(), err)
	}

	ack, err := p.js.Publish(ctx, p.config.PublishSubject, data)
	if err != nil {
		return fmt.Errorf("could not publish %s event: %w", event.Type(), err)
	}

	p.logger.Debug("event published", "event_type", event.Type(), "stream", ack.Stream, "sequence", ack.Sequence)
	return nil
}

// Close drains the connection
func (p *Publisher) Close() error {
	if p.conn != nil {
		return p.conn.Drain()
	}
	return nil
}
