package rabbitmq

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"sync"

	"codeflix-catalog/internal/config"
	"codeflix-catalog/internal/core/domain"

	amqp "github.com/rabbitmq/amqp091-go"
)

// Publisher sends integration events to the encoder queue
type Publisher struct {
	logger *slog.Logger
	conn   *amqp.Connection
	ch     *amqp.Channel
	config config.RabbitMQConfig
	mu     sync.Mutex
}

// NewRabbitMQPublisher creates a new publisher and declares its queue
func NewRabbitMQPublisher(cfg config.RabbitMQConfig, logger *slog.Logger) (*Publisher, error) {
	conn, err := dial(cfg.URL, logger)
	if err != nil {
		return nil, err
	}

	ch, err := conn.Channel()
	if err != nil {
		conn.Close()
		return nil, fmt.Errorf("failed to open channel: %w", err)
	}

	if _, err := declareQueue(ch, cfg.PublishQueue); err != nil {
		conn.Close()
		return nil, fmt.Errorf("failed to declare queue: %w", err)
	}

	return &Publisher{logger: logger, conn: conn, ch: ch, config: cfg}, nil
}

// Dispatch publishes the JSON encoding of event as a persistent message
func (p *Publisher) Dispatch(ctx context.Context, event domain.IntegrationEvent) error {
	body, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("could not marshal %s event: %w", event.Type(), err)
	}

	// amqp channels are not safe for concurrent publishing
	p.mu.Lock()
	defer p.mu.Unlock()

	err = p.ch.PublishWithContext(ctx,
		"",
		p.config.PublishQueue,
		false,
		false,
		amqp.Publishing{
			ContentType:  "application/json",
			DeliveryMode: amqp.Persistent,
			Type:         string(event.Type()),
			Body:         body,
		})
	if err != nil {
		return fmt.Errorf("could not publish %s event: %w", event.Type(), err)
	}

	p.logger.Debug("event published", "event_type", event.Type(), "queue", p.config.PublishQueue)
	return nil
}

// Close closes the channel and the connection
func (p *Publisher) Close() error {
	if p.conn != nil && !p.conn.IsClosed() {
		return p.conn.Close()
	}
	return nil
}
