package rabbitmq

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"codeflix-catalog/internal/config"
	"codeflix-catalog/internal/core/port"

	amqp "github.com/rabbitmq/amqp091-go"
)

// Consumer reads completion notifications from a durable queue, one at a time
type Consumer struct {
	logger *slog.Logger
	conn   *amqp.Connection
	ch     *amqp.Channel
	config config.RabbitMQConfig
	tag    string
	wg     sync.WaitGroup
}

// NewRabbitMQConsumer creates a new consumer
func NewRabbitMQConsumer(cfg config.RabbitMQConfig, logger *slog.Logger) (*Consumer, error) {
	conn, err := dial(cfg.URL, logger)
	if err != nil {
		return nil, err
	}

	ch, err := conn.Channel()
	if err != nil {
		conn.Close()
		return nil, fmt.Errorf("failed to open channel: %w", err)
	}

	if err := ch.Qos(1, 0, false); err != nil {
		conn.Close()
		return nil, fmt.Errorf("failed to set prefetch: %w", err)
	}

	return &Consumer{logger: logger, conn: conn, ch: ch, config: cfg}, nil
}

// Subscribe declares the queue and handles deliveries with manual acks
func (c *Consumer) Subscribe(ctx context.Context, handler port.MessageService) error {
	q, err := declareQueue(c.ch, c.config.ConsumeQueue)
	if err != nil {
		return fmt.Errorf("failed to declare queue: %w", err)
	}

	deliveries, err := c.ch.ConsumeWithContext(ctx,
		q.Name,
		c.config.ConsumerTag,
		false, // auto-ack
		false, // exclusive
		false, // no-local
		false, // no-wait
		nil,
	)
	if err != nil {
		return fmt.Errorf("failed to register consumer: %w", err)
	}
	c.tag = c.config.ConsumerTag

	c.wg.Add(1)
	go func() {
		defer c.wg.Done()
		c.logger.Info("RabbitMQ subscription started", "queue", q.Name)
		for {
			select {
			case <-ctx.Done():
				c.logger.Info("RabbitMQ subscription stopped")
				return
			case d, ok := <-deliveries:
				if !ok {
					c.logger.Warn("RabbitMQ delivery channel closed")
					return
				}

				if handleErr := handler.HandleMessage(ctx, d.Body); handleErr != nil {
					if err := d.Nack(false, true); err != nil {
						c.logger.Error("failed to nack message", "error", err)
					}
					c.logger.Warn("failed to handle message", "error", handleErr)
					continue
				}
				if err := d.Ack(false); err != nil {
					c.logger.Error("failed to ack message", "error", err)
				}
			}
		}
	}()
	return nil
}

// Close cancels the consumer, waits for the in-flight message and closes the connection
func (c *Consumer) Close() error {
	if c.tag != "" {
		if err := c.ch.Cancel(c.tag, false); err != nil {
			c.logger.Warn("failed to cancel consumer", "error", err)
		}
	}

	c.wg.Wait()

	if c.conn != nil && !c.conn.IsClosed() {
		return c.conn.Close()
	}
	return nil
}
