package eventbroker

import (
	"context"
	"fmt"
	"log/slog"

	"codeflix-catalog/internal/adapters/eventbroker/nats"
	"codeflix-catalog/internal/adapters/eventbroker/rabbitmq"
	"codeflix-catalog/internal/config"
	"codeflix-catalog/internal/core/port"
)

// NewDispatcher builds the publisher of integration events selected by BROKER_KIND
func NewDispatcher(ctx context.Context, cfg *config.Config, logger *slog.Logger) (port.EventDispatcher, error) {
	switch cfg.Broker.Kind {
	case config.BrokerKindNATS:
		if err := nats.EnsureStream(ctx, cfg.NATS, logger); err != nil {
			return nil, err
		}
		return nats.NewNATSPublisher(cfg.NATS, logger)
	case config.BrokerKindRabbitMQ:
		return rabbitmq.NewRabbitMQPublisher(cfg.RabbitMQ, logger)
	default:
		return nil, fmt.Errorf("unknown broker kind %q", cfg.Broker.Kind)
	}
}

// NewConsumer builds the consumer of encoder notifications selected by BROKER_KIND
func NewConsumer(ctx context.Context, cfg *config.Config, logger *slog.Logger) (port.EventConsumer, error) {
	switch cfg.Broker.Kind {
	case config.BrokerKindNATS:
		if err := nats.EnsureStream(ctx, cfg.NATS, logger); err != nil {
			return nil, err
		}
		return nats.NewNATSConsumer(cfg.NATS, logger)
	case config.BrokerKindRabbitMQ:
		return rabbitmq.NewRabbitMQConsumer(cfg.RabbitMQ, logger)
	default:
		return nil, fmt.Errorf("unknown broker kind %q", cfg.Broker.Kind)
	}
}
