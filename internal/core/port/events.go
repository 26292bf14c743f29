package port

import (
	"context"

	"codeflix-catalog/internal/core/domain"
)

// EventConsumer is an interface to define a broker consumer (nats, rabbitmq, ...)
type EventConsumer interface {
	Subscribe(ctx context.Context, handler MessageService) error
	Close() error
}

// MessageService is an interface to define message handling
type MessageService interface {
	HandleMessage(ctx context.Context, data []byte) error
}

// EventDispatcher publishes integration events to the broker
type EventDispatcher interface {
	Dispatch(ctx context.Context, event domain.IntegrationEvent) error
	Close() error
}

// EventHandler reacts to one integration event
type EventHandler interface {
	Handle(ctx context.Context, event domain.IntegrationEvent) error
}

// MessageBus routes integration events to their registered handlers
type MessageBus interface {
	Handle(ctx context.Context, events []domain.IntegrationEvent) error
}
