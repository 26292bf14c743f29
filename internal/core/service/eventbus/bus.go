package eventbus

import (
	"context"
	"fmt"
	"log/slog"

	"codeflix-catalog/internal/core/domain"
	"codeflix-catalog/internal/core/port"
)

// Bus dispatches integration events to the handlers registered for their type
type Bus struct {
	handlers map[domain.EventType][]port.EventHandler
	logger   *slog.Logger
}

// NewBus creates an empty bus. Handlers are registered at startup.
func NewBus(logger *slog.Logger) *Bus {
	return &Bus{
		handlers: make(map[domain.EventType][]port.EventHandler),
		logger:   logger,
	}
}

// Register appends a handler for eventType. Handlers run in registration order.
func (b *Bus) Register(eventType domain.EventType, handler port.EventHandler) {
	b.handlers[eventType] = append(b.handlers[eventType], handler)
}

// Handle runs every event through its handlers and stops at the first failure
func (b *Bus) Handle(ctx context.Context, events []domain.IntegrationEvent) error {
	for _, event := range events {
		handlers, ok := b.handlers[event.Type()]
		if !ok {
			b.logger.Warn("no handler registered for event", "event_type", event.Type())
			continue
		}

		for _, handler := range handlers {
			if err := handler.Handle(ctx, event); err != nil {
				return fmt.Errorf("could not handle %s event: %w", event.Type(), err)
			}
		}
	}
	return nil
}
