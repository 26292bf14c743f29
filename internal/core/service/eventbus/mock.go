package eventbus

import (
	"context"

	"codeflix-catalog/internal/core/domain"

	"github.com/stretchr/testify/mock"
)

// MockMessageBus is a mock implementation of port.MessageBus
type MockMessageBus struct {
	mock.Mock
}

// NewMockMessageBus creates a new MockMessageBus
func NewMockMessageBus() *MockMessageBus {
	return &MockMessageBus{}
}

func (m *MockMessageBus) Handle(ctx context.Context, events []domain.IntegrationEvent) error {
	args := m.Called(ctx, events)
	return args.Error(0)
}

// MockEventHandler is a mock implementation of port.EventHandler
type MockEventHandler struct {
	mock.Mock
}

func (m *MockEventHandler) Handle(ctx context.Context, event domain.IntegrationEvent) error {
	args := m.Called(ctx, event)
	return args.Error(0)
}
