package eventbroker

import (
	"context"

	"codeflix-catalog/internal/core/domain"

	"github.com/stretchr/testify/mock"
)

type MockDispatcher struct {
	mock.Mock
}

func NewMockDispatcher() *MockDispatcher {
	return &MockDispatcher{}
}

func (m *MockDispatcher) Dispatch(ctx context.Context, event domain.IntegrationEvent) error {
	args := m.Called(ctx, event)
	return args.Error(0)
}

func (m *MockDispatcher) Close() error {
	args := m.Called()
	return args.Error(0)
}
