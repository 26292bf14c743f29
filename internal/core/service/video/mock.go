package video

import (
	"context"

	"codeflix-catalog/internal/core/domain"
	"codeflix-catalog/internal/core/port"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
)

// MockVideoService is a mock implementation of VideoService
type MockVideoService struct {
	mock.Mock
}

// NewMockVideoService creates a new MockVideoService
func NewMockVideoService() *MockVideoService {
	return &MockVideoService{}
}

func (m *MockVideoService) CreateVideoWithoutMedia(ctx context.Context, input port.CreateVideoInput) (*domain.Video, error) {
	args := m.Called(ctx, input)
	return args.Get(0).(*domain.Video), args.Error(1)
}

func (m *MockVideoService) GetVideo(ctx context.Context, id uuid.UUID) (*domain.Video, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(*domain.Video), args.Error(1)
}

func (m *MockVideoService) UploadMedia(ctx context.Context, input port.UploadMediaInput) error {
	args := m.Called(ctx, input)
	return args.Error(0)
}

func (m *MockVideoService) UploadImage(ctx context.Context, input port.UploadImageInput) error {
	args := m.Called(ctx, input)
	return args.Error(0)
}

func (m *MockVideoService) ProcessMedia(ctx context.Context, input port.ProcessMediaInput) error {
	args := m.Called(ctx, input)
	return args.Error(0)
}
