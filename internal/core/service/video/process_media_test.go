package video_test

import (
	"context"
	"testing"

	"codeflix-catalog/internal/adapters/repository"
	"codeflix-catalog/internal/adapters/storage"
	"codeflix-catalog/internal/core/domain"
	"codeflix-catalog/internal/core/port"
	"codeflix-catalog/internal/core/service/eventbus"
	"codeflix-catalog/internal/core/service/video"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func newUploadedVideo(t *testing.T) *domain.Video {
	t.Helper()
	v := newTestVideo(t)
	require.NoError(t, v.UpdateVideo(domain.NewPendingAudioVideoMedia("x.mp4", "sum", "videos/"+v.ID.String()+"/x.mp4", domain.MediaTypeVideo)))
	require.NoError(t, v.UpdateTrailer(domain.NewPendingAudioVideoMedia("t.mp4", "tsum", "trailers/"+v.ID.String()+"/t.mp4", domain.MediaTypeTrailer)))
	v.PullEvents()
	return v
}

func TestProcessMedia_CompletedVideoPublishes(t *testing.T) {
	// Arrange
	ctx := context.Background()
	mockUow := repository.NewMockUnitOfWork()
	stored := newUploadedVideo(t)

	mockUow.On("Execute", ctx, mock.Anything).Return(nil)
	mockUow.GetVideoRepoMock().On("GetByIDForUpdate", ctx, stored.ID).Return(stored, nil)
	mockUow.GetVideoRepoMock().On("Update", ctx, stored).Return(nil)

	service := video.NewVideoService(mockUow, storage.NewMockStorage(), eventbus.NewMockMessageBus(), testUploadCfg, discardLogger())

	// Act
	err := service.ProcessMedia(ctx, port.ProcessMediaInput{
		VideoID:         stored.ID,
		MediaType:       domain.MediaTypeVideo,
		EncodedLocation: "/enc/x.mp4",
		Status:          domain.MediaStatusCompleted,
	})

	// Assert
	require.NoError(t, err)
	assert.Equal(t, domain.MediaStatusCompleted, stored.Video.Status)
	assert.Equal(t, "/enc/x.mp4", stored.Video.EncodedLocation)
	assert.True(t, stored.Published)
	mockUow.GetVideoRepoMock().AssertCalled(t, "Update", ctx, stored)
}

func TestProcessMedia_TrailerIsPersisted(t *testing.T) {
	// Arrange
	ctx := context.Background()
	mockUow := repository.NewMockUnitOfWork()
	stored := newUploadedVideo(t)

	mockUow.On("Execute", ctx, mock.Anything).Return(nil)
	mockUow.GetVideoRepoMock().On("GetByIDForUpdate", ctx, stored.ID).Return(stored, nil)
	mockUow.GetVideoRepoMock().On("Update", ctx, stored).Return(nil)

	service := video.NewVideoService(mockUow, storage.NewMockStorage(), eventbus.NewMockMessageBus(), testUploadCfg, discardLogger())

	// Act
	err := service.ProcessMedia(ctx, port.ProcessMediaInput{
		VideoID:         stored.ID,
		MediaType:       domain.MediaTypeTrailer,
		EncodedLocation: "/enc/t.mp4",
		Status:          domain.MediaStatusCompleted,
	})

	// Assert
	require.NoError(t, err)
	assert.Equal(t, domain.MediaStatusCompleted, stored.Trailer.Status)
	assert.Equal(t, domain.MediaStatusPending, stored.Video.Status)
	assert.False(t, stored.Published)
	mockUow.GetVideoRepoMock().AssertNumberOfCalls(t, "Update", 1)
}

func TestProcessMedia_ErrorStatus(t *testing.T) {
	// Arrange
	ctx := context.Background()
	mockUow := repository.NewMockUnitOfWork()
	stored := newUploadedVideo(t)

	mockUow.On("Execute", ctx, mock.Anything).Return(nil)
	mockUow.GetVideoRepoMock().On("GetByIDForUpdate", ctx, stored.ID).Return(stored, nil)
	mockUow.GetVideoRepoMock().On("Update", ctx, stored).Return(nil)

	service := video.NewVideoService(mockUow, storage.NewMockStorage(), eventbus.NewMockMessageBus(), testUploadCfg, discardLogger())

	// Act
	err := service.ProcessMedia(ctx, port.ProcessMediaInput{
		VideoID:         stored.ID,
		MediaType:       domain.MediaTypeVideo,
		EncodedLocation: "/enc/x.mp4",
		Status:          domain.MediaStatusError,
	})

	// Assert
	require.NoError(t, err)
	assert.Equal(t, domain.MediaStatusError, stored.Video.Status)
	assert.Empty(t, stored.Video.EncodedLocation)
	assert.False(t, stored.Published)
}

func TestProcessMedia_VideoNotFound(t *testing.T) {
	// Arrange
	ctx := context.Background()
	mockUow := repository.NewMockUnitOfWork()
	missing := uuid.New()

	mockUow.On("Execute", ctx, mock.Anything).Return(nil)
	mockUow.GetVideoRepoMock().On("GetByIDForUpdate", ctx, missing).Return((*domain.Video)(nil), domain.ErrVideoNotFound)

	service := video.NewVideoService(mockUow, storage.NewMockStorage(), eventbus.NewMockMessageBus(), testUploadCfg, discardLogger())

	// Act
	err := service.ProcessMedia(ctx, port.ProcessMediaInput{
		VideoID:         missing,
		MediaType:       domain.MediaTypeVideo,
		EncodedLocation: "/enc/x.mp4",
		Status:          domain.MediaStatusCompleted,
	})

	// Assert
	assert.ErrorIs(t, err, domain.ErrVideoNotFound)
	mockUow.GetVideoRepoMock().AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
}

func TestProcessMedia_MissingMediaSlot(t *testing.T) {
	// Arrange
	ctx := context.Background()
	mockUow := repository.NewMockUnitOfWork()
	stored := newTestVideo(t)

	mockUow.On("Execute", ctx, mock.Anything).Return(nil)
	mockUow.GetVideoRepoMock().On("GetByIDForUpdate", ctx, stored.ID).Return(stored, nil)

	service := video.NewVideoService(mockUow, storage.NewMockStorage(), eventbus.NewMockMessageBus(), testUploadCfg, discardLogger())

	// Act
	err := service.ProcessMedia(ctx, port.ProcessMediaInput{
		VideoID:   stored.ID,
		MediaType: domain.MediaTypeVideo,
		Status:    domain.MediaStatusCompleted,
	})

	// Assert
	assert.ErrorIs(t, err, domain.ErrMediaNotFound)
	mockUow.GetVideoRepoMock().AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
}

func TestUploadThenProcess(t *testing.T) {
	// Arrange
	ctx := context.Background()
	mockUow := repository.NewMockUnitOfWork()
	mockStorage := storage.NewMockStorage()
	mockBus := eventbus.NewMockMessageBus()
	stored := newTestVideo(t)

	mockUow.On("Execute", ctx, mock.Anything).Return(nil)
	mockUow.GetVideoRepoMock().On("GetByIDForUpdate", ctx, stored.ID).Return(stored, nil)
	mockUow.GetVideoRepoMock().On("Update", ctx, stored).Return(nil)
	mockStorage.On("Store", ctx, mock.Anything, mock.Anything, mock.Anything).Return(nil)
	mockBus.On("Handle", ctx, mock.Anything).Return(nil)

	service := video.NewVideoService(mockUow, mockStorage, mockBus, testUploadCfg, discardLogger())

	// Act
	require.NoError(t, service.UploadMedia(ctx, port.UploadMediaInput{VideoID: stored.ID, FileName: "x.mp4", Content: []byte("hello")}))
	err := service.ProcessMedia(ctx, port.ProcessMediaInput{
		VideoID:         stored.ID,
		MediaType:       domain.MediaTypeVideo,
		EncodedLocation: "/enc/x.mp4",
		Status:          domain.MediaStatusCompleted,
	})

	// Assert
	require.NoError(t, err)
	assert.Equal(t, domain.MediaStatusCompleted, stored.Video.Status)
	assert.Equal(t, "/enc/x.mp4", stored.Video.EncodedLocation)
	assert.Equal(t, "x.mp4", stored.Video.Name)
	assert.True(t, stored.Published)
}
