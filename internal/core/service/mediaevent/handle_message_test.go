package mediaevent_test

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"log/slog"
	"testing"

	"codeflix-catalog/internal/core/domain"
	"codeflix-catalog/internal/core/port"
	"codeflix-catalog/internal/core/service/mediaevent"
	"codeflix-catalog/internal/core/service/video"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

func newService(videoService port.VideoService) port.MessageService {
	return mediaevent.NewMediaEventService(videoService, slog.New(slog.NewTextHandler(io.Discard, nil)))
}

func TestHandleMessage_DecodesCompletion(t *testing.T) {
	// Arrange
	ctx := context.Background()
	id := uuid.New()
	mockVideoService := video.NewMockVideoService()
	mockVideoService.On("ProcessMedia", ctx, port.ProcessMediaInput{
		VideoID:         id,
		MediaType:       domain.MediaTypeVideo,
		EncodedLocation: "/e",
		Status:          domain.MediaStatusCompleted,
	}).Return(nil)
	payload := fmt.Sprintf(`{"error":"","video":{"resource_id":"%s.VIDEO","encoded_video_folder":"/e"},"status":"COMPLETED"}`, id)

	// Act
	err := newService(mockVideoService).HandleMessage(ctx, []byte(payload))

	// Assert
	assert.NoError(t, err)
	mockVideoService.AssertExpectations(t)
}

func TestHandleMessage_TrailerCompletion(t *testing.T) {
	// Arrange
	ctx := context.Background()
	id := uuid.New()
	mockVideoService := video.NewMockVideoService()
	mockVideoService.On("ProcessMedia", ctx, port.ProcessMediaInput{
		VideoID:         id,
		MediaType:       domain.MediaTypeTrailer,
		EncodedLocation: "/t",
		Status:          domain.MediaStatusError,
	}).Return(nil)
	payload := fmt.Sprintf(`{"error":"","video":{"resource_id":"%s.TRAILER","encoded_video_folder":"/t"},"status":"ERROR"}`, id)

	// Act
	err := newService(mockVideoService).HandleMessage(ctx, []byte(payload))

	// Assert
	assert.NoError(t, err)
	mockVideoService.AssertExpectations(t)
}

func TestHandleMessage_DropsWithoutProcessing(t *testing.T) {
	id := uuid.New()

	tests := []struct {
		name    string
		payload string
	}{
		{
			name:    "encoder error report",
			payload: fmt.Sprintf(`{"error":"ffmpeg exited","message":{"resource_id":"%s.VIDEO","file_path":"videos/x.mp4"}}`, id),
		},
		{
			name:    "malformed json",
			payload: `{"video":`,
		},
		{
			name:    "missing video",
			payload: `{"error":"","status":"COMPLETED"}`,
		},
		{
			name:    "resource id without media type",
			payload: fmt.Sprintf(`{"error":"","video":{"resource_id":"%s","encoded_video_folder":"/e"},"status":"COMPLETED"}`, id),
		},
		{
			name:    "unknown media type",
			payload: fmt.Sprintf(`{"error":"","video":{"resource_id":"%s.AUDIO","encoded_video_folder":"/e"},"status":"COMPLETED"}`, id),
		},
		{
			name:    "unknown status",
			payload: fmt.Sprintf(`{"error":"","video":{"resource_id":"%s.VIDEO","encoded_video_folder":"/e"},"status":"DONE"}`, id),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			// Arrange
			mockVideoService := video.NewMockVideoService()

			// Act
			err := newService(mockVideoService).HandleMessage(context.Background(), []byte(tt.payload))

			// Assert
			assert.NoError(t, err)
			mockVideoService.AssertNotCalled(t, "ProcessMedia", mock.Anything, mock.Anything)
		})
	}
}

func TestHandleMessage_SwallowsUseCaseFailure(t *testing.T) {
	// Arrange
	ctx := context.Background()
	id := uuid.New()
	mockVideoService := video.NewMockVideoService()
	mockVideoService.On("ProcessMedia", ctx, mock.Anything).Return(fmt.Errorf("%w: %s", domain.ErrVideoNotFound, id))
	payload := fmt.Sprintf(`{"error":"","video":{"resource_id":"%s.VIDEO","encoded_video_folder":"/e"},"status":"COMPLETED"}`, id)

	// Act
	err := newService(mockVideoService).HandleMessage(ctx, []byte(payload))

	// Assert
	assert.NoError(t, err)
	mockVideoService.AssertNumberOfCalls(t, "ProcessMedia", 1)
}

func TestHandleMessage_EncoderErrorLogsVideoID(t *testing.T) {
	tests := []struct {
		name     string
		message  string
		expected string
	}{
		{name: "parsable resource id", message: `{"resource_id":"%s.VIDEO"}`, expected: "video_id=%s"},
		{name: "unparsable resource id", message: `{"resource_id":"%s"}`, expected: "resource_id=%s"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			// Arrange
			id := uuid.New()
			var logs bytes.Buffer
			mockVideoService := video.NewMockVideoService()
			service := mediaevent.NewMediaEventService(mockVideoService, slog.New(slog.NewTextHandler(&logs, nil)))
			payload := fmt.Sprintf(`{"error":"ffmpeg exited","message":`+tt.message+`}`, id)

			// Act
			err := service.HandleMessage(context.Background(), []byte(payload))

			// Assert
			assert.NoError(t, err)
			assert.Contains(t, logs.String(), fmt.Sprintf(tt.expected, id))
			assert.Contains(t, logs.String(), `encoder_error="ffmpeg exited"`)
			mockVideoService.AssertNotCalled(t, "ProcessMedia", mock.Anything, mock.Anything)
		})
	}
}
