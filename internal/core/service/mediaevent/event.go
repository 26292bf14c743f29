package mediaevent

import (
	"log/slog"

	"codeflix-catalog/internal/core/port"
)

type mediaEventService struct {
	videoService port.VideoService
	logger       *slog.Logger
}

// NewMediaEventService creates a handler for encoder completion notifications
func NewMediaEventService(videoService port.VideoService, logger *slog.Logger) port.MessageService {
	return &mediaEventService{
		videoService: videoService,
		logger:       logger,
	}
}
