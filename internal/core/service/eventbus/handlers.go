package eventbus

import (
	"context"
	"log/slog"

	"codeflix-catalog/internal/core/domain"
	"codeflix-catalog/internal/core/port"
)

type publishMediaUploadedHandler struct {
	dispatcher port.EventDispatcher
	logger     *slog.Logger
}

// NewPublishMediaUploadedHandler forwards MediaUploaded events to the encoder queue
func NewPublishMediaUploadedHandler(dispatcher port.EventDispatcher, logger *slog.Logger) port.EventHandler {
	return &publishMediaUploadedHandler{dispatcher: dispatcher, logger: logger}
}

func (h *publishMediaUploadedHandler) Handle(ctx context.Context, event domain.IntegrationEvent) error {
	if err := h.dispatcher.Dispatch(ctx, event); err != nil {
		return err
	}

	if uploaded, ok := event.(domain.MediaUploaded); ok {
		h.logger.Info("media uploaded event dispatched", "resource_id", uploaded.ResourceID, "file_path", uploaded.FilePath)
	}
	return nil
}
