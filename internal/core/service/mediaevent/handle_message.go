package mediaevent

import (
	"context"
	"encoding/json"

	"codeflix-catalog/internal/core/domain"
	"codeflix-catalog/internal/core/port"
)

// HandleMessage never returns an error. Bad or failed notifications are logged
// and dropped so the broker acknowledges them.
func (m *mediaEventService) HandleMessage(ctx context.Context, data []byte) error {
	var notification domain.CompletionNotification
	if err := json.Unmarshal(data, &notification); err != nil {
		m.logger.Error("could not unmarshal completion notification", "error", err)
		return nil
	}

	if notification.Error != "" {
		resourceID := ""
		if notification.Message != nil {
			resourceID = notification.Message.ResourceID
		}
		if videoID, _, err := domain.ParseResourceID(resourceID); err == nil {
			m.logger.Error("encoder reported a failure", "video_id", videoID, "encoder_error", notification.Error)
		} else {
			m.logger.Error("encoder reported a failure", "resource_id", resourceID, "encoder_error", notification.Error)
		}
		return nil
	}

	if notification.Video == nil {
		m.logger.Error("completion notification has no video")
		return nil
	}

	videoID, mediaType, err := domain.ParseResourceID(notification.Video.ResourceID)
	if err != nil {
		m.logger.Error("could not parse resource id", "resource_id", notification.Video.ResourceID, "error", err)
		return nil
	}

	status, err := domain.ParseMediaStatus(notification.Status)
	if err != nil {
		m.logger.Error("could not parse media status", "video_id", videoID, "error", err)
		return nil
	}

	m.logger.Info("handling completion notification", "video_id", videoID, "media_type", mediaType, "status", status)

	err = m.videoService.ProcessMedia(ctx, port.ProcessMediaInput{
		VideoID:         videoID,
		MediaType:       mediaType,
		EncodedLocation: notification.Video.EncodedVideoFolder,
		Status:          status,
	})
	if err != nil {
		m.logger.Error("could not process media", "video_id", videoID, "media_type", mediaType, "error", err)
	}
	return nil
}
