package video

import (
	"context"
	"fmt"

	"codeflix-catalog/internal/core/domain"
	"codeflix-catalog/internal/core/port"
)

func (s *videoService) UploadMedia(ctx context.Context, input port.UploadMediaInput) error {
	mediaType := input.MediaType
	if mediaType == "" {
		mediaType = domain.MediaTypeVideo
	}
	if _, err := domain.ParseMediaType(string(mediaType)); err != nil {
		return err
	}

	if int64(len(input.Content)) > s.uploadCfg.VideoMaxSize {
		return domain.ErrFileSizeTooBig
	}

	mimeType, err := validateMediaFile(input.FileName, input.ContentType, AllowedVideoMimeTypes)
	if err != nil {
		return fmt.Errorf("%w: %w", domain.ErrInvalidFileType, err)
	}

	fileName := sanitizeFileName(input.FileName)

	var storedKey, orphanKey string
	var events []domain.MediaUpdated

	txErr := s.uow.Execute(ctx, func(uow port.UnitOfWork) error {
		video, err := uow.VideoRepo().GetByIDForUpdate(ctx, input.VideoID)
		if err != nil {
			return err
		}

		key := mediaKey(video, mediaType, fileName)
		if err := s.storage.Store(ctx, key, input.Content, mimeType); err != nil {
			return fmt.Errorf("could not store media: %w", err)
		}
		storedKey = key
		// an overwritten key is still referenced by the committed row and must survive a rollback
		if key != committedMediaLocation(video, mediaType) {
			orphanKey = key
		}

		media := domain.NewPendingAudioVideoMedia(fileName, checksum(input.Content), key, mediaType)
		if mediaType == domain.MediaTypeTrailer {
			err = video.UpdateTrailer(media)
		} else {
			err = video.UpdateVideo(media)
		}
		if err != nil {
			return err
		}

		if err := uow.VideoRepo().Update(ctx, video); err != nil {
			return err
		}

		events = video.PullEvents()
		return nil
	})

	if txErr != nil {
		if orphanKey != "" {
			s.compensate(ctx, orphanKey)
		} else if storedKey != "" {
			s.logger.Warn("upload rolled back after overwriting committed media", "video_id", input.VideoID, "key", storedKey)
		}
		return txErr
	}

	integrationEvents := make([]domain.IntegrationEvent, 0, len(events))
	for _, event := range events {
		integrationEvents = append(integrationEvents, domain.NewMediaUploaded(event))
	}

	if err := s.bus.Handle(ctx, integrationEvents); err != nil {
		return fmt.Errorf("could not dispatch media events for video %s: %w", input.VideoID, err)
	}

	s.logger.Info("media uploaded", "video_id", input.VideoID, "media_type", mediaType, "key", storedKey)
	return nil
}

// compensate removes an object whose aggregate update never committed
func (s *videoService) compensate(ctx context.Context, key string) {
	if err := s.storage.DeleteObject(ctx, key); err != nil {
		s.logger.Error("could not delete orphaned media", "key", key, "error", err)
	}
}
