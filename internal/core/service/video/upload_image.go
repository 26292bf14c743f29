package video

import (
	"context"
	"fmt"

	"codeflix-catalog/internal/core/domain"
	"codeflix-catalog/internal/core/port"
)

func (s *videoService) UploadImage(ctx context.Context, input port.UploadImageInput) error {
	if _, err := domain.ParseImageSlot(string(input.Slot)); err != nil {
		return err
	}

	if int64(len(input.Content)) > s.uploadCfg.ImageMaxSize {
		return domain.ErrFileSizeTooBig
	}

	mimeType, err := validateMediaFile(input.FileName, input.ContentType, AllowedImageMimeTypes)
	if err != nil {
		return fmt.Errorf("%w: %w", domain.ErrInvalidFileType, err)
	}

	fileName := sanitizeFileName(input.FileName)

	var storedKey, orphanKey string

	txErr := s.uow.Execute(ctx, func(uow port.UnitOfWork) error {
		video, err := uow.VideoRepo().GetByIDForUpdate(ctx, input.VideoID)
		if err != nil {
			return err
		}

		key := imageKey(video, input.Slot, fileName)
		if err := s.storage.Store(ctx, key, input.Content, mimeType); err != nil {
			return fmt.Errorf("could not store image: %w", err)
		}
		storedKey = key
		if key != committedImageLocation(video, input.Slot) {
			orphanKey = key
		}

		image := domain.ImageMedia{
			Name:     fileName,
			Checksum: checksum(input.Content),
			Location: key,
		}
		if err := video.UpdateImage(input.Slot, image); err != nil {
			return err
		}

		return uow.VideoRepo().Update(ctx, video)
	})

	if txErr != nil {
		if orphanKey != "" {
			s.compensate(ctx, orphanKey)
		} else if storedKey != "" {
			s.logger.Warn("upload rolled back after overwriting committed image", "video_id", input.VideoID, "key", storedKey)
		}
		return txErr
	}

	s.logger.Info("image uploaded", "video_id", input.VideoID, "slot", input.Slot, "key", storedKey)
	return nil
}
