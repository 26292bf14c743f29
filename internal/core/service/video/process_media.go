package video

import (
	"context"

	"codeflix-catalog/internal/core/port"
)

func (s *videoService) ProcessMedia(ctx context.Context, input port.ProcessMediaInput) error {
	txErr := s.uow.Execute(ctx, func(uow port.UnitOfWork) error {
		video, err := uow.VideoRepo().GetByIDForUpdate(ctx, input.VideoID)
		if err != nil {
			return err
		}

		if err := video.Process(input.Status, input.EncodedLocation, input.MediaType); err != nil {
			return err
		}

		return uow.VideoRepo().Update(ctx, video)
	})
	if txErr != nil {
		return txErr
	}

	s.logger.Info("media processed", "video_id", input.VideoID, "media_type", input.MediaType, "status", input.Status)
	return nil
}
