package video

import (
	"context"

	"codeflix-catalog/internal/core/domain"

	"github.com/google/uuid"
)

func (s *videoService) GetVideo(ctx context.Context, id uuid.UUID) (*domain.Video, error) {
	return s.uow.VideoRepo().GetByID(ctx, id)
}
