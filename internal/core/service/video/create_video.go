package video

import (
	"context"
	"fmt"
	"strings"

	"codeflix-catalog/internal/core/domain"
	"codeflix-catalog/internal/core/port"

	"github.com/google/uuid"
)

func (s *videoService) CreateVideoWithoutMedia(ctx context.Context, input port.CreateVideoInput) (*domain.Video, error) {
	var created *domain.Video

	txErr := s.uow.Execute(ctx, func(uow port.UnitOfWork) error {
		if err := s.validateRelatedEntities(ctx, uow, input); err != nil {
			return err
		}

		video, err := domain.NewVideo(domain.VideoParams{
			Title:       input.Title,
			Description: input.Description,
			LaunchYear:  input.LaunchYear,
			Duration:    input.Duration,
			Published:   false,
			Rating:      input.Rating,
			Categories:  input.Categories,
			Genres:      input.Genres,
			CastMembers: input.CastMembers,
		})
		if err != nil {
			return err
		}

		if err := uow.VideoRepo().Save(ctx, video); err != nil {
			return err
		}

		created = video
		return nil
	})
	if txErr != nil {
		return nil, fmt.Errorf("could not create video: %w", txErr)
	}

	s.logger.Info("video created", "video_id", created.ID)
	return created, nil
}

func (s *videoService) validateRelatedEntities(ctx context.Context, uow port.UnitOfWork, input port.CreateVideoInput) error {
	var n domain.Notification

	checks := []struct {
		label string
		repo  port.CatalogRepository
		ids   []uuid.UUID
	}{
		{label: "Categories", repo: uow.CategoryRepo(), ids: input.Categories},
		{label: "Genres", repo: uow.GenreRepo(), ids: input.Genres},
		{label: "Cast members", repo: uow.CastMemberRepo(), ids: input.CastMembers},
	}

	for _, check := range checks {
		if len(check.ids) == 0 {
			continue
		}

		found, err := check.repo.FindExistingIDs(ctx, check.ids)
		if err != nil {
			return err
		}

		var missing []string
		for _, id := range domain.NewIDSet(check.ids...).Slice() {
			if !found.Has(id) {
				missing = append(missing, id.String())
			}
		}
		if len(missing) > 0 {
			n.Add(fmt.Sprintf("%s with provided IDs not found: %s", check.label, strings.Join(missing, ", ")))
		}
	}

	if err := n.Err(); err != nil {
		return fmt.Errorf("%w: %s", domain.ErrRelatedEntitiesNotFound, err.Error())
	}
	return nil
}
