package port

import (
	"context"

	"codeflix-catalog/internal/core/domain"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// VideoRepository is an interface to define video repository interactions
type VideoRepository interface {
	Save(ctx context.Context, video *domain.Video) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Video, error)
	// GetByIDForUpdate loads the video and holds it until the surrounding unit of work ends
	GetByIDForUpdate(ctx context.Context, id uuid.UUID) (*domain.Video, error)
	Update(ctx context.Context, video *domain.Video) error
}

// CatalogRepository is the narrow view of categories, genres and cast members the video needs
type CatalogRepository interface {
	FindExistingIDs(ctx context.Context, ids []uuid.UUID) (domain.IDSet, error)
}

// CreateVideoInput holds the fields of a video created before any media is attached
type CreateVideoInput struct {
	Title       string
	Description string
	LaunchYear  int
	Duration    decimal.Decimal
	Rating      domain.Rating
	Categories  []uuid.UUID
	Genres      []uuid.UUID
	CastMembers []uuid.UUID
}

// UploadMediaInput holds an audio/video upload. A zero MediaType means VIDEO.
type UploadMediaInput struct {
	VideoID     uuid.UUID
	FileName    string
	Content     []byte
	ContentType string
	MediaType   domain.MediaType
}

// UploadImageInput holds an image upload
type UploadImageInput struct {
	VideoID     uuid.UUID
	FileName    string
	Content     []byte
	ContentType string
	Slot        domain.ImageSlot
}

// ProcessMediaInput holds an encoding outcome reported by the encoder
type ProcessMediaInput struct {
	VideoID         uuid.UUID
	MediaType       domain.MediaType
	EncodedLocation string
	Status          domain.MediaStatus
}

// VideoService is an interface to define the video use cases
type VideoService interface {
	CreateVideoWithoutMedia(ctx context.Context, input CreateVideoInput) (*domain.Video, error)
	GetVideo(ctx context.Context, id uuid.UUID) (*domain.Video, error)
	UploadMedia(ctx context.Context, input UploadMediaInput) error
	UploadImage(ctx context.Context, input UploadImageInput) error
	ProcessMedia(ctx context.Context, input ProcessMediaInput) error
}
