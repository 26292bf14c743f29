package domain

import "fmt"

// MediaStatus represents the processing status of an audio/video media
type MediaStatus string

const (
	MediaStatusPending    MediaStatus = "PENDING"
	MediaStatusProcessing MediaStatus = "PROCESSING"
	MediaStatusCompleted  MediaStatus = "COMPLETED"
	MediaStatusError      MediaStatus = "ERROR"
)

// ParseMediaStatus parses a status against the closed set
func ParseMediaStatus(s string) (MediaStatus, error) {
	switch status := MediaStatus(s); status {
	case MediaStatusPending, MediaStatusProcessing, MediaStatusCompleted, MediaStatusError:
		return status, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrInvalidMediaStatus, s)
	}
}

// MediaType identifies which aggregate slot an audio/video media belongs to
type MediaType string

const (
	MediaTypeVideo   MediaType = "VIDEO"
	MediaTypeTrailer MediaType = "TRAILER"
)

// ParseMediaType parses a media type against the closed set
func ParseMediaType(s string) (MediaType, error) {
	switch mediaType := MediaType(s); mediaType {
	case MediaTypeVideo, MediaTypeTrailer:
		return mediaType, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrInvalidMediaType, s)
	}
}

// AudioVideoMedia is an immutable descriptor of an uploaded audio/video file
type AudioVideoMedia struct {
	Name            string
	Checksum        string
	RawLocation     string
	EncodedLocation string
	Status          MediaStatus
	MediaType       MediaType
}

// NewPendingAudioVideoMedia builds the descriptor attached right after upload
func NewPendingAudioVideoMedia(name, checksum, rawLocation string, mediaType MediaType) AudioVideoMedia {
	return AudioVideoMedia{
		Name:        name,
		Checksum:    checksum,
		RawLocation: rawLocation,
		Status:      MediaStatusPending,
		MediaType:   mediaType,
	}
}

// WithOutcome returns a copy carrying an encoding outcome.
// Only COMPLETED keeps the encoded location, any other status becomes ERROR.
func (m AudioVideoMedia) WithOutcome(status MediaStatus, encodedLocation string) AudioVideoMedia {
	next := m
	if status == MediaStatusCompleted {
		next.Status = MediaStatusCompleted
		next.EncodedLocation = encodedLocation
		return next
	}
	next.Status = MediaStatusError
	next.EncodedLocation = ""
	return next
}

// ImageMedia is an immutable descriptor of an uploaded image
type ImageMedia struct {
	Name     string
	Checksum string
	Location string
}

// ImageSlot identifies an image field of the video
type ImageSlot string

const (
	ImageSlotBanner        ImageSlot = "BANNER"
	ImageSlotThumbnail     ImageSlot = "THUMBNAIL"
	ImageSlotThumbnailHalf ImageSlot = "THUMBNAIL_HALF"
)

// ParseImageSlot parses an image slot against the closed set
func ParseImageSlot(s string) (ImageSlot, error) {
	switch slot := ImageSlot(s); slot {
	case ImageSlotBanner, ImageSlotThumbnail, ImageSlotThumbnailHalf:
		return slot, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrInvalidImageSlot, s)
	}
}
