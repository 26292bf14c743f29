package domain

import (
	"fmt"
	"strings"

	"github.com/google/uuid"
)

// MediaUpdated is raised by the video aggregate when an audio/video slot is replaced
type MediaUpdated struct {
	AggregateID uuid.UUID
	FilePath    string
	MediaType   MediaType
}

// EventType is a tag used to route integration events to their handlers
type EventType string

const (
	EventTypeMediaUploaded EventType = "MediaUploaded"
)

// IntegrationEvent is an event published to systems outside the catalog
type IntegrationEvent interface {
	Type() EventType
}

// MediaUploaded announces that raw media is available for encoding
type MediaUploaded struct {
	ResourceID string `json:"resource_id"`
	FilePath   string `json:"file_path"`
}

// Type implements IntegrationEvent
func (MediaUploaded) Type() EventType {
	return EventTypeMediaUploaded
}

// NewMediaUploaded maps the domain event to its integration counterpart
func NewMediaUploaded(event MediaUpdated) MediaUploaded {
	return MediaUploaded{
		ResourceID: ResourceID(event.AggregateID, event.MediaType),
		FilePath:   event.FilePath,
	}
}

// ResourceID formats the "{aggregate_id}.{media_type}" key shared with the encoder
func ResourceID(aggregateID uuid.UUID, mediaType MediaType) string {
	return fmt.Sprintf("%s.%s", aggregateID, mediaType)
}

// ParseResourceID splits a resource id on its last dot
func ParseResourceID(resourceID string) (uuid.UUID, MediaType, error) {
	index := strings.LastIndex(resourceID, ".")
	if index == -1 {
		return uuid.Nil, "", fmt.Errorf("%w: %q", ErrInvalidResourceID, resourceID)
	}

	aggregateID, err := uuid.Parse(resourceID[:index])
	if err != nil {
		return uuid.Nil, "", fmt.Errorf("%w: %q: %w", ErrInvalidResourceID, resourceID, err)
	}

	mediaType, err := ParseMediaType(resourceID[index+1:])
	if err != nil {
		return uuid.Nil, "", err
	}

	return aggregateID, mediaType, nil
}

// CompletionNotification is the payload sent back by the encoder
type CompletionNotification struct {
	Error string `json:"error"`
	Video *struct {
		ResourceID         string `json:"resource_id"`
		EncodedVideoFolder string `json:"encoded_video_folder"`
	} `json:"video"`
	Status  string `json:"status"`
	Message *struct {
		ResourceID string `json:"resource_id"`
	} `json:"message"`
}
