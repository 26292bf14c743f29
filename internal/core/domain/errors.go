package domain

import (
	"errors"
	"strings"
)

// ErrValidationFailed is an error thrown when an aggregate invariant is violated
var ErrValidationFailed = errors.New("validation failed")

// ErrVideoNotFound is an error thrown when video is not found
var ErrVideoNotFound = errors.New("video not found")

// ErrMediaNotFound is an error thrown when the targeted media slot was never populated
var ErrMediaNotFound = errors.New("media not found")

// ErrInvalidMediaType is an error thrown when media type is not VIDEO or TRAILER
var ErrInvalidMediaType = errors.New("invalid media type")

// ErrInvalidMediaStatus is an error thrown when media status is unknown
var ErrInvalidMediaStatus = errors.New("invalid media status")

// ErrInvalidRating is an error thrown when rating is unknown
var ErrInvalidRating = errors.New("invalid rating")

// ErrInvalidImageSlot is an error thrown when image slot is unknown
var ErrInvalidImageSlot = errors.New("invalid image slot")

// ErrInvalidResourceID is an error thrown when a resource id cannot be parsed
var ErrInvalidResourceID = errors.New("invalid resource id")

// ErrRelatedEntitiesNotFound is an error thrown when referenced categories, genres or cast members do not exist
var ErrRelatedEntitiesNotFound = errors.New("related entities not found")

// ErrInvalidFileType is an error thrown when file type is invalid
var ErrInvalidFileType = errors.New("invalid file type")

// ErrFileSizeTooBig is an error thrown when file size is too big
var ErrFileSizeTooBig = errors.New("file size too big")

// ValidationError carries every violation found by a validation pass
type ValidationError struct {
	Messages []string
}

func (e *ValidationError) Error() string {
	return strings.Join(e.Messages, ", ")
}

// Is makes errors.Is(err, ErrValidationFailed) hold
func (e *ValidationError) Is(target error) bool {
	return target == ErrValidationFailed
}

// Notification collects violations instead of failing on the first one
type Notification struct {
	messages []string
}

// Add records a violation
func (n *Notification) Add(message string) {
	n.messages = append(n.messages, message)
}

// HasErrors reports whether any violation was recorded
func (n *Notification) HasErrors() bool {
	return len(n.messages) > 0
}

// Err converts the collected violations into a *ValidationError, or nil
func (n *Notification) Err() error {
	if !n.HasErrors() {
		return nil
	}
	messages := make([]string, len(n.messages))
	copy(messages, n.messages)
	return &ValidationError{Messages: messages}
}
