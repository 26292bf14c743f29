package domain

import (
	"bytes"
	"fmt"
	"maps"
	"slices"
	"unicode/utf8"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

const (
	titleMaxLength       = 255
	descriptionMaxLength = 1024
)

// IDSet is an unordered set of foreign identifiers
type IDSet map[uuid.UUID]struct{}

// NewIDSet builds a set from ids, dropping duplicates
func NewIDSet(ids ...uuid.UUID) IDSet {
	set := make(IDSet, len(ids))
	for _, id := range ids {
		set[id] = struct{}{}
	}
	return set
}

// Has reports membership
func (s IDSet) Has(id uuid.UUID) bool {
	_, ok := s[id]
	return ok
}

// Slice returns the ids in a stable order
func (s IDSet) Slice() []uuid.UUID {
	ids := slices.Collect(maps.Keys(s))
	slices.SortFunc(ids, func(a, b uuid.UUID) int {
		return bytes.Compare(a[:], b[:])
	})
	return ids
}

// VideoParams holds the fields needed to create a video
type VideoParams struct {
	Title       string
	Description string
	LaunchYear  int
	Duration    decimal.Decimal
	Published   bool
	Rating      Rating
	Categories  []uuid.UUID
	Genres      []uuid.UUID
	CastMembers []uuid.UUID
}

// Video is the catalog aggregate root
type Video struct {
	ID          uuid.UUID
	Title       string
	Description string
	LaunchYear  int
	Duration    decimal.Decimal
	Published   bool
	Rating      Rating

	Categories  IDSet
	Genres      IDSet
	CastMembers IDSet

	Banner        *ImageMedia
	Thumbnail     *ImageMedia
	ThumbnailHalf *ImageMedia
	Trailer       *AudioVideoMedia
	Video         *AudioVideoMedia

	events []MediaUpdated
}

// NewVideo creates a video with a fresh id
func NewVideo(params VideoParams) (*Video, error) {
	video := &Video{
		ID:          uuid.New(),
		Title:       params.Title,
		Description: params.Description,
		LaunchYear:  params.LaunchYear,
		Duration:    params.Duration,
		Published:   params.Published,
		Rating:      params.Rating,
		Categories:  NewIDSet(params.Categories...),
		Genres:      NewIDSet(params.Genres...),
		CastMembers: NewIDSet(params.CastMembers...),
	}
	if err := video.Validate(); err != nil {
		return nil, err
	}
	return video, nil
}

func (v *Video) String() string {
	return fmt.Sprintf("%s - %s (%d)", v.Title, v.Description, v.LaunchYear)
}

// Equal compares videos by identity only
func (v *Video) Equal(other *Video) bool {
	if v == nil || other == nil {
		return v == other
	}
	return v.ID == other.ID
}

// Validate checks every field constraint and reports all violations at once
func (v *Video) Validate() error {
	var n Notification
	v.collect(&n)
	return n.Err()
}

func (v *Video) collect(n *Notification) {
	if v.Title == "" {
		n.Add("title cannot be empty")
	}
	if utf8.RuneCountInString(v.Title) > titleMaxLength {
		n.Add(fmt.Sprintf("title cannot be longer than %d characters", titleMaxLength))
	}
	if v.Description == "" {
		n.Add("description cannot be empty")
	}
	if utf8.RuneCountInString(v.Description) > descriptionMaxLength {
		n.Add(fmt.Sprintf("description cannot be longer than %d characters", descriptionMaxLength))
	}
	if !v.Rating.IsValid() {
		n.Add("rating must be a valid rating")
	}
}

// clone copies everything a mutation can touch, so a failed mutation leaves v intact
func (v *Video) clone() *Video {
	next := *v
	next.Categories = maps.Clone(v.Categories)
	next.Genres = maps.Clone(v.Genres)
	next.CastMembers = maps.Clone(v.CastMembers)
	next.events = slices.Clone(v.events)
	if next.Categories == nil {
		next.Categories = IDSet{}
	}
	if next.Genres == nil {
		next.Genres = IDSet{}
	}
	if next.CastMembers == nil {
		next.CastMembers = IDSet{}
	}
	return &next
}

func (v *Video) apply(mutate func(next *Video)) error {
	next := v.clone()
	mutate(next)
	if err := next.Validate(); err != nil {
		return err
	}
	*v = *next
	return nil
}

// Update replaces the scalar fields
func (v *Video) Update(title, description string, launchYear int, duration decimal.Decimal, published bool, rating Rating) error {
	return v.apply(func(next *Video) {
		next.Title = title
		next.Description = description
		next.LaunchYear = launchYear
		next.Duration = duration
		next.Published = published
		next.Rating = rating
	})
}

func (v *Video) AddCategory(id uuid.UUID) error {
	return v.apply(func(next *Video) { next.Categories[id] = struct{}{} })
}

func (v *Video) RemoveCategory(id uuid.UUID) error {
	return v.apply(func(next *Video) { delete(next.Categories, id) })
}

func (v *Video) AddGenre(id uuid.UUID) error {
	return v.apply(func(next *Video) { next.Genres[id] = struct{}{} })
}

func (v *Video) RemoveGenre(id uuid.UUID) error {
	return v.apply(func(next *Video) { delete(next.Genres, id) })
}

func (v *Video) AddCastMember(id uuid.UUID) error {
	return v.apply(func(next *Video) { next.CastMembers[id] = struct{}{} })
}

func (v *Video) RemoveCastMember(id uuid.UUID) error {
	return v.apply(func(next *Video) { delete(next.CastMembers, id) })
}

func (v *Video) UpdateBanner(banner ImageMedia) error {
	return v.apply(func(next *Video) { next.Banner = &banner })
}

func (v *Video) UpdateThumbnail(thumbnail ImageMedia) error {
	return v.apply(func(next *Video) { next.Thumbnail = &thumbnail })
}

func (v *Video) UpdateThumbnailHalf(thumbnailHalf ImageMedia) error {
	return v.apply(func(next *Video) { next.ThumbnailHalf = &thumbnailHalf })
}

// UpdateImage routes an image to its slot
func (v *Video) UpdateImage(slot ImageSlot, image ImageMedia) error {
	switch slot {
	case ImageSlotBanner:
		return v.UpdateBanner(image)
	case ImageSlotThumbnail:
		return v.UpdateThumbnail(image)
	case ImageSlotThumbnailHalf:
		return v.UpdateThumbnailHalf(image)
	default:
		return fmt.Errorf("%w: %q", ErrInvalidImageSlot, slot)
	}
}

// UpdateTrailer replaces the trailer and records a MediaUpdated event
func (v *Video) UpdateTrailer(trailer AudioVideoMedia) error {
	return v.apply(func(next *Video) {
		next.Trailer = &trailer
		next.events = append(next.events, MediaUpdated{
			AggregateID: next.ID,
			FilePath:    trailer.RawLocation,
			MediaType:   MediaTypeTrailer,
		})
	})
}

// UpdateVideo replaces the video media and records a MediaUpdated event
func (v *Video) UpdateVideo(video AudioVideoMedia) error {
	return v.apply(func(next *Video) {
		next.Video = &video
		next.events = append(next.events, MediaUpdated{
			AggregateID: next.ID,
			FilePath:    video.RawLocation,
			MediaType:   MediaTypeVideo,
		})
	})
}

// Publish marks the video as published once its video media is encoded
func (v *Video) Publish() error {
	var n Notification
	switch {
	case v.Video == nil:
		n.Add("video media is required to publish the video")
	case v.Video.Status != MediaStatusCompleted:
		n.Add("video media must be completed to publish the video")
	}

	next := v.clone()
	if !n.HasErrors() {
		next.Published = true
	}
	next.collect(&n)
	if err := n.Err(); err != nil {
		return err
	}

	*v = *next
	return nil
}

// Process applies an encoding outcome to the slot named by mediaType.
// A completed VIDEO also publishes the video.
func (v *Video) Process(status MediaStatus, encodedLocation string, mediaType MediaType) error {
	next := v.clone()

	switch mediaType {
	case MediaTypeVideo:
		if next.Video == nil {
			return fmt.Errorf("%w: video %s has no %s media", ErrMediaNotFound, v.ID, mediaType)
		}
		processed := next.Video.WithOutcome(status, encodedLocation)
		processed.MediaType = MediaTypeVideo
		next.Video = &processed
		if processed.Status == MediaStatusCompleted {
			if err := next.Publish(); err != nil {
				return err
			}
		}
	case MediaTypeTrailer:
		if next.Trailer == nil {
			return fmt.Errorf("%w: video %s has no %s media", ErrMediaNotFound, v.ID, mediaType)
		}
		processed := next.Trailer.WithOutcome(status, encodedLocation)
		processed.MediaType = MediaTypeTrailer
		next.Trailer = &processed
	default:
		return fmt.Errorf("%w: %q", ErrInvalidMediaType, mediaType)
	}

	if err := next.Validate(); err != nil {
		return err
	}
	*v = *next
	return nil
}

// Events returns the pending events without draining them
func (v *Video) Events() []MediaUpdated {
	return slices.Clone(v.events)
}

// PullEvents drains the pending events
func (v *Video) PullEvents() []MediaUpdated {
	events := v.events
	v.events = nil
	return events
}
