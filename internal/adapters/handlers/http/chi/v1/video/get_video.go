package video

import (
	"encoding/json"
	"net/http"

	"codeflix-catalog/internal/core/domain"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// V1AudioVideoMedia describes an audio/video slot
type V1AudioVideoMedia struct {
	Name            string `json:"name"`
	Checksum        string `json:"checksum"`
	RawLocation     string `json:"raw_location"`
	EncodedLocation string `json:"encoded_location,omitempty"`
	Status          string `json:"status"`
}

// V1ImageMedia describes an image slot
type V1ImageMedia struct {
	Name     string `json:"name"`
	Checksum string `json:"checksum"`
	Location string `json:"location"`
}

// V1GetVideoResponse is the response of Get Video
type V1GetVideoResponse struct {
	ID            uuid.UUID          `json:"id"`
	Title         string             `json:"title"`
	Description   string             `json:"description"`
	LaunchYear    int                `json:"launch_year"`
	Duration      decimal.Decimal    `json:"duration"`
	Published     bool               `json:"published"`
	Rating        string             `json:"rating"`
	Categories    []uuid.UUID        `json:"categories"`
	Genres        []uuid.UUID        `json:"genres"`
	CastMembers   []uuid.UUID        `json:"cast_members"`
	Banner        *V1ImageMedia      `json:"banner,omitempty"`
	Thumbnail     *V1ImageMedia      `json:"thumbnail,omitempty"`
	ThumbnailHalf *V1ImageMedia      `json:"thumbnail_half,omitempty"`
	Trailer       *V1AudioVideoMedia `json:"trailer,omitempty"`
	Video         *V1AudioVideoMedia `json:"video,omitempty"`
}

// GetVideoV1 is the handler for get video v1
func (h *HandlerV1) GetVideoV1(w http.ResponseWriter, r *http.Request) {
	videoID, err := uuid.Parse(chi.URLParam(r, "videoID"))
	if err != nil {
		http.Error(w, "invalid video id", http.StatusBadRequest)
		return
	}

	video, err := h.videoService.GetVideo(r.Context(), videoID)
	if err != nil {
		h.writeServiceError(w, err, "error getting video")
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	json.NewEncoder(w).Encode(toGetVideoResponse(video))
}

func toGetVideoResponse(video *domain.Video) V1GetVideoResponse {
	return V1GetVideoResponse{
		ID:            video.ID,
		Title:         video.Title,
		Description:   video.Description,
		LaunchYear:    video.LaunchYear,
		Duration:      video.Duration,
		Published:     video.Published,
		Rating:        string(video.Rating),
		Categories:    video.Categories.Slice(),
		Genres:        video.Genres.Slice(),
		CastMembers:   video.CastMembers.Slice(),
		Banner:        toImageMedia(video.Banner),
		Thumbnail:     toImageMedia(video.Thumbnail),
		ThumbnailHalf: toImageMedia(video.ThumbnailHalf),
		Trailer:       toAudioVideoMedia(video.Trailer),
		Video:         toAudioVideoMedia(video.Video),
	}
}

func toImageMedia(image *domain.ImageMedia) *V1ImageMedia {
	if image == nil {
		return nil
	}
	return &V1ImageMedia{Name: image.Name, Checksum: image.Checksum, Location: image.Location}
}

func toAudioVideoMedia(media *domain.AudioVideoMedia) *V1AudioVideoMedia {
	if media == nil {
		return nil
	}
	return &V1AudioVideoMedia{
		Name:            media.Name,
		Checksum:        media.Checksum,
		RawLocation:     media.RawLocation,
		EncodedLocation: media.EncodedLocation,
		Status:          string(media.Status),
	}
}
