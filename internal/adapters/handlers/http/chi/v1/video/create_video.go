package video

import (
	"encoding/json"
	"net/http"

	"codeflix-catalog/internal/core/domain"
	"codeflix-catalog/internal/core/port"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// V1CreateVideoRequest is the body request for Create Video
type V1CreateVideoRequest struct {
	Title       string          `json:"title"`
	Description string          `json:"description"`
	LaunchYear  int             `json:"launch_year"`
	Duration    decimal.Decimal `json:"duration"`
	Rating      string          `json:"rating"`
	Categories  []uuid.UUID     `json:"categories"`
	Genres      []uuid.UUID     `json:"genres"`
	CastMembers []uuid.UUID     `json:"cast_members"`
}

// V1CreateVideoResponse is the response of Create Video
type V1CreateVideoResponse struct {
	ID uuid.UUID `json:"id"`
}

// CreateVideoV1 is the handler for create video v1
func (h *HandlerV1) CreateVideoV1(w http.ResponseWriter, r *http.Request) {

	var req V1CreateVideoRequest

	err := json.NewDecoder(r.Body).Decode(&req)
	if err != nil {
		h.logger.Error("error decoding create video request", "error", err)
		http.Error(w, "Invalid request", http.StatusBadRequest)
		return
	}

	video, err := h.videoService.CreateVideoWithoutMedia(r.Context(), port.CreateVideoInput{
		Title:       req.Title,
		Description: req.Description,
		LaunchYear:  req.LaunchYear,
		Duration:    req.Duration,
		Rating:      domain.Rating(req.Rating),
		Categories:  req.Categories,
		Genres:      req.Genres,
		CastMembers: req.CastMembers,
	})
	if err != nil {
		h.writeServiceError(w, err, "error creating video")
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(V1CreateVideoResponse{ID: video.ID})
}
