package video

import (
	"net/http"
	"strings"

	"codeflix-catalog/internal/core/domain"
	"codeflix-catalog/internal/core/port"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
)

// UploadImageV1 is the handler for upload image v1
func (h *HandlerV1) UploadImageV1(w http.ResponseWriter, r *http.Request) {
	videoID, err := uuid.Parse(chi.URLParam(r, "videoID"))
	if err != nil {
		http.Error(w, "invalid video id", http.StatusBadRequest)
		return
	}

	slot, err := domain.ParseImageSlot(strings.ToUpper(chi.URLParam(r, "slot")))
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	file, err := readFormFile(w, r, h.uploadCfg.ImageMaxSize)
	if err != nil {
		h.writeFormError(w, err, "error reading upload image request")
		return
	}

	err = h.videoService.UploadImage(r.Context(), port.UploadImageInput{
		VideoID:     videoID,
		FileName:    file.name,
		Content:     file.content,
		ContentType: file.contentType,
		Slot:        slot,
	})
	if err != nil {
		h.writeServiceError(w, err, "error uploading image")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
