package video

import (
	"errors"
	"log/slog"
	"net/http"

	"codeflix-catalog/internal/config"
	"codeflix-catalog/internal/core/domain"
	"codeflix-catalog/internal/core/port"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

const (
	jsonBodyLimit     = 1 << 20  // non upload routes
	multipartMemory   = 32 << 20 // kept in memory by ParseMultipartForm, the rest spills to disk
	multipartOverhead = 1 << 20  // boundaries and part headers on top of the file size limit
	formFileField     = "file"
)

// HandlerV1 is the handler for v1 videos routes
type HandlerV1 struct {
	videoService port.VideoService
	uploadCfg    config.UploadConfig
	logger       *slog.Logger
}

// NewVideoHandlerV1 creates HandlerV1. uploadCfg bounds the upload request bodies.
func NewVideoHandlerV1(service port.VideoService, uploadCfg config.UploadConfig, logger *slog.Logger) *HandlerV1 {
	return &HandlerV1{
		videoService: service,
		uploadCfg:    uploadCfg,
		logger:       logger,
	}
}

// Routes exposes handler routes
func (h *HandlerV1) Routes() chi.Router {
	router := chi.NewRouter()

	router.With(middleware.RequestSize(jsonBodyLimit)).Post("/", h.CreateVideoV1)
	router.Get("/{videoID}/", h.GetVideoV1)
	router.Post("/{videoID}/media/{mediaType}", h.UploadMediaV1)
	router.Post("/{videoID}/images/{slot}", h.UploadImageV1)

	return router
}

// writeServiceError maps a use case error to its status code
func (h *HandlerV1) writeServiceError(w http.ResponseWriter, err error, msg string) {
	switch {
	case errors.Is(err, domain.ErrValidationFailed),
		errors.Is(err, domain.ErrRelatedEntitiesNotFound),
		errors.Is(err, domain.ErrInvalidFileType),
		errors.Is(err, domain.ErrFileSizeTooBig),
		errors.Is(err, domain.ErrInvalidMediaType),
		errors.Is(err, domain.ErrInvalidImageSlot),
		errors.Is(err, domain.ErrInvalidRating):
		h.logger.Error("invalid request", "error", err)
		http.Error(w, err.Error(), http.StatusBadRequest)
	case errors.Is(err, domain.ErrVideoNotFound):
		h.logger.Error("video not found", "error", err)
		http.Error(w, "video not found", http.StatusNotFound)
	case errors.Is(err, domain.ErrMediaNotFound):
		h.logger.Error("media not found", "error", err)
		http.Error(w, err.Error(), http.StatusConflict)
	default:
		h.logger.Error(msg, "error", err)
		http.Error(w, "internal server error", http.StatusServiceUnavailable)
	}
}
