package video

import (
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"

	"codeflix-catalog/internal/core/domain"
	"codeflix-catalog/internal/core/port"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
)

// uploadedFile is the multipart part named "file"
type uploadedFile struct {
	name        string
	contentType string
	content     []byte
}

// readFormFile reads the "file" part. The body is capped at maxFileSize plus multipart overhead
// so an oversized upload fails with *http.MaxBytesError before it is buffered.
func readFormFile(w http.ResponseWriter, r *http.Request, maxFileSize int64) (*uploadedFile, error) {
	r.Body = http.MaxBytesReader(w, r.Body, maxFileSize+multipartOverhead)

	if err := r.ParseMultipartForm(multipartMemory); err != nil {
		return nil, fmt.Errorf("could not parse multipart form: %w", err)
	}
	defer r.MultipartForm.RemoveAll()

	file, header, err := r.FormFile(formFileField)
	if err != nil {
		return nil, fmt.Errorf("missing %q form file: %w", formFileField, err)
	}
	defer file.Close()

	content, err := io.ReadAll(file)
	if err != nil {
		return nil, fmt.Errorf("could not read form file: %w", err)
	}

	return &uploadedFile{
		name:        header.Filename,
		contentType: header.Header.Get("Content-Type"),
		content:     content,
	}, nil
}

// UploadMediaV1 is the handler for upload media v1
func (h *HandlerV1) UploadMediaV1(w http.ResponseWriter, r *http.Request) {
	videoID, err := uuid.Parse(chi.URLParam(r, "videoID"))
	if err != nil {
		http.Error(w, "invalid video id", http.StatusBadRequest)
		return
	}

	mediaType, err := domain.ParseMediaType(strings.ToUpper(chi.URLParam(r, "mediaType")))
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	file, err := readFormFile(w, r, h.uploadCfg.VideoMaxSize)
	if err != nil {
		h.writeFormError(w, err, "error reading upload media request")
		return
	}

	err = h.videoService.UploadMedia(r.Context(), port.UploadMediaInput{
		VideoID:     videoID,
		FileName:    file.name,
		Content:     file.content,
		ContentType: file.contentType,
		MediaType:   mediaType,
	})
	if err != nil {
		h.writeServiceError(w, err, "error uploading media")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (h *HandlerV1) writeFormError(w http.ResponseWriter, err error, msg string) {
	h.logger.Error(msg, "error", err)

	var tooLarge *http.MaxBytesError
	if errors.As(err, &tooLarge) {
		http.Error(w, domain.ErrFileSizeTooBig.Error(), http.StatusRequestEntityTooLarge)
		return
	}
	http.Error(w, err.Error(), http.StatusBadRequest)
}
