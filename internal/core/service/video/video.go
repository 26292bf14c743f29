package video

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"log/slog"
	"mime"
	"path/filepath"
	"strings"

	"codeflix-catalog/internal/config"
	"codeflix-catalog/internal/core/domain"
	"codeflix-catalog/internal/core/port"
)

type videoService struct {
	uow       port.UnitOfWork
	storage   port.MediaStorage
	bus       port.MessageBus
	uploadCfg config.UploadConfig
	logger    *slog.Logger
}

// NewVideoService creates a new video service
func NewVideoService(uow port.UnitOfWork, storage port.MediaStorage, bus port.MessageBus, cfg config.UploadConfig, logger *slog.Logger) port.VideoService {
	return &videoService{uow: uow, storage: storage, bus: bus, uploadCfg: cfg, logger: logger}
}

// AllowedVideoMimeTypes is a whitelist of supported audio/video MIME types and their extensions.
// This is deterministic and does NOT rely on OS mime databases (Docker-safe).
var AllowedVideoMimeTypes = map[string][]string{
	"video/mp4":        {".mp4"},
	"video/webm":       {".webm"},
	"video/quicktime":  {".mov"},
	"video/x-msvideo":  {".avi"},
	"video/x-matroska": {".mkv"},
	"video/ogg":        {".ogv"},
	"video/3gpp":       {".3gp"},
}

// AllowedImageMimeTypes is a whitelist of supported image MIME types and their extensions
var AllowedImageMimeTypes = map[string][]string{
	"image/jpeg": {".jpg", ".jpeg"},
	"image/png":  {".png"},
	"image/webp": {".webp"},
	"image/gif":  {".gif"},
}

// validateMediaFile resolves the MIME type of an upload. A missing or generic
// content type is inferred from the extension.
func validateMediaFile(filename, contentType string, allowed map[string][]string) (string, error) {
	mimeType := extractMimeType(contentType)
	if mimeType == "" || mimeType == "application/octet-stream" {
		inferred, err := mimeTypeFromExtension(filename, allowed)
		if err != nil {
			return "", err
		}
		return inferred, nil
	}

	allowedExts, ok := allowed[mimeType]
	if !ok {
		return "", fmt.Errorf("unsupported MIME type: %s", mimeType)
	}

	if err := validateExtension(filename, allowedExts); err != nil {
		return "", err
	}

	return mimeType, nil
}

func mimeTypeFromExtension(filename string, allowed map[string][]string) (string, error) {
	ext := strings.ToLower(filepath.Ext(filename))
	if ext == "" {
		return "", fmt.Errorf("no file extension found")
	}

	for mimeType, exts := range allowed {
		for _, candidate := range exts {
			if ext == candidate {
				return mimeType, nil
			}
		}
	}

	return "", fmt.Errorf("extension %s is not allowed", ext)
}

func validateExtension(filename string, allowedExts []string) error {
	ext := strings.ToLower(filepath.Ext(filename))
	if ext == "" {
		return fmt.Errorf("no file extension found")
	}

	for _, allowed := range allowedExts {
		if ext == allowed {
			return nil
		}
	}

	return fmt.Errorf(
		"extension %s is not allowed (expected one of: %v)",
		ext, allowedExts,
	)
}

func extractMimeType(contentType string) string {
	mimeType, _, err := mime.ParseMediaType(contentType)
	if err != nil {
		return ""
	}
	return mimeType
}

// checksum is the lowercase hex SHA-256 of content
func checksum(content []byte) string {
	sum := sha256.Sum256(content)
	return hex.EncodeToString(sum[:])
}

// sanitizeFileName drops any directory part so the stored name and the key agree
func sanitizeFileName(fileName string) string {
	return filepath.Base(fileName)
}

// mediaKey expects a sanitized file name
func mediaKey(video *domain.Video, mediaType domain.MediaType, fileName string) string {
	prefix := "videos"
	if mediaType == domain.MediaTypeTrailer {
		prefix = "trailers"
	}
	return fmt.Sprintf("%s/%s/%s", prefix, video.ID, fileName)
}

// imageKey expects a sanitized file name
func imageKey(video *domain.Video, slot domain.ImageSlot, fileName string) string {
	return fmt.Sprintf("images/%s/%s/%s", video.ID, strings.ToLower(string(slot)), fileName)
}

// committedMediaLocation is the raw location the slot already points to, or ""
func committedMediaLocation(video *domain.Video, mediaType domain.MediaType) string {
	media := video.Video
	if mediaType == domain.MediaTypeTrailer {
		media = video.Trailer
	}
	if media == nil {
		return ""
	}
	return media.RawLocation
}

// committedImageLocation is the location the image slot already points to, or ""
func committedImageLocation(video *domain.Video, slot domain.ImageSlot) string {
	var image *domain.ImageMedia
	switch slot {
	case domain.ImageSlotBanner:
		image = video.Banner
	case domain.ImageSlotThumbnail:
		image = video.Thumbnail
	case domain.ImageSlotThumbnailHalf:
		image = video.ThumbnailHalf
	}
	if image == nil {
		return ""
	}
	return image.Location
}
