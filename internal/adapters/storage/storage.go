package storage

import (
	"context"
	"fmt"
	"log/slog"

	"codeflix-catalog/internal/adapters/storage/minio"
	"codeflix-catalog/internal/adapters/storage/s3"
	"codeflix-catalog/internal/config"
	"codeflix-catalog/internal/core/port"
)

// NewMediaStorage builds the object storage selected by STORAGE_KIND
func NewMediaStorage(ctx context.Context, cfg *config.Config, logger *slog.Logger) (port.MediaStorage, error) {
	switch cfg.Storage.Kind {
	case config.StorageKindMinio:
		return minio.NewAdapter(ctx, cfg.Minio, logger)
	case config.StorageKindS3:
		return s3.NewAdapter(ctx, cfg.S3, logger)
	default:
		return nil, fmt.Errorf("unknown storage kind %q", cfg.Storage.Kind)
	}
}
