package port

import "context"

// MediaStorage is an interface to define object storage interactions
type MediaStorage interface {
	Store(ctx context.Context, key string, content []byte, contentType string) error
	DeleteObject(ctx context.Context, key string) error
}
