package storage

import (
	"context"
	"errors"
	"io"
	"time"

	"portfolio-api/internal/models"
)

// ErrNotFound is returned when a key has no stored object.
var ErrNotFound = errors.New("object not found")

// Storage is the blob interface the media library is built on.
type Storage interface {
	Upload(ctx context.Context, key string, reader io.Reader, size int64, contentType string) error
	Download(ctx context.Context, key string) (io.ReadCloser, *models.MediaObject, error)
	Delete(ctx context.Context, key string) error
	List(ctx context.Context, prefix string) ([]models.MediaObject, error)
	PresignedURL(ctx context.Context, key string, expires time.Duration) (string, error)
}
