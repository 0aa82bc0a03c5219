package storage

import (
	"context"
	"io"
)

// StorageService stores uploaded media and returns a public HTTPS URL.
type StorageService interface {
	Upload(ctx context.Context, file io.Reader, publicID string) (string, error)
}
