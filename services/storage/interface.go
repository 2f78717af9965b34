package storage

import "context"

// StorageService hosts generated documents and returns their delivery URLs.
type StorageService interface {
	UploadBytes(ctx context.Context, data []byte, folder, publicID string) (string, error)
}
