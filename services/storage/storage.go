package storage

import (
	"bytes"
	"context"
	"fmt"

	"github.com/cloudinary/cloudinary-go/v2"
	"github.com/cloudinary/cloudinary-go/v2/api/uploader"
)

// CloudinaryStorageService uploads documents to Cloudinary and hands back the
// permanent delivery URL.
type CloudinaryStorageService struct {
	cld *cloudinary.Cloudinary
}

func NewStorageService(cld *cloudinary.Cloudinary) *CloudinaryStorageService {
	return &CloudinaryStorageService{cld: cld}
}

// UploadBytes uploads raw bytes into the given folder under the given public id.
func (s *CloudinaryStorageService) UploadBytes(ctx context.Context, data []byte, folder, publicID string) (string, error) {
	resp, err := s.cld.Upload.Upload(ctx, bytes.NewReader(data), uploader.UploadParams{
		Folder:       folder,
		PublicID:     publicID,
		ResourceType: "raw",
	})
	if err != nil {
		return "", fmt.Errorf("cloudinary upload of %s: %w", publicID, err)
	}
	if resp.SecureURL == "" {
		return "", fmt.Errorf("cloudinary returned no URL for %s", publicID)
	}
	return resp.SecureURL, nil
}
