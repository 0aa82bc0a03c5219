package storage

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/cloudinary/cloudinary-go/v2"
	"github.com/cloudinary/cloudinary-go/v2/api/uploader"
)

// ErrNotConfigured is returned when Cloudinary credentials are missing.
var ErrNotConfigured = errors.New("cloudinary credentials not set in configuration")

// CloudinaryStorageService implements StorageService on Cloudinary.
type CloudinaryStorageService struct {
	cld    *cloudinary.Cloudinary
	folder string
}

// NewCloudinaryStorageService builds the uploader from explicit credentials.
func NewCloudinaryStorageService(cloudName, apiKey, apiSecret, folder string) (*CloudinaryStorageService, error) {
	if cloudName == "" || apiKey == "" || apiSecret == "" {
		return nil, ErrNotConfigured
	}
	cld, err := cloudinary.NewFromParams(cloudName, apiKey, apiSecret)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize Cloudinary: %w", err)
	}
	cld.Config.URL.Secure = true
	return &CloudinaryStorageService{cld: cld, folder: folder}, nil
}

func (s *CloudinaryStorageService) Upload(ctx context.Context, file io.Reader, publicID string) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	overwrite := false
	resp, err := s.cld.Upload.Upload(ctx, file, uploader.UploadParams{
		PublicID:     publicID,
		Folder:       s.folder,
		ResourceType: "image",
		Overwrite:    &overwrite,
	})
	if err != nil {
		return "", fmt.Errorf("failed to upload to Cloudinary: %w", err)
	}
	if resp.Error.Message != "" {
		return "", fmt.Errorf("cloudinary rejected upload: %s", resp.Error.Message)
	}
	if resp.SecureURL == "" {
		return "", errors.New("cloudinary returned no secure URL")
	}
	return resp.SecureURL, nil
}
