package storage

import (
	"context"
	"errors"
	"fmt"
	"io"

	"medibook/config"
	"medibook/utils"

	"github.com/cloudinary/cloudinary-go/v2"
	"github.com/cloudinary/cloudinary-go/v2/api/uploader"
	"go.uber.org/zap"
)

// CloudinaryStore implements ImageStore on Cloudinary.
type CloudinaryStore struct {
	cld          *cloudinary.Cloudinary
	parentFolder string
}

// NewCloudinaryStore builds a store from the configured credentials.
func NewCloudinaryStore(cfg config.Config) (*CloudinaryStore, error) {
	if cfg.CloudinaryCloudName == "" || cfg.CloudinaryAPIKey == "" || cfg.CloudinaryAPISecret == "" {
		return nil, fmt.Errorf("cloudinary credentials not set in configuration")
	}
	cld, err := cloudinary.NewFromParams(cfg.CloudinaryCloudName, cfg.CloudinaryAPIKey, cfg.CloudinaryAPISecret)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize Cloudinary: %w", err)
	}
	return &CloudinaryStore{cld: cld, parentFolder: cfg.CloudinaryFolder}, nil
}

// UploadImage uploads file under folder and returns its secure URL.
func (s *CloudinaryStore) UploadImage(ctx context.Context, file io.Reader, folder string) (string, error) {
	dest := folder
	if s.parentFolder != "" {
		dest = s.parentFolder + "/" + folder
	}
	result, err := s.cld.Upload.Upload(ctx, file, uploader.UploadParams{
		Folder:       dest,
		ResourceType: "image",
	})
	if err != nil {
		return "", fmt.Errorf("CloudinaryStore: failed to upload image: %w", err)
	}
	if result.Error.Message != "" {
		return "", fmt.Errorf("CloudinaryStore: %s", result.Error.Message)
	}
	if result.SecureURL == "" {
		return "", errors.New("CloudinaryStore: no secure URL returned")
	}
	utils.GetLogger().Debug("Image uploaded", zap.String("publicId", result.PublicID))
	return result.SecureURL, nil
}

// DisabledStore rejects uploads. It is used when no image backend is configured.
type DisabledStore struct{}

func (DisabledStore) UploadImage(ctx context.Context, file io.Reader, folder string) (string, error) {
	return "", utils.NewUpstreamError("Image uploads are not configured", nil)
}
