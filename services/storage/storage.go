package storage

import (
	"context"
	"fmt"
	"time"

	"astromitra/utils"

	"github.com/cloudinary/cloudinary-go/v2"
	"github.com/cloudinary/cloudinary-go/v2/api/uploader"
)

// CloudinaryStorage implements StorageService on Cloudinary.
type CloudinaryStorage struct {
	cld *cloudinary.Cloudinary
}

// NewCloudinaryStorage creates a StorageService backed by Cloudinary.
func NewCloudinaryStorage(cld *cloudinary.Cloudinary) StorageService {
	return &CloudinaryStorage{cld: cld}
}

// UploadImage commits a local image as a blob keyed by the current unix
// millisecond timestamp and returns its durable URL.
func (s *CloudinaryStorage) UploadImage(ctx context.Context, localPath string) (string, error) {
	publicID := fmt.Sprintf("images/%d", time.Now().UnixMilli())
	result, err := s.cld.Upload.Upload(ctx, localPath, uploader.UploadParams{
		PublicID: publicID,
	})
	if err != nil {
		return "", &utils.UploadError{Err: err}
	}
	if result.SecureURL == "" {
		return "", &utils.UploadError{Err: fmt.Errorf("no URL returned for %s", publicID)}
	}
	return result.SecureURL, nil
}

// Delete removes a blob by its public id. Not called on the failed-write
// path today: an orphaned blob after a dependent document-write failure
// is an accepted leak.
func (s *CloudinaryStorage) Delete(ctx context.Context, publicID string) error {
	if _, err := s.cld.Upload.Destroy(ctx, uploader.DestroyParams{PublicID: publicID}); err != nil {
		return fmt.Errorf("failed to delete blob %s: %w", publicID, err)
	}
	return nil
}
