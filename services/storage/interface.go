package storage

import (
	"context"
	"strings"
)

// StorageService defines the blob store boundary. An uploaded image is
// committed under a timestamp key and addressed by a durable URL from
// then on.
type StorageService interface {
	// UploadImage commits a local image and returns its durable URL.
	UploadImage(ctx context.Context, localPath string) (string, error)
	// Delete removes a blob by its public id.
	Delete(ctx context.Context, publicID string) error
}

// IsRemoteURL reports whether value is already a durable blob store URL,
// gating idempotent re-upload logic. Local picker URIs (file paths,
// file:// and content:// schemes) are not durable.
func IsRemoteURL(value string) bool {
	return strings.HasPrefix(value, "https://") || strings.HasPrefix(value, "http://")
}
