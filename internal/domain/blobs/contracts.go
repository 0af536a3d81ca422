package blobs

import (
	"context"
	"io"
	"time"
)

// BlobConnector is an interface for interacting with object storage.
// Keys are full object keys, callers apply any base path themselves.
type BlobConnector interface {
	// Upload stores body under key with the given content type.
	Upload(ctx context.Context, key string, body io.Reader, size int64, contentType string) error

	// Download retrieves the content stored under key.
	// It returns ErrBlobNotFound when the key does not exist.
	Download(ctx context.Context, key string) ([]byte, error)

	// Head returns the object metadata without its content.
	Head(ctx context.Context, key string) (*BlobObject, error)

	// Delete removes the object stored under key.
	Delete(ctx context.Context, key string) error

	// List returns every object whose key starts with prefix.
	List(ctx context.Context, prefix string) ([]*BlobObject, error)

	// PresignGetURL returns a time limited download URL for key.
	PresignGetURL(ctx context.Context, key string, expiry time.Duration) (string, error)

	// PublicURL returns the virtual-hosted style URL of key.
	PublicURL(key string) string

	// Ping checks that the bucket is reachable with the configured credentials.
	Ping(ctx context.Context) error
}
