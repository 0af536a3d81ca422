package blobs

import (
	"errors"
	"time"
)

// ErrBlobNotFound is returned when an object key does not exist in the bucket
var ErrBlobNotFound = errors.New("blob not found")

// BlobObject describes a stored object
type BlobObject struct {
	Key          string
	Size         int64
	ContentType  string
	ETag         string
	LastModified time.Time
}

// IsDirectory reports whether the key is a folder placeholder rather than a file
func (b *BlobObject) IsDirectory() bool {
	return len(b.Key) > 0 && b.Key[len(b.Key)-1] == '/'
}
