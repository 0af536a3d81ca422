package documents

import (
	"fmt"
	"path"
	"regexp"
	"strings"
	"time"

	"github.com/eskiturk2021/api-gateway/internal/pkg/validators"
)

// UploadRequest carries the form fields of a document upload
type UploadRequest struct {
	SubmissionID string `validate:"required,max=100,excludesall=/\\"`
	Title        string `validate:"max=255"`
	Description  string `validate:"max=2000"`
	CustomerID   string `validate:"max=20"`
	Category     string `validate:"omitempty,max=50,excludesall=/\\"`
}

// Validate for validating UploadRequest struct
func (r *UploadRequest) Validate() error {
	return validators.Struct(r)
}

// CategoryOrDefault returns the requested category or DefaultCategory
func (r *UploadRequest) CategoryOrDefault() string {
	if r.Category == "" {
		return DefaultCategory
	}
	return r.Category
}

// UploadResult describes a stored upload
type UploadResult struct {
	Filename     string
	S3Key        string
	SubmissionID string
	Category     string
	Replaced     bool
	Record       FileRecord
}

// DocumentInfo is the metadata of a stored document together with a download link
type DocumentInfo struct {
	Filename      string
	S3Key         string
	ContentType   string
	ContentLength int64
	DownloadURL   string
	LastModified  time.Time
}

// SearchResult is a document matching a search query
type SearchResult struct {
	SubmissionID string
	CompanyName  string
	Category     string
	Filename     string
	S3Key        string
	UploadedAt   string
}

// CustomerDocument is a document attached to one of the customer's submissions
type CustomerDocument struct {
	SubmissionID string
	Category     string
	Record       FileRecord
}

// SyncResult summarises a storage to database synchronisation
type SyncResult struct {
	SubmissionID string
	FileCount    int
	Categories   []string
}

// FileVersions is the version history of a document
type FileVersions struct {
	Filename string
	Current  FileRecord
	Versions []FileRecord
}

// SubmissionPrefix returns the storage prefix holding every file of a submission
func SubmissionPrefix(basePath, submissionID string) string {
	return basePath + submissionID + "/"
}

// ObjectKey returns the storage key of an uploaded file: {base}{submission}/{category}/{unique}_{name}
func ObjectKey(basePath, submissionID, category, uniquePrefix, filename string) string {
	return fmt.Sprintf("%s%s/%s/%s_%s", basePath, submissionID, category, uniquePrefix, SanitizeFilename(filename))
}

// SanitizeFilename keeps only the base name of an uploaded file
func SanitizeFilename(filename string) string {
	name := path.Base(strings.ReplaceAll(filename, "\\", "/"))
	if name == "." || name == "/" {
		return "unnamed"
	}
	return name
}

var uniquePrefixPattern = regexp.MustCompile(`^[0-9a-f]{32}_`)

// SplitObjectKey derives the category and file name of key relative to prefix.
// Keys directly below the prefix belong to DefaultCategory. The unique upload
// prefix, when present, is removed from the file name.
func SplitObjectKey(prefix, key string) (category string, filename string) {
	relative := strings.TrimPrefix(key, prefix)
	parts := strings.SplitN(relative, "/", 2)
	if len(parts) == 2 {
		category, filename = parts[0], parts[1]
	} else {
		category, filename = DefaultCategory, parts[0]
	}
	return category, uniquePrefixPattern.ReplaceAllString(filename, "")
}
