package documents

import (
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/eskiturk2021/api-gateway/internal/pkg/validators"
)

// DefaultCategory is used when an upload does not name one
const DefaultCategory = "files"

var (
	// ErrSubmissionNotFound is returned when no submission matches the lookup
	ErrSubmissionNotFound = errors.New("submission not found")
	// ErrCategoryNotFound is returned when the submission has no such file category
	ErrCategoryNotFound = errors.New("category not found")
	// ErrFileNotFound is returned when the category holds no file with the given name
	ErrFileNotFound = errors.New("file not found")
	// ErrNoObjects is returned by sync when the submission prefix holds no objects
	ErrNoObjects = errors.New("no files found in storage")
)

// FileRecord describes one stored document of a submission
type FileRecord struct {
	OriginalName   string       `json:"original_name"`
	S3Key          string       `json:"s3_key"`
	URL            string       `json:"url,omitempty"`
	UploadedAt     string       `json:"uploaded_at,omitempty"`
	LastModified   string       `json:"last_modified,omitempty"`
	ContentType    string       `json:"content_type,omitempty"`
	Size           int64        `json:"size,omitempty"`
	PageCount      int          `json:"page_count,omitempty"`
	Title          string       `json:"title,omitempty"`
	Description    string       `json:"description,omitempty"`
	CurrentVersion string       `json:"current_version,omitempty"`
	Versions       []FileRecord `json:"versions,omitempty"`
}

// FileLinks groups file records by category
type FileLinks map[string][]FileRecord

// Submission entity
type Submission struct {
	ID             int64
	SubmissionID   string `validate:"required,max=100"`
	CompanyName    string
	Email          string `validate:"omitempty,email"`
	Phone          string
	City           string
	BusinessType   string
	DocumentNames  []string
	FileLinks      FileLinks
	SubmissionData map[string]interface{}
	CreatedAt      time.Time
}

// Validate for validating Submission struct
func (s *Submission) Validate() error {
	return validators.Struct(s)
}

// FindFile returns the record of name within category
func (s *Submission) FindFile(category, name string) (*FileRecord, error) {
	records, ok := s.FileLinks[category]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrCategoryNotFound, category)
	}
	for i := range records {
		if records[i].OriginalName == name {
			return &records[i], nil
		}
	}
	return nil, fmt.Errorf("%w: %s", ErrFileNotFound, name)
}

// PutFile stores record under category. When a file with the same name exists
// its current state moves into the version history and record becomes current,
// tagged with version. It reports whether an existing file was replaced.
func (s *Submission) PutFile(category string, record FileRecord, version string) bool {
	if s.FileLinks == nil {
		s.FileLinks = FileLinks{}
	}

	records := s.FileLinks[category]
	for i := range records {
		if records[i].OriginalName != record.OriginalName {
			continue
		}

		previous := records[i]
		history := previous.Versions
		previous.Versions = nil

		record.Versions = append(history, previous)
		record.CurrentVersion = version
		records[i] = record
		s.FileLinks[category] = records
		return true
	}

	s.FileLinks[category] = append(records, record)
	s.addDocumentName(record.OriginalName)
	return false
}

// RemoveFile deletes the record of name within category and returns it
func (s *Submission) RemoveFile(category, name string) (*FileRecord, error) {
	records, ok := s.FileLinks[category]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrCategoryNotFound, category)
	}

	for i := range records {
		if records[i].OriginalName != name {
			continue
		}
		removed := records[i]
		s.FileLinks[category] = append(records[:i:i], records[i+1:]...)
		if !s.hasFileNamed(name) {
			s.removeDocumentName(name)
		}
		return &removed, nil
	}
	return nil, fmt.Errorf("%w: %s", ErrFileNotFound, name)
}

// Categories returns the category names in sorted order
func (s *Submission) Categories() []string {
	categories := make([]string, 0, len(s.FileLinks))
	for category := range s.FileLinks {
		categories = append(categories, category)
	}
	sort.Strings(categories)
	return categories
}

// FileCount returns the number of current file records across categories
func (s *Submission) FileCount() int {
	count := 0
	for _, records := range s.FileLinks {
		count += len(records)
	}
	return count
}

func (s *Submission) hasFileNamed(name string) bool {
	for _, records := range s.FileLinks {
		for _, record := range records {
			if record.OriginalName == name {
				return true
			}
		}
	}
	return false
}

func (s *Submission) addDocumentName(name string) {
	for _, existing := range s.DocumentNames {
		if existing == name {
			return
		}
	}
	s.DocumentNames = append(s.DocumentNames, name)
}

func (s *Submission) removeDocumentName(name string) {
	kept := s.DocumentNames[:0]
	for _, existing := range s.DocumentNames {
		if existing != name {
			kept = append(kept, existing)
		}
	}
	s.DocumentNames = kept
}
