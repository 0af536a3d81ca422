package app

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/eskiturk2021/api-gateway/internal/domain/blobs"
	"github.com/eskiturk2021/api-gateway/internal/domain/documents"
	"github.com/eskiturk2021/api-gateway/internal/pkg/logger"
)

// syncService implements the SyncService interface
type syncService struct {
	blobConnector  blobs.BlobConnector
	submissionRepo documents.SubmissionRepository
	basePath       string
	logger         logger.Logger
}

// NewSyncService creates a new instance of SyncService
func NewSyncService(blobConnector blobs.BlobConnector, submissionRepo documents.SubmissionRepository, basePath string, logger logger.Logger) (documents.SyncService, error) {
	return &syncService{
		blobConnector:  blobConnector,
		submissionRepo: submissionRepo,
		basePath:       basePath,
		logger:         logger,
	}, nil
}

func (s *syncService) SyncSubmission(ctx context.Context, submissionID string) (*documents.SyncResult, error) {
	if err := (&documents.UploadRequest{SubmissionID: submissionID}).Validate(); err != nil {
		return nil, fmt.Errorf("invalid submission id: %w", err)
	}

	prefix := documents.SubmissionPrefix(s.basePath, submissionID)
	objects, err := s.blobConnector.List(ctx, prefix)
	if err != nil {
		return nil, fmt.Errorf("failed to list %s: %w", prefix, err)
	}

	var stored []*blobs.BlobObject
	for _, object := range objects {
		if !object.IsDirectory() {
			stored = append(stored, object)
		}
	}
	if len(stored) == 0 {
		return nil, documents.ErrNoObjects
	}

	submission, err := s.submissionRepo.Upsert(ctx, submissionID, func(submission *documents.Submission, _ bool) error {
		links, names := s.rebuildFileLinks(prefix, stored, submission.FileLinks)
		submission.FileLinks = links
		submission.DocumentNames = names
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to store synchronised files of %s: %w", submissionID, err)
	}

	s.logger.Info("Synchronised ", submission.FileCount(), " files of submission ", submissionID)

	return &documents.SyncResult{
		SubmissionID: submissionID,
		FileCount:    submission.FileCount(),
		Categories:   submission.Categories(),
	}, nil
}

// storedFile is an object together with its position in the recorded history
type storedFile struct {
	record   documents.FileRecord
	modified time.Time
	rank     int
}

// rebuildFileLinks groups objects by category and file name. Within a group the
// most recently modified object becomes the current record and the others its
// versions, oldest first. Metadata of objects already on record is kept.
func (s *syncService) rebuildFileLinks(prefix string, objects []*blobs.BlobObject, existing documents.FileLinks) (documents.FileLinks, []string) {
	known, ranks := indexRecords(existing)

	type groupKey struct{ category, name string }
	groups := map[groupKey][]storedFile{}
	var order []groupKey
	for _, object := range objects {
		category, filename := documents.SplitObjectKey(prefix, object.Key)
		record := documents.FileRecord{
			OriginalName: filename,
			S3Key:        object.Key,
			URL:          s.blobConnector.PublicURL(object.Key),
			LastModified: object.LastModified.UTC().Format(time.RFC3339),
			ContentType:  object.ContentType,
			Size:         object.Size,
		}
		if previous, ok := known[object.Key]; ok {
			record.UploadedAt = previous.UploadedAt
			record.Title = previous.Title
			record.Description = previous.Description
			record.PageCount = previous.PageCount
			if record.ContentType == "" {
				record.ContentType = previous.ContentType
			}
		}

		rank, ok := ranks[object.Key]
		if !ok {
			rank = -1
		}
		key := groupKey{category, filename}
		if _, ok := groups[key]; !ok {
			order = append(order, key)
		}
		groups[key] = append(groups[key], storedFile{record: record, modified: object.LastModified, rank: rank})
	}

	links := documents.FileLinks{}
	var names []string
	seen := map[string]bool{}
	for _, key := range order {
		files := groups[key]
		sort.SliceStable(files, func(i, j int) bool {
			if !files[i].modified.Equal(files[j].modified) {
				return files[i].modified.Before(files[j].modified)
			}
			return files[i].rank < files[j].rank
		})

		current := files[len(files)-1]
		record := current.record
		if len(files) > 1 {
			record.Versions = make([]documents.FileRecord, 0, len(files)-1)
			for _, file := range files[:len(files)-1] {
				record.Versions = append(record.Versions, file.record)
			}
			record.CurrentVersion = fmt.Sprintf("v%d", current.modified.Unix())
		}
		links[key.category] = append(links[key.category], record)

		if !seen[key.name] {
			seen[key.name] = true
			names = append(names, key.name)
		}
	}
	return links, names
}

// indexRecords maps the object key of every recorded file and version to its record
// and to its age rank, where versions rank by history position and current files last.
func indexRecords(links documents.FileLinks) (map[string]documents.FileRecord, map[string]int) {
	known := map[string]documents.FileRecord{}
	ranks := map[string]int{}
	for _, records := range links {
		for _, record := range records {
			for i, version := range record.Versions {
				known[version.S3Key] = version
				ranks[version.S3Key] = i
			}
			known[record.S3Key] = record
			ranks[record.S3Key] = len(record.Versions)
		}
	}
	return known, ranks
}
