package app

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"path"
	"strings"
	"time"

	"github.com/eskiturk2021/api-gateway/internal/domain/activities"
	"github.com/eskiturk2021/api-gateway/internal/domain/blobs"
	"github.com/eskiturk2021/api-gateway/internal/domain/customers"
	"github.com/eskiturk2021/api-gateway/internal/domain/documents"
	"github.com/eskiturk2021/api-gateway/internal/domain/events"
	"github.com/eskiturk2021/api-gateway/internal/pkg/logger"

	"github.com/google/uuid"
)

const pdfContentType = "application/pdf"

// DocumentServiceOptions carries the storage layout used by the document services
type DocumentServiceOptions struct {
	BasePath      string
	PresignExpiry time.Duration
}

// documentService implements the DocumentService interface
type documentService struct {
	blobConnector  blobs.BlobConnector
	submissionRepo documents.SubmissionRepository
	customerRepo   customers.CustomerRepository
	pageCounter    documents.PageCounter
	notifier       *notifier
	options        DocumentServiceOptions
	logger         logger.Logger
	now            func() time.Time
}

// NewDocumentService creates a new instance of DocumentService
func NewDocumentService(
	blobConnector blobs.BlobConnector,
	submissionRepo documents.SubmissionRepository,
	customerRepo customers.CustomerRepository,
	activityRepo activities.ActivityRepository,
	pageCounter documents.PageCounter,
	publisher events.Publisher,
	options DocumentServiceOptions,
	logger logger.Logger,
) (documents.DocumentService, error) {
	if options.PresignExpiry <= 0 {
		return nil, fmt.Errorf("presign expiry must be positive")
	}
	return &documentService{
		blobConnector:  blobConnector,
		submissionRepo: submissionRepo,
		customerRepo:   customerRepo,
		pageCounter:    pageCounter,
		notifier:       &notifier{publisher: publisher, activityRepo: activityRepo, logger: logger},
		options:        options,
		logger:         logger,
		now:            time.Now,
	}, nil
}

func (s *documentService) Upload(ctx context.Context, req *documents.UploadRequest, fileHeader *multipart.FileHeader) (*documents.UploadResult, error) {
	if fileHeader == nil {
		return nil, fmt.Errorf("no file provided in upload request")
	}
	if err := req.Validate(); err != nil {
		return nil, fmt.Errorf("validation error: %w", err)
	}

	content, err := readFileHeader(fileHeader)
	if err != nil {
		return nil, err
	}

	var customer *customers.Customer
	if req.CustomerID != "" {
		customer, err = s.customerRepo.GetByCustomerID(ctx, req.CustomerID)
		if err != nil {
			return nil, err
		}
	}

	filename := documents.SanitizeFilename(fileHeader.Filename)
	category := req.CategoryOrDefault()
	contentType := detectContentType(fileHeader, filename, content)
	key := documents.ObjectKey(s.options.BasePath, req.SubmissionID, category, strings.ReplaceAll(uuid.NewString(), "-", ""), filename)

	if err := s.blobConnector.Upload(ctx, key, bytes.NewReader(content), int64(len(content)), contentType); err != nil {
		return nil, fmt.Errorf("failed to upload '%s': %w", filename, err)
	}

	uploadedAt := s.now().UTC()
	record := documents.FileRecord{
		OriginalName: filename,
		S3Key:        key,
		URL:          s.blobConnector.PublicURL(key),
		UploadedAt:   uploadedAt.Format(time.RFC3339),
		ContentType:  contentType,
		Size:         int64(len(content)),
		Title:        req.Title,
		Description:  req.Description,
	}
	if contentType == pdfContentType && s.pageCounter != nil {
		if pages, err := s.pageCounter.CountPages(content); err == nil {
			record.PageCount = pages
		} else {
			s.logger.Warn("Failed to count pages of ", filename, ": ", err)
		}
	}

	version := fmt.Sprintf("v%d", uploadedAt.Unix())
	var replaced bool
	submission, err := s.submissionRepo.Upsert(ctx, req.SubmissionID, func(submission *documents.Submission, created bool) error {
		if customer != nil {
			if submission.Phone == "" {
				submission.Phone = customer.Phone
			}
			if created {
				submission.CompanyName = customer.Name
			}
		}
		replaced = submission.PutFile(category, record, version)
		return nil
	})
	if err != nil {
		s.discardObject(ctx, key)
		return nil, fmt.Errorf("failed to record upload of '%s': %w", filename, err)
	}

	s.logger.Info("Uploaded document ", key)

	var customerDBID *int64
	if customer != nil {
		customerDBID = &customer.ID
	}
	s.notifier.record(ctx, customerDBID, activities.TypeDocument, fmt.Sprintf("Document uploaded: %s", filename))
	s.notifier.publish(ctx, events.DocumentUploaded, map[string]interface{}{
		"submission_id": req.SubmissionID,
		"filename":      filename,
		"category":      category,
		"s3_key":        key,
		"replaced":      replaced,
	})

	current, _ := submission.FindFile(category, filename)
	result := &documents.UploadResult{
		Filename:     filename,
		S3Key:        key,
		SubmissionID: req.SubmissionID,
		Category:     category,
		Replaced:     replaced,
		Record:       record,
	}
	if current != nil {
		result.Record = *current
	}
	return result, nil
}

// discardObject deletes an object no record points to, logging failures
func (s *documentService) discardObject(ctx context.Context, key string) {
	if err := s.blobConnector.Delete(ctx, key); err != nil && !errors.Is(err, blobs.ErrBlobNotFound) {
		s.logger.Warn("Failed to remove object ", key, ": ", err)
	}
}

func (s *documentService) Get(ctx context.Context, submissionID, filename, category string) (*documents.DocumentInfo, error) {
	record, err := s.findRecord(ctx, submissionID, filename, category)
	if err != nil {
		return nil, err
	}

	object, err := s.blobConnector.Head(ctx, record.S3Key)
	if err != nil {
		if errors.Is(err, blobs.ErrBlobNotFound) {
			return nil, fmt.Errorf("%w: %s", documents.ErrFileNotFound, filename)
		}
		return nil, err
	}

	downloadURL, err := s.blobConnector.PresignGetURL(ctx, record.S3Key, s.options.PresignExpiry)
	if err != nil {
		return nil, fmt.Errorf("failed to presign '%s': %w", record.S3Key, err)
	}

	contentType := object.ContentType
	if contentType == "" {
		contentType = record.ContentType
	}

	return &documents.DocumentInfo{
		Filename:      record.OriginalName,
		S3Key:         record.S3Key,
		ContentType:   contentType,
		ContentLength: object.Size,
		DownloadURL:   downloadURL,
		LastModified:  object.LastModified,
	}, nil
}

func (s *documentService) Delete(ctx context.Context, submissionID, filename, category string) error {
	var removed *documents.FileRecord
	_, err := s.submissionRepo.Modify(ctx, submissionID, func(submission *documents.Submission) error {
		record, err := submission.RemoveFile(categoryOrDefault(category), filename)
		if err != nil {
			return err
		}
		if err := s.blobConnector.Delete(ctx, record.S3Key); err != nil && !errors.Is(err, blobs.ErrBlobNotFound) {
			return fmt.Errorf("failed to delete '%s': %w", record.S3Key, err)
		}
		removed = record
		return nil
	})
	if err != nil {
		return err
	}

	// earlier versions go with the document, a failure only leaves an unreferenced object
	for _, version := range removed.Versions {
		s.discardObject(ctx, version.S3Key)
	}

	s.logger.Info("Deleted document ", removed.S3Key)

	s.notifier.publish(ctx, events.DocumentDeleted, map[string]interface{}{
		"submission_id": submissionID,
		"filename":      filename,
		"category":      categoryOrDefault(category),
		"s3_key":        removed.S3Key,
	})
	return nil
}

func (s *documentService) Search(ctx context.Context, query, customerID string) ([]documents.SearchResult, error) {
	phone := ""
	if customerID != "" {
		customer, err := s.customerRepo.GetByCustomerID(ctx, customerID)
		if err != nil {
			if errors.Is(err, customers.ErrCustomerNotFound) {
				return []documents.SearchResult{}, nil
			}
			return nil, err
		}
		phone = customer.Phone
	}

	submissions, err := s.submissionRepo.List(ctx, phone)
	if err != nil {
		return nil, err
	}

	needle := strings.ToLower(strings.TrimSpace(query))
	results := []documents.SearchResult{}
	for _, submission := range submissions {
		companyMatch := needle != "" && strings.Contains(strings.ToLower(submission.CompanyName), needle)
		for _, category := range submission.Categories() {
			for _, record := range submission.FileLinks[category] {
				if !companyMatch && !strings.Contains(strings.ToLower(record.OriginalName), needle) {
					continue
				}
				results = append(results, documents.SearchResult{
					SubmissionID: submission.SubmissionID,
					CompanyName:  submission.CompanyName,
					Category:     category,
					Filename:     record.OriginalName,
					S3Key:        record.S3Key,
					UploadedAt:   record.UploadedAt,
				})
			}
		}
	}
	return results, nil
}

func (s *documentService) ListForCustomer(ctx context.Context, customerID string) ([]documents.CustomerDocument, error) {
	customer, err := s.customerRepo.GetByCustomerID(ctx, customerID)
	if err != nil {
		return nil, err
	}

	submissions, err := s.submissionRepo.List(ctx, customer.Phone)
	if err != nil {
		return nil, err
	}

	result := []documents.CustomerDocument{}
	for _, submission := range submissions {
		for _, category := range submission.Categories() {
			for _, record := range submission.FileLinks[category] {
				result = append(result, documents.CustomerDocument{
					SubmissionID: submission.SubmissionID,
					Category:     category,
					Record:       record,
				})
			}
		}
	}
	return result, nil
}

func (s *documentService) Versions(ctx context.Context, submissionID, filename, category string) (*documents.FileVersions, error) {
	record, err := s.findRecord(ctx, submissionID, filename, category)
	if err != nil {
		return nil, err
	}

	versions := record.Versions
	if versions == nil {
		versions = []documents.FileRecord{}
	}
	return &documents.FileVersions{
		Filename: record.OriginalName,
		Current:  *record,
		Versions: versions,
	}, nil
}

func (s *documentService) findRecord(ctx context.Context, submissionID, filename, category string) (*documents.FileRecord, error) {
	submission, err := s.submissionRepo.GetBySubmissionID(ctx, submissionID)
	if err != nil {
		return nil, err
	}
	return submission.FindFile(categoryOrDefault(category), filename)
}

func categoryOrDefault(category string) string {
	if category == "" {
		return documents.DefaultCategory
	}
	return category
}

func readFileHeader(fileHeader *multipart.FileHeader) ([]byte, error) {
	file, err := fileHeader.Open()
	if err != nil {
		return nil, fmt.Errorf("failed to open file '%s': %w", fileHeader.Filename, err)
	}
	defer file.Close()

	content, err := io.ReadAll(file)
	if err != nil {
		return nil, fmt.Errorf("failed to read file '%s': %w", fileHeader.Filename, err)
	}
	return content, nil
}

// detectContentType prefers the declared part type, then the extension, then content sniffing
func detectContentType(fileHeader *multipart.FileHeader, filename string, content []byte) string {
	declared := fileHeader.Header.Get("Content-Type")
	if declared != "" && declared != "application/octet-stream" {
		return declared
	}
	if strings.EqualFold(path.Ext(filename), ".pdf") {
		return pdfContentType
	}
	return http.DetectContentType(content)
}
