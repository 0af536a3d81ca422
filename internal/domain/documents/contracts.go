package documents

import (
	"context"
	"mime/multipart"
)

// DocumentService defines the document operations exposed to the API
type DocumentService interface {
	// Upload stores the file and records it on the submission, creating the submission when missing.
	Upload(ctx context.Context, req *UploadRequest, file *multipart.FileHeader) (*UploadResult, error)

	// Get returns document metadata and a presigned download URL.
	Get(ctx context.Context, submissionID, filename, category string) (*DocumentInfo, error)

	// Delete removes the stored object and its record.
	Delete(ctx context.Context, submissionID, filename, category string) error

	// Search matches file and company names case-insensitively.
	// A non-empty customerID limits results to that customer's submissions.
	Search(ctx context.Context, query, customerID string) ([]SearchResult, error)

	// ListForCustomer returns every document of the submissions sharing the customer's phone.
	ListForCustomer(ctx context.Context, customerID string) ([]CustomerDocument, error)

	// Versions returns the version history of a document.
	Versions(ctx context.Context, submissionID, filename, category string) (*FileVersions, error)
}

// SyncService reconciles stored objects with submission records
type SyncService interface {
	// SyncSubmission rebuilds the file records of a submission from the objects under its prefix.
	SyncSubmission(ctx context.Context, submissionID string) (*SyncResult, error)
}

// SubmissionRepository defines the interface for Submission persistence
type SubmissionRepository interface {
	Create(ctx context.Context, submission *Submission) error
	GetBySubmissionID(ctx context.Context, submissionID string) (*Submission, error)
	Update(ctx context.Context, submission *Submission) error
	// Modify applies fn to the submission while holding its row lock and saves the result.
	// A missing submission yields ErrSubmissionNotFound. An error from fn discards the change.
	Modify(ctx context.Context, submissionID string, fn func(submission *Submission) error) (*Submission, error)
	// Upsert is Modify for a submission that is created first when missing; created reports that case.
	Upsert(ctx context.Context, submissionID string, fn func(submission *Submission, created bool) error) (*Submission, error)
	// List returns submissions, limited to the given phone when it is not empty.
	List(ctx context.Context, phone string) ([]*Submission, error)
}

// PageCounter reports the number of pages of a document
type PageCounter interface {
	CountPages(content []byte) (int, error)
}
