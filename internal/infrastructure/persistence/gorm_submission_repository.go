package persistence

import (
	"context"
	"errors"
	"fmt"

	"github.com/eskiturk2021/api-gateway/internal/domain/documents"
	"github.com/eskiturk2021/api-gateway/internal/infrastructure/persistence/models"
	"github.com/eskiturk2021/api-gateway/internal/pkg/logger"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type gormSubmissionRepository struct {
	db     *gorm.DB
	logger logger.Logger
}

// NewGormSubmissionRepository creates a new GORM-based SubmissionRepository implementation
func NewGormSubmissionRepository(db *gorm.DB, logger logger.Logger) (documents.SubmissionRepository, error) {
	return &gormSubmissionRepository{
		db:     db,
		logger: logger,
	}, nil
}

func (r *gormSubmissionRepository) Create(ctx context.Context, submission *documents.Submission) error {
	if err := submission.Validate(); err != nil {
		return fmt.Errorf("validation error: %w", err)
	}

	model := &models.SubmissionModel{}
	model.FromDomain(submission)

	if err := r.db.WithContext(ctx).Create(model).Error; err != nil {
		return fmt.Errorf("failed to create submission: %w", err)
	}

	submission.ID = model.ID
	submission.CreatedAt = model.CreatedAt
	r.logger.Info("Created submission ", submission.SubmissionID)
	return nil
}

func (r *gormSubmissionRepository) GetBySubmissionID(ctx context.Context, submissionID string) (*documents.Submission, error) {
	var model models.SubmissionModel
	if err := r.db.WithContext(ctx).Where("submission_id = ?", submissionID).First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, documents.ErrSubmissionNotFound
		}
		return nil, fmt.Errorf("failed to fetch submission: %w", err)
	}
	return model.ToDomain(), nil
}

func (r *gormSubmissionRepository) Update(ctx context.Context, submission *documents.Submission) error {
	if err := submission.Validate(); err != nil {
		return fmt.Errorf("validation error: %w", err)
	}

	model := &models.SubmissionModel{}
	model.FromDomain(submission)

	if err := r.db.WithContext(ctx).Save(model).Error; err != nil {
		return fmt.Errorf("failed to update submission: %w", err)
	}

	r.logger.Info("Updated submission ", submission.SubmissionID)
	return nil
}

func (r *gormSubmissionRepository) Modify(ctx context.Context, submissionID string, fn func(submission *documents.Submission) error) (*documents.Submission, error) {
	return r.modify(ctx, submissionID, false, func(submission *documents.Submission, _ bool) error {
		return fn(submission)
	})
}

func (r *gormSubmissionRepository) Upsert(ctx context.Context, submissionID string, fn func(submission *documents.Submission, created bool) error) (*documents.Submission, error) {
	return r.modify(ctx, submissionID, true, fn)
}

// modify runs load, fn and save in one transaction. The row is read with
// SELECT ... FOR UPDATE so concurrent writers of one submission queue up;
// SQLite has no row locks and serialises writers itself.
func (r *gormSubmissionRepository) modify(ctx context.Context, submissionID string, create bool, fn func(submission *documents.Submission, created bool) error) (*documents.Submission, error) {
	var result *documents.Submission
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		created := false
		model, err := lockSubmission(tx, submissionID)
		if errors.Is(err, gorm.ErrRecordNotFound) && create {
			// the insert is a no-op when a concurrent writer created the row first
			seed := &models.SubmissionModel{
				SubmissionID:   submissionID,
				DocumentNames:  []string{},
				FileLinks:      documents.FileLinks{},
				SubmissionData: map[string]interface{}{},
			}
			inserted := tx.Clauses(clause.OnConflict{
				Columns:   []clause.Column{{Name: "submission_id"}},
				DoNothing: true,
			}).Create(seed)
			if inserted.Error != nil {
				return fmt.Errorf("failed to create submission: %w", inserted.Error)
			}
			created = inserted.RowsAffected == 1
			model, err = lockSubmission(tx, submissionID)
		}
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return documents.ErrSubmissionNotFound
			}
			return fmt.Errorf("failed to fetch submission: %w", err)
		}

		submission := model.ToDomain()
		if err := fn(submission, created); err != nil {
			return err
		}
		if err := submission.Validate(); err != nil {
			return fmt.Errorf("validation error: %w", err)
		}

		model.FromDomain(submission)
		if err := tx.Save(model).Error; err != nil {
			return fmt.Errorf("failed to update submission: %w", err)
		}
		result = submission
		return nil
	})
	if err != nil {
		return nil, err
	}

	r.logger.Info("Updated submission ", submissionID)
	return result, nil
}

func lockSubmission(tx *gorm.DB, submissionID string) (*models.SubmissionModel, error) {
	var model models.SubmissionModel
	err := tx.Clauses(clause.Locking{Strength: clause.LockingStrengthUpdate}).
		Where("submission_id = ?", submissionID).
		First(&model).Error
	if err != nil {
		return nil, err
	}
	return &model, nil
}

func (r *gormSubmissionRepository) List(ctx context.Context, phone string) ([]*documents.Submission, error) {
	dbQuery := r.db.WithContext(ctx).Order("created_at DESC, id DESC")
	if phone != "" {
		dbQuery = dbQuery.Where("phone = ?", phone)
	}

	var modelList []*models.SubmissionModel
	if err := dbQuery.Find(&modelList).Error; err != nil {
		return nil, fmt.Errorf("failed to fetch submissions: %w", err)
	}

	submissions := make([]*documents.Submission, len(modelList))
	for i, model := range modelList {
		submissions[i] = model.ToDomain()
	}
	return submissions, nil
}
