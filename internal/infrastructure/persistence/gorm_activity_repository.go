package persistence

import (
	"context"
	"fmt"

	"github.com/eskiturk2021/api-gateway/internal/domain/activities"
	"github.com/eskiturk2021/api-gateway/internal/infrastructure/persistence/models"
	"github.com/eskiturk2021/api-gateway/internal/pkg/logger"

	"gorm.io/gorm"
)

type gormActivityRepository struct {
	db     *gorm.DB
	logger logger.Logger
}

// NewGormActivityRepository creates a new GORM-based ActivityRepository implementation
func NewGormActivityRepository(db *gorm.DB, logger logger.Logger) (activities.ActivityRepository, error) {
	return &gormActivityRepository{
		db:     db,
		logger: logger,
	}, nil
}

func (r *gormActivityRepository) Create(ctx context.Context, activity *activities.Activity) error {
	if err := activity.Validate(); err != nil {
		return fmt.Errorf("validation error: %w", err)
	}

	model := &models.ActivityModel{}
	model.FromDomain(activity)

	if err := r.db.WithContext(ctx).Create(model).Error; err != nil {
		return fmt.Errorf("failed to create activity: %w", err)
	}

	activity.ID = model.ID
	activity.CreatedAt = model.CreatedAt
	return nil
}

func (r *gormActivityRepository) ListRecent(ctx context.Context, limit, offset int) ([]*activities.Activity, error) {
	var modelList []*models.ActivityModel
	err := r.db.WithContext(ctx).
		Preload("Customer").
		Order("created_at DESC, id DESC").
		Limit(limit).
		Offset(offset).
		Find(&modelList).Error
	if err != nil {
		return nil, fmt.Errorf("failed to fetch activities: %w", err)
	}
	return toActivities(modelList), nil
}

func (r *gormActivityRepository) ListByCustomer(ctx context.Context, customerID int64, limit int) ([]*activities.Activity, error) {
	var modelList []*models.ActivityModel
	err := r.db.WithContext(ctx).
		Preload("Customer").
		Where("customer_id = ?", customerID).
		Order("created_at DESC, id DESC").
		Limit(limit).
		Find(&modelList).Error
	if err != nil {
		return nil, fmt.Errorf("failed to fetch customer activities: %w", err)
	}
	return toActivities(modelList), nil
}

func toActivities(modelList []*models.ActivityModel) []*activities.Activity {
	domainList := make([]*activities.Activity, len(modelList))
	for i, model := range modelList {
		domainList[i] = model.ToDomain()
	}
	return domainList
}
