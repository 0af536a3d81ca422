package persistence

import (
	"context"
	"errors"
	"fmt"

	"github.com/eskiturk2021/api-gateway/internal/domain/settings"
	"github.com/eskiturk2021/api-gateway/internal/infrastructure/persistence/models"
	"github.com/eskiturk2021/api-gateway/internal/pkg/logger"

	"gorm.io/gorm"
)

type gormServiceRepository struct {
	db     *gorm.DB
	logger logger.Logger
}

// NewGormServiceRepository creates a new GORM-based ServiceRepository implementation
func NewGormServiceRepository(db *gorm.DB, logger logger.Logger) (settings.ServiceRepository, error) {
	return &gormServiceRepository{
		db:     db,
		logger: logger,
	}, nil
}

func (r *gormServiceRepository) Create(ctx context.Context, service *settings.ServiceOffering) error {
	if err := service.Validate(); err != nil {
		return fmt.Errorf("validation error: %w", err)
	}

	model := &models.ServiceModel{}
	model.FromDomain(service)

	if err := r.db.WithContext(ctx).Create(model).Error; err != nil {
		return fmt.Errorf("failed to create service: %w", err)
	}

	service.ID = model.ID
	service.CreatedAt = model.CreatedAt
	r.logger.Info("Created service ", service.ServiceID)
	return nil
}

func (r *gormServiceRepository) GetByServiceID(ctx context.Context, serviceID string) (*settings.ServiceOffering, error) {
	var model models.ServiceModel
	if err := r.db.WithContext(ctx).Where("service_id = ?", serviceID).First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, settings.ErrServiceNotFound
		}
		return nil, fmt.Errorf("failed to fetch service: %w", err)
	}
	return model.ToDomain(), nil
}

func (r *gormServiceRepository) ListActive(ctx context.Context) ([]*settings.ServiceOffering, error) {
	var modelList []*models.ServiceModel
	if err := r.db.WithContext(ctx).Where("active = ?", true).Order("category ASC, name ASC").Find(&modelList).Error; err != nil {
		return nil, fmt.Errorf("failed to fetch services: %w", err)
	}

	services := make([]*settings.ServiceOffering, len(modelList))
	for i, model := range modelList {
		services[i] = model.ToDomain()
	}
	return services, nil
}

func (r *gormServiceRepository) Update(ctx context.Context, service *settings.ServiceOffering) error {
	if err := service.Validate(); err != nil {
		return fmt.Errorf("validation error: %w", err)
	}

	model := &models.ServiceModel{}
	model.FromDomain(service)

	if err := r.db.WithContext(ctx).Save(model).Error; err != nil {
		return fmt.Errorf("failed to update service: %w", err)
	}

	r.logger.Info("Updated service ", service.ServiceID)
	return nil
}
