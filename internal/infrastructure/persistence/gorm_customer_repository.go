package persistence

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/eskiturk2021/api-gateway/internal/domain/customers"
	"github.com/eskiturk2021/api-gateway/internal/infrastructure/persistence/models"
	"github.com/eskiturk2021/api-gateway/internal/pkg/logger"

	"gorm.io/gorm"
)

type gormCustomerRepository struct {
	db     *gorm.DB
	logger logger.Logger
}

// NewGormCustomerRepository creates a new GORM-based CustomerRepository implementation
func NewGormCustomerRepository(db *gorm.DB, logger logger.Logger) (customers.CustomerRepository, error) {
	return &gormCustomerRepository{
		db:     db,
		logger: logger,
	}, nil
}

func (r *gormCustomerRepository) Create(ctx context.Context, customer *customers.Customer) error {
	if err := customer.Validate(); err != nil {
		return fmt.Errorf("validation error: %w", err)
	}

	model := &models.CustomerModel{}
	model.FromDomain(customer)

	if err := r.db.WithContext(ctx).Create(model).Error; err != nil {
		return fmt.Errorf("failed to create customer: %w", err)
	}

	customer.ID = model.ID
	customer.CreatedAt = model.CreatedAt
	r.logger.Info("Created customer ", customer.CustomerID)
	return nil
}

func (r *gormCustomerRepository) GetByID(ctx context.Context, id int64) (*customers.Customer, error) {
	return r.first(ctx, "id = ?", id)
}

func (r *gormCustomerRepository) GetByCustomerID(ctx context.Context, customerID string) (*customers.Customer, error) {
	return r.first(ctx, "customer_id = ?", customerID)
}

func (r *gormCustomerRepository) GetByPhone(ctx context.Context, phone string) (*customers.Customer, error) {
	return r.first(ctx, "phone = ?", phone)
}

func (r *gormCustomerRepository) first(ctx context.Context, condition string, value interface{}) (*customers.Customer, error) {
	var model models.CustomerModel
	if err := r.db.WithContext(ctx).Where(condition, value).First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, customers.ErrCustomerNotFound
		}
		return nil, fmt.Errorf("failed to fetch customer: %w", err)
	}
	return model.ToDomain(), nil
}

func (r *gormCustomerRepository) List(ctx context.Context, query *customers.CustomerQuery) ([]*customers.Customer, int64, error) {
	if err := query.Validate(); err != nil {
		return nil, 0, fmt.Errorf("invalid query parameters: %w", err)
	}

	dbQuery := r.db.WithContext(ctx).Model(&models.CustomerModel{})
	if search := strings.TrimSpace(query.Search); search != "" {
		pattern := "%" + strings.ToLower(search) + "%"
		dbQuery = dbQuery.Where(
			"LOWER(name) LIKE ? OR LOWER(phone) LIKE ? OR LOWER(vehicle_make) LIKE ? OR LOWER(vehicle_model) LIKE ?",
			pattern, pattern, pattern, pattern,
		)
	}

	var total int64
	if err := dbQuery.Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count customers: %w", err)
	}

	var modelList []*models.CustomerModel
	if err := dbQuery.Order("created_at DESC, id DESC").Limit(query.Limit).Offset(query.Offset).Find(&modelList).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to fetch customers: %w", err)
	}

	domainList := make([]*customers.Customer, len(modelList))
	for i, model := range modelList {
		domainList[i] = model.ToDomain()
	}
	return domainList, total, nil
}

func (r *gormCustomerRepository) Update(ctx context.Context, customer *customers.Customer) error {
	if err := customer.Validate(); err != nil {
		return fmt.Errorf("validation error: %w", err)
	}

	model := &models.CustomerModel{}
	model.FromDomain(customer)

	if err := r.db.WithContext(ctx).Save(model).Error; err != nil {
		return fmt.Errorf("failed to update customer: %w", err)
	}

	r.logger.Info("Updated customer ", customer.CustomerID)
	return nil
}

func (r *gormCustomerRepository) Count(ctx context.Context) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&models.CustomerModel{}).Count(&count).Error; err != nil {
		return 0, fmt.Errorf("failed to count customers: %w", err)
	}
	return count, nil
}

func (r *gormCustomerRepository) CountCreatedSince(ctx context.Context, since time.Time) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&models.CustomerModel{}).Where("created_at >= ?", since).Count(&count).Error; err != nil {
		return 0, fmt.Errorf("failed to count new customers: %w", err)
	}
	return count, nil
}

func (r *gormCustomerRepository) CountWithMinVisits(ctx context.Context, minVisits int) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&models.CustomerModel{}).Where("total_visits >= ?", minVisits).Count(&count).Error; err != nil {
		return 0, fmt.Errorf("failed to count returning customers: %w", err)
	}
	return count, nil
}
