package persistence

import (
	"context"
	"errors"
	"fmt"

	"github.com/eskiturk2021/api-gateway/internal/domain/appointments"
	"github.com/eskiturk2021/api-gateway/internal/infrastructure/persistence/models"
	"github.com/eskiturk2021/api-gateway/internal/pkg/logger"

	"gorm.io/gorm"
)

type gormSlotRepository struct {
	db     *gorm.DB
	logger logger.Logger
}

// NewGormSlotRepository creates a new GORM-based SlotRepository implementation
func NewGormSlotRepository(db *gorm.DB, logger logger.Logger) (appointments.SlotRepository, error) {
	return &gormSlotRepository{
		db:     db,
		logger: logger,
	}, nil
}

// Reserve flips an available slot in a single conditional update so that two
// concurrent bookings cannot both succeed. Missing slots are inserted booked and
// the unique (date, time) index rejects the loser of a concurrent insert.
func (r *gormSlotRepository) Reserve(ctx context.Context, date, time string) error {
	db := r.db.WithContext(ctx)

	result := db.Model(&models.AvailableSlotModel{}).
		Where(map[string]interface{}{"date": date, "time": time, "is_available": true}).
		Update("is_available", false)
	if result.Error != nil {
		return fmt.Errorf("failed to reserve slot: %w", result.Error)
	}
	if result.RowsAffected > 0 {
		return nil
	}

	var existing int64
	if err := db.Model(&models.AvailableSlotModel{}).Where(map[string]interface{}{"date": date, "time": time}).Count(&existing).Error; err != nil {
		return fmt.Errorf("failed to look up slot: %w", err)
	}
	if existing > 0 {
		return appointments.ErrSlotTaken
	}

	model := &models.AvailableSlotModel{Date: date, Time: time, IsAvailable: false}
	if err := db.Create(model).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return appointments.ErrSlotTaken
		}
		return fmt.Errorf("failed to create slot: %w", err)
	}

	r.logger.Info("Reserved slot ", date, " ", time)
	return nil
}

func (r *gormSlotRepository) Release(ctx context.Context, date, time string) error {
	err := r.db.WithContext(ctx).Model(&models.AvailableSlotModel{}).
		Where(map[string]interface{}{"date": date, "time": time}).
		Update("is_available", true).Error
	if err != nil {
		return fmt.Errorf("failed to release slot: %w", err)
	}
	return nil
}

func (r *gormSlotRepository) ListForDate(ctx context.Context, date string) ([]*appointments.Slot, error) {
	var modelList []*models.AvailableSlotModel
	if err := r.db.WithContext(ctx).Where(map[string]interface{}{"date": date}).Find(&modelList).Error; err != nil {
		return nil, fmt.Errorf("failed to fetch slots: %w", err)
	}

	slots := make([]*appointments.Slot, len(modelList))
	for i, model := range modelList {
		slots[i] = model.ToDomain()
	}
	return slots, nil
}
