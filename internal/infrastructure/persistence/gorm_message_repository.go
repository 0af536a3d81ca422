package persistence

import (
	"context"
	"fmt"

	"github.com/eskiturk2021/api-gateway/internal/domain/messages"
	"github.com/eskiturk2021/api-gateway/internal/infrastructure/persistence/models"
	"github.com/eskiturk2021/api-gateway/internal/pkg/logger"

	"gorm.io/gorm"
)

const newestFirst = "created_at DESC, id DESC"

type gormMessageRepository struct {
	db     *gorm.DB
	logger logger.Logger
}

// NewGormMessageRepository creates a new GORM-based MessageRepository implementation
func NewGormMessageRepository(db *gorm.DB, logger logger.Logger) (messages.MessageRepository, error) {
	return &gormMessageRepository{
		db:     db,
		logger: logger,
	}, nil
}

func (r *gormMessageRepository) Create(ctx context.Context, message *messages.Message) error {
	if err := message.Validate(); err != nil {
		return fmt.Errorf("validation error: %w", err)
	}

	model := &models.MessageModel{}
	model.FromDomain(message)

	if err := r.db.WithContext(ctx).Create(model).Error; err != nil {
		return fmt.Errorf("failed to create message: %w", err)
	}

	message.ID = model.ID
	message.CreatedAt = model.CreatedAt
	return nil
}

func (r *gormMessageRepository) ListRecent(ctx context.Context, limit int) ([]*messages.Message, error) {
	var modelList []*models.MessageModel
	if err := r.db.WithContext(ctx).Order(newestFirst).Limit(limit).Find(&modelList).Error; err != nil {
		return nil, fmt.Errorf("failed to fetch messages: %w", err)
	}
	return toMessages(modelList), nil
}

func (r *gormMessageRepository) ListLatestPerPhone(ctx context.Context, limit int) ([]*messages.Message, error) {
	latest := r.db.Model(&models.MessageModel{}).Select("MAX(id)").Group("phone")

	var modelList []*models.MessageModel
	if err := r.db.WithContext(ctx).Where("id IN (?)", latest).Order(newestFirst).Limit(limit).Find(&modelList).Error; err != nil {
		return nil, fmt.Errorf("failed to fetch conversations: %w", err)
	}
	return toMessages(modelList), nil
}

func (r *gormMessageRepository) ListByPhone(ctx context.Context, phone string, limit, offset int) ([]*messages.Message, error) {
	var modelList []*models.MessageModel
	err := r.db.WithContext(ctx).
		Where("phone = ?", phone).
		Order(newestFirst).
		Limit(limit).
		Offset(offset).
		Find(&modelList).Error
	if err != nil {
		return nil, fmt.Errorf("failed to fetch messages by phone: %w", err)
	}
	return toMessages(modelList), nil
}

func (r *gormMessageRepository) ListByThread(ctx context.Context, threadID string, limit, offset int) ([]*messages.Message, error) {
	var modelList []*models.MessageModel
	err := r.db.WithContext(ctx).
		Where("thread_id = ?", threadID).
		Order("created_at ASC, id ASC").
		Limit(limit).
		Offset(offset).
		Find(&modelList).Error
	if err != nil {
		return nil, fmt.Errorf("failed to fetch thread messages: %w", err)
	}
	return toMessages(modelList), nil
}

func toMessages(modelList []*models.MessageModel) []*messages.Message {
	domainList := make([]*messages.Message, len(modelList))
	for i, model := range modelList {
		domainList[i] = model.ToDomain()
	}
	return domainList
}
