package app

import (
	"context"
	"fmt"
	"strings"

	"github.com/eskiturk2021/api-gateway/internal/domain/messages"
	"github.com/eskiturk2021/api-gateway/internal/pkg/logger"
	"github.com/eskiturk2021/api-gateway/internal/pkg/validators"
)

// messageService implements the MessageService interface
type messageService struct {
	messageRepo messages.MessageRepository
	logger      logger.Logger
}

// NewMessageService creates a new instance of MessageService
func NewMessageService(messageRepo messages.MessageRepository, logger logger.Logger) (messages.MessageService, error) {
	return &messageService{
		messageRepo: messageRepo,
		logger:      logger,
	}, nil
}

func (s *messageService) Recent(ctx context.Context, limit int) ([]*messages.Message, error) {
	return s.messageRepo.ListRecent(ctx, limit)
}

func (s *messageService) Conversations(ctx context.Context, limit int) ([]*messages.Message, error) {
	return s.messageRepo.ListLatestPerPhone(ctx, limit)
}

func (s *messageService) ByPhone(ctx context.Context, phone string, limit, offset int) ([]*messages.Message, error) {
	return s.messageRepo.ListByPhone(ctx, validators.NormalizePhone(phone), limit, offset)
}

func (s *messageService) ByThread(ctx context.Context, threadID string, limit, offset int) ([]*messages.Message, error) {
	return s.messageRepo.ListByThread(ctx, threadID, limit, offset)
}

func (s *messageService) Create(ctx context.Context, message *messages.Message) error {
	message.Phone = validators.NormalizePhone(message.Phone)
	message.MessageType = strings.TrimSpace(message.MessageType)

	if err := message.Validate(); err != nil {
		return fmt.Errorf("validation error: %w", err)
	}
	return s.messageRepo.Create(ctx, message)
}
