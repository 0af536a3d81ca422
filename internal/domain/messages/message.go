package messages

import (
	"context"
	"time"

	"github.com/eskiturk2021/api-gateway/internal/pkg/validators"
)

// Message is one entry of a customer conversation
type Message struct {
	ID          int64
	PhoneID     string `validate:"max=30"`
	Phone       string `validate:"required,max=30"`
	MessageType string `validate:"required,max=20"`
	MessageText string `validate:"required"`
	ThreadID    string `validate:"max=50"`
	CreatedAt   time.Time
}

// Validate for validating Message struct
func (m *Message) Validate() error {
	return validators.Struct(m)
}

// MessageService defines the conversation history operations
type MessageService interface {
	Recent(ctx context.Context, limit int) ([]*Message, error)
	// Conversations returns the latest message of each phone, newest first.
	Conversations(ctx context.Context, limit int) ([]*Message, error)
	ByPhone(ctx context.Context, phone string, limit, offset int) ([]*Message, error)
	// ByThread returns the messages of a thread, oldest first.
	ByThread(ctx context.Context, threadID string, limit, offset int) ([]*Message, error)
	Create(ctx context.Context, message *Message) error
}

// MessageRepository defines the interface for Message persistence
type MessageRepository interface {
	Create(ctx context.Context, message *Message) error
	ListRecent(ctx context.Context, limit int) ([]*Message, error)
	ListLatestPerPhone(ctx context.Context, limit int) ([]*Message, error)
	ListByPhone(ctx context.Context, phone string, limit, offset int) ([]*Message, error)
	ListByThread(ctx context.Context, threadID string, limit, offset int) ([]*Message, error)
}
