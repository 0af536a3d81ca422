package models

import (
	"time"

	"github.com/eskiturk2021/api-gateway/internal/domain/messages"
)

// MessageModel is the GORM database model for conversation messages
type MessageModel struct {
	ID          int64     `gorm:"primaryKey;autoIncrement"`
	PhoneID     string    `gorm:"size:30"`
	Phone       string    `gorm:"index;size:30;not null"`
	MessageType string    `gorm:"size:20;not null"`
	MessageText string    `gorm:"type:text;not null"`
	ThreadID    string    `gorm:"index;size:50"`
	CreatedAt   time.Time `gorm:"index"`
}

// TableName specifies the table name for GORM
func (MessageModel) TableName() string {
	return "messages"
}

// ToDomain converts GORM model to domain entity
func (m *MessageModel) ToDomain() *messages.Message {
	return &messages.Message{
		ID:          m.ID,
		PhoneID:     m.PhoneID,
		Phone:       m.Phone,
		MessageType: m.MessageType,
		MessageText: m.MessageText,
		ThreadID:    m.ThreadID,
		CreatedAt:   m.CreatedAt,
	}
}

// FromDomain converts domain entity to GORM model
func (m *MessageModel) FromDomain(msg *messages.Message) {
	m.ID = msg.ID
	m.PhoneID = msg.PhoneID
	m.Phone = msg.Phone
	m.MessageType = msg.MessageType
	m.MessageText = msg.MessageText
	m.ThreadID = msg.ThreadID
	m.CreatedAt = msg.CreatedAt
}
