package models

import (
	"time"

	"github.com/eskiturk2021/api-gateway/internal/domain/activities"
)

// ActivityModel is the GORM database model for the activity feed
type ActivityModel struct {
	ID         int64          `gorm:"primaryKey;autoIncrement"`
	CustomerID *int64         `gorm:"index"`
	Customer   *CustomerModel `gorm:"foreignKey:CustomerID;constraint:OnDelete:SET NULL"`
	Message    string         `gorm:"type:text;not null"`
	Type       string         `gorm:"size:50;not null"`
	CreatedAt  time.Time      `gorm:"index"`
}

// TableName specifies the table name for GORM
func (ActivityModel) TableName() string {
	return "activities"
}

// ToDomain converts GORM model to domain entity, resolving the customer when preloaded
func (m *ActivityModel) ToDomain() *activities.Activity {
	activity := &activities.Activity{
		ID:         m.ID,
		CustomerID: m.CustomerID,
		Message:    m.Message,
		Type:       m.Type,
		CreatedAt:  m.CreatedAt,
	}
	if m.Customer != nil {
		activity.CustomerRef = m.Customer.CustomerID
		activity.CustomerName = m.Customer.Name
	}
	return activity
}

// FromDomain converts domain entity to GORM model
func (m *ActivityModel) FromDomain(a *activities.Activity) {
	m.ID = a.ID
	m.CustomerID = a.CustomerID
	m.Message = a.Message
	m.Type = a.Type
	m.CreatedAt = a.CreatedAt
}
