package models

import (
	"time"

	"github.com/eskiturk2021/api-gateway/internal/domain/settings"
)

// ServiceModel is the GORM database model for service offerings
type ServiceModel struct {
	ID          int64   `gorm:"primaryKey;autoIncrement"`
	ServiceID   string  `gorm:"uniqueIndex;size:20;not null"`
	Name        string  `gorm:"size:100;not null"`
	Description string  `gorm:"type:text"`
	Duration    int     `gorm:"not null"`
	Price       float64 `gorm:"type:numeric(10,2);not null"`
	Category    string  `gorm:"size:50;not null"`
	Active      bool    `gorm:"index;not null"`
	CreatedAt   time.Time
}

// TableName specifies the table name for GORM
func (ServiceModel) TableName() string {
	return "services"
}

// ToDomain converts GORM model to domain entity
func (m *ServiceModel) ToDomain() *settings.ServiceOffering {
	return &settings.ServiceOffering{
		ID:          m.ID,
		ServiceID:   m.ServiceID,
		Name:        m.Name,
		Description: m.Description,
		Duration:    m.Duration,
		Price:       m.Price,
		Category:    m.Category,
		Active:      m.Active,
		CreatedAt:   m.CreatedAt,
	}
}

// FromDomain converts domain entity to GORM model
func (m *ServiceModel) FromDomain(s *settings.ServiceOffering) {
	m.ID = s.ID
	m.ServiceID = s.ServiceID
	m.Name = s.Name
	m.Description = s.Description
	m.Duration = s.Duration
	m.Price = s.Price
	m.Category = s.Category
	m.Active = s.Active
	m.CreatedAt = s.CreatedAt
}
