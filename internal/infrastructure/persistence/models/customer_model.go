package models

import (
	"time"

	"github.com/eskiturk2021/api-gateway/internal/domain/customers"
)

// CustomerModel is the GORM database model for customers
type CustomerModel struct {
	ID           int64      `gorm:"primaryKey;autoIncrement"`
	CustomerID   string     `gorm:"uniqueIndex;size:20;not null"`
	Phone        string     `gorm:"uniqueIndex;size:30;not null"`
	Name         string     `gorm:"size:100"`
	VehicleMake  string     `gorm:"size:100"`
	VehicleModel string     `gorm:"size:100"`
	VehicleYear  string     `gorm:"size:10"`
	LastVisit    *time.Time `gorm:"index"`
	TotalVisits  int        `gorm:"not null;default:0"`
	CreatedAt    time.Time  `gorm:"index"`
}

// TableName specifies the table name for GORM
func (CustomerModel) TableName() string {
	return "customers"
}

// ToDomain converts GORM model to domain entity
func (m *CustomerModel) ToDomain() *customers.Customer {
	return &customers.Customer{
		ID:           m.ID,
		CustomerID:   m.CustomerID,
		Phone:        m.Phone,
		Name:         m.Name,
		VehicleMake:  m.VehicleMake,
		VehicleModel: m.VehicleModel,
		VehicleYear:  m.VehicleYear,
		LastVisit:    m.LastVisit,
		TotalVisits:  m.TotalVisits,
		CreatedAt:    m.CreatedAt,
	}
}

// FromDomain converts domain entity to GORM model
func (m *CustomerModel) FromDomain(c *customers.Customer) {
	m.ID = c.ID
	m.CustomerID = c.CustomerID
	m.Phone = c.Phone
	m.Name = c.Name
	m.VehicleMake = c.VehicleMake
	m.VehicleModel = c.VehicleModel
	m.VehicleYear = c.VehicleYear
	m.LastVisit = c.LastVisit
	m.TotalVisits = c.TotalVisits
	m.CreatedAt = c.CreatedAt
}
