package models

import (
	"time"

	"github.com/eskiturk2021/api-gateway/internal/domain/appointments"
)

// AppointmentModel is the GORM database model for appointments.
// Dates and times are stored as YYYY-MM-DD and HH:MM text so that ordering
// and range queries behave the same on PostgreSQL and SQLite.
type AppointmentModel struct {
	ID              int64    `gorm:"primaryKey;autoIncrement"`
	AppointmentID   string   `gorm:"uniqueIndex;size:30;not null"`
	CustomerPhone   string   `gorm:"index;size:30;not null"`
	CustomerName    string   `gorm:"size:100;not null"`
	VehicleMake     string   `gorm:"size:100"`
	VehicleModel    string   `gorm:"size:100"`
	VehicleYear     string   `gorm:"size:10"`
	ServiceType     string   `gorm:"size:50;not null"`
	AppointmentDate string   `gorm:"index;size:10;not null"`
	AppointmentTime string   `gorm:"size:5;not null"`
	EstimatedCost   *float64 `gorm:"type:numeric(10,2)"`
	Notes           string   `gorm:"type:text"`
	Status          string   `gorm:"index;size:20;not null;default:pending"`
	CreatedAt       time.Time
}

// TableName specifies the table name for GORM
func (AppointmentModel) TableName() string {
	return "appointments"
}

// ToDomain converts GORM model to domain entity
func (m *AppointmentModel) ToDomain() *appointments.Appointment {
	return &appointments.Appointment{
		ID:            m.ID,
		AppointmentID: m.AppointmentID,
		CustomerPhone: m.CustomerPhone,
		CustomerName:  m.CustomerName,
		VehicleMake:   m.VehicleMake,
		VehicleModel:  m.VehicleModel,
		VehicleYear:   m.VehicleYear,
		ServiceType:   m.ServiceType,
		Date:          m.AppointmentDate,
		Time:          m.AppointmentTime,
		EstimatedCost: m.EstimatedCost,
		Notes:         m.Notes,
		Status:        m.Status,
		CreatedAt:     m.CreatedAt,
	}
}

// FromDomain converts domain entity to GORM model
func (m *AppointmentModel) FromDomain(a *appointments.Appointment) {
	m.ID = a.ID
	m.AppointmentID = a.AppointmentID
	m.CustomerPhone = a.CustomerPhone
	m.CustomerName = a.CustomerName
	m.VehicleMake = a.VehicleMake
	m.VehicleModel = a.VehicleModel
	m.VehicleYear = a.VehicleYear
	m.ServiceType = a.ServiceType
	m.AppointmentDate = a.Date
	m.AppointmentTime = a.Time
	m.EstimatedCost = a.EstimatedCost
	m.Notes = a.Notes
	m.Status = a.Status
	m.CreatedAt = a.CreatedAt
}

// AvailableSlotModel is the GORM database model for booked and freed slots
type AvailableSlotModel struct {
	ID   int64  `gorm:"primaryKey;autoIncrement"`
	Date string `gorm:"uniqueIndex:unique_date_time;size:10;not null"`
	Time string `gorm:"uniqueIndex:unique_date_time;size:5;not null"`
	// no default tag: GORM would replace an explicit false with the column default
	IsAvailable bool `gorm:"not null"`
}

// TableName specifies the table name for GORM
func (AvailableSlotModel) TableName() string {
	return "available_slots"
}

// ToDomain converts GORM model to domain entity
func (m *AvailableSlotModel) ToDomain() *appointments.Slot {
	return &appointments.Slot{
		ID:          m.ID,
		Date:        m.Date,
		Time:        m.Time,
		IsAvailable: m.IsAvailable,
	}
}
