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

const appointmentOrder = "appointment_date ASC, appointment_time ASC"

type gormAppointmentRepository struct {
	db     *gorm.DB
	logger logger.Logger
}

// NewGormAppointmentRepository creates a new GORM-based AppointmentRepository implementation
func NewGormAppointmentRepository(db *gorm.DB, logger logger.Logger) (appointments.AppointmentRepository, error) {
	return &gormAppointmentRepository{
		db:     db,
		logger: logger,
	}, nil
}

func (r *gormAppointmentRepository) Create(ctx context.Context, appointment *appointments.Appointment) error {
	if err := appointment.Validate(); err != nil {
		return fmt.Errorf("validation error: %w", err)
	}

	model := &models.AppointmentModel{}
	model.FromDomain(appointment)

	if err := r.db.WithContext(ctx).Create(model).Error; err != nil {
		return fmt.Errorf("failed to create appointment: %w", err)
	}

	appointment.ID = model.ID
	appointment.CreatedAt = model.CreatedAt
	r.logger.Info("Created appointment ", appointment.AppointmentID)
	return nil
}

func (r *gormAppointmentRepository) GetByAppointmentID(ctx context.Context, appointmentID string) (*appointments.Appointment, error) {
	var model models.AppointmentModel
	if err := r.db.WithContext(ctx).Where("appointment_id = ?", appointmentID).First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, appointments.ErrAppointmentNotFound
		}
		return nil, fmt.Errorf("failed to fetch appointment: %w", err)
	}
	return model.ToDomain(), nil
}

func (r *gormAppointmentRepository) Update(ctx context.Context, appointment *appointments.Appointment) error {
	if err := appointment.Validate(); err != nil {
		return fmt.Errorf("validation error: %w", err)
	}

	model := &models.AppointmentModel{}
	model.FromDomain(appointment)

	if err := r.db.WithContext(ctx).Save(model).Error; err != nil {
		return fmt.Errorf("failed to update appointment: %w", err)
	}

	r.logger.Info("Updated appointment ", appointment.AppointmentID)
	return nil
}

func (r *gormAppointmentRepository) ListUpcoming(ctx context.Context, fromDate string, limit, offset int) ([]*appointments.Appointment, error) {
	var modelList []*models.AppointmentModel
	err := r.db.WithContext(ctx).
		Where("appointment_date >= ?", fromDate).
		Where("status IN ?", []string{appointments.StatusPending, appointments.StatusConfirmed}).
		Order(appointmentOrder).
		Limit(limit).
		Offset(offset).
		Find(&modelList).Error
	if err != nil {
		return nil, fmt.Errorf("failed to fetch upcoming appointments: %w", err)
	}
	return toAppointments(modelList), nil
}

func (r *gormAppointmentRepository) ListByCustomerPhone(ctx context.Context, phone string, limit int) ([]*appointments.Appointment, error) {
	var modelList []*models.AppointmentModel
	err := r.db.WithContext(ctx).
		Where("customer_phone = ?", phone).
		Order("appointment_date DESC, appointment_time DESC").
		Limit(limit).
		Find(&modelList).Error
	if err != nil {
		return nil, fmt.Errorf("failed to fetch customer appointments: %w", err)
	}
	return toAppointments(modelList), nil
}

func (r *gormAppointmentRepository) ListInRange(ctx context.Context, fromDate, toDate string) ([]*appointments.Appointment, error) {
	var modelList []*models.AppointmentModel
	err := r.db.WithContext(ctx).
		Where("appointment_date BETWEEN ? AND ?", fromDate, toDate).
		Order(appointmentOrder).
		Find(&modelList).Error
	if err != nil {
		return nil, fmt.Errorf("failed to fetch appointments in range: %w", err)
	}
	return toAppointments(modelList), nil
}

func (r *gormAppointmentRepository) CountScheduledSince(ctx context.Context, fromDate string) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.AppointmentModel{}).
		Where("appointment_date >= ?", fromDate).
		Where("status <> ?", appointments.StatusCancelled).
		Count(&count).Error
	if err != nil {
		return 0, fmt.Errorf("failed to count scheduled appointments: %w", err)
	}
	return count, nil
}

type revenueRow struct {
	AppointmentDate string
	Revenue         float64
	Count           int64
}

func (r *gormAppointmentRepository) RevenueByDay(ctx context.Context, fromDate, toDate string) ([]appointments.RevenuePoint, error) {
	var rows []revenueRow
	err := r.db.WithContext(ctx).Model(&models.AppointmentModel{}).
		Select("appointment_date, COALESCE(SUM(estimated_cost), 0) AS revenue, COUNT(*) AS count").
		Where("appointment_date BETWEEN ? AND ?", fromDate, toDate).
		Where("status <> ?", appointments.StatusCancelled).
		Group("appointment_date").
		Order("appointment_date ASC").
		Scan(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("failed to aggregate revenue: %w", err)
	}

	points := make([]appointments.RevenuePoint, len(rows))
	for i, row := range rows {
		points[i] = appointments.RevenuePoint{Date: row.AppointmentDate, Revenue: row.Revenue, Count: row.Count}
	}
	return points, nil
}

func toAppointments(modelList []*models.AppointmentModel) []*appointments.Appointment {
	domainList := make([]*appointments.Appointment, len(modelList))
	for i, model := range modelList {
		domainList[i] = model.ToDomain()
	}
	return domainList
}
