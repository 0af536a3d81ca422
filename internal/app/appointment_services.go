package app

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/eskiturk2021/api-gateway/internal/domain/activities"
	"github.com/eskiturk2021/api-gateway/internal/domain/appointments"
	"github.com/eskiturk2021/api-gateway/internal/domain/customers"
	"github.com/eskiturk2021/api-gateway/internal/domain/events"
	"github.com/eskiturk2021/api-gateway/internal/pkg/logger"
	"github.com/eskiturk2021/api-gateway/internal/pkg/validators"
)

// appointmentService implements the AppointmentService interface
type appointmentService struct {
	appointmentRepo appointments.AppointmentRepository
	slotRepo        appointments.SlotRepository
	customerRepo    customers.CustomerRepository
	notifier        *notifier
	logger          logger.Logger
	now             func() time.Time
}

// NewAppointmentService creates a new instance of AppointmentService
func NewAppointmentService(
	appointmentRepo appointments.AppointmentRepository,
	slotRepo appointments.SlotRepository,
	customerRepo customers.CustomerRepository,
	activityRepo activities.ActivityRepository,
	publisher events.Publisher,
	logger logger.Logger,
) (appointments.AppointmentService, error) {
	return &appointmentService{
		appointmentRepo: appointmentRepo,
		slotRepo:        slotRepo,
		customerRepo:    customerRepo,
		notifier:        &notifier{publisher: publisher, activityRepo: activityRepo, logger: logger},
		logger:          logger,
		now:             time.Now,
	}, nil
}

func (s *appointmentService) today() string {
	return s.now().Format(validators.DateLayout)
}

func (s *appointmentService) ListUpcoming(ctx context.Context, limit, offset int) ([]*appointments.Appointment, error) {
	return s.appointmentRepo.ListUpcoming(ctx, s.today(), limit, offset)
}

func (s *appointmentService) GetByAppointmentID(ctx context.Context, appointmentID string) (*appointments.Appointment, error) {
	return s.appointmentRepo.GetByAppointmentID(ctx, appointmentID)
}

func (s *appointmentService) ListByCustomerPhone(ctx context.Context, phone string, limit int) ([]*appointments.Appointment, error) {
	return s.appointmentRepo.ListByCustomerPhone(ctx, validators.NormalizePhone(phone), limit)
}

func (s *appointmentService) Create(ctx context.Context, req *appointments.CreateAppointmentRequest) (*appointments.Appointment, error) {
	if err := req.Validate(); err != nil {
		return nil, fmt.Errorf("validation error: %w", err)
	}

	customer, err := s.customerRepo.GetByCustomerID(ctx, req.CustomerID)
	if err != nil {
		return nil, err
	}

	// dates share the YYYY-MM-DD layout, so string order is calendar order
	if req.AppointmentDate < s.today() {
		return nil, appointments.ErrPastDate
	}

	if err := s.slotRepo.Reserve(ctx, req.AppointmentDate, req.AppointmentTime); err != nil {
		return nil, err
	}

	appointment := &appointments.Appointment{
		AppointmentID: appointments.NewAppointmentID(),
		CustomerPhone: customer.Phone,
		CustomerName:  customer.Name,
		VehicleMake:   customer.VehicleMake,
		VehicleModel:  customer.VehicleModel,
		VehicleYear:   customer.VehicleYear,
		ServiceType:   req.ServiceType,
		Date:          req.AppointmentDate,
		Time:          req.AppointmentTime,
		EstimatedCost: req.EstimatedCost,
		Notes:         req.Notes,
		Status:        appointments.StatusPending,
	}
	if err := s.appointmentRepo.Create(ctx, appointment); err != nil {
		s.releaseSlot(ctx, appointment.Date, appointment.Time)
		return nil, err
	}

	if visit, err := appointment.Start(time.UTC); err == nil {
		customer.RecordVisit(visit)
		if err := s.customerRepo.Update(ctx, customer); err != nil {
			s.logger.Warn("Failed to record visit of customer ", customer.CustomerID, ": ", err)
		}
	}

	s.logger.Info("Created appointment ", appointment.AppointmentID, " for customer ", customer.CustomerID)

	s.notifier.record(ctx, &customer.ID, activities.TypeAppointment,
		fmt.Sprintf("Appointment booked: %s on %s at %s", appointment.ServiceType, appointment.Date, appointment.Time))
	s.notifier.publish(ctx, events.AppointmentCreated, map[string]interface{}{
		"id": appointment.AppointmentID,
		"customer": map[string]interface{}{
			"name":  customer.Name,
			"phone": customer.Phone,
		},
		"service": map[string]interface{}{
			"type": appointment.ServiceType,
		},
		"appointment_date": appointment.Date,
		"appointment_time": appointment.Time,
		"status":           appointment.Status,
	})

	return appointment, nil
}

func (s *appointmentService) Update(ctx context.Context, appointmentID string, req *appointments.UpdateAppointmentRequest) (*appointments.Appointment, error) {
	if err := req.Validate(); err != nil {
		return nil, fmt.Errorf("validation error: %w", err)
	}

	appointment, err := s.appointmentRepo.GetByAppointmentID(ctx, appointmentID)
	if err != nil {
		return nil, err
	}

	oldDate, oldTime := appointment.Date, appointment.Time
	wasActive := appointment.IsActive()

	newDate, newTime := oldDate, oldTime
	if req.AppointmentDate != nil {
		newDate = *req.AppointmentDate
	}
	if req.AppointmentTime != nil {
		newTime = *req.AppointmentTime
	}
	newStatus := appointment.Status
	if req.Status != nil {
		newStatus = *req.Status
	}
	isActive := newStatus != appointments.StatusCancelled
	moved := newDate != oldDate || newTime != oldTime

	if moved && newDate < s.today() {
		return nil, appointments.ErrPastDate
	}

	// occupy the new slot before freeing the old one so a failed reservation leaves the booking intact
	reserved := false
	if isActive && (moved || !wasActive) {
		if err := s.slotRepo.Reserve(ctx, newDate, newTime); err != nil {
			return nil, err
		}
		reserved = true
	}

	if req.ServiceType != nil {
		appointment.ServiceType = *req.ServiceType
	}
	if req.Notes != nil {
		appointment.Notes = *req.Notes
	}
	if req.EstimatedCost != nil {
		cost := *req.EstimatedCost
		appointment.EstimatedCost = &cost
	}
	appointment.Date, appointment.Time, appointment.Status = newDate, newTime, newStatus

	if err := s.appointmentRepo.Update(ctx, appointment); err != nil {
		if reserved {
			s.releaseSlot(ctx, newDate, newTime)
		}
		return nil, err
	}

	if wasActive && (moved || !isActive) {
		s.releaseSlot(ctx, oldDate, oldTime)
	}

	s.logger.Info("Updated appointment ", appointment.AppointmentID)

	s.notifier.publish(ctx, events.AppointmentUpdated, map[string]interface{}{
		"id":      appointment.AppointmentID,
		"status":  appointment.Status,
		"changes": req.Changes(),
	})

	return appointment, nil
}

func (s *appointmentService) Cancel(ctx context.Context, appointmentID string) error {
	appointment, err := s.appointmentRepo.GetByAppointmentID(ctx, appointmentID)
	if err != nil {
		return err
	}
	if !appointment.IsActive() {
		return nil
	}

	appointment.Status = appointments.StatusCancelled
	if err := s.appointmentRepo.Update(ctx, appointment); err != nil {
		return err
	}
	s.releaseSlot(ctx, appointment.Date, appointment.Time)

	s.logger.Info("Cancelled appointment ", appointment.AppointmentID)

	s.notifier.publish(ctx, events.AppointmentCancelled, map[string]interface{}{
		"id":               appointment.AppointmentID,
		"appointment_date": appointment.Date,
		"appointment_time": appointment.Time,
		"status":           appointment.Status,
	})
	return nil
}

func (s *appointmentService) Calendar(ctx context.Context, year, month int) ([]*appointments.Appointment, error) {
	from, to, err := appointments.MonthRange(year, month)
	if err != nil {
		return nil, err
	}
	return s.appointmentRepo.ListInRange(ctx, from, to)
}

func (s *appointmentService) AvailableSlots(ctx context.Context, date string) ([]appointments.SlotAvailability, error) {
	if err := validators.Var(date, "required,"+validators.DateTag); err != nil {
		return nil, fmt.Errorf("invalid date %q: %w", date, err)
	}

	known, err := s.slotRepo.ListForDate(ctx, date)
	if err != nil {
		return nil, err
	}
	return appointments.BuildAvailability(known), nil
}

func (s *appointmentService) releaseSlot(ctx context.Context, date, t string) {
	if err := s.slotRepo.Release(ctx, date, t); err != nil && !errors.Is(err, context.Canceled) {
		s.logger.Warn("Failed to release slot ", date, " ", t, ": ", err)
	}
}
