package appointments

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/eskiturk2021/api-gateway/internal/pkg/validators"

	"github.com/google/uuid"
)

// Appointment statuses
const (
	StatusPending   = "pending"
	StatusConfirmed = "confirmed"
	StatusCancelled = "cancelled"
	StatusCompleted = "completed"
)

// DefaultDuration is the length assumed for calendar entries
const DefaultDuration = 60 * time.Minute

var (
	// ErrAppointmentNotFound is returned when no appointment matches the lookup
	ErrAppointmentNotFound = errors.New("appointment not found")
	// ErrPastDate is returned when an appointment is scheduled before today
	ErrPastDate = errors.New("appointment date is in the past")
	// ErrSlotTaken is returned when the requested date and time are already booked
	ErrSlotTaken = errors.New("time already taken")
)

// Appointment entity
type Appointment struct {
	ID            int64
	AppointmentID string `validate:"required,startswith=APT-,max=30"`
	CustomerPhone string `validate:"required,max=30"`
	CustomerName  string `validate:"max=100"`
	VehicleMake   string
	VehicleModel  string
	VehicleYear   string
	ServiceType   string   `validate:"required,max=50"`
	Date          string   `validate:"required,dateonly"`
	Time          string   `validate:"required,timeofday"`
	EstimatedCost *float64 `validate:"omitempty,min=0"`
	Notes         string   `validate:"max=1000"`
	Status        string   `validate:"required,oneof=pending confirmed cancelled completed"`
	CreatedAt     time.Time
}

// NewAppointmentID returns a public appointment identifier such as APT-1A2B3C4D
func NewAppointmentID() string {
	return "APT-" + strings.ToUpper(strings.ReplaceAll(uuid.NewString(), "-", "")[:8])
}

// Validate for validating Appointment struct
func (a *Appointment) Validate() error {
	return validators.Struct(a)
}

// Start returns the appointment start in loc
func (a *Appointment) Start(loc *time.Location) (time.Time, error) {
	start, err := time.ParseInLocation(validators.DateLayout+" "+validators.TimeOfDayLayout, a.Date+" "+a.Time, loc)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid appointment start %s %s: %w", a.Date, a.Time, err)
	}
	return start, nil
}

// IsActive reports whether the appointment still occupies its slot
func (a *Appointment) IsActive() bool {
	return a.Status != StatusCancelled
}

// CreateAppointmentRequest carries the fields accepted when booking an appointment
type CreateAppointmentRequest struct {
	CustomerID      string   `validate:"required"`
	ServiceType     string   `validate:"required,max=50"`
	AppointmentDate string   `validate:"required,dateonly"`
	AppointmentTime string   `validate:"required,timeofday"`
	Notes           string   `validate:"max=1000"`
	EstimatedCost   *float64 `validate:"omitempty,min=0"`
}

// Validate for validating CreateAppointmentRequest struct
func (r *CreateAppointmentRequest) Validate() error {
	return validators.Struct(r)
}

// UpdateAppointmentRequest carries a partial update, nil fields are left untouched
type UpdateAppointmentRequest struct {
	ServiceType     *string  `validate:"omitempty,min=1,max=50"`
	AppointmentDate *string  `validate:"omitempty,dateonly"`
	AppointmentTime *string  `validate:"omitempty,timeofday"`
	Status          *string  `validate:"omitempty,oneof=pending confirmed cancelled completed"`
	Notes           *string  `validate:"omitempty,max=1000"`
	EstimatedCost   *float64 `validate:"omitempty,min=0"`
}

// Validate for validating UpdateAppointmentRequest struct
func (r *UpdateAppointmentRequest) Validate() error {
	return validators.Struct(r)
}

// Changes lists the fields set on the request, keyed by their JSON names
func (r *UpdateAppointmentRequest) Changes() map[string]interface{} {
	changes := map[string]interface{}{}
	if r.ServiceType != nil {
		changes["service_type"] = *r.ServiceType
	}
	if r.AppointmentDate != nil {
		changes["appointment_date"] = *r.AppointmentDate
	}
	if r.AppointmentTime != nil {
		changes["appointment_time"] = *r.AppointmentTime
	}
	if r.Status != nil {
		changes["status"] = *r.Status
	}
	if r.Notes != nil {
		changes["notes"] = *r.Notes
	}
	if r.EstimatedCost != nil {
		changes["estimated_cost"] = *r.EstimatedCost
	}
	return changes
}
