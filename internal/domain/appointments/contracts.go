package appointments

import (
	"context"
)

// RevenuePoint aggregates the appointments of a single day
type RevenuePoint struct {
	Date    string
	Revenue float64
	Count   int64
}

// AppointmentService defines the appointment operations exposed to the API
type AppointmentService interface {
	// ListUpcoming returns pending and confirmed appointments from today on, ordered by date and time.
	ListUpcoming(ctx context.Context, limit, offset int) ([]*Appointment, error)

	GetByAppointmentID(ctx context.Context, appointmentID string) (*Appointment, error)

	// ListByCustomerPhone returns the most recent appointments of a customer.
	ListByCustomerPhone(ctx context.Context, phone string, limit int) ([]*Appointment, error)

	// Create books an appointment for an existing customer and reserves its slot.
	Create(ctx context.Context, req *CreateAppointmentRequest) (*Appointment, error)

	// Update applies a partial update, moving the reserved slot when date or time change.
	Update(ctx context.Context, appointmentID string, req *UpdateAppointmentRequest) (*Appointment, error)

	// Cancel marks the appointment cancelled and frees its slot.
	Cancel(ctx context.Context, appointmentID string) error

	// Calendar returns every appointment of the given month.
	Calendar(ctx context.Context, year, month int) ([]*Appointment, error)

	// AvailableSlots returns the daily slot grid of date.
	AvailableSlots(ctx context.Context, date string) ([]SlotAvailability, error)
}

// AppointmentRepository defines the interface for Appointment persistence
type AppointmentRepository interface {
	Create(ctx context.Context, appointment *Appointment) error
	GetByAppointmentID(ctx context.Context, appointmentID string) (*Appointment, error)
	Update(ctx context.Context, appointment *Appointment) error
	ListUpcoming(ctx context.Context, fromDate string, limit, offset int) ([]*Appointment, error)
	ListByCustomerPhone(ctx context.Context, phone string, limit int) ([]*Appointment, error)
	ListInRange(ctx context.Context, fromDate, toDate string) ([]*Appointment, error)
	// CountScheduledSince counts appointments on or after fromDate that are not cancelled.
	CountScheduledSince(ctx context.Context, fromDate string) (int64, error)
	// RevenueByDay sums estimated costs per day, cancelled appointments excluded.
	RevenueByDay(ctx context.Context, fromDate, toDate string) ([]RevenuePoint, error)
}

// SlotRepository defines the interface for AvailableSlot persistence
type SlotRepository interface {
	// Reserve marks the slot as booked, creating it when missing.
	// It returns ErrSlotTaken when the slot is already booked.
	Reserve(ctx context.Context, date, time string) error
	// Release marks the slot as available again. Unknown slots are ignored.
	Release(ctx context.Context, date, time string) error
	ListForDate(ctx context.Context, date string) ([]*Slot, error)
}
