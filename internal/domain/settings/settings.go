package settings

import (
	"errors"
	"strings"
	"time"

	"github.com/eskiturk2021/api-gateway/internal/pkg/validators"

	"github.com/google/uuid"
)

// DefaultSystemPrompt is served when no prompt has been stored
const DefaultSystemPrompt = "You are a helpful assistant that provides information about automotive services."

// DefaultServiceCategory is used when a service offering does not name one
const DefaultServiceCategory = "maintenance"

var (
	// ErrServiceNotFound is returned when no service offering matches the lookup
	ErrServiceNotFound = errors.New("service not found")
	// ErrEmptyPrompt is returned when a prompt update carries no content
	ErrEmptyPrompt = errors.New("prompt content is required")
	// ErrSettingsNotSaved is returned when no settings object could be written
	ErrSettingsNotSaved = errors.New("settings could not be saved")
)

// WorkingHours describes the opening hours of the workshop
type WorkingHours struct {
	Start int      `json:"start" validate:"min=0,max=23"`
	End   int      `json:"end" validate:"min=1,max=24,gtfield=Start"`
	Days  []string `json:"days" validate:"required,min=1,max=7,unique,dive,oneof=Monday Tuesday Wednesday Thursday Friday Saturday Sunday"`
}

// Validate for validating WorkingHours struct
func (w *WorkingHours) Validate() error {
	return validators.Struct(w)
}

// SystemSettings holds the assistant configuration stored in object storage
type SystemSettings struct {
	SystemPrompt        string       `json:"system_prompt"`
	WorkingHours        WorkingHours `json:"working_hours"`
	AppointmentDuration int          `json:"appointment_duration"`
	NotificationEnabled bool         `json:"notification_enabled"`
}

// DefaultWorkingHours returns 8 to 18, Monday to Saturday
func DefaultWorkingHours() WorkingHours {
	return WorkingHours{
		Start: 8,
		End:   18,
		Days:  []string{"Monday", "Tuesday", "Wednesday", "Thursday", "Friday", "Saturday"},
	}
}

// DefaultSystemSettings returns the settings used when nothing is stored
func DefaultSystemSettings() SystemSettings {
	return SystemSettings{
		SystemPrompt:        DefaultSystemPrompt,
		WorkingHours:        DefaultWorkingHours(),
		AppointmentDuration: 30,
		NotificationEnabled: true,
	}
}

// ServiceOffering entity
type ServiceOffering struct {
	ID          int64
	ServiceID   string  `validate:"required,startswith=SRV-"`
	Name        string  `validate:"required,max=100"`
	Description string  `validate:"max=1000"`
	Duration    int     `validate:"min=1,max=1440"`
	Price       float64 `validate:"min=0"`
	Category    string  `validate:"required,max=50"`
	Active      bool
	CreatedAt   time.Time
}

// NewServiceID returns a public service identifier such as SRV-1A2B3C4D
func NewServiceID() string {
	return "SRV-" + strings.ToUpper(strings.ReplaceAll(uuid.NewString(), "-", "")[:8])
}

// Validate for validating ServiceOffering struct
func (s *ServiceOffering) Validate() error {
	return validators.Struct(s)
}

// CreateServiceRequest carries the fields accepted when adding a service offering
type CreateServiceRequest struct {
	Name        string  `validate:"required,max=100"`
	Description string  `validate:"max=1000"`
	Duration    int     `validate:"min=1,max=1440"`
	Price       float64 `validate:"min=0"`
	Category    string  `validate:"max=50"`
}

// Validate for validating CreateServiceRequest struct
func (r *CreateServiceRequest) Validate() error {
	return validators.Struct(r)
}

// UpdateServiceRequest carries a partial update, nil fields are left untouched
type UpdateServiceRequest struct {
	Name        *string  `validate:"omitempty,min=1,max=100"`
	Description *string  `validate:"omitempty,max=1000"`
	Duration    *int     `validate:"omitempty,min=1,max=1440"`
	Price       *float64 `validate:"omitempty,min=0"`
	Category    *string  `validate:"omitempty,min=1,max=50"`
	Active      *bool
}

// Validate for validating UpdateServiceRequest struct
func (r *UpdateServiceRequest) Validate() error {
	return validators.Struct(r)
}

// Apply copies the set fields onto service
func (r *UpdateServiceRequest) Apply(service *ServiceOffering) {
	if r.Name != nil {
		service.Name = *r.Name
	}
	if r.Description != nil {
		service.Description = *r.Description
	}
	if r.Duration != nil {
		service.Duration = *r.Duration
	}
	if r.Price != nil {
		service.Price = *r.Price
	}
	if r.Category != nil {
		service.Category = *r.Category
	}
	if r.Active != nil {
		service.Active = *r.Active
	}
}
