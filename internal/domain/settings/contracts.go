package settings

import (
	"context"
)

// SettingsService defines the settings operations exposed to the API
type SettingsService interface {
	GetSystemSettings(ctx context.Context) (*SystemSettings, error)
	GetPrompt(ctx context.Context) (string, error)
	// UpdatePrompt stores the prompt as text and inside the JSON settings.
	// It succeeds when at least one of the two writes succeeds.
	UpdatePrompt(ctx context.Context, content string) error

	ListServices(ctx context.Context) ([]*ServiceOffering, error)
	CreateService(ctx context.Context, req *CreateServiceRequest) (*ServiceOffering, error)
	UpdateService(ctx context.Context, serviceID string, req *UpdateServiceRequest) (*ServiceOffering, error)
	// DeleteService deactivates the offering.
	DeleteService(ctx context.Context, serviceID string) error

	GetWorkingHours(ctx context.Context) (*WorkingHours, error)
	UpdateWorkingHours(ctx context.Context, hours *WorkingHours) error
}

// ServiceRepository defines the interface for ServiceOffering persistence
type ServiceRepository interface {
	Create(ctx context.Context, service *ServiceOffering) error
	GetByServiceID(ctx context.Context, serviceID string) (*ServiceOffering, error)
	ListActive(ctx context.Context) ([]*ServiceOffering, error)
	Update(ctx context.Context, service *ServiceOffering) error
}
