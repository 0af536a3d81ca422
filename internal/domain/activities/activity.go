package activities

import (
	"context"
	"time"

	"github.com/eskiturk2021/api-gateway/internal/pkg/validators"
)

// Activity types
const (
	TypeSystem      = "system"
	TypeCustomer    = "customer"
	TypeAppointment = "appointment"
	TypeDocument    = "document"
)

// DefaultMessage is recorded when an activity is logged without a message
const DefaultMessage = "Unknown action"

// Activity entity. CustomerRef and CustomerName are resolved from the customer
// the activity belongs to and are empty for system activities.
type Activity struct {
	ID           int64
	CustomerID   *int64
	CustomerRef  string
	CustomerName string
	Message      string `validate:"required,max=1000"`
	Type         string `validate:"required,max=50"`
	CreatedAt    time.Time
}

// Validate for validating Activity struct
func (a *Activity) Validate() error {
	return validators.Struct(a)
}

// LogRequest carries an activity to record. CustomerID is the public customer ID.
type LogRequest struct {
	CustomerID string
	Message    string
	Type       string
}

// ActivityService defines the activity feed operations
type ActivityService interface {
	Recent(ctx context.Context, limit, offset int) ([]*Activity, error)
	// ForCustomer returns an empty list for unknown customers.
	ForCustomer(ctx context.Context, customerID string, limit int) ([]*Activity, error)
	// Log records an activity. An unknown customer ID is recorded as a system activity.
	Log(ctx context.Context, req *LogRequest) (*Activity, error)
}

// ActivityRepository defines the interface for Activity persistence
type ActivityRepository interface {
	Create(ctx context.Context, activity *Activity) error
	ListRecent(ctx context.Context, limit, offset int) ([]*Activity, error)
	ListByCustomer(ctx context.Context, customerID int64, limit int) ([]*Activity, error)
}
