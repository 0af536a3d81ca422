package events

import (
	"context"
	"time"
)

// Domain event names
const (
	CustomerCreated      = "customer_created"
	AppointmentCreated   = "appointment_created"
	AppointmentUpdated   = "appointment_updated"
	AppointmentCancelled = "appointment_cancelled"
	DocumentUploaded     = "document_uploaded"
	DocumentDeleted      = "document_deleted"
)

// Event is a notification about a change in the gateway's data
type Event struct {
	Name      string                 `json:"event"`
	Data      map[string]interface{} `json:"data"`
	Timestamp time.Time              `json:"timestamp"`
}

// New returns an event stamped with the current time
func New(name string, data map[string]interface{}) Event {
	return Event{Name: name, Data: data, Timestamp: time.Now().UTC()}
}

// Publisher delivers events to subscribers
type Publisher interface {
	Publish(ctx context.Context, event Event) error
	Close() error
}
