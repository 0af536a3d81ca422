package customers

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/eskiturk2021/api-gateway/internal/pkg/validators"

	"github.com/google/uuid"
)

// ErrCustomerNotFound is returned when no customer matches the lookup
var ErrCustomerNotFound = errors.New("customer not found")

// Customer entity
type Customer struct {
	ID           int64
	CustomerID   string `validate:"required,startswith=CUST-,max=20"`
	Phone        string `validate:"required,phone,max=30"`
	Name         string `validate:"max=100"`
	VehicleMake  string `validate:"max=100"`
	VehicleModel string `validate:"max=100"`
	VehicleYear  string `validate:"max=10"`
	LastVisit    *time.Time
	TotalVisits  int `validate:"min=0"`
	CreatedAt    time.Time
}

// NewCustomerID returns a public customer identifier such as CUST-1A2B3C4D
func NewCustomerID() string {
	return "CUST-" + shortID()
}

// Validate for validating Customer struct
func (c *Customer) Validate() error {
	return validators.Struct(c)
}

// RecordVisit bumps the visit counter and moves the last visit forward
func (c *Customer) RecordVisit(at time.Time) {
	c.TotalVisits++
	if c.LastVisit == nil || at.After(*c.LastVisit) {
		visit := at
		c.LastVisit = &visit
	}
}

// CreateCustomerRequest carries the fields accepted when registering a customer
type CreateCustomerRequest struct {
	Phone        string `validate:"required,phone,max=30"`
	Name         string `validate:"max=100"`
	VehicleMake  string `validate:"max=100"`
	VehicleModel string `validate:"max=100"`
	VehicleYear  string `validate:"max=10"`
}

// Validate for validating CreateCustomerRequest struct
func (r *CreateCustomerRequest) Validate() error {
	return validators.Struct(r)
}

// CustomerQuery filters and pages customer listings
type CustomerQuery struct {
	Search string `validate:"max=100"`
	Limit  int    `validate:"min=1,max=100"`
	Offset int    `validate:"min=0"`
}

// NewCustomerQuery returns a query with default paging
func NewCustomerQuery() *CustomerQuery {
	return &CustomerQuery{Limit: 20}
}

// Validate for validating CustomerQuery struct
func (q *CustomerQuery) Validate() error {
	if err := validators.Struct(q); err != nil {
		return fmt.Errorf("invalid customer query: %w", err)
	}
	return nil
}

func shortID() string {
	return strings.ToUpper(strings.ReplaceAll(uuid.NewString(), "-", "")[:8])
}
