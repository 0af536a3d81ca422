package customers

import (
	"context"
	"time"
)

// CustomerService defines the customer operations exposed to the API
type CustomerService interface {
	// List returns a page of customers and the total number of matches.
	List(ctx context.Context, query *CustomerQuery) ([]*Customer, int64, error)

	// GetByCustomerID returns the customer with the given public ID.
	GetByCustomerID(ctx context.Context, customerID string) (*Customer, error)

	// Create registers a customer. When the phone is already known the existing
	// customer is returned with created set to false.
	Create(ctx context.Context, req *CreateCustomerRequest) (customer *Customer, created bool, err error)
}

// CustomerRepository defines the interface for Customer persistence
type CustomerRepository interface {
	Create(ctx context.Context, customer *Customer) error
	GetByID(ctx context.Context, id int64) (*Customer, error)
	GetByCustomerID(ctx context.Context, customerID string) (*Customer, error)
	GetByPhone(ctx context.Context, phone string) (*Customer, error)
	// List applies query.Search case-insensitively to name, phone and vehicle make/model.
	List(ctx context.Context, query *CustomerQuery) ([]*Customer, int64, error)
	Update(ctx context.Context, customer *Customer) error
	Count(ctx context.Context) (int64, error)
	CountCreatedSince(ctx context.Context, since time.Time) (int64, error)
	CountWithMinVisits(ctx context.Context, minVisits int) (int64, error)
}
