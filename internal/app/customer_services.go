package app

import (
	"context"
	"errors"
	"fmt"

	"github.com/eskiturk2021/api-gateway/internal/domain/activities"
	"github.com/eskiturk2021/api-gateway/internal/domain/customers"
	"github.com/eskiturk2021/api-gateway/internal/domain/events"
	"github.com/eskiturk2021/api-gateway/internal/pkg/logger"
	"github.com/eskiturk2021/api-gateway/internal/pkg/validators"
)

// customerService implements the CustomerService interface
type customerService struct {
	customerRepo customers.CustomerRepository
	notifier     *notifier
	logger       logger.Logger
}

// NewCustomerService creates a new instance of CustomerService
func NewCustomerService(customerRepo customers.CustomerRepository, activityRepo activities.ActivityRepository, publisher events.Publisher, logger logger.Logger) (customers.CustomerService, error) {
	return &customerService{
		customerRepo: customerRepo,
		notifier:     &notifier{publisher: publisher, activityRepo: activityRepo, logger: logger},
		logger:       logger,
	}, nil
}

func (s *customerService) List(ctx context.Context, query *customers.CustomerQuery) ([]*customers.Customer, int64, error) {
	if query == nil {
		query = customers.NewCustomerQuery()
	}
	if err := query.Validate(); err != nil {
		return nil, 0, err
	}
	return s.customerRepo.List(ctx, query)
}

func (s *customerService) GetByCustomerID(ctx context.Context, customerID string) (*customers.Customer, error) {
	return s.customerRepo.GetByCustomerID(ctx, customerID)
}

func (s *customerService) Create(ctx context.Context, req *customers.CreateCustomerRequest) (*customers.Customer, bool, error) {
	if err := req.Validate(); err != nil {
		return nil, false, fmt.Errorf("validation error: %w", err)
	}

	phone := validators.NormalizePhone(req.Phone)

	existing, err := s.customerRepo.GetByPhone(ctx, phone)
	if err == nil {
		return existing, false, nil
	}
	if !errors.Is(err, customers.ErrCustomerNotFound) {
		return nil, false, err
	}

	customer := &customers.Customer{
		CustomerID:   customers.NewCustomerID(),
		Phone:        phone,
		Name:         req.Name,
		VehicleMake:  req.VehicleMake,
		VehicleModel: req.VehicleModel,
		VehicleYear:  req.VehicleYear,
	}
	if err := s.customerRepo.Create(ctx, customer); err != nil {
		return nil, false, err
	}

	s.logger.Info("Created customer ", customer.CustomerID)

	s.notifier.record(ctx, &customer.ID, activities.TypeCustomer,
		fmt.Sprintf("New customer registered: %s", displayName(customer.Name, customer.Phone)))
	s.notifier.publish(ctx, events.CustomerCreated, map[string]interface{}{
		"customer_id": customer.CustomerID,
		"name":        customer.Name,
		"phone":       customer.Phone,
	})

	return customer, true, nil
}
