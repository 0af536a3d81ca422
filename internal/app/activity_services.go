package app

import (
	"context"
	"errors"
	"strings"

	"github.com/eskiturk2021/api-gateway/internal/domain/activities"
	"github.com/eskiturk2021/api-gateway/internal/domain/customers"
	"github.com/eskiturk2021/api-gateway/internal/pkg/logger"
)

// activityService implements the ActivityService interface
type activityService struct {
	activityRepo activities.ActivityRepository
	customerRepo customers.CustomerRepository
	logger       logger.Logger
}

// NewActivityService creates a new instance of ActivityService
func NewActivityService(activityRepo activities.ActivityRepository, customerRepo customers.CustomerRepository, logger logger.Logger) (activities.ActivityService, error) {
	return &activityService{
		activityRepo: activityRepo,
		customerRepo: customerRepo,
		logger:       logger,
	}, nil
}

func (s *activityService) Recent(ctx context.Context, limit, offset int) ([]*activities.Activity, error) {
	return s.activityRepo.ListRecent(ctx, limit, offset)
}

func (s *activityService) ForCustomer(ctx context.Context, customerID string, limit int) ([]*activities.Activity, error) {
	customer, err := s.customerRepo.GetByCustomerID(ctx, customerID)
	if err != nil {
		if errors.Is(err, customers.ErrCustomerNotFound) {
			return []*activities.Activity{}, nil
		}
		return nil, err
	}
	return s.activityRepo.ListByCustomer(ctx, customer.ID, limit)
}

func (s *activityService) Log(ctx context.Context, req *activities.LogRequest) (*activities.Activity, error) {
	activity := &activities.Activity{
		Message: strings.TrimSpace(req.Message),
		Type:    strings.TrimSpace(req.Type),
	}
	if activity.Message == "" {
		activity.Message = activities.DefaultMessage
	}
	if activity.Type == "" {
		activity.Type = activities.TypeSystem
	}

	if req.CustomerID != "" {
		customer, err := s.customerRepo.GetByCustomerID(ctx, req.CustomerID)
		switch {
		case err == nil:
			activity.CustomerID = &customer.ID
			activity.CustomerRef = customer.CustomerID
			activity.CustomerName = customer.Name
		case errors.Is(err, customers.ErrCustomerNotFound):
			s.logger.Warn("Activity references unknown customer ", req.CustomerID, ", recording as system activity")
		default:
			return nil, err
		}
	}

	if err := s.activityRepo.Create(ctx, activity); err != nil {
		return nil, err
	}
	return activity, nil
}
