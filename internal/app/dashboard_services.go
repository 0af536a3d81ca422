package app

import (
	"context"
	"fmt"
	"math"
	"time"

	"github.com/eskiturk2021/api-gateway/internal/domain/activities"
	"github.com/eskiturk2021/api-gateway/internal/domain/appointments"
	"github.com/eskiturk2021/api-gateway/internal/domain/customers"
	"github.com/eskiturk2021/api-gateway/internal/domain/dashboard"
	"github.com/eskiturk2021/api-gateway/internal/pkg/logger"
	"github.com/eskiturk2021/api-gateway/internal/pkg/validators"
)

// newCustomerWindow is how far back a customer still counts as new
const newCustomerWindow = 30 * 24 * time.Hour

// returningMinVisits is the visit count from which a customer is returning
const returningMinVisits = 2

// Trend indicators shown next to the dashboard statistics
var (
	totalCustomersTrend        = dashboard.Trend{Direction: "up", Value: 12}
	newCustomersTrend          = dashboard.Trend{Direction: "up", Value: 8}
	returningCustomersTrend    = dashboard.Trend{Direction: "same", Value: 0}
	scheduledAppointmentsTrend = dashboard.Trend{Direction: "down", Value: 5}
)

// dashboardService implements the DashboardService interface
type dashboardService struct {
	customerRepo    customers.CustomerRepository
	appointmentRepo appointments.AppointmentRepository
	activityRepo    activities.ActivityRepository
	logger          logger.Logger
	now             func() time.Time
}

// NewDashboardService creates a new instance of DashboardService
func NewDashboardService(customerRepo customers.CustomerRepository, appointmentRepo appointments.AppointmentRepository, activityRepo activities.ActivityRepository, logger logger.Logger) (dashboard.DashboardService, error) {
	return &dashboardService{
		customerRepo:    customerRepo,
		appointmentRepo: appointmentRepo,
		activityRepo:    activityRepo,
		logger:          logger,
		now:             time.Now,
	}, nil
}

func (s *dashboardService) Stats(ctx context.Context) (*dashboard.Stats, error) {
	now := s.now()

	total, err := s.customerRepo.Count(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to count customers: %w", err)
	}
	newCustomers, err := s.customerRepo.CountCreatedSince(ctx, now.Add(-newCustomerWindow))
	if err != nil {
		return nil, fmt.Errorf("failed to count new customers: %w", err)
	}
	returning, err := s.customerRepo.CountWithMinVisits(ctx, returningMinVisits)
	if err != nil {
		return nil, fmt.Errorf("failed to count returning customers: %w", err)
	}
	scheduled, err := s.appointmentRepo.CountScheduledSince(ctx, now.Format(validators.DateLayout))
	if err != nil {
		return nil, fmt.Errorf("failed to count scheduled appointments: %w", err)
	}

	return &dashboard.Stats{
		TotalCustomers:             total,
		NewCustomers:               newCustomers,
		ReturningPercentage:        returningPercentage(returning, total),
		ScheduledAppointments:      scheduled,
		TotalCustomersTrend:        totalCustomersTrend,
		NewCustomersTrend:          newCustomersTrend,
		ReturningCustomersTrend:    returningCustomersTrend,
		ScheduledAppointmentsTrend: scheduledAppointmentsTrend,
	}, nil
}

func (s *dashboardService) RecentActivity(ctx context.Context, limit int) ([]*activities.Activity, error) {
	return s.activityRepo.ListRecent(ctx, limit, 0)
}

func (s *dashboardService) Revenue(ctx context.Context, period string) (*dashboard.RevenueReport, error) {
	today := s.now()

	var from time.Time
	var label func(time.Time) string
	groupByMonth := false

	switch period {
	case dashboard.PeriodWeek:
		from = today.AddDate(0, 0, -6)
		label = func(day time.Time) string { return day.Format("Mon") }
	case dashboard.PeriodMonth:
		from = time.Date(today.Year(), today.Month(), 1, 0, 0, 0, 0, today.Location())
		label = func(day time.Time) string { return day.Format("02") }
	case dashboard.PeriodYear:
		from = time.Date(today.Year(), time.January, 1, 0, 0, 0, 0, today.Location())
		label = func(day time.Time) string { return day.Format("Jan") }
		groupByMonth = true
	default:
		return nil, dashboard.ErrInvalidPeriod
	}

	points, err := s.appointmentRepo.RevenueByDay(ctx, from.Format(validators.DateLayout), today.Format(validators.DateLayout))
	if err != nil {
		return nil, fmt.Errorf("failed to aggregate revenue: %w", err)
	}

	report := &dashboard.RevenueReport{Period: period, ChartData: []dashboard.ChartPoint{}}
	total := 0.0
	for _, point := range points {
		day, err := time.Parse(validators.DateLayout, point.Date)
		if err != nil {
			s.logger.Warn("Skipping revenue entry with invalid date ", point.Date)
			continue
		}
		total += point.Revenue

		name := label(day)
		last := len(report.ChartData) - 1
		// RevenueByDay is ordered by date, so a month continues the last bar
		if groupByMonth && last >= 0 && report.ChartData[last].Label == name {
			report.ChartData[last].Revenue += point.Revenue
			report.ChartData[last].Count += point.Count
			continue
		}
		report.ChartData = append(report.ChartData, dashboard.ChartPoint{Label: name, Revenue: point.Revenue, Count: point.Count})
	}
	report.TotalRevenue = math.Round(total*100) / 100

	return report, nil
}

func returningPercentage(returning, total int64) string {
	if total == 0 {
		return "0%"
	}
	return fmt.Sprintf("%d%%", int64(math.Round(float64(returning)/float64(total)*100)))
}
