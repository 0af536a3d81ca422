package dashboard

import (
	"context"
	"errors"

	"github.com/eskiturk2021/api-gateway/internal/domain/activities"
)

// Revenue periods
const (
	PeriodWeek  = "week"
	PeriodMonth = "month"
	PeriodYear  = "year"
)

// ErrInvalidPeriod is returned for a revenue period other than week, month or year
var ErrInvalidPeriod = errors.New("period must be one of week, month, year")

// Trend is the change indicator shown next to a statistic
type Trend struct {
	Direction string
	Value     int
}

// Stats are the headline numbers of the dashboard
type Stats struct {
	TotalCustomers        int64
	NewCustomers          int64
	ReturningPercentage   string
	ScheduledAppointments int64

	TotalCustomersTrend        Trend
	NewCustomersTrend          Trend
	ReturningCustomersTrend    Trend
	ScheduledAppointmentsTrend Trend
}

// ChartPoint is one bar of the revenue chart
type ChartPoint struct {
	Label   string
	Revenue float64
	Count   int64
}

// RevenueReport is the revenue of a period
type RevenueReport struct {
	Period       string
	TotalRevenue float64
	ChartData    []ChartPoint
}

// DashboardService defines the dashboard operations
type DashboardService interface {
	Stats(ctx context.Context) (*Stats, error)
	RecentActivity(ctx context.Context, limit int) ([]*activities.Activity, error)
	Revenue(ctx context.Context, period string) (*RevenueReport, error)
}
