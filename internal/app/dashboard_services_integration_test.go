//go:build integration
// +build integration

package app

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/eskiturk2021/api-gateway/internal/domain/appointments"
	"github.com/eskiturk2021/api-gateway/internal/domain/dashboard"
	"github.com/eskiturk2021/api-gateway/internal/infrastructure/persistence"
	"github.com/eskiturk2021/api-gateway/internal/pkg/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDashboardService_Stats(t *testing.T) {
	services := SetupTestServices(t, config.SqliteDbType)
	ctx := context.Background()

	stats, err := services.DashboardService.Stats(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(0), stats.TotalCustomers)
	assert.Equal(t, "0%", stats.ReturningPercentage)

	regular := CreateTestCustomer(t, services, "+15550000001", "Regular")
	CreateTestCustomer(t, services, "+15550000002", "Newcomer")
	CreateTestCustomer(t, services, "+15550000003", "Walk-in")

	bookTestAppointment(t, services, regular.CustomerID, FutureDate(1), "09:00")
	bookTestAppointment(t, services, regular.CustomerID, FutureDate(2), "09:00")
	cancelled := bookTestAppointment(t, services, regular.CustomerID, FutureDate(3), "09:00")
	require.NoError(t, services.AppointmentService.Cancel(ctx, cancelled.AppointmentID))

	stats, err = services.DashboardService.Stats(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(3), stats.TotalCustomers)
	assert.Equal(t, int64(3), stats.NewCustomers)
	// one of three customers has at least two visits
	assert.Equal(t, "33%", stats.ReturningPercentage)
	assert.Equal(t, int64(2), stats.ScheduledAppointments)

	assert.Equal(t, dashboard.Trend{Direction: "up", Value: 12}, stats.TotalCustomersTrend)
	assert.Equal(t, dashboard.Trend{Direction: "up", Value: 8}, stats.NewCustomersTrend)
	assert.Equal(t, dashboard.Trend{Direction: "same", Value: 0}, stats.ReturningCustomersTrend)
	assert.Equal(t, dashboard.Trend{Direction: "down", Value: 5}, stats.ScheduledAppointmentsTrend)
}

func TestDashboardService_RecentActivity(t *testing.T) {
	services := SetupTestServices(t, config.SqliteDbType)

	CreateTestCustomer(t, services, "+15550000001", "Jane Doe")
	CreateTestCustomer(t, services, "+15550000002", "John Smith")

	feed, err := services.DashboardService.RecentActivity(context.Background(), 1)
	require.NoError(t, err)
	require.Len(t, feed, 1)
	assert.Equal(t, "John Smith", feed[0].CustomerName)
}

func TestDashboardService_Revenue(t *testing.T) {
	services := SetupTestServices(t, config.SqliteDbType)
	ctx := context.Background()

	now := time.Now()
	service := services.DashboardService.(*dashboardService)
	// fix the clock mid-year and mid-month so every period has history
	today := time.Date(now.Year(), time.July, 15, 12, 0, 0, 0, now.Location())
	service.now = func() time.Time { return today }

	day := func(offset int) string { return today.AddDate(0, 0, offset).Format("2006-01-02") }
	seed := []struct {
		date   string
		cost   float64
		status string
	}{
		{day(0), 100.25, appointments.StatusPending},
		{day(0), 50, appointments.StatusCompleted},
		{day(-6), 30, appointments.StatusConfirmed},
		{day(-7), 999, appointments.StatusCompleted},
		{day(-1), 500, appointments.StatusCancelled},
		{time.Date(now.Year(), time.July, 1, 0, 0, 0, 0, now.Location()).Format("2006-01-02"), 20, appointments.StatusCompleted},
		{time.Date(now.Year(), time.February, 10, 0, 0, 0, 0, now.Location()).Format("2006-01-02"), 40, appointments.StatusCompleted},
		{time.Date(now.Year(), time.February, 20, 0, 0, 0, 0, now.Location()).Format("2006-01-02"), 60, appointments.StatusCompleted},
	}
	for i, entry := range seed {
		appointment := persistence.CreateTestAppointment(t, "+15550000001", entry.date, fmt.Sprintf("%02d:00", 8+i), entry.cost)
		appointment.Status = entry.status
		require.NoError(t, services.DBContext.AppointmentRepo.Create(ctx, appointment))
	}

	week, err := services.DashboardService.Revenue(ctx, dashboard.PeriodWeek)
	require.NoError(t, err)
	assert.Equal(t, dashboard.PeriodWeek, week.Period)
	assert.Equal(t, 180.25, week.TotalRevenue)
	require.Len(t, week.ChartData, 2)
	assert.Equal(t, today.AddDate(0, 0, -6).Format("Mon"), week.ChartData[0].Label)
	assert.Equal(t, dashboard.ChartPoint{Label: today.Format("Mon"), Revenue: 150.25, Count: 2}, week.ChartData[1])

	month, err := services.DashboardService.Revenue(ctx, dashboard.PeriodMonth)
	require.NoError(t, err)
	// July 1st, 8th, 9th and 15th
	assert.Equal(t, 1199.25, month.TotalRevenue)
	require.Len(t, month.ChartData, 4)
	assert.Equal(t, "01", month.ChartData[0].Label)
	assert.Equal(t, "15", month.ChartData[3].Label)

	year, err := services.DashboardService.Revenue(ctx, dashboard.PeriodYear)
	require.NoError(t, err)
	assert.Equal(t, 1299.25, year.TotalRevenue)
	require.Len(t, year.ChartData, 2)
	assert.Equal(t, dashboard.ChartPoint{Label: "Feb", Revenue: 100, Count: 2}, year.ChartData[0])
	assert.Equal(t, "Jul", year.ChartData[1].Label)
	assert.Equal(t, int64(5), year.ChartData[1].Count)

	_, err = services.DashboardService.Revenue(ctx, "decade")
	assert.ErrorIs(t, err, dashboard.ErrInvalidPeriod)
}
