//go:build integration
// +build integration

package persistence

import (
	"context"
	"sync"
	"testing"

	"github.com/eskiturk2021/api-gateway/internal/domain/appointments"
	"github.com/eskiturk2021/api-gateway/internal/pkg/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGormAppointmentRepository_CreateGetUpdate(t *testing.T) {
	ctx := context.Background()
	tc := SetupTestDB(t, config.SqliteDbType)

	appointment := CreateTestAppointment(t, "5551234567", "2030-01-15", "09:30", 80)
	require.NoError(t, tc.AppointmentRepo.Create(ctx, appointment))
	assert.NotZero(t, appointment.ID)

	fetched, err := tc.AppointmentRepo.GetByAppointmentID(ctx, appointment.AppointmentID)
	require.NoError(t, err)
	assert.Equal(t, "2030-01-15", fetched.Date)
	assert.Equal(t, "09:30", fetched.Time)
	require.NotNil(t, fetched.EstimatedCost)
	assert.InDelta(t, 80.0, *fetched.EstimatedCost, 0.001)

	fetched.Status = appointments.StatusConfirmed
	fetched.Notes = "Bring the spare key"
	require.NoError(t, tc.AppointmentRepo.Update(ctx, fetched))

	updated, err := tc.AppointmentRepo.GetByAppointmentID(ctx, appointment.AppointmentID)
	require.NoError(t, err)
	assert.Equal(t, appointments.StatusConfirmed, updated.Status)
	assert.Equal(t, "Bring the spare key", updated.Notes)

	_, err = tc.AppointmentRepo.GetByAppointmentID(ctx, "APT-MISSING0")
	assert.ErrorIs(t, err, appointments.ErrAppointmentNotFound)
}

func TestGormAppointmentRepository_Queries(t *testing.T) {
	ctx := context.Background()
	tc := SetupTestDB(t, config.SqliteDbType)

	past := CreateTestAppointment(t, "5550000001", "2020-01-01", "10:00", 50)
	laterToday := CreateTestAppointment(t, "5550000001", "2030-01-15", "14:00", 100)
	earlierToday := CreateTestAppointment(t, "5550000001", "2030-01-15", "09:00", 40)
	cancelled := CreateTestAppointment(t, "5550000002", "2030-01-16", "09:00", 999)
	cancelled.Status = appointments.StatusCancelled
	completed := CreateTestAppointment(t, "5550000002", "2030-01-20", "11:00", 60)
	completed.Status = appointments.StatusCompleted

	for _, a := range []*appointments.Appointment{past, laterToday, earlierToday, cancelled, completed} {
		require.NoError(t, tc.AppointmentRepo.Create(ctx, a))
	}

	upcoming, err := tc.AppointmentRepo.ListUpcoming(ctx, "2025-01-01", 10, 0)
	require.NoError(t, err)
	require.Len(t, upcoming, 2)
	assert.Equal(t, earlierToday.AppointmentID, upcoming[0].AppointmentID)
	assert.Equal(t, laterToday.AppointmentID, upcoming[1].AppointmentID)

	paged, err := tc.AppointmentRepo.ListUpcoming(ctx, "2025-01-01", 1, 1)
	require.NoError(t, err)
	require.Len(t, paged, 1)
	assert.Equal(t, laterToday.AppointmentID, paged[0].AppointmentID)

	byPhone, err := tc.AppointmentRepo.ListByCustomerPhone(ctx, "5550000001", 2)
	require.NoError(t, err)
	require.Len(t, byPhone, 2)
	assert.Equal(t, laterToday.AppointmentID, byPhone[0].AppointmentID)

	inRange, err := tc.AppointmentRepo.ListInRange(ctx, "2030-01-01", "2030-01-31")
	require.NoError(t, err)
	assert.Len(t, inRange, 4)

	scheduled, err := tc.AppointmentRepo.CountScheduledSince(ctx, "2025-01-01")
	require.NoError(t, err)
	assert.Equal(t, int64(3), scheduled)

	revenue, err := tc.AppointmentRepo.RevenueByDay(ctx, "2030-01-01", "2030-01-31")
	require.NoError(t, err)
	require.Len(t, revenue, 2)
	assert.Equal(t, "2030-01-15", revenue[0].Date)
	assert.InDelta(t, 140.0, revenue[0].Revenue, 0.001)
	assert.Equal(t, int64(2), revenue[0].Count)
	assert.Equal(t, "2030-01-20", revenue[1].Date)
}

func TestGormSlotRepository_ReserveAndRelease(t *testing.T) {
	ctx := context.Background()
	tc := SetupTestDB(t, config.SqliteDbType)

	require.NoError(t, tc.SlotRepo.Reserve(ctx, "2030-01-15", "09:00"))
	assert.ErrorIs(t, tc.SlotRepo.Reserve(ctx, "2030-01-15", "09:00"), appointments.ErrSlotTaken)

	require.NoError(t, tc.SlotRepo.Release(ctx, "2030-01-15", "09:00"))
	require.NoError(t, tc.SlotRepo.Reserve(ctx, "2030-01-15", "09:00"))

	// releasing an unknown slot is a no-op
	require.NoError(t, tc.SlotRepo.Release(ctx, "2030-01-15", "10:00"))

	slots, err := tc.SlotRepo.ListForDate(ctx, "2030-01-15")
	require.NoError(t, err)
	require.Len(t, slots, 1)
	assert.Equal(t, "09:00", slots[0].Time)
	assert.False(t, slots[0].IsAvailable)
}

func TestGormSlotRepository_ConcurrentReserve(t *testing.T) {
	ctx := context.Background()
	tc := SetupTestDB(t, config.SqliteDbType)

	const attempts = 8
	var wg sync.WaitGroup
	results := make(chan error, attempts)

	for i := 0; i < attempts; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			results <- tc.SlotRepo.Reserve(ctx, "2030-02-01", "10:30")
		}()
	}
	wg.Wait()
	close(results)

	succeeded := 0
	for err := range results {
		if err == nil {
			succeeded++
			continue
		}
		assert.ErrorIs(t, err, appointments.ErrSlotTaken)
	}
	assert.Equal(t, 1, succeeded)
}
