//go:build integration
// +build integration

package persistence

import (
	"strings"
	"testing"
	"time"

	"github.com/eskiturk2021/api-gateway/internal/domain/activities"
	"github.com/eskiturk2021/api-gateway/internal/domain/appointments"
	"github.com/eskiturk2021/api-gateway/internal/domain/customers"
	"github.com/eskiturk2021/api-gateway/internal/domain/documents"
	"github.com/eskiturk2021/api-gateway/internal/domain/messages"
	"github.com/eskiturk2021/api-gateway/internal/domain/settings"
	"github.com/eskiturk2021/api-gateway/internal/domain/users"
	"github.com/eskiturk2021/api-gateway/internal/pkg/config"
	"github.com/eskiturk2021/api-gateway/internal/pkg/testutil"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

// TestContext holds test database and repositories
type TestContext struct {
	DB              *gorm.DB
	CustomerRepo    customers.CustomerRepository
	AppointmentRepo appointments.AppointmentRepository
	SlotRepo        appointments.SlotRepository
	UserRepo        users.UserRepository
	ServiceRepo     settings.ServiceRepository
	ActivityRepo    activities.ActivityRepository
	MessageRepo     messages.MessageRepository
	SubmissionRepo  documents.SubmissionRepository
}

// SetupTestDB initializes a migrated test database with automatic cleanup
func SetupTestDB(t *testing.T, dbType string) *TestContext {
	t.Helper()

	var settings config.DatabaseSettings
	var cleanupFunc func()

	switch dbType {
	case config.SqliteDbType:
		settings = config.DatabaseSettings{
			Type: config.SqliteDbType,
			DSN:  ":memory:",
		}
		cleanupFunc = func() {}

	case config.PostgresDbType:
		uniqueDBName := "test_" + strings.ReplaceAll(uuid.NewString(), "-", "")[:16]
		settings = config.DatabaseSettings{
			Type: config.PostgresDbType,
			DSN:  "user=postgres password=postgres host=localhost port=5432 sslmode=disable",
			Name: uniqueDBName,
		}
		cleanupFunc = func() {
			adminDSN := "user=postgres password=postgres host=localhost port=5432 dbname=postgres sslmode=disable"
			_ = DropDatabase(adminDSN, uniqueDBName)
		}

	default:
		t.Fatalf("Unsupported database type: %s", dbType)
	}

	logger := testutil.SetupTestLogger(t)

	db, err := NewDBConnection(settings, NewGormLogger(logger, config.LogLevelWarning))
	require.NoError(t, err, "Failed to create database connection")

	t.Cleanup(func() {
		_ = CloseDB(db)
		cleanupFunc()
	})

	require.NoError(t, Migrate(db), "Failed to migrate schema")

	tc := &TestContext{DB: db}
	tc.CustomerRepo, err = NewGormCustomerRepository(db, logger)
	require.NoError(t, err)
	tc.AppointmentRepo, err = NewGormAppointmentRepository(db, logger)
	require.NoError(t, err)
	tc.SlotRepo, err = NewGormSlotRepository(db, logger)
	require.NoError(t, err)
	tc.UserRepo, err = NewGormUserRepository(db, logger)
	require.NoError(t, err)
	tc.ServiceRepo, err = NewGormServiceRepository(db, logger)
	require.NoError(t, err)
	tc.ActivityRepo, err = NewGormActivityRepository(db, logger)
	require.NoError(t, err)
	tc.MessageRepo, err = NewGormMessageRepository(db, logger)
	require.NoError(t, err)
	tc.SubmissionRepo, err = NewGormSubmissionRepository(db, logger)
	require.NoError(t, err)

	return tc
}

// CreateTestCustomer builds a valid customer with the given phone
func CreateTestCustomer(t *testing.T, phone, name string) *customers.Customer {
	t.Helper()

	return &customers.Customer{
		CustomerID:   customers.NewCustomerID(),
		Phone:        phone,
		Name:         name,
		VehicleMake:  "Toyota",
		VehicleModel: "Corolla",
		VehicleYear:  "2019",
	}
}

// CreateTestAppointment builds a valid pending appointment
func CreateTestAppointment(t *testing.T, phone, date, timeOfDay string, cost float64) *appointments.Appointment {
	t.Helper()

	return &appointments.Appointment{
		AppointmentID: appointments.NewAppointmentID(),
		CustomerPhone: phone,
		CustomerName:  "Test Customer",
		ServiceType:   "Oil change",
		Date:          date,
		Time:          timeOfDay,
		EstimatedCost: &cost,
		Status:        appointments.StatusPending,
		CreatedAt:     time.Now(),
	}
}
