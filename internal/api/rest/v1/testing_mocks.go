//go:build unit
// +build unit

package v1

import (
	"context"
	"mime/multipart"
	"net/http"

	"github.com/eskiturk2021/api-gateway/internal/domain/activities"
	"github.com/eskiturk2021/api-gateway/internal/domain/appointments"
	"github.com/eskiturk2021/api-gateway/internal/domain/customers"
	"github.com/eskiturk2021/api-gateway/internal/domain/dashboard"
	"github.com/eskiturk2021/api-gateway/internal/domain/documents"
	"github.com/eskiturk2021/api-gateway/internal/domain/messages"
	"github.com/eskiturk2021/api-gateway/internal/domain/settings"
	"github.com/eskiturk2021/api-gateway/internal/domain/system"
	"github.com/eskiturk2021/api-gateway/internal/domain/users"

	"github.com/stretchr/testify/mock"
)

// MockAuthService is a mock implementation of users.AuthService
type MockAuthService struct {
	mock.Mock
}

func (m *MockAuthService) Login(ctx context.Context, username, password string) (*users.TokenPair, error) {
	args := m.Called(ctx, username, password)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*users.TokenPair), args.Error(1)
}

func (m *MockAuthService) Refresh(ctx context.Context, refreshToken string) (*users.TokenPair, error) {
	args := m.Called(ctx, refreshToken)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*users.TokenPair), args.Error(1)
}

func (m *MockAuthService) Authenticate(ctx context.Context, accessToken string) (*users.Identity, error) {
	args := m.Called(ctx, accessToken)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*users.Identity), args.Error(1)
}

func (m *MockAuthService) ChangePassword(ctx context.Context, userID int64, oldPassword, newPassword string) error {
	args := m.Called(ctx, userID, oldPassword, newPassword)
	return args.Error(0)
}

func (m *MockAuthService) CreateUser(ctx context.Context, req *users.CreateUserRequest) (*users.User, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*users.User), args.Error(1)
}

func (m *MockAuthService) EnsureAdmin(ctx context.Context, password string) (bool, error) {
	args := m.Called(ctx, password)
	return args.Bool(0), args.Error(1)
}

// MockCustomerService is a mock implementation of customers.CustomerService
type MockCustomerService struct {
	mock.Mock
}

func (m *MockCustomerService) List(ctx context.Context, query *customers.CustomerQuery) ([]*customers.Customer, int64, error) {
	args := m.Called(ctx, query)
	if args.Get(0) == nil {
		return nil, 0, args.Error(2)
	}
	return args.Get(0).([]*customers.Customer), args.Get(1).(int64), args.Error(2)
}

func (m *MockCustomerService) GetByCustomerID(ctx context.Context, customerID string) (*customers.Customer, error) {
	args := m.Called(ctx, customerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*customers.Customer), args.Error(1)
}

func (m *MockCustomerService) Create(ctx context.Context, req *customers.CreateCustomerRequest) (*customers.Customer, bool, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, false, args.Error(2)
	}
	return args.Get(0).(*customers.Customer), args.Bool(1), args.Error(2)
}

// MockAppointmentService is a mock implementation of appointments.AppointmentService
type MockAppointmentService struct {
	mock.Mock
}

func (m *MockAppointmentService) ListUpcoming(ctx context.Context, limit, offset int) ([]*appointments.Appointment, error) {
	args := m.Called(ctx, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*appointments.Appointment), args.Error(1)
}

func (m *MockAppointmentService) GetByAppointmentID(ctx context.Context, appointmentID string) (*appointments.Appointment, error) {
	args := m.Called(ctx, appointmentID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*appointments.Appointment), args.Error(1)
}

func (m *MockAppointmentService) ListByCustomerPhone(ctx context.Context, phone string, limit int) ([]*appointments.Appointment, error) {
	args := m.Called(ctx, phone, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*appointments.Appointment), args.Error(1)
}

func (m *MockAppointmentService) Create(ctx context.Context, req *appointments.CreateAppointmentRequest) (*appointments.Appointment, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*appointments.Appointment), args.Error(1)
}

func (m *MockAppointmentService) Update(ctx context.Context, appointmentID string, req *appointments.UpdateAppointmentRequest) (*appointments.Appointment, error) {
	args := m.Called(ctx, appointmentID, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*appointments.Appointment), args.Error(1)
}

func (m *MockAppointmentService) Cancel(ctx context.Context, appointmentID string) error {
	args := m.Called(ctx, appointmentID)
	return args.Error(0)
}

func (m *MockAppointmentService) Calendar(ctx context.Context, year, month int) ([]*appointments.Appointment, error) {
	args := m.Called(ctx, year, month)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*appointments.Appointment), args.Error(1)
}

func (m *MockAppointmentService) AvailableSlots(ctx context.Context, date string) ([]appointments.SlotAvailability, error) {
	args := m.Called(ctx, date)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]appointments.SlotAvailability), args.Error(1)
}

// MockDashboardService is a mock implementation of dashboard.DashboardService
type MockDashboardService struct {
	mock.Mock
}

func (m *MockDashboardService) Stats(ctx context.Context) (*dashboard.Stats, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dashboard.Stats), args.Error(1)
}

func (m *MockDashboardService) RecentActivity(ctx context.Context, limit int) ([]*activities.Activity, error) {
	args := m.Called(ctx, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*activities.Activity), args.Error(1)
}

func (m *MockDashboardService) Revenue(ctx context.Context, period string) (*dashboard.RevenueReport, error) {
	args := m.Called(ctx, period)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dashboard.RevenueReport), args.Error(1)
}

// MockDocumentService is a mock implementation of documents.DocumentService
type MockDocumentService struct {
	mock.Mock
}

func (m *MockDocumentService) Upload(ctx context.Context, req *documents.UploadRequest, file *multipart.FileHeader) (*documents.UploadResult, error) {
	args := m.Called(ctx, req, file)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*documents.UploadResult), args.Error(1)
}

func (m *MockDocumentService) Get(ctx context.Context, submissionID, filename, category string) (*documents.DocumentInfo, error) {
	args := m.Called(ctx, submissionID, filename, category)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*documents.DocumentInfo), args.Error(1)
}

func (m *MockDocumentService) Delete(ctx context.Context, submissionID, filename, category string) error {
	args := m.Called(ctx, submissionID, filename, category)
	return args.Error(0)
}

func (m *MockDocumentService) Search(ctx context.Context, query, customerID string) ([]documents.SearchResult, error) {
	args := m.Called(ctx, query, customerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]documents.SearchResult), args.Error(1)
}

func (m *MockDocumentService) ListForCustomer(ctx context.Context, customerID string) ([]documents.CustomerDocument, error) {
	args := m.Called(ctx, customerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]documents.CustomerDocument), args.Error(1)
}

func (m *MockDocumentService) Versions(ctx context.Context, submissionID, filename, category string) (*documents.FileVersions, error) {
	args := m.Called(ctx, submissionID, filename, category)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*documents.FileVersions), args.Error(1)
}

// MockSyncService is a mock implementation of documents.SyncService
type MockSyncService struct {
	mock.Mock
}

func (m *MockSyncService) SyncSubmission(ctx context.Context, submissionID string) (*documents.SyncResult, error) {
	args := m.Called(ctx, submissionID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*documents.SyncResult), args.Error(1)
}

// MockSettingsService is a mock implementation of settings.SettingsService
type MockSettingsService struct {
	mock.Mock
}

func (m *MockSettingsService) GetSystemSettings(ctx context.Context) (*settings.SystemSettings, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*settings.SystemSettings), args.Error(1)
}

func (m *MockSettingsService) GetPrompt(ctx context.Context) (string, error) {
	args := m.Called(ctx)
	return args.String(0), args.Error(1)
}

func (m *MockSettingsService) UpdatePrompt(ctx context.Context, content string) error {
	args := m.Called(ctx, content)
	return args.Error(0)
}

func (m *MockSettingsService) ListServices(ctx context.Context) ([]*settings.ServiceOffering, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*settings.ServiceOffering), args.Error(1)
}

func (m *MockSettingsService) CreateService(ctx context.Context, req *settings.CreateServiceRequest) (*settings.ServiceOffering, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*settings.ServiceOffering), args.Error(1)
}

func (m *MockSettingsService) UpdateService(ctx context.Context, serviceID string, req *settings.UpdateServiceRequest) (*settings.ServiceOffering, error) {
	args := m.Called(ctx, serviceID, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*settings.ServiceOffering), args.Error(1)
}

func (m *MockSettingsService) DeleteService(ctx context.Context, serviceID string) error {
	args := m.Called(ctx, serviceID)
	return args.Error(0)
}

func (m *MockSettingsService) GetWorkingHours(ctx context.Context) (*settings.WorkingHours, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*settings.WorkingHours), args.Error(1)
}

func (m *MockSettingsService) UpdateWorkingHours(ctx context.Context, hours *settings.WorkingHours) error {
	args := m.Called(ctx, hours)
	return args.Error(0)
}

// MockActivityService is a mock implementation of activities.ActivityService
type MockActivityService struct {
	mock.Mock
}

func (m *MockActivityService) Recent(ctx context.Context, limit, offset int) ([]*activities.Activity, error) {
	args := m.Called(ctx, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*activities.Activity), args.Error(1)
}

func (m *MockActivityService) ForCustomer(ctx context.Context, customerID string, limit int) ([]*activities.Activity, error) {
	args := m.Called(ctx, customerID, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*activities.Activity), args.Error(1)
}

func (m *MockActivityService) Log(ctx context.Context, req *activities.LogRequest) (*activities.Activity, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*activities.Activity), args.Error(1)
}

// MockMessageService is a mock implementation of messages.MessageService
type MockMessageService struct {
	mock.Mock
}

func (m *MockMessageService) Recent(ctx context.Context, limit int) ([]*messages.Message, error) {
	args := m.Called(ctx, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*messages.Message), args.Error(1)
}

func (m *MockMessageService) Conversations(ctx context.Context, limit int) ([]*messages.Message, error) {
	args := m.Called(ctx, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*messages.Message), args.Error(1)
}

func (m *MockMessageService) ByPhone(ctx context.Context, phone string, limit, offset int) ([]*messages.Message, error) {
	args := m.Called(ctx, phone, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*messages.Message), args.Error(1)
}

func (m *MockMessageService) ByThread(ctx context.Context, threadID string, limit, offset int) ([]*messages.Message, error) {
	args := m.Called(ctx, threadID, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*messages.Message), args.Error(1)
}

func (m *MockMessageService) Create(ctx context.Context, message *messages.Message) error {
	args := m.Called(ctx, message)
	return args.Error(0)
}

// MockHealthService is a mock implementation of system.HealthService
type MockHealthService struct {
	mock.Mock
}

func (m *MockHealthService) Check(ctx context.Context) *system.HealthReport {
	args := m.Called(ctx)
	return args.Get(0).(*system.HealthReport)
}

// MockWebsocketServer is a mock implementation of WebsocketServer
type MockWebsocketServer struct {
	mock.Mock
}

func (m *MockWebsocketServer) ServeWS(w http.ResponseWriter, r *http.Request) error {
	args := m.Called(w, r)
	return args.Error(0)
}
