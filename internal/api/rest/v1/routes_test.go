//go:build unit
// +build unit

package v1

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/eskiturk2021/api-gateway/internal/domain/customers"
	"github.com/eskiturk2021/api-gateway/internal/domain/system"
	"github.com/eskiturk2021/api-gateway/internal/domain/users"
	"github.com/eskiturk2021/api-gateway/internal/infrastructure/ratelimit"
	"github.com/eskiturk2021/api-gateway/internal/infrastructure/telemetry"
	"github.com/eskiturk2021/api-gateway/internal/pkg/config"
	"github.com/eskiturk2021/api-gateway/internal/pkg/testutil"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type routerFixture struct {
	deps            *Dependencies
	authService     *MockAuthService
	customerService *MockCustomerService
	healthService   *MockHealthService
}

func newRouterFixture(t *testing.T, rateLimit int) *routerFixture {
	t.Helper()

	f := &routerFixture{
		authService:     new(MockAuthService),
		customerService: new(MockCustomerService),
		healthService:   new(MockHealthService),
	}
	f.deps = &Dependencies{
		Config: &config.GatewayConfig{
			Server: config.ServerSettings{Port: config.DefaultPort, CORSAllowedOrigins: []string{"*"}, RateLimit: rateLimit},
			Auth:   config.AuthSettings{APIKey: testAPIKey},
		},
		Logger:             testutil.SetupTestLogger(t),
		AuthService:        f.authService,
		CustomerService:    f.customerService,
		AppointmentService: new(MockAppointmentService),
		DashboardService:   new(MockDashboardService),
		DocumentService:    new(MockDocumentService),
		SyncService:        new(MockSyncService),
		SettingsService:    new(MockSettingsService),
		ActivityService:    new(MockActivityService),
		MessageService:     new(MockMessageService),
		HealthService:      f.healthService,
		Limiter:            ratelimit.NewMemoryLimiter(rateLimit),
		Metrics:            telemetry.NewMetrics(),
	}
	return f
}

func TestSetupRoutes_RoutesRegistered(t *testing.T) {
	f := newRouterFixture(t, 100)
	r := NewRouter(f.deps)

	registered := map[string]bool{}
	for _, route := range r.Routes() {
		registered[route.Method+" "+route.Path] = true
	}

	expected := []string{
		"GET /", "GET /health", "GET /test/config", "GET /ws", "GET /metrics",
		"POST /api/auth/login", "POST /api/auth/refresh", "GET /api/auth/me", "POST /api/auth/change-password",
		"GET /api/customers", "POST /api/customers", "GET /api/customers/:id", "GET /api/customers/:id/documents",
		"GET /api/appointments/upcoming", "GET /api/appointments/calendar", "GET /api/appointments/slots",
		"GET /api/appointments/:id", "POST /api/appointments", "PUT /api/appointments/:id", "DELETE /api/appointments/:id",
		"GET /api/dashboard/stats", "GET /api/dashboard/recent-activity", "GET /api/dashboard/revenue",
		"POST /api/documents/upload", "GET /api/documents/search", "POST /api/documents/sync/:submission_id",
		"GET /api/documents/:submission_id/:filename", "GET /api/documents/:submission_id/:filename/versions",
		"DELETE /api/documents/:submission_id/:filename",
		"GET /api/settings/system", "GET /api/system/prompt", "PUT /api/system/prompt",
		"GET /api/settings/services", "POST /api/settings/services", "PUT /api/settings/services/:id", "DELETE /api/settings/services/:id",
		"GET /api/settings/working-hours", "PUT /api/settings/working-hours",
		"GET /api/activity/recent", "GET /api/activity/recent/mock", "GET /api/activity/customer/:customer_id", "POST /api/activity/log",
		"GET /api/messages/recent", "GET /api/messages/conversations", "GET /api/messages/phone/:phone",
		"GET /api/messages/thread/:thread_id", "POST /api/messages",
	}
	for _, route := range expected {
		assert.True(t, registered[route], "route %s should be registered", route)
	}
}

func TestRouter_MiddlewareChain(t *testing.T) {
	f := newRouterFixture(t, 100)
	f.healthService.On("Check", mock.Anything).Return(&system.HealthReport{
		Status:    system.StatusHealthy,
		Database:  system.StatusConnected,
		Storage:   system.StatusConnected,
		Timestamp: time.Now().UTC(),
	})
	f.authService.On("Authenticate", mock.Anything, "good-token").Return(&users.Identity{UserID: 1, Username: "admin"}, nil)
	f.customerService.On("List", mock.Anything, mock.Anything).Return([]*customers.Customer{}, int64(0), nil)

	r := NewRouter(f.deps)

	tests := []struct {
		name           string
		method         string
		target         string
		apiKey         string
		bearer         string
		expectedStatus int
	}{
		{"health without api key", http.MethodGet, "/health", "", "", http.StatusForbidden},
		{"health with api key", http.MethodGet, "/health", testAPIKey, "", http.StatusOK},
		{"api without bearer", http.MethodGet, "/api/customers", testAPIKey, "", http.StatusUnauthorized},
		{"api with bearer", http.MethodGet, "/api/customers", testAPIKey, "good-token", http.StatusOK},
		{"api without api key", http.MethodGet, "/api/customers", "", "good-token", http.StatusForbidden},
		{"mock activity is not public", http.MethodGet, "/api/activity/recent/mock", testAPIKey, "", http.StatusUnauthorized},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(tt.method, tt.target, nil)
			if tt.apiKey != "" {
				req.Header.Set(APIKeyHeader, tt.apiKey)
			}
			if tt.bearer != "" {
				req.Header.Set("Authorization", "Bearer "+tt.bearer)
			}

			w := serve(r, req)
			assert.Equal(t, tt.expectedStatus, w.Code)
		})
	}
}

func TestRouter_PreflightAnsweredBeforeAuth(t *testing.T) {
	f := newRouterFixture(t, 100)
	r := NewRouter(f.deps)

	req := httptest.NewRequest(http.MethodOptions, "/api/customers", nil)
	req.Header.Set("Origin", "http://localhost:3000")
	req.Header.Set("Access-Control-Request-Method", http.MethodGet)

	w := serve(r, req)

	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.Equal(t, "http://localhost:3000", w.Header().Get("Access-Control-Allow-Origin"))
}

func TestRouter_RateLimitDisabled(t *testing.T) {
	f := newRouterFixture(t, 0)
	f.deps.Limiter = ratelimit.NewMemoryLimiter(1)
	r := NewRouter(f.deps)

	for i := 0; i < 5; i++ {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set(APIKeyHeader, testAPIKey)
		w := serve(r, req)
		require.Equal(t, http.StatusOK, w.Code)
	}
}
