//go:build unit
// +build unit

package v1

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/eskiturk2021/api-gateway/internal/domain/users"
	"github.com/eskiturk2021/api-gateway/internal/infrastructure/ratelimit"
	"github.com/eskiturk2021/api-gateway/internal/infrastructure/telemetry"
	"github.com/eskiturk2021/api-gateway/internal/pkg/config"
	"github.com/eskiturk2021/api-gateway/internal/pkg/testutil"

	"github.com/gin-gonic/gin"
	promtestutil "github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

const testAPIKey = "test-api-key"

func init() {
	gin.SetMode(gin.TestMode)
}

func okHandler(ctx *gin.Context) {
	ctx.JSON(http.StatusOK, StatusResponse{Status: "ok"})
}

func serve(r *gin.Engine, req *http.Request) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestAPIKeyMiddleware(t *testing.T) {
	r := gin.New()
	r.Use(APIKey(testAPIKey))
	r.GET("/api/customers", okHandler)
	r.GET("/ws", okHandler)
	r.OPTIONS("/api/customers", okHandler)

	tests := []struct {
		name     string
		method   string
		target   string
		header   string
		expected int
	}{
		{"valid header", http.MethodGet, "/api/customers", testAPIKey, http.StatusOK},
		{"missing header", http.MethodGet, "/api/customers", "", http.StatusForbidden},
		{"wrong key", http.MethodGet, "/api/customers", "other-key", http.StatusForbidden},
		{"query key on websocket", http.MethodGet, "/ws?api_key=" + testAPIKey, "", http.StatusOK},
		{"query key elsewhere", http.MethodGet, "/api/customers?api_key=" + testAPIKey, "", http.StatusForbidden},
		{"preflight without key", http.MethodOptions, "/api/customers", "", http.StatusOK},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(tt.method, tt.target, nil)
			if tt.header != "" {
				req.Header.Set(APIKeyHeader, tt.header)
			}

			w := serve(r, req)

			assert.Equal(t, tt.expected, w.Code)
			if tt.expected == http.StatusForbidden {
				assert.JSONEq(t, `{"message": "Unauthorized: Invalid API key"}`, w.Body.String())
			}
		})
	}
}

func TestJWTMiddleware(t *testing.T) {
	identity := &users.Identity{UserID: 7, Username: "alice", Role: users.RoleUser}

	authService := new(MockAuthService)
	authService.On("Authenticate", mock.Anything, "good-token").Return(identity, nil)
	authService.On("Authenticate", mock.Anything, "old-token").Return(nil, users.ErrExpiredToken)
	authService.On("Authenticate", mock.Anything, "forged-token").Return(nil, users.ErrInvalidToken)

	r := gin.New()
	r.Use(JWT(authService))
	r.GET("/health", okHandler)
	r.POST("/api/auth/login", okHandler)
	r.GET("/api/auth/me", func(ctx *gin.Context) {
		stored, ok := identityFrom(ctx)
		require.True(t, ok)
		ctx.JSON(http.StatusOK, MeResponse{ID: stored.UserID, Username: stored.Username})
	})

	tests := []struct {
		name            string
		method          string
		target          string
		authorization   string
		expectedStatus  int
		expectedMessage string
	}{
		{"public health", http.MethodGet, "/health", "", http.StatusOK, ""},
		{"public login", http.MethodPost, "/api/auth/login", "", http.StatusOK, ""},
		{"missing header", http.MethodGet, "/api/auth/me", "", http.StatusUnauthorized, "Missing JWT token"},
		{"wrong scheme", http.MethodGet, "/api/auth/me", "Basic abc", http.StatusUnauthorized, "Invalid authorization format"},
		{"no token", http.MethodGet, "/api/auth/me", "Bearer", http.StatusUnauthorized, "Invalid authorization format"},
		{"expired token", http.MethodGet, "/api/auth/me", "Bearer old-token", http.StatusUnauthorized, "Token has expired"},
		{"invalid token", http.MethodGet, "/api/auth/me", "Bearer forged-token", http.StatusUnauthorized, "Invalid JWT token"},
		{"valid token", http.MethodGet, "/api/auth/me", "Bearer good-token", http.StatusOK, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(tt.method, tt.target, nil)
			if tt.authorization != "" {
				req.Header.Set("Authorization", tt.authorization)
			}

			w := serve(r, req)

			assert.Equal(t, tt.expectedStatus, w.Code)
			if tt.expectedMessage != "" {
				assert.Contains(t, w.Body.String(), tt.expectedMessage)
			}
		})
	}
}

func TestIsPublicPath_ExactMatch(t *testing.T) {
	assert.True(t, IsPublicPath("/"))
	assert.True(t, IsPublicPath("/api/auth/refresh"))
	assert.False(t, IsPublicPath("/api/customers"))
	assert.False(t, IsPublicPath("/health/details"))
	assert.False(t, IsPublicPath("/api/auth/me"))
}

func TestRateLimitMiddleware(t *testing.T) {
	metrics := telemetry.NewMetrics()

	r := gin.New()
	r.Use(RateLimit(ratelimit.NewMemoryLimiter(2), metrics, testutil.SetupTestLogger(t)))
	r.GET("/api/customers", okHandler)
	r.GET("/health", okHandler)

	for i := 0; i < 2; i++ {
		w := serve(r, httptest.NewRequest(http.MethodGet, "/api/customers", nil))
		require.Equal(t, http.StatusOK, w.Code)
	}

	w := serve(r, httptest.NewRequest(http.MethodGet, "/api/customers", nil))
	assert.Equal(t, http.StatusTooManyRequests, w.Code)
	assert.Equal(t, "60", w.Header().Get("Retry-After"))
	assert.JSONEq(t, `{"message": "Too many requests"}`, w.Body.String())
	assert.Equal(t, 1.0, promtestutil.ToFloat64(metrics.RateLimitedRequests))

	w = serve(r, httptest.NewRequest(http.MethodGet, "/health", nil))
	assert.Equal(t, http.StatusOK, w.Code)
}

type unavailableLimiter struct{}

func (unavailableLimiter) Allow(context.Context, string) (bool, error) {
	return false, errors.New("redis: connection refused")
}

func TestRateLimitMiddleware_LimiterFailureLetsRequestsThrough(t *testing.T) {
	r := gin.New()
	r.Use(RateLimit(unavailableLimiter{}, nil, testutil.SetupTestLogger(t)))
	r.GET("/api/customers", okHandler)

	w := serve(r, httptest.NewRequest(http.MethodGet, "/api/customers", nil))
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestCORSMiddleware(t *testing.T) {
	tests := []struct {
		name           string
		origins        []string
		origin         string
		expectedOrigin string
	}{
		{"wildcard echoes origin", []string{"*"}, "https://app.example.com", "https://app.example.com"},
		{"listed origin", []string{"https://app.example.com"}, "https://app.example.com", "https://app.example.com"},
		{"unlisted origin", []string{"https://app.example.com"}, "https://evil.example.com", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := gin.New()
			r.Use(CORS(&config.ServerSettings{CORSAllowedOrigins: tt.origins}))
			r.GET("/api/customers", okHandler)

			req := httptest.NewRequest(http.MethodOptions, "/api/customers", nil)
			req.Header.Set("Origin", tt.origin)
			req.Header.Set("Access-Control-Request-Method", http.MethodGet)
			req.Header.Set("Access-Control-Request-Headers", "X-API-Key, Authorization")

			w := serve(r, req)

			assert.Equal(t, tt.expectedOrigin, w.Header().Get("Access-Control-Allow-Origin"))
			if tt.expectedOrigin != "" {
				assert.Equal(t, http.StatusNoContent, w.Code)
				assert.Equal(t, "true", w.Header().Get("Access-Control-Allow-Credentials"))
				assert.Equal(t, "3600", w.Header().Get("Access-Control-Max-Age"))
			}
		})
	}
}

func TestRecoveryMiddleware(t *testing.T) {
	tests := []struct {
		name         string
		mode         string
		expectedBody string
	}{
		{
			name:         "hides panic value outside debug mode",
			mode:         gin.TestMode,
			expectedBody: `{"message": "Internal server error"}`,
		},
		{
			name:         "reports panic value in debug mode",
			mode:         gin.DebugMode,
			expectedBody: `{"message": "Internal server error", "details": "boom"}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			gin.SetMode(tt.mode)
			t.Cleanup(func() { gin.SetMode(gin.TestMode) })

			r := gin.New()
			r.Use(Recovery(testutil.SetupTestLogger(t)))
			r.GET("/panic", func(*gin.Context) { panic("boom") })

			w := serve(r, httptest.NewRequest(http.MethodGet, "/panic", nil))

			assert.Equal(t, http.StatusInternalServerError, w.Code)
			assert.JSONEq(t, tt.expectedBody, w.Body.String())
		})
	}
}

func TestRequestObserver_RecordsRouteTemplate(t *testing.T) {
	metrics := telemetry.NewMetrics()

	r := gin.New()
	r.Use(RequestObserver(testutil.SetupTestLogger(t), metrics, nil))
	r.GET("/api/customers/:id", okHandler)
	r.GET("/api/fail", func(ctx *gin.Context) { respondWithError(ctx, errors.New("database unavailable")) })

	serve(r, httptest.NewRequest(http.MethodGet, "/api/customers/CUST-1", nil))
	serve(r, httptest.NewRequest(http.MethodGet, "/api/customers/CUST-2", nil))
	serve(r, httptest.NewRequest(http.MethodGet, "/api/fail", nil))
	serve(r, httptest.NewRequest(http.MethodGet, "/nowhere", nil))

	assert.Equal(t, 2.0, promtestutil.ToFloat64(metrics.HTTPRequests.WithLabelValues(http.MethodGet, "/api/customers/:id", "200")))
	assert.Equal(t, 1.0, promtestutil.ToFloat64(metrics.HTTPRequests.WithLabelValues(http.MethodGet, "/api/fail", "500")))
	assert.Equal(t, 1.0, promtestutil.ToFloat64(metrics.HTTPRequests.WithLabelValues(http.MethodGet, unmatchedRoute, "404")))
}
