package v1

import (
	"github.com/eskiturk2021/api-gateway/internal/domain/activities"
	"github.com/eskiturk2021/api-gateway/internal/domain/appointments"
	"github.com/eskiturk2021/api-gateway/internal/domain/customers"
	"github.com/eskiturk2021/api-gateway/internal/domain/dashboard"
	"github.com/eskiturk2021/api-gateway/internal/domain/documents"
	"github.com/eskiturk2021/api-gateway/internal/domain/messages"
	"github.com/eskiturk2021/api-gateway/internal/domain/settings"
	"github.com/eskiturk2021/api-gateway/internal/domain/system"
	"github.com/eskiturk2021/api-gateway/internal/domain/users"
	"github.com/eskiturk2021/api-gateway/internal/infrastructure/ratelimit"
	"github.com/eskiturk2021/api-gateway/internal/infrastructure/telemetry"
	"github.com/eskiturk2021/api-gateway/internal/pkg/config"
	"github.com/eskiturk2021/api-gateway/internal/pkg/logger"

	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/otel/trace"
)

// Dependencies are the services and infrastructure the routes are served by
type Dependencies struct {
	Config *config.GatewayConfig
	Logger logger.Logger

	AuthService        users.AuthService
	CustomerService    customers.CustomerService
	AppointmentService appointments.AppointmentService
	DashboardService   dashboard.DashboardService
	DocumentService    documents.DocumentService
	SyncService        documents.SyncService
	SettingsService    settings.SettingsService
	ActivityService    activities.ActivityService
	MessageService     messages.MessageService
	HealthService      system.HealthService

	Limiter   ratelimit.Limiter
	Metrics   *telemetry.Metrics
	Tracer    trace.Tracer
	Websocket WebsocketServer
}

// NewRouter builds the gateway engine with the full middleware chain and every route
func NewRouter(deps *Dependencies) *gin.Engine {
	r := gin.New()
	SetupMiddleware(r, deps)
	SetupRoutes(r, deps)
	return r
}

// SetupMiddleware installs recovery, observation, CORS, rate limiting and authentication, in that order
func SetupMiddleware(r *gin.Engine, deps *Dependencies) {
	var limiter ratelimit.Limiter
	if deps.Config.Server.RateLimit > 0 {
		limiter = deps.Limiter
	}

	r.Use(
		Recovery(deps.Logger),
		RequestObserver(deps.Logger, deps.Metrics, deps.Tracer),
		CORS(&deps.Config.Server),
		RateLimit(limiter, deps.Metrics, deps.Logger),
		APIKey(deps.Config.Auth.APIKey),
		JWT(deps.AuthService),
	)
}

// SetupRoutes registers the system endpoints at the root and the JSON API under BasePath
func SetupRoutes(r *gin.Engine, deps *Dependencies) {
	systemHandler := NewSystemHandler(deps.HealthService, deps.Config, deps.Websocket, deps.Logger)
	r.GET("/", systemHandler.Root)
	r.GET("/health", systemHandler.Health)
	r.GET("/test/config", systemHandler.TestConfig)
	r.GET("/ws", systemHandler.Websocket)
	if deps.Metrics != nil {
		r.GET("/metrics", gin.WrapH(deps.Metrics.Handler()))
	}

	api := r.Group(BasePath) // lookup in version file

	// Auth Routes
	authHandler := NewAuthHandler(deps.AuthService)
	api.POST("/auth/login", authHandler.Login)
	api.POST("/auth/refresh", authHandler.Refresh)
	api.GET("/auth/me", authHandler.Me)
	api.POST("/auth/change-password", authHandler.ChangePassword)

	// Customers Routes
	customerHandler := NewCustomerHandler(deps.CustomerService, deps.AppointmentService, deps.DocumentService)
	api.GET("/customers", customerHandler.List)
	api.POST("/customers", customerHandler.Create)
	api.GET("/customers/:id", customerHandler.GetByID)
	api.GET("/customers/:id/documents", customerHandler.ListDocuments)

	// Appointments Routes
	appointmentHandler := NewAppointmentHandler(deps.AppointmentService)
	api.GET("/appointments/upcoming", appointmentHandler.ListUpcoming)
	api.GET("/appointments/calendar", appointmentHandler.Calendar)
	api.GET("/appointments/slots", appointmentHandler.AvailableSlots)
	api.GET("/appointments/:id", appointmentHandler.GetByID)
	api.POST("/appointments", appointmentHandler.Create)
	api.PUT("/appointments/:id", appointmentHandler.Update)
	api.DELETE("/appointments/:id", appointmentHandler.Cancel)

	// Dashboard Routes
	dashboardHandler := NewDashboardHandler(deps.DashboardService)
	api.GET("/dashboard/stats", dashboardHandler.Stats)
	api.GET("/dashboard/recent-activity", dashboardHandler.RecentActivity)
	api.GET("/dashboard/revenue", dashboardHandler.Revenue)

	// Documents Routes
	documentHandler := NewDocumentHandler(deps.DocumentService, deps.SyncService)
	api.POST("/documents/upload", documentHandler.Upload)
	api.GET("/documents/search", documentHandler.Search)
	api.POST("/documents/sync/:submission_id", documentHandler.Sync)
	api.GET("/documents/:submission_id/:filename", documentHandler.Get)
	api.GET("/documents/:submission_id/:filename/versions", documentHandler.Versions)
	api.DELETE("/documents/:submission_id/:filename", documentHandler.Delete)

	// Settings Routes
	settingsHandler := NewSettingsHandler(deps.SettingsService)
	api.GET("/settings/system", settingsHandler.GetSystemSettings)
	api.GET("/system/prompt", settingsHandler.GetPrompt)
	api.PUT("/system/prompt", settingsHandler.UpdatePrompt)
	api.GET("/settings/services", settingsHandler.ListServices)
	api.POST("/settings/services", settingsHandler.CreateService)
	api.PUT("/settings/services/:id", settingsHandler.UpdateService)
	api.DELETE("/settings/services/:id", settingsHandler.DeleteService)
	api.GET("/settings/working-hours", settingsHandler.GetWorkingHours)
	api.PUT("/settings/working-hours", settingsHandler.UpdateWorkingHours)

	// Activity Routes
	activityHandler := NewActivityHandler(deps.ActivityService)
	api.GET("/activity/recent", activityHandler.Recent)
	api.GET("/activity/recent/mock", activityHandler.Mock)
	api.GET("/activity/customer/:customer_id", activityHandler.ForCustomer)
	api.POST("/activity/log", activityHandler.Log)

	// Messages Routes
	messageHandler := NewMessageHandler(deps.MessageService)
	api.GET("/messages/recent", messageHandler.Recent)
	api.GET("/messages/conversations", messageHandler.Conversations)
	api.GET("/messages/phone/:phone", messageHandler.ByPhone)
	api.GET("/messages/thread/:thread_id", messageHandler.ByThread)
	api.POST("/messages", messageHandler.Create)
}
