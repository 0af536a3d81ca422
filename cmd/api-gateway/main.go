// cmd/api-gateway/main.go
package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	v1 "github.com/eskiturk2021/api-gateway/internal/api/rest/v1"
	"github.com/eskiturk2021/api-gateway/internal/app"
	"github.com/eskiturk2021/api-gateway/internal/domain/activities"
	"github.com/eskiturk2021/api-gateway/internal/domain/appointments"
	"github.com/eskiturk2021/api-gateway/internal/domain/blobs"
	"github.com/eskiturk2021/api-gateway/internal/domain/customers"
	"github.com/eskiturk2021/api-gateway/internal/domain/dashboard"
	"github.com/eskiturk2021/api-gateway/internal/domain/documents"
	"github.com/eskiturk2021/api-gateway/internal/domain/events"
	"github.com/eskiturk2021/api-gateway/internal/domain/messages"
	"github.com/eskiturk2021/api-gateway/internal/domain/settings"
	"github.com/eskiturk2021/api-gateway/internal/domain/users"
	"github.com/eskiturk2021/api-gateway/internal/infrastructure/connector"
	"github.com/eskiturk2021/api-gateway/internal/infrastructure/cryptography"
	"github.com/eskiturk2021/api-gateway/internal/infrastructure/messaging"
	"github.com/eskiturk2021/api-gateway/internal/infrastructure/pdfinfo"
	"github.com/eskiturk2021/api-gateway/internal/infrastructure/persistence"
	"github.com/eskiturk2021/api-gateway/internal/infrastructure/ratelimit"
	"github.com/eskiturk2021/api-gateway/internal/infrastructure/realtime"
	"github.com/eskiturk2021/api-gateway/internal/infrastructure/telemetry"
	"github.com/eskiturk2021/api-gateway/internal/pkg/config"
	"github.com/eskiturk2021/api-gateway/internal/pkg/logger"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Application error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	envFile := os.Getenv("ENV_FILE")
	if envFile == "" {
		envFile = ".env"
	}

	cfg, err := config.InitializeGatewayConfig(envFile)
	if err != nil {
		return fmt.Errorf("failed to initialize config: %w", err)
	}

	if err := logger.InitLogger(&cfg.Logger); err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}

	log, err := logger.GetLogger()
	if err != nil {
		return fmt.Errorf("failed to get logger: %w", err)
	}

	if cfg.Server.Debug {
		gin.SetMode(gin.DebugMode)
	} else {
		gin.SetMode(gin.ReleaseMode)
	}
	log.Info(fmt.Sprintf("Starting %s %s (PORT env: %s, effective port: %s)", config.AppName, config.AppVersion, orNotSet(cfg.EnvPort), cfg.Server.Port))

	ctx := context.Background()
	deps, err := initializeDependencies(ctx, cfg, log)
	if err != nil {
		return fmt.Errorf("failed to initialize dependencies: %w", err)
	}
	defer deps.close(log)

	return startServerWithGracefulShutdown(cfg, deps, log)
}

// appDependencies holds all initialized application components
type appDependencies struct {
	db        *gorm.DB
	publisher events.Publisher
	redis     redis.UniversalClient
	tracing   *telemetry.Tracing
	router    *gin.Engine
}

// close releases the dependencies in reverse start order
func (d *appDependencies) close(log logger.Logger) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	// closes the hub and, when configured, the RabbitMQ channel
	if err := d.publisher.Close(); err != nil {
		log.Warn("Failed to close event publishers: ", err)
	}
	if d.redis != nil {
		if err := d.redis.Close(); err != nil {
			log.Warn("Failed to close redis client: ", err)
		}
	}
	if err := d.tracing.Shutdown(ctx); err != nil {
		log.Warn("Failed to flush traces: ", err)
	}
	if err := persistence.CloseDB(d.db); err != nil {
		log.Warn("Failed to close database: ", err)
	}
}

// initializeDependencies sets up all application components
func initializeDependencies(ctx context.Context, cfg *config.GatewayConfig, log logger.Logger) (*appDependencies, error) {
	db, err := persistence.NewDBConnection(cfg.Database, persistence.NewGormLogger(log, cfg.Logger.LogLevel))
	if err != nil {
		return nil, fmt.Errorf("failed to create db connection: %w", err)
	}

	if err := persistence.Migrate(db); err != nil {
		return nil, fmt.Errorf("failed to migrate schema: %w", err)
	}
	log.Info("Database migrations completed successfully")

	repos, err := initializeRepositories(db, log)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize repositories: %w", err)
	}

	blobConnector, err := connector.NewS3BlobConnector(ctx, &cfg.Storage, log)
	if err != nil {
		return nil, fmt.Errorf("failed to create S3 blob connector: %w", err)
	}
	log.Info("S3 connector initialized for bucket ", cfg.Storage.Bucket)

	metrics := telemetry.NewMetrics()

	hub := realtime.NewHub(log, metrics.WebsocketClients, originChecker(&cfg.Server))
	go hub.Run()

	publisher, err := initializePublisher(cfg, hub, metrics, log)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize event publishers: %w", err)
	}

	services, err := initializeApplicationServices(cfg, repos, blobConnector, publisher, log)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize services: %w", err)
	}

	created, err := services.auth.EnsureAdmin(ctx, cfg.Auth.AdminDefaultPassword)
	if err != nil {
		return nil, fmt.Errorf("failed to ensure admin account: %w", err)
	}
	if created {
		log.Warn("Created default admin account, change its password")
	}

	health, err := app.NewHealthService(persistence.NewDBPinger(db), blobConnector, log)
	if err != nil {
		return nil, fmt.Errorf("failed to create health service: %w", err)
	}

	redisClient, limiter := initializeLimiter(ctx, cfg, log)

	tracing, err := telemetry.InitTracing(ctx, &cfg.Integration)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize tracing: %w", err)
	}

	router := v1.NewRouter(&v1.Dependencies{
		Config:             cfg,
		Logger:             log,
		AuthService:        services.auth,
		CustomerService:    services.customer,
		AppointmentService: services.appointment,
		DashboardService:   services.dashboard,
		DocumentService:    services.document,
		SyncService:        services.sync,
		SettingsService:    services.settings,
		ActivityService:    services.activity,
		MessageService:     services.message,
		HealthService:      health,
		Limiter:            limiter,
		Metrics:            metrics,
		Tracer:             tracing.Tracer(cfg.Integration.ServiceName),
		Websocket:          hub,
	})

	return &appDependencies{
		db:        db,
		publisher: publisher,
		redis:     redisClient,
		tracing:   tracing,
		router:    router,
	}, nil
}

// startServerWithGracefulShutdown starts the HTTP server and handles graceful shutdown
func startServerWithGracefulShutdown(cfg *config.GatewayConfig, deps *appDependencies, log logger.Logger) error {
	srv := &http.Server{
		Addr:              ":" + cfg.Server.Port,
		Handler:           deps.router,
		ReadHeaderTimeout: 10 * time.Second, // Prevent Slowloris attack
	}

	serverErrors := make(chan error, 1)

	go func() {
		log.Info("Starting server on port ", cfg.Server.Port)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErrors <- fmt.Errorf("server failed to start: %w", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-serverErrors:
		return err
	case sig := <-quit:
		log.Info(fmt.Sprintf("Received signal %v, initiating graceful shutdown", sig))
	}

	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	log.Info("Shutting down server...")
	if err := srv.Shutdown(ctx); err != nil {
		return fmt.Errorf("server forced to shutdown: %w", err)
	}

	log.Info("Server stopped gracefully")
	return nil
}

type appRepositories struct {
	users        users.UserRepository
	customers    customers.CustomerRepository
	appointments appointments.AppointmentRepository
	slots        appointments.SlotRepository
	submissions  documents.SubmissionRepository
	services     settings.ServiceRepository
	activities   activities.ActivityRepository
	messages     messages.MessageRepository
}

// initializeRepositories sets up the gorm repositories
func initializeRepositories(db *gorm.DB, log logger.Logger) (*appRepositories, error) {
	var (
		repos appRepositories
		err   error
	)
	if repos.users, err = persistence.NewGormUserRepository(db, log); err != nil {
		return nil, fmt.Errorf("failed to create user repository: %w", err)
	}
	if repos.customers, err = persistence.NewGormCustomerRepository(db, log); err != nil {
		return nil, fmt.Errorf("failed to create customer repository: %w", err)
	}
	if repos.appointments, err = persistence.NewGormAppointmentRepository(db, log); err != nil {
		return nil, fmt.Errorf("failed to create appointment repository: %w", err)
	}
	if repos.slots, err = persistence.NewGormSlotRepository(db, log); err != nil {
		return nil, fmt.Errorf("failed to create slot repository: %w", err)
	}
	if repos.submissions, err = persistence.NewGormSubmissionRepository(db, log); err != nil {
		return nil, fmt.Errorf("failed to create submission repository: %w", err)
	}
	if repos.services, err = persistence.NewGormServiceRepository(db, log); err != nil {
		return nil, fmt.Errorf("failed to create service repository: %w", err)
	}
	if repos.activities, err = persistence.NewGormActivityRepository(db, log); err != nil {
		return nil, fmt.Errorf("failed to create activity repository: %w", err)
	}
	if repos.messages, err = persistence.NewGormMessageRepository(db, log); err != nil {
		return nil, fmt.Errorf("failed to create message repository: %w", err)
	}
	return &repos, nil
}

type appServices struct {
	auth        users.AuthService
	customer    customers.CustomerService
	appointment appointments.AppointmentService
	dashboard   dashboard.DashboardService
	document    documents.DocumentService
	sync        documents.SyncService
	settings    settings.SettingsService
	activity    activities.ActivityService
	message     messages.MessageService
}

// initializeApplicationServices sets up all application services
func initializeApplicationServices(
	cfg *config.GatewayConfig,
	repos *appRepositories,
	blobConnector blobs.BlobConnector,
	publisher events.Publisher,
	log logger.Logger,
) (*appServices, error) {
	hasher, err := cryptography.NewPasswordHasher(cfg.Auth.PasswordSalt, 0)
	if err != nil {
		return nil, fmt.Errorf("failed to create password hasher: %w", err)
	}

	tokens, err := cryptography.NewTokenManager(&cfg.Auth)
	if err != nil {
		return nil, fmt.Errorf("failed to create token manager: %w", err)
	}

	var services appServices
	basePath := cfg.Storage.NormalizedBasePath()

	if services.auth, err = app.NewAuthService(repos.users, tokens, hasher, log); err != nil {
		return nil, fmt.Errorf("failed to create auth service: %w", err)
	}
	if services.customer, err = app.NewCustomerService(repos.customers, repos.activities, publisher, log); err != nil {
		return nil, fmt.Errorf("failed to create customer service: %w", err)
	}
	if services.appointment, err = app.NewAppointmentService(repos.appointments, repos.slots, repos.customers, repos.activities, publisher, log); err != nil {
		return nil, fmt.Errorf("failed to create appointment service: %w", err)
	}
	if services.dashboard, err = app.NewDashboardService(repos.customers, repos.appointments, repos.activities, log); err != nil {
		return nil, fmt.Errorf("failed to create dashboard service: %w", err)
	}
	if services.document, err = app.NewDocumentService(
		blobConnector, repos.submissions, repos.customers, repos.activities,
		pdfinfo.NewPageCounter(), publisher,
		app.DocumentServiceOptions{
			BasePath:      basePath,
			PresignExpiry: time.Duration(cfg.Storage.PresignExpirySeconds) * time.Second,
		},
		log,
	); err != nil {
		return nil, fmt.Errorf("failed to create document service: %w", err)
	}
	if services.sync, err = app.NewSyncService(blobConnector, repos.submissions, basePath, log); err != nil {
		return nil, fmt.Errorf("failed to create sync service: %w", err)
	}
	if services.settings, err = app.NewSettingsService(blobConnector, repos.services, basePath, log); err != nil {
		return nil, fmt.Errorf("failed to create settings service: %w", err)
	}
	if services.activity, err = app.NewActivityService(repos.activities, repos.customers, log); err != nil {
		return nil, fmt.Errorf("failed to create activity service: %w", err)
	}
	if services.message, err = app.NewMessageService(repos.messages, log); err != nil {
		return nil, fmt.Errorf("failed to create message service: %w", err)
	}

	log.Info("Application services initialized successfully")
	return &services, nil
}

// initializePublisher fans domain events out to websocket clients and, when configured, to RabbitMQ
func initializePublisher(cfg *config.GatewayConfig, hub *realtime.Hub, metrics *telemetry.Metrics, log logger.Logger) (events.Publisher, error) {
	sinks := []events.Publisher{hub}
	if cfg.Integration.RabbitMQURL != "" {
		rabbit, err := messaging.NewRabbitMQPublisher(cfg.Integration.RabbitMQURL, cfg.Integration.RabbitMQExchange, log)
		if err != nil {
			return nil, fmt.Errorf("failed to connect to RabbitMQ: %w", err)
		}
		sinks = append(sinks, rabbit)
		log.Info("Publishing domain events to RabbitMQ exchange ", cfg.Integration.RabbitMQExchange)
	}
	return messaging.NewFanoutPublisher(log, metrics.DomainEvents, sinks...), nil
}

// initializeLimiter shares rate limit windows through Redis when REDIS_ADDR is set and keeps them in memory otherwise
func initializeLimiter(ctx context.Context, cfg *config.GatewayConfig, log logger.Logger) (redis.UniversalClient, ratelimit.Limiter) {
	if cfg.Server.RateLimit == 0 {
		log.Info("Rate limiting disabled")
		return nil, nil
	}
	if cfg.Integration.RedisAddr == "" {
		return nil, ratelimit.NewMemoryLimiter(cfg.Server.RateLimit)
	}

	client := redis.NewClient(&redis.Options{Addr: cfg.Integration.RedisAddr})
	if err := client.Ping(ctx).Err(); err != nil {
		log.Warn("Redis unreachable, requests pass until it recovers: ", err)
	}
	return client, ratelimit.NewRedisLimiter(client, cfg.Server.RateLimit)
}

// originChecker applies the CORS allow-list to websocket upgrades
func originChecker(settings *config.ServerSettings) func(r *http.Request) bool {
	if settings.AllowsAllOrigins() {
		return func(*http.Request) bool { return true }
	}
	return func(r *http.Request) bool {
		origin := strings.TrimRight(r.Header.Get("Origin"), "/")
		if origin == "" {
			return true
		}
		for _, allowed := range settings.CORSAllowedOrigins {
			if origin == allowed {
				return true
			}
		}
		return false
	}
}

func orNotSet(value string) string {
	if value == "" {
		return "Not set"
	}
	return value
}
