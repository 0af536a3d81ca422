package v1

import (
	"net/http"

	"github.com/eskiturk2021/api-gateway/internal/domain/system"
	"github.com/eskiturk2021/api-gateway/internal/pkg/config"
	"github.com/eskiturk2021/api-gateway/internal/pkg/logger"

	"github.com/gin-gonic/gin"
)

// WebsocketServer attaches upgraded connections to the event stream
type WebsocketServer interface {
	ServeWS(w http.ResponseWriter, r *http.Request) error
}

// SystemHandler defines the interface for the unversioned system endpoints
type SystemHandler interface {
	Root(ctx *gin.Context)
	Health(ctx *gin.Context)
	TestConfig(ctx *gin.Context)
	Websocket(ctx *gin.Context)
}

type systemHandler struct {
	healthService system.HealthService
	cfg           *config.GatewayConfig
	websocket     WebsocketServer
	logger        logger.Logger
}

// NewSystemHandler creates a new SystemHandler
func NewSystemHandler(healthService system.HealthService, cfg *config.GatewayConfig, websocket WebsocketServer, logger logger.Logger) SystemHandler {
	return &systemHandler{
		healthService: healthService,
		cfg:           cfg,
		websocket:     websocket,
		logger:        logger,
	}
}

// Root handles GET / and identifies the gateway
func (handler *systemHandler) Root(ctx *gin.Context) {
	ctx.JSON(http.StatusOK, RootResponse{
		AppName:     config.AppName,
		Version:     config.AppVersion,
		Description: config.AppDescription,
		Status:      "running",
	})
}

// Health handles GET /health. Degraded dependencies are reported with status 200.
func (handler *systemHandler) Health(ctx *gin.Context) {
	report := handler.healthService.Check(ctx.Request.Context())
	ctx.JSON(http.StatusOK, HealthResponse{
		Status:    report.Status,
		Database:  report.Database,
		S3:        report.Storage,
		Timestamp: report.Timestamp,
	})
}

// TestConfig handles GET /test/config with secrets masked
func (handler *systemHandler) TestConfig(ctx *gin.Context) {
	ctx.JSON(http.StatusOK, handler.cfg.Masked())
}

// Websocket handles GET /ws
func (handler *systemHandler) Websocket(ctx *gin.Context) {
	if handler.websocket == nil {
		abortWithMessage(ctx, http.StatusServiceUnavailable, "Event stream unavailable")
		return
	}
	// the upgrader writes its own error response
	if err := handler.websocket.ServeWS(ctx.Writer, ctx.Request); err != nil {
		handler.logger.Warn("Websocket connection rejected: ", err)
	}
}
