package v1

import (
	"fmt"
	"net/http"
	"time"

	"github.com/eskiturk2021/api-gateway/internal/domain/settings"

	"github.com/gin-gonic/gin"
)

// SettingsHandler defines the interface for the settings endpoints
type SettingsHandler interface {
	GetSystemSettings(ctx *gin.Context)
	GetPrompt(ctx *gin.Context)
	UpdatePrompt(ctx *gin.Context)
	ListServices(ctx *gin.Context)
	CreateService(ctx *gin.Context)
	UpdateService(ctx *gin.Context)
	DeleteService(ctx *gin.Context)
	GetWorkingHours(ctx *gin.Context)
	UpdateWorkingHours(ctx *gin.Context)
}

type settingsHandler struct {
	settingsService settings.SettingsService
	now             func() time.Time
}

// NewSettingsHandler creates a new SettingsHandler
func NewSettingsHandler(settingsService settings.SettingsService) SettingsHandler {
	return &settingsHandler{settingsService: settingsService, now: time.Now}
}

// GetSystemSettings handles GET /settings/system
func (handler *settingsHandler) GetSystemSettings(ctx *gin.Context) {
	systemSettings, err := handler.settingsService.GetSystemSettings(ctx.Request.Context())
	if err != nil {
		respondWithError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, systemSettings)
}

// GetPrompt handles GET /system/prompt
func (handler *settingsHandler) GetPrompt(ctx *gin.Context) {
	prompt, err := handler.settingsService.GetPrompt(ctx.Request.Context())
	if err != nil {
		respondWithError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, PromptResponse{Prompt: prompt, Timestamp: handler.now().UTC()})
}

// UpdatePrompt handles PUT /system/prompt
func (handler *settingsHandler) UpdatePrompt(ctx *gin.Context) {
	var request UpdatePromptRequest
	if err := ctx.ShouldBindJSON(&request); err != nil {
		abortWithMessage(ctx, http.StatusBadRequest, fmt.Sprintf("invalid prompt data: %v", err))
		return
	}

	if err := handler.settingsService.UpdatePrompt(ctx.Request.Context(), request.Content); err != nil {
		respondWithError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, StatusResponse{Status: "success", Message: "System prompt updated successfully"})
}

// ListServices handles GET /settings/services
func (handler *settingsHandler) ListServices(ctx *gin.Context) {
	services, err := handler.settingsService.ListServices(ctx.Request.Context())
	if err != nil {
		respondWithError(ctx, err)
		return
	}

	response := make([]ServiceResponse, 0, len(services))
	for _, service := range services {
		response = append(response, toServiceResponse(service))
	}
	ctx.JSON(http.StatusOK, response)
}

// CreateService handles POST /settings/services
func (handler *settingsHandler) CreateService(ctx *gin.Context) {
	var request CreateServiceRequest
	if err := ctx.ShouldBindJSON(&request); err != nil {
		abortWithMessage(ctx, http.StatusBadRequest, fmt.Sprintf("invalid service data: %v", err))
		return
	}

	service, err := handler.settingsService.CreateService(ctx.Request.Context(), &settings.CreateServiceRequest{
		Name:        request.Name,
		Description: request.Description,
		Duration:    request.Duration,
		Price:       request.Price,
		Category:    request.Category,
	})
	if err != nil {
		respondWithError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, CreatedServiceResponse{ID: service.ServiceID, Name: service.Name})
}

// UpdateService handles PUT /settings/services/:id
func (handler *settingsHandler) UpdateService(ctx *gin.Context) {
	var request UpdateServiceRequest
	if err := ctx.ShouldBindJSON(&request); err != nil {
		abortWithMessage(ctx, http.StatusBadRequest, fmt.Sprintf("invalid service data: %v", err))
		return
	}

	service, err := handler.settingsService.UpdateService(ctx.Request.Context(), ctx.Param("id"), &settings.UpdateServiceRequest{
		Name:        request.Name,
		Description: request.Description,
		Duration:    request.Duration,
		Price:       request.Price,
		Category:    request.Category,
		Active:      request.Active,
	})
	if err != nil {
		respondWithError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, toServiceResponse(service))
}

// DeleteService handles DELETE /settings/services/:id
func (handler *settingsHandler) DeleteService(ctx *gin.Context) {
	if err := handler.settingsService.DeleteService(ctx.Request.Context(), ctx.Param("id")); err != nil {
		respondWithError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, StatusResponse{Status: "success", Message: "Service deactivated"})
}

// GetWorkingHours handles GET /settings/working-hours
func (handler *settingsHandler) GetWorkingHours(ctx *gin.Context) {
	hours, err := handler.settingsService.GetWorkingHours(ctx.Request.Context())
	if err != nil {
		respondWithError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, hours)
}

// UpdateWorkingHours handles PUT /settings/working-hours
func (handler *settingsHandler) UpdateWorkingHours(ctx *gin.Context) {
	var hours settings.WorkingHours
	if err := ctx.ShouldBindJSON(&hours); err != nil {
		abortWithMessage(ctx, http.StatusBadRequest, fmt.Sprintf("invalid working hours: %v", err))
		return
	}

	if err := handler.settingsService.UpdateWorkingHours(ctx.Request.Context(), &hours); err != nil {
		respondWithError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, hours)
}
