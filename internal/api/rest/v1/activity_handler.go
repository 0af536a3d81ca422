package v1

import (
	"fmt"
	"net/http"
	"time"

	"github.com/eskiturk2021/api-gateway/internal/domain/activities"

	"github.com/gin-gonic/gin"
)

// ActivityHandler defines the interface for the activity feed endpoints
type ActivityHandler interface {
	Recent(ctx *gin.Context)
	ForCustomer(ctx *gin.Context)
	Log(ctx *gin.Context)
	Mock(ctx *gin.Context)
}

type activityHandler struct {
	activityService activities.ActivityService
	now             func() time.Time
}

// NewActivityHandler creates a new ActivityHandler
func NewActivityHandler(activityService activities.ActivityService) ActivityHandler {
	return &activityHandler{activityService: activityService, now: time.Now}
}

// Recent handles GET /activity/recent
func (handler *activityHandler) Recent(ctx *gin.Context) {
	limit, offset, err := pageQuery(ctx, 20, 100)
	if err != nil {
		abortWithMessage(ctx, http.StatusBadRequest, err.Error())
		return
	}

	list, err := handler.activityService.Recent(ctx.Request.Context(), limit, offset)
	if err != nil {
		respondWithError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, toActivityResponses(list))
}

// ForCustomer handles GET /activity/customer/:customer_id
func (handler *activityHandler) ForCustomer(ctx *gin.Context) {
	limit, err := boundedIntQuery(ctx, "limit", 20, 1, 100)
	if err != nil {
		abortWithMessage(ctx, http.StatusBadRequest, err.Error())
		return
	}

	list, err := handler.activityService.ForCustomer(ctx.Request.Context(), ctx.Param("customer_id"), limit)
	if err != nil {
		respondWithError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, toActivityResponses(list))
}

// Log handles POST /activity/log
func (handler *activityHandler) Log(ctx *gin.Context) {
	var request LogActivityRequest
	if err := ctx.ShouldBindJSON(&request); err != nil {
		abortWithMessage(ctx, http.StatusBadRequest, fmt.Sprintf("invalid activity data: %v", err))
		return
	}

	activity, err := handler.activityService.Log(ctx.Request.Context(), &activities.LogRequest{
		CustomerID: request.CustomerID,
		Message:    request.Message,
		Type:       request.Type,
	})
	if err != nil {
		respondWithError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, LogActivityResponse{
		Status:  "success",
		ID:      activity.ID,
		Message: "Activity logged successfully",
	})
}

// MockCustomerResponse is the customer of a sample activity
type MockCustomerResponse struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// MockActivityResponse is a sample activity served for UI development
type MockActivityResponse struct {
	ID        string               `json:"id"`
	Message   string               `json:"message"`
	Type      string               `json:"type"`
	CreatedAt time.Time            `json:"created_at"`
	Customer  MockCustomerResponse `json:"customer"`
}

// Mock handles GET /activity/recent/mock with three fixed sample entries
func (handler *activityHandler) Mock(ctx *gin.Context) {
	now := handler.now().UTC()
	john := MockCustomerResponse{ID: "cust-1", Name: "John Doe"}
	jane := MockCustomerResponse{ID: "cust-2", Name: "Jane Smith"}

	ctx.JSON(http.StatusOK, []MockActivityResponse{
		{ID: "act-1", Message: "New appointment created", Type: activities.TypeAppointment, CreatedAt: now, Customer: john},
		{ID: "act-2", Message: "Customer profile updated", Type: activities.TypeCustomer, CreatedAt: now, Customer: jane},
		{ID: "act-3", Message: "Document uploaded", Type: activities.TypeDocument, CreatedAt: now, Customer: john},
	})
}
