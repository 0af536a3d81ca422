package v1

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/eskiturk2021/api-gateway/internal/domain/appointments"
	"github.com/eskiturk2021/api-gateway/internal/domain/customers"

	"github.com/gin-gonic/gin"
)

// AppointmentHandler defines the interface for handling appointment-related operations
type AppointmentHandler interface {
	ListUpcoming(ctx *gin.Context)
	GetByID(ctx *gin.Context)
	Create(ctx *gin.Context)
	Update(ctx *gin.Context)
	Cancel(ctx *gin.Context)
	Calendar(ctx *gin.Context)
	AvailableSlots(ctx *gin.Context)
}

type appointmentHandler struct {
	appointmentService appointments.AppointmentService
}

// NewAppointmentHandler creates a new AppointmentHandler
func NewAppointmentHandler(appointmentService appointments.AppointmentService) AppointmentHandler {
	return &appointmentHandler{appointmentService: appointmentService}
}

// ListUpcoming handles GET /appointments/upcoming
// @Summary List pending and confirmed appointments from today on
// @Tags Appointment
// @Produce json
// @Param limit query int false "Page size (1-100)"
// @Param offset query int false "Page offset"
// @Success 200 {array} AppointmentResponse
// @Router /appointments/upcoming [get]
func (handler *appointmentHandler) ListUpcoming(ctx *gin.Context) {
	limit, offset, err := pageQuery(ctx, 10, 100)
	if err != nil {
		abortWithMessage(ctx, http.StatusBadRequest, err.Error())
		return
	}

	list, err := handler.appointmentService.ListUpcoming(ctx.Request.Context(), limit, offset)
	if err != nil {
		respondWithError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, toAppointmentResponses(list))
}

// GetByID handles GET /appointments/:id
func (handler *appointmentHandler) GetByID(ctx *gin.Context) {
	appointment, err := handler.appointmentService.GetByAppointmentID(ctx.Request.Context(), ctx.Param("id"))
	if err != nil {
		respondWithError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, toAppointmentResponse(appointment))
}

// Create handles POST /appointments
// @Summary Book an appointment for an existing customer
// @Tags Appointment
// @Accept json
// @Produce json
// @Param requestBody body CreateAppointmentRequest true "Appointment"
// @Success 201 {object} CreatedResponse
// @Failure 400 {object} ErrorResponse
// @Router /appointments [post]
func (handler *appointmentHandler) Create(ctx *gin.Context) {
	var request CreateAppointmentRequest
	if err := ctx.ShouldBindJSON(&request); err != nil {
		abortWithMessage(ctx, http.StatusBadRequest, fmt.Sprintf("invalid appointment data: %v", err))
		return
	}

	appointment, err := handler.appointmentService.Create(ctx.Request.Context(), &appointments.CreateAppointmentRequest{
		CustomerID:      request.CustomerID,
		ServiceType:     request.ServiceType,
		AppointmentDate: request.AppointmentDate,
		AppointmentTime: request.AppointmentTime,
		Notes:           request.Notes,
		EstimatedCost:   request.EstimatedCost,
	})
	if err != nil {
		// the customer is part of the payload, not the resource path
		if errors.Is(err, customers.ErrCustomerNotFound) {
			abortWithMessage(ctx, http.StatusBadRequest, "Customer not found")
			return
		}
		respondWithError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, CreatedResponse{
		ID:      appointment.AppointmentID,
		Status:  "success",
		Message: "Appointment created successfully",
	})
}

// Update handles PUT /appointments/:id
func (handler *appointmentHandler) Update(ctx *gin.Context) {
	var request UpdateAppointmentRequest
	if err := ctx.ShouldBindJSON(&request); err != nil {
		abortWithMessage(ctx, http.StatusBadRequest, fmt.Sprintf("invalid appointment data: %v", err))
		return
	}

	appointment, err := handler.appointmentService.Update(ctx.Request.Context(), ctx.Param("id"), &appointments.UpdateAppointmentRequest{
		ServiceType:     request.ServiceType,
		AppointmentDate: request.AppointmentDate,
		AppointmentTime: request.AppointmentTime,
		Status:          request.Status,
		Notes:           request.Notes,
		EstimatedCost:   request.EstimatedCost,
	})
	if err != nil {
		respondWithError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, toAppointmentResponse(appointment))
}

// Cancel handles DELETE /appointments/:id
func (handler *appointmentHandler) Cancel(ctx *gin.Context) {
	if err := handler.appointmentService.Cancel(ctx.Request.Context(), ctx.Param("id")); err != nil {
		respondWithError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, StatusResponse{Status: "success", Message: "Appointment cancelled successfully"})
}

// Calendar handles GET /appointments/calendar?year&month
// @Summary Appointments of a month as calendar entries
// @Tags Appointment
// @Produce json
// @Param year query int true "Year"
// @Param month query int true "Month (1-12)"
// @Success 200 {array} CalendarEventResponse
// @Failure 400 {object} ErrorResponse
// @Router /appointments/calendar [get]
func (handler *appointmentHandler) Calendar(ctx *gin.Context) {
	year, err := boundedIntQuery(ctx, "year", 0, 1, 9999)
	if err != nil {
		abortWithMessage(ctx, http.StatusBadRequest, err.Error())
		return
	}
	month, err := boundedIntQuery(ctx, "month", 0, 1, 12)
	if err != nil {
		abortWithMessage(ctx, http.StatusBadRequest, err.Error())
		return
	}

	list, err := handler.appointmentService.Calendar(ctx.Request.Context(), year, month)
	if err != nil {
		respondWithError(ctx, err)
		return
	}

	events := make([]CalendarEventResponse, 0, len(list))
	for _, appointment := range list {
		event, err := toCalendarEvent(appointment)
		if err != nil {
			respondWithError(ctx, err)
			return
		}
		events = append(events, event)
	}

	ctx.JSON(http.StatusOK, events)
}

// AvailableSlots handles GET /appointments/slots?date
func (handler *appointmentHandler) AvailableSlots(ctx *gin.Context) {
	slots, err := handler.appointmentService.AvailableSlots(ctx.Request.Context(), ctx.Query("date"))
	if err != nil {
		respondWithError(ctx, err)
		return
	}

	response := make([]SlotResponse, 0, len(slots))
	for _, slot := range slots {
		response = append(response, SlotResponse{Time: slot.Time, IsAvailable: slot.IsAvailable})
	}

	ctx.JSON(http.StatusOK, response)
}
