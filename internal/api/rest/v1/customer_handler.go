package v1

import (
	"fmt"
	"net/http"

	"github.com/eskiturk2021/api-gateway/internal/domain/appointments"
	"github.com/eskiturk2021/api-gateway/internal/domain/customers"
	"github.com/eskiturk2021/api-gateway/internal/domain/documents"

	"github.com/gin-gonic/gin"
)

// recentAppointmentsLimit is the number of appointments embedded in a customer detail
const recentAppointmentsLimit = 5

// CustomerHandler defines the interface for handling customer-related operations
type CustomerHandler interface {
	List(ctx *gin.Context)
	GetByID(ctx *gin.Context)
	Create(ctx *gin.Context)
	ListDocuments(ctx *gin.Context)
}

type customerHandler struct {
	customerService    customers.CustomerService
	appointmentService appointments.AppointmentService
	documentService    documents.DocumentService
}

// NewCustomerHandler creates a new CustomerHandler
func NewCustomerHandler(customerService customers.CustomerService, appointmentService appointments.AppointmentService, documentService documents.DocumentService) CustomerHandler {
	return &customerHandler{
		customerService:    customerService,
		appointmentService: appointmentService,
		documentService:    documentService,
	}
}

// List handles GET /customers
// @Summary List customers with optional search
// @Tags Customer
// @Produce json
// @Param search query string false "Matches name, phone and vehicle"
// @Param limit query int false "Page size (1-100)"
// @Param offset query int false "Page offset"
// @Success 200 {object} CustomerListResponse
// @Failure 400 {object} ErrorResponse
// @Router /customers [get]
func (handler *customerHandler) List(ctx *gin.Context) {
	query := customers.NewCustomerQuery()
	query.Search = ctx.Query("search")

	limit, offset, err := pageQuery(ctx, query.Limit, 100)
	if err != nil {
		abortWithMessage(ctx, http.StatusBadRequest, err.Error())
		return
	}
	query.Limit = limit
	query.Offset = offset

	list, total, err := handler.customerService.List(ctx.Request.Context(), query)
	if err != nil {
		respondWithError(ctx, err)
		return
	}

	response := CustomerListResponse{
		Customers:  make([]CustomerSummaryResponse, 0, len(list)),
		Pagination: Pagination{Total: total, Limit: limit, Offset: offset},
	}
	for _, customer := range list {
		response.Customers = append(response.Customers, toCustomerSummary(customer))
	}

	ctx.JSON(http.StatusOK, response)
}

// GetByID handles GET /customers/:id
// @Summary Get a customer with its recent appointments
// @Tags Customer
// @Produce json
// @Param id path string true "Customer ID"
// @Success 200 {object} CustomerDetailResponse
// @Failure 404 {object} ErrorResponse
// @Router /customers/{id} [get]
func (handler *customerHandler) GetByID(ctx *gin.Context) {
	customer, err := handler.customerService.GetByCustomerID(ctx.Request.Context(), ctx.Param("id"))
	if err != nil {
		respondWithError(ctx, err)
		return
	}

	recent, err := handler.appointmentService.ListByCustomerPhone(ctx.Request.Context(), customer.Phone, recentAppointmentsLimit)
	if err != nil {
		respondWithError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, CustomerDetailResponse{
		ID:                 customer.CustomerID,
		Name:               customer.Name,
		Phone:              customer.Phone,
		Vehicle:            toVehicleResponse(customer.VehicleMake, customer.VehicleModel, customer.VehicleYear),
		TotalVisits:        customer.TotalVisits,
		LastVisit:          customer.LastVisit,
		CreatedAt:          customer.CreatedAt,
		RecentAppointments: toAppointmentResponses(recent),
	})
}

// Create handles POST /customers. A known phone answers 200 with the existing customer's ID.
// @Summary Register a customer
// @Tags Customer
// @Accept json
// @Produce json
// @Param requestBody body CreateCustomerRequest true "Customer"
// @Success 200 {object} CreatedResponse
// @Success 201 {object} CreatedResponse
// @Failure 400 {object} ErrorResponse
// @Router /customers [post]
func (handler *customerHandler) Create(ctx *gin.Context) {
	var request CreateCustomerRequest
	if err := ctx.ShouldBindJSON(&request); err != nil {
		abortWithMessage(ctx, http.StatusBadRequest, fmt.Sprintf("invalid customer data: %v", err))
		return
	}

	customer, created, err := handler.customerService.Create(ctx.Request.Context(), &customers.CreateCustomerRequest{
		Phone:        request.Phone,
		Name:         request.Name,
		VehicleMake:  request.VehicleMake,
		VehicleModel: request.VehicleModel,
		VehicleYear:  request.VehicleYear,
	})
	if err != nil {
		respondWithError(ctx, err)
		return
	}

	if !created {
		ctx.JSON(http.StatusOK, CreatedResponse{ID: customer.CustomerID, Status: "exists"})
		return
	}

	ctx.JSON(http.StatusCreated, CreatedResponse{
		ID:      customer.CustomerID,
		Status:  "created",
		Message: "Customer created successfully",
	})
}

// ListDocuments handles GET /customers/:id/documents
func (handler *customerHandler) ListDocuments(ctx *gin.Context) {
	docs, err := handler.documentService.ListForCustomer(ctx.Request.Context(), ctx.Param("id"))
	if err != nil {
		respondWithError(ctx, err)
		return
	}

	response := make([]CustomerDocumentResponse, 0, len(docs))
	for _, doc := range docs {
		response = append(response, CustomerDocumentResponse{
			SubmissionID: doc.SubmissionID,
			Category:     doc.Category,
			FileRecord:   doc.Record,
		})
	}

	ctx.JSON(http.StatusOK, response)
}
